package files_manager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aeropack/contracts"
)

// CheckProvidedDirs validates the input and output roots before any work is
// enumerated. The output directory must already exist when this is called.
func CheckProvidedDirs(inputRootDir string, outputDir string) error {
	if inputRootDir == "" || outputDir == "" {
		return fmt.Errorf("input and output directories required")
	}
	if stat, err := os.Stat(inputRootDir); err != nil || !stat.IsDir() {
		return fmt.Errorf("input directory does not exist or is not a directory")
	}
	if stat, err := os.Stat(outputDir); err != nil || !stat.IsDir() {
		return fmt.Errorf("output directory does not exist or is not a directory")
	}
	inAbs, err := filepath.Abs(inputRootDir)
	if err != nil {
		return err
	}
	outAbs, err := filepath.Abs(outputDir)
	if err != nil {
		return err
	}
	if inAbs == outAbs {
		return fmt.Errorf("input and output directories must be different")
	}
	sep := string(filepath.Separator)
	if strings.HasPrefix(inAbs, outAbs+sep) || strings.HasPrefix(outAbs, inAbs+sep) {
		return fmt.Errorf("input and output directories must not be subdirectories of each other")
	}
	return nil
}

// ListSources walks inputRoot and returns every file whose extension is in
// extensions (case-insensitive, with or without the leading dot). Directory
// symlinks are followed; AppleDouble sidecar files are skipped. The returned
// list is a point-in-time snapshot of the tree.
func ListSources(inputRoot string, extensions []string) ([]string, error) {
	extSet := normalizeExtensions(extensions)
	var files []string
	// Directory symlinks are followed, so a link pointing at an ancestor
	// would recurse forever without this.
	visited := make(map[string]bool)
	var walk func(dir string) error
	walk = func(dir string) error {
		resolved, err := filepath.EvalSymlinks(dir)
		if err != nil {
			resolved = dir
		}
		if visited[resolved] {
			return nil
		}
		visited[resolved] = true

		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			info, err := os.Stat(path)
			if err != nil {
				// Broken symlink or a file deleted mid-walk.
				continue
			}
			if info.IsDir() {
				if err := walk(path); err != nil {
					return err
				}
				continue
			}
			if strings.HasPrefix(entry.Name(), "._") {
				continue
			}
			if !extSet[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}
			files = append(files, path)
		}
		return nil
	}
	if err := walk(inputRoot); err != nil {
		return nil, fmt.Errorf("error while scanning directory: %w", err)
	}
	return files, nil
}

// EnumerateWorkItems maps every qualifying file under inputRoot to a work
// item whose destination mirrors the source's relative path under outputRoot.
// Destination parent directories are created here, before any conversion
// runs, so the scheduler never sees a missing-directory error.
func EnumerateWorkItems(inputRoot string, outputRoot string, extensions []string, useAcceleration bool) ([]contracts.WorkItem, error) {
	sources, err := ListSources(inputRoot, extensions)
	if err != nil {
		return nil, err
	}
	items := make([]contracts.WorkItem, 0, len(sources))
	for _, src := range sources {
		rel, err := filepath.Rel(inputRoot, src)
		if err != nil {
			return nil, fmt.Errorf("relative path for %s: %w", src, err)
		}
		dest := filepath.Join(outputRoot, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, fmt.Errorf("create output directory for %s: %w", dest, err)
		}
		items = append(items, contracts.WorkItem{
			SourcePath:      src,
			DestPath:        dest,
			UseAcceleration: useAcceleration,
		})
	}
	return items, nil
}

func normalizeExtensions(extensions []string) map[string]bool {
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

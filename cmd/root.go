package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"aeropack/config"
	"aeropack/contracts"
	"aeropack/converter"
	"aeropack/files_manager"
	"aeropack/raster"
	"aeropack/report"
)

type InputFlags = contracts.InputFlags

func newRootCommand() *cobra.Command {
	var args InputFlags
	var noParallel bool

	cmd := &cobra.Command{
		Use:           "aeropack",
		Short:         "Compress aerial rasters into tiled JPEG GeoTIFFs with internal previews",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args.Sequential = noParallel
			return runBatch(args)
		},
	}

	cmd.Flags().StringVarP(&args.InputRootDir, "input", "i", "", "Input directory containing rasters to compress")
	cmd.Flags().StringVarP(&args.OutputDir, "output", "o", "", "Output directory for compressed rasters")
	cmd.Flags().StringSliceVarP(&args.Extensions, "extensions", "e", []string{".tif", ".tiff"}, "File extensions to process")
	cmd.Flags().BoolVarP(&args.UseGPU, "gpu", "g", false, "Use GPU acceleration if available")
	cmd.Flags().BoolVar(&noParallel, "no-parallel", false, "Disable parallel processing")
	cmd.Flags().StringVarP(&args.ConfigPath, "config", "c", "", "Configuration file path")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	cmd.AddCommand(newScanCommand())

	return cmd
}

func runBatch(args InputFlags) error {
	if err := os.MkdirAll(args.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := files_manager.CheckProvidedDirs(args.InputRootDir, args.OutputDir); err != nil {
		return err
	}

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		return err
	}
	opts := cfg.EncodeOptions()

	// One batch per output root at a time; a second writer would race on
	// destination files.
	lock := flock.New(filepath.Join(args.OutputDir, ".aeropack.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock output directory: %w", err)
	}
	if !locked {
		return fmt.Errorf("another batch is already writing to %s", args.OutputDir)
	}
	defer lock.Unlock()

	lib, err := raster.OpenLibrary()
	if err != nil {
		return err
	}

	fmt.Println("inputRootDir:", args.InputRootDir)
	fmt.Println("outputDir:", args.OutputDir)
	fmt.Println("extensions:", strings.Join(args.Extensions, ", "))

	// Computed once per batch; every work item carries the result by value.
	accelerated := false
	if args.UseGPU {
		accelerated = converter.ProbeAcceleration(lib, opts.GPUBackend)
	}

	items, err := files_manager.EnumerateWorkItems(args.InputRootDir, args.OutputDir, args.Extensions, accelerated)
	if err != nil {
		return err
	}

	lib.SetCacheMax(opts.CacheMaxMB)

	start := time.Now()
	outcomes := converter.RunBatch(lib, opts, items, !args.Sequential, cfg.Batch.MaxWorkers)
	batchReport := report.Summarize(uuid.NewString(), outcomes, time.Since(start))
	report.Render(os.Stdout, batchReport, outcomes)
	return nil
}

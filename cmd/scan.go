package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"aeropack/files_manager"
	"aeropack/utils"
)

// newScanCommand lists the rasters a batch would convert, without writing
// anything. Dimensions and DPI come from the TIFF headers directly, so the
// raster library is not needed.
func newScanCommand() *cobra.Command {
	var input string
	var extensions []string

	cmd := &cobra.Command{
		Use:           "scan",
		Short:         "List the rasters a batch would convert, without converting",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(input, extensions)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input directory containing rasters")
	cmd.Flags().StringSliceVarP(&extensions, "extensions", "e", []string{".tif", ".tiff"}, "File extensions to match")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runScan(input string, extensions []string) error {
	if stat, err := os.Stat(input); err != nil || !stat.IsDir() {
		return fmt.Errorf("input directory does not exist or is not a directory")
	}

	files, err := files_manager.ListSources(input, extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No matching rasters found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"File", "Dimensions", "DPI"})
	for _, path := range files {
		dims := "?"
		if w, h, err := utils.GetTIFFDimensions(path); err == nil {
			dims = fmt.Sprintf("%dx%d", w, h)
		}
		dpi := "?"
		if x, y, err := utils.GetTIFFDPI(path); err == nil {
			dpi = fmt.Sprintf("%.0fx%.0f", x, y)
		}
		t.AppendRow(table.Row{path, dims, dpi})
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		t.SetStyle(table.StyleRounded)
	}
	t.Render()
	fmt.Printf("%d rasters would be converted.\n", len(files))
	return nil
}

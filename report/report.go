// Package report aggregates conversion outcomes into the final batch tally.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"aeropack/contracts"
)

// Summarize folds the full outcome set into a BatchReport. wallClock is the
// span of the whole batch, not the sum of per-item times, since those overlap
// under parallel execution.
func Summarize(runID string, outcomes []contracts.ConversionOutcome, wallClock time.Duration) contracts.BatchReport {
	r := contracts.BatchReport{
		RunID:         runID,
		TotalFiles:    len(outcomes),
		TotalDuration: wallClock,
	}
	for _, o := range outcomes {
		if o.Succeeded {
			r.SuccessfulFiles++
		}
	}
	// Guard against an empty batch.
	div := r.TotalFiles
	if div < 1 {
		div = 1
	}
	r.MeanDuration = wallClock / time.Duration(div)
	return r
}

// Render prints the per-file table followed by the two-line batch summary.
func Render(w io.Writer, r contracts.BatchReport, outcomes []contracts.ConversionOutcome) {
	if len(outcomes) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"File", "Status", "Duration"})
		for _, o := range outcomes {
			status := "ok"
			if !o.Succeeded {
				status = "failed: " + o.ErrorDetail
			}
			t.AppendRow(table.Row{o.Item.SourcePath, status, o.Elapsed.Round(time.Millisecond)})
		}
		if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			t.SetStyle(table.StyleRounded)
		}
		t.Render()
	}
	fmt.Fprintf(w, "Batch %s complete: %d/%d files converted successfully.\n", r.RunID, r.SuccessfulFiles, r.TotalFiles)
	fmt.Fprintf(w, "Total time: %.2f seconds, mean: %.2f seconds/file.\n", r.TotalDuration.Seconds(), r.MeanDuration.Seconds())
}

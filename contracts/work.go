package contracts

import "time"

// WorkItem is one source raster paired with its mirrored destination path.
// Items are built once by the files manager and never mutated afterwards.
type WorkItem struct {
	SourcePath      string
	DestPath        string
	UseAcceleration bool
}

// ConversionOutcome records the result of converting a single WorkItem.
// Exactly one outcome is produced per item, failed or not.
type ConversionOutcome struct {
	Item        WorkItem
	Succeeded   bool
	Elapsed     time.Duration
	ErrorDetail string
}

// BatchReport is the aggregate tally over a finished batch.
type BatchReport struct {
	RunID           string
	TotalFiles      int
	SuccessfulFiles int
	TotalDuration   time.Duration
	MeanDuration    time.Duration
}

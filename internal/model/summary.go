package model

import "time"

// BatchSummary captures metrics from a single batch quote run.
type BatchSummary struct {
	FilePath       string
	FileSHA256     string
	BatchID        string
	RowsRead       int64
	ChartsRead     int64
	ChartsRejected int64
	PlansWritten   int64
	PlansByTier    map[CoverageTier]int64

	DurationQuote    time.Duration
	DurationFinalize time.Duration
	DurationTotal    time.Duration
}

package runlog

import "time"

// Outcome classifies how processing one input file ended.
type Outcome string

const (
	OutcomeConverted Outcome = "converted"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
)

// Run is one batch invocation.
type Run struct {
	ID         string
	Command    string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// FileRecord is the outcome of one input within a run.
type FileRecord struct {
	RunID    string
	Input    string
	Output   string
	Outcome  Outcome
	Warnings int64
	Detail   string
}

// RunSummary aggregates a run with its per-outcome file counts.
type RunSummary struct {
	Run
	Converted int64
	Failed    int64
	Skipped   int64
	Warnings  int64
}

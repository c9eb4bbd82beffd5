package store

import (
	"context"
	"time"
)

// RunEventData captures one classification run.
type RunEventData struct {
	ID        string
	Timestamp time.Time
	Scheme    string
	Source    string
	Rows      int
	Unlabeled int
	Duration  time.Duration
	Counts    map[string]int
}

// Run is a stored classification run.
type Run struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	Scheme    string
	Source    string
	Rows      int
	Unlabeled int
	Duration  time.Duration
}

// LabelCount is the number of rows a run assigned to one label.
type LabelCount struct {
	Label string
	Count int
}

// RunRepo provides append and query access to classification runs.
type RunRepo interface {
	// Append records a run and its label counts in one transaction.
	Append(ctx context.Context, data RunEventData) (*Run, error)

	// Recent returns up to limit runs, newest first. limit <= 0 means all.
	Recent(ctx context.Context, limit int) ([]Run, error)

	// Get returns the run with the given ID, or nil if none exists.
	Get(ctx context.Context, id string) (*Run, error)

	// Labels returns the label counts of a run, most frequent first.
	Labels(ctx context.Context, runID string) ([]LabelCount, error)

	// Prune deletes all but the N most recent runs.
	Prune(ctx context.Context, keep int) error
}

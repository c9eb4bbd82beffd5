package classify

import (
	"context"
	"log/slog"

	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/store"
)

// RecordingClassifier is a decorator that records every successful run in
// the history store.
type RecordingClassifier struct {
	inner  Classifier
	runs   store.RunRepo
	logger *slog.Logger
}

// WithRecording wraps a Classifier with run recording.
func WithRecording(c Classifier, runs store.RunRepo, logger *slog.Logger) Classifier {
	return &RecordingClassifier{inner: c, runs: runs, logger: logger}
}

func (r *RecordingClassifier) Classify(ctx context.Context, schemeID string, t *element.Table) (*Result, error) {
	res, err := r.inner.Classify(ctx, schemeID, t)
	if err != nil {
		return nil, err
	}

	data := store.RunEventData{
		ID:        res.RunID.String(),
		Scheme:    res.Scheme,
		Source:    SourceFrom(ctx),
		Rows:      len(res.Labels),
		Unlabeled: res.Unlabeled,
		Duration:  res.Duration,
		Counts:    res.Counts,
	}

	// Record the run but don't fail the classification if recording fails.
	if _, recErr := r.runs.Append(ctx, data); recErr != nil {
		r.logger.WarnContext(ctx, "failed to record run", "run", data.ID, "error", recErr)
	}
	return res, nil
}

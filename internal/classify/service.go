// Package classify is the classification facade: it validates input tables,
// dispatches them to the engine of the requested scheme and reports labels,
// counts and timing.
package classify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/metrics"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/edslab/mineraliz/internal/classify")

// Result is the outcome of classifying one batch.
type Result struct {
	RunID  uuid.UUID
	Scheme string
	// Labels holds one label per input row, in input order.
	Labels []string
	// Counts maps each assigned label to its number of rows.
	Counts map[string]int
	// Unlabeled is the number of rows left Unknown or unresolved.
	Unlabeled int
	Duration  time.Duration
}

// Classifier classifies a table with the scheme identified by schemeID.
type Classifier interface {
	Classify(ctx context.Context, schemeID string, t *element.Table) (*Result, error)
}

// Service dispatches tables to registered engines.
type Service struct {
	engines  map[string]Engine
	order    []string
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records batch metrics on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a service with the built-in engines registered.
func NewService(cfg Config, opts ...Option) *Service {
	s := &Service{
		engines: make(map[string]Engine),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(s)
	}
	for _, e := range DefaultEngines(cfg) {
		// Built-in IDs are distinct.
		_ = s.Register(e)
	}
	return s
}

// Register adds an engine. IDs are unique.
func (s *Service) Register(e Engine) error {
	if _, ok := s.engines[e.ID()]; ok {
		return &DuplicateSchemeError{ID: e.ID()}
	}
	s.engines[e.ID()] = e
	s.order = append(s.order, e.ID())
	return nil
}

// Engines returns the registered engines in registration order.
func (s *Service) Engines() []Engine {
	out := make([]Engine, len(s.order))
	for i, id := range s.order {
		out[i] = s.engines[id]
	}
	return out
}

// Engine returns the engine registered under id.
func (s *Service) Engine(id string) (Engine, error) {
	e, ok := s.engines[id]
	if !ok {
		return nil, &UnknownSchemeError{ID: id, Known: s.order}
	}
	return e, nil
}

// Classify validates t, runs the engine for schemeID and summarises the
// labels. Any schema or type error aborts the batch with no partial output.
func (s *Service) Classify(ctx context.Context, schemeID string, t *element.Table) (*Result, error) {
	ctx, span := tracer.Start(ctx, "classify.Service.Classify",
		trace.WithAttributes(attribute.String("scheme", schemeID)))
	defer span.End()

	fail := func(err error, msg string) (*Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, msg)
		return nil, err
	}

	e, err := s.Engine(schemeID)
	if err != nil {
		return fail(err, "unknown scheme")
	}
	if t == nil {
		s.recorder.Fail(schemeID)
		return fail(&element.TypeError{Row: -1, Column: -1, Err: errors.New("nil table")}, "nil table")
	}
	if err := t.Require(e.Elements()); err != nil {
		s.recorder.Fail(schemeID)
		s.logger.WarnContext(ctx, "batch rejected", "scheme", schemeID, "error", err)
		return fail(err, "missing elements")
	}

	start := time.Now()
	labels, err := e.Classify(t)
	if err != nil {
		s.recorder.Fail(schemeID)
		return fail(err, "classification failed")
	}
	elapsed := time.Since(start)

	res := &Result{
		RunID:    uuid.New(),
		Scheme:   schemeID,
		Labels:   labels,
		Counts:   make(map[string]int),
		Duration: elapsed,
	}
	for _, l := range labels {
		res.Counts[l]++
		if IsUnlabeled(l) {
			res.Unlabeled++
		}
	}

	s.recorder.Observe(schemeID, res.Counts, IsUnlabeled, elapsed)
	span.SetAttributes(
		attribute.String("run_id", res.RunID.String()),
		attribute.Int("rows", len(labels)),
		attribute.Int("unlabeled", res.Unlabeled),
	)
	span.SetStatus(codes.Ok, "")
	s.logger.DebugContext(ctx, "batch classified",
		"run", res.RunID,
		"scheme", schemeID,
		"rows", len(labels),
		"unlabeled", res.Unlabeled,
		"duration", elapsed,
	)
	return res, nil
}

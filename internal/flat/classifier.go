package flat

import (
	"runtime"
	"slices"

	"github.com/edslab/mineraliz/internal/element"
	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest number of rows handed to one goroutine in a pass.
const minChunk = 4096

// Classifier applies a Scheme to tables.
type Classifier struct {
	scheme  *Scheme
	workers int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithWorkers sets how many goroutines may split a single rule pass.
// Values below 1 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Classifier) { c.workers = n }
}

// New returns a Classifier for s. The scheme must not be modified afterwards.
func New(s *Scheme, opts ...Option) *Classifier {
	c := &Classifier{scheme: s, workers: 1}
	for _, o := range opts {
		o(c)
	}
	if c.workers < 1 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	return c
}

func (c *Classifier) ID() string                 { return c.scheme.ID }
func (c *Classifier) Title() string              { return c.scheme.Title }
func (c *Classifier) Elements() []element.Symbol { return slices.Clone(c.scheme.Elements) }

// Scheme returns the underlying scheme.
func (c *Classifier) Scheme() *Scheme { return c.scheme }

// Classify labels every row of t. A missing required column fails the whole
// batch before any rule runs.
func (c *Classifier) Classify(t *element.Table) ([]string, error) {
	if err := t.Require(c.scheme.Elements); err != nil {
		return nil, err
	}
	rows := t.Rows()
	sums := t.Sums(c.scheme.Elements)

	labels := make([]string, len(rows))
	for i := range labels {
		labels[i] = Unknown
	}
	for _, r := range c.scheme.Rules {
		labels = c.apply(r, labels, rows, sums)
	}
	return labels, nil
}

// Apply runs one rule pass over the batch and returns the resulting labels.
// The input slice is not modified.
func Apply(r Rule, labels []string, rows []element.Vector, sums []float64) []string {
	next := slices.Clone(labels)
	applyRange(r, next, rows, sums, 0, len(rows))
	return next
}

func (c *Classifier) apply(r Rule, labels []string, rows []element.Vector, sums []float64) []string {
	if c.workers == 1 || len(rows) < 2*minChunk {
		return Apply(r, labels, rows, sums)
	}

	next := slices.Clone(labels)
	chunk := max(minChunk, (len(rows)+c.workers-1)/c.workers)

	var g errgroup.Group
	g.SetLimit(c.workers)
	for lo := 0; lo < len(rows); lo += chunk {
		hi := min(lo+chunk, len(rows))
		g.Go(func() error {
			applyRange(r, next, rows, sums, lo, hi)
			return nil
		})
	}
	// Workers never fail; Wait only marks the end of the pass.
	_ = g.Wait()
	return next
}

func applyRange(r Rule, labels []string, rows []element.Vector, sums []float64, lo, hi int) {
	guard := r.RequiredLabel()
	for i := lo; i < hi; i++ {
		if labels[i] == guard && r.When.Eval(rows[i], sums[i]) {
			labels[i] = r.Label
		}
	}
}

// Match describes the rule that labelled a row.
type Match struct {
	// Index is the rule position, or -1 when no rule fired.
	Index int
	Label string
	Rule  *Rule
}

// Explain classifies a single vector and reports which rule fired last.
// The vector must carry the scheme's required elements.
func (c *Classifier) Explain(v element.Vector) Match {
	sum := v.Sum(c.scheme.Elements)
	m := Match{Index: -1, Label: Unknown}
	for i := range c.scheme.Rules {
		r := &c.scheme.Rules[i]
		if m.Label == r.RequiredLabel() && r.When.Eval(v, sum) {
			m = Match{Index: i, Label: r.Label, Rule: r}
		}
	}
	return m
}

package tree

import (
	"slices"

	"github.com/edslab/mineraliz/internal/element"
)

// Classifier applies a Tree to tables.
type Classifier struct {
	tree *Tree
}

// New returns a Classifier for t. The tree must not be modified afterwards.
func New(t *Tree) *Classifier { return &Classifier{tree: t} }

func (c *Classifier) ID() string                 { return c.tree.ID }
func (c *Classifier) Title() string              { return c.tree.Title }
func (c *Classifier) Elements() []element.Symbol { return slices.Clone(c.tree.Elements) }

// Tree returns the underlying tree.
func (c *Classifier) Tree() *Tree { return c.tree }

// Classify labels every row of t. A missing required column fails the whole
// batch before any row is visited.
func (c *Classifier) Classify(t *element.Table) ([]string, error) {
	if err := t.Require(c.tree.Elements); err != nil {
		return nil, err
	}
	labels := make([]string, t.Len())
	for i, v := range t.Rows() {
		labels[i], _ = c.Walk(v)
	}
	return labels, nil
}

// Walk traverses the tree for v and returns the label together with the
// codes of the internal nodes visited, root first.
func (c *Classifier) Walk(v element.Vector) (string, []string) {
	sum := v.Sum(c.tree.Elements)
	var path []string
	n := c.tree.Root
	for !n.Terminal() {
		path = append(path, n.Code)
		next := n.Next(v, sum)
		if next == nil || len(path) > MaxDepth {
			return UnresolvedLabel(n.Code), path
		}
		n = next
	}
	return n.Label, path
}

// Step is one internal node visited during a walk.
type Step struct {
	Code  string
	Ratio string
	Value float64
	// Matched is false at the node where the walk stopped unresolved.
	Matched bool
}

// Trace is Walk with the ratio value computed at every visited node.
func (c *Classifier) Trace(v element.Vector) (string, []Step) {
	sum := v.Sum(c.tree.Elements)
	var steps []Step
	n := c.tree.Root
	for !n.Terminal() {
		next := n.Next(v, sum)
		steps = append(steps, Step{
			Code:    n.Code,
			Ratio:   n.Ratio.String(),
			Value:   n.Ratio.Eval(v, sum),
			Matched: next != nil,
		})
		if next == nil || len(steps) > MaxDepth {
			return UnresolvedLabel(n.Code), steps
		}
		n = next
	}
	return n.Label, steps
}

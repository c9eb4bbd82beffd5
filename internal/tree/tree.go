// Package tree implements hierarchical decision classification. Each internal
// node computes one ratio from the raw element vector and follows the first
// branch whose range contains it; a node with no matching branch resolves to
// its unresolved code.
package tree

import (
	"fmt"
	"strings"

	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/predicate"
	"github.com/edslab/mineraliz/internal/ratio"
)

// MaxDepth is the maximum number of internal nodes on any root-to-leaf path.
const MaxDepth = 5

// UnresolvedPrefix marks labels of rows that stopped at an internal node
// without reaching a named class.
const UnresolvedPrefix = "U-"

// Node is either a terminal (Label set, no branches) or an internal node
// (Code, Ratio and 2 to 4 branches).
type Node struct {
	Label    string
	Code     string
	Ratio    ratio.Ratio
	Branches []Branch
}

// Branch routes values in [Lo, Hi] to Next.
type Branch struct {
	Lo   predicate.Bound
	Hi   predicate.Bound
	Next *Node
}

// Leaf returns a terminal node.
func Leaf(label string) *Node { return &Node{Label: label} }

// Unresolved returns a terminal node labelled with the unresolved code for code.
func Unresolved(code string) *Node { return Leaf(UnresolvedLabel(code)) }

// UnresolvedLabel returns the label for rows unresolved at node code.
func UnresolvedLabel(code string) string { return UnresolvedPrefix + code }

// Split returns an internal node.
func Split(code string, r ratio.Ratio, branches ...Branch) *Node {
	return &Node{Code: code, Ratio: r, Branches: branches}
}

// When builds a branch for lo..hi.
func When(lo, hi predicate.Bound, next *Node) Branch {
	return Branch{Lo: lo, Hi: hi, Next: next}
}

// Terminal reports whether n is a leaf.
func (n *Node) Terminal() bool { return len(n.Branches) == 0 }

// Next evaluates the node on v and returns the chosen child, or nil when no
// branch matches.
func (n *Node) Next(v element.Vector, sum float64) *Node {
	x := n.Ratio.Eval(v, sum)
	for _, b := range n.Branches {
		if predicate.Contains(b.Lo, b.Hi, x) {
			return b.Next
		}
	}
	return nil
}

// Tree is a complete hierarchical scheme.
type Tree struct {
	ID       string
	Title    string
	Units    string
	Elements []element.Symbol
	Root     *Node
}

// Labels returns every label the tree can produce: named leaves first, then
// unresolved codes, each in depth-first order.
func (t *Tree) Labels() []string {
	var named, unresolved []string
	seen := make(map[string]bool)
	add := func(list *[]string, l string) {
		if !seen[l] {
			seen[l] = true
			*list = append(*list, l)
		}
	}
	t.walk(func(n *Node, _ int) {
		switch {
		case !n.Terminal():
			add(&unresolved, UnresolvedLabel(n.Code))
		case strings.HasPrefix(n.Label, UnresolvedPrefix):
			add(&unresolved, n.Label)
		default:
			add(&named, n.Label)
		}
	})
	return append(named, unresolved...)
}

// walk visits nodes depth-first with an explicit stack. depth counts
// internal nodes above n.
func (t *Tree) walk(fn func(n *Node, depth int)) {
	type frame struct {
		n     *Node
		depth int
	}
	if t.Root == nil {
		return
	}
	stack := []frame{{t.Root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(f.n, f.depth)
		for i := len(f.n.Branches) - 1; i >= 0; i-- {
			if next := f.n.Branches[i].Next; next != nil {
				stack = append(stack, frame{next, f.depth + 1})
			}
		}
	}
}

// Validate performs all structural checks on the tree.
// Returns a combined error describing all problems found, or nil if valid.
func (t *Tree) Validate() error {
	var errs []string

	if t.ID == "" {
		errs = append(errs, "tree ID is empty")
	}
	if t.Root == nil {
		errs = append(errs, "tree has no root")
		return fmt.Errorf("tree %q validation failed:\n  %s", t.ID, strings.Join(errs, "\n  "))
	}

	required := make(map[element.Symbol]bool, len(t.Elements))
	for _, s := range t.Elements {
		required[s] = true
	}

	visited := make(map[*Node]bool)
	codes := make(map[string]bool)
	t.walk(func(n *Node, depth int) {
		if visited[n] {
			errs = append(errs, fmt.Sprintf("node %q is reachable by more than one path", nodeName(n)))
			return
		}
		visited[n] = true

		if n.Terminal() {
			if n.Label == "" {
				errs = append(errs, "terminal node without label")
			}
			return
		}

		if depth+1 > MaxDepth {
			errs = append(errs, fmt.Sprintf("node %q at depth %d exceeds maximum depth %d", n.Code, depth+1, MaxDepth))
		}
		if n.Code == "" {
			errs = append(errs, fmt.Sprintf("internal node on %s has no code", n.Ratio))
		} else if codes[n.Code] {
			errs = append(errs, fmt.Sprintf("duplicate node code %q", n.Code))
		}
		codes[n.Code] = true

		if len(n.Branches) < 2 || len(n.Branches) > 4 {
			errs = append(errs, fmt.Sprintf("node %q has %d branches, want 2 to 4", n.Code, len(n.Branches)))
		}
		for i, b := range n.Branches {
			if b.Next == nil {
				errs = append(errs, fmt.Sprintf("node %q branch %d has no target", n.Code, i))
			}
		}
		for _, s := range n.Ratio.Elements() {
			if !required[s] {
				errs = append(errs, fmt.Sprintf("node %q references undeclared element %q", n.Code, s))
			}
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("tree %q validation failed:\n  %s", t.ID, strings.Join(errs, "\n  "))
	}
	return nil
}

func nodeName(n *Node) string {
	if n.Terminal() {
		return n.Label
	}
	return n.Code
}

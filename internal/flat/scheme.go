// Package flat implements priority-ordered rule classification: every rule is
// applied to the whole batch in declared order, and a rule only relabels rows
// whose current label equals its guard.
package flat

import (
	"fmt"
	"math"
	"strings"

	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/predicate"
	"github.com/edslab/mineraliz/internal/ratio"
)

// Unknown is the initial label of every row and the label of rows no rule matched.
const Unknown = "Unknown"

// Rule assigns Label to rows currently labelled Guard that satisfy When.
type Rule struct {
	Label string
	// Guard is the label a row must carry for the rule to apply.
	// Empty means Unknown.
	Guard string
	When  predicate.Set
}

// RequiredLabel returns the effective guard.
func (r Rule) RequiredLabel() string {
	if r.Guard == "" {
		return Unknown
	}
	return r.Guard
}

// Scheme is a complete flat classification scheme. Rule order is part of
// the scheme: reordering rules changes results.
type Scheme struct {
	ID    string
	Title string
	// Units documents the input convention the thresholds assume.
	Units string
	// Elements must all be present in the input; their sum is the
	// normaliser for fraction ratios.
	Elements []element.Symbol
	// Optional elements are read when present and treated as zero
	// otherwise. They do not contribute to the elemental sum.
	Optional []element.Symbol
	Rules    []Rule
}

// Labels returns the distinct rule labels in first-declared order.
func (s *Scheme) Labels() []string {
	seen := make(map[string]bool, len(s.Rules))
	var out []string
	for _, r := range s.Rules {
		if !seen[r.Label] {
			seen[r.Label] = true
			out = append(out, r.Label)
		}
	}
	return out
}

// Validate performs all structural checks on the scheme.
// Returns a combined error describing all problems found, or nil if valid.
func (s *Scheme) Validate() error {
	var errs []string

	if s.ID == "" {
		errs = append(errs, "scheme ID is empty")
	}
	if len(s.Elements) == 0 {
		errs = append(errs, "scheme declares no required elements")
	}
	if len(s.Rules) == 0 {
		errs = append(errs, "scheme has no rules")
	}

	declared := make(map[element.Symbol]bool, len(s.Elements)+len(s.Optional))
	for _, list := range [][]element.Symbol{s.Elements, s.Optional} {
		for _, sym := range list {
			if declared[sym] {
				errs = append(errs, fmt.Sprintf("element %q declared more than once", sym))
			}
			declared[sym] = true
		}
	}

	for i, r := range s.Rules {
		prefix := fmt.Sprintf("rule %d (%q)", i, r.Label)
		if r.Label == "" {
			errs = append(errs, fmt.Sprintf("rule %d: empty label", i))
		}
		if len(r.When) == 0 {
			errs = append(errs, fmt.Sprintf("%s: no checks", prefix))
		}
		for _, sym := range r.When.Elements() {
			if !declared[sym] {
				errs = append(errs, fmt.Sprintf("%s: references undeclared element %q", prefix, sym))
			}
		}
		for j, c := range r.When {
			for _, t := range append(append(ratio.Linear{}, c.Ratio.Num...), c.Ratio.Den...) {
				if !(t.Weight > 0) || math.IsInf(t.Weight, 0) {
					errs = append(errs, fmt.Sprintf("%s check %d: weight %g must be positive and finite",
						prefix, j, t.Weight))
				}
			}
			if c.Lo.Set && c.Hi.Set && c.Lo.Value > c.Hi.Value {
				errs = append(errs, fmt.Sprintf("%s check %d: lower bound %g exceeds upper bound %g",
					prefix, j, c.Lo.Value, c.Hi.Value))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("scheme %q validation failed:\n  %s", s.ID, strings.Join(errs, "\n  "))
	}
	return nil
}

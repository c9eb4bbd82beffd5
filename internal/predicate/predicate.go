// Package predicate evaluates conjunctions of range checks over ratios.
package predicate

import (
	"math"
	"strconv"
	"strings"

	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/ratio"
)

// Bound is one side of a range. The zero Bound is unbounded.
type Bound struct {
	Value     float64
	Inclusive bool
	Set       bool
}

// Incl returns an inclusive bound.
func Incl(v float64) Bound { return Bound{Value: v, Inclusive: true, Set: true} }

// Excl returns an exclusive bound.
func Excl(v float64) Bound { return Bound{Value: v, Set: true} }

// Unbounded leaves one side of a range open.
var Unbounded = Bound{}

// Contains reports whether x lies within [lo, hi] honouring inclusivity.
// Non-finite values never lie in a range.
func Contains(lo, hi Bound, x float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	if lo.Set {
		if x < lo.Value || (!lo.Inclusive && x == lo.Value) {
			return false
		}
	}
	if hi.Set {
		if x > hi.Value || (!hi.Inclusive && x == hi.Value) {
			return false
		}
	}
	return true
}

// RangeString renders a range around name, e.g. "0.1 <= Al/Si < 0.7".
func RangeString(name string, lo, hi Bound) string {
	var b strings.Builder
	if lo.Set {
		b.WriteString(formatFloat(lo.Value))
		b.WriteString(op(lo.Inclusive))
	}
	b.WriteString(name)
	if hi.Set {
		b.WriteString(op(hi.Inclusive))
		b.WriteString(formatFloat(hi.Value))
	}
	return b.String()
}

func op(inclusive bool) string {
	if inclusive {
		return " <= "
	}
	return " < "
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// Check is a single range check on a ratio.
type Check struct {
	Ratio ratio.Ratio
	Lo    Bound
	Hi    Bound
}

// Range builds a check with explicit bounds.
func Range(r ratio.Ratio, lo, hi Bound) Check { return Check{Ratio: r, Lo: lo, Hi: hi} }

// AtLeast is r >= v.
func AtLeast(r ratio.Ratio, v float64) Check { return Range(r, Incl(v), Unbounded) }

// Above is r > v.
func Above(r ratio.Ratio, v float64) Check { return Range(r, Excl(v), Unbounded) }

// AtMost is r <= v.
func AtMost(r ratio.Ratio, v float64) Check { return Range(r, Unbounded, Incl(v)) }

// Below is r < v.
func Below(r ratio.Ratio, v float64) Check { return Range(r, Unbounded, Excl(v)) }

// Within is lo <= r <= hi.
func Within(r ratio.Ratio, lo, hi float64) Check { return Range(r, Incl(lo), Incl(hi)) }

// Holds evaluates the check on v.
func (c Check) Holds(v element.Vector, sum float64) bool {
	return Contains(c.Lo, c.Hi, c.Ratio.Eval(v, sum))
}

func (c Check) String() string { return RangeString(c.Ratio.String(), c.Lo, c.Hi) }

// Set is a conjunction of checks.
type Set []Check

// Of collects checks into a Set.
func Of(checks ...Check) Set { return Set(checks) }

// Eval reports whether every check holds. It stops at the first failure;
// checks have no side effects so the result equals exhaustive evaluation.
func (s Set) Eval(v element.Vector, sum float64) bool {
	for _, c := range s {
		if !c.Holds(v, sum) {
			return false
		}
	}
	return true
}

// Elements returns every element symbol the set reads.
func (s Set) Elements() []element.Symbol {
	var out []element.Symbol
	for _, c := range s {
		out = append(out, c.Ratio.Elements()...)
	}
	return out
}

func (s Set) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}

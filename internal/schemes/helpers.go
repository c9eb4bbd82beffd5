// Package schemes holds the built-in classification schemes as declarative
// rule tables. Thresholds are data: editing a scheme never touches the
// engines' control flow.
package schemes

import (
	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/flat"
	"github.com/edslab/mineraliz/internal/predicate"
	"github.com/edslab/mineraliz/internal/ratio"
)

const (
	Na = element.Na
	Mg = element.Mg
	Al = element.Al
	Si = element.Si
	P  = element.P
	S  = element.S
	Cl = element.Cl
	K  = element.K
	Ca = element.Ca
	Ti = element.Ti
	Cr = element.Cr
	Mn = element.Mn
	Fe = element.Fe
	F  = element.F
)

// Shorthands keep the rule tables readable.
var (
	of   = ratio.Of
	incl = predicate.Incl
	excl = predicate.Excl
	open = predicate.Unbounded
)

// x is the share of the elemental sum held by syms.
func x(syms ...element.Symbol) ratio.Ratio { return ratio.Fraction(syms...) }

// per is num/den.
func per(num, den ratio.Linear) ratio.Ratio { return ratio.Over(num, den) }

func ge(r ratio.Ratio, v float64) predicate.Check { return predicate.AtLeast(r, v) }
func gt(r ratio.Ratio, v float64) predicate.Check { return predicate.Above(r, v) }
func lt(r ratio.Ratio, v float64) predicate.Check { return predicate.Below(r, v) }
func le(r ratio.Ratio, v float64) predicate.Check { return predicate.AtMost(r, v) }

func in(r ratio.Ratio, lo, hi float64) predicate.Check { return predicate.Within(r, lo, hi) }

func rule(label string, checks ...predicate.Check) flat.Rule {
	return flat.Rule{Label: label, When: predicate.Of(checks...)}
}

func guarded(label, guard string, checks ...predicate.Check) flat.Rule {
	return flat.Rule{Label: label, Guard: guard, When: predicate.Of(checks...)}
}

// flatElements is the required element set of schemes A and B.
func flatElements() []element.Symbol {
	return []element.Symbol{Na, Mg, Al, Si, P, S, Cl, K, Ca, Ti, Cr, Mn, Fe}
}

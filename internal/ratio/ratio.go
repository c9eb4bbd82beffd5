// Package ratio evaluates derived quantities over an element vector: weighted
// sums of element values divided by other weighted sums.
package ratio

import (
	"strconv"
	"strings"

	"github.com/edslab/mineraliz/internal/element"
)

// Term is one weighted operand. An empty Element stands for the elemental sum.
type Term struct {
	Element element.Symbol
	Weight  float64
}

// Linear is a weighted sum of terms.
type Linear []Term

// Total is the elemental sum of the active scheme.
var Total = Linear{{Weight: 1}}

// Of returns the unit-weight sum of the given elements.
func Of(symbols ...element.Symbol) Linear {
	l := make(Linear, len(symbols))
	for i, s := range symbols {
		l[i] = Term{Element: s, Weight: 1}
	}
	return l
}

// Weighted returns a single term w*s.
func Weighted(w float64, s element.Symbol) Linear {
	return Linear{{Element: s, Weight: w}}
}

// Plus concatenates two linear combinations.
func (l Linear) Plus(o Linear) Linear {
	out := make(Linear, 0, len(l)+len(o))
	out = append(out, l...)
	return append(out, o...)
}

// Eval computes the combination for v. sum is the row's elemental sum.
func (l Linear) Eval(v element.Vector, sum float64) float64 {
	var total float64
	for _, t := range l {
		x := sum
		if t.Element != "" {
			x = v.Get(t.Element)
		}
		total += t.Weight * x
	}
	return total
}

// Elements returns the element symbols referenced, excluding the sum.
func (l Linear) Elements() []element.Symbol {
	var out []element.Symbol
	for _, t := range l {
		if t.Element != "" {
			out = append(out, t.Element)
		}
	}
	return out
}

func (l Linear) String() string {
	if len(l) == 0 {
		return "1"
	}
	parts := make([]string, len(l))
	for i, t := range l {
		name := string(t.Element)
		if name == "" {
			name = "sum"
		}
		if t.Weight != 1 {
			name = strconv.FormatFloat(t.Weight, 'g', -1, 64) + "*" + name
		}
		parts[i] = name
	}
	return strings.Join(parts, "+")
}

// Ratio is Num/Den. An empty Den means the ratio is the numerator itself.
type Ratio struct {
	Num Linear
	Den Linear
}

// Over builds num/den.
func Over(num, den Linear) Ratio { return Ratio{Num: num, Den: den} }

// Fraction returns the share of the elemental sum held by the given elements.
func Fraction(symbols ...element.Symbol) Ratio { return Over(Of(symbols...), Total) }

// Eval computes the ratio with IEEE semantics: a zero denominator yields
// ±Inf or NaN rather than an error.
func (r Ratio) Eval(v element.Vector, sum float64) float64 {
	num := r.Num.Eval(v, sum)
	if len(r.Den) == 0 {
		return num
	}
	return num / r.Den.Eval(v, sum)
}

// Elements returns every element symbol the ratio reads.
func (r Ratio) Elements() []element.Symbol {
	return append(r.Num.Elements(), r.Den.Elements()...)
}

func (r Ratio) String() string {
	if len(r.Den) == 0 {
		return r.Num.String()
	}
	return group(r.Num) + "/" + group(r.Den)
}

func group(l Linear) string {
	if len(l) > 1 {
		return "(" + l.String() + ")"
	}
	return l.String()
}

package predicate

import (
	"math"
	"testing"

	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/ratio"
	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi Bound
		x      float64
		want   bool
	}{
		{"inside", Incl(0.1), Excl(0.7), 0.5, true},
		{"inclusive lower edge", Incl(0.1), Excl(0.7), 0.1, true},
		{"exclusive upper edge", Incl(0.1), Excl(0.7), 0.7, false},
		{"exclusive lower edge", Excl(0.1), Unbounded, 0.1, false},
		{"inclusive upper edge", Unbounded, Incl(0.1), 0.1, true},
		{"below", Incl(0.1), Unbounded, 0.05, false},
		{"unbounded", Unbounded, Unbounded, -5, true},
		{"nan", Incl(0), Incl(1), math.NaN(), false},
		{"positive inf above", Incl(0), Unbounded, math.Inf(1), false},
		{"negative inf below", Unbounded, Excl(0), math.Inf(-1), false},
		{"nan unbounded", Unbounded, Unbounded, math.NaN(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.lo, tt.hi, tt.x))
		})
	}
}

func TestSetEval(t *testing.T) {
	feShare := ratio.Fraction(element.Fe)
	tiShare := ratio.Over(ratio.Of(element.Ti), ratio.Of(element.Fe, element.Ti))
	s := Of(AtLeast(feShare, 0.7), Below(tiShare, 0.1))

	hematite := element.Vector{element.Fe: 0.9, element.Si: 0.1}
	assert.True(t, s.Eval(hematite, 1))

	ilmenite := element.Vector{element.Fe: 0.45, element.Ti: 0.45, element.Si: 0.1}
	assert.False(t, s.Eval(ilmenite, 1))

	empty := element.Vector{}
	assert.False(t, s.Eval(empty, 0), "zero denominators must not satisfy bounded checks")
}

func TestEmptySetHolds(t *testing.T) {
	assert.True(t, Set(nil).Eval(element.Vector{}, 0))
}

func TestShortCircuitMatchesExhaustive(t *testing.T) {
	s := Of(
		Below(ratio.Fraction(element.Na), 0.5),
		AtLeast(ratio.Over(ratio.Of(element.Ca), ratio.Of(element.Na)), 2),
		Within(ratio.Fraction(element.Ca), 0.2, 0.9),
	)
	rows := []element.Vector{
		{element.Na: 0, element.Ca: 1},
		{element.Na: 0.2, element.Ca: 0.8},
		{element.Na: 0.6, element.Ca: 0.4},
		{element.Na: 0.4, element.Ca: 0.6},
	}
	for _, v := range rows {
		sum := v.Sum([]element.Symbol{element.Na, element.Ca})
		exhaustive := true
		for _, c := range s {
			exhaustive = c.Holds(v, sum) && exhaustive
		}
		assert.Equal(t, exhaustive, s.Eval(v, sum))
	}
}

func TestCheckString(t *testing.T) {
	c := Range(ratio.Over(ratio.Of(element.Al), ratio.Of(element.Si)), Incl(0.1), Excl(0.7))
	assert.Equal(t, "0.1 <= Al/Si < 0.7", c.String())
	assert.Equal(t, "0.7 <= Fe/sum", AtLeast(ratio.Fraction(element.Fe), 0.7).String())
}

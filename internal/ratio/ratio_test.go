package ratio

import (
	"math"
	"testing"

	"github.com/edslab/mineraliz/internal/element"
	"github.com/stretchr/testify/assert"
)

func TestRatioEval(t *testing.T) {
	v := element.Vector{element.Na: 2, element.Cl: 1, element.S: 0.5, element.Fe: 6}
	sum := v.Sum([]element.Symbol{element.Na, element.Cl, element.S, element.Fe})

	tests := []struct {
		name string
		r    Ratio
		want float64
	}{
		{"fraction", Fraction(element.Fe), 6 / 9.5},
		{"pair fraction", Fraction(element.Na, element.Cl), 3 / 9.5},
		{"weighted", Over(Of(element.Na), Of(element.Cl).Plus(Weighted(2, element.S))), 1},
		{"no denominator", Ratio{Num: Total}, 9.5},
		{"missing element reads zero", Over(Of(element.Ti), Total), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.r.Eval(v, sum), 1e-12)
		})
	}
}

func TestRatioZeroDenominator(t *testing.T) {
	v := element.Vector{element.Ca: 1}
	assert.True(t, math.IsInf(Over(Of(element.Ca), Of(element.Na)).Eval(v, 1), 1))
	assert.True(t, math.IsNaN(Over(Of(element.Ti), Of(element.Na)).Eval(v, 1)))
	assert.True(t, math.IsNaN(Fraction(element.Fe).Eval(element.Vector{}, 0)))
}

func TestRatioNegativeInputs(t *testing.T) {
	v := element.Vector{element.Si: -2, element.Al: 1}
	assert.Equal(t, -0.5, Over(Of(element.Al), Of(element.Si)).Eval(v, -1))
}

func TestRatioDeterministic(t *testing.T) {
	v := element.Vector{element.Mg: 0.1, element.Fe: 0.2, element.Al: 0.3}
	r := Over(Of(element.Mg, element.Fe), Of(element.Al))
	assert.Equal(t, r.Eval(v, 0.6), r.Eval(v, 0.6))
}

func TestRatioString(t *testing.T) {
	assert.Equal(t, "Fe/sum", Fraction(element.Fe).String())
	assert.Equal(t, "(Ca+Na)/Al", Over(Of(element.Ca, element.Na), Of(element.Al)).String())
	assert.Equal(t, "Na/(Cl+2*S)", Over(Of(element.Na), Of(element.Cl).Plus(Weighted(2, element.S))).String())
	assert.Equal(t, "sum", Ratio{Num: Total}.String())
}

func TestRatioElements(t *testing.T) {
	r := Over(Of(element.Ca, element.Na), Total)
	assert.Equal(t, []element.Symbol{element.Ca, element.Na}, r.Elements())
}

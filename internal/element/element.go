package element

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// Symbol is a canonical chemical element symbol, e.g. "Fe".
type Symbol string

const (
	Na Symbol = "Na"
	Mg Symbol = "Mg"
	Al Symbol = "Al"
	Si Symbol = "Si"
	P  Symbol = "P"
	S  Symbol = "S"
	Cl Symbol = "Cl"
	K  Symbol = "K"
	Ca Symbol = "Ca"
	Ti Symbol = "Ti"
	Cr Symbol = "Cr"
	Mn Symbol = "Mn"
	Fe Symbol = "Fe"
	F  Symbol = "F"
)

// known lists every symbol the classifiers understand, in periodic-table order.
var known = []Symbol{F, Na, Mg, Al, Si, P, S, Cl, K, Ca, Ti, Cr, Mn, Fe}

var knownSet = func() map[Symbol]bool {
	m := make(map[Symbol]bool, len(known))
	for _, s := range known {
		m[s] = true
	}
	return m
}()

// Known returns all recognised symbols.
func Known() []Symbol {
	out := make([]Symbol, len(known))
	copy(out, known)
	return out
}

// IsKnown reports whether s is a recognised symbol.
func IsKnown(s Symbol) bool { return knownSet[s] }

// Canonical folds a column header to an element symbol. It trims space,
// narrows full-width characters and title-cases the result, so "FE", " fe "
// and "Ｆｅ" all map to Fe. The second result is false when the header is not
// a recognised element.
func Canonical(name string) (Symbol, bool) {
	s := strings.TrimSpace(width.Narrow.String(name))
	if s == "" {
		return "", false
	}
	sym := Symbol(cases.Title(language.Und).String(s))
	return sym, knownSet[sym]
}

// Vector is one observation: element symbol to measured value.
type Vector map[Symbol]float64

// Get returns the value for s, or 0 when the element was not measured.
func (v Vector) Get(s Symbol) float64 { return v[s] }

// Sum returns the elemental sum over symbols, added in the given order so
// that repeated calls are bit-identical.
func (v Vector) Sum(symbols []Symbol) float64 {
	var total float64
	for _, s := range symbols {
		total += v[s]
	}
	return total
}

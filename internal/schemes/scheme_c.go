package schemes

import (
	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/tree"
)

// C returns the hierarchical clay and silicate scheme. The tree splits on
// Al/Si first, then on alkali, earth-alkali and ferromagnesian ratios.
// Leaves use mineral abbreviations; rows that stop at an internal node are
// labelled U-<node code>. Nodes C4 and D leave part of their range
// uncovered on purpose.
func C() *tree.Tree {
	when := tree.When
	split := tree.Split
	leaf := tree.Leaf
	unresolved := tree.Unresolved

	b := split("B", per(of(Fe), of(Si)),
		when(open, excl(0.02), leaf("Htr")),
		when(incl(0.02), open, split("B2", per(of(Mg), of(Mg, Fe)),
			when(open, excl(0.3), leaf("Ntr")),
			when(incl(0.3), excl(0.7), unresolved("B2")),
			when(incl(0.7), open, split("B3", per(of(Ca, Na), of(Mg)),
				when(open, excl(0.2), leaf("Tlc")),
				when(incl(0.2), open, leaf("Sap")),
			)),
		)),
	)

	c := split("C", per(of(K), of(K, Na, Ca)),
		when(incl(0.35), open, split("C1", per(of(Mg, Fe), of(Al)),
			when(incl(0.55), open, split("C2", per(of(K), of(Al)),
				when(excl(0.1), open, leaf("Glt")),
				when(open, incl(0.1), unresolved("C2")),
			)),
			when(open, excl(0.55), split("C3", per(of(K), of(Al)),
				when(open, excl(0.15), unresolved("C3")),
				when(incl(0.15), excl(0.6), leaf("Ill")),
				when(incl(0.6), open, leaf("Kfs")),
			)),
		)),
		when(open, excl(0.35), split("C4", per(of(Ca, Na), of(Al)),
			when(open, excl(0.2), split("C5", per(of(Mg, Fe), of(Al)),
				when(open, excl(0.1), leaf("Bei")),
				when(incl(0.1), excl(0.6), leaf("Mnt")),
				when(incl(0.6), open, leaf("Vrm")),
			)),
			when(incl(0.2), excl(1.5), split("C6", per(of(Ca), of(Na)),
				when(open, excl(0.25), leaf("Ab")),
				when(incl(0.25), excl(4), leaf("Pl")),
				when(incl(4), open, unresolved("C6")),
			)),
		)),
	)

	d := split("D", per(of(Mg, Fe), of(Al)),
		when(open, excl(0.2), split("D1", per(of(K, Na, Ca), of(Al)),
			when(open, excl(0.1), leaf("Kln")),
			when(incl(0.1), excl(0.25), unresolved("D1")),
			when(incl(0.25), open, split("D2", per(of(Ca), of(K, Na, Ca)),
				when(incl(0.5), open, leaf("An")),
				when(incl(0.2), excl(0.5), unresolved("D2")),
				when(open, excl(0.2), split("D3", per(of(K), of(K, Na)),
					when(incl(0.5), open, leaf("Ms")),
					when(open, excl(0.5), leaf("Pg")),
				)),
			)),
		)),
		when(incl(0.2), incl(1.0), split("D4", per(of(Mg), of(Mg, Fe)),
			when(incl(0.5), open, leaf("Clc")),
			when(open, excl(0.5), leaf("Cha")),
		)),
	)

	return &tree.Tree{
		ID:       "C",
		Title:    "Hierarchical clay and silicate tree",
		Units:    "atomic percent",
		Elements: []element.Symbol{Na, Mg, Al, Si, K, Ca, Fe},
		Root: split("A", per(of(Al), of(Si)),
			when(open, excl(0.1), b),
			when(incl(0.1), excl(0.7), c),
			when(incl(0.7), open, d),
		),
	}
}

// CNames maps the leaf abbreviations of scheme C to mineral names.
var CNames = map[string]string{
	"Htr": "hectorite",
	"Ntr": "nontronite",
	"Tlc": "talc",
	"Sap": "saponite",
	"Glt": "glauconite",
	"Ill": "illite",
	"Kfs": "K-feldspar",
	"Bei": "beidellite",
	"Mnt": "montmorillonite",
	"Vrm": "vermiculite",
	"Ab":  "albite",
	"Pl":  "plagioclase",
	"Kln": "kaolinite",
	"An":  "anorthite",
	"Ms":  "muscovite",
	"Pg":  "paragonite",
	"Clc": "clinochlore",
	"Cha": "chamosite",
}

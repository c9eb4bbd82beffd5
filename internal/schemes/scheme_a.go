package schemes

import (
	"github.com/edslab/mineraliz/internal/flat"
	"github.com/edslab/mineraliz/internal/ratio"
)

// A returns the 24-class mineral dust scheme. Fractions are taken of the
// sum of the thirteen required elements, so thresholds read as "share of
// total measured signal". Rule order is the scheme's priority order:
// salts and sulfates first, then carbonates, oxides, silica, the
// sheet and framework silicates, and finally silicate mixtures.
func A() *flat.Scheme {
	return &flat.Scheme{
		ID:       "A",
		Title:    "Mineral dust, 24 classes",
		Units:    "net intensity",
		Elements: flatElements(),
		Rules: []flat.Rule{
			rule("Halite-like",
				ge(x(Na, Cl), 0.7),
				in(per(of(Cl), of(Na)), 0.5, 2)),
			rule("Sylvite-like",
				ge(x(K, Cl), 0.7),
				in(per(of(Cl), of(K)), 0.5, 2)),
			rule("Aged-sea-salt-like",
				ge(x(Na), 0.2),
				gt(x(S), 0.02),
				ge(x(Na, Mg, Cl, S), 0.7),
				in(per(of(Na), of(Cl).Plus(ratio.Weighted(2, S))), 0.5, 2)),
			rule("Na-sulfate-like",
				ge(x(Na, S), 0.7),
				in(per(of(Na), of(S)), 1, 3),
				lt(x(Cl), 0.05)),
			rule("Gypsum-like",
				ge(x(Ca, S), 0.7),
				in(per(of(S), of(Ca)), 0.5, 2)),
			rule("Apatite-like",
				ge(x(Ca, P), 0.6),
				in(per(of(P), of(Ca)), 0.3, 1.2)),
			rule("Calcite-like",
				ge(x(Ca), 0.7),
				lt(per(of(Mg), of(Ca)), 0.1),
				lt(x(Si, Al), 0.1),
				lt(x(S), 0.1)),
			rule("Dolomite-like",
				ge(x(Ca, Mg), 0.7),
				in(per(of(Mg), of(Ca)), 0.4, 2.5)),
			rule("Rutile-like",
				ge(x(Ti), 0.7),
				lt(per(of(Ca), of(Ca, Ti)), 0.1),
				lt(per(of(Fe), of(Fe, Ti)), 0.2)),
			rule("Titanite-like",
				ge(x(Ti), 0.2),
				ge(x(Ca), 0.15),
				ge(x(Si), 0.15),
				ge(x(Ti, Ca, Si), 0.7)),
			rule("Ilmenite-like",
				ge(x(Fe, Ti), 0.7),
				in(per(of(Ti), of(Fe, Ti)), 0.3, 0.7)),
			rule("Hematite-like",
				ge(x(Fe), 0.7),
				lt(per(of(Ti), of(Fe, Ti)), 0.1),
				lt(x(Si, Al), 0.15),
				lt(x(S), 0.1)),
			rule("Chromite-like",
				ge(x(Cr), 0.2),
				ge(x(Cr, Fe, Mg, Al), 0.7)),
			rule("Mn-oxide-like",
				ge(x(Mn), 0.6)),
			rule("Quartz-like",
				ge(x(Si), 0.8),
				lt(per(of(Na, Mg, K, Ca), of(Si)), 0.05),
				lt(per(of(Al), of(Si)), 0.05)),
			rule("Kaolinite-like",
				ge(x(Si, Al), 0.7),
				in(per(of(Al), of(Si)), 0.7, 1.3),
				lt(per(of(Na, K, Ca, Mg, Fe), of(Si, Al)), 0.1)),
			rule("Ca-feldspar-like",
				ge(x(Si, Al, Ca, Na), 0.7),
				in(per(of(Al), of(Si)), 0.6, 1.2),
				ge(per(of(Ca), of(Al)), 0.3),
				lt(per(of(Na, K), of(Ca)), 0.5)),
			rule("Na-feldspar-like",
				ge(x(Si, Al, Na, K, Ca), 0.7),
				in(per(of(Al), of(Si)), 0.25, 0.5),
				ge(per(of(Na), of(Al)), 0.5),
				lt(per(of(K), of(Na)), 0.3),
				lt(per(of(Ca), of(Na)), 0.5)),
			rule("K-feldspar-like",
				ge(x(Si, Al, Na, K, Ca), 0.7),
				in(per(of(Al), of(Si)), 0.25, 0.5),
				ge(per(of(K), of(Al)), 0.6),
				lt(per(of(Na), of(K)), 0.5)),
			rule("Illite-like",
				ge(x(Si, Al, K, Mg, Fe), 0.6),
				in(per(of(Al), of(Si)), 0.3, 0.9),
				in(per(of(K), of(Al)), 0.1, 0.6),
				lt(per(of(Mg, Fe), of(Al)), 0.6)),
			rule("Chlorite-like",
				ge(x(Si, Al, Mg, Fe), 0.6),
				in(per(of(Al), of(Si)), 0.3, 1.2),
				ge(per(of(Mg, Fe), of(Si)), 0.5),
				lt(per(of(K), of(Si)), 0.1)),
			rule("Silicate-sulfate-mixture",
				ge(x(Si, Al), 0.3),
				ge(x(S), 0.1)),
			rule("Silicate-chloride-mixture",
				ge(x(Si, Al), 0.3),
				ge(x(Cl), 0.1)),
			rule("Silicate-other",
				ge(x(Si, Al), 0.5)),
		},
	}
}

package schemes

import (
	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/flat"
	"github.com/edslab/mineraliz/internal/ratio"
)

// OtherLabel is the guard of the last two rules of scheme B. No rule in
// the scheme assigns it, so those rules never fire; they are kept as
// published.
const OtherLabel = "other"

// B returns the extended scheme with a finer split of sulfates, oxides and
// silicates. It reads F when present (Quartz-like excludes fluorine-bearing
// particles) but F is not part of the elemental sum.
func B() *flat.Scheme {
	return &flat.Scheme{
		ID:       "B",
		Title:    "Extended mineral scheme, 44 rules",
		Units:    "atomic percent",
		Elements: flatElements(),
		Optional: []element.Symbol{F},
		Rules: []flat.Rule{
			// Salts and sulfates.
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
			rule("Mg-sulfate-like",
				ge(x(Mg, S), 0.7),
				in(per(of(S), of(Mg)), 0.5, 2)),
			rule("K-sulfate-like",
				ge(x(K, S), 0.7),
				in(per(of(K), of(S)), 1, 3)),
			rule("Gypsum-like",
				ge(x(Ca, S), 0.7),
				in(per(of(S), of(Ca)), 0.5, 2)),
			rule("Apatite-like",
				ge(x(Ca, P), 0.6),
				in(per(of(P), of(Ca)), 0.3, 1.2)),

			// Carbonates.
			rule("Calcite-like",
				ge(x(Ca), 0.7),
				lt(per(of(Mg), of(Ca)), 0.1),
				lt(x(Si, Al), 0.1),
				lt(x(S), 0.1)),
			rule("Dolomite-like",
				ge(x(Ca, Mg), 0.7),
				in(per(of(Mg), of(Ca)), 0.4, 2.5)),
			rule("Magnesite-like",
				ge(x(Mg), 0.7),
				lt(per(of(Ca), of(Mg)), 0.1),
				lt(x(Si, Al), 0.1)),

			// Oxides and sulfides.
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
			rule("Pyrite-like",
				ge(x(Fe, S), 0.7),
				in(per(of(S), of(Fe)), 1, 2.5)),
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

			// Silica and framework silicates.
			rule("Quartz-like",
				ge(x(Si), 0.8),
				lt(per(of(Na, Mg, K, Ca), of(Si)), 0.05),
				lt(per(of(Al), of(Si)), 0.05),
				lt(x(F), 0.05)),
			rule("Kaolinite-like",
				ge(x(Si, Al), 0.7),
				in(per(of(Al), of(Si)), 0.7, 1.3),
				lt(per(of(Na, K, Ca, Mg, Fe), of(Si, Al)), 0.1)),
			rule("Anorthite-like",
				ge(x(Si, Al, Ca, Na), 0.7),
				in(per(of(Al), of(Si)), 0.6, 1.2),
				ge(per(of(Ca), of(Al)), 0.3),
				lt(per(of(Na, K), of(Ca)), 0.5)),
			rule("Albite-like",
				ge(x(Si, Al, Na, K, Ca), 0.7),
				in(per(of(Al), of(Si)), 0.25, 0.5),
				ge(per(of(Na), of(Al)), 0.5),
				lt(per(of(K), of(Na)), 0.3),
				lt(per(of(Ca), of(Na)), 0.5)),
			rule("Orthoclase-like",
				ge(x(Si, Al, Na, K, Ca), 0.7),
				in(per(of(Al), of(Si)), 0.25, 0.5),
				ge(per(of(K), of(Al)), 0.6),
				lt(per(of(Na), of(K)), 0.5)),

			// Sheet silicates.
			rule("Muscovite-like",
				ge(x(Si, Al, K), 0.7),
				in(per(of(Al), of(Si)), 0.8, 1.1),
				in(per(of(K), of(Al)), 0.25, 0.45),
				lt(per(of(Mg, Fe), of(Al)), 0.2)),
			rule("Illite-like",
				ge(x(Si, Al, K, Mg, Fe), 0.6),
				in(per(of(Al), of(Si)), 0.3, 0.9),
				in(per(of(K), of(Al)), 0.1, 0.6),
				lt(per(of(Mg, Fe), of(Al)), 0.6)),
			rule("Biotite-like",
				ge(x(Si, Al, K, Mg, Fe), 0.7),
				in(per(of(Al), of(Si)), 0.25, 0.6),
				ge(per(of(K), of(Si)), 0.15),
				ge(per(of(Mg, Fe), of(Si)), 0.5)),
			rule("Chlorite-like",
				ge(x(Si, Al, Mg, Fe), 0.6),
				in(per(of(Al), of(Si)), 0.3, 1.2),
				ge(per(of(Mg, Fe), of(Si)), 0.5),
				lt(per(of(K), of(Si)), 0.1)),
			rule("Smectite-like",
				ge(x(Si, Al, Mg, Fe, Na, Ca), 0.6),
				in(per(of(Al), of(Si)), 0.3, 0.7),
				in(per(of(Na, Ca), of(Al)), 0.05, 0.3),
				lt(per(of(K), of(Al)), 0.1),
				in(per(of(Mg), of(Al)), 0.05, 0.4)),
			rule("Palygorskite-like",
				ge(x(Si, Al, Mg), 0.6),
				in(per(of(Al), of(Si)), 0.15, 0.45),
				in(per(of(Mg), of(Al)), 0.5, 1.5),
				lt(per(of(K), of(Si)), 0.05)),
			rule("Talc-like",
				ge(x(Si, Mg), 0.7),
				in(per(of(Mg), of(Si)), 0.6, 0.9),
				lt(per(of(Al), of(Si)), 0.1),
				lt(per(of(Fe), of(Mg)), 0.2)),
			rule("Serpentine-like",
				ge(x(Si, Mg), 0.7),
				in(per(of(Mg), of(Si)), 1.2, 1.8),
				lt(per(of(Al), of(Si)), 0.1)),

			// Chain and ortho silicates.
			rule("Olivine-like",
				ge(x(Si, Mg, Fe), 0.7),
				in(per(of(Mg, Fe), of(Si)), 1.5, 2.5),
				lt(per(of(Ca), of(Si)), 0.1),
				lt(per(of(Al), of(Si)), 0.1)),
			rule("Pyroxene-like",
				ge(x(Si, Mg, Fe, Ca), 0.7),
				in(per(of(Ca), of(Si)), 0.3, 0.7),
				in(per(of(Mg, Fe), of(Si)), 0.3, 0.8),
				lt(per(of(Al), of(Si)), 0.15)),
			rule("Amphibole-like",
				ge(x(Si, Mg, Fe, Ca, Al, Na), 0.7),
				in(per(of(Ca), of(Si)), 0.15, 0.4),
				in(per(of(Mg, Fe), of(Si)), 0.4, 0.9),
				lt(per(of(Al), of(Si)), 0.3)),
			rule("Wollastonite-like",
				ge(x(Si, Ca), 0.7),
				in(per(of(Ca), of(Si)), 0.8, 1.2),
				lt(x(Mg, Fe), 0.05)),

			// Element-rich silicates and mixtures.
			rule("Fe-rich-silicate",
				ge(x(Si, Al, Fe), 0.6),
				ge(per(of(Fe), of(Si)), 0.5),
				ge(per(of(Al), of(Si)), 0.2)),
			rule("Ca-rich-silicate",
				ge(x(Si, Al, Ca), 0.6),
				ge(per(of(Ca), of(Si)), 0.5)),
			rule("Silicate-sulfate-mixture",
				ge(x(Si, Al), 0.3),
				ge(x(S), 0.1)),
			rule("Silicate-chloride-mixture",
				ge(x(Si, Al), 0.3),
				ge(x(Cl), 0.1)),
			rule("Silicate-other",
				ge(x(Si, Al), 0.5)),

			// Element-rich remainders.
			rule("Ca-rich",
				ge(x(Ca), 0.5)),
			rule("Fe-rich",
				ge(x(Fe), 0.5)),
			guarded("Mg-rich-other", OtherLabel,
				ge(x(Mg), 0.3)),
			guarded("Mg-silicate-other", OtherLabel,
				ge(x(Mg, Si), 0.5),
				ge(per(of(Mg), of(Si)), 0.3)),
		},
	}
}

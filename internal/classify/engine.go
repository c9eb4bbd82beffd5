package classify

import (
	"strings"

	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/flat"
	"github.com/edslab/mineraliz/internal/schemes"
	"github.com/edslab/mineraliz/internal/tree"
)

// Engine is one classification scheme ready to label tables.
type Engine interface {
	ID() string
	Title() string
	// Elements returns the element columns the engine requires.
	Elements() []element.Symbol
	// Classify returns one label per row in input order, or an error
	// for the whole batch.
	Classify(t *element.Table) ([]string, error)
}

// DefaultEngines returns the built-in schemes in ID order: A, B, C.
func DefaultEngines(cfg Config) []Engine {
	return []Engine{
		flat.New(schemes.A(), flat.WithWorkers(cfg.Workers)),
		flat.New(schemes.B(), flat.WithWorkers(cfg.Workers)),
		tree.New(schemes.C()),
	}
}

// IsUnlabeled reports whether label is the flat Unknown sentinel or a
// hierarchical unresolved code.
func IsUnlabeled(label string) bool {
	return label == flat.Unknown || strings.HasPrefix(label, tree.UnresolvedPrefix)
}

package schemes

import (
	"github.com/edslab/mineraliz/internal/flat"
	"github.com/edslab/mineraliz/internal/tree"
)

// Flat returns the built-in flat schemes in ID order.
func Flat() []*flat.Scheme {
	return []*flat.Scheme{A(), B()}
}

// Trees returns the built-in hierarchical schemes in ID order.
func Trees() []*tree.Tree {
	return []*tree.Tree{C()}
}

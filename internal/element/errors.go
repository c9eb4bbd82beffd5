package element

import (
	"fmt"
	"strings"
)

// MissingElementsError indicates that a table lacks columns a scheme requires.
// It is a schema error: classification aborts before any row is processed.
type MissingElementsError struct {
	Missing []Symbol
}

func (e *MissingElementsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, s := range e.Missing {
		names[i] = string(s)
	}
	return fmt.Sprintf("missing required element columns: %s", strings.Join(names, ", "))
}

// TypeError indicates non-tabular or non-numeric input.
// Row and Column are zero-based; -1 means not applicable.
type TypeError struct {
	Row    int
	Column int
	Value  string
	Err    error
}

func (e *TypeError) Error() string {
	switch {
	case e.Row >= 0 && e.Column >= 0:
		return fmt.Sprintf("row %d column %d: invalid value %q: %v", e.Row, e.Column, e.Value, e.Err)
	case e.Row >= 0:
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	case e.Column >= 0:
		return fmt.Sprintf("column %d (%q): %v", e.Column, e.Value, e.Err)
	default:
		return fmt.Sprintf("invalid table: %v", e.Err)
	}
}

func (e *TypeError) Unwrap() error { return e.Err }

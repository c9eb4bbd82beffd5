package classify

import (
	"fmt"
	"strings"
)

// UnknownSchemeError indicates a scheme ID that no registered engine has.
type UnknownSchemeError struct {
	ID    string
	Known []string
}

func (e *UnknownSchemeError) Error() string {
	return fmt.Sprintf("unknown scheme %q (available: %s)", e.ID, strings.Join(e.Known, ", "))
}

// DuplicateSchemeError indicates an engine registered under an ID already in use.
type DuplicateSchemeError struct {
	ID string
}

func (e *DuplicateSchemeError) Error() string {
	return fmt.Sprintf("scheme %q is already registered", e.ID)
}

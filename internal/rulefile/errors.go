package rulefile

import "fmt"

// ValidationError reports a rule document that cannot be turned into a scheme.
type ValidationError struct {
	// Stage is the step that rejected the document: "json", "schema",
	// "version" or "scheme".
	Stage string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid rule file (%s): %v", e.Stage, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

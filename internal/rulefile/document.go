package rulefile

// SupportedMajor is the document major version this package reads.
const SupportedMajor = "v1"

// CurrentVersion is written by Export.
const CurrentVersion = "v1.0.0"

// SumElement names the elemental sum in a term.
const SumElement = "sum"

// Document is the JSON form of a flat scheme.
type Document struct {
	Version  string   `json:"version"`
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Units    string   `json:"units,omitempty"`
	Elements []string `json:"elements"`
	Optional []string `json:"optional,omitempty"`
	Rules    []Rule   `json:"rules"`
}

// Rule is one document rule. An empty guard means Unknown.
type Rule struct {
	Label  string  `json:"label"`
	Guard  string  `json:"guard,omitempty"`
	Checks []Check `json:"checks"`
}

// Check bounds num/den. A missing den means the value is num itself.
// Bounds are inclusive unless marked exclusive.
type Check struct {
	Num          []Term   `json:"num"`
	Den          []Term   `json:"den,omitempty"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	MinExclusive bool     `json:"min_exclusive,omitempty"`
	MaxExclusive bool     `json:"max_exclusive,omitempty"`
}

// Term is a weighted element. An omitted weight reads as 1.
type Term struct {
	Element string  `json:"element"`
	Weight  float64 `json:"weight,omitempty"`
}

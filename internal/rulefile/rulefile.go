// Package rulefile reads and writes flat classification schemes as JSON
// documents, so custom schemes can be used without recompiling.
package rulefile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/flat"
	"github.com/edslab/mineraliz/internal/predicate"
	"github.com/edslab/mineraliz/internal/ratio"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://mineraliz/rulefile.json"

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal(schemaJSON, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// Schema returns the embedded JSON Schema of rule documents.
func Schema() []byte { return schemaJSON }

// Parse decodes, validates and converts a rule document into a scheme.
func Parse(data []byte) (*flat.Scheme, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Stage: "json", Err: err}
	}

	sch, err := compiled()
	if err != nil {
		return nil, fmt.Errorf("compile rule file schema: %w", err)
	}
	if err := sch.Validate(raw); err != nil {
		return nil, &ValidationError{Stage: "schema", Err: err}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Stage: "json", Err: err}
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, &ValidationError{Stage: "version", Err: err}
	}

	s, err := doc.Scheme()
	if err != nil {
		return nil, &ValidationError{Stage: "scheme", Err: err}
	}
	if err := s.Validate(); err != nil {
		return nil, &ValidationError{Stage: "scheme", Err: err}
	}
	return s, nil
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("version %q is not a semantic version", v)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return fmt.Errorf("version %s not supported (want %s.x)", v, SupportedMajor)
	}
	return nil
}

// Scheme converts the document to a flat scheme without validating it.
func (d *Document) Scheme() (*flat.Scheme, error) {
	s := &flat.Scheme{ID: d.ID, Title: d.Title, Units: d.Units}

	var errs []error
	s.Elements = symbols(d.Elements, &errs)
	s.Optional = symbols(d.Optional, &errs)

	s.Rules = make([]flat.Rule, len(d.Rules))
	for i, r := range d.Rules {
		checks := make([]predicate.Check, len(r.Checks))
		for j, c := range r.Checks {
			num, err := linear(c.Num)
			if err != nil {
				errs = append(errs, fmt.Errorf("rule %d (%s) check %d num: %w", i, r.Label, j, err))
			}
			den, err := linear(c.Den)
			if err != nil {
				errs = append(errs, fmt.Errorf("rule %d (%s) check %d den: %w", i, r.Label, j, err))
			}
			checks[j] = predicate.Range(ratio.Over(num, den),
				bound(c.Min, c.MinExclusive), bound(c.Max, c.MaxExclusive))
		}
		s.Rules[i] = flat.Rule{Label: r.Label, Guard: r.Guard, When: predicate.Of(checks...)}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

func symbols(names []string, errs *[]error) []element.Symbol {
	if len(names) == 0 {
		return nil
	}
	out := make([]element.Symbol, 0, len(names))
	for _, n := range names {
		sym, ok := element.Canonical(n)
		if !ok {
			*errs = append(*errs, fmt.Errorf("unknown element %q", n))
			continue
		}
		out = append(out, sym)
	}
	return out
}

func linear(terms []Term) (ratio.Linear, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	out := make(ratio.Linear, len(terms))
	for i, t := range terms {
		w := t.Weight
		if w == 0 {
			w = 1
		}
		if t.Element == SumElement {
			out[i] = ratio.Term{Weight: w}
			continue
		}
		sym, ok := element.Canonical(t.Element)
		if !ok {
			return nil, fmt.Errorf("unknown element %q", t.Element)
		}
		out[i] = ratio.Term{Element: sym, Weight: w}
	}
	return out, nil
}

func bound(v *float64, exclusive bool) predicate.Bound {
	if v == nil {
		return predicate.Unbounded
	}
	if exclusive {
		return predicate.Excl(*v)
	}
	return predicate.Incl(*v)
}

// FromScheme converts a scheme to its document form.
func FromScheme(s *flat.Scheme) *Document {
	d := &Document{
		Version:  CurrentVersion,
		ID:       s.ID,
		Title:    s.Title,
		Units:    s.Units,
		Elements: names(s.Elements),
		Optional: names(s.Optional),
		Rules:    make([]Rule, len(s.Rules)),
	}
	for i, r := range s.Rules {
		checks := make([]Check, len(r.When))
		for j, c := range r.When {
			dc := Check{Num: terms(c.Ratio.Num), Den: terms(c.Ratio.Den)}
			if c.Lo.Set {
				v := c.Lo.Value
				dc.Min, dc.MinExclusive = &v, !c.Lo.Inclusive
			}
			if c.Hi.Set {
				v := c.Hi.Value
				dc.Max, dc.MaxExclusive = &v, !c.Hi.Inclusive
			}
			checks[j] = dc
		}
		d.Rules[i] = Rule{Label: r.Label, Guard: r.Guard, Checks: checks}
	}
	return d
}

func names(syms []element.Symbol) []string {
	if len(syms) == 0 {
		return nil
	}
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = string(s)
	}
	return out
}

func terms(l ratio.Linear) []Term {
	if len(l) == 0 {
		return nil
	}
	out := make([]Term, len(l))
	for i, t := range l {
		el := string(t.Element)
		if t.Element == "" {
			el = SumElement
		}
		w := t.Weight
		if w == 1 {
			w = 0
		}
		out[i] = Term{Element: el, Weight: w}
	}
	return out
}

// Export renders a scheme as an indented rule document. Only schemes that
// pass Validate are exported, so every document Export writes parses back
// to an equal scheme.
func Export(s *flat.Scheme) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, &ValidationError{Stage: "scheme", Err: err}
	}
	out, err := json.MarshalIndent(FromScheme(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal rule file: %w", err)
	}
	return append(out, '\n'), nil
}

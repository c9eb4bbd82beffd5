// Package table reads element tables from delimited text and writes labels
// back out. Element columns are recognised by header; every other column is
// carried through untouched.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/edslab/mineraliz/internal/element"
)

// LabelColumn is the header of the label column in written output.
const LabelColumn = "label"

// Options controls CSV parsing.
type Options struct {
	// Delimiter between fields. Zero means ','.
	Delimiter rune
}

// DelimiterFor picks the delimiter from a file name: tab for .tsv,
// comma otherwise.
func DelimiterFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// Frame is a parsed input file.
type Frame struct {
	Header  []string
	Records [][]string
	// Elements maps each recognised element column to its header index.
	Elements map[element.Symbol]int
	Table    *element.Table
}

// ReadCSV parses a header row plus data rows. Element cells must be numbers;
// anything else is a *element.TypeError carrying the row and column.
func ReadCSV(r io.Reader, opt Options) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	if opt.Delimiter != 0 {
		cr.Comma = opt.Delimiter
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &element.TypeError{Row: -1, Column: -1, Err: errors.New("empty input: no header row")}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	f := &Frame{Header: header, Elements: make(map[element.Symbol]int)}
	var (
		columns []element.Symbol
		indexes []int
	)
	for i, name := range header {
		sym, ok := element.Canonical(name)
		if !ok {
			continue
		}
		if _, dup := f.Elements[sym]; dup {
			return nil, &element.TypeError{Row: -1, Column: i, Value: name,
				Err: fmt.Errorf("duplicate column for element %s", sym)}
		}
		f.Elements[sym] = i
		columns = append(columns, sym)
		indexes = append(indexes, i)
	}

	var rows [][]float64
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) && errors.Is(pe.Err, csv.ErrFieldCount) {
				return nil, &element.TypeError{Row: line, Column: -1, Err: pe.Err}
			}
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		values := make([]float64, len(indexes))
		for j, col := range indexes {
			cell := strings.TrimSpace(rec[col])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &element.TypeError{Row: line, Column: col, Value: rec[col],
					Err: errors.New("not a number")}
			}
			values[j] = v
		}
		f.Records = append(f.Records, rec)
		rows = append(rows, values)
	}

	t, err := element.NewTable(columns, rows)
	if err != nil {
		var te *element.TypeError
		if errors.As(err, &te) && te.Column >= 0 && te.Column < len(indexes) {
			te.Column = indexes[te.Column]
		}
		return nil, err
	}
	f.Table = t
	return f, nil
}

// WriteLabels writes a single label column.
func WriteLabels(w io.Writer, labels []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{LabelColumn}); err != nil {
		return err
	}
	for _, l := range labels {
		if err := cw.Write([]string{l}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAnnotated writes the input columns of f followed by a label column.
func WriteAnnotated(w io.Writer, f *Frame, labels []string, opt Options) error {
	if len(labels) != len(f.Records) {
		return fmt.Errorf("have %d labels for %d rows", len(labels), len(f.Records))
	}
	cw := csv.NewWriter(w)
	if opt.Delimiter != 0 {
		cw.Comma = opt.Delimiter
	}
	if err := cw.Write(append(clone(f.Header), LabelColumn)); err != nil {
		return err
	}
	for i, rec := range f.Records {
		if err := cw.Write(append(clone(rec), labels[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func clone(s []string) []string {
	out := make([]string, len(s), len(s)+1)
	copy(out, s)
	return out
}

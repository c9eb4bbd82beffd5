package element

import (
	"errors"
	"fmt"
	"math"
)

// Table is a validated batch of observations with one column per element.
type Table struct {
	columns []Symbol
	index   map[Symbol]int
	rows    []Vector
}

// NewTable builds a Table from column symbols and row-major values.
// It fails with *TypeError on duplicate columns, ragged rows or
// non-finite values.
func NewTable(columns []Symbol, rows [][]float64) (*Table, error) {
	t := &Table{
		columns: make([]Symbol, len(columns)),
		index:   make(map[Symbol]int, len(columns)),
		rows:    make([]Vector, len(rows)),
	}
	copy(t.columns, columns)

	for i, c := range columns {
		if c == "" {
			return nil, &TypeError{Row: -1, Column: i, Err: errors.New("empty column name")}
		}
		if _, dup := t.index[c]; dup {
			return nil, &TypeError{Row: -1, Column: i, Value: string(c), Err: errors.New("duplicate column")}
		}
		t.index[c] = i
	}

	for r, values := range rows {
		if len(values) != len(columns) {
			return nil, &TypeError{Row: r, Column: -1,
				Err: fmt.Errorf("has %d values, want %d", len(values), len(columns))}
		}
		v := make(Vector, len(columns))
		for c, x := range values {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, &TypeError{Row: r, Column: c, Value: fmt.Sprint(x), Err: errors.New("non-finite number")}
			}
			v[columns[c]] = x
		}
		t.rows[r] = v
	}
	return t, nil
}

// FromVectors builds a Table whose columns are the union of the vectors' keys.
func FromVectors(vectors ...Vector) *Table {
	t := &Table{index: make(map[Symbol]int), rows: make([]Vector, len(vectors))}
	for i, v := range vectors {
		row := make(Vector, len(v))
		for s, x := range v {
			if _, ok := t.index[s]; !ok {
				t.index[s] = len(t.columns)
				t.columns = append(t.columns, s)
			}
			row[s] = x
		}
		t.rows[i] = row
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the column symbols in input order.
func (t *Table) Columns() []Symbol {
	out := make([]Symbol, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether the table carries a column for s.
func (t *Table) Has(s Symbol) bool {
	_, ok := t.index[s]
	return ok
}

// Row returns the i-th observation. The vector must not be modified.
func (t *Table) Row(i int) Vector { return t.rows[i] }

// Rows returns all observations in input order. The vectors must not be modified.
func (t *Table) Rows() []Vector { return t.rows }

// Require checks that every symbol has a column. All missing symbols are
// reported together.
func (t *Table) Require(symbols []Symbol) error {
	if t == nil {
		return &TypeError{Row: -1, Column: -1, Err: errors.New("nil table")}
	}
	var missing []Symbol
	for _, s := range symbols {
		if !t.Has(s) {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		return &MissingElementsError{Missing: missing}
	}
	return nil
}

// Sums returns the elemental sum over symbols for every row.
func (t *Table) Sums(symbols []Symbol) []float64 {
	out := make([]float64, len(t.rows))
	for i, v := range t.rows {
		out[i] = v.Sum(symbols)
	}
	return out
}

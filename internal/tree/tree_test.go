package tree

import (
	"errors"
	"testing"

	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/predicate"
	"github.com/edslab/mineraliz/internal/ratio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	incl = predicate.Incl
	excl = predicate.Excl
	open = predicate.Unbounded
)

func over(num, den element.Symbol) ratio.Ratio {
	return ratio.Over(ratio.Of(num), ratio.Of(den))
}

// testTree has a gap in node "G" for values in [1, 2).
func testTree() *Tree {
	return &Tree{
		ID:       "T",
		Elements: []element.Symbol{element.Si, element.Al, element.Fe},
		Root: Split("R", over(element.Al, element.Si),
			When(open, excl(0.5), Leaf("low")),
			When(incl(0.5), open, Split("G", over(element.Fe, element.Al),
				When(open, excl(1), Leaf("mid")),
				When(incl(2), open, Unresolved("X")),
			)),
		),
	}
}

func TestWalk(t *testing.T) {
	c := New(testTree())
	tests := []struct {
		name  string
		v     element.Vector
		label string
		path  []string
	}{
		{"first level leaf", element.Vector{element.Si: 1, element.Al: 0.2}, "low", []string{"R"}},
		{"second level leaf", element.Vector{element.Si: 1, element.Al: 1, element.Fe: 0.5}, "mid", []string{"R", "G"}},
		{"explicit unresolved", element.Vector{element.Si: 1, element.Al: 1, element.Fe: 3}, "U-X", []string{"R", "G"}},
		{"gap resolves to node code", element.Vector{element.Si: 1, element.Al: 1, element.Fe: 1.5}, "U-G", []string{"R", "G"}},
		{"nan at root", element.Vector{}, "U-R", []string{"R"}},
		{"inf at root", element.Vector{element.Al: 1}, "U-R", []string{"R"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, path := c.Walk(tt.v)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.path, path)
		})
	}
}

func TestClassify(t *testing.T) {
	tbl, err := element.NewTable(
		[]element.Symbol{element.Si, element.Al, element.Fe},
		[][]float64{{1, 0.2, 0}, {1, 1, 0.5}, {0, 0, 0}},
	)
	require.NoError(t, err)
	labels, err := New(testTree()).Classify(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "mid", "U-R"}, labels)
}

func TestClassifyMissingColumn(t *testing.T) {
	tbl := element.FromVectors(element.Vector{element.Si: 1})
	_, err := New(testTree()).Classify(tbl)
	var me *element.MissingElementsError
	require.True(t, errors.As(err, &me))
	assert.ElementsMatch(t, []element.Symbol{element.Al, element.Fe}, me.Missing)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{"low", "mid", "U-R", "U-G", "U-X"}, testTree().Labels())
}

func TestValidate(t *testing.T) {
	require.NoError(t, testTree().Validate())
}

func TestValidateProblems(t *testing.T) {
	shared := Leaf("shared")
	deep := Leaf("deep")
	for i := 0; i < MaxDepth+1; i++ {
		deep = Split("", over(element.Si, element.Al),
			When(open, excl(1), deep),
			When(incl(1), open, Leaf("x")),
		)
	}
	tr := &Tree{
		ID:       "bad",
		Elements: []element.Symbol{element.Si, element.Al},
		Root: Split("R", over(element.Ti, element.Si),
			When(open, excl(1), shared),
			When(incl(1), excl(2), shared),
			When(incl(2), excl(3), Split("R", over(element.Si, element.Al), When(open, open, Leaf("one")))),
			When(incl(3), open, deep),
		),
	}
	err := tr.Validate()
	require.Error(t, err)
	for _, want := range []string{
		`node "shared" is reachable by more than one path`,
		`duplicate node code "R"`,
		`node "R" has 1 branches`,
		`references undeclared element "Ti"`,
		"exceeds maximum depth",
		"has no code",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateNoRoot(t *testing.T) {
	assert.ErrorContains(t, (&Tree{ID: "x"}).Validate(), "tree has no root")
}

func TestTrace(t *testing.T) {
	c := New(testTree())

	label, steps := c.Trace(element.Vector{element.Si: 1, element.Al: 1, element.Fe: 1.5})
	assert.Equal(t, "U-G", label)
	require.Len(t, steps, 2)
	assert.Equal(t, Step{Code: "R", Ratio: "Al/Si", Value: 1, Matched: true}, steps[0])
	assert.Equal(t, Step{Code: "G", Ratio: "Fe/Al", Value: 1.5, Matched: false}, steps[1])

	for _, v := range []element.Vector{
		{element.Si: 1, element.Al: 0.2},
		{element.Si: 1, element.Al: 1, element.Fe: 0.5},
	} {
		want, path := c.Walk(v)
		got, steps := c.Trace(v)
		assert.Equal(t, want, got)
		assert.Len(t, steps, len(path))
	}
}

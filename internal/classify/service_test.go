package classify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/flat"
	"github.com/edslab/mineraliz/internal/metrics"
	"github.com/edslab/mineraliz/internal/predicate"
	"github.com/edslab/mineraliz/internal/ratio"
	"github.com/edslab/mineraliz/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var treeElements = []element.Symbol{
	element.Na, element.Mg, element.Al, element.Si, element.K, element.Ca, element.Fe,
}

func treeTable(t *testing.T, rows ...[]float64) *element.Table {
	t.Helper()
	tbl, err := element.NewTable(treeElements, rows)
	require.NoError(t, err)
	return tbl
}

func TestDefaultEnginesOrder(t *testing.T) {
	s := NewService(DefaultConfig())
	var ids []string
	for _, e := range s.Engines() {
		ids = append(ids, e.ID())
	}
	assert.Equal(t, []string{"A", "B", "C"}, ids)
}

func TestClassifyTreeScheme(t *testing.T) {
	s := NewService(DefaultConfig())
	//                  Na      Mg   Al    Si  K      Ca      Fe
	tbl := treeTable(t,
		[]float64{0, 0.6, 0.05, 1, 0, 0, 0.01},
		[]float64{0.0125, 0.2, 0.5, 1, 0.025, 0.0125, 0.1},
		[]float64{0, 0, 1, 1, 0, 0, 0},
	)
	res, err := s.Classify(context.Background(), "C", tbl)
	require.NoError(t, err)

	assert.Equal(t, []string{"Htr", "U-C2", "Kln"}, res.Labels)
	assert.Equal(t, map[string]int{"Htr": 1, "U-C2": 1, "Kln": 1}, res.Counts)
	assert.Equal(t, 1, res.Unlabeled)
	assert.Equal(t, "C", res.Scheme)
	assert.NotEmpty(t, res.RunID.String())
}

func TestClassifyFlatScheme(t *testing.T) {
	s := NewService(DefaultConfig())
	hematite := element.Vector{}
	pureP := element.Vector{}
	for _, sym := range element.Known() {
		if sym == element.F {
			continue
		}
		hematite[sym] = 0
		pureP[sym] = 0
	}
	hematite[element.Fe] = 0.9
	pureP[element.P] = 1

	res, err := s.Classify(context.Background(), "A", element.FromVectors(hematite, pureP))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hematite-like", flat.Unknown}, res.Labels)
	assert.Equal(t, 1, res.Unlabeled)
}

func TestClassifyMissingElementsNoPartialOutput(t *testing.T) {
	reg := prometheus.NewRegistry()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	s := NewService(DefaultConfig(), WithMetrics(metrics.NewRecorder(reg)), WithLogger(logger))

	tbl := element.FromVectors(element.Vector{element.Si: 1, element.Al: 1})
	res, err := s.Classify(context.Background(), "A", tbl)
	assert.Nil(t, res)

	var me *element.MissingElementsError
	require.True(t, errors.As(err, &me))
	assert.Len(t, me.Missing, 11)
	assert.Contains(t, logs.String(), "batch rejected")
}

func TestClassifyNilTable(t *testing.T) {
	_, err := NewService(DefaultConfig()).Classify(context.Background(), "B", nil)
	var te *element.TypeError
	assert.True(t, errors.As(err, &te))
}

func TestClassifyUnknownScheme(t *testing.T) {
	_, err := NewService(DefaultConfig()).Classify(context.Background(), "Z", treeTable(t))
	var ue *UnknownSchemeError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, []string{"A", "B", "C"}, ue.Known)
	assert.Contains(t, err.Error(), `unknown scheme "Z"`)
}

func TestClassifyDeterministic(t *testing.T) {
	s := NewService(Config{Workers: 2})
	tbl := treeTable(t,
		[]float64{0.2, 0.4, 1.6, 4, 0, 0.05, 0},
		[]float64{1, 0, 1, 3, 0, 0, 0},
		[]float64{0, 0, 0, 0, 0, 0, 0},
	)
	first, err := s.Classify(context.Background(), "C", tbl)
	require.NoError(t, err)
	second, err := s.Classify(context.Background(), "C", tbl)
	require.NoError(t, err)
	assert.Equal(t, first.Labels, second.Labels)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRegisterCustomEngine(t *testing.T) {
	s := NewService(DefaultConfig())
	custom := flat.New(&flat.Scheme{
		ID:       "si",
		Elements: []element.Symbol{element.Si, element.Al},
		Rules: []flat.Rule{{
			Label: "silica",
			When:  predicate.Of(predicate.AtLeast(ratio.Fraction(element.Si), 0.9)),
		}},
	})
	require.NoError(t, s.Register(custom))

	var de *DuplicateSchemeError
	require.True(t, errors.As(s.Register(custom), &de))

	res, err := s.Classify(context.Background(), "si",
		element.FromVectors(element.Vector{element.Si: 1, element.Al: 0}))
	require.NoError(t, err)
	assert.Equal(t, []string{"silica"}, res.Labels)
	assert.Len(t, s.Engines(), 4)
}

func TestIsUnlabeled(t *testing.T) {
	assert.True(t, IsUnlabeled("Unknown"))
	assert.True(t, IsUnlabeled("U-C2"))
	assert.False(t, IsUnlabeled("Kln"))
	assert.False(t, IsUnlabeled("Quartz-like"))
}

type failingRepo struct {
	store.RunRepo
	calls int
}

func (f *failingRepo) Append(context.Context, store.RunEventData) (*store.Run, error) {
	f.calls++
	return nil, errors.New("disk full")
}

func TestRecordingWritesRun(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer st.Close()

	c := WithRecording(NewService(DefaultConfig()), st.RunRepo(), slog.Default())
	ctx := WithSource(context.Background(), "grains.csv")
	res, err := c.Classify(ctx, "C", treeTable(t, []float64{0, 0, 1, 1, 0, 0, 0}))
	require.NoError(t, err)

	run, err := st.RunRepo().Get(ctx, res.RunID.String())
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "C", run.Scheme)
	assert.Equal(t, "grains.csv", run.Source)
	assert.Equal(t, 1, run.Rows)

	labels, err := st.RunRepo().Labels(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []store.LabelCount{{Label: "Kln", Count: 1}}, labels)
}

func TestRecordingFailureDoesNotFailClassification(t *testing.T) {
	var logs bytes.Buffer
	repo := &failingRepo{}
	c := WithRecording(NewService(DefaultConfig()), repo, slog.New(slog.NewTextHandler(&logs, nil)))

	res, err := c.Classify(context.Background(), "C", treeTable(t, []float64{0, 0, 1, 1, 0, 0, 0}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Kln"}, res.Labels)
	assert.Equal(t, 1, repo.calls)
	assert.Contains(t, logs.String(), "failed to record run")
}

func TestRecordingSkipsFailedBatches(t *testing.T) {
	repo := &failingRepo{}
	c := WithRecording(NewService(DefaultConfig()), repo, slog.Default())
	_, err := c.Classify(context.Background(), "C", element.FromVectors(element.Vector{element.Si: 1}))
	require.Error(t, err)
	assert.Zero(t, repo.calls)
}

func TestSourceFromEmpty(t *testing.T) {
	assert.Equal(t, "", SourceFrom(context.Background()))
}

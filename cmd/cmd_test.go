package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and fresh flag values.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

const treeCSV = "grain,Na,Mg,Al,Si,K,Ca,Fe\n" +
	"g1,0,0.6,0.05,1,0,0,0.01\n" +
	"g2,0,0,1,1,0,0,0\n" +
	"g3,0.0125,0.2,0.5,1,0.025,0.0125,0.1\n"

func TestClassifyWritesLabelsAndMetrics(t *testing.T) {
	t.Setenv("MINERALIZ_LOG_LEVEL", "error")
	dir := t.TempDir()
	output := filepath.Join(dir, "labels.csv")
	metricsFile := filepath.Join(dir, "run.prom")

	out, err := execute(t, treeCSV, "classify", "--scheme", "C", "--no-record",
		"--output", output, "--metrics-file", metricsFile)
	require.NoError(t, err, out)

	labels, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "label\nHtr\nKln\nU-C2\n", string(labels))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `mineraliz_rows_classified_total{scheme="C"} 3`)

	assert.Contains(t, out, "Scheme C")
}

func TestClassifyAnnotatedToStdout(t *testing.T) {
	t.Setenv("MINERALIZ_LOG_LEVEL", "error")
	out, err := execute(t, treeCSV, "classify", "-s", "C", "--no-record", "--annotate", "-q")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "grain,Na,Mg,Al,Si,K,Ca,Fe,label\ng1,"), out)
	assert.Contains(t, out, "g2,0,0,1,1,0,0,0,Kln\n")
}

func TestClassifyMissingColumnsFails(t *testing.T) {
	t.Setenv("MINERALIZ_LOG_LEVEL", "error")
	output := filepath.Join(t.TempDir(), "labels.csv")
	_, err := execute(t, treeCSV, "classify", "-s", "A", "--no-record", "-q", "--output", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required element columns")
	assert.NoFileExists(t, output)
}

func TestClassifyRecordsHistory(t *testing.T) {
	t.Setenv("MINERALIZ_LOG_LEVEL", "error")
	db := filepath.Join(t.TempDir(), "history.db")

	_, err := execute(t, treeCSV, "--db", db, "classify", "-s", "C", "-q")
	require.NoError(t, err)

	out, err := execute(t, "", "--db", db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "stdin")
	assert.NotContains(t, out, "No runs recorded.")

	out, err = execute(t, "", "--db", db, "history", "--prune", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Kept the 0 most recent runs.")

	out, err = execute(t, "", "--db", db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestExplainTreeRow(t *testing.T) {
	out, err := execute(t, treeCSV, "explain", "-s", "C", "--row", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "U-C2")
	assert.Contains(t, out, "C2: K/Al = 0.05")
}

func TestExplainRowOutOfRange(t *testing.T) {
	_, err := execute(t, treeCSV, "explain", "-s", "C", "--row", "3")
	assert.ErrorContains(t, err, "out of range")
}

func TestSchemesList(t *testing.T) {
	out, err := execute(t, "", "schemes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "3 schemes")
	assert.Contains(t, out, "tree")
}

func TestSchemesShowTree(t *testing.T) {
	out, err := execute(t, "", "schemes", "show", "c")
	require.NoError(t, err)
	assert.Contains(t, out, "A: Al/Si < 0.1 -> B")
	assert.Contains(t, out, "D3: K/(K+Na) < 0.5 -> Pg (paragonite)")
}

func TestExportedSchemePassesCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.json")
	_, err := execute(t, "", "schemes", "export", "B", "-o", path)
	require.NoError(t, err)

	out, err := execute(t, "", "rules", "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "scheme B ok (44 rules")
}

func TestExportTreeFails(t *testing.T) {
	_, err := execute(t, "", "schemes", "export", "C")
	assert.ErrorContains(t, err, "decision tree")
}

func TestClassifyWithRuleFile(t *testing.T) {
	t.Setenv("MINERALIZ_LOG_LEVEL", "error")
	path := filepath.Join(t.TempDir(), "si.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "version": "v1",
  "id": "silica",
  "elements": ["Si", "Al"],
  "rules": [{"label": "silica", "checks": [{"num": [{"element": "Si"}], "den": [{"element": "sum"}], "min": 0.9}]}]
}`), 0o644))

	out, err := execute(t, "Si,Al\n1,0\n0.5,0.5\n", "classify", "--rules", path, "--no-record", "-q")
	require.NoError(t, err)
	assert.Equal(t, "label\nsilica\nUnknown\n", out)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "mineraliz (devel)\n", out)
}

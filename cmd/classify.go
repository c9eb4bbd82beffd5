package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/edslab/mineraliz/internal/classify"
	"github.com/edslab/mineraliz/internal/metrics"
	"github.com/edslab/mineraliz/internal/store"
	"github.com/edslab/mineraliz/internal/table"
	"github.com/edslab/mineraliz/internal/ui/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Label every row of a CSV table",
	Long: `Read a CSV table with one column per element, classify every row with
the chosen scheme and write one label per row. A batch missing any element
column the scheme requires is rejected as a whole.`,
	Args: cobra.NoArgs,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringP("scheme", "s", "A", "Scheme ID (A, B, C, or the ID of --rules)")
	classifyCmd.Flags().String("rules", "", "JSON rule file with a custom flat scheme")
	classifyCmd.Flags().StringP("input", "i", stdio, "Input CSV (- for stdin)")
	classifyCmd.Flags().StringP("output", "o", stdio, "Output CSV (- for stdout)")
	classifyCmd.Flags().Bool("annotate", false, "Write the input columns plus a label column")
	classifyCmd.Flags().Bool("no-record", false, "Do not record the run in the history database")
	classifyCmd.Flags().String("metrics-file", "", "Write Prometheus metrics for the run to this file")
	classifyCmd.Flags().Int("workers", 0, "Goroutines per rule pass (0 = GOMAXPROCS)")
	classifyCmd.Flags().BoolP("quiet", "q", false, "Do not print the summary")
}

func runClassify(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	schemeID, _ := flags.GetString("scheme")
	rulesPath, _ := flags.GetString("rules")
	input, _ := flags.GetString("input")
	output, _ := flags.GetString("output")
	annotate, _ := flags.GetBool("annotate")
	metricsFile, _ := flags.GetString("metrics-file")
	quiet, _ := flags.GetBool("quiet")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if noRecord, _ := flags.GetBool("no-record"); noRecord {
		cfg.Record = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)

	reg := prometheus.NewRegistry()
	svc := classify.NewService(cfg,
		classify.WithMetrics(metrics.NewRecorder(reg)),
		classify.WithLogger(logger),
	)
	if rulesPath != "" {
		custom, err := loadRules(rulesPath, cfg)
		if err != nil {
			return err
		}
		if err := svc.Register(custom); err != nil {
			return err
		}
		if !flags.Changed("scheme") {
			schemeID = custom.ID()
		}
	}
	engine, err := svc.Engine(schemeID)
	if err != nil {
		return err
	}

	frame, err := readFrame(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	ctx := classify.WithSource(cmd.Context(), sourceName(input))
	var c classify.Classifier = svc
	if cfg.Record {
		if st := openHistory(cmd, logger); st != nil {
			defer st.Close()
			c = classify.WithRecording(svc, st.RunRepo(), logger)
		}
	}

	res, err := c.Classify(ctx, schemeID, frame.Table)
	if err != nil {
		return err
	}

	out, err := openOutput(cmd.OutOrStdout(), output)
	if err != nil {
		return err
	}
	if annotate {
		err = table.WriteAnnotated(out, frame, res.Labels, table.Options{Delimiter: table.DelimiterFor(output)})
	} else {
		err = table.WriteLabels(out, res.Labels)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write labels: %w", err)
	}

	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile, reg); err != nil {
			return err
		}
	}

	if !quiet {
		render(cmd.ErrOrStderr(), func(width int) string {
			return report.Summary(report.Batch{
				Scheme:      res.Scheme,
				Title:       engine.Title(),
				Rows:        len(res.Labels),
				Unlabeled:   res.Unlabeled,
				Counts:      res.Counts,
				Duration:    res.Duration,
				IsUnlabeled: classify.IsUnlabeled,
			}, width)
		})
	}
	return nil
}

// openHistory opens the run history store. Failure only disables recording.
func openHistory(cmd *cobra.Command, logger *slog.Logger) *store.Store {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		logger.Warn("run history unavailable", "error", err)
		return nil
	}
	st, err := store.Open(dbPath)
	if err != nil {
		logger.Warn("run history unavailable", "path", dbPath, "error", err)
		return nil
	}
	return st
}

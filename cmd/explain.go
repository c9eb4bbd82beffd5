package cmd

import (
	"fmt"
	"os"

	"github.com/edslab/mineraliz/internal/classify"
	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/flat"
	"github.com/edslab/mineraliz/internal/schemes"
	"github.com/edslab/mineraliz/internal/tree"
	"github.com/edslab/mineraliz/internal/ui/report"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show why one row received its label",
	Long: `Classify a single row and print the rule that labelled it (flat
schemes) or the path of ratio values through the tree (scheme C).`,
	Args: cobra.NoArgs,
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringP("scheme", "s", "A", "Scheme ID (A, B, C, or the ID of --rules)")
	explainCmd.Flags().String("rules", "", "JSON rule file with a custom flat scheme")
	explainCmd.Flags().StringP("input", "i", stdio, "Input CSV (- for stdin)")
	explainCmd.Flags().Int("row", 0, "Zero-based data row to explain")
}

func runExplain(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	schemeID, _ := flags.GetString("scheme")
	rulesPath, _ := flags.GetString("rules")
	input, _ := flags.GetString("input")
	row, _ := flags.GetInt("row")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc := classify.NewService(cfg, classify.WithLogger(cfg.NewLogger(os.Stderr)))
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
	if err := frame.Table.Require(engine.Elements()); err != nil {
		return err
	}
	if row < 0 || row >= frame.Table.Len() {
		return fmt.Errorf("row %d out of range (input has %d rows)", row, frame.Table.Len())
	}

	label, steps, err := explainRow(engine, frame.Table.Row(row))
	if err != nil {
		return err
	}
	render(cmd.OutOrStdout(), func(width int) string {
		return report.Explanation(fmt.Sprintf("Scheme %s, row %d", schemeID, row), label, steps, width)
	})
	return nil
}

// explainRow labels one vector and describes each decision made on the way.
func explainRow(e classify.Engine, v element.Vector) (string, []report.Step, error) {
	switch c := e.(type) {
	case *flat.Classifier:
		label, steps := explainFlat(c, v)
		return label, steps, nil
	case *tree.Classifier:
		label, trace := c.Trace(v)
		steps := make([]report.Step, len(trace))
		for i, s := range trace {
			steps[i] = report.Step{
				Text:    fmt.Sprintf("%s: %s = %.4g", s.Code, s.Ratio, s.Value),
				Matched: s.Matched,
			}
		}
		if name, ok := schemes.CNames[label]; ok {
			label = fmt.Sprintf("%s (%s)", label, name)
		}
		return label, steps, nil
	default:
		return "", nil, fmt.Errorf("scheme %s cannot be explained", e.ID())
	}
}

func explainFlat(c *flat.Classifier, v element.Vector) (string, []report.Step) {
	m := c.Explain(v)
	if m.Rule == nil {
		return m.Label + " (no rule matched)", nil
	}

	sum := v.Sum(c.Elements())
	steps := make([]report.Step, 0, len(m.Rule.When)+1)
	if m.Rule.Guard != "" {
		steps = append(steps, report.Step{Text: "guard: label was " + m.Rule.Guard, Matched: true})
	}
	for _, chk := range m.Rule.When {
		steps = append(steps, report.Step{
			Text:    fmt.Sprintf("%s  (%.4g)", chk.String(), chk.Ratio.Eval(v, sum)),
			Matched: chk.Holds(v, sum),
		})
	}
	return fmt.Sprintf("%s (rule %d)", m.Label, m.Index+1), steps
}

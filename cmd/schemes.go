package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edslab/mineraliz/internal/classify"
	"github.com/edslab/mineraliz/internal/element"
	"github.com/edslab/mineraliz/internal/flat"
	"github.com/edslab/mineraliz/internal/predicate"
	"github.com/edslab/mineraliz/internal/rulefile"
	"github.com/edslab/mineraliz/internal/schemes"
	"github.com/edslab/mineraliz/internal/tree"
	"github.com/spf13/cobra"
)

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "Browse the built-in classification schemes",
}

var schemesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in schemes",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		engines := classify.DefaultEngines(classify.DefaultConfig())

		// Header.
		fmt.Fprintf(w, "%-4s  %-6s  %7s  %-36s  %s\n", "ID", "Engine", "Classes", "Title", "Units")
		fmt.Fprintln(w, strings.Repeat("─", 90))

		for _, e := range engines {
			kind, classes, units := describe(e)
			fmt.Fprintf(w, "%-4s  %-6s  %7d  %-36s  %s\n", e.ID(), kind, classes, e.Title(), units)
		}

		fmt.Fprintf(w, "\n%d schemes\n", len(engines))
		return nil
	},
}

var schemesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the rules or the tree of a scheme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := builtinEngine(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Scheme %s: %s\n", e.ID(), e.Title())
		fmt.Fprintf(w, "Elements: %s\n\n", joinSymbols(e.Elements()))

		switch c := e.(type) {
		case *flat.Classifier:
			printRules(w, c.Scheme())
		case *tree.Classifier:
			printNode(w, c.Tree().Root, 0)
		}
		return nil
	},
}

var schemesExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a flat scheme as a JSON rule file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := builtinEngine(args[0])
		if err != nil {
			return err
		}
		c, ok := e.(*flat.Classifier)
		if !ok {
			return fmt.Errorf("scheme %s is a decision tree; only flat schemes can be exported", e.ID())
		}
		data, err := rulefile.Export(c.Scheme())
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" || output == stdio {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(output, data, 0o644)
	},
}

func init() {
	schemesExportCmd.Flags().StringP("output", "o", stdio, "Output file (- for stdout)")

	schemesCmd.AddCommand(schemesListCmd)
	schemesCmd.AddCommand(schemesShowCmd)
	schemesCmd.AddCommand(schemesExportCmd)
}

func builtinEngine(id string) (classify.Engine, error) {
	return classify.NewService(classify.DefaultConfig()).Engine(strings.ToUpper(id))
}

func describe(e classify.Engine) (kind string, classes int, units string) {
	switch c := e.(type) {
	case *flat.Classifier:
		return "rules", len(c.Scheme().Labels()), c.Scheme().Units
	case *tree.Classifier:
		return "tree", len(c.Tree().Labels()), c.Tree().Units
	}
	return "custom", 0, ""
}

func joinSymbols(syms []element.Symbol) string {
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = string(s)
	}
	return strings.Join(names, " ")
}

func printRules(w io.Writer, s *flat.Scheme) {
	if len(s.Optional) > 0 {
		fmt.Fprintf(w, "Optional: %s\n\n", joinSymbols(s.Optional))
	}
	for i, r := range s.Rules {
		guard := ""
		if r.Guard != "" {
			guard = fmt.Sprintf(" [if %s]", r.Guard)
		}
		fmt.Fprintf(w, "%3d. %s%s\n", i+1, r.Label, guard)
		for _, c := range r.When {
			fmt.Fprintf(w, "       %s\n", c.String())
		}
	}
}

func printNode(w io.Writer, n *tree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, b := range n.Branches {
		cond := predicate.RangeString(n.Ratio.String(), b.Lo, b.Hi)
		if b.Next.Terminal() {
			if name, ok := schemes.CNames[b.Next.Label]; ok {
				fmt.Fprintf(w, "%s%s: %s -> %s (%s)\n", indent, n.Code, cond, b.Next.Label, name)
				continue
			}
			fmt.Fprintf(w, "%s%s: %s -> %s\n", indent, n.Code, cond, b.Next.Label)
			continue
		}
		fmt.Fprintf(w, "%s%s: %s -> %s\n", indent, n.Code, cond, b.Next.Code)
		printNode(w, b.Next, depth+1)
	}
}

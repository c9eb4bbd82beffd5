package cmd

import (
	"fmt"

	"github.com/edslab/mineraliz/internal/classify"
	"github.com/edslab/mineraliz/internal/rulefile"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Work with custom JSON rule files",
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a rule file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadRules(args[0], classify.DefaultConfig())
		if err != nil {
			return err
		}
		s := c.Scheme()
		fmt.Fprintf(cmd.OutOrStdout(), "%s: scheme %s ok (%d rules, %d labels, elements %s)\n",
			args[0], s.ID, len(s.Rules), len(s.Labels()), joinSymbols(s.Elements))
		return nil
	},
}

var rulesSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of rule files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(rulefile.Schema())
		return err
	},
}

func init() {
	rulesCmd.AddCommand(rulesCheckCmd)
	rulesCmd.AddCommand(rulesSchemaCmd)
}

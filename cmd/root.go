package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/edslab/mineraliz/internal/classify"
	"github.com/edslab/mineraliz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mineraliz",
	Short: "Rule-based mineral classification of EDS data",
	Long: `mineraliz assigns a mineral label to every row of a table of EDS
elemental intensities, using one of the built-in threshold schemes
(A, B: priority-ordered rules; C: hierarchical decision tree) or a
custom rule file.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MINERALIZ_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides MINERALIZ_LOG_LEVEL)")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(schemesCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MINERALIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadConfig reads the environment, then applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (classify.Config, error) {
	cfg, err := classify.ConfigFromEnv()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.ToUpper(lvl))); err != nil {
			return cfg, fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = l
	}
	return cfg, nil
}

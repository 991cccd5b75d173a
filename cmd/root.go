// Package cmd contains all CLI commands for the sheetkit binary.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/sheetkit/cmd/analyze"
	"github.com/klytics/sheetkit/cmd/completion"
	cmdconfig "github.com/klytics/sheetkit/cmd/config"
	"github.com/klytics/sheetkit/cmd/docs"
	"github.com/klytics/sheetkit/cmd/formulas"
	cmdshell "github.com/klytics/sheetkit/cmd/shell"
	"github.com/klytics/sheetkit/cmd/stats"
	cmdstore "github.com/klytics/sheetkit/cmd/store"
	"github.com/klytics/sheetkit/cmd/tables"
	"github.com/klytics/sheetkit/cmd/version"
	cmdwatch "github.com/klytics/sheetkit/cmd/watch"
	"github.com/klytics/sheetkit/internal/output"
)

var (
	jsonOutput bool
	verbose    bool
	modelName  string
	provider   string
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetkit",
		Short: "Structure inference and formula analysis for Excel workbooks",
		Long: `sheetkit — make spreadsheets legible.

Detects declared and implied tables in .xlsx workbooks, rewrites formulas
into readable column-name form, and optionally stores or documents the
results.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
			output.SetVerbose(verbose)
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", defaultModel(), "AI model name override")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", defaultProvider(), "AI provider: anthropic | openai | ollama")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(tables.NewCommand())
	rootCmd.AddCommand(formulas.NewCommand())
	rootCmd.AddCommand(analyze.NewCommand())
	rootCmd.AddCommand(cmdstore.NewCommand())
	rootCmd.AddCommand(docs.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(stats.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func defaultModel() string {
	if m := os.Getenv("SHEETKIT_MODEL"); m != "" {
		return m
	}
	return "claude-sonnet-4-20250514"
}

func defaultProvider() string {
	if p := os.Getenv("SHEETKIT_PROVIDER"); p != "" {
		return p
	}
	return "anthropic"
}

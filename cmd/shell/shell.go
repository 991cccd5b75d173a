// Package shell provides the "sheetkit shell" interactive explorer command.
package shell

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klytics/sheetkit/internal/analyze"
	"github.com/klytics/sheetkit/internal/config"
	shellpkg "github.com/klytics/sheetkit/internal/shell"
	"github.com/klytics/sheetkit/internal/workbook"
)

// NewCommand creates the "shell" command.
func NewCommand() *cobra.Command {
	var (
		evalCmd    string
		sheetName  string
		tuningFile string
	)

	cmd := &cobra.Command{
		Use:   "shell <file.xlsx>",
		Short: "Explore a workbook's detected structure interactively",
		Long: `Analyzes the workbook once, then starts a REPL with tab completion for
querying the detected tables: which table owns a cell, which header names
its column, which formulas a sheet carries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			if tuningFile != "" {
				t, err := config.LoadTuning(tuningFile)
				if err != nil {
					return err
				}
				t.Apply(cfg)
			}

			wb, err := workbook.Load(args[0])
			if err != nil {
				return err
			}

			res := analyze.Run(wb, analyze.OptionsFrom(cfg))

			session, err := shellpkg.NewSession(res, args[0])
			if err != nil {
				return err
			}
			if sheetName != "" {
				session.DefaultSheet = sheetName
			}
			if evalCmd != "" {
				output, err := session.Eval(evalCmd)
				if err != nil {
					return err
				}
				fmt.Print(output)
				return nil
			}
			return session.Run()
		},
	}

	cmd.Flags().StringVar(&evalCmd, "eval", "", "Run a single command and exit")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Default sheet for the session")
	cmd.Flags().StringVar(&tuningFile, "tuning", "", "YAML file overriding detection parameters")
	return cmd
}

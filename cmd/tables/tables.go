// Package tables provides the "sheetkit tables" command.
package tables

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/klytics/sheetkit/internal/analyze"
	"github.com/klytics/sheetkit/internal/config"
	"github.com/klytics/sheetkit/internal/output"
	"github.com/klytics/sheetkit/internal/telemetry"
	"github.com/klytics/sheetkit/internal/workbook"
)

// NewCommand creates the "tables" command.
func NewCommand() *cobra.Command {
	var (
		outFile    string
		tuningFile string
	)

	cmd := &cobra.Command{
		Use:   "tables <file.xlsx>",
		Short: "Detect explicit and implicit tables in a workbook",
		Long: `Scans every sheet of a workbook, registers its declared tables, and
infers undeclared tabular regions from the cell layout. The result is a
per-sheet table report with ranges and header rows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			jsonFlag, _ := cmd.Flags().GetBool("json")

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

			output.Debugf("loading %s", args[0])
			wb, err := workbook.Load(args[0])
			if err != nil {
				return err
			}

			res := analyze.Run(wb, analyze.OptionsFrom(cfg))
			debugSheets(res)

			recordRun("tables", started, res)

			if outFile != "" {
				if err := res.Tables.Write(outFile); err != nil {
					return fmt.Errorf("writing table report: %w", err)
				}
				if !jsonFlag {
					output.Successf("Table report written to %s", outFile)
					printSummary(res)
				}
				return nil
			}

			if jsonFlag {
				return output.PrintJSON("tables", res.Tables)
			}

			printSummary(res)
			w := output.NewWriter(output.FormatJSON)
			return w.WriteJSON(res.Tables)
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write the table report to a file instead of stdout")
	cmd.Flags().StringVar(&tuningFile, "tuning", "", "YAML file overriding detection parameters")

	return cmd
}

func debugSheets(res *analyze.Result) {
	for _, sr := range res.Sheets {
		output.Debugf("sheet %q: %d explicit, %d implicit tables, %d formulas",
			sr.Name, len(sr.Registry.Explicit), len(sr.Registry.Implicit), len(sr.Records))
	}
}

func printSummary(res *analyze.Result) {
	for _, sr := range res.Sheets {
		output.Heading("%s", sr.Name)
		output.Dimf("  %d explicit, %d implicit tables",
			len(sr.Registry.Explicit), len(sr.Registry.Implicit))
	}
}

func recordRun(command string, started time.Time, res *analyze.Result) {
	tables := 0
	for _, sr := range res.Sheets {
		tables += len(sr.Registry.Explicit) + len(sr.Registry.Implicit)
	}
	telemetry.DefaultStore().Record(telemetry.Event{
		Timestamp:  time.Now(),
		Command:    command,
		DurationMs: time.Since(started).Milliseconds(),
		Sheets:     len(res.Sheets),
		Tables:     tables,
		Formulas:   len(res.Formulas),
	})
}

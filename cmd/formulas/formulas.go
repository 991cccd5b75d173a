// Package formulas provides the "sheetkit formulas" command.
package formulas

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/klytics/sheetkit/internal/analyze"
	"github.com/klytics/sheetkit/internal/config"
	"github.com/klytics/sheetkit/internal/output"
	"github.com/klytics/sheetkit/internal/table"
	"github.com/klytics/sheetkit/internal/telemetry"
	"github.com/klytics/sheetkit/internal/workbook"
)

// NewCommand creates the "formulas" command.
func NewCommand() *cobra.Command {
	var (
		outFile     string
		tablesFile  string
		tuningFile  string
		showContext bool
	)

	cmd := &cobra.Command{
		Use:   "formulas <file.xlsx>",
		Short: "Extract and annotate every formula in a workbook",
		Long: `Extracts each formula cell, resolves its cell dependencies, and rewrites
references into readable column-name form using the detected tables.

By default tables are detected on the fly; pass --tables to reuse a report
written by "sheetkit tables" for the range checks instead.`,
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

			opts := analyze.OptionsFrom(cfg)
			if tablesFile != "" {
				// Annotation only needs ranges and headers, both of which
				// the report round-trips.
				rep, err := table.LoadReport(tablesFile)
				if err != nil {
					return fmt.Errorf("reading table report: %w", err)
				}
				opts.Registries = make(map[string]*table.Registry, len(rep))
				for sheet, st := range rep {
					opts.Registries[sheet] = st.Registry(sheet)
				}
				output.Debugf("reusing table report %s (%d sheets)", tablesFile, len(rep))
			}

			output.Debugf("loading %s", args[0])
			wb, err := workbook.Load(args[0])
			if err != nil {
				return err
			}

			res := analyze.Run(wb, opts)
			for _, sr := range res.Sheets {
				output.Debugf("sheet %q: %d formulas annotated", sr.Name, len(sr.Records))
			}

			tables := 0
			for _, sr := range res.Sheets {
				tables += len(sr.Registry.Explicit) + len(sr.Registry.Implicit)
			}
			telemetry.DefaultStore().Record(telemetry.Event{
				Timestamp:  time.Now(),
				Command:    "formulas",
				DurationMs: time.Since(started).Milliseconds(),
				Sheets:     len(res.Sheets),
				Tables:     tables,
				Formulas:   len(res.Formulas),
			})

			if outFile != "" {
				if err := res.Formulas.Write(outFile); err != nil {
					return fmt.Errorf("writing formula report: %w", err)
				}
				if !jsonFlag {
					output.Successf("Formula report written to %s (%d formulas)", outFile, len(res.Formulas))
				}
				return nil
			}

			if jsonFlag {
				return output.PrintJSON("formulas", res.Formulas)
			}

			for _, rec := range res.Formulas {
				output.Heading("%s!%s", rec.Context.Sheet, rec.Cell)
				fmt.Printf("  %s\n", rec.ReadableFormula)
				if len(rec.Dependencies) > 0 {
					output.Dimf("  depends on %v", rec.Dependencies)
				}
				if showContext {
					output.Dimf("  value: %s", rec.Context.Value)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write the formula report to a file instead of stdout")
	cmd.Flags().StringVar(&tablesFile, "tables", "", "Reuse a previously written table report")
	cmd.Flags().StringVar(&tuningFile, "tuning", "", "YAML file overriding detection parameters")
	cmd.Flags().BoolVar(&showContext, "context", false, "Show cached cell values alongside formulas")

	return cmd
}

// Package docs provides the "sheetkit docs" command: AI documentation from
// an existing formula report.
package docs

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klytics/sheetkit/internal/ai"
	"github.com/klytics/sheetkit/internal/docgen"
	"github.com/klytics/sheetkit/internal/formula"
	"github.com/klytics/sheetkit/internal/output"
)

// NewCommand creates the "docs" command.
func NewCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "docs <formulas.json>",
		Short: "Generate plain-text documentation from a formula report",
		Long: `Reads a formula report produced by "sheetkit formulas" or
"sheetkit analyze", groups the formulas into unique patterns per sheet, and
asks the configured AI provider to document each sheet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			providerName, _ := cmd.Flags().GetString("provider")
			model, _ := cmd.Flags().GetString("model")

			rep, err := formula.LoadReport(args[0])
			if err != nil {
				return err
			}
			if len(rep) == 0 {
				return fmt.Errorf("formula report %s contains no formulas", args[0])
			}

			provider, err := ai.NewProvider(providerName, model)
			if err != nil {
				return err
			}

			doc, err := docgen.Generate(cmd.Context(), provider, rep, docgen.Options{
				Source: args[0],
				Model:  model,
			})
			if err != nil {
				return fmt.Errorf("generating documentation: %w", err)
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, []byte(doc), 0644); err != nil {
					return fmt.Errorf("writing documentation: %w", err)
				}
				if jsonFlag {
					return output.PrintJSON("docs", map[string]any{
						"output":   outFile,
						"formulas": len(rep),
					})
				}
				output.Successf("Documentation written to %s", outFile)
				return nil
			}

			fmt.Print(doc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write the documentation to a file instead of stdout")

	return cmd
}

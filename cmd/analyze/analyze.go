// Package analyze provides the "sheetkit analyze" command: the full
// tables + formulas pipeline with optional storage and documentation.
package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/klytics/sheetkit/internal/ai"
	analyzer "github.com/klytics/sheetkit/internal/analyze"
	"github.com/klytics/sheetkit/internal/config"
	"github.com/klytics/sheetkit/internal/docgen"
	"github.com/klytics/sheetkit/internal/output"
	"github.com/klytics/sheetkit/internal/store"
	"github.com/klytics/sheetkit/internal/telemetry"
	"github.com/klytics/sheetkit/internal/workbook"
)

// NewCommand creates the "analyze" command.
func NewCommand() *cobra.Command {
	var (
		outDir     string
		tuningFile string
		toStore    bool
		docsFile   string
	)

	cmd := &cobra.Command{
		Use:   "analyze <file.xlsx>",
		Short: "Run the full analysis pipeline on a workbook",
		Long: `Detects tables, extracts and annotates formulas, and writes both reports
to the output directory. With --store the results are also loaded into
Postgres; with --docs an AI-generated documentation file is produced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			jsonFlag, _ := cmd.Flags().GetBool("json")
			providerName, _ := cmd.Flags().GetString("provider")
			model, _ := cmd.Flags().GetString("model")

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

			filePath := args[0]
			output.Debugf("loading %s", filePath)
			wb, err := workbook.Load(filePath)
			if err != nil {
				return err
			}

			res := analyzer.Run(wb, analyzer.OptionsFrom(cfg))
			for _, sr := range res.Sheets {
				output.Debugf("sheet %q: %d explicit, %d implicit tables, %d formulas",
					sr.Name, len(sr.Registry.Explicit), len(sr.Registry.Implicit), len(sr.Records))
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			stem := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
			tablesPath := filepath.Join(outDir, stem+"_tables.json")
			formulasPath := filepath.Join(outDir, stem+"_formulas.json")

			if err := res.Tables.Write(tablesPath); err != nil {
				return fmt.Errorf("writing table report: %w", err)
			}
			if err := res.Formulas.Write(formulasPath); err != nil {
				return fmt.Errorf("writing formula report: %w", err)
			}

			tables := 0
			for _, sr := range res.Sheets {
				tables += len(sr.Registry.Explicit) + len(sr.Registry.Implicit)
			}
			telemetry.DefaultStore().Record(telemetry.Event{
				Timestamp:  time.Now(),
				Command:    "analyze",
				DurationMs: time.Since(started).Milliseconds(),
				Sheets:     len(res.Sheets),
				Tables:     tables,
				Formulas:   len(res.Formulas),
			})

			if toStore {
				if err := saveToPostgres(cmd.Context(), cfg, filepath.Base(filePath), res, wb); err != nil {
					return err
				}
				if !jsonFlag {
					output.Successf("Results stored in Postgres database %q", cfg.Postgres.Database)
				}
			}

			if docsFile != "" {
				provider, err := ai.NewProvider(providerName, model)
				if err != nil {
					return err
				}
				doc, err := docgen.Generate(cmd.Context(), provider, res.Formulas, docgen.Options{
					Source: filePath,
					Model:  model,
				})
				if err != nil {
					return fmt.Errorf("generating documentation: %w", err)
				}
				if err := os.WriteFile(docsFile, []byte(doc), 0644); err != nil {
					return fmt.Errorf("writing documentation: %w", err)
				}
				if !jsonFlag {
					output.Successf("Documentation written to %s", docsFile)
				}
			}

			if jsonFlag {
				return output.PrintJSON("analyze", map[string]any{
					"tables_report":   tablesPath,
					"formulas_report": formulasPath,
					"sheets":          len(res.Sheets),
					"tables":          tables,
					"formulas":        len(res.Formulas),
				})
			}

			output.Heading("Analysis complete")
			fmt.Printf("  Sheets:   %d\n", len(res.Sheets))
			fmt.Printf("  Tables:   %d\n", tables)
			fmt.Printf("  Formulas: %d\n", len(res.Formulas))
			output.Dimf("  %s", tablesPath)
			output.Dimf("  %s", formulasPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "outputs", "Directory for the report files")
	cmd.Flags().StringVar(&tuningFile, "tuning", "", "YAML file overriding detection parameters")
	cmd.Flags().BoolVar(&toStore, "store", false, "Load the results into Postgres")
	cmd.Flags().StringVar(&docsFile, "docs", "", "Generate AI documentation into this file")

	return cmd
}

func saveToPostgres(ctx context.Context, cfg *config.Config, fileName string, res *analyzer.Result, wb *workbook.Workbook) error {
	// .env can carry the database password so it stays out of config files.
	_ = godotenv.Load()

	st, err := store.Open(ctx, storeConfig(cfg))
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := st.SaveTables(ctx, fileName, res.Tables, wb); err != nil {
		return err
	}
	if err := st.SaveFormulas(ctx, fileName, res.Formulas); err != nil {
		return err
	}
	return st.CreateIndexes(ctx)
}

func storeConfig(cfg *config.Config) store.Config {
	sc := store.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		Database: cfg.Postgres.Database,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		SSLMode:  cfg.Postgres.SSLMode,
	}
	if pw := os.Getenv("SHEETKIT_PG_PASSWORD"); pw != "" {
		sc.Password = pw
	}
	return sc
}

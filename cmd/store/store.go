// Package store provides the "sheetkit store" command for loading report
// JSONs into Postgres.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/klytics/sheetkit/internal/config"
	"github.com/klytics/sheetkit/internal/formula"
	"github.com/klytics/sheetkit/internal/output"
	"github.com/klytics/sheetkit/internal/store"
	"github.com/klytics/sheetkit/internal/table"
	"github.com/klytics/sheetkit/internal/workbook"
)

// NewCommand creates the "store" command.
func NewCommand() *cobra.Command {
	var (
		tablesFile   string
		formulasFile string
		workbookFile string
		fileName     string
	)

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Load existing report JSONs into Postgres",
		Long: `Loads a table report and a formula report produced by earlier runs into
the Postgres analysis database. Connection settings come from the config
file; the password can also come from .env or SHEETKIT_PG_PASSWORD.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			if tablesFile == "" && formulasFile == "" {
				return fmt.Errorf("nothing to load: pass --tables and/or --formulas")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			_ = godotenv.Load()

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

			ctx := cmd.Context()
			st, err := store.Open(ctx, sc)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.EnsureSchema(ctx); err != nil {
				return err
			}

			var wb *workbook.Workbook
			if workbookFile != "" {
				wb, err = workbook.Load(workbookFile)
				if err != nil {
					return err
				}
				fileName = filepath.Base(workbookFile)
			}

			loadedTables := 0
			if tablesFile != "" {
				rep, err := table.LoadReport(tablesFile)
				if err != nil {
					return err
				}
				if err := st.SaveTables(ctx, fileName, rep, wb); err != nil {
					return err
				}
				for _, sheet := range rep {
					loadedTables += len(sheet.ExplicitTables) + len(sheet.ImplicitTables)
				}
			}

			loadedFormulas := 0
			if formulasFile != "" {
				rep, err := formula.LoadReport(formulasFile)
				if err != nil {
					return err
				}
				if err := st.SaveFormulas(ctx, fileName, rep); err != nil {
					return err
				}
				loadedFormulas = len(rep)
			}

			if err := st.CreateIndexes(ctx); err != nil {
				return err
			}

			if jsonFlag {
				return output.PrintJSON("store", map[string]any{
					"tables":   loadedTables,
					"formulas": loadedFormulas,
					"database": cfg.Postgres.Database,
				})
			}

			output.Successf("Loaded %d tables and %d formulas into %q",
				loadedTables, loadedFormulas, cfg.Postgres.Database)
			return nil
		},
	}

	cmd.Flags().StringVar(&tablesFile, "tables", "", "Table report JSON to load")
	cmd.Flags().StringVar(&formulasFile, "formulas", "", "Formula report JSON to load")
	cmd.Flags().StringVar(&workbookFile, "workbook", "", "Original workbook, read to store table row data")
	cmd.Flags().StringVar(&fileName, "source", "workbook.xlsx", "Source file name recorded with the rows")

	return cmd
}

//go:build ignore

// This program generates the sample workbook used by the examples in the
// README. Run with: go run testdata/generate_fixtures.go
package main

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	if err := generateWorkbook(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.xlsx: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Test fixtures generated successfully.")
}

func generateWorkbook() error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Budget"
	f.SetSheetName("Sheet1", sheet)

	// Declared table with headers and formulas
	rows := [][]any{
		{"Item", "Qty", "Price", "Total"},
		{"Paper", 10, 2.5, nil},
		{"Toner", 2, 45.0, nil},
		{"Stapler", 1, 12.0, nil},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	for r := 2; r <= 4; r++ {
		cell, _ := excelize.CoordinatesToCellName(4, r)
		if err := f.SetCellFormula(sheet, cell, fmt.Sprintf("B%d*C%d", r, r)); err != nil {
			return err
		}
	}
	if err := f.AddTable(sheet, &excelize.Table{
		Range: "A1:D4",
		Name:  "Expenses",
	}); err != nil {
		return err
	}

	// Implied table: a detached block below the declared one
	block := [][]any{
		{"Region", "Actual", "Target"},
		{"North", 1200, 1000},
		{"South", 800, 950},
		{"West", 400, 500},
	}
	for i, row := range block {
		cell, _ := excelize.CoordinatesToCellName(1, i+7)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellFormula(sheet, "D8", "B8-C8"); err != nil {
		return err
	}

	// Merged title above the block, resolved to its anchor during analysis
	if err := f.MergeCell(sheet, "A6", "C6"); err != nil {
		return err
	}
	if err := f.SetCellStr(sheet, "A6", "Regional performance"); err != nil {
		return err
	}

	return f.SaveAs("testdata/sample.xlsx")
}

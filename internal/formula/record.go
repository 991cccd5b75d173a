package formula

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/klytics/sheetkit/internal/table"
	"github.com/klytics/sheetkit/internal/workbook"
)

// EmptyValue is the sentinel written to context.value when the formula's
// cached result is blank. The contract uses this string, never JSON null.
const EmptyValue = "empty"

// Context carries the location metadata of a formula cell.
type Context struct {
	Sheet       string `json:"sheet"`
	CellAddress string `json:"cell_address"`
	Value       string `json:"value"`
}

// Record is one formula cell's extraction result. Immutable once built.
type Record struct {
	Cell            string   `json:"cell"`
	Formula         string   `json:"formula"`
	ReadableFormula string   `json:"readable_formula"`
	Dependencies    []string `json:"dependencies"`
	Context         Context  `json:"context"`
}

// Report is the ordered list of formula records for a workbook, in sheet
// order and used-range traversal order within each sheet.
type Report []Record

// ExtractSheet builds a record for every formula cell in the sheet, in
// traversal order. src may be nil, in which case dependencies come from the
// formula text alone.
func ExtractSheet(s *workbook.Snapshot, reg *table.Registry, src Source) []Record {
	records := make([]Record, 0, len(s.Formulas))
	for _, fc := range s.Formulas {
		value := s.Value(fc.Row, fc.Col)
		if value == "" {
			value = EmptyValue
		}
		records = append(records, Record{
			Cell:            fc.Addr,
			Formula:         fc.Expr,
			ReadableFormula: Annotate(fc.Expr, reg),
			Dependencies:    nonNil(Resolve(fc.Expr, s.Name, fc.Addr, src)),
			Context: Context{
				Sheet:       s.Name,
				CellAddress: fc.Addr,
				Value:       value,
			},
		})
	}
	return records
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Write saves the report as indented JSON.
func (r Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode formula report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write formula report: %w", err)
	}
	return nil
}

// LoadReport reads a previously written formula report.
func LoadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read formula report %s: %w", path, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("could not parse formula report %s: %w", path, err)
	}
	return r, nil
}

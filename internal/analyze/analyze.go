// Package analyze runs the full per-sheet pipeline: occupancy grid, island
// segmentation, region splitting, header detection, registry assembly, and
// formula extraction. Sheets are independent of each other; results are keyed
// by sheet name.
package analyze

import (
	"github.com/klytics/sheetkit/internal/formula"
	"github.com/klytics/sheetkit/internal/table"
	"github.com/klytics/sheetkit/internal/workbook"
)

// Options configures an analysis run.
type Options struct {
	Detect table.Config
	// Source optionally supplies externally computed dependency lists.
	Source formula.Source
	// Registries, when set, supplies pre-built table registries keyed by
	// sheet name and skips detection for those sheets.
	Registries map[string]*table.Registry
}

// SheetResult is one sheet's analysis output, kept around for interactive
// queries after the reports are built.
type SheetResult struct {
	Name     string
	Snapshot *workbook.Snapshot
	Registry *table.Registry
	Records  []formula.Record
}

// Result is a whole workbook's analysis.
type Result struct {
	Tables   table.Report
	Formulas formula.Report
	Sheets   []*SheetResult
}

// Run analyzes every sheet of the workbook in order.
func Run(wb *workbook.Workbook, opts Options) *Result {
	if opts.Detect.MinRows == 0 && opts.Detect.MinCols == 0 &&
		opts.Detect.Header.TextRatio == 0 && opts.Detect.Header.NumericRatio == 0 {
		opts.Detect = table.DefaultConfig()
	}

	res := &Result{Tables: make(table.Report, len(wb.Sheets))}
	for _, snap := range wb.Sheets {
		sr := Sheet(snap, opts)
		res.Sheets = append(res.Sheets, sr)
		res.Tables[sr.Name] = table.ReportSheet(sr.Registry)
		res.Formulas = append(res.Formulas, sr.Records...)
	}
	if res.Formulas == nil {
		res.Formulas = formula.Report{}
	}
	return res
}

// Sheet analyzes a single sheet. A sheet with no used rows or columns comes
// back with an empty registry and no records; that is a result, not an error.
func Sheet(snap *workbook.Snapshot, opts Options) *SheetResult {
	reg := opts.Registries[snap.Name]
	if reg == nil {
		reg = table.DetectSheet(snap, opts.Detect)
	}
	return &SheetResult{
		Name:     snap.Name,
		Snapshot: snap,
		Registry: reg,
		Records:  formula.ExtractSheet(snap, reg, opts.Source),
	}
}

// Sheet returns the named sheet's result, or nil.
func (r *Result) Sheet(name string) *SheetResult {
	for _, s := range r.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

package table

import (
	"fmt"

	"github.com/klytics/sheetkit/internal/workbook"
)

// Config controls a detection run over one sheet.
type Config struct {
	MinRows int // minimum implicit region height, default 2
	MinCols int // minimum implicit region width, default 2
	Header  HeaderConfig
}

// DefaultConfig returns the standard detection parameters.
func DefaultConfig() Config {
	return Config{MinRows: DefaultMinRows, MinCols: DefaultMinCols, Header: DefaultHeaderConfig()}
}

// DetectSheet builds the full table registry for a sheet: explicit regions
// read from the worksheet's declared tables, then implicit regions segmented
// out of whatever cells remain. Unnamed tables of either kind draw from a
// single "Table N" counter in encounter order.
func DetectSheet(s *workbook.Snapshot, cfg Config) *Registry {
	reg := &Registry{Sheet: s.Name}
	counter := 1

	var exclude []Range
	for _, t := range s.Tables {
		bounds := Range{R1: t.R1, C1: t.C1, R2: t.R2, C2: t.C2}
		effective := t.Name
		if effective == "" {
			effective = fmt.Sprintf("Table %d", counter)
		}
		reg.Explicit = append(reg.Explicit, Region{
			Name:      t.Name,
			TableName: effective,
			Type:      TypeExplicit,
			Bounds:    bounds,
			Headers:   explicitHeaders(s, t),
			HeaderRow: bounds.R1,
			RowCount:  bounds.R2 - bounds.R1,
		})
		exclude = append(exclude, bounds)
		counter++
	}

	grid := BuildGrid(s, exclude)
	for _, island := range FindIslands(grid, cfg.MinRows, cfg.MinCols) {
		for _, box := range Split(grid, island) {
			matrix := s.Matrix(box.R1, box.C1, box.R2, box.C2)
			headerIdx := DetectHeaderRow(matrix, cfg.Header)
			reg.Implicit = append(reg.Implicit, Region{
				TableName: fmt.Sprintf("Table %d", counter),
				Type:      TypeImplicit,
				Bounds:    box,
				Headers:   SanitizeHeaders(matrix[headerIdx]),
				HeaderRow: box.R1 + headerIdx,
				RowCount:  box.R2 - (box.R1 + headerIdx),
			})
			counter++
		}
	}

	return reg
}

// explicitHeaders derives a declared table's headers: declared column names
// when any survive sanitization, otherwise the literal first row of the range
// with hidden columns skipped.
func explicitHeaders(s *workbook.Snapshot, t workbook.DeclaredTable) []string {
	if len(t.Columns) > 0 {
		if h := SanitizeHeaders(t.Columns); len(h) > 0 {
			return h
		}
	}
	row := make([]string, 0, t.C2-t.C1+1)
	for c := t.C1; c <= t.C2; c++ {
		if s.HiddenCols[c] {
			continue
		}
		row = append(row, s.Value(t.R1, c))
	}
	return SanitizeHeaders(row)
}

// Package workbook loads .xlsx files into in-memory sheet snapshots that the
// analysis packages operate on. A snapshot carries everything table detection
// and formula annotation need: cell values, formulas, merge ranges, hidden
// rows and columns, and worksheet-declared tables.
package workbook

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DeclaredTable is a table the worksheet itself declares (an Excel "ListObject").
type DeclaredTable struct {
	Name    string   `json:"name"`
	Ref     string   `json:"ref"` // e.g. "A1:C5"
	R1      int      `json:"r1"`
	C1      int      `json:"c1"`
	R2      int      `json:"r2"`
	C2      int      `json:"c2"`
	Columns []string `json:"columns,omitempty"` // declared column names, if any
}

// FormulaCell is a single formula-bearing cell, in worksheet traversal order.
type FormulaCell struct {
	Row  int
	Col  int
	Addr string // "B4"
	Expr string // formula with leading "="
}

// MergeRange is a merged cell block. Values live in the top-left anchor.
type MergeRange struct {
	R1, C1, R2, C2 int
}

// Snapshot is one worksheet's materialized state. Immutable after Finalize.
type Snapshot struct {
	Name       string
	Rows       int
	Cols       int
	Values     [][]string // row-major, 0-indexed, rectangular after Finalize
	Merges     []MergeRange
	HiddenRows map[int]bool // 1-based row index
	HiddenCols map[int]bool // 1-based column index
	Tables     []DeclaredTable
	Formulas   []FormulaCell

	mergeIndex mergeIndex
}

// Workbook is a fully loaded .xlsx file.
type Workbook struct {
	Path   string
	Sheets []*Snapshot
}

// Load opens and materializes an .xlsx workbook. Load failure is fatal to the
// whole run: no partial result is returned.
func Load(path string) (*Workbook, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xls" {
		return nil, fmt.Errorf("legacy .xls files are not supported — convert %s to .xlsx first", path)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	defer f.Close()

	wb, err := read(f)
	if err != nil {
		return nil, err
	}
	wb.Path = path
	return wb, nil
}

// LoadBytes materializes a workbook from an in-memory .xlsx byte slice.
func LoadBytes(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not read workbook data: %w", err)
	}
	defer f.Close()

	return read(f)
}

func read(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		snap, err := readSheet(f, name)
		if err != nil {
			return nil, fmt.Errorf("could not read sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, snap)
	}
	return wb, nil
}

func readSheet(f *excelize.File, name string) (*Snapshot, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		Name:       name,
		Values:     rows,
		HiddenRows: make(map[int]bool),
		HiddenCols: make(map[int]bool),
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	s.Rows = len(rows)
	s.Cols = cols

	if err := readMerges(f, name, s); err != nil {
		return nil, err
	}
	if err := readHidden(f, name, s); err != nil {
		return nil, err
	}
	if err := readTables(f, name, s); err != nil {
		return nil, err
	}
	if err := readFormulas(f, name, s); err != nil {
		return nil, err
	}

	s.Finalize()
	return s, nil
}

func readMerges(f *excelize.File, name string, s *Snapshot) error {
	merges, err := f.GetMergeCells(name)
	if err != nil {
		return err
	}
	for _, m := range merges {
		c1, r1, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			continue
		}
		c2, r2, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			continue
		}
		s.Merges = append(s.Merges, MergeRange{R1: r1, C1: c1, R2: r2, C2: c2})
	}
	return nil
}

func readHidden(f *excelize.File, name string, s *Snapshot) error {
	for r := 1; r <= s.Rows; r++ {
		visible, err := f.GetRowVisible(name, r)
		if err == nil && !visible {
			s.HiddenRows[r] = true
		}
	}
	for c := 1; c <= s.Cols; c++ {
		col, err := excelize.ColumnNumberToName(c)
		if err != nil {
			continue
		}
		visible, err := f.GetColVisible(name, col)
		if err == nil && !visible {
			s.HiddenCols[c] = true
		}
	}
	return nil
}

func readTables(f *excelize.File, name string, s *Snapshot) error {
	tables, err := f.GetTables(name)
	if err != nil {
		return err
	}
	for _, t := range tables {
		ref := t.Range
		// Table refs may be sheet-qualified.
		if i := strings.LastIndex(ref, "!"); i >= 0 {
			ref = ref[i+1:]
		}
		r1, c1, r2, c2, err := ParseRef(ref)
		if err != nil {
			continue
		}
		s.Tables = append(s.Tables, DeclaredTable{
			Name: t.Name,
			Ref:  ref,
			R1:   r1, C1: c1, R2: r2, C2: c2,
		})
	}
	return nil
}

func readFormulas(f *excelize.File, name string, s *Snapshot) error {
	for r := 1; r <= s.Rows; r++ {
		for c := 1; c <= s.Cols; c++ {
			addr, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				continue
			}
			expr, err := f.GetCellFormula(name, addr)
			if err != nil || expr == "" {
				continue
			}
			if !strings.HasPrefix(expr, "=") {
				expr = "=" + expr
			}
			s.Formulas = append(s.Formulas, FormulaCell{Row: r, Col: c, Addr: addr, Expr: expr})
		}
	}
	return nil
}

// ParseRef parses an A1-style range reference ("A1:C5" or a single cell "B2")
// into 1-based bounds.
func ParseRef(ref string) (r1, c1, r2, c2 int, err error) {
	ref = strings.ReplaceAll(ref, "$", "")
	parts := strings.SplitN(ref, ":", 2)
	c1, r1, err = excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("bad range %q: %w", ref, err)
	}
	if len(parts) == 1 {
		return r1, c1, r1, c1, nil
	}
	c2, r2, err = excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("bad range %q: %w", ref, err)
	}
	return r1, c1, r2, c2, nil
}

// Finalize pads the value matrix to a rectangle and builds the merge lookup
// index. Snapshots constructed by hand (tests) must call it before use.
func (s *Snapshot) Finalize() {
	if s.Rows == 0 {
		s.Rows = len(s.Values)
	}
	if s.Cols == 0 {
		for _, row := range s.Values {
			if len(row) > s.Cols {
				s.Cols = len(row)
			}
		}
	}
	for i, row := range s.Values {
		if len(row) < s.Cols {
			padded := make([]string, s.Cols)
			copy(padded, row)
			s.Values[i] = padded
		}
	}
	if s.HiddenRows == nil {
		s.HiddenRows = make(map[int]bool)
	}
	if s.HiddenCols == nil {
		s.HiddenCols = make(map[int]bool)
	}
	s.mergeIndex = buildMergeIndex(s.Merges)
}

// RawValue returns the trimmed literal text of a cell without merge
// resolution. Coordinates outside the used extent yield "".
func (s *Snapshot) RawValue(row, col int) string {
	if row < 1 || row > s.Rows || col < 1 || col > s.Cols {
		return ""
	}
	return strings.TrimSpace(s.Values[row-1][col-1])
}

// Value returns the cell's text resolved through merged ranges: a cell covered
// by a merge reports its anchor's value.
func (s *Snapshot) Value(row, col int) string {
	if ar, ac, ok := s.mergeIndex.anchor(row, col); ok {
		return s.RawValue(ar, ac)
	}
	return s.RawValue(row, col)
}

// Matrix returns the merge-resolved cell text for an inclusive 1-based block.
func (s *Snapshot) Matrix(r1, c1, r2, c2 int) [][]string {
	out := make([][]string, 0, r2-r1+1)
	for r := r1; r <= r2; r++ {
		row := make([]string, 0, c2-c1+1)
		for c := c1; c <= c2; c++ {
			row = append(row, s.Value(r, c))
		}
		out = append(out, row)
	}
	return out
}

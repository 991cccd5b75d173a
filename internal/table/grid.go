package table

import "github.com/klytics/sheetkit/internal/workbook"

// Grid is the boolean occupancy map implicit detection runs on. A cell is true
// iff its merge-resolved value is non-empty, its row and column are visible,
// and it is not claimed by an explicit table. Built once per sheet and treated
// as immutable afterwards.
type Grid struct {
	rows, cols int
	cells      []bool
}

// NewGrid allocates an all-false grid. Zero dimensions yield an empty grid.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// At reports the occupancy of the 1-based cell. Out-of-bounds cells are false.
func (g *Grid) At(row, col int) bool {
	if row < 1 || row > g.rows || col < 1 || col > g.cols {
		return false
	}
	return g.cells[(row-1)*g.cols+(col-1)]
}

// Set marks the 1-based cell. Out-of-bounds writes are ignored.
func (g *Grid) Set(row, col int, v bool) {
	if row < 1 || row > g.rows || col < 1 || col > g.cols {
		return
	}
	g.cells[(row-1)*g.cols+(col-1)] = v
}

// BuildGrid builds the occupancy grid for a sheet, excluding the given
// explicit-table ranges. Excluding explicit cells up front is what guarantees
// implicit detection never re-discovers a declared table.
func BuildGrid(s *workbook.Snapshot, exclude []Range) *Grid {
	g := NewGrid(s.Rows, s.Cols)
	for r := 1; r <= s.Rows; r++ {
		if s.HiddenRows[r] {
			continue
		}
		for c := 1; c <= s.Cols; c++ {
			if s.HiddenCols[c] {
				continue
			}
			if insideAny(exclude, r, c) {
				continue
			}
			if s.Value(r, c) != "" {
				g.Set(r, c, true)
			}
		}
	}
	return g
}

func insideAny(ranges []Range, row, col int) bool {
	for _, r := range ranges {
		if r.Contains(row, col) {
			return true
		}
	}
	return false
}

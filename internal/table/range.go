// Package table detects table regions in a worksheet: explicit regions the
// sheet declares itself, and implicit regions inferred from the spatial layout
// of non-empty cells (flood fill, empty-line splitting, header heuristics).
package table

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Range is an inclusive rectangular cell block, 1-based.
type Range struct {
	R1, C1, R2, C2 int
}

// Width returns the number of columns the range spans.
func (r Range) Width() int { return r.C2 - r.C1 + 1 }

// Height returns the number of rows the range spans.
func (r Range) Height() int { return r.R2 - r.R1 + 1 }

// Contains reports whether the 1-based cell lies inside the range.
func (r Range) Contains(row, col int) bool {
	return row >= r.R1 && row <= r.R2 && col >= r.C1 && col <= r.C2
}

// String renders the range in A1 notation, e.g. "A1:C10".
func (r Range) String() string {
	tl, _ := excelize.CoordinatesToCellName(r.C1, r.R1)
	br, _ := excelize.CoordinatesToCellName(r.C2, r.R2)
	return tl + ":" + br
}

// ParseRange parses A1 notation ("A1:C10", or a single cell) into a Range.
func ParseRange(s string) (Range, error) {
	s = strings.ReplaceAll(s, "$", "")
	parts := strings.SplitN(s, ":", 2)
	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("bad range %q: %w", s, err)
	}
	if len(parts) == 1 {
		return Range{R1: r1, C1: c1, R2: r1, C2: c1}, nil
	}
	c2, r2, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return Range{}, fmt.Errorf("bad range %q: %w", s, err)
	}
	return Range{R1: r1, C1: c1, R2: r2, C2: c2}, nil
}

package table

// Default minimum island size. Single cells and one-wide strips are noise far
// more often than they are tables, so anything smaller is dropped.
const (
	DefaultMinRows = 2
	DefaultMinCols = 2
)

// FindIslands locates the bounding box of every 4-connected component of
// occupied cells at least minRows by minCols in extent. The scan is row-major,
// top-to-bottom, left-to-right, so discovery order is reproducible. The flood
// fill is iterative; recursion depth is not bounded by sheet shape.
func FindIslands(g *Grid, minRows, minCols int) []Range {
	if minRows <= 0 {
		minRows = DefaultMinRows
	}
	if minCols <= 0 {
		minCols = DefaultMinCols
	}

	visited := make([]bool, g.Rows()*g.Cols())
	seen := func(r, c int) bool { return visited[(r-1)*g.Cols()+(c-1)] }
	mark := func(r, c int) { visited[(r-1)*g.Cols()+(c-1)] = true }

	var islands []Range
	for r := 1; r <= g.Rows(); r++ {
		for c := 1; c <= g.Cols(); c++ {
			if !g.At(r, c) || seen(r, c) {
				continue
			}
			box := flood(g, r, c, seen, mark)
			if box.Height() >= minRows && box.Width() >= minCols {
				islands = append(islands, box)
			}
		}
	}
	return islands
}

func flood(g *Grid, row, col int, seen func(int, int) bool, mark func(int, int)) Range {
	box := Range{R1: row, C1: col, R2: row, C2: col}
	stack := [][2]int{{row, col}}
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r, c := cell[0], cell[1]
		if !g.At(r, c) || seen(r, c) {
			continue
		}
		mark(r, c)
		if r < box.R1 {
			box.R1 = r
		}
		if r > box.R2 {
			box.R2 = r
		}
		if c < box.C1 {
			box.C1 = c
		}
		if c > box.C2 {
			box.C2 = c
		}
		stack = append(stack, [2]int{r + 1, c}, [2]int{r - 1, c}, [2]int{r, c + 1}, [2]int{r, c - 1})
	}
	return box
}

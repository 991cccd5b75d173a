package table

// Split subdivides an island's bounding box along fully empty rows and columns
// until every resulting region is internally contiguous. A flood-fill bounding
// box is an outer envelope: two tables sharing no rows or columns can still
// land in one box when their extents overlap diagonally.
//
// Each pass tries column splits before row splits; re-queued sub-boxes get the
// same treatment, so the directions alternate until a box has no internal
// empty line in either direction. A work list replaces the naturally mutual
// recursion so pathological sheets with many alternating blank lines cannot
// exhaust the stack.
func Split(g *Grid, box Range) []Range {
	queue := []Range{box}
	var out []Range

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		colRuns := occupiedColumnRuns(g, b)
		if len(colRuns) == 0 {
			continue // fully empty box, nothing to emit
		}
		if !covers(colRuns, b.C1, b.C2) {
			for _, run := range colRuns {
				queue = append(queue, Range{R1: b.R1, C1: run[0], R2: b.R2, C2: run[1]})
			}
			continue
		}

		rowRuns := occupiedRowRuns(g, b)
		if !covers(rowRuns, b.R1, b.R2) {
			for _, run := range rowRuns {
				queue = append(queue, Range{R1: run[0], C1: b.C1, R2: run[1], C2: b.C2})
			}
			continue
		}

		out = append(out, b)
	}
	return out
}

// covers reports whether a single run spans [lo, hi] exactly.
func covers(runs [][2]int, lo, hi int) bool {
	return len(runs) == 1 && runs[0][0] == lo && runs[0][1] == hi
}

// occupiedColumnRuns returns the maximal contiguous runs of columns inside the
// box that contain at least one occupied cell.
func occupiedColumnRuns(g *Grid, b Range) [][2]int {
	var runs [][2]int
	start := 0
	for c := b.C1; c <= b.C2; c++ {
		occupied := false
		for r := b.R1; r <= b.R2; r++ {
			if g.At(r, c) {
				occupied = true
				break
			}
		}
		if occupied {
			if start == 0 {
				start = c
			}
		} else if start != 0 {
			runs = append(runs, [2]int{start, c - 1})
			start = 0
		}
	}
	if start != 0 {
		runs = append(runs, [2]int{start, b.C2})
	}
	return runs
}

// occupiedRowRuns is the row-axis analogue of occupiedColumnRuns.
func occupiedRowRuns(g *Grid, b Range) [][2]int {
	var runs [][2]int
	start := 0
	for r := b.R1; r <= b.R2; r++ {
		occupied := false
		for c := b.C1; c <= b.C2; c++ {
			if g.At(r, c) {
				occupied = true
				break
			}
		}
		if occupied {
			if start == 0 {
				start = r
			}
		} else if start != 0 {
			runs = append(runs, [2]int{start, r - 1})
			start = 0
		}
	}
	if start != 0 {
		runs = append(runs, [2]int{start, b.R2})
	}
	return runs
}

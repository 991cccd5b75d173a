package workbook

import "sort"

// mergeIndex maps (row, col) to a merge anchor in O(log k) per lookup, where k
// is the number of merge spans crossing that row. It is built once per sheet
// so the per-cell cost stays flat no matter how many merges the sheet has.
type mergeIndex map[int][]mergeSpan

type mergeSpan struct {
	c1, c2           int
	anchorR, anchorC int
}

func buildMergeIndex(merges []MergeRange) mergeIndex {
	if len(merges) == 0 {
		return nil
	}
	idx := make(mergeIndex)
	for _, m := range merges {
		for r := m.R1; r <= m.R2; r++ {
			idx[r] = append(idx[r], mergeSpan{c1: m.C1, c2: m.C2, anchorR: m.R1, anchorC: m.C1})
		}
	}
	for r := range idx {
		spans := idx[r]
		sort.Slice(spans, func(i, j int) bool { return spans[i].c1 < spans[j].c1 })
	}
	return idx
}

// anchor reports the merge anchor covering (row, col), if any.
func (idx mergeIndex) anchor(row, col int) (anchorRow, anchorCol int, ok bool) {
	spans := idx[row]
	if len(spans) == 0 {
		return 0, 0, false
	}
	// First span starting after col; the candidate is the one before it.
	i := sort.Search(len(spans), func(i int) bool { return spans[i].c1 > col })
	if i == 0 {
		return 0, 0, false
	}
	sp := spans[i-1]
	if col <= sp.c2 {
		return sp.anchorR, sp.anchorC, true
	}
	return 0, 0, false
}

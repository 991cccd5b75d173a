package store

import "github.com/klytics/sheetkit/internal/workbook"

// DataRows extracts a table region's data rows as header-keyed maps. The
// header row itself is skipped, as are hidden rows and rows with no values
// under any header.
func DataRows(s *workbook.Snapshot, r1, r2, c1 int, headers []string) []map[string]any {
	var rows []map[string]any
	for r := r1 + 1; r <= r2; r++ {
		if s.HiddenRows[r] {
			continue
		}
		row := make(map[string]any, len(headers))
		empty := true
		for k, header := range headers {
			v := s.Value(r, c1+k)
			if v != "" {
				empty = false
				row[header] = v
			} else {
				row[header] = nil
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

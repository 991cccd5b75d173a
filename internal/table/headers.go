package table

import (
	"strings"
	"unicode"
)

// HeaderConfig tunes the header-row heuristic. The defaults are empirical:
// they work well on business spreadsheets but carry no deeper rationale, which
// is why they are parameters and not constants.
type HeaderConfig struct {
	// TextRatio is the minimum fraction of a row's cells that must be
	// text-like for the row to qualify as a header.
	TextRatio float64
	// NumericRatio is the minimum fraction of the following row's cells that
	// must be numeric-like.
	NumericRatio float64
}

// DefaultHeaderConfig returns the standard thresholds.
func DefaultHeaderConfig() HeaderConfig {
	return HeaderConfig{TextRatio: 0.5, NumericRatio: 1.0 / 3.0}
}

func hasAlpha(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// DetectHeaderRow picks the header row of a region given its merge-resolved
// cell matrix. It returns the 0-based row offset within the matrix. A row
// qualifies when enough of its cells look textual and enough of the next
// row's cells look numeric; if no row qualifies the first row is used, so
// every region gets some header assignment.
func DetectHeaderRow(rows [][]string, cfg HeaderConfig) int {
	if cfg.TextRatio <= 0 {
		cfg.TextRatio = 0.5
	}
	if cfg.NumericRatio <= 0 {
		cfg.NumericRatio = 1.0 / 3.0
	}

	for idx := 0; idx < len(rows)-1; idx++ {
		textCount := 0
		for _, cell := range rows[idx] {
			if cell != "" && hasAlpha(cell) {
				textCount++
			}
		}
		numericNext := 0
		for _, cell := range rows[idx+1] {
			if cell != "" && !hasAlpha(cell) {
				numericNext++
			}
		}
		if float64(textCount) >= cfg.TextRatio*float64(len(rows[idx])) &&
			float64(numericNext) >= cfg.NumericRatio*float64(len(rows[idx+1])) {
			return idx
		}
	}
	return 0
}

// SanitizeHeaders filters a candidate header row down to usable names:
// blanks, bracket-prefixed entries, and entries with no alphabetic character
// are structured-reference artifacts rather than real headers.
func SanitizeHeaders(cells []string) []string {
	out := make([]string, 0, len(cells))
	for _, cell := range cells {
		s := strings.TrimSpace(cell)
		if s == "" || strings.HasPrefix(s, "[") || !hasAlpha(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

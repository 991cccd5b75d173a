// Package formula extracts cell references from formula strings, resolves
// them into stable dependency lists, and rewrites formulas into a readable
// form where references are replaced by the table headers they fall under.
package formula

import (
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// refPattern matches A1-style single-cell references, with optional absolute
// markers: $B$2, B2, AA10. Range and 3-D references are handled separately by
// the dependency resolver's range token pattern.
var refPattern = regexp.MustCompile(`\$?[A-Za-z]{1,3}\$?\d+`)

// References returns every cell reference token in the formula, in order of
// appearance, duplicates included.
func References(formula string) []string {
	return refPattern.FindAllString(formula, -1)
}

// Coordinates parses a reference like "$B$2" into its 1-based row and column.
func Coordinates(ref string) (row, col int, err error) {
	col, row, err = excelize.CellNameToCoordinates(strings.ReplaceAll(ref, "$", ""))
	return row, col, err
}

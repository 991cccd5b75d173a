package formula

import (
	"sort"
	"strings"

	"github.com/klytics/sheetkit/internal/table"
)

// Annotate rewrites a formula's cell references into header-qualified names
// using the sheet's table registry: "=C5-B5" becomes "=[Actual]-[Budget]".
// References that resolve to no header are left untouched, as is the original
// string — the result is always a fresh copy.
//
// Substitution runs longest-reference-first so "A1" can never match inside
// "AA10", and each replacement is boundary-checked so references embedded in
// longer alphanumeric tokens are not corrupted.
func Annotate(formula string, reg *table.Registry) string {
	refs := Dedupe(References(formula))
	// Stable sort keeps first-seen order among equal-length refs, which keeps
	// the output reproducible for the same input.
	sort.SliceStable(refs, func(i, j int) bool { return len(refs[i]) > len(refs[j]) })

	annotated := formula
	for _, ref := range refs {
		row, col, err := Coordinates(ref)
		if err != nil {
			continue // unparsable reference: skip it, keep processing the cell
		}
		_, header, ok := reg.FindOwner(row, col)
		if !ok || header == "" {
			continue
		}
		annotated = replaceToken(annotated, ref, "["+header+"]")
	}
	return annotated
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z')
}

// replaceToken substitutes every occurrence of token in s that is not flanked
// by word characters. This is the lookaround-free equivalent of the pattern
// (?<![A-Za-z0-9_])token(?![A-Za-z0-9_]).
func replaceToken(s, token, repl string) string {
	if token == "" {
		return s
	}
	var out []byte
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], token)
		if j < 0 {
			out = append(out, s[i:]...)
			break
		}
		j += i
		boundedBefore := j == 0 || !isWordByte(s[j-1])
		end := j + len(token)
		boundedAfter := end == len(s) || !isWordByte(s[end])
		out = append(out, s[i:j]...)
		if boundedBefore && boundedAfter {
			out = append(out, repl...)
		} else {
			out = append(out, token...)
		}
		i = end
	}
	return string(out)
}

package formula

import "regexp"

// rangeToken extracts the simple range embedded in a qualified dependency
// expression such as "'[model.xlsx]SHEET1'!B2:B10".
var rangeToken = regexp.MustCompile(`[A-Za-z]{1,3}\$?\d+:[A-Za-z]{1,3}\$?\d+`)

// Source supplies externally computed dependency lists, typically from a
// formula-evaluation engine. Implementations return ok=false when they have
// nothing for the cell, in which case the resolver falls back to references
// found in the formula text — a degraded but valid mode, not an error.
type Source interface {
	Dependencies(sheet, cell string) (deps []string, ok bool)
}

// Resolve produces the dependency list for a formula cell: the source's
// entries simplified to their embedded range tokens when a source has them,
// otherwise the formula's own cell references. The result is deduplicated
// preserving first-occurrence order; that order is part of the output
// contract and must be stable across runs.
func Resolve(formula, sheet, cell string, src Source) []string {
	if src != nil {
		if deps, ok := src.Dependencies(sheet, cell); ok {
			simplified := make([]string, 0, len(deps))
			for _, d := range deps {
				if m := rangeToken.FindString(d); m != "" {
					simplified = append(simplified, m)
				} else {
					simplified = append(simplified, d)
				}
			}
			return Dedupe(simplified)
		}
	}
	return Dedupe(References(formula))
}

// Dedupe removes duplicates keeping the first occurrence of each entry.
func Dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

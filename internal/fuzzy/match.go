// Package fuzzy resolves free-text labels against reference rows.
package fuzzy

import "strings"

// Candidate is a reference row that can be matched by name or alias.
type Candidate interface {
	MatchName() string
	MatchAliases() []string
}

// Match returns the first row matching text, trying in order:
//  1. case-insensitive equality with the row name
//  2. text contained in the row name
//  3. any alias containing text, or contained in text
//
// Rows are scanned in the order given, so callers control tie-breaking.
// Blank text never matches.
func Match[T Candidate](text string, rows []T) (T, bool) {
	var zero T
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return zero, false
	}

	for _, row := range rows {
		if strings.ToLower(row.MatchName()) == needle {
			return row, true
		}
	}

	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.MatchName()), needle) {
			return row, true
		}
	}

	for _, row := range rows {
		for _, alias := range row.MatchAliases() {
			a := strings.ToLower(alias)
			if strings.Contains(needle, a) || strings.Contains(a, needle) {
				return row, true
			}
		}
	}

	return zero, false
}

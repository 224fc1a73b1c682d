package engine

import "strings"

// matchSheetName resolves a caller-supplied sheet query against the
// workbook's sheet names: exact match, then case-insensitive, then
// substring, then prefix for one/two-letter queries ("D" matches
// "D. Functional Requirements"). Returns "" when nothing matches.
func matchSheetName(query string, available []string) string {
	q := strings.TrimSpace(query)
	if q == "" {
		return ""
	}

	for _, name := range available {
		if name == q {
			return name
		}
	}
	for _, name := range available {
		if strings.EqualFold(name, q) {
			return name
		}
	}
	for _, name := range available {
		if strings.Contains(strings.ToLower(name), strings.ToLower(q)) {
			return name
		}
	}
	if len(q) <= 2 {
		for _, name := range available {
			if strings.HasPrefix(strings.ToLower(name), strings.ToLower(q)) {
				return name
			}
		}
	}
	return ""
}

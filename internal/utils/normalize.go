package utils

import "strings"

// NormalizeKey folds a value into its comparison form:
// lowercase, outer whitespace trimmed, inner runs of whitespace collapsed to one space.
// It is only used for dedup comparisons, never for display.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeKeyword lowercases and trims a trigger word for table lookups.
func NormalizeKeyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

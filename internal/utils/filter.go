package utils

// SuggestionFilter drops values already seen under a comparison key
type SuggestionFilter struct {
	seen map[string]bool
	key  func(string) string
}

// NewSuggestionFilter creates a filter comparing values through key.
// A nil key compares values as-is.
func NewSuggestionFilter(key func(string) string) *SuggestionFilter {
	if key == nil {
		key = func(s string) string { return s }
	}
	return &SuggestionFilter{
		seen: make(map[string]bool),
		key:  key,
	}
}

// ShouldInclude checks if a value should be included in results (not a duplicate)
// Returns true the first time a key is seen, false afterwards
func (f *SuggestionFilter) ShouldInclude(value string) bool {
	k := f.key(value)
	if f.seen[k] {
		return false
	}
	f.seen[k] = true
	return true
}


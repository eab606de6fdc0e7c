package utils

import (
	"strings"
	"unicode"
)

// CurrentWord extracts the word the cursor sits in, given the text on either side of it
func CurrentWord(before, after string) string {
	b := []rune(before)
	start := len(b)
	for start > 0 && !IsSeparator(b[start-1]) {
		start--
	}

	a := []rune(after)
	end := 0
	for end < len(a) && !IsSeparator(a[end]) {
		end++
	}

	return strings.TrimSpace(string(b[start:]) + string(a[:end]))
}

// LastWord returns the final whitespace separated word of text with
// a single trailing non-alphanumeric rune removed ("love!" -> "love").
func LastWord(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	last := []rune(words[len(words)-1])
	if n := len(last); n > 0 {
		r := last[n-1]
		if r < unicode.MaxASCII && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			last = last[:n-1]
		}
	}
	return string(last)
}


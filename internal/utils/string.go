package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsSeparator checks if a rune ends a word
func IsSeparator(r rune) bool {
	return unicode.IsSpace(r) || IsPunctuation(r)
}

// IsPunctuation reports the ASCII punctuation a keyboard treats as a word boundary
func IsPunctuation(r rune) bool {
	switch r {
	case '.', ',', '!', '?', ';', ':', '"', '\'', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

// ContainsAll reports whether s contains every one of the substrings
func ContainsAll(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// ContainsNumbers checks if a string contains any numeric digits
func ContainsNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsDigitsOrHyphen checks that every rune is a digit or '-'
func IsDigitsOrHyphen(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

// RuneLen counts characters rather than bytes
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// IsBlank reports whether s holds only whitespace
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// LastRunes returns at most n runes from the end of s
func LastRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

// FirstRunes returns at most n runes from the start of s
func FirstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

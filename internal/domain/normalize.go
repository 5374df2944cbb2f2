package domain

import (
	"strings"
	"unicode/utf8"
)

// NormalizeWord prepares a vocabulary surface form for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of whitespace (including tabs and U+3000) into one space
//
// Diacritics, hyphens, apostrophes and non-Latin scripts are preserved.
func NormalizeWord(word string) string {
	fields := strings.Fields(word)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// RuneLen returns the number of characters in s, counting each code point once.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

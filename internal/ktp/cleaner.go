package ktp

import (
	"strings"
	"unicode"
)

// Clean keeps ASCII letters, digits, whitespace and the punctuation
// ". , -", then collapses runs of whitespace into single spaces.
func Clean(text string) string {
	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == ',' || r == '-':
			return r
		case unicode.IsSpace(r):
			return r
		}
		return -1
	}, text)
	return strings.Join(strings.Fields(kept), " ")
}

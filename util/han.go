package util

import (
	"unicode"
)

// IsHan reports whether the rune is a Han character.
func IsHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// HasHan reports whether the string contains at least one Han character.
func HasHan(s string) bool {
	for _, r := range s {
		if IsHan(r) {
			return true
		}
	}
	return false
}

// IsASCII reports whether the rune falls in the 7-bit ASCII range.
// Corpus counting only considers characters outside this range.
func IsASCII(r rune) bool {
	return r < 128
}

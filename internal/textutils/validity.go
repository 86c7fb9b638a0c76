package textutils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minValidRunes     = 2
	maxCapsRun        = 12
	minBase64Token    = 16
	minHexToken       = 8
	minPrintableRatio = 0.7
)

// IsValidTextContent reports whether a recovered fragment plausibly carries
// human-readable text. It is the per-fragment gate of every accumulating
// extraction strategy.
func IsValidTextContent(text string) bool {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minValidRunes {
		return false
	}

	letters, digits, upper, spaces := 0, 0, 0, 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r):
			spaces++
		}
	}

	runes := utf8.RuneCountInString(text)
	if letters == 0 && (digits == 0 || digits+spaces == runes) {
		// symbols only, or digits only
		return false
	}
	if spaces == 0 && letters == upper && letters == runes && letters >= maxCapsRun {
		return false
	}

	for _, token := range strings.Fields(text) {
		if looksBase64(token) || looksHex(token) {
			return false
		}
	}

	return PrintableRatio(text) >= minPrintableRatio
}

func looksBase64(token string) bool {
	if len(token) < minBase64Token {
		return false
	}
	letters, digits := false, false
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			letters = true
		case c >= '0' && c <= '9':
			digits = true
		case c == '+', c == '/', c == '=':
		default:
			return false
		}
	}
	return letters && digits
}

func looksHex(token string) bool {
	if len(token) < minHexToken {
		return false
	}
	letters, digits := false, false
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
			letters = true
		default:
			return false
		}
	}
	return letters && digits
}

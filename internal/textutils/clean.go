package textutils

import (
	"strings"
	"unicode"
)

// CleanText collapses whitespace runs to single spaces, drops
// non-printable runes and trims the result.
func CleanText(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else if unicode.IsPrint(r) && !isGarbageRune(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}

// Truncate shortens s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// PrintableRatio returns the share of runes that are printable ASCII,
// ASCII whitespace or typographic punctuation (dashes, curly quotes,
// bullets). Empty text counts as fully printable. Accented letters are not
// counted, so WinAnsi-decoded binary noise scores well below real prose.
func PrintableRatio(text string) float64 {
	total, printable := 0, 0
	for _, r := range text {
		total++
		if isPrintableText(r) {
			printable++
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(printable) / float64(total)
}

func isPrintableText(r rune) bool {
	switch {
	case r >= 0x20 && r <= 0x7E:
		return true
	case r == '\n' || r == '\r' || r == '\t':
		return true
	case r >= 0x2010 && r <= 0x2027:
		return true
	}
	return false
}

// isGarbageRune reports private-use, replacement and control runes other
// than the usual whitespace.
func isGarbageRune(r rune) bool {
	if r >= 0xE000 && r <= 0xF8FF {
		return true
	}
	if r == unicode.ReplacementChar {
		return true
	}
	if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
		return true
	}
	return r == 0x7F
}

// Package textutils decodes PDF string literals, cleans recovered text and
// scores how much it looks like legal prose.
package textutils

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// DecodePDFString resolves the escape sequences of a PDF literal string body
// (the bytes between the outer parentheses): \n \r \t \b \f \( \) \\, octal
// \ddd and backslash line continuations. Unknown escapes keep the escaped byte.
func DecodePDFString(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			out = append(out, c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case '(', ')', '\\':
			out = append(out, raw[i])
		case '\r':
			// continuation: backslash-CR or backslash-CRLF joins lines
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case '\n':
		default:
			if isOctal(raw[i]) {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && isOctal(raw[i+1]); n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				out = append(out, byte(val))
			} else {
				out = append(out, raw[i])
			}
		}
	}
	return out
}

func isOctal(c byte) bool { return c >= '0' && c <= '7' }

// DecodeHexString decodes the body of a PDF hex string (without the angle
// brackets). Whitespace and stray bytes are ignored, a '>' ends the string
// and an odd final digit is padded with zero.
func DecodeHexString(raw []byte) []byte {
	out := make([]byte, 0, len(raw)/2+1)
	var hi byte
	half := false
	for _, c := range raw {
		if c == '>' {
			break
		}
		v, ok := hexValue(c)
		if !ok {
			continue
		}
		if !half {
			hi = v
			half = true
			continue
		}
		out = append(out, hi<<4|v)
		half = false
	}
	if half {
		out = append(out, hi<<4)
	}
	return out
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

var utf16BOM = []byte{0xFE, 0xFF}

// DecodeTextBytes maps decoded string bytes to text. Strings starting with
// the UTF-16BE byte order mark are decoded as UTF-16, everything else as
// WinAnsi (Windows-1252), the default encoding of simple PDF fonts.
func DecodeTextBytes(b []byte) string {
	if bytes.HasPrefix(b, utf16BOM) {
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		if s, err := dec.Bytes(b); err == nil {
			return string(s)
		}
	}
	s, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return latin1(b)
	}
	return string(s)
}

func latin1(b []byte) string {
	buf := make([]byte, 0, len(b))
	for _, c := range b {
		buf = utf8.AppendRune(buf, rune(c))
	}
	return string(buf)
}

package strategy

import (
	"regexp"
	"strconv"
	"strings"

	"fjacquet/pdftext/internal/textutils"
)

// decodeFunc turns the first capture group of a text-command match into text.
type decodeFunc func(body []byte) string

// textPattern is one entry of the shared text-command table. Matches are
// decoded from capture group 1. Inner patterns, when present, are applied to
// group 1 instead of decoding it directly.
type textPattern struct {
	name     string
	re       *regexp.Regexp
	minLen   int
	minWords int
	decode   decodeFunc
	inner    []textPattern
}

const (
	// literal strings may hold one level of balanced unescaped parentheses
	literalChar = `(?:\\.|[^\\()]|\((?:\\.|[^\\()])*\))`
	literalBody = `\((` + literalChar + `*)\)`
	hexBody     = `<([0-9A-Fa-f\s]*)>`
	arrayBody   = `\[((?:\\.|[^\]\\])*)\]`
	number      = `[-+]?(?:\d+\.?\d*|\.\d+)`
	fontName    = `/[A-Za-z0-9_.+\-]+`

	// kerningGap is the TJ displacement, in thousandths of text space, at or
	// beyond which a word gap is assumed.
	kerningGap = -200
)

// textCommandPatterns is the ordered pattern table shared by the
// text-object and stream strategies.
var textCommandPatterns = []textPattern{
	{
		name:   "text-block",
		re:     regexp.MustCompile(`(?s)BT\b(.*?)\bET\b`),
		minLen: 1,
		inner: []textPattern{
			{name: "block-show", re: regexp.MustCompile(literalBody + `\s*(?:Tj|'|")`), minLen: 1, decode: decodeLiteral},
			{name: "block-array", re: regexp.MustCompile(arrayBody + `\s*TJ`), minLen: 1, decode: decodeArray},
			{name: "block-hex", re: regexp.MustCompile(hexBody + `\s*Tj`), minLen: 1, decode: decodeHex},
		},
	},
	{name: "show-text", re: regexp.MustCompile(literalBody + `\s*Tj`), minLen: 2, decode: decodeLiteral},
	{name: "hex-text", re: regexp.MustCompile(hexBody + `\s*Tj`), minLen: 2, decode: decodeHex},
	{name: "positioned-text", re: regexp.MustCompile(number + `\s+` + number + `\s+T[dD]\s*` + literalBody), minLen: 2, decode: decodeLiteral},
	{name: "font-text", re: regexp.MustCompile(fontName + `\s+` + number + `\s+Tf\s*` + literalBody), minLen: 2, decode: decodeLiteral},
	{name: "array-text", re: regexp.MustCompile(arrayBody + `\s*TJ`), minLen: 2, decode: decodeArray},
	// bare parentheses carry no operator, so only prose is kept from them
	{name: "parenthetical", re: regexp.MustCompile(`\((` + literalChar + `{3,})\)`), minLen: 3, minWords: 2, decode: decodeLiteral},
}

func decodeLiteral(body []byte) string {
	return textutils.DecodeTextBytes(textutils.DecodePDFString(body))
}

func decodeHex(body []byte) string {
	return textutils.DecodeTextBytes(textutils.DecodeHexString(body))
}

// decodeArray joins the strings of a TJ array body. Items are concatenated
// without separators; a displacement of kerningGap or less inserts a space.
func decodeArray(body []byte) string {
	var sb strings.Builder
	for i := 0; i < len(body); {
		switch c := body[i]; {
		case c == '(':
			end := literalEnd(body, i)
			sb.WriteString(decodeLiteral(body[i+1 : end]))
			i = end + 1
		case c == '<':
			end := i + 1
			for end < len(body) && body[end] != '>' {
				end++
			}
			sb.WriteString(decodeHex(body[i+1 : end]))
			i = end + 1
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			end := i + 1
			for end < len(body) && (body[end] == '.' || (body[end] >= '0' && body[end] <= '9')) {
				end++
			}
			if v, err := strconv.ParseFloat(string(body[i:end]), 64); err == nil && v <= kerningGap {
				sb.WriteByte(' ')
			}
			i = end
		default:
			i++
		}
	}
	return sb.String()
}

// literalEnd returns the index of the parenthesis closing the literal that
// opens at body[start], honoring escapes and balanced nesting. An unclosed
// literal runs to the end of body.
func literalEnd(body []byte, start int) int {
	depth := 0
	for i := start; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(body)
}

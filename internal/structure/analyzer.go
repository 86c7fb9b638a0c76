// Package structure computes the structural signals of a PDF byte buffer
// without parsing it: object, stream, text-block, font and page counts plus
// the stream filters it declares.
package structure

import (
	"bytes"
	"context"
	"regexp"

	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
)

const sampleLimit = 200

var (
	fontDictPattern  = regexp.MustCompile(`/Type\s*/Font\b`)
	fontSelPattern   = regexp.MustCompile(`/([A-Za-z0-9_.+\-]+)\s+-?[\d.]+\s+Tf\b`)
	pagePattern      = regexp.MustCompile(`/Type\s*/Page\b`)
	flatePattern     = regexp.MustCompile(`/(?:FlateDecode|Fl)\b`)
	asciiHexPattern  = regexp.MustCompile(`/(?:ASCIIHexDecode|AHx)\b`)
	ascii85Pattern   = regexp.MustCompile(`/(?:ASCII85Decode|A85)\b`)
	textBlockPattern = regexp.MustCompile(`(?s)BT\b.*?\bET\b`)
	streamPattern    = regexp.MustCompile(`(?s)stream\r?\n(.*?)\r?\n?endstream`)
)

// Analyzer scans buffers for structural markers.
type Analyzer struct {
	logger logging.Logger
}

// NewAnalyzer creates an Analyzer. A nil logger uses the package default.
func NewAnalyzer(logger logging.Logger) *Analyzer {
	return &Analyzer{logger: logging.OrDefault(logger)}
}

// Analyze counts the structural markers of data. It works byte-per-character
// and returns whatever it has counted so far once ctx is done.
func (a *Analyzer) Analyze(ctx context.Context, data []byte) *models.StructureAnalysis {
	s := &models.StructureAnalysis{Size: len(data)}
	if len(data) == 0 {
		return s
	}

	steps := []func(){
		func() { s.TotalObjects = countObjects(data) },
		func() { s.TotalStreams = countToken(data, []byte("endstream")) },
		func() { s.TextObjects = countTextBlocks(data) },
		func() { s.Pages = len(pagePattern.FindAllIndex(data, -1)) },
		func() { s.Fonts = countFonts(data) },
		func() {
			s.CompressionTypes = models.CompressionTypes{
				Flate:    flatePattern.Match(data),
				ASCIIHex: asciiHexPattern.Match(data),
				ASCII85:  ascii85Pattern.Match(data),
			}
			s.HasCompression = len(s.CompressionTypes.Names()) > 0
		},
		func() { s.SampleTextObject, s.SampleStream = samples(data) },
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			a.logger.Debug("Structure analysis interrupted",
				logging.Field{Key: logging.FieldReason, Value: err.Error()})
			break
		}
		step()
	}

	a.logger.Debug("Structure analysis complete",
		logging.Field{Key: logging.FieldBytes, Value: s.Size},
		logging.Field{Key: "objects", Value: s.TotalObjects},
		logging.Field{Key: "streams", Value: s.TotalStreams},
		logging.Field{Key: "text_objects", Value: s.TextObjects},
		logging.Field{Key: logging.FieldPages, Value: s.Pages})
	return s
}

// countObjects counts "N G obj" headers. The "endobj" keyword is excluded
// because it is not preceded by whitespace.
func countObjects(data []byte) int {
	count := 0
	tok := []byte("obj")
	for i := 0; ; {
		j := bytes.Index(data[i:], tok)
		if j < 0 {
			return count
		}
		pos := i + j
		if isBoundary(data, pos-1) && isBoundary(data, pos+len(tok)) && precededByRef(data, pos) {
			count++
		}
		i = pos + len(tok)
	}
}

// precededByRef reports whether data[:pos] ends in "<digits> <digits> ".
func precededByRef(data []byte, pos int) bool {
	i := pos - 1
	for groups := 0; groups < 2; groups++ {
		spaces := 0
		for i >= 0 && isWhite(data[i]) {
			i--
			spaces++
		}
		if spaces == 0 {
			return false
		}
		digits := 0
		for i >= 0 && data[i] >= '0' && data[i] <= '9' {
			i--
			digits++
		}
		if digits == 0 {
			return false
		}
	}
	return true
}

// countTextBlocks counts BT operators that start a text object.
func countTextBlocks(data []byte) int {
	return countToken(data, []byte("BT"))
}

// countFonts returns the larger of the /Type /Font dictionary count and the
// number of distinct font resources selected with Tf.
func countFonts(data []byte) int {
	dicts := len(fontDictPattern.FindAllIndex(data, -1))
	names := make(map[string]struct{})
	for _, m := range fontSelPattern.FindAllSubmatch(data, -1) {
		names[string(m[1])] = struct{}{}
	}
	if len(names) > dicts {
		return len(names)
	}
	return dicts
}

func samples(data []byte) (string, string) {
	var text, stream string
	if loc := textBlockPattern.FindIndex(data); loc != nil {
		text = truncate(data[loc[0]:loc[1]])
	}
	if m := streamPattern.FindSubmatch(data); m != nil {
		stream = truncate(m[1])
	}
	return text, stream
}

func truncate(b []byte) string {
	if len(b) > sampleLimit {
		b = b[:sampleLimit]
	}
	return string(b)
}

// countToken counts occurrences of tok delimited by PDF whitespace or
// delimiters on both sides.
func countToken(data, tok []byte) int {
	count := 0
	for i := 0; ; {
		j := bytes.Index(data[i:], tok)
		if j < 0 {
			return count
		}
		pos := i + j
		if isBoundary(data, pos-1) && isBoundary(data, pos+len(tok)) {
			count++
		}
		i = pos + len(tok)
	}
}

// isBoundary reports whether data[i] separates tokens. Positions outside
// the buffer count as boundaries.
func isBoundary(data []byte, i int) bool {
	if i < 0 || i >= len(data) {
		return true
	}
	return isWhite(data[i]) || isDelimiter(data[i])
}

func isWhite(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

package strategy

import (
	"bytes"
	"encoding/ascii85"
	"fmt"
	"regexp"

	"fjacquet/pdftext/internal/extractionerror"
	"fjacquet/pdftext/internal/textutils"
)

const (
	filterASCIIHex = "ASCIIHexDecode"
	filterASCII85  = "ASCII85Decode"
)

// abbreviated filter names allowed in inline images and some producers
var filterAliases = map[string]string{
	"AHx": filterASCIIHex,
	"A85": filterASCII85,
	"Fl":  "FlateDecode",
	"LZW": "LZWDecode",
	"RL":  "RunLengthDecode",
	"CCF": "CCITTFaxDecode",
	"DCT": "DCTDecode",
}

var (
	filterPattern     = regexp.MustCompile(`/Filter\s*(\[[^\]]*\]|/[A-Za-z0-9]+)`)
	filterNamePattern = regexp.MustCompile(`/([A-Za-z0-9]+)`)
)

// streamFilters returns the filter chain declared by a stream dictionary,
// with abbreviations expanded.
func streamFilters(dict []byte) []string {
	m := filterPattern.FindSubmatch(dict)
	if m == nil {
		return nil
	}
	var filters []string
	for _, n := range filterNamePattern.FindAllSubmatch(m[1], -1) {
		name := string(n[1])
		if full, ok := filterAliases[name]; ok {
			name = full
		}
		filters = append(filters, name)
	}
	return filters
}

// decodeStream applies the filter chain to payload. Only the ASCII filters
// are supported; any other filter yields ErrUnsupportedFilter.
func decodeStream(payload []byte, filters []string, offset int) ([]byte, error) {
	data := payload
	for _, f := range filters {
		switch f {
		case filterASCIIHex:
			data = textutils.DecodeHexString(data)
		case filterASCII85:
			decoded, err := decodeASCII85(data)
			if err != nil {
				return nil, &extractionerror.DecodeError{Filter: f, Offset: offset, Err: err}
			}
			data = decoded
		default:
			return nil, &extractionerror.DecodeError{Filter: f, Offset: offset, Err: extractionerror.ErrUnsupportedFilter}
		}
	}
	return data, nil
}

// decodeASCII85 decodes an ASCII base-85 payload, ignoring whitespace and
// the optional <~ ~> delimiters.
func decodeASCII85(src []byte) ([]byte, error) {
	src = bytes.TrimSpace(src)
	src = bytes.TrimPrefix(src, []byte("<~"))
	if i := bytes.Index(src, []byte("~>")); i >= 0 {
		src = src[:i]
	}
	// 'z' expands a single byte to four
	dst := make([]byte, 4*len(src)+4)
	n, _, err := ascii85.Decode(dst, src, true)
	if err != nil {
		return nil, fmt.Errorf("ascii85: %w", err)
	}
	return dst[:n], nil
}

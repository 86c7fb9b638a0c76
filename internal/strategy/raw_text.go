package strategy

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
	"fjacquet/pdftext/internal/textutils"
)

type prosePattern struct {
	name string
	re   *regexp.Regexp
}

const monthNames = `(?:January|February|March|April|May|June|July|August|September|October|November|December)`

// prosePatterns describe the shape of legal prose in an undecoded buffer,
// most specific first.
var prosePatterns = []prosePattern{
	{name: "request-for-production", re: regexp.MustCompile(`(?i)REQUEST\s+FOR\s+PRODUCTION[^\r\n]{0,200}`)},
	{name: "case-number", re: regexp.MustCompile(`(?i)\bCASE\s+NO\b\.?[^\r\n]{0,100}`)},
	{name: "memo-header", re: regexp.MustCompile(`\b(?:TO|FROM|RE):[ \t]*[^\r\n]{1,200}`)},
	{name: "uppercase-run", re: regexp.MustCompile(`\b[A-Z][A-Z ,.'&\-]{10,}[A-Z]\b`)},
	{name: "word-sequence", re: regexp.MustCompile(`\b[A-Za-z][a-z]+(?:[ ,;:'\-]{1,3}[A-Za-z][a-z]*){3,}[.!?]?`)},
	{name: "numeric-date", re: regexp.MustCompile(`\b(?:0?[1-9]|1[0-2])/(?:0?[1-9]|[12]\d|3[01])/(?:19|20)\d{2}\b`)},
	{name: "long-date", re: regexp.MustCompile(`\b` + monthNames + `\s+\d{1,2},\s+(?:19|20)\d{2}\b`)},
	{name: "iso-date", re: regexp.MustCompile(`\b(?:19|20)\d{2}-(?:0[1-9]|1[0-2])-(?:0[1-9]|[12]\d|3[01])\b`)},
	{name: "street-address", re: regexp.MustCompile(`\b\d{1,6}\s+(?:[A-Z][a-z]+\s+){1,4}(?:Street|St\.|Avenue|Ave\.|Road|Rd\.|Boulevard|Blvd\.|Drive|Dr\.|Lane|Ln\.|Way|Place|Plaza)`)},
}

// RawText scans the whole buffer for legal-prose shapes without decoding
// any PDF syntax.
type RawText struct {
	limits Limits
	logger logging.Logger
}

// NewRawText creates the raw-text scanner. Zero limits take defaults.
func NewRawText(limits Limits, logger logging.Logger) *RawText {
	return &RawText{
		limits: limits.withDefaults(),
		logger: logging.OrDefault(logger),
	}
}

// Name returns models.MethodRawTextScan.
func (s *RawText) Name() models.Method { return models.MethodRawTextScan }

// Extract runs each prose pattern over the buffer, drops captures that
// overlap an earlier one and joins the rest in document order.
func (s *RawText) Extract(ctx context.Context, in Input) models.ExtractionResult {
	b := in.budget()
	var taken spanSet
	var found []fragment
	chars := 0

	for _, p := range prosePatterns {
		if chars >= s.limits.RawTextMaxChars || b.Check(ctx) != nil {
			break
		}
		scanMatches(ctx, b, in.Data, p.re, s.limits.RawTextMaxMatches, func(loc []int) bool {
			if taken.overlaps(loc[0], loc[1]) {
				return true
			}
			raw := in.Data[loc[0]:loc[1]]
			decoded := textutils.DecodeTextBytes(raw)
			if !textutils.IsValidTextContent(decoded) {
				return true
			}
			text := textutils.CleanText(decoded)
			taken.add(loc[0], loc[1])
			found = append(found, fragment{offset: loc[0], text: text})
			chars += len(text) + 1
			return chars < s.limits.RawTextMaxChars
		})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].offset < found[j].offset })
	parts := make([]string, len(found))
	for i, f := range found {
		parts[i] = f.text
	}
	text := textutils.Truncate(strings.Join(parts, " "), s.limits.RawTextMaxChars)
	quality := in.scorer().Quality(text)

	s.logger.Debug("Raw text scanned",
		logging.Field{Key: logging.FieldCount, Value: len(found)},
		logging.Field{Key: logging.FieldChars, Value: len(text)},
		logging.Field{Key: logging.FieldQuality, Value: quality})

	return models.ExtractionResult{
		Text:       text,
		Method:     models.MethodRawTextScan,
		Quality:    quality,
		Confidence: confidenceFor(quality, 0.2, 0.7, 0.4),
		PageCount:  in.pageCount(),
	}.Normalize()
}

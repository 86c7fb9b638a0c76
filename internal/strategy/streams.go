package strategy

import (
	"bytes"
	"context"
	"errors"
	"regexp"

	"fjacquet/pdftext/internal/extractionerror"
	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
)

const (
	minStreamPayload = 20
	dictLookBehind   = 64 << 10
	// examined streams, including skipped ones, are capped at this multiple
	// of Limits.MaxStreams
	streamScanFactor = 10
)

var (
	streamStartPattern = regexp.MustCompile(`>>\s*stream(?:\r\n|\r|\n)`)
	skipDictPattern    = regexp.MustCompile(`/Type\s*/(?:XRef|Metadata)\b|/OCProperties\b|/Subtype\s*/(?:Image|Type1C|CIDFontType0C|OpenType)\b|/FontFile\d?\b|/Length[123]\b`)
	endstreamKeyword   = []byte("endstream")
	objKeyword         = []byte("obj")
	dictOpen           = []byte("<<")
)

// Streams recovers text from stream payloads that are stored raw or with
// the ASCII filters. Flate-compressed streams are counted and skipped.
type Streams struct {
	limits Limits
	logger logging.Logger
}

// NewStreams creates the stream strategy. Zero limits take defaults.
func NewStreams(limits Limits, logger logging.Logger) *Streams {
	return &Streams{
		limits: limits.withDefaults(),
		logger: logging.OrDefault(logger),
	}
}

// Name returns models.MethodStreams.
func (s *Streams) Name() models.Method { return models.MethodStreams }

type streamStats struct {
	processed, skipped, unreadable int
}

// Extract decodes each eligible stream and re-parses it with the shared
// pattern table.
func (s *Streams) Extract(ctx context.Context, in Input) models.ExtractionResult {
	b := in.budget()
	c := newCollector(s.limits)
	var stats streamStats
	resume := 0

	scanMatches(ctx, b, in.Data, streamStartPattern, s.limits.MaxStreams*streamScanFactor, func(loc []int) bool {
		if loc[0] < resume {
			// marker inside a payload already handled
			return true
		}
		dict := streamDict(in.Data, loc[0]+2)
		payload, next := streamPayload(in.Data, loc[1])
		resume = next

		if len(payload) < minStreamPayload || skipDictPattern.Match(dict) {
			stats.skipped++
			return true
		}

		decoded, err := decodeStream(payload, streamFilters(dict), loc[1])
		if err != nil {
			stats.unreadable++
			if !errors.Is(err, extractionerror.ErrUnsupportedFilter) {
				s.logger.WithError(err).Debug("Stream decode failed")
			}
			return true
		}

		stats.processed++
		c.collect(ctx, b, decoded, textCommandPatterns)
		return stats.processed < s.limits.MaxStreams && !c.full() && b.Check(ctx) == nil
	})

	text := c.text()
	quality := in.scorer().Quality(text)

	s.logger.Debug("Streams scanned",
		logging.Field{Key: "processed", Value: stats.processed},
		logging.Field{Key: "skipped", Value: stats.skipped},
		logging.Field{Key: "unreadable", Value: stats.unreadable},
		logging.Field{Key: logging.FieldChars, Value: len(text)},
		logging.Field{Key: logging.FieldQuality, Value: quality})

	return models.ExtractionResult{
		Text:       text,
		Method:     models.MethodStreams,
		Quality:    quality,
		Confidence: confidenceFor(quality, 0.3, 0.8, 0.5),
		PageCount:  in.pageCount(),
	}.Normalize()
}

// streamDict returns the dictionary that ends at data[end-1], taken from the
// closest preceding "obj" keyword or, failing that, the closest "<<".
func streamDict(data []byte, end int) []byte {
	lo := end - dictLookBehind
	if lo < 0 {
		lo = 0
	}
	window := data[lo:end]
	if i := bytes.LastIndex(window, objKeyword); i >= 0 {
		return window[i+len(objKeyword):]
	}
	if i := bytes.LastIndex(window, dictOpen); i >= 0 {
		return window[i:]
	}
	return window
}

// streamPayload returns the bytes between start and the next endstream
// keyword, without the end-of-line marker preceding it, and the offset
// just past the keyword. A missing keyword extends the payload to the end.
func streamPayload(data []byte, start int) ([]byte, int) {
	i := bytes.Index(data[start:], endstreamKeyword)
	if i < 0 {
		return data[start:], len(data)
	}
	payload := data[start : start+i]
	payload = bytes.TrimSuffix(payload, []byte("\n"))
	payload = bytes.TrimSuffix(payload, []byte("\r"))
	return payload, start + i + len(endstreamKeyword)
}

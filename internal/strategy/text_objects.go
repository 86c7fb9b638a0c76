package strategy

import (
	"context"

	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
)

// TextObjects recovers text from uncompressed text-showing operators found
// anywhere in the buffer.
type TextObjects struct {
	limits Limits
	logger logging.Logger
}

// NewTextObjects creates the text-object strategy. Zero limits take defaults.
func NewTextObjects(limits Limits, logger logging.Logger) *TextObjects {
	return &TextObjects{
		limits: limits.withDefaults(),
		logger: logging.OrDefault(logger),
	}
}

// Name returns models.MethodTextObjects.
func (s *TextObjects) Name() models.Method { return models.MethodTextObjects }

// Extract applies the shared pattern table to the raw buffer under a child
// budget of its own.
func (s *TextObjects) Extract(ctx context.Context, in Input) models.ExtractionResult {
	b := in.budget().Sub(s.limits.TextObjectsBudget)
	c := newCollector(s.limits)
	c.collect(ctx, b, in.Data, textCommandPatterns)

	text := c.text()
	quality := in.scorer().Quality(text)

	s.logger.Debug("Text objects scanned",
		logging.Field{Key: logging.FieldCount, Value: len(c.fragments)},
		logging.Field{Key: "matches", Value: c.examined},
		logging.Field{Key: logging.FieldChars, Value: len(text)},
		logging.Field{Key: logging.FieldQuality, Value: quality})

	return models.ExtractionResult{
		Text:       text,
		Method:     models.MethodTextObjects,
		Quality:    quality,
		Confidence: confidenceFor(quality, 0.3, 0.8, 0.4),
		PageCount:  in.pageCount(),
	}.Normalize()
}

package strategy

import (
	"context"
	"strings"

	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
)

const (
	minCharRun     = 4
	charPollEvery  = 4 << 10
	richOutputSize = 100
)

// CharacterCodes keeps runs of printable ASCII from the head of the buffer.
// It is the last resort before the summary fallback.
type CharacterCodes struct {
	limits Limits
	logger logging.Logger
}

// NewCharacterCodes creates the character-code strategy. Zero limits take defaults.
func NewCharacterCodes(limits Limits, logger logging.Logger) *CharacterCodes {
	return &CharacterCodes{
		limits: limits.withDefaults(),
		logger: logging.OrDefault(logger),
	}
}

// Name returns models.MethodCharacterCodes.
func (s *CharacterCodes) Name() models.Method { return models.MethodCharacterCodes }

// Extract walks at most CharCodesScanBytes bytes, joining printable runs of
// four or more bytes with single spaces.
func (s *CharacterCodes) Extract(ctx context.Context, in Input) models.ExtractionResult {
	b := in.budget().Sub(s.limits.CharCodesBudget)
	data := in.Data
	if len(data) > s.limits.CharCodesScanBytes {
		data = data[:s.limits.CharCodesScanBytes]
	}

	var sb strings.Builder
	runStart := -1
	flush := func(end int) {
		if runStart >= 0 && end-runStart >= minCharRun {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.Write(data[runStart:end])
		}
		runStart = -1
	}

	i := 0
	for ; i < len(data) && sb.Len() < s.limits.CharCodesMaxChars; i++ {
		if i%charPollEvery == 0 && i > 0 && b.Check(ctx) != nil {
			break
		}
		if c := data[i]; c >= 0x20 && c <= 0x7E {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		flush(i)
	}
	if sb.Len() < s.limits.CharCodesMaxChars {
		flush(i)
	}

	text := strings.Join(strings.Fields(sb.String()), " ")
	if len(text) > s.limits.CharCodesMaxChars {
		text = strings.TrimSpace(text[:s.limits.CharCodesMaxChars])
	}

	quality, confidence := 0.05, 0.1
	if len(text) > richOutputSize {
		quality, confidence = 0.2, 0.3
	}

	s.logger.Debug("Character codes scanned",
		logging.Field{Key: logging.FieldBytes, Value: len(data)},
		logging.Field{Key: logging.FieldChars, Value: len(text)})

	return models.ExtractionResult{
		Text:       text,
		Method:     models.MethodCharacterCodes,
		Quality:    quality,
		Confidence: confidence,
		PageCount:  in.pageCount(),
	}.Normalize()
}

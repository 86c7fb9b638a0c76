package strategy

import (
	"context"
	"testing"
	"time"

	"fjacquet/pdftext/internal/extractionerror"
	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickingStrategy struct{}

func (panickingStrategy) Name() models.Method { return models.MethodStreams }

func (panickingStrategy) Extract(context.Context, Input) models.ExtractionResult {
	var m map[string]int
	m["boom"]++
	return models.ExtractionResult{}
}

type rangeBreakingStrategy struct{}

func (rangeBreakingStrategy) Name() models.Method { return models.MethodRawTextScan }

func (rangeBreakingStrategy) Extract(context.Context, Input) models.ExtractionResult {
	return models.ExtractionResult{Text: "x", Method: models.MethodRawTextScan, Quality: 3, Confidence: -1}
}

func TestRun_RecoversPanic(t *testing.T) {
	logger := logging.NewMockLogger()

	result, err := Run(context.Background(), panickingStrategy{}, testInput("abc"), logger)

	require.Error(t, err)
	assert.ErrorIs(t, err, extractionerror.ErrStrategyPanic)
	var serr *extractionerror.StrategyError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "streams", serr.Strategy)

	assert.Equal(t, models.MethodStreams, result.Method)
	assert.Zero(t, result.Quality)
	assert.Empty(t, result.Text)
	assert.Equal(t, 1, result.PageCount)

	warns := logger.GetEntriesByLevel("WARN")
	require.Len(t, warns, 1)
	v, ok := warns[0].FieldValue(logging.FieldStrategy)
	require.True(t, ok)
	assert.Equal(t, "streams", v)
}

func TestRun_NormalizesResult(t *testing.T) {
	result, err := Run(context.Background(), rangeBreakingStrategy{}, testInput(""), nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Quality)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, 1, result.PageCount)
}

func TestLimits_WithDefaults(t *testing.T) {
	l := Limits{MaxFragments: 7}.withDefaults()
	d := DefaultLimits()

	assert.Equal(t, 7, l.MaxFragments)
	assert.Equal(t, d.MaxMatchesPerPattern, l.MaxMatchesPerPattern)
	assert.Equal(t, 8*time.Second, l.TextObjectsBudget)
	assert.Equal(t, 3*time.Second, l.CharCodesBudget)
	assert.Equal(t, 100, l.MaxStreams)
	assert.Equal(t, 50000, l.RawTextMaxChars)
}

func TestStrategies_Names(t *testing.T) {
	assert.Equal(t, models.MethodTextObjects, NewTextObjects(Limits{}, nil).Name())
	assert.Equal(t, models.MethodStreams, NewStreams(Limits{}, nil).Name())
	assert.Equal(t, models.MethodRawTextScan, NewRawText(Limits{}, nil).Name())
	assert.Equal(t, models.MethodCharacterCodes, NewCharacterCodes(Limits{}, nil).Name())
}

func TestStrategies_EmptyInput(t *testing.T) {
	strategies := []Strategy{
		NewTextObjects(Limits{}, nil),
		NewStreams(Limits{}, nil),
		NewRawText(Limits{}, nil),
		NewCharacterCodes(Limits{}, nil),
	}
	for _, s := range strategies {
		t.Run(string(s.Name()), func(t *testing.T) {
			result := s.Extract(context.Background(), testInput(""))
			assert.Empty(t, result.Text)
			assert.Equal(t, s.Name(), result.Method)
			assert.GreaterOrEqual(t, result.Quality, 0.0)
			assert.LessOrEqual(t, result.Quality, 0.05)
			assert.Equal(t, 1, result.PageCount)
		})
	}
}

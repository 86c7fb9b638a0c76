package pipeline

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"fjacquet/pdftext/internal/budget"
	"fjacquet/pdftext/internal/models"
	"fjacquet/pdftext/internal/strategy"
)

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// MockStrategy is a testify mock of strategy.Strategy.
type MockStrategy struct {
	mock.Mock
	method models.Method
}

func newMockStrategy(method models.Method) *MockStrategy {
	return &MockStrategy{method: method}
}

func (m *MockStrategy) Extract(ctx context.Context, in strategy.Input) models.ExtractionResult {
	args := m.Called(ctx, in)
	return args.Get(0).(models.ExtractionResult)
}

func (m *MockStrategy) Name() models.Method { return m.method }

// returns programs the mock to answer every call with result.
func (m *MockStrategy) returns(text string, quality float64) *MockStrategy {
	m.On("Extract", mock.Anything, mock.Anything).Return(models.ExtractionResult{
		Text:       text,
		Method:     m.method,
		Quality:    quality,
		Confidence: 0.5,
		PageCount:  1,
	})
	return m
}

type panickingStrategy struct{}

func (panickingStrategy) Extract(context.Context, strategy.Input) models.ExtractionResult {
	panic("malformed cross-reference table")
}

func (panickingStrategy) Name() models.Method { return models.MethodTextObjects }

// manualOptions returns the default options on a frozen clock.
func manualOptions() Options {
	opts := DefaultOptions()
	opts.Clock = budget.NewManualClock(testEpoch)
	return opts
}

// budgetBurner spends its whole stage budget, plus overrun, on a manual clock.
type budgetBurner struct {
	method  models.Method
	clock   *budget.ManualClock
	overrun time.Duration
	given   time.Duration
}

func (s *budgetBurner) Extract(_ context.Context, in strategy.Input) models.ExtractionResult {
	s.given = in.Budget.Remaining()
	s.clock.Advance(s.given + s.overrun)
	return models.ExtractionResult{Method: s.method}
}

func (s *budgetBurner) Name() models.Method { return s.method }

package pipeline

import (
	"time"

	"fjacquet/pdftext/internal/budget"
	"fjacquet/pdftext/internal/strategy"
	"fjacquet/pdftext/internal/textutils"
)

// Thresholds are the per-stage acceptance bars. A stage result is accepted
// when its quality is strictly above the bar.
type Thresholds struct {
	TextObjects    float64
	Streams        float64
	RawText        float64
	CharacterCodes float64
}

// Options configures an Orchestrator.
type Options struct {
	TotalBudget  time.Duration
	StageReserve time.Duration
	Thresholds   Thresholds
	Limits       strategy.Limits

	// DisableCharacterCodes drops the character-code stage from the chain.
	DisableCharacterCodes bool

	// MinResultLength and MinResultQuality form the floor a best candidate
	// must clear before it is preferred over the summary fallback.
	MinResultLength  int
	MinResultQuality float64

	// Clock defaults to budget.SystemClock.
	Clock budget.Clock

	// Scorer defaults to textutils.DefaultScorer.
	Scorer *textutils.Scorer
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		TotalBudget:  15 * time.Second,
		StageReserve: time.Second,
		Thresholds: Thresholds{
			TextObjects:    0.3,
			Streams:        0.25,
			RawText:        0.2,
			CharacterCodes: 0.1,
		},
		Limits:           strategy.DefaultLimits(),
		MinResultLength:  30,
		MinResultQuality: 0.1,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TotalBudget <= 0 {
		o.TotalBudget = d.TotalBudget
	}
	if o.StageReserve <= 0 {
		o.StageReserve = d.StageReserve
	}
	if o.Thresholds == (Thresholds{}) {
		o.Thresholds = d.Thresholds
	}
	if o.MinResultLength <= 0 {
		o.MinResultLength = d.MinResultLength
	}
	if o.MinResultQuality <= 0 {
		o.MinResultQuality = d.MinResultQuality
	}
	if o.Clock == nil {
		o.Clock = budget.SystemClock{}
	}
	if o.Scorer == nil {
		o.Scorer = textutils.DefaultScorer()
	}
	return o
}

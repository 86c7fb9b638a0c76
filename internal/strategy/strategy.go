// Package strategy holds the independent text-extraction strategies run by
// the pipeline, together with the shared text-command pattern table they
// tokenize with.
package strategy

import (
	"context"
	"time"

	"fjacquet/pdftext/internal/budget"
	"fjacquet/pdftext/internal/extractionerror"
	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
	"fjacquet/pdftext/internal/textutils"
)

// Input is everything a strategy may look at. Strategies must not modify
// Data or Structure.
type Input struct {
	Data      []byte
	Structure *models.StructureAnalysis
	Budget    *budget.Budget
	Scorer    *textutils.Scorer
}

func (in Input) scorer() *textutils.Scorer {
	if in.Scorer == nil {
		return textutils.DefaultScorer()
	}
	return in.Scorer
}

func (in Input) budget() *budget.Budget {
	if in.Budget == nil {
		return budget.Unlimited(budget.SystemClock{})
	}
	return in.Budget
}

func (in Input) pageCount() int {
	if in.Structure == nil {
		return models.EstimatePagesFromSize(len(in.Data))
	}
	return in.Structure.EstimatePageCount()
}

// Strategy is one independent way of recovering text from a buffer.
type Strategy interface {
	// Extract returns the text the strategy recovers from in. It reports
	// failure through a zero-quality result rather than an error and should
	// stop early when ctx is done or in.Budget is exhausted.
	Extract(ctx context.Context, in Input) models.ExtractionResult

	// Name returns the method tag the strategy reports.
	Name() models.Method
}

// Limits bounds the work each strategy may do on one buffer.
type Limits struct {
	TextObjectsBudget    time.Duration
	CharCodesBudget      time.Duration
	MaxMatchesPerPattern int
	MaxFragments         int
	MaxStreams           int
	RawTextMaxMatches    int
	RawTextMaxChars      int
	CharCodesScanBytes   int
	CharCodesMaxChars    int
}

// DefaultLimits returns the production limits.
func DefaultLimits() Limits {
	return Limits{
		TextObjectsBudget:    8 * time.Second,
		CharCodesBudget:      3 * time.Second,
		MaxMatchesPerPattern: 1000,
		MaxFragments:         500,
		MaxStreams:           100,
		RawTextMaxMatches:    500,
		RawTextMaxChars:      50000,
		CharCodesScanBytes:   50000,
		CharCodesMaxChars:    5000,
	}
}

// withDefaults fills zero fields from DefaultLimits.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.TextObjectsBudget <= 0 {
		l.TextObjectsBudget = d.TextObjectsBudget
	}
	if l.CharCodesBudget <= 0 {
		l.CharCodesBudget = d.CharCodesBudget
	}
	if l.MaxMatchesPerPattern <= 0 {
		l.MaxMatchesPerPattern = d.MaxMatchesPerPattern
	}
	if l.MaxFragments <= 0 {
		l.MaxFragments = d.MaxFragments
	}
	if l.MaxStreams <= 0 {
		l.MaxStreams = d.MaxStreams
	}
	if l.RawTextMaxMatches <= 0 {
		l.RawTextMaxMatches = d.RawTextMaxMatches
	}
	if l.RawTextMaxChars <= 0 {
		l.RawTextMaxChars = d.RawTextMaxChars
	}
	if l.CharCodesScanBytes <= 0 {
		l.CharCodesScanBytes = d.CharCodesScanBytes
	}
	if l.CharCodesMaxChars <= 0 {
		l.CharCodesMaxChars = d.CharCodesMaxChars
	}
	return l
}

// Run executes s and converts a panic into a zero-quality result for that
// strategy only. The returned error is non-nil only after a recovered panic.
func Run(ctx context.Context, s Strategy, in Input, logger logging.Logger) (result models.ExtractionResult, err error) {
	logger = logging.OrDefault(logger)
	defer func() {
		if r := recover(); r != nil {
			serr := extractionerror.NewPanicError(string(s.Name()), r)
			logger.WithError(serr).Warn("Extraction strategy failed",
				logging.Field{Key: logging.FieldStrategy, Value: string(s.Name())})
			result = models.NewEmptyResult(s.Name(), in.pageCount())
			err = serr
		}
	}()

	result = s.Extract(ctx, in).Normalize()
	return result, nil
}

// confidenceFor picks between the high and low confidence of a strategy.
func confidenceFor(quality, threshold, high, low float64) float64 {
	if quality > threshold {
		return high
	}
	return low
}

// Package pipeline runs the extraction strategies in priority order under a
// global time budget and always produces a well-formed result.
package pipeline

import (
	"context"
	"time"

	"fjacquet/pdftext/internal/budget"
	"fjacquet/pdftext/internal/extractionerror"
	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
	"fjacquet/pdftext/internal/strategy"
	"fjacquet/pdftext/internal/structure"
)

// minAcceptLength is the text length a stage result must exceed to short-circuit the chain.
const minAcceptLength = 10

// Stage pairs a strategy with the quality bar that accepts its result.
type Stage struct {
	Strategy  strategy.Strategy
	Threshold float64
}

// Orchestrator is the extraction pipeline. It holds no per-document state
// and may be shared between goroutines.
type Orchestrator struct {
	opts     Options
	analyzer *structure.Analyzer
	stages   []Stage
	logger   logging.Logger
}

// New builds the production chain: text objects, streams, raw text and,
// unless disabled, character codes.
func New(opts Options, logger logging.Logger) *Orchestrator {
	opts = opts.withDefaults()
	logger = logging.OrDefault(logger)

	stages := []Stage{
		{Strategy: strategy.NewTextObjects(opts.Limits, logger), Threshold: opts.Thresholds.TextObjects},
		{Strategy: strategy.NewStreams(opts.Limits, logger), Threshold: opts.Thresholds.Streams},
		{Strategy: strategy.NewRawText(opts.Limits, logger), Threshold: opts.Thresholds.RawText},
	}
	if !opts.DisableCharacterCodes {
		stages = append(stages, Stage{
			Strategy:  strategy.NewCharacterCodes(opts.Limits, logger),
			Threshold: opts.Thresholds.CharacterCodes,
		})
	}
	return NewWithStages(opts, logger, stages...)
}

// NewWithStages builds an orchestrator over a custom chain.
func NewWithStages(opts Options, logger logging.Logger, stages ...Stage) *Orchestrator {
	logger = logging.OrDefault(logger)
	return &Orchestrator{
		opts:     opts.withDefaults(),
		analyzer: structure.NewAnalyzer(logger),
		stages:   stages,
		logger:   logger,
	}
}

// Stages returns the methods of the chain in run order.
func (o *Orchestrator) Stages() []models.Method {
	methods := make([]models.Method, len(o.stages))
	for i, s := range o.stages {
		methods[i] = s.Strategy.Name()
	}
	return methods
}

// Extract returns the best text the chain recovers from data.
func (o *Orchestrator) Extract(ctx context.Context, data []byte) models.ExtractionResult {
	result, _ := o.ExtractWithTrace(ctx, data)
	return result
}

// ExtractWithTrace is Extract plus the per-stage account of the run. It
// never fails: the worst case is the summary fallback.
func (o *Orchestrator) ExtractWithTrace(ctx context.Context, data []byte) (models.ExtractionResult, Trace) {
	if ctx == nil {
		ctx = context.Background()
	}
	b := budget.New(o.opts.Clock, o.opts.TotalBudget)
	trace := Trace{}

	finish := func(result models.ExtractionResult) (models.ExtractionResult, Trace) {
		trace.Elapsed = b.Elapsed()
		result = result.Normalize()
		o.logger.Info("Extraction completed",
			logging.Field{Key: logging.FieldMethod, Value: string(result.Method)},
			logging.Field{Key: logging.FieldQuality, Value: result.Quality},
			logging.Field{Key: logging.FieldConfidence, Value: result.Confidence},
			logging.Field{Key: logging.FieldChars, Value: len(result.Text)},
			logging.Field{Key: logging.FieldPages, Value: result.PageCount})
		return result, trace
	}

	trace.Structure = o.analyzer.Analyze(ctx, data)
	if len(data) == 0 {
		o.logger.WithError(extractionerror.ErrEmptyInput).Debug("Nothing to extract")
		trace.Attempts = o.skipFrom(0)
		return finish(Fallback(trace.Structure, trace.Attempts))
	}

	in := strategy.Input{
		Data:      data,
		Structure: trace.Structure,
		Budget:    b,
		Scorer:    o.opts.Scorer,
	}

	var best *models.ExtractionResult
	for i, st := range o.stages {
		method := st.Strategy.Name()
		if err := ctx.Err(); err != nil {
			o.logger.WithError(err).Debug("Extraction cancelled",
				logging.Field{Key: logging.FieldStrategy, Value: string(method)})
			trace.Attempts = append(trace.Attempts, o.skipFrom(i)...)
			break
		}
		remaining := b.Remaining()
		if remaining < o.opts.StageReserve {
			o.logger.Debug("Budget too low to start stage",
				logging.Field{Key: logging.FieldStrategy, Value: string(method)},
				logging.Field{Key: logging.FieldRemaining, Value: remaining.Milliseconds()})
			trace.Attempts = append(trace.Attempts, o.skipFrom(i)...)
			break
		}

		in.Budget = b.Sub(o.stageLimit(remaining, len(o.stages)-i-1))
		o.logger.Debug("Running extraction stage",
			logging.Field{Key: logging.FieldStrategy, Value: string(method)})
		started := b.Elapsed()
		result, err := strategy.Run(ctx, st.Strategy, in, o.logger)
		attempt := Attempt{
			Method:     method,
			Quality:    result.Quality,
			Confidence: result.Confidence,
			Length:     len(result.Text),
			Duration:   b.Elapsed() - started,
			Outcome:    OutcomeRejected,
			Err:        err,
		}
		if err != nil {
			attempt.Outcome = OutcomeFailed
		}

		switch {
		case result.IsEmpty():
			o.logger.Debug("Stage produced no text",
				logging.Field{Key: logging.FieldStrategy, Value: string(method)})
		case best == nil || result.BetterThan(*best):
			r := result
			best = &r
		}

		if err == nil && result.Quality > st.Threshold && len(result.Text) > minAcceptLength {
			attempt.Outcome = OutcomeAccepted
			trace.Attempts = append(trace.Attempts, attempt)
			trace.Attempts = append(trace.Attempts, o.skipFrom(i+1)...)
			return finish(result)
		}
		trace.Attempts = append(trace.Attempts, attempt)
	}

	if best != nil && len(best.Text) > o.opts.MinResultLength && best.Quality > o.opts.MinResultQuality {
		o.logger.Debug("Using best candidate below its stage threshold",
			logging.Field{Key: logging.FieldMethod, Value: string(best.Method)},
			logging.Field{Key: logging.FieldQuality, Value: best.Quality})
		return finish(*best)
	}
	return finish(Fallback(trace.Structure, trace.Attempts))
}

// stageLimit is the part of remaining a stage may spend. Each later stage
// keeps twice the stage reserve, as a stage can overrun its deadline by one
// polling interval.
func (o *Orchestrator) stageLimit(remaining time.Duration, later int) time.Duration {
	limit := remaining - time.Duration(later)*2*o.opts.StageReserve
	if limit < o.opts.StageReserve {
		return o.opts.StageReserve
	}
	return limit
}

func (o *Orchestrator) skipFrom(i int) []Attempt {
	var skipped []Attempt
	for _, st := range o.stages[i:] {
		skipped = append(skipped, Attempt{Method: st.Strategy.Name(), Outcome: OutcomeSkipped})
	}
	return skipped
}

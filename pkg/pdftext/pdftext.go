// Package pdftext recovers readable text from PDF legal documents without a
// PDF library. It is the public entry point to the extraction pipeline.
//
//	result := pdftext.Extract(ctx, data, pdftext.WithFilename("contract.pdf"))
//	fmt.Println(result.Method, result.Quality, result.Text)
//
// Extraction never fails. When no strategy recovers text of sufficient
// quality the result is a summary of the document structure.
package pdftext

import (
	"context"
	"time"

	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
	"fjacquet/pdftext/internal/pipeline"
	"fjacquet/pdftext/internal/structure"
	"fjacquet/pdftext/internal/textutils"

	"github.com/sirupsen/logrus"
)

// Result is the outcome of one extraction.
type Result = models.ExtractionResult

// Method names the technique that produced a Result.
type Method = models.Method

// Structure holds the structural signals of a buffer.
type Structure = models.StructureAnalysis

// Extraction methods
const (
	MethodTextObjects     = models.MethodTextObjects
	MethodStreams         = models.MethodStreams
	MethodRawTextScan     = models.MethodRawTextScan
	MethodCharacterCodes  = models.MethodCharacterCodes
	MethodFallbackSummary = models.MethodFallbackSummary
)

type settings struct {
	filename string
	logger   logging.Logger
	options  pipeline.Options
	terms    []string
}

// Option configures an Extractor.
type Option func(*settings)

// WithFilename attaches a name to the log lines of an extraction. It does not
// change the result.
func WithFilename(name string) Option {
	return func(s *settings) { s.filename = name }
}

// WithLogger routes pipeline logs to logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logging.NewLogrusAdapterFromLogger(logger)
		}
	}
}

// WithBudget replaces the global time budget of an extraction.
func WithBudget(d time.Duration) Option {
	return func(s *settings) { s.options.TotalBudget = d }
}

// WithoutCharacterCodes drops the last-resort character code stage.
func WithoutCharacterCodes() Option {
	return func(s *settings) { s.options.DisableCharacterCodes = true }
}

// WithLegalTerms adds vocabulary to the quality scorer.
func WithLegalTerms(terms ...string) Option {
	return func(s *settings) { s.terms = append(s.terms, terms...) }
}

// Extractor runs the extraction pipeline. It is safe for concurrent use.
type Extractor struct {
	orchestrator *pipeline.Orchestrator
	analyzer     *structure.Analyzer
	logger       logging.Logger
}

// New creates an Extractor with the default pipeline settings adjusted by opts.
func New(opts ...Option) *Extractor {
	s := newSettings(opts)
	return &Extractor{
		orchestrator: pipeline.New(s.options, s.logger),
		analyzer:     structure.NewAnalyzer(s.logger),
		logger:       s.logger,
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:  logging.GetLogger(),
		options: pipeline.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if len(s.terms) > 0 {
		s.options.Scorer = textutils.NewScorer(s.terms...)
	}
	if s.filename != "" {
		s.logger = s.logger.WithField(logging.FieldFile, s.filename)
	}
	return s
}

// Extract returns the best text recovered from data.
func (e *Extractor) Extract(ctx context.Context, data []byte) Result {
	return e.orchestrator.Extract(ctx, data)
}

// Analyze returns the structural signals of data without extracting text.
func (e *Extractor) Analyze(ctx context.Context, data []byte) *Structure {
	return e.analyzer.Analyze(ctx, data)
}

// Extract is a one-shot extraction with a fresh Extractor.
func Extract(ctx context.Context, data []byte, opts ...Option) Result {
	return New(opts...).Extract(ctx, data)
}

// Package container provides dependency injection for the pdftext application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/pdftext/internal/batch"
	"fjacquet/pdftext/internal/config"
	"fjacquet/pdftext/internal/lexicon"
	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/pipeline"
	"fjacquet/pdftext/internal/report"
	"fjacquet/pdftext/internal/strategy"
	"fjacquet/pdftext/internal/structure"
	"fjacquet/pdftext/internal/textutils"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	scorer   *textutils.Scorer
	pipeline *pipeline.Orchestrator
	analyzer *structure.Analyzer
	reports  *report.Generator
	batch    *batch.Processor
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := config.ConfigureLoggingFromConfig(cfg)
	return NewContainerWith(cfg, logger, lexicon.NewStore(cfg.Lexicon.File, logger))
}

// NewContainerWith wires the dependencies around an existing logger and
// lexicon source.
func NewContainerWith(cfg *config.Config, logger logging.Logger, lex lexicon.Source) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrDefault(logger)

	scorer, err := lexicon.NewScorer(lex)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	opts := PipelineOptions(cfg)
	opts.Scorer = scorer
	orchestrator := pipeline.New(opts, logger)

	processor := batch.NewProcessor(orchestrator, cfg.Batch.Workers, cfg.Batch.MaxFileSizeMB<<20, logger)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "stages", Value: len(orchestrator.Stages())},
		logging.Field{Key: "legal_terms", Value: len(scorer.Terms())},
		logging.Field{Key: logging.FieldWorkers, Value: processor.Workers()})

	return &Container{
		logger:   logger,
		config:   cfg,
		scorer:   scorer,
		pipeline: orchestrator,
		analyzer: structure.NewAnalyzer(logger),
		reports:  report.NewGenerator(logger),
		batch:    processor,
	}, nil
}

// PipelineOptions maps the extraction configuration onto pipeline options.
func PipelineOptions(cfg *config.Config) pipeline.Options {
	ex := cfg.Extraction
	return pipeline.Options{
		TotalBudget:  ex.TotalBudget,
		StageReserve: ex.StageReserve,
		Thresholds: pipeline.Thresholds{
			TextObjects:    ex.Thresholds.TextObjects,
			Streams:        ex.Thresholds.Streams,
			RawText:        ex.Thresholds.RawText,
			CharacterCodes: ex.Thresholds.CharacterCodes,
		},
		Limits: strategy.Limits{
			TextObjectsBudget:    ex.TextObjectsBudget,
			CharCodesBudget:      ex.CharCodesBudget,
			MaxMatchesPerPattern: ex.MaxMatchesPerPattern,
			MaxFragments:         ex.MaxFragments,
			MaxStreams:           ex.MaxStreams,
			RawTextMaxMatches:    ex.RawTextMaxMatches,
			RawTextMaxChars:      ex.RawTextMaxChars,
			CharCodesScanBytes:   ex.CharCodesScanBytes,
			CharCodesMaxChars:    ex.CharCodesMaxChars,
		},
		DisableCharacterCodes: !ex.EnableCharacterCodes,
		MinResultLength:       ex.MinResultLength,
		MinResultQuality:      ex.MinResultQuality,
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetScorer returns the quality scorer, including lexicon terms.
func (c *Container) GetScorer() *textutils.Scorer {
	return c.scorer
}

// GetPipeline returns the extraction orchestrator.
func (c *Container) GetPipeline() *pipeline.Orchestrator {
	return c.pipeline
}

// GetAnalyzer returns the structure analyzer.
func (c *Container) GetAnalyzer() *structure.Analyzer {
	return c.analyzer
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reports
}

// GetBatchProcessor returns the batch processor.
func (c *Container) GetBatchProcessor() *batch.Processor {
	return c.batch
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}

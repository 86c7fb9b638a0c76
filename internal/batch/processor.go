// Package batch extracts text from many files concurrently, one pipeline
// call per file.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fjacquet/pdftext/internal/fileutils"
	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
	"fjacquet/pdftext/internal/report"
)

// Extractor is the part of the pipeline the processor needs.
type Extractor interface {
	Extract(ctx context.Context, data []byte) models.ExtractionResult
}

// Item is the outcome for one file. Err is set when the file never reached
// the pipeline.
type Item struct {
	File     string
	Result   models.ExtractionResult
	Duration time.Duration
	Err      error
}

// Summary is the outcome of one batch run. Items are in input order.
type Summary struct {
	RunID   string
	Items   []Item
	Stats   *models.ExtractionStats
	Elapsed time.Duration
}

// Records converts the items to report rows.
func (s *Summary) Records() []report.BatchRecord {
	records := make([]report.BatchRecord, len(s.Items))
	for i, item := range s.Items {
		records[i] = report.NewBatchRecord(item.File, item.Result, item.Duration, item.Err)
	}
	return records
}

// Processor runs the extractor over files with a bounded number of workers.
type Processor struct {
	extractor Extractor
	workers   int
	maxBytes  int64
	logger    logging.Logger
}

// NewProcessor creates a Processor. workers <= 0 means one per CPU;
// maxBytes <= 0 disables the input size check.
func NewProcessor(extractor Extractor, workers int, maxBytes int64, logger logging.Logger) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Processor{
		extractor: extractor,
		workers:   workers,
		maxBytes:  maxBytes,
		logger:    logging.OrDefault(logger),
	}
}

// Workers returns the worker count.
func (p *Processor) Workers() int { return p.workers }

// ProcessDir processes every PDF under dir.
func (p *Processor) ProcessDir(ctx context.Context, dir string) (*Summary, error) {
	files, err := fileutils.ListPDFs(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		p.logger.Warn("No PDF files found", logging.Field{Key: logging.FieldInputFile, Value: dir})
	}
	return p.Process(ctx, files)
}

// Process extracts every file. Unreadable files are reported in their
// Item; only cancellation of ctx fails the whole run.
func (p *Processor) Process(ctx context.Context, files []string) (*Summary, error) {
	runID := uuid.New().String()
	logger := p.logger.WithField("run_id", runID)
	start := time.Now()

	logger.Info("Starting batch extraction",
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: logging.FieldWorkers, Value: p.workers})

	items := make([]Item, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = p.processFile(gctx, logger, file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch run %s cancelled: %w", runID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch run %s cancelled: %w", runID, err)
	}

	stats := models.NewExtractionStats()
	for _, item := range items {
		if item.Err != nil {
			stats.RecordFailure()
			continue
		}
		stats.Record(item.Result)
	}
	stats.LogSummary(logger)

	return &Summary{
		RunID:   runID,
		Items:   items,
		Stats:   stats,
		Elapsed: time.Since(start),
	}, nil
}

func (p *Processor) processFile(ctx context.Context, logger logging.Logger, file string) Item {
	logger = logger.WithField(logging.FieldFile, filepath.Base(file))
	start := time.Now()

	data, err := fileutils.ReadInput(file, p.maxBytes)
	if err != nil {
		logger.WithError(err).Warn("Skipping unreadable file")
		return Item{File: file, Duration: time.Since(start), Err: err}
	}

	result := p.extractor.Extract(ctx, data)
	duration := time.Since(start)
	logger.Debug("File extracted",
		logging.Field{Key: logging.FieldMethod, Value: string(result.Method)},
		logging.Field{Key: logging.FieldQuality, Value: result.Quality},
		logging.Field{Key: logging.FieldDuration, Value: duration.Milliseconds()})
	return Item{File: file, Result: result, Duration: duration}
}

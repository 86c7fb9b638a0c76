package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
)

// BatchRecord is one row of the batch CSV report.
type BatchRecord struct {
	File       string `csv:"file"`
	Method     string `csv:"method"`
	Quality    string `csv:"quality"`
	Confidence string `csv:"confidence"`
	Pages      int    `csv:"pages"`
	Chars      int    `csv:"chars"`
	DurationMS int64  `csv:"duration_ms"`
	Error      string `csv:"error"`
}

// NewBatchRecord builds the row for one file. A non-nil err means the file
// never reached the pipeline and result is ignored.
func NewBatchRecord(file string, result models.ExtractionResult, duration time.Duration, err error) BatchRecord {
	rec := BatchRecord{
		File:       file,
		DurationMS: duration.Milliseconds(),
	}
	if err != nil {
		rec.Error = err.Error()
		return rec
	}
	rec.Method = string(result.Method)
	rec.Quality = FormatScore(result.Quality)
	rec.Confidence = FormatScore(result.Confidence)
	rec.Pages = result.PageCount
	rec.Chars = len(result.Text)
	return rec
}

// WriteBatchCSV writes records with a header row to w.
func (g *Generator) WriteBatchCSV(w io.Writer, records []BatchRecord) error {
	if records == nil {
		records = []BatchRecord{}
	}

	csvWriter := csv.NewWriter(w)
	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		g.logger.WithError(err).Error("Failed to marshal batch report to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteBatchCSVFile writes the batch report to path.
func (g *Generator) WriteBatchCSVFile(path string, records []BatchRecord) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionReportFile) // #nosec G304 -- report path comes from the command line
	if err != nil {
		return fmt.Errorf("error creating report file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			g.logger.WithError(closeErr).Warn("Failed to close report file",
				logging.Field{Key: logging.FieldOutputFile, Value: path})
		}
	}()

	if err := g.WriteBatchCSV(file, records); err != nil {
		return err
	}

	g.logger.Info("Wrote batch report",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return nil
}

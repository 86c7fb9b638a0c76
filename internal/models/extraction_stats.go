package models

import (
	"fjacquet/pdftext/internal/logging"
)

// ExtractionStats tracks outcomes across a batch of extractions
type ExtractionStats struct {
	Total     int            // Total number of documents processed
	Extracted int            // Documents resolved by a text strategy
	Fallback  int            // Documents that ended in the summary fallback
	Failed    int            // Documents that could not be read at all
	ByMethod  map[Method]int // Result count per method
}

// NewExtractionStats creates a new ExtractionStats instance
func NewExtractionStats() *ExtractionStats {
	return &ExtractionStats{
		ByMethod: make(map[Method]int),
	}
}

// Record counts one pipeline result
func (es *ExtractionStats) Record(result ExtractionResult) {
	es.Total++
	es.ByMethod[result.Method]++
	if result.Method == MethodFallbackSummary {
		es.Fallback++
		return
	}
	es.Extracted++
}

// RecordFailure counts a document whose bytes never reached the pipeline
func (es *ExtractionStats) RecordFailure() {
	es.Total++
	es.Failed++
}

// GetSuccessRate calculates the extracted share as a percentage
func (es ExtractionStats) GetSuccessRate() float64 {
	if es.Total == 0 {
		return 0.0
	}
	return float64(es.Extracted) / float64(es.Total) * 100.0
}

// LogSummary logs a summary of extraction statistics
func (es ExtractionStats) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}

	fields := []logging.Field{
		{Key: logging.FieldCount, Value: es.Total},
		{Key: "extracted", Value: es.Extracted},
		{Key: "fallback", Value: es.Fallback},
		{Key: "failed", Value: es.Failed},
		{Key: "success_rate", Value: es.GetSuccessRate()},
	}
	for _, method := range AllMethods() {
		if n := es.ByMethod[method]; n > 0 {
			fields = append(fields, logging.Field{Key: "method_" + string(method), Value: n})
		}
	}
	logger.Info("Extraction summary", fields...)
}

// Package report renders extraction results, structure analyses and batch
// summaries for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
	"fjacquet/pdftext/internal/pipeline"
)

// scorePlaces is the number of decimals scores are rendered with.
const scorePlaces = 3

// Generator renders reports in the supported output formats.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator. A nil logger uses the package default.
func NewGenerator(logger logging.Logger) *Generator {
	return &Generator{logger: logging.OrDefault(logger).WithField("component", "report")}
}

// Document is the rendered form of one extraction.
type Document struct {
	File     string                  `json:"file,omitempty" yaml:"file,omitempty"`
	Result   models.ExtractionResult `json:"result" yaml:"result"`
	Attempts []AttemptRecord         `json:"attempts,omitempty" yaml:"attempts,omitempty"`
}

// AttemptRecord is the rendered form of one pipeline stage.
type AttemptRecord struct {
	Method     string `json:"method" yaml:"method"`
	Outcome    string `json:"outcome" yaml:"outcome"`
	Quality    string `json:"quality" yaml:"quality"`
	Confidence string `json:"confidence" yaml:"confidence"`
	Length     int    `json:"length" yaml:"length"`
	DurationMS int64  `json:"duration_ms" yaml:"duration_ms"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewDocument builds a Document. The trace is optional.
func NewDocument(file string, result models.ExtractionResult, trace *pipeline.Trace) Document {
	doc := Document{File: file, Result: result}
	if trace == nil {
		return doc
	}
	for _, a := range trace.Attempts {
		rec := AttemptRecord{
			Method:     string(a.Method),
			Outcome:    string(a.Outcome),
			Quality:    FormatScore(a.Quality),
			Confidence: FormatScore(a.Confidence),
			Length:     a.Length,
			DurationMS: a.Duration.Milliseconds(),
		}
		if a.Err != nil {
			rec.Error = a.Err.Error()
		}
		doc.Attempts = append(doc.Attempts, rec)
	}
	return doc
}

// FormatScore renders a score with a fixed number of decimals.
func FormatScore(score float64) string {
	return decimal.NewFromFloat(score).StringFixed(scorePlaces)
}

// RenderDocument renders doc as text, json or yaml. The text format is the
// extracted text alone, followed by the stage table when attempts are present.
func (g *Generator) RenderDocument(doc Document, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", models.FormatText:
		var sb strings.Builder
		sb.WriteString(doc.Result.Text)
		sb.WriteString("\n")
		if len(doc.Attempts) > 0 {
			sb.WriteString("\n")
			sb.WriteString(attemptTable(doc))
		}
		return []byte(sb.String()), nil
	case models.FormatJSON:
		return g.marshalJSON(doc)
	case models.FormatYAML:
		return g.marshalYAML(doc)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func attemptTable(doc Document) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "method: %s  quality: %s  confidence: %s  pages: %d\n",
		doc.Result.Method, FormatScore(doc.Result.Quality), FormatScore(doc.Result.Confidence), doc.Result.PageCount)
	for _, a := range doc.Attempts {
		fmt.Fprintf(&sb, "  %-16s %-9s quality=%s length=%d duration=%s",
			a.Method, a.Outcome, a.Quality, a.Length, time.Duration(a.DurationMS)*time.Millisecond)
		if a.Error != "" {
			fmt.Fprintf(&sb, " error=%q", a.Error)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderAnalysis renders a structure analysis as text, json or yaml.
func (g *Generator) RenderAnalysis(analysis *models.StructureAnalysis, format string) ([]byte, error) {
	if analysis == nil {
		return nil, fmt.Errorf("no structure analysis to render")
	}

	switch strings.ToLower(format) {
	case "", models.FormatText:
		var sb strings.Builder
		fmt.Fprintf(&sb, "size:          %s (%d bytes)\n", humanize.Bytes(uint64(analysis.Size)), analysis.Size)
		fmt.Fprintf(&sb, "pages:         %d (estimated %d)\n", analysis.Pages, analysis.EstimatePageCount())
		fmt.Fprintf(&sb, "objects:       %d\n", analysis.TotalObjects)
		fmt.Fprintf(&sb, "streams:       %d\n", analysis.TotalStreams)
		fmt.Fprintf(&sb, "text objects:  %d\n", analysis.TextObjects)
		fmt.Fprintf(&sb, "fonts:         %d\n", analysis.Fonts)
		compression := "none"
		if names := analysis.CompressionTypes.Names(); len(names) > 0 {
			compression = strings.Join(names, ", ")
		}
		fmt.Fprintf(&sb, "compression:   %s\n", compression)
		return []byte(sb.String()), nil
	case models.FormatJSON:
		return g.marshalJSON(analysis)
	case models.FormatYAML:
		return g.marshalYAML(analysis)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func (g *Generator) marshalJSON(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(data, '\n'), nil
}

func (g *Generator) marshalYAML(v interface{}) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return data, nil
}

package pipeline

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"fjacquet/pdftext/internal/models"
)

// Fallback scores
const (
	FallbackQuality    = 0.5
	FallbackConfidence = 0.6
)

// Fallback describes a buffer no strategy could read. It never returns an
// empty text.
func Fallback(analysis *models.StructureAnalysis, attempts []Attempt) models.ExtractionResult {
	if analysis == nil {
		analysis = &models.StructureAnalysis{}
	}
	pages := analysis.EstimatePageCount()

	var sb strings.Builder
	fmt.Fprintf(&sb, "PDF document summary: %s (%d bytes), estimated %d %s.",
		humanize.Bytes(uint64(analysis.Size)), analysis.Size, pages, plural(pages, "page", "pages"))
	fmt.Fprintf(&sb, " Structure: %d objects, %d streams, %d text objects, %d fonts.",
		analysis.TotalObjects, analysis.TotalStreams, analysis.TextObjects, analysis.Fonts)

	if names := analysis.CompressionTypes.Names(); len(names) > 0 {
		fmt.Fprintf(&sb, " Compression: %s.", strings.Join(names, ", "))
	} else {
		sb.WriteString(" Compression: none detected.")
	}

	var tried []string
	for _, a := range attempts {
		if a.Outcome == OutcomeSkipped {
			continue
		}
		tried = append(tried, fmt.Sprintf("%s (quality %s)", a.Method, decimal.NewFromFloat(a.Quality).StringFixed(2)))
	}
	if len(tried) > 0 {
		fmt.Fprintf(&sb, " Strategies attempted: %s.", strings.Join(tried, ", "))
	} else {
		sb.WriteString(" Strategies attempted: none.")
	}
	sb.WriteString(" No readable text could be recovered.")

	return models.ExtractionResult{
		Text:       sb.String(),
		Method:     models.MethodFallbackSummary,
		Quality:    FallbackQuality,
		Confidence: FallbackConfidence,
		PageCount:  pages,
	}.Normalize()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

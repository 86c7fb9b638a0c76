// Package models provides the data structures shared by the extraction pipeline.
package models

import "math"

// ExtractionResult is the only value the extraction pipeline produces.
type ExtractionResult struct {
	Text       string  `json:"text" yaml:"text"`
	Method     Method  `json:"method" yaml:"method"`
	Quality    float64 `json:"quality" yaml:"quality"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	PageCount  int     `json:"page_count" yaml:"page_count"`
}

// NewEmptyResult returns the zero-quality result a strategy reports when it
// recovers nothing.
func NewEmptyResult(method Method, pageCount int) ExtractionResult {
	return ExtractionResult{
		Method:    method,
		PageCount: pageCount,
	}.Normalize()
}

// Normalize clamps every field into its documented range.
// Unknown methods are reported as fallback summaries.
func (r ExtractionResult) Normalize() ExtractionResult {
	r.Quality = clampUnit(r.Quality)
	r.Confidence = clampUnit(r.Confidence)
	if r.PageCount < 1 {
		r.PageCount = 1
	}
	if !r.Method.IsValid() {
		r.Method = MethodFallbackSummary
	}
	return r
}

// IsEmpty reports whether the result carries no text.
func (r ExtractionResult) IsEmpty() bool {
	return len(r.Text) == 0
}

// BetterThan reports whether r should be preferred over other: higher
// quality wins, ties go to the longer text.
func (r ExtractionResult) BetterThan(other ExtractionResult) bool {
	if r.Quality != other.Quality {
		return r.Quality > other.Quality
	}
	return len(r.Text) > len(other.Text)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

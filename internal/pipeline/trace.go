package pipeline

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/pdftext/internal/models"
)

// Outcome describes what the orchestrator did with one stage.
type Outcome string

// Stage outcomes
const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
	OutcomeSkipped  Outcome = "skipped"
)

// Attempt records one stage of an extraction.
type Attempt struct {
	Method     models.Method
	Quality    float64
	Confidence float64
	Length     int
	Duration   time.Duration
	Outcome    Outcome
	Err        error
}

// Trace is the per-stage account of one extraction.
type Trace struct {
	Structure *models.StructureAnalysis
	Attempts  []Attempt
	Elapsed   time.Duration
}

// Ran returns the attempts whose strategy was actually invoked.
func (t Trace) Ran() []Attempt {
	var ran []Attempt
	for _, a := range t.Attempts {
		if a.Outcome != OutcomeSkipped {
			ran = append(ran, a)
		}
	}
	return ran
}

// Errors returns the recovered strategy faults, labelled by method.
func (t Trace) Errors() []error {
	var errs []error
	for _, a := range t.Attempts {
		if a.Err != nil {
			errs = append(errs, fmt.Errorf("%s strategy: %w", a.Method, a.Err))
		}
	}
	return errs
}

// Summary returns a one-line account such as "text-objects:rejected, streams:accepted".
func (t Trace) Summary() string {
	parts := make([]string, 0, len(t.Attempts))
	for _, a := range t.Attempts {
		parts = append(parts, fmt.Sprintf("%s:%s", a.Method, a.Outcome))
	}
	return strings.Join(parts, ", ")
}

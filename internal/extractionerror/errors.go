// Package extractionerror defines the typed errors raised around the
// extraction pipeline. The pipeline itself never returns them to callers;
// they travel through logs and the outer CLI layers.
package extractionerror

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a file holds no bytes.
	ErrEmptyInput = errors.New("input is empty")
	// ErrInputTooLarge is returned when a file exceeds the configured size limit.
	ErrInputTooLarge = errors.New("input exceeds size limit")
	// ErrStrategyPanic marks a strategy that panicked and was recovered.
	ErrStrategyPanic = errors.New("strategy panicked")
	// ErrUnsupportedFilter marks a stream whose filter chain cannot be decoded.
	ErrUnsupportedFilter = errors.New("unsupported stream filter")
)

// StrategyError represents a fault inside a single extraction strategy
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s failed: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// NewPanicError wraps a recovered panic value for the named strategy.
func NewPanicError(strategy string, recovered interface{}) *StrategyError {
	if err, ok := recovered.(error); ok {
		return &StrategyError{Strategy: strategy, Err: fmt.Errorf("%w: %w", ErrStrategyPanic, err)}
	}
	return &StrategyError{Strategy: strategy, Err: fmt.Errorf("%w: %v", ErrStrategyPanic, recovered)}
}

// DecodeError represents a stream payload that could not be decoded.
type DecodeError struct {
	Filter string
	Offset int // byte offset of the stream in the document
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s stream at offset %d: %v", e.Filter, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InvalidInputError represents an input file rejected before extraction.
type InvalidInputError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input %s: %s: %v", e.FilePath, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid input %s: %s", e.FilePath, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

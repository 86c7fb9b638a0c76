// Package budget provides the wall-clock deadline threaded through the
// extraction pipeline. Stages poll a Budget instead of reading ambient time.
package budget

import (
	"context"
	"errors"
	"time"
)

// ErrExhausted is returned by Check once the deadline has passed.
var ErrExhausted = errors.New("time budget exhausted")

// Budget is an immutable deadline measured against a Clock.
type Budget struct {
	clock    Clock
	start    time.Time
	deadline time.Time
}

// New starts a budget of limit on clock. A nil clock means SystemClock.
func New(clock Clock, limit time.Duration) *Budget {
	if clock == nil {
		clock = SystemClock{}
	}
	if limit < 0 {
		limit = 0
	}
	start := clock.Now()
	return &Budget{
		clock:    clock,
		start:    start,
		deadline: start.Add(limit),
	}
}

// Unlimited returns a budget that never runs out in practice.
func Unlimited(clock Clock) *Budget {
	return New(clock, 100*365*24*time.Hour)
}

// Sub starts a child budget of limit. The child never outlives its parent.
func (b *Budget) Sub(limit time.Duration) *Budget {
	child := New(b.clock, limit)
	if b.deadline.Before(child.deadline) {
		child.deadline = b.deadline
	}
	return child
}

// Elapsed reports the time spent since the budget started.
func (b *Budget) Elapsed() time.Duration {
	return b.clock.Now().Sub(b.start)
}

// Remaining reports the time left, never negative.
func (b *Budget) Remaining() time.Duration {
	left := b.deadline.Sub(b.clock.Now())
	if left < 0 {
		return 0
	}
	return left
}

// Exceeded reports whether the deadline has been reached.
func (b *Budget) Exceeded() bool {
	return !b.clock.Now().Before(b.deadline)
}

// Check returns the context error if ctx is done, ErrExhausted if the
// deadline has passed, and nil otherwise.
func (b *Budget) Check(ctx context.Context) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if b.Exceeded() {
		return ErrExhausted
	}
	return nil
}

package budget

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

func TestBudget_ManualClock(t *testing.T) {
	clock := NewManualClock(epoch)
	b := New(clock, 10*time.Second)

	assert.Equal(t, time.Duration(0), b.Elapsed())
	assert.Equal(t, 10*time.Second, b.Remaining())
	assert.False(t, b.Exceeded())
	require.NoError(t, b.Check(context.Background()))

	clock.Advance(4 * time.Second)
	assert.Equal(t, 4*time.Second, b.Elapsed())
	assert.Equal(t, 6*time.Second, b.Remaining())

	clock.Advance(6 * time.Second)
	assert.True(t, b.Exceeded())
	assert.Equal(t, time.Duration(0), b.Remaining())
	assert.ErrorIs(t, b.Check(context.Background()), ErrExhausted)

	clock.Advance(time.Hour)
	assert.Equal(t, time.Duration(0), b.Remaining(), "remaining never goes negative")
}

func TestBudget_SubCappedByParent(t *testing.T) {
	clock := NewManualClock(epoch)
	parent := New(clock, 5*time.Second)

	clock.Advance(2 * time.Second)
	child := parent.Sub(8 * time.Second)
	assert.Equal(t, 3*time.Second, child.Remaining())

	short := parent.Sub(time.Second)
	assert.Equal(t, time.Second, short.Remaining())

	clock.Advance(time.Second)
	assert.True(t, short.Exceeded())
	assert.False(t, child.Exceeded())
	assert.False(t, parent.Exceeded())
}

func TestBudget_CheckPrefersContextError(t *testing.T) {
	clock := NewManualClock(epoch)
	b := New(clock, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, b.Check(ctx), context.Canceled)
	assert.ErrorIs(t, b.Check(nil), ErrExhausted)
}

func TestBudget_StepClock(t *testing.T) {
	clock := NewStepClock(epoch, time.Second)
	b := New(clock, 3*time.Second) // consumes the first tick

	assert.False(t, b.Exceeded()) // t=1s
	assert.False(t, b.Exceeded()) // t=2s
	assert.True(t, b.Exceeded())  // t=3s
}

func TestBudget_Defaults(t *testing.T) {
	b := New(nil, -time.Second)
	assert.IsType(t, SystemClock{}, b.clock)
	assert.True(t, b.Exceeded())

	u := Unlimited(NewManualClock(epoch))
	assert.False(t, u.Exceeded())
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	now := SystemClock{}.Now()
	assert.False(t, now.Before(before))
}

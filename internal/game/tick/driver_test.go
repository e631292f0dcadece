package tick_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/shooter/internal/game/tick"
)

func TestNewDriver_Preconditions(t *testing.T) {
	step := func(time.Duration) bool { return true }
	assert.Panics(t, func() { tick.NewDriver(0, step, zap.NewNop()) })
	assert.Panics(t, func() { tick.NewDriver(time.Millisecond, nil, zap.NewNop()) })
	assert.Panics(t, func() { tick.NewDriver(time.Millisecond, step, nil) })
}

func TestDriver_StepsWithFixedInterval(t *testing.T) {
	var calls atomic.Int64
	var badDT atomic.Bool
	d := tick.NewDriver(time.Millisecond, func(dt time.Duration) bool {
		if dt != time.Millisecond {
			badDT.Store(true)
		}
		return calls.Add(1) < 5
	}, zaptest.NewLogger(t))

	err := d.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), calls.Load())
	assert.Equal(t, uint64(5), d.Ticks())
	assert.False(t, badDT.Load())
}

func TestDriver_StopEndsStart(t *testing.T) {
	d := tick.NewDriver(time.Millisecond, func(time.Duration) bool { return true }, zaptest.NewLogger(t))
	done := make(chan error, 1)
	go func() { done <- d.Start(context.Background()) }()
	require.Eventually(t, func() bool { return d.Ticks() > 0 }, time.Second, time.Millisecond)

	d.Stop()
	d.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("driver did not stop")
	}
}

func TestDriver_ContextCancel(t *testing.T) {
	d := tick.NewDriver(time.Hour, func(time.Duration) bool { return true }, zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.Start(ctx), context.Canceled)
	assert.Equal(t, uint64(0), d.Ticks())
}

func TestProperty_RunSteps_StopsWhenStepDeclines(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 200).Draw(rt, "n")
		stopAt := rapid.IntRange(1, 250).Draw(rt, "stop_at")
		calls := 0
		ran := tick.RunSteps(n, 16*time.Millisecond, func(time.Duration) bool {
			calls++
			return calls < stopAt
		})
		want := n
		if stopAt < n {
			want = stopAt
		}
		if ran != want || calls != want {
			rt.Fatalf("n=%d stopAt=%d: ran %d, calls %d, want %d", n, stopAt, ran, calls, want)
		}
	})
}

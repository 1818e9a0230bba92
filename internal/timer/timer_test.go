// ABOUTME: Tests for the rest timer.
// ABOUTME: TestMain runs goleak so the ticker goroutine must always stop.
package timer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewValidatesMinutes(t *testing.T) {
	tests := []struct {
		minutes float64
		ok      bool
	}{
		{0.5, true},
		{1, true},
		{2.5, true},
		{10, true},
		{0, false},
		{0.25, false},
		{1.2, false},
		{10.5, false},
	}
	for _, tt := range tests {
		_, err := New(tt.minutes)
		if tt.ok {
			assert.NoError(t, err, "minutes=%v", tt.minutes)
		} else {
			assert.ErrorIs(t, err, ErrInvalidDuration, "minutes=%v", tt.minutes)
		}
	}
}

func TestTickLifecycle(t *testing.T) {
	tm, err := New(1)
	require.NoError(t, err)

	var done int32
	tm.OnDone(func() { atomic.AddInt32(&done, 1) })

	assert.False(t, tm.Tick(10*time.Second), "idle timer ignores ticks")
	assert.Equal(t, time.Minute, tm.Remaining())

	tm.Start()
	tm.Tick(20 * time.Second)
	assert.Equal(t, 40*time.Second, tm.Remaining())

	tm.Pause()
	assert.Equal(t, Paused, tm.State())
	tm.Tick(20 * time.Second)
	assert.Equal(t, 40*time.Second, tm.Remaining(), "paused timer keeps remaining time")

	tm.Start()
	assert.True(t, tm.Tick(45*time.Second))
	assert.Equal(t, Finished, tm.State())
	assert.Zero(t, tm.Remaining())
	assert.EqualValues(t, 1, atomic.LoadInt32(&done))

	tm.Reset()
	assert.Equal(t, Idle, tm.State())
	assert.Equal(t, time.Minute, tm.Remaining())
}

func TestSetMinutesResets(t *testing.T) {
	tm, err := New(1)
	require.NoError(t, err)
	tm.Start()
	tm.Tick(30 * time.Second)

	require.NoError(t, tm.SetMinutes(2))
	assert.Equal(t, Idle, tm.State())
	assert.Equal(t, 2*time.Minute, tm.Remaining())
	assert.Equal(t, 2.0, tm.Minutes())

	assert.ErrorIs(t, tm.SetMinutes(11), ErrInvalidDuration)
	assert.Equal(t, 2.0, tm.Minutes())
}

func TestRunFinishes(t *testing.T) {
	tm, err := New(0.5)
	require.NoError(t, err)
	tm.WithInterval(time.Millisecond)
	// Make each tick consume a large chunk so the run ends quickly.
	tm.remaining = 3 * time.Millisecond

	var ticks int32
	tm.OnTick(func(time.Duration) { atomic.AddInt32(&ticks, 1) })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, tm.Run(ctx))
	assert.Equal(t, Finished, tm.State())
	assert.GreaterOrEqual(t, atomic.LoadInt32(&ticks), int32(1))
}

func TestRunStopsOnCancel(t *testing.T) {
	tm, err := New(10)
	require.NoError(t, err)
	tm.WithInterval(time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- tm.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
	assert.Equal(t, Paused, tm.State())
	assert.Less(t, tm.Remaining(), 10*time.Minute)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "01:30", Format(90*time.Second))
	assert.Equal(t, "00:00", Format(-time.Second))
	assert.Equal(t, "10:00", Format(10*time.Minute))
	assert.Equal(t, "00:01", Format(500*time.Millisecond))
}

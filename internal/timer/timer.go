// ABOUTME: Rest timer that counts down between sets.
// ABOUTME: Run drives it from a ticker goroutine until it finishes or the context ends.
package timer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

const (
	MinMinutes  = 0.5
	MaxMinutes  = 10
	StepMinutes = 0.5
)

var ErrInvalidDuration = errors.New("rest time must be between 0.5 and 10 minutes in half-minute steps")

// State is the timer's run state.
type State int

const (
	Idle State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Timer is a countdown guarded by a mutex so it can be read while Run ticks.
type Timer struct {
	mu        sync.Mutex
	total     time.Duration
	remaining time.Duration
	state     State
	interval  time.Duration
	onDone    func()
	onTick    func(time.Duration)
}

// New creates an idle timer set to minutes.
func New(minutes float64) (*Timer, error) {
	d, err := duration(minutes)
	if err != nil {
		return nil, err
	}
	return &Timer{total: d, remaining: d, interval: time.Second}, nil
}

func duration(minutes float64) (time.Duration, error) {
	if minutes < MinMinutes || minutes > MaxMinutes {
		return 0, ErrInvalidDuration
	}
	if steps := minutes / StepMinutes; steps != math.Trunc(steps) {
		return 0, ErrInvalidDuration
	}
	return time.Duration(minutes * float64(time.Minute)), nil
}

// WithInterval sets how often Run ticks.
func (t *Timer) WithInterval(d time.Duration) *Timer {
	t.interval = d
	return t
}

// OnDone registers a callback fired once when the countdown reaches zero.
func (t *Timer) OnDone(fn func()) *Timer {
	t.onDone = fn
	return t
}

// OnTick registers a callback fired with the remaining time after every tick.
func (t *Timer) OnTick(fn func(time.Duration)) *Timer {
	t.onTick = fn
	return t
}

// Start resumes or begins the countdown.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Finished {
		t.remaining = t.total
	}
	t.state = Running
}

// Pause stops the countdown and keeps the remaining time.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Running {
		t.state = Paused
	}
}

// Reset stops the countdown and restores the configured time.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Idle
	t.remaining = t.total
}

// SetMinutes changes the configured time and resets the countdown to it.
func (t *Timer) SetMinutes(minutes float64) error {
	d, err := duration(minutes)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = d
	t.remaining = d
	t.state = Idle
	return nil
}

// Minutes returns the configured time.
func (t *Timer) Minutes() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total.Minutes()
}

// Remaining returns the time left.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// State returns the run state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Tick advances a running timer by elapsed and reports whether it just finished.
// Ticks while idle or paused are ignored.
func (t *Timer) Tick(elapsed time.Duration) bool {
	t.mu.Lock()
	if t.state != Running {
		t.mu.Unlock()
		return false
	}
	t.remaining -= elapsed
	finished := t.remaining <= 0
	if finished {
		t.remaining = 0
		t.state = Finished
	}
	remaining := t.remaining
	onTick, onDone := t.onTick, t.onDone
	t.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	if finished && onDone != nil {
		onDone()
	}
	return finished
}

// Run starts the timer and ticks it until it finishes, is paused or reset,
// or ctx is cancelled. Cancellation pauses the timer.
func (t *Timer) Run(ctx context.Context) error {
	t.Start()
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Pause()
			return ctx.Err()
		case <-ticker.C:
			if t.Tick(t.interval) {
				return nil
			}
			if t.State() != Running {
				return nil
			}
		}
	}
}

// Format renders d as MM:SS.
func Format(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

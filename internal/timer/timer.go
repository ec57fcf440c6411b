// Package timer provides the countdown/repeat timer used by every rate-limited
// behaviour in the simulation (fire rate, enemy fire rate, hit-marker flash).
package timer

import "time"

// Mode selects what a timer does once it reaches its duration.
type Mode int

const (
	Once      Mode = iota // Stays finished until Reset
	Repeating             // Wraps and keeps counting completions
)

// Timer advances by elapsed time each tick.
// A Once timer is finished from the tick elapsed reaches duration until Reset.
// A Repeating timer is finished only on ticks that cross a period boundary.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     Mode

	finished bool
}

// New creates a timer. duration must be positive.
func New(duration time.Duration, mode Mode) *Timer {
	if duration <= 0 {
		panic("timer: duration must be positive")
	}
	return &Timer{duration: duration, mode: mode}
}

// Tick advances the timer by dt and returns the number of completions that
// happened during this call. Once timers report at most one completion, on the
// tick they finish. Negative dt is treated as zero.
func (t *Timer) Tick(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	completions := 0

	switch t.mode {
	case Repeating:
		t.elapsed += dt
		if t.elapsed >= t.duration {
			completions = int(t.elapsed / t.duration)
			t.elapsed %= t.duration
		}
		t.finished = completions > 0

	default:
		if t.finished {
			return 0
		}
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.elapsed = t.duration
			t.finished = true
			completions = 1
		}
	}

	return completions
}

// Reset zeroes elapsed time and clears the finished state.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
}

// SetElapsed moves the timer to d without reporting completions.
// For a Once timer, reaching the duration marks it finished.
func (t *Timer) SetElapsed(d time.Duration) {
	if d < 0 {
		d = 0
	}
	if t.mode == Once {
		if d >= t.duration {
			d = t.duration
		}
		t.finished = d == t.duration
	}
	t.elapsed = d
}

// Finished reports whether the timer is finished (see Timer).
func (t *Timer) Finished() bool { return t.finished }

func (t *Timer) Elapsed() time.Duration { return t.elapsed }

// Remaining returns the time left until the next completion.
func (t *Timer) Remaining() time.Duration {
	if t.mode == Once && t.finished {
		return 0
	}
	return t.duration - t.elapsed
}

// Fraction returns elapsed/duration in [0,1].
func (t *Timer) Fraction() float64 {
	return float64(t.elapsed) / float64(t.duration)
}

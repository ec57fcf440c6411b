package timer

import (
	"testing"
	"time"
)

func TestOnceFinishesOnExactTick(t *testing.T) {
	tm := New(100*time.Millisecond, Once)

	if n := tm.Tick(50 * time.Millisecond); n != 0 || tm.Finished() {
		t.Fatalf("tick 1: completions=%d finished=%v, want 0 false", n, tm.Finished())
	}
	if n := tm.Tick(50 * time.Millisecond); n != 1 || !tm.Finished() {
		t.Fatalf("tick 2: completions=%d finished=%v, want 1 true", n, tm.Finished())
	}
	if n := tm.Tick(50 * time.Millisecond); n != 0 || !tm.Finished() {
		t.Fatalf("tick 3: completions=%d finished=%v, want 0 true", n, tm.Finished())
	}
	if tm.Elapsed() != 100*time.Millisecond {
		t.Errorf("elapsed should saturate at duration, got %v", tm.Elapsed())
	}
}

func TestOnceResetClearsFinished(t *testing.T) {
	tm := New(100*time.Millisecond, Once)
	tm.Tick(time.Second)
	tm.Reset()

	if tm.Finished() {
		t.Fatal("expected timer to be unfinished after reset")
	}
	if tm.Elapsed() != 0 {
		t.Errorf("expected elapsed 0 after reset, got %v", tm.Elapsed())
	}
}

func TestRepeatingReportsCompletions(t *testing.T) {
	tests := []struct {
		name        string
		duration    time.Duration
		ticks       []time.Duration
		completions []int
		finalElapse time.Duration
	}{
		{
			name:        "one boundary per two ticks",
			duration:    100 * time.Millisecond,
			ticks:       []time.Duration{50 * time.Millisecond, 50 * time.Millisecond, 50 * time.Millisecond, 50 * time.Millisecond},
			completions: []int{0, 1, 0, 1},
			finalElapse: 0,
		},
		{
			name:        "frame spike crosses several boundaries",
			duration:    100 * time.Millisecond,
			ticks:       []time.Duration{350 * time.Millisecond},
			completions: []int{3},
			finalElapse: 50 * time.Millisecond,
		},
		{
			name:        "zero dt",
			duration:    time.Second,
			ticks:       []time.Duration{0, 0},
			completions: []int{0, 0},
			finalElapse: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := New(tt.duration, Repeating)
			for i, dt := range tt.ticks {
				got := tm.Tick(dt)
				if got != tt.completions[i] {
					t.Fatalf("tick %d: completions=%d, want %d", i, got, tt.completions[i])
				}
				if tm.Finished() != (got > 0) {
					t.Fatalf("tick %d: finished=%v with %d completions", i, tm.Finished(), got)
				}
			}
			if tm.Elapsed() != tt.finalElapse {
				t.Errorf("elapsed=%v, want %v", tm.Elapsed(), tt.finalElapse)
			}
		})
	}
}

func TestSetElapsed(t *testing.T) {
	rep := New(100*time.Millisecond, Repeating)
	rep.SetElapsed(100 * time.Millisecond)
	if rep.Finished() {
		t.Fatal("SetElapsed must not report a completion")
	}
	if n := rep.Tick(time.Millisecond); n != 1 {
		t.Fatalf("primed repeating timer should complete on next tick, got %d", n)
	}

	once := New(100*time.Millisecond, Once)
	once.SetElapsed(time.Second)
	if !once.Finished() || once.Remaining() != 0 {
		t.Fatalf("once timer set past duration should be finished, remaining=%v", once.Remaining())
	}
}

func TestFractionAndRemaining(t *testing.T) {
	tm := New(200*time.Millisecond, Repeating)
	tm.Tick(50 * time.Millisecond)

	if f := tm.Fraction(); f != 0.25 {
		t.Errorf("fraction=%v, want 0.25", f)
	}
	if r := tm.Remaining(); r != 150*time.Millisecond {
		t.Errorf("remaining=%v, want 150ms", r)
	}
}

func TestNewPanicsOnNonPositiveDuration(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero duration")
		}
	}()
	New(0, Once)
}

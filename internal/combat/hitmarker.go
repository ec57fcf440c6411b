package combat

import (
	"time"

	"github.com/tomz197/strafe/internal/timer"
)

// HitMarker flashes for one timer period after a successful hit.
type HitMarker struct {
	timer *timer.Timer
}

// NewHitMarker creates a hidden marker that flashes for d.
func NewHitMarker(d time.Duration) *HitMarker {
	t := timer.New(d, timer.Once)
	t.SetElapsed(d)
	return &HitMarker{timer: t}
}

// Flash restarts the marker timer.
func (h *HitMarker) Flash() { h.timer.Reset() }

// Tick advances the marker timer.
func (h *HitMarker) Tick(dt time.Duration) { h.timer.Tick(dt) }

// Visible reports whether the flash is showing.
func (h *HitMarker) Visible() bool { return !h.timer.Finished() }

// Alpha is 1 while visible and 0 otherwise; the flash does not fade.
func (h *HitMarker) Alpha() float64 {
	if h.Visible() {
		return 1
	}
	return 0
}

// Elapsed returns time since the last flash, capped at the flash duration.
func (h *HitMarker) Elapsed() time.Duration { return h.timer.Elapsed() }

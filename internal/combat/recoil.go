package combat

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	RecoilKick         = 0.012 // Vertical impulse per shot
	RecoilPatternScale = 0.002 // Horizontal sweep amplitude
	RecoilLimit        = 0.03  // Both axes stay within ±RecoilLimit
	RecoilDecay        = 0.8   // Per-tick multiplicative decay
	RecoilToPointer    = 1000  // Recoil units to pointer pixels
)

// Recoil accumulates fire impulses and decays them every tick.
// The fire scheduler is the only writer on fire and the look controller the
// only writer on decay.
type Recoil struct {
	Vertical   float64
	Horizontal float64

	phase int // Monotonic shot phase driving the horizontal sweep
}

// ApplyFireImpulse kicks the view up and sweeps it sideways. completions is the
// number of fire-rate periods elapsed this tick; the sweep phase advances by it
// so the pattern stays in step with the fire rate under frame spikes.
func (r *Recoil) ApplyFireImpulse(completions int) {
	if completions < 1 {
		completions = 1
	}
	r.phase += completions

	r.Vertical -= RecoilKick
	r.Horizontal += math.Sin(float64(r.phase)) * RecoilPatternScale
	r.clamp()
}

// Decay multiplies both axes by factor, which is clamped to [0,1].
func (r *Recoil) Decay(factor float64) {
	factor = mgl64.Clamp(factor, 0, 1)
	r.Vertical *= factor
	r.Horizontal *= factor
	r.clamp()
}

// PointerDelta returns the recoil expressed as pointer motion.
func (r *Recoil) PointerDelta() mgl64.Vec2 {
	return mgl64.Vec2{r.Horizontal * RecoilToPointer, r.Vertical * RecoilToPointer}
}

// Phase returns the number of fire periods that have driven the sweep.
func (r *Recoil) Phase() int { return r.phase }

// Reset clears recoil and the sweep phase.
func (r *Recoil) Reset() { *r = Recoil{} }

func (r *Recoil) clamp() {
	r.Vertical = mgl64.Clamp(r.Vertical, -RecoilLimit, RecoilLimit)
	r.Horizontal = mgl64.Clamp(r.Horizontal, -RecoilLimit, RecoilLimit)
}

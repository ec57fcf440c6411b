package combat

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// AimRate is how fast the aim transition approaches its target, per second.
const AimRate = 5.0

// Aim is the aim-down-sights state. Transition is the only value consumers
// read: 0 is hipfire, 1 fully aimed.
type Aim struct {
	Aiming     bool
	Transition float64
}

// Update snapshots the aim input and moves Transition toward its target.
// The step is capped at the full distance so long frames never overshoot.
func (a *Aim) Update(aiming bool, dt time.Duration) {
	a.Aiming = aiming
	target := 0.0
	if aiming {
		target = 1.0
	}

	step := AimRate * dt.Seconds()
	step = mgl64.Clamp(step, 0, 1)
	a.Transition += (target - a.Transition) * step
	a.Transition = mgl64.Clamp(a.Transition, 0, 1)
}

// SpeedFactor scales movement: 1 at hipfire, 0.4 fully aimed.
func (a Aim) SpeedFactor() float64 {
	return 0.4 + 0.6*(1-a.Transition)
}

// FOV blends between the hipfire and aimed field of view.
func (a Aim) FOV(hip, ads float64) float64 {
	return hip + (ads-hip)*a.Transition
}

// CameraOffset blends the camera local position.
func (a Aim) CameraOffset(hip, ads mgl64.Vec3) mgl64.Vec3 {
	return hip.Add(ads.Sub(hip).Mul(a.Transition))
}

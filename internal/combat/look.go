package combat

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PitchLimit keeps the camera just short of straight up or down.
const PitchLimit = math.Pi/2 - 0.01

var (
	axisUp    = mgl64.Vec3{0, 1, 0}
	axisRight = mgl64.Vec3{1, 0, 0}
)

// Look sums this tick's pointer motion with the recoil pointer delta, decays
// recoil, and turns the player (yaw) and camera (pitch). The camera position
// follows the aim transition every tick, even with no motion.
func (w *World) Look(motion []mgl64.Vec2) {
	var delta mgl64.Vec2
	for _, m := range motion {
		delta = delta.Add(m)
	}
	delta = delta.Add(w.Recoil.PointerDelta())
	w.Recoil.Decay(RecoilDecay)

	cam, ok := w.Camera()
	if !ok {
		w.logger.Debug("look skipped: no camera")
		return
	}
	cam.LocalPosition = w.Aim.CameraOffset(w.Config.CameraHipOffset, w.Config.CameraADSOffset)

	if delta.X() == 0 && delta.Y() == 0 {
		return
	}

	player, ok := w.Player()
	if !ok {
		w.logger.Debug("look skipped: no player")
		return
	}
	body, ok := w.Physics.Transform(player)
	if !ok {
		w.logger.Debug("look skipped: player has no body")
		return
	}

	yaw := mgl64.QuatRotate(-delta.X()*w.Sensitivity.Horizontal, axisUp)
	w.Physics.SetRotation(player, yaw.Mul(body.Rotation).Normalize())

	cam.Pitch = mgl64.Clamp(cam.Pitch-delta.Y()*w.Sensitivity.Vertical, -PitchLimit, PitchLimit)
	cam.Rotation = mgl64.QuatRotate(cam.Pitch, axisRight)
}

// Yaw returns the heading of rot around +Y, zero when facing -Z.
func Yaw(rot mgl64.Quat) float64 {
	f := rot.Rotate(mgl64.Vec3{0, 0, -1})
	return math.Atan2(-f.X(), -f.Z())
}

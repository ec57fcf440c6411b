package combat

import "github.com/go-gl/mathgl/mgl64"

// Move sets the player's horizontal velocity from the movement keys relative to
// its heading. Vertical velocity is left to physics.
func (w *World) Move(in Input) {
	player, ok := w.Player()
	if !ok {
		w.logger.Debug("move skipped: no player")
		return
	}
	body, ok := w.Physics.Transform(player)
	if !ok {
		w.logger.Debug("move skipped: player has no body", "player", player)
		return
	}
	vel, ok := w.Physics.LinearVelocity(player)
	if !ok {
		w.logger.Debug("move skipped: player has no velocity", "player", player)
		return
	}

	forward := flatten(body.Forward())
	right := flatten(body.Right())

	var dir mgl64.Vec3
	if in.Forward {
		dir = dir.Add(forward)
	}
	if in.Back {
		dir = dir.Sub(forward)
	}
	if in.Right {
		dir = dir.Add(right)
	}
	if in.Left {
		dir = dir.Sub(right)
	}

	var horizontal mgl64.Vec3
	if dir.LenSqr() > 0 {
		horizontal = dir.Normalize().Mul(w.Config.WalkSpeed * w.Aim.SpeedFactor())
	}
	w.Physics.SetLinearVelocity(player, mgl64.Vec3{horizontal.X(), vel.Y(), horizontal.Z()})
}

func flatten(v mgl64.Vec3) mgl64.Vec3 {
	v[1] = 0
	if v.LenSqr() == 0 {
		return v
	}
	return v.Normalize()
}

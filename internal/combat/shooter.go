package combat

import (
	"time"

	"github.com/tomz197/strafe/internal/entity"
)

// FirePlayer runs the player fire scheduler. Releasing the trigger resets the
// fire timer, so a fresh press never inherits partial charge. While held, one
// projectile spawns from the barrel on every tick the timer completes, and the
// recoil impulse advances by the number of completed periods.
func (w *World) FirePlayer(firing bool, dt time.Duration) (entity.ID, bool) {
	if !firing {
		w.FireTimer.Reset()
		return entity.Nil, false
	}

	n := w.FireTimer.Tick(dt)
	if n == 0 {
		return entity.Nil, false
	}

	muzzle, ok := w.BarrelTransform()
	if !ok {
		w.logger.Debug("fire skipped: barrel unavailable")
		return entity.Nil, false
	}

	id := w.SpawnProjectile(FactionPlayer, muzzle.Position, muzzle.Forward(), w.Config.PlayerProjectileLifetime)
	w.Recoil.ApplyFireImpulse(n)
	return id, true
}

// FireEnemies ticks the shared enemy fire timer and, when it completes, has
// every enemy shoot once at the player's current position.
func (w *World) FireEnemies(dt time.Duration) []entity.ID {
	if w.EnemyFireTimer.Tick(dt) == 0 {
		return nil
	}

	player, ok := w.Player()
	if !ok {
		w.logger.Debug("enemy fire skipped: no player")
		return nil
	}
	target, ok := w.Physics.Transform(player)
	if !ok {
		w.logger.Debug("enemy fire skipped: player has no body")
		return nil
	}

	var spawned []entity.ID
	for _, id := range w.Enemies.IDs() {
		e, _ := w.Enemies.Get(id)
		aim := target.Position.Sub(e.Position)
		if aim.LenSqr() == 0 {
			continue
		}
		dir := aim.Normalize()
		origin := e.Position.Add(dir.Mul(w.Config.EnemyMuzzleClearance))

		p := w.SpawnProjectile(FactionEnemy, origin, dir, w.Config.EnemyProjectileLifetime)
		spawned = append(spawned, p)
		w.logger.Debug("enemy fired", "enemy", id, "projectile", p)
	}
	return spawned
}

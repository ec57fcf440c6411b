package combat

import (
	"time"

	"github.com/tomz197/strafe/internal/entity"
	"github.com/tomz197/strafe/internal/physics"
)

// Resolution counts what Resolve did with a batch of events.
type Resolution struct {
	Hits     int // Damage applied
	Kills    int
	Consumed int // Projectiles removed
	Ignored  int // Events that changed nothing
}

// Resolve applies this tick's collision events in order. Only started events
// involving a live projectile matter; every removal is immediate, so later
// events naming a removed entity are skipped as stale.
func (w *World) Resolve(events []physics.CollisionEvent) Resolution {
	var res Resolution
	for _, ev := range events {
		if ev.Kind != physics.Started {
			continue
		}

		proj, target, ok := w.projectileContact(ev)
		if !ok {
			res.Ignored++
			continue
		}
		p, _ := w.Projectiles.Get(proj)

		rule, ok := w.Rules[p.Faction]
		if !ok {
			w.logger.Warn("no rule for faction", "faction", p.Faction, "projectile", proj)
			res.Ignored++
			continue
		}
		if rule.Ignore != nil && rule.Ignore(w, target) {
			res.Ignored++
			continue
		}

		if rule.Damages != nil && rule.Damages(w, target) {
			w.damage(target, rule, &res)
		}

		w.Despawn(proj)
		res.Consumed++
	}
	return res
}

func (w *World) damage(target entity.ID, rule Rule, res *Resolution) {
	e, ok := w.Enemies.Get(target)
	if !ok {
		return
	}

	res.Hits++
	if rule.FlashHitMarker {
		w.HitMarker.Flash()
	}

	if e.Health.Damage(rule.Damage) {
		w.logger.Info("enemy killed", "enemy", target)
		w.Despawn(target)
		res.Kills++
		return
	}
	w.logger.Debug("enemy hit", "enemy", target, "health", e.Health.Current)
}

// projectileContact returns the live projectile in ev and the entity it touched.
func (w *World) projectileContact(ev physics.CollisionEvent) (entity.ID, entity.ID, bool) {
	for _, id := range [2]entity.ID{ev.A, ev.B} {
		if w.Entities.Alive(id) && w.Projectiles.Has(id) {
			other, _ := ev.Other(id)
			return id, other, true
		}
	}
	return entity.Nil, entity.Nil, false
}

// AgeProjectiles counts down every projectile by dt, refreshes its cached
// motion from physics, and removes those whose time has run out.
func (w *World) AgeProjectiles(dt time.Duration) int {
	expired := 0
	for _, id := range w.Projectiles.IDs() {
		p, _ := w.Projectiles.Get(id)
		p.Remaining -= dt

		if p.Remaining <= 0 {
			w.Despawn(id)
			expired++
			continue
		}

		if tr, ok := w.Physics.Transform(id); ok {
			p.Position = tr.Position
		}
		if v, ok := w.Physics.LinearVelocity(id); ok {
			p.Velocity = v
		}
	}
	return expired
}

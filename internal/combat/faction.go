package combat

import "github.com/tomz197/strafe/internal/entity"

// Faction is the side that fired a projectile.
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	}
	return "unknown"
}

// TargetFilter decides something about the entity a projectile touched.
type TargetFilter func(w *World, target entity.ID) bool

// Rule is how the resolver treats a faction's projectiles.
//
// An ignored contact leaves the projectile alive. Any other contact consumes
// the projectile, and a contact with a damageable target also applies Damage.
type Rule struct {
	Ignore         TargetFilter
	Damages        TargetFilter
	Damage         float64
	FlashHitMarker bool
}

// Rules maps a shooter faction to its resolution rule.
type Rules map[Faction]Rule

// DefaultRules returns the stock table. Player projectiles pass through the
// player and damage enemies; enemy projectiles only react to enemies, which
// absorb them without taking damage.
func DefaultRules(damage float64) Rules {
	return Rules{
		FactionPlayer: {
			Ignore:         IsPlayer,
			Damages:        IsEnemy,
			Damage:         damage,
			FlashHitMarker: true,
		},
		FactionEnemy: {
			Ignore: Not(IsEnemy),
		},
	}
}

// IsPlayer matches the live player body.
func IsPlayer(w *World, id entity.ID) bool {
	p, ok := w.Player()
	return ok && p == id
}

// IsEnemy matches a live enemy.
func IsEnemy(w *World, id entity.ID) bool {
	return w.Entities.Alive(id) && w.Enemies.Has(id)
}

// Not inverts a filter.
func Not(f TargetFilter) TargetFilter {
	return func(w *World, id entity.ID) bool { return !f(w, id) }
}

// Package combat is the gameplay core: projectile lifecycle, collision
// resolution, fire scheduling, aim and look control, and the tick that runs
// them in a fixed order against a physics.Service.
package combat

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/strafe/internal/entity"
	"github.com/tomz197/strafe/internal/physics"
	"github.com/tomz197/strafe/internal/timer"
)

// Projectile is a live bullet. Position and Velocity mirror the physics body
// and are refreshed each tick for rendering.
type Projectile struct {
	Faction   Faction
	Remaining time.Duration
	Position  mgl64.Vec3
	Velocity  mgl64.Vec3
}

// Health never increases through damage.
type Health struct {
	Current float64
	Max     float64
}

// Damage subtracts amount and reports whether the holder is dead.
// Non-positive amounts are ignored.
func (h *Health) Damage(amount float64) bool {
	if amount > 0 {
		h.Current -= amount
	}
	return h.Current <= 0
}

// Fraction returns Current/Max clamped to [0,1].
func (h Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return mgl64.Clamp(h.Current/h.Max, 0, 1)
}

// Enemy is a stationary target.
type Enemy struct {
	Position mgl64.Vec3
	Health   Health
}

// Camera is the first-person view attached to the player.
type Camera struct {
	Pitch         float64
	Rotation      mgl64.Quat // Local rotation, pitch only
	LocalPosition mgl64.Vec3
	FOV           float64
}

// Local returns the camera transform relative to the player body.
func (c Camera) Local() physics.Transform {
	return physics.Transform{Position: c.LocalPosition, Rotation: c.Rotation}
}

// World owns every entity and the resources the tick phases share.
type World struct {
	Config  Config
	Rules   Rules
	Physics physics.Service

	Entities    *entity.Registry
	Projectiles *entity.Store[Projectile]
	Enemies     *entity.Store[Enemy]
	Cameras     *entity.Store[Camera]

	Recoil         Recoil
	Aim            Aim
	Sensitivity    Sensitivity
	HitMarker      *HitMarker
	FireTimer      *timer.Timer
	EnemyFireTimer *timer.Timer

	player   entity.ID
	camera   entity.ID
	barrel   entity.ID
	children map[entity.ID][]entity.ID
	parent   map[entity.ID]entity.ID
	bodies   map[entity.ID]struct{}

	logger *log.Logger
}

// NewWorld creates an empty world. Use SetupScene to populate it.
func NewWorld(cfg Config, phys physics.Service, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}

	return &World{
		Config:  cfg,
		Rules:   DefaultRules(cfg.Damage),
		Physics: phys,

		Entities:    entity.NewRegistry(),
		Projectiles: entity.NewStore[Projectile](),
		Enemies:     entity.NewStore[Enemy](),
		Cameras:     entity.NewStore[Camera](),

		Sensitivity:    cfg.Sensitivity,
		HitMarker:      NewHitMarker(cfg.HitMarkerFlash),
		FireTimer:      timer.New(cfg.FireInterval, timer.Repeating),
		EnemyFireTimer: timer.New(cfg.EnemyFireInterval, timer.Repeating),

		children: make(map[entity.ID][]entity.ID),
		parent:   make(map[entity.ID]entity.ID),
		bodies:   make(map[entity.ID]struct{}),

		logger: logger.WithPrefix("combat"),
	}
}

// Logger returns the world logger.
func (w *World) Logger() *log.Logger { return w.logger }

// Player returns the player body if it is alive.
func (w *World) Player() (entity.ID, bool) {
	return w.player, w.Entities.Alive(w.player)
}

// Camera returns the player camera if it is alive.
func (w *World) Camera() (*Camera, bool) {
	if !w.Entities.Alive(w.camera) {
		return nil, false
	}
	return w.Cameras.Get(w.camera)
}

// CameraTransform returns the camera transform in world space.
func (w *World) CameraTransform() (physics.Transform, bool) {
	player, ok := w.Player()
	if !ok {
		return physics.Transform{}, false
	}
	cam, ok := w.Camera()
	if !ok {
		return physics.Transform{}, false
	}
	body, ok := w.Physics.Transform(player)
	if !ok {
		return physics.Transform{}, false
	}
	return body.Mul(cam.Local()), true
}

// BarrelTransform returns the muzzle transform in world space.
func (w *World) BarrelTransform() (physics.Transform, bool) {
	if !w.Entities.Alive(w.barrel) {
		return physics.Transform{}, false
	}
	view, ok := w.CameraTransform()
	if !ok {
		return physics.Transform{}, false
	}
	return view.Mul(physics.At(w.Config.BarrelOffset)), true
}

// Spawn creates an entity, registering body with physics when non-nil.
func (w *World) Spawn(body *physics.Body) entity.ID {
	id := w.Entities.Create()
	if body != nil {
		w.Physics.Insert(id, *body)
		w.bodies[id] = struct{}{}
	}
	return id
}

// Attach makes child part of parent so it is despawned with it.
func (w *World) Attach(parent, child entity.ID) {
	if old, ok := w.parent[child]; ok {
		w.detach(old, child)
	}
	w.children[parent] = append(w.children[parent], child)
	w.parent[child] = parent
}

// Children returns the direct attachments of id.
func (w *World) Children(id entity.ID) []entity.ID {
	return w.children[id]
}

// Despawn removes id, its attachments, and their physics bodies.
// Stale or unknown IDs are ignored. Returns false if id was not alive.
func (w *World) Despawn(id entity.ID) bool {
	if !w.Entities.Alive(id) {
		return false
	}

	for _, child := range w.children[id] {
		delete(w.parent, child)
		w.Despawn(child)
	}
	delete(w.children, id)
	if p, ok := w.parent[id]; ok {
		w.detach(p, id)
	}

	if _, ok := w.bodies[id]; ok {
		w.Physics.Remove(id)
		delete(w.bodies, id)
	}
	w.Projectiles.Remove(id)
	w.Enemies.Remove(id)
	w.Cameras.Remove(id)
	w.Entities.Destroy(id)
	return true
}

func (w *World) detach(parent, child entity.ID) {
	kids := w.children[parent]
	for i, k := range kids {
		if k == child {
			w.children[parent] = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	delete(w.parent, child)
}

// SpawnProjectile creates a projectile travelling along dir at the configured
// speed. dir need not be normalised.
func (w *World) SpawnProjectile(f Faction, origin, dir mgl64.Vec3, lifetime time.Duration) entity.ID {
	if dir.LenSqr() > 0 {
		dir = dir.Normalize()
	}
	vel := dir.Mul(w.Config.ProjectileSpeed)

	id := w.Spawn(&physics.Body{
		Kind:             physics.Dynamic,
		Shape:            physics.Ball(w.Config.ProjectileRadius),
		Transform:        physics.At(origin),
		Velocity:         vel,
		GravityScale:     w.Config.ProjectileGravity,
		ReportCollisions: true,
	})
	w.Projectiles.Set(id, Projectile{
		Faction:   f,
		Remaining: lifetime,
		Position:  origin,
		Velocity:  vel,
	})
	return id
}

// SpawnEnemy creates a fixed enemy body with full health.
func (w *World) SpawnEnemy(pos mgl64.Vec3, health float64) entity.ID {
	id := w.Spawn(&physics.Body{
		Kind:      physics.Fixed,
		Shape:     physics.CapsuleY(0.5, 0.6),
		Transform: physics.At(pos),
	})
	w.Enemies.Set(id, Enemy{
		Position: pos,
		Health:   Health{Current: health, Max: health},
	})
	return id
}

package combat

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/tomz197/strafe/internal/entity"
	"github.com/tomz197/strafe/internal/physics"
)

// Input is the per-tick player input snapshot.
type Input struct {
	Forward, Back, Left, Right bool

	Fire bool
	Aim  bool

	// Motion holds raw pointer deltas in pixels since the previous tick,
	// +X right and +Y down.
	Motion []mgl64.Vec2
}

// TickReport summarises one Step.
type TickReport struct {
	Spawned int // Projectiles created
	Hits    int
	Kills   int
	Expired int
	Ignored int // Collision events that changed nothing
}

// Frame is the state a phase works on during one Step.
type Frame struct {
	Input  Input
	Dt     time.Duration
	Events []physics.CollisionEvent
	Report TickReport
}

// Phase is one step of the tick. Phases run in slice order.
type Phase struct {
	Name string
	Run  func(w *World, f *Frame)
}

// DefaultPhases is the stock tick order. Aim runs before the consumers of
// the transition. Both shooters run before look, so look sees this tick's
// recoil. Resolution runs on events from this tick's physics step, before
// projectiles age.
func DefaultPhases() []Phase {
	return []Phase{
		{Name: "aim", Run: func(w *World, f *Frame) { w.Aim.Update(f.Input.Aim, f.Dt) }},
		{Name: "move", Run: func(w *World, f *Frame) { w.Move(f.Input) }},
		{Name: "fire", Run: firePhase},
		{Name: "enemy-fire", Run: func(w *World, f *Frame) { f.Report.Spawned += len(w.FireEnemies(f.Dt)) }},
		{Name: "look", Run: func(w *World, f *Frame) { w.Look(f.Input.Motion) }},
		{Name: "view", Run: viewPhase},
		{Name: "physics", Run: physicsPhase},
		{Name: "resolve", Run: resolvePhase},
		{Name: "age", Run: func(w *World, f *Frame) { f.Report.Expired += w.AgeProjectiles(f.Dt) }},
	}
}

func firePhase(w *World, f *Frame) {
	if _, ok := w.FirePlayer(f.Input.Fire, f.Dt); ok {
		f.Report.Spawned++
	}
}

func viewPhase(w *World, f *Frame) {
	if cam, ok := w.Camera(); ok {
		cam.FOV = w.Aim.FOV(w.Config.HipFOV, w.Config.ADSFOV)
	}
	w.HitMarker.Tick(f.Dt)
}

func physicsPhase(w *World, f *Frame) {
	w.Physics.Step(f.Dt)
	f.Events = w.Physics.DrainEvents()
}

func resolvePhase(w *World, f *Frame) {
	res := w.Resolve(f.Events)
	f.Report.Hits += res.Hits
	f.Report.Kills += res.Kills
	f.Report.Ignored += res.Ignored
}

// Sim drives a World one tick at a time. It is not safe for concurrent use.
type Sim struct {
	ID     uuid.UUID
	world  *World
	phases []Phase
	tick   uint64
	last   TickReport
	logger *log.Logger
}

// SimOption configures a Sim.
type SimOption func(*Sim)

// WithPhases replaces the tick order.
func WithPhases(phases []Phase) SimOption {
	return func(s *Sim) { s.phases = phases }
}

// NewSim wraps world. The world is expected to be populated already.
func NewSim(world *World, opts ...SimOption) *Sim {
	s := &Sim{
		ID:     uuid.New(),
		world:  world,
		phases: DefaultPhases(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = world.Logger().With("sim", s.ID.String()[:8])
	return s
}

// World returns the simulated world.
func (s *Sim) World() *World { return s.world }

// Tick returns the number of completed steps.
func (s *Sim) Tick() uint64 { return s.tick }

// Step advances the world by dt with the given input.
func (s *Sim) Step(in Input, dt time.Duration) TickReport {
	if dt < 0 {
		dt = 0
	}
	f := &Frame{Input: in, Dt: dt}
	for _, p := range s.phases {
		p.Run(s.world, f)
	}

	s.tick++
	s.last = f.Report
	if f.Report.Kills > 0 {
		s.logger.Info("tick", "n", s.tick, "hits", f.Report.Hits, "kills", f.Report.Kills)
	}
	return f.Report
}

// Reset clears projectiles and enemies, respawns the stock enemy, and returns
// the player to its spawn with fresh aim, recoil and timers.
func (s *Sim) Reset() {
	w := s.world
	for _, id := range w.Projectiles.IDs() {
		w.Despawn(id)
	}
	for _, id := range w.Enemies.IDs() {
		w.Despawn(id)
	}

	w.Aim = Aim{}
	w.Recoil.Reset()
	w.FireTimer.Reset()
	w.EnemyFireTimer.Reset()
	w.HitMarker = NewHitMarker(w.Config.HitMarkerFlash)

	SpawnPlayer(w, w.Config.PlayerSpawn)
	w.SpawnEnemy(w.Config.EnemySpawn, w.Config.EnemyHealth)
	s.logger.Info("reset")
}

// ProjectileView is a read-only projectile for rendering.
type ProjectileView struct {
	ID        entity.ID
	Faction   Faction
	Position  mgl64.Vec3
	Remaining time.Duration
}

// EnemyView is a read-only enemy for rendering.
type EnemyView struct {
	ID       entity.ID
	Position mgl64.Vec3
	Health   Health
}

// Snapshot is a copy of the state a front-end draws.
type Snapshot struct {
	Tick uint64

	PlayerAlive    bool
	PlayerPosition mgl64.Vec3
	PlayerYaw      float64
	Pitch          float64
	FOV            float64

	Aim            float64 // Transition
	Recoil         Recoil
	Shots          int // Fire periods completed since the last reset
	HitMarkerAlpha float64

	FireCharge  float64       // Progress toward the next player shot
	EnemyFireIn time.Duration // Until the enemies next fire
	Entities    int

	Projectiles []ProjectileView
	Enemies     []EnemyView
	Last        TickReport
}

// Snapshot copies the current state.
func (s *Sim) Snapshot() Snapshot {
	w := s.world
	snap := Snapshot{
		Tick:           s.tick,
		Aim:            w.Aim.Transition,
		Recoil:         w.Recoil,
		Shots:          w.Recoil.Phase(),
		HitMarkerAlpha: w.HitMarker.Alpha(),
		FireCharge:     w.FireTimer.Fraction(),
		EnemyFireIn:    w.EnemyFireTimer.Remaining(),
		Entities:       w.Entities.Count(),
		Last:           s.last,
		Projectiles:    make([]ProjectileView, 0, w.Projectiles.Len()),
		Enemies:        make([]EnemyView, 0, w.Enemies.Len()),
	}

	if player, ok := w.Player(); ok {
		if tr, ok := w.Physics.Transform(player); ok {
			snap.PlayerAlive = true
			snap.PlayerPosition = tr.Position
			snap.PlayerYaw = Yaw(tr.Rotation)
		}
	}
	if cam, ok := w.Camera(); ok {
		snap.Pitch = cam.Pitch
		snap.FOV = cam.FOV
	}

	for _, id := range w.Projectiles.IDs() {
		p, _ := w.Projectiles.Get(id)
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			ID:        id,
			Faction:   p.Faction,
			Position:  p.Position,
			Remaining: p.Remaining,
		})
	}
	for _, id := range w.Enemies.IDs() {
		e, _ := w.Enemies.Get(id)
		snap.Enemies = append(snap.Enemies, EnemyView{ID: id, Position: e.Position, Health: e.Health})
	}
	return snap
}

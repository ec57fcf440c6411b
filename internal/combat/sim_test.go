package combat

import (
	"io"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/strafe/internal/physics"
	"pgregory.net/rapid"
)

const tick = time.Second / 60

func newLocalSim(t testing.TB) *Sim {
	t.Helper()
	logger := log.New(io.Discard)
	w := NewWorld(DefaultConfig(), physics.NewLocal(physics.LocalOptions{Logger: logger}), logger)
	SetupScene(w)
	return NewSim(w)
}

func countFaction(w *World, f Faction) int {
	n := 0
	for _, id := range w.Projectiles.IDs() {
		if p, _ := w.Projectiles.Get(id); p.Faction == f {
			n++
		}
	}
	return n
}

// aimAt points the player and camera straight at target.
func aimAt(t *testing.T, w *World, target mgl64.Vec3) {
	t.Helper()
	player, _ := w.Player()
	body, ok := w.Physics.Transform(player)
	if !ok {
		t.Fatal("player has no body")
	}
	d := target.Sub(body.Position)
	yaw := math.Atan2(-d.X(), -d.Z())
	w.Physics.SetRotation(player, mgl64.QuatRotate(yaw, axisUp))

	view, _ := w.CameraTransform()
	d = target.Sub(view.Position)
	cam, _ := w.Camera()
	cam.Pitch = math.Atan2(d.Y(), math.Hypot(d.X(), d.Z()))
	cam.Rotation = mgl64.QuatRotate(cam.Pitch, axisRight)
}

func TestDefaultPhaseOrder(t *testing.T) {
	var names []string
	for _, p := range DefaultPhases() {
		names = append(names, p.Name)
	}
	want := []string{"aim", "move", "fire", "enemy-fire", "look", "view", "physics", "resolve", "age"}
	if !slices.Equal(names, want) {
		t.Errorf("phases=%v, want %v", names, want)
	}
}

func TestFireGating(t *testing.T) {
	s := newLocalSim(t)
	w := s.World()
	dt := 50 * time.Millisecond

	s.Step(Input{Fire: true}, dt)
	if n := countFaction(w, FactionPlayer); n != 0 {
		t.Fatalf("tick 1 spawned %d projectiles, want 0", n)
	}
	s.Step(Input{Fire: true}, dt)
	if n := countFaction(w, FactionPlayer); n != 1 {
		t.Fatalf("tick 2 spawned %d projectiles, want 1", n)
	}

	// Releasing discards the partial charge.
	s.Step(Input{Fire: true}, dt)
	s.Step(Input{}, dt)
	s.Step(Input{Fire: true}, dt)
	if n := countFaction(w, FactionPlayer); n != 1 {
		t.Fatalf("re-press fired early: %d projectiles", n)
	}
	s.Step(Input{Fire: true}, dt)
	if n := countFaction(w, FactionPlayer); n != 2 {
		t.Fatalf("re-press should fire after a full period, got %d projectiles", n)
	}
}

func TestPrimedFireTimerShootsImmediately(t *testing.T) {
	s := newLocalSim(t)
	w := s.World()
	w.FireTimer.SetElapsed(w.Config.FireInterval - tick)

	rep := s.Step(Input{Fire: true}, tick)
	if rep.Spawned != 1 || countFaction(w, FactionPlayer) != 1 {
		t.Fatalf("primed timer should fire on the first tick: %+v", rep)
	}
	if w.Recoil.Vertical >= 0 {
		t.Error("firing should kick recoil upward")
	}
}

func TestProjectileExpiresAfterLifetime(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := newLocalSim(t)
		w := s.World()
		dt := time.Duration(rapid.Int64Range(int64(time.Millisecond), int64(time.Second)).Draw(rt, "dt"))
		life := w.Config.PlayerProjectileLifetime

		// Far above the arena so nothing is hit.
		id := w.SpawnProjectile(FactionPlayer, mgl64.Vec3{0, 500, 0}, mgl64.Vec3{1, 0, 0}, life)

		want := int((life + dt - 1) / dt)
		for n := 1; n <= want; n++ {
			w.AgeProjectiles(dt)
			alive := w.Projectiles.Has(id)
			if n < want && !alive {
				rt.Fatalf("removed after %d ticks of %v, want %d", n, dt, want)
			}
			if n == want && alive {
				rt.Fatalf("still alive after %d ticks of %v", n, dt)
			}
		}
	})
}

func TestEnemyFiresAtPlayer(t *testing.T) {
	s := newLocalSim(t)
	w := s.World()

	spawned := w.FireEnemies(w.Config.EnemyFireInterval)
	if len(spawned) != 1 {
		t.Fatalf("spawned %d enemy projectiles, want 1", len(spawned))
	}

	p, _ := w.Projectiles.Get(spawned[0])
	if p.Faction != FactionEnemy || p.Remaining != w.Config.EnemyProjectileLifetime {
		t.Errorf("projectile=%+v", p)
	}
	player, _ := w.Player()
	body, _ := w.Physics.Transform(player)
	toPlayer := body.Position.Sub(w.Config.EnemySpawn).Normalize()
	if dir := p.Velocity.Normalize(); dir.Dot(toPlayer) < 0.9999 {
		t.Errorf("enemy shot direction %v, want %v", dir, toPlayer)
	}
	if got := p.Velocity.Len(); math.Abs(got-w.Config.ProjectileSpeed) > 1e-9 {
		t.Errorf("speed=%v", got)
	}

	if w.FireEnemies(tick) != nil {
		t.Error("enemies fire once per period")
	}
}

func TestEnemyShotsSurvivePlayerContact(t *testing.T) {
	s := newLocalSim(t)
	w := s.World()
	for range 120 {
		s.Step(Input{}, tick)
	}

	before := countFaction(w, FactionEnemy)
	w.EnemyFireTimer.SetElapsed(w.Config.EnemyFireInterval - tick)
	s.Step(Input{}, tick)
	if countFaction(w, FactionEnemy) != before+1 {
		t.Fatal("enemy should have fired")
	}

	// 10 m at 100 m/s: well past the player after 12 ticks.
	for range 12 {
		s.Step(Input{}, tick)
	}
	if countFaction(w, FactionEnemy) != before+1 {
		t.Error("enemy projectiles pass through the player")
	}
}

func TestPlayerShotFromOriginHitsEnemy(t *testing.T) {
	logger := log.New(io.Discard)
	w := NewWorld(DefaultConfig(), physics.NewLocal(physics.LocalOptions{Logger: logger}), logger)

	// Camera sits 1.5 up and the barrel 0.5 ahead, so the muzzle is the origin facing -Z.
	SpawnPlayer(w, mgl64.Vec3{0, -1.5, 0.5})
	enemy := w.SpawnEnemy(w.Config.EnemySpawn, 100)

	w.FireTimer.SetElapsed(w.Config.FireInterval)
	shot, ok := w.FirePlayer(true, 0)
	if !ok {
		t.Fatal("primed timer should fire")
	}
	p, _ := w.Projectiles.Get(shot)
	if p.Position.Len() > 1e-12 {
		t.Errorf("spawned at %v, want origin", p.Position)
	}
	if p.Velocity.Sub(mgl64.Vec3{0, 0, -100}).Len() > 1e-9 {
		t.Errorf("velocity=%v, want (0,0,-100)", p.Velocity)
	}
	if p.Faction != FactionPlayer {
		t.Errorf("faction=%v", p.Faction)
	}

	if n := w.AgeProjectiles(30 * time.Millisecond); n != 0 || !w.Entities.Alive(shot) {
		t.Fatalf("shot should survive 0.03s, expired=%d", n)
	}

	res := w.Resolve([]physics.CollisionEvent{started(shot, enemy)})
	if res.Hits != 1 || res.Consumed != 1 {
		t.Fatalf("resolution=%+v", res)
	}
	e, _ := w.Enemies.Get(enemy)
	if e.Health.Current != 75 {
		t.Errorf("health=%v, want 75", e.Health.Current)
	}
	if w.HitMarker.Elapsed() != 0 || w.HitMarker.Alpha() != 1 {
		t.Errorf("hit marker elapsed=%v alpha=%v, want 0 and 1", w.HitMarker.Elapsed(), w.HitMarker.Alpha())
	}
	if w.Entities.Alive(shot) || w.Projectiles.Has(shot) {
		t.Error("shot should be consumed")
	}
}

func TestHoldFireKillsEnemy(t *testing.T) {
	s := newLocalSim(t)
	w := s.World()

	// Let the player land.
	for range 120 {
		s.Step(Input{}, tick)
	}

	enemies := w.Enemies.IDs()
	if len(enemies) != 1 {
		t.Fatalf("want one enemy, got %d", len(enemies))
	}
	enemy := enemies[0]
	target := w.Config.EnemySpawn

	var health []float64
	var kills int
	for i := 0; i < 600 && kills == 0; i++ {
		aimAt(t, w, target)
		rep := s.Step(Input{Fire: true}, tick)

		if rep.Hits > 0 {
			if w.HitMarker.Alpha() != 1 {
				t.Fatal("hit marker should show on the hit tick")
			}
			if e, ok := w.Enemies.Get(enemy); ok {
				health = append(health, e.Health.Current)
			}
		}
		kills += rep.Kills
	}

	if kills != 1 {
		t.Fatalf("enemy not killed, health trace %v", health)
	}
	if !slices.Equal(health, []float64{75, 50, 25}) {
		t.Errorf("health trace=%v, want [75 50 25]", health)
	}
	if w.Entities.Alive(enemy) || w.Enemies.Len() != 0 {
		t.Error("dead enemy should be removed")
	}
}

func TestSimResetAndSnapshot(t *testing.T) {
	s := newLocalSim(t)
	w := s.World()
	w.FireTimer.SetElapsed(w.Config.FireInterval)

	s.Step(Input{Fire: true, Aim: true}, tick)
	snap := s.Snapshot()
	if snap.Tick != 1 || len(snap.Projectiles) != 1 || len(snap.Enemies) != 1 {
		t.Fatalf("snapshot=%+v", snap)
	}
	// The primed period completes and the repeating timer keeps the overshoot.
	if want := float64(tick) / float64(w.Config.FireInterval); snap.Shots != 1 || snap.FireCharge != want {
		t.Errorf("one primed shot: shots=%d charge=%v, want 1 and %v", snap.Shots, snap.FireCharge, want)
	}
	if want := w.Config.EnemyFireInterval - tick; snap.EnemyFireIn != want {
		t.Errorf("enemy fire in %v, want %v", snap.EnemyFireIn, want)
	}
	// Ground, player, camera, barrel, enemy and the shot.
	if snap.Entities != 6 {
		t.Errorf("entities=%d, want 6", snap.Entities)
	}
	if !snap.PlayerAlive || snap.Aim <= 0 {
		t.Errorf("snapshot should carry player and aim state: %+v", snap)
	}
	if snap.FOV >= w.Config.HipFOV {
		t.Errorf("aiming should narrow the FOV, got %v", snap.FOV)
	}

	s.Reset()
	snap = s.Snapshot()
	if len(snap.Projectiles) != 0 || len(snap.Enemies) != 1 {
		t.Fatalf("reset snapshot=%+v", snap)
	}
	if snap.Aim != 0 || snap.Recoil.Vertical != 0 || snap.HitMarkerAlpha != 0 || snap.Shots != 0 {
		t.Errorf("reset should clear aim, recoil and marker: %+v", snap)
	}
	if !snap.PlayerPosition.ApproxEqual(w.Config.PlayerSpawn) {
		t.Errorf("player at %v, want spawn", snap.PlayerPosition)
	}
}

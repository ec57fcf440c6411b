package combat

import (
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/strafe/internal/entity"
	"github.com/tomz197/strafe/internal/physics"
)

// Ground dimensions of the stock arena.
var (
	GroundHalfExtents = mgl64.Vec3{5, 0.5, 5}
	GroundPosition    = mgl64.Vec3{0, -0.5, 0}
)

// SetupScene spawns the ground, the player with its camera and barrel, and one
// enemy. It returns the player body.
func SetupScene(w *World) entity.ID {
	w.Spawn(&physics.Body{
		Kind:      physics.Static,
		Shape:     physics.Cuboid(GroundHalfExtents.X(), GroundHalfExtents.Y(), GroundHalfExtents.Z()),
		Transform: physics.At(GroundPosition),
	})

	player := SpawnPlayer(w, w.Config.PlayerSpawn)
	w.SpawnEnemy(w.Config.EnemySpawn, w.Config.EnemyHealth)

	w.logger.Info("scene ready", "player", player, "enemies", w.Enemies.Len())
	return player
}

// NewLocalSim builds a populated world on the in-process physics service.
func NewLocalSim(cfg Config, logger *log.Logger) *Sim {
	phys := physics.NewLocal(physics.LocalOptions{Logger: logger})
	w := NewWorld(cfg, phys, logger)
	SetupScene(w)
	return NewSim(w)
}

// SpawnPlayer creates the player body and its view hierarchy, replacing any
// previous player.
func SpawnPlayer(w *World, pos mgl64.Vec3) entity.ID {
	if old, ok := w.Player(); ok {
		w.Despawn(old)
	}

	w.player = w.Spawn(&physics.Body{
		Kind:         physics.Dynamic,
		Shape:        physics.CapsuleY(0.9, 0.3),
		Transform:    physics.At(pos),
		GravityScale: 1,
		LockRotation: true,
	})

	w.camera = w.Spawn(nil)
	w.Cameras.Set(w.camera, Camera{
		Rotation:      mgl64.QuatIdent(),
		LocalPosition: w.Aim.CameraOffset(w.Config.CameraHipOffset, w.Config.CameraADSOffset),
		FOV:           w.Aim.FOV(w.Config.HipFOV, w.Config.ADSFOV),
	})
	w.Attach(w.player, w.camera)

	w.barrel = w.Spawn(nil)
	w.Attach(w.camera, w.barrel)

	return w.player
}

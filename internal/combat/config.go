package combat

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Sensitivity converts pointer pixels into radians.
type Sensitivity struct {
	Horizontal float64
	Vertical   float64
}

// Config holds the gameplay tunables of a World.
type Config struct {
	FireInterval      time.Duration // Player fire-rate period
	EnemyFireInterval time.Duration
	HitMarkerFlash    time.Duration

	PlayerProjectileLifetime time.Duration
	EnemyProjectileLifetime  time.Duration
	ProjectileSpeed          float64
	ProjectileRadius         float64
	ProjectileGravity        float64 // Gravity scale applied to projectile bodies

	Damage      float64 // Per player hit
	EnemyHealth float64
	WalkSpeed   float64
	Sensitivity Sensitivity

	CameraHipOffset mgl64.Vec3 // Camera local position at transition 0
	CameraADSOffset mgl64.Vec3 // Camera local position at transition 1
	BarrelOffset    mgl64.Vec3 // Barrel local position under the camera
	HipFOV          float64    // Radians
	ADSFOV          float64    // Radians

	// EnemyMuzzleClearance moves the enemy spawn point along the firing
	// direction so projectiles start outside the shooter's collider.
	EnemyMuzzleClearance float64

	PlayerSpawn mgl64.Vec3
	EnemySpawn  mgl64.Vec3
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		FireInterval:      100 * time.Millisecond,
		EnemyFireInterval: 1500 * time.Millisecond,
		HitMarkerFlash:    100 * time.Millisecond,

		PlayerProjectileLifetime: 3 * time.Second,
		EnemyProjectileLifetime:  5 * time.Second,
		ProjectileSpeed:          100,
		ProjectileRadius:         0.05,
		ProjectileGravity:        1,

		Damage:      25,
		EnemyHealth: 100,
		WalkSpeed:   5,
		Sensitivity: Sensitivity{Horizontal: 0.0018, Vertical: 0.0015},

		CameraHipOffset: mgl64.Vec3{0, 1.5, 0},
		CameraADSOffset: mgl64.Vec3{0, 1.5, -0.3},
		BarrelOffset:    mgl64.Vec3{0, 0, -0.5},
		HipFOV:          math.Pi / 3,
		ADSFOV:          math.Pi / 6,

		EnemyMuzzleClearance: 0.7,

		PlayerSpawn: mgl64.Vec3{0, 3, 5},
		EnemySpawn:  mgl64.Vec3{0, 1.5, -5},
	}
}

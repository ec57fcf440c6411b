// Package physics defines the boundary between the combat core and the
// physics service, and provides Local, an in-process reference service.
package physics

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/strafe/internal/entity"
)

//go:generate go tool mockgen -destination=./mocks/service_mock.go -package=mocks . Service

// Service is the physics collaborator. It integrates bodies, owns positions
// and vertical velocity of dynamic bodies, and reports collision events.
type Service interface {
	Insert(id entity.ID, body Body)
	Remove(id entity.ID)
	Transform(id entity.ID) (Transform, bool)
	SetRotation(id entity.ID, rot mgl64.Quat)
	LinearVelocity(id entity.ID) (mgl64.Vec3, bool)
	SetLinearVelocity(id entity.ID, v mgl64.Vec3)
	Step(dt time.Duration)
	// DrainEvents returns the events produced since the last call.
	DrainEvents() []CollisionEvent
}

// Kind is how a body participates in the simulation.
type Kind int

const (
	Dynamic Kind = iota // Integrated: gravity and velocity
	Fixed               // Immovable entity body (enemies)
	Static              // World geometry (ground)
)

// ShapeKind enumerates collider shapes.
type ShapeKind int

const (
	ShapeBall ShapeKind = iota
	ShapeCapsuleY
	ShapeCuboid
)

// Shape is a collider. Balls and capsules are Y-aligned segments with a
// radius; cuboids are axis-aligned boxes.
type Shape struct {
	Kind        ShapeKind
	Radius      float64
	HalfHeight  float64
	HalfExtents mgl64.Vec3
}

// Ball returns a sphere collider.
func Ball(radius float64) Shape {
	return Shape{Kind: ShapeBall, Radius: radius}
}

// CapsuleY returns a capsule along the Y axis. halfHeight excludes the caps.
func CapsuleY(halfHeight, radius float64) Shape {
	return Shape{Kind: ShapeCapsuleY, HalfHeight: halfHeight, Radius: radius}
}

// Cuboid returns a box collider from half extents.
func Cuboid(hx, hy, hz float64) Shape {
	return Shape{Kind: ShapeCuboid, HalfExtents: mgl64.Vec3{hx, hy, hz}}
}

// Reach returns the largest horizontal distance from the centre covered by the shape.
func (s Shape) Reach() float64 {
	if s.Kind == ShapeCuboid {
		return max(s.HalfExtents.X(), s.HalfExtents.Z())
	}
	return s.Radius
}

// Transform is a world position and rotation.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// At returns an unrotated transform at pos.
func At(pos mgl64.Vec3) Transform {
	return Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

// Forward returns the local -Z axis in world space.
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, -1})
}

// Right returns the local +X axis in world space.
func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

// Mul composes a child transform expressed in t's local space.
func (t Transform) Mul(child Transform) Transform {
	return Transform{
		Position: t.Position.Add(t.Rotation.Rotate(child.Position)),
		Rotation: t.Rotation.Mul(child.Rotation).Normalize(),
	}
}

// Body is everything the service needs to simulate an entity.
type Body struct {
	Kind         Kind
	Shape        Shape
	Transform    Transform
	Velocity     mgl64.Vec3
	GravityScale float64
	LockRotation bool
	// ReportCollisions enables started/stopped events for pairs involving this body.
	ReportCollisions bool
}

// EventKind distinguishes collision start from collision end.
type EventKind int

const (
	Started EventKind = iota
	Stopped
)

func (k EventKind) String() string {
	if k == Stopped {
		return "stopped"
	}
	return "started"
}

// CollisionEvent names two bodies with no ordering guarantee.
type CollisionEvent struct {
	Kind EventKind
	A, B entity.ID
}

// Other returns the body paired with id, or false if id is not in the event.
func (e CollisionEvent) Other(id entity.ID) (entity.ID, bool) {
	switch id {
	case e.A:
		return e.B, true
	case e.B:
		return e.A, true
	}
	return entity.Nil, false
}

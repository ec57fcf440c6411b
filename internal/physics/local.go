package physics

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/strafe/internal/entity"
)

// Local defaults.
const (
	DefaultGravity  = 9.81
	defaultMaxStep  = 0.25 // Max displacement per substep, keeps fast balls from tunnelling
	maxSubsteps     = 32
	defaultArena    = 200.0
	defaultCellSize = 2.0
)

// LocalOptions configures a Local service.
type LocalOptions struct {
	Gravity  float64
	Arena    float64 // Width and depth of the broad-phase grid, centred on the origin
	CellSize float64 // Must be >= the largest ball/capsule interaction distance
	Logger   *log.Logger
}

type localBody struct {
	id   entity.ID
	body Body
}

// pairKey is an unordered body pair in canonical order.
type pairKey struct {
	a, b entity.ID
}

func makePair(a, b entity.ID) pairKey {
	if cmpID(b, a) < 0 {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// Local is a small in-process physics service: gravity, velocity
// integration, support against static boxes, and started/stopped collision
// events between bodies that request them. Not safe for concurrent use.
type Local struct {
	gravity float64
	maxStep float64
	logger  *log.Logger

	bodies map[entity.ID]*localBody
	order  []entity.ID

	grid     *SpatialGrid
	small    []*localBody // Balls and capsules, indexed by grid items
	boxes    []*localBody // Cuboids, checked against every small body
	contacts map[pairKey]struct{}
	touched  map[pairKey]struct{}
	current  map[pairKey]struct{}
	events   []CollisionEvent
}

// Compile-time check that Local implements Service.
var _ Service = (*Local)(nil)

// NewLocal creates a Local service.
func NewLocal(opts LocalOptions) *Local {
	if opts.Gravity == 0 {
		opts.Gravity = DefaultGravity
	}
	if opts.Arena <= 0 {
		opts.Arena = defaultArena
	}
	if opts.CellSize <= 0 {
		opts.CellSize = defaultCellSize
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Local{
		gravity:  opts.Gravity,
		maxStep:  defaultMaxStep,
		logger:   opts.Logger.WithPrefix("physics"),
		bodies:   make(map[entity.ID]*localBody),
		grid:     NewSpatialGrid(opts.Arena, opts.Arena, opts.CellSize),
		contacts: make(map[pairKey]struct{}),
		touched:  make(map[pairKey]struct{}),
		current:  make(map[pairKey]struct{}),
	}
}

// Insert adds or replaces a body.
func (l *Local) Insert(id entity.ID, body Body) {
	if body.Transform.Rotation == (mgl64.Quat{}) {
		body.Transform.Rotation = mgl64.QuatIdent()
	}
	if _, ok := l.bodies[id]; !ok {
		l.order = append(l.order, id)
	}
	l.bodies[id] = &localBody{id: id, body: body}
}

// Remove deletes a body and forgets its contacts without emitting events.
func (l *Local) Remove(id entity.ID) {
	if _, ok := l.bodies[id]; !ok {
		return
	}
	delete(l.bodies, id)
	for i, e := range l.order {
		if e == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	for k := range l.contacts {
		if k.a == id || k.b == id {
			delete(l.contacts, k)
		}
	}
}

// Transform returns the body's world transform.
func (l *Local) Transform(id entity.ID) (Transform, bool) {
	b, ok := l.bodies[id]
	if !ok {
		return Transform{}, false
	}
	return b.body.Transform, true
}

// SetRotation replaces the body's rotation.
func (l *Local) SetRotation(id entity.ID, rot mgl64.Quat) {
	if b, ok := l.bodies[id]; ok {
		b.body.Transform.Rotation = rot
	}
}

// LinearVelocity returns the body's velocity.
func (l *Local) LinearVelocity(id entity.ID) (mgl64.Vec3, bool) {
	b, ok := l.bodies[id]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return b.body.Velocity, true
}

// SetLinearVelocity replaces the body's velocity. Ignored for non-dynamic bodies.
func (l *Local) SetLinearVelocity(id entity.ID, v mgl64.Vec3) {
	if b, ok := l.bodies[id]; ok && b.body.Kind == Dynamic {
		b.body.Velocity = v
	}
}

// Len returns the number of bodies.
func (l *Local) Len() int { return len(l.order) }

// DrainEvents returns and clears pending collision events.
func (l *Local) DrainEvents() []CollisionEvent {
	out := l.events
	l.events = nil
	return out
}

// Step advances the simulation by dt, splitting into substeps so no dynamic
// body moves more than maxStep per substep.
func (l *Local) Step(dt time.Duration) {
	secs := dt.Seconds()
	if secs < 0 {
		secs = 0
	}

	maxDisp := 0.0
	for _, id := range l.order {
		b := l.bodies[id]
		if b.body.Kind != Dynamic {
			continue
		}
		b.body.Velocity[1] -= l.gravity * b.body.GravityScale * secs
		maxDisp = math.Max(maxDisp, b.body.Velocity.Len()*secs)
	}

	substeps := int(math.Ceil(maxDisp / l.maxStep))
	if substeps < 1 {
		substeps = 1
	} else if substeps > maxSubsteps {
		substeps = maxSubsteps
	}
	h := secs / float64(substeps)

	clear(l.touched)
	for i := 0; i < substeps; i++ {
		l.integrate(h)
		l.detect()
		for k := range l.current {
			l.touched[k] = struct{}{}
		}
		l.support()
	}

	l.emit()
}

// integrate moves dynamic bodies by their velocity.
func (l *Local) integrate(h float64) {
	for _, id := range l.order {
		b := l.bodies[id]
		if b.body.Kind != Dynamic {
			continue
		}
		b.body.Transform.Position = b.body.Transform.Position.Add(b.body.Velocity.Mul(h))
	}
}

// detect fills l.current with every overlapping pair that reports collisions.
func (l *Local) detect() {
	clear(l.current)
	l.small = l.small[:0]
	l.boxes = l.boxes[:0]
	l.grid.Clear()

	for _, id := range l.order {
		b := l.bodies[id]
		if b.body.Shape.Kind == ShapeCuboid {
			l.boxes = append(l.boxes, b)
			continue
		}
		p := b.body.Transform.Position
		l.grid.Insert(p.X(), p.Z(), len(l.small))
		l.small = append(l.small, b)
	}

	for i, a := range l.small {
		pa := a.body.Transform.Position
		l.grid.QueryAround(pa.X(), pa.Z(), func(j int) bool {
			if j <= i {
				return false
			}
			l.test(a, l.small[j])
			return false
		})
		for _, box := range l.boxes {
			l.test(a, box)
		}
	}

	for i, a := range l.boxes {
		for _, b := range l.boxes[i+1:] {
			l.test(a, b)
		}
	}
}

func (l *Local) test(a, b *localBody) {
	if !a.body.ReportCollisions && !b.body.ReportCollisions {
		return
	}
	if a.body.Kind != Dynamic && b.body.Kind != Dynamic {
		return
	}
	if Overlaps(a.body.Shape, a.body.Transform.Position, b.body.Shape, b.body.Transform.Position) {
		l.current[makePair(a.id, b.id)] = struct{}{}
	}
}

// support pushes dynamic bodies up out of static and fixed boxes they rest on.
func (l *Local) support() {
	for _, id := range l.order {
		b := l.bodies[id]
		if b.body.Kind != Dynamic || b.body.Shape.Kind == ShapeCuboid {
			continue
		}
		s := b.body.Shape
		for _, box := range l.boxes {
			if box.body.Kind == Dynamic {
				continue
			}
			c := box.body.Transform.Position
			p := b.body.Transform.Position
			if p.Y() < c.Y() || !Overlaps(s, p, box.body.Shape, c) {
				continue
			}
			top := c.Y() + box.body.Shape.HalfExtents.Y()
			bottom := p.Y() - s.HalfHeight - s.Radius
			if bottom < top {
				b.body.Transform.Position[1] += top - bottom
				if b.body.Velocity.Y() < 0 {
					b.body.Velocity[1] = 0
				}
			}
		}
	}
}

// emit turns contact transitions into events. Pairs that touched during a
// substep but separated by the end of the step produce both events.
func (l *Local) emit() {
	for _, k := range sortedPairs(l.touched) {
		if _, was := l.contacts[k]; !was {
			l.events = append(l.events, CollisionEvent{Kind: Started, A: k.a, B: k.b})
			if _, now := l.current[k]; !now {
				l.events = append(l.events, CollisionEvent{Kind: Stopped, A: k.a, B: k.b})
			}
		}
	}
	for _, k := range sortedPairs(l.contacts) {
		if _, now := l.current[k]; !now {
			l.events = append(l.events, CollisionEvent{Kind: Stopped, A: k.a, B: k.b})
		}
	}

	clear(l.contacts)
	for k := range l.current {
		l.contacts[k] = struct{}{}
	}

	if len(l.events) > 0 {
		l.logger.Debug("collision events", "count", len(l.events))
	}
}

// sortedPairs returns the keys of set in a stable order so event streams are reproducible.
func sortedPairs(set map[pairKey]struct{}) []pairKey {
	keys := make([]pairKey, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y pairKey) int {
		if c := cmpID(x.a, y.a); c != 0 {
			return c
		}
		return cmpID(x.b, y.b)
	})
	return keys
}

func cmpID(x, y entity.ID) int {
	if c := cmp.Compare(x.Index(), y.Index()); c != 0 {
		return c
	}
	return cmp.Compare(x.Generation(), y.Generation())
}

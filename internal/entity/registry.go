// Package entity provides generational entity identities and typed component
// stores. A despawned slot is reused only with a bumped generation, so IDs held
// by unprocessed events are detected as stale instead of aliasing a new entity.
package entity

import "fmt"

// ID identifies an entity. The zero ID is never issued.
type ID struct {
	index uint32
	gen   uint32
}

// Nil is the zero ID.
var Nil ID

// IsNil reports whether id is the zero ID.
func (id ID) IsNil() bool { return id == Nil }

// Index returns the slot index of the ID.
func (id ID) Index() uint32 { return id.index }

// Generation returns the slot generation of the ID.
func (id ID) Generation() uint32 { return id.gen }

func (id ID) String() string {
	if id.IsNil() {
		return "entity(nil)"
	}
	return fmt.Sprintf("entity(%dv%d)", id.index, id.gen)
}

// Registry allocates and retires entity IDs.
// Generations start at 1 so the zero ID is never alive.
type Registry struct {
	gens  []uint32
	alive []bool
	free  []uint32
	count int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		gens:  make([]uint32, 0, 64),
		alive: make([]bool, 0, 64),
	}
}

// Create returns a fresh live ID, reusing a free slot when one exists.
func (r *Registry) Create() ID {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.gens))
		r.gens = append(r.gens, 1)
		r.alive = append(r.alive, false)
	}
	r.alive[idx] = true
	r.count++
	return ID{index: idx, gen: r.gens[idx]}
}

// Destroy retires id and bumps its slot generation.
// Returns false if id was not alive.
func (r *Registry) Destroy(id ID) bool {
	if !r.Alive(id) {
		return false
	}
	r.alive[id.index] = false
	r.gens[id.index]++
	if r.gens[id.index] == 0 {
		r.gens[id.index] = 1
	}
	r.free = append(r.free, id.index)
	r.count--
	return true
}

// Alive reports whether id refers to a live entity.
func (r *Registry) Alive(id ID) bool {
	if id.IsNil() || int(id.index) >= len(r.gens) {
		return false
	}
	return r.alive[id.index] && r.gens[id.index] == id.gen
}

// Count returns the number of live entities.
func (r *Registry) Count() int { return r.count }

// Clear retires every live entity.
func (r *Registry) Clear() {
	for i := range r.alive {
		if r.alive[i] {
			r.Destroy(ID{index: uint32(i), gen: r.gens[i]})
		}
	}
}

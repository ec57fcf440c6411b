package entity

// Store is a typed component table keyed by ID.
// Iteration follows insertion order, with swap-remove on deletion.
type Store[T any] struct {
	components map[ID]*T
	entities   []ID
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[ID]*T),
		entities:   make([]ID, 0, 64),
	}
}

// Set inserts or replaces the component for id.
func (s *Store[T]) Set(id ID, val T) {
	if p, ok := s.components[id]; ok {
		*p = val
		return
	}
	v := val
	s.components[id] = &v
	s.entities = append(s.entities, id)
}

// Get returns a pointer to the component for id, which stays valid until
// the component is removed.
func (s *Store[T]) Get(id ID) (*T, bool) {
	p, ok := s.components[id]
	return p, ok
}

// Has reports whether id has a component in this store.
func (s *Store[T]) Has(id ID) bool {
	_, ok := s.components[id]
	return ok
}

// Remove deletes the component for id. Returns false if absent.
func (s *Store[T]) Remove(id ID) bool {
	if _, ok := s.components[id]; !ok {
		return false
	}
	delete(s.components, id)
	for i, e := range s.entities {
		if e == id {
			last := len(s.entities) - 1
			s.entities[i] = s.entities[last]
			s.entities = s.entities[:last]
			break
		}
	}
	return true
}

// IDs returns a copy of all IDs in the store, safe to iterate while removing.
func (s *Store[T]) IDs() []ID {
	out := make([]ID, len(s.entities))
	copy(out, s.entities)
	return out
}

// Len returns the number of components.
func (s *Store[T]) Len() int { return len(s.entities) }

// Clear removes every component.
func (s *Store[T]) Clear() {
	clear(s.components)
	s.entities = s.entities[:0]
}

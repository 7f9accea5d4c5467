package store

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
)

// Store maps entities to a single component type.
//
// Entries are addressed by entity, never by position, so adding or removing in
// one store never invalidates another. Adding or dropping entries (in any store)
// or entities while a ForEach traversal is running is not allowed; reading and
// mutating entries of other stores from the callback is fine.
type Store[T any] struct {
	reg    *Registry
	mapper *ecs.Map[T]
	filter *ecs.Filter1[T]
}

// NewStore creates a store for component type T on the registry's world.
func NewStore[T any](reg *Registry) *Store[T] {
	return &Store[T]{
		reg:    reg,
		mapper: ecs.NewMap[T](reg.world),
		filter: ecs.NewFilter1[T](reg.world),
	}
}

// Add inserts or overwrites the entry for e.
func (s *Store[T]) Add(e ecs.Entity, v T) error {
	if !s.reg.Alive(e) {
		return fmt.Errorf("adding component to entity %d: %w", e.ID(), ErrNotLive)
	}
	if s.mapper.Has(e) {
		*s.mapper.Get(e) = v
		return nil
	}
	s.mapper.Add(e, &v)
	return nil
}

// Get returns a copy of the entry for e.
func (s *Store[T]) Get(e ecs.Entity) (T, bool) {
	if p := s.GetMut(e); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer to the entry for e, or nil if e has none.
// The pointer is valid until the next structural change.
func (s *Store[T]) GetMut(e ecs.Entity) *T {
	if !s.reg.Alive(e) || !s.mapper.Has(e) {
		return nil
	}
	return s.mapper.Get(e)
}

// Has reports whether e has an entry in this store.
func (s *Store[T]) Has(e ecs.Entity) bool {
	return s.reg.Alive(e) && s.mapper.Has(e)
}

// Drop removes the entry for e. It is a no-op when there is none.
func (s *Store[T]) Drop(e ecs.Entity) {
	if s.Has(e) {
		s.mapper.Remove(e)
	}
}

// ForEach visits every entry once with a copy of its value.
func (s *Store[T]) ForEach(fn func(e ecs.Entity, v T)) {
	query := s.filter.Query()
	for query.Next() {
		fn(query.Entity(), *query.Get())
	}
}

// ForEachMut visits every entry once with a pointer to its value.
func (s *Store[T]) ForEachMut(fn func(e ecs.Entity, v *T)) {
	query := s.filter.Query()
	for query.Next() {
		fn(query.Entity(), query.Get())
	}
}

// Len returns the number of entries.
func (s *Store[T]) Len() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

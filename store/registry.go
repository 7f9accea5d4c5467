// Package store provides the entity registry and per-type component stores.
//
// Both are thin wrappers over an ark ECS world. The world is a generational
// entity table: dropping an entity clears every component it carries in one
// step, and a stale handle never resolves again even when its slot is reused.
package store

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"
)

// ErrNotLive is returned when an operation targets an entity that is not alive.
var ErrNotLive = errors.New("entity not live")

// live tags every entity issued by a Registry so the live set can be queried.
type live struct{}

// Registry issues entity identifiers and tracks the live set.
type Registry struct {
	world  *ecs.World
	tags   *ecs.Map1[live]
	filter *ecs.Filter1[live]
	count  int
}

// NewRegistry creates an empty registry backed by a fresh world.
func NewRegistry() *Registry {
	world := ecs.NewWorld()
	return &Registry{
		world:  world,
		tags:   ecs.NewMap1[live](world),
		filter: ecs.NewFilter1[live](world),
	}
}

// Next returns a fresh entity, distinct from every live entity.
func (r *Registry) Next() ecs.Entity {
	e := r.tags.NewEntity(&live{})
	r.count++
	return e
}

// Drop invalidates an entity and removes all of its components.
func (r *Registry) Drop(e ecs.Entity) error {
	if !r.Alive(e) {
		return fmt.Errorf("dropping entity %d: %w", e.ID(), ErrNotLive)
	}
	r.world.RemoveEntity(e)
	r.count--
	return nil
}

// Alive reports whether e was issued by this registry and not dropped since.
func (r *Registry) Alive(e ecs.Entity) bool {
	return !e.IsZero() && r.world.Alive(e)
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return r.count
}

// Each visits every live entity. fn must not create or drop entities.
func (r *Registry) Each(fn func(e ecs.Entity)) {
	query := r.filter.Query()
	for query.Next() {
		fn(query.Entity())
	}
}

// Entities returns a snapshot of the live set, safe to mutate the registry over.
func (r *Registry) Entities() []ecs.Entity {
	out := make([]ecs.Entity, 0, r.count)
	r.Each(func(e ecs.Entity) {
		out = append(out, e)
	})
	return out
}

// World exposes the backing world for stores created on this registry.
func (r *Registry) World() *ecs.World {
	return r.world
}

// Package systems contains the per-tick systems that operate over component stores.
package systems

import (
	"github.com/pthm-cable/noc/components"
	"github.com/pthm-cable/noc/store"
)

// World bundles the registry, the component stores and the region grid that
// the systems share. Every system receives it explicitly.
type World struct {
	Registry *store.Registry

	Pos    *store.Store[components.Position]
	Vel    *store.Store[components.Velocity]
	Acc    *store.Store[components.Acceleration]
	Attr   *store.Store[components.Attributes]
	Mass   *store.Store[components.Mass]
	DNA    *store.Store[components.DNA]
	Walker *store.Store[components.Walker]

	Regions *Regions
}

// NewWorld creates an empty world with a rows x cols region grid.
func NewWorld(rows, cols int, scale float32) *World {
	reg := store.NewRegistry()
	return &World{
		Registry: reg,
		Pos:      store.NewStore[components.Position](reg),
		Vel:      store.NewStore[components.Velocity](reg),
		Acc:      store.NewStore[components.Acceleration](reg),
		Attr:     store.NewStore[components.Attributes](reg),
		Mass:     store.NewStore[components.Mass](reg),
		DNA:      store.NewStore[components.DNA](reg),
		Walker:   store.NewStore[components.Walker](reg),
		Regions:  NewRegions(rows, cols, scale),
	}
}

package systems

import (
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/noc/components"
)

// WalkerSystem gives every walker a random axis-aligned step each tick.
type WalkerSystem struct {
	rng *rand.Rand
}

// NewWalkerSystem creates a walker system drawing from rng.
func NewWalkerSystem(rng *rand.Rand) *WalkerSystem {
	return &WalkerSystem{rng: rng}
}

// Update sets the velocity of every walker to one of four directions.
func (s *WalkerSystem) Update(w *World) {
	w.Walker.ForEach(func(e ecs.Entity, wk components.Walker) {
		vel := w.Vel.GetMut(e)
		if vel == nil {
			return
		}
		switch s.rng.IntN(4) {
		case 0:
			*vel = components.Velocity{X: wk.Step}
		case 1:
			*vel = components.Velocity{X: -wk.Step}
		case 2:
			*vel = components.Velocity{Y: wk.Step}
		default:
			*vel = components.Velocity{Y: -wk.Step}
		}
	})
}

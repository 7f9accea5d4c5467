// Package genetics holds the operators that evolve agent move sequences:
// the move bank genes index into, fitness weighting, weighted parent
// selection, uniform crossover and single-gene mutation.
package genetics

import "github.com/pthm-cable/noc/components"

// Move selects one of a fixed set of accelerations. Genes are Move values.
type Move uint8

const (
	MoveCoast Move = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	MoveUpLeft
	MoveUpRight
	MoveDownLeft
	MoveDownRight
	MoveBrake

	// NumMoves is the size of the move bank.
	NumMoves
)

const diagonal = 0.70710678

var moveNames = [NumMoves]string{
	"coast", "up", "down", "left", "right",
	"up-left", "up-right", "down-left", "down-right", "brake",
}

// String returns the move's display name.
func (m Move) String() string {
	if m < NumMoves {
		return moveNames[m]
	}
	return "unknown"
}

// Accel returns the acceleration this move produces for an agent moving at vel.
// Up is +Y in field coordinates, which renders towards the top of the screen.
func (m Move) Accel(vel components.Velocity, thrust float32) components.Acceleration {
	d := thrust * diagonal
	switch m {
	case MoveUp:
		return components.Acceleration{Y: thrust}
	case MoveDown:
		return components.Acceleration{Y: -thrust}
	case MoveLeft:
		return components.Acceleration{X: -thrust}
	case MoveRight:
		return components.Acceleration{X: thrust}
	case MoveUpLeft:
		return components.Acceleration{X: -d, Y: d}
	case MoveUpRight:
		return components.Acceleration{X: d, Y: d}
	case MoveDownLeft:
		return components.Acceleration{X: -d, Y: -d}
	case MoveDownRight:
		return components.Acceleration{X: d, Y: -d}
	case MoveBrake:
		return components.Acceleration{X: -vel.X * 0.5, Y: -vel.Y * 0.5}
	default:
		return components.Acceleration{}
	}
}

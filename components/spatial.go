package components

import "math"

// Position is an entity's location in field coordinates. Y grows upwards from the floor.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's per-tick displacement.
type Velocity struct {
	X, Y float32
}

// Acceleration is a one-shot impulse consumed by the next integration pass.
type Acceleration struct {
	X, Y float32
}

// Magnitude returns the speed of the velocity vector.
func (v Velocity) Magnitude() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Theta returns the heading of the velocity vector in radians.
func (v Velocity) Theta() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// WithTheta returns a velocity with the same magnitude pointing along theta.
func (v Velocity) WithTheta(theta float32) Velocity {
	mag := float64(v.Magnitude())
	return Velocity{
		X: float32(mag * math.Cos(float64(theta))),
		Y: float32(mag * math.Sin(float64(theta))),
	}
}

// FromAngle builds a velocity with the given heading and magnitude.
func FromAngle(theta, magnitude float32) Velocity {
	return Velocity{
		X: magnitude * float32(math.Cos(float64(theta))),
		Y: magnitude * float32(math.Sin(float64(theta))),
	}
}

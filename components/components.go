// Package components defines ECS components for the simulation.
package components

import "image/color"

// GenomeLength is the number of genes carried by every agent.
const GenomeLength = 10

// Attributes holds the physical and presentation traits of an entity plus its
// current spatial region. Row, Column and Region are owned by the region grid.
type Attributes struct {
	Mass   float32
	Radius float32
	Color  color.RGBA

	Row    int
	Column int
	Region int
}

// Mass is an optional inertial damping factor applied to velocity before
// acceleration is integrated. Entities without it are not damped.
type Mass struct {
	Value float32
}

// DNA is an ordered list of move selectors, one per move slot.
type DNA [GenomeLength]uint8

// Walker marks an entity that picks a random axis step every tick.
type Walker struct {
	Step float32
}

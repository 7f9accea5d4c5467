package genetics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/noc/components"
)

// Distance returns the Euclidean distance between an agent and the target.
func Distance(p, target components.Position) float64 {
	return floats.Distance(
		[]float64{float64(p.X), float64(p.Y)},
		[]float64{float64(target.X), float64(target.Y)},
		2,
	)
}

// Weight maps a distance linearly onto [0, maxWeight]: zero distance gets
// maxWeight, maxDistance or further gets zero.
func Weight(distance, maxDistance, maxWeight float64) float64 {
	if maxDistance <= 0 {
		return maxWeight
	}
	w := maxWeight * (1 - distance/maxDistance)
	if w < 0 {
		return 0
	}
	if w > maxWeight {
		return maxWeight
	}
	return w
}

// Weights fills dst with the selection weight of each distance.
func Weights(dst, distances []float64, maxDistance, maxWeight float64) []float64 {
	dst = dst[:0]
	for _, d := range distances {
		dst = append(dst, Weight(d, maxDistance, maxWeight))
	}
	return dst
}

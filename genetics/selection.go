package genetics

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrZeroWeights means no weight is positive, so no distribution exists.
	ErrZeroWeights = errors.New("selection weights sum to zero")
	// ErrNegativeWeight means a weight below zero was supplied.
	ErrNegativeWeight = errors.New("negative selection weight")
	// ErrNoDistinctParent means the retry cap ran out before a second,
	// different parent was drawn.
	ErrNoDistinctParent = errors.New("no distinct second parent")
	// ErrPopulationTooSmall means fewer than two candidates were supplied.
	ErrPopulationTooSmall = errors.New("population too small for two parents")
)

// ChooseOne picks an index with probability proportional to its weight.
func ChooseOne(weights []float64, rng *rand.Rand) (int, error) {
	if len(weights) == 0 {
		return -1, ErrZeroWeights
	}
	if floats.Min(weights) < 0 {
		return -1, ErrNegativeWeight
	}

	cdf := floats.CumSum(make([]float64, len(weights)), weights)
	total := cdf[len(cdf)-1]
	if !(total > 0) {
		return -1, ErrZeroWeights
	}

	x := rng.Float64() * total
	// First index whose cumulative weight exceeds x; zero-weight entries never qualify.
	idx := sort.Search(len(cdf), func(i int) bool { return cdf[i] > x })
	if idx == len(cdf) {
		idx = len(cdf) - 1
	}
	return idx, nil
}

// ChooseTwo draws two distinct indices by weight. The second draw is retried
// up to retries times while it equals the first. On ErrNoDistinctParent the
// first index is still valid and the second is -1.
func ChooseTwo(weights []float64, rng *rand.Rand, retries int) (int, int, error) {
	if len(weights) < 2 {
		return -1, -1, ErrPopulationTooSmall
	}

	first, err := ChooseOne(weights, rng)
	if err != nil {
		return -1, -1, err
	}

	for i := 0; i < retries; i++ {
		second, err := ChooseOne(weights, rng)
		if err != nil {
			return first, -1, err
		}
		if second != first {
			return first, second, nil
		}
	}
	return first, -1, ErrNoDistinctParent
}

// Selection is a pair of distinct parent indices.
// Fallback records why uniform sampling replaced weighted sampling, if it did.
type Selection struct {
	A, B     int
	Fallback error
}

// SelectParents picks two distinct parents by weight, falling back to uniform
// sampling for whichever pick the weights could not produce. The only error
// returned is ErrPopulationTooSmall; weight problems are reported in Fallback.
func SelectParents(weights []float64, rng *rand.Rand, retries int) (Selection, error) {
	n := len(weights)
	if n < 2 {
		return Selection{A: -1, B: -1}, fmt.Errorf("selecting from %d agents: %w", n, ErrPopulationTooSmall)
	}

	a, b, err := ChooseTwo(weights, rng, retries)
	switch {
	case err == nil:
		return Selection{A: a, B: b}, nil
	case errors.Is(err, ErrNoDistinctParent):
		return Selection{A: a, B: uniformOther(n, a, rng), Fallback: err}, nil
	default:
		a = rng.IntN(n)
		return Selection{A: a, B: uniformOther(n, a, rng), Fallback: err}, nil
	}
}

// uniformOther returns a uniformly random index in [0, n) other than skip.
func uniformOther(n, skip int, rng *rand.Rand) int {
	i := rng.IntN(n - 1)
	if i >= skip {
		i++
	}
	return i
}

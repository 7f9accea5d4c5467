package genetics

import (
	"math/rand/v2"

	"github.com/pthm-cable/noc/components"
)

// RandomDNA returns a DNA with every gene drawn uniformly from the move bank.
func RandomDNA(rng *rand.Rand) components.DNA {
	var dna components.DNA
	for i := range dna {
		dna[i] = uint8(rng.IntN(int(NumMoves)))
	}
	return dna
}

// Crossover builds a child taking each gene from a or b with equal probability.
func Crossover(a, b components.DNA, rng *rand.Rand) components.DNA {
	var child components.DNA
	for i := range child {
		if rng.Float64() < 0.5 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}

// Mutate replaces exactly one gene with a different move with probability
// chance. It returns the mutated index, or -1 when no mutation happened.
func Mutate(dna *components.DNA, chance float64, rng *rand.Rand) int {
	if chance <= 0 || rng.Float64() >= chance {
		return -1
	}
	idx := rng.IntN(len(dna))
	old := dna[idx] % uint8(NumMoves)
	dna[idx] = (old + 1 + uint8(rng.IntN(int(NumMoves)-1))) % uint8(NumMoves)
	return idx
}

// Offspring is one independent crossover plus mutation draw of a and b.
func Offspring(a, b components.DNA, chance float64, rng *rand.Rand) components.DNA {
	child := Crossover(a, b, rng)
	Mutate(&child, chance, rng)
	return child
}

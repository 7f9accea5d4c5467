package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/noc/components"
	"github.com/pthm-cable/noc/config"
	"github.com/pthm-cable/noc/game"
	"github.com/pthm-cable/noc/systems"
)

// FitnessEvaluator runs headless rocket simulations and scores them.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []uint64
	baseConfig  *config.Config

	mu           sync.Mutex
	lastBestDist float64 // mean final best distance from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
	}
}

// LastBestDistance returns the final-generation best distance from the most
// recent evaluation, averaged over seeds.
func (fe *FitnessEvaluator) LastBestDistance() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastBestDist
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness   float64
	finalBest float64
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is the mean over generations of the mean agent distance to the
// target, so configurations that converge early score best.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	fitness := make([]float64, len(results))
	finals := make([]float64, len(results))
	for i, r := range results {
		fitness[i] = r.fitness
		finals[i] = r.finalBest
	}

	fe.mu.Lock()
	fe.lastBestDist = stat.Mean(finals, nil)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runSimulation runs one seed for the configured number of generations.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed uint64) seedResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Validate(); err != nil {
		return seedResult{fitness: math.Inf(1), finalBest: math.Inf(1)}
	}

	var means []float64
	var finalBest float64
	g, err := game.NewGameWithOptions(cfg, game.Options{
		Scenario: game.ScenarioRockets,
		Seed:     seed,
		GenerationCallback: func(s systems.GenerationStats) {
			means = append(means, s.MeanDistance)
			finalBest = s.BestDistance
		},
	})
	if err != nil {
		return seedResult{fitness: math.Inf(1), finalBest: math.Inf(1)}
	}
	defer g.Unload()

	// One generation is GenomeLength moves plus the tick that ends it.
	maxTicks := int32(fe.generations * (cfg.Rockets.TicksPerMove*components.GenomeLength + 1))
	for g.Tick() < maxTicks && len(means) < fe.generations {
		g.Step()
	}

	if len(means) == 0 {
		return seedResult{fitness: math.Inf(1), finalBest: math.Inf(1)}
	}
	return seedResult{fitness: stat.Mean(means, nil), finalBest: finalBest}
}

// copyConfig returns a shallow copy of the base config; every field is a value.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// Package main tunes the rocket genetic algorithm parameters with Nelder-Mead.
package main

import (
	"math"

	"github.com/pthm-cable/noc/config"
)

// ParamSpec is one tunable config value and its search range.
type ParamSpec struct {
	Name     string
	Min, Max float64
	Integer  bool // rounded before it reaches the config

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

func (s ParamSpec) toUnit(v float64) float64   { return (v - s.Min) / (s.Max - s.Min) }
func (s ParamSpec) fromUnit(u float64) float64 { return s.Min + u*(s.Max-s.Min) }

func (s ParamSpec) clamp(v float64) float64 {
	v = min(max(v, s.Min), s.Max)
	if s.Integer {
		v = math.Round(v)
	}
	return v
}

// ParamVector is the ordered parameter set searched by the optimizer.
// The optimizer works in unit space, one [0,1] axis per spec.
type ParamVector struct {
	Specs []ParamSpec
	base  *config.Config
}

// NewParamVector creates the rocket parameter set, starting from cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	return &ParamVector{
		base: cfg,
		Specs: []ParamSpec{
			{
				Name: "mutation_chance", Min: 0, Max: 1,
				get: func(c *config.Config) float64 { return c.Rockets.MutationChance },
				set: func(c *config.Config, v float64) { c.Rockets.MutationChance = v },
			},
			{
				Name: "thrust", Min: 0.05, Max: 1.5,
				get: func(c *config.Config) float64 { return c.Rockets.Thrust },
				set: func(c *config.Config, v float64) { c.Rockets.Thrust = v },
			},
			{
				Name: "ticks_per_move", Min: 5, Max: 60, Integer: true,
				get: func(c *config.Config) float64 { return float64(c.Rockets.TicksPerMove) },
				set: func(c *config.Config, v float64) { c.Rockets.TicksPerMove = int(v) },
			},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns the base config's values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		v[i] = s.get(pv.base)
	}
	return v
}

// Normalize maps raw values into unit space.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	return pv.each(raw, ParamSpec.toUnit)
}

// Denormalize maps unit-space values back to raw values.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	return pv.each(unit, ParamSpec.fromUnit)
}

// Clamp bounds raw values to their ranges, rounding integer parameters.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	return pv.each(raw, ParamSpec.clamp)
}

// ApplyToConfig writes clamped raw values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	for i, v := range pv.Clamp(raw) {
		pv.Specs[i].set(cfg, v)
	}
}

func (pv *ParamVector) each(in []float64, f func(ParamSpec, float64) float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = f(s, in[i])
	}
	return out
}

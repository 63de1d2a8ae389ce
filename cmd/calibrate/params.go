// Package main provides Nelder-Mead calibration of the runtime colony
// parameters, searching for settings that keep both colonies productive.
package main

import "github.com/pthm-cable/formica/game"

// ParamSpec defines a single calibratable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all calibratable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of calibratable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "metabolism_a", Min: 0.02, Max: 2.0, Default: 1.0 / 6.0},
			{Name: "spawn_cost_a", Min: 1, Max: 10, Default: 4},
			{Name: "evaporation_a", Min: 0.95, Max: 0.9999, Default: 0.995},
			{Name: "metabolism_b", Min: 0.02, Max: 2.0, Default: 1.0 / 3.0},
			{Name: "spawn_cost_b", Min: 1, Max: 10, Default: 3},
			{Name: "evaporation_b", Min: 0.95, Max: 0.9999, Default: 0.995},
			{Name: "leaf_rate", Min: 0.005, Max: 0.2, Default: 0.042},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToParams maps a raw vector onto runtime simulation parameters.
// Order must match Specs order.
func (pv *ParamVector) ApplyToParams(p *game.Params, values []float64) {
	clamped := pv.Clamp(values)

	p.Colony[0].Metabolism = float32(clamped[0])
	p.Colony[0].SpawnCost = int(clamped[1] + 0.5)
	p.Colony[0].Evaporation = float32(clamped[2])
	p.Colony[1].Metabolism = float32(clamped[3])
	p.Colony[1].SpawnCost = int(clamped[4] + 0.5)
	p.Colony[1].Evaporation = float32(clamped[5])
	p.LeafRate = float32(clamped[6])
}

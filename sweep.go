package cuebench

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// UnboundedFlux is the upper bound applied to the maintenance reaction
// during a sweep iteration: effectively unconstrained, several orders
// of magnitude above any plausible genome-scale flux.
const UnboundedFlux = 1e6

// SweepConfig controls a maintenance-cost sweep.
type SweepConfig struct {
	Samples  int     // Number of cost samples across the feasible range
	Upper    float64 // Upper bound applied during each override
	Fraction float64 // Optimality fraction for the range query (0 = widest interval)
}

// DefaultSweepConfig returns the reference sweep parameters.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Samples:  25,
		Upper:    UnboundedFlux,
		Fraction: 0,
	}
}

// SweepPoint is one (cost, CUE) sample. A failed sample (infeasible
// bound, no carbon uptake) carries its error and no CUE value.
type SweepPoint struct {
	Cost float64
	CUE  float64
	Err  error
}

// Valid reports whether the point carries a CUE value.
func (p SweepPoint) Valid() bool {
	return p.Err == nil
}

// SweepTable is the completed sweep, one point per sampled cost, in
// ascending cost order. Immutable once the sweep returns.
type SweepTable []SweepPoint

// Valid returns the points that produced a CUE value, in sweep order.
func (t SweepTable) Valid() SweepTable {
	out := make(SweepTable, 0, len(t))
	for _, p := range t {
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}

// Failed returns the number of points whose sample failed.
func (t SweepTable) Failed() int {
	n := 0
	for _, p := range t {
		if !p.Valid() {
			n++
		}
	}
	return n
}

// Linspace returns n evenly spaced samples across [min, max], inclusive
// of both endpoints.
func Linspace(min, max float64, n int) []float64 {
	return floats.Span(make([]float64, n), min, max)
}

// Sweep measures CUE across the feasible range of the maintenance
// reaction's flux.
//
// The feasible (min, max) interval comes from a flux variability query
// at the configured optimality fraction. For each of cfg.Samples evenly
// spaced cost values, the reaction's bounds are overridden to
// (cost, cfg.Upper), CUE is computed, and the original bounds are
// restored unconditionally before the next sample. Per-sample solver
// failures are recorded on the point and the sweep continues; only the
// range query itself is fatal.
func Sweep(solver Solver, m *Model, reactionID string, cfg SweepConfig) (SweepTable, error) {
	if cfg.Samples < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 samples, got %d", cfg.Samples)
	}
	if m.Reaction(reactionID) == nil {
		return nil, ErrReactionNotFound{ID: reactionID}
	}

	min, max, err := solver.FluxRange(m, reactionID, cfg.Fraction)
	if err != nil {
		return nil, fmt.Errorf("feasible range of %s: %w", reactionID, err)
	}

	table := make(SweepTable, 0, cfg.Samples)
	for _, cost := range Linspace(min, max, cfg.Samples) {
		cue, err := sampleCUE(solver, m, reactionID, cost, cfg.Upper)
		table = append(table, SweepPoint{Cost: cost, CUE: cue, Err: err})
	}
	return table, nil
}

// sampleCUE computes CUE with the maintenance bounds overridden to
// (cost, upper). The deferred restore runs on every exit path, so a
// solver failure at one cost cannot leak mutated bounds into the next
// sample.
func sampleCUE(solver Solver, m *Model, reactionID string, cost, upper float64) (float64, error) {
	restore, err := m.OverrideBounds(reactionID, cost, upper)
	if err != nil {
		return 0, err
	}
	defer restore()

	return ComputeCUE(solver, m)
}

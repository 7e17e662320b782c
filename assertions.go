package cuebench

import (
	"math"
	"testing"
)

// AssertionConfig contains tolerances for sweep properties.
type AssertionConfig struct {
	// Absolute tolerance for sample endpoint equality
	EndpointTol float64

	// Absolute tolerance when comparing restored bounds
	BoundTol float64

	// Slack allowed before a CUE increase counts as non-monotonic
	MonotonicTol float64
}

// DefaultAssertionConfig returns conservative tolerances.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		EndpointTol:  0,    // Endpoints must be exact
		BoundTol:     0,    // Restoration must be exact
		MonotonicTol: 1e-9, // Allow solver round-off only
	}
}

// AssertSampleSpan verifies a sample list covers [min, max]: exactly n
// points, ascending, first exactly min and last exactly max.
func AssertSampleSpan(t *testing.T, samples []float64, min, max float64, n int, cfg AssertionConfig) {
	t.Helper()

	if len(samples) != n {
		t.Fatalf("Sample count: got %d, want %d", len(samples), n)
	}

	if math.Abs(samples[0]-min) > cfg.EndpointTol {
		t.Errorf("First sample %.6f does not equal range minimum %.6f", samples[0], min)
	}
	if math.Abs(samples[len(samples)-1]-max) > cfg.EndpointTol {
		t.Errorf("Last sample %.6f does not equal range maximum %.6f", samples[len(samples)-1], max)
	}

	for i := 1; i < len(samples); i++ {
		if samples[i] <= samples[i-1] {
			t.Errorf("Samples not ascending at %d: %.6f then %.6f", i, samples[i-1], samples[i])
		}
	}

	t.Logf("✓ %d samples span [%.4f, %.4f] in ascending order", n, min, max)
}

// AssertBoundsRestored verifies a reaction's bounds match an earlier
// snapshot. Run after a sweep (or a forced mid-sweep failure) to prove
// no scoped override leaked.
func AssertBoundsRestored(t *testing.T, m *Model, reactionID string, lower, upper float64, cfg AssertionConfig) {
	t.Helper()

	r := m.Reaction(reactionID)
	if r == nil {
		t.Fatalf("Reaction %q not found in model", reactionID)
	}

	if math.Abs(r.LowerBound-lower) > cfg.BoundTol || math.Abs(r.UpperBound-upper) > cfg.BoundTol {
		t.Errorf("Bounds of %s not restored: got [%.6f, %.6f], want [%.6f, %.6f]",
			reactionID, r.LowerBound, r.UpperBound, lower, upper)
		return
	}

	t.Logf("✓ Bounds of %s restored to [%.4f, %.4f]", reactionID, lower, upper)
}

// AssertMonotonicCUE verifies CUE never increases as maintenance cost
// increases, the property expected when maintenance strictly trades off
// against growth-associated carbon retention. Failed points are skipped.
func AssertMonotonicCUE(t *testing.T, table SweepTable, cfg AssertionConfig) {
	t.Helper()

	valid := table.Valid()
	if len(valid) < 2 {
		t.Fatalf("Need at least 2 valid points to check monotonicity, got %d", len(valid))
	}

	for i := 1; i < len(valid); i++ {
		prev, curr := valid[i-1], valid[i]
		if curr.CUE > prev.CUE+cfg.MonotonicTol {
			t.Errorf("CUE increased with cost: %.4f→%.4f raised CUE %.4f→%.4f",
				prev.Cost, curr.Cost, prev.CUE, curr.CUE)
		}
	}

	t.Logf("✓ CUE monotonically non-increasing across %d points (%.4f → %.4f)",
		len(valid), valid[0].CUE, valid[len(valid)-1].CUE)
}

// PrintSweep outputs the sweep table to the test log.
func PrintSweep(t *testing.T, table SweepTable) {
	t.Helper()

	t.Logf("\n=== CUE Sweep ===")
	t.Logf("  Cost          CUE")
	t.Logf("  ----------    ------")
	for _, p := range table {
		if p.Valid() {
			t.Logf("  %10.4f    %.4f", p.Cost, p.CUE)
		} else {
			t.Logf("  %10.4f    (failed: %v)", p.Cost, p.Err)
		}
	}
	if failed := table.Failed(); failed > 0 {
		t.Logf("  %d of %d points failed", failed, len(table))
	}
}

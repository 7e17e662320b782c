package cuebench

import (
	"errors"
	"math"
	"testing"
)

func TestCarbonUseEfficiency_KnownFluxTable(t *testing.T) {
	// Glucose uptake at -10 with 6 carbons, CO2 secretion at +8 with
	// 1 carbon: uptakeC = -60, secretionC = +8, CUE = (-60+8)/-60.
	summary := &FluxSummary{
		Uptake: []ExchangeFlux{
			{Species: "glc__D_e", Flux: -10, Carbon: 6},
		},
		Secretion: []ExchangeFlux{
			{Species: "co2_e", Flux: 8, Carbon: 1},
		},
	}

	cue, err := CarbonUseEfficiency(summary)
	if err != nil {
		t.Fatalf("CUE failed: %v", err)
	}

	want := (-60.0 + 8.0) / -60.0
	if math.Abs(cue-want) > 1e-9 {
		t.Errorf("CUE = %.6f, want %.6f", cue, want)
	}

	t.Logf("✓ CUE = %.4f (net carbon retained / carbon taken up)", cue)
}

func TestCarbonUseEfficiency_IgnoresNonCarbonSpecies(t *testing.T) {
	// Water, protons, and oxygen carry no carbon annotation and must
	// not contribute to either sum.
	summary := &FluxSummary{
		Uptake: []ExchangeFlux{
			{Species: "glc__D_e", Flux: -10, Carbon: 6},
			{Species: "o2_e", Flux: -15, Carbon: 0},
			{Species: "nh4_e", Flux: -4, Carbon: 0},
		},
		Secretion: []ExchangeFlux{
			{Species: "co2_e", Flux: 8, Carbon: 1},
			{Species: "h2o_e", Flux: 25, Carbon: 0},
			{Species: "h_e", Flux: 12, Carbon: 0},
		},
	}

	cue, err := CarbonUseEfficiency(summary)
	if err != nil {
		t.Fatalf("CUE failed: %v", err)
	}

	want := (-60.0 + 8.0) / -60.0
	if math.Abs(cue-want) > 1e-9 {
		t.Errorf("Non-carbon species leaked into CUE: got %.6f, want %.6f", cue, want)
	}

	t.Logf("✓ Non-carbon species excluded: CUE = %.4f", cue)
}

func TestCarbonUseEfficiency_NoCarbonUptake(t *testing.T) {
	// Zero carbon uptake leaves the ratio undefined. The calculator
	// must signal a typed condition, never NaN or Inf.
	summary := &FluxSummary{
		Uptake: []ExchangeFlux{
			{Species: "o2_e", Flux: -15, Carbon: 0},
		},
		Secretion: []ExchangeFlux{
			{Species: "co2_e", Flux: 8, Carbon: 1},
		},
	}

	cue, err := CarbonUseEfficiency(summary)
	if !errors.Is(err, ErrNoCarbonUptake) {
		t.Fatalf("Expected ErrNoCarbonUptake, got cue=%v err=%v", cue, err)
	}
	if math.IsNaN(cue) || math.IsInf(cue, 0) {
		t.Errorf("CUE must not be NaN/Inf on failure, got %v", cue)
	}

	t.Logf("✓ Zero carbon uptake signals typed condition: %v", err)
}

func TestCarbonUseEfficiency_EmptySummary(t *testing.T) {
	cue, err := CarbonUseEfficiency(&FluxSummary{})
	if !errors.Is(err, ErrNoCarbonUptake) {
		t.Fatalf("Empty summary should report no carbon uptake, got cue=%v err=%v", cue, err)
	}
}

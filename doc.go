// Package cuebench measures carbon use efficiency of genome-scale
// metabolic models under varying maintenance energy demands.
//
// # Overview
//
// Carbon use efficiency (CUE) is the fraction of carbon an organism
// takes up that it retains rather than re-excreting:
//
//	CUE = (uptakeC + secretionC) / uptakeC
//
// where uptakeC and secretionC are carbon-weighted exchange flux sums
// (uptake negative, secretion positive by convention). cuebench sweeps
// the ATP maintenance (ATPM) lower bound across its feasible range,
// solving a flux balance analysis problem at each point, and reports
// how CUE responds to rising maintenance cost.
//
// # Quick Start
//
// Load a compressed SBML reconstruction and run the default sweep:
//
//	model, err := cuebench.Load("e_coli_core.xml.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	solver := cuebench.NewSimplexSolver()
//	table, err := cuebench.Sweep(solver, model, "R_ATPM", cuebench.DefaultSweepConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := cuebench.SaveSweep(table, model.Name, "cue.png"); err != nil {
//	    log.Fatal(err)
//	}
//
// # The Sweep Contract
//
// Each sweep sample temporarily overrides the maintenance reaction's
// bounds to (cost, UnboundedFlux). The override is scoped: original
// bounds are restored unconditionally, even when the solve fails, so a
// single infeasible cost can never corrupt the samples after it.
// Failed samples stay in the table with their error attached; plotting
// and the monotonicity assertion skip them.
//
// # Flux Balance Analysis
//
// FBA finds the flux distribution maximizing the model objective
// (typically biomass) subject to steady-state mass balance:
//
//	maximize  cᵀv
//	s.t.      S·v = 0
//	          lb ≤ v ≤ ub
//
// SimplexSolver solves this with a dense simplex method. Flux
// variability analysis (FluxRange) brackets the feasible interval of a
// single reaction, which the sweep uses to choose its sample range.
// Both operations sit behind the Solver interface, so tests run against
// a double returning synthetic flux tables instead of a real model.
//
// # Testing
//
// Use assertions to validate sweep properties:
//
//	func TestMaintenanceSweep(t *testing.T) {
//	    table := runSweep(...)
//
//	    cfg := cuebench.DefaultAssertionConfig()
//	    cuebench.AssertMonotonicCUE(t, table, cfg)
//	    cuebench.AssertBoundsRestored(t, model, "R_ATPM", 8.39, 1000, cfg)
//	}
//
// # See Also
//
//   - cmd/cuebench - CLI wrapping the sweep and summary operations
package cuebench

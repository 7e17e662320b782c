package cuebench

import (
	"errors"
	"fmt"
)

// ErrNoCarbonUptake reports a flux solution in which no carbon-bearing
// species is consumed. The CUE ratio is undefined there; returning a
// typed condition keeps NaN and Inf out of downstream tables.
var ErrNoCarbonUptake = errors.New("cuebench: flux solution has no carbon uptake")

// CarbonUseEfficiency computes CUE from an exchange flux summary:
//
//	CUE = (uptakeC + secretionC) / uptakeC
//
// where uptakeC and secretionC are the carbon-weighted flux sums of the
// uptake and secretion rows. Species without a carbon annotation
// (water, protons, phosphate) are excluded from both sums.
//
// With the signed convention of ExchangeFlux, uptakeC is negative and
// secretionC positive, so the numerator is the net carbon retained and
// CUE lands in (0, 1] for biologically sensible solutions.
func CarbonUseEfficiency(s *FluxSummary) (float64, error) {
	uptakeC := carbonFlux(s.Uptake)
	secretionC := carbonFlux(s.Secretion)

	if uptakeC == 0 {
		return 0, ErrNoCarbonUptake
	}
	return (uptakeC + secretionC) / uptakeC, nil
}

// carbonFlux sums flux × carbon-count over carbon-bearing rows.
func carbonFlux(rows []ExchangeFlux) float64 {
	var sum float64
	for _, r := range rows {
		if r.Carbon <= 0 {
			continue
		}
		sum += r.Flux * float64(r.Carbon)
	}
	return sum
}

// ComputeCUE solves the model in its current state and returns its
// carbon use efficiency.
func ComputeCUE(solver Solver, m *Model) (float64, error) {
	summary, err := solver.SolveSummary(m)
	if err != nil {
		return 0, fmt.Errorf("solve for CUE: %w", err)
	}
	return CarbonUseEfficiency(summary)
}

package cuebench

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// ErrInfeasible reports that the model admits no flux distribution
// satisfying the current bounds.
var ErrInfeasible = errors.New("cuebench: no feasible flux solution")

// ExchangeFlux is one row of an exchange flux summary: the net flux of
// a single species across the model boundary. Sign convention: negative
// flux = uptake (consumed by the organism), positive = secretion.
type ExchangeFlux struct {
	Species string
	Name    string
	Flux    float64
	Carbon  int
}

// FluxSummary is a per-species view of one flux solution, split into
// uptake and secretion rows. Built fresh per solve; never retained.
type FluxSummary struct {
	Objective float64 // Objective (growth) flux at the optimum
	Uptake    []ExchangeFlux
	Secretion []ExchangeFlux
}

// Solver is the constraint-based optimization capability the calculator
// and sweep driver depend on. Keeping it an interface lets tests
// substitute a double returning fixed synthetic flux tables.
type Solver interface {
	// FluxRange returns the feasible (min, max) flux interval of the
	// named reaction. fraction constrains the query to solutions
	// achieving at least that fraction of the optimal objective;
	// fraction 0 yields the widest feasible interval.
	FluxRange(m *Model, reactionID string, fraction float64) (min, max float64, err error)

	// SolveSummary optimizes the model objective and summarizes the
	// exchange fluxes of the optimal solution.
	SolveSummary(m *Model) (*FluxSummary, error)
}

// SimplexSolver implements Solver with a dense simplex method.
//
// Flux balance analysis is the linear program
//
//	maximize  cᵀv
//	s.t.      S·v = 0         (steady-state mass balance)
//	          lb ≤ v ≤ ub     (reaction bounds)
//
// where S is the stoichiometric matrix over internal metabolites and c
// the objective coefficients. The bounded free-variable program is
// converted to standard form and handed to the simplex routine.
type SimplexSolver struct {
	// FluxTol is the magnitude below which an exchange flux is treated
	// as zero and omitted from summaries.
	FluxTol float64
}

// NewSimplexSolver returns a solver with the default flux tolerance.
func NewSimplexSolver() *SimplexSolver {
	return &SimplexSolver{FluxTol: 1e-9}
}

// optimalityTol relaxes the FVA optimality constraint just enough to
// absorb round-off in the computed optimum.
const optimalityTol = 1e-9

// SolveSummary runs FBA and tabulates the optimal exchange fluxes.
func (s *SimplexSolver) SolveSummary(m *Model) (*FluxSummary, error) {
	obj, err := objectiveVector(m)
	if err != nil {
		return nil, err
	}

	// Simplex minimizes; negate to maximize the objective.
	v, err := s.solve(m, scaled(obj, -1), nil, nil)
	if err != nil {
		return nil, err
	}

	summary := &FluxSummary{Objective: floats.Dot(obj, v)}
	for i, r := range m.Reactions {
		if !r.Exchange() {
			continue
		}

		var speciesID string
		var coef float64
		for id, c := range r.Stoichiometry {
			speciesID, coef = id, c
		}

		// Orient so that negative always means uptake, regardless of
		// which way the exchange reaction is written.
		flux := -coef * v[i]
		if math.Abs(flux) <= s.FluxTol {
			continue
		}

		row := ExchangeFlux{Species: speciesID, Flux: flux}
		if met := m.Metabolite(speciesID); met != nil {
			row.Name = met.Name
			row.Carbon = met.Carbon
		}
		if flux < 0 {
			summary.Uptake = append(summary.Uptake, row)
		} else {
			summary.Secretion = append(summary.Secretion, row)
		}
	}

	sortRows(summary.Uptake)
	sortRows(summary.Secretion)
	return summary, nil
}

// FluxRange performs flux variability analysis on a single reaction:
// minimize and maximize its flux over the feasible region, optionally
// restricted to solutions within fraction of the FBA optimum.
func (s *SimplexSolver) FluxRange(m *Model, reactionID string, fraction float64) (min, max float64, err error) {
	idx := -1
	for i, r := range m.Reactions {
		if r.ID == reactionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, 0, ErrReactionNotFound{ID: reactionID}
	}

	var extraG [][]float64
	var extraH []float64
	if fraction > 0 {
		obj, err := objectiveVector(m)
		if err != nil {
			return 0, 0, err
		}
		v, err := s.solve(m, scaled(obj, -1), nil, nil)
		if err != nil {
			return 0, 0, err
		}
		opt := floats.Dot(obj, v)

		// cᵀv ≥ fraction·opt, expressed as -cᵀv ≤ -fraction·opt. The
		// tiny relaxation keeps the constraint feasible at fraction 1
		// despite round-off in opt.
		extraG = [][]float64{scaled(obj, -1)}
		extraH = []float64{-fraction*opt + optimalityTol}
	}

	target := make([]float64, len(m.Reactions))
	target[idx] = 1

	vMin, err := s.solve(m, target, extraG, extraH)
	if err != nil {
		return 0, 0, fmt.Errorf("flux range of %s (minimize): %w", reactionID, err)
	}
	vMax, err := s.solve(m, scaled(target, -1), extraG, extraH)
	if err != nil {
		return 0, 0, fmt.Errorf("flux range of %s (maximize): %w", reactionID, err)
	}

	return vMin[idx], vMax[idx], nil
}

// solve minimizes cᵀv subject to the model's mass balance and bounds,
// plus any extra inequality rows (extraG·v ≤ extraH).
func (s *SimplexSolver) solve(m *Model, c []float64, extraG [][]float64, extraH []float64) ([]float64, error) {
	nVar := len(m.Reactions)

	// Mass balance rows, one per internal metabolite.
	rows := make(map[string]int)
	for _, r := range m.Reactions {
		for id := range r.Stoichiometry {
			met := m.Metabolite(id)
			if met == nil || met.Boundary {
				continue
			}
			if _, ok := rows[id]; !ok {
				rows[id] = len(rows)
			}
		}
	}
	nEq := len(rows)
	if nEq == 0 {
		return nil, errors.New("cuebench: model has no internal metabolites to balance")
	}

	aData := make([]float64, nEq*nVar)
	for j, r := range m.Reactions {
		for id, coef := range r.Stoichiometry {
			i, ok := rows[id]
			if !ok {
				continue
			}
			aData[i*nVar+j] += coef
		}
	}
	a := mat.NewDense(nEq, nVar, aData)
	b := make([]float64, nEq)

	// Bound rows: v_j ≤ ub_j and -v_j ≤ -lb_j.
	nIneq := 2*nVar + len(extraG)
	gData := make([]float64, nIneq*nVar)
	h := make([]float64, nIneq)
	for j, r := range m.Reactions {
		gData[(2*j)*nVar+j] = 1
		h[2*j] = r.UpperBound
		gData[(2*j+1)*nVar+j] = -1
		h[2*j+1] = -r.LowerBound
	}
	for k, row := range extraG {
		copy(gData[(2*nVar+k)*nVar:(2*nVar+k+1)*nVar], row)
		h[2*nVar+k] = extraH[k]
	}
	g := mat.NewDense(nIneq, nVar, gData)

	cNew, aNew, bNew := lp.Convert(c, g, h, a, b)
	_, x, err := lp.Simplex(cNew, aNew, bNew, 0, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return nil, fmt.Errorf("%w: %v", ErrInfeasible, err)
		}
		return nil, fmt.Errorf("simplex: %w", err)
	}

	// Standard form split each free flux into v⁺ - v⁻.
	v := make([]float64, nVar)
	for j := range v {
		v[j] = x[j] - x[nVar+j]
	}
	return v, nil
}

func objectiveVector(m *Model) ([]float64, error) {
	c := make([]float64, len(m.Reactions))
	found := false
	for i, r := range m.Reactions {
		if r.Objective != 0 {
			c[i] = r.Objective
			found = true
		}
	}
	if !found {
		return nil, errors.New("cuebench: model defines no objective reaction")
	}
	return c, nil
}

func scaled(v []float64, f float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = f * x
	}
	return out
}

func sortRows(rows []ExchangeFlux) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Species < rows[j].Species
	})
}

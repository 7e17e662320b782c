package cuebench

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Metabolite is a chemical species in the model.
type Metabolite struct {
	ID          string
	Name        string
	Compartment string
	Formula     string // Hill-notation chemical formula ("C6H12O6")
	Carbon      int    // Carbon atoms per molecule (0 = non-carbon species)
	Boundary    bool   // Boundary species are excluded from mass balance
}

// Reaction is a flux-carrying conversion between metabolites.
//
// Stoichiometry maps metabolite ID to its coefficient: negative for
// consumed species, positive for produced. Exchange reactions touch a
// single species and carry mass across the model boundary.
type Reaction struct {
	ID            string
	Name          string
	LowerBound    float64
	UpperBound    float64
	Stoichiometry map[string]float64
	Objective     float64 // Objective coefficient (nonzero = part of the FBA objective)
}

// Exchange reports whether the reaction crosses the model boundary.
func (r *Reaction) Exchange() bool {
	return len(r.Stoichiometry) == 1
}

// Model is an in-memory genome-scale metabolic reconstruction.
//
// Reaction bounds are the only mutable state. During a sweep they are
// mutated transiently through OverrideBounds, which owns restoration.
type Model struct {
	ID          string
	Name        string
	Reactions   []*Reaction
	Metabolites []*Metabolite

	reactions   map[string]*Reaction
	metabolites map[string]*Metabolite
}

// Reaction returns the reaction with the given ID, or nil.
func (m *Model) Reaction(id string) *Reaction {
	return m.reactions[id]
}

// Metabolite returns the metabolite with the given ID, or nil.
func (m *Model) Metabolite(id string) *Metabolite {
	return m.metabolites[id]
}

// ObjectiveReaction returns the first reaction with a nonzero objective
// coefficient (the biomass reaction in a standard reconstruction).
func (m *Model) ObjectiveReaction() *Reaction {
	for _, r := range m.Reactions {
		if r.Objective != 0 {
			return r
		}
	}
	return nil
}

// ErrReactionNotFound reports a reaction ID absent from the model.
type ErrReactionNotFound struct{ ID string }

func (e ErrReactionNotFound) Error() string {
	return fmt.Sprintf("cuebench: reaction %q not found in model", e.ID)
}

// OverrideBounds sets the reaction's bounds and returns a closure that
// restores the previous values. The caller must invoke restore in a
// defer so that no error path leaves the model mutated:
//
//	restore, err := m.OverrideBounds("R_ATPM", cost, UnboundedFlux)
//	if err != nil {
//	    return err
//	}
//	defer restore()
//
// This is the transactional snapshot/rollback contract the sweep
// depends on: a failure computing one sample must not corrupt the
// bounds seen by the next.
func (m *Model) OverrideBounds(id string, lower, upper float64) (restore func(), err error) {
	r := m.reactions[id]
	if r == nil {
		return nil, ErrReactionNotFound{ID: id}
	}

	prevLower, prevUpper := r.LowerBound, r.UpperBound
	r.LowerBound = lower
	r.UpperBound = upper

	return func() {
		r.LowerBound = prevLower
		r.UpperBound = prevUpper
	}, nil
}

// index rebuilds the ID lookup maps.
func (m *Model) index() {
	m.reactions = make(map[string]*Reaction, len(m.Reactions))
	for _, r := range m.Reactions {
		m.reactions[r.ID] = r
	}
	m.metabolites = make(map[string]*Metabolite, len(m.Metabolites))
	for _, s := range m.Metabolites {
		m.metabolites[s.ID] = s
	}
}

// NewModel builds an indexed model from reactions and metabolites.
// Carbon counts are derived from metabolite formulas where present.
func NewModel(id string, reactions []*Reaction, metabolites []*Metabolite) *Model {
	m := &Model{ID: id, Reactions: reactions, Metabolites: metabolites}
	for _, s := range m.Metabolites {
		if s.Carbon == 0 && s.Formula != "" {
			s.Carbon = CarbonCount(s.Formula)
		}
	}
	m.index()
	return m
}

// Default flux bounds applied when an SBML reaction carries no explicit
// bound annotation, matching the convention of constraint-based
// reconstructions.
const (
	defaultLowerBound = -1000
	defaultUpperBound = 1000
)

// Load reads a metabolic model from an SBML file, transparently
// decompressing gzip input. Any parse failure is fatal for the run:
// there is no meaningful sweep over a partially loaded model.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return m, nil
}

// Read decodes an SBML model from r, sniffing for gzip compression.
func Read(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("read model header: %w", err)
	}

	var src io.Reader = br
	if magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("decompress model: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	return decodeSBML(src)
}

// SBML document subset. Element matching is by local name so that the
// decoder accepts core/fbc namespace variants; attributes are collected
// raw and resolved by local name for the same reason.
type sbmlDocument struct {
	XMLName xml.Name  `xml:"sbml"`
	Model   sbmlModel `xml:"model"`
}

type sbmlModel struct {
	ID         string          `xml:"id,attr"`
	Name       string          `xml:"name,attr"`
	Species    []sbmlSpecies   `xml:"listOfSpecies>species"`
	Parameters []sbmlParameter `xml:"listOfParameters>parameter"`
	Reactions  []sbmlReaction  `xml:"listOfReactions>reaction"`
	Objectives []sbmlObjective `xml:"listOfObjectives>objective"`
}

type sbmlSpecies struct {
	ID          string     `xml:"id,attr"`
	Name        string     `xml:"name,attr"`
	Compartment string     `xml:"compartment,attr"`
	Boundary    bool       `xml:"boundaryCondition,attr"`
	Notes       *sbmlNotes `xml:"notes"`
	Attrs       []xml.Attr `xml:",any,attr"`
}

type sbmlNotes struct {
	Raw string `xml:",innerxml"`
}

type sbmlParameter struct {
	ID    string  `xml:"id,attr"`
	Value float64 `xml:"value,attr"`
}

type sbmlReaction struct {
	ID         string             `xml:"id,attr"`
	Name       string             `xml:"name,attr"`
	Reversible *bool              `xml:"reversible,attr"`
	Reactants  []sbmlSpecRef      `xml:"listOfReactants>speciesReference"`
	Products   []sbmlSpecRef      `xml:"listOfProducts>speciesReference"`
	Kinetic    []sbmlKineticParam `xml:"kineticLaw>listOfParameters>parameter"`
	Attrs      []xml.Attr         `xml:",any,attr"`
}

type sbmlSpecRef struct {
	Species       string   `xml:"species,attr"`
	Stoichiometry *float64 `xml:"stoichiometry,attr"`
}

type sbmlKineticParam struct {
	ID    string  `xml:"id,attr"`
	Value float64 `xml:"value,attr"`
}

type sbmlObjective struct {
	FluxObjectives []sbmlFluxObjective `xml:"listOfFluxObjectives>fluxObjective"`
}

type sbmlFluxObjective struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func attrValue(attrs []xml.Attr, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func decodeSBML(r io.Reader) (*Model, error) {
	var doc sbmlDocument
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse SBML: %w", err)
	}
	if len(doc.Model.Reactions) == 0 {
		return nil, fmt.Errorf("parse SBML: model %q has no reactions", doc.Model.ID)
	}

	params := make(map[string]float64, len(doc.Model.Parameters))
	for _, p := range doc.Model.Parameters {
		params[p.ID] = p.Value
	}

	metabolites := make([]*Metabolite, 0, len(doc.Model.Species))
	for _, sp := range doc.Model.Species {
		s := &Metabolite{
			ID:          sp.ID,
			Name:        sp.Name,
			Compartment: sp.Compartment,
			Boundary:    sp.Boundary,
		}
		if f, ok := attrValue(sp.Attrs, "chemicalFormula"); ok {
			s.Formula = f
		} else if sp.Notes != nil {
			s.Formula = formulaFromNotes(sp.Notes.Raw)
		}
		metabolites = append(metabolites, s)
	}

	reactions := make([]*Reaction, 0, len(doc.Model.Reactions))
	for _, rx := range doc.Model.Reactions {
		r := &Reaction{
			ID:            rx.ID,
			Name:          rx.Name,
			Stoichiometry: make(map[string]float64, len(rx.Reactants)+len(rx.Products)),
		}
		for _, ref := range rx.Reactants {
			r.Stoichiometry[ref.Species] -= refStoichiometry(ref)
		}
		for _, ref := range rx.Products {
			r.Stoichiometry[ref.Species] += refStoichiometry(ref)
		}
		lb, ub, err := reactionBounds(rx, params)
		if err != nil {
			return nil, fmt.Errorf("reaction %s: %w", rx.ID, err)
		}
		r.LowerBound, r.UpperBound = lb, ub
		reactions = append(reactions, r)
	}

	m := NewModel(doc.Model.ID, reactions, metabolites)
	m.Name = doc.Model.Name

	for _, obj := range doc.Model.Objectives {
		for _, fo := range obj.FluxObjectives {
			id, _ := attrValue(fo.Attrs, "reaction")
			coefStr, _ := attrValue(fo.Attrs, "coefficient")
			if r := m.Reaction(id); r != nil {
				coef, err := strconv.ParseFloat(coefStr, 64)
				if err != nil {
					coef = 1
				}
				r.Objective = coef
			}
		}
	}

	return m, nil
}

func refStoichiometry(ref sbmlSpecRef) float64 {
	if ref.Stoichiometry == nil {
		return 1
	}
	return *ref.Stoichiometry
}

// reactionBounds resolves flux bounds: fbc parameter references first
// (SBML level 3), then legacy kinetic-law parameters (level 2), then
// reversibility defaults.
func reactionBounds(rx sbmlReaction, params map[string]float64) (lb, ub float64, err error) {
	lb, ub = defaultLowerBound, defaultUpperBound
	if rx.Reversible != nil && !*rx.Reversible {
		lb = 0
	}

	if ref, ok := attrValue(rx.Attrs, "lowerFluxBound"); ok {
		v, found := params[ref]
		if !found {
			return 0, 0, fmt.Errorf("lower flux bound references unknown parameter %q", ref)
		}
		lb = v
	}
	if ref, ok := attrValue(rx.Attrs, "upperFluxBound"); ok {
		v, found := params[ref]
		if !found {
			return 0, 0, fmt.Errorf("upper flux bound references unknown parameter %q", ref)
		}
		ub = v
	}

	for _, p := range rx.Kinetic {
		switch p.ID {
		case "LOWER_BOUND":
			lb = p.Value
		case "UPPER_BOUND":
			ub = p.Value
		}
	}

	if lb > ub {
		return 0, 0, fmt.Errorf("lower bound %g exceeds upper bound %g", lb, ub)
	}
	return lb, ub, nil
}

// formulaFromNotes extracts a "FORMULA: ..." annotation from a species
// notes block, the pre-fbc convention for carrying chemical formulas.
func formulaFromNotes(notes string) string {
	idx := strings.Index(notes, "FORMULA:")
	if idx < 0 {
		return ""
	}
	rest := notes[idx+len("FORMULA:"):]
	if end := strings.IndexAny(rest, "<\n"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

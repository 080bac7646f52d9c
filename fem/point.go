// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gomtest/inp"
	"github.com/cpmech/gomtest/mbehav"
	"github.com/cpmech/gomtest/out"
	"github.com/cpmech/gosl/utl"
)

// DefaultTemperature is the temperature used when no evolution is given
const DefaultTemperature = 293.15

// PointStudy describes the loading of a single material point. Unknowns are the driving
// variables followed by the Lagrange multipliers of the constraints.
type PointStudy struct {

	// behaviour
	B     mbehav.Behaviour  // behaviour
	State *mbehav.State     // state of the material point
	Wk    *mbehav.WorkSpace // workspace

	// loading
	Evolutions  Evolutions           // named evolutions usable by constraints
	Mprops      map[string]Evolution // material properties
	Esvs        map[string]Evolution // external state variables
	Constraints []Constraint         // imposed driving variables, forces and non-linear constraints

	// results
	Results *out.Table // t, driving variables, thermodynamic forces, internal state variables

	// derived
	A       float64     // normalisation factor
	ndv     int         // number of driving variables
	ntf     int         // number of thermodynamic forces
	nlm     int         // number of Lagrange multipliers
	dvsc    []float64   // Mandel factors of the driving variables
	tfsc    []float64   // Mandel factors of the thermodynamic forces
	mpevs   []Evolution // [nmp] evolutions of material properties
	esvevs  []Evolution // [nesv] evolutions of external state variables
	frows   []int       // [ntf] residual rows of the thermodynamic forces
	skew    [][3]int    // closing rows of finite strain studies {row, p, q}
	pinned  int         // pinned out-of-plane strain (plane stress); -1 if none
	scaled  bool        // the normalisation factor has been computed
	cd      ConstraintData
	imposed map[int]bool // imposed driving variables
}

// NewPointStudy returns a new study of a material point
//  strictIvs -- do not replace an empty list of internal state variables by a single slot
func NewPointStudy(b mbehav.Behaviour, strictIvs bool) *PointStudy {
	o := &PointStudy{
		B:          b,
		State:      mbehav.NewState(b, strictIvs),
		Wk:         mbehav.NewWorkSpace(b),
		Evolutions: make(Evolutions),
		Mprops:     make(map[string]Evolution),
		Esvs:       make(map[string]Evolution),
		imposed:    make(map[int]bool),
		ndv:        b.DrivingVariablesSize(),
		ntf:        b.ThermodynamicForcesSize(),
	}
	o.dvsc, o.tfsc = mandelScales(b)
	o.frows = make([]int, o.ntf)
	for i := range o.frows {
		o.frows[i] = i
	}
	if b.Kind() == mbehav.FiniteStrain {
		o.frows, o.skew = finiteStrainRows(b.Hypothesis())
	}
	o.cd.Values = make(map[string]float64)
	return o
}

// SetMaterialProperty sets the evolution of a material property
func (o *PointStudy) SetMaterialProperty(name string, ev Evolution) {
	o.Mprops[name] = ev
}

// SetExternalStateVariable sets the evolution of an external state variable
func (o *PointStudy) SetExternalStateVariable(name string, ev Evolution) {
	o.Esvs[name] = ev
}

// SetRotationMatrix sets the rotation from the global frame to the material frame
func (o *PointStudy) SetRotationMatrix(R [][]float64) error {
	if err := o.State.SetRotation(R); err != nil {
		return configErr("%v", err)
	}
	return nil
}

// ImposeDrivingVariable imposes the evolution of a component of the driving variables; e.g. "EXX"
func (o *PointStudy) ImposeDrivingVariable(name string, ev Evolution) error {
	c := utl.StrIndexSmall(o.B.DrivingVariablesComponents(), name)
	if c < 0 {
		return configErr("cannot impose %q: components of the driving variables are %v", name, o.B.DrivingVariablesComponents())
	}
	if o.imposed[c] {
		return configErr("driving variable %q is imposed twice", name)
	}
	o.imposed[c] = true
	o.Constraints = append(o.Constraints, &ImposedDrivingVariable{Name: name, Component: c, Scale: o.dvsc[c], Evolution: ev})
	return nil
}

// ImposeThermodynamicForce imposes the evolution of a component of the thermodynamic forces; e.g. "SXX"
func (o *PointStudy) ImposeThermodynamicForce(name string, ev Evolution) error {
	i := utl.StrIndexSmall(o.B.ThermodynamicForcesComponents(), name)
	if i < 0 {
		return configErr("cannot impose %q: components of the thermodynamic forces are %v", name, o.B.ThermodynamicForcesComponents())
	}
	o.Constraints = append(o.Constraints, &ImposedThermodynamicForce{Name: name, Row: o.frows[i], Scale: o.tfsc[i], Evolution: ev})
	return nil
}

// AddConstraint adds a constraint; e.g. a non-linear constraint
func (o *PointStudy) AddConstraint(c Constraint) {
	o.Constraints = append(o.Constraints, c)
}

// Setup checks the configuration and allocates the results table
func (o *PointStudy) Setup(opts *SolverOptions) error {

	// material properties and external state variables
	var err error
	if o.mpevs, err = materialPropertiesEvolutions(o.B, o.Mprops); err != nil {
		return err
	}
	if o.esvevs, err = externalStateVariablesEvolutions(o.B, o.Esvs); err != nil {
		return err
	}

	// constraints
	o.nlm = 0
	for _, c := range o.Constraints {
		o.nlm += c.NumLagrangeMultipliers()
	}
	o.pinned = o.B.Hypothesis().OutOfPlaneIndex()
	if o.B.Kind() != mbehav.SmallStrain || o.imposed[o.pinned] {
		o.pinned = -1
	}
	o.scaled = false

	// results
	keys := []string{"t"}
	keys = append(keys, o.B.DrivingVariablesComponents()...)
	keys = append(keys, o.B.ThermodynamicForcesComponents()...)
	keys = append(keys, o.B.InternalStateVariablesNames()...)
	o.Results = out.NewTable(keys...)
	return nil
}

// UnknownsSize returns the number of unknowns
func (o *PointStudy) UnknownsSize() int {
	return o.ndv + o.nlm
}

// InitializeState sets the initial driving variables
func (o *PointStudy) InitializeState(state *StudyState) error {
	copy(state.U0, o.State.E0)
	return nil
}

// Prepare evaluates the material properties and external state variables at t and t+dt
func (o *PointStudy) Prepare(state *StudyState, t, dt float64) {
	s := o.State
	for i, ev := range o.mpevs {
		s.Mprops0[i] = ev.F(t)
		s.Mprops1[i] = ev.F(t + dt)
	}
	for i, ev := range o.esvevs {
		s.Esv0[i] = ev.F(t)
		s.Desv[i] = ev.F(t+dt) - s.Esv0[i]
	}
	o.Evolutions.Values(o.cd.Values, t+dt)
	o.cd.T = t + dt
	if !o.scaled {
		o.A = o.normalisationFactor()
		o.scaled = true
		inp.Logf("normalisation factor: %g", o.A)
	}
}

// normalisationFactor returns the largest diagonal term of the elastic operator or 1
func (o *PointStudy) normalisationFactor() float64 {
	for _, ktype := range []mbehav.StiffnessType{mbehav.Elastic, mbehav.ElasticFromMaterialProperties} {
		ok, _ := o.B.ComputePredictionOperator(o.Wk, o.State, ktype)
		if !ok {
			continue
		}
		var a float64
		for i := 0; i < o.ntf; i++ {
			a = math.Max(a, math.Abs(o.Wk.Kt[i][i]))
		}
		if a > 0 && !math.IsNaN(a) && !math.IsInf(a, 0) {
			return a
		}
	}
	return 1
}

// ComputePredictionStiffnessAndResidual computes the prediction operator and the residual at
// the beginning of the step
func (o *PointStudy) ComputePredictionStiffnessAndResidual(state *StudyState, K [][]float64, r []float64, t, dt float64, ptype mbehav.PredictionPolicy) (ok bool) {
	copy(o.State.E1, o.State.E0)
	ok, _ = o.B.ComputePredictionOperator(o.Wk, o.State, ptype.StiffnessType())
	if !ok {
		return
	}
	o.assemble(K, r, state.U0, o.Wk.Kt, o.State.S0)
	return true
}

// ComputeStiffnessMatrixAndResidual integrates the behaviour and computes the stiffness and the
// residual at the current estimate of the unknowns
func (o *PointStudy) ComputeStiffnessMatrixAndResidual(state *StudyState, K [][]float64, r []float64, t, dt float64, ktype mbehav.StiffnessType) (ok bool, rdt float64) {
	copy(o.State.E1, state.U1[:o.ndv])
	ok, rdt = o.B.Integrate(o.State, o.Wk, dt, ktype)
	if !ok {
		return
	}
	o.assemble(K, r, state.U1, o.Wk.K, o.State.S1)
	return
}

// assemble fills the stiffness and the residual
func (o *PointStudy) assemble(K [][]float64, r []float64, u []float64, Kb [][]float64, σ []float64) {
	for i := range r {
		r[i] = 0
		for j := range r {
			K[i][j] = 0
		}
	}
	for i, row := range o.frows {
		r[row] = σ[i]
		for j := 0; j < o.ndv; j++ {
			K[row][j] = Kb[i][j]
		}
	}
	for _, s := range o.skew {
		r[s[0]] = o.A * (u[s[1]] - u[s[2]])
		K[s[0]][s[1]] = o.A
		K[s[0]][s[2]] = -o.A
	}
	if z := o.pinned; z >= 0 {
		r[z] = o.A * (u[z] - o.State.E0[z])
		for j := 0; j < o.ndv; j++ {
			K[z][j] = 0
		}
		K[z][z] = o.A
	}
	o.cd.E, o.cd.S, o.cd.Kb, o.cd.A = u[:o.ndv], σ, Kb, o.A
	pos := o.ndv
	for _, c := range o.Constraints {
		c.SetValues(K, r, u, pos, &o.cd)
		pos += c.NumLagrangeMultipliers()
	}
}

// CheckConvergence checks the corrections of the driving variables, the residual of the
// thermodynamic forces and each constraint
func (o *PointStudy) CheckConvergence(state *StudyState, du, r []float64, opts *SolverOptions, t, dt float64) ConvergenceReport {
	ne := norm(du[:o.ndv])
	if ne > opts.Eeps || math.IsNaN(ne) {
		return ConvergenceReport{false, "driving variables", ne}
	}
	var ns float64
	for _, row := range o.frows {
		if row != o.pinned {
			ns += r[row] * r[row]
		}
	}
	ns = math.Sqrt(ns)
	if ns > opts.Seps || math.IsNaN(ns) {
		return ConvergenceReport{false, "thermodynamic forces", ns}
	}
	pos := o.ndv
	for _, c := range o.Constraints {
		if ok, criterion, value := c.CheckConvergence(state.U1, pos, &o.cd, opts.Eeps, opts.Seps); !ok {
			return ConvergenceReport{false, criterion, value}
		}
		pos += c.NumLagrangeMultipliers()
	}
	return ConvergenceReport{true, "thermodynamic forces", ns}
}

// FailureCriteria checks that the thermodynamic forces are finite
func (o *PointStudy) FailureCriteria(state *StudyState, t, dt float64) (ok bool, criterion string, value float64) {
	for _, v := range o.State.S1 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false, "invalid thermodynamic forces", v
		}
	}
	return true, "", 0
}

// PostConvergence does nothing
func (o *PointStudy) PostConvergence(state *StudyState, t, dt float64) {}

// Revert resets the state of the material point
func (o *PointStudy) Revert(state *StudyState) { o.State.Revert() }

// Update updates the state of the material point
func (o *PointStudy) Update(state *StudyState) { o.State.Update() }

// Report adds a row to the results table (tensor components)
func (o *PointStudy) Report(state *StudyState, t float64) {
	s := o.State
	row := []float64{t}
	for i, v := range s.E0 {
		row = append(row, v/o.dvsc[i])
	}
	for i, v := range s.S0 {
		row = append(row, v/o.tfsc[i])
	}
	row = append(row, s.Iv0[:o.B.InternalStateVariablesSize()]...)
	o.Results.Add(row...)
}

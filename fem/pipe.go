// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"strings"

	"github.com/cpmech/gomtest/inp"
	"github.com/cpmech/gomtest/mbehav"
	"github.com/cpmech/gomtest/out"
	"github.com/cpmech/gomtest/shp"
	"github.com/cpmech/gosl/chk"
)

// AxialLoading defines the axial loading of a pipe
type AxialLoading int

// axial loadings
const (
	AxialNone          AxialLoading = iota // plane strain: ezz = 0
	EndCapEffect                           // closed tube: the axial force balances the pressures
	ImposedAxialForce                      // given axial force
	ImposedAxialStrain                     // given axial strain
)

var axialLoadingNames = []string{"None", "EndCapEffect", "ImposedAxialForce", "ImposedAxialStrain"}

func (o AxialLoading) String() string {
	if o < 0 || int(o) >= len(axialLoadingNames) {
		return "AxialLoading(?)"
	}
	return axialLoadingNames[o]
}

// ParseAxialLoading parses an axial loading (case insensitive)
func ParseAxialLoading(name string) (AxialLoading, error) {
	for i, n := range axialLoadingNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return AxialLoading(i), nil
		}
	}
	if name == "" {
		return AxialNone, nil
	}
	return 0, chk.Err("unknown axial loading %q; options are %v", name, axialLoadingNames)
}

// PipeMesh holds the discretisation of the pipe thickness
type PipeMesh struct {
	InnerRadius      float64 // inner radius
	OuterRadius      float64 // outer radius
	NumberOfElements int     // number of elements
	ElementType      string  // "lin2", "lin3" or "lin4"
	Ratio            float64 // ratio between the lengths of successive elements; 0 or 1 means uniform
}

// PipeStudy describes a pipe subjected to pressures and axial loading
type PipeStudy struct {

	// input
	Mesh          PipeMesh             // mesh
	B             mbehav.Behaviour     // behaviour
	StrictIvs     bool                 // do not pad empty internal state variables
	Mprops        map[string]Evolution // material properties
	Esvs          map[string]Evolution // external state variables
	InnerPressure Evolution            // inner pressure; nil means none
	OuterPressure Evolution            // outer pressure; nil means none
	Axial         AxialLoading         // axial loading
	AxialForce    Evolution            // imposed axial force
	AxialStrain   Evolution            // imposed axial strain

	// failure criteria; zero means none
	MaxInnerRadius float64
	MaxOuterRadius float64

	// derived
	Nodes   []float64      // nodal radii
	Elems   []*PipeElement // elements
	Results *out.Table     // t, deformed radii, axial strain and axial force
	A       float64        // normalisation factor of the axial constraint

	// auxiliary
	nn        int         // number of nodes
	mpevs     []Evolution // evolutions of material properties
	esvevs    []Evolution // evolutions of external state variables
	mp0, mp1  []float64   // material properties at t and t+dt
	esv, desv []float64   // external state variables at t and increments
	pi, pe    float64     // pressures at t+dt
	fz        float64     // axial force at t+dt
	ezz       float64     // axial strain at t+dt (when imposed)
	scaled    bool        // A has been computed
}

// NewPipeStudy returns a new pipe study
func NewPipeStudy(b mbehav.Behaviour, mesh PipeMesh) *PipeStudy {
	return &PipeStudy{
		Mesh:   mesh,
		B:      b,
		Mprops: make(map[string]Evolution),
		Esvs:   make(map[string]Evolution),
	}
}

// hasMultiplier tells whether the axial strain is imposed by a Lagrange multiplier
func (o *PipeStudy) hasMultiplier() bool {
	return o.Axial == AxialNone || o.Axial == ImposedAxialStrain
}

// Setup generates the mesh and checks the loading
func (o *PipeStudy) Setup(opts *SolverOptions) (err error) {

	// check
	m := o.Mesh
	if m.InnerRadius <= 0 || m.OuterRadius <= m.InnerRadius {
		return configErr("radii of pipe must satisfy 0 < Ri < Re. Ri=%g, Re=%g", m.InnerRadius, m.OuterRadius)
	}
	if m.NumberOfElements < 1 {
		return configErr("number of elements must be positive; %d given", m.NumberOfElements)
	}
	if m.ElementType == "" {
		m.ElementType = "lin4"
	}
	shape := shp.Get(m.ElementType, 0)
	if shape == nil {
		return configErr("element type %q is not available; options are %v", m.ElementType, shp.Types())
	}
	if m.Ratio < 0 {
		return configErr("ratio between successive elements must be positive; %g given", m.Ratio)
	}
	switch o.Axial {
	case ImposedAxialForce:
		if o.AxialForce == nil {
			return configErr("axial force must be given with axial loading %v", o.Axial)
		}
	case ImposedAxialStrain:
		if o.AxialStrain == nil {
			return configErr("axial strain must be given with axial loading %v", o.Axial)
		}
	}

	// loading
	if o.mpevs, err = materialPropertiesEvolutions(o.B, o.Mprops); err != nil {
		return
	}
	if o.esvevs, err = externalStateVariablesEvolutions(o.B, o.Esvs); err != nil {
		return
	}
	o.mp0, o.mp1 = make([]float64, len(o.mpevs)), make([]float64, len(o.mpevs))
	o.esv, o.desv = make([]float64, len(o.esvevs)), make([]float64, len(o.esvevs))

	// element boundaries
	nel, nv := m.NumberOfElements, shape.Nverts
	bry := make([]float64, nel+1)
	L := m.OuterRadius - m.InnerRadius
	q := m.Ratio
	if q == 0 || q == 1 {
		q = 1
	}
	l := L / float64(nel)
	if q != 1 {
		l = L * (1 - q) / (1 - math.Pow(q, float64(nel)))
	}
	bry[0] = m.InnerRadius
	for e := 0; e < nel; e++ {
		bry[e+1] = bry[e] + l
		l *= q
	}
	bry[nel] = m.OuterRadius

	// nodes and elements
	o.nn = nel*(nv-1) + 1
	o.Nodes = make([]float64, o.nn)
	o.Elems = make([]*PipeElement, nel)
	X := make([]float64, nv)
	umap := make([]int, nv)
	for e := 0; e < nel; e++ {
		g0 := e * (nv - 1)
		for k := 0; k < nv; k++ {
			switch k {
			case 0:
				umap[k] = g0
			case 1:
				umap[k] = g0 + nv - 1
			default:
				umap[k] = g0 + k - 1
			}
			X[k] = bry[e] + (shape.NatCoords[k]+1)/2*(bry[e+1]-bry[e])
			o.Nodes[umap[k]] = X[k]
		}
		if o.Elems[e], err = NewPipeElement(e, o.B, m.ElementType, X, umap, o.StrictIvs); err != nil {
			return configErr("%v", err)
		}
	}
	o.Mesh = m
	o.scaled = false

	// results
	o.Results = out.NewTable("t", "Ri", "Re", "EZZ", "AxialForce")
	return
}

// UnknownsSize returns the number of unknowns: nodal displacements, ezz and, possibly, the
// Lagrange multiplier of the axial strain
func (o *PipeStudy) UnknownsSize() int {
	if o.hasMultiplier() {
		return o.nn + 2
	}
	return o.nn + 1
}

// InitializeState sets zero displacements
func (o *PipeStudy) InitializeState(state *StudyState) error {
	return nil
}

// Prepare evaluates the loading at t and t+dt
func (o *PipeStudy) Prepare(state *StudyState, t, dt float64) {
	for i, ev := range o.mpevs {
		o.mp0[i], o.mp1[i] = ev.F(t), ev.F(t+dt)
	}
	for i, ev := range o.esvevs {
		o.esv[i] = ev.F(t)
		o.desv[i] = ev.F(t+dt) - o.esv[i]
	}
	for _, e := range o.Elems {
		e.SetLoading(o.mp0, o.mp1, o.esv, o.desv)
	}
	o.pi, o.pe, o.fz, o.ezz = 0, 0, 0, 0
	if o.InnerPressure != nil {
		o.pi = o.InnerPressure.F(t + dt)
	}
	if o.OuterPressure != nil {
		o.pe = o.OuterPressure.F(t + dt)
	}
	switch o.Axial {
	case EndCapEffect:
		Ri, Re := o.Mesh.InnerRadius, o.Mesh.OuterRadius
		o.fz = math.Pi * (o.pi*Ri*Ri - o.pe*Re*Re)
	case ImposedAxialForce:
		o.fz = o.AxialForce.F(t + dt)
	case ImposedAxialStrain:
		o.ezz = o.AxialStrain.F(t + dt)
	}
	if !o.scaled {
		o.A = o.normalisationFactor(state.K)
		o.scaled = true
		inp.Logf("normalisation factor: %g", o.A)
	}
}

// normalisationFactor returns the largest diagonal term of the elastic stiffness or 1
func (o *PipeStudy) normalisationFactor(K [][]float64) float64 {
	for i := range K {
		for j := range K[i] {
			K[i][j] = 0
		}
	}
	for _, e := range o.Elems {
		if !e.ComputePredictionOperator(mbehav.Elastic) {
			return 1
		}
		e.AddToKb(K, o.nn, true)
	}
	var a float64
	for i := 0; i <= o.nn; i++ {
		a = math.Max(a, math.Abs(K[i][i]))
	}
	if a == 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		return 1
	}
	return a
}

// ComputePredictionStiffnessAndResidual computes the prediction operator and the residual at the
// beginning of the step
func (o *PipeStudy) ComputePredictionStiffnessAndResidual(state *StudyState, K [][]float64, r []float64, t, dt float64, ptype mbehav.PredictionPolicy) (ok bool) {
	zeroKr(K, r)
	for _, e := range o.Elems {
		if !e.ComputePredictionOperator(ptype.StiffnessType()) {
			return false
		}
		e.AddToRhs(r, o.nn, true)
		e.AddToKb(K, o.nn, true)
	}
	o.addLoading(K, r, state.U0)
	return true
}

// ComputeStiffnessMatrixAndResidual integrates the behaviour at all integration points and
// assembles the stiffness and the residual
func (o *PipeStudy) ComputeStiffnessMatrixAndResidual(state *StudyState, K [][]float64, r []float64, t, dt float64, ktype mbehav.StiffnessType) (ok bool, rdt float64) {
	zeroKr(K, r)
	rdt = 1
	for _, e := range o.Elems {
		oke, rdte := e.Integrate(state.U1, state.U1[o.nn], dt, ktype)
		rdt = math.Min(rdt, rdte)
		if !oke {
			return false, rdt
		}
		e.AddToRhs(r, o.nn, false)
		e.AddToKb(K, o.nn, false)
	}
	o.addLoading(K, r, state.U1)
	return true, rdt
}

// addLoading adds pressures, axial loading and the axial constraint
func (o *PipeStudy) addLoading(K [][]float64, r []float64, u []float64) {
	Ri, Re := o.Mesh.InnerRadius, o.Mesh.OuterRadius
	r[0] -= 2 * math.Pi * Ri * o.pi
	r[o.nn-1] += 2 * math.Pi * Re * o.pe
	r[o.nn] -= o.fz
	if o.hasMultiplier() {
		z, pos := o.nn, o.nn+1
		r[pos] = o.A * (u[z] - o.ezz)
		r[z] += o.A * u[pos]
		K[pos][z] += o.A
		K[z][pos] += o.A
	}
}

// CheckConvergence checks the corrections of the displacements and of the axial strain, the
// radial forces, the axial force and the axial constraint
func (o *PipeStudy) CheckConvergence(state *StudyState, du, r []float64, opts *SolverOptions, t, dt float64) ConvergenceReport {
	Ri, Re := o.Mesh.InnerRadius, o.Mesh.OuterRadius
	if v := norm(du[:o.nn]); v > opts.Eeps*Ri || math.IsNaN(v) {
		return ConvergenceReport{false, "radial displacements", v}
	}
	if v := math.Abs(du[o.nn]); v > opts.Eeps || math.IsNaN(v) {
		return ConvergenceReport{false, "axial strain", v}
	}
	if v := norm(r[:o.nn]) / (2 * math.Pi * Ri); v > opts.Seps || math.IsNaN(v) {
		return ConvergenceReport{false, "radial forces", v}
	}
	if v := math.Abs(r[o.nn]) / (math.Pi * (Re*Re - Ri*Ri)); v > opts.Seps || math.IsNaN(v) {
		return ConvergenceReport{false, "axial force", v}
	}
	if o.hasMultiplier() {
		if v := math.Abs(state.U1[o.nn] - o.ezz); v > opts.Eeps {
			return ConvergenceReport{false, "imposed axial strain", v}
		}
	}
	return ConvergenceReport{true, "radial forces", norm(r[:o.nn]) / (2 * math.Pi * Ri)}
}

// FailureCriteria checks the maximum inner and outer radii
func (o *PipeStudy) FailureCriteria(state *StudyState, t, dt float64) (ok bool, criterion string, value float64) {
	ri := o.Mesh.InnerRadius + state.U1[0]
	if o.MaxInnerRadius > 0 && ri > o.MaxInnerRadius {
		return false, "maximum inner radius", ri
	}
	re := o.Mesh.OuterRadius + state.U1[o.nn-1]
	if o.MaxOuterRadius > 0 && re > o.MaxOuterRadius {
		return false, "maximum outer radius", re
	}
	return true, "", 0
}

// PostConvergence does nothing
func (o *PipeStudy) PostConvergence(state *StudyState, t, dt float64) {}

// Revert resets the states of all elements
func (o *PipeStudy) Revert(state *StudyState) {
	for _, e := range o.Elems {
		e.Revert()
	}
}

// Update updates the states of all elements
func (o *PipeStudy) Update(state *StudyState) {
	for _, e := range o.Elems {
		e.Update()
	}
}

// Report adds the deformed radii, the axial strain and the axial force to the results
func (o *PipeStudy) Report(state *StudyState, t float64) {
	var fz float64
	for _, e := range o.Elems {
		fz += e.AxialForce()
	}
	o.Results.Add(t, o.Mesh.InnerRadius+state.U0[0], o.Mesh.OuterRadius+state.U0[o.nn-1], state.U0[o.nn], fz)
}

// Displacements returns the nodal radial displacements at the end of the last converged step
func (o *PipeStudy) Displacements(state *StudyState) []float64 {
	return state.U0[:o.nn]
}

// DisplacementAt interpolates the radial displacement at radius r of the undeformed pipe
func (o *PipeStudy) DisplacementAt(state *StudyState, r float64) (u float64, err error) {
	for _, e := range o.Elems {
		if r < e.X[0] || r > e.X[1] {
			continue
		}
		ξ, err := e.Shp.InvMap(r, e.X)
		if err != nil {
			return 0, err
		}
		e.Shp.CalcAtR(e.X, ξ, false)
		for m, eq := range e.Umap {
			u += e.Shp.S[m] * state.U0[eq]
		}
		return u, nil
	}
	return 0, chk.Err("radius %g is outside the pipe [%g, %g]", r, o.Mesh.InnerRadius, o.Mesh.OuterRadius)
}

// zeroKr zeroes K and r
func zeroKr(K [][]float64, r []float64) {
	for i := range r {
		r[i] = 0
		for j := range K[i] {
			K[i][j] = 0
		}
	}
}

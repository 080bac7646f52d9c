// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import "github.com/cpmech/gosl/utl"

// WorkSpace holds the scratch buffers used by a behaviour at one integration point.
// It is allocated once and reused by every call.
type WorkSpace struct {

	// tangent operators in the canonical layout
	K  [][]float64 // [ntf][ndv] tangent operator computed by Integrate
	Kt [][]float64 // [ntf][ndv] operator computed by ComputePredictionOperator

	// convention buffers
	D    []float64 // raw tangent buffer, sized by the behaviour to its own layout
	Mps  []float64 // material properties passed to the behaviour
	Ivs  []float64 // internal state variables passed to the behaviour
	Ue0  []float64 // driving variables at the beginning of the time step
	Ude  []float64 // increments of driving variables
	Us0  []float64 // thermodynamic forces (input and output)
	Rot  []float64 // [9] rotation matrix, column-major
	Evs  []float64 // external state variables (without temperature)
	Devs []float64 // increments of external state variables (without temperature)
	F0   []float64 // [9] deformation gradient at the beginning of the time step, column-major
	F1   []float64 // [9] deformation gradient at the end of the time step, column-major

	// auxiliary
	Tmp []float64   // [9] scratch vector
	Ct  [][]float64 // [ntf][ntf] scratch matrix
	Cs  *State      // copy of the state used by predictions
}

// NewWorkSpace allocates a workspace for behaviour b
func NewWorkSpace(b Behaviour) *WorkSpace {
	var o WorkSpace
	b.Allocate(&o)
	return &o
}

// allocCommon allocates the buffers shared by all behaviours; nd is the size of D
func (o *WorkSpace) allocCommon(b Behaviour, nd int) {
	ntf, ndv := b.ThermodynamicForcesSize(), b.DrivingVariablesSize()
	niv := b.InternalStateVariablesSize()
	if niv == 0 {
		niv = 1
	}
	nesv := len(b.ExternalStateVariablesNames()) - 1
	o.K = utl.Alloc(ntf, ndv)
	o.Kt = utl.Alloc(ntf, ndv)
	o.D = make([]float64, nd)
	o.Mps = make([]float64, len(b.MaterialPropertiesNames()))
	o.Ivs = make([]float64, niv)
	o.Ue0 = make([]float64, 9)
	o.Ude = make([]float64, 9)
	o.Us0 = make([]float64, 9)
	o.Rot = make([]float64, 9)
	o.Evs = make([]float64, nesv)
	o.Devs = make([]float64, nesv)
	o.F0 = make([]float64, 9)
	o.F1 = make([]float64, 9)
	o.Tmp = make([]float64, 9)
	o.Ct = utl.Alloc(ntf, ntf)
	o.Cs = nil
}

// copyState copies s into the prediction scratch state
func (o *WorkSpace) copyState(s *State) *State {
	if o.Cs == nil {
		o.Cs = s.GetCopy()
		return o.Cs
	}
	o.Cs.Set(s)
	return o.Cs
}

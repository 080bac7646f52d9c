// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// State holds the state of one integration point at the beginning (0) and at the end (1) of the
// current time step
type State struct {

	// driving variables and thermodynamic forces
	E0 []float64 // driving variables at the beginning of the time step [ndv]
	E1 []float64 // driving variables at the end of the time step [ndv]
	S0 []float64 // thermodynamic forces at the beginning of the time step [ntf]
	S1 []float64 // thermodynamic forces at the end of the time step [ntf]

	// material properties
	Mprops0 []float64 // material properties at the beginning of the time step [nmp]
	Mprops1 []float64 // material properties at the end of the time step [nmp]

	// internal state variables
	Iv0 []float64 // internal state variables at the beginning of the time step [niv]
	Iv1 []float64 // internal state variables at the end of the time step [niv]

	// external state variables (temperature first)
	Esv0 []float64 // values at the beginning of the time step [nesv]
	Desv []float64 // increments over the time step [nesv]

	// auxiliary
	R        [][]float64 // [3][3] rotation matrix from the global frame to the material frame
	Position float64     // radial position of the integration point (structures)
}

// NewState allocates a state for behaviour b
//  strictIvs -- do not replace an empty list of internal state variables by a single slot
func NewState(b Behaviour, strictIvs bool) *State {
	var o State
	o.Allocate(b, strictIvs)
	return &o
}

// Allocate sizes all vectors. Sizes never change after the first allocation.
func (o *State) Allocate(b Behaviour, strictIvs bool) {
	ndv := b.DrivingVariablesSize()
	ntf := b.ThermodynamicForcesSize()
	nmp := len(b.MaterialPropertiesNames())
	niv := b.InternalStateVariablesSize()
	nesv := len(b.ExternalStateVariablesNames())
	if niv == 0 && !strictIvs {
		niv = 1
	}
	if o.E0 != nil {
		if len(o.E0) != ndv || len(o.S0) != ntf || len(o.Mprops0) != nmp || len(o.Iv0) != niv || len(o.Esv0) != nesv {
			chk.Panic("cannot re-allocate state with different sizes")
		}
		return
	}
	o.E0, o.E1 = make([]float64, ndv), make([]float64, ndv)
	o.S0, o.S1 = make([]float64, ntf), make([]float64, ntf)
	o.Mprops0, o.Mprops1 = make([]float64, nmp), make([]float64, nmp)
	o.Iv0, o.Iv1 = make([]float64, niv), make([]float64, niv)
	o.Esv0, o.Desv = make([]float64, nesv), make([]float64, nesv)
	o.R = utl.Alloc(3, 3)
	for i := 0; i < 3; i++ {
		o.R[i][i] = 1
	}
	if b.Kind() == FiniteStrain {
		for i := 0; i < 3; i++ {
			o.E0[i], o.E1[i] = 1, 1
		}
	}
}

// Revert resets the end of the time step to the beginning of the time step
func (o *State) Revert() {
	copy(o.E1, o.E0)
	copy(o.S1, o.S0)
	copy(o.Iv1, o.Iv0)
	copy(o.Mprops1, o.Mprops0)
}

// Update makes the end of the time step the beginning of the next one
func (o *State) Update() {
	copy(o.E0, o.E1)
	copy(o.S0, o.S1)
	copy(o.Iv0, o.Iv1)
	copy(o.Mprops0, o.Mprops1)
	for i := range o.Esv0 {
		o.Esv0[i] += o.Desv[i]
		o.Desv[i] = 0
	}
}

// Set copies states
//  Note: this and other states must have been allocated with the same sizes
func (o *State) Set(other *State) {
	copy(o.E0, other.E0)
	copy(o.E1, other.E1)
	copy(o.S0, other.S0)
	copy(o.S1, other.S1)
	copy(o.Mprops0, other.Mprops0)
	copy(o.Mprops1, other.Mprops1)
	copy(o.Iv0, other.Iv0)
	copy(o.Iv1, other.Iv1)
	copy(o.Esv0, other.Esv0)
	copy(o.Desv, other.Desv)
	for i := 0; i < 3; i++ {
		copy(o.R[i], other.R[i])
	}
	o.Position = other.Position
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := &State{
		E0: make([]float64, len(o.E0)), E1: make([]float64, len(o.E1)),
		S0: make([]float64, len(o.S0)), S1: make([]float64, len(o.S1)),
		Mprops0: make([]float64, len(o.Mprops0)), Mprops1: make([]float64, len(o.Mprops1)),
		Iv0: make([]float64, len(o.Iv0)), Iv1: make([]float64, len(o.Iv1)),
		Esv0: make([]float64, len(o.Esv0)), Desv: make([]float64, len(o.Desv)),
		R: utl.Alloc(3, 3),
	}
	other.Set(o)
	return other
}

// SetRotation sets the rotation matrix; r must be orthonormal
func (o *State) SetRotation(r [][]float64) error {
	if len(r) != 3 {
		return chk.Err("rotation matrix must be 3x3")
	}
	for i := 0; i < 3; i++ {
		if len(r[i]) != 3 {
			return chk.Err("rotation matrix must be 3x3")
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var dot float64
			for k := 0; k < 3; k++ {
				dot += r[i][k] * r[j][k]
			}
			if i == j {
				dot -= 1
			}
			if math.Abs(dot) > 1e-10 {
				return chk.Err("rotation matrix is not orthonormal: (R Rᵀ - I)[%d][%d] = %g", i, j, dot)
			}
		}
	}
	for i := 0; i < 3; i++ {
		copy(o.R[i], r[i])
	}
	return nil
}

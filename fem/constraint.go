// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gomtest/mbehav"
	"github.com/cpmech/gosl/io"
)

// ConstraintData holds the data of a material point made available to constraints
type ConstraintData struct {
	E      []float64          // driving variables at the end of the step
	S      []float64          // thermodynamic forces at the end of the step
	Kb     [][]float64        // [ntf][ndv] tangent operator of the behaviour
	T      float64            // time at the end of the step
	A      float64            // normalisation factor
	Values map[string]float64 // evolutions at the end of the step, including "t"
}

// Constraint defines additional equations of a material point study. Unknowns 0..ndv-1 are the
// driving variables and residual row i is the equation associated with unknown i.
type Constraint interface {
	NumLagrangeMultipliers() int // number of additional unknowns
	Description() string         // short description used in messages

	// SetValues adds the contribution of the constraint to the stiffness and residual;
	// pos is the position of the first Lagrange multiplier
	SetValues(K [][]float64, r []float64, u []float64, pos int, d *ConstraintData)

	// CheckConvergence checks the constraint at the end of an iteration
	CheckConvergence(u []float64, pos int, d *ConstraintData, eeps, seps float64) (ok bool, criterion string, value float64)
}

// ImposedDrivingVariable imposes the value of a driving variable using a Lagrange multiplier
type ImposedDrivingVariable struct {
	Name      string    // name of the component; e.g. "EXX"
	Component int       // index of the component
	Scale     float64   // factor converting the imposed value into the component's value
	Evolution Evolution // imposed value
}

func (o *ImposedDrivingVariable) NumLagrangeMultipliers() int { return 1 }
func (o *ImposedDrivingVariable) Description() string         { return "imposed " + o.Name }

func (o *ImposedDrivingVariable) SetValues(K [][]float64, r []float64, u []float64, pos int, d *ConstraintData) {
	c := o.Component
	v := o.Scale * o.Evolution.F(d.T)
	r[pos] = d.A * (u[c] - v)
	r[c] += d.A * u[pos]
	K[pos][c] += d.A
	K[c][pos] += d.A
}

func (o *ImposedDrivingVariable) CheckConvergence(u []float64, pos int, d *ConstraintData, eeps, seps float64) (ok bool, criterion string, value float64) {
	value = math.Abs(u[o.Component] - o.Scale*o.Evolution.F(d.T))
	return value < eeps, io.Sf("imposed %s", o.Name), value
}

// ImposedThermodynamicForce imposes the value of a thermodynamic force; no additional unknown
type ImposedThermodynamicForce struct {
	Name      string    // name of the component; e.g. "SXX"
	Row       int       // residual row of the component
	Scale     float64   // factor converting the imposed value into the component's value
	Evolution Evolution // imposed value
}

func (o *ImposedThermodynamicForce) NumLagrangeMultipliers() int { return 0 }
func (o *ImposedThermodynamicForce) Description() string         { return "imposed " + o.Name }

func (o *ImposedThermodynamicForce) SetValues(K [][]float64, r []float64, u []float64, pos int, d *ConstraintData) {
	r[o.Row] -= o.Scale * o.Evolution.F(d.T)
}

func (o *ImposedThermodynamicForce) CheckConvergence(u []float64, pos int, d *ConstraintData, eeps, seps float64) (ok bool, criterion string, value float64) {
	return true, "", 0
}

// mandelScales returns the factors converting the tensor components of driving variables and
// thermodynamic forces into their Mandel components
func mandelScales(b mbehav.Behaviour) (dv, tf []float64) {
	ndv, ntf := b.DrivingVariablesSize(), b.ThermodynamicForcesSize()
	dv, tf = make([]float64, ndv), make([]float64, ntf)
	for i := range dv {
		dv[i] = 1
		if b.Kind() == mbehav.SmallStrain && i >= 3 {
			dv[i] = math.Sqrt2
		}
	}
	for i := range tf {
		tf[i] = 1
		if b.Kind() != mbehav.CohesiveZone && i >= 3 {
			tf[i] = math.Sqrt2
		}
	}
	return
}

// finiteStrainRows returns the residual row associated with each stress component and the
// pairs of components of the deformation gradient whose difference closes the remaining rows
//  3D: σxy→FXY σxz→FXZ σyz→FYZ and rows FYX, FZX, FZY: F_XY - F_YX, ...
func finiteStrainRows(h mbehav.Hypothesis) (rows []int, skew [][3]int) {
	switch h.TensorSize() {
	case 9:
		return []int{0, 1, 2, 3, 5, 7}, [][3]int{{4, 3, 4}, {6, 5, 6}, {8, 7, 8}}
	case 5:
		return []int{0, 1, 2, 3}, [][3]int{{4, 3, 4}}
	}
	return []int{0, 1, 2}, nil
}

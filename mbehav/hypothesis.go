// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Hypothesis defines a modelling hypothesis
type Hypothesis int

// modelling hypotheses
const (
	Tridimensional Hypothesis = iota
	Axisymmetrical
	PlaneStrain
	PlaneStress
	GeneralisedPlaneStrain
	AxisymmetricalGeneralisedPlaneStrain
	AxisymmetricalGeneralisedPlaneStress
)

// Hypotheses lists all modelling hypotheses
var Hypotheses = []Hypothesis{
	Tridimensional,
	Axisymmetrical,
	PlaneStrain,
	PlaneStress,
	GeneralisedPlaneStrain,
	AxisymmetricalGeneralisedPlaneStrain,
	AxisymmetricalGeneralisedPlaneStress,
}

var hypothesisNames = []string{
	"Tridimensional",
	"Axisymmetrical",
	"PlaneStrain",
	"PlaneStress",
	"GeneralisedPlaneStrain",
	"AxisymmetricalGeneralisedPlaneStrain",
	"AxisymmetricalGeneralisedPlaneStress",
}

// String returns the name of the hypothesis as used by the compiled libraries
func (o Hypothesis) String() string {
	if o < 0 || int(o) >= len(hypothesisNames) {
		return io.Sf("Hypothesis(%d)", int(o))
	}
	return hypothesisNames[o]
}

// ParseHypothesis returns the hypothesis with the given name
func ParseHypothesis(name string) (Hypothesis, error) {
	for i, n := range hypothesisNames {
		if n == name {
			return Hypothesis(i), nil
		}
	}
	return 0, chk.Err("unknown modelling hypothesis %q", name)
}

// SpaceDimension returns the space dimension
func (o Hypothesis) SpaceDimension() int {
	switch o {
	case Tridimensional:
		return 3
	case AxisymmetricalGeneralisedPlaneStrain, AxisymmetricalGeneralisedPlaneStress:
		return 1
	}
	return 2
}

// StensorSize returns the number of components of symmetric tensors
func (o Hypothesis) StensorSize() int {
	switch o.SpaceDimension() {
	case 3:
		return 6
	case 2:
		return 4
	}
	return 3
}

// TensorSize returns the number of components of unsymmetric tensors
func (o Hypothesis) TensorSize() int {
	switch o.SpaceDimension() {
	case 3:
		return 9
	case 2:
		return 5
	}
	return 3
}

// IsAxisymmetrical tells whether the components are expressed in cylindrical coordinates
func (o Hypothesis) IsAxisymmetrical() bool {
	return o == Axisymmetrical || o == AxisymmetricalGeneralisedPlaneStrain || o == AxisymmetricalGeneralisedPlaneStress
}

// IsPlaneStress tells whether the out-of-plane (axial) stress vanishes
func (o Hypothesis) IsPlaneStress() bool {
	return o == PlaneStress || o == AxisymmetricalGeneralisedPlaneStress
}

// OutOfPlaneIndex returns the index of the stress free component of plane stress hypotheses or -1
func (o Hypothesis) OutOfPlaneIndex() int {
	return outOfPlaneIndex(o)
}

// StensorComponents returns the names of the components of a symmetric tensor
//  Example: prefix="E" and Tridimensional => EXX EYY EZZ EXY EXZ EYZ
func (o Hypothesis) StensorComponents(prefix string) []string {
	var sfx []string
	switch {
	case o == Tridimensional:
		sfx = []string{"XX", "YY", "ZZ", "XY", "XZ", "YZ"}
	case o.SpaceDimension() == 1:
		sfx = []string{"RR", "ZZ", "TT"}
	case o == Axisymmetrical:
		sfx = []string{"RR", "ZZ", "TT", "RZ"}
	default:
		sfx = []string{"XX", "YY", "ZZ", "XY"}
	}
	return prefixed(prefix, sfx)
}

// TensorComponents returns the names of the components of an unsymmetric tensor
//  Example: prefix="F" and Tridimensional => FXX FYY FZZ FXY FYX FXZ FZX FYZ FZY
func (o Hypothesis) TensorComponents(prefix string) []string {
	var sfx []string
	switch {
	case o == Tridimensional:
		sfx = []string{"XX", "YY", "ZZ", "XY", "YX", "XZ", "ZX", "YZ", "ZY"}
	case o.SpaceDimension() == 1:
		sfx = []string{"RR", "ZZ", "TT"}
	case o == Axisymmetrical:
		sfx = []string{"RR", "ZZ", "TT", "RZ", "ZR"}
	default:
		sfx = []string{"XX", "YY", "ZZ", "XY", "YX"}
	}
	return prefixed(prefix, sfx)
}

// VectorComponents returns the names of the components of a vector
func (o Hypothesis) VectorComponents(prefix string) []string {
	var sfx []string
	switch {
	case o == Tridimensional:
		sfx = []string{"X", "Y", "Z"}
	case o.SpaceDimension() == 1:
		sfx = []string{"R"}
	case o == Axisymmetrical:
		sfx = []string{"R", "Z"}
	default:
		sfx = []string{"X", "Y"}
	}
	return prefixed(prefix, sfx)
}

func prefixed(prefix string, sfx []string) []string {
	res := make([]string, len(sfx))
	for i, s := range sfx {
		res[i] = prefix + s
	}
	return res
}

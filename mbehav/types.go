// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// StiffnessType defines the kind of tangent operator requested from a behaviour
type StiffnessType int

// stiffness types
const (
	NoStiffness StiffnessType = iota
	Elastic
	ElasticFromMaterialProperties
	Secant
	Tangent
	ConsistentTangent
)

var stiffnessNames = []string{
	"NOSTIFFNESS",
	"ELASTIC",
	"ELASTIC-FROM-MATERIAL-PROPERTIES",
	"SECANT",
	"TANGENT",
	"CONSISTENT-TANGENT",
}

func (o StiffnessType) String() string {
	if o < 0 || int(o) >= len(stiffnessNames) {
		return io.Sf("StiffnessType(%d)", int(o))
	}
	return stiffnessNames[o]
}

// ParseStiffnessType parses a stiffness type (case insensitive)
func ParseStiffnessType(name string) (StiffnessType, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range stiffnessNames {
		if n == key {
			return StiffnessType(i), nil
		}
	}
	return 0, chk.Err("unknown stiffness type %q", name)
}

// requestCode returns the integer code passed in the first entry of the tangent buffer by the
// castem, aster and cyrano conventions
func (o StiffnessType) requestCode() float64 {
	switch o {
	case Elastic, ElasticFromMaterialProperties:
		return 1
	case Secant:
		return 2
	case Tangent:
		return 3
	case ConsistentTangent:
		return 4
	}
	return 0
}

// PredictionPolicy defines how the first estimate of a time step is computed
type PredictionPolicy int

// prediction policies
const (
	NoPrediction PredictionPolicy = iota
	LinearPrediction
	ElasticPrediction
	ElasticPredictionFromMaterialProperties
	SecantPrediction
	TangentPrediction
)

var predictionNames = []string{
	"NOPREDICTION",
	"LINEARPREDICTION",
	"ELASTICPREDICTION",
	"ELASTICPREDICTIONFROMMATERIALPROPERTIES",
	"SECANTOPERATORPREDICTION",
	"TANGENTOPERATORPREDICTION",
}

func (o PredictionPolicy) String() string {
	if o < 0 || int(o) >= len(predictionNames) {
		return io.Sf("PredictionPolicy(%d)", int(o))
	}
	return predictionNames[o]
}

// ParsePredictionPolicy parses a prediction policy (case insensitive)
func ParsePredictionPolicy(name string) (PredictionPolicy, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range predictionNames {
		if n == key {
			return PredictionPolicy(i), nil
		}
	}
	return 0, chk.Err("unknown prediction policy %q", name)
}

// StiffnessType returns the stiffness used to compute the prediction operator
func (o PredictionPolicy) StiffnessType() StiffnessType {
	switch o {
	case ElasticPrediction:
		return Elastic
	case ElasticPredictionFromMaterialProperties:
		return ElasticFromMaterialProperties
	case SecantPrediction:
		return Secant
	case TangentPrediction:
		return Tangent
	}
	return NoStiffness
}

// SymmetryType defines the material symmetry
type SymmetryType int

// symmetry types
const (
	Isotropic SymmetryType = iota
	Orthotropic
)

func (o SymmetryType) String() string {
	if o == Orthotropic {
		return "Orthotropic"
	}
	return "Isotropic"
}

// BehaviourKind defines the kind of behaviour (numbering of the BehaviourType query)
type BehaviourKind int

// behaviour kinds
const (
	SmallStrain  BehaviourKind = 1
	FiniteStrain BehaviourKind = 2
	CohesiveZone BehaviourKind = 3
)

func (o BehaviourKind) String() string {
	switch o {
	case SmallStrain:
		return "small strain"
	case FiniteStrain:
		return "finite strain"
	case CohesiveZone:
		return "cohesive zone"
	}
	return io.Sf("BehaviourKind(%d)", int(o))
}

// VariableType defines the type of an internal state variable
type VariableType int

// variable types
const (
	Scalar  VariableType = 0
	Stensor VariableType = 1
	Tvector VariableType = 2
	Tensor  VariableType = 3
)

// Size returns the number of components of a variable of this type
func (o VariableType) Size(h Hypothesis) int {
	switch o {
	case Stensor:
		return h.StensorSize()
	case Tvector:
		return h.SpaceDimension()
	case Tensor:
		return h.TensorSize()
	}
	return 1
}

// Components returns the names of the components of a variable of this type
func (o VariableType) Components(h Hypothesis, name string) []string {
	switch o {
	case Stensor:
		return h.StensorComponents(name)
	case Tvector:
		return h.VectorComponents(name)
	case Tensor:
		return h.TensorComponents(name)
	}
	return []string{name}
}

// Convention defines the calling convention of a behaviour
type Convention string

// calling conventions
const (
	Umat               Convention = "umat"
	Aster              Convention = "aster"
	Cyrano             Convention = "cyrano"
	Castem             Convention = "castem"
	CastemFiniteStrain Convention = "castem-finite-strain"
	CastemCohesiveZone Convention = "castem-cohesive-zone"
	Builtin            Convention = "builtin"
)

// ParseConvention parses a calling convention (case insensitive); e.g. "castem"
func ParseConvention(name string) (Convention, error) {
	conv := Convention(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := allocators[conv]; !ok {
		return "", chk.Err("unknown convention %q; options are %v", name, Conventions())
	}
	return conv, nil
}

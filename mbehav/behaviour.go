// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mbehav implements the interface to material behaviours: compiled libraries following
// the umat, aster, cyrano and castem calling conventions, and behaviours written in Go
package mbehav

import (
	"sort"
	"unsafe"

	"github.com/cpmech/gosl/chk"
)

// Behaviour defines a material behaviour for one modelling hypothesis
type Behaviour interface {
	Convention() Convention
	Hypothesis() Hypothesis
	Kind() BehaviourKind
	Metadata() *Metadata // returns a copy

	DrivingVariablesSize() int
	ThermodynamicForcesSize() int
	DrivingVariablesComponents() []string
	ThermodynamicForcesComponents() []string
	MaterialPropertiesNames() []string     // convention properties first, then declared ones
	InternalStateVariablesNames() []string // one entry per component
	InternalStateVariablesSize() int
	ExternalStateVariablesNames() []string // temperature first
	OptionalMaterialPropertiesDefaults() map[string]float64

	// Allocate sizes the workspace buffers
	Allocate(wk *WorkSpace)

	// ComputePredictionOperator computes the operator used to predict the solution at the
	// beginning of a time step and stores it in wk.Kt
	ComputePredictionOperator(wk *WorkSpace, s *State, ktype StiffnessType) (ok bool, rdt float64)

	// Integrate integrates the behaviour over a time step of length dt, updating s.S1 and s.Iv1
	// and storing the tangent operator in wk.K. On failure, rdt is the time step reduction
	// suggested by the behaviour.
	Integrate(s *State, wk *WorkSpace, dt float64, ktype StiffnessType) (ok bool, rdt float64)
}

// allocators holds all available conventions
var allocators = map[Convention]func(h Hypothesis, library, function string) (Behaviour, error){}

// New returns a new behaviour
func New(conv Convention, h Hypothesis, library, function string) (Behaviour, error) {
	allocator, ok := allocators[conv]
	if !ok {
		return nil, chk.Err("convention %q is not available", conv)
	}
	return allocator(h, library, function)
}

// Conventions returns the names of all available conventions
func Conventions() (res []string) {
	for c := range allocators {
		res = append(res, string(c))
	}
	sort.Strings(res)
	return
}

// base implements the data queries shared by all behaviours
type base struct {
	conv     Convention
	hyp      Hypothesis
	meta     *Metadata
	fcn      unsafe.Pointer     // entry point of compiled behaviours
	mpnames  []string           // convention properties + declared properties
	ivnames  []string           // components of internal state variables
	esvnames []string           // temperature + declared external state variables
	defaults map[string]float64 // optional material properties
}

// newBase resolves the entry point and reads the metadata of a compiled behaviour
func newBase(conv Convention, h Hypothesis, library, function string, defaults MetadataDefaults) (o *base, err error) {
	reg := Registry()
	o = &base{conv: conv, hyp: h, defaults: map[string]float64{}}
	if o.fcn, err = reg.ResolveFunction(library, function); err != nil {
		return nil, err
	}
	if o.meta, err = reg.GetMetadata(library, function, h, defaults); err != nil {
		return nil, err
	}
	if !o.meta.Supports(h) {
		return nil, o.errorf("hypothesis is not supported by the behaviour")
	}
	o.finish()
	return
}

// finish sets the derived lists; mpnames must be prefixed by the caller afterwards if needed
func (o *base) finish() {
	o.mpnames = append([]string(nil), o.meta.MaterialProperties...)
	o.ivnames = o.meta.InternalStateVariablesComponents()
	o.esvnames = append([]string{"Temperature"}, o.meta.ExternalStateVariables...)
}

// prepend adds convention material properties in front of the declared ones
func (o *base) prepend(names []string) {
	o.mpnames = append(append([]string(nil), names...), o.meta.MaterialProperties...)
}

// errorf returns a configuration error naming the behaviour
func (o *base) errorf(msg string, prm ...interface{}) error {
	return chk.Err("%s behaviour %q in library %q (%v): "+msg,
		append([]interface{}{o.conv, o.meta.Function, o.meta.Library, o.hyp}, prm...)...)
}

func (o *base) Convention() Convention { return o.conv }
func (o *base) Hypothesis() Hypothesis { return o.hyp }
func (o *base) Kind() BehaviourKind    { return o.meta.Kind }
func (o *base) Metadata() *Metadata    { return o.meta.GetCopy() }

// DrivingVariablesSize returns the number of driving variables
func (o *base) DrivingVariablesSize() int {
	switch o.meta.Kind {
	case FiniteStrain:
		return o.hyp.TensorSize()
	case CohesiveZone:
		return czmSize(o.hyp)
	}
	return o.hyp.StensorSize()
}

// ThermodynamicForcesSize returns the number of thermodynamic forces
func (o *base) ThermodynamicForcesSize() int {
	if o.meta.Kind == CohesiveZone {
		return czmSize(o.hyp)
	}
	return o.hyp.StensorSize()
}

// DrivingVariablesComponents returns the names of the driving variables
func (o *base) DrivingVariablesComponents() []string {
	switch o.meta.Kind {
	case FiniteStrain:
		return o.hyp.TensorComponents("F")
	case CohesiveZone:
		return czmComponents(o.hyp, "U")
	}
	return o.hyp.StensorComponents("E")
}

// ThermodynamicForcesComponents returns the names of the thermodynamic forces
func (o *base) ThermodynamicForcesComponents() []string {
	if o.meta.Kind == CohesiveZone {
		return czmComponents(o.hyp, "T")
	}
	return o.hyp.StensorComponents("S")
}

func (o *base) MaterialPropertiesNames() []string     { return append([]string(nil), o.mpnames...) }
func (o *base) InternalStateVariablesNames() []string { return append([]string(nil), o.ivnames...) }
func (o *base) InternalStateVariablesSize() int       { return len(o.ivnames) }
func (o *base) ExternalStateVariablesNames() []string { return append([]string(nil), o.esvnames...) }

// OptionalMaterialPropertiesDefaults returns the default values of optional material properties
func (o *base) OptionalMaterialPropertiesDefaults() map[string]float64 {
	res := make(map[string]float64, len(o.defaults))
	for k, v := range o.defaults {
		res[k] = v
	}
	return res
}

// elasticFromMaterialProperties computes the elastic operator from the material properties
func (o *base) elasticFromMaterialProperties(K [][]float64, wk *WorkSpace, s *State, atEnd bool) error {
	mps := s.Mprops0
	if atEnd {
		mps = s.Mprops1
	}
	switch o.meta.Kind {
	case CohesiveZone:
		return CohesiveZoneStiffness(K, o.hyp, o.mpnames, mps)
	case FiniteStrain:
		if err := ElasticStiffness(wk.Ct, o.hyp, o.meta.ElasticSymmetry, o.mpnames, mps, s.R); err != nil {
			return err
		}
		if atEnd {
			return TruesdellToDsigmaDF(K, wk.Ct, s.S1, s.E1, o.hyp)
		}
		return TruesdellToDsigmaDF(K, wk.Ct, s.S0, s.E0, o.hyp)
	}
	return ElasticStiffness(K, o.hyp, o.meta.ElasticSymmetry, o.mpnames, mps, s.R)
}

// temperature returns the temperature and its increment
func temperature(s *State) (T, dT float64) {
	if len(s.Esv0) > 0 {
		T, dT = s.Esv0[0], s.Desv[0]
	}
	return
}

// czmSize returns the number of components of the displacement jump
func czmSize(h Hypothesis) int {
	if h == Tridimensional {
		return 3
	}
	return 2
}

// czmComponents returns the names of the components of the displacement jump or traction
// (normal component first)
func czmComponents(h Hypothesis, prefix string) []string {
	if h == Tridimensional {
		return []string{prefix + "N", prefix + "T1", prefix + "T2"}
	}
	return []string{prefix + "N", prefix + "T"}
}

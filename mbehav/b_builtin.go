// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// builtinLaw implements a behaviour in Go
type builtinLaw interface {
	metadata(h Hypothesis) (*Metadata, error)
	integrate(b *builtinBehaviour, s *State, dt float64, K [][]float64, ktype StiffnessType, predict bool) (ok bool, rdt float64)
}

// builtinLaws holds all behaviours written in Go
var builtinLaws = map[string]func() builtinLaw{
	"Elasticity": func() builtinLaw { return new(elasticityLaw) },
	"Norton":     func() builtinLaw { return new(nortonLaw) },
	"Plasticity": func() builtinLaw { return new(plasticityLaw) },
}

// BuiltinLaws returns the names of the behaviours written in Go
func BuiltinLaws() (res []string) {
	for name := range builtinLaws {
		res = append(res, name)
	}
	sort.Strings(res)
	return
}

// builtinBehaviour adapts a Go law to the Behaviour interface
type builtinBehaviour struct {
	*base
	law builtinLaw
	C   [][]float64 // [6][6] scratch 3D stiffness
}

// set factory
func init() {
	allocators[Builtin] = func(h Hypothesis, library, function string) (Behaviour, error) {
		return newBuiltin(h, function)
	}
}

// newBuiltin returns a behaviour written in Go
func newBuiltin(h Hypothesis, function string) (*builtinBehaviour, error) {
	allocator, ok := builtinLaws[function]
	if !ok {
		return nil, chk.Err("builtin behaviour %q is not available; options are %v", function, BuiltinLaws())
	}
	law := allocator()
	meta, err := law.metadata(h)
	if err != nil {
		return nil, chk.Err("builtin behaviour %q (%v): %v", function, h, err)
	}
	meta.Library, meta.Function, meta.Hypothesis, meta.Kind = "builtin", function, h, SmallStrain
	b := &base{conv: Builtin, hyp: h, meta: meta, defaults: map[string]float64{}}
	b.finish()
	return &builtinBehaviour{base: b, law: law, C: utl.Alloc(6, 6)}, nil
}

// Allocate allocates the workspace
func (o *builtinBehaviour) Allocate(wk *WorkSpace) {
	wk.allocCommon(o, 0)
}

// ComputePredictionOperator computes the prediction operator
func (o *builtinBehaviour) ComputePredictionOperator(wk *WorkSpace, s *State, ktype StiffnessType) (ok bool, rdt float64) {
	if ktype == ElasticFromMaterialProperties || ktype == Elastic {
		if err := o.elasticFromMaterialProperties(wk.Kt, wk, s, false); err != nil {
			return false, 0.5
		}
		return true, 1
	}
	cs := wk.copyState(s)
	cs.Revert()
	return o.law.integrate(o, cs, 0, wk.Kt, ktype, true)
}

// Integrate integrates the behaviour over a time step
func (o *builtinBehaviour) Integrate(s *State, wk *WorkSpace, dt float64, ktype StiffnessType) (ok bool, rdt float64) {
	ok, rdt = o.law.integrate(o, s, dt, wk.K, ktype, false)
	if ok && (ktype == Elastic || ktype == ElasticFromMaterialProperties) {
		if err := o.elasticFromMaterialProperties(wk.K, wk, s, true); err != nil {
			return false, 0.5
		}
	}
	return
}

// elasticity ////////////////////////////////////////////////////////////////////////////////////

// elasticityLaw implements isotropic linear elasticity
type elasticityLaw struct{}

func (o *elasticityLaw) metadata(h Hypothesis) (*Metadata, error) {
	return &Metadata{MaterialProperties: []string{"YoungModulus", "PoissonRatio"}}, nil
}

func (o *elasticityLaw) integrate(b *builtinBehaviour, s *State, dt float64, K [][]float64, ktype StiffnessType, predict bool) (ok bool, rdt float64) {
	n := b.hyp.StensorSize()
	if err := ElasticStiffness(K, b.hyp, Isotropic, b.mpnames, s.Mprops1, nil); err != nil {
		return false, 0.5
	}
	for i := 0; i < n; i++ {
		s.S1[i] = 0
		for j := 0; j < n; j++ {
			s.S1[i] += K[i][j] * s.E1[j]
		}
	}
	return true, 1
}

// norton /////////////////////////////////////////////////////////////////////////////////////////

// nortonLaw implements the Norton viscoplastic law with an implicit scheme
//  dp/dt = A σeq^m
type nortonLaw struct {
	NmaxIt int     // maximum number of local iterations
	Tol    float64 // tolerance on the equivalent viscoplastic strain increment
}

func (o *nortonLaw) metadata(h Hypothesis) (*Metadata, error) {
	if h.IsPlaneStress() {
		return nil, chk.Err("plane stress hypotheses are not supported")
	}
	o.NmaxIt, o.Tol = 100, 1e-14
	return &Metadata{
		MaterialProperties:          []string{"YoungModulus", "PoissonRatio", "NortonCoefficient", "NortonExponent"},
		InternalStateVariables:      []string{"ElasticStrain", "EquivalentViscoplasticStrain"},
		InternalStateVariablesTypes: []VariableType{Stensor, Scalar},
	}, nil
}

func (o *nortonLaw) integrate(b *builtinBehaviour, s *State, dt float64, K [][]float64, ktype StiffnessType, predict bool) (ok bool, rdt float64) {

	// material properties
	var v [4]float64
	for i, key := range []string{"YoungModulus", "PoissonRatio", "NortonCoefficient", "NortonExponent"} {
		val, err := findProp(b.mpnames, s.Mprops1, key)
		if err != nil {
			return false, 0.5
		}
		v[i] = val
	}
	E, ν, A, m := v[0], v[1], v[2], v[3]
	μ := E / (2 * (1 + ν))
	n := b.hyp.StensorSize()
	IsotropicStiffness(b.C, E, ν)

	// trial state
	var εe, σ, dev [6]float64
	for i := 0; i < n; i++ {
		εe[i] = s.Iv0[i] + s.E1[i] - s.E0[i]
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			σ[i] += b.C[i][j] * εe[j]
		}
	}
	tr := (σ[0] + σ[1] + σ[2]) / 3
	var ss float64
	for i := 0; i < n; i++ {
		dev[i] = σ[i]
		if i < 3 {
			dev[i] -= tr
		}
		ss += dev[i] * dev[i]
	}
	σeq := math.Sqrt(1.5 * ss)

	// local Newton iterations
	var Δp, h float64
	if σeq > 0 && dt > 0 {
		converged := false
		for it := 0; it < o.NmaxIt; it++ {
			q := σeq - 3*μ*Δp
			if q < 0 {
				q = 0
			}
			g := Δp - dt*A*math.Pow(q, m)
			h = dt * A * m * math.Pow(q, m-1)
			δ := g / (1 + 3*μ*h)
			Δp -= δ
			if Δp < 0 {
				Δp = 0
			}
			if math.Abs(δ) < o.Tol*(1+Δp) {
				converged = true
				break
			}
		}
		if !converged || math.IsNaN(Δp) {
			return false, 0.5
		}
		q := σeq - 3*μ*Δp
		h = dt * A * m * math.Pow(q, m-1)
	}

	// update
	var nh [6]float64
	if σeq > 0 {
		for i := 0; i < n; i++ {
			nh[i] = 1.5 * dev[i] / σeq
		}
	}
	if !predict {
		for i := 0; i < n; i++ {
			s.S1[i] = σ[i] - 2*μ*Δp*nh[i]
			s.Iv1[i] = εe[i] - Δp*nh[i]
		}
		s.Iv1[n] = s.Iv0[n] + Δp
	}

	// tangent
	if ktype == NoStiffness {
		return true, 1
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			K[i][j] = b.C[i][j]
		}
	}
	if Δp > 0 && ktype != Elastic && ktype != ElasticFromMaterialProperties {
		c1 := 6 * μ * μ * Δp / σeq
		c2 := 4*μ*μ*Δp/σeq - 4*μ*μ*h/(1+3*μ*h)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				idev := 0.0
				if i == j {
					idev = 1
				}
				if i < 3 && j < 3 {
					idev -= 1.0 / 3.0
				}
				K[i][j] += -c1*idev + c2*nh[i]*nh[j]
			}
		}
	}
	return true, 1
}

// plasticity /////////////////////////////////////////////////////////////////////////////////////

// plasticityLaw implements von Mises plasticity with linear isotropic hardening
//  f = σeq - σy - H p
type plasticityLaw struct{}

func (o *plasticityLaw) metadata(h Hypothesis) (*Metadata, error) {
	if h.IsPlaneStress() {
		return nil, chk.Err("plane stress hypotheses are not supported")
	}
	return &Metadata{
		MaterialProperties:          []string{"YoungModulus", "PoissonRatio", "YieldStress", "HardeningSlope"},
		InternalStateVariables:      []string{"ElasticStrain", "EquivalentPlasticStrain"},
		InternalStateVariablesTypes: []VariableType{Stensor, Scalar},
	}, nil
}

func (o *plasticityLaw) integrate(b *builtinBehaviour, s *State, dt float64, K [][]float64, ktype StiffnessType, predict bool) (ok bool, rdt float64) {

	// material properties
	var v [4]float64
	for i, key := range []string{"YoungModulus", "PoissonRatio", "YieldStress", "HardeningSlope"} {
		val, err := findProp(b.mpnames, s.Mprops1, key)
		if err != nil {
			return false, 0.5
		}
		v[i] = val
	}
	E, ν, σy, H := v[0], v[1], v[2], v[3]
	μ := E / (2 * (1 + ν))
	n := b.hyp.StensorSize()
	IsotropicStiffness(b.C, E, ν)
	if 3*μ+H <= 0 {
		return false, 0.5
	}

	// trial state
	var εe, σ, dev [6]float64
	for i := 0; i < n; i++ {
		εe[i] = s.Iv0[i] + s.E1[i] - s.E0[i]
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			σ[i] += b.C[i][j] * εe[j]
		}
	}
	tr := (σ[0] + σ[1] + σ[2]) / 3
	var ss float64
	for i := 0; i < n; i++ {
		dev[i] = σ[i]
		if i < 3 {
			dev[i] -= tr
		}
		ss += dev[i] * dev[i]
	}
	σeq := math.Sqrt(1.5 * ss)
	p0 := s.Iv0[n]

	// return mapping
	var Δp float64
	if f := σeq - σy - H*p0; f > 0 && !predict {
		Δp = f / (3*μ + H)
	}
	var nh [6]float64
	if σeq > 0 {
		for i := 0; i < n; i++ {
			nh[i] = 1.5 * dev[i] / σeq
		}
	}
	if !predict {
		for i := 0; i < n; i++ {
			s.S1[i] = σ[i] - 2*μ*Δp*nh[i]
			s.Iv1[i] = εe[i] - Δp*nh[i]
		}
		s.Iv1[n] = p0 + Δp
	}

	// tangent
	if ktype == NoStiffness {
		return true, 1
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			K[i][j] = b.C[i][j]
		}
	}
	if Δp > 0 && ktype != Elastic && ktype != ElasticFromMaterialProperties {
		c1 := 6 * μ * μ * Δp / σeq
		c2 := 4*μ*μ*Δp/σeq - 4*μ*μ/(3*μ+H)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				idev := 0.0
				if i == j {
					idev = 1
				}
				if i < 3 && j < 3 {
					idev -= 1.0 / 3.0
				}
				K[i][j] += -c1*idev + c2*nh[i]*nh[j]
			}
		}
	}
	return true, 1
}

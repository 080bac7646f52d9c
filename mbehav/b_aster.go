// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"github.com/cpmech/gomtest/abi"
	"github.com/cpmech/gomtest/inp"
)

// asterBehaviour implements the aster convention. Driving variables and thermodynamic forces are
// already expressed in Mandel notation.
type asterBehaviour struct {
	*base
	pk     *packer
	nummod int // modelling hypothesis code
	args   abi.AsterArgs
}

// set factory
func init() {
	allocators[Aster] = func(h Hypothesis, library, function string) (Behaviour, error) {
		return newAster(h, library, function)
	}
}

// newAster returns a behaviour following the aster convention
func newAster(h Hypothesis, library, function string) (*asterBehaviour, error) {
	b, err := newBase(Aster, h, library, function, MetadataDefaults{Kind: SmallStrain})
	if err != nil {
		return nil, err
	}
	if b.meta.Kind != SmallStrain {
		return nil, b.errorf("only small strain behaviours are supported by the aster convention, got %v", b.meta.Kind)
	}
	o := &asterBehaviour{base: b, pk: newPacker(h.StensorSize())}
	switch h {
	case Tridimensional:
		o.nummod = 3
	case Axisymmetrical:
		o.nummod = 4
	case PlaneStress:
		o.nummod = 5
	case PlaneStrain:
		o.nummod = 6
	default:
		return nil, b.errorf("hypothesis is not supported by the aster convention")
	}
	var names []string
	if b.meta.RequiresStiffnessTensor {
		if b.meta.ElasticSymmetry == Isotropic {
			names = append(names, "YoungModulus", "PoissonRatio")
		} else if h == Tridimensional {
			names = append(names, "YoungModulus1", "YoungModulus2", "YoungModulus3",
				"PoissonRatio12", "PoissonRatio23", "PoissonRatio13",
				"ShearModulus12", "ShearModulus23", "ShearModulus13")
		} else {
			names = append(names, "YoungModulus1", "YoungModulus2", "YoungModulus3",
				"PoissonRatio12", "PoissonRatio23", "PoissonRatio13", "ShearModulus12")
		}
	}
	if b.meta.RequiresThermalExpansionTensor {
		if b.meta.ElasticSymmetry == Isotropic {
			names = append(names, "ThermalExpansion")
		} else {
			names = append(names, "ThermalExpansion1", "ThermalExpansion2", "ThermalExpansion3")
		}
	}
	b.prepend(names)
	return o, nil
}

// Allocate allocates the workspace
func (o *asterBehaviour) Allocate(wk *WorkSpace) {
	wk.allocCommon(o, o.pk.n*o.pk.n)
}

// ComputePredictionOperator computes the prediction operator
func (o *asterBehaviour) ComputePredictionOperator(wk *WorkSpace, s *State, ktype StiffnessType) (ok bool, rdt float64) {
	if ktype == ElasticFromMaterialProperties {
		if inp.LogErr(o.elasticFromMaterialProperties(wk.Kt, wk, s, false), o.errorf("prediction operator").Error()) {
			return false, 0.5
		}
		return true, 1
	}
	return o.call(wk, s, 0, ktype, true)
}

// Integrate integrates the behaviour over a time step
func (o *asterBehaviour) Integrate(s *State, wk *WorkSpace, dt float64, ktype StiffnessType) (ok bool, rdt float64) {
	if ktype == ElasticFromMaterialProperties {
		if ok, rdt = o.call(wk, s, dt, NoStiffness, false); !ok {
			return
		}
		if inp.LogErr(o.elasticFromMaterialProperties(wk.K, wk, s, true), o.errorf("tangent operator").Error()) {
			return false, 0.5
		}
		return
	}
	return o.call(wk, s, dt, ktype, false)
}

// call calls the behaviour
func (o *asterBehaviour) call(wk *WorkSpace, s *State, dt float64, ktype StiffnessType, predict bool) (ok bool, rdt float64) {
	n := o.pk.n
	o.pk.strainToConv(wk.Ue0, s.E0)
	for i := 0; i < n; i++ {
		wk.Tmp[i] = 0
		if !predict {
			wk.Tmp[i] = s.E1[i] - s.E0[i]
		}
	}
	o.pk.strainToConv(wk.Ude, wk.Tmp)
	o.pk.stressToConv(wk.Us0, s.S0)
	copy(wk.Ivs, s.Iv0)
	copy(wk.Mps, s.Mprops1)
	rotationToConv(wk.Rot, s.R)
	T, dT := temperature(s)
	copy(wk.Evs, s.Esv0[1:])
	copy(wk.Devs, s.Desv[1:])
	if predict {
		copy(wk.Mps, s.Mprops0)
		dT = 0
		for i := range wk.Devs {
			wk.Devs[i] = 0
		}
	}
	for i := range wk.D {
		wk.D[i] = 0
	}
	wk.D[0] = ktype.requestCode()
	if predict {
		wk.D[0] = -wk.D[0]
	}
	a := &o.args
	*a = asterArgs(wk, n, len(s.Iv0), dt, T, dT)
	a.Nummod = o.nummod
	abi.CallAster(o.fcn, a)
	rdt = a.Pnewdt
	if a.Pnewdt < 1 {
		return false, rdt
	}
	if predict {
		o.pk.tangentFromConv(wk.Kt, wk.D)
		return true, rdt
	}
	o.pk.stressFromConv(s.S1, wk.Us0)
	copy(s.Iv1, wk.Ivs[:len(s.Iv1)])
	if ktype != NoStiffness {
		o.pk.tangentFromConv(wk.K, wk.D)
	}
	return true, rdt
}

// asterArgs fills the aster arguments from the workspace buffers
func asterArgs(wk *WorkSpace, ntens, nstatv int, dt, T, dT float64) abi.AsterArgs {
	return abi.AsterArgs{
		Stress: wk.Us0[:ntens], Statev: wk.Ivs, Ddsoe: wk.D,
		Stran: wk.Ue0[:ntens], Dstran: wk.Ude[:ntens],
		Dtime: dt, Temp: T, Dtemp: dT,
		Predef: wk.Evs, Dpred: wk.Devs,
		Ntens: ntens, Nstatv: nstatv,
		Props: wk.Mps, Drot: wk.Rot, Pnewdt: 1,
	}
}

func (o *asterBehaviour) packing() *packer { return o.pk }

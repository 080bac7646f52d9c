// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"github.com/cpmech/gomtest/abi"
	"github.com/cpmech/gomtest/inp"
)

// cyranoBehaviour implements the cyrano convention used by fuel performance codes. Only the 1D
// axisymmetrical hypotheses are supported; components are ordered (rr, θθ, zz).
type cyranoBehaviour struct {
	*base
	pk   *packer
	ndi  int
	args abi.CyranoArgs
}

// set factory
func init() {
	allocators[Cyrano] = func(h Hypothesis, library, function string) (Behaviour, error) {
		return newCyrano(h, library, function)
	}
}

// newCyrano returns a behaviour following the cyrano convention
func newCyrano(h Hypothesis, library, function string) (*cyranoBehaviour, error) {
	b, err := newBase(Cyrano, h, library, function, MetadataDefaults{Kind: SmallStrain})
	if err != nil {
		return nil, err
	}
	if b.meta.Kind != SmallStrain {
		return nil, b.errorf("only small strain behaviours are supported by the cyrano convention, got %v", b.meta.Kind)
	}
	o := &cyranoBehaviour{base: b, pk: newPermutationPacker([]int{0, 2, 1})}
	switch h {
	case AxisymmetricalGeneralisedPlaneStrain:
		o.ndi = 14
	case AxisymmetricalGeneralisedPlaneStress:
		o.ndi = 15
	default:
		return nil, b.errorf("hypothesis is not supported by the cyrano convention")
	}
	if b.meta.ElasticSymmetry == Isotropic {
		b.prepend([]string{"YoungModulus", "PoissonRatio", "ThermalExpansion"})
		b.defaults["ThermalExpansion"] = 0
	} else {
		b.prepend([]string{"YoungModulus1", "YoungModulus2", "YoungModulus3",
			"PoissonRatio12", "PoissonRatio23", "PoissonRatio13",
			"ThermalExpansion1", "ThermalExpansion2", "ThermalExpansion3"})
		b.defaults["ThermalExpansion1"] = 0
		b.defaults["ThermalExpansion2"] = 0
		b.defaults["ThermalExpansion3"] = 0
	}
	return o, nil
}

// Allocate allocates the workspace
func (o *cyranoBehaviour) Allocate(wk *WorkSpace) {
	wk.allocCommon(o, 9)
}

// ComputePredictionOperator computes the prediction operator
func (o *cyranoBehaviour) ComputePredictionOperator(wk *WorkSpace, s *State, ktype StiffnessType) (ok bool, rdt float64) {
	if ktype == ElasticFromMaterialProperties {
		if inp.LogErr(o.elasticFromMaterialProperties(wk.Kt, wk, s, false), o.errorf("prediction operator").Error()) {
			return false, 0.5
		}
		return true, 1
	}
	return o.call(wk, s, 0, ktype, true)
}

// Integrate integrates the behaviour over a time step
func (o *cyranoBehaviour) Integrate(s *State, wk *WorkSpace, dt float64, ktype StiffnessType) (ok bool, rdt float64) {
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
func (o *cyranoBehaviour) call(wk *WorkSpace, s *State, dt float64, ktype StiffnessType, predict bool) (ok bool, rdt float64) {
	o.pk.strainToConv(wk.Ue0, s.E0)
	for i := 0; i < 3; i++ {
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
	*a = abi.CyranoArgs{
		Ntens: 3, Dtime: dt, Drot: wk.Rot, Ddsdde: wk.D,
		Stran: wk.Ue0[:3], Dstran: wk.Ude[:3], Temp: T, Dtemp: dT,
		Props: wk.Mps, Predef: wk.Evs, Dpred: wk.Devs,
		Statev: wk.Ivs, Nstatv: len(s.Iv0), Stress: wk.Us0[:3],
		Ndi: o.ndi, Kinc: 1,
	}
	abi.CallCyrano(o.fcn, a)
	if a.Kinc != 1 {
		return false, 0.5
	}
	if predict {
		o.pk.tangentFromConv(wk.Kt, wk.D)
		return true, 1
	}
	o.pk.stressFromConv(s.S1, wk.Us0)
	copy(s.Iv1, wk.Ivs[:len(s.Iv1)])
	if ktype != NoStiffness {
		o.pk.tangentFromConv(wk.K, wk.D)
	}
	return true, 1
}

func (o *cyranoBehaviour) packing() *packer { return o.pk }

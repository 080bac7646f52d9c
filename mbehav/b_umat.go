// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"github.com/cpmech/gomtest/abi"
	"github.com/cpmech/gomtest/inp"
)

// umatFamily implements the conventions sharing the umat argument list: the generic (abaqus-like)
// umat convention and the castem conventions for small strain, finite strain and cohesive zones
type umatFamily struct {
	*base
	pk     *packer // packing of driving variables, thermodynamic forces and tangent
	ndi    int     // NDI argument
	nshr   int     // NSHR argument
	castem bool    // castem: request codes in DDSDDE[0] and failures reported by KINC
	args   abi.UmatArgs
}

// set factory
func init() {
	allocators[Umat] = func(h Hypothesis, library, function string) (Behaviour, error) {
		return newUmat(h, library, function)
	}
}

// newUmat returns a behaviour following the generic umat convention
func newUmat(h Hypothesis, library, function string) (*umatFamily, error) {
	b, err := newBase(Umat, h, library, function, MetadataDefaults{Kind: SmallStrain})
	if err != nil {
		return nil, err
	}
	switch h {
	case Tridimensional, Axisymmetrical, PlaneStrain, GeneralisedPlaneStrain:
	default:
		return nil, b.errorf("hypothesis is not supported by the umat convention")
	}
	if b.meta.Kind != SmallStrain {
		return nil, b.errorf("only small strain behaviours are supported by the umat convention, got %v", b.meta.Kind)
	}
	n := h.StensorSize()
	return &umatFamily{base: b, pk: newEngineeringPacker(n), ndi: 3, nshr: n - 3}, nil
}

// Allocate allocates the workspace
func (o *umatFamily) Allocate(wk *WorkSpace) {
	wk.allocCommon(o, o.pk.n*o.pk.n)
}

// ComputePredictionOperator computes the prediction operator
func (o *umatFamily) ComputePredictionOperator(wk *WorkSpace, s *State, ktype StiffnessType) (ok bool, rdt float64) {
	if ktype == ElasticFromMaterialProperties {
		return o.fromMaterialProperties(wk.Kt, wk, s, false)
	}
	if !o.castem {
		// zero increment integration
		cs := wk.copyState(s)
		cs.Revert()
		for i := range cs.Desv {
			cs.Desv[i] = 0
		}
		ok, rdt = o.call(wk, cs, 0, ktype, false)
		if ok {
			copyMatrix(wk.Kt, wk.K)
		}
		return
	}
	return o.call(wk, s, 0, ktype, true)
}

// Integrate integrates the behaviour over a time step
func (o *umatFamily) Integrate(s *State, wk *WorkSpace, dt float64, ktype StiffnessType) (ok bool, rdt float64) {
	if ktype == ElasticFromMaterialProperties {
		if ok, rdt = o.call(wk, s, dt, NoStiffness, false); !ok {
			return
		}
		ok, _ = o.fromMaterialProperties(wk.K, wk, s, true)
		return
	}
	return o.call(wk, s, dt, ktype, false)
}

// fromMaterialProperties computes the elastic operator from the material properties
func (o *umatFamily) fromMaterialProperties(K [][]float64, wk *WorkSpace, s *State, atEnd bool) (ok bool, rdt float64) {
	if inp.LogErr(o.elasticFromMaterialProperties(K, wk, s, atEnd), o.errorf("elastic operator from material properties").Error()) {
		return false, 0.5
	}
	return true, 1
}

// call calls the behaviour. If predict is set, only the prediction operator is computed and
// stored in wk.Kt.
func (o *umatFamily) call(wk *WorkSpace, s *State, dt float64, ktype StiffnessType, predict bool) (ok bool, rdt float64) {

	// driving variables
	n := o.pk.n
	a := &o.args
	kind := o.meta.Kind
	if kind == FiniteStrain {
		for i := 0; i < n; i++ {
			wk.Ue0[i], wk.Ude[i] = 0, 0
		}
		TensorToColMajor(wk.F0, s.E0)
		if predict {
			TensorToColMajor(wk.F1, s.E0)
		} else {
			TensorToColMajor(wk.F1, s.E1)
		}
	} else {
		o.pk.strainToConv(wk.Ue0, s.E0)
		if predict {
			for i := 0; i < n; i++ {
				wk.Ude[i] = 0
			}
		} else {
			for i := 0; i < n; i++ {
				wk.Tmp[i] = s.E1[i] - s.E0[i]
			}
			o.pk.strainToConv(wk.Ude, wk.Tmp)
		}
	}

	// thermodynamic forces, internal state variables and material properties
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

	// tangent request
	for i := range wk.D {
		wk.D[i] = 0
	}
	if o.castem {
		wk.D[0] = ktype.requestCode()
		if predict {
			wk.D[0] = -wk.D[0]
		}
	}

	// call
	*a = abi.UmatArgs{
		Stress: wk.Us0[:n], Statev: wk.Ivs, Ddsdde: wk.D,
		Stran: wk.Ue0[:n], Dstran: wk.Ude[:n],
		Dtime: dt, Temp: T, Dtemp: dT,
		Predef: wk.Evs, Dpred: wk.Devs,
		Cmname: o.meta.Function,
		Ndi:    o.ndi, Nshr: o.nshr, Ntens: n, Nstatv: len(s.Iv0),
		Props: wk.Mps, Drot: wk.Rot, Pnewdt: 1,
		Dfgrd0: wk.F0, Dfgrd1: wk.F1,
		Npt: 1, Kstep: 1, Kinc: 1,
	}
	abi.CallUmat(o.fcn, a)

	// failure
	rdt = a.Pnewdt
	if o.castem {
		if a.Kinc != 1 {
			if rdt >= 1 {
				rdt = 0.5
			}
			return false, rdt
		}
	} else if a.Pnewdt < 1 {
		return false, rdt
	}

	// prediction operator
	if predict {
		if err := o.tangent(wk.Kt, wk, s.S0, s.E0); err != nil {
			inp.LogErr(err, o.errorf("prediction operator").Error())
			return false, 0.5
		}
		return true, rdt
	}

	// results
	o.pk.stressFromConv(s.S1, wk.Us0)
	copy(s.Iv1, wk.Ivs[:len(s.Iv1)])
	if ktype != NoStiffness {
		if err := o.tangent(wk.K, wk, s.S1, s.E1); err != nil {
			inp.LogErr(err, o.errorf("tangent operator").Error())
			return false, 0.5
		}
	}
	return true, rdt
}

// tangent converts the tangent returned by the behaviour
func (o *umatFamily) tangent(K [][]float64, wk *WorkSpace, σ, F []float64) error {
	if o.meta.Kind != FiniteStrain {
		o.pk.tangentFromConv(K, wk.D)
		return nil
	}
	o.pk.tangentFromConv(wk.Ct, wk.D)
	return TruesdellToDsigmaDF(K, wk.Ct, σ, F, o.hyp)
}

// copyMatrix copies b into a
func copyMatrix(a, b [][]float64) {
	for i := range a {
		copy(a[i], b[i])
	}
}

func (o *umatFamily) packing() *packer { return o.pk }

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import "github.com/cpmech/gosl/chk"

// set factory
func init() {
	allocators[Castem] = func(h Hypothesis, library, function string) (Behaviour, error) {
		return newCastem(Castem, h, library, function, SmallStrain)
	}
	allocators[CastemFiniteStrain] = func(h Hypothesis, library, function string) (Behaviour, error) {
		return newCastem(CastemFiniteStrain, h, library, function, FiniteStrain)
	}
	allocators[CastemCohesiveZone] = func(h Hypothesis, library, function string) (Behaviour, error) {
		return newCastem(CastemCohesiveZone, h, library, function, CohesiveZone)
	}
}

// castemNdi returns the NDI code identifying the modelling hypothesis
func castemNdi(h Hypothesis) (ndi int, ok bool) {
	switch h {
	case Tridimensional:
		return 2, true
	case Axisymmetrical:
		return 0, true
	case PlaneStrain:
		return -1, true
	case PlaneStress:
		return -2, true
	case GeneralisedPlaneStrain:
		return -3, true
	case AxisymmetricalGeneralisedPlaneStrain:
		return 14, true
	}
	return 0, false
}

// newCastem returns a behaviour following one of the castem conventions
func newCastem(conv Convention, h Hypothesis, library, function string, kind BehaviourKind) (*umatFamily, error) {
	b, err := newBase(conv, h, library, function, MetadataDefaults{Kind: kind})
	if err != nil {
		return nil, err
	}
	if b.meta.Kind != kind {
		return nil, b.errorf("the %v convention requires a %v behaviour, got %v", conv, kind, b.meta.Kind)
	}
	ndi, ok := castemNdi(h)
	if !ok {
		return nil, b.errorf("hypothesis is not supported by the castem convention")
	}
	o := &umatFamily{base: b, ndi: ndi, castem: true}
	switch kind {
	case CohesiveZone:
		if h != Tridimensional && h != PlaneStrain && h != Axisymmetrical {
			return nil, b.errorf("hypothesis is not supported by cohesive zone models")
		}
		if h == Tridimensional {
			o.pk = newPermutationPacker([]int{1, 2, 0})
		} else {
			o.pk = newPermutationPacker([]int{1, 0})
		}
		b.prepend([]string{"NormalStiffness", "TangentialStiffness", "MassDensity", "NormalThermalExpansion"})
		b.defaults["MassDensity"] = 0
		b.defaults["NormalThermalExpansion"] = 0
	default:
		o.pk = newEngineeringPacker(h.StensorSize())
		names, err := castemMaterialProperties(h, b.meta.ElasticSymmetry)
		if err != nil {
			return nil, b.errorf("%v", err)
		}
		b.prepend(names)
		for _, name := range names {
			switch name {
			case "MassDensity", "ThermalExpansion", "ThermalExpansion1", "ThermalExpansion2", "ThermalExpansion3":
				b.defaults[name] = 0
			}
		}
	}
	o.nshr = o.pk.n - 3
	if o.nshr < 0 {
		o.nshr = 0
	}
	return o, nil
}

// castemMaterialProperties returns the material properties passed first by the castem convention
func castemMaterialProperties(h Hypothesis, esym SymmetryType) ([]string, error) {
	if esym == Isotropic {
		names := []string{"YoungModulus", "PoissonRatio", "MassDensity", "ThermalExpansion"}
		if h == PlaneStress {
			names = append(names, "PlateWidth")
		}
		return names, nil
	}
	switch h {
	case Tridimensional:
		return []string{"YoungModulus1", "YoungModulus2", "YoungModulus3",
			"PoissonRatio12", "PoissonRatio23", "PoissonRatio13",
			"ShearModulus12", "ShearModulus23", "ShearModulus13",
			"V1X", "V1Y", "V1Z", "V2X", "V2Y", "V2Z",
			"MassDensity", "ThermalExpansion1", "ThermalExpansion2", "ThermalExpansion3"}, nil
	case Axisymmetrical, PlaneStrain, GeneralisedPlaneStrain:
		return []string{"YoungModulus1", "YoungModulus2", "YoungModulus3",
			"PoissonRatio12", "PoissonRatio23", "PoissonRatio13",
			"ShearModulus12", "V1X", "V1Y",
			"MassDensity", "ThermalExpansion1", "ThermalExpansion2", "ThermalExpansion3"}, nil
	case PlaneStress:
		return []string{"YoungModulus1", "YoungModulus2", "PoissonRatio12", "ShearModulus12",
			"V1X", "V1Y", "MassDensity", "ThermalExpansion1", "ThermalExpansion2", "PlateWidth"}, nil
	case AxisymmetricalGeneralisedPlaneStrain:
		return []string{"YoungModulus1", "YoungModulus2", "YoungModulus3",
			"PoissonRatio12", "PoissonRatio23", "PoissonRatio13",
			"MassDensity", "ThermalExpansion1", "ThermalExpansion2", "ThermalExpansion3"}, nil
	}
	return nil, chk.Err("orthotropic behaviours are not supported in %v", h)
}

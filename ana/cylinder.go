// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Lame implements the linear elastic solution of a thick-walled cylinder subjected to inner and
// outer pressures
//
//               , - - ,
//           , '         ' ,
//         ,                 ,
//        ,      .-'''-.      ,
//       ,      / ↖ ↑ ↗ \      ,
//       ,     | ← Pi →  |  ←Pe,
//       ,      \ ↙ ↓ ↘ /      ,
//        ,      `-...-'      ,
//         ,                 ,
//           ,            , '
//             ' - , ,  '
type Lame struct {

	// input
	A  float64 // inner radius
	B  float64 // outer radius
	E  float64 // Young's modulus
	Nu float64 // Poisson's coefficient
	Pi float64 // inner pressure
	Pe float64 // outer pressure

	// derived
	c1 float64 // σrr = c1 - c2/r²
	c2 float64 // σθθ = c1 + c2/r²
}

// NewLame returns a new solution
func NewLame(a, b, E, ν, Pi, Pe float64) *Lame {
	if a <= 0 || b <= a {
		chk.Panic("radii of cylinder must satisfy 0 < a < b. a=%g, b=%g", a, b)
	}
	o := &Lame{A: a, B: b, E: E, Nu: ν, Pi: Pi, Pe: Pe}
	o.c1 = (Pi*a*a - Pe*b*b) / (b*b - a*a)
	o.c2 = (Pi - Pe) * a * a * b * b / (b*b - a*a)
	return o
}

// Stresses computes the radial and hoop stresses
func (o Lame) Stresses(r float64) (σrr, σθθ float64) {
	return o.c1 - o.c2/(r*r), o.c1 + o.c2/(r*r)
}

// AxialStress returns the axial stress
//  closedEnd -- closed tube (axial force balancing the pressures); otherwise plane strain
func (o Lame) AxialStress(closedEnd bool) float64 {
	if closedEnd {
		return o.c1
	}
	return 2 * o.Nu * o.c1
}

// AxialStrain returns the axial strain
func (o Lame) AxialStrain(closedEnd bool) float64 {
	if closedEnd {
		return (1 - 2*o.Nu) * o.c1 / o.E
	}
	return 0
}

// Displacement returns the radial displacement
func (o Lame) Displacement(r float64, closedEnd bool) float64 {
	if closedEnd {
		return ((1-2*o.Nu)*o.c1*r + (1+o.Nu)*o.c2/r) / o.E
	}
	return (1 + o.Nu) * ((1-2*o.Nu)*o.c1*r + o.c2/r) / o.E
}

// PressCylin implements Hill's solution of an elastic-perfectly plastic thick-walled cylinder
// (plane strain) subjected to an inner pressure
type PressCylin struct {

	// input
	a  float64 // Inner radius
	b  float64 // Outer radius
	E  float64 // Young's modulus
	ν  float64 // Poisson's coefficient
	σy float64 // Uniaxial yield stress

	// derived data
	coef float64 // a²/b²
	Y    float64 // yield stress in plane strain: 2 σy / √3
	P0   float64 // pressure at the onset of plasticity
	Plim float64 // limiting pressure
}

// NewPressCylin returns a new solution
func NewPressCylin(a, b, E, ν, σy float64) *PressCylin {
	o := &PressCylin{a: a, b: b, E: E, ν: ν, σy: σy}
	o.coef = o.a * o.a / (o.b * o.b)
	o.Y = 2.0 * o.σy / math.Sqrt(3.0)
	o.P0 = o.Y * (1 - o.coef) / 2.0
	o.Plim = o.Y * math.Log(o.b/o.a)
	return o
}

// Plastic computes the pressure corresponding to the radius c of the elastic/plastic boundary
// and the radial displacment at the outer surface
func (o PressCylin) Plastic(c float64) (P, ub float64) {
	P = o.Y * (math.Log(c/o.a) + (1.0-c*c/(o.b*o.b))/2.0)
	ub = o.Y * c * c * (1.0 - o.ν*o.ν) / (o.E * o.b)
	return
}

// ElastOuterU computes the elastic solution for the radial displacement
// at the outer surface
func (o PressCylin) ElastOuterU(P float64) (ub float64) {
	ub = 2.0 * P * o.b * (1.0 - o.ν*o.ν) / (o.E/o.coef - o.E)
	return
}

// Calc_c computes the radius of the elastic/plastic boundary
func (o PressCylin) Calc_c(P float64) (c float64, err error) {
	if P <= o.P0 {
		return o.a, nil
	}
	if P >= o.Plim {
		return 0, chk.Err("pressure %g exceeds the limiting pressure %g", P, o.Plim)
	}
	// P(c) increases monotonically from P0 to Plim in [a, b]: bisection
	lo, hi := o.a, o.b
	for it := 0; it < 200; it++ {
		c = (lo + hi) / 2
		Pc, _ := o.Plastic(c)
		if Pc < P {
			lo = c
		} else {
			hi = c
		}
		if hi-lo < 1e-14*o.b {
			break
		}
	}
	return (lo + hi) / 2, nil
}

// Stresses compute the radial and tangential stresses
func (o PressCylin) Stresses(c, r float64) (sr, st float64) {
	b, Y := o.b, o.Y
	if r > c { // elastic
		sr = -Y * c * c * (b*b/(r*r) - 1.0) / (2.0 * b * b)
		st = Y * c * c * (b*b/(r*r) + 1.0) / (2.0 * b * b)
	} else {
		sr = Y * (-0.5 - math.Log(c/r) + c*c/(2.0*b*b))
		st = Y * (0.5 - math.Log(c/r) + c*c/(2.0*b*b))
	}
	return sr, st
}

// CalcPressDisp returns the internal pressure and outer displacements for
// plotting the load-displacement graph
func (o PressCylin) CalcPressDisp(np int) (P, Ub []float64) {

	// elastic
	ne := 3
	dP0 := o.P0 / float64(ne-1)
	P = make([]float64, ne+np)
	Ub = make([]float64, ne+np)
	for i := 0; i < ne; i++ {
		P[i] = float64(i) * dP0
		Ub[i] = o.ElastOuterU(P[i])
	}

	// plastic
	C := utl.LinSpace(o.a, o.b, np)
	for i := 0; i < np; i++ {
		P[ne+i], Ub[ne+i] = o.Plastic(C[i])
	}
	return
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gomtest/ana"
	"github.com/cpmech/gomtest/mbehav"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

// newPipe returns a pipe study with a builtin law and constant material properties
func newPipe(tst *testing.T, law string, props map[string]float64, mesh PipeMesh) *PipeStudy {
	b, err := mbehav.New(mbehav.Builtin, mbehav.AxisymmetricalGeneralisedPlaneStrain, "", law)
	require.NoError(tst, err)
	p := NewPipeStudy(b, mesh)
	for name, v := range props {
		p.Mprops[name] = cte(v)
	}
	return p
}

// solvePipe solves the study over [0,1] with nsteps steps
func solvePipe(tst *testing.T, p *PipeStudy, opts *SolverOptions, nsteps int) (*StudyState, error) {
	state, err := NewStudyState(p, opts)
	require.NoError(tst, err)
	times := make([]float64, nsteps+1)
	for i := range times {
		times[i] = float64(i) / float64(nsteps)
	}
	return state, Drive(p, state, opts, times)
}

func pipeOptions() *SolverOptions {
	opts := NewSolverOptions()
	opts.Eeps = 1e-11
	opts.Seps = 1e-8
	return opts
}

func Test_pipe01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pipe01")

	// Lamé: plane strain
	a, b, E, ν, Pi := 1.0, 3.0, 200.0, 0.3, 0.1
	sol := ana.NewLame(a, b, E, ν, Pi, 0)
	ua, ub := sol.Displacement(a, false), sol.Displacement(b, false)
	io.Pforan("ua = %v, ub = %v\n", ua, ub)
	errs, serrs := make(map[int]float64), make(map[int]float64)
	for _, nel := range []int{1, 2, 4} {
		p := newPipe(tst, "Elasticity", elastProps, PipeMesh{InnerRadius: a, OuterRadius: b, NumberOfElements: nel, ElementType: "lin4"})
		p.InnerPressure = ramp(Pi)
		state, err := solvePipe(tst, p, pipeOptions(), 2)
		require.NoError(tst, err)
		chk.Int(tst, "number of unknowns", len(state.U0), 3*nel+1+2)
		u := p.Displacements(state)
		errs[nel] = math.Abs(u[0]-ua) / ua
		for _, e := range p.Elems {
			for i, r := range e.Radii {
				σrr, _ := sol.Stresses(r)
				serrs[nel] = math.Max(serrs[nel], math.Abs(e.States[i].S0[0]-σrr)/Pi)
			}
		}
		io.Pforan("nel = %d: u(a) = %v, error = %v, σrr error = %v\n", nel, u[0], errs[nel], serrs[nel])
		chk.Float64(tst, "Ri", 1e-17, p.Results.Last("Ri"), a+u[0])
		chk.Float64(tst, "EZZ", 1e-14, p.Results.Last("EZZ"), 0)
		Fz := sol.AxialStress(false) * math.Pi * (b*b - a*a)
		chk.Float64(tst, "u(b)", 5e-2*ub, u[len(u)-1], ub)
		chk.Float64(tst, "Fz", 5e-2*Fz, p.Results.Last("AxialForce"), Fz)
		um, err := p.DisplacementAt(state, 2)
		require.NoError(tst, err)
		chk.Float64(tst, "u(2)", 5e-2*math.Abs(sol.Displacement(2, false)), um, sol.Displacement(2, false))
	}
	require.Less(tst, errs[2], errs[1])
	require.Less(tst, errs[4], errs[2])
	require.Less(tst, errs[4], 1e-3)
	require.Less(tst, serrs[2], serrs[1])
	require.Less(tst, serrs[4], serrs[2])
	require.Less(tst, serrs[4], 1e-2)

	// linear elements
	p := newPipe(tst, "Elasticity", elastProps, PipeMesh{InnerRadius: a, OuterRadius: b, NumberOfElements: 16, ElementType: "lin2"})
	p.InnerPressure = ramp(Pi)
	state, err := solvePipe(tst, p, pipeOptions(), 1)
	require.NoError(tst, err)
	u := p.Displacements(state)
	io.Pforan("lin2: u(a) = %v\n", u[0])
	chk.Float64(tst, "u(a) lin2", 1e-2*ua, u[0], ua)

	// displacements inside elements
	for _, r := range []float64{a, 1.6, 2, b} {
		ur, err := p.DisplacementAt(state, r)
		require.NoError(tst, err)
		exact := sol.Displacement(r, false)
		io.Pforan("u(%g) = %v (%v)\n", r, ur, exact)
		chk.Float64(tst, io.Sf("u(%g)", r), 1e-2*math.Abs(exact), ur, exact)
	}
	ub2, err := p.DisplacementAt(state, b)
	require.NoError(tst, err)
	chk.Float64(tst, "u(b) nodal", 1e-15, ub2, u[len(u)-1])
	_, err = p.DisplacementAt(state, 0.5)
	require.Error(tst, err)
}

func Test_pipe02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pipe02")

	// closed tube with inner and outer pressures
	a, b, E, ν, Pi, Pe := 1.0, 2.0, 200.0, 0.3, 0.3, 0.1
	sol := ana.NewLame(a, b, E, ν, Pi, Pe)
	p := newPipe(tst, "Elasticity", elastProps, PipeMesh{InnerRadius: a, OuterRadius: b, NumberOfElements: 4, ElementType: "lin4"})
	p.InnerPressure = ramp(Pi)
	p.OuterPressure = ramp(Pe)
	p.Axial = EndCapEffect
	state, err := solvePipe(tst, p, pipeOptions(), 1)
	require.NoError(tst, err)
	chk.Int(tst, "number of unknowns", len(state.U0), 13+1)
	u := p.Displacements(state)
	chk.Float64(tst, "EZZ", 1e-7, p.Results.Last("EZZ"), sol.AxialStrain(true))
	chk.Float64(tst, "u(a)", 1e-6, u[0], sol.Displacement(a, true))
	chk.Float64(tst, "u(b)", 1e-6, u[len(u)-1], sol.Displacement(b, true))
	chk.Float64(tst, "Fz", 1e-6, p.Results.Last("AxialForce"), math.Pi*(Pi*a*a-Pe*b*b))

	// imposed axial strain
	p = newPipe(tst, "Elasticity", elastProps, PipeMesh{InnerRadius: a, OuterRadius: b, NumberOfElements: 2, ElementType: "lin3"})
	p.Axial = ImposedAxialStrain
	p.AxialStrain = ramp(1e-3)
	_, err = solvePipe(tst, p, pipeOptions(), 2)
	require.NoError(tst, err)
	chk.Float64(tst, "EZZ", 1e-15, p.Results.Last("EZZ"), 1e-3)
	chk.Float64(tst, "Ri", 1e-12, p.Results.Last("Ri"), a*(1-ν*1e-3))
	chk.Float64(tst, "Re", 1e-12, p.Results.Last("Re"), b*(1-ν*1e-3))
	chk.Float64(tst, "Fz", 1e-10, p.Results.Last("AxialForce"), E*1e-3*math.Pi*(b*b-a*a))

	// imposed axial force
	F := 2.0
	p = newPipe(tst, "Elasticity", elastProps, PipeMesh{InnerRadius: a, OuterRadius: b, NumberOfElements: 2, ElementType: "lin2", Ratio: 1.5})
	p.Axial = ImposedAxialForce
	p.AxialForce = ramp(F)
	_, err = solvePipe(tst, p, pipeOptions(), 1)
	require.NoError(tst, err)
	chk.Float64(tst, "EZZ", 1e-12, p.Results.Last("EZZ"), F/(E*math.Pi*(b*b-a*a)))
	chk.Float64(tst, "Fz", 1e-8, p.Results.Last("AxialForce"), F)
}

func Test_pipe03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pipe03")

	// Hill's solution: perfectly plastic thick-walled cylinder
	a, b, E, ν, σy := 1.0, 2.0, 1000.0, 0.49, 1.0
	sol := ana.NewPressCylin(a, b, E, ν, σy)
	props := map[string]float64{"YoungModulus": E, "PoissonRatio": ν, "YieldStress": σy, "HardeningSlope": 0}
	mesh := PipeMesh{InnerRadius: a, OuterRadius: b, NumberOfElements: 8, ElementType: "lin4"}

	// elastic range
	P := 0.5 * sol.P0
	p := newPipe(tst, "Plasticity", props, mesh)
	p.InnerPressure = ramp(P)
	state, err := solvePipe(tst, p, pipeOptions(), 2)
	require.NoError(tst, err)
	u := p.Displacements(state)
	chk.Float64(tst, "ub (elastic)", 1e-8, u[len(u)-1], sol.ElastOuterU(P))
	chk.Float64(tst, "p", 1e-17, p.Elems[0].States[0].Iv0[3], 0)

	// plastic range
	P = 0.9 * sol.Plim
	c, err := sol.Calc_c(P)
	require.NoError(tst, err)
	_, ubHill := sol.Plastic(c)
	p = newPipe(tst, "Plasticity", props, mesh)
	p.InnerPressure = ramp(P)
	state, err = solvePipe(tst, p, pipeOptions(), 10)
	require.NoError(tst, err)
	u = p.Displacements(state)
	io.Pforan("c = %v, ub = %v, Hill: %v, stats = %+v\n", c, u[len(u)-1], ubHill, state.Stats)
	require.Greater(tst, u[len(u)-1], sol.ElastOuterU(P))
	chk.Float64(tst, "ub (plastic)", 0.1*ubHill, u[len(u)-1], ubHill)
	require.Greater(tst, p.Elems[0].States[0].Iv0[3], 0.0)
	chk.Float64(tst, "p (outer)", 1e-17, p.Elems[7].States[3].Iv0[3], 0)
}

func Test_pipe04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pipe04")

	// geometric progression of elements
	p := newPipe(tst, "Elasticity", elastProps, PipeMesh{InnerRadius: 1, OuterRadius: 2, NumberOfElements: 3, ElementType: "lin3", Ratio: 2})
	require.NoError(tst, p.Setup(NewSolverOptions()))
	io.Pforan("nodes = %v\n", p.Nodes)
	chk.Array(tst, "nodes", 1e-15, p.Nodes, []float64{1, 1 + 1.0/14, 1 + 1.0/7, 1 + 2.0/7, 1 + 3.0/7, 1 + 5.0/7, 2})

	// failure criterion
	p = newPipe(tst, "Elasticity", elastProps, PipeMesh{InnerRadius: 1, OuterRadius: 2, NumberOfElements: 2, ElementType: "lin2"})
	p.InnerPressure = ramp(1)
	p.MaxOuterRadius = 2.001
	opts := pipeOptions()
	opts.MaxSubSteps = 4
	_, err := solvePipe(tst, p, opts, 1)
	failure, ok := err.(*SolveFailure)
	require.True(tst, ok)
	io.Pforan("%v\n", failure)
	chk.String(tst, failure.Criterion, "maximum outer radius")

	// configuration errors
	var cerr *ConfigError
	for _, mesh := range []PipeMesh{
		{InnerRadius: 0, OuterRadius: 2, NumberOfElements: 1},
		{InnerRadius: 2, OuterRadius: 1, NumberOfElements: 1},
		{InnerRadius: 1, OuterRadius: 2, NumberOfElements: 0},
		{InnerRadius: 1, OuterRadius: 2, NumberOfElements: 1, ElementType: "qua4"},
		{InnerRadius: 1, OuterRadius: 2, NumberOfElements: 1, Ratio: -1},
	} {
		p = newPipe(tst, "Elasticity", elastProps, mesh)
		_, err = NewStudyState(p, NewSolverOptions())
		require.ErrorAs(tst, err, &cerr)
	}
	p = newPipe(tst, "Elasticity", elastProps, PipeMesh{InnerRadius: 1, OuterRadius: 2, NumberOfElements: 1})
	p.Axial = ImposedAxialForce
	_, err = NewStudyState(p, NewSolverOptions())
	require.ErrorAs(tst, err, &cerr)

	// behaviours of pipes require the AxisymmetricalGeneralisedPlaneStrain hypothesis
	b, err := mbehav.New(mbehav.Builtin, mbehav.Tridimensional, "", "Elasticity")
	require.NoError(tst, err)
	p = NewPipeStudy(b, PipeMesh{InnerRadius: 1, OuterRadius: 2, NumberOfElements: 1})
	p.Mprops["YoungModulus"], p.Mprops["PoissonRatio"] = cte(200), cte(0.3)
	_, err = NewStudyState(p, NewSolverOptions())
	require.ErrorAs(tst, err, &cerr)

	// axial loading names
	for i, name := range []string{"None", "EndCapEffect", "ImposedAxialForce", "ImposedAxialStrain"} {
		al, err := ParseAxialLoading(name)
		require.NoError(tst, err)
		chk.Int(tst, name, int(al), i)
		chk.String(tst, al.String(), name)
	}
	_, err = ParseAxialLoading("Twist")
	require.Error(tst, err)
}

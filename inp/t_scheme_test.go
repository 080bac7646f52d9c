// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

const uniaxial = `
desc: uniaxial tension
behaviour:
  function: Elasticity
  convention: builtin
evolutions:
  smax: 100
  load: "smax*t"
material_properties:
  YoungModulus: 200
  PoissonRatio: {type: linear, times: [0, 1], values: [0.3, 0.3]}
external_state_variables:
  Temperature: {type: rmp, prms: {ta: 0, tb: 1, ca: 293.15, cb: 500}}
imposed_thermodynamic_forces:
  SXX: "load"
constraints:
  - expr: "SYY - SZZ"
    policy: ThermodynamicForce
times:
  values: [0, 1, 2]
  steps: [4, 2]
solver:
  itermax: 20
  prediction: ElasticPrediction
  acceleration: Cast3M
  acceleration_parameters:
    AccelerationTrigger: "3"
`

func Test_scheme01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scheme01")

	defaults := SolverData{IterMax: 100, MaxSubSteps: 10, Eeps: 1e-12, Seps: 1e-3, Stiffness: "CONSISTENT-TANGENT"}
	sch, err := ParseScheme([]byte(uniaxial), defaults)
	require.NoError(tst, err)

	// behaviour and solver
	chk.String(tst, sch.Desc, "uniaxial tension")
	chk.String(tst, sch.Behaviour.Function, "Elasticity")
	chk.String(tst, sch.Behaviour.Convention, "builtin")
	chk.Int(tst, "itermax", sch.Solver.IterMax, 20)
	chk.Int(tst, "maxsubsteps", sch.Solver.MaxSubSteps, 10)
	chk.Float64(tst, "eeps", 1e-20, sch.Solver.Eeps, 1e-12)
	chk.String(tst, sch.Solver.Stiffness, "CONSISTENT-TANGENT")
	chk.String(tst, sch.Solver.Prediction, "ElasticPrediction")
	chk.String(tst, sch.Solver.AccelerationParameters["AccelerationTrigger"], "3")

	// evolutions
	chk.Strings(tst, "names", sch.EvolutionNames(), []string{"load", "smax"})
	require.Equal(tst, &EvolutionData{Type: "constant", Value: 100}, sch.Evolutions["smax"])
	require.Equal(tst, &EvolutionData{Type: "function", Expr: "smax*t"}, sch.Evolutions["load"])
	require.Equal(tst, "linear", sch.MaterialProperties["PoissonRatio"].Type)
	chk.Array(tst, "values", 1e-17, sch.MaterialProperties["PoissonRatio"].Values, []float64{0.3, 0.3})
	T := sch.ExternalStateVariables["Temperature"]
	chk.String(tst, T.Type, "rmp")
	chk.Float64(tst, "cb", 1e-17, T.Prms["cb"], 500)
	chk.String(tst, sch.ImposedThermodynamicForces["SXX"].Expr, "load")
	require.Len(tst, sch.Constraints, 1)
	chk.String(tst, sch.Constraints[0].Policy, "ThermodynamicForce")
	require.Nil(tst, sch.Pipe)

	// times
	times, err := sch.Times.Expand()
	require.NoError(tst, err)
	chk.Array(tst, "times", 1e-15, times, []float64{0, 0.25, 0.5, 0.75, 1, 1.5, 2})
}

func Test_scheme02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scheme02")

	// pipe with plain list of times
	src := `
behaviour: {function: Elasticity, convention: builtin}
material_properties: {YoungModulus: 200, PoissonRatio: 0.3}
times: [0, 1]
pipe:
  inner_radius: 1
  outer_radius: 3
  elements: 4
  element_type: lin3
  inner_pressure: "0.1*t"
  axial_loading: EndCapEffect
`
	sch, err := ParseScheme([]byte(src), SolverData{})
	require.NoError(tst, err)
	require.NotNil(tst, sch.Pipe)
	chk.Float64(tst, "Re", 1e-17, sch.Pipe.OuterRadius, 3)
	chk.Int(tst, "nelems", sch.Pipe.NumberOfElements, 4)
	chk.String(tst, sch.Pipe.InnerPressure.Expr, "0.1*t")
	require.Nil(tst, sch.Pipe.OuterPressure)
	chk.String(tst, sch.Pipe.AxialLoading, "EndCapEffect")
	times, err := sch.Times.Expand()
	require.NoError(tst, err)
	chk.Array(tst, "times", 1e-17, times, []float64{0, 1})

	// errors
	for _, bad := range []string{
		"behaviour: {convention: builtin}\ntimes: [0, 1]",
		"behaviour: {function: Elasticity}\ntimes: [0, 1]",
		"behaviour: {function: Elasticity, convention: builtin}\ntimes: [0]",
		"behaviour: {function: Elasticity, convention: builtin}\ntimes: {values: [0, 1], steps: [1, 2]}",
		"behaviour: {function: Elasticity, convention: builtin}\ntimes: {values: [0, 1], steps: [0]}",
		"behaviour: {function: Elasticity, convention: builtin}\ntimes: [0, 1]\nimposed_driving_variables: {ERR: 1}\npipe: {inner_radius: 1, outer_radius: 2, elements: 1}",
		"behaviour: [",
	} {
		_, err = ParseScheme([]byte(bad), SolverData{})
		io.Pforan("%v\n", err)
		require.Error(tst, err)
	}
}

func Test_scheme03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scheme03")

	// file key and output directory
	dir := tst.TempDir()
	fn := filepath.Join(dir, "uniaxial.yaml")
	require.NoError(tst, os.WriteFile(fn, []byte(uniaxial), 0644))
	sch, err := ReadScheme(fn, SolverData{})
	require.NoError(tst, err)
	chk.String(tst, sch.Key, "uniaxial")
	chk.String(tst, sch.DirOut, "/tmp/gomtest/uniaxial")

	_, err = ReadScheme(filepath.Join(dir, "missing.yaml"), SolverData{})
	require.Error(tst, err)
}

func Test_config01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("config01")

	// defaults
	v, err := NewConfig("")
	require.NoError(tst, err)
	d := SolverDefaults(v)
	chk.Int(tst, "itermax", d.IterMax, 100)
	chk.Int(tst, "maxsubsteps", d.MaxSubSteps, 10)
	chk.Float64(tst, "seps", 1e-17, d.Seps, 1e-3)
	chk.String(tst, d.Prediction, "NoPrediction")
	chk.String(tst, DirOut(v), "/tmp/gomtest")

	// file and environment
	fn := filepath.Join(tst.TempDir(), "gomtest.yaml")
	require.NoError(tst, os.WriteFile(fn, []byte("solver:\n  itermax: 30\n  eeps: 1e-10\n"), 0644))
	tst.Setenv("GOMTEST_SOLVER_ITERMAX", "40")
	tst.Setenv("GOMTEST_SOLVER_ACCELERATION", "Secant")
	v, err = NewConfig(fn)
	require.NoError(tst, err)
	d = SolverDefaults(v)
	chk.Int(tst, "itermax", d.IterMax, 40)
	chk.Float64(tst, "eeps", 1e-20, d.Eeps, 1e-10)
	chk.String(tst, d.Acceleration, "Secant")

	// the file values are defaults of schemes
	sch, err := ParseScheme([]byte(uniaxial), d)
	require.NoError(tst, err)
	chk.Int(tst, "itermax", sch.Solver.IterMax, 20)
	chk.Float64(tst, "eeps", 1e-20, sch.Solver.Eeps, 1e-10)
	chk.String(tst, sch.Solver.Acceleration, "Cast3M")

	_, err = NewConfig(filepath.Join(tst.TempDir(), "missing.yaml"))
	require.Error(tst, err)
}

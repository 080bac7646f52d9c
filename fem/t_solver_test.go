// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gomtest/mbehav"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

// failingBehaviour fails whenever the time step is larger than maxdt
type failingBehaviour struct {
	mbehav.Behaviour
	maxdt float64
	calls int
}

func (o *failingBehaviour) Integrate(s *mbehav.State, wk *mbehav.WorkSpace, dt float64, ktype mbehav.StiffnessType) (ok bool, rdt float64) {
	o.calls++
	if dt > o.maxdt*(1+1e-12) {
		return false, 0.2
	}
	return o.Behaviour.Integrate(s, wk, dt, ktype)
}

func newFailingPoint(tst *testing.T, maxdt float64) (*PointStudy, *failingBehaviour) {
	b, err := mbehav.New(mbehav.Builtin, mbehav.Tridimensional, "", "Elasticity")
	require.NoError(tst, err)
	fb := &failingBehaviour{Behaviour: b, maxdt: maxdt}
	p := NewPointStudy(fb, false)
	for name, v := range elastProps {
		p.SetMaterialProperty(name, cte(v))
	}
	require.NoError(tst, p.ImposeDrivingVariable("EXX", ramp(1e-3)))
	return p, fb
}

func Test_solver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver01")

	// one halving: fails for dt=1 and succeeds for dt=0.5
	p, _ := newFailingPoint(tst, 0.5)
	opts := NewSolverOptions()
	opts.Seps = 1e-10
	state, err := NewStudyState(p, opts)
	require.NoError(tst, err)
	require.NoError(tst, Drive(p, state, opts, []float64{0, 1}))
	io.Pforan("stats = %+v\n", state.Stats)
	chk.Int(tst, "sub-steps", state.Stats.SubSteps, 1)
	chk.Int(tst, "steps", state.Stats.Steps, 2)
	chk.Int(tst, "period", state.Period, 2)
	chk.Float64(tst, "DtPrev", 1e-15, state.DtPrev, 0.5)
	chk.Float64(tst, "SXX", 1e-12, p.Results.Last("SXX"), 0.2)

	// two halvings
	p, _ = newFailingPoint(tst, 0.3)
	state, err = NewStudyState(p, opts)
	require.NoError(tst, err)
	require.NoError(tst, Drive(p, state, opts, []float64{0, 1}))
	io.Pforan("stats = %+v\n", state.Stats)
	chk.Int(tst, "sub-steps", state.Stats.SubSteps, 2)
	chk.Int(tst, "steps", state.Stats.Steps, 4)
	chk.Int(tst, "period", state.Period, 4)
	chk.Float64(tst, "DtPrev", 1e-15, state.DtPrev, 0.25)
	chk.Int(tst, "nrows", p.Results.Nrows(), 2)
	chk.Float64(tst, "SXX", 1e-12, p.Results.Last("SXX"), 0.2)

	// the time step grows back after convergence
	p, _ = newFailingPoint(tst, 0.3)
	opts.MaxTimeStepScaling = 2
	state, err = NewStudyState(p, opts)
	require.NoError(tst, err)
	require.NoError(tst, Drive(p, state, opts, []float64{0, 1}))
	io.Pforan("stats = %+v\n", state.Stats)
	require.Greater(tst, state.Stats.SubSteps, 2)
	chk.Float64(tst, "SXX", 1e-12, p.Results.Last("SXX"), 0.2)

	// dynamic scaling uses the factor suggested by the behaviour
	p, _ = newFailingPoint(tst, 0.3)
	opts = NewSolverOptions()
	opts.Seps = 1e-10
	opts.DynamicTimeStepScaling = true
	state, err = NewStudyState(p, opts)
	require.NoError(tst, err)
	require.NoError(tst, Drive(p, state, opts, []float64{0, 1}))
	io.Pforan("stats = %+v\n", state.Stats)
	chk.Int(tst, "sub-steps (dynamic)", state.Stats.SubSteps, 1)
	chk.Int(tst, "steps (dynamic)", state.Stats.Steps, 5)
}

func Test_solver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver02")

	// exactly MaxSubSteps reductions are performed
	p, fb := newFailingPoint(tst, 0.01)
	opts := NewSolverOptions()
	opts.MaxSubSteps = 3
	state, err := NewStudyState(p, opts)
	require.NoError(tst, err)
	err = Drive(p, state, opts, []float64{0, 1})
	require.Error(tst, err)
	failure, ok := err.(*SolveFailure)
	require.True(tst, ok)
	io.Pforan("%v\n", failure)
	chk.Int(tst, "SubSteps", failure.SubSteps, 3)
	chk.Float64(tst, "Time", 1e-17, failure.Time, 0)
	chk.Float64(tst, "Dt", 1e-17, failure.Dt, 0.125)
	chk.String(tst, failure.Criterion, "behaviour integration failed")
	chk.Int(tst, "calls", fb.calls, 4)
	chk.Int(tst, "stats.SubSteps", state.Stats.SubSteps, 3)
	chk.Int(tst, "nrows", p.Results.Nrows(), 1)

	// no reduction allowed
	p, _ = newFailingPoint(tst, 0.01)
	opts.MaxSubSteps = 0
	state, err = NewStudyState(p, opts)
	require.NoError(tst, err)
	err = Execute(p, state, opts, 0, 1)
	failure, ok = err.(*SolveFailure)
	require.True(tst, ok)
	chk.Int(tst, "SubSteps", failure.SubSteps, 0)
	chk.Float64(tst, "Dt", 1e-17, failure.Dt, 1)

	// invalid times
	require.Error(tst, Drive(p, state, opts, []float64{0}))
	require.Error(tst, Drive(p, state, opts, []float64{0, 1, 1}))
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03")

	// predictions and accelerations reach the same solution with the Norton law
	props := map[string]float64{"YoungModulus": 200, "PoissonRatio": 0.3, "NortonCoefficient": 0.1, "NortonExponent": 3}
	var ref float64
	for i, c := range []struct {
		pred  mbehav.PredictionPolicy
		ktype mbehav.StiffnessType
		accel string
	}{
		{mbehav.NoPrediction, mbehav.ConsistentTangent, ""},
		{mbehav.LinearPrediction, mbehav.ConsistentTangent, ""},
		{mbehav.ElasticPrediction, mbehav.ConsistentTangent, ""},
		{mbehav.ElasticPredictionFromMaterialProperties, mbehav.ConsistentTangent, ""},
		{mbehav.TangentPrediction, mbehav.ConsistentTangent, ""},
		{mbehav.ElasticPrediction, mbehav.Elastic, "Secant"},
		{mbehav.ElasticPrediction, mbehav.Elastic, "Steffensen"},
		{mbehav.ElasticPrediction, mbehav.Elastic, "IronsTuck"},
		{mbehav.ElasticPrediction, mbehav.Elastic, "Cast3M"},
	} {
		p := newPoint(tst, mbehav.Builtin, mbehav.Tridimensional, "Norton", props)
		require.NoError(tst, p.ImposeDrivingVariable("EXX", ramp(1e-2)))
		opts := NewSolverOptions()
		opts.Seps = 1e-10
		opts.Prediction = c.pred
		opts.StiffnessType = c.ktype
		if c.accel != "" {
			alg, err := NewAccelerationAlgorithm(c.accel)
			require.NoError(tst, err)
			opts.Acceleration = alg
		}
		state := solvePoint(tst, p, opts, 10)
		sxx := p.Results.Last("SXX")
		io.Pforan("%v %v %q: SXX = %v, stats = %+v\n", c.pred, c.ktype, c.accel, sxx, state.Stats)
		if i == 0 {
			ref = sxx
			require.Less(tst, sxx, 2.0)
			continue
		}
		chk.Float64(tst, "SXX", 1e-9, sxx, ref)
	}
}

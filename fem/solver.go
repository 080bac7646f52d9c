// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the Newton-Raphson solver driving material point and pipe studies
package fem

import (
	"bytes"
	"math"
	"path/filepath"

	"github.com/cpmech/gomtest/inp"
	"github.com/cpmech/gomtest/mbehav"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// SolverOptions holds the parameters of the solver
type SolverOptions struct {
	IterMax       int                     // maximum number of iterations per (sub-)step
	MaxSubSteps   int                     // maximum number of time step reductions
	Eeps          float64                 // tolerance on driving variables (or displacements)
	Seps          float64                 // tolerance on thermodynamic forces (or forces)
	StiffnessType mbehav.StiffnessType    // tangent operator requested from the behaviours
	Prediction    mbehav.PredictionPolicy // prediction policy
	Acceleration  AccelerationAlgorithm   // acceleration algorithm; may be nil

	// time step control
	DynamicTimeStepScaling bool    // use the reduction factor suggested by the behaviours
	MinTimeStepScaling     float64 // lower bound of the reduction factor
	MaxTimeStepScaling     float64 // growth factor of the sub-step after convergence

	// messages
	Verbose      bool   // show messages
	ShowR        bool   // show residuals
	ResidualFile string // file to save residuals; empty means none
}

// NewSolverOptions returns the default options
func NewSolverOptions() *SolverOptions {
	return &SolverOptions{
		IterMax:            100,
		MaxSubSteps:        10,
		Eeps:               1e-12,
		Seps:               1e-3,
		StiffnessType:      mbehav.ConsistentTangent,
		Prediction:         mbehav.NoPrediction,
		MinTimeStepScaling: 0.1,
		MaxTimeStepScaling: 1,
	}
}

// Check checks the options
func (o *SolverOptions) Check() error {
	if o.IterMax < 1 {
		return configErr("maximum number of iterations must be positive; IterMax=%d", o.IterMax)
	}
	if o.MaxSubSteps < 0 {
		return configErr("maximum number of sub-steps must be non-negative; MaxSubSteps=%d", o.MaxSubSteps)
	}
	if o.Eeps <= 0 || o.Seps <= 0 {
		return configErr("tolerances must be positive; Eeps=%g, Seps=%g", o.Eeps, o.Seps)
	}
	if o.MinTimeStepScaling <= 0 || o.MinTimeStepScaling > 0.5 {
		return configErr("minimum time step scaling must be in (0, 0.5]; MinTimeStepScaling=%g", o.MinTimeStepScaling)
	}
	if o.MaxTimeStepScaling < 1 {
		return configErr("maximum time step scaling must be greater than or equal to 1; MaxTimeStepScaling=%g", o.MaxTimeStepScaling)
	}
	return nil
}

// ConvergenceReport holds the verdict of a convergence check
type ConvergenceReport struct {
	Converged bool    // all criteria are satisfied
	Criterion string  // first failed criterion (or the last checked one)
	Value     float64 // value of the criterion
}

// Study defines the problems driven by the solver
type Study interface {

	// set up
	Setup(opts *SolverOptions) error         // checks the configuration and computes auxiliary data
	UnknownsSize() int                       // number of unknowns
	InitializeState(state *StudyState) error // sets the initial values of the unknowns

	// called for each (sub-)step
	Prepare(state *StudyState, t, dt float64) // evaluates the loading at t and t+dt

	// called for each iteration
	ComputePredictionStiffnessAndResidual(state *StudyState, K [][]float64, r []float64, t, dt float64, ptype mbehav.PredictionPolicy) (ok bool)
	ComputeStiffnessMatrixAndResidual(state *StudyState, K [][]float64, r []float64, t, dt float64, ktype mbehav.StiffnessType) (ok bool, rdt float64)
	CheckConvergence(state *StudyState, du, r []float64, opts *SolverOptions, t, dt float64) ConvergenceReport

	// FailureCriteria is checked once the iterations converged
	FailureCriteria(state *StudyState, t, dt float64) (ok bool, criterion string, value float64)

	// called after convergence or divergence
	PostConvergence(state *StudyState, t, dt float64) // called once the step converged
	Revert(state *StudyState)                         // resets the end of the step
	Update(state *StudyState)                         // makes the end of the step the beginning of the next one

	// output
	Report(state *StudyState, t float64) // called at each time of the loading history
}

// SolverStats holds statistics of the solver
type SolverStats struct {
	Iterations int // total number of iterations
	SubSteps   int // total number of time step reductions
	Steps      int // total number of converged sub-steps
}

// StudyState holds the unknowns of a study
type StudyState struct {
	U0     []float64   // unknowns at the beginning of the step
	U1     []float64   // unknowns at the end of the step
	U10    []float64   // unknowns at the beginning of the previous step
	Period int         // number of converged steps
	DtPrev float64     // length of the last converged step
	Stats  SolverStats // statistics

	// scratchpad
	du        []float64     // correction
	r         []float64     // residual
	K         [][]float64   // stiffness matrix
	lu        mat.LU        // factorisation
	A         *mat.Dense    // copy of K
	nrms      []float64     // norms of corrections of the current step
	residuals *bytes.Buffer // residuals table
}

// NewStudyState sets up the study and allocates its state
func NewStudyState(study Study, opts *SolverOptions) (state *StudyState, err error) {
	if err = opts.Check(); err != nil {
		return
	}
	if err = study.Setup(opts); err != nil {
		return
	}
	n := study.UnknownsSize()
	state = &StudyState{
		U0:  make([]float64, n),
		U1:  make([]float64, n),
		U10: make([]float64, n),
		du:  make([]float64, n),
		r:   make([]float64, n),
		K:   utl.Alloc(n, n),
		A:   mat.NewDense(n, n, nil),
	}
	if opts.ResidualFile != "" {
		state.residuals = new(bytes.Buffer)
	}
	if err = study.InitializeState(state); err != nil {
		return nil, err
	}
	copy(state.U1, state.U0)
	copy(state.U10, state.U0)
	if opts.Acceleration != nil {
		opts.Acceleration.Initialize(n)
	}
	return
}

// Drive solves the study over the successive intervals of times
func Drive(study Study, state *StudyState, opts *SolverOptions, times []float64) (err error) {
	if len(times) < 2 {
		return configErr("at least two times are required; %d given", len(times))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return configErr("times must be increasing; t[%d]=%g <= t[%d]=%g", i, times[i], i-1, times[i-1])
		}
	}
	if state.residuals != nil {
		defer func() {
			dir, fn := filepath.Split(opts.ResidualFile)
			if dir == "" {
				dir = "."
			}
			io.WriteFileD(dir, fn, state.residuals)
		}()
	}
	study.Report(state, times[0])
	for i := 1; i < len(times); i++ {
		if err = Execute(study, state, opts, times[i-1], times[i]-times[i-1]); err != nil {
			return
		}
		study.Report(state, times[i])
	}
	return
}

// Execute solves the study over [t, t+dt], reducing the time step on divergence
func Execute(study Study, state *StudyState, opts *SolverOptions, t, dt float64) (err error) {

	// auxiliary
	tf := t + dt
	tol := 1e-12 * math.Max(1, math.Abs(tf))
	nreduc := 0
	Δt := dt

	// sub-steps
	for tf-t > tol {
		if t+Δt > tf-tol {
			Δt = tf - t
		}
		ok, rdt, report := executeStep(study, state, opts, t, Δt)
		if ok {
			study.PostConvergence(state, t, Δt)
			copy(state.U10, state.U0)
			copy(state.U0, state.U1)
			study.Update(state)
			state.Period++
			state.Stats.Steps++
			state.DtPrev = Δt
			t += Δt
			Δt *= opts.MaxTimeStepScaling
			continue
		}

		// divergence
		study.Revert(state)
		copy(state.U1, state.U0)
		nreduc++
		if nreduc > opts.MaxSubSteps {
			inp.LogErrCond(true, "maximum number of sub-steps reached at t=%g: %s (%g)", t, report.Criterion, report.Value)
			return &SolveFailure{Time: t, Dt: Δt, SubSteps: nreduc - 1, Criterion: report.Criterion, Value: report.Value}
		}
		state.Stats.SubSteps++
		scale := 0.5
		if opts.DynamicTimeStepScaling && rdt > 0 {
			scale = math.Min(math.Max(rdt, opts.MinTimeStepScaling), 0.5)
		}
		if opts.Verbose {
			io.Pfred(". . . iterations diverging (%2d): %s (%g). reducing time step by %g . . .\n", nreduc, report.Criterion, report.Value, scale)
		}
		inp.Logf("t=%g Δt=%g: %s (%g); reducing time step by %g", t, Δt, report.Criterion, report.Value, scale)
		Δt *= scale
	}
	return
}

// executeStep solves one (sub-)step
func executeStep(study Study, state *StudyState, opts *SolverOptions, t, dt float64) (ok bool, rdt float64, report ConvergenceReport) {

	// auxiliary
	K, r, du := state.K, state.r, state.du
	study.Prepare(state, t, dt)
	copy(state.U1, state.U0)
	state.nrms = state.nrms[:0]

	// prediction
	switch opts.Prediction {
	case mbehav.NoPrediction:
	case mbehav.LinearPrediction:
		if state.Period > 0 && state.DtPrev > 0 {
			c := dt / state.DtPrev
			for i := range state.U1 {
				state.U1[i] += c * (state.U0[i] - state.U10[i])
			}
		}
	default:
		if study.ComputePredictionStiffnessAndResidual(state, K, r, t, dt, opts.Prediction) {
			if err := state.solve(du, K, r); err == nil {
				for i := range state.U1 {
					state.U1[i] -= du[i]
				}
			} else {
				inp.Logf("t=%g: singular prediction operator; prediction is skipped", t)
			}
		} else {
			inp.Logf("t=%g: prediction failed; prediction is skipped", t)
		}
	}

	// message
	var it int
	var nrmR, nrmDu float64
	if opts.ShowR {
		io.Pf("\n%13s%4s%23s%23s\n", "t", "it", "|r|", "|du|")
	}

	// acceleration
	if opts.Acceleration != nil {
		opts.Acceleration.PreExecuteTasks()
	}

	// iterations
	report = ConvergenceReport{Criterion: "maximum number of iterations reached"}
	for it = 0; it < opts.IterMax; it++ {
		state.Stats.Iterations++

		// stiffness and residual
		ok, rdt = study.ComputeStiffnessMatrixAndResidual(state, K, r, t, dt, opts.StiffnessType)
		if !ok {
			return false, rdt, ConvergenceReport{Criterion: "behaviour integration failed", Value: rdt}
		}
		nrmR = norm(r)
		if opts.ShowR {
			io.Pf("%13.6e%4d%23.15e%23.15e\n", t+dt, it, nrmR, nrmDu)
		}
		if state.residuals != nil {
			io.Ff(state.residuals, "%23.15e %4d %23.15e %23.15e\n", t+dt, it, nrmR, nrmDu)
		}

		// convergence
		if it > 0 {
			report = study.CheckConvergence(state, du, r, opts, t, dt)
			if report.Converged {
				state.logOrder(t + dt)
				var criterion string
				var value float64
				if ok, criterion, value = study.FailureCriteria(state, t, dt); !ok {
					return false, 0, ConvergenceReport{Criterion: criterion, Value: value}
				}
				return true, 1, report
			}
		}

		// solve
		if err := state.solve(du, K, r); err != nil {
			return false, 0, ConvergenceReport{Criterion: "singular stiffness matrix", Value: math.Inf(1)}
		}
		for i := range state.U1 {
			state.U1[i] -= du[i]
		}
		nrmDu = norm(du)
		state.nrms = append(state.nrms, nrmDu)

		// acceleration
		if opts.Acceleration != nil {
			opts.Acceleration.Execute(state.U1, du, r, opts.Eeps, opts.Seps, it+1)
		}
	}
	report.Converged = false
	return false, 0, report
}

// solve solves K du = r with a dense LU factorisation (partial pivoting)
func (o *StudyState) solve(du []float64, K [][]float64, r []float64) error {
	n := len(du)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			o.A.Set(i, j, K[i][j])
		}
	}
	o.lu.Factorize(o.A)
	x := mat.NewVecDense(n, du)
	b := mat.NewVecDense(n, r)
	return o.lu.SolveVecTo(x, false, b)
}

// logOrder logs an estimate of the order of convergence computed from the three last corrections
func (o *StudyState) logOrder(t float64) {
	n := len(o.nrms)
	if n < 3 {
		return
	}
	e0, e1, e2 := o.nrms[n-3], o.nrms[n-2], o.nrms[n-1]
	if e0 <= 0 || e1 <= 0 || e2 <= 0 || e0 == e1 {
		return
	}
	inp.Logf("t=%g: estimated order of convergence: %g", t, math.Log(e2/e1)/math.Log(e1/e0))
}

// norm returns the Euclidean norm of v
func norm(v []float64) float64 {
	return math.Sqrt(dot(v, v))
}

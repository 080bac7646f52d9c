// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gomtest/inp"
	"github.com/cpmech/gomtest/mbehav"
	"github.com/cpmech/gomtest/out"
	"github.com/cpmech/gosl/utl"
)

// Simulation holds a study built from a scheme, the solver options and the loading history
type Simulation struct {
	Scheme *inp.Scheme    // input data
	Study  Study          // point or pipe study
	Opts   *SolverOptions // solver options
	Times  []float64      // times of the loading history
	State  *StudyState    // state of the solver; available after Run
}

// NewSimulation builds a simulation from a scheme
func NewSimulation(sch *inp.Scheme) (o *Simulation, err error) {

	// behaviour
	o = &Simulation{Scheme: sch}
	b, err := newBehaviour(sch.Behaviour, sch.Pipe != nil)
	if err != nil {
		return nil, err
	}

	// options and times
	if o.Opts, err = NewSolverOptionsFromData(sch.Solver); err != nil {
		return nil, err
	}
	if o.Times, err = sch.Times.Expand(); err != nil {
		return nil, configErr("%v", err)
	}

	// evolutions
	evs, err := resolveEvolutions(sch.Evolutions)
	if err != nil {
		return nil, err
	}

	// study
	if sch.Pipe != nil {
		var p *PipeStudy
		if p, err = newPipeFromScheme(b, sch, evs); err != nil {
			return nil, err
		}
		o.Study = p
	} else {
		var p *PointStudy
		if p, err = newPointFromScheme(b, sch, evs); err != nil {
			return nil, err
		}
		o.Study = p
	}
	if err = o.Study.Setup(o.Opts); err != nil {
		return nil, err
	}
	return
}

// Results returns the table filled by the study
func (o *Simulation) Results() *out.Table {
	switch s := o.Study.(type) {
	case *PointStudy:
		return s.Results
	case *PipeStudy:
		return s.Results
	}
	return nil
}

// Run solves the study over the loading history
func (o *Simulation) Run() (err error) {
	if o.State, err = NewStudyState(o.Study, o.Opts); err != nil {
		return
	}
	return Drive(o.Study, o.State, o.Opts, o.Times)
}

// NewSolverOptionsFromData returns solver options from input data; zero values, except for
// MaxSubSteps, are replaced by the defaults
func NewSolverOptionsFromData(d inp.SolverData) (o *SolverOptions, err error) {
	o = NewSolverOptions()
	if d.IterMax != 0 {
		o.IterMax = d.IterMax
	}
	o.MaxSubSteps = d.MaxSubSteps
	if d.Eeps != 0 {
		o.Eeps = d.Eeps
	}
	if d.Seps != 0 {
		o.Seps = d.Seps
	}
	if d.Stiffness != "" {
		if o.StiffnessType, err = mbehav.ParseStiffnessType(d.Stiffness); err != nil {
			return nil, configErr("%v", err)
		}
	}
	if d.Prediction != "" {
		if o.Prediction, err = mbehav.ParsePredictionPolicy(d.Prediction); err != nil {
			return nil, configErr("%v", err)
		}
	}
	if d.Acceleration != "" {
		if o.Acceleration, err = NewAccelerationAlgorithm(d.Acceleration); err != nil {
			return nil, configErr("%v", err)
		}
		keys := make([]string, 0, len(d.AccelerationParameters))
		for key := range d.AccelerationParameters {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err = o.Acceleration.SetParameter(key, d.AccelerationParameters[key]); err != nil {
				return nil, configErr("%v", err)
			}
		}
	} else if len(d.AccelerationParameters) > 0 {
		return nil, configErr("acceleration parameters are given but no acceleration algorithm is selected")
	}
	o.DynamicTimeStepScaling = d.DynamicTimeStepScaling
	if d.MinTimeStepScaling != 0 {
		o.MinTimeStepScaling = d.MinTimeStepScaling
	}
	if d.MaxTimeStepScaling != 0 {
		o.MaxTimeStepScaling = d.MaxTimeStepScaling
	}
	o.Verbose, o.ShowR, o.ResidualFile = d.Verbose, d.ShowR, d.ResidualFile
	if err = o.Check(); err != nil {
		return nil, err
	}
	return
}

// newBehaviour loads the behaviour of a scheme; pipes default to the
// AxisymmetricalGeneralisedPlaneStrain hypothesis
func newBehaviour(d inp.BehaviourData, pipe bool) (mbehav.Behaviour, error) {
	conv, err := mbehav.ParseConvention(d.Convention)
	if err != nil {
		return nil, configErr("%v", err)
	}
	h := mbehav.Tridimensional
	if pipe {
		h = mbehav.AxisymmetricalGeneralisedPlaneStrain
	}
	if d.Hypothesis != "" {
		if h, err = mbehav.ParseHypothesis(d.Hypothesis); err != nil {
			return nil, configErr("%v", err)
		}
	}
	b, err := mbehav.New(conv, h, d.Library, d.Function)
	if err != nil {
		return nil, err
	}
	inp.Logf("behaviour %q loaded (convention %s, hypothesis %v)", d.Function, conv, h)
	return b, nil
}

// resolveEvolutions allocates named evolutions; function evolutions may refer to other named
// evolutions as long as there are no cycles
func resolveEvolutions(data map[string]*inp.EvolutionData) (evs Evolutions, err error) {
	evs = make(Evolutions)
	visiting := make(map[string]bool)
	var resolve func(name string, path []string) error
	resolve = func(name string, path []string) error {
		if _, ok := evs[name]; ok {
			return nil
		}
		if visiting[name] {
			return configErr("circular definition of evolutions: %v", append(path, name))
		}
		d, ok := data[name]
		if !ok {
			return configErr("evolution %q is not defined", name)
		}
		visiting[name] = true
		if d.Type == "function" {
			expr, err := ParseExpression(d.Expr)
			if err != nil {
				return configErr("evolution %q: %v", name, err)
			}
			for _, dep := range expr.Variables() {
				if dep == "t" {
					continue
				}
				if err = resolve(dep, append(path, name)); err != nil {
					return err
				}
			}
		}
		ev, err := NewEvolution(d, evs)
		if err != nil {
			return configErr("evolution %q: %v", name, err)
		}
		evs[name] = ev
		return nil
	}
	names := make([]string, 0, len(data))
	for name := range data {
		if name == "t" {
			return nil, configErr("\"t\" is reserved and cannot name an evolution")
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err = resolve(name, nil); err != nil {
			return nil, err
		}
	}
	return
}

// NewEvolution allocates an evolution from input data; function evolutions may refer to evs
func NewEvolution(d *inp.EvolutionData, evs Evolutions) (Evolution, error) {
	switch d.Type {
	case "", "constant":
		return ConstantEvolution(d.Value), nil
	case "linear":
		return NewLinearEvolution(d.Times, d.Values)
	case "function":
		return NewFunctionEvolution(d.Expr, evs)
	}
	return NewDbfEvolution(d.Type, d.Prms)
}

// newEvolutions allocates a set of evolutions
func newEvolutions(data map[string]*inp.EvolutionData, evs Evolutions, what string) (res map[string]Evolution, err error) {
	res = make(map[string]Evolution)
	for name, d := range data {
		if res[name], err = NewEvolution(d, evs); err != nil {
			return nil, configErr("%s %q: %v", what, name, err)
		}
	}
	return
}

// newPointFromScheme builds a point study
func newPointFromScheme(b mbehav.Behaviour, sch *inp.Scheme, evs Evolutions) (o *PointStudy, err error) {
	o = NewPointStudy(b, sch.StrictIvs)
	o.Evolutions = evs
	if o.Mprops, err = newEvolutions(sch.MaterialProperties, evs, "material property"); err != nil {
		return nil, err
	}
	if o.Esvs, err = newEvolutions(sch.ExternalStateVariables, evs, "external state variable"); err != nil {
		return nil, err
	}
	if sch.Rotation != nil {
		if err = o.SetRotationMatrix(sch.Rotation); err != nil {
			return nil, err
		}
	}

	// initial driving variables
	dvs := b.DrivingVariablesComponents()
	dvsc, _ := mandelScales(b)
	for name, v := range sch.InitialDrivingVariables {
		c := utl.StrIndexSmall(dvs, name)
		if c < 0 {
			return nil, configErr("cannot initialise %q: components of the driving variables are %v", name, dvs)
		}
		o.State.E0[c] = v * dvsc[c]
		o.State.E1[c] = o.State.E0[c]
	}

	// imposed values, in sorted order for reproducible numbering of the unknowns
	imposed := func(data map[string]*inp.EvolutionData, what string, impose func(string, Evolution) error) error {
		set, err := newEvolutions(data, evs, what)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err = impose(name, set[name]); err != nil {
				return err
			}
		}
		return nil
	}
	if err = imposed(sch.ImposedDrivingVariables, "imposed driving variable", o.ImposeDrivingVariable); err != nil {
		return nil, err
	}
	if err = imposed(sch.ImposedThermodynamicForces, "imposed thermodynamic force", o.ImposeThermodynamicForce); err != nil {
		return nil, err
	}

	// non-linear constraints
	for _, c := range sch.Constraints {
		policy, err := ParseConstraintPolicy(c.Policy)
		if err != nil {
			return nil, configErr("%v", err)
		}
		nlc, err := NewNonLinearConstraint(b, c.Expr, policy, evs)
		if err != nil {
			return nil, configErr("%v", err)
		}
		o.AddConstraint(nlc)
	}
	return
}

// newPipeFromScheme builds a pipe study
func newPipeFromScheme(b mbehav.Behaviour, sch *inp.Scheme, evs Evolutions) (o *PipeStudy, err error) {
	d := sch.Pipe
	o = NewPipeStudy(b, PipeMesh{
		InnerRadius:      d.InnerRadius,
		OuterRadius:      d.OuterRadius,
		NumberOfElements: d.NumberOfElements,
		ElementType:      d.ElementType,
		Ratio:            d.Ratio,
	})
	o.StrictIvs = sch.StrictIvs
	o.MaxInnerRadius, o.MaxOuterRadius = d.MaxInnerRadius, d.MaxOuterRadius
	if o.Mprops, err = newEvolutions(sch.MaterialProperties, evs, "material property"); err != nil {
		return nil, err
	}
	if o.Esvs, err = newEvolutions(sch.ExternalStateVariables, evs, "external state variable"); err != nil {
		return nil, err
	}
	if o.Axial, err = ParseAxialLoading(d.AxialLoading); err != nil {
		return nil, configErr("%v", err)
	}
	optional := func(ed *inp.EvolutionData, what string) (Evolution, error) {
		if ed == nil {
			return nil, nil
		}
		ev, err := NewEvolution(ed, evs)
		if err != nil {
			return nil, configErr("%s: %v", what, err)
		}
		return ev, nil
	}
	if o.InnerPressure, err = optional(d.InnerPressure, "inner pressure"); err != nil {
		return nil, err
	}
	if o.OuterPressure, err = optional(d.OuterPressure, "outer pressure"); err != nil {
		return nil, err
	}
	if o.AxialForce, err = optional(d.AxialForce, "axial force"); err != nil {
		return nil, err
	}
	if o.AxialStrain, err = optional(d.AxialStrain, "axial strain"); err != nil {
		return nil, err
	}
	return
}

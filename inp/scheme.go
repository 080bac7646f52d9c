// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from (.yaml) scheme files, the solver defaults and
// the log file
package inp

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// BehaviourData identifies a behaviour
type BehaviourData struct {
	Library    string `yaml:"library"`    // path of the shared library; empty for builtin laws
	Function   string `yaml:"function"`   // name of the function or of the builtin law
	Convention string `yaml:"convention"` // e.g. "castem", "umat", "aster", "cyrano", "builtin"
	Hypothesis string `yaml:"hypothesis"` // modelling hypothesis; default is Tridimensional
}

// EvolutionData holds the definition of an evolution. In scheme files, a number is a constant
// and a string is an expression of t and of other evolutions; e.g.
//  YoungModulus: 200e3
//  EXX: "1e-3*t"
//  Temperature: {type: linear, times: [0, 1], values: [293.15, 500]}
//  SXX: {type: rmp, prms: {ta: 0, tb: 1, ca: 0, cb: 100}}
type EvolutionData struct {
	Type   string             `yaml:"type"`   // "constant", "linear", "function" or a gosl function; e.g. "rmp"
	Value  float64            `yaml:"value"`  // constant value
	Times  []float64          `yaml:"times"`  // times of linear evolutions
	Values []float64          `yaml:"values"` // values of linear evolutions
	Expr   string             `yaml:"expr"`   // expression of functions
	Prms   map[string]float64 `yaml:"prms"`   // parameters of gosl functions
}

// UnmarshalYAML decodes scalars as constants or expressions
func (o *EvolutionData) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v float64
		if err := node.Decode(&v); err == nil {
			*o = EvolutionData{Type: "constant", Value: v}
			return nil
		}
		*o = EvolutionData{Type: "function", Expr: node.Value}
		return nil
	}
	type plain EvolutionData
	if err := node.Decode((*plain)(o)); err != nil {
		return err
	}
	if o.Type == "" {
		o.Type = "constant"
	}
	return nil
}

// ConstraintData holds a non-linear constraint
type ConstraintData struct {
	Expr   string `yaml:"expr"`   // c(e, σ, t) = 0; e.g. "SXX - 2*SYY"
	Policy string `yaml:"policy"` // "DrivingVariable" (default) or "ThermodynamicForce"
}

// TimesData holds the times of the loading history. Each entry of Steps subdivides the
// corresponding interval; e.g. values: [0, 1], steps: [10]
type TimesData struct {
	Values []float64 `yaml:"values"`
	Steps  []int     `yaml:"steps"`
}

// UnmarshalYAML also accepts a plain list of times
func (o *TimesData) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		o.Steps = nil
		return node.Decode(&o.Values)
	}
	type plain TimesData
	return node.Decode((*plain)(o))
}

// Expand returns all times
func (o TimesData) Expand() (res []float64, err error) {
	if len(o.Values) < 2 {
		return nil, chk.Err("at least two times are required; %d given", len(o.Values))
	}
	if len(o.Steps) > 0 && len(o.Steps) != len(o.Values)-1 {
		return nil, chk.Err("the number of subdivisions (%d) must be equal to the number of intervals (%d)", len(o.Steps), len(o.Values)-1)
	}
	res = []float64{o.Values[0]}
	for i := 1; i < len(o.Values); i++ {
		n := 1
		if len(o.Steps) > 0 {
			n = o.Steps[i-1]
		}
		if n < 1 {
			return nil, chk.Err("subdivisions must be positive; steps[%d]=%d", i-1, n)
		}
		t0, dt := o.Values[i-1], (o.Values[i]-o.Values[i-1])/float64(n)
		for j := 1; j < n; j++ {
			res = append(res, t0+float64(j)*dt)
		}
		res = append(res, o.Values[i])
	}
	return
}

// SolverData holds the solver parameters
type SolverData struct {
	IterMax                int               `yaml:"itermax"`                   // maximum number of iterations
	MaxSubSteps            int               `yaml:"maxsubsteps"`               // maximum number of time step reductions
	Eeps                   float64           `yaml:"eeps"`                      // tolerance on driving variables
	Seps                   float64           `yaml:"seps"`                      // tolerance on thermodynamic forces
	Stiffness              string            `yaml:"stiffness"`                 // e.g. "CONSISTENT-TANGENT"
	Prediction             string            `yaml:"prediction"`                // e.g. "ElasticPrediction"
	Acceleration           string            `yaml:"acceleration"`              // e.g. "Cast3M"; empty means none
	AccelerationParameters map[string]string `yaml:"acceleration_parameters"`   // e.g. AccelerationTrigger: 3
	DynamicTimeStepScaling bool              `yaml:"dynamic_time_step_scaling"` // use factors suggested by behaviours
	MinTimeStepScaling     float64           `yaml:"min_time_step_scaling"`     // lower bound of reduction factors
	MaxTimeStepScaling     float64           `yaml:"max_time_step_scaling"`     // growth factor after convergence
	Verbose                bool              `yaml:"verbose"`                   // show messages
	ShowR                  bool              `yaml:"showr"`                     // show residuals
	ResidualFile           string            `yaml:"residual_file"`             // file to save residuals
}

// PipeData holds the data of a pipe study
type PipeData struct {
	InnerRadius      float64        `yaml:"inner_radius"`
	OuterRadius      float64        `yaml:"outer_radius"`
	NumberOfElements int            `yaml:"elements"`
	ElementType      string         `yaml:"element_type"` // "lin2", "lin3" or "lin4"; default is "lin4"
	Ratio            float64        `yaml:"ratio"`        // ratio between successive elements
	InnerPressure    *EvolutionData `yaml:"inner_pressure"`
	OuterPressure    *EvolutionData `yaml:"outer_pressure"`
	AxialLoading     string         `yaml:"axial_loading"` // "None", "EndCapEffect", "ImposedAxialForce" or "ImposedAxialStrain"
	AxialForce       *EvolutionData `yaml:"axial_force"`
	AxialStrain      *EvolutionData `yaml:"axial_strain"`
	MaxInnerRadius   float64        `yaml:"max_inner_radius"`
	MaxOuterRadius   float64        `yaml:"max_outer_radius"`
}

// Scheme holds the definition of a test: a material point or a pipe
type Scheme struct {

	// global information
	Desc   string `yaml:"desc"`   // description
	DirOut string `yaml:"dirout"` // directory for output; e.g. /tmp/gomtest
	Key    string `yaml:"-"`      // filename key

	// behaviour
	Behaviour BehaviourData `yaml:"behaviour"`
	StrictIvs bool          `yaml:"strict_isv"` // do not pad empty internal state variables

	// loading
	Evolutions                 map[string]*EvolutionData `yaml:"evolutions"`
	MaterialProperties         map[string]*EvolutionData `yaml:"material_properties"`
	ExternalStateVariables     map[string]*EvolutionData `yaml:"external_state_variables"`
	ImposedDrivingVariables    map[string]*EvolutionData `yaml:"imposed_driving_variables"`
	ImposedThermodynamicForces map[string]*EvolutionData `yaml:"imposed_thermodynamic_forces"`
	InitialDrivingVariables    map[string]float64        `yaml:"initial_driving_variables"`
	Constraints                []ConstraintData          `yaml:"constraints"`
	Rotation                   [][]float64               `yaml:"rotation"`
	Times                      TimesData                 `yaml:"times"`

	// solver and pipe
	Solver SolverData `yaml:"solver"`
	Pipe   *PipeData  `yaml:"pipe"`
}

// ReadScheme reads a scheme file; solver parameters not given in the file are taken from defaults
func ReadScheme(fn string, defaults SolverData) (o *Scheme, err error) {
	b, err := os.ReadFile(os.ExpandEnv(fn))
	if err != nil {
		return nil, chk.Err("cannot read scheme file %q:\n%v", fn, err)
	}
	if o, err = ParseScheme(b, defaults); err != nil {
		return nil, chk.Err("cannot parse scheme file %q:\n%v", fn, err)
	}
	o.Key = io.FnKey(filepath.Base(fn))
	if o.DirOut == "" {
		o.DirOut = filepath.Join(defaultDirOut, o.Key)
	}
	return
}

// ParseScheme decodes a scheme and checks it
func ParseScheme(b []byte, defaults SolverData) (o *Scheme, err error) {
	o = &Scheme{Solver: defaults, Key: "scheme"}
	if err = yaml.Unmarshal(b, o); err != nil {
		return nil, err
	}
	if err = o.check(); err != nil {
		return nil, err
	}
	return
}

// check checks the scheme
func (o *Scheme) check() error {
	if o.Behaviour.Function == "" {
		return chk.Err("the function of the behaviour must be given")
	}
	if o.Behaviour.Convention == "" {
		return chk.Err("the convention of behaviour %q must be given", o.Behaviour.Function)
	}
	if _, err := o.Times.Expand(); err != nil {
		return err
	}
	if o.Pipe != nil {
		if len(o.ImposedDrivingVariables) > 0 || len(o.ImposedThermodynamicForces) > 0 || len(o.Constraints) > 0 {
			return chk.Err("imposed driving variables, thermodynamic forces and constraints cannot be used in pipe studies")
		}
	}
	return nil
}

// EvolutionNames returns the sorted names of the evolutions
func (o *Scheme) EvolutionNames() (res []string) {
	for name := range o.Evolutions {
		res = append(res, name)
	}
	sort.Strings(res)
	return
}

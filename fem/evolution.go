// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gomtest/inp"
	"github.com/cpmech/gomtest/mbehav"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
)

// Evolution defines the evolution of a scalar value with time
type Evolution interface {
	F(t float64) float64 // value at time t
	IsConstant() bool    // the value does not depend on time
}

// Evolutions maps names to evolutions
type Evolutions map[string]Evolution

// Names returns the sorted names of all evolutions
func (o Evolutions) Names() (res []string) {
	for name := range o {
		res = append(res, name)
	}
	sort.Strings(res)
	return
}

// Values sets the values of all evolutions at time t, plus "t" itself
func (o Evolutions) Values(values map[string]float64, t float64) {
	for name, ev := range o {
		values[name] = ev.F(t)
	}
	values["t"] = t
}

// ConstantEvolution holds a constant value
type ConstantEvolution float64

func (o ConstantEvolution) F(t float64) float64 { return float64(o) }
func (o ConstantEvolution) IsConstant() bool    { return true }

// LinearEvolution is a piecewise linear function of time, constant outside the given range
type LinearEvolution struct {
	T []float64 // times (increasing)
	V []float64 // values
}

// NewLinearEvolution returns a new piecewise linear evolution
func NewLinearEvolution(times, values []float64) (*LinearEvolution, error) {
	if len(times) == 0 || len(times) != len(values) {
		return nil, chk.Err("linear evolution requires the same (non-zero) number of times and values; %d != %d", len(times), len(values))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, chk.Err("times of linear evolution must be increasing; t[%d]=%g <= t[%d]=%g", i, times[i], i-1, times[i-1])
		}
	}
	return &LinearEvolution{T: append([]float64(nil), times...), V: append([]float64(nil), values...)}, nil
}

// F returns the value at time t
func (o *LinearEvolution) F(t float64) float64 {
	n := len(o.T)
	if t <= o.T[0] {
		return o.V[0]
	}
	if t >= o.T[n-1] {
		return o.V[n-1]
	}
	i := sort.SearchFloat64s(o.T, t)
	if o.T[i] == t {
		return o.V[i]
	}
	return o.V[i-1] + (o.V[i]-o.V[i-1])*(t-o.T[i-1])/(o.T[i]-o.T[i-1])
}

// IsConstant tells whether all values are the same
func (o *LinearEvolution) IsConstant() bool {
	for _, v := range o.V {
		if v != o.V[0] {
			return false
		}
	}
	return true
}

// FunctionEvolution is an expression of time and of other evolutions
type FunctionEvolution struct {
	expr   *Expression
	evs    Evolutions
	values map[string]float64
}

// NewFunctionEvolution parses expression src; other identifiers than t must name evolutions in evs
func NewFunctionEvolution(src string, evs Evolutions) (*FunctionEvolution, error) {
	expr, err := ParseExpression(src)
	if err != nil {
		return nil, err
	}
	o := &FunctionEvolution{expr: expr, evs: make(Evolutions), values: make(map[string]float64)}
	for _, name := range expr.Variables() {
		if name == "t" {
			continue
		}
		ev, ok := evs[name]
		if !ok {
			return nil, chk.Err("evolution %q depends on the undefined evolution %q", src, name)
		}
		o.evs[name] = ev
	}
	return o, nil
}

// F returns the value at time t
func (o *FunctionEvolution) F(t float64) float64 {
	o.evs.Values(o.values, t)
	v, _ := o.expr.Eval(o.values)
	return v
}

// IsConstant tells whether the expression depends on neither time nor non-constant evolutions
func (o *FunctionEvolution) IsConstant() bool {
	for _, name := range o.expr.Variables() {
		if name == "t" {
			return false
		}
		if !o.evs[name].IsConstant() {
			return false
		}
	}
	return true
}

// DbfEvolution wraps a function from the gosl database of functions; e.g. "rmp", "cos", "lin"
type DbfEvolution struct {
	fcn dbf.T
}

// NewDbfEvolution returns a new evolution from the gosl database of functions
func NewDbfEvolution(kind string, prms map[string]float64) (o *DbfEvolution, err error) {
	var params dbf.Params
	names := make([]string, 0, len(prms))
	for name := range prms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		params = append(params, &dbf.P{N: name, V: prms[name]})
	}
	defer func() {
		if r := recover(); r != nil {
			o, err = nil, chk.Err("cannot allocate function of type %q:\n%v", kind, r)
		}
	}()
	return &DbfEvolution{dbf.New(kind, params)}, nil
}

func (o *DbfEvolution) F(t float64) float64 { return o.fcn.F(t, nil) }
func (o *DbfEvolution) IsConstant() bool    { return false }

// materialPropertiesEvolutions returns the evolutions of the material properties of b; optional
// properties default to constants
func materialPropertiesEvolutions(b mbehav.Behaviour, mprops map[string]Evolution) (evs []Evolution, err error) {
	names := b.MaterialPropertiesNames()
	defaults := b.OptionalMaterialPropertiesDefaults()
	evs = make([]Evolution, len(names))
	for i, name := range names {
		ev, ok := mprops[name]
		if !ok {
			v, optional := defaults[name]
			if !optional {
				return nil, configErr("material property %q is not defined", name)
			}
			ev = ConstantEvolution(v)
		}
		evs[i] = ev
	}
	for name := range mprops {
		if utl.StrIndexSmall(names, name) < 0 {
			return nil, configErr("material property %q is not used by the behaviour; properties are %v", name, names)
		}
	}
	return
}

// externalStateVariablesEvolutions returns the evolutions of the external state variables of b;
// the temperature defaults to DefaultTemperature
func externalStateVariablesEvolutions(b mbehav.Behaviour, esvs map[string]Evolution) (evs []Evolution, err error) {
	names := b.ExternalStateVariablesNames()
	evs = make([]Evolution, len(names))
	for i, name := range names {
		ev, ok := esvs[name]
		if !ok {
			if i > 0 {
				return nil, configErr("external state variable %q is not defined", name)
			}
			inp.Logf("temperature is not defined; using %g", DefaultTemperature)
			ev = ConstantEvolution(DefaultTemperature)
		}
		evs[i] = ev
	}
	for name := range esvs {
		if utl.StrIndexSmall(names, name) < 0 {
			return nil, configErr("external state variable %q is not used by the behaviour; variables are %v", name, names)
		}
	}
	return
}

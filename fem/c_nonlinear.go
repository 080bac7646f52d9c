// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"strings"

	"github.com/cpmech/gomtest/mbehav"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// ConstraintPolicy defines the normalisation and the convergence criterion of a non-linear
// constraint
type ConstraintPolicy int

// constraint policies
const (
	DrivingVariablePolicy     ConstraintPolicy = iota // normalised by the study; |c| < eeps
	ThermodynamicForcePolicy                          // not normalised; |c| < seps
)

// ParseConstraintPolicy parses a policy; e.g. "DrivingVariable" or "ThermodynamicForce"
func ParseConstraintPolicy(name string) (ConstraintPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "drivingvariable":
		return DrivingVariablePolicy, nil
	case "thermodynamicforce":
		return ThermodynamicForcePolicy, nil
	}
	return 0, chk.Err("unknown constraint policy %q; options are DrivingVariable and ThermodynamicForce", name)
}

// NonLinearConstraint imposes c(e, σ, t) = 0 using a Lagrange multiplier
type NonLinearConstraint struct {
	Policy ConstraintPolicy

	// expression and derivatives
	expr  *Expression   // c
	dcde  []*Expression // [ndv] ∂c/∂e; nil if zero
	dcds  []*Expression // [ntf] ∂c/∂σ; nil if zero
	dvs   []string      // names of the driving variables
	tfs   []string      // names of the thermodynamic forces
	dvsc  []float64     // Mandel factors of the driving variables
	tfsc  []float64     // Mandel factors of the thermodynamic forces
	evs   Evolutions    // evolutions used by the expression
	dc    []float64     // [ndv] scratch: total derivative
	value float64       // last computed value of c
}

// NewNonLinearConstraint returns a new constraint for behaviour b. Identifiers of the expression
// must be components of driving variables or thermodynamic forces, names of evolutions, or t.
func NewNonLinearConstraint(b mbehav.Behaviour, src string, policy ConstraintPolicy, evs Evolutions) (o *NonLinearConstraint, err error) {
	o = &NonLinearConstraint{Policy: policy, evs: make(Evolutions)}
	if o.expr, err = ParseExpression(src); err != nil {
		return nil, configErr("invalid constraint: %v", err)
	}
	o.dvs = b.DrivingVariablesComponents()
	o.tfs = b.ThermodynamicForcesComponents()
	o.dvsc, o.tfsc = mandelScales(b)
	o.dcde = make([]*Expression, len(o.dvs))
	o.dcds = make([]*Expression, len(o.tfs))
	o.dc = make([]float64, len(o.dvs))
	for _, name := range o.expr.Variables() {
		if i := utl.StrIndexSmall(o.dvs, name); i >= 0 {
			o.dcde[i] = o.expr.Derivative(name)
			continue
		}
		if i := utl.StrIndexSmall(o.tfs, name); i >= 0 {
			o.dcds[i] = o.expr.Derivative(name)
			continue
		}
		if ev, ok := evs[name]; ok {
			o.evs[name] = ev
			continue
		}
		if name == "t" {
			continue
		}
		return nil, configErr("invalid constraint %q: unknown identifier %q", src, name)
	}
	return
}

func (o *NonLinearConstraint) NumLagrangeMultipliers() int { return 1 }
func (o *NonLinearConstraint) Description() string         { return "constraint " + o.expr.String() }

// eval evaluates the constraint and its total derivative with respect to the driving variables
func (o *NonLinearConstraint) eval(u []float64, d *ConstraintData) {
	values := d.Values
	for name, ev := range o.evs {
		values[name] = ev.F(d.T)
	}
	values["t"] = d.T
	for i, name := range o.dvs {
		values[name] = u[i] / o.dvsc[i]
	}
	for i, name := range o.tfs {
		values[name] = d.S[i] / o.tfsc[i]
	}
	o.value, _ = o.expr.Eval(values)
	for j := range o.dc {
		o.dc[j] = 0
		if o.dcde[j] != nil {
			v, _ := o.dcde[j].Eval(values)
			o.dc[j] = v / o.dvsc[j]
		}
	}
	for i, dcds := range o.dcds {
		if dcds == nil {
			continue
		}
		v, _ := dcds.Eval(values)
		v /= o.tfsc[i]
		for j := range o.dc {
			o.dc[j] += v * d.Kb[i][j]
		}
	}
}

// factor returns the normalisation factor
func (o *NonLinearConstraint) factor(d *ConstraintData) float64 {
	if o.Policy == DrivingVariablePolicy {
		return d.A
	}
	return 1
}

// SetValues adds a c to row pos, a λ ∂c/∂e to the rows of the driving variables and the
// corresponding terms to the stiffness
func (o *NonLinearConstraint) SetValues(K [][]float64, r []float64, u []float64, pos int, d *ConstraintData) {
	o.eval(u, d)
	a := o.factor(d)
	λ := u[pos]
	r[pos] = a * o.value
	for j, v := range o.dc {
		if v == 0 {
			continue
		}
		r[j] += a * λ * v
		K[pos][j] += a * v
		K[j][pos] += a * v
	}
}

// CheckConvergence checks |c| against eeps or seps depending on the policy
func (o *NonLinearConstraint) CheckConvergence(u []float64, pos int, d *ConstraintData, eeps, seps float64) (ok bool, criterion string, value float64) {
	o.eval(u, d)
	tol := eeps
	if o.Policy == ThermodynamicForcePolicy {
		tol = seps
	}
	value = math.Abs(o.value)
	return value < tol, o.Description(), value
}

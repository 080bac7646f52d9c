// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// AccelerationAlgorithm modifies the estimate of the unknowns computed by each iteration of the
// Newton-Raphson method in order to speed up convergence
type AccelerationAlgorithm interface {
	Name() string                                              // name of the algorithm
	SetParameter(key, value string) error                      // sets a parameter; e.g. "AccelerationTrigger"
	Initialize(n int)                                          // allocates buffers for n unknowns
	PreExecuteTasks()                                          // called at the beginning of each time step
	Execute(u1, du, r []float64, eeps, seps float64, iter int) // updates u1; iter starts at 1
}

// accelerators holds all available acceleration algorithms
var accelerators = map[string]func() AccelerationAlgorithm{
	"secant":     func() AccelerationAlgorithm { return &accelSecant{trigger: 3} },
	"steffensen": func() AccelerationAlgorithm { return &accelAitken{name: "Steffensen", trigger: 2} },
	"ironstuck":  func() AccelerationAlgorithm { return &accelAitken{name: "IronsTuck", trigger: 2, ironsTuck: true} },
	"cast3m":     func() AccelerationAlgorithm { return &accelCast3m{trigger: 3, period: 2} },
}

// AccelerationAlgorithms returns the names of all acceleration algorithms
func AccelerationAlgorithms() (res []string) {
	for name := range accelerators {
		res = append(res, name)
	}
	sort.Strings(res)
	return
}

// NewAccelerationAlgorithm returns a new acceleration algorithm (case insensitive)
func NewAccelerationAlgorithm(name string) (AccelerationAlgorithm, error) {
	allocator, ok := accelerators[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, chk.Err("acceleration algorithm %q is not available; options are %v", name, AccelerationAlgorithms())
	}
	return allocator(), nil
}

// setIntParameter parses a positive integer parameter
func setIntParameter(alg, key, value string, minval int, dst *int) error {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return chk.Err("%s acceleration algorithm: cannot parse parameter %q=%q", alg, key, value)
	}
	if v < minval {
		return chk.Err("%s acceleration algorithm: parameter %q must be greater than or equal to %d; got %d", alg, key, minval, v)
	}
	*dst = v
	return nil
}

func dot(a, b []float64) (res float64) {
	for i := range a {
		res += a[i] * b[i]
	}
	return
}

// secant /////////////////////////////////////////////////////////////////////////////////////////

// accelSecant implements the dynamic relaxation of Aitken
//  ω_k = -ω_{k-1} f_{k-1}·(f_k - f_{k-1}) / |f_k - f_{k-1}|²,  with f = -du
type accelSecant struct {
	trigger int
	ω       float64
	f0, f1  []float64
	df      []float64
	hasf0   bool
}

func (o *accelSecant) Name() string { return "Secant" }

func (o *accelSecant) SetParameter(key, value string) error {
	if key == "AccelerationTrigger" {
		return setIntParameter(o.Name(), key, value, 2, &o.trigger)
	}
	return chk.Err("Secant acceleration algorithm: unknown parameter %q", key)
}

func (o *accelSecant) Initialize(n int) {
	o.f0, o.f1, o.df = make([]float64, n), make([]float64, n), make([]float64, n)
}

func (o *accelSecant) PreExecuteTasks() {
	o.ω, o.hasf0 = 1, false
}

func (o *accelSecant) Execute(u1, du, r []float64, eeps, seps float64, iter int) {
	for i := range du {
		o.f1[i] = -du[i]
	}
	if iter+1 < o.trigger || !o.hasf0 {
		copy(o.f0, o.f1)
		o.hasf0 = true
		return
	}
	for i := range du {
		o.df[i] = o.f1[i] - o.f0[i]
	}
	nrm := dot(o.df, o.df)
	if nrm > 0 {
		ω := -o.ω * dot(o.f0, o.df) / nrm
		if !math.IsNaN(ω) && !math.IsInf(ω, 0) {
			o.ω = ω
		}
	}
	for i := range u1 {
		u1[i] += (1 - o.ω) * du[i]
	}
	copy(o.f0, o.f1)
}

// steffensen and irons-tuck //////////////////////////////////////////////////////////////////////

// accelAitken implements vector versions of the Δ² process of Aitken using two successive
// iterates of the fixed point map x → G(x)
//  Steffensen: x ← x0 - (Δ1·Δ2 / |Δ2|²) Δ1
//  IronsTuck:  x ← x2 - (ΔG·Δ2 / |Δ2|²) ΔG
//  with Δ1 = x1 - x0, ΔG = x2 - x1, Δ2 = x2 - 2 x1 + x0
type accelAitken struct {
	name      string
	trigger   int
	ironsTuck bool
	phase     int
	x0, x1    []float64
	d1, d2    []float64
}

func (o *accelAitken) Name() string { return o.name }

func (o *accelAitken) SetParameter(key, value string) error {
	if key == "AccelerationTrigger" {
		return setIntParameter(o.name, key, value, 1, &o.trigger)
	}
	return chk.Err("%s acceleration algorithm: unknown parameter %q", o.name, key)
}

func (o *accelAitken) Initialize(n int) {
	o.x0, o.x1 = make([]float64, n), make([]float64, n)
	o.d1, o.d2 = make([]float64, n), make([]float64, n)
}

func (o *accelAitken) PreExecuteTasks() {
	o.phase = 0
}

func (o *accelAitken) Execute(u1, du, r []float64, eeps, seps float64, iter int) {
	if iter+1 < o.trigger {
		return
	}
	if o.phase == 0 {
		for i := range u1 {
			o.x0[i] = u1[i] + du[i]
		}
		copy(o.x1, u1)
		o.phase = 1
		return
	}
	o.phase = 0
	for i := range u1 {
		if o.ironsTuck {
			o.d1[i] = u1[i] - o.x1[i]
		} else {
			o.d1[i] = o.x1[i] - o.x0[i]
		}
		o.d2[i] = u1[i] - 2*o.x1[i] + o.x0[i]
	}
	nrm := dot(o.d2, o.d2)
	if nrm == 0 {
		return
	}
	c := dot(o.d1, o.d2) / nrm
	for i := range u1 {
		if o.ironsTuck {
			u1[i] -= c * o.d1[i]
		} else {
			u1[i] = o.x0[i] - c*o.d1[i]
		}
	}
}

// cast3m /////////////////////////////////////////////////////////////////////////////////////////

// accelCast3m combines the three last iterates so that the combination of the corresponding
// fixed point residuals f = -du has minimal norm:
//  u ← g3 + α(g1 - g3) + β(g2 - g3),  min |f3 + α(f1 - f3) + β(f2 - f3)|
type accelCast3m struct {
	trigger int
	period  int
	g, f    [3][]float64 // last iterates (g = G(x)) and residuals
	count   int          // number of stored pairs
	d1, d2  []float64
}

func (o *accelCast3m) Name() string { return "Cast3M" }

func (o *accelCast3m) SetParameter(key, value string) error {
	switch key {
	case "AccelerationTrigger":
		return setIntParameter(o.Name(), key, value, 3, &o.trigger)
	case "AccelerationPeriod":
		return setIntParameter(o.Name(), key, value, 1, &o.period)
	}
	return chk.Err("Cast3M acceleration algorithm: unknown parameter %q", key)
}

func (o *accelCast3m) Initialize(n int) {
	for i := 0; i < 3; i++ {
		o.g[i], o.f[i] = make([]float64, n), make([]float64, n)
	}
	o.d1, o.d2 = make([]float64, n), make([]float64, n)
}

func (o *accelCast3m) PreExecuteTasks() {
	o.count = 0
}

func (o *accelCast3m) Execute(u1, du, r []float64, eeps, seps float64, iter int) {

	// shift history
	o.g[0], o.g[1], o.g[2] = o.g[1], o.g[2], o.g[0]
	o.f[0], o.f[1], o.f[2] = o.f[1], o.f[2], o.f[0]
	copy(o.g[2], u1)
	for i := range du {
		o.f[2][i] = -du[i]
	}
	if o.count < 3 {
		o.count++
	}
	if o.count < 3 || iter < o.trigger || (iter-o.trigger)%o.period != 0 {
		return
	}

	// least squares
	for i := range du {
		o.d1[i] = o.f[0][i] - o.f[2][i]
		o.d2[i] = o.f[1][i] - o.f[2][i]
	}
	a11, a12, a22 := dot(o.d1, o.d1), dot(o.d1, o.d2), dot(o.d2, o.d2)
	b1, b2 := -dot(o.d1, o.f[2]), -dot(o.d2, o.f[2])
	var α, β float64
	det := a11*a22 - a12*a12
	switch {
	case det > 1e-12*a11*a22:
		α = (b1*a22 - b2*a12) / det
		β = (a11*b2 - a12*b1) / det
	case a22 > 0:
		β = b2 / a22
	default:
		return
	}
	for i := range u1 {
		u1[i] = o.g[2][i] + α*(o.g[0][i]-o.g[2][i]) + β*(o.g[1][i]-o.g[2][i])
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines for one-dimensional (radial) elements
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// constants
const MINDET = 1.0e-14 // minimum Jacobian allowed for dxdR

// ShpFunc is the shape functions callback function
type ShpFunc func(S, dSdR []float64, r float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type      string    // name; e.g. "lin2"
	Func      ShpFunc   // shape/derivs function callback function
	Nverts    int       // number of vertices in cell; e.g. "lin4" => 4
	NatCoords []float64 // natural coordinates [nverts]
	Nip       int       // number of integration points of the default rule

	// scratchpad
	S    []float64 // [nverts] shape functions
	DSdR []float64 // [nverts] derivatives of S w.r.t natural coordinate
	Gvec []float64 // [nverts] G == dSdx. derivative of shape function
	J    float64   // Jacobian: dxdR
}

// GetCopy returns a new copy of this shape structure
func (o Shape) GetCopy() *Shape {
	p := o
	p.NatCoords = append([]float64(nil), o.NatCoords...)
	p.init_scratchpad()
	return &p
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: 1) returns nil on errors
//        2) use goroutineId > 0 to get a copy
func Get(geoType string, goroutineId int) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	if goroutineId > 0 {
		return s.GetCopy()
	}
	return s
}

// Types returns the names of all available shapes
func Types() (res []string) {
	for _, name := range []string{"lin2", "lin3", "lin4"} {
		if _, ok := factory[name]; ok {
			res = append(res, name)
		}
	}
	return
}

// CalcAtR calculates S and, if derivs is set, Gvec and J at natural coordinate r
//  Input:
//   x[nverts] -- coordinates of vertices (radii)
func (o *Shape) CalcAtR(x []float64, r float64, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, r, derivs)
	if !derivs {
		return
	}

	// J == dxdR := x * dSdR
	o.J = 0
	for m := 0; m < o.Nverts; m++ {
		o.J += x[m] * o.DSdR[m]
	}
	if math.Abs(o.J) < MINDET {
		return chk.Err("%s: Jacobian is too small: %g", o.Type, o.J)
	}

	// G
	for m := 0; m < o.Nverts; m++ {
		o.Gvec[m] = o.DSdR[m] / o.J
	}
	return
}

// AxisymGetRadius returns the x0 == radius for axisymmetric computations
//  Note: must be called after CalcAtR
func (o *Shape) AxisymGetRadius(x []float64) (radius float64) {
	for m := 0; m < o.Nverts; m++ {
		radius += o.S[m] * x[m]
	}
	return
}

// InvMap computes the natural coordinate r corresponding to the real coordinate y
func (o *Shape) InvMap(y float64, x []float64) (r float64, err error) {
	for it := 0; it < INVMAP_NIT; it++ {
		if err = o.CalcAtR(x, r, true); err != nil {
			return
		}
		e := y - o.AxisymGetRadius(x)
		δr := e / o.J
		r += δr
		if math.Abs(δr) < INVMAP_TOL {
			return
		}
	}
	return r, chk.Err("%s: inverse mapping did not converge after %d iterations", o.Type, INVMAP_NIT)
}

// constants for the inverse mapping
const (
	INVMAP_TOL = 1.0e-10 // tolerance for inverse mapping function
	INVMAP_NIT = 25      // maximum number of iterations for inverse mapping
)

// init_scratchpad initialise scratchpad
func (o *Shape) init_scratchpad() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = make([]float64, o.Nverts)
	o.Gvec = make([]float64, o.Nverts)
}

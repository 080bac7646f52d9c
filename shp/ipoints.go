// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/integrate/quad"
)

// Ipoint holds the natural coordinate and the weight of an integration point
type Ipoint struct {
	R float64 // natural coordinate
	W float64 // weight
}

// GaussLegendre returns the n-point Gauss-Legendre rule over [-1, 1]
func GaussLegendre(n int) []Ipoint {
	if n < 1 {
		chk.Panic("number of integration points must be positive; got %d", n)
	}
	x, w := make([]float64, n), make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	res := make([]Ipoint, n)
	for i := 0; i < n; i++ {
		res[i] = Ipoint{x[i], w[i]}
	}
	return res
}

// GetIps returns the default integration points of a shape; nip = 0 selects the default rule
func GetIps(geoType string, nip int) (ips []Ipoint, err error) {
	s, ok := factory[geoType]
	if !ok {
		return nil, chk.Err("cannot find shape %q", geoType)
	}
	if nip == 0 {
		nip = s.Nip
	}
	return GaussLegendre(nip), nil
}

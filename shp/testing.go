// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	for n := 0; n < shape.Nverts; n++ {

		// compute function
		shape.Func(shape.S, shape.DSdR, shape.NatCoords[n], false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckDSdR checks dSdR derivatives of shape structures
func CheckDSdR(tst *testing.T, shape *Shape, r float64, tol float64, verbose bool) {

	// auxiliary
	h := 1e-5
	Sp := make([]float64, shape.Nverts)
	Sm := make([]float64, shape.Nverts)

	// analytical
	shape.Func(shape.S, shape.DSdR, r, true)

	// numerical
	shape.Func(Sp, nil, r+h, false)
	shape.Func(Sm, nil, r-h, false)
	for n := 0; n < shape.Nverts; n++ {
		dSndR := (Sp[n] - Sm[n]) / (2 * h)
		if verbose {
			io.Pforan("  dS%ddR @ %5.2f = %v (num: %v)\n", n, r, shape.DSdR[n], dSndR)
		}
		if math.Abs(shape.DSdR[n]-dSndR) > tol {
			tst.Errorf("%s: dS%ddR failed with err = %g\n", shape.Type, n, math.Abs(shape.DSdR[n]-dSndR))
			return
		}
	}
}

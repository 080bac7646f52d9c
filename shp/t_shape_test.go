// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_shape01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape01")

	verb := chk.Verbose
	for _, name := range Types() {
		shape := factory[name]
		io.Pfyel("--------------------------------- %-6s---------------------------------\n", name)

		// check S
		CheckShape(tst, shape, 1e-15, verb)

		// check dSdR
		for _, r := range []float64{-0.7, 0, 0.3} {
			CheckDSdR(tst, shape, r, 1e-9, verb)
		}

		// partition of unity
		shape.Func(shape.S, shape.DSdR, 0.123, true)
		var sum, dsum float64
		for m := 0; m < shape.Nverts; m++ {
			sum += shape.S[m]
			dsum += shape.DSdR[m]
		}
		chk.Float64(tst, "ΣS", 1e-15, sum, 1)
		chk.Float64(tst, "ΣdSdR", 1e-14, dsum, 0)
	}
	require.True(tst, Get("qua4", 0) == nil, "unknown shape")
}

func Test_shape02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape02")

	// straight element from 10 to 13 with equally spaced nodes
	shape := Get("lin4", 1)
	x := []float64{10, 13, 11, 12}
	err := shape.CalcAtR(x, 0.5, true)
	if err != nil {
		tst.Errorf("CalcAtR failed: %v\n", err)
		return
	}
	io.Pforan("J = %v\n", shape.J)
	chk.Float64(tst, "J", 1e-14, shape.J, 1.5)
	chk.Float64(tst, "radius", 1e-14, shape.AxisymGetRadius(x), 12.25)

	// inverse mapping
	r, err := shape.InvMap(10.6, x)
	if err != nil {
		tst.Errorf("InvMap failed: %v\n", err)
		return
	}
	chk.Float64(tst, "r", 1e-10, r, -0.6)

	// degenerated element
	err = shape.CalcAtR([]float64{1, 1, 1, 1}, 0, true)
	if err == nil {
		tst.Errorf("CalcAtR should have failed\n")
	}
}

func Test_ipoints01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ipoints01")

	// n points integrate polynomials of degree 2n-1 exactly
	for n := 1; n <= 4; n++ {
		ips := GaussLegendre(n)
		for p := 0; p <= 2*n-1; p++ {
			var sum float64
			for _, ip := range ips {
				sum += ip.W * math.Pow(ip.R, float64(p))
			}
			var exact float64
			if p%2 == 0 {
				exact = 2 / float64(p+1)
			}
			chk.Float64(tst, io.Sf("n=%d ∫x^%d", n, p), 1e-14, sum, exact)
		}
	}
	ips, err := GetIps("lin4", 0)
	if err != nil {
		tst.Errorf("GetIps failed: %v\n", err)
		return
	}
	chk.Int(tst, "nip(lin4)", len(ips), 4)
	chk.Float64(tst, "r0", 1e-14, math.Abs(ips[0].R), math.Sqrt(3.0/7.0+2.0/7.0*math.Sqrt(6.0/5.0)))
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01")

	b, err := New(Builtin, Axisymmetrical, "", "Norton")
	require.NoError(tst, err)

	state0 := NewState(b, false)
	io.Pforan("state0 = %+v\n", state0)
	chk.Array(tst, "E0", 1e-17, state0.E0, []float64{0, 0, 0, 0})
	chk.Array(tst, "Iv0", 1e-17, state0.Iv0, []float64{0, 0, 0, 0, 0})
	chk.Int(tst, "nmprops", len(state0.Mprops1), 4)
	chk.Int(tst, "nesv", len(state0.Esv0), 1)
	chk.Deep2(tst, "R", 1e-17, state0.R, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})

	state0.E1[0] = 1
	state0.S1[1] = 2
	state0.Iv1[4] = 3
	state0.Desv[0] = 10
	state1 := state0.GetCopy()
	chk.Array(tst, "E1", 1e-17, state1.E1, []float64{1, 0, 0, 0})

	state1.Update()
	chk.Array(tst, "E0", 1e-17, state1.E0, []float64{1, 0, 0, 0})
	chk.Array(tst, "S0", 1e-17, state1.S0, []float64{0, 2, 0, 0})
	chk.Float64(tst, "Iv0[4]", 1e-17, state1.Iv0[4], 3)
	chk.Float64(tst, "Esv0[0]", 1e-17, state1.Esv0[0], 10)
	chk.Float64(tst, "Desv[0]", 1e-17, state1.Desv[0], 0)

	state0.Revert()
	chk.Array(tst, "E1", 1e-17, state0.E1, []float64{0, 0, 0, 0})
	chk.Array(tst, "S1", 1e-17, state0.S1, []float64{0, 0, 0, 0})
	chk.Float64(tst, "Iv1[4]", 1e-17, state0.Iv1[4], 0)
}

func Test_state02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state02")

	b, err := New(Builtin, Tridimensional, "", "Elasticity")
	require.NoError(tst, err)

	// single slot for behaviours without internal state variables
	s := NewState(b, false)
	chk.Int(tst, "len(Iv0)", len(s.Iv0), 1)
	s = NewState(b, true)
	chk.Int(tst, "len(Iv0) (strict)", len(s.Iv0), 0)

	// rotation
	c, d := math.Cos(0.3), math.Sin(0.3)
	require.NoError(tst, s.SetRotation([][]float64{{c, -d, 0}, {d, c, 0}, {0, 0, 1}}))
	chk.Float64(tst, "R[0][1]", 1e-17, s.R[0][1], -d)
	require.Error(tst, s.SetRotation([][]float64{{1, 1, 0}, {0, 1, 0}, {0, 0, 1}}))
	require.Error(tst, s.SetRotation([][]float64{{1, 0}, {0, 1}}))

	// re-allocation with other sizes
	n, err := New(Builtin, Tridimensional, "", "Norton")
	require.NoError(tst, err)
	require.Panics(tst, func() { s.Allocate(n, true) })
	require.NotPanics(tst, func() { s.Allocate(b, true) })
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func Test_expr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr01")

	e, err := ParseExpression("2*x^2 + sin(y) - 3")
	require.NoError(tst, err)
	chk.Strings(tst, "vars", e.Variables(), []string{"x", "y"})
	vals := map[string]float64{"x": 1.5, "y": 0.3}
	v, err := e.Eval(vals)
	require.NoError(tst, err)
	chk.Float64(tst, "e", 1e-15, v, 4.5+math.Sin(0.3)-3)

	// derivatives
	dx, err := e.Derivative("x").Eval(vals)
	require.NoError(tst, err)
	chk.Float64(tst, "de/dx", 1e-15, dx, 6)
	dy, err := e.Derivative("y").Eval(vals)
	require.NoError(tst, err)
	chk.Float64(tst, "de/dy", 1e-15, dy, math.Cos(0.3))
	io.Pforan("de/dx = %v\n", e.Derivative("x"))
	require.True(tst, e.Derivative("z").IsConstant(), "dz is constant")

	// precedence and associativity
	for src, res := range map[string]float64{
		"2^3^2":        512,
		"-2^2":         -4,
		"1-2-3":        -4,
		"8/4/2":        1,
		"2*(3+4)":      14,
		"1.5e2 + 1e-1": 150.1,
		"max(1, 3)":    3,
		"min(1, 3)":    1,
		"pow(2, 10)":   1024,
		"abs(-2)":      2,
		"sqrt(16)":     4,
		"exp(log(3))":  3,
	} {
		e, err := ParseExpression(src)
		require.NoError(tst, err, src)
		require.True(tst, e.IsConstant(), src+" is constant")
		v, err := e.Eval(nil)
		require.NoError(tst, err)
		chk.Float64(tst, src, 1e-14, v, res)
	}

	// undefined variable
	_, err = e.Eval(map[string]float64{"x": 1})
	require.Error(tst, err)
}

func Test_expr02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr02")

	// numerical derivatives of all functions
	src := "tan(a)*cos(b) + exp(a*b) - log(b)/sqrt(a) + abs(a-b) + pow(a, b) + max(a, 2*b) - min(a^2, b)"
	e, err := ParseExpression(src)
	require.NoError(tst, err)
	vals := map[string]float64{"a": 0.7, "b": 1.3}
	h := 1e-6
	for _, name := range []string{"a", "b"} {
		ana, err := e.Derivative(name).Eval(vals)
		require.NoError(tst, err)
		x := vals[name]
		vals[name] = x + h
		fp, _ := e.Eval(vals)
		vals[name] = x - h
		fm, _ := e.Eval(vals)
		vals[name] = x
		chk.AnaNum(tst, "de/d"+name, 1e-8, ana, (fp-fm)/(2*h), chk.Verbose)
	}
}

func Test_expr03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr03")

	for _, src := range []string{"", "2*(x", "x +", "foo(1)", "1 $ 2", "sin(1, 2)", "pow(2)", "(1))", "2 3"} {
		_, err := ParseExpression(src)
		io.Pforan("%v\n", err)
		require.Error(tst, err, src)
	}
}

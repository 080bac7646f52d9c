// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"math"
	"testing"

	"github.com/cpmech/gomtest/abi/cstubs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/stretchr/testify/require"
)

// elastic laws of the reference library
var elasticCases = []struct {
	conv Convention
	fcn  string
	hyps []Hypothesis
}{
	{Umat, "ElasticityUmat", []Hypothesis{Tridimensional, Axisymmetrical, PlaneStrain, GeneralisedPlaneStrain}},
	{Castem, "ElasticityCastem", []Hypothesis{Tridimensional, Axisymmetrical, PlaneStrain, PlaneStress, GeneralisedPlaneStrain, AxisymmetricalGeneralisedPlaneStrain}},
	{Aster, "ElasticityAster", []Hypothesis{Tridimensional, Axisymmetrical, PlaneStress, PlaneStrain}},
	{Cyrano, "ElasticityCyrano", []Hypothesis{AxisymmetricalGeneralisedPlaneStrain, AxisymmetricalGeneralisedPlaneStress}},
	{Builtin, "Elasticity", Hypotheses},
}

var elasticProps = map[string]float64{"YoungModulus": 200, "PoissonRatio": 0.3, "PlateWidth": 1}

func Test_conv01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("conv01")

	strain := []float64{1e-3, -2e-3, 3e-3, 4e-3, -5e-3, 6e-3}
	for _, c := range elasticCases {
		for _, h := range c.hyps {
			io.Pforan("%v %v\n", c.conv, h)
			b, err := New(c.conv, h, cstubs.Path, c.fcn)
			require.NoError(tst, err)
			s := NewState(b, false)
			wk := NewWorkSpace(b)
			setProps(b, s, elasticProps)
			n := h.StensorSize()
			copy(s.E1, strain[:n])

			// expected
			Ke := utl.Alloc(n, n)
			require.NoError(tst, ElasticStiffness(Ke, h, Isotropic, []string{"YoungModulus", "PoissonRatio"}, []float64{200, 0.3}, nil))
			Se := make([]float64, n)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					Se[i] += Ke[i][j] * strain[j]
				}
			}

			// prediction operator
			ok, _ := b.ComputePredictionOperator(wk, s, Elastic)
			require.True(tst, ok)
			chk.Deep2(tst, io.Sf("%v %v: Kt", c.conv, h), 1e-12, wk.Kt, Ke)

			// integration
			ok, rdt := b.Integrate(s, wk, 1, ConsistentTangent)
			require.True(tst, ok)
			chk.Float64(tst, "rdt", 1e-17, rdt, 1)
			chk.Array(tst, io.Sf("%v %v: S1", c.conv, h), 1e-12, s.S1, Se)
			chk.Deep2(tst, io.Sf("%v %v: K", c.conv, h), 1e-12, wk.K, Ke)

			// elastic operator computed from material properties
			ok, _ = b.Integrate(s, wk, 1, ElasticFromMaterialProperties)
			require.True(tst, ok)
			chk.Deep2(tst, io.Sf("%v %v: K (mps)", c.conv, h), 1e-12, wk.K, Ke)
		}
	}
}

func Test_conv02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("conv02")

	// internal state variables written by the behaviour (engineering shear strains)
	b, err := New(Castem, Tridimensional, cstubs.Path, "ElasticityCastem")
	require.NoError(tst, err)
	chk.Strings(tst, "isvs", b.InternalStateVariablesNames(), []string{
		"ElasticStrainXX", "ElasticStrainYY", "ElasticStrainZZ", "ElasticStrainXY", "ElasticStrainXZ", "ElasticStrainYZ"})
	s := NewState(b, false)
	wk := NewWorkSpace(b)
	setProps(b, s, elasticProps)
	copy(s.E1, []float64{1, 2, 3, 4, 5, 6})
	ok, _ := b.Integrate(s, wk, 1, NoStiffness)
	require.True(tst, ok)
	r := math.Sqrt2
	chk.Array(tst, "Iv1", 1e-15, s.Iv1, []float64{1, 2, 3, 4 * r, 5 * r, 6 * r})
	chk.Array(tst, "Iv0", 1e-17, s.Iv0, []float64{0, 0, 0, 0, 0, 0})

	// missing material properties
	b, err = New(Umat, Tridimensional, cstubs.Path, "FailingUmat")
	require.NoError(tst, err)
	s = NewState(b, false)
	wk = NewWorkSpace(b)
	ok, rdt := b.Integrate(s, wk, 1, ConsistentTangent)
	require.False(tst, ok, "FailingUmat: ok")
	chk.Float64(tst, "FailingUmat: rdt", 1e-17, rdt, 0.25)

	b, err = New(Castem, Tridimensional, cstubs.Path, "FailingCastem")
	require.NoError(tst, err)
	s = NewState(b, false)
	wk = NewWorkSpace(b)
	ok, rdt = b.Integrate(s, wk, 1, ConsistentTangent)
	require.False(tst, ok, "FailingCastem: ok")
	chk.Float64(tst, "FailingCastem: rdt", 1e-17, rdt, 0.25)
	ok, _ = b.ComputePredictionOperator(wk, s, Elastic)
	require.False(tst, ok, "FailingCastem: prediction ok")
}

func Test_conv03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("conv03")

	kn, kt := 100.0, 30.0
	props := map[string]float64{"NormalStiffness": kn, "TangentialStiffness": kt}
	for _, h := range []Hypothesis{Tridimensional, PlaneStrain, Axisymmetrical} {
		b, err := New(CastemCohesiveZone, h, cstubs.Path, "ElasticCZMCastem")
		require.NoError(tst, err)
		s := NewState(b, false)
		wk := NewWorkSpace(b)
		setProps(b, s, props)
		n := czmSize(h)
		u := []float64{1, 2, 3}[:n]
		copy(s.E1, u)
		ok, _ := b.Integrate(s, wk, 1, ConsistentTangent)
		require.True(tst, ok)
		texp := make([]float64, n)
		Kexp := utl.Alloc(n, n)
		for i := 0; i < n; i++ {
			Kexp[i][i] = kt
			texp[i] = kt * u[i]
		}
		Kexp[0][0], texp[0] = kn, kn*u[0]
		chk.Array(tst, io.Sf("%v: T", h), 1e-14, s.S1, texp)
		chk.Deep2(tst, io.Sf("%v: K", h), 1e-14, wk.K, Kexp)
		ok, _ = b.ComputePredictionOperator(wk, s, Elastic)
		require.True(tst, ok)
		chk.Deep2(tst, io.Sf("%v: Kt", h), 1e-14, wk.Kt, Kexp)
	}
}

func Test_conv04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("conv04")

	b, err := New(CastemFiniteStrain, Tridimensional, cstubs.Path, "SaintVenantKirchhoffCastem")
	require.NoError(tst, err)
	s := NewState(b, false)
	wk := NewWorkSpace(b)
	setProps(b, s, elasticProps)
	chk.Array(tst, "F0", 1e-17, s.E0, []float64{1, 1, 1, 0, 0, 0, 0, 0, 0})

	// no deformation: no stress and the elastic stiffness
	copy(s.E1, s.E0)
	ok, _ := b.Integrate(s, wk, 1, ConsistentTangent)
	require.True(tst, ok)
	chk.Array(tst, "S1 (F=I)", 1e-14, s.S1, []float64{0, 0, 0, 0, 0, 0})

	// deformed configuration
	F := []float64{1.02, 0.97, 1.01, 0.03, -0.02, 0.01, 0.04, -0.03, 0.02}
	copy(s.E1, F)
	ok, _ = b.Integrate(s, wk, 1, ConsistentTangent)
	require.True(tst, ok)
	K := utl.Alloc(6, 9)
	copyMatrix(K, wk.K)

	// numerical derivatives
	h := 1e-6
	sp, sm := make([]float64, 6), make([]float64, 6)
	for j := 0; j < 9; j++ {
		copy(s.E1, F)
		s.E1[j] += h
		ok, _ = b.Integrate(s, wk, 1, NoStiffness)
		require.True(tst, ok)
		copy(sp, s.S1)
		copy(s.E1, F)
		s.E1[j] -= h
		ok, _ = b.Integrate(s, wk, 1, NoStiffness)
		require.True(tst, ok)
		copy(sm, s.S1)
		for i := 0; i < 6; i++ {
			dnum := (sp[i] - sm[i]) / (2 * h)
			chk.AnaNum(tst, io.Sf("dσ%d/dF%d", i, j), 1e-6, K[i][j], dnum, chk.Verbose)
		}
	}

	// inverted element
	copy(s.E1, []float64{-1, 1, 1, 0, 0, 0, 0, 0, 0})
	ok, _ = b.Integrate(s, wk, 1, NoStiffness)
	require.False(tst, ok, "J < 0: ok")
}

func Test_conv05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("conv05")

	// rotated isotropic law: unchanged operator
	b, err := New(Castem, Tridimensional, cstubs.Path, "ElasticityCastem")
	require.NoError(tst, err)
	s := NewState(b, false)
	wk := NewWorkSpace(b)
	setProps(b, s, elasticProps)
	c, d := math.Cos(0.7), math.Sin(0.7)
	require.NoError(tst, s.SetRotation([][]float64{{c, d, 0}, {-d, c, 0}, {0, 0, 1}}))
	ok, _ := b.ComputePredictionOperator(wk, s, ElasticFromMaterialProperties)
	require.True(tst, ok)
	Ke := utl.Alloc(6, 6)
	IsotropicStiffness(Ke, 200, 0.3)
	chk.Deep2(tst, "Kt", 1e-12, wk.Kt, Ke)
	ok, _ = b.Integrate(s, wk, 1, NoStiffness)
	require.True(tst, ok)
	chk.Array(tst, "DROT", 1e-17, wk.Rot, []float64{c, -d, 0, d, c, 0, 0, 0, 1})
}

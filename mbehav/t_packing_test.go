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
	"pgregory.net/rapid"
)

// packers returns the packers of all conventions and hypotheses of the reference library
func packers(tst *testing.T) (res map[string]*packer) {
	res = make(map[string]*packer)
	add := func(conv Convention, fcn string, hyps ...Hypothesis) {
		for _, h := range hyps {
			b, err := New(conv, h, cstubs.Path, fcn)
			require.NoError(tst, err)
			p, ok := b.(interface{ packing() *packer })
			require.True(tst, ok)
			res[io.Sf("%v/%v", conv, h)] = p.packing()
		}
	}
	add(Umat, "ElasticityUmat", Tridimensional, Axisymmetrical, PlaneStrain, GeneralisedPlaneStrain)
	add(Castem, "ElasticityCastem", Tridimensional, Axisymmetrical, PlaneStrain, PlaneStress, GeneralisedPlaneStrain, AxisymmetricalGeneralisedPlaneStrain)
	add(CastemFiniteStrain, "SaintVenantKirchhoffCastem", Tridimensional, Axisymmetrical, PlaneStrain)
	add(CastemCohesiveZone, "ElasticCZMCastem", Tridimensional, PlaneStrain)
	add(Aster, "ElasticityAster", Tridimensional, Axisymmetrical, PlaneStress, PlaneStrain)
	add(Cyrano, "ElasticityCyrano", AxisymmetricalGeneralisedPlaneStrain, AxisymmetricalGeneralisedPlaneStress)
	return
}

func dot(a, b []float64) (res float64) {
	for i := range a {
		res += a[i] * b[i]
	}
	return
}

func Test_packing01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("packing01")

	for key, pk := range packers(tst) {
		io.Pforan("%s: perm=%v es=%v ss=%v\n", key, pk.perm, pk.es, pk.ss)
		n := pk.n
		rapid.Check(tst, func(t *rapid.T) {
			ε := rapid.SliceOfN(rapid.Float64Range(-1e3, 1e3), n, n).Draw(t, "ε")
			σ := rapid.SliceOfN(rapid.Float64Range(-1e3, 1e3), n, n).Draw(t, "σ")
			D := rapid.SliceOfN(rapid.Float64Range(-1e3, 1e3), n*n, n*n).Draw(t, "D")
			ec, sc, eb, sb := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)

			// round trips
			pk.strainToConv(ec, ε)
			pk.strainFromConv(eb, ec)
			pk.stressToConv(sc, σ)
			pk.stressFromConv(sb, sc)
			for i := 0; i < n; i++ {
				if math.Abs(eb[i]-ε[i]) > 1e-12 || math.Abs(sb[i]-σ[i]) > 1e-12 {
					t.Fatalf("%s: round trip failed at %d", key, i)
				}
			}
			K := utl.Alloc(n, n)
			Db := make([]float64, n*n)
			pk.tangentFromConv(K, D)
			pk.tangentToConv(Db, K)
			for i := range D {
				if math.Abs(Db[i]-D[i]) > 1e-10 {
					t.Fatalf("%s: tangent round trip failed at %d", key, i)
				}
			}

			// work conjugacy
			if math.Abs(dot(sc, ec)-dot(σ, ε)) > 1e-6*(1+math.Abs(dot(σ, ε))) {
				t.Fatalf("%s: σ:ε is not preserved", key)
			}

			// consistency of the tangent: convert(K ε) = D convert(ε)
			kε := make([]float64, n)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					kε[i] += K[i][j] * ε[j]
				}
			}
			pk.stressToConv(sc, kε)
			for i := 0; i < n; i++ {
				var v float64
				for j := 0; j < n; j++ {
					v += D[i+j*n] * ec[j]
				}
				if math.Abs(v-sc[i]) > 1e-6*(1+math.Abs(v)) {
					t.Fatalf("%s: inconsistent tangent at %d: %g != %g", key, i, v, sc[i])
				}
			}
		})
	}
}

func Test_packing02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("packing02")

	pk := newEngineeringPacker(6)
	r := math.Sqrt2
	ec := make([]float64, 6)
	pk.strainToConv(ec, []float64{1, 2, 3, r, r, r})
	chk.Array(tst, "γ", 1e-15, ec, []float64{1, 2, 3, 2, 2, 2})
	sc := make([]float64, 6)
	pk.stressToConv(sc, []float64{1, 2, 3, r, r, r})
	chk.Array(tst, "τ", 1e-15, sc, []float64{1, 2, 3, 1, 1, 1})

	// cohesive zone: normal component last
	pk = newPermutationPacker([]int{1, 2, 0})
	pk.strainToConv(ec, []float64{10, 20, 30})
	chk.Array(tst, "u", 1e-17, ec[:3], []float64{20, 30, 10})

	// rotation: column-major
	rot := make([]float64, 9)
	rotationToConv(rot, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	chk.Array(tst, "rot", 1e-17, rot, []float64{1, 4, 7, 2, 5, 8, 3, 6, 9})
}

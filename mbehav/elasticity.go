// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// stensor component => (i, j) indices
var stensorIJ = [6][2]int{{0, 0}, {1, 1}, {2, 2}, {0, 1}, {0, 2}, {1, 2}}

// tensor component => (i, j) indices
var tensorIJ = [9][2]int{{0, 0}, {1, 1}, {2, 2}, {0, 1}, {1, 0}, {0, 2}, {2, 0}, {1, 2}, {2, 1}}

// findProp returns the value of material property name
func findProp(names []string, props []float64, name string) (float64, error) {
	idx := utl.StrIndexSmall(names, name)
	if idx < 0 || idx >= len(props) {
		return 0, chk.Err("material property %q is not available", name)
	}
	return props[idx], nil
}

// outOfPlaneIndex returns the index of the stress free component for plane stress hypotheses
func outOfPlaneIndex(h Hypothesis) int {
	switch h {
	case PlaneStress:
		return 2
	case AxisymmetricalGeneralisedPlaneStress:
		return 1
	}
	return -1
}

// IsotropicStiffness computes the 3D elastic stiffness in Mandel notation
func IsotropicStiffness(D [][]float64, E, ν float64) {
	λ := E * ν / ((1 + ν) * (1 - 2*ν))
	μ := E / (2 * (1 + ν))
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			D[i][j] = 0
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[i][j] = λ
		}
		D[i][i] += 2 * μ
		D[i+3][i+3] = 2 * μ
	}
}

// OrthotropicStiffness computes the 3D elastic stiffness in Mandel notation (xy, xz, yz shear order)
func OrthotropicStiffness(D [][]float64, E1, E2, E3, ν12, ν23, ν13, G12, G23, G13 float64) error {
	S := mat.NewDense(3, 3, []float64{
		1 / E1, -ν12 / E1, -ν13 / E1,
		-ν12 / E1, 1 / E2, -ν23 / E2,
		-ν13 / E1, -ν23 / E2, 1 / E3,
	})
	var C mat.Dense
	if err := C.Inverse(S); err != nil {
		return chk.Err("orthotropic compliance is singular: %v", err)
	}
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			D[i][j] = 0
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[i][j] = C.At(i, j)
		}
	}
	D[3][3], D[4][4], D[5][5] = 2*G12, 2*G13, 2*G23
	return nil
}

// StensorRotation computes the matrix Q such that Mandel vectors rotate as v' = Q v where the
// second order tensors rotate as A' = R A Rᵀ
func StensorRotation(Q [][]float64, R [][]float64) {
	c := [6]float64{1, 1, 1, math.Sqrt2, math.Sqrt2, math.Sqrt2}
	for I := 0; I < 6; I++ {
		i, j := stensorIJ[I][0], stensorIJ[I][1]
		for J := 0; J < 6; J++ {
			k, l := stensorIJ[J][0], stensorIJ[J][1]
			v := R[i][k] * R[j][l]
			if k != l {
				v += R[i][l] * R[j][k]
			}
			Q[I][J] = c[I] / c[J] * v
		}
	}
}

// restrict restricts a 3D Mandel stiffness to hypothesis h, condensing the out-of-plane stress
// for plane stress hypotheses
func restrict(K [][]float64, D [][]float64, h Hypothesis) {
	n := h.StensorSize()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			K[i][j] = D[i][j]
		}
	}
	z := outOfPlaneIndex(h)
	if z < 0 {
		return
	}
	if D[z][z] == 0 {
		return
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == z || j == z {
				continue
			}
			K[i][j] = D[i][j] - D[i][z]*D[z][j]/D[z][z]
		}
	}
	for i := 0; i < n; i++ {
		K[i][z], K[z][i] = 0, 0
	}
}

// ElasticStiffness computes the elastic stiffness (Mandel notation) from material properties.
// The stiffness is expressed in the global frame using the rotation matrix R (material frame
// quantities are v_m = R v_g).
func ElasticStiffness(K [][]float64, h Hypothesis, sym SymmetryType, names []string, props []float64, R [][]float64) (err error) {
	D := utl.Alloc(6, 6)
	if sym == Isotropic {
		var E, ν float64
		if E, err = findProp(names, props, "YoungModulus"); err != nil {
			return
		}
		if ν, err = findProp(names, props, "PoissonRatio"); err != nil {
			return
		}
		IsotropicStiffness(D, E, ν)
		restrict(K, D, h)
		return
	}
	if h == PlaneStress {
		if err = planeStressOrthotropicStiffness(D, names, props); err != nil {
			return
		}
		rotate(D, R)
		restrict(K, D, h)
		return
	}
	var v [9]float64
	keys := []string{"YoungModulus1", "YoungModulus2", "YoungModulus3", "PoissonRatio12", "PoissonRatio23", "PoissonRatio13", "ShearModulus12", "ShearModulus23", "ShearModulus13"}
	nreq := 9
	if h.SpaceDimension() == 2 {
		nreq = 7
	} else if h.SpaceDimension() == 1 {
		nreq = 6
	}
	for i, key := range keys {
		val, e := findProp(names, props, key)
		if e != nil {
			if i < nreq {
				return e
			}
			continue
		}
		v[i] = val
	}
	if err = OrthotropicStiffness(D, v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7], v[8]); err != nil {
		return
	}
	rotate(D, R)
	restrict(K, D, h)
	return
}

// planeStressOrthotropicStiffness computes the reduced in-plane stiffness of an orthotropic
// material; the out-of-plane row and column are zero
func planeStressOrthotropicStiffness(D [][]float64, names []string, props []float64) error {
	var v [4]float64
	for i, key := range []string{"YoungModulus1", "YoungModulus2", "PoissonRatio12", "ShearModulus12"} {
		val, err := findProp(names, props, key)
		if err != nil {
			return err
		}
		v[i] = val
	}
	E1, E2, ν12, G12 := v[0], v[1], v[2], v[3]
	ν21 := ν12 * E2 / E1
	d := 1 - ν12*ν21
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			D[i][j] = 0
		}
	}
	D[0][0], D[1][1] = E1/d, E2/d
	D[0][1], D[1][0] = ν12*E2/d, ν12*E2/d
	D[3][3] = 2 * G12
	return nil
}

// rotate expresses the material frame stiffness D in the global frame: D := Qᵀ D Q
func rotate(D [][]float64, R [][]float64) {
	if R == nil || isIdentity(R) {
		return
	}
	Q := utl.Alloc(6, 6)
	StensorRotation(Q, R)
	G := utl.Alloc(6, 6)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			for k := 0; k < 6; k++ {
				for l := 0; l < 6; l++ {
					G[i][j] += Q[k][i] * D[k][l] * Q[l][j]
				}
			}
		}
	}
	for i := 0; i < 6; i++ {
		copy(D[i], G[i])
	}
}

// CohesiveZoneStiffness computes the elastic operator of a cohesive zone (normal component first)
func CohesiveZoneStiffness(K [][]float64, h Hypothesis, names []string, props []float64) (err error) {
	var kn, kt float64
	if kn, err = findProp(names, props, "NormalStiffness"); err != nil {
		return
	}
	if kt, err = findProp(names, props, "TangentialStiffness"); err != nil {
		return
	}
	n := czmSize(h)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			K[i][j] = 0
		}
		K[i][i] = kt
	}
	K[0][0] = kn
	return
}

// isIdentity tells whether R is the identity matrix
func isIdentity(R [][]float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := R[i][j]
			if i == j {
				v -= 1
			}
			if v != 0 {
				return false
			}
		}
	}
	return true
}

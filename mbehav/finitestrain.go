// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// TensorToMatrix converts an unsymmetric tensor (canonical ordering) into a 3x3 matrix
func TensorToMatrix(F []float64) *mat.Dense {
	m := mat.NewDense(3, 3, nil)
	for k, v := range F {
		m.Set(tensorIJ[k][0], tensorIJ[k][1], v)
	}
	return m
}

// StensorToMatrix converts a symmetric tensor in Mandel notation into a 3x3 matrix
func StensorToMatrix(s []float64) *mat.Dense {
	m := mat.NewDense(3, 3, nil)
	for k, v := range s {
		i, j := stensorIJ[k][0], stensorIJ[k][1]
		if i == j {
			m.Set(i, i, v)
			continue
		}
		m.Set(i, j, v/math.Sqrt2)
		m.Set(j, i, v/math.Sqrt2)
	}
	return m
}

// MatrixToStensor stores the symmetric part of m in Mandel notation (n components)
func MatrixToStensor(s []float64, m mat.Matrix, n int) {
	for k := 0; k < n; k++ {
		i, j := stensorIJ[k][0], stensorIJ[k][1]
		if i == j {
			s[k] = m.At(i, i)
			continue
		}
		s[k] = (m.At(i, j) + m.At(j, i)) / math.Sqrt2
	}
}

// TensorToColMajor stores an unsymmetric tensor (canonical ordering) as a column-major 3x3 array
func TensorToColMajor(dst, F []float64) {
	for i := 0; i < 9; i++ {
		dst[i] = 0
	}
	for k, v := range F {
		dst[tensorIJ[k][0]+3*tensorIJ[k][1]] = v
	}
}

// TruesdellToDsigmaDF converts the spatial modulus C ([n][n], Mandel notation) associated with
// the Truesdell rate of the Cauchy stress into the derivative K ([n][m]) of the Cauchy stress σ
// with respect to the deformation gradient F:
//   dσ = dL σ + σ dLᵀ - tr(dL) σ + C : sym(dL)  with  dL = dF F⁻¹
func TruesdellToDsigmaDF(K, C [][]float64, σ, F []float64, h Hypothesis) error {
	n, m := h.StensorSize(), h.TensorSize()
	if len(σ) != n || len(F) != m {
		chk.Panic("finite strain conversion: sizes mismatch: len(σ)=%d (%d), len(F)=%d (%d)", len(σ), n, len(F), m)
	}
	Fm := TensorToMatrix(F)
	var Fi mat.Dense
	if err := Fi.Inverse(Fm); err != nil {
		return chk.Err("deformation gradient is singular: %v", err)
	}
	S := StensorToMatrix(σ)
	dF := mat.NewDense(3, 3, nil)
	var dL, a, b mat.Dense
	dD := make([]float64, n)
	dσ := make([]float64, n)
	for col := 0; col < m; col++ {
		dF.Zero()
		dF.Set(tensorIJ[col][0], tensorIJ[col][1], 1)
		dL.Mul(dF, &Fi)
		tr := dL.At(0, 0) + dL.At(1, 1) + dL.At(2, 2)
		a.Mul(&dL, S)
		b.Mul(S, dL.T())
		a.Add(&a, &b)
		b.Scale(tr, S)
		a.Sub(&a, &b)
		MatrixToStensor(dσ, &a, n)
		MatrixToStensor(dD, &dL, n)
		for i := 0; i < n; i++ {
			K[i][col] = dσ[i]
			for j := 0; j < n; j++ {
				K[i][col] += C[i][j] * dD[j]
			}
		}
	}
	return nil
}

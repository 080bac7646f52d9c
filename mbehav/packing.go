// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import "math"

// packer converts vectors and tangent operators between the canonical layout (Mandel notation,
// canonical component order) and the layout of a calling convention
type packer struct {
	n    int       // number of components
	perm []int     // perm[i] is the canonical index of the convention component i
	es   []float64 // canonical => convention scale of driving variables, per convention component
	ss   []float64 // canonical => convention scale of thermodynamic forces, per convention component
}

// newPacker returns the identity packer
func newPacker(n int) *packer {
	o := &packer{n: n, perm: make([]int, n), es: make([]float64, n), ss: make([]float64, n)}
	for i := 0; i < n; i++ {
		o.perm[i] = i
		o.es[i] = 1
		o.ss[i] = 1
	}
	return o
}

// newEngineeringPacker returns a packer for conventions using engineering shear strains (γ = 2 ε)
// and plain shear stresses. The first three components are diagonal.
func newEngineeringPacker(n int) *packer {
	o := newPacker(n)
	for i := 3; i < n; i++ {
		o.es[i] = math.Sqrt2
		o.ss[i] = 1.0 / math.Sqrt2
	}
	return o
}

// newPermutationPacker returns a packer that only reorders components
func newPermutationPacker(perm []int) *packer {
	o := newPacker(len(perm))
	copy(o.perm, perm)
	return o
}

// strainToConv converts driving variables
func (o *packer) strainToConv(dst, src []float64) {
	for i := 0; i < o.n; i++ {
		dst[i] = src[o.perm[i]] * o.es[i]
	}
}

// strainFromConv converts driving variables back
func (o *packer) strainFromConv(dst, src []float64) {
	for i := 0; i < o.n; i++ {
		dst[o.perm[i]] = src[i] / o.es[i]
	}
}

// stressToConv converts thermodynamic forces
func (o *packer) stressToConv(dst, src []float64) {
	for i := 0; i < o.n; i++ {
		dst[i] = src[o.perm[i]] * o.ss[i]
	}
}

// stressFromConv converts thermodynamic forces back
func (o *packer) stressFromConv(dst, src []float64) {
	for i := 0; i < o.n; i++ {
		dst[o.perm[i]] = src[i] / o.ss[i]
	}
}

// tangentFromConv converts a column-major tangent operator D into K
func (o *packer) tangentFromConv(K [][]float64, D []float64) {
	for i := 0; i < o.n; i++ {
		for j := 0; j < o.n; j++ {
			K[o.perm[i]][o.perm[j]] = D[i+j*o.n] / o.ss[i] * o.es[j]
		}
	}
}

// tangentToConv converts K into a column-major tangent operator D
func (o *packer) tangentToConv(D []float64, K [][]float64) {
	for i := 0; i < o.n; i++ {
		for j := 0; j < o.n; j++ {
			D[i+j*o.n] = K[o.perm[i]][o.perm[j]] * o.ss[i] / o.es[j]
		}
	}
}

// rotationToConv stores R column-major
func rotationToConv(dst []float64, R [][]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dst[i+3*j] = R[i][j]
		}
	}
}

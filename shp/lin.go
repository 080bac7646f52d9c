// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// register shapes
func init() {
	add := func(name string, natcoords []float64) {
		o := &Shape{
			Type:      name,
			Func:      lagrange(natcoords),
			Nverts:    len(natcoords),
			NatCoords: natcoords,
			Nip:       len(natcoords),
		}
		o.init_scratchpad()
		factory[name] = o
	}

	//  -1     +1
	//   0-----1
	add("lin2", []float64{-1, 1})

	//  -1      0     +1
	//   0------2------1
	add("lin3", []float64{-1, 1, 0})

	//  -1    -1/3   +1/3    +1
	//   0-----2------3------1
	add("lin4", []float64{-1, 1, -1.0 / 3.0, 1.0 / 3.0})
}

// lagrange returns the Lagrange polynomials over the given natural coordinates
func lagrange(ξ []float64) ShpFunc {
	n := len(ξ)
	return func(S, dSdR []float64, r float64, derivs bool) {
		for i := 0; i < n; i++ {
			S[i] = 1
			for j := 0; j < n; j++ {
				if j != i {
					S[i] *= (r - ξ[j]) / (ξ[i] - ξ[j])
				}
			}
		}
		if !derivs {
			return
		}
		for i := 0; i < n; i++ {
			dSdR[i] = 0
			for k := 0; k < n; k++ {
				if k == i {
					continue
				}
				p := 1 / (ξ[i] - ξ[k])
				for j := 0; j < n; j++ {
					if j != i && j != k {
						p *= (r - ξ[j]) / (ξ[i] - ξ[j])
					}
				}
				dSdR[i] += p
			}
		}
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gomtest/mbehav"
	"github.com/cpmech/gomtest/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// PipeElement implements a radial element of a pipe (axisymmetrical generalised plane strain).
// Unknowns are the nodal radial displacements and the axial strain shared by all elements.
//  strains: εrr = Σ dN/dr u,  εzz = ezz,  εθθ = Σ N u / r
type PipeElement struct {

	// basic data
	Cell   int                 // index of element
	B      mbehav.Behaviour    // behaviour
	Shp    *shp.Shape          // shape structure
	X      []float64           // [nverts] nodal radii
	Umap   []int               // [nverts] equation numbers of nodal displacements
	Ips    []shp.Ipoint        // integration points
	States []*mbehav.State     // [nip] states at integration points
	Wks    []*mbehav.WorkSpace // [nip] workspaces

	// geometry at integration points
	S     [][]float64 // [nip][nverts] shape functions
	G     [][]float64 // [nip][nverts] derivatives of shape functions w.r.t r
	Coef  []float64   // [nip] 2π r |J| w
	Radii []float64   // [nip] radial positions

	// scratchpad
	bmat [][]float64 // [3][nverts+1] B matrix
	kb   [][]float64 // [3][nverts+1] K B
	eqs  []int       // [nverts+1] equation numbers including ezz
}

// NewPipeElement returns a new element
//  geoType -- "lin2", "lin3" or "lin4" (cubic)
//  X       -- nodal radii (corners first)
func NewPipeElement(cell int, b mbehav.Behaviour, geoType string, X []float64, umap []int, strictIvs bool) (o *PipeElement, err error) {
	if b.Hypothesis() != mbehav.AxisymmetricalGeneralisedPlaneStrain || b.Kind() != mbehav.SmallStrain {
		return nil, chk.Err("pipe elements require small strain behaviours and the AxisymmetricalGeneralisedPlaneStrain hypothesis")
	}
	o = &PipeElement{Cell: cell, B: b, X: append([]float64(nil), X...), Umap: append([]int(nil), umap...)}
	o.Shp = shp.Get(geoType, cell+1)
	if o.Shp == nil {
		return nil, chk.Err("cannot find shape %q", geoType)
	}
	nv := o.Shp.Nverts
	if len(X) != nv || len(umap) != nv {
		return nil, chk.Err("element %d: %d nodal radii and equations are required", cell, nv)
	}
	if o.Ips, err = shp.GetIps(geoType, 0); err != nil {
		return
	}
	nip := len(o.Ips)
	o.S, o.G = utl.Alloc(nip, nv), utl.Alloc(nip, nv)
	o.Coef, o.Radii = make([]float64, nip), make([]float64, nip)
	o.States, o.Wks = make([]*mbehav.State, nip), make([]*mbehav.WorkSpace, nip)
	for idx, ip := range o.Ips {
		if err = o.Shp.CalcAtR(o.X, ip.R, true); err != nil {
			return nil, chk.Err("element %d: %v", cell, err)
		}
		r := o.Shp.AxisymGetRadius(o.X)
		if r <= 0 {
			return nil, chk.Err("element %d: radius of integration point must be positive; r=%g", cell, r)
		}
		copy(o.S[idx], o.Shp.S)
		copy(o.G[idx], o.Shp.Gvec)
		o.Radii[idx] = r
		o.Coef[idx] = 2 * math.Pi * r * math.Abs(o.Shp.J) * ip.W
		o.States[idx] = mbehav.NewState(b, strictIvs)
		o.States[idx].Position = r
		o.Wks[idx] = mbehav.NewWorkSpace(b)
	}
	o.bmat, o.kb = utl.Alloc(3, nv+1), utl.Alloc(3, nv+1)
	o.eqs = make([]int, nv+1)
	copy(o.eqs, umap)
	return
}

// calcB computes the B matrix at integration point idx; the last column is for ezz
func (o *PipeElement) calcB(idx int) {
	nv := o.Shp.Nverts
	r := o.Radii[idx]
	for m := 0; m < nv; m++ {
		o.bmat[0][m] = o.G[idx][m]
		o.bmat[1][m] = 0
		o.bmat[2][m] = o.S[idx][m] / r
	}
	o.bmat[0][nv], o.bmat[1][nv], o.bmat[2][nv] = 0, 1, 0
}

// strains computes the strains at integration point idx
func (o *PipeElement) strains(ε []float64, idx int, u []float64, ezz float64) {
	o.calcB(idx)
	nv := o.Shp.Nverts
	for i := 0; i < 3; i++ {
		ε[i] = o.bmat[i][nv] * ezz
		for m := 0; m < nv; m++ {
			ε[i] += o.bmat[i][m] * u[o.Umap[m]]
		}
	}
}

// SetLoading sets material properties and external state variables at all integration points
func (o *PipeElement) SetLoading(mp0, mp1, esv0, desv []float64) {
	for _, s := range o.States {
		copy(s.Mprops0, mp0)
		copy(s.Mprops1, mp1)
		copy(s.Esv0, esv0)
		copy(s.Desv, desv)
	}
}

// Integrate integrates the behaviour at all integration points; the returned rdt is the minimum
// of the factors suggested by the integration points
func (o *PipeElement) Integrate(u []float64, ezz, dt float64, ktype mbehav.StiffnessType) (ok bool, rdt float64) {
	rdt = 1
	for idx, s := range o.States {
		o.strains(s.E1, idx, u, ezz)
		okip, rdtip := o.B.Integrate(s, o.Wks[idx], dt, ktype)
		rdt = math.Min(rdt, rdtip)
		if !okip {
			return false, rdt
		}
	}
	return true, rdt
}

// ComputePredictionOperator computes the prediction operator at all integration points
func (o *PipeElement) ComputePredictionOperator(ktype mbehav.StiffnessType) (ok bool) {
	for idx, s := range o.States {
		copy(s.E1, s.E0)
		if ok, _ = o.B.ComputePredictionOperator(o.Wks[idx], s, ktype); !ok {
			return
		}
	}
	return true
}

// AddToRhs adds the internal forces to r
//  ezzEq      -- equation number of the axial strain
//  prediction -- use the forces at the beginning of the step
func (o *PipeElement) AddToRhs(r []float64, ezzEq int, prediction bool) {
	nv := o.Shp.Nverts
	for idx, s := range o.States {
		σ := s.S1
		if prediction {
			σ = s.S0
		}
		o.calcB(idx)
		c := o.Coef[idx]
		for m := 0; m < nv; m++ {
			r[o.Umap[m]] += c * (σ[0]*o.bmat[0][m] + σ[2]*o.bmat[2][m])
		}
		r[ezzEq] += c * σ[1]
	}
}

// AddToKb adds the element stiffness Bᵀ K B to Kb
func (o *PipeElement) AddToKb(Kb [][]float64, ezzEq int, prediction bool) {
	nv := o.Shp.Nverts
	eqs := o.eqs
	eqs[nv] = ezzEq
	for idx, wk := range o.Wks {
		K := wk.K
		if prediction {
			K = wk.Kt
		}
		o.calcB(idx)
		c := o.Coef[idx]
		for i := 0; i < 3; i++ {
			for n := 0; n <= nv; n++ {
				o.kb[i][n] = 0
				for k := 0; k < 3; k++ {
					o.kb[i][n] += K[i][k] * o.bmat[k][n]
				}
			}
		}
		for m := 0; m <= nv; m++ {
			for n := 0; n <= nv; n++ {
				var v float64
				for i := 0; i < 3; i++ {
					v += o.bmat[i][m] * o.kb[i][n]
				}
				Kb[eqs[m]][eqs[n]] += c * v
			}
		}
	}
}

// AxialForce returns the contribution of the element to the axial force
func (o *PipeElement) AxialForce() (F float64) {
	for idx, s := range o.States {
		F += o.Coef[idx] * s.S0[1]
	}
	return
}

// Revert resets the states of all integration points
func (o *PipeElement) Revert() {
	for _, s := range o.States {
		s.Revert()
	}
}

// Update updates the states of all integration points
func (o *PipeElement) Update() {
	for _, s := range o.States {
		s.Update()
	}
}

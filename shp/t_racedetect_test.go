// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_race01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("race01")

	// each element owns its shape; radii of elements [1,2], [2,3], ...
	nel := 4
	shapes := make([]*Shape, nel)
	radii := make([]float64, nel)
	for i := 0; i < nel; i++ {
		shapes[i] = Get("lin3", i+1)
	}
	io.Pforan("shapes = %v\n", shapes)

	var wg sync.WaitGroup
	for i := 0; i < nel; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			X := []float64{float64(i + 1), float64(i + 2), float64(i) + 1.5}
			if err := shapes[i].CalcAtR(X, 0.5, true); err != nil {
				tst.Errorf("CalcAtR failed: %v", err)
				return
			}
			radii[i] = shapes[i].AxisymGetRadius(X)
		}(i)
	}
	wg.Wait()

	for i := 0; i < nel; i++ {
		chk.Float64(tst, io.Sf("r%d", i), 1e-15, radii[i], float64(i)+1.75)
	}
}

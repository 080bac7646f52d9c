// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gomtest/abi/cstubs"
	"github.com/cpmech/gomtest/mbehav"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
	mbehav.Registry().SetLoader(cstubs.Loader())
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// cte returns a constant evolution
func cte(v float64) Evolution { return ConstantEvolution(v) }

// ramp returns a linear evolution from (0,0) to (1,v)
func ramp(v float64) Evolution {
	ev, err := NewLinearEvolution([]float64{0, 1}, []float64{0, v})
	if err != nil {
		chk.Panic("%v", err)
	}
	return ev
}

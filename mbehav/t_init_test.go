// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mbehav

import (
	"github.com/cpmech/gomtest/abi/cstubs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
	Registry().SetLoader(cstubs.Loader())
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// setProps sets material properties by name; unknown names are set to zero
func setProps(b Behaviour, s *State, values map[string]float64) {
	for i, name := range b.MaterialPropertiesNames() {
		s.Mprops0[i] = values[name]
		s.Mprops1[i] = values[name]
	}
}

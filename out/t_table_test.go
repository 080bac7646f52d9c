// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_table01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("table01")

	tab := NewTable("t", "EXX", "SXX")
	tab.Add(0, 0, 0)
	tab.Add(1, 1e-3, 200)
	chk.Int(tst, "nrows", tab.Nrows(), 2)
	chk.Array(tst, "SXX", 1e-17, tab.GetRes("SXX"), []float64{0, 200})
	chk.Float64(tst, "last EXX", 1e-17, tab.Last("EXX"), 1e-3)

	var buf bytes.Buffer
	tab.Print(&buf, "%g")
	io.Pforan("%s", buf.String())
	chk.String(tst, buf.String(), "# t EXX SXX\n0 0 0\n1 0.001 200\n")

	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("Add with wrong number of values should have panicked\n")
		}
	}()
	tab.Add(1, 2)
}

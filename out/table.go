// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the output of results as whitespace separated tables
package out

import (
	"bytes"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Table holds results; one row per output time
type Table struct {
	Keys []string    // column names
	Rows [][]float64 // [nrows][nkeys] values
}

// NewTable returns a new table with the given columns
func NewTable(keys ...string) *Table {
	return &Table{Keys: append([]string(nil), keys...)}
}

// Add adds a row; the number of values must match the number of keys
func (o *Table) Add(values ...float64) {
	if len(values) != len(o.Keys) {
		chk.Panic("table row must have %d values; %d given", len(o.Keys), len(values))
	}
	o.Rows = append(o.Rows, append([]float64(nil), values...))
}

// Nrows returns the number of rows
func (o *Table) Nrows() int { return len(o.Rows) }

// GetRes returns the column named key
func (o *Table) GetRes(key string) (res []float64) {
	j := utl.StrIndexSmall(o.Keys, key)
	if j < 0 {
		chk.Panic("cannot find column %q in table. keys = %v", key, o.Keys)
	}
	res = make([]float64, len(o.Rows))
	for i, row := range o.Rows {
		res[i] = row[j]
	}
	return
}

// Last returns the value of column key in the last row
func (o *Table) Last(key string) float64 {
	res := o.GetRes(key)
	if len(res) == 0 {
		chk.Panic("table is empty")
	}
	return res[len(res)-1]
}

// Print writes the table to buf
func (o *Table) Print(buf *bytes.Buffer, numFmt string) {
	if numFmt == "" {
		numFmt = "%23.15e"
	}
	io.Ff(buf, "#")
	for _, key := range o.Keys {
		io.Ff(buf, " %s", key)
	}
	io.Ff(buf, "\n")
	for _, row := range o.Rows {
		for j, v := range row {
			if j > 0 {
				io.Ff(buf, " ")
			}
			io.Ff(buf, numFmt, v)
		}
		io.Ff(buf, "\n")
	}
}

// Save writes the table to file dirout/fn
func (o *Table) Save(dirout, fn string) {
	var buf bytes.Buffer
	o.Print(&buf, "")
	io.WriteFileD(dirout, fn, &buf)
}

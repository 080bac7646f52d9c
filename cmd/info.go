// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"

	"github.com/cpmech/gomtest/mbehav"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [library] <function>",
	Short: "Show the variables of a behaviour",
	Long:  `Show the material properties, the state variables and the driving variables of a behaviour. The library is omitted for builtin laws.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE:  showInfo,
}

func init() {
	infoCmd.Flags().String("convention", "castem", io.Sf("calling convention %v", mbehav.Conventions()))
	infoCmd.Flags().String("hypothesis", "Tridimensional", "modelling hypothesis")
}

func showInfo(cmd *cobra.Command, args []string) error {
	cname, _ := cmd.Flags().GetString("convention")
	hname, _ := cmd.Flags().GetString("hypothesis")
	conv, err := mbehav.ParseConvention(cname)
	if err != nil {
		return err
	}
	h, err := mbehav.ParseHypothesis(hname)
	if err != nil {
		return err
	}
	library, function := "", args[0]
	if len(args) == 2 {
		library, function = args[0], args[1]
	}
	b, err := mbehav.New(conv, h, library, function)
	if err != nil {
		return err
	}
	meta := b.Metadata()
	var buf bytes.Buffer
	io.Ff(&buf, "%s (%s, %v)\n", function, conv, h)
	io.Ff(&buf, "  kind                     : %v\n", meta.Kind)
	io.Ff(&buf, "  symmetry                 : %v (elastic: %v)\n", meta.Symmetry, meta.ElasticSymmetry)
	io.Ff(&buf, "  driving variables        : %v\n", b.DrivingVariablesComponents())
	io.Ff(&buf, "  thermodynamic forces     : %v\n", b.ThermodynamicForcesComponents())
	io.Ff(&buf, "  material properties      : %v\n", b.MaterialPropertiesNames())
	io.Ff(&buf, "  optional properties      : %v\n", b.OptionalMaterialPropertiesDefaults())
	io.Ff(&buf, "  internal state variables : %v\n", b.InternalStateVariablesNames())
	io.Ff(&buf, "  external state variables : %v\n", b.ExternalStateVariablesNames())
	if meta.Source != "" {
		io.Ff(&buf, "  source                   : %s\n", meta.Source)
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

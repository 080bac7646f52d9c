// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"time"

	"github.com/cpmech/gomtest/fem"
	"github.com/cpmech/gomtest/inp"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <scheme.yaml>...",
	Short: "Run the tests described by scheme files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSchemes,
}

func init() {
	runCmd.Flags().StringP("dirout", "o", "", "output directory (default: dirout of the scheme or /tmp/gomtest/<key>)")
	runCmd.Flags().Bool("strict-isv", false, "do not pad empty internal state variables")
}

func runSchemes(cmd *cobra.Command, args []string) error {
	dirout, _ := cmd.Flags().GetString("dirout")
	strict, _ := cmd.Flags().GetBool("strict-isv")
	defaults := inp.SolverDefaults(config)
	io.Verbose = defaults.Verbose
	for _, fn := range args {
		sch, err := inp.ReadScheme(fn, defaults)
		if err != nil {
			return err
		}
		if dirout != "" {
			sch.DirOut = dirout
		}
		sch.StrictIvs = sch.StrictIvs || strict
		if err = runScheme(sch); err != nil {
			return fmt.Errorf("%s: %w", fn, err)
		}
	}
	return nil
}

// runScheme runs one scheme, saving the log and the results in the output directory
func runScheme(sch *inp.Scheme) (err error) {
	if err = inp.InitLogFile(sch.DirOut, sch.Key); err != nil {
		return
	}
	defer inp.FlushLog()
	if sch.Solver.ResidualFile == "" && sch.Solver.ShowR {
		sch.Solver.ResidualFile = io.Sf("%s/%s-residuals.txt", sch.DirOut, sch.Key)
	}

	sim, err := fem.NewSimulation(sch)
	if inp.LogErr(err, "cannot build simulation") {
		return
	}
	cpu := time.Now()
	err = sim.Run()
	if sim.Results().Nrows() > 0 {
		sim.Results().Save(sch.DirOut, sch.Key+".res")
	}
	if inp.LogErr(err, "simulation failed") {
		return
	}
	inp.Logf("%s: %d steps, %d sub-steps, %d iterations in %v", sch.Key, sim.State.Stats.Steps, sim.State.Stats.SubSteps, sim.State.Stats.Iterations, time.Since(cpu))
	io.Pf("%s: results saved in %s/%s.res\n", sch.Key, sch.DirOut, sch.Key)
	return
}

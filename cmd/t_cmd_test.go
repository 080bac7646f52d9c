// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func init() {
	io.Verbose = false
}

// execute runs the root command with the given arguments
func execute(args ...string) (string, error) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func Test_cmd01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd01")

	res, err := execute("info", "--convention", "builtin", "Elasticity")
	require.NoError(tst, err)
	io.Pforan("%s", res)
	require.Contains(tst, res, "[EXX EYY EZZ EXY EXZ EYZ]")
	require.Contains(tst, res, "[YoungModulus PoissonRatio]")

	res, err = execute("info", "--convention", "castem", "--hypothesis", "PlaneStress", "libgomtest-stubs.so", "ElasticityCastem")
	require.NoError(tst, err)
	io.Pforan("%s", res)
	require.Contains(tst, res, "PlateWidth")
	require.Contains(tst, res, "ElasticStrainXX")

	_, err = execute("info", "--convention", "unknown", "Elasticity")
	require.Error(tst, err)
	_, err = execute("info", "--convention", "builtin", "--hypothesis", "Unknown", "Elasticity")
	require.Error(tst, err)
}

func Test_cmd02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd02")

	dir := tst.TempDir()
	fn := filepath.Join(dir, "shear.yaml")
	src := `
behaviour: {library: libgomtest-stubs.so, function: ElasticityUmat, convention: umat}
material_properties: {YoungModulus: 200, PoissonRatio: 0.3}
imposed_driving_variables: {EXY: "1e-3*t"}
times: {values: [0, 1], steps: [2]}
`
	require.NoError(tst, os.WriteFile(fn, []byte(src), 0644))
	dirout := filepath.Join(dir, "out")
	_, err := execute("run", "--dirout", dirout, fn)
	require.NoError(tst, err)

	b, err := os.ReadFile(filepath.Join(dirout, "shear.res"))
	require.NoError(tst, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	io.Pforan("%s\n", b)
	chk.Int(tst, "nlines", len(lines), 4)
	require.Contains(tst, lines[0], "SXY")
	_, err = os.Stat(filepath.Join(dirout, "shear.log"))
	require.NoError(tst, err)

	// persistent flags are bound to the configuration before running
	_, err = execute("run", "--verbose", "--dirout", dirout, fn)
	require.NoError(tst, err)
	require.True(tst, config.GetBool("solver.verbose"))

	// configuration file with invalid defaults
	cfg := filepath.Join(dir, "gomtest.yaml")
	require.NoError(tst, os.WriteFile(cfg, []byte("solver:\n  itermax: 0\n  eeps: -1\n"), 0644))
	_, err = execute("run", "--config", cfg, "--dirout", dirout, fn)
	require.Error(tst, err)

	_, err = execute("run", filepath.Join(dir, "missing.yaml"))
	require.Error(tst, err)
	_, err = execute("run")
	require.Error(tst, err)
}

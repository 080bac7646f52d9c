// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/spf13/viper"
)

// defaultDirOut is the default output directory
const defaultDirOut = "/tmp/gomtest"

// NewConfig returns the configuration of gomtest. Values are taken, in order of precedence, from
// environment variables (GOMTEST_SOLVER_ITERMAX, ...), the configuration file cfgFile (if not
// empty) and the defaults
func NewConfig(cfgFile string) (v *viper.Viper, err error) {
	v = viper.New()
	v.SetDefault("dirout", defaultDirOut)
	v.SetDefault("solver.itermax", 100)
	v.SetDefault("solver.maxsubsteps", 10)
	v.SetDefault("solver.eeps", 1e-12)
	v.SetDefault("solver.seps", 1e-3)
	v.SetDefault("solver.stiffness", "CONSISTENT-TANGENT")
	v.SetDefault("solver.prediction", "NoPrediction")
	v.SetDefault("solver.acceleration", "")
	v.SetDefault("solver.dynamic_time_step_scaling", false)
	v.SetDefault("solver.min_time_step_scaling", 0.1)
	v.SetDefault("solver.max_time_step_scaling", 1.0)
	v.SetDefault("solver.verbose", false)
	v.SetDefault("solver.showr", false)
	v.SetEnvPrefix("GOMTEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err = v.ReadInConfig(); err != nil {
			return nil, chk.Err("cannot read configuration file %q:\n%v", cfgFile, err)
		}
	}
	return
}

// SolverDefaults returns the solver parameters held by the configuration
func SolverDefaults(v *viper.Viper) SolverData {
	return SolverData{
		IterMax:                v.GetInt("solver.itermax"),
		MaxSubSteps:            v.GetInt("solver.maxsubsteps"),
		Eeps:                   v.GetFloat64("solver.eeps"),
		Seps:                   v.GetFloat64("solver.seps"),
		Stiffness:              v.GetString("solver.stiffness"),
		Prediction:             v.GetString("solver.prediction"),
		Acceleration:           v.GetString("solver.acceleration"),
		DynamicTimeStepScaling: v.GetBool("solver.dynamic_time_step_scaling"),
		MinTimeStepScaling:     v.GetFloat64("solver.min_time_step_scaling"),
		MaxTimeStepScaling:     v.GetFloat64("solver.max_time_step_scaling"),
		Verbose:                v.GetBool("solver.verbose"),
		ShowR:                  v.GetBool("solver.showr"),
	}
}

// DirOut returns the output directory held by the configuration
func DirOut(v *viper.Viper) string {
	return v.GetString("dirout")
}

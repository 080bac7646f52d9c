// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/io"

// ConfigError reports an invalid study set up; e.g. a missing material property
type ConfigError struct {
	Msg string
}

func (o *ConfigError) Error() string { return o.Msg }

// configErr returns a new configuration error
func configErr(msg string, prm ...interface{}) error {
	return &ConfigError{Msg: io.Sf(msg, prm...)}
}

// SolveFailure reports that a time step could not be solved after the maximum number of sub-steps
type SolveFailure struct {
	Time      float64 // time at the beginning of the failed sub-step
	Dt        float64 // length of the last failed sub-step
	SubSteps  int     // number of sub-steps performed
	Criterion string  // last failed criterion
	Value     float64 // value of the last failed criterion
}

func (o *SolveFailure) Error() string {
	return io.Sf("maximum number of sub-steps (%d) reached at t=%g (Δt=%g): %s (%g)", o.SubSteps, o.Time, o.Dt, o.Criterion, o.Value)
}

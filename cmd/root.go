// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cmd implements the command line interface of gomtest
package cmd

import (
	"github.com/cpmech/gomtest/abi/cstubs"
	"github.com/cpmech/gomtest/inp"
	"github.com/cpmech/gomtest/mbehav"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	cfgFile string
	config  *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:     "gomtest",
	Short:   "Single material point and pipe tests of mechanical behaviours",
	Long:    `gomtest integrates mechanical behaviours (builtin laws or compiled libraries following the umat, aster, cyrano and castem conventions) over loading histories of a material point or of a pipe.`,
	Version: version,

	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPostRunE: closeLibraries,
}

func init() {
	mbehav.Registry().SetLoader(cstubs.Loader())
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file with default solver parameters (e.g. gomtest.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "show messages")
	rootCmd.PersistentPreRunE = initConfig
	rootCmd.AddCommand(runCmd, infoCmd)
}

// initConfig reads the configuration and binds the flags
func initConfig(cmd *cobra.Command, args []string) (err error) {
	if config, err = inp.NewConfig(cfgFile); err != nil {
		return
	}
	return config.BindPFlag("solver.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// closeLibraries closes the behaviour libraries opened by the command
func closeLibraries(cmd *cobra.Command, args []string) error {
	return mbehav.Registry().CloseAll()
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

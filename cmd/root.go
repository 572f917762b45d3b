/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/diffstokes/cutcell/InputParameters"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cutcell",
	Short: "Differentiable cut-cell geometry sweeps",
	Long: `
Sweeps a regular grid of cut cells over a signed-distance shape and reports
fluid area, boundary measure and classification statistics, exercising the
per-cell geometry/energy/gradient engine.

cutcell 2D`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cutcell.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".cutcell" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".cutcell")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// loadParameters merges an optional YAML input file over the defaults.
func loadParameters(inputFile string) (cp *InputParameters.CutCellParameters) {
	cp = InputParameters.DefaultParameters()
	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			fmt.Printf("unable to read input file [%s]: %v\n", inputFile, err)
			os.Exit(1)
		}
		if err = cp.Parse(data); err != nil {
			fmt.Printf("unable to parse input file [%s]: %v\n", inputFile, err)
			os.Exit(1)
		}
	}
	if err := cp.Validate(); err != nil {
		fmt.Printf("invalid parameters: %v\n", err)
		os.Exit(1)
	}
	return
}

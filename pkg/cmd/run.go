// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-pacfix/pkg/pac"
	"github.com/consensys/go-pacfix/pkg/pipeline"
	"github.com/consensys/go-pacfix/pkg/report"
	"github.com/consensys/go-pacfix/pkg/sample"
	"github.com/consensys/go-pacfix/pkg/smt"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runCmd infers invariants where every sample file is a single valuation.
var runCmd = &cobra.Command{
	Use:   "run [flags]",
	Short: "Infer invariants from one valuation per sample file.",
	Long: `Infer invariants from the valuations found under the input directory, where
	each file in "neg" is a crashing valuation and each file in "pos" a passing one.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		opts := readOptions(cmd, sample.RUN)
		opts.OutputSMT = GetString(cmd, "output-smt")
		//
		infer(opts)
	},
}

// uniCmd infers invariants where every sample file is a trace of valuations.
var uniCmd = &cobra.Command{
	Use:   "uni [flags]",
	Short: "Infer invariants from traces of valuations.",
	Long: `Infer invariants from traces found under the input directory.  Each trace is a
	sequence of valuations separated by "---" lines.  In a crashing trace only the
	last valuation is negative, whilst all others are positive.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		opts := readOptions(cmd, sample.UNI)
		opts.Inputs.Filter = GetString(cmd, "lv-file")
		//
		infer(opts)
	},
}

// options collects everything needed for one invocation of an inference
// command.
type options struct {
	Inputs pipeline.Inputs
	Config pipeline.Config
	// Output file for the report (empty means stdout).
	Output string
	// Report format.
	Format string `validate:"oneof=text json yaml"`
	// Directory to write an SMT-LIB script into (empty means none).
	OutputSMT string
}

// Validate checks that the input paths exist and the format is supported.
func (o *options) Validate() error {
	return validator.New().Struct(o)
}

func readOptions(cmd *cobra.Command, mode sample.Mode) options {
	config := pipeline.DefaultConfig()
	config.Delta = GetFloat(cmd, "pac-delta")
	config.Workers = GetInt(cmd, "workers")
	config.Reduce = !GetFlag(cmd, "no-reduce")
	config.Synth.DivTemplate = GetFlag(cmd, "div-template")
	config.Mode = mode
	//
	return options{
		Inputs: pipeline.Inputs{
			InputDir: GetString(cmd, "input-dir"),
			LiveVars: GetString(cmd, "live-vars"),
			Mode:     mode,
		},
		Config: config,
		Output: GetString(cmd, "output"),
		Format: GetString(cmd, "format"),
	}
}

// infer performs one complete inference run, and writes the resulting reports.
// Failures are reported and terminate the process.
func infer(opts options) {
	if err := opts.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	table, corpus, err := pipeline.Load(opts.Inputs)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	result := pipeline.Run(opts.Config, table, corpus)
	//
	if err := writeReport(opts.Output, opts.Format, result); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	if opts.OutputSMT != "" {
		filename, err := smt.WriteFile(opts.OutputSMT, result.Minimal, result.Table)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		log.Infof("wrote %s", filename)
	}
}

func writeReport(output string, format string, result *pipeline.Result) error {
	if output == "" {
		return report.Write(os.Stdout, format, result)
	}
	//
	file, err := os.Create(output)
	if err != nil {
		return err
	}
	//
	if err := report.Write(file, format, result); err != nil {
		file.Close()
		return err
	}
	// A failed close can lose buffered output.
	return file.Close()
}

func init() {
	for _, cmd := range []*cobra.Command{runCmd, uniCmd} {
		cmd.Flags().StringP("input-dir", "i", "", "directory containing \"neg\" and \"pos\" samples")
		cmd.Flags().StringP("live-vars", "l", "", "file declaring the live variables")
		cmd.Flags().Float64P("pac-delta", "D", pac.DefaultDelta, "confidence parameter of the PAC bounds")
		cmd.Flags().StringP("output", "o", "", "file to write the report into (default stdout)")
		cmd.Flags().String("format", "text",
			fmt.Sprintf("report format (%s)", strings.Join(report.Formats, ", ")))
		cmd.Flags().Int("workers", 0, "number of validation workers (default all cores)")
		cmd.Flags().Bool("no-reduce", false, "do not remove redundant invariants")
		cmd.Flags().Bool("div-template", false, "include the division template in the hypothesis space")
		//
		rootCmd.AddCommand(cmd)
	}
	//
	runCmd.Flags().StringP("output-smt", "s", "", "directory to write an SMT-LIB script into")
	uniCmd.Flags().StringP("lv-file", "f", "", "file naming the live variables to retain")
}

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
package pipeline

import (
	inv "github.com/consensys/go-pacfix/pkg/invariant"
	"github.com/consensys/go-pacfix/pkg/lattice"
	"github.com/consensys/go-pacfix/pkg/pac"
	"github.com/consensys/go-pacfix/pkg/sample"
	"github.com/consensys/go-pacfix/pkg/synth"
	"github.com/consensys/go-pacfix/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Config encapsulates the parameters of an inference run.
type Config struct {
	// Confidence parameter for the PAC bounds.
	Delta float64
	// Number of workers used for validation (non-positive means GOMAXPROCS).
	Workers int
	// Determines whether redundant invariants are removed from the final set.
	Reduce bool
	// Options for the synthesizer.
	Synth synth.Options
	// How samples were collected.  This determines the hypothesis space size
	// used for the PAC bounds: the synthesized space for RUN, and the refined
	// space for UNI.
	Mode sample.Mode
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{Delta: pac.DefaultDelta, Reduce: true}
}

// LiveVarCounts summarises the live variable table.
type LiveVarCounts struct {
	Total uint `json:"total" yaml:"total"`
	Int   uint `json:"int" yaml:"int"`
}

// SpaceSizes summarises the hypothesis space at each stage.
type SpaceSizes struct {
	// Size of the synthesized hypothesis space.
	Original uint `json:"original" yaml:"original"`
	// Size after validation against the samples.
	Final uint `json:"final" yaml:"final"`
	// Size after redundant invariants are removed.
	Reduced uint `json:"reduced" yaml:"reduced"`
}

func (p SpaceSizes) pacSize(mode sample.Mode) uint {
	if mode == sample.UNI {
		return p.Final
	}
	//
	return p.Original
}

// SampleCounts summarises the valuations, both deduplicated and as collected.
type SampleCounts struct {
	Neg     uint `json:"neg" yaml:"neg"`
	Pos     uint `json:"pos" yaml:"pos"`
	Uniq    uint `json:"uniq" yaml:"uniq"`
	InitNeg uint `json:"init-neg" yaml:"init-neg"`
	InitPos uint `json:"init-pos" yaml:"init-pos"`
	NonUniq uint `json:"non-uniq" yaml:"non-uniq"`
}

// Metadata records the cardinalities of a run and the resulting bounds.
type Metadata struct {
	LiveVars   LiveVarCounts `json:"live-variables" yaml:"live-variables"`
	Hypotheses SpaceSizes    `json:"hypothesis-space" yaml:"hypothesis-space"`
	Samples    SampleCounts  `json:"valuation" yaml:"valuation"`
	PAC        pac.Bounds    `json:"pac" yaml:"pac"`
}

// Result is the outcome of an inference run.
type Result struct {
	Metadata Metadata
	// Live variables the invariants range over.
	Table *inv.Table
	// Hypotheses consistent with every sample, in enumeration order.
	Refined []inv.Expr
	// Refined hypotheses not implied by any other.
	Minimal []inv.Expr
}

// Run infers the invariants separating the negative from the positive
// valuations of a corpus.  The hypothesis space is synthesized from the live
// variables, validated against the deduplicated samples and then reduced.
// Both PAC bounds are computed over the same hypothesis space size, chosen by
// the mode of the configuration.
func Run(cfg Config, table *inv.Table, corpus sample.Corpus) *Result {
	var (
		meta  Metadata
		stats = util.NewPerfStats()
	)
	//
	if err := pac.CheckDelta(cfg.Delta); err != nil {
		log.Warn(err)
	}
	// create initial hypothesis space
	space := synth.NewSynthesizer(table, cfg.Synth).Synthesize()
	stats.Log("Synthesis")
	// validate hypothesis space
	unique := corpus.Unique()
	stats = util.NewPerfStats()
	refined := synth.Validate(space, unique.Negative, unique.Positive, cfg.Workers)
	stats.Log("Validation")
	//
	minimal := refined
	//
	if cfg.Reduce {
		stats = util.NewPerfStats()
		minimal = lattice.Reduce(refined)
		stats.Log("Reduction")
	}
	//
	meta.LiveVars = LiveVarCounts{uint(table.Len()), uint(len(table.Ints()))}
	meta.Hypotheses = SpaceSizes{uint(len(space)), uint(len(refined)), uint(len(minimal))}
	meta.Samples = SampleCounts{
		Neg:     uint(len(unique.Negative)),
		Pos:     uint(len(unique.Positive)),
		Uniq:    unique.Len(),
		InitNeg: uint(len(corpus.Negative)),
		InitPos: uint(len(corpus.Positive)),
		NonUniq: corpus.Len(),
	}
	meta.PAC = pac.NewBounds(meta.Samples.Uniq, meta.Samples.NonUniq, meta.Hypotheses.pacSize(cfg.Mode), cfg.Delta)
	//
	log.Debugf("hypothesis space %d => %d => %d", len(space), len(refined), len(minimal))
	//
	return &Result{meta, table, refined, minimal}
}

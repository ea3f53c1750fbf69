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
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	inv "github.com/consensys/go-pacfix/pkg/invariant"
	"github.com/consensys/go-pacfix/pkg/pipeline"
	"gopkg.in/yaml.v3"
)

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "yaml"}

// Summary is the serialisable form of a run's outcome, where invariants are
// rendered with the names of their live variables.
type Summary struct {
	Metadata   pipeline.Metadata `json:"metadata" yaml:"metadata"`
	Invariants []string          `json:"invariants" yaml:"invariants"`
}

// NewSummary renders the minimal invariants of a result.
func NewSummary(result *pipeline.Result) (Summary, error) {
	invariants, err := Render(result.Minimal, result.Table)
	//
	return Summary{result.Metadata, invariants}, err
}

// Render renders each invariant with the names of its variables.
func Render(invariants []inv.Expr, table *inv.Table) ([]string, error) {
	strs := make([]string, len(invariants))
	//
	for i, e := range invariants {
		s, err := e.Render(table)
		if err != nil {
			return nil, err
		}
		//
		strs[i] = s
	}
	//
	return strs, nil
}

// Write renders a result in the given format.
func Write(w io.Writer, format string, result *pipeline.Result) error {
	summary, err := NewSummary(result)
	if err != nil {
		return err
	}
	//
	switch format {
	case "text":
		return WriteText(w, summary)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		//
		return encoder.Encode(summary)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		//
		if err := encoder.Encode(summary); err != nil {
			return err
		}
		//
		return encoder.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteText writes a summary as metadata lines followed by the invariants, one
// per line.
func WriteText(w io.Writer, s Summary) error {
	var (
		m   = s.Metadata
		out = &errWriter{w: w}
	)
	//
	out.printf("[metadata] [live-variables] [total %d] [int %d]\n", m.LiveVars.Total, m.LiveVars.Int)
	out.printf("[metadata] [hypothesis-space] [original %d] [final %d]\n", m.Hypotheses.Original, m.Hypotheses.Final)
	out.printf("[metadata] [valuation] [neg %d] [pos %d] [uniq %d] [init-neg %d] [init-pos %d] [non-uniq %d]\n",
		m.Samples.Neg, m.Samples.Pos, m.Samples.Uniq, m.Samples.InitNeg, m.Samples.InitPos, m.Samples.NonUniq)
	out.printf("[metadata] [pac] [delta %s] [eps %s]\n", float(m.PAC.Delta), float(m.PAC.Unique))
	out.printf("[metadata] [pac-no-uniq] [delta %s] [eps %s]\n", float(m.PAC.Delta), float(m.PAC.NonUnique))
	out.printf("[metadata] [lattice] [refined %d] [reduced %d]\n", m.Hypotheses.Final, m.Hypotheses.Reduced)
	out.printf("[final] --------------\n")
	//
	for _, line := range s.Invariants {
		out.printf("%s\n", line)
	}
	//
	return out.err
}

func float(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// errWriter remembers the first write error, so a sequence of writes can be
// checked once.
type errWriter struct {
	w   io.Writer
	err error
}

func (p *errWriter) printf(format string, args ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}

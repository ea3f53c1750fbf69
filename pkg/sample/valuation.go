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
package sample

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	inv "github.com/consensys/go-pacfix/pkg/invariant"
	"github.com/consensys/go-pacfix/pkg/util"
	"github.com/pkg/errors"
)

// ErrMalformedSample indicates a sample block which cannot be parsed into
// "id value" pairs.
var ErrMalformedSample = errors.New("malformed sample")

// Separator is the line which divides the sub-groups of a trace.
const Separator = "---"

// Mode determines how sample blocks are turned into labelled valuations.
type Mode uint8

const (
	// RUN treats each block as exactly one valuation, labelled by the
	// directory it was found in.
	RUN Mode = iota
	// UNI treats each block as a trace of sub-groups.  Only the final sub-group
	// of a negative trace is negative (the crash happens at the end), and every
	// other sub-group is positive.
	UNI
)

// Block is the raw text of one sample file.
type Block struct {
	Name string
	Text string
}

// Corpus holds the labelled valuations of a run.
type Corpus struct {
	Negative []inv.Valuation
	Positive []inv.Valuation
}

// Unique returns a corpus with duplicate valuations removed from each label.
func (c Corpus) Unique() Corpus {
	return Corpus{Unique(c.Negative), Unique(c.Positive)}
}

// Len returns the total number of valuations.
func (c Corpus) Len() uint {
	return uint(len(c.Negative) + len(c.Positive))
}

// LoadCorpus reads the negative and positive sample blocks found under the
// "neg" and "pos" sub-directories of a given directory.
func LoadCorpus(dir string, mode Mode) (Corpus, error) {
	neg, err := ReadBlocks(filepath.Join(dir, "neg"))
	if err != nil {
		return Corpus{}, err
	}
	//
	pos, err := ReadBlocks(filepath.Join(dir, "pos"))
	if err != nil {
		return Corpus{}, err
	}
	//
	return ParseCorpus(mode, neg, pos)
}

// ReadBlocks reads every regular file in a directory, in lexical order of
// name.  Compressed (".bz2") files are decompressed.
func ReadBlocks(dir string) ([]Block, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	//
	var blocks []Block
	//
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		//
		filename := filepath.Join(dir, entry.Name())
		text, err := util.ReadInputFile(filename)
		//
		if err != nil {
			return nil, err
		}
		//
		blocks = append(blocks, Block{filename, text})
	}
	//
	slices.SortFunc(blocks, func(a, b Block) int { return strings.Compare(a.Name, b.Name) })
	//
	return blocks, nil
}

// ParseCorpus labels the valuations found in negative and positive blocks
// according to the given mode.
func ParseCorpus(mode Mode, neg []Block, pos []Block) (Corpus, error) {
	var corpus Corpus
	//
	for _, b := range neg {
		groups, err := parseBlock(mode, b)
		if err != nil {
			return Corpus{}, err
		}
		// Only the last sub-group of a negative trace crashed
		if n := len(groups); n > 0 {
			corpus.Positive = append(corpus.Positive, groups[:n-1]...)
			corpus.Negative = append(corpus.Negative, groups[n-1])
		}
	}
	//
	for _, b := range pos {
		groups, err := parseBlock(mode, b)
		if err != nil {
			return Corpus{}, err
		}
		//
		corpus.Positive = append(corpus.Positive, groups...)
	}
	//
	return corpus, nil
}

func parseBlock(mode Mode, b Block) ([]inv.Valuation, error) {
	if mode == UNI {
		return ParseTrace(b.Name, b.Text)
	}
	//
	vals, err := ParseValuation(b.Name, b.Text)
	if err != nil {
		return nil, err
	}
	//
	return []inv.Valuation{vals}, nil
}

// ParseTrace parses a trace into its sub-groups, which are separated by lines
// holding "---".  Empty sub-groups are ignored.
func ParseTrace(name string, text string) ([]inv.Valuation, error) {
	var (
		groups []inv.Valuation
		start  = 1
		lines  []string
	)
	//
	flush := func() error {
		vals, err := parseLines(name, start, lines)
		if err == nil && len(vals) > 0 {
			groups = append(groups, vals)
		}
		//
		return err
	}
	//
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == Separator {
			if err := flush(); err != nil {
				return nil, err
			}
			//
			start, lines = i+2, nil
		} else {
			lines = append(lines, line)
		}
	}
	//
	if err := flush(); err != nil {
		return nil, err
	}
	//
	return groups, nil
}

// ParseValuation parses a single valuation, given as lines of "id value"
// pairs.  Blank lines are ignored.
func ParseValuation(name string, text string) (inv.Valuation, error) {
	return parseLines(name, 1, strings.Split(text, "\n"))
}

func parseLines(name string, start int, lines []string) (inv.Valuation, error) {
	vals := make(inv.Valuation)
	//
	for i, line := range lines {
		fields := strings.Fields(line)
		//
		if len(fields) == 0 {
			continue
		} else if len(fields) != 2 {
			return nil, errors.Wrapf(ErrMalformedSample, "%s:%d: expected \"id value\", found %q", name, start+i, line)
		}
		//
		id, err := strconv.ParseUint(fields[0], 10, 0)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedSample, "%s:%d: invalid id %q", name, start+i, fields[0])
		}
		//
		val, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedSample, "%s:%d: invalid value %q", name, start+i, fields[1])
		}
		//
		vals[uint(id)] = val
	}
	//
	return vals, nil
}

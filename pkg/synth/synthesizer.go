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
package synth

import (
	inv "github.com/consensys/go-pacfix/pkg/invariant"
	log "github.com/sirupsen/logrus"
)

// SpecialValues are the power-of-two and boundary constants appended to every
// constant range whose upper bound they exceed.
var SpecialValues = []int64{
	1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768, 65536,
	1048575, 2147483647, 4294967295,
}

// Options control which optional templates are enabled.
type Options struct {
	// DivTemplate enables the "v1 / k >= v2" template (k in [2,9]), which is
	// not part of the default family.
	DivTemplate bool
}

// Synthesizer enumerates the hypothesis space for a given set of live
// variables from a fixed family of templates.
type Synthesizer struct {
	table   *inv.Table
	options Options
}

// template is a single member of the template family.
type template struct {
	name string
	// generate instances over integer variables only, or over all variables.
	intsOnly bool
	generate func(vars []inv.LiveVariable) []inv.Expr
}

// NewSynthesizer constructs a synthesizer over the given live variables.
func NewSynthesizer(table *inv.Table, options Options) *Synthesizer {
	return &Synthesizer{table, options}
}

// ConstList returns the dense range [lower, upper] followed by every special
// value strictly greater than upper, in ascending order.
func ConstList(lower int64, upper int64) []int64 {
	var consts []int64
	//
	for c := lower; c <= upper; c++ {
		consts = append(consts, c)
	}
	//
	for _, c := range SpecialValues {
		if c > upper {
			consts = append(consts, c)
		}
	}
	//
	return consts
}

// Synthesize returns the hypothesis space, with the templates applied in their
// fixed order and concatenated.  The result is deterministic for a given table.
func (p *Synthesizer) Synthesize() []inv.Expr {
	var (
		all   = p.table.Vars()
		ints  = p.table.Ints()
		space []inv.Expr
	)
	//
	for _, t := range p.templates() {
		vars := all
		if t.intsOnly {
			vars = ints
		}
		//
		instances := t.generate(vars)
		log.Debugf("template %s: %d instances", t.name, len(instances))
		space = append(space, instances...)
	}
	//
	return space
}

func (p *Synthesizer) templates() []template {
	templates := []template{
		{"eq-const", true, genEqConst},
		{"non-zero", false, genNonZero},
		{"ge-const", true, genGeConst},
		{"le-const", true, genLeConst},
		{"ge-var", false, genGeVar},
		// The difference template appears twice in the family; keeping both
		// copies preserves the hypothesis space size used for PAC bounds.
		{"diff-lower", false, genDiffGeConst},
		{"diff-upper", false, genDiffGeConst},
	}
	//
	if p.options.DivTemplate {
		templates = append(templates, template{"ge-div-const", false, genGeDivConst})
	}
	//
	return templates
}

// v == c, for c in [-10,100] plus specials
func genEqConst(vars []inv.LiveVariable) []inv.Expr {
	return genVarConst(vars, ConstList(-10, 100), inv.Eq)
}

// v != 0
func genNonZero(vars []inv.LiveVariable) []inv.Expr {
	return genVarConst(vars, []int64{0}, inv.Ne)
}

// v >= c, for c in [-10,10] plus specials
func genGeConst(vars []inv.LiveVariable) []inv.Expr {
	return genVarConst(vars, ConstList(-10, 10), inv.Ge)
}

// v <= c, for c in [-10,10] plus specials
func genLeConst(vars []inv.LiveVariable) []inv.Expr {
	return genVarConst(vars, ConstList(-10, 10), inv.Le)
}

// v1 >= v2, for distinct v1 and v2
func genGeVar(vars []inv.LiveVariable) []inv.Expr {
	var invariants []inv.Expr
	//
	forEachPair(vars, func(v1, v2 inv.LiveVariable) {
		invariants = append(invariants, inv.Ge(inv.NewVar(v1.ID), inv.NewVar(v2.ID)))
	})
	//
	return invariants
}

// v1 - v2 >= c, for distinct v1 and v2 and c in [1,10] plus specials
func genDiffGeConst(vars []inv.LiveVariable) []inv.Expr {
	var (
		invariants []inv.Expr
		consts     = ConstList(1, 10)
	)
	//
	forEachPair(vars, func(v1, v2 inv.LiveVariable) {
		for _, c := range consts {
			diff := inv.Sub(inv.NewVar(v1.ID), inv.NewVar(v2.ID))
			invariants = append(invariants, inv.Ge(diff, inv.NewConst(c)))
		}
	})
	//
	return invariants
}

// v1 / k >= v2, for distinct v1 and v2 and k in [2,9]
func genGeDivConst(vars []inv.LiveVariable) []inv.Expr {
	var invariants []inv.Expr
	//
	forEachPair(vars, func(v1, v2 inv.LiveVariable) {
		for k := int64(2); k < 10; k++ {
			quotient := inv.Div(inv.NewVar(v1.ID), inv.NewConst(k))
			invariants = append(invariants, inv.Ge(quotient, inv.NewVar(v2.ID)))
		}
	})
	//
	return invariants
}

func genVarConst(vars []inv.LiveVariable, consts []int64, op func(inv.Expr, inv.Expr) *inv.Binary) []inv.Expr {
	invariants := make([]inv.Expr, 0, len(vars)*len(consts))
	//
	for _, v := range vars {
		for _, c := range consts {
			invariants = append(invariants, op(inv.NewVar(v.ID), inv.NewConst(c)))
		}
	}
	//
	return invariants
}

// Apply a function to every ordered pair of distinct variables.
func forEachPair(vars []inv.LiveVariable, fn func(inv.LiveVariable, inv.LiveVariable)) {
	for _, v1 := range vars {
		for _, v2 := range vars {
			if v1.ID != v2.ID {
				fn(v1, v2)
			}
		}
	}
}

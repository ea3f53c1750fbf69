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
package invariant

import "slices"

// VarKind classifies a live variable.  Only integer variables take part in the
// templates comparing against constants.
type VarKind uint8

const (
	// INT is an integer typed variable.
	INT VarKind = iota
	// BOOL is a boolean typed variable.
	BOOL
	// PTR is a pointer, or any other type.
	PTR
)

// ParseVarKind maps the type name used in live variable files onto a kind.
// Anything other than "int" or "bool" is treated as a pointer.
func ParseVarKind(name string) VarKind {
	switch name {
	case "int":
		return INT
	case "bool":
		return BOOL
	default:
		return PTR
	}
}

func (k VarKind) String() string {
	switch k {
	case INT:
		return "int"
	case BOOL:
		return "bool"
	default:
		return "ptr"
	}
}

// LiveVariable is a named, typed program variable visible at the analysis
// point.
type LiveVariable struct {
	ID   uint
	Name string
	Kind VarKind
}

// Table holds the live variables in declaration order, indexed by identifier.
type Table struct {
	vars  []LiveVariable
	index map[uint]int
}

// NewTable constructs a table from zero or more live variables.
func NewTable(vars ...LiveVariable) *Table {
	table := &Table{nil, make(map[uint]int)}
	//
	for _, v := range vars {
		table.Declare(v)
	}
	//
	return table
}

// Declare adds a live variable to this table.  Redeclaring an identifier
// replaces the earlier record in its original position.
func (p *Table) Declare(v LiveVariable) {
	if i, ok := p.index[v.ID]; ok {
		p.vars[i] = v
		return
	}
	//
	p.index[v.ID] = len(p.vars)
	p.vars = append(p.vars, v)
}

// Len returns the number of live variables.
func (p *Table) Len() int {
	return len(p.vars)
}

// Vars returns a copy of the live variables in declaration order.
func (p *Table) Vars() []LiveVariable {
	return slices.Clone(p.vars)
}

// Ints returns the integer typed live variables in declaration order.
func (p *Table) Ints() []LiveVariable {
	var ints []LiveVariable
	//
	for _, v := range p.vars {
		if v.Kind == INT {
			ints = append(ints, v)
		}
	}
	//
	return ints
}

// Lookup returns the live variable with the given identifier, if any.
func (p *Table) Lookup(id uint) (LiveVariable, bool) {
	if i, ok := p.index[id]; ok {
		return p.vars[i], true
	}
	//
	return LiveVariable{}, false
}

// Filter returns a new table keeping only those variables whose names are
// retained.
func (p *Table) Filter(retain map[string]bool) *Table {
	table := NewTable()
	//
	for _, v := range p.vars {
		if retain[v.Name] {
			table.Declare(v)
		}
	}
	//
	return table
}

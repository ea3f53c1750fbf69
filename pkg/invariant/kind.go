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

// Kind identifies the variant of an invariant node.
type Kind uint8

const (
	// VAR is a live variable access (leaf).
	VAR Kind = iota
	// CONST is an integer constant (leaf).
	CONST
	// EQ is "=="
	EQ
	// NE is "!="
	NE
	// GT is ">"
	GT
	// GE is ">="
	GE
	// LT is "<"
	LT
	// LE is "<="
	LE
	// ADD is "+"
	ADD
	// SUB is "-"
	SUB
	// MUL is "*"
	MUL
	// DIV is "/" (flooring)
	DIV
)

var kindSymbols = [...]string{"VAR", "CONST", "==", "!=", ">", ">=", "<", "<=", "+", "-", "*", "/"}

// String returns the operator symbol for binary kinds, or the leaf name.
func (k Kind) String() string {
	if int(k) < len(kindSymbols) {
		return kindSymbols[k]
	}
	//
	return "?"
}

// IsRelational returns true for the comparison kinds, which evaluate to
// booleans.
func (k Kind) IsRelational() bool {
	return k >= EQ && k <= LE
}

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

import "strconv"

// Valuation maps live variable identifiers to their sampled values.  Booleans
// and pointers are represented as integers.
type Valuation map[uint]int64

// Value is the result of evaluating an invariant: either an integer (for
// leaves and arithmetic nodes) or a boolean (for relational nodes).
type Value struct {
	num    int64
	isBool bool
}

// Int constructs an integer value.
func Int(v int64) Value {
	return Value{v, false}
}

// Bool constructs a boolean value.
func Bool(b bool) Value {
	if b {
		return Value{1, true}
	}
	//
	return Value{0, true}
}

// AsInt returns this value as an integer, where booleans become 0 or 1.
func (v Value) AsInt() int64 {
	return v.num
}

// Truthy returns true for the boolean true, or for any non-zero integer.
func (v Value) Truthy() bool {
	return v.num != 0
}

func (v Value) String() string {
	if v.isBool {
		return strconv.FormatBool(v.num != 0)
	}
	//
	return strconv.FormatInt(v.num, 10)
}

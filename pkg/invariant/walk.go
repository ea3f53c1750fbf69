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

import "github.com/consensys/go-pacfix/pkg/util/collection/set"

// Walk visits every node of an invariant depth-first, parents before children
// and left before right.
func Walk(e Expr, visit func(Expr)) {
	visit(e)
	//
	for _, child := range e.Children() {
		Walk(child, visit)
	}
}

// Variables returns the set of distinct variable identifiers referenced by an
// invariant.
func Variables(e Expr) *set.SortedSet[uint] {
	vars := set.NewSortedSet[uint]()
	//
	Walk(e, func(n Expr) {
		if v, ok := n.(*Variable); ok {
			vars.Insert(v.id)
		}
	})
	//
	return vars
}

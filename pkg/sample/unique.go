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
	"maps"

	inv "github.com/consensys/go-pacfix/pkg/invariant"
	"github.com/mitchellh/hashstructure/v2"
)

// Unique removes valuations which exactly duplicate an earlier valuation (same
// variables, same values), keeping the first occurrence of each in order.
func Unique(vals []inv.Valuation) []inv.Valuation {
	var (
		unique  []inv.Valuation
		buckets = make(map[uint64][]int)
	)
	//
	for _, v := range vals {
		hash, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
		if err != nil {
			// Valuations are plain maps of integers, which always hash.
			panic(err)
		}
		//
		if !containsEqual(unique, buckets[hash], v) {
			buckets[hash] = append(buckets[hash], len(unique))
			unique = append(unique, v)
		}
	}
	//
	return unique
}

// Check whether any valuation in the bucket equals the given one.  This guards
// against hash collisions.
func containsEqual(unique []inv.Valuation, bucket []int, v inv.Valuation) bool {
	for _, i := range bucket {
		if maps.Equal(unique[i], v) {
			return true
		}
	}
	//
	return false
}

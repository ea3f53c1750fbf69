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
package set

import (
	"cmp"
	"slices"
)

// SortedSet is an array of unique sorted values (i.e. no duplicates).  It is
// used wherever a small, deterministic set of identifiers is needed, such as
// the variables referenced by an invariant.
type SortedSet[T cmp.Ordered] []T

// NewSortedSet returns a sorted set holding the given elements.
func NewSortedSet[T cmp.Ordered](elements ...T) *SortedSet[T] {
	var set SortedSet[T]
	//
	for _, e := range elements {
		set.Insert(e)
	}
	//
	return &set
}

// Len returns the number of elements in this set.
func (p *SortedSet[T]) Len() int {
	return len(*p)
}

// Insert an element into this sorted set.
func (p *SortedSet[T]) Insert(element T) {
	// Find index where element either does occur, or should occur.
	i, found := slices.BinarySearch(*p, element)
	//
	if !found {
		*p = slices.Insert(*p, i, element)
	}
}

// InsertSorted inserts all elements in a given sorted set into this set.
func (p *SortedSet[T]) InsertSorted(q *SortedSet[T]) {
	var (
		left  = *p
		right = *q
		n     = countDuplicates(left, right)
	)
	// Right set completely included in left, nothing to do.
	if n == len(right) {
		return
	}
	//
	ndata := make([]T, len(left)+len(right)-n)
	mergeSorted(ndata, left, right)
	*p = ndata
}

// Determine number of duplicate elements
func countDuplicates[T cmp.Ordered](left []T, right []T) int {
	i, j, n := 0, 0, 0
	//
	for i < len(left) && j < len(right) {
		switch {
		case left[i] < right[j]:
			i++
		case left[i] > right[j]:
			j++
		default:
			i++
			j++
			n++
		}
	}
	//
	return n
}

// Merge two sorted arrays (left and right) into a target array.  This assumes
// the target array is big enough.
func mergeSorted[T cmp.Ordered](target []T, left []T, right []T) {
	i, j, k := 0, 0, 0
	// Merge overlap of both sets
	for ; i < len(left) && j < len(right); k++ {
		switch {
		case left[i] < right[j]:
			target[k] = left[i]
			i++
		case left[i] > right[j]:
			target[k] = right[j]
			j++
		default:
			target[k] = left[i]
			i++
			j++
		}
	}
	// Handle anything left
	if i < len(left) {
		copy(target[k:], left[i:])
	} else if j < len(right) {
		copy(target[k:], right[j:])
	}
}

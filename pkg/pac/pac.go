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
package pac

import (
	"errors"
	"fmt"
	"math"
)

// DefaultDelta is the confidence parameter used unless one is given.
const DefaultDelta = 0.01

// ErrInvalidConfidence indicates a confidence parameter outside (0,1).  For
// such a delta, the bound computed by Epsilon is meaningless but is still
// returned.
var ErrInvalidConfidence = errors.New("confidence parameter must lie in (0,1)")

// Epsilon returns the generalisation error bound for a finite hypothesis space
// consistent with the given number of samples, holding with probability at
// least 1-delta:
//
//	(ln(space) + ln(1/delta)) / samples
//
// When there are no samples, or no hypotheses, the bound is defined as zero.
// The caller is responsible for delta, which is not checked here (see
// CheckDelta).
func Epsilon(samples uint, space uint, delta float64) float64 {
	if samples == 0 || space == 0 {
		return 0
	}
	//
	return (1 / float64(samples)) * (math.Log(float64(space)) + math.Log(1/delta))
}

// CheckDelta reports whether a confidence parameter is in range.
func CheckDelta(delta float64) error {
	if !(delta > 0 && delta < 1) {
		return fmt.Errorf("%w (got %v)", ErrInvalidConfidence, delta)
	}
	//
	return nil
}

// Bounds holds the two bounds reported for a run: one over the deduplicated
// samples, and one over all samples as collected.
type Bounds struct {
	Delta     float64 `json:"delta" yaml:"delta"`
	Unique    float64 `json:"eps" yaml:"eps"`
	NonUnique float64 `json:"eps-no-uniq" yaml:"eps-no-uniq"`
}

// NewBounds computes both bounds for a given hypothesis space size.
func NewBounds(unique uint, nonUnique uint, space uint, delta float64) Bounds {
	return Bounds{
		Delta:     delta,
		Unique:    Epsilon(unique, space, delta),
		NonUnique: Epsilon(nonUnique, space, delta),
	}
}

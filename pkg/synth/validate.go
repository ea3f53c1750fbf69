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
	"runtime"

	inv "github.com/consensys/go-pacfix/pkg/invariant"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Validate filters a hypothesis space against labelled samples.  A hypothesis
// survives only if it is false on every negative valuation and true on every
// positive valuation; checking stops at the first violation.  A hypothesis
// which cannot be evaluated on some sample (e.g. the sample does not define a
// variable it reads) is dropped.  The surviving hypotheses are returned in
// their original order.
//
// Hypotheses are independent of each other, hence they are checked in parallel
// by at most workers go-routines sharing the (read-only) valuations.  A
// non-positive number of workers selects GOMAXPROCS.
func Validate(space []inv.Expr, neg []inv.Valuation, pos []inv.Valuation, workers int) []inv.Expr {
	var (
		group errgroup.Group
		keep  = make([]bool, len(space))
	)
	//
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	//
	group.SetLimit(workers)
	//
	for i, h := range space {
		i, h := i, h // per-iteration copies (go.mod targets go 1.21)
		group.Go(func() error {
			keep[i] = Check(h, neg, pos)
			return nil
		})
	}
	// Per-hypothesis failures are recovered locally, so this cannot fail.
	_ = group.Wait()
	//
	refined := make([]inv.Expr, 0, len(space))
	//
	for i, h := range space {
		if keep[i] {
			refined = append(refined, h)
		}
	}
	//
	return refined
}

// Check determines whether a single hypothesis separates the negative samples
// from the positive samples.
func Check(h inv.Expr, neg []inv.Valuation, pos []inv.Valuation) bool {
	// negative validation: invariant should be false
	for _, vals := range neg {
		if holds, err := inv.Holds(h, vals); err != nil {
			log.Debugf("invalid: %s on %v (%v)", h, vals, err)
			return false
		} else if holds {
			log.Debugf("invalid neg: %s from %v", h, vals)
			return false
		}
	}
	// positive validation: invariant should be true
	for _, vals := range pos {
		if holds, err := inv.Holds(h, vals); err != nil {
			log.Debugf("invalid: %s on %v (%v)", h, vals, err)
			return false
		} else if !holds {
			log.Debugf("invalid pos: %s from %v", h, vals)
			return false
		}
	}
	//
	return true
}

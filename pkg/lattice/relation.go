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
package lattice

import (
	"math"

	inv "github.com/consensys/go-pacfix/pkg/invariant"
)

// Relation describes how two invariants are ordered by implication.
type Relation uint8

const (
	// Incomparable indicates neither invariant implies the other (as far as
	// can be determined).
	Incomparable Relation = iota
	// Equal indicates both invariants imply each other.
	Equal
	// StrictlyImplies indicates the first invariant implies the second, but
	// not vice-versa.
	StrictlyImplies
	// StrictlyImpliedBy indicates the second invariant implies the first, but
	// not vice-versa.
	StrictlyImpliedBy
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "equal"
	case StrictlyImplies:
		return "implies"
	case StrictlyImpliedBy:
		return "implied-by"
	default:
		return "incomparable"
	}
}

// Compare determines the implication relation between two invariants.
// Structurally identical invariants are always equal.  Otherwise, both must be
// bounds on the same term (a variable, or the difference of two variables)
// in which case the relation follows from the sets of values each bound
// admits.  Anything else is incomparable.
func Compare(a inv.Expr, b inv.Expr) Relation {
	if inv.Equal(a, b) {
		return Equal
	}
	//
	pa, okA := normalise(a)
	pb, okB := normalise(b)
	//
	if !okA || !okB || pa.term != pb.term {
		return Incomparable
	}
	//
	ab, ba := pa.implies(pb), pb.implies(pa)
	//
	switch {
	case ab && ba:
		return Equal
	case ab:
		return StrictlyImplies
	case ba:
		return StrictlyImpliedBy
	default:
		return Incomparable
	}
}

// ============================================================================
// Bounds
// ============================================================================

// term is either a single variable (when diff is false) or the difference
// "first - second" of two distinct variables, with first < second.
type term struct {
	first  uint
	second uint
	diff   bool
}

// bound is an atomic constraint "term op constant", where op is one of EQ, NE,
// GE or LE.
type bound struct {
	term     term
	op       inv.Kind
	constant int64
}

// implies checks whether every value admitted by this bound is admitted by
// another bound over the same term.
func (p bound) implies(q bound) bool {
	c, d := p.constant, q.constant
	//
	switch p.op {
	case inv.EQ:
		switch q.op {
		case inv.EQ:
			return c == d
		case inv.NE:
			return c != d
		case inv.GE:
			return c >= d
		case inv.LE:
			return c <= d
		}
	case inv.GE:
		switch q.op {
		case inv.GE:
			return c >= d
		case inv.NE:
			return d < c
		}
	case inv.LE:
		switch q.op {
		case inv.LE:
			return c <= d
		case inv.NE:
			return d > c
		}
	case inv.NE:
		return q.op == inv.NE && c == d
	}
	//
	return false
}

// normalise attempts to rewrite an invariant as a bound.  For example,
// "x > 3" becomes "x >= 4", "y - x >= 2" becomes "x - y <= -2" and "x >= y"
// becomes "x - y >= 0".
func normalise(e inv.Expr) (bound, bool) {
	b, ok := e.(*inv.Binary)
	//
	if !ok || !b.Kind().IsRelational() {
		return bound{}, false
	}
	//
	op := b.Kind()
	// Put the constant on the right-hand side
	lhs, rhs := b.Left(), b.Right()
	if _, ok := lhs.(*inv.Constant); ok {
		lhs, rhs, op = rhs, lhs, mirror(op)
	}
	//
	var (
		t      term
		c      int64
		second *inv.Variable
	)
	//
	if v, ok := rhs.(*inv.Variable); ok {
		// v1 op v2 is equivalent to v1 - v2 op 0
		second = v
	} else if k, ok := rhs.(*inv.Constant); ok {
		c = k.Value()
	} else {
		return bound{}, false
	}
	//
	switch l := lhs.(type) {
	case *inv.Variable:
		if second == nil {
			t = term{l.ID(), 0, false}
		} else {
			t = term{l.ID(), second.ID(), true}
		}
	case *inv.Binary:
		a, okA := l.Left().(*inv.Variable)
		z, okZ := l.Right().(*inv.Variable)
		//
		if second != nil || l.Kind() != inv.SUB || !okA || !okZ {
			return bound{}, false
		}
		//
		t = term{a.ID(), z.ID(), true}
	default:
		return bound{}, false
	}
	//
	if t.diff && t.first == t.second {
		return bound{}, false
	}
	// Strict comparisons become non-strict over the integers
	switch op {
	case inv.GT:
		if c == math.MaxInt64 {
			return bound{}, false
		}
		//
		op, c = inv.GE, c+1
	case inv.LT:
		if c == math.MinInt64 {
			return bound{}, false
		}
		//
		op, c = inv.LE, c-1
	}
	// Orient differences so the lowest variable comes first
	if t.diff && t.first > t.second {
		if c == math.MinInt64 {
			return bound{}, false
		}
		//
		t.first, t.second = t.second, t.first
		op, c = mirror(op), -c
	}
	//
	return bound{t, op, c}, true
}

// mirror returns the operator obtained by swapping the operands of a
// comparison.
func mirror(op inv.Kind) inv.Kind {
	switch op {
	case inv.GE:
		return inv.LE
	case inv.LE:
		return inv.GE
	case inv.GT:
		return inv.LT
	case inv.LT:
		return inv.GT
	default:
		return op
	}
}

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
	"slices"
	"testing"

	inv "github.com/consensys/go-pacfix/pkg/invariant"
)

var (
	x = inv.NewVar(1)
	y = inv.NewVar(2)
	z = inv.NewVar(3)
)

func c(v int64) inv.Expr { return inv.NewConst(v) }

func Test_Compare_01(t *testing.T) {
	check_Compare(t, inv.Ge(x, c(3)), inv.Ge(x, c(1)), StrictlyImplies)
	check_Compare(t, inv.Ge(x, c(1)), inv.Ge(x, c(3)), StrictlyImpliedBy)
	check_Compare(t, inv.Ge(x, c(3)), inv.Ge(x, c(3)), Equal)
}

func Test_Compare_02(t *testing.T) {
	check_Compare(t, inv.Le(x, c(1)), inv.Le(x, c(3)), StrictlyImplies)
	check_Compare(t, inv.Le(x, c(1)), inv.Ge(x, c(0)), Incomparable)
	check_Compare(t, inv.Le(x, c(-1)), inv.Ne(x, c(0)), StrictlyImplies)
	check_Compare(t, inv.Le(x, c(0)), inv.Ne(x, c(0)), Incomparable)
}

func Test_Compare_03(t *testing.T) {
	check_Compare(t, inv.Eq(x, c(3)), inv.Ne(x, c(0)), StrictlyImplies)
	check_Compare(t, inv.Eq(x, c(0)), inv.Ne(x, c(0)), Incomparable)
	check_Compare(t, inv.Eq(x, c(3)), inv.Ge(x, c(-10)), StrictlyImplies)
	check_Compare(t, inv.Eq(x, c(3)), inv.Le(x, c(2)), Incomparable)
	check_Compare(t, inv.Eq(x, c(3)), inv.Eq(x, c(4)), Incomparable)
}

func Test_Compare_04(t *testing.T) {
	check_Compare(t, inv.Ne(x, c(0)), inv.Ne(x, c(1)), Incomparable)
	check_Compare(t, inv.Ne(x, c(0)), inv.Ge(x, c(1)), StrictlyImpliedBy)
}

func Test_Compare_05(t *testing.T) {
	// Different terms are incomparable
	check_Compare(t, inv.Ge(x, c(3)), inv.Ge(y, c(1)), Incomparable)
	check_Compare(t, inv.Ge(inv.Sub(x, y), c(3)), inv.Ge(x, c(1)), Incomparable)
}

func Test_Compare_06(t *testing.T) {
	// x - y >= 3 implies x >= y
	check_Compare(t, inv.Ge(inv.Sub(x, y), c(3)), inv.Ge(x, y), StrictlyImplies)
	// y - x >= 3 is x - y <= -3, which implies y >= x
	check_Compare(t, inv.Ge(inv.Sub(y, x), c(3)), inv.Ge(y, x), StrictlyImplies)
	check_Compare(t, inv.Ge(inv.Sub(y, x), c(3)), inv.Ge(x, y), Incomparable)
	check_Compare(t, inv.Ge(inv.Sub(y, x), c(5)), inv.Ge(inv.Sub(y, x), c(2)), StrictlyImplies)
}

func Test_Compare_07(t *testing.T) {
	// Strict comparisons over the integers
	check_Compare(t, inv.Gt(x, c(2)), inv.Ge(x, c(3)), Equal)
	check_Compare(t, inv.Lt(x, c(2)), inv.Le(x, c(1)), Equal)
	check_Compare(t, inv.Ge(c(2), x), inv.Le(x, c(2)), Equal)
	check_Compare(t, inv.Ge(x, y), inv.Le(y, x), Equal)
}

func Test_Compare_08(t *testing.T) {
	// Shapes outside the template family are only equal to themselves
	a := inv.Ge(inv.Div(x, c(2)), y)
	b := inv.Ge(inv.Div(x, c(3)), y)
	check_Compare(t, a, a, Equal)
	check_Compare(t, a, b, Incomparable)
	check_Compare(t, inv.Ge(inv.Sub(x, x), c(0)), inv.Ge(x, c(0)), Incomparable)
}

func Test_Reduce_01(t *testing.T) {
	reduced := Reduce([]inv.Expr{
		inv.Ne(x, c(0)),
		inv.Ge(x, c(1)),
		inv.Ge(x, c(3)),
		inv.Le(x, c(10)),
		inv.Eq(x, c(3)),
	})
	//
	check_Exprs(t, reduced, "(VAR(1) == CONST(3))")
}

func Test_Reduce_02(t *testing.T) {
	reduced := Reduce([]inv.Expr{
		inv.Ge(x, c(1)),
		inv.Le(x, c(10)),
		inv.Ge(y, c(0)),
		inv.Ge(inv.Sub(x, y), c(1)),
		inv.Ge(inv.Sub(x, y), c(2)),
		inv.Ge(x, y),
		inv.Ne(z, c(0)),
	})
	//
	check_Exprs(t, reduced,
		"(VAR(1) >= CONST(1))",
		"(VAR(1) <= CONST(10))",
		"(VAR(2) >= CONST(0))",
		"((VAR(1) - VAR(2)) >= CONST(2))",
		"(VAR(3) != CONST(0))")
}

func Test_Reduce_03(t *testing.T) {
	// Duplicates keep the first occurrence
	a := inv.Ge(inv.Sub(x, y), c(2))
	b := inv.Ge(inv.Sub(x, y), c(2))
	reduced := Reduce([]inv.Expr{a, b})
	//
	if len(reduced) != 1 || reduced[0] != a {
		t.Errorf("expected first duplicate to survive, got %v", reduced)
	}
}

func Test_Reduce_04(t *testing.T) {
	// Equivalent but differently shaped invariants
	a := inv.Ge(x, y)
	b := inv.Le(y, x)
	reduced := Reduce([]inv.Expr{b, a})
	//
	if len(reduced) != 1 || reduced[0] != b {
		t.Errorf("expected first equivalent to survive, got %v", reduced)
	}
}

func Test_Reduce_05(t *testing.T) {
	if reduced := Reduce(nil); len(reduced) != 0 {
		t.Errorf("expected nothing, got %v", reduced)
	}
}

func Test_Lattice_01(t *testing.T) {
	l := New()
	a := l.Add(inv.Ge(x, c(1)))
	b := l.Add(inv.Ge(x, c(5)))
	d := l.Add(inv.Ge(x, c(3)))
	e := l.Add(inv.Ge(y, c(3)))
	//
	if !slices.Equal(l.Node(b).Implies, []uint{a, d}) || !slices.Equal(l.Node(d).Implies, []uint{a}) {
		t.Errorf("missing implication edges")
	}
	//
	if l.Node(a).ImpliedBy.Len() != 2 || l.Node(b).ImpliedBy.Len() != 0 {
		t.Errorf("unexpected parents")
	}
	//
	if l.Node(e).Implies.Len() != 0 || l.Node(e).ImpliedBy.Len() != 0 {
		t.Errorf("unrelated node connected")
	}
	//
	check_Exprs(t, l.Minimal(), "(VAR(1) >= CONST(5))", "(VAR(2) >= CONST(3))")
}

func check_Compare(t *testing.T, a inv.Expr, b inv.Expr, expected Relation) {
	t.Helper()
	//
	if actual := Compare(a, b); actual != expected {
		t.Errorf("comparing %s with %s gave %s, expected %s", a, b, actual, expected)
	}
}

func check_Exprs(t *testing.T, actual []inv.Expr, expected ...string) {
	t.Helper()
	//
	if len(actual) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
	//
	for i, e := range actual {
		if e.String() != expected[i] {
			t.Errorf("invariant %d: expected %s, got %s", i, expected[i], e)
		}
	}
}

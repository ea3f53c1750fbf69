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
package smt

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	inv "github.com/consensys/go-pacfix/pkg/invariant"
)

var table = inv.NewTable(
	inv.LiveVariable{ID: 1, Name: "x", Kind: inv.INT},
	inv.LiveVariable{ID: 2, Name: "len", Kind: inv.INT},
	inv.LiveVariable{ID: 3, Name: "p", Kind: inv.PTR},
)

func Test_Term_01(t *testing.T) {
	check_Term(t, inv.Ge(inv.Sub(inv.NewVar(1), inv.NewVar(2)), inv.NewConst(3)), "(>= (- x len) 3)")
	check_Term(t, inv.Ne(inv.NewVar(3), inv.NewConst(0)), "(not (= p 0))")
	check_Term(t, inv.Le(inv.NewVar(1), inv.NewConst(-10)), "(<= x (- 10))")
	check_Term(t, inv.Ge(inv.Div(inv.NewVar(1), inv.NewConst(2)), inv.NewVar(2)), "(>= (div x 2) len)")
}

func Test_Term_02(t *testing.T) {
	_, err := Term(inv.NewVar(9), table)
	//
	if !errors.Is(err, inv.ErrUnknownVariableID) {
		t.Errorf("expected unknown variable, got %v", err)
	}
}

func Test_Write_01(t *testing.T) {
	var buf bytes.Buffer
	//
	invariants := []inv.Expr{
		inv.Ne(inv.NewVar(3), inv.NewConst(0)),
		inv.Ge(inv.NewVar(1), inv.NewConst(1)),
	}
	//
	if err := Write(&buf, invariants, table); err != nil {
		t.Fatal(err)
	}
	//
	expected := "(declare-fun x () Int)\n(declare-fun p () Int)\n(assert (and (not (= p 0)) (>= x 1)))\n(check-sat)\n"
	if buf.String() != expected {
		t.Errorf("unexpected script:\n%s", buf.String())
	}
}

func Test_Write_02(t *testing.T) {
	var buf bytes.Buffer
	//
	if err := Write(&buf, nil, table); err != nil {
		t.Fatal(err)
	} else if buf.String() != "(assert true)\n(check-sat)\n" {
		t.Errorf("unexpected script:\n%s", buf.String())
	}
}

func Test_WriteFile_01(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "smt")
	filename, err := WriteFile(dir, []inv.Expr{inv.Eq(inv.NewVar(2), inv.NewConst(4))}, table)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	bytes, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	} else if string(bytes) != "(declare-fun len () Int)\n(assert (= len 4))\n(check-sat)\n" {
		t.Errorf("unexpected script:\n%s", bytes)
	}
}

func Test_Write_03(t *testing.T) {
	var buf bytes.Buffer
	//
	named := inv.NewTable(
		inv.LiveVariable{ID: 1, Name: "buf[0]", Kind: inv.INT},
		inv.LiveVariable{ID: 2, Name: "1tmp", Kind: inv.INT},
		inv.LiveVariable{ID: 3, Name: "a b", Kind: inv.INT},
	)
	invariants := []inv.Expr{
		inv.Ge(inv.NewVar(1), inv.NewVar(2)),
		inv.Ge(inv.NewVar(3), inv.NewConst(-2)),
	}
	//
	if err := Write(&buf, invariants, named); err != nil {
		t.Fatal(err)
	}
	//
	expected := "(declare-fun |buf[0]| () Int)\n(declare-fun |1tmp| () Int)\n(declare-fun |a b| () Int)\n" +
		"(assert (and (>= |buf[0]| |1tmp|) (>= |a b| (- 2))))\n(check-sat)\n"
	if buf.String() != expected {
		t.Errorf("unexpected script:\n%s", buf.String())
	}
}

func Test_Write_04(t *testing.T) {
	var buf bytes.Buffer
	//
	for _, name := range []string{"a|b", "a\\b"} {
		named := inv.NewTable(inv.LiveVariable{ID: 1, Name: name, Kind: inv.INT})
		err := Write(&buf, []inv.Expr{inv.Ne(inv.NewVar(1), inv.NewConst(0))}, named)
		//
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("expected invalid name for %q, got %v", name, err)
		}
	}
	//
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %s", buf.String())
	}
}

func check_Term(t *testing.T, e inv.Expr, expected string) {
	t.Helper()
	//
	term, err := Term(e, table)
	//
	if err != nil {
		t.Errorf("translating %s failed: %v", e, err)
	} else if s := term.String(true); s != expected {
		t.Errorf("translating %s gave %s, expected %s", e, s, expected)
	}
}

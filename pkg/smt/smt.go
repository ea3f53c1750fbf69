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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	inv "github.com/consensys/go-pacfix/pkg/invariant"
	"github.com/consensys/go-pacfix/pkg/util/collection/set"
	"github.com/consensys/go-pacfix/pkg/util/source/sexp"
	"github.com/pkg/errors"
)

// Filename is the name of the file written into an output directory.
const Filename = "invariants.smt2"

// ErrInvalidName is reported for a live variable whose name cannot be written
// as an SMT-LIB symbol, even when quoted.
var ErrInvalidName = errors.New("invalid SMT-LIB symbol")

var operators = map[inv.Kind]string{
	inv.EQ: "=", inv.GT: ">", inv.GE: ">=", inv.LT: "<", inv.LE: "<=",
	inv.ADD: "+", inv.SUB: "-", inv.MUL: "*", inv.DIV: "div",
}

// Script translates the conjunction of a set of invariants into an SMT-LIB
// script over integers: one declaration per referenced variable, one assertion
// and a final check.  Note that SMT-LIB "div" is euclidean, hence agrees with
// flooring division only for positive divisors.
func Script(invariants []inv.Expr, table *inv.Table) ([]sexp.SExp, error) {
	var (
		script    []sexp.SExp
		vars      = set.NewSortedSet[uint]()
		conjuncts []sexp.SExp
	)
	//
	for _, e := range invariants {
		vars.InsertSorted(inv.Variables(e))
		//
		term, err := Term(e, table)
		if err != nil {
			return nil, err
		}
		//
		conjuncts = append(conjuncts, term)
	}
	//
	for _, id := range *vars {
		name, err := variable(id, table)
		if err != nil {
			return nil, err
		}
		//
		decl := sexp.NewList(symbol("declare-fun"), name, sexp.NewList(), symbol("Int"))
		script = append(script, decl)
	}
	//
	var assertion sexp.SExp
	//
	switch len(conjuncts) {
	case 0:
		assertion = symbol("true")
	case 1:
		assertion = conjuncts[0]
	default:
		assertion = sexp.NewList(append([]sexp.SExp{symbol("and")}, conjuncts...)...)
	}
	//
	script = append(script, sexp.NewList(symbol("assert"), assertion))
	script = append(script, sexp.NewList(symbol("check-sat")))
	//
	return script, nil
}

// Term translates a single invariant into an SMT-LIB term.
func Term(e inv.Expr, table *inv.Table) (sexp.SExp, error) {
	switch t := e.(type) {
	case *inv.Variable:
		return variable(t.ID(), table)
	case *inv.Constant:
		if t.Value() < 0 {
			// negative literals are written as negations
			return sexp.NewList(symbol("-"), symbol(strconv.FormatUint(-uint64(t.Value()), 10))), nil
		}
		//
		return symbol(strconv.FormatInt(t.Value(), 10)), nil
	case *inv.Binary:
		l, err := Term(t.Left(), table)
		if err != nil {
			return nil, err
		}
		//
		r, err := Term(t.Right(), table)
		if err != nil {
			return nil, err
		}
		//
		if t.Kind() == inv.NE {
			return sexp.NewList(symbol("not"), sexp.NewList(symbol("="), l, r)), nil
		}
		//
		return sexp.NewList(symbol(operators[t.Kind()]), l, r), nil
	}
	//
	panic(fmt.Sprintf("unknown invariant %s", e))
}

// Write writes the script for a set of invariants, one command per line.
func Write(w io.Writer, invariants []inv.Expr, table *inv.Table) error {
	script, err := Script(invariants, table)
	if err != nil {
		return err
	}
	//
	for _, cmd := range script {
		if _, err := fmt.Fprintln(w, cmd.String(true)); err != nil {
			return err
		}
	}
	//
	return nil
}

// WriteFile writes the script for a set of invariants into a given directory,
// creating it if necessary.  The path of the written file is returned.
func WriteFile(dir string, invariants []inv.Expr, table *inv.Table) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	//
	filename := filepath.Join(dir, Filename)
	//
	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	//
	if err := Write(file, invariants, table); err != nil {
		file.Close()
		return "", errors.Wrap(err, filename)
	}
	//
	return filename, file.Close()
}

// Translate a variable into the symbol for its name.  Names which are not
// simple symbols are quoted when written.
func variable(id uint, table *inv.Table) (sexp.SExp, error) {
	lv, ok := table.Lookup(id)
	//
	if !ok {
		return nil, errors.Wrapf(inv.ErrUnknownVariableID, "%d", id)
	} else if !sexp.Quotable(lv.Name) {
		return nil, errors.Wrapf(ErrInvalidName, "%q", lv.Name)
	}
	//
	return symbol(lv.Name), nil
}

func symbol(s string) *sexp.Symbol {
	return sexp.NewSymbol(s)
}

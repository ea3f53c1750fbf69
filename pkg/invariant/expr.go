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

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Expr is a node of an invariant tree.  The set of implementations is closed:
// a node is either a variable access, a constant, a relation between two
// arithmetic terms or an arithmetic operation over two terms.  Trees are
// immutable once constructed.
type Expr interface {
	// Kind identifies the variant of this node.
	Kind() Kind
	// Eval evaluates this node against a given valuation.  Evaluation fails
	// if a variable is not defined by the valuation, or a divisor is zero.
	Eval(Valuation) (Value, error)
	// Children returns the two children of a binary node, or nil for a leaf.
	Children() []Expr
	// String returns a debug rendering which shows raw variable identifiers.
	String() string
	// Render returns a human-readable rendering which substitutes each
	// variable with its declared name.
	Render(*Table) (string, error)
	// prevent implementations outside this package.
	node()
}

// ============================================================================
// Variable
// ============================================================================

// Variable reads the value of a live variable.
type Variable struct {
	id uint
}

// NewVar constructs a variable access for the given identifier.
func NewVar(id uint) *Variable {
	return &Variable{id}
}

// ID returns the identifier of the live variable being accessed.
func (e *Variable) ID() uint { return e.id }

// Kind implementation for Expr interface.
func (e *Variable) Kind() Kind { return VAR }

// Children implementation for Expr interface.
func (e *Variable) Children() []Expr { return nil }

// Eval implementation for Expr interface.
func (e *Variable) Eval(vals Valuation) (Value, error) {
	if v, ok := vals[e.id]; ok {
		return Int(v), nil
	}
	//
	return Value{}, fmt.Errorf("%w: VAR(%d)", ErrUndefinedVariable, e.id)
}

func (e *Variable) String() string {
	return fmt.Sprintf("VAR(%d)", e.id)
}

// Render implementation for Expr interface.
func (e *Variable) Render(table *Table) (string, error) {
	if lv, ok := table.Lookup(e.id); ok {
		return lv.Name, nil
	}
	//
	return "", errors.Wrapf(ErrUnknownVariableID, "%d", e.id)
}

func (e *Variable) node() {}

// ============================================================================
// Constant
// ============================================================================

// Constant is an integer literal.
type Constant struct {
	value int64
}

// NewConst constructs a constant.
func NewConst(value int64) *Constant {
	return &Constant{value}
}

// Value returns the literal value.
func (e *Constant) Value() int64 { return e.value }

// Kind implementation for Expr interface.
func (e *Constant) Kind() Kind { return CONST }

// Children implementation for Expr interface.
func (e *Constant) Children() []Expr { return nil }

// Eval implementation for Expr interface.
func (e *Constant) Eval(Valuation) (Value, error) {
	return Int(e.value), nil
}

func (e *Constant) String() string {
	return fmt.Sprintf("CONST(%d)", e.value)
}

// Render implementation for Expr interface.
func (e *Constant) Render(*Table) (string, error) {
	return strconv.FormatInt(e.value, 10), nil
}

func (e *Constant) node() {}

// ============================================================================
// Binary
// ============================================================================

// Binary is a relational or arithmetic node over exactly two children.
type Binary struct {
	op    Kind
	left  Expr
	right Expr
}

func newBinary(op Kind, left Expr, right Expr) *Binary {
	if left == nil || right == nil {
		panic(fmt.Sprintf("binary invariant %s requires two children", op))
	}
	//
	return &Binary{op, left, right}
}

// Eq constructs "left == right".
func Eq(left Expr, right Expr) *Binary { return newBinary(EQ, left, right) }

// Ne constructs "left != right".
func Ne(left Expr, right Expr) *Binary { return newBinary(NE, left, right) }

// Gt constructs "left > right".
func Gt(left Expr, right Expr) *Binary { return newBinary(GT, left, right) }

// Ge constructs "left >= right".
func Ge(left Expr, right Expr) *Binary { return newBinary(GE, left, right) }

// Lt constructs "left < right".
func Lt(left Expr, right Expr) *Binary { return newBinary(LT, left, right) }

// Le constructs "left <= right".
func Le(left Expr, right Expr) *Binary { return newBinary(LE, left, right) }

// Add constructs "left + right".
func Add(left Expr, right Expr) *Binary { return newBinary(ADD, left, right) }

// Sub constructs "left - right".
func Sub(left Expr, right Expr) *Binary { return newBinary(SUB, left, right) }

// Mul constructs "left * right".
func Mul(left Expr, right Expr) *Binary { return newBinary(MUL, left, right) }

// Div constructs "left / right".
func Div(left Expr, right Expr) *Binary { return newBinary(DIV, left, right) }

// Kind implementation for Expr interface.
func (e *Binary) Kind() Kind { return e.op }

// Left returns the left-hand child.
func (e *Binary) Left() Expr { return e.left }

// Right returns the right-hand child.
func (e *Binary) Right() Expr { return e.right }

// Children implementation for Expr interface.
func (e *Binary) Children() []Expr { return []Expr{e.left, e.right} }

// Eval implementation for Expr interface.
func (e *Binary) Eval(vals Valuation) (Value, error) {
	lhs, err := e.left.Eval(vals)
	if err != nil {
		return Value{}, err
	}
	//
	rhs, err := e.right.Eval(vals)
	if err != nil {
		return Value{}, err
	}
	//
	l, r := lhs.AsInt(), rhs.AsInt()
	//
	switch e.op {
	case EQ:
		return Bool(l == r), nil
	case NE:
		return Bool(l != r), nil
	case GT:
		return Bool(l > r), nil
	case GE:
		return Bool(l >= r), nil
	case LT:
		return Bool(l < r), nil
	case LE:
		return Bool(l <= r), nil
	case ADD:
		return Int(l + r), nil
	case SUB:
		return Int(l - r), nil
	case MUL:
		return Int(l * r), nil
	case DIV:
		if r == 0 {
			return Value{}, fmt.Errorf("%w: %s", ErrDivisionByZero, e)
		}
		//
		return Int(FloorDiv(l, r)), nil
	}
	//
	panic(fmt.Sprintf("unknown invariant kind %d", e.op))
}

func (e *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", e.left, e.op, e.right)
}

// Render implementation for Expr interface.
func (e *Binary) Render(table *Table) (string, error) {
	l, err := e.left.Render(table)
	if err != nil {
		return "", err
	}
	//
	r, err := e.right.Render(table)
	if err != nil {
		return "", err
	}
	//
	return fmt.Sprintf("(%s %s %s)", l, e.op, r), nil
}

func (e *Binary) node() {}

// FloorDiv divides rounding toward negative infinity, such that -7 / 2 gives
// -4.  The divisor must be non-zero.
func FloorDiv(l int64, r int64) int64 {
	q := l / r
	// Go truncates toward zero, so adjust when signs differ and the division
	// was inexact.
	if l%r != 0 && (l < 0) != (r < 0) {
		q--
	}
	//
	return q
}

// ============================================================================
// Helpers
// ============================================================================

// Holds evaluates an invariant and reports whether it is truthy on the given
// valuation.
func Holds(e Expr, vals Valuation) (bool, error) {
	v, err := e.Eval(vals)
	if err != nil {
		return false, err
	}
	//
	return v.Truthy(), nil
}

// Equal checks whether two invariants are structurally identical.
func Equal(a Expr, b Expr) bool {
	switch x := a.(type) {
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.id == y.id
	case *Constant:
		y, ok := b.(*Constant)
		return ok && x.value == y.value
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.op == y.op && Equal(x.left, y.left) && Equal(x.right, y.right)
	}
	//
	return false
}

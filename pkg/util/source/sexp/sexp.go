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
package sexp

import "strings"

// SExp is an S-Expression is either a List of zero or more S-Expressions, or
// a Symbol.  S-Expressions are the building blocks for solver input, where
// every term and command is written in this form.
type SExp interface {
	// AsList checks whether this S-Expression is a list and, if
	// so, returns it.  Otherwise, it returns nil.
	AsList() *List
	// AsSymbol checks whether this S-Expression is a symbol and,
	// if so, returns it.  Otherwise, it returns nil.
	AsSymbol() *Symbol
	// String generates a string representation which may (may not) be quoted.
	// Quoting is used to manage symbol names which contain whitespace
	// characters and braces, etc.
	String(quote bool) string
}

// ===================================================================
// List
// ===================================================================

// List represents a list of zero or more S-Expressions.
type List struct {
	Elements []SExp
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*List)(nil)

// NewList creates a new list from a given array of S-Expressions.
func NewList(elements ...SExp) *List {
	return &List{elements}
}

// AsList returns the given list.
func (l *List) AsList() *List { return l }

// AsSymbol returns nil for a list.
func (l *List) AsSymbol() *Symbol { return nil }

// Len gets the number of elements in this list.
func (l *List) Len() int { return len(l.Elements) }

// Get the ith element of this list
func (l *List) Get(i int) SExp { return l.Elements[i] }

func (l *List) String(quote bool) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, e := range l.Elements {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(e.String(quote))
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ===================================================================
// Symbol
// ===================================================================

// Symbol represents a terminating symbol.
type Symbol struct {
	Value string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*Symbol)(nil)

// NewSymbol creates a new symbol from a given string.
func NewSymbol(value string) *Symbol {
	return &Symbol{value}
}

// AsList returns nil for a symbol.
func (s *Symbol) AsList() *List { return nil }

// AsSymbol returns the given symbol
func (s *Symbol) AsSymbol() *Symbol { return s }

// String returns the symbol, wrapped in vertical bars when quoting is requested
// and the symbol is neither a simple symbol nor a numeral.  Symbols containing
// '|' or '\' cannot be quoted at all (see Quotable).
func (s *Symbol) String(quote bool) string {
	if quote && !IsSimple(s.Value) {
		return "|" + s.Value + "|"
	}
	// No quote required
	return s.Value
}

// IsSimple checks whether a given string can be written without quotes.  That
// is, it is non-empty, consists only of letters, digits and the characters
// "~!@$%^&*_-+=<>.?/", and does not start with a digit unless it is a
// numeral.
func IsSimple(value string) bool {
	if value == "" {
		return false
	} else if strings.IndexFunc(value, isNotDigit) < 0 {
		// numeral
		return true
	} else if !isNotDigit(rune(value[0])) {
		return false
	}
	//
	return strings.IndexFunc(value, isNotSymbolLetter) < 0
}

// Quotable checks whether a given string can be written as a symbol, either
// directly or between vertical bars.
func Quotable(value string) bool {
	return !strings.ContainsAny(value, "|\\")
}

func isNotDigit(r rune) bool {
	return r < '0' || r > '9'
}

func isNotSymbolLetter(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	default:
		return !strings.ContainsRune("~!@$%^&*_-+=<>.?/", r)
	}
}

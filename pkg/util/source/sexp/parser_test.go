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

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrSyntax is reported for any malformed input.
var ErrSyntax = errors.New("syntax error")

// Parsing is only needed to check rendered output, hence it lives with the
// tests.

// Parse a given string into an S-expression, or return an error if the string
// is malformed.
func Parse(s string) (SExp, error) {
	p := NewParser(s)
	// Parse the input
	sExp, err := p.Parse()
	// Sanity check everything was parsed
	if err == nil {
		p.SkipWhiteSpace()
		//
		if p.index != len(p.text) {
			return nil, p.error("unexpected remainder")
		}
	}
	// Done
	return sExp, err
}

// ParseAll converts a given string into zero or more S-expressions, or returns
// an error if the string is malformed.  The key distinction from Parse is that
// this function continues parsing after the first S-expression is encountered.
func ParseAll(s string) ([]SExp, error) {
	p := NewParser(s)
	//
	terms := make([]SExp, 0)
	// Parse the input
	for {
		term, err := p.Parse()
		// Sanity check everything was parsed
		if err != nil {
			return terms, err
		} else if term == nil {
			// EOF reached
			return terms, nil
		}

		terms = append(terms, term)
	}
}

// Parser represents a parser in the process of parsing a given string into one
// or more S-expressions.
type Parser struct {
	// Cache (for simplicity)
	text []rune
	// Determine current position within text
	index int
}

// NewParser constructs a new instance of Parser
func NewParser(text string) *Parser {
	return &Parser{[]rune(text), 0}
}

// Parse a given string into an S-Expression, or produce an error.  Nil is
// returned (without error) when the end of input is reached.
func (p *Parser) Parse() (SExp, error) {
	token, err := p.Next()
	//
	switch {
	case err != nil:
		return nil, err
	case token == nil:
		return nil, nil
	case len(token) == 1 && token[0] == ')':
		p.index-- // backup
		return nil, p.error("unexpected end-of-list")
	case len(token) == 1 && token[0] == '(':
		elements, err := p.parseSequence()
		// Check for error
		if err != nil {
			return nil, err
		}
		// Done
		return &List{elements}, nil
	case token[0] == '|':
		// Quoted symbol
		return &Symbol{string(token[1 : len(token)-1])}, nil
	default:
		return &Symbol{string(token)}, nil
	}
}

// Next extracts the next token from a given string.
func (p *Parser) Next() ([]rune, error) {
	// Skip any whitespace and/or comments.
	p.SkipWhiteSpace()
	// Catch end-of-file
	if p.index == len(p.text) {
		return nil, nil
	}
	// Check what we have
	switch p.text[p.index] {
	case '(', ')':
		// List begin / end
		p.index = p.index + 1
		return p.text[p.index-1 : p.index], nil
	case '|':
		return p.parseQuoted()
	}
	// Symbol
	return p.parseSymbol(), nil
}

// SkipWhiteSpace skips over any whitespace, including comments.
func (p *Parser) SkipWhiteSpace() {
	for p.index < len(p.text) && (unicode.IsSpace(p.text[p.index]) || p.text[p.index] == ';') {
		// Skip comment
		if p.text[p.index] == ';' {
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		} else {
			// skip space
			p.index++
		}
	}
}

func (p *Parser) parseSymbol() []rune {
	start := p.index
	//
	for p.index < len(p.text) {
		c := p.text[p.index]
		if c == '(' || c == ')' || c == '|' || c == ';' || unicode.IsSpace(c) {
			break
		}
		//
		p.index++
	}
	//
	return p.text[start:p.index]
}

func (p *Parser) parseQuoted() ([]rune, error) {
	start := p.index
	//
	for p.index++; p.index < len(p.text); p.index++ {
		if p.text[p.index] == '|' {
			p.index++
			return p.text[start:p.index], nil
		}
	}
	//
	p.index = start
	//
	return nil, p.error("unterminated symbol")
}

func (p *Parser) parseSequence() ([]SExp, error) {
	var elements []SExp

	for {
		p.SkipWhiteSpace()
		//
		if p.index == len(p.text) {
			return nil, p.error("unexpected end-of-file")
		} else if p.text[p.index] == ')' {
			// Consume terminator
			p.index++
			return elements, nil
		}
		// Parse next element
		element, err := p.Parse()
		if err != nil {
			return nil, err
		}
		// Continue around!
		elements = append(elements, element)
	}
}

// Construct a parser error at the current position in the input stream.
func (p *Parser) error(msg string) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.index, msg)
}

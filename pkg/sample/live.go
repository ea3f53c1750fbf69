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
package sample

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	inv "github.com/consensys/go-pacfix/pkg/invariant"
	"github.com/consensys/go-pacfix/pkg/util"
	"github.com/pkg/errors"
)

// ReadLiveVars reads a live variable table from a file.
func ReadLiveVars(filename string) (*inv.Table, error) {
	file, err := util.OpenInput(filename)
	if err != nil {
		return nil, err
	}
	//
	defer file.Close()
	//
	table, err := ParseLiveVars(file)
	//
	return table, errors.Wrap(err, filename)
}

// ParseLiveVars parses a live variable table, where each non-blank line holds
// an identifier, a name and a type, separated by whitespace.
func ParseLiveVars(r io.Reader) (*inv.Table, error) {
	var (
		table   = inv.NewTable()
		scanner = bufio.NewScanner(r)
		num     = 0
	)
	//
	for scanner.Scan() {
		num++
		//
		fields := strings.Fields(scanner.Text())
		//
		if len(fields) == 0 {
			continue
		} else if len(fields) != 3 {
			return nil, errors.Errorf("line %d: expected \"id name type\", found %q", num, scanner.Text())
		}
		//
		id, err := strconv.ParseUint(fields[0], 10, 0)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid variable id", num)
		}
		//
		table.Declare(inv.LiveVariable{ID: uint(id), Name: fields[1], Kind: inv.ParseVarKind(fields[2])})
	}
	//
	return table, scanner.Err()
}

// ReadFilter reads the set of variable names to retain from a file.
func ReadFilter(filename string) (map[string]bool, error) {
	file, err := util.OpenInput(filename)
	if err != nil {
		return nil, err
	}
	//
	defer file.Close()
	//
	names, err := ParseFilter(file)
	//
	return names, errors.Wrap(err, filename)
}

// ParseFilter parses a set of variable names, one per non-blank line.
func ParseFilter(r io.Reader) (map[string]bool, error) {
	var (
		names   = make(map[string]bool)
		scanner = bufio.NewScanner(r)
	)
	//
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names[name] = true
		}
	}
	//
	return names, scanner.Err()
}

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

import "errors"

// ErrUndefinedVariable is returned when an invariant reads a variable which the
// valuation does not define.
var ErrUndefinedVariable = errors.New("undefined variable")

// ErrDivisionByZero is returned when the divisor of a division evaluates to
// zero.
var ErrDivisionByZero = errors.New("division by zero")

// ErrUnknownVariableID is returned when rendering an invariant against a table
// which does not declare one of its variables.
var ErrUnknownVariableID = errors.New("unknown variable id")

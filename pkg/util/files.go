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
package util

import (
	"compress/bzip2"
	"io"
	"os"
	"path"
)

// OpenInput opens a given file for reading.  Files with a ".bz2" extension are
// decompressed on the fly.
func OpenInput(filename string) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	// check extension
	switch path.Ext(filename) {
	case ".bz2":
		return &compressed{bzip2.NewReader(file), file}, nil
	default:
		return file, nil
	}
}

// ReadInputFile reads the entire contents of a given (possibly compressed)
// file.
func ReadInputFile(filename string) (string, error) {
	file, err := OpenInput(filename)
	if err != nil {
		return "", err
	}
	//
	defer file.Close()
	//
	bytes, err := io.ReadAll(file)
	//
	return string(bytes), err
}

// Reads through a decompressor, but closes the underlying file.
type compressed struct {
	io.Reader
	file *os.File
}

func (p *compressed) Close() error {
	return p.file.Close()
}

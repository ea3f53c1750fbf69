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
package pipeline

import (
	inv "github.com/consensys/go-pacfix/pkg/invariant"
	"github.com/consensys/go-pacfix/pkg/sample"
	log "github.com/sirupsen/logrus"
)

// Inputs identifies the files from which a run is loaded.
type Inputs struct {
	// Directory holding "neg" and "pos" sample directories.
	InputDir string `validate:"required,dir"`
	// Live variable declarations.
	LiveVars string `validate:"required,file"`
	// Optional file naming the live variables to retain.
	Filter string `validate:"omitempty,file"`
	// How sample blocks are labelled.
	Mode sample.Mode
}

// Load reads the live variable table and the sample corpus for a run.
func Load(in Inputs) (*inv.Table, sample.Corpus, error) {
	table, err := sample.ReadLiveVars(in.LiveVars)
	if err != nil {
		return nil, sample.Corpus{}, err
	}
	//
	if in.Filter != "" {
		names, err := sample.ReadFilter(in.Filter)
		if err != nil {
			return nil, sample.Corpus{}, err
		}
		//
		total := table.Len()
		table = table.Filter(names)
		log.Debugf("retained %d of %d live variables", table.Len(), total)
	}
	//
	corpus, err := sample.LoadCorpus(in.InputDir, in.Mode)
	if err != nil {
		return nil, sample.Corpus{}, err
	}
	//
	return table, corpus, nil
}

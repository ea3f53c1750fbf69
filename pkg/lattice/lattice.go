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
	inv "github.com/consensys/go-pacfix/pkg/invariant"
	"github.com/consensys/go-pacfix/pkg/util/collection/set"
	log "github.com/sirupsen/logrus"
)

// Node records one invariant along with its implication edges to the other
// invariants of the same lattice.
type Node struct {
	// Invariant held by this node.
	Invariant inv.Expr
	// ID of this node, which is its insertion index.
	ID uint
	// Nodes which imply this node.
	ImpliedBy set.SortedSet[uint]
	// Nodes which this node implies.
	Implies set.SortedSet[uint]
	// Variables referenced by the invariant.
	vars *set.SortedSet[uint]
}

// Lattice is the context for a single reduction.  It owns the nodes and the
// implication graph between them.  Edges only ever join invariants sharing at
// least one variable, and equal invariants are oriented from the earlier to
// the later node, hence the graph is acyclic.
type Lattice struct {
	nodes []*Node
	// Maps each variable to the nodes whose invariant reads it.
	byVar map[uint][]uint
}

// New constructs an empty lattice.
func New() *Lattice {
	return &Lattice{nil, make(map[uint][]uint)}
}

// Node returns the node with the given identifier.
func (p *Lattice) Node(id uint) *Node {
	return p.nodes[id]
}

// Add inserts an invariant, relating it to every existing node which shares a
// variable with it.  The identifier of the new node is returned.
func (p *Lattice) Add(e inv.Expr) uint {
	var (
		id         = uint(len(p.nodes))
		node       = &Node{Invariant: e, ID: id, vars: inv.Variables(e)}
		candidates set.SortedSet[uint]
	)
	// Identify candidates sharing at least one variable
	for _, v := range *node.vars {
		for _, other := range p.byVar[v] {
			candidates.Insert(other)
		}
		//
		p.byVar[v] = append(p.byVar[v], id)
	}
	//
	p.nodes = append(p.nodes, node)
	//
	for _, other := range candidates {
		switch Compare(e, p.nodes[other].Invariant) {
		case StrictlyImplies:
			p.connect(id, other)
		case StrictlyImpliedBy, Equal:
			// first inserted wins when equal
			p.connect(other, id)
		}
	}
	//
	return id
}

// Minimal returns the invariants which are not implied by any other invariant
// of the lattice, in insertion order.  Every node reachable along implication
// edges from a source node is redundant, since implication is transitive.
func (p *Lattice) Minimal() []inv.Expr {
	var (
		redundant = make([]bool, len(p.nodes))
		worklist  []uint
		minimal   []inv.Expr
	)
	//
	for _, n := range p.nodes {
		if n.ImpliedBy.Len() == 0 {
			worklist = append(worklist, n.Implies...)
		}
	}
	//
	for len(worklist) > 0 {
		last := len(worklist) - 1
		id := worklist[last]
		worklist = worklist[:last]
		//
		if !redundant[id] {
			redundant[id] = true
			worklist = append(worklist, p.nodes[id].Implies...)
		}
	}
	//
	for _, n := range p.nodes {
		if !redundant[n.ID] {
			minimal = append(minimal, n.Invariant)
		}
	}
	//
	return minimal
}

// Add an edge indicating that "from" implies "to".
func (p *Lattice) connect(from uint, to uint) {
	log.Tracef("lattice: %s => %s", p.nodes[from].Invariant, p.nodes[to].Invariant)
	p.nodes[from].Implies.Insert(to)
	p.nodes[to].ImpliedBy.Insert(from)
}

// Reduce removes every invariant which is implied by another, returning the
// remainder in their original order.
func Reduce(invariants []inv.Expr) []inv.Expr {
	lattice := New()
	//
	for _, e := range invariants {
		lattice.Add(e)
	}
	//
	return lattice.Minimal()
}

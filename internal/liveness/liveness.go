// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package liveness

import (
	"fmt"

	"fillmore-labs.com/refbind/ir"
)

// BlockState is the liveness of a value in a block.
type BlockState uint8

//go:generate go tool stringer -type BlockState -linecomment
const (
	// Dead indicates the value is not live anywhere in the block.
	Dead BlockState = iota // dead

	// LiveWithin indicates the value is live in the block, but not on its exit.
	LiveWithin // live-within

	// LiveOut indicates the value is live on exit of the block.
	LiveOut // live-out
)

// Liveness is a pruned liveness computation for a single SSA definition.
//
// The live range starts at the definition and ends at the last uses on every
// path. Liveness is only discovered for blocks reachable backwards from a use.
type Liveness struct {
	fn    *ir.Function
	preds [][]ir.BlockID

	def      ir.Value
	defBlock ir.BlockID

	// Per-block state, indexed by [ir.BlockID]
	state []BlockState

	// Blocks where liveness was discovered, in discovery order
	discovered []ir.BlockID

	// Instructions using the definition and whether they end its lifetime
	users map[ir.Value]bool

	// Reusable worklist, each block is queued at most once
	queue []ir.BlockID
}

// New creates a liveness computation over the current state of fn.
func New(fn *ir.Function) *Liveness {
	n := fn.NumBlocks()

	return &Liveness{
		fn:       fn,
		preds:    fn.Predecessors(),
		def:      ir.NoValue,
		defBlock: -1,
		state:    make([]BlockState, n),
		users:    make(map[ir.Value]bool),
		queue:    make([]ir.BlockID, n),
	}
}

// InitializeDef sets the single definition of the live range.
func (l *Liveness) InitializeDef(def ir.Value) {
	inst := l.fn.Inst(def)
	if inst == nil || inst.Erased() {
		panic(fmt.Sprintf("liveness: definition %%%d is not in the function", def))
	}

	l.def, l.defBlock = def, inst.Block()
	l.markLive(l.defBlock, LiveWithin)
}

// UpdateForUse extends the live range to the instruction user.
func (l *Liveness) UpdateForUse(user ir.Value, lifetimeEnding bool) {
	if l.def == ir.NoValue {
		panic("liveness: use recorded before definition")
	}

	l.users[user] = l.users[user] || lifetimeEnding

	b := l.fn.Inst(user).Block()
	if l.state[b] == LiveOut {
		return
	}

	l.markLive(b, LiveWithin)

	if b != l.defBlock {
		l.propagate(b)
	}
}

// propagate marks all blocks live-out on the backward paths from b to the definition.
func (l *Liveness) propagate(b ir.BlockID) {
	qTail := l.enqueuePredecessors(b, 0)

	for qHead := 0; qHead < qTail; qHead++ {
		curr := l.queue[qHead]
		if curr == l.defBlock {
			continue
		}

		qTail = l.enqueuePredecessors(curr, qTail)
	}
}

// enqueuePredecessors marks the predecessors of b live-out and queues the newly marked ones.
func (l *Liveness) enqueuePredecessors(b ir.BlockID, qTail int) int {
	for _, pred := range l.preds[b] {
		if l.state[pred] == LiveOut {
			continue
		}

		l.markLive(pred, LiveOut)

		l.queue[qTail] = pred
		qTail++
	}

	return qTail
}

func (l *Liveness) markLive(b ir.BlockID, state BlockState) {
	if l.state[b] == Dead {
		l.discovered = append(l.discovered, b)
	}

	if state > l.state[b] {
		l.state[b] = state
	}
}

// BlockLiveness returns the liveness state of block b.
func (l *Liveness) BlockLiveness(b ir.BlockID) BlockState {
	if b < 0 || int(b) >= len(l.state) {
		return Dead
	}

	return l.state[b]
}

// DiscoveredBlocks returns the blocks where liveness was found, in discovery order.
func (l *Liveness) DiscoveredBlocks() []ir.BlockID {
	return l.discovered
}

// IsWithinBoundary reports whether inst lies within the live range: after the
// definition and before a last use. Last uses themselves are on the boundary,
// not within it.
func (l *Liveness) IsWithinBoundary(inst ir.Value) bool {
	i := l.fn.Inst(inst)
	if i == nil || i.Erased() {
		return false
	}

	b := i.Block()

	switch l.BlockLiveness(b) {
	case Dead:
		return false

	case LiveOut:
		if b != l.defBlock {
			return true
		}

		return l.after(b, l.def, inst)

	case LiveWithin:
		insts := l.fn.Block(b).Insts()
		for _, next := range insts[l.fn.Index(inst)+1:] {
			if next == l.def {
				return false
			}

			if _, ok := l.users[next]; ok {
				return true
			}
		}

		return false

	default:
		panic(fmt.Sprintf("liveness: unexpected block state %s", l.BlockLiveness(b)))
	}
}

// after reports whether inst follows def in block b.
func (l *Liveness) after(b ir.BlockID, def, inst ir.Value) bool {
	if l.fn.Inst(def).Op == ir.OpArgument {
		return true
	}

	return l.fn.Index(inst) > l.fn.Index(def)
}

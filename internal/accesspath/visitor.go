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

package accesspath

import (
	"iter"
	"slices"

	"fillmore-labs.com/refbind/ir"
)

// NestedAccess selects how [VisitOverlapping] treats nested begin_access instructions.
type NestedAccess uint8

const (
	// StopAtAccessBegin reports begin_access instructions as uses without visiting their uses.
	StopAtAccessBegin NestedAccess = iota

	// IgnoreAccessBegin looks through begin_access instructions and reports the uses inside the scopes.
	IgnoreAccessBegin
)

// VisitOverlapping calls visit for every use of memory that may overlap path.
//
// It returns false when the enumeration stopped early, either because visit
// returned false or because an address is used in a way that can't be tracked.
func VisitOverlapping(fn *ir.Function, path Path, mode NestedAccess, visit func(ir.Operand) bool) bool {
	w := walker{fn: fn, path: path, mode: mode, visit: visit}

	for start := range w.starts() {
		if !w.walk(start, nil) {
			return false
		}
	}

	return true
}

type walker struct {
	fn    *ir.Function
	path  Path
	mode  NestedAccess
	visit func(ir.Operand) bool
}

// starts yields the addresses the storage is reachable from.
func (w walker) starts() iter.Seq[ir.Value] {
	return func(yield func(ir.Value) bool) {
		root := w.fn.Inst(w.path.Storage.Root)
		if root == nil {
			return
		}

		switch {
		case w.path.Storage.Global != "":
			for inst := range w.fn.Instructions() {
				if inst.Op == ir.OpGlobalAddr && inst.Symbol == w.path.Storage.Global {
					if !yield(inst.ID()) {
						return
					}
				}
			}

		case root.Op == ir.OpAllocStack || root.Op == ir.OpArgument:
			yield(root.ID())

		default: // box, addresses are projections
			for use := range w.fn.Uses(root.ID()) {
				if w.fn.Inst(use.User).Op != ir.OpProjectBox {
					continue
				}

				if !yield(use.User) {
					return
				}
			}
		}
	}
}

// walk visits the uses of address v, located at indices inside the storage.
func (w walker) walk(v ir.Value, indices []int) bool {
	for use := range w.fn.Uses(v) {
		user := w.fn.Inst(use.User)

		switch user.Op {
		case ir.OpBeginAccess:
			if w.mode == IgnoreAccessBegin {
				if !w.walk(user.ID(), indices) {
					return false
				}

				continue
			}

		case ir.OpStructElementAddr:
			child := append(slices.Clip(indices), user.Field)
			if !overlapsIndices(child, w.path.Indices) {
				continue
			}

			if !w.walk(user.ID(), child) {
				return false
			}

			continue

		case ir.OpUncheckedAddrCast:
			return false
		}

		if !w.visit(use) {
			return false
		}
	}

	return true
}

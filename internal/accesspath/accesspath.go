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
	"slices"

	"fillmore-labs.com/refbind/ir"
)

// Storage identifies the memory location an access path is rooted at.
type Storage struct {
	// Root is the allocation, argument, box or global_addr instruction.
	Root ir.Value

	// Global is the symbol of a global variable. All global_addr
	// instructions with the same symbol share the storage.
	Global string
}

// Same reports whether s and o are the same memory location.
func (s Storage) Same(o Storage) bool {
	if s.Global != "" || o.Global != "" {
		return s.Global == o.Global
	}

	return s.Root == o.Root
}

// Path is a canonical description of the memory an address refers to:
// a storage location and a sequence of field projections into it.
type Path struct {
	Storage Storage
	Indices []int
}

// Overlaps reports whether the memory described by p and o may overlap.
func (p Path) Overlaps(o Path) bool {
	return p.Storage.Same(o.Storage) && overlapsIndices(p.Indices, o.Indices)
}

// overlapsIndices reports whether one index list is a prefix of the other.
func overlapsIndices(a, b []int) bool {
	n := min(len(a), len(b))

	return slices.Equal(a[:n], b[:n])
}

// PathWithBase is an access path with the base address it was computed from.
type PathWithBase struct {
	Path Path
	Base ir.Value // The address the projections start at
}

// Compute resolves addr to its access path.
// It returns false when the address is produced by an instruction it does not understand.
func Compute(fn *ir.Function, addr ir.Value) (PathWithBase, bool) {
	var indices []int // innermost projection first

	for v := addr; ; {
		inst := fn.Inst(v)
		if inst == nil || inst.Erased() {
			return PathWithBase{}, false
		}

		var storage Storage

		switch inst.Op {
		case ir.OpBeginAccess:
			v = inst.Operand(0)
			continue

		case ir.OpStructElementAddr:
			indices = append(indices, inst.Field)
			v = inst.Operand(0)

			continue

		case ir.OpAllocStack, ir.OpArgument:
			storage = Storage{Root: v}

		case ir.OpGlobalAddr:
			storage = Storage{Root: v, Global: inst.Symbol}

		case ir.OpProjectBox:
			storage = Storage{Root: inst.Operand(0)}

		default:
			return PathWithBase{}, false
		}

		slices.Reverse(indices)

		return PathWithBase{Path: Path{Storage: storage, Indices: indices}, Base: v}, true
	}
}

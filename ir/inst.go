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

package ir

import (
	"go/token"

	"fillmore-labs.com/refbind/internal/config"
)

// Value is the handle of an instruction or block argument in its [Function].
type Value int32

// NoValue represents an invalid value.
const NoValue Value = -1

// BlockID is the handle of a [Block] in its [Function].
type BlockID int32

// Operand is a single use of a value.
type Operand struct {
	User  Value // The using instruction
	Index int   // Position in the user's operand list
}

// Inst is a single instruction or block argument.
type Inst struct {
	Op       Op
	Operands []Value
	Succs    []BlockID // Successor blocks of br and cond_br

	Symbol  string // Callee of apply, global of global_addr
	Literal int64  // Value of integer_literal
	Field   int    // Field index of struct_element_addr

	Access AccessKind
	Attrs  config.BitMask[Attr]

	Pos token.Pos

	id     Value
	block  BlockID
	erased bool
}

// ID returns the handle of the instruction.
func (i *Inst) ID() Value { return i.id }

// Block returns the parent block.
func (i *Inst) Block() BlockID { return i.block }

// Erased reports whether the instruction was removed from its block.
func (i *Inst) Erased() bool { return i.erased }

// Operand returns the operand at index, or [NoValue].
func (i *Inst) Operand(index int) Value {
	if index < 0 || index >= len(i.Operands) {
		return NoValue
	}

	return i.Operands[index]
}

// Src is the source address of copy_addr.
func (i *Inst) Src() Value { return i.Operand(0) }

// Dest is the destination address of copy_addr and store.
func (i *Inst) Dest() Value { return i.Operand(1) }

// IsInitializationOfDest reports whether a store or copy initializes its destination.
func (i *Inst) IsInitializationOfDest() bool { return i.Attrs.Enabled(AttrInit) }

// IsTakeOfSrc reports whether a copy or load moves out of its source.
func (i *Inst) IsTakeOfSrc() bool { return i.Attrs.Enabled(AttrTake) }

// SetTakeOfSrc changes whether a copy or load moves out of its source.
func (i *Inst) SetTakeOfSrc(take bool) { i.Attrs.Set(AttrTake, take) }

// IsAborted reports whether an end_access ends an aborted access.
func (i *Inst) IsAborted() bool { return i.Attrs.Enabled(AttrAborted) }

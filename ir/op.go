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

// Op is the opcode of an [Inst].
//
// The set of instructions is closed; passes dispatch over it with a switch.
type Op uint8

//go:generate go tool stringer -type Op,AccessKind -linecomment -output op_string.go
const (
	OpInvalid Op = iota // invalid

	// OpArgument is a block argument.
	OpArgument // argument

	OpAllocStack     // alloc_stack
	OpAllocBox       // alloc_box
	OpGlobalAddr     // global_addr
	OpIntegerLiteral // integer_literal

	// OpMarkUnresolvedReferenceBinding wraps a box that is an unresolved exclusive
	// binding to some outer address.
	OpMarkUnresolvedReferenceBinding // mark_unresolved_reference_binding

	OpProjectBox        // project_box
	OpBeginAccess       // begin_access
	OpEndAccess         // end_access
	OpStructElementAddr // struct_element_addr
	OpUncheckedAddrCast // unchecked_addr_cast

	OpLoad     // load
	OpStore    // store
	OpCopyAddr // copy_addr
	OpApply    // apply

	OpDestroyValue       // destroy_value
	OpDeallocBox         // dealloc_box
	OpDeallocStack       // dealloc_stack
	OpMoveValue          // move_value
	OpMoveOnlyToCopyable // moveonly_to_copyable

	OpBranch      // br
	OpCondBranch  // cond_br
	OpReturn      // return
	OpUnreachable // unreachable

	numOps = iota
)

// opcodes maps the textual opcode to the [Op].
var opcodes = func() map[string]Op {
	m := make(map[string]Op, numOps)
	for op := OpAllocStack; op < numOps; op++ {
		m[op.String()] = op
	}

	return m
}()

// HasResult reports whether instructions with this opcode define a value.
func (op Op) HasResult() bool {
	switch op {
	case OpArgument, OpAllocStack, OpAllocBox, OpGlobalAddr, OpIntegerLiteral,
		OpMarkUnresolvedReferenceBinding, OpProjectBox, OpBeginAccess,
		OpStructElementAddr, OpUncheckedAddrCast, OpLoad, OpApply,
		OpMoveValue, OpMoveOnlyToCopyable:
		return true

	default:
		return false
	}
}

// IsTerminator reports whether the opcode ends a block.
func (op Op) IsTerminator() bool {
	switch op {
	case OpBranch, OpCondBranch, OpReturn, OpUnreachable:
		return true

	default:
		return false
	}
}

// Consumes reports whether the operand at index ends the lifetime of its value.
func (op Op) Consumes(index int) bool {
	switch op {
	case OpDestroyValue, OpDeallocBox, OpMoveValue, OpMoveOnlyToCopyable, OpReturn:
		return index == 0

	case OpStore:
		return index == 0 // the stored value, not the destination

	case OpBranch:
		return true

	default:
		return false
	}
}

// AccessKind is the declared kind of an exclusivity access scope.
type AccessKind uint8

const (
	AccessRead   AccessKind = iota // read
	AccessModify                   // modify
)

// Attr is an instruction attribute printed in square brackets.
type Attr uint8

const (
	// AttrInit marks a store or copy that initializes its destination.
	AttrInit Attr = 1 << iota

	// AttrTake marks a copy or load that moves out of its source, leaving it uninitialized.
	AttrTake

	// AttrAborted marks an end_access of an aborted access.
	AttrAborted

	// AttrInout marks an inout reference binding.
	AttrInout
)

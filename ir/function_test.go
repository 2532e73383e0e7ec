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

package ir_test

import (
	"go/token"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/refbind/ir"
)

func mustParse(t *testing.T, src string) *Function {
	t.Helper()

	m, err := Parse(token.NewFileSet(), t.Name()+".sil", []byte(src))
	require.NoError(t, err)
	require.Len(t, m.Functions, 1)

	return m.Functions[0]
}

func TestEditing(t *testing.T) {
	t.Parallel()

	fn := mustParse(t, `func @f {
bb0(%a):
  %b = alloc_box
  %c = move_value %b
  destroy_value %c
  return
}
`)

	var destroy *Inst
	for inst := range fn.Instructions() {
		if inst.Op == OpDestroyValue {
			destroy = inst
		}
	}

	require.NotNil(t, destroy)

	moved := destroy.Operand(0)
	box := fn.Inst(moved).Operand(0)

	pb := fn.InsertBefore(destroy.ID(), Inst{Op: OpProjectBox, Operands: []Value{moved}})
	assert.Equal(t, fn.Index(destroy.ID())-1, fn.Index(pb))

	assert.Len(t, slices.Collect(fn.Uses(moved)), 2)
	assert.Len(t, slices.Collect(fn.ConsumingUses(moved)), 1)

	assert.Panics(t, func() { fn.Erase(moved) }, "erasing a used value")

	fn.ReplaceAllUsesWith(moved, box)
	fn.Erase(moved)

	assert.True(t, fn.Inst(moved).Erased())
	assert.Equal(t, -1, fn.Index(moved))
	assert.False(t, fn.HasUses(moved))

	require.NoError(t, Verify(fn))

	assert.Equal(t, `func @f {
bb0(%0):
  %1 = alloc_box
  %2 = project_box %1
  destroy_value %1
  return
}
`, fn.String())
}

func TestPredecessors(t *testing.T) {
	t.Parallel()

	fn := mustParse(t, `func @f {
bb0:
  %c = integer_literal 1
  cond_br %c, bb1, bb2
bb1:
  br bb3
bb2:
  br bb3
bb3:
  return
}
`)

	preds := fn.Predecessors()

	assert.Empty(t, preds[0])
	assert.Equal(t, []BlockID{0}, preds[1])
	assert.Equal(t, []BlockID{0}, preds[2])
	assert.Equal(t, []BlockID{1, 2}, preds[3])
	assert.Equal(t, []BlockID{1, 2}, fn.Successors(0))
}

func TestSingleUser(t *testing.T) {
	t.Parallel()

	fn := mustParse(t, `func @f {
bb0:
  %a = alloc_box
  %b = moveonly_to_copyable %a
  return %b
}
`)

	conv := fn.Block(0).Insts()[1]

	user, ok := fn.SingleUser(conv)
	require.True(t, ok)
	assert.Equal(t, OpReturn, user.Op)

	_, ok = fn.SingleUser(user.ID())
	assert.False(t, ok)
}

func TestVerify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		edit func(fn *Function)
	}{
		{"MissingTerminator", func(fn *Function) {
			fn.Append(fn.NewBlock(), Inst{Op: OpAllocStack})
		}},
		{"EmptyBlock", func(fn *Function) {
			fn.NewBlock()
		}},
		{"BranchArity", func(fn *Function) {
			b := fn.NewBlock()
			fn.AddArgument(b, token.NoPos)
			fn.Append(b, Inst{Op: OpBranch, Succs: []BlockID{b}})
		}},
		{"EndAccessOfBox", func(fn *Function) {
			b := fn.NewBlock()
			box := fn.Append(b, Inst{Op: OpAllocBox})
			fn.Append(b, Inst{Op: OpEndAccess, Operands: []Value{box}})
			fn.Append(b, Inst{Op: OpUnreachable})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fn := NewFunction("f")
			fn.Append(fn.NewBlock(), Inst{Op: OpReturn})

			require.NoError(t, Verify(fn))

			tt.edit(fn)

			assert.ErrorIs(t, Verify(fn), ErrMalformed)
		})
	}
}

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
	"errors"
	"fmt"
	"go/token"
	"iter"
	"slices"
)

// ErrInvalidEdit is the panic value of structurally impossible IR edits.
var ErrInvalidEdit = errors.New("invalid IR edit")

// Block is a basic block: a list of arguments and an ordered list of instructions
// ending in a terminator.
type Block struct {
	ID    BlockID
	Args  []Value
	insts []Value
}

// Insts returns the instructions of the block in order.
func (b *Block) Insts() []Value { return b.insts }

// Function is an IR function owning its blocks and instructions.
type Function struct {
	Name     string
	Features FeatureSet
	Pos      token.Pos

	blocks []*Block
	arena  arena
}

// NewFunction creates an empty function.
func NewFunction(name string) *Function {
	return &Function{Name: name}
}

// NewBlock appends a new empty block.
func (f *Function) NewBlock() BlockID {
	id := BlockID(len(f.blocks))
	f.blocks = append(f.blocks, &Block{ID: id})

	return id
}

// Block returns the block with the given handle, or nil.
func (f *Function) Block(id BlockID) *Block {
	if id < 0 || int(id) >= len(f.blocks) {
		return nil
	}

	return f.blocks[id]
}

// NumBlocks returns the number of blocks.
func (f *Function) NumBlocks() int { return len(f.blocks) }

// Blocks returns an iterator over all blocks in order.
func (f *Function) Blocks() iter.Seq[*Block] {
	return slices.Values(f.blocks)
}

// Inst returns the instruction or argument for v, or nil.
func (f *Function) Inst(v Value) *Inst {
	return f.arena.at(v)
}

// AddArgument appends an argument to block b.
func (f *Function) AddArgument(b BlockID, pos token.Pos) Value {
	blk := f.mustBlock(b)

	inst := f.arena.new()
	inst.Op, inst.Pos, inst.block = OpArgument, pos, b
	blk.Args = append(blk.Args, inst.id)

	return inst.id
}

// Append adds a copy of inst to the end of block b.
func (f *Function) Append(b BlockID, inst Inst) Value {
	blk := f.mustBlock(b)

	v := f.alloc(b, inst)
	blk.insts = append(blk.insts, v)

	return v
}

// InsertBefore adds a copy of inst immediately before the instruction at.
func (f *Function) InsertBefore(at Value, inst Inst) Value {
	pos := f.Inst(at)
	if pos == nil || pos.erased || pos.Op == OpArgument {
		panic(fmt.Errorf("%w: insertion point %%%d is not an instruction", ErrInvalidEdit, at))
	}

	blk := f.blocks[pos.block]
	idx := slices.Index(blk.insts, at)

	v := f.alloc(pos.block, inst)
	blk.insts = slices.Insert(blk.insts, idx, v)

	return v
}

func (f *Function) alloc(b BlockID, inst Inst) Value {
	if inst.Op == OpInvalid || inst.Op == OpArgument {
		panic(fmt.Errorf("%w: can't insert %s instruction", ErrInvalidEdit, inst.Op))
	}

	slot := f.arena.new()
	id := slot.id

	*slot = inst
	slot.id, slot.block, slot.erased = id, b, false
	slot.Operands = slices.Clone(inst.Operands)
	slot.Succs = slices.Clone(inst.Succs)

	return id
}

func (f *Function) mustBlock(b BlockID) *Block {
	blk := f.Block(b)
	if blk == nil {
		panic(fmt.Errorf("%w: no block bb%d", ErrInvalidEdit, b))
	}

	return blk
}

// Erase removes the instruction v from its block.
//
// It panics when v still has uses.
func (f *Function) Erase(v Value) {
	inst := f.Inst(v)
	if inst == nil || inst.erased || inst.Op == OpArgument {
		panic(fmt.Errorf("%w: %%%d can't be erased", ErrInvalidEdit, v))
	}

	if f.HasUses(v) {
		panic(fmt.Errorf("%w: erasing %s %%%d with remaining uses", ErrInvalidEdit, inst.Op, v))
	}

	blk := f.blocks[inst.block]
	blk.insts = slices.DeleteFunc(blk.insts, func(i Value) bool { return i == v })
	inst.erased = true
}

// Index returns the position of instruction v in its block, or -1 for arguments and erased instructions.
func (f *Function) Index(v Value) int {
	inst := f.Inst(v)
	if inst == nil || inst.erased || inst.Op == OpArgument {
		return -1
	}

	return slices.Index(f.blocks[inst.block].insts, v)
}

// Instructions returns an iterator over all live instructions in program order.
func (f *Function) Instructions() iter.Seq[*Inst] {
	return func(yield func(*Inst) bool) {
		for _, blk := range f.blocks {
			for _, v := range blk.insts {
				if !yield(f.Inst(v)) {
					return
				}
			}
		}
	}
}

// Uses returns an iterator over all operands referring to v.
func (f *Function) Uses(v Value) iter.Seq[Operand] {
	return func(yield func(Operand) bool) {
		for inst := range f.Instructions() {
			for i, op := range inst.Operands {
				if op != v {
					continue
				}

				if !yield(Operand{User: inst.id, Index: i}) {
					return
				}
			}
		}
	}
}

// ConsumingUses returns an iterator over all lifetime-ending uses of v.
func (f *Function) ConsumingUses(v Value) iter.Seq[Operand] {
	return func(yield func(Operand) bool) {
		for use := range f.Uses(v) {
			if !f.Inst(use.User).Op.Consumes(use.Index) {
				continue
			}

			if !yield(use) {
				return
			}
		}
	}
}

// HasUses reports whether any instruction uses v.
func (f *Function) HasUses(v Value) bool {
	for range f.Uses(v) {
		return true
	}

	return false
}

// SingleUser returns the only user of v.
func (f *Function) SingleUser(v Value) (*Inst, bool) {
	var user *Inst

	for use := range f.Uses(v) {
		if user != nil {
			return nil, false
		}

		user = f.Inst(use.User)
	}

	return user, user != nil
}

// ReplaceAllUsesWith redirects every use of old to replacement.
func (f *Function) ReplaceAllUsesWith(old, replacement Value) {
	for inst := range f.Instructions() {
		for i, op := range inst.Operands {
			if op == old {
				inst.Operands[i] = replacement
			}
		}
	}
}

// Terminator returns the last instruction of block b when it is a terminator.
func (f *Function) Terminator(b BlockID) (*Inst, bool) {
	blk := f.Block(b)
	if blk == nil || len(blk.insts) == 0 {
		return nil, false
	}

	last := f.Inst(blk.insts[len(blk.insts)-1])

	return last, last.Op.IsTerminator()
}

// Successors returns the successor blocks of b.
func (f *Function) Successors(b BlockID) []BlockID {
	term, ok := f.Terminator(b)
	if !ok {
		return nil
	}

	return term.Succs
}

// Predecessors computes the predecessor lists of all blocks, indexed by [BlockID].
func (f *Function) Predecessors() [][]BlockID {
	preds := make([][]BlockID, len(f.blocks))

	for _, blk := range f.blocks {
		for _, succ := range f.Successors(blk.ID) {
			if succ < 0 || int(succ) >= len(preds) || slices.Contains(preds[succ], blk.ID) {
				continue
			}

			preds[succ] = append(preds[succ], blk.ID)
		}
	}

	return preds
}

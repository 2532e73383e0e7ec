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

// arena owns the instructions of a [Function] in a [slab list].
//
// Instructions never move, so a [Value] handle stays valid for the lifetime
// of the function. Erased instructions keep their slot.
//
// [slab list]: https://en.wikipedia.org/wiki/Slab_allocation
type arena struct {
	chunks []*chunk
	count  int // used slots in the last chunk
}

// chunk is a fixed-size array of instructions.
type chunk [chunkSize]Inst

// chunkSize defines the number of instructions stored in a single chunk.
const chunkSize = 127

// new allocates a zero instruction and assigns its handle.
func (a *arena) new() *Inst {
	if len(a.chunks) == 0 || a.count == chunkSize {
		a.chunks = append(a.chunks, new(chunk))
		a.count = 0
	}

	last := len(a.chunks) - 1
	inst := &a.chunks[last][a.count]
	inst.id = Value(last*chunkSize + a.count)
	a.count++

	return inst
}

// at returns the instruction for v, or nil when v was never allocated.
func (a *arena) at(v Value) *Inst {
	if v < 0 || int(v) >= a.len() {
		return nil
	}

	return &a.chunks[int(v)/chunkSize][int(v)%chunkSize]
}

// len is the number of allocated slots.
func (a *arena) len() int {
	if len(a.chunks) == 0 {
		return 0
	}

	return (len(a.chunks)-1)*chunkSize + a.count
}

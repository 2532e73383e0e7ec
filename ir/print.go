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
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Fprint writes the textual form of m to w.
func Fprint(w io.Writer, m *Module) error {
	bw := bufio.NewWriter(w)

	var features []string
	for _, f := range featureNames {
		if m.Features.Enabled(f.feature) {
			features = append(features, f.name)
		}
	}

	if len(features) > 0 {
		bw.WriteString("feature ")                  // ignore error
		bw.WriteString(strings.Join(features, " ")) // ignore error
		bw.WriteString("\n\n")                      // ignore error
	}

	for i, fn := range m.Functions {
		if i > 0 {
			bw.WriteByte('\n') // ignore error
		}

		fn.format(bw)
	}

	return bw.Flush()
}

// String returns the textual form of the module.
func (m *Module) String() string {
	var sb strings.Builder
	_ = Fprint(&sb, m)

	return sb.String()
}

// String returns the textual form of the function.
func (f *Function) String() string {
	var sb strings.Builder

	bw := bufio.NewWriter(&sb)
	f.format(bw)
	_ = bw.Flush()

	return sb.String()
}

// printer renumbers values in program order.
type printer struct {
	w     *bufio.Writer
	fn    *Function
	names map[Value]int
}

func (f *Function) format(w *bufio.Writer) {
	p := printer{w: w, fn: f, names: make(map[Value]int)}

	for _, blk := range f.blocks {
		for _, a := range blk.Args {
			p.names[a] = len(p.names)
		}

		for _, v := range blk.insts {
			if f.Inst(v).Op.HasResult() {
				p.names[v] = len(p.names)
			}
		}
	}

	p.str("func @")
	p.str(f.Name)
	p.str(" {\n")

	for _, blk := range f.blocks {
		p.block(blk)
	}

	p.str("}\n")
}

func (p *printer) block(blk *Block) {
	p.blockName(blk.ID)

	if len(blk.Args) > 0 {
		p.values(blk.Args)
	}

	p.str(":\n")

	for _, v := range blk.insts {
		p.str("  ")
		p.inst(p.fn.Inst(v))
		p.w.WriteByte('\n') // ignore error
	}
}

func (p *printer) inst(inst *Inst) {
	if inst.Op.HasResult() {
		p.value(inst.id)
		p.str(" = ")
	}

	p.str(inst.Op.String())

	switch inst.Op {
	case OpAllocStack, OpAllocBox, OpUnreachable:

	case OpGlobalAddr:
		p.str(" @")
		p.str(inst.Symbol)

	case OpIntegerLiteral:
		p.str(" ")
		p.str(strconv.FormatInt(inst.Literal, 10))

	case OpMarkUnresolvedReferenceBinding:
		p.attr(inst, AttrInout, "inout")
		p.operand(inst, 0)

	case OpBeginAccess:
		p.str(" [")
		p.str(inst.Access.String())
		p.str("]")
		p.operand(inst, 0)

	case OpEndAccess:
		p.attr(inst, AttrAborted, "abort")
		p.operand(inst, 0)

	case OpStructElementAddr:
		p.operand(inst, 0)
		p.str(", ")
		p.str(strconv.Itoa(inst.Field))

	case OpLoad:
		if inst.IsTakeOfSrc() {
			p.str(" [take]")
		} else {
			p.str(" [copy]")
		}

		p.operand(inst, 0)

	case OpStore:
		p.operand(inst, 0)
		p.str(" to")

		if inst.IsInitializationOfDest() {
			p.str(" [init]")
		} else {
			p.str(" [assign]")
		}

		p.operand(inst, 1)

	case OpCopyAddr:
		p.attr(inst, AttrTake, "take")
		p.operand(inst, 0)
		p.str(" to")
		p.attr(inst, AttrInit, "init")
		p.operand(inst, 1)

	case OpApply:
		p.str(" @")
		p.str(inst.Symbol)
		p.values(inst.Operands)

	case OpBranch:
		p.str(" ")
		p.blockName(inst.Succs[0])

		if len(inst.Operands) > 0 {
			p.values(inst.Operands)
		}

	case OpCondBranch:
		p.operand(inst, 0)

		for _, s := range inst.Succs {
			p.str(", ")
			p.blockName(s)
		}

	default: // single operand instructions and return
		for i := range inst.Operands {
			p.operand(inst, i)
		}
	}
}

func (p *printer) attr(inst *Inst, attr Attr, name string) {
	if !inst.Attrs.Enabled(attr) {
		return
	}

	p.str(" [")
	p.str(name)
	p.str("]")
}

func (p *printer) operand(inst *Inst, index int) {
	p.str(" ")
	p.value(inst.Operand(index))
}

func (p *printer) values(vs []Value) {
	p.str("(")

	for i, v := range vs {
		if i > 0 {
			p.str(", ")
		}

		p.value(v)
	}

	p.str(")")
}

func (p *printer) value(v Value) {
	n, ok := p.names[v]
	if !ok {
		p.str("%<invalid>")

		return
	}

	p.str("%")
	p.str(strconv.Itoa(n))
}

func (p *printer) blockName(b BlockID) {
	p.str("bb")
	p.str(strconv.Itoa(int(b)))
}

func (p *printer) str(s string) {
	p.w.WriteString(s) // ignore error
}

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
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// ErrSyntax is wrapped by all parse errors.
var ErrSyntax = errors.New("syntax error")

// SyntaxError describes a problem in the textual IR.
type SyntaxError struct {
	Pos token.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// Parse reads a module in textual form. Instruction positions are registered in fset.
func Parse(fset *token.FileSet, filename string, src []byte) (*Module, error) {
	file := fset.AddFile(filename, -1, len(src))
	file.SetLinesForContent(src)

	p := parser{file: file, mod: &Module{Name: filename}}

	offset := 0
	for line := range bytes.Lines(src) {
		toks, lerr := lexLine(line, offset)
		if lerr != nil {
			return nil, p.errorf(lerr.off, "%s", lerr.msg)
		}

		if len(toks) > 0 {
			p.lines = append(p.lines, toks)
		}

		offset += len(line)
	}

	if err := p.parseModule(); err != nil {
		return nil, err
	}

	for _, fn := range p.mod.Functions {
		fn.Features = fn.Features.Union(p.mod.Features)
	}

	return p.mod, nil
}

// parser holds the state of a single [Parse] call.
type parser struct {
	file  *token.File
	mod   *Module
	lines [][]lexeme
	line  int
}

// funcState holds the name tables of the function being parsed.
type funcState struct {
	fn      *Function
	values  map[string]Value
	blocks  map[string]BlockID
	fixups  []fixup
	current BlockID
}

// fixup is an operand referring to a value by name, resolved at the end of the function.
type fixup struct {
	user  Value
	index int
	name  lexeme
}

func (p *parser) errorf(off int, format string, args ...any) error {
	return &SyntaxError{Pos: p.file.Position(p.file.Pos(off)), Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseModule() error {
	for ; p.line < len(p.lines); p.line++ {
		toks := p.lines[p.line]

		switch first := toks[0]; {
		case first.kind == tokIdent && first.text == "feature":
			if err := p.parseFeatures(toks[1:]); err != nil {
				return err
			}

		case first.kind == tokIdent && first.text == "func":
			if err := p.parseFunction(); err != nil {
				return err
			}

		default:
			return p.errorf(first.off, "expected feature or func, found %q", first.text)
		}
	}

	return nil
}

func (p *parser) parseFeatures(toks []lexeme) error {
	for _, t := range toks {
		f, err := ParseFeature(t.text)
		if t.kind != tokIdent || err != nil {
			return p.errorf(t.off, "unknown feature %q", t.text)
		}

		p.mod.Features.Enable(f)
	}

	return nil
}

// parseFunction parses "func @name {" up to the closing brace.
func (p *parser) parseFunction() error {
	header := p.lines[p.line]
	if len(header) != 3 || header[1].kind != tokSymbol || header[2].text != "{" {
		return p.errorf(header[0].off, "expected func @name {")
	}

	fn := NewFunction(header[1].text)
	fn.Pos = p.file.Pos(header[0].off)

	if p.mod.Function(fn.Name) != nil {
		return p.errorf(header[1].off, "function @%s redefined", fn.Name)
	}

	fs := &funcState{
		fn:      fn,
		values:  make(map[string]Value),
		blocks:  make(map[string]BlockID),
		current: -1,
	}

	// Create all blocks in definition order so forward branches resolve.
	end := -1

	for i := p.line + 1; i < len(p.lines); i++ {
		toks := p.lines[i]
		if toks[0].text == "}" {
			end = i
			break
		}

		if name, ok := blockHeader(toks); ok {
			if _, dup := fs.blocks[name.text]; dup {
				return p.errorf(name.off, "block %s redefined", name.text)
			}

			fs.blocks[name.text] = fn.NewBlock()
		}
	}

	if end < 0 {
		return p.errorf(header[0].off, "function @%s is not terminated", fn.Name)
	}

	for p.line++; p.line < end; p.line++ {
		if err := p.parseLine(fs, p.lines[p.line]); err != nil {
			return err
		}
	}

	if len(p.lines[end]) > 1 {
		return p.errorf(p.lines[end][1].off, "unexpected %q after }", p.lines[end][1].text)
	}

	for _, fx := range fs.fixups {
		v, ok := fs.values[fx.name.text]
		if !ok {
			return p.errorf(fx.name.off, "undefined value %%%s", fx.name.text)
		}

		fn.Inst(fx.user).Operands[fx.index] = v
	}

	p.mod.Functions = append(p.mod.Functions, fn)

	return nil
}

// blockHeader recognizes "bbN:" and "bbN(%a, %b):".
func blockHeader(toks []lexeme) (lexeme, bool) {
	if len(toks) < 2 || toks[0].kind != tokIdent || !strings.HasPrefix(toks[0].text, "bb") {
		return lexeme{}, false
	}

	last := toks[len(toks)-1]
	if last.text != ":" {
		return lexeme{}, false
	}

	return toks[0], len(toks) == 2 || toks[1].text == "("
}

func (p *parser) parseLine(fs *funcState, toks []lexeme) error {
	if name, ok := blockHeader(toks); ok {
		fs.current = fs.blocks[name.text]

		return p.parseBlockArgs(fs, toks[1:len(toks)-1])
	}

	if fs.current < 0 {
		return p.errorf(toks[0].off, "instruction outside of a block")
	}

	return p.parseInst(fs, toks)
}

func (p *parser) parseBlockArgs(fs *funcState, toks []lexeme) error {
	if len(toks) == 0 {
		return nil
	}

	c := cursor{p: p, toks: toks}

	names, err := c.valueList()
	if err != nil {
		return err
	}

	if err := c.end(); err != nil {
		return err
	}

	for _, name := range names {
		v := fs.fn.AddArgument(fs.current, p.file.Pos(name.off))
		if err := fs.define(p, name, v); err != nil {
			return err
		}
	}

	return nil
}

func (fs *funcState) define(p *parser, name lexeme, v Value) error {
	if _, dup := fs.values[name.text]; dup {
		return p.errorf(name.off, "value %%%s redefined", name.text)
	}

	fs.values[name.text] = v

	return nil
}

// parseInst parses "[%result =] opcode operands...".
func (p *parser) parseInst(fs *funcState, toks []lexeme) error {
	c := cursor{p: p, toks: toks}

	var result *lexeme
	if len(toks) > 2 && toks[0].kind == tokValue && toks[1].text == "=" {
		result = &toks[0]
		c.i = 2
	}

	optok, err := c.expect(tokIdent, "")
	if err != nil {
		return err
	}

	op, ok := opcodes[optok.text]
	if !ok {
		return p.errorf(optok.off, "unknown instruction %q", optok.text)
	}

	if result != nil && !op.HasResult() {
		return p.errorf(result.off, "%s does not produce a value", op)
	}

	inst := Inst{Op: op, Pos: p.file.Pos(toks[0].off)}

	var operands []lexeme

	switch op {
	case OpAllocStack, OpAllocBox, OpUnreachable:

	case OpGlobalAddr:
		sym, err := c.expect(tokSymbol, "")
		if err != nil {
			return err
		}

		inst.Symbol = sym.text

	case OpIntegerLiteral:
		lit, err := c.expect(tokInt, "")
		if err != nil {
			return err
		}

		if inst.Literal, err = strconv.ParseInt(lit.text, 10, 64); err != nil {
			return p.errorf(lit.off, "invalid integer %s", lit.text)
		}

	case OpMarkUnresolvedReferenceBinding:
		inst.Attrs.Set(AttrInout, c.acceptAttr("inout"))
		operands, err = c.values(1)

	case OpBeginAccess:
		kind, err := c.expect(tokAttr, "")
		if err != nil {
			return err
		}

		switch kind.text {
		case "read":
			inst.Access = AccessRead
		case "modify":
			inst.Access = AccessModify
		default:
			return p.errorf(kind.off, "unknown access kind [%s]", kind.text)
		}

		operands, err = c.values(1)
		if err != nil {
			return err
		}

	case OpEndAccess:
		inst.Attrs.Set(AttrAborted, c.acceptAttr("abort"))
		operands, err = c.values(1)

	case OpStructElementAddr:
		operands, err = c.values(1)
		if err != nil {
			return err
		}

		if _, err := c.expect(tokPunct, ","); err != nil {
			return err
		}

		field, err := c.expect(tokInt, "")
		if err != nil {
			return err
		}

		if inst.Field, err = strconv.Atoi(field.text); err != nil || inst.Field < 0 {
			return p.errorf(field.off, "invalid field index %s", field.text)
		}

	case OpLoad:
		switch {
		case c.acceptAttr("take"):
			inst.SetTakeOfSrc(true)
		case c.acceptAttr("copy"):
		default:
			return p.errorf(optok.off, "load requires [copy] or [take]")
		}

		operands, err = c.values(1)

	case OpStore:
		operands, err = c.fromTo(&inst, false)

	case OpCopyAddr:
		operands, err = c.fromTo(&inst, true)

	case OpApply:
		callee, err := c.expect(tokSymbol, "")
		if err != nil {
			return err
		}

		inst.Symbol = callee.text

		operands, err = c.valueList()
		if err != nil {
			return err
		}

	case OpBranch:
		target, err := c.block(fs)
		if err != nil {
			return err
		}

		inst.Succs = []BlockID{target}

		if !c.done() {
			if operands, err = c.valueList(); err != nil {
				return err
			}
		}

	case OpCondBranch:
		operands, err = c.values(1)
		if err != nil {
			return err
		}

		for range 2 {
			if _, err := c.expect(tokPunct, ","); err != nil {
				return err
			}

			target, err := c.block(fs)
			if err != nil {
				return err
			}

			inst.Succs = append(inst.Succs, target)
		}

	case OpReturn:
		if !c.done() {
			operands, err = c.values(1)
		}

	default: // single operand instructions
		operands, err = c.values(1)
	}

	if err != nil {
		return err
	}

	if err := c.end(); err != nil {
		return err
	}

	inst.Operands = make([]Value, len(operands))
	for i := range inst.Operands {
		inst.Operands[i] = NoValue
	}

	v := fs.fn.Append(fs.current, inst)

	for i, name := range operands {
		fs.fixups = append(fs.fixups, fixup{user: v, index: i, name: name})
	}

	if result != nil {
		return fs.define(p, *result, v)
	}

	return nil
}

// cursor walks the tokens of a single line.
type cursor struct {
	p    *parser
	toks []lexeme
	i    int
}

func (c *cursor) done() bool { return c.i >= len(c.toks) }

func (c *cursor) endOff() int {
	if len(c.toks) == 0 {
		return 0
	}

	last := c.toks[len(c.toks)-1]

	return last.off + len(last.text)
}

func (c *cursor) end() error {
	if c.done() {
		return nil
	}

	t := c.toks[c.i]

	return c.p.errorf(t.off, "unexpected %q", t.text)
}

// expect consumes a token of the given kind, and text if non-empty.
func (c *cursor) expect(kind tokenKind, text string) (lexeme, error) {
	if c.done() {
		return lexeme{}, c.p.errorf(c.endOff(), "unexpected end of line")
	}

	t := c.toks[c.i]
	if t.kind != kind || text != "" && t.text != text {
		return lexeme{}, c.p.errorf(t.off, "unexpected %q", t.text)
	}

	c.i++

	return t, nil
}

func (c *cursor) acceptAttr(name string) bool {
	if c.done() || c.toks[c.i].kind != tokAttr || c.toks[c.i].text != name {
		return false
	}

	c.i++

	return true
}

// values consumes n comma separated value references.
func (c *cursor) values(n int) ([]lexeme, error) {
	vs := make([]lexeme, 0, n)

	for i := range n {
		if i > 0 {
			if _, err := c.expect(tokPunct, ","); err != nil {
				return nil, err
			}
		}

		v, err := c.expect(tokValue, "")
		if err != nil {
			return nil, err
		}

		vs = append(vs, v)
	}

	return vs, nil
}

// valueList consumes "(%a, %b, ...)".
func (c *cursor) valueList() ([]lexeme, error) {
	if _, err := c.expect(tokPunct, "("); err != nil {
		return nil, err
	}

	var vs []lexeme

	for !c.done() && c.toks[c.i].text != ")" {
		if len(vs) > 0 {
			if _, err := c.expect(tokPunct, ","); err != nil {
				return nil, err
			}
		}

		v, err := c.expect(tokValue, "")
		if err != nil {
			return nil, err
		}

		vs = append(vs, v)
	}

	if _, err := c.expect(tokPunct, ")"); err != nil {
		return nil, err
	}

	return vs, nil
}

// fromTo consumes "[take] %src to [init] %dest" for copies and "%src to [init|assign] %dest" for stores.
func (c *cursor) fromTo(inst *Inst, copyAddr bool) ([]lexeme, error) {
	if copyAddr {
		inst.SetTakeOfSrc(c.acceptAttr("take"))
	}

	src, err := c.expect(tokValue, "")
	if err != nil {
		return nil, err
	}

	if _, err := c.expect(tokIdent, "to"); err != nil {
		return nil, err
	}

	switch {
	case c.acceptAttr("init"):
		inst.Attrs.Enable(AttrInit)

	case !copyAddr && !c.acceptAttr("assign"):
		return nil, c.p.errorf(src.off, "store requires [init] or [assign]")
	}

	dest, err := c.expect(tokValue, "")
	if err != nil {
		return nil, err
	}

	return []lexeme{src, dest}, nil
}

func (c *cursor) block(fs *funcState) (BlockID, error) {
	t, err := c.expect(tokIdent, "")
	if err != nil {
		return 0, err
	}

	b, ok := fs.blocks[t.text]
	if !ok {
		return 0, c.p.errorf(t.off, "undefined block %s", t.text)
	}

	return b, nil
}

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
)

// ErrMalformed is wrapped by all verifier errors.
var ErrMalformed = errors.New("malformed IR")

// Verify checks the structural consistency of f.
func Verify(f *Function) error {
	var errs []error

	report := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: @%s: %s", ErrMalformed, f.Name, fmt.Sprintf(format, args...)))
	}

	for _, blk := range f.blocks {
		if len(blk.insts) == 0 {
			report("bb%d is empty", blk.ID)
			continue
		}

		for i, v := range blk.insts {
			inst := f.Inst(v)

			if inst.erased || inst.block != blk.ID {
				report("bb%d lists stale instruction %%%d", blk.ID, v)
				continue
			}

			if last := i == len(blk.insts)-1; last != inst.Op.IsTerminator() {
				if last {
					report("bb%d does not end in a terminator", blk.ID)
				} else {
					report("terminator %s in the middle of bb%d", inst.Op, blk.ID)
				}
			}

			for j, op := range inst.Operands {
				if def := f.Inst(op); def == nil || def.erased {
					report("operand %d of %s in bb%d refers to an erased value", j, inst.Op, blk.ID)
				}
			}

			verifyShape(f, inst, report)
		}
	}

	return errors.Join(errs...)
}

// verifyShape checks operand counts and opcode specific constraints.
func verifyShape(f *Function, inst *Inst, report func(format string, args ...any)) {
	want := -1 // variadic

	switch inst.Op {
	case OpAllocStack, OpAllocBox, OpGlobalAddr, OpIntegerLiteral, OpUnreachable:
		want = 0

	case OpStore, OpCopyAddr:
		want = 2

	case OpApply, OpBranch, OpReturn:

	case OpEndAccess:
		want = 1

		if def := f.Inst(inst.Operand(0)); def != nil && def.Op != OpBeginAccess {
			report("end_access of %s", def.Op)
		}

	case OpCondBranch:
		want = 1

		if len(inst.Succs) != 2 {
			report("cond_br with %d successors", len(inst.Succs))
		}

	default:
		want = 1
	}

	if want >= 0 && len(inst.Operands) != want {
		report("%s has %d operands, expected %d", inst.Op, len(inst.Operands), want)
	}

	if inst.Op == OpReturn && len(inst.Operands) > 1 {
		report("return has %d operands", len(inst.Operands))
	}

	for _, s := range inst.Succs {
		target := f.Block(s)
		if target == nil {
			report("%s to missing bb%d", inst.Op, s)
			continue
		}

		args := 0
		if inst.Op == OpBranch {
			args = len(inst.Operands)
		}

		if len(target.Args) != args {
			report("%s passes %d arguments to bb%d, expected %d", inst.Op, args, s, len(target.Args))
		}
	}
}

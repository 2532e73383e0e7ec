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

package transform

import (
	"context"
	"errors"
	"fmt"
	"runtime/trace"

	"fillmore-labs.com/refbind/internal/config"
	"fillmore-labs.com/refbind/ir"
)

// rewrite replaces the box of a validated binding with a modify access of its source
// that is written back at every exit.
func rewrite(ctx context.Context, fn *ir.Function, b binding) {
	defer trace.StartRegion(ctx, "rewrite").End()

	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok && errors.Is(err, ir.ErrInvalidEdit) {
				panic(fmt.Errorf("%w: rewriting binding %%%d: %w", ErrInternal, b.mark, err))
			}

			panic(r)
		}
	}()

	access := fn.Inst(b.access)
	if access.Op != ir.OpBeginAccess || access.Access != ir.AccessRead {
		panic(fmt.Errorf("%w: binding %%%d is not initialized from a read access", ErrInternal, b.mark))
	}

	b.init.SetTakeOfSrc(true)
	access.Access = ir.AccessModify

	for _, end := range b.ends {
		fn.Erase(end)
	}

	for _, destroy := range b.destroys {
		d := fn.Inst(destroy)
		if d.Erased() || d.Op != ir.OpDestroyValue {
			panic(fmt.Errorf("%w: exit %%%d of binding %%%d is not a destroy_value", ErrInternal, destroy, b.mark))
		}

		pos := d.Pos

		pb := fn.InsertBefore(destroy, ir.Inst{Op: ir.OpProjectBox, Operands: []ir.Value{b.mark}, Pos: pos})
		fn.InsertBefore(destroy, ir.Inst{
			Op:       ir.OpCopyAddr,
			Operands: []ir.Value{pb, b.access},
			Attrs:    config.NewBitMask(ir.AttrTake, ir.AttrInit),
			Pos:      pos,
		})
		fn.InsertBefore(destroy, ir.Inst{Op: ir.OpEndAccess, Operands: []ir.Value{b.access}, Pos: pos})
		fn.InsertBefore(destroy, ir.Inst{Op: ir.OpDeallocBox, Operands: []ir.Value{b.mark}, Pos: pos})

		fn.Erase(destroy)
	}

	fn.ReplaceAllUsesWith(b.mark, fn.Inst(b.mark).Operand(0))
	fn.Erase(b.mark)
}

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
	"runtime/trace"

	"fillmore-labs.com/refbind/internal/accesspath"
	"fillmore-labs.com/refbind/internal/diag"
	"fillmore-labs.com/refbind/internal/liveness"
	"fillmore-labs.com/refbind/ir"
)

// binding is a reference binding that is safe to rewrite.
type binding struct {
	mark ir.Value
	init *ir.Inst

	// The read access the initialization copies from
	access ir.Value
	ends   []ir.Value

	// Exits of the binding, in use order
	destroys []ir.Value
}

// validate checks that the source of init is not used while mark is live.
// Every problem found is diagnosed.
func (t *transformer) validate(ctx context.Context, fn *ir.Function, mark ir.Value, init *ir.Inst) (binding, bool) {
	defer trace.StartRegion(ctx, "validate").End()

	b := binding{mark: mark, init: init}

	live := liveness.New(fn)
	live.InitializeDef(mark)

	for use := range fn.ConsumingUses(mark) {
		if fn.Inst(use.User).Op != ir.OpDestroyValue {
			t.sink.Diagnose(fn, mark, diag.UnknownPattern)
			return binding{}, false
		}

		live.UpdateForUse(use.User, true)
		b.destroys = append(b.destroys, use.User)
	}

	if len(b.destroys) == 0 {
		t.sink.Diagnose(fn, mark, diag.UnknownPattern)
		return binding{}, false
	}

	src, ok := accesspath.Compute(fn, init.Src())
	if !ok {
		t.sink.Diagnose(fn, mark, diag.UnknownPattern)
		return binding{}, false
	}

	access := fn.Inst(init.Src())
	if access.Op != ir.OpBeginAccess || access.Access != ir.AccessRead {
		t.sink.Diagnose(fn, mark, diag.UnknownPattern)
		return binding{}, false
	}

	b.access = access.ID()

	for use := range fn.Uses(b.access) {
		if fn.Inst(use.User).Op == ir.OpEndAccess {
			b.ends = append(b.ends, use.User)
		}
	}

	conflicts := 0
	complete := accesspath.VisitOverlapping(fn, src.Path, accesspath.IgnoreAccessBegin, func(use ir.Operand) bool {
		if use.User == init.ID() || fn.Inst(use.User).Op == ir.OpEndAccess {
			return true
		}

		if live.IsWithinBoundary(use.User) {
			t.sink.Diagnose(fn, use.User, diag.SourceUsedWithinScope, diag.Note{At: mark, Kind: diag.BindingHere})
			conflicts++
		}

		return true
	})

	if !complete {
		t.sink.Diagnose(fn, mark, diag.UnknownPattern)
		return binding{}, false
	}

	return b, conflicts == 0
}

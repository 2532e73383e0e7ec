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

package diag

import (
	"go/token"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/refbind/ir"
)

// Note is secondary information attached to a diagnostic.
type Note struct {
	At   ir.Value
	Kind Kind
}

// Sink delivers diagnostics for instructions of a function.
//
// A silent sink computes and counts diagnostics without delivering them.
type Sink struct {
	// Report receives every diagnostic unless Silent is set. May be nil.
	Report func(analysis.Diagnostic)

	// Silent suppresses delivery.
	Silent bool

	count int
}

// Diagnose reports kind at the instruction at, with optional notes.
func (s *Sink) Diagnose(fn *ir.Function, at ir.Value, kind Kind, notes ...Note) {
	s.count++

	if s.Silent || s.Report == nil {
		return
	}

	d := analysis.Diagnostic{
		Pos:      Location(fn, at),
		Category: kind.Category(),
		Message:  kind.Message(),
	}

	for _, note := range notes {
		d.Related = append(d.Related, analysis.RelatedInformation{
			Pos:     Location(fn, note.At),
			Message: note.Kind.Message(),
		})
	}

	s.Report(d)
}

// Count returns the number of diagnostics computed so far, including silenced ones.
func (s *Sink) Count() int { return s.count }

// Location returns the source position a diagnostic at v is attributed to.
//
// A moveonly_to_copyable conversion has no location of its own when it is
// returned directly, so diagnostics are attributed to the return.
func Location(fn *ir.Function, v ir.Value) token.Pos {
	inst := fn.Inst(v)
	if inst == nil {
		return token.NoPos
	}

	if inst.Op == ir.OpMoveOnlyToCopyable {
		if user, ok := fn.SingleUser(v); ok && user.Op == ir.OpReturn {
			return user.Pos
		}
	}

	return inst.Pos
}

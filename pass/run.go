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

package pass

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/trace"

	"fillmore-labs.com/refbind/internal/config"
	"fillmore-labs.com/refbind/internal/diag"
	"fillmore-labs.com/refbind/internal/transform"
	"fillmore-labs.com/refbind/ir"
)

// ErrInternal is the cause of panics on violated assumptions about the input IR.
var ErrInternal = transform.ErrInternal

// Run lowers the reference bindings of fn and reports whether fn was changed.
//
// Functions without the reference-bindings feature are not inspected.
// Run panics with an error wrapping [ErrInternal] when the input breaks
// assumptions of the transform, or when verification of a changed function fails.
func (p *Pass) Run(ctx context.Context, fn *ir.Function) bool {
	if !fn.Features.Enabled(ir.FeatureReferenceBindings) {
		return false
	}

	ctx, task := trace.NewTask(ctx, "RefBind")
	defer task.End()

	trace.Log(ctx, "func", fn.Name)

	logger := p.r.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sink := &diag.Sink{
		Report: p.r.report,
		Silent: p.r.behavior.Enabled(config.SilentDiagnostics),
	}

	changed := transform.Run(ctx, fn, sink, logger)

	if changed && p.r.behavior.Enabled(config.Verify) {
		defer trace.StartRegion(ctx, "verify").End()

		if err := ir.Verify(fn); err != nil {
			panic(fmt.Errorf("%w: @%s after lowering: %w", ErrInternal, fn.Name, err))
		}
	}

	logger.LogAttrs(ctx, slog.LevelDebug, "function processed",
		slog.String("func", fn.Name), slog.Bool("changed", changed), slog.Int("diagnostics", sink.Count()))

	return changed
}

// RunModule runs the pass on every function of m and reports whether any function was changed.
func (p *Pass) RunModule(ctx context.Context, m *ir.Module) bool {
	changed := false

	for _, fn := range m.Functions {
		if p.Run(ctx, fn) {
			changed = true
		}
	}

	return changed
}

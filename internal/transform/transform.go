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
	"log/slog"
	"runtime/trace"

	"fillmore-labs.com/refbind/internal/diag"
	"fillmore-labs.com/refbind/ir"
)

// ErrInternal is the cause of panics on violated assumptions about the input IR.
// Those are never reported as diagnostics.
var ErrInternal = errors.New("reference binding internal consistency violation")

type transformer struct {
	sink   *diag.Sink
	logger *slog.Logger
}

// Run lowers all reference bindings of fn and reports whether fn was changed.
//
// Bindings that can't be lowered are diagnosed through sink and left untouched.
// A nil logger disables logging.
func Run(ctx context.Context, fn *ir.Function, sink *diag.Sink, logger *slog.Logger) bool {
	defer trace.StartRegion(ctx, "transform").End()

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	t := transformer{sink: sink, logger: logger.With(slog.String("func", fn.Name))}

	changed := false

	for _, mark := range collectMarkers(fn) {
		if t.lower(ctx, fn, mark) {
			changed = true
		}
	}

	return changed
}

// lower matches, validates and rewrites a single binding.
func (t *transformer) lower(ctx context.Context, fn *ir.Function, mark ir.Value) bool {
	m := initMatcher{fn: fn, mark: mark}
	if !m.match() {
		t.sink.Diagnose(fn, mark, diag.UnknownPattern)
		t.logger.LogAttrs(ctx, slog.LevelDebug, "binding diagnosed",
			slog.Int("mark", int(mark)), slog.String("stage", "match"))

		return false
	}

	init := m.initializer()
	if init == nil {
		panic(fmt.Errorf("%w: binding %%%d matched without initialization", ErrInternal, mark))
	}

	b, ok := t.validate(ctx, fn, mark, init)
	if !ok {
		t.logger.LogAttrs(ctx, slog.LevelDebug, "binding diagnosed",
			slog.Int("mark", int(mark)), slog.String("stage", "validate"))

		return false
	}

	rewrite(ctx, fn, b)

	t.logger.LogAttrs(ctx, slog.LevelDebug, "binding rewritten",
		slog.Int("mark", int(mark)), slog.Int("exits", len(b.destroys)))

	return true
}

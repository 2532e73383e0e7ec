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

package ir_test

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/refbind/ir"
)

const sample = `feature reference-bindings

// A binding with a single exit.
func @single {
bb0(%addr):
  %box = alloc_box
  %mark = mark_unresolved_reference_binding [inout] %box
  %pb = project_box %mark
  %access = begin_access [read] %addr
  copy_addr %access to [init] %pb
  end_access %access
  %v = load [copy] %pb
  %r = apply @use(%v)
  destroy_value %mark
  br bb1
bb1:
  return
}
`

const printed = `feature reference-bindings

func @single {
bb0(%0):
  %1 = alloc_box
  %2 = mark_unresolved_reference_binding [inout] %1
  %3 = project_box %2
  %4 = begin_access [read] %0
  copy_addr %4 to [init] %3
  end_access %4
  %5 = load [copy] %3
  %6 = apply @use(%5)
  destroy_value %2
  br bb1
bb1:
  return
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	fset := token.NewFileSet()

	m, err := Parse(fset, "sample.sil", []byte(sample))
	require.NoError(t, err)

	require.Len(t, m.Functions, 1)

	fn := m.Function("single")
	require.NotNil(t, fn)

	assert.True(t, fn.Features.Enabled(FeatureReferenceBindings))
	assert.Equal(t, 2, fn.NumBlocks())
	require.NoError(t, Verify(fn))

	var marks []*Inst

	for inst := range fn.Instructions() {
		if inst.Op == OpMarkUnresolvedReferenceBinding {
			marks = append(marks, inst)
		}
	}

	require.Len(t, marks, 1)

	mark := marks[0]
	assert.True(t, mark.Attrs.Enabled(AttrInout))
	assert.Equal(t, 7, fset.Position(mark.Pos).Line)
	assert.Equal(t, 3, fset.Position(mark.Pos).Column)

	assert.Equal(t, printed, m.String())
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	m, err := Parse(token.NewFileSet(), "printed.sil", []byte(printed))
	require.NoError(t, err)

	assert.Equal(t, printed, m.String())
}

func TestParseFeatures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		enabled bool
	}{
		{"Hyphenated", `feature reference-bindings

func @f {
bb0:
  return
}
`, true},
		{"Comment", `feature reference-bindings // lowered
func @f {
bb0:
  return
}
`, true},
		{"None", `func @f {
bb0:
  return
}
`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := Parse(token.NewFileSet(), "features.sil", []byte(tt.src))
			require.NoError(t, err)

			assert.Equal(t, tt.enabled, m.Features.Enabled(FeatureReferenceBindings))
			assert.Equal(t, tt.enabled, m.Function("f").Features.Enabled(FeatureReferenceBindings))

			again, err := Parse(token.NewFileSet(), "printed.sil", []byte(m.String()))
			require.NoError(t, err)
			assert.Equal(t, m.String(), again.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"UnknownInstruction", "func @f {\nbb0:\n  frobnicate\n}\n", `bad.sil:3:3: unknown instruction "frobnicate"`},
		{"UndefinedValue", "func @f {\nbb0:\n  destroy_value %x\n  return\n}\n", "bad.sil:3:17: undefined value %x"},
		{"UndefinedBlock", "func @f {\nbb0:\n  br bb7\n}\n", "bad.sil:3:6: undefined block bb7"},
		{"Redefined", "func @f {\nbb0:\n  %a = alloc_box\n  %a = alloc_box\n  return\n}\n", "bad.sil:4:3: value %a redefined"},
		{"NoResult", "func @f {\nbb0:\n  %a = return\n}\n", "bad.sil:3:3: return does not produce a value"},
		{"Unterminated", "func @f {\nbb0:\n  return\n", "bad.sil:1:1: function @f is not terminated"},
		{"OutsideBlock", "func @f {\n  return\n}\n", "bad.sil:2:3: instruction outside of a block"},
		{"AccessKind", "func @f {\nbb0(%a):\n  %b = begin_access [deinit] %a\n  return\n}\n", "bad.sil:3:21: unknown access kind [deinit]"},
		{"Feature", "feature generics\n", `bad.sil:1:9: unknown feature "generics"`},
		{"HyphenatedFeature", "feature reference-binding\n", `bad.sil:1:9: unknown feature "reference-binding"`},
		{"Character", "func @f {\nbb0:\n  return $\n}\n", `bad.sil:3:10: unexpected character '$'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(token.NewFileSet(), "bad.sil", []byte(tt.src))
			require.ErrorIs(t, err, ErrSyntax)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

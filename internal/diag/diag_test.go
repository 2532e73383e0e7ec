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

package diag_test

import (
	"bytes"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis"

	. "fillmore-labs.com/refbind/internal/diag"
	"fillmore-labs.com/refbind/ir"
)

const source = `func @conv {
bb0(%x):
  %c = moveonly_to_copyable %x
  return %c
}

func @plain {
bb0(%x):
  %c = moveonly_to_copyable %x
  destroy_value %c
  return
}
`

func parse(t *testing.T) (*token.FileSet, *ir.Module) {
	t.Helper()

	fset := token.NewFileSet()

	m, err := ir.Parse(fset, "diag.sil", []byte(source))
	require.NoError(t, err)

	return fset, m
}

func conversion(fn *ir.Function) ir.Value {
	for inst := range fn.Instructions() {
		if inst.Op == ir.OpMoveOnlyToCopyable {
			return inst.ID()
		}
	}

	return ir.NoValue
}

func TestLocation(t *testing.T) {
	t.Parallel()

	fset, m := parse(t)

	tests := []struct {
		name string
		fn   string
		line int
	}{
		{"ReturnedConversion", "conv", 4},
		{"Conversion", "plain", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fn := m.Function(tt.fn)
			require.NotNil(t, fn)

			pos := Location(fn, conversion(fn))
			assert.Equal(t, tt.line, fset.Position(pos).Line)
		})
	}
}

func TestSink(t *testing.T) {
	t.Parallel()

	_, m := parse(t)
	fn := m.Function("plain")
	c := conversion(fn)

	var got []analysis.Diagnostic

	s := Sink{Report: func(d analysis.Diagnostic) { got = append(got, d) }}
	s.Diagnose(fn, c, SourceUsedWithinScope, Note{At: fn.Block(0).Args[0], Kind: BindingHere})

	require.Len(t, got, 1)
	assert.Equal(t, "rb:use", got[0].Category)
	assert.Equal(t, "var bound to inout binding cannot be used within the inout binding's scope", got[0].Message)
	require.Len(t, got[0].Related, 1)
	assert.Equal(t, "inout binding here", got[0].Related[0].Message)
	assert.Equal(t, 1, s.Count())
}

func TestSilentSink(t *testing.T) {
	t.Parallel()

	_, m := parse(t)
	fn := m.Function("plain")

	s := Sink{
		Report: func(analysis.Diagnostic) { t.Error("silent sink delivered a diagnostic") },
		Silent: true,
	}

	s.Diagnose(fn, conversion(fn), UnknownPattern)
	s.Diagnose(fn, conversion(fn), UnknownPattern)

	assert.Equal(t, 2, s.Count())
}

func TestPrinter(t *testing.T) {
	t.Parallel()

	fset, m := parse(t)
	fn := m.Function("plain")

	var got []analysis.Diagnostic

	s := Sink{Report: func(d analysis.Diagnostic) { got = append(got, d) }}
	s.Diagnose(fn, conversion(fn), SourceUsedWithinScope, Note{At: fn.Block(0).Args[0], Kind: BindingHere})
	require.Len(t, got, 1)

	tests := []struct {
		name          string
		format        Format
		uncategorized bool
		want          string
	}{
		{
			"Text", Text, false,
			"diag.sil:9:3: error: var bound to inout binding cannot be used within the inout binding's scope (rb:use)\n" +
				"diag.sil:8:5: note: inout binding here\n",
		},
		{
			"Uncategorized", Text, true,
			"diag.sil:9:3: error: var bound to inout binding cannot be used within the inout binding's scope\n" +
				"diag.sil:8:5: note: inout binding here\n",
		},
		{
			"JSON", JSON, false,
			`{"category":"rb:use","posn":"diag.sil:9:3","message":"var bound to inout binding cannot be used within the inout binding's scope",` +
				`"related":[{"posn":"diag.sil:8:5","message":"inout binding here"}]}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			d := got[0]
			if tt.uncategorized {
				d.Category = ""
			}

			p := NewPrinter(&buf, fset, tt.format)
			require.NoError(t, p.Print(d))

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, JSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

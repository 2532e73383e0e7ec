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

package pass_test

import (
	"bytes"
	"context"
	"flag"
	"go/token"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/txtar"

	"fillmore-labs.com/refbind/internal/config"
	"fillmore-labs.com/refbind/internal/diag"
	"fillmore-labs.com/refbind/ir"
	. "fillmore-labs.com/refbind/pass"
)

type fixture struct {
	input, output, diagnostics []byte
}

func readFixture(t *testing.T, name string) fixture {
	t.Helper()

	a, err := txtar.ParseFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	var f fixture

	for _, file := range a.Files {
		switch file.Name {
		case "input.sil":
			f.input = file.Data
		case "output.sil":
			f.output = file.Data
		case "diagnostics":
			f.diagnostics = file.Data
		default:
			t.Fatalf("unexpected file %s in %s", file.Name, name)
		}
	}

	return f
}

func TestPass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fixture string
		options Option
		changed bool
	}{
		{"Lowered", "lowered.txtar", nil, true},
		{"FeatureDisabled", "disabled.txtar", nil, false},
		{"Diagnosed", "diagnosed.txtar", WithVerify(true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := readFixture(t, tt.fixture)

			fset := token.NewFileSet()

			m, err := ir.Parse(fset, "input.sil", f.input)
			require.NoError(t, err)

			var out bytes.Buffer

			printer := diag.NewPrinter(&out, fset, diag.Text)
			report := func(d analysis.Diagnostic) { require.NoError(t, printer.Print(d)) }

			p := New(tt.options, WithReporter(report))
			changed := p.RunModule(context.Background(), m)

			assert.Equal(t, tt.changed, changed)

			want, err := ir.Parse(token.NewFileSet(), "output.sil", f.output)
			require.NoError(t, err)

			if diff := cmp.Diff(want.String(), m.String()); diff != "" {
				t.Errorf("RunModule() mismatch (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(string(f.diagnostics), out.String()); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFeatureGate(t *testing.T) {
	t.Parallel()

	f := readFixture(t, "lowered.txtar")

	m, err := ir.Parse(token.NewFileSet(), "input.sil", f.input)
	require.NoError(t, err)

	fn := m.Functions[0]
	fn.Features = ir.FeatureSet{}

	before := fn.String()

	p := New(WithReporter(func(analysis.Diagnostic) { t.Error("unexpected diagnostic") }))
	assert.False(t, p.Run(context.Background(), fn))
	assert.Equal(t, before, fn.String())

	fn.Features.Enable(ir.FeatureReferenceBindings)
	assert.True(t, p.Run(context.Background(), fn))
}

// buildBinding constructs a lowerable binding without going through the text format.
func buildBinding() *ir.Function {
	fn := ir.NewFunction("built")
	b := fn.NewBlock()

	addr := fn.AddArgument(b, token.NoPos)
	box := fn.Append(b, ir.Inst{Op: ir.OpAllocBox})
	mark := fn.Append(b, ir.Inst{
		Op:       ir.OpMarkUnresolvedReferenceBinding,
		Operands: []ir.Value{box},
		Attrs:    config.NewBitMask(ir.AttrInout),
	})
	pb := fn.Append(b, ir.Inst{Op: ir.OpProjectBox, Operands: []ir.Value{mark}})
	access := fn.Append(b, ir.Inst{Op: ir.OpBeginAccess, Operands: []ir.Value{addr}, Access: ir.AccessRead})
	fn.Append(b, ir.Inst{Op: ir.OpCopyAddr, Operands: []ir.Value{access, pb}, Attrs: config.NewBitMask(ir.AttrInit)})
	fn.Append(b, ir.Inst{Op: ir.OpEndAccess, Operands: []ir.Value{access}})
	fn.Append(b, ir.Inst{Op: ir.OpDestroyValue, Operands: []ir.Value{mark}})
	fn.Append(b, ir.Inst{Op: ir.OpReturn})

	return fn
}

func TestFeatureGateBuilt(t *testing.T) {
	t.Parallel()

	fn := buildBinding()
	require.NoError(t, ir.Verify(fn))

	before := fn.String()

	p := New(WithReporter(func(analysis.Diagnostic) { t.Error("unexpected diagnostic") }))
	assert.False(t, p.Run(context.Background(), fn))
	assert.Equal(t, before, fn.String())

	fn.Features.Enable(ir.FeatureReferenceBindings)
	require.True(t, p.Run(context.Background(), fn))

	for inst := range fn.Instructions() {
		assert.NotEqual(t, ir.OpMarkUnresolvedReferenceBinding, inst.Op)
	}

	assert.NoError(t, ir.Verify(fn))
}

func TestSilentFlag(t *testing.T) {
	t.Parallel()

	f := readFixture(t, "diagnosed.txtar")

	m, err := ir.Parse(token.NewFileSet(), "input.sil", f.input)
	require.NoError(t, err)

	p := New(WithReporter(func(analysis.Diagnostic) { t.Error("silenced diagnostic was reported") }))
	require.NoError(t, p.Flags.Parse([]string{"-silent-diagnostics"}))

	assert.True(t, p.RunModule(context.Background(), m))

	want, err := ir.Parse(token.NewFileSet(), "output.sil", f.output)
	require.NoError(t, err)
	assert.Equal(t, want.String(), m.String())
}

func TestWith(t *testing.T) {
	t.Parallel()

	p := New()
	require.NoError(t, p.Flags.Parse([]string{"-verify=false", "-silent-diagnostics"}))

	q := p.With(WithVerify(true))

	getter := func(p *Pass, name string) any {
		return p.Flags.Lookup(name).Value.(flag.Getter).Get()
	}

	assert.Equal(t, false, getter(p, "verify"))
	assert.Equal(t, true, getter(q, "verify"))
	assert.Equal(t, true, getter(q, "silent-diagnostics"))
}

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    bool
		wantErr bool
	}{
		{"Default", nil, true, false},
		{"Disable", []string{"-verify=false"}, false, false},
		{"Off", []string{"-verify=off"}, false, false},
		{"Enable", []string{"-verify=false", "-verify"}, true, false},
		{"Invalid", []string{"-verify=maybe"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := New()
			p.Flags.SetOutput(&strings.Builder{})

			err := p.Flags.Parse(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.want, p.Flags.Lookup("verify").Value.(flag.Getter).Get())
		})
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	p := New()

	var out strings.Builder
	p.Flags.SetOutput(&out)
	p.Flags.Usage()

	const expectedUsage = `
  -verify
    	verify functions after changing them (default true)
`

	assert.True(t, strings.HasSuffix(out.String(), expectedUsage), "Usage() = %q, want suffix %q", out.String(), expectedUsage)
	assert.Contains(t, out.String(), "  -silent-diagnostics\n    \tcompute diagnostics without reporting them\n")
}

func TestOptionsLogValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}))

	opts := Options{WithVerify(true), Options{WithSilentDiagnostics(false)}, WithLogger(logger)}
	logger.LogAttrs(context.Background(), slog.LevelInfo, "configured", opts.LogAttr())

	assert.Equal(t, "level=INFO msg=configured options.verify=true options.silent-diagnostics=false options.logger=true\n", buf.String())
}

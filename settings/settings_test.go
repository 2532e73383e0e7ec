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

package settings_test

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/refbind/ir"
	"fillmore-labs.com/refbind/pass"
	. "fillmore-labs.com/refbind/settings"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	silent, verify := true, false
	all := Settings{SilentDiagnostics: &silent, Verify: &verify, EnableFeatures: []string{"reference-bindings"}}

	tests := []struct {
		name string
		file string
		want Settings
	}{
		{"YAML", "all.yaml", all},
		{"TOML", "all.toml", all},
		{"JSON", "all.json", all},
		{"Empty", "empty.yaml", Settings{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Load(filepath.Join("testdata", tt.file))
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join("testdata", "settings.ini"))
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join("testdata", "unknown.toml"))
	require.ErrorContains(t, err, "max-lines")

	_, err = Decode(strings.NewReader("verify: true\nrename: true\n"), YAML)
	require.Error(t, err)

	_, err = Decode(strings.NewReader(`{"verify": true, "rename": true}`), JSON)
	require.Error(t, err)

	_, err = Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	all, err := Load(filepath.Join("testdata", "all.json"))
	require.NoError(t, err)

	testCases := [...]struct {
		name     string
		settings Settings
		want     int
	}{
		{"all", all, reflect.TypeFor[Settings]().NumField() - 1}, // EnableFeatures is not a pass option
		{"none", Settings{}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.settings.Options(); len(got) != tc.want {
				t.Errorf("Got %d options: %s, want %d", len(got), pass.Options(got).LogValue(), tc.want)
			}
		})
	}
}

func TestFeatures(t *testing.T) {
	t.Parallel()

	all, err := Load(filepath.Join("testdata", "all.yaml"))
	require.NoError(t, err)

	features, err := all.Features()
	require.NoError(t, err)
	assert.True(t, features.Enabled(ir.FeatureReferenceBindings))

	bad, err := Load(filepath.Join("testdata", "feature.json"))
	require.NoError(t, err)

	_, err = bad.Features()
	require.ErrorIs(t, err, ir.ErrUnknownFeature)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	yes, no := true, false

	base := Settings{Verify: &yes, EnableFeatures: []string{"a"}}
	merged := base.Merge(Settings{SilentDiagnostics: &no, EnableFeatures: []string{"b"}})

	want := Settings{SilentDiagnostics: &no, Verify: &yes, EnableFeatures: []string{"a", "b"}}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"a"}, base.EnableFeatures)
}

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

package settings

import (
	"fmt"

	"fillmore-labs.com/refbind/ir"
	"fillmore-labs.com/refbind/pass"
)

// Settings represents the configuration options for a refbind run.
type Settings struct {
	// SilentDiagnostics computes diagnostics without reporting them.
	SilentDiagnostics *bool `json:"silent-diagnostics,omitzero" toml:"silent-diagnostics,omitempty" yaml:"silent-diagnostics,omitempty"`
	// Verify verifies changed functions.
	Verify *bool `json:"verify,omitzero" toml:"verify,omitempty" yaml:"verify,omitempty"`
	// EnableFeatures enables language features for all processed modules.
	EnableFeatures []string `json:"enable-features,omitzero" toml:"enable-features,omitempty" yaml:"enable-features,omitempty"`
}

// Options converts [Settings] into a list of [pass.Option] for the refbind pass.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []pass.Option {
	var opts []pass.Option

	opts = appendOption(opts, s.SilentDiagnostics, pass.WithSilentDiagnostics)
	opts = appendOption(opts, s.Verify, pass.WithVerify)

	return opts
}

// appendOption appends a non-nil setting to a [pass.Option] list.
func appendOption[T any](opts []pass.Option, value *T, constructor func(T) pass.Option) []pass.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}

// Features returns the set of features named in EnableFeatures.
func (s Settings) Features() (ir.FeatureSet, error) {
	var features ir.FeatureSet

	for _, name := range s.EnableFeatures {
		f, err := ir.ParseFeature(name)
		if err != nil {
			return ir.FeatureSet{}, fmt.Errorf("settings: %w", err)
		}

		features.Enable(f)
	}

	return features, nil
}

// Merge returns s with the fields set in o replacing its own.
func (s Settings) Merge(o Settings) Settings {
	if o.SilentDiagnostics != nil {
		s.SilentDiagnostics = o.SilentDiagnostics
	}

	if o.Verify != nil {
		s.Verify = o.Verify
	}

	s.EnableFeatures = append(s.EnableFeatures[:len(s.EnableFeatures):len(s.EnableFeatures)], o.EnableFeatures...)

	return s
}

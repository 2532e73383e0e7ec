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

package ir

import (
	"errors"
	"fmt"
	"strings"

	"fillmore-labs.com/refbind/internal/config"
)

// Feature is a language feature that can be enabled for a module.
type Feature uint8

const (
	// FeatureReferenceBindings enables inout reference bindings.
	FeatureReferenceBindings Feature = 1 << iota
)

// FeatureSet is the set of enabled features.
type FeatureSet = config.BitMask[Feature]

// ErrUnknownFeature is returned for an unrecognized feature name.
var ErrUnknownFeature = errors.New("unknown feature")

var featureNames = [...]struct {
	name    string
	feature Feature
}{
	{"reference-bindings", FeatureReferenceBindings},
}

// ParseFeature returns the feature with the given name.
func ParseFeature(name string) (Feature, error) {
	for _, f := range featureNames {
		if strings.EqualFold(f.name, name) {
			return f.feature, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
}

// String returns the name of the feature.
func (f Feature) String() string {
	for _, n := range featureNames {
		if n.feature == f {
			return n.name
		}
	}

	return fmt.Sprintf("Feature(%d)", uint8(f))
}

// Module is a parsed IR file.
type Module struct {
	Name      string
	Features  FeatureSet
	Functions []*Function
}

// EnableFeature turns on feature for the module and all its functions.
func (m *Module) EnableFeature(feature Feature) {
	m.EnableFeatures(config.NewBitMask(feature))
}

// EnableFeatures turns on all features in set for the module and all its functions.
func (m *Module) EnableFeatures(set FeatureSet) {
	m.Features = m.Features.Union(set)

	for _, fn := range m.Functions {
		fn.Features = fn.Features.Union(set)
	}
}

// Function returns the function with the given name, or nil.
func (m *Module) Function(name string) *Function {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}

	return nil
}

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

package config

// Behavior represents configuration options for the reference binding pass.
type Behavior uint8

const (
	// SilentDiagnostics computes diagnostics without delivering them to the reporter.
	// Intended for tests that check the transformed IR of erroneous input.
	SilentDiagnostics Behavior = 1 << iota

	// Verify runs the structural IR verifier after a function was changed.
	Verify
)

// Behaviors is the set of enabled [Behavior] flags.
type Behaviors = BitMask[Behavior]

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
	"log/slog"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/refbind/internal/config"
)

// runOptions represent the configuration of a refbind pass.
type runOptions struct {
	// behavior holds behavioral options.
	behavior config.Behaviors

	// report receives the diagnostics, nil drops them.
	report func(analysis.Diagnostic)

	// logger receives debug output, nil disables logging.
	logger *slog.Logger
}

// defaultRunOptions initializes and returns a new runOptions instance with default values.
func defaultRunOptions() *runOptions {
	return &runOptions{
		behavior: config.NewBitMask(config.Verify),
	}
}

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
	"fmt"
	"strconv"
	"strings"

	"fillmore-labs.com/refbind/internal/config"
)

// behaviorValue exposes one [config.Behavior] of a run as a boolean command line flag.
type behaviorValue struct {
	behaviors *config.Behaviors
	behavior  config.Behavior
}

// Set implements [flag.Value]. Besides the forms accepted by [strconv.ParseBool]
// it understands "on" and "off".
func (v behaviorValue) Set(s string) error {
	enabled, err := strconv.ParseBool(s)
	if err != nil {
		switch strings.ToLower(s) {
		case "on":
			enabled = true
		case "off":
			enabled = false
		default:
			return fmt.Errorf("invalid boolean %q", s)
		}
	}

	v.behaviors.Set(v.behavior, enabled)

	return nil
}

// String implements [flag.Value]. The zero value, used by [flag.PrintDefaults], reports false.
func (v behaviorValue) String() string {
	return strconv.FormatBool(v.enabled())
}

// Get implements [flag.Getter].
func (v behaviorValue) Get() any { return v.enabled() }

// IsBoolFlag allows the flag to be given without a value.
func (behaviorValue) IsBoolFlag() bool { return true }

func (v behaviorValue) enabled() bool {
	return v.behaviors != nil && v.behaviors.Enabled(v.behavior)
}

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

import "fillmore-labs.com/refbind/ir"

// collectMarkers returns all reference binding markers of fn in program order.
func collectMarkers(fn *ir.Function) []ir.Value {
	var markers []ir.Value

	for inst := range fn.Instructions() {
		if inst.Op == ir.OpMarkUnresolvedReferenceBinding {
			markers = append(markers, inst.ID())
		}
	}

	return markers
}

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

// initMatcher finds the copy that initializes the box of a marker.
//
// Boxes are initialized completely and exactly once, and every other access
// to the box is guarded, so the initialization is the only copy_addr into a
// projection of the marker.
type initMatcher struct {
	fn   *ir.Function
	mark ir.Value
	init ir.Value
}

// match reports whether the marker has a single initialization that copies
// without taking from its source.
func (m *initMatcher) match() bool {
	m.init = ir.NoValue
	found := false

	for use := range m.fn.Uses(m.mark) {
		if m.fn.Inst(use.User).Op != ir.OpProjectBox {
			continue
		}

		for pbUse := range m.fn.Uses(use.User) {
			cp := m.fn.Inst(pbUse.User)
			if cp.Op != ir.OpCopyAddr || cp.Dest() != use.User {
				continue
			}

			if found || !cp.IsInitializationOfDest() || cp.IsTakeOfSrc() {
				m.init = ir.NoValue
				return false
			}

			found, m.init = true, cp.ID()
		}
	}

	return found
}

// initializer returns the matched initialization, or nil.
func (m *initMatcher) initializer() *ir.Inst {
	if m.init == ir.NoValue {
		return nil
	}

	return m.fn.Inst(m.init)
}

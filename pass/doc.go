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

// Package pass implements the refbind transform pass.
//
// # Overview
//
// The pass lowers unresolved reference bindings. A binding wraps a box that is
// initialized by copying from an outer address under a read access, and
// destroyed at every exit of the binding. The pass checks that the outer
// address is not used while the binding is live, then turns the read access
// into a modify access spanning the binding and writes the final value back
// at every exit.
//
// # Example
//
// Before:
//
//	%box = alloc_box
//	%mark = mark_unresolved_reference_binding [inout] %box
//	%pb = project_box %mark
//	%access = begin_access [read] %addr
//	copy_addr %access to [init] %pb
//	end_access %access
//	apply @update(%pb)
//	destroy_value %mark
//
// After:
//
//	%box = alloc_box
//	%pb = project_box %box
//	%access = begin_access [modify] %addr
//	copy_addr [take] %access to [init] %pb
//	apply @update(%pb)
//	%pb2 = project_box %box
//	copy_addr [take] %pb2 to [init] %access
//	end_access %access
//	dealloc_box %box
//
// # Diagnostics
//
// Bindings that can't be checked, or whose address is used while the binding
// is live, are reported and left unchanged:
//
//   - rb:pat: the binding has a shape the pass does not understand
//   - rb:use: the bound address is used within the binding's scope
//
// The pass only runs on functions with the reference-bindings feature.
package pass

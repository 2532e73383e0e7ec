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

// Package transform lowers reference bindings.
//
// A mark_unresolved_reference_binding instruction wraps a box that is bound
// to an outer address. The box is initialized once from a read access of the
// address and destroyed at every exit of the binding:
//
//	%box = alloc_box
//	%mark = mark_unresolved_reference_binding [inout] %box
//	%pb = project_box %mark
//	%access = begin_access [read] %addr
//	copy_addr %access to [init] %pb
//	end_access %access
//	...
//	destroy_value %mark
//
// After checking that the address is not used while the binding is live,
// the read access is turned into a modify access that spans the whole
// binding, and the box contents are written back at every exit:
//
//	%access = begin_access [modify] %addr
//	copy_addr [take] %access to [init] %pb
//	...
//	%pb2 = project_box %box
//	copy_addr [take] %pb2 to [init] %access
//	end_access %access
//	dealloc_box %box
package transform

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

// Package ir implements the in-memory intermediate representation consumed by
// the reference binding pass, together with its textual form.
//
// # Representation
//
// A [Function] owns its blocks and instructions. Instructions and block
// arguments live in an arena and are addressed by [Value] handles; blocks are
// addressed by [BlockID]. Use lists are computed from the current state of the
// function, so they are never stale after an edit.
//
// # Text Format
//
// The textual form is line oriented:
//
//	feature reference-bindings
//
//	func @update {
//	bb0(%0):
//	  %1 = alloc_box
//	  %2 = mark_unresolved_reference_binding [inout] %1
//	  %3 = project_box %2
//	  %4 = begin_access [read] %0
//	  copy_addr %4 to [init] %3
//	  end_access %4
//	  destroy_value %2
//	  return
//	}
//
// Comments start with "//". [Fprint] renumbers values in program order.
package ir

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

package diag

// Kind identifies a diagnostic emitted by the reference binding transform.
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	// UnknownPattern is reported when a binding has a shape that can't be checked.
	UnknownPattern Kind = iota // pat

	// SourceUsedWithinScope is reported at a use of the bound address while the binding is live.
	SourceUsedWithinScope // use

	// BindingHere is a note pointing at the binding.
	BindingHere // here
)

var messages = [...]string{
	UnknownPattern:        "reference binding that the compiler does not understand how to check. Please file a bug",
	SourceUsedWithinScope: "var bound to inout binding cannot be used within the inout binding's scope",
	BindingHere:           "inout binding here",
}

// Message returns the user visible text of the diagnostic.
func (k Kind) Message() string {
	if int(k) >= len(messages) {
		return k.String()
	}

	return messages[k]
}

// Category is the short code of the diagnostic, e.g. "rb:pat".
func (k Kind) Category() string { return "rb:" + k.String() }

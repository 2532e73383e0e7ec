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

import "testing"

func TestArena(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int
	}{
		{"Empty", 0},
		{"Single", 1},
		{"ChunkSize", chunkSize},
		{"ChunkSizePlusOne", chunkSize + 1},
		{"MultipleChunks", 2*chunkSize + 46},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var a arena

			for i := range tt.count {
				inst := a.new()
				inst.Literal = int64(i)
			}

			if got, want := a.len(), tt.count; got != want {
				t.Errorf("Got %d instructions, expected %d", got, want)
			}

			for i := range tt.count {
				inst := a.at(Value(i))
				if inst == nil {
					t.Fatalf("Missing instruction %d", i)
				}

				if got, want := inst.id, Value(i); got != want {
					t.Errorf("Got handle %d for instruction %d", got, want)
				}

				if got, want := inst.Literal, int64(i); got != want {
					t.Errorf("Got literal %d for instruction %d, expected %d", got, i, want)
				}
			}

			if a.at(Value(tt.count)) != nil || a.at(NoValue) != nil {
				t.Error("Expected no instruction out of range")
			}
		})
	}
}

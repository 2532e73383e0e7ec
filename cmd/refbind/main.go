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

// Command refbind lowers reference bindings in IR files.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fillmore-labs.com/refbind/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, cli.ErrDiagnostics) {
			fmt.Fprintln(os.Stderr, "refbind:", err)
		}

		os.Exit(1)
	}
}

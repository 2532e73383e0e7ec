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

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fillmore-labs.com/refbind/internal/diag"
	"fillmore-labs.com/refbind/ir"
)

// RunOptions holds the flags of the run command.
type RunOptions struct {
	Output         string
	EnableFeatures []string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <file.sil>...",
		Short: "Lower reference bindings and print the resulting IR",
		Long: `Lower the reference bindings of IR files.

The transformed IR is printed to standard output, or written to a file of
the same name in the output directory. Diagnostics are printed to standard
error; the command fails when any were reported.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Errors are printed by main
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, rootOpts, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write transformed files to this directory")
	cmd.Flags().StringSliceVar(&opts.EnableFeatures, "enable-feature", nil, "enable a language feature for all files")

	return cmd
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:           "check <file.sil>...",
		Short:         "Check reference bindings without printing IR",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProcessor(cmd, rootOpts, opts.EnableFeatures)
			if err != nil {
				return err
			}

			results, err := p.process(cmd.Context(), args)
			if err != nil {
				return err
			}

			return printDiagnostics(diag.NewPrinter(cmd.ErrOrStderr(), p.fset, rootOpts.format), results)
		},
	}

	cmd.Flags().StringSliceVar(&opts.EnableFeatures, "enable-feature", nil, "enable a language feature for all files")

	return cmd
}

func runRun(cmd *cobra.Command, rootOpts *RootOptions, opts *RunOptions, files []string) error {
	p, err := newProcessor(cmd, rootOpts, opts.EnableFeatures)
	if err != nil {
		return err
	}

	results, err := p.process(cmd.Context(), files)
	if err != nil {
		return err
	}

	if err := writeModules(cmd.OutOrStdout(), opts.Output, results); err != nil {
		return err
	}

	return printDiagnostics(diag.NewPrinter(cmd.ErrOrStderr(), p.fset, rootOpts.format), results)
}

// writeModules prints the transformed modules to w, or into dir when set.
func writeModules(w io.Writer, dir string, results []fileResult) error {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		var errs []error

		for _, r := range results {
			errs = append(errs, writeModule(filepath.Join(dir, filepath.Base(r.name)), r.module))
		}

		return errors.Join(errs...)
	}

	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w) // ignore error
			}

			fmt.Fprintf(w, "// %s\n", r.name) // ignore error
		}

		if err := ir.Fprint(w, r.module); err != nil {
			return err
		}
	}

	return nil
}

func writeModule(path string, m *ir.Module) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return ir.Fprint(f, m)
}

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
	"context"
	"errors"
	"go/token"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/refbind/internal/diag"
	"fillmore-labs.com/refbind/ir"
	"fillmore-labs.com/refbind/pass"
)

// ErrDiagnostics is returned when diagnostics were reported for any input file.
var ErrDiagnostics = errors.New("diagnostics reported")

// fileResult is the outcome of processing a single file.
type fileResult struct {
	name        string
	module      *ir.Module
	changed     bool
	diagnostics []analysis.Diagnostic
}

// processor runs the pass over a set of files.
type processor struct {
	fset     *token.FileSet
	pass     *pass.Pass
	features ir.FeatureSet
	logger   *slog.Logger
}

// newProcessor combines settings, explicitly set flags and extra options into a pass.
func newProcessor(cmd *cobra.Command, opts *RootOptions, enable []string) (*processor, error) {
	logger := opts.logger(cmd)

	s := opts.settings
	s.EnableFeatures = append(s.EnableFeatures[:len(s.EnableFeatures):len(s.EnableFeatures)], enable...)

	features, err := s.Features()
	if err != nil {
		return nil, err
	}

	passOpts := pass.Options(s.Options())
	p := opts.Pass.With(passOpts, pass.WithLogger(logger))

	// Flags on the command line override the settings file.
	var flagErr error

	cmd.Flags().Visit(func(f *pflag.Flag) {
		if pf := p.Flags.Lookup(f.Name); pf != nil && flagErr == nil {
			flagErr = pf.Value.Set(f.Value.String())
		}
	})

	if flagErr != nil {
		return nil, flagErr
	}

	logger.LogAttrs(cmd.Context(), slog.LevelDebug, "configured", passOpts.LogAttr(), slog.Any("features", s.EnableFeatures))

	return &processor{fset: token.NewFileSet(), pass: p, features: features, logger: logger}, nil
}

// process parses and transforms files concurrently. Results are in the order of files.
func (p *processor) process(ctx context.Context, files []string) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, name := range files {
		g.Go(func() error {
			r, err := p.processFile(ctx, name)
			if err != nil {
				return err
			}

			results[i] = r

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (p *processor) processFile(ctx context.Context, name string) (fileResult, error) {
	src, err := os.ReadFile(name)
	if err != nil {
		return fileResult{}, err
	}

	m, err := ir.Parse(p.fset, name, src)
	if err != nil {
		return fileResult{}, err
	}

	m.EnableFeatures(p.features)

	r := fileResult{name: name, module: m}
	report := func(d analysis.Diagnostic) { r.diagnostics = append(r.diagnostics, d) }

	r.changed = p.pass.With(pass.WithReporter(report)).RunModule(ctx, m)

	p.logger.LogAttrs(ctx, slog.LevelDebug, "file processed",
		slog.String("file", name), slog.Bool("changed", r.changed), slog.Int("diagnostics", len(r.diagnostics)))

	return r, nil
}

// printDiagnostics writes the diagnostics of all results in file order.
func printDiagnostics(printer *diag.Printer, results []fileResult) error {
	var reported bool

	for _, r := range results {
		for _, d := range r.diagnostics {
			if err := printer.Print(d); err != nil {
				return err
			}

			reported = true
		}
	}

	if reported {
		return ErrDiagnostics
	}

	return nil
}

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
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"fillmore-labs.com/refbind/internal/diag"
	"fillmore-labs.com/refbind/pass"
	"fillmore-labs.com/refbind/settings"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string

	// Pass holds the values of the pass flags.
	Pass *pass.Pass

	settings settings.Settings
	format   diag.Format
}

// ValidFormats defines the allowed diagnostic formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the refbind CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Pass: pass.New()}

	cmd := &cobra.Command{
		Use:   "refbind",
		Short: "Lower reference bindings in IR files",
		Long: `refbind checks reference bindings in IR files and lowers them
to exclusive write-back accesses.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.prepare()
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "diagnostic format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "settings file (.yaml, .toml or .json)")
	cmd.PersistentFlags().AddGoFlagSet(&opts.Pass.Flags)

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// prepare validates the global flags and loads the settings file.
func (o *RootOptions) prepare() error {
	if !slices.Contains(ValidFormats, o.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}

	format, err := diag.ParseFormat(o.Format)
	if err != nil {
		return err
	}

	o.format = format

	if o.Config == "" {
		return nil
	}

	s, err := settings.Load(o.Config)
	if err != nil {
		return err
	}

	o.settings = o.settings.Merge(s)

	return nil
}

// logger creates the logger for a command.
func (o *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

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

package pass

import (
	"log/slog"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/refbind/internal/config"
)

// Option configures specific behavior of a [New] refbind pass.
type Option interface {
	apply(r *runOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithSilentDiagnostics is an [Option] to compute diagnostics without reporting them.
// The transformed IR is the same either way.
func WithSilentDiagnostics(silent bool) Option { return silentOption{silent: silent} }

type silentOption struct{ silent bool }

func (o silentOption) apply(r *runOptions) {
	r.behavior.Set(config.SilentDiagnostics, o.silent)
}

func (o silentOption) LogAttr() slog.Attr {
	return slog.Bool("silent-diagnostics", o.silent)
}

// WithVerify is an [Option] to verify changed functions.
func WithVerify(verify bool) Option { return verifyOption{verify: verify} }

type verifyOption struct{ verify bool }

func (o verifyOption) apply(r *runOptions) {
	r.behavior.Set(config.Verify, o.verify)
}

func (o verifyOption) LogAttr() slog.Attr {
	return slog.Bool("verify", o.verify)
}

// WithReporter is an [Option] to set the function receiving diagnostics.
func WithReporter(report func(analysis.Diagnostic)) Option { return reporterOption{report: report} }

type reporterOption struct{ report func(analysis.Diagnostic) }

func (o reporterOption) apply(r *runOptions) {
	r.report = o.report
}

func (o reporterOption) LogAttr() slog.Attr {
	return slog.Bool("reporter", o.report != nil)
}

// WithLogger is an [Option] to set the logger for debug output. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(r *runOptions) {
	r.logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}

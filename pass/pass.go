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

import "flag"

// Public API constants for the refbind pass.
const (
	name = "refbind"
	doc  = `refbind lowers reference bindings to exclusive write-back accesses`
)

// Pass is a configured reference binding transform.
type Pass struct {
	// Flags binds the pass configuration to command line flags.
	Flags flag.FlagSet

	r *runOptions
}

// New creates a new instance of the refbind pass, configured with opts.
func New(opts ...Option) *Pass {
	r := defaultRunOptions()
	Options(opts).apply(r)

	return newPass(r)
}

// With returns a copy of p with opts applied on top of its current configuration,
// including values set through [Pass.Flags].
func (p *Pass) With(opts ...Option) *Pass {
	r := *p.r
	Options(opts).apply(&r)

	return newPass(&r)
}

func newPass(r *runOptions) *Pass {
	p := &Pass{r: r}

	p.Flags.Init(name, flag.ContinueOnError)
	p.Flags.Usage = func() {
		out := p.Flags.Output()
		_, _ = out.Write([]byte(doc + "\n\nFlags:\n"))
		p.Flags.PrintDefaults()
	}

	registerFlags(&p.Flags, r)

	return p
}

// Name returns the name of the pass.
func (*Pass) Name() string { return name }

// Doc returns a one line description of the pass.
func (*Pass) Doc() string { return doc }

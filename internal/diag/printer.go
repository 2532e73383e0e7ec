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

import (
	"bufio"
	"encoding/json"
	"fmt"
	"go/token"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/tools/go/analysis"
)

// Format selects the output format of a [Printer].
type Format uint8

const (
	// Text prints compiler style "file:line:col: error: message (category)" lines.
	Text Format = iota

	// JSON prints one JSON object per diagnostic.
	JSON
)

// ParseFormat converts a format name to a [Format].
func ParseFormat(name string) (Format, error) {
	switch name {
	case "text", "":
		return Text, nil

	case "json":
		return JSON, nil

	default:
		return Text, fmt.Errorf("unknown format %q", name)
	}
}

const (
	ansiError = "\x1b[1;31m"
	ansiNote  = "\x1b[1;36m"
	ansiReset = "\x1b[0m"
)

// Printer writes diagnostics to an output stream.
type Printer struct {
	w      io.Writer
	fset   *token.FileSet
	format Format
	color  bool
}

// NewPrinter creates a [Printer] writing to w. Text output is colored when w is a terminal.
func NewPrinter(w io.Writer, fset *token.FileSet, format Format) *Printer {
	p := &Printer{w: w, fset: fset, format: format}

	if f, ok := w.(*os.File); ok && format == Text {
		fd := f.Fd()
		p.color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	return p
}

type jsonRelated struct {
	Posn    string `json:"posn"`
	Message string `json:"message"`
}

type jsonDiagnostic struct {
	Category string        `json:"category,omitempty"`
	Posn     string        `json:"posn"`
	Message  string        `json:"message"`
	Related  []jsonRelated `json:"related,omitempty"`
}

// Print writes a single diagnostic.
func (p *Printer) Print(d analysis.Diagnostic) error {
	if p.format == JSON {
		out := jsonDiagnostic{Category: d.Category, Posn: p.position(d.Pos), Message: d.Message}
		for _, r := range d.Related {
			out.Related = append(out.Related, jsonRelated{Posn: p.position(r.Pos), Message: r.Message})
		}

		return json.NewEncoder(p.w).Encode(out)
	}

	w := bufio.NewWriter(p.w)

	msg := d.Message
	if d.Category != "" {
		msg += " (" + d.Category + ")"
	}

	p.line(w, d.Pos, "error", ansiError, msg)

	for _, r := range d.Related {
		p.line(w, r.Pos, "note", ansiNote, r.Message)
	}

	return w.Flush()
}

func (p *Printer) line(w *bufio.Writer, pos token.Pos, severity, color, msg string) {
	w.WriteString(p.position(pos)) // ignore error
	w.WriteString(": ")            // ignore error

	if p.color {
		w.WriteString(color) // ignore error
	}

	w.WriteString(severity) // ignore error
	w.WriteByte(':')        // ignore error

	if p.color {
		w.WriteString(ansiReset) // ignore error
	}

	w.WriteByte(' ')   // ignore error
	w.WriteString(msg) // ignore error
	w.WriteByte('\n')  // ignore error
}

func (p *Printer) position(pos token.Pos) string {
	if !pos.IsValid() || p.fset == nil {
		return "-"
	}

	return p.fset.Position(pos).String()
}

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

import "fmt"

// tokenKind classifies a lexical token of the textual IR.
type tokenKind uint8

const (
	tokValue  tokenKind = iota // %name
	tokSymbol                  // @name
	tokAttr                    // [name]
	tokIdent                   // opcode, keyword, feature or block name
	tokInt                     // decimal integer, optionally negative
	tokPunct                   // ( ) , : = { }
)

// lexeme is a single token with its byte offset in the source.
type lexeme struct {
	kind tokenKind
	text string
	off  int
}

func isNameChar(ch byte) bool {
	return ch == '_' || ch == '.' || '0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// lexLine splits a single source line starting at offset base into tokens.
// Comments start with "//" and extend to the end of the line.
func lexLine(line []byte, base int) ([]lexeme, *lexError) {
	var toks []lexeme

	for i := 0; i < len(line); {
		ch := line[i]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			i++

		case ch == '/' && i+1 < len(line) && line[i+1] == '/':
			return toks, nil

		case ch == '%' || ch == '@':
			j := i + 1
			for j < len(line) && isNameChar(line[j]) {
				j++
			}

			if j == i+1 {
				return nil, &lexError{base + i, fmt.Sprintf("missing name after %q", ch)}
			}

			kind := tokValue
			if ch == '@' {
				kind = tokSymbol
			}

			toks = append(toks, lexeme{kind, string(line[i+1 : j]), base + i})
			i = j

		case ch == '[':
			j := i + 1
			for j < len(line) && line[j] != ']' {
				j++
			}

			if j == len(line) {
				return nil, &lexError{base + i, "unterminated attribute"}
			}

			toks = append(toks, lexeme{tokAttr, string(line[i+1 : j]), base + i})
			i = j + 1

		case isDigit(ch) || ch == '-' && i+1 < len(line) && isDigit(line[i+1]):
			j := i + 1
			for j < len(line) && isDigit(line[j]) {
				j++
			}

			toks = append(toks, lexeme{tokInt, string(line[i:j]), base + i})
			i = j

		case isNameChar(ch):
			j := i + 1
			for j < len(line) && (isNameChar(line[j]) || line[j] == '-') {
				j++
			}

			toks = append(toks, lexeme{tokIdent, string(line[i:j]), base + i})
			i = j

		case ch == '(' || ch == ')' || ch == ',' || ch == ':' || ch == '=' || ch == '{' || ch == '}':
			toks = append(toks, lexeme{tokPunct, string(ch), base + i})
			i++

		default:
			return nil, &lexError{base + i, fmt.Sprintf("unexpected character %q", ch)}
		}
	}

	return toks, nil
}

type lexError struct {
	off int
	msg string
}

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

package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a settings file.
type Format uint8

const (
	YAML Format = iota
	TOML
	JSON
)

// ErrUnknownFormat is returned for settings files with an unrecognized extension.
var ErrUnknownFormat = errors.New("unknown settings format")

// FormatOf determines the settings format from the extension of path.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return YAML, nil

	case ".toml":
		return TOML, nil

	case ".json":
		return JSON, nil

	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Load reads the settings file at path.
func Load(path string) (Settings, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Settings{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	s, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Decode reads settings in the given format from r. Unknown keys are an error.
func Decode(r io.Reader, format Format) (Settings, error) {
	var s Settings

	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)

		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return Settings{}, err
		}

	case TOML:
		md, err := toml.NewDecoder(r).Decode(&s)
		if err != nil {
			return Settings{}, err
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Settings{}, fmt.Errorf("unknown settings key %q", undecoded[0].String())
		}

	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()

		if err := dec.Decode(&s); err != nil {
			return Settings{}, err
		}

	default:
		return Settings{}, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}

	return s, nil
}

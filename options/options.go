// Copyright 2025 EngFlow Inc. All rights reserved.
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

// Package options holds the read-only settings that steer tag emission and
// conditional-branch selection in the scrubber. Options are plain data; the
// scrubber never mutates them.
package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Locate selects how emitted tags are located in their source file.
type Locate string

const (
	// LocatePattern locates tags by a search pattern.
	LocatePattern Locate = "pattern"
	// LocateLineNumber locates tags by line number.
	LocateLineNumber Locate = "line"
)

type Include struct {
	// FileScope permits tags that are only visible within a single file.
	FileScope bool `yaml:"file_scope"`
	// DefineTags permits tags for #define directives.
	DefineTags bool `yaml:"define_tags"`
}

type Options struct {
	// If0 scans the branches of "#if 0" conditionals for tags instead of
	// skipping them.
	If0     bool    `yaml:"if0"`
	Locate  Locate  `yaml:"locate"`
	Include Include `yaml:"include"`
}

// Default returns the options an unconfigured scan runs with: define tags
// and file-scope tags enabled, pattern locators, "#if 0" branches skipped.
func Default() *Options {
	return &Options{
		If0:    false,
		Locate: LocatePattern,
		Include: Include{
			FileScope:  true,
			DefineTags: true,
		},
	}
}

// Load reads options from a YAML file. Fields absent from the file keep
// their defaults.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts := Default()
	if err := yaml.UnmarshalStrict(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse options file %s: %v", path, err)
	}
	switch opts.Locate {
	case LocatePattern, LocateLineNumber:
	default:
		return nil, fmt.Errorf("options file %s: unknown locate mode %q", path, opts.Locate)
	}
	return opts, nil
}

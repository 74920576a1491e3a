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

// Package tags defines the records the scrubber emits for discovered macro
// definitions and the sink interface that receives them.
package tags

import (
	"path/filepath"
	"strings"

	"github.com/EngFlow/scrub_cc/internal/collections"
)

// Entry describes one discovered tag.
type Entry struct {
	Name     string
	File     string
	Line     int
	Kind     byte   // single-letter kind, 'd' for macros
	KindName string // human readable kind, "macro" for macros

	// FileScope is set when the tag is only visible within its file, i.e.
	// when the file is not a header.
	FileScope bool
	// LineNumberEntry selects a line-number locator instead of a search
	// pattern for this entry.
	LineNumberEntry bool
	// TruncateLine requests that locator patterns stop at the tag name.
	TruncateLine bool
	// Signature holds the parenthesized argument list of parameterized
	// macros, empty otherwise.
	Signature string
}

// Sink receives tag entries as they are discovered, in source order.
type Sink interface {
	MakeTag(Entry)
}

// Collector is a Sink that accumulates entries in memory.
type Collector struct {
	Entries []Entry
}

func (c *Collector) MakeTag(e Entry) {
	c.Entries = append(c.Entries, e)
}

// Discard is a Sink that drops every entry, for callers that only want the
// scrubbed character stream.
type Discard struct{}

func (Discard) MakeTag(Entry) {}

var headerExtensions = collections.SetOf(
	"h", "H", "hh", "hpp", "hxx", "h++", "inc", "def",
)

// IsHeader reports whether the named file is a header, judged by its
// extension. Tags found in non-header files are file scoped.
func IsHeader(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return headerExtensions.Contains(ext)
}

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

package cpp

import (
	"strings"

	"github.com/EngFlow/scrub_cc/internal/source"
	"github.com/EngFlow/scrub_cc/options"
	"github.com/EngFlow/scrub_cc/tags"
)

// handleDirective advances the directive state machine with the next
// non-whitespace character of a directive line and reports whether the
// stream is currently inside an ignored conditional branch.
func (s *Scrubber) handleDirective(c int) bool {
	ignore := s.isIgnore()

	switch s.directive.state {
	case stateNone:
		ignore = s.isIgnore()
	case stateDefine:
		s.directiveDefine(c)
	case stateHash:
		ignore = s.directiveHash(c)
	case stateIf:
		ignore = s.directiveIf(c)
	case statePragma:
		s.directivePragma(c)
	case stateUndef:
		s.directiveDefine(c)
	}
	return ignore
}

// readDirectiveName reads the directive keyword whose first character is
// c. Names are truncated at the fixed buffer limit and classified by the
// characters that were read; unknown names later fall through to stateNone.
func (s *Scrubber) readDirectiveName(c int) string {
	var name [maxDirectiveName - 1]byte
	n := 0
	for i := 0; i < len(name); i++ {
		if i > 0 {
			c = s.file.Getc()
			if c == source.EOF || !isAlpha(c) {
				s.file.Ungetc(c)
				break
			}
		}
		name[n] = byte(c)
		n++
	}
	return string(name[:n])
}

// readIdentifier reads an identifier whose first character is c into the
// scratch name buffer. The terminating character goes back to the input.
func (s *Scrubber) readIdentifier(c int) string {
	s.directive.name = s.directive.name[:0]
	for {
		s.directive.name = append(s.directive.name, byte(c))
		c = s.file.Getc()
		if c == source.EOF || !isIdent(c) {
			break
		}
	}
	s.file.Ungetc(c)
	return string(s.directive.name)
}

func (s *Scrubber) directiveHash(c int) bool {
	ignore := false
	name := s.readDirectiveName(c)

	switch {
	case name == "define":
		s.directive.state = stateDefine
	case name == "undef":
		s.directive.state = stateUndef
	case strings.HasPrefix(name, "if"):
		s.directive.state = stateIf
	case name == "elif" || name == "else":
		ignore = s.setIgnore(s.isIgnoreBranch())
		if !ignore && name == "else" {
			s.chooseBranch()
		}
		s.directive.state = stateNone
	case name == "endif":
		ignore = s.popConditional()
		s.directive.state = stateNone
	case name == "pragma":
		s.directive.state = statePragma
	default:
		s.directive.state = stateNone
	}
	return ignore
}

// directiveDefine handles the identifier following #define or #undef and
// emits a macro tag unless the branch is ignored.
func (s *Scrubber) directiveDefine(c int) {
	if isIdent1(c) {
		name := s.readIdentifier(c)
		nc := s.file.Getc()
		s.file.Ungetc(nc)
		parameterized := nc == '('
		if !s.isIgnore() {
			s.makeDefineTag(name, parameterized)
		}
	}
	s.directive.state = stateNone
}

func (s *Scrubber) directiveIf(c int) bool {
	ignore := s.pushConditional(c != '0')
	s.directive.state = stateNone
	return ignore
}

func (s *Scrubber) directivePragma(c int) {
	if isIdent1(c) {
		if s.readIdentifier(c) == "weak" {
			// generate a macro tag for the weak alias
			for {
				c = s.file.Getc()
				if c != ' ' {
					break
				}
			}
			if isIdent1(c) {
				s.makeDefineTag(s.readIdentifier(c), false)
			}
		}
	}
	s.directive.state = stateNone
}

// makeDefineTag reports a macro definition to the tag sink, honoring the
// option gates for define and file-scope tags. For parameterized macros
// the signature is recovered from the raw bytes of the current line.
func (s *Scrubber) makeDefineTag(name string, parameterized bool) {
	isFileScope := !tags.IsHeader(s.file.Name())

	if !s.opts.Include.DefineTags || (isFileScope && !s.opts.Include.FileScope) {
		return
	}

	e := tags.Entry{
		Name:            name,
		File:            s.file.Name(),
		Line:            s.file.Line(),
		Kind:            'd',
		KindName:        "macro",
		FileScope:       isFileScope,
		LineNumberEntry: s.opts.Locate != options.LocatePattern,
		TruncateLine:    true,
	}
	if parameterized {
		if arglist, ok := s.ArglistFromFilePos(s.file.Position(), name); ok {
			e.Signature = arglist
		}
	}
	s.sink.MakeTag(e)
}

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

// Package cpp implements a sanitizing character stream over C, C++, D,
// Vera and Objective-C-like source files. The Scrubber consumes raw bytes
// and yields a cleaned stream in which comments, string and character
// literals, preprocessor directives, line continuations, trigraphs and
// digraphs have been elided or normalized, so that a downstream
// tag-extraction tokenizer never has to understand them.
//
// While scrubbing, the Scrubber tracks the nesting of preprocessor
// conditionals and decides which branches to skip, and emits tag records
// for #define macros and #pragma weak aliases.
package cpp

import (
	"github.com/EngFlow/scrub_cc/internal/source"
	"github.com/EngFlow/scrub_cc/options"
	"github.com/EngFlow/scrub_cc/tags"
)

// EOF is returned by Getc once the input is exhausted.
const EOF = source.EOF

// Sentinel bytes emitted in place of entire literals. Both sit outside the
// 7-bit alphabet of the source text, so the downstream tokenizer can treat
// each as a single opaque word.
const (
	// StringSymbol replaces a complete string literal.
	StringSymbol = 'S' + 0x80
	// CharSymbol replaces a complete character literal or Vera base constant.
	CharSymbol = 'C' + 0x80
)

const (
	maxNestingLevel  = 20
	maxDirectiveName = 10
)

type directiveState int

const (
	stateNone   directiveState = iota // no known directive - ignore to end of line
	stateDefine                       // "#define" encountered
	stateHash                         // initial '#' read; determine directive
	stateIf                           // "#if" or "#ifdef" encountered
	statePragma                       // "#pragma" encountered
	stateUndef                        // "#undef" encountered
)

// conditionalInfo describes one nesting level of a preprocessor
// conditional.
type conditionalInfo struct {
	ignoreAllBranches bool // ignoring parent conditional branch
	singleBranch      bool // choose only one branch
	branchChosen      bool // branch already selected
	ignoring          bool // current ignore state
}

// Config selects the lexical features of the language being scanned.
type Config struct {
	// BraceFormat declares that block structure is determined by brace
	// matching. When set, the incomplete-statement branch heuristic is
	// disabled.
	BraceFormat bool
	// AtLiteralStrings enables Objective-C @"..." strings.
	AtLiteralStrings bool
	// RawLiteralStrings enables C++ R"delim(...)delim" strings.
	RawLiteralStrings bool
}

// Scrubber holds the state of one scanning session. It is not safe to
// share across concurrent scans; create one per goroutine.
type Scrubber struct {
	file *source.Reader
	opts *options.Options
	sink tags.Sink

	braceFormat             bool
	ungetch, ungetch2       int // two-slot pushback, drained before the file
	resolveRequired         bool
	hasAtLiteralStrings     bool
	hasCxxRawLiteralStrings bool

	directive struct {
		state     directiveState
		accept    bool   // is a directive syntactically permitted here?
		name      []byte // scratch buffer for macro names
		nestLevel int    // level 0 is not used
		ifdef     [maxNestingLevel]conditionalInfo
	}
}

// New creates a Scrubber reporting tags to sink under the given options.
// A nil opts uses options.Default; a nil sink discards tags.
func New(opts *options.Options, sink tags.Sink) *Scrubber {
	if opts == nil {
		opts = options.Default()
	}
	if sink == nil {
		sink = tags.Discard{}
	}
	return &Scrubber{opts: opts, sink: sink}
}

// Init resets the Scrubber for a new file.
func (s *Scrubber) Init(file *source.Reader, cfg Config) {
	s.file = file
	s.braceFormat = cfg.BraceFormat

	s.ungetch = 0
	s.ungetch2 = 0
	s.resolveRequired = false
	s.hasAtLiteralStrings = cfg.AtLiteralStrings
	s.hasCxxRawLiteralStrings = cfg.RawLiteralStrings

	s.directive.state = stateNone
	s.directive.accept = true
	s.directive.nestLevel = 0
	s.directive.ifdef[0] = conditionalInfo{}

	if s.directive.name == nil {
		s.directive.name = make([]byte, 0, 32)
	} else {
		s.directive.name = s.directive.name[:0]
	}
}

// Terminate releases the scratch state held between files.
func (s *Scrubber) Terminate() {
	s.directive.name = nil
}

// BeginStatement tells the Scrubber that the surrounding parser has an
// incomplete statement in progress; conditional branch selection is
// constrained until EndStatement.
func (s *Scrubber) BeginStatement() { s.resolveRequired = true }

// EndStatement clears the incomplete-statement signal.
func (s *Scrubber) EndStatement() { s.resolveRequired = false }

// IsBraceFormat reports whether brace matching determines block structure
// for the current scan.
func (s *Scrubber) IsBraceFormat() bool { return s.braceFormat }

// DirectiveNestLevel reports the current depth of conditional nesting, 0
// meaning outside any #if.
func (s *Scrubber) DirectiveNestLevel() int { return s.directive.nestLevel }

// Ungetc puts a character back into the scrubbed stream. At most two
// pushbacks may be outstanding; a third is a programming error and panics.
func (s *Scrubber) Ungetc(c int) {
	if s.ungetch2 != 0 {
		panic("cpp: more than two outstanding ungotten characters")
	}
	s.ungetch2 = s.ungetch
	s.ungetch = c
}

// Getc returns the next character of the scrubbed stream, or EOF. Between
// successive calls no comment text, literal contents (beyond a single
// sentinel), line continuation, or surviving directive text is visible,
// and characters inside ignored conditional branches are suppressed.
func (s *Scrubber) Getc() int {
	if s.ungetch != 0 {
		c := s.ungetch
		s.ungetch = s.ungetch2
		s.ungetch2 = 0
		return c
	}

	directive := false
	ignore := false
	var c int

scan:
	for {
		c = s.file.Getc()

		// Trigraph and digraph translation may substitute a character that
		// itself needs dispatching (notably '#' and '\'), so dispatch runs
		// in a loop with a mutable current character.
		redispatch := true
		for redispatch {
			redispatch = false
			enter := false

			switch c {
			case source.EOF:
				ignore = false
				directive = false

			case '\t', ' ':
				// swallowed inside directives and ignored branches,
				// returned verbatim otherwise

			case '\n':
				if directive && !ignore {
					directive = false
				}
				s.directive.accept = true

			case '"':
				s.directive.accept = false
				c = s.skipToEndOfString(false)

			case '#':
				if s.directive.accept {
					directive = true
					s.directive.state = stateHash
					s.directive.accept = false
				}

			case '\'':
				s.directive.accept = false
				c = s.skipToEndOfChar()

			case '/':
				switch s.commentKind() {
				case commentC:
					c = s.skipOverCComment()
				case commentCPlus:
					c = s.skipOverCPlusComment()
					if c == '\n' {
						// statement delimiting depends on newlines, so the
						// terminating newline goes back to the input
						s.file.Ungetc(c)
					}
				case commentD:
					c = s.skipOverDComment()
				default:
					s.directive.accept = false
				}

			case '\\':
				next := s.file.Getc()
				if next == '\n' {
					continue scan // line continuation, both characters vanish
				}
				s.file.Ungetc(next)

			case '?':
				next := s.file.Getc()
				if next != '?' {
					s.file.Ungetc(next)
					break
				}
				next = s.file.Getc()
				switch next {
				case '(':
					c = '['
				case ')':
					c = ']'
				case '<':
					c = '{'
				case '>':
					c = '}'
				case '/':
					c = '\\'
					redispatch = true
				case '!':
					c = '|'
				case '\'':
					c = '^'
				case '-':
					c = '~'
				case '=':
					c = '#'
					redispatch = true
				default:
					s.file.Ungetc('?')
					s.file.Ungetc(next)
				}

			// digraphs:
			// input:  <:  :>  <%  %>  %:  %:%:
			// output: [   ]   {   }   #   ##
			case '<':
				next := s.file.Getc()
				switch next {
				case ':':
					c = '['
				case '%':
					c = '{'
				default:
					s.file.Ungetc(next)
				}
				enter = true
			case ':':
				next := s.file.Getc()
				if next == '>' {
					c = ']'
				} else {
					s.file.Ungetc(next)
				}
				enter = true
			case '%':
				next := s.file.Getc()
				switch next {
				case '>':
					c = '}'
					enter = true
				case ':':
					c = '#'
					redispatch = true
				default:
					s.file.Ungetc(next)
					enter = true
				}

			default:
				if c == '@' && s.hasAtLiteralStrings {
					next := s.file.Getc()
					if next == '"' {
						s.directive.accept = false
						c = s.skipToEndOfString(true)
						break
					}
					s.file.Ungetc(next)
				} else if c == 'R' && s.hasCxxRawLiteralStrings {
					// 'R' introduces a raw literal only when it is not part
					// of a larger identifier, so constructs like
					//
					//	#define FOUR "4"
					//	const char *p = FOUR"5";
					//
					// stay preprocessor concatenations. An encoding prefix
					// (L, u, U, u8) in front of the R is allowed.
					prev := s.file.NthPrevC(1, 0)
					prev2 := s.file.NthPrevC(2, 0)
					prev3 := s.file.NthPrevC(3, 0)

					if !isIdent(prev) ||
						(!isIdent(prev2) && (prev == 'L' || prev == 'u' || prev == 'U')) ||
						(!isIdent(prev3) && prev2 == 'u' && prev == '8') {
						next := s.file.Getc()
						if next == '"' {
							s.directive.accept = false
							c = s.skipToEndOfCxxRawLiteralString()
							break
						}
						s.file.Ungetc(next)
					}
				}
				enter = true
			}

			if enter {
				s.directive.accept = false
				if directive {
					ignore = s.handleDirective(c)
				}
			}
		}

		if !directive && !ignore {
			break
		}
	}

	return c
}

func isAlpha(c int) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c int) bool { return c >= '0' && c <= '9' }

func isAlnum(c int) bool { return isAlpha(c) || isDigit(c) }

// isIdent1 reports whether c may start an identifier.
func isIdent1(c int) bool { return isAlpha(c) || c == '_' }

// isIdent reports whether c may continue an identifier.
func isIdent(c int) bool { return isAlnum(c) || c == '_' }

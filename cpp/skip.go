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

import "github.com/EngFlow/scrub_cc/internal/source"

type commentKind int

const (
	commentNone commentKind = iota
	commentC
	commentCPlus
	commentD
)

// commentKind peeks past an already-consumed '/' to classify a potential
// comment opener. A non-opener is pushed back.
func (s *Scrubber) commentKind() commentKind {
	next := s.file.Getc()
	switch next {
	case '*':
		return commentC
	case '/':
		return commentCPlus
	case '+':
		return commentD
	default:
		s.file.Ungetc(next)
		return commentNone
	}
}

// skipOverCComment reads to the end of a C style comment. A comment is
// treated as white space, so a space takes its place in the stream.
func (s *Scrubber) skipOverCComment() int {
	c := s.file.Getc()
	for c != source.EOF {
		if c != '*' {
			c = s.file.Getc()
		} else {
			next := s.file.Getc()
			if next != '/' {
				c = next
			} else {
				c = ' '
				break
			}
		}
	}
	return c
}

// skipOverCPlusComment reads to the end of a C++ style comment. An escaped
// newline inside the comment continues it on the next line.
func (s *Scrubber) skipOverCPlusComment() int {
	var c int
	for {
		c = s.file.Getc()
		if c == source.EOF {
			break
		}
		if c == '\\' {
			s.file.Getc() // throw away the escaped character, too
		} else if c == '\n' {
			break
		}
	}
	return c
}

// skipOverDComment reads to the end of a D style /+ +/ comment.
// Really this should match nested /+ comments. At least they're less
// common.
func (s *Scrubber) skipOverDComment() int {
	c := s.file.Getc()
	for c != source.EOF {
		if c != '+' {
			c = s.file.Getc()
		} else {
			next := s.file.Getc()
			if next != '/' {
				c = next
			} else {
				c = ' '
				break
			}
		}
	}
	return c
}

// skipToEndOfString reads to the closing quote of a string literal and
// returns the sentinel standing in for it. ignoreBackslash disables escape
// handling, for @"..." literals in which backslashes are plain characters.
func (s *Scrubber) skipToEndOfString(ignoreBackslash bool) int {
	for {
		c := s.file.Getc()
		if c == source.EOF {
			break
		}
		if c == '\\' && !ignoreBackslash {
			s.file.Getc() // throw away the escaped character, too
		} else if c == '"' {
			break
		}
	}
	return StringSymbol
}

// skipToEndOfChar reads to the end of a character literal and returns the
// sentinel standing in for it. Also detects Vera numbers that include a
// base specifier (ie. 'b1010), which terminate at the first
// non-alphanumeric character.
func (s *Scrubber) skipToEndOfChar() int {
	count := 0
	veraBase := 0

	for {
		c := s.file.Getc()
		if c == source.EOF {
			break
		}
		count++
		if c == '\\' {
			s.file.Getc() // throw away the escaped character, too
		} else if c == '\'' {
			break
		} else if c == '\n' {
			s.file.Ungetc(c)
			break
		} else if count == 1 && isVeraBase(c) {
			veraBase = c
		} else if veraBase != 0 && !isAlnum(c) {
			s.file.Ungetc(c)
			break
		}
	}
	return CharSymbol
}

func isVeraBase(c int) bool {
	switch c {
	case 'd', 'h', 'o', 'b', 'D', 'H', 'O', 'B':
		return true
	default:
		return false
	}
}

// A raw literal delimiter may be any character except whitespace,
// parentheses and backslash.
func isCxxRawLiteralDelimiterChar(c int) bool {
	switch c {
	case ' ', '\f', '\n', '\r', '\t', '\v', '(', ')', '\\':
		return false
	default:
		return true
	}
}

// skipToEndOfCxxRawLiteralString reads a C++ raw string literal, the
// opening quote of which has been consumed. When the introducer turns out
// not to form a raw literal the input degrades to an ordinary string.
func (s *Scrubber) skipToEndOfCxxRawLiteralString() int {
	c := s.file.Getc()

	if c != '(' && !isCxxRawLiteralDelimiterChar(c) {
		s.file.Ungetc(c)
		return s.skipToEndOfString(false)
	}

	var delim [16]byte
	delimLen := 0
	collectDelim := true

	for {
		if collectDelim {
			if isCxxRawLiteralDelimiterChar(c) && delimLen < len(delim) {
				delim[delimLen] = byte(c)
				delimLen++
			} else {
				collectDelim = false
			}
		} else if c == ')' {
			i := 0
			for {
				c = s.file.Getc()
				if c == source.EOF || i >= delimLen || int(delim[i]) != c {
					break
				}
				i++
			}
			if i == delimLen && c == '"' {
				break
			}
			s.file.Ungetc(c)
		}
		c = s.file.Getc()
		if c == source.EOF {
			break
		}
	}
	return StringSymbol
}

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

import "bytes"

// parseState drives the secondary stripper used on buffered macro text.
type parseState int

const (
	stNone parseState = iota
	stEscape
	stCComment
	stCppComment
	stDoubleQuote
	stSingleQuote
)

// stripCodeBuffer rewrites buf in place, squashing comments and runs of
// whitespace into single spaces while keeping string and character literal
// contents verbatim. It returns the rewritten prefix of buf.
//
// The stripper does not recognize D comments, raw literals, trigraphs or
// digraphs; buffered macro text never needs them often enough to matter.
func stripCodeBuffer(buf []byte) []byte {
	pos := 0
	state, prevState := stNone, stNone

	emitSpace := func() {
		if pos > 0 && buf[pos-1] != ' ' {
			buf[pos] = ' '
			pos++
		}
	}

	emitLiteral := func(c byte) {
		if state == stDoubleQuote || state == stSingleQuote {
			buf[pos] = c
			pos++
		}
	}

	for i := 0; i < len(buf); i++ {
		ch := buf[i]

		// An escape covers exactly one following character, in whatever
		// state the backslash appeared.
		if state == stEscape {
			state = prevState
			prevState = stNone
			emitLiteral(ch)
			continue
		}
		if ch == '\\' {
			emitLiteral('\\')
			prevState = state
			state = stEscape
			continue
		}

		switch ch {
		case '/':
			if state == stNone {
				if i+1 < len(buf) && buf[i+1] == '*' {
					state = stCComment
				} else if i+1 < len(buf) && buf[i+1] == '/' {
					state = stCppComment
				} else {
					buf[pos] = '/'
					pos++
				}
			} else if state == stCComment {
				if i > 0 && buf[i-1] == '*' {
					emitSpace()
					state = stNone
				}
			} else {
				emitLiteral('/')
			}
		case '"':
			if state == stNone {
				state = stDoubleQuote
				buf[pos] = '"'
				pos++
			} else if state == stDoubleQuote {
				state = stNone
				buf[pos] = '"'
				pos++
			} else {
				emitLiteral('"')
			}
		case '\'':
			if state == stNone {
				state = stSingleQuote
				buf[pos] = '\''
				pos++
			} else if state == stSingleQuote {
				state = stNone
				buf[pos] = '\''
				pos++
			} else {
				emitLiteral('\'')
			}
		default:
			if ch == '\n' && state == stCppComment {
				emitSpace()
				state = stNone
			} else if state == stNone {
				if isSpace(ch) {
					emitSpace()
				} else {
					buf[pos] = ch
					pos++
				}
			} else {
				emitLiteral(ch)
			}
		}
	}
	return buf[:pos]
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// ArglistFromStr locates name in buf and returns the balanced
// parenthesized argument list that follows it. buf is rewritten in place
// by the secondary stripper. The name match is a plain substring search,
// so a macro whose name is a suffix of an earlier identifier may be
// misattributed; callers tolerate this.
func ArglistFromStr(buf []byte, name string) (string, bool) {
	if len(buf) == 0 || name == "" {
		return "", false
	}
	stripped := stripCodeBuffer(buf)

	start := bytes.Index(stripped, []byte(name))
	if start < 0 {
		return "", false
	}
	open := bytes.IndexByte(stripped[start:], '(')
	if open < 0 {
		return "", false
	}
	start += open

	level := 1
	end := start + 1
	for end < len(stripped) && level > 0 {
		switch stripped[end] {
		case '(':
			level++
		case ')':
			level--
		}
		end++
	}
	return string(stripped[start:end]), true
}

// ArglistFromFilePos reads the raw bytes between startPos and the current
// raw read position and extracts the argument list following name. The
// reader position is restored before returning.
func (s *Scrubber) ArglistFromFilePos(startPos int, name string) (string, bool) {
	original := s.file.Tell()

	s.file.SeekTo(startPos)
	var buf []byte
	if n := original - s.file.Tell(); n > 0 {
		buf = s.file.ReadBytes(n)
	}
	s.file.SeekTo(original)

	if len(buf) == 0 {
		return "", false
	}
	return ArglistFromStr(buf, name)
}

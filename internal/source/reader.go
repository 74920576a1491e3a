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

// Package source provides the byte-level input abstraction the scrubber
// reads from. A Reader serves one character at a time out of a line buffer
// while the raw offset stays at the end of the buffered line, which lets a
// caller read back the raw bytes of the line currently being scanned.
package source

import "os"

// EOF is returned by Getc once all input has been consumed.
const EOF = -1

// Number of most recently served characters kept for NthPrevC lookback.
const historySize = 8

type Reader struct {
	name string
	data []byte

	offset   int    // raw read offset, always at the end of the buffered line
	line     []byte // current line, including its trailing newline
	lineIdx  int
	linePos  int // raw offset of the start of the current line
	lineNo   int
	ungetBuf []int

	history   [historySize]int
	histCount int
}

// NewReader wraps an in-memory buffer. The name is reported back through
// Name and is used by callers for header-file detection.
func NewReader(name string, data []byte) *Reader {
	return &Reader{name: name, data: data}
}

// Open reads the named file into memory and returns a Reader over it.
func Open(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewReader(path, data), nil
}

func (r *Reader) Name() string { return r.name }

// Line returns the 1-based number of the line currently being served, or 0
// before the first character has been read.
func (r *Reader) Line() int { return r.lineNo }

// fill buffers the next raw line, advancing the raw offset past it.
func (r *Reader) fill() bool {
	if r.offset >= len(r.data) {
		return false
	}
	r.linePos = r.offset
	end := r.offset
	for end < len(r.data) && r.data[end] != '\n' {
		end++
	}
	if end < len(r.data) {
		end++ // keep the newline in the buffered line
	}
	r.line = r.data[r.offset:end]
	r.lineIdx = 0
	r.offset = end
	r.lineNo++
	return true
}

// Getc returns the next character of the input, or EOF. Carriage returns
// are canonicalized: CRLF is served as a single newline and a lone CR is
// served as a newline.
func (r *Reader) Getc() int {
	if n := len(r.ungetBuf); n > 0 {
		c := r.ungetBuf[n-1]
		r.ungetBuf = r.ungetBuf[:n-1]
		r.record(c)
		return c
	}
	if r.lineIdx >= len(r.line) && !r.fill() {
		return EOF
	}
	c := int(r.line[r.lineIdx])
	r.lineIdx++
	if c == '\r' {
		if r.lineIdx < len(r.line) && r.line[r.lineIdx] == '\n' {
			r.lineIdx++
		}
		c = '\n'
	}
	r.record(c)
	return c
}

// Ungetc pushes one character back. Pushed characters are served in LIFO
// order before any further input. The corresponding lookback history entry
// is dropped so that NthPrevC stays consistent with what the caller has
// actually consumed.
func (r *Reader) Ungetc(c int) {
	if c == EOF {
		return
	}
	r.ungetBuf = append(r.ungetBuf, c)
	if r.histCount > 0 {
		r.histCount--
	}
}

func (r *Reader) record(c int) {
	r.history[r.histCount%historySize] = c
	r.histCount++
}

// NthPrevC returns the n-th character before the most recently served one,
// or def when the history does not reach that far back. n must be >= 1.
func (r *Reader) NthPrevC(n int, def int) int {
	idx := r.histCount - 1 - n
	if idx < 0 || idx < r.histCount-historySize {
		return def
	}
	return r.history[idx%historySize]
}

// Tell reports the raw read offset. Because input is served out of a line
// buffer, this is the offset just past the line currently being scanned.
func (r *Reader) Tell() int { return r.offset }

// Position reports the raw offset of the start of the current line.
func (r *Reader) Position() int { return r.linePos }

// SeekTo moves the raw read offset without disturbing the buffered line or
// the pushback state. Paired with ReadBytes and a saved Tell, it lets the
// arglist extractor revisit a raw byte range and restore the reader.
func (r *Reader) SeekTo(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(r.data) {
		pos = len(r.data)
	}
	r.offset = pos
}

// ReadBytes returns up to n raw bytes from the current raw offset,
// advancing it. The returned slice is a copy.
func (r *Reader) ReadBytes(n int) []byte {
	if n <= 0 || r.offset >= len(r.data) {
		return nil
	}
	end := r.offset + n
	if end > len(r.data) {
		end = len(r.data)
	}
	out := make([]byte, end-r.offset)
	copy(out, r.data[r.offset:end])
	r.offset = end
	return out
}

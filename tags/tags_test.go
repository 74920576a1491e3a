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

package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHeader(t *testing.T) {
	testCases := []struct {
		name     string
		isHeader bool
	}{
		{"file.h", true},
		{"FILE.H", true},
		{"file.hh", true},
		{"file.hpp", true},
		{"file.hxx", true},
		{"file.h++", true},
		{"file.inc", true},
		{"file.def", true},
		{"dir/nested/file.h", true},
		{"file.c", false},
		{"file.cpp", false},
		{"file", false},
		{"file.", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.isHeader, IsHeader(tc.name), "unexpected result for %q", tc.name)
	}
}

func TestCollector(t *testing.T) {
	c := &Collector{}
	c.MakeTag(Entry{Name: "FIRST"})
	c.MakeTag(Entry{Name: "SECOND"})

	assert.Len(t, c.Entries, 2)
	assert.Equal(t, "FIRST", c.Entries[0].Name, "entries keep their discovery order")
	assert.Equal(t, "SECOND", c.Entries[1].Name)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard{}.MakeTag(Entry{Name: "X"}) })
}

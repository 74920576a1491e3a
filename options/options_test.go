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

package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	opts := Default()
	assert.False(t, opts.If0)
	assert.Equal(t, LocatePattern, opts.Locate)
	assert.True(t, opts.Include.FileScope)
	assert.True(t, opts.Include.DefineTags)
}

func writeOptions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	opts, err := Load(writeOptions(t, `
if0: true
locate: line
include:
  file_scope: false
`))
	require.NoError(t, err)
	assert.True(t, opts.If0)
	assert.Equal(t, LocateLineNumber, opts.Locate)
	assert.False(t, opts.Include.FileScope)
	assert.True(t, opts.Include.DefineTags, "unset fields keep their defaults")
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(writeOptions(t, "surprise: 1\n"))
		assert.Error(t, err)
	})

	t.Run("unknown locate mode", func(t *testing.T) {
		_, err := Load(writeOptions(t, "locate: compass\n"))
		assert.ErrorContains(t, err, "unknown locate mode")
	})
}

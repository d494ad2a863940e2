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

package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, contents := range files {
		path := filepath.Join(dir, name)
		assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
}

func TestExpandAndRun(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.c":         "int x;",
		"b.c":         "int",
		"sub/c.c":     "int y;",
		"sub/notc.h":  "ignored",
	})

	paths, err := Expand(dir, "**/*.c")
	assert.NoError(t, err)
	assert.Len(t, paths, 3)

	results := Run(context.Background(), paths, 2, false)
	assert.Len(t, results, 3)

	byBase := map[string]Result{}
	for _, r := range results {
		byBase[filepath.Base(r.Path)] = r
	}
	assert.True(t, byBase["a.c"].Passed())
	assert.True(t, byBase["c.c"].Passed())
	assert.False(t, byBase["b.c"].Passed())
	assert.Greater(t, byBase["b.c"].ErrorCount, 0)
}

func TestRunReportsUnreadableFile(t *testing.T) {
	results := Run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.c")}, 0, false)
	assert.Len(t, results, 1)
	assert.False(t, results[0].Passed())
	assert.Error(t, results[0].Err)
}

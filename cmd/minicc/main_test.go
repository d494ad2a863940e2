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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withCapturedStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	assert.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	fn()
	os.Stdout = orig
	assert.NoError(t, w.Close())
	out := make([]byte, 1<<16)
	n, _ := r.Read(out)
	return string(out[:n])
}

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.c")
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunLexerPass(t *testing.T) {
	path := writeTemp(t, "int x;")
	var code int
	out := withCapturedStdout(t, func() { code = run([]string{"-lexer", path}) })
	assert.Equal(t, exitPass, code)
	assert.Contains(t, out, "Lexing: pass")
	assert.Contains(t, out, "IDENTIFIER(x)")
}

func TestRunParserPass(t *testing.T) {
	path := writeTemp(t, "int f(int x){return x+1;}")
	var code int
	out := withCapturedStdout(t, func() { code = run([]string{"-parser", path}) })
	assert.Equal(t, exitPass, code)
	assert.Contains(t, out, "Parsing: pass")
}

func TestRunParserFail(t *testing.T) {
	path := writeTemp(t, "int")
	var code int
	out := withCapturedStdout(t, func() { code = run([]string{"-parser", path}) })
	assert.Equal(t, exitParserFail, code)
	assert.Contains(t, out, "Parsing: failed (1 errors)")
}

func TestRunASTPass(t *testing.T) {
	path := writeTemp(t, "int x;")
	var code int
	out := withCapturedStdout(t, func() { code = run([]string{"-ast", path}) })
	assert.Equal(t, exitPass, code)
	assert.Contains(t, out, "Program(VarDecl(INT,x))")
}

func TestRunFileNotFound(t *testing.T) {
	code := run([]string{"-parser", filepath.Join(t.TempDir(), "missing.c")})
	assert.Equal(t, exitFileNotFound, code)
}

func TestRunSemNotImplemented(t *testing.T) {
	path := writeTemp(t, "int x;")
	code := run([]string{"-sem", path})
	assert.Equal(t, exitModeFail, code)
}

func TestRunUsageOnNoFlags(t *testing.T) {
	code := run(nil)
	assert.Equal(t, exitUsage, code)
}

func TestRunBuildMode(t *testing.T) {
	path := writeTemp(t, "int add(int a, int b){return a+b;}")
	var code int
	out := withCapturedStdout(t, func() { code = run([]string{"-build", path}) })
	assert.Equal(t, exitPass, code)
	assert.Contains(t, out, "cc_library")
}

func TestRunBatchMode(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "a.c"), []byte("int x;"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "b.c"), []byte("int"), 0o644))

	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	var code int
	out := withCapturedStdout(t, func() { code = run([]string{"-batch", "*.c"}) })
	assert.Equal(t, exitParserFail, code)
	assert.Contains(t, out, "a.c: Parsing: pass")
	assert.Contains(t, out, "b.c: Parsing: failed")
}

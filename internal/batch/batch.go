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

// Package batch runs the sequential scanner→tokenizer→parser pipeline over
// many input files concurrently, one goroutine per file with no state
// shared across files (see spec.md §5: the only place concurrency appears
// in this repo). It backs cmd/minicc's -batch mode.
package batch

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/Flpha0830/mini-compiler/lexer"
	"github.com/Flpha0830/mini-compiler/parser"
)

// Result is the outcome of parsing a single file.
type Result struct {
	Path        string
	ErrorCount  int
	Diagnostics []lexer.Diagnostic
	Err         error // non-nil only for a fatal I/O failure or unreadable file
}

// Passed reports whether the file parsed cleanly.
func (r Result) Passed() bool { return r.Err == nil && r.ErrorCount == 0 }

// Expand resolves pattern (a doublestar glob, e.g. "./src/**/*.c") against
// the filesystem rooted at root and returns the matched files, sorted for
// deterministic output ordering.
func Expand(root, pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(joinGlob(root, pattern))
	if err != nil {
		return nil, fmt.Errorf("batch: invalid glob %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func joinGlob(root, pattern string) string {
	if root == "" || root == "." {
		return pattern
	}
	return strings.TrimSuffix(root, "/") + "/" + strings.TrimPrefix(pattern, "./")
}

// Run parses every file in paths concurrently, at most concurrency at a
// time (0 means unbounded), and returns one Result per input file in the
// same order as paths regardless of completion order. When verbose is set,
// each file's start and outcome are logged via log.Printf, mirroring
// cmd/minicc's own -config verbose progress logging.
func Run(ctx context.Context, paths []string, concurrency int, verbose bool) []Result {
	results := make([]Result, len(paths))
	g, _ := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	var mu sync.Mutex // guards nothing shared beyond results[i], kept for clarity under -race
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if verbose {
				log.Printf("batch: parsing %s", path)
			}
			r := parseFile(path)
			if verbose {
				log.Printf("batch: %s done (passed=%v, errors=%d)", path, r.Passed(), r.ErrorCount)
			}
			mu.Lock()
			results[i] = r
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // parseFile never returns a non-nil error from g.Go; failures are recorded in Result
	return results
}

func parseFile(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	defer f.Close()

	tz := lexer.NewTokenizer(lexer.NewScanner(f))
	p := parser.New(tz)
	_, perr := p.Parse()
	return Result{
		Path:        path,
		ErrorCount:  p.ErrorCount(),
		Diagnostics: p.Diagnostics(),
		Err:         perr,
	}
}

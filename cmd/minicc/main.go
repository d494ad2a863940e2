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

// Command minicc is the CLI driver for the mini-C front-end: it selects a
// mode (lex, parse, print AST, "semantic analysis", "codegen"), opens the
// input, and exits with the named status codes described in spec.md §6.
// Mirrors the structure of the teacher repo's index/*/main.go entry
// points: flag parsing and log.Fatalf live only here, never in a library
// package (see lexer.FatalIOError and parser.Parser's returned error).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Flpha0830/mini-compiler/ast"
	"github.com/Flpha0830/mini-compiler/internal/batch"
	"github.com/Flpha0830/mini-compiler/internal/config"
	"github.com/Flpha0830/mini-compiler/language/buildgen"
	"github.com/Flpha0830/mini-compiler/lexer"
	"github.com/Flpha0830/mini-compiler/parser"
	"github.com/Flpha0830/mini-compiler/printer"
)

// Exit codes, named per spec.md §6.
const (
	exitPass         = 0
	exitFileNotFound = 2
	exitSemFail      = 240
	exitParserFail   = 245
	exitLexerFail    = 250
	exitModeFail     = 254
	exitUsage        = -1 // printed as process exit status 255
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: minicc (-lexer|-parser|-ast|-sem|-gen) [<input>] [output]
       minicc -build <input>
       minicc -batch <glob>
   <input> may be omitted when stdin is piped, e.g. "cat x.c | minicc -lexer"
   flags: -config <path>  load CLI defaults from a YAML file
          -format text|proto  select -ast's output encoding (default text)`)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	fs := flag.NewFlagSet("minicc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var lexerMode, parserMode, astMode, semMode, genMode, buildMode bool
	fs.BoolVar(&lexerMode, "lexer", false, "tokenize the input and print each token")
	fs.BoolVar(&parserMode, "parser", false, "parse the input and report pass/fail")
	fs.BoolVar(&astMode, "ast", false, "parse the input and print its AST")
	fs.BoolVar(&semMode, "sem", false, "run semantic analysis (not implemented)")
	fs.BoolVar(&genMode, "gen", false, "run code generation (not implemented)")
	fs.BoolVar(&buildMode, "build", false, "parse the input and print a synthesized Bazel rule")
	var batchGlob, configPath, format string
	fs.StringVar(&batchGlob, "batch", "", "glob of inputs to parse concurrently")
	fs.StringVar(&configPath, "config", "", "path to a .miniccrc.yaml defaults file")
	fs.StringVar(&format, "format", "", "output encoding for -ast (text|proto)")

	if err := fs.Parse(argv); err != nil {
		usage()
		return exitUsage
	}

	var cfg config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Printf("minicc: %v", err)
			return exitUsage
		}
		cfg = loaded
	}
	if format == "" {
		format = cfg.Format
	}
	if format == "" {
		format = "text"
	}

	switch {
	case batchGlob != "":
		return runBatch(batchGlob, cfg)
	case lexerMode:
		return runLexer(fs.Args(), cfg)
	case parserMode:
		return runParser(fs.Args(), cfg)
	case astMode:
		return runAST(fs.Args(), format, cfg)
	case buildMode:
		return runBuild(fs.Args())
	case semMode:
		fmt.Println("sem: not implemented")
		return exitModeFail
	case genMode:
		fmt.Println("gen: not implemented")
		return exitModeFail
	default:
		usage()
		return exitUsage
	}
}

// openInput validates the (mode-specific) positional argument list and
// opens the input file named by args[0]. A reserved output path in args[1]
// is accepted but ignored by every implemented mode, per spec.md §6. With no
// file argument, it falls back to stdin when stdin is piped rather than an
// interactive terminal, so e.g. `cat x.c | minicc -lexer` works without
// blocking on a tty read.
func openInput(args []string) (*os.File, int) {
	if len(args) > 2 {
		usage()
		return nil, exitUsage
	}
	if len(args) == 0 {
		if isTerminal(int(os.Stdin.Fd())) {
			usage()
			return nil, exitUsage
		}
		return os.Stdin, exitPass
	}
	f, err := os.Open(args[0])
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("minicc: file not found: %s\n", args[0])
			return nil, exitFileNotFound
		}
		log.Fatalf("minicc: opening %s: %v", args[0], err)
	}
	return f, exitPass
}

// logVerbose writes a progress line to the log only when cfg.Verbose is set,
// per spec.md's -config documentation.
func logVerbose(cfg config.Config, format string, args ...any) {
	if cfg.Verbose {
		log.Printf(format, args...)
	}
}

func runLexer(args []string, cfg config.Config) int {
	f, code := openInput(args)
	if f == nil {
		return code
	}
	defer f.Close()
	logVerbose(cfg, "minicc: lexing %v", args)

	tz := lexer.NewTokenizer(lexer.NewScanner(f))
	for {
		tok, err := tz.NextToken()
		if err != nil {
			log.Fatalf("minicc: %v", err)
		}
		fmt.Println(tok.String())
		if tok.Kind == lexer.EOF {
			break
		}
	}
	for _, d := range tz.Diagnostics() {
		fmt.Println(d.String())
	}
	if n := tz.ErrorCount(); n > 0 {
		fmt.Printf("Lexing: failed (%d errors)\n", n)
		return exitLexerFail
	}
	fmt.Println("Lexing: pass")
	return exitPass
}

func runParser(args []string, cfg config.Config) int {
	f, code := openInput(args)
	if f == nil {
		return code
	}
	defer f.Close()
	logVerbose(cfg, "minicc: parsing %v", args)

	_, n, err := parseFile(f)
	if err != nil {
		log.Fatalf("minicc: %v", err)
	}
	if n > 0 {
		fmt.Printf("Parsing: failed (%d errors)\n", n)
		return exitParserFail
	}
	fmt.Println("Parsing: pass")
	return exitPass
}

func runAST(args []string, format string, cfg config.Config) int {
	f, code := openInput(args)
	if f == nil {
		return code
	}
	defer f.Close()
	logVerbose(cfg, "minicc: parsing %v for -ast (format=%s)", args, format)

	prog, n, err := parseFile(f)
	if err != nil {
		log.Fatalf("minicc: %v", err)
	}
	if n > 0 {
		fmt.Printf("Parsing: failed (%d errors)\n", n)
		return exitParserFail
	}
	switch format {
	case "proto":
		data, err := encodeASTProto(prog)
		if err != nil {
			log.Fatalf("minicc: encoding AST as protobuf: %v", err)
		}
		os.Stdout.Write(data)
	default:
		fmt.Println(printer.Print(prog))
	}
	return exitPass
}

func runBuild(args []string) int {
	if len(args) < 1 {
		usage()
		return exitUsage
	}
	f, code := openInput(args)
	if f == nil {
		return code
	}
	path := args[0]
	defer f.Close()

	tz := lexer.NewTokenizer(lexer.NewScanner(f))
	p := parser.New(tz)
	prog, err := p.Parse()
	if err != nil {
		log.Fatalf("minicc: %v", err)
	}
	if n := p.ErrorCount(); n > 0 {
		fmt.Printf("Parsing: failed (%d errors)\n", n)
		return exitParserFail
	}
	r := buildgen.Synthesize(prog, p.Includes(), path, nil)
	os.Stdout.Write(buildgen.Format(r, "pkg"))
	return exitPass
}

func runBatch(glob string, cfg config.Config) int {
	paths, err := batch.Expand(".", glob)
	if err != nil {
		log.Fatalf("minicc: %v", err)
	}
	logVerbose(cfg, "minicc: batch expanded %q to %d file(s)", glob, len(paths))
	results := batch.Run(context.Background(), paths, cfg.BatchConcurrency, cfg.Verbose)
	failed := false
	for _, r := range results {
		if r.Err != nil {
			log.Fatalf("minicc: %v", r.Err)
		}
		if r.Passed() {
			fmt.Printf("%s: Parsing: pass\n", r.Path)
		} else {
			fmt.Printf("%s: Parsing: failed (%d errors)\n", r.Path, r.ErrorCount)
			failed = true
		}
	}
	if failed {
		return exitParserFail
	}
	return exitPass
}

// parseFile runs the scanner→tokenizer→parser pipeline once, combining
// lexical and syntactic error counts the way spec.md §6's -parser/-ast
// modes report a single failure count.
func parseFile(f *os.File) (ast.Program, int, error) {
	tz := lexer.NewTokenizer(lexer.NewScanner(f))
	p := parser.New(tz)
	prog, err := p.Parse()
	return prog, p.ErrorCount(), err
}

// encodeASTProto serializes prog's printed preorder form into a
// structpb.Struct and marshals it to protobuf wire bytes, per the -ast
// -format=proto mode described in SPEC_FULL.md: no protoc-generated types
// are needed since structpb's dynamic Value/Struct types are themselves
// generated code shipped by google.golang.org/protobuf.
func encodeASTProto(prog ast.Program) ([]byte, error) {
	s, err := structpb.NewStruct(map[string]any{
		"printed": printer.Print(prog),
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

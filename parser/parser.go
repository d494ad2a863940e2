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

// Package parser implements a hand-written recursive-descent parser over
// the mini-C token stream produced by lexer.Tokenizer. It builds an
// ast.Program and never aborts on a malformed input: syntax errors are
// collected as diagnostics and the parser resynchronises at the current
// token.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Flpha0830/mini-compiler/ast"
	"github.com/Flpha0830/mini-compiler/lexer"
)

// declStart is the set of token kinds that can begin a struct, variable or
// function declaration.
var declStart = []lexer.Kind{lexer.INT, lexer.VOID, lexer.CHAR, lexer.STRUCT}

var termStart = []lexer.Kind{
	lexer.LPAR, lexer.IDENTIFIER, lexer.MINUS, lexer.PLUS, lexer.ASTERIX,
	lexer.AND, lexer.SIZEOF, lexer.INTLITERAL, lexer.CHARLITERAL, lexer.STRINGLITERAL,
}

var binopKind = map[lexer.Kind]ast.Op{
	lexer.EQ: ast.EQ, lexer.NE: ast.NE,
	lexer.LT: ast.LT, lexer.GT: ast.GT, lexer.LE: ast.LE, lexer.GE: ast.GE,
	lexer.PLUS: ast.ADD, lexer.MINUS: ast.SUB,
	lexer.ASTERIX: ast.MUL, lexer.DIV: ast.DIV, lexer.REM: ast.MOD,
	lexer.LOGAND: ast.AND, lexer.LOGOR: ast.OR,
}

// Parser holds the current token, a FIFO buffer of peeked-ahead tokens, and
// the identity of the token at which the last error was reported (so a
// single bad token never produces more than one diagnostic).
type Parser struct {
	tz          *lexer.Tokenizer
	current     lexer.Token
	pending     []lexer.Token
	lastErrorAt *lexer.Position
	diagnostics []lexer.Diagnostic
	includes    []ast.Include
	fatal       error
}

// New constructs a Parser drawing tokens from tz.
func New(tz *lexer.Tokenizer) *Parser {
	p := &Parser{tz: tz}
	p.current = p.fetch()
	return p
}

// ErrorCount returns the number of errors reported so far: syntactic errors
// plus the lexical errors copied through from the tokenizer (see fetch).
func (p *Parser) ErrorCount() int { return len(p.diagnostics) }

// Diagnostics returns every error reported so far, lexical and syntactic,
// in the order they were recorded.
func (p *Parser) Diagnostics() []lexer.Diagnostic { return p.diagnostics }

// Includes returns the paths named by every `#include` directive
// encountered while parsing, in source order. It is a side channel: the
// Program itself carries no trace of includes (see ast.Include).
func (p *Parser) Includes() []ast.Include { return p.includes }

// fetch pulls one token from the tokenizer, latching any fatal I/O error
// and substituting EOF for every call made afterwards. Lexical errors are
// copied through to the parser's own diagnostic list so that a single
// caller (cmd/minicc) can print lexing and parsing failures together.
func (p *Parser) fetch() lexer.Token {
	if p.fatal != nil {
		return lexer.TokenEOF(p.current.Position)
	}
	before := p.tz.ErrorCount()
	tok, err := p.tz.NextToken()
	if err != nil {
		p.fatal = err
		return lexer.TokenEOF(p.current.Position)
	}
	if diags := p.tz.Diagnostics(); len(diags) > before {
		p.diagnostics = append(p.diagnostics, diags[before:]...)
	}
	return tok
}

// lookahead returns the k-th upcoming token (k>=1) without consuming it,
// extending the pending buffer from the tokenizer as needed.
func (p *Parser) lookahead(k int) lexer.Token {
	for len(p.pending) < k {
		p.pending = append(p.pending, p.fetch())
	}
	return p.pending[k-1]
}

// advance consumes and returns the current token, replacing it with the
// head of the pending buffer or a fresh token from the tokenizer.
func (p *Parser) advance() lexer.Token {
	prev := p.current
	if len(p.pending) > 0 {
		p.current = p.pending[0]
		p.pending = p.pending[1:]
	} else {
		p.current = p.fetch()
	}
	return prev
}

// accept reports whether the current token's kind is one of kinds.
func (p *Parser) accept(kinds ...lexer.Kind) bool {
	for _, k := range kinds {
		if p.current.Kind == k {
			return true
		}
	}
	return false
}

// expect consumes the current token if its kind is in kinds, else reports
// an error without consuming.
func (p *Parser) expect(kinds ...lexer.Kind) (lexer.Token, bool) {
	if p.accept(kinds...) {
		return p.advance(), true
	}
	p.reportExpected(kinds)
	return p.current, false
}

func (p *Parser) reportExpected(kinds []lexer.Kind) {
	pos := p.current.Position
	if p.lastErrorAt != nil && *p.lastErrorAt == pos {
		return
	}
	p.lastErrorAt = &pos
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	p.diagnostics = append(p.diagnostics, lexer.Diagnostic{
		Severity: lexer.Syntactic,
		Message:  fmt.Sprintf("expected (%s) found (%s)", strings.Join(names, "|"), p.current),
		Position: pos,
	})
}

func (p *Parser) startsType() bool { return p.accept(declStart...) }

// Parse drains the token stream and builds a Program. It never aborts: a
// malformed input yields a possibly ill-formed Program and a non-zero
// ErrorCount. The returned error is non-nil only for a fatal scanner I/O
// failure (see lexer.FatalIOError); cmd/minicc is the only caller allowed
// to treat that as a hard failure.
func (p *Parser) Parse() (ast.Program, error) {
	var prog ast.Program

	for p.accept(lexer.INCLUDE) {
		p.includes = append(p.includes, p.parseInclude())
	}

	for !p.accept(lexer.EOF) {
		switch {
		case p.accept(lexer.STRUCT) && p.isStructDecl():
			prog.Structs = append(prog.Structs, p.parseStructDecl())
		case p.startsType():
			if p.isFunDecl() {
				prog.Functions = append(prog.Functions, p.parseFunDecl())
			} else {
				prog.Globals = append(prog.Globals, p.parseVarDecl())
			}
		default:
			p.reportExpected(append(append([]lexer.Kind{}, declStart...), lexer.EOF))
			p.advance()
		}
	}
	return prog, p.fatal
}

func (p *Parser) parseInclude() ast.Include {
	pos := p.current.Position
	p.advance() // consume INCLUDE; the lexer does not require a following
	// string literal, the parser does (see lexer's scanInclude).
	path := ""
	if tok, ok := p.expect(lexer.STRINGLITERAL); ok {
		path = tok.Lexeme
	}
	return ast.Include{Path: path, Position: pos}
}

// isStructDecl reports whether the STRUCT at the current token begins a
// struct_decl (`struct NAME? { ... }`) rather than a `struct NAME` type
// reference inside a var_decl/fun_decl. The identifier is optional for an
// anonymous struct, so either the first or second upcoming token may be
// the opening brace.
func (p *Parser) isStructDecl() bool {
	return p.lookahead(1).Kind == lexer.LBRA || p.lookahead(2).Kind == lexer.LBRA
}

// isFunDecl implements the decl-vs-fun disambiguation: it inspects the
// token that would immediately follow `type IDENTIFIER` (skipping an
// optional pointer marker) without consuming anything. base is the number
// of tokens the type spelling itself occupies (1 for INT/VOID/CHAR, 2 for
// STRUCT IDENTIFIER); lookahead(base) is therefore the first token after
// the type, which is either the pointer marker or the declared name.
func (p *Parser) isFunDecl() bool {
	base := 1
	if p.accept(lexer.STRUCT) {
		base = 2
	}
	offset := base + 1
	if p.lookahead(base).Kind == lexer.ASTERIX {
		offset++
	}
	return p.lookahead(offset).Kind == lexer.LPAR
}

func (p *Parser) parseStructDecl() ast.StructTypeDecl {
	p.advance() // consume STRUCT
	name := ""
	if p.accept(lexer.IDENTIFIER) {
		name = p.advance().Lexeme
	}
	p.expect(lexer.LBRA)
	var fields []ast.VarDecl
	for p.startsType() {
		fields = append(fields, p.parseVarDecl())
	}
	p.expect(lexer.RBRA)
	p.expect(lexer.SC)
	return ast.StructTypeDecl{Type: ast.StructType{Name: name}, Fields: fields}
}

// parseVarDecl parses `type IDENTIFIER (LSBR INTLITERAL? RSBR)? SC`. The
// caller is responsible for having already decided (via isFunDecl where
// applicable) that this is the correct alternative.
func (p *Parser) parseVarDecl() ast.VarDecl {
	typ := p.parseType()
	nameTok, _ := p.expect(lexer.IDENTIFIER)
	if p.accept(lexer.LSBR) {
		p.advance()
		length := 0
		if p.accept(lexer.INTLITERAL) {
			length, _ = strconv.Atoi(p.advance().Lexeme)
		}
		p.expect(lexer.RSBR)
		typ = ast.ArrayType{Elem: typ, Length: length}
	}
	p.expect(lexer.SC)
	return ast.VarDecl{Type: typ, Name: nameTok.Lexeme}
}

func (p *Parser) parseFunDecl() ast.FunDecl {
	retType := p.parseType()
	nameTok, _ := p.expect(lexer.IDENTIFIER)
	p.expect(lexer.LPAR)
	params := p.parseParams()
	p.expect(lexer.RPAR)
	body := p.parseBlock()
	return ast.FunDecl{ReturnType: retType, Name: nameTok.Lexeme, Params: params, Body: body}
}

func (p *Parser) parseParams() []ast.VarDecl {
	if p.accept(lexer.RPAR) {
		return nil
	}
	var params []ast.VarDecl
	for {
		typ := p.parseType()
		nameTok, _ := p.expect(lexer.IDENTIFIER)
		params = append(params, ast.VarDecl{Type: typ, Name: nameTok.Lexeme})
		if !p.accept(lexer.COMMA) {
			break
		}
		p.advance()
	}
	return params
}

// parseType parses `(INT | VOID | CHAR | STRUCT IDENTIFIER) ASTERIX?`. An
// unrecognised type token yields a VOID placeholder and an error, per the
// failure semantics for type position.
func (p *Parser) parseType() ast.Type {
	var base ast.Type
	switch {
	case p.accept(lexer.INT):
		p.advance()
		base = ast.BaseType{Kind: ast.KindInt}
	case p.accept(lexer.CHAR):
		p.advance()
		base = ast.BaseType{Kind: ast.KindChar}
	case p.accept(lexer.VOID):
		p.advance()
		base = ast.BaseType{Kind: ast.KindVoid}
	case p.accept(lexer.STRUCT):
		p.advance()
		name := ""
		if tok, ok := p.expect(lexer.IDENTIFIER); ok {
			name = tok.Lexeme
		}
		base = ast.StructType{Name: name}
	default:
		p.reportExpected(declStart)
		base = ast.BaseType{Kind: ast.KindVoid}
	}
	if p.accept(lexer.ASTERIX) {
		p.advance()
		return ast.PointerType{Elem: base}
	}
	return base
}

func (p *Parser) parseBlock() ast.Block {
	p.expect(lexer.LBRA)
	var locals []ast.VarDecl
	for p.startsType() {
		locals = append(locals, p.parseVarDecl())
	}
	var stmts []ast.Stmt
	for !p.accept(lexer.RBRA) && !p.accept(lexer.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(lexer.RBRA)
	return ast.Block{Locals: locals, Stmts: stmts}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.accept(lexer.LBRA):
		return p.parseBlock()

	case p.accept(lexer.WHILE):
		p.advance()
		p.expect(lexer.LPAR)
		cond := p.parseExpr()
		p.expect(lexer.RPAR)
		return ast.While{Cond: cond, Body: p.parseStmt()}

	case p.accept(lexer.IF):
		p.advance()
		p.expect(lexer.LPAR)
		cond := p.parseExpr()
		p.expect(lexer.RPAR)
		then := p.parseStmt()
		var elseStmt ast.Stmt
		if p.accept(lexer.ELSE) {
			p.advance()
			elseStmt = p.parseStmt()
		}
		return ast.If{Cond: cond, Then: then, Else: elseStmt}

	case p.accept(lexer.RETURN):
		p.advance()
		var value ast.Expr
		if !p.accept(lexer.SC) {
			value = p.parseExpr()
		}
		p.expect(lexer.SC)
		return ast.Return{Value: value}

	default:
		expr := p.parseExpr()
		if p.accept(lexer.ASSIGN) {
			p.advance()
			rhs := p.parseExpr()
			p.expect(lexer.SC)
			return ast.Assign{Lhs: expr, Rhs: rhs}
		}
		p.expect(lexer.SC)
		return ast.ExprStmt{Expr: expr}
	}
}

// parseExpr implements the left fold over term and binop_or_suffix: it
// never resolves precedence, it only builds a strictly left-associated
// tree that a later, separate fixup pass is responsible for rearranging.
func (p *Parser) parseExpr() ast.Expr {
	lhs := p.parseTerm()
	for {
		switch {
		case p.accept(lexer.DOT):
			p.advance()
			nameTok, _ := p.expect(lexer.IDENTIFIER)
			lhs = ast.FieldAccessExpr{Base: lhs, Name: nameTok.Lexeme}
		case p.accept(lexer.LSBR):
			p.advance()
			index := p.parseExpr()
			p.expect(lexer.RSBR)
			lhs = ast.ArrayAccessExpr{Base: lhs, Index: index}
		default:
			op, ok := binopKind[p.current.Kind]
			if !ok {
				return lhs
			}
			p.advance()
			lhs = ast.BinOp{Lhs: lhs, Op: op, Rhs: p.parseTerm()}
		}
	}
}

// parseTerm parses a single term, desugaring the unary forms and marking
// `LPAR exp RPAR` as grouped per the is_grouped convention (see
// ast.MarkGrouped).
func (p *Parser) parseTerm() ast.Expr {
	switch {
	case p.accept(lexer.LPAR):
		p.advance()
		if p.startsType() {
			typ := p.parseType()
			p.expect(lexer.RPAR)
			return ast.TypecastExpr{Type: typ, Inner: p.parseTerm()}
		}
		inner := p.parseExpr()
		p.expect(lexer.RPAR)
		return ast.MarkGrouped(inner)

	case p.accept(lexer.IDENTIFIER):
		name := p.advance().Lexeme
		if p.accept(lexer.LPAR) {
			p.advance()
			var args []ast.Expr
			if !p.accept(lexer.RPAR) { // lookahead(1) past LPAR distinguishes name() from name(arg,...)
				args = append(args, p.parseExpr())
				for p.accept(lexer.COMMA) {
					p.advance()
					args = append(args, p.parseExpr())
				}
			}
			p.expect(lexer.RPAR)
			return ast.FunCallExpr{Name: name, Args: args}
		}
		return ast.VarExpr{Name: name}

	case p.accept(lexer.MINUS):
		p.advance()
		return ast.BinOp{Lhs: ast.IntLiteral{Value: 0}, Op: ast.SUB, Rhs: p.parseTerm()}

	case p.accept(lexer.PLUS):
		p.advance()
		return ast.BinOp{Lhs: ast.IntLiteral{Value: 0}, Op: ast.ADD, Rhs: p.parseTerm()}

	case p.accept(lexer.ASTERIX):
		p.advance()
		return ast.ValueAtExpr{Inner: p.parseTerm()}

	case p.accept(lexer.AND):
		p.advance()
		return ast.AddressOfExpr{Inner: p.parseTerm()}

	case p.accept(lexer.SIZEOF):
		p.advance()
		p.expect(lexer.LPAR)
		typ := p.parseType()
		p.expect(lexer.RPAR)
		return ast.SizeOfExpr{Type: typ}

	case p.accept(lexer.INTLITERAL):
		v, _ := strconv.Atoi(p.advance().Lexeme)
		return ast.IntLiteral{Value: v}

	case p.accept(lexer.CHARLITERAL):
		lexeme := p.advance().Lexeme
		var v byte
		if len(lexeme) > 0 {
			v = lexeme[0]
		}
		return ast.ChrLiteral{Value: v}

	case p.accept(lexer.STRINGLITERAL):
		return ast.StrLiteral{Value: p.advance().Lexeme}

	default:
		p.reportExpected(termStart)
		p.advance() // resynchronise: never loop forever on an unrecognised term
		return ast.IntLiteral{Value: 0}
	}
}

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

package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Flpha0830/mini-compiler/ast"
	"github.com/Flpha0830/mini-compiler/lexer"
)

func parse(t *testing.T, src string) (ast.Program, *Parser) {
	t.Helper()
	p := New(lexer.NewTokenizer(lexer.NewScanner(strings.NewReader(src))))
	prog, err := p.Parse()
	assert.NoError(t, err)
	return prog, p
}

func TestParseGlobalVarDecl(t *testing.T) {
	prog, p := parse(t, "int x;")
	assert.Equal(t, 0, p.ErrorCount())
	assert.Equal(t, []ast.VarDecl{{Type: ast.BaseType{Kind: ast.KindInt}, Name: "x"}}, prog.Globals)
	assert.Empty(t, prog.Functions)
}

func TestParseFunDecl(t *testing.T) {
	prog, p := parse(t, "int f(int x){return x+1;}")
	assert.Equal(t, 0, p.ErrorCount())
	assert.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, []ast.VarDecl{{Type: ast.BaseType{Kind: ast.KindInt}, Name: "x"}}, fn.Params)
	assert.Len(t, fn.Body.Stmts, 1)
	ret, ok := fn.Body.Stmts[0].(ast.Return)
	assert.True(t, ok)
	bin, ok := ret.Value.(ast.BinOp)
	assert.True(t, ok)
	assert.Equal(t, ast.ADD, bin.Op)
	assert.Equal(t, ast.VarExpr{Name: "x"}, bin.Lhs)
	assert.Equal(t, ast.IntLiteral{Value: 1}, bin.Rhs)
}

func TestParsePointerFunDecl(t *testing.T) {
	_, p := parse(t, "int* f(int* x){return x;}")
	assert.Equal(t, 0, p.ErrorCount())
}

func TestParseStructDecl(t *testing.T) {
	prog, p := parse(t, "struct S { int a; }; struct S s;")
	assert.Equal(t, 0, p.ErrorCount())
	assert.Len(t, prog.Structs, 1)
	assert.Equal(t, "S", prog.Structs[0].Type.Name)
	assert.Equal(t, []ast.VarDecl{{Type: ast.BaseType{Kind: ast.KindInt}, Name: "a"}}, prog.Structs[0].Fields)
	assert.Len(t, prog.Globals, 1)
	assert.Equal(t, ast.StructType{Name: "S"}, prog.Globals[0].Type)
}

func TestParseStructPointerFunDecl(t *testing.T) {
	_, p := parse(t, "struct S* f(struct S* s){return s;}")
	assert.Equal(t, 0, p.ErrorCount())
}

func TestParseLeftFoldedExpression(t *testing.T) {
	prog, p := parse(t, "int f(){int x; x = 1+2*3; return x;}")
	assert.Equal(t, 0, p.ErrorCount())
	body := prog.Functions[0].Body
	assign, ok := body.Stmts[0].(ast.Assign)
	assert.True(t, ok)
	outer, ok := assign.Rhs.(ast.BinOp)
	assert.True(t, ok)
	assert.Equal(t, ast.MUL, outer.Op) // left-folded: (1+2)*3, no precedence resolution
	inner, ok := outer.Lhs.(ast.BinOp)
	assert.True(t, ok)
	assert.Equal(t, ast.ADD, inner.Op)
}

func TestParseGroupedExpressionSetsIsGrouped(t *testing.T) {
	prog, p := parse(t, "int f(){int x; x = (1+2); return x;}")
	assert.Equal(t, 0, p.ErrorCount())
	assign := prog.Functions[0].Body.Stmts[0].(ast.Assign)
	bin, ok := assign.Rhs.(ast.BinOp)
	assert.True(t, ok)
	assert.True(t, bin.IsGrouped())
}

func TestParseUnaryForms(t *testing.T) {
	prog, p := parse(t, "int f(){int x; x = -1; return *x+&x;}")
	assert.Equal(t, 0, p.ErrorCount())
	assign := prog.Functions[0].Body.Stmts[0].(ast.Assign)
	neg, ok := assign.Rhs.(ast.BinOp)
	assert.True(t, ok)
	assert.Equal(t, ast.SUB, neg.Op)
	assert.Equal(t, ast.IntLiteral{Value: 0}, neg.Lhs)

	ret := prog.Functions[0].Body.Stmts[1].(ast.Return)
	bin := ret.Value.(ast.BinOp)
	_, isValueAt := bin.Lhs.(ast.ValueAtExpr)
	assert.True(t, isValueAt)
	_, isAddrOf := bin.Rhs.(ast.AddressOfExpr)
	assert.True(t, isAddrOf)
}

func TestParseFunCallNoArgsVsArgs(t *testing.T) {
	prog, p := parse(t, "int f(){g(); h(1,2); return 0;}")
	assert.Equal(t, 0, p.ErrorCount())
	call0 := prog.Functions[0].Body.Stmts[0].(ast.ExprStmt).Expr.(ast.FunCallExpr)
	assert.Equal(t, "g", call0.Name)
	assert.Empty(t, call0.Args)

	call1 := prog.Functions[0].Body.Stmts[1].(ast.ExprStmt).Expr.(ast.FunCallExpr)
	assert.Equal(t, "h", call1.Name)
	assert.Len(t, call1.Args, 2)
}

func TestParseIncludesAreSideChannel(t *testing.T) {
	_, p := parse(t, `#include "a.h"`+"\nint x;")
	assert.Equal(t, 0, p.ErrorCount())
	assert.Equal(t, []ast.Include{{Path: "a.h", Position: lexer.Position{Line: 1, Column: 1}}}, p.Includes())
}

func TestParseMissingIdentifierReportsOneError(t *testing.T) {
	_, p := parse(t, "int")
	assert.Equal(t, 1, p.ErrorCount())
	assert.Contains(t, p.Diagnostics()[0].String(), "IDENTIFIER")
}

func TestParserTerminatesAndErrorIsNotDuplicatedOnSameToken(t *testing.T) {
	_, p := parse(t, "int int int")
	assert.Greater(t, p.ErrorCount(), 0)
	// One missing-IDENTIFIER error per declaration; the follow-up expect(SC)
	// at the same token is suppressed each time.
	assert.Equal(t, 3, p.ErrorCount())
}

func TestParseSizeofAndTypecast(t *testing.T) {
	prog, p := parse(t, "int f(){int x; x = (int)sizeof(char); return x;}")
	assert.Equal(t, 0, p.ErrorCount())
	assign := prog.Functions[0].Body.Stmts[0].(ast.Assign)
	cast, ok := assign.Rhs.(ast.TypecastExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.BaseType{Kind: ast.KindInt}, cast.Type)
	sz, ok := cast.Inner.(ast.SizeOfExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.BaseType{Kind: ast.KindChar}, sz.Type)
}

func TestParseArrayDeclAndAccess(t *testing.T) {
	prog, p := parse(t, "int a[10]; int f(){return a[0];}")
	assert.Equal(t, 0, p.ErrorCount())
	assert.Equal(t, ast.ArrayType{Elem: ast.BaseType{Kind: ast.KindInt}, Length: 10}, prog.Globals[0].Type)
	ret := prog.Functions[0].Body.Stmts[0].(ast.Return)
	access, ok := ret.Value.(ast.ArrayAccessExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.VarExpr{Name: "a"}, access.Base)
}

func TestParseFieldAccess(t *testing.T) {
	prog, p := parse(t, "struct S { int a; }; int f(struct S s){return s.a;}")
	assert.Equal(t, 0, p.ErrorCount())
	ret := prog.Functions[0].Body.Stmts[0].(ast.Return)
	field, ok := ret.Value.(ast.FieldAccessExpr)
	assert.True(t, ok)
	assert.Equal(t, "a", field.Name)
}

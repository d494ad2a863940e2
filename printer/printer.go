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

// Package printer is the AST pretty-printer described as an external
// collaborator in spec.md §1/§6: a preorder traversal over ast.Program that
// emits the canonical textual form `NodeName(child1,child2,...)`. It is the
// only consumer of the visitor dispatchers in ast/walk.go (VisitType,
// VisitStmt, VisitExpr) that ships in this repo.
package printer

import (
	"strconv"
	"strings"

	"github.com/Flpha0830/mini-compiler/ast"
)

// Print renders prog in the canonical preorder textual form specified in
// spec.md §6.
func Print(prog ast.Program) string {
	children := make([]string, 0, len(prog.Structs)+len(prog.Globals)+len(prog.Functions))
	for _, s := range prog.Structs {
		children = append(children, printStructDecl(s))
	}
	for _, v := range prog.Globals {
		children = append(children, printVarDecl(v))
	}
	for _, f := range prog.Functions {
		children = append(children, printFunDecl(f))
	}
	return node("Program", children...)
}

// node formats name's children as `name(child1,child2,...)`, omitting empty
// children so that e.g. a bare `return;` prints as `Return()` rather than
// `Return(,)`.
func node(name string, children ...string) string {
	var kept []string
	for _, c := range children {
		if c != "" {
			kept = append(kept, c)
		}
	}
	return name + "(" + strings.Join(kept, ",") + ")"
}

func printType(t ast.Type) string {
	return ast.VisitType(t, ast.TypeVisitor[string]{
		Base:    func(b ast.BaseType) string { return b.Kind.String() },
		Pointer: func(p ast.PointerType) string { return node("PointerType", printType(p.Elem)) },
		Struct:  func(s ast.StructType) string { return node("StructType", s.Name) },
		Array: func(a ast.ArrayType) string {
			return node("ArrayType", printType(a.Elem), strconv.Itoa(a.Length))
		},
	})
}

func printVarDecl(v ast.VarDecl) string {
	return node("VarDecl", printType(v.Type), v.Name)
}

func printStructDecl(s ast.StructTypeDecl) string {
	children := make([]string, 0, 1+len(s.Fields))
	children = append(children, printType(s.Type))
	for _, f := range s.Fields {
		children = append(children, printVarDecl(f))
	}
	return node("StructTypeDecl", children...)
}

func printFunDecl(f ast.FunDecl) string {
	children := make([]string, 0, 2+len(f.Params))
	children = append(children, printType(f.ReturnType), f.Name)
	for _, p := range f.Params {
		children = append(children, printVarDecl(p))
	}
	children = append(children, printBlock(f.Body))
	return node("FunDecl", children...)
}

func printBlock(b ast.Block) string {
	children := make([]string, 0, len(b.Locals)+len(b.Stmts))
	for _, l := range b.Locals {
		children = append(children, printVarDecl(l))
	}
	for _, s := range b.Stmts {
		children = append(children, printStmt(s))
	}
	return node("Block", children...)
}

func printStmt(s ast.Stmt) string {
	return ast.VisitStmt(s, ast.StmtVisitor[string]{
		Block: printBlock,
		While: func(w ast.While) string {
			return node("While", printExpr(w.Cond), printStmt(w.Body))
		},
		If: func(i ast.If) string {
			if i.Else == nil {
				return node("If", printExpr(i.Cond), printStmt(i.Then))
			}
			return node("If", printExpr(i.Cond), printStmt(i.Then), printStmt(i.Else))
		},
		Assign: func(a ast.Assign) string {
			return node("Assign", printExpr(a.Lhs), printExpr(a.Rhs))
		},
		Return: func(r ast.Return) string {
			if r.Value == nil {
				return node("Return")
			}
			return node("Return", printExpr(r.Value))
		},
		ExprStmt: func(e ast.ExprStmt) string {
			return node("ExprStmt", printExpr(e.Expr))
		},
	})
}

// printExpr follows the literal node names from spec.md §6 verbatim,
// including its two asymmetric abbreviations (AddressOfExp, FieldAccessExp
// drop the trailing "r" that every sibling Expr node keeps) — not a typo to
// fix, the printed form is the pretty-printer's external contract.
func printExpr(e ast.Expr) string {
	return ast.VisitExpr(e, ast.ExprVisitor[string]{
		IntLiteral: func(n ast.IntLiteral) string { return node("IntLiteral", strconv.Itoa(n.Value)) },
		ChrLiteral: func(n ast.ChrLiteral) string { return node("ChrLiteral", string(n.Value)) },
		StrLiteral: func(n ast.StrLiteral) string { return node("StrLiteral", n.Value) },
		VarExpr:    func(n ast.VarExpr) string { return node("VarExpr", n.Name) },
		FunCallExpr: func(n ast.FunCallExpr) string {
			children := make([]string, 0, 1+len(n.Args))
			children = append(children, n.Name)
			for _, a := range n.Args {
				children = append(children, printExpr(a))
			}
			return node("FunCallExpr", children...)
		},
		BinOp: func(n ast.BinOp) string {
			return node("BinOp", printExpr(n.Lhs), n.Op.String(), printExpr(n.Rhs))
		},
		ArrayAccessExpr: func(n ast.ArrayAccessExpr) string {
			return node("ArrayAccessExpr", printExpr(n.Base), printExpr(n.Index))
		},
		FieldAccessExpr: func(n ast.FieldAccessExpr) string {
			return node("FieldAccessExp", printExpr(n.Base), n.Name)
		},
		ValueAtExpr:   func(n ast.ValueAtExpr) string { return node("ValueAtExpr", printExpr(n.Inner)) },
		AddressOfExpr: func(n ast.AddressOfExpr) string { return node("AddressOfExp", printExpr(n.Inner)) },
		SizeOfExpr:    func(n ast.SizeOfExpr) string { return node("SizeOfExpr", printType(n.Type)) },
		TypecastExpr: func(n ast.TypecastExpr) string {
			return node("TypecastExpr", printType(n.Type), printExpr(n.Inner))
		},
	})
}

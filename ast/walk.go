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

package ast

import "fmt"

// TypeVisitor dispatches on the concrete Type variant, replacing the
// runtime-downcast visitor the specification's source language used (see
// spec.md §9 "Dynamic dispatch across AST families").
type TypeVisitor[R any] struct {
	Base    func(BaseType) R
	Pointer func(PointerType) R
	Struct  func(StructType) R
	Array   func(ArrayType) R
}

// VisitType pattern-matches t against the variant tag and calls the
// matching visitor function.
func VisitType[R any](t Type, v TypeVisitor[R]) R {
	switch n := t.(type) {
	case BaseType:
		return v.Base(n)
	case PointerType:
		return v.Pointer(n)
	case StructType:
		return v.Struct(n)
	case ArrayType:
		return v.Array(n)
	default:
		panic(fmt.Sprintf("ast: unhandled Type variant %T", t))
	}
}

// StmtVisitor dispatches on the concrete Stmt variant.
type StmtVisitor[R any] struct {
	Block    func(Block) R
	While    func(While) R
	If       func(If) R
	Assign   func(Assign) R
	Return   func(Return) R
	ExprStmt func(ExprStmt) R
}

// VisitStmt pattern-matches s against the variant tag and calls the
// matching visitor function.
func VisitStmt[R any](s Stmt, v StmtVisitor[R]) R {
	switch n := s.(type) {
	case Block:
		return v.Block(n)
	case While:
		return v.While(n)
	case If:
		return v.If(n)
	case Assign:
		return v.Assign(n)
	case Return:
		return v.Return(n)
	case ExprStmt:
		return v.ExprStmt(n)
	default:
		panic(fmt.Sprintf("ast: unhandled Stmt variant %T", s))
	}
}

// ExprVisitor dispatches on the concrete Expr variant.
type ExprVisitor[R any] struct {
	IntLiteral      func(IntLiteral) R
	ChrLiteral      func(ChrLiteral) R
	StrLiteral      func(StrLiteral) R
	VarExpr         func(VarExpr) R
	FunCallExpr     func(FunCallExpr) R
	BinOp           func(BinOp) R
	ArrayAccessExpr func(ArrayAccessExpr) R
	FieldAccessExpr func(FieldAccessExpr) R
	ValueAtExpr     func(ValueAtExpr) R
	AddressOfExpr   func(AddressOfExpr) R
	SizeOfExpr      func(SizeOfExpr) R
	TypecastExpr    func(TypecastExpr) R
}

// VisitExpr pattern-matches e against the variant tag and calls the
// matching visitor function.
func VisitExpr[R any](e Expr, v ExprVisitor[R]) R {
	switch n := e.(type) {
	case IntLiteral:
		return v.IntLiteral(n)
	case ChrLiteral:
		return v.ChrLiteral(n)
	case StrLiteral:
		return v.StrLiteral(n)
	case VarExpr:
		return v.VarExpr(n)
	case FunCallExpr:
		return v.FunCallExpr(n)
	case BinOp:
		return v.BinOp(n)
	case ArrayAccessExpr:
		return v.ArrayAccessExpr(n)
	case FieldAccessExpr:
		return v.FieldAccessExpr(n)
	case ValueAtExpr:
		return v.ValueAtExpr(n)
	case AddressOfExpr:
		return v.AddressOfExpr(n)
	case SizeOfExpr:
		return v.SizeOfExpr(n)
	case TypecastExpr:
		return v.TypecastExpr(n)
	default:
		panic(fmt.Sprintf("ast: unhandled Expr variant %T", e))
	}
}

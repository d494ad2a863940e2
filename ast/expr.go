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

// Expr is the sum type of mini-C expressions. Every concrete expression
// type embeds Grouped, so IsGrouped() is available on all of them without
// each node family redeclaring the field.
type Expr interface {
	isExpr()
	IsGrouped() bool
}

// Grouped marks whether an expression was originally enclosed in
// parentheses at the top level. It exists solely to inhibit precedence
// rearrangement across a parenthesised group boundary in the (separate,
// currently-unimplemented) precedence-fixup pass; the parser itself builds
// a strictly left-folded tree and never consults this flag.
type Grouped struct {
	Group bool
}

// IsGrouped reports whether the expression was parenthesised in source.
func (g Grouped) IsGrouped() bool { return g.Group }

type (
	IntLiteral struct {
		Grouped
		Value int
	}
	ChrLiteral struct {
		Grouped
		Value byte
	}
	StrLiteral struct {
		Grouped
		Value string
	}
	VarExpr struct {
		Grouped
		Name string
	}
	FunCallExpr struct {
		Grouped
		Name string
		Args []Expr
	}
	BinOp struct {
		Grouped
		Lhs Expr
		Op  Op
		Rhs Expr
	}
	ArrayAccessExpr struct {
		Grouped
		Base  Expr
		Index Expr
	}
	FieldAccessExpr struct {
		Grouped
		Base Expr
		Name string
	}
	ValueAtExpr struct {
		Grouped
		Inner Expr
	}
	AddressOfExpr struct {
		Grouped
		Inner Expr
	}
	SizeOfExpr struct {
		Grouped
		Type Type
	}
	TypecastExpr struct {
		Grouped
		Type  Type
		Inner Expr
	}
)

func (IntLiteral) isExpr()      {}
func (ChrLiteral) isExpr()      {}
func (StrLiteral) isExpr()      {}
func (VarExpr) isExpr()         {}
func (FunCallExpr) isExpr()     {}
func (BinOp) isExpr()           {}
func (ArrayAccessExpr) isExpr() {}
func (FieldAccessExpr) isExpr() {}
func (ValueAtExpr) isExpr()     {}
func (AddressOfExpr) isExpr()   {}
func (SizeOfExpr) isExpr()      {}
func (TypecastExpr) isExpr()    {}

// MarkGrouped returns e with its Grouped flag set, used by the parser when
// it reduces the `LPAR exp RPAR` alternative of term. Expr values are
// stored by value inside the interface, so the flag cannot be flipped
// through the interface alone; this type switch rebuilds the same concrete
// node with Group set instead.
func MarkGrouped(e Expr) Expr {
	switch n := e.(type) {
	case IntLiteral:
		n.Group = true
		return n
	case ChrLiteral:
		n.Group = true
		return n
	case StrLiteral:
		n.Group = true
		return n
	case VarExpr:
		n.Group = true
		return n
	case FunCallExpr:
		n.Group = true
		return n
	case BinOp:
		n.Group = true
		return n
	case ArrayAccessExpr:
		n.Group = true
		return n
	case FieldAccessExpr:
		n.Group = true
		return n
	case ValueAtExpr:
		n.Group = true
		return n
	case AddressOfExpr:
		n.Group = true
		return n
	case SizeOfExpr:
		n.Group = true
		return n
	case TypecastExpr:
		n.Group = true
		return n
	default:
		return e
	}
}

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

// Package ast defines the mini-C abstract syntax tree: the tagged node
// families (types, declarations, statements, expressions) the parser
// builds and the pretty-printer/build-file synthesizer traverse.
//
// Each family is a closed sum type modelled as a Go interface with an
// unexported marker method, matched with a type switch by callers (see
// VisitType, VisitStmt and VisitExpr) rather than by runtime downcasts.
package ast

import "fmt"

// BaseKind enumerates the three scalar base types of mini-C.
type BaseKind int

const (
	KindInt BaseKind = iota
	KindChar
	KindVoid
)

func (k BaseKind) String() string {
	switch k {
	case KindInt:
		return "INT"
	case KindChar:
		return "CHAR"
	case KindVoid:
		return "VOID"
	default:
		return fmt.Sprintf("BaseKind(%d)", int(k))
	}
}

// Type is the sum type of syntactic mini-C types.
type Type interface {
	isType()
}

// BaseType is one of int, char, void.
type BaseType struct {
	Kind BaseKind
}

// PointerType is `T*`.
type PointerType struct {
	Elem Type
}

// StructType is `struct name`. Name may be empty for an anonymous struct,
// matching source that omits the identifier.
type StructType struct {
	Name string
}

// ArrayType is `T[n]`. Length is the verbatim integer literal from source;
// 0 when the source omits it (`T[]`).
type ArrayType struct {
	Elem   Type
	Length int
}

func (BaseType) isType()    {}
func (PointerType) isType() {}
func (StructType) isType()  {}
func (ArrayType) isType()   {}

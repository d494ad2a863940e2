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

import "github.com/Flpha0830/mini-compiler/lexer"

// VarDecl is a single scalar or array variable declaration.
type VarDecl struct {
	Type Type
	Name string
}

// StructTypeDecl declares a named or anonymous struct type and its fields,
// in source order.
type StructTypeDecl struct {
	Type   StructType
	Fields []VarDecl
}

// FunDecl declares a function: its return type, name, ordered parameters
// and body block.
type FunDecl struct {
	ReturnType Type
	Name       string
	Params     []VarDecl
	Body       Block
}

// Program is the root of the AST: the parsed translation unit, with
// structs, globals and functions preserved in the fixed order
// structs/globals/functions and in source order within each group.
type Program struct {
	Structs   []StructTypeDecl
	Globals   []VarDecl
	Functions []FunDecl
}

// Include is the path referenced by a `#include` directive recorded as a
// side-channel during parsing (see Parser.Includes); it carries no AST
// semantics of its own and is not part of Program.
type Include struct {
	Path     string
	Position lexer.Position
}

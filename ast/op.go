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

// Op is a binary operator appearing in a BinOp node.
type Op int

const (
	ADD Op = iota
	SUB
	MUL
	DIV
	MOD
	GT
	LT
	GE
	LE
	NE
	EQ
	OR
	AND
)

var opNames = [...]string{
	ADD: "ADD", SUB: "SUB", MUL: "MUL", DIV: "DIV", MOD: "MOD",
	GT: "GT", LT: "LT", GE: "GE", LE: "LE", NE: "NE", EQ: "EQ",
	OR: "OR", AND: "AND",
}

func (op Op) String() string { return opNames[op] }

// precedenceTable maps each Op to its binding strength for the (currently
// unused by the parser, see Precedence) fixup pass described in
// spec.md §4.3's "Expression building" note: lower binds tighter.
var precedenceTable = map[Op]int{
	MUL: 3, DIV: 3, MOD: 3,
	ADD: 4, SUB: 4,
	LT: 5, GT: 5, LE: 5, GE: 5,
	EQ: 6, NE: 6,
	AND: 7,
	OR:  8,
}

// Precedence returns op's binding strength for the deterministic
// precedence-fixup pass described in spec.md §9 (disabled in the source
// this specification was distilled from, and deliberately left as a
// separate, testable post-pass rather than folded into the parser itself).
func (op Op) Precedence() int { return precedenceTable[op] }

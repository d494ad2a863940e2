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

package lexer

import "fmt"

// Position identifies a single character in the source stream. Line is
// 1-based. Column tracks the column of the character most recently returned
// by Scanner.Advance: it is 0 before the first Advance, the first character
// of the input is column 1, and a newline moves to the next line at column 1.
type Position struct {
	Line   int
	Column int
}

// PositionInit is the position of a freshly constructed Scanner, before the
// first call to Advance.
var PositionInit = Position{Line: 1, Column: 0}

func (p Position) String() string {
	return fmt.Sprintf("%d: %d", p.Line, p.Column)
}

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

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScannerPeekIsIdempotent(t *testing.T) {
	sc := NewScanner(strings.NewReader("ab"))
	b1, err := sc.Peek()
	assert.NoError(t, err)
	b2, err := sc.Peek()
	assert.NoError(t, err)
	assert.Equal(t, b1, b2)
	assert.Equal(t, byte('a'), b1)
}

func TestScannerAdvanceTracksLineAndColumn(t *testing.T) {
	sc := NewScanner(strings.NewReader("ab\ncd"))
	assert.Equal(t, PositionInit, sc.Position())

	b, err := sc.Advance()
	assert.NoError(t, err)
	assert.Equal(t, byte('a'), b)
	assert.Equal(t, Position{Line: 1, Column: 1}, sc.Position())

	_, err = sc.Advance() // 'b'
	assert.NoError(t, err)
	assert.Equal(t, Position{Line: 1, Column: 2}, sc.Position())

	b, err = sc.Advance() // '\n'
	assert.NoError(t, err)
	assert.Equal(t, byte('\n'), b)
	assert.Equal(t, Position{Line: 2, Column: 1}, sc.Position())

	b, err = sc.Advance() // 'c'
	assert.NoError(t, err)
	assert.Equal(t, byte('c'), b)
	assert.Equal(t, Position{Line: 2, Column: 2}, sc.Position())
}

func TestScannerEndOfInput(t *testing.T) {
	sc := NewScanner(strings.NewReader(""))
	_, err := sc.Peek()
	assert.True(t, errors.Is(err, ErrEndOfInput))
	_, err = sc.Advance()
	assert.True(t, errors.Is(err, ErrEndOfInput))
}

func TestScannerStripsUTF8BOM(t *testing.T) {
	sc := NewScanner(strings.NewReader("﻿int"))
	b, err := sc.Peek()
	assert.NoError(t, err)
	assert.Equal(t, byte('i'), b)
}

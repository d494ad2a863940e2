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
	"bufio"
	"errors"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrEndOfInput is returned by Peek and Advance once the underlying stream is
// exhausted.
var ErrEndOfInput = errors.New("end of input")

// Scanner owns the input byte stream and exposes Peek/Advance with one
// character of buffered lookahead plus (line, column) bookkeeping. Input is
// read byte-wise and reinterpreted as ASCII; non-ASCII bytes are passed
// through untouched and are not required to tokenize.
type Scanner struct {
	r        *bufio.Reader
	lookhead *byte // one-byte buffered lookahead; nil when empty and not yet at EOF
	atEOF    bool  // true once the underlying reader has reported io.EOF
	pos      Position
}

// NewScanner wraps r with a byte-wise scanner. A leading UTF-8 byte-order
// mark, if present, is stripped transparently so it never surfaces as an
// unrecognised character during tokenization.
func NewScanner(r io.Reader) *Scanner {
	bomAware := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	return &Scanner{r: bufio.NewReader(bomAware), pos: PositionInit}
}

// fill ensures the one-byte lookahead buffer is populated, unless the stream
// is already known to be exhausted.
func (s *Scanner) fill() error {
	if s.lookhead != nil || s.atEOF {
		return nil
	}
	b, err := s.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.atEOF = true
			return nil
		}
		return err
	}
	s.lookhead = &b
	return nil
}

// Peek returns the next byte without consuming it. Repeated calls without an
// intervening Advance return the same byte.
func (s *Scanner) Peek() (byte, error) {
	if err := s.fill(); err != nil {
		return 0, err
	}
	if s.lookhead == nil {
		return 0, ErrEndOfInput
	}
	return *s.lookhead, nil
}

// Advance returns the next byte and consumes it, updating the current
// (line, column) position.
func (s *Scanner) Advance() (byte, error) {
	if err := s.fill(); err != nil {
		return 0, err
	}
	if s.lookhead == nil {
		return 0, ErrEndOfInput
	}
	b := *s.lookhead
	s.lookhead = nil

	if b == '\n' {
		s.pos.Line++
		s.pos.Column = 1
	} else {
		s.pos.Column++
	}
	return b, nil
}

// Line returns the line of the character most recently returned by Advance.
func (s *Scanner) Line() int { return s.pos.Line }

// Column returns the column of the character most recently returned by
// Advance.
func (s *Scanner) Column() int { return s.pos.Column }

// Position returns the (line, column) of the character most recently
// returned by Advance.
func (s *Scanner) Position() Position { return s.pos }

// PeekPosition returns the (line, column) the buffered lookahead byte will
// occupy once it is consumed by Advance, without consuming it. Callers use
// this to stamp a token with the position of its first character before
// that character has actually been advanced over.
func (s *Scanner) PeekPosition() (Position, error) {
	if err := s.fill(); err != nil {
		return Position{}, err
	}
	if s.lookhead == nil {
		return Position{}, ErrEndOfInput
	}
	if *s.lookhead == '\n' {
		return Position{Line: s.pos.Line + 1, Column: 1}, nil
	}
	return Position{Line: s.pos.Line, Column: s.pos.Column + 1}, nil
}

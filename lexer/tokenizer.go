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

// Package lexer provides a byte-wise scanner and a tokenizer for mini-C
// source code. The tokenizer pulls characters from the Scanner one at a
// time and produces a lazy sequence of Tokens: it has no knowledge of the
// grammar above the token level, that belongs to the parser.
package lexer

import (
	"errors"
	"fmt"
	"strings"
)

// FatalIOError wraps a Scanner error other than end-of-input. The tokenizer
// itself never terminates the process; cmd/minicc is the only place
// permitted to treat this as a hard failure.
type FatalIOError struct{ Err error }

func (e *FatalIOError) Error() string { return fmt.Sprintf("lexer: fatal I/O error: %v", e.Err) }
func (e *FatalIOError) Unwrap() error  { return e.Err }

// escapeLiteral maps a two-character character-literal body to its decoded
// single-character value. `\b` and `\f` are deliberately absent: per the
// preserved quirk, those two bodies are kept verbatim as their raw
// two-character spelling rather than decoded (see scanChar).
var escapeLiteral = map[string]byte{
	`\t`: '\t',
	`\n`: '\n',
	`\r`: '\r',
	`\'`: '\'',
	`\"`: '"',
	`\\`: '\\',
	`\0`: 0,
}

// verbatimEscapes are character-literal bodies kept as their literal
// two-character spelling instead of being decoded, matching the source's
// intentional choice that this specification preserves verbatim.
var verbatimEscapes = map[string]bool{`\b`: true, `\f`: true}

var singlePunct = map[byte]Kind{
	'{': LBRA, '}': RBRA,
	'(': LPAR, ')': RPAR,
	'[': LSBR, ']': RSBR,
	';': SC, ',': COMMA, '.': DOT,
	'+': PLUS, '-': MINUS, '*': ASTERIX, '/': DIV, '%': REM,
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlphaNumeric(b byte) bool { return isAlpha(b) || isDigit(b) }

// Tokenizer turns a byte Scanner into a stream of Tokens.
type Tokenizer struct {
	sc          *Scanner
	diagnostics []Diagnostic
}

// NewTokenizer constructs a Tokenizer reading from sc.
func NewTokenizer(sc *Scanner) *Tokenizer {
	return &Tokenizer{sc: sc}
}

// ErrorCount returns the number of lexical errors observed so far.
func (t *Tokenizer) ErrorCount() int { return len(t.diagnostics) }

// Diagnostics returns every lexical error reported so far, in the order
// they were encountered.
func (t *Tokenizer) Diagnostics() []Diagnostic { return t.diagnostics }

func (t *Tokenizer) reportError(pos Position, format string, args ...any) {
	t.diagnostics = append(t.diagnostics, Diagnostic{
		Severity: Lexical,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	})
}

// checkIOError wraps a scanner error other than end-of-input in a
// *FatalIOError and returns nil for no error or end-of-input. It never
// terminates the process; cmd/minicc treats the returned error as fatal.
func checkIOError(err error) error {
	if err == nil || errors.Is(err, ErrEndOfInput) {
		return nil
	}
	return &FatalIOError{Err: err}
}

// NextToken returns the next token from the underlying scanner. After the
// final real token every further call returns EOF at the same position.
func (t *Tokenizer) NextToken() (Token, error) {
	for {
		b, err := t.sc.Peek()
		if err != nil {
			if errors.Is(err, ErrEndOfInput) {
				return TokenEOF(t.sc.Position()), nil
			}
			return Token{}, checkIOError(err)
		}

		if isWhitespace(b) {
			if _, err := t.sc.Advance(); err != nil {
				return Token{}, checkIOError(err)
			}
			continue
		}

		if b == '/' {
			tok, err := t.skipCommentOrDivide()
			if err != nil {
				return Token{}, err
			}
			if tok != nil {
				return *tok, nil
			}
			continue
		}

		return t.scanToken()
	}
}

// skipCommentOrDivide consumes a '/' and decides whether it starts a
// single-line comment, a block comment, or is the DIV operator. A nil
// *Token means a comment was skipped and the caller should resume scanning
// from whatever follows it.
func (t *Tokenizer) skipCommentOrDivide() (*Token, error) {
	start, perr := t.sc.PeekPosition()
	if perr != nil {
		return nil, checkIOError(perr)
	}
	if _, aerr := t.sc.Advance(); aerr != nil {
		return nil, checkIOError(aerr)
	}
	next, perr := t.sc.Peek()
	switch {
	case perr == nil && next == '/':
		for {
			c, e := t.sc.Peek()
			if e != nil || c == '\n' {
				break
			}
			if _, e := t.sc.Advance(); e != nil {
				return nil, checkIOError(e)
			}
		}
		return nil, nil
	case perr == nil && next == '*':
		if _, e := t.sc.Advance(); e != nil { // consume '*'
			return nil, checkIOError(e)
		}
		for {
			c, e := t.sc.Peek()
			if e != nil {
				if errors.Is(e, ErrEndOfInput) {
					return nil, nil // unterminated: treat as consumed, no token
				}
				return nil, checkIOError(e)
			}
			if _, e := t.sc.Advance(); e != nil {
				return nil, checkIOError(e)
			}
			if c == '*' {
				c2, e2 := t.sc.Peek()
				if e2 == nil && c2 == '/' {
					if _, e := t.sc.Advance(); e != nil {
						return nil, checkIOError(e)
					}
					break
				}
			}
		}
		return nil, nil
	default:
		return &Token{Kind: DIV, Position: start}, nil
	}
}

// scanToken dispatches to the single/double-char operator, literal,
// identifier/keyword, or #include recognisers for the character currently
// peeked from the scanner.
func (t *Tokenizer) scanToken() (Token, error) {
	pos, err := t.sc.PeekPosition()
	if err != nil {
		return Token{}, checkIOError(err)
	}
	b, err := t.sc.Peek()
	if err != nil {
		return Token{}, checkIOError(err)
	}

	if kind, ok := singlePunct[b]; ok {
		if _, e := t.sc.Advance(); e != nil {
			return Token{}, checkIOError(e)
		}
		return Token{Kind: kind, Position: pos}, nil
	}

	switch {
	case b == '&' || b == '=' || b == '<' || b == '>' || b == '!' || b == '|':
		return t.scanOperator(pos)

	case isDigit(b):
		return t.scanInt(pos)

	case b == '\'':
		return t.scanChar(pos)

	case b == '"':
		return t.scanString(pos)

	case isAlpha(b):
		return t.scanWord(pos)

	case b == '#':
		return t.scanInclude(pos)

	default:
		if _, e := t.sc.Advance(); e != nil {
			return Token{}, checkIOError(e)
		}
		t.reportError(pos, "unrecognised character (%c)", b)
		return Token{Kind: INVALID, Position: pos}, nil
	}
}

// scanOperator handles the two-character operators &&, ==, ||, !=, <=, >=,
// falling back to their single-character counterparts &, =, <, > when the
// second character does not match. '|' has no single-character meaning in
// mini-C, so a lone '|' is reported as an error.
func (t *Tokenizer) scanOperator(pos Position) (Token, error) {
	first, err := t.sc.Advance()
	if err != nil {
		return Token{}, checkIOError(err)
	}

	twoCharKind := map[byte]Kind{'&': LOGAND, '=': EQ, '|': LOGOR, '!': NE, '<': LE, '>': GE}
	next, hasNext, err := peekOnly(t.sc)
	if err != nil {
		return Token{}, err
	}
	if hasNext && next == '=' && (first == '=' || first == '!' || first == '<' || first == '>') {
		if _, e := t.sc.Advance(); e != nil {
			return Token{}, checkIOError(e)
		}
		return Token{Kind: twoCharKind[first], Position: pos}, nil
	}
	if hasNext && next == first && (first == '&' || first == '|') {
		if _, e := t.sc.Advance(); e != nil {
			return Token{}, checkIOError(e)
		}
		return Token{Kind: twoCharKind[first], Position: pos}, nil
	}

	singleCharKind := map[byte]Kind{'&': AND, '=': ASSIGN, '<': LT, '>': GT}
	if kind, ok := singleCharKind[first]; ok {
		return Token{Kind: kind, Position: pos}, nil
	}
	t.reportError(pos, "unrecognised character (%c)", first)
	return Token{Kind: INVALID, Position: pos}, nil
}

func peekOnly(sc *Scanner) (byte, bool, error) {
	b, err := sc.Peek()
	if err != nil {
		if errors.Is(err, ErrEndOfInput) {
			return 0, false, nil
		}
		return 0, false, checkIOError(err)
	}
	return b, true, nil
}

func (t *Tokenizer) scanInt(pos Position) (Token, error) {
	var sb strings.Builder
	for {
		b, has, err := peekOnly(t.sc)
		if err != nil {
			return Token{}, err
		}
		if !has || !isDigit(b) {
			break
		}
		if _, e := t.sc.Advance(); e != nil {
			return Token{}, checkIOError(e)
		}
		sb.WriteByte(b)
	}
	return Token{Kind: INTLITERAL, Lexeme: sb.String(), Position: pos}, nil
}

func (t *Tokenizer) scanWord(pos Position) (Token, error) {
	var sb strings.Builder
	for {
		b, has, err := peekOnly(t.sc)
		if err != nil {
			return Token{}, err
		}
		if !has || !isAlphaNumeric(b) {
			break
		}
		if _, e := t.sc.Advance(); e != nil {
			return Token{}, checkIOError(e)
		}
		sb.WriteByte(b)
	}
	word := sb.String()
	if kind, ok := keywords[word]; ok {
		return Token{Kind: kind, Position: pos}, nil
	}
	return Token{Kind: IDENTIFIER, Lexeme: word, Position: pos}, nil
}

// scanChar scans a character literal, starting at the opening quote.
func (t *Tokenizer) scanChar(pos Position) (Token, error) {
	if _, e := t.sc.Advance(); e != nil { // consume opening '
		return Token{}, checkIOError(e)
	}

	var body strings.Builder
	for {
		b, has, err := peekOnly(t.sc)
		if err != nil {
			return Token{}, err
		}
		if !has {
			t.reportError(pos, "unterminated character literal")
			return Token{Kind: INVALID, Position: pos}, nil
		}
		if b == '\'' && body.String() != `\` {
			if _, e := t.sc.Advance(); e != nil { // consume closing '
				return Token{}, checkIOError(e)
			}
			break
		}
		if _, e := t.sc.Advance(); e != nil {
			return Token{}, checkIOError(e)
		}
		body.WriteByte(b)
	}

	raw := body.String()
	switch {
	case raw == "":
		t.reportError(pos, "empty character literal")
		return Token{Kind: INVALID, Position: pos}, nil
	case len(raw) == 1:
		return Token{Kind: CHARLITERAL, Lexeme: raw, Position: pos}, nil
	case verbatimEscapes[raw]:
		return Token{Kind: CHARLITERAL, Lexeme: raw, Position: pos}, nil
	default:
		if v, ok := escapeLiteral[raw]; ok {
			return Token{Kind: CHARLITERAL, Lexeme: string(v), Position: pos}, nil
		}
		t.reportError(pos, "malformed character literal '%s'", raw)
		return Token{Kind: INVALID, Position: pos}, nil
	}
}

func (t *Tokenizer) scanString(pos Position) (Token, error) {
	if _, e := t.sc.Advance(); e != nil { // consume opening "
		return Token{}, checkIOError(e)
	}
	var sb strings.Builder
	for {
		b, has, err := peekOnly(t.sc)
		if err != nil {
			return Token{}, err
		}
		if !has {
			t.reportError(pos, "unterminated string literal")
			return Token{Kind: INVALID, Position: pos}, nil
		}
		if _, e := t.sc.Advance(); e != nil {
			return Token{}, checkIOError(e)
		}
		if b == '"' {
			break
		}
		sb.WriteByte(b)
	}
	return Token{Kind: STRINGLITERAL, Lexeme: sb.String(), Position: pos}, nil
}

// scanInclude recognises a bare #include directive. No other '#...'
// sequence is understood at the lexer level.
func (t *Tokenizer) scanInclude(pos Position) (Token, error) {
	if _, e := t.sc.Advance(); e != nil { // consume '#'
		return Token{}, checkIOError(e)
	}
	const keyword = "include"
	var matched strings.Builder
	for i := 0; i < len(keyword); i++ {
		b, has, err := peekOnly(t.sc)
		if err != nil {
			return Token{}, err
		}
		if !has || b != keyword[i] {
			t.reportError(pos, "malformed preprocessor directive '#%s'", matched.String())
			return Token{Kind: INVALID, Position: pos}, nil
		}
		if _, e := t.sc.Advance(); e != nil {
			return Token{}, checkIOError(e)
		}
		matched.WriteByte(b)
	}
	return Token{Kind: INCLUDE, Lexeme: keyword, Position: pos}, nil
}

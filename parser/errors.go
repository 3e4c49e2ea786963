// Copyright 2024 The Quill Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"fmt"

	"github.com/kralicky/quill/lexer"
	"github.com/kralicky/quill/token"
)

// Error is the sealed interface implemented by every parse-time error.
// It is kept sealed (via the unexported isParseError method) the same
// way the teacher's ParseError / ExtendedSyntaxError interfaces are
// sealed to implementations declared in this package.
type Error interface {
	error
	// Offset returns the byte offset at which the error was detected.
	Offset() int
	isParseError()
}

// UnexpectedTokenError reports a token the grammar did not expect at
// this point, together with a human-readable description of what was
// expected instead.
type UnexpectedTokenError struct {
	At       int
	Got      token.Kind
	Expected string
}

func (*UnexpectedTokenError) isParseError() {}

func (e *UnexpectedTokenError) Offset() int { return e.At }

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token %s at offset %d, expected %s", e.Got, e.At, e.Expected)
}

// UnexpectedEOFError reports that input ended where more tokens were
// required.
type UnexpectedEOFError struct {
	At int
}

func (*UnexpectedEOFError) isParseError() {}

func (e *UnexpectedEOFError) Offset() int { return e.At }

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected end of input at offset %d", e.At)
}

// LexError wraps a lexical failure reported by package lexer.
type LexError struct {
	At   int
	Kind lexer.ErrorKind
}

func (*LexError) isParseError() {}

func (e *LexError) Offset() int { return e.At }

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error (%s) at offset %d", e.Kind, e.At)
}

var (
	_ Error = (*UnexpectedTokenError)(nil)
	_ Error = (*UnexpectedEOFError)(nil)
	_ Error = (*LexError)(nil)
)

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

// Package parser implements the recursive-descent grammar for kinds,
// types, and expressions described by the front end's surface syntax:
// it turns a token.Token stream from package lexer into an ast tree.
//
// The grammar is hand-written rather than generated: application,
// function arrows, and pairs share punctuation-like structure, so each
// production is implemented as one function per precedence tier, from
// the loosest-binding (pair) down to atoms, following the precedence
// climbing style common to hand-rolled recursive-descent parsers.
package parser

import (
	"github.com/kralicky/quill/ast"
	"github.com/kralicky/quill/lexer"
	"github.com/kralicky/quill/reporter"
	"github.com/kralicky/quill/token"
)

// parser holds a one-token lookahead buffer over a Lexer. Once a lex
// error is encountered it is latched in h and returned by every
// subsequent call, matching the front end's first-failure-aborts rule.
type parser struct {
	lex  *lexer.Lexer
	tok  token.Token
	init bool
	h    *reporter.Handler
}

func newParser(src string) *parser {
	return &parser{lex: lexer.New(src), h: reporter.NewHandler()}
}

// latched returns the parser's first reported error, if any, recovered
// from the underlying reporter.Handler.
func (p *parser) latched() Error {
	pos := p.h.Error()
	if pos == nil {
		return nil
	}
	return pos.Unwrap().(Error)
}

// fail latches err via the handler and returns it, so that every future
// peek/advance call sees the same error instead of re-deriving it.
func (p *parser) fail(err Error) Error {
	p.h.HandleError(reporter.Error(err.Offset(), err))
	return err
}

// peek returns the current lookahead token, lexing it on first use.
func (p *parser) peek() (token.Token, Error) {
	if err := p.latched(); err != nil {
		return token.Token{}, err
	}
	if !p.init {
		p.init = true
		tok, lexErr := p.lex.Next()
		if lexErr != nil {
			return token.Token{}, p.fail(&LexError{At: lexErr.Offset, Kind: lexErr.Kind})
		}
		p.tok = tok
	}
	return p.tok, nil
}

// advance consumes and returns the current lookahead token, then lexes
// the next one into the buffer.
func (p *parser) advance() (token.Token, Error) {
	cur, err := p.peek()
	if err != nil {
		return token.Token{}, err
	}
	tok, lexErr := p.lex.Next()
	if lexErr != nil {
		return token.Token{}, p.fail(&LexError{At: lexErr.Offset, Kind: lexErr.Kind})
	}
	p.tok = tok
	return cur, nil
}

// expect consumes the lookahead token if it has the given kind, else
// reports an UnexpectedTokenError (or UnexpectedEOFError at end of
// input).
func (p *parser) expect(k token.Kind, what string) (token.Token, Error) {
	tok, err := p.peek()
	if err != nil {
		return token.Token{}, err
	}
	if tok.Kind == token.EOF {
		return token.Token{}, &UnexpectedEOFError{At: int(tok.Start)}
	}
	if tok.Kind != k {
		return token.Token{}, &UnexpectedTokenError{At: int(tok.Start), Got: tok.Kind, Expected: what}
	}
	return p.advance()
}

func (p *parser) at(k token.Kind) bool {
	tok, err := p.peek()
	return err == nil && tok.Kind == k
}

// finish verifies that all input has been consumed, surfacing any
// latched lex error first. It is called once, at the very end of each
// of the four top-level entry points.
func (p *parser) finish() Error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind != token.EOF {
		return &UnexpectedTokenError{At: int(tok.Start), Got: tok.Kind, Expected: "end of input"}
	}
	return nil
}

func span(start, end token.Pos) ast.Span {
	return ast.Span{Start: start, End: end}
}

// ---- Ident ----

func (p *parser) parseIdent() (ast.Ident, Error) {
	tok, err := p.peek()
	if err != nil {
		return ast.Ident{}, err
	}
	if tok.Kind != token.RawName && tok.Kind != token.QuotedName {
		if tok.Kind == token.EOF {
			return ast.Ident{}, &UnexpectedEOFError{At: int(tok.Start)}
		}
		return ast.Ident{}, &UnexpectedTokenError{At: int(tok.Start), Got: tok.Kind, Expected: "identifier"}
	}
	nameTok, err := p.advance()
	if err != nil {
		return ast.Ident{}, err
	}
	id := ast.Ident{Name: nameTok.Text, Span: span(nameTok.Start, nameTok.End)}
	if p.at(token.Hash) {
		if _, err := p.advance(); err != nil {
			return ast.Ident{}, err
		}
		intTok, err := p.expect(token.Integer, "integer collision tag")
		if err != nil {
			return ast.Ident{}, err
		}
		id.CollisionID = intTok.Int
		id.Span.End = intTok.End
	}
	return id, nil
}

// ParseIdent parses a single ident, the `parse_ident` entry point.
func ParseIdent(src string) (ast.Ident, Error) {
	p := newParser(src)
	id, err := p.parseIdent()
	if err != nil {
		return ast.Ident{}, err
	}
	if ferr := p.finish(); ferr != nil {
		return ast.Ident{}, ferr
	}
	return id, nil
}

// ---- Kind ----

func (p *parser) parseKind() (ast.Kind, Error) {
	tok, err := p.peek()
	if err != nil {
		return ast.Kind{}, err
	}
	switch tok.Kind {
	case token.Star:
		p.advance()
		return ast.Kind{Tag: ast.KindType, Span: span(tok.Start, tok.End)}, nil
	case token.KwPlace:
		p.advance()
		return ast.Kind{Tag: ast.KindPlace, Span: span(tok.Start, tok.End)}, nil
	case token.KwVersion:
		p.advance()
		return ast.Kind{Tag: ast.KindVersion, Span: span(tok.Start, tok.End)}, nil
	case token.LParen:
		return p.parseKindParenOrCtor()
	case token.EOF:
		return ast.Kind{}, &UnexpectedEOFError{At: int(tok.Start)}
	default:
		return ast.Kind{}, &UnexpectedTokenError{At: int(tok.Start), Got: tok.Kind, Expected: "kind"}
	}
}

func (p *parser) parseKindParenOrCtor() (ast.Kind, Error) {
	open, err := p.expect(token.LParen, "(")
	if err != nil {
		return ast.Kind{}, err
	}
	var params []ast.Kind
	if !p.at(token.RParen) {
		first, err := p.parseKind()
		if err != nil {
			return ast.Kind{}, err
		}
		params = append(params, first)
		for p.at(token.Semi) {
			p.advance()
			if p.at(token.RParen) {
				break // trailing ';'
			}
			next, err := p.parseKind()
			if err != nil {
				return ast.Kind{}, err
			}
			params = append(params, next)
		}
	}
	if _, err := p.expect(token.RParen, ")"); err != nil {
		return ast.Kind{}, err
	}
	if p.at(token.Arrow) {
		p.advance()
		if len(params) == 0 {
			tok, _ := p.peek()
			return ast.Kind{}, &UnexpectedTokenError{At: int(tok.Start), Got: tok.Kind, Expected: "at least one constructor parameter kind"}
		}
		result, err := p.parseKind()
		if err != nil {
			return ast.Kind{}, err
		}
		return ast.Kind{
			Tag:    ast.KindConstructor,
			Params: params,
			Result: &result,
			Span:   span(open.Start, result.Span.End),
		}, nil
	}
	if len(params) != 1 {
		return ast.Kind{}, &UnexpectedTokenError{At: int(open.Start), Got: token.LParen, Expected: "a single grouped kind"}
	}
	return params[0], nil
}

// ParseKind parses a single kind, the `parse_kind` entry point.
func ParseKind(src string) (ast.Kind, Error) {
	p := newParser(src)
	k, err := p.parseKind()
	if err != nil {
		return ast.Kind{}, err
	}
	if ferr := p.finish(); ferr != nil {
		return ast.Kind{}, ferr
	}
	return k, nil
}

func (p *parser) parseTypeParam() (ast.TypeParam, Error) {
	id, err := p.parseIdent()
	if err != nil {
		return ast.TypeParam{}, err
	}
	if _, err := p.expect(token.Colon, ":"); err != nil {
		return ast.TypeParam{}, err
	}
	k, err := p.parseKind()
	if err != nil {
		return ast.TypeParam{}, err
	}
	return ast.TypeParam{Ident: id, Kind: k}, nil
}

// parseTypeParamList parses a `;`-separated, optionally trailing-`;`
// list of TypeParam up to (but not consuming) the closing token.
func (p *parser) parseTypeParamList(closing token.Kind) ([]ast.TypeParam, Error) {
	var params []ast.TypeParam
	if p.at(closing) {
		return params, nil
	}
	first, err := p.parseTypeParam()
	if err != nil {
		return nil, err
	}
	params = append(params, first)
	for p.at(token.Semi) {
		p.advance()
		if p.at(closing) {
			break
		}
		next, err := p.parseTypeParam()
		if err != nil {
			return nil, err
		}
		params = append(params, next)
	}
	return params, nil
}

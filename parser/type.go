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
	"github.com/kralicky/quill/ast"
	"github.com/kralicky/quill/token"
)

// canStartType reports whether tok can begin a type at the Arrow tier
// or below; used to detect a trailing separator versus a genuine next
// pair element.
func canStartType(k token.Kind) bool {
	switch k {
	case token.LParen, token.RawName, token.QuotedName, token.KwExists, token.KwForAll:
		return true
	}
	return false
}

// parseType is the lowest-precedence type production (Pair).
func (p *parser) parseType() (ast.Type, Error) {
	first, err := p.parseTypeArrow()
	if err != nil {
		return ast.Type{}, err
	}
	if !p.at(token.Comma) {
		return first, nil
	}
	elems := []ast.Type{first}
	for p.at(token.Comma) {
		p.advance()
		tok, perr := p.peek()
		if perr != nil {
			return ast.Type{}, perr
		}
		if !canStartType(tok.Kind) {
			break // trailing ','
		}
		next, err := p.parseTypeArrow()
		if err != nil {
			return ast.Type{}, err
		}
		elems = append(elems, next)
	}
	return foldRightTypePair(elems), nil
}

func foldRightTypePair(elems []ast.Type) ast.Type {
	result := elems[len(elems)-1]
	for i := len(elems) - 2; i >= 0; i-- {
		l, r := elems[i], result
		result = ast.Type{
			Tag:       ast.TypePair,
			PairLeft:  &l,
			PairRight: &r,
			Span:      span(l.Span.Start, r.Span.End),
		}
	}
	return result
}

// parseTypeArrow handles the Arrow tier, including the `forall {...}`
// prefix that fills Func.FuncParams.
func (p *parser) parseTypeArrow() (ast.Type, Error) {
	tok, err := p.peek()
	if err != nil {
		return ast.Type{}, err
	}
	if tok.Kind == token.KwForAll {
		p.advance()
		if _, err := p.expect(token.LBrace, "{"); err != nil {
			return ast.Type{}, err
		}
		params, err := p.parseTypeParamList(token.RBrace)
		if err != nil {
			return ast.Type{}, err
		}
		if _, err := p.expect(token.RBrace, "}"); err != nil {
			return ast.Type{}, err
		}
		arg, err := p.parseTypeQuantifier()
		if err != nil {
			return ast.Type{}, err
		}
		if _, err := p.expect(token.Arrow, "->"); err != nil {
			return ast.Type{}, err
		}
		ret, err := p.parseTypeArrow()
		if err != nil {
			return ast.Type{}, err
		}
		return ast.Type{
			Tag:        ast.TypeFunc,
			FuncParams: params,
			FuncArg:    &arg,
			FuncRet:    &ret,
			Span:       span(tok.Start, ret.Span.End),
		}, nil
	}

	lhs, err := p.parseTypeQuantifier()
	if err != nil {
		return ast.Type{}, err
	}
	if !p.at(token.Arrow) {
		return lhs, nil
	}
	p.advance()
	ret, err := p.parseTypeArrow()
	if err != nil {
		return ast.Type{}, err
	}
	return ast.Type{
		Tag:     ast.TypeFunc,
		FuncArg: &lhs,
		FuncRet: &ret,
		Span:    span(lhs.Span.Start, ret.Span.End),
	}, nil
}

// parseTypeQuantifier handles `exists {P} B`, nesting for multiple
// binders.
func (p *parser) parseTypeQuantifier() (ast.Type, Error) {
	tok, err := p.peek()
	if err != nil {
		return ast.Type{}, err
	}
	if tok.Kind != token.KwExists {
		return p.parseTypeApp()
	}
	p.advance()
	if _, err := p.expect(token.LBrace, "{"); err != nil {
		return ast.Type{}, err
	}
	param, err := p.parseTypeParam()
	if err != nil {
		return ast.Type{}, err
	}
	if _, err := p.expect(token.RBrace, "}"); err != nil {
		return ast.Type{}, err
	}
	body, err := p.parseTypeQuantifier()
	if err != nil {
		return ast.Type{}, err
	}
	return ast.Type{
		Tag:        ast.TypeQuantified,
		Quantifier: ast.Exists,
		QParam:     &param,
		QBody:      &body,
		Span:       span(tok.Start, body.Span.End),
	}, nil
}

// parseTypeApp handles left-associative application `C(A1; ...; An)`.
func (p *parser) parseTypeApp() (ast.Type, Error) {
	result, err := p.parseTypeAtom()
	if err != nil {
		return ast.Type{}, err
	}
	for p.at(token.LParen) {
		if _, err := p.advance(); err != nil {
			return ast.Type{}, err
		}
		first, err := p.parseType()
		if err != nil {
			return ast.Type{}, err
		}
		args := []ast.Type{first}
		for p.at(token.Semi) {
			p.advance()
			if p.at(token.RParen) {
				break
			}
			next, err := p.parseType()
			if err != nil {
				return ast.Type{}, err
			}
			args = append(args, next)
		}
		closeTok, err := p.expect(token.RParen, ")")
		if err != nil {
			return ast.Type{}, err
		}
		for _, a := range args {
			ctor := result
			arg := a
			result = ast.Type{
				Tag:      ast.TypeApp,
				AppCtor:  &ctor,
				AppParam: &arg,
				Span:     span(ctor.Span.Start, closeTok.End),
			}
		}
	}
	return result, nil
}

// parseTypeAtom handles `()`, `(T)`, and bare identifiers.
func (p *parser) parseTypeAtom() (ast.Type, Error) {
	tok, err := p.peek()
	if err != nil {
		return ast.Type{}, err
	}
	switch tok.Kind {
	case token.LParen:
		p.advance()
		if p.at(token.RParen) {
			closeTok, err := p.advance()
			if err != nil {
				return ast.Type{}, err
			}
			return ast.Type{Tag: ast.TypeUnit, Span: span(tok.Start, closeTok.End)}, nil
		}
		inner, err := p.parseType()
		if err != nil {
			return ast.Type{}, err
		}
		closeTok, err := p.expect(token.RParen, ")")
		if err != nil {
			return ast.Type{}, err
		}
		inner.Span = span(tok.Start, closeTok.End)
		return inner, nil
	case token.RawName, token.QuotedName:
		id, err := p.parseIdent()
		if err != nil {
			return ast.Type{}, err
		}
		return ast.Type{Tag: ast.TypeVar, Var: id, Span: id.Span}, nil
	case token.EOF:
		return ast.Type{}, &UnexpectedEOFError{At: int(tok.Start)}
	default:
		return ast.Type{}, &UnexpectedTokenError{At: int(tok.Start), Got: tok.Kind, Expected: "type"}
	}
}

// ParseType parses a single type, the `parse_type` entry point.
func ParseType(src string) (ast.Type, Error) {
	p := newParser(src)
	t, err := p.parseType()
	if err != nil {
		return ast.Type{}, err
	}
	if ferr := p.finish(); ferr != nil {
		return ast.Type{}, ferr
	}
	return t, nil
}

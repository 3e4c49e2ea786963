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

// canStartExpr reports whether tok can begin an expression unit; used
// to detect a trailing separator versus a genuine next pair element.
func canStartExpr(k token.Kind) bool {
	switch k {
	case token.LParen, token.RawName, token.QuotedName, token.KwMove,
		token.KwLet, token.KwLetExists, token.KwMakeExists, token.KwFunc:
		return true
	}
	return false
}

// ParseExpr parses a single expression, the `parse_expr` entry point.
func ParseExpr(src string) (ast.Expr, Error) {
	p := newParser(src)
	e, err := p.parseExpr()
	if err != nil {
		return ast.Expr{}, err
	}
	if ferr := p.finish(); ferr != nil {
		return ast.Expr{}, ferr
	}
	return e, nil
}

// parseExpr is the lowest-precedence production (Pair). It is also
// what every "full expression" slot (let-bodies, values, make_exists
// bodies) recurses into, so a let-expression that appears as the last
// element of a pair list absorbs everything to its right as its body.
func (p *parser) parseExpr() (ast.Expr, Error) {
	first, err := p.parseExprUnit()
	if err != nil {
		return ast.Expr{}, err
	}
	if !p.at(token.Comma) {
		return first, nil
	}
	elems := []ast.Expr{first}
	for p.at(token.Comma) {
		p.advance()
		tok, perr := p.peek()
		if perr != nil {
			return ast.Expr{}, perr
		}
		if !canStartExpr(tok.Kind) {
			break // trailing ','
		}
		next, err := p.parseExprUnit()
		if err != nil {
			return ast.Expr{}, err
		}
		elems = append(elems, next)
	}
	return foldRightExprPair(elems), nil
}

func foldRightExprPair(elems []ast.Expr) ast.Expr {
	result := elems[len(elems)-1]
	for i := len(elems) - 2; i >= 0; i-- {
		l, r := elems[i], result
		result = ast.Expr{
			Tag:       ast.ExprPair,
			PairLeft:  &l,
			PairRight: &r,
			Span:      span(l.Span.Start, r.Span.End),
		}
	}
	return result
}

// parseExprUnit dispatches to the let-forms and func literal, which
// each end by parsing a full `in`/`of`/body expression via parseExpr,
// or falls through to application/move/atoms.
func (p *parser) parseExprUnit() (ast.Expr, Error) {
	tok, err := p.peek()
	if err != nil {
		return ast.Expr{}, err
	}
	switch tok.Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwLetExists:
		return p.parseLetExists()
	case token.KwMakeExists:
		return p.parseMakeExists()
	case token.KwFunc:
		return p.parseFunc()
	default:
		return p.parseExprApp()
	}
}

func (p *parser) parseLet() (ast.Expr, Error) {
	start, err := p.expect(token.KwLet, "let")
	if err != nil {
		return ast.Expr{}, err
	}
	names, err := p.parseIdentCommaList(token.Equals)
	if err != nil {
		return ast.Expr{}, err
	}
	if len(names) == 0 {
		return ast.Expr{}, &UnexpectedTokenError{At: int(start.End), Got: token.Equals, Expected: "at least one name"}
	}
	if _, err := p.expect(token.Equals, "="); err != nil {
		return ast.Expr{}, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return ast.Expr{}, err
	}
	if _, err := p.expect(token.KwIn, "in"); err != nil {
		return ast.Expr{}, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return ast.Expr{}, err
	}
	return ast.Expr{
		Tag:      ast.ExprLet,
		LetNames: names,
		LetVal:   &val,
		LetBody:  &body,
		Span:     span(start.Start, body.Span.End),
	}, nil
}

func (p *parser) parseLetExists() (ast.Expr, Error) {
	start, err := p.expect(token.KwLetExists, "let_exists")
	if err != nil {
		return ast.Expr{}, err
	}
	if _, err := p.expect(token.LBrace, "{"); err != nil {
		return ast.Expr{}, err
	}
	typeNames, err := p.parseIdentSemiList(token.RBrace)
	if err != nil {
		return ast.Expr{}, err
	}
	if len(typeNames) == 0 {
		tok, _ := p.peek()
		return ast.Expr{}, &UnexpectedTokenError{At: int(tok.Start), Got: tok.Kind, Expected: "at least one type name"}
	}
	if _, err := p.expect(token.RBrace, "}"); err != nil {
		return ast.Expr{}, err
	}
	valName, err := p.parseIdent()
	if err != nil {
		return ast.Expr{}, err
	}
	if _, err := p.expect(token.Equals, "="); err != nil {
		return ast.Expr{}, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return ast.Expr{}, err
	}
	if _, err := p.expect(token.KwIn, "in"); err != nil {
		return ast.Expr{}, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return ast.Expr{}, err
	}
	return ast.Expr{
		Tag:                ast.ExprLetExists,
		LetExistsTypeNames: typeNames,
		LetExistsValName:   valName,
		LetExistsVal:       &val,
		LetExistsBody:      &body,
		Span:               span(start.Start, body.Span.End),
	}, nil
}

func (p *parser) parseMakeExists() (ast.Expr, Error) {
	start, err := p.expect(token.KwMakeExists, "make_exists")
	if err != nil {
		return ast.Expr{}, err
	}
	if _, err := p.expect(token.LBrace, "{"); err != nil {
		return ast.Expr{}, err
	}
	params, err := p.parseMakeExistsParamList()
	if err != nil {
		return ast.Expr{}, err
	}
	if len(params) == 0 {
		tok, _ := p.peek()
		return ast.Expr{}, &UnexpectedTokenError{At: int(tok.Start), Got: tok.Kind, Expected: "at least one witness parameter"}
	}
	if _, err := p.expect(token.RBrace, "}"); err != nil {
		return ast.Expr{}, err
	}
	typeBody, err := p.parseType()
	if err != nil {
		return ast.Expr{}, err
	}
	if _, err := p.expect(token.KwOf, "of"); err != nil {
		return ast.Expr{}, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return ast.Expr{}, err
	}
	return ast.Expr{
		Tag:                ast.ExprMakeExists,
		MakeExistsParams:   params,
		MakeExistsTypeBody: &typeBody,
		MakeExistsBody:     &body,
		Span:               span(start.Start, body.Span.End),
	}, nil
}

func (p *parser) parseFunc() (ast.Expr, Error) {
	start, err := p.expect(token.KwFunc, "func")
	if err != nil {
		return ast.Expr{}, err
	}
	var typeParams []ast.TypeParam
	if p.at(token.LBrace) {
		p.advance()
		typeParams, err = p.parseTypeParamList(token.RBrace)
		if err != nil {
			return ast.Expr{}, err
		}
		if _, err := p.expect(token.RBrace, "}"); err != nil {
			return ast.Expr{}, err
		}
	}
	if _, err := p.expect(token.LParen, "("); err != nil {
		return ast.Expr{}, err
	}
	argName, err := p.parseIdent()
	if err != nil {
		return ast.Expr{}, err
	}
	if _, err := p.expect(token.Colon, ":"); err != nil {
		return ast.Expr{}, err
	}
	argType, err := p.parseType()
	if err != nil {
		return ast.Expr{}, err
	}
	if _, err := p.expect(token.RParen, ")"); err != nil {
		return ast.Expr{}, err
	}
	if _, err := p.expect(token.Arrow, "->"); err != nil {
		return ast.Expr{}, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return ast.Expr{}, err
	}
	return ast.Expr{
		Tag:            ast.ExprFunc,
		FuncTypeParams: typeParams,
		FuncArgName:    argName,
		FuncArgType:    &argType,
		FuncBody:       &body,
		Span:           span(start.Start, body.Span.End),
	}, nil
}

// parseExprApp handles left-associative application `C{T1;...}?(A)`,
// chained over Move/Atom base terms.
func (p *parser) parseExprApp() (ast.Expr, Error) {
	result, err := p.parseExprMove()
	if err != nil {
		return ast.Expr{}, err
	}
	for p.at(token.LBrace) || p.at(token.LParen) {
		var typeParams []ast.Type
		if p.at(token.LBrace) {
			p.advance()
			if p.at(token.RBrace) {
				tok, _ := p.peek()
				return ast.Expr{}, &UnexpectedTokenError{At: int(tok.Start), Got: tok.Kind, Expected: "at least one type argument (empty {} is not allowed)"}
			}
			first, err := p.parseType()
			if err != nil {
				return ast.Expr{}, err
			}
			typeParams = append(typeParams, first)
			for p.at(token.Semi) {
				p.advance()
				if p.at(token.RBrace) {
					break
				}
				next, err := p.parseType()
				if err != nil {
					return ast.Expr{}, err
				}
				typeParams = append(typeParams, next)
			}
			if _, err := p.expect(token.RBrace, "}"); err != nil {
				return ast.Expr{}, err
			}
		}
		if _, err := p.expect(token.LParen, "("); err != nil {
			return ast.Expr{}, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return ast.Expr{}, err
		}
		closeTok, err := p.expect(token.RParen, ")")
		if err != nil {
			return ast.Expr{}, err
		}
		callee := result
		argCopy := arg
		result = ast.Expr{
			Tag:           ast.ExprApp,
			AppCallee:     &callee,
			AppTypeParams: typeParams,
			AppArg:        &argCopy,
			Span:          span(callee.Span.Start, closeTok.End),
		}
	}
	return result, nil
}

// parseExprMove handles `move E` where E must be a bare variable
// reference.
func (p *parser) parseExprMove() (ast.Expr, Error) {
	tok, err := p.peek()
	if err != nil {
		return ast.Expr{}, err
	}
	if tok.Kind != token.KwMove {
		return p.parseExprAtom()
	}
	p.advance()
	atom, err := p.parseExprAtom()
	if err != nil {
		return ast.Expr{}, err
	}
	if atom.Tag != ast.ExprVar {
		return ast.Expr{}, &UnexpectedTokenError{At: int(tok.Start), Got: tok.Kind, Expected: "move applied to a variable reference"}
	}
	atom.Usage = ast.Move
	atom.Span = span(tok.Start, atom.Span.End)
	return atom, nil
}

// parseExprAtom handles `()`, `(E)`, and bare identifiers.
func (p *parser) parseExprAtom() (ast.Expr, Error) {
	tok, err := p.peek()
	if err != nil {
		return ast.Expr{}, err
	}
	switch tok.Kind {
	case token.LParen:
		p.advance()
		if p.at(token.RParen) {
			closeTok, err := p.advance()
			if err != nil {
				return ast.Expr{}, err
			}
			return ast.Expr{Tag: ast.ExprUnit, Span: span(tok.Start, closeTok.End)}, nil
		}
		inner, err := p.parseExpr()
		if err != nil {
			return ast.Expr{}, err
		}
		closeTok, err := p.expect(token.RParen, ")")
		if err != nil {
			return ast.Expr{}, err
		}
		inner.Span = span(tok.Start, closeTok.End)
		return inner, nil
	case token.RawName, token.QuotedName:
		id, err := p.parseIdent()
		if err != nil {
			return ast.Expr{}, err
		}
		return ast.Expr{Tag: ast.ExprVar, Usage: ast.Copy, Var: id, Span: id.Span}, nil
	case token.EOF:
		return ast.Expr{}, &UnexpectedEOFError{At: int(tok.Start)}
	default:
		return ast.Expr{}, &UnexpectedTokenError{At: int(tok.Start), Got: tok.Kind, Expected: "expression"}
	}
}

// ---- shared list helpers ----

// parseIdentCommaList parses a `,`-separated, optionally trailing-`,`
// list of idents up to (but not consuming) the closing token.
func (p *parser) parseIdentCommaList(closing token.Kind) ([]ast.Ident, Error) {
	var names []ast.Ident
	if p.at(closing) {
		return names, nil
	}
	first, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	names = append(names, first)
	for p.at(token.Comma) {
		p.advance()
		if p.at(closing) {
			break
		}
		next, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, next)
	}
	return names, nil
}

// parseIdentSemiList parses a `;`-separated, optionally trailing-`;`
// list of idents up to (but not consuming) the closing token.
func (p *parser) parseIdentSemiList(closing token.Kind) ([]ast.Ident, Error) {
	var names []ast.Ident
	if p.at(closing) {
		return names, nil
	}
	first, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	names = append(names, first)
	for p.at(token.Semi) {
		p.advance()
		if p.at(closing) {
			break
		}
		next, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, next)
	}
	return names, nil
}

// parseMakeExistsParamList parses `T1 = U1; ...; Tm = Um` up to (but
// not consuming) the closing `}`.
func (p *parser) parseMakeExistsParamList() ([]ast.MakeExistsParam, Error) {
	var params []ast.MakeExistsParam
	if p.at(token.RBrace) {
		return params, nil
	}
	first, err := p.parseMakeExistsParam()
	if err != nil {
		return nil, err
	}
	params = append(params, first)
	for p.at(token.Semi) {
		p.advance()
		if p.at(token.RBrace) {
			break
		}
		next, err := p.parseMakeExistsParam()
		if err != nil {
			return nil, err
		}
		params = append(params, next)
	}
	return params, nil
}

func (p *parser) parseMakeExistsParam() (ast.MakeExistsParam, Error) {
	id, err := p.parseIdent()
	if err != nil {
		return ast.MakeExistsParam{}, err
	}
	if _, err := p.expect(token.Equals, "="); err != nil {
		return ast.MakeExistsParam{}, err
	}
	ty, err := p.parseType()
	if err != nil {
		return ast.MakeExistsParam{}, err
	}
	return ast.MakeExistsParam{Ident: id, Type: ty}, nil
}

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

// Package quill is the front end of a small experimental
// dependently-flavoured functional language: a lexer, a grammar for
// kinds/types/expressions, and a name-resolution pass that produces a
// closed, de Bruijn-indexed internal tree. It composes packages lexer,
// parser, ast, resolve, and core the way compiler.go composes the
// teacher's parser, ast, and linker packages, but as a pure function
// of its input: no shared state, no I/O, no cancellation. A host may
// run many calls concurrently (see package quillutil), since each
// owns its own lexer, parser, and resolve Context.
package quill

import (
	"github.com/kralicky/quill/ast"
	"github.com/kralicky/quill/core"
	"github.com/kralicky/quill/parser"
	"github.com/kralicky/quill/resolve"
	"github.com/kralicky/quill/symtab"
)

// ParseIdent parses a single ident: the `parse_ident` entry point.
func ParseIdent(src string) (ast.Ident, parser.Error) {
	return parser.ParseIdent(src)
}

// ParseKind parses a single kind: the `parse_kind` entry point.
func ParseKind(src string) (ast.Kind, parser.Error) {
	return parser.ParseKind(src)
}

// ParseType parses a single surface type: the `parse_type` entry
// point.
func ParseType(src string) (ast.Type, parser.Error) {
	return parser.ParseType(src)
}

// ParseExpr parses a single surface expression: the `parse_expr`
// entry point.
func ParseExpr(src string) (ast.Expr, parser.Error) {
	return parser.ParseExpr(src)
}

// NewContext returns an empty resolve.Context, to be pre-populated
// with free-name declarations before ConvertExpr/ConvertType.
func NewContext() *resolve.Context {
	return resolve.NewContext()
}

// ConvertExpr converts a surface expression into its internal,
// name-free form: the `convert_expr` entry point.
func ConvertExpr(ctx *resolve.Context, e ast.Expr) (core.Expr, resolve.Error) {
	return resolve.ConvertExpr(ctx, e)
}

// ConvertType converts a surface type into its internal, name-free
// form, the type-level counterpart to ConvertExpr.
func ConvertType(ctx *resolve.Context, t ast.Type) (core.Type, resolve.Error) {
	return resolve.ConvertType(ctx, t)
}

// ConvertProgram is the whole-program counterpart of ConvertExpr: it
// declares freeValues and freeTypes through a pair of symtab.Tables
// (rejecting any name declared twice) and converts e against the
// Context those tables build, so a caller never has to hand-roll the
// free-name pre-population a top-level conversion needs.
func ConvertProgram(freeValues, freeTypes []ast.Ident, e ast.Expr) (core.Expr, resolve.Error) {
	values := symtab.New()
	for _, id := range freeValues {
		if err := values.Declare(id); err != nil {
			return core.Expr{}, &resolve.DuplicateBindingError{Ident: id, In: resolve.ValueNamespace}
		}
	}
	types := symtab.New()
	for _, id := range freeTypes {
		if err := types.Declare(id); err != nil {
			return core.Expr{}, &resolve.DuplicateBindingError{Ident: id, In: resolve.TypeNamespace}
		}
	}
	ctx := resolve.NewContextFrom(values, types)
	return resolve.ConvertExpr(ctx, e)
}

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

// Package resolve implements the name environment and the
// to-internal converter: it walks a surface ast.Expr/ast.Type with a
// pair of environments (one for value names, one for type names) and
// produces a core.Expr/core.Type with every identifier replaced by a
// de Bruijn-style reference.
//
// A Context is mutable only for the duration of a single conversion
// call, mirroring the front end's synchronous, non-suspending
// resource model: no binder outlives the convert call that pushed it.
package resolve

import (
	"github.com/kralicky/quill/ast"
	"github.com/kralicky/quill/core"
	"github.com/kralicky/quill/symtab"
)

// Context holds the two name environments the converter threads
// through a single top-to-bottom walk of a surface tree.
type Context struct {
	Values *Env
	Types  *Env
}

// NewContext returns an empty Context. Callers that need free names in
// scope (per the `convert_expr` entry point contract)
// should Add them to ctx.Values / ctx.Types before converting.
func NewContext() *Context {
	return &Context{Values: NewEnv(ValueNamespace), Types: NewEnv(TypeNamespace)}
}

// NewContextFrom builds a Context whose two environments are
// pre-populated, in declaration order, from a pair of symtab.Tables —
// the free-name registries a caller uses to declare a program's free
// value and type names before conversion. values and types have
// already rejected any duplicate at Declare time, so the Adds below
// never fail.
func NewContextFrom(values, types *symtab.Table) *Context {
	ctx := NewContext()
	for _, id := range values.Idents() {
		ctx.Values.Add(id)
	}
	for _, id := range types.Idents() {
		ctx.Types.Add(id)
	}
	return ctx
}

// ConvertKind copies a surface kind into its internal form; kinds
// carry no identifiers so there is nothing to resolve.
func ConvertKind(k ast.Kind) core.Kind {
	return core.FromASTKind(k)
}

// ConvertType converts a surface type under ctx into its internal
// form, verifying every referenced type name resolves.
func ConvertType(ctx *Context, t ast.Type) (core.Type, Error) {
	switch t.Tag {
	case ast.TypeUnit:
		return core.Type{Tag: core.TypeUnit}, nil

	case ast.TypeVar:
		idx, ok := ctx.Types.Lookup(t.Var)
		if !ok {
			return core.Type{}, &UnboundTypeError{Ident: t.Var}
		}
		return core.Type{Tag: core.TypeVar, Var: core.Ref{Ctx: ctx.Types.Len(), Index: idx}}, nil

	case ast.TypeQuantified:
		mark := ctx.Types.Snapshot()
		if err := ctx.Types.Add(t.QParam.Ident); err != nil {
			return core.Type{}, err
		}
		body, err := ConvertType(ctx, *t.QBody)
		ctx.Types.RestoreTo(mark)
		if err != nil {
			return core.Type{}, err
		}
		return core.Type{
			Tag:        core.TypeQuantified,
			Quantifier: t.Quantifier,
			QParamKind: ConvertKind(t.QParam.Kind),
			QBody:      &body,
		}, nil

	case ast.TypeFunc:
		mark := ctx.Types.Snapshot()
		kinds := make([]core.Kind, len(t.FuncParams))
		for i, p := range t.FuncParams {
			if err := ctx.Types.Add(p.Ident); err != nil {
				ctx.Types.RestoreTo(mark)
				return core.Type{}, err
			}
			kinds[i] = ConvertKind(p.Kind)
		}
		arg, err := ConvertType(ctx, *t.FuncArg)
		if err != nil {
			ctx.Types.RestoreTo(mark)
			return core.Type{}, err
		}
		ret, err := ConvertType(ctx, *t.FuncRet)
		ctx.Types.RestoreTo(mark)
		if err != nil {
			return core.Type{}, err
		}
		return core.Type{
			Tag:        core.TypeFunc,
			NumParams:  len(t.FuncParams),
			ParamKinds: kinds,
			FuncArg:    &arg,
			FuncRet:    &ret,
		}, nil

	case ast.TypePair:
		l, err := ConvertType(ctx, *t.PairLeft)
		if err != nil {
			return core.Type{}, err
		}
		r, err := ConvertType(ctx, *t.PairRight)
		if err != nil {
			return core.Type{}, err
		}
		return core.Type{Tag: core.TypePair, PairLeft: &l, PairRight: &r}, nil

	case ast.TypeApp:
		c, err := ConvertType(ctx, *t.AppCtor)
		if err != nil {
			return core.Type{}, err
		}
		a, err := ConvertType(ctx, *t.AppParam)
		if err != nil {
			return core.Type{}, err
		}
		return core.Type{Tag: core.TypeApp, AppCtor: &c, AppParam: &a}, nil
	}
	panic("resolve: unreachable type tag")
}

// ConvertExpr converts a surface expression under ctx into its
// internal form: the `convert_expr` entry point. ctx's environments
// should already hold any free-name declarations the caller wants
// visible. On success, the returned tree's FreeVars() equals
// ctx.Values.Len() as it stood on entry whenever the tree holds at least
// one value reference, and FreeTypes() equals ctx.Types.Len() whenever it
// holds at least one type reference; internal Unit nodes do not record
// the context size, so a tree without references of a namespace reports
// 0 for it. ConvertExpr does not itself check these counts.
func ConvertExpr(ctx *Context, e ast.Expr) (core.Expr, Error) {
	switch e.Tag {
	case ast.ExprUnit:
		return core.Expr{Tag: core.ExprUnit}, nil

	case ast.ExprVar:
		idx, ok := ctx.Values.Lookup(e.Var)
		if !ok {
			return core.Expr{}, &UnboundValueError{Ident: e.Var}
		}
		return core.Expr{
			Tag:   core.ExprVar,
			Usage: e.Usage,
			Var:   core.Ref{Ctx: ctx.Values.Len(), Index: idx},
		}, nil

	case ast.ExprFunc:
		typeMark := ctx.Types.Snapshot()
		kinds := make([]core.Kind, len(e.FuncTypeParams))
		for i, p := range e.FuncTypeParams {
			if err := ctx.Types.Add(p.Ident); err != nil {
				ctx.Types.RestoreTo(typeMark)
				return core.Expr{}, err
			}
			kinds[i] = ConvertKind(p.Kind)
		}
		argType, err := ConvertType(ctx, *e.FuncArgType)
		if err != nil {
			ctx.Types.RestoreTo(typeMark)
			return core.Expr{}, err
		}
		valueMark := ctx.Values.Snapshot()
		if err := ctx.Values.Add(e.FuncArgName); err != nil {
			ctx.Values.RestoreTo(valueMark)
			ctx.Types.RestoreTo(typeMark)
			return core.Expr{}, err
		}
		body, err := ConvertExpr(ctx, *e.FuncBody)
		ctx.Values.RestoreTo(valueMark)
		ctx.Types.RestoreTo(typeMark)
		if err != nil {
			return core.Expr{}, err
		}
		return core.Expr{
			Tag:            core.ExprFunc,
			NumTypeParams:  len(e.FuncTypeParams),
			TypeParamKinds: kinds,
			ArgType:        &argType,
			FuncBody:       &body,
		}, nil

	case ast.ExprApp:
		callee, err := ConvertExpr(ctx, *e.AppCallee)
		if err != nil {
			return core.Expr{}, err
		}
		typeArgs := make([]core.Type, len(e.AppTypeParams))
		for i, t := range e.AppTypeParams {
			ct, err := ConvertType(ctx, t)
			if err != nil {
				return core.Expr{}, err
			}
			typeArgs[i] = ct
		}
		arg, err := ConvertExpr(ctx, *e.AppArg)
		if err != nil {
			return core.Expr{}, err
		}
		return core.Expr{
			Tag:           core.ExprApp,
			AppCallee:     &callee,
			AppTypeParams: typeArgs,
			AppArg:        &arg,
		}, nil

	case ast.ExprPair:
		l, err := ConvertExpr(ctx, *e.PairLeft)
		if err != nil {
			return core.Expr{}, err
		}
		r, err := ConvertExpr(ctx, *e.PairRight)
		if err != nil {
			return core.Expr{}, err
		}
		return core.Expr{Tag: core.ExprPair, PairLeft: &l, PairRight: &r}, nil

	case ast.ExprLet:
		val, err := ConvertExpr(ctx, *e.LetVal)
		if err != nil {
			return core.Expr{}, err
		}
		mark := ctx.Values.Snapshot()
		for _, name := range e.LetNames {
			if err := ctx.Values.Add(name); err != nil {
				ctx.Values.RestoreTo(mark)
				return core.Expr{}, err
			}
		}
		body, err := ConvertExpr(ctx, *e.LetBody)
		ctx.Values.RestoreTo(mark)
		if err != nil {
			return core.Expr{}, err
		}
		return core.Expr{
			Tag:      core.ExprLet,
			NumNames: len(e.LetNames),
			LetVal:   &val,
			LetBody:  &body,
		}, nil

	case ast.ExprLetExists:
		val, err := ConvertExpr(ctx, *e.LetExistsVal)
		if err != nil {
			return core.Expr{}, err
		}
		typeMark := ctx.Types.Snapshot()
		for _, name := range e.LetExistsTypeNames {
			if err := ctx.Types.Add(name); err != nil {
				ctx.Types.RestoreTo(typeMark)
				return core.Expr{}, err
			}
		}
		valueMark := ctx.Values.Snapshot()
		if err := ctx.Values.Add(e.LetExistsValName); err != nil {
			ctx.Values.RestoreTo(valueMark)
			ctx.Types.RestoreTo(typeMark)
			return core.Expr{}, err
		}
		body, err := ConvertExpr(ctx, *e.LetExistsBody)
		ctx.Values.RestoreTo(valueMark)
		ctx.Types.RestoreTo(typeMark)
		if err != nil {
			return core.Expr{}, err
		}
		return core.Expr{
			Tag:           core.ExprLetExists,
			NumTypeNames:  len(e.LetExistsTypeNames),
			LetExistsVal:  &val,
			LetExistsBody: &body,
		}, nil

	case ast.ExprMakeExists:
		witnesses := make([]core.Type, len(e.MakeExistsParams))
		for i, p := range e.MakeExistsParams {
			wt, err := ConvertType(ctx, p.Type)
			if err != nil {
				return core.Expr{}, err
			}
			witnesses[i] = wt
		}
		typeMark := ctx.Types.Snapshot()
		for _, p := range e.MakeExistsParams {
			if err := ctx.Types.Add(p.Ident); err != nil {
				ctx.Types.RestoreTo(typeMark)
				return core.Expr{}, err
			}
		}
		typeBody, err := ConvertType(ctx, *e.MakeExistsTypeBody)
		ctx.Types.RestoreTo(typeMark)
		if err != nil {
			return core.Expr{}, err
		}
		body, err := ConvertExpr(ctx, *e.MakeExistsBody)
		if err != nil {
			return core.Expr{}, err
		}
		return core.Expr{
			Tag:                core.ExprMakeExists,
			WitnessTypes:       witnesses,
			NumTypes:           len(e.MakeExistsParams),
			MakeExistsTypeBody: &typeBody,
			MakeExistsBody:     &body,
		}, nil
	}
	panic("resolve: unreachable expr tag")
}

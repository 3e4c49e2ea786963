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

package resolve_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kralicky/quill/ast"
	"github.com/kralicky/quill/core"
	"github.com/kralicky/quill/parser"
	"github.com/kralicky/quill/resolve"
	"github.com/kralicky/quill/symtab"
)

func mustParseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := parser.ParseExpr(src)
	require.Nil(t, err, "parsing %q", src)
	return e
}

func mustParseType(t *testing.T, src string) ast.Type {
	t.Helper()
	ty, err := parser.ParseType(src)
	require.Nil(t, err, "parsing %q", src)
	return ty
}

func TestConvertExprUnboundVariable(t *testing.T) {
	e := mustParseExpr(t, "x")
	ctx := resolve.NewContext()
	_, err := resolve.ConvertExpr(ctx, e)
	require.NotNil(t, err)
	_, ok := err.(*resolve.UnboundValueError)
	assert.True(t, ok)
}

func TestConvertExprFreeNamePrePopulated(t *testing.T) {
	e := mustParseExpr(t, "x")
	ctx := resolve.NewContext()
	require.Nil(t, ctx.Values.Add(ast.Ident{Name: "x"}))
	ce, err := resolve.ConvertExpr(ctx, e)
	require.Nil(t, err)
	require.Equal(t, core.ExprVar, ce.Tag)
	assert.Equal(t, 0, ce.Var.Index)
	assert.Equal(t, 1, ce.Var.Ctx)
}

func TestConvertExprMoveVsCopyUsagePreserved(t *testing.T) {
	e := mustParseExpr(t, "move a")
	ctx := resolve.NewContext()
	require.Nil(t, ctx.Values.Add(ast.Ident{Name: "a"}))
	ce, err := resolve.ConvertExpr(ctx, e)
	require.Nil(t, err)
	assert.Equal(t, core.Move, ce.Usage)
	assert.Equal(t, core.Ref{Ctx: 1, Index: 0}, ce.Var)
}

func TestConvertExprLetBindsInDeclarationOrder(t *testing.T) {
	e := mustParseExpr(t, "let x, y, z = p in x")
	ctx := resolve.NewContext()
	require.Nil(t, ctx.Values.Add(ast.Ident{Name: "p"}))
	ce, err := resolve.ConvertExpr(ctx, e)
	require.Nil(t, err)
	require.Equal(t, core.ExprLet, ce.Tag)
	assert.Equal(t, 3, ce.NumNames)
	// x is the first name bound, so within the body (ctx size 4: p,x,y,z)
	// its front-relative index is 1.
	require.Equal(t, core.ExprVar, ce.LetBody.Tag)
	assert.Equal(t, core.Ref{Ctx: 4, Index: 1}, ce.LetBody.Var)
}

func TestConvertExprLetDuplicateNameRejected(t *testing.T) {
	e := mustParseExpr(t, "let x, x = p in x")
	ctx := resolve.NewContext()
	require.Nil(t, ctx.Values.Add(ast.Ident{Name: "p"}))
	_, err := resolve.ConvertExpr(ctx, e)
	require.NotNil(t, err)
	_, ok := err.(*resolve.DuplicateBindingError)
	assert.True(t, ok)
}

func TestConvertExprLetExistsScoping(t *testing.T) {
	e := mustParseExpr(t, "let_exists {t} v = pack in v")
	ctx := resolve.NewContext()
	require.Nil(t, ctx.Values.Add(ast.Ident{Name: "pack"}))
	ce, err := resolve.ConvertExpr(ctx, e)
	require.Nil(t, err)
	require.Equal(t, core.ExprLetExists, ce.Tag)
	assert.Equal(t, 1, ce.NumTypeNames)
	require.Equal(t, core.ExprVar, ce.LetExistsBody.Tag)
	assert.Equal(t, core.Ref{Ctx: 2, Index: 1}, ce.LetExistsBody.Var)
}

func TestConvertExprFuncPushesTypeParamsThenValueArg(t *testing.T) {
	e := mustParseExpr(t, "func{T : *}(x : T) -> x")
	ctx := resolve.NewContext()
	ce, err := resolve.ConvertExpr(ctx, e)
	require.Nil(t, err)
	require.Equal(t, core.ExprFunc, ce.Tag)
	assert.Equal(t, 1, ce.NumTypeParams)
	require.Equal(t, core.TypeVar, ce.ArgType.Tag)
	assert.Equal(t, core.Ref{Ctx: 1, Index: 0}, ce.ArgType.Var)
	require.Equal(t, core.ExprVar, ce.FuncBody.Tag)
	assert.Equal(t, core.Ref{Ctx: 1, Index: 0}, ce.FuncBody.Var)
}

func TestConvertExprFuncBodyCannotSeeOuterTypeParamAfterReturn(t *testing.T) {
	// Type params are scoped to the function's arg type and body only;
	// after the function literal closes, its type binder must be gone.
	e := mustParseExpr(t, "(func{T : *}(x : T) -> x){T}(y)")
	ctx := resolve.NewContext()
	require.Nil(t, ctx.Values.Add(ast.Ident{Name: "y"}))
	_, err := resolve.ConvertExpr(ctx, e)
	// The type argument T sits outside the function literal, where the
	// literal's own T is no longer in scope.
	require.NotNil(t, err)
	_, ok := err.(*resolve.UnboundTypeError)
	assert.True(t, ok)
	assert.Equal(t, 0, ctx.Types.Len())
}

func TestConvertExprMakeExistsWitnessUsesOuterContext(t *testing.T) {
	e := mustParseExpr(t, "make_exists {t = Int} t of x")
	ctx := resolve.NewContext()
	require.Nil(t, ctx.Types.Add(ast.Ident{Name: "Int"}))
	require.Nil(t, ctx.Values.Add(ast.Ident{Name: "x"}))
	ce, err := resolve.ConvertExpr(ctx, e)
	require.Nil(t, err)
	require.Equal(t, core.ExprMakeExists, ce.Tag)
	require.Len(t, ce.WitnessTypes, 1)
	// The witness type Int resolves under the pre-make_exists context
	// (ctx size 1), not under the newly introduced type param t.
	assert.Equal(t, core.Ref{Ctx: 1, Index: 0}, ce.WitnessTypes[0].Var)
	assert.Equal(t, 1, ce.NumTypes)
}

func TestNewContextFromPopulatesBothEnvironmentsInOrder(t *testing.T) {
	values := symtab.New()
	require.NoError(t, values.Declare(ast.Ident{Name: "f"}))
	require.NoError(t, values.Declare(ast.Ident{Name: "x"}))
	types := symtab.New()
	require.NoError(t, types.Declare(ast.Ident{Name: "T"}))

	ctx := resolve.NewContextFrom(values, types)

	idx, ok := ctx.Values.Lookup(ast.Ident{Name: "f"})
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	idx, ok = ctx.Values.Lookup(ast.Ident{Name: "x"})
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = ctx.Types.Lookup(ast.Ident{Name: "T"})
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestConvertTypeUnboundTypeName(t *testing.T) {
	ty := mustParseType(t, "Foo")
	ctx := resolve.NewContext()
	_, err := resolve.ConvertType(ctx, ty)
	require.NotNil(t, err)
	_, ok := err.(*resolve.UnboundTypeError)
	assert.True(t, ok)
}

func TestConvertTypeForallBindsParam(t *testing.T) {
	ty := mustParseType(t, "forall {T : *} T -> T")
	ctx := resolve.NewContext()
	ct, err := resolve.ConvertType(ctx, ty)
	require.Nil(t, err)
	require.Equal(t, core.TypeFunc, ct.Tag)
	assert.Equal(t, 1, ct.NumParams)
	assert.Equal(t, core.Ref{Ctx: 1, Index: 0}, ct.FuncArg.Var)
	assert.Equal(t, core.Ref{Ctx: 1, Index: 0}, ct.FuncRet.Var)
}

func TestConvertExprPairStructureMatchesExpected(t *testing.T) {
	e := mustParseExpr(t, "a, b")
	ctx := resolve.NewContext()
	require.Nil(t, ctx.Values.Add(ast.Ident{Name: "a"}))
	require.Nil(t, ctx.Values.Add(ast.Ident{Name: "b"}))
	ce, err := resolve.ConvertExpr(ctx, e)
	require.Nil(t, err)

	want := core.Expr{
		Tag: core.ExprPair,
		PairLeft: &core.Expr{
			Tag: core.ExprVar,
			Var: core.Ref{Ctx: 2, Index: 0},
		},
		PairRight: &core.Expr{
			Tag: core.ExprVar,
			Var: core.Ref{Ctx: 2, Index: 1},
		},
	}
	if diff := cmp.Diff(want, ce); diff != "" {
		t.Errorf("converted tree mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertTypeExistsRestoresScopeAfterBody(t *testing.T) {
	ty := mustParseType(t, "exists {f : (*) -> *} (Functor(f), f(T))")
	ctx := resolve.NewContext()
	require.Nil(t, ctx.Types.Add(ast.Ident{Name: "Functor"}))
	require.Nil(t, ctx.Types.Add(ast.Ident{Name: "T"}))
	_, err := resolve.ConvertType(ctx, ty)
	require.Nil(t, err)
	// f must not leak back out into the ambient Types environment.
	_, ok := ctx.Types.Lookup(ast.Ident{Name: "f"})
	assert.False(t, ok)
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kralicky/quill/ast"
)

func TestParseKindAtoms(t *testing.T) {
	k, err := ParseKind("*")
	require.Nil(t, err)
	assert.Equal(t, ast.KindType, k.Tag)

	k, err = ParseKind("Place")
	require.Nil(t, err)
	assert.Equal(t, ast.KindPlace, k.Tag)

	k, err = ParseKind("Version")
	require.Nil(t, err)
	assert.Equal(t, ast.KindVersion, k.Tag)
}

func TestParseKindConstructor(t *testing.T) {
	k, err := ParseKind("(*; Place; Version) -> *")
	require.Nil(t, err)
	require.Equal(t, ast.KindConstructor, k.Tag)
	require.Len(t, k.Params, 3)
	assert.Equal(t, ast.KindType, k.Params[0].Tag)
	assert.Equal(t, ast.KindPlace, k.Params[1].Tag)
	assert.Equal(t, ast.KindVersion, k.Params[2].Tag)
	require.NotNil(t, k.Result)
	assert.Equal(t, ast.KindType, k.Result.Tag)
}

func TestParseKindGroupedSingle(t *testing.T) {
	k, err := ParseKind("(*)")
	require.Nil(t, err)
	assert.Equal(t, ast.KindType, k.Tag)
}

func TestParseKindEmptyParensRejectedAsArrowSource(t *testing.T) {
	_, err := ParseKind("() -> *")
	require.NotNil(t, err)
}

func TestParseTypeVarAndUnit(t *testing.T) {
	ty, err := ParseType("()")
	require.Nil(t, err)
	assert.Equal(t, ast.TypeUnit, ty.Tag)

	ty, err = ParseType("Foo")
	require.Nil(t, err)
	require.Equal(t, ast.TypeVar, ty.Tag)
	assert.Equal(t, "Foo", ty.Var.Name)
}

func TestParseTypeArrowRightAssociative(t *testing.T) {
	ty, err := ParseType("A -> B -> C")
	require.Nil(t, err)
	require.Equal(t, ast.TypeFunc, ty.Tag)
	assert.Equal(t, "A", ty.FuncArg.Var.Name)
	require.Equal(t, ast.TypeFunc, ty.FuncRet.Tag)
	assert.Equal(t, "B", ty.FuncRet.FuncArg.Var.Name)
	assert.Equal(t, "C", ty.FuncRet.FuncRet.Var.Name)
}

func TestParseTypeExistsQuantifier(t *testing.T) {
	ty, err := ParseType("exists {f : (*) -> *} (Functor(f), f(T))")
	require.Nil(t, err)
	require.Equal(t, ast.TypeQuantified, ty.Tag)
	assert.Equal(t, ast.Exists, ty.Quantifier)
	require.NotNil(t, ty.QParam)
	assert.Equal(t, "f", ty.QParam.Ident.Name)
	assert.Equal(t, ast.KindConstructor, ty.QParam.Kind.Tag)
	require.Equal(t, ast.TypePair, ty.QBody.Tag)
	require.Equal(t, ast.TypeApp, ty.QBody.PairLeft.Tag)
}

func TestParseTypeForallPrefix(t *testing.T) {
	ty, err := ParseType("forall {T : *} T -> T")
	require.Nil(t, err)
	require.Equal(t, ast.TypeFunc, ty.Tag)
	require.Len(t, ty.FuncParams, 1)
	assert.Equal(t, "T", ty.FuncParams[0].Ident.Name)
}

func TestParseTypeApplicationLeftAssociative(t *testing.T) {
	ty, err := ParseType("F(A)(B)")
	require.Nil(t, err)
	require.Equal(t, ast.TypeApp, ty.Tag)
	assert.Equal(t, "B", ty.AppParam.Var.Name)
	require.Equal(t, ast.TypeApp, ty.AppCtor.Tag)
	assert.Equal(t, "A", ty.AppCtor.AppParam.Var.Name)
	assert.Equal(t, "F", ty.AppCtor.AppCtor.Var.Name)
}

func TestParseTypeApplicationMultiArgSemi(t *testing.T) {
	ty, err := ParseType("F(A; B; C)")
	require.Nil(t, err)
	require.Equal(t, ast.TypeApp, ty.Tag)
	assert.Equal(t, "C", ty.AppParam.Var.Name)
}

func TestParseTypePairFoldsRight(t *testing.T) {
	ty, err := ParseType("A, B, C")
	require.Nil(t, err)
	require.Equal(t, ast.TypePair, ty.Tag)
	assert.Equal(t, "A", ty.PairLeft.Var.Name)
	require.Equal(t, ast.TypePair, ty.PairRight.Tag)
	assert.Equal(t, "B", ty.PairRight.PairLeft.Var.Name)
	assert.Equal(t, "C", ty.PairRight.PairRight.Var.Name)
}

func TestParseTypeTrailingSeparatorsAreIdempotent(t *testing.T) {
	withTrailing, err := ParseType("F(A;)")
	require.Nil(t, err)
	without, err := ParseType("F(A)")
	require.Nil(t, err)
	assert.Equal(t, without.String(), withTrailing.String())
}

func TestParseTypeGroupingParens(t *testing.T) {
	ty, err := ParseType("(A -> B) -> C")
	require.Nil(t, err)
	require.Equal(t, ast.TypeFunc, ty.Tag)
	require.Equal(t, ast.TypeFunc, ty.FuncArg.Tag)
	assert.Equal(t, "C", ty.FuncRet.Var.Name)
}

func TestParseTypeTrailingGarbageIsError(t *testing.T) {
	_, err := ParseType("A B")
	require.NotNil(t, err)
}

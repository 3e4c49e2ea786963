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

// Package ast defines the surface syntax tree produced by package
// parser: kinds, types, and expressions with textual identifiers still
// present. Every node keeps its source Span so that ParseError and
// ConvertError values can point back at the offending text.
package ast

import "github.com/kralicky/quill/token"

// Span is a half-open byte range [Start, End) in the source that
// produced a node.
type Span struct {
	Start, End token.Pos
}

// Ident is a name together with its optional numeric collision tag.
// Two idents with the same Name but different CollisionID are distinct
// bindings; CollisionID == 0 is the default when no `#N` suffix was
// written.
type Ident struct {
	Name        string
	CollisionID uint64
	Span        Span
}

// Equal reports whether two idents denote the same binding.
func (i Ident) Equal(o Ident) bool {
	return i.Name == o.Name && i.CollisionID == o.CollisionID
}

// Usage distinguishes a copying variable reference from a consuming one.
type Usage int

const (
	Copy Usage = iota
	Move
)

// Quantifier selects between existential and universal binding.
type Quantifier int

const (
	Exists Quantifier = iota
	ForAll
)

// Kind is the kind (sort) of a surface type.
type Kind struct {
	Span Span

	// Tag selects which field below is populated.
	Tag KindTag

	// Constructor fields, valid when Tag == KindConstructor.
	Params []Kind
	Result *Kind
}

// KindTag enumerates the variants of Kind.
type KindTag int

const (
	KindType KindTag = iota
	KindPlace
	KindVersion
	KindConstructor
)

// TypeParam is a binder introducing a type-level name of a given kind.
type TypeParam struct {
	Ident Ident
	Kind  Kind
}

// TypeTag enumerates the variants of Type.
type TypeTag int

const (
	TypeUnit TypeTag = iota
	TypeVar
	TypeQuantified
	TypeFunc
	TypePair
	TypeApp
)

// Type is a surface type.
type Type struct {
	Span Span
	Tag  TypeTag

	// TypeVar
	Var Ident

	// TypeQuantified
	Quantifier Quantifier
	QParam     *TypeParam
	QBody      *Type

	// TypeFunc
	FuncParams []TypeParam
	FuncArg    *Type
	FuncRet    *Type

	// TypePair
	PairLeft  *Type
	PairRight *Type

	// TypeApp
	AppCtor  *Type
	AppParam *Type
}

// ExprTag enumerates the variants of Expr.
type ExprTag int

const (
	ExprUnit ExprTag = iota
	ExprVar
	ExprFunc
	ExprApp
	ExprPair
	ExprLet
	ExprLetExists
	ExprMakeExists
)

// MakeExistsParam is one `Ident = Type` entry in a make_exists header.
type MakeExistsParam struct {
	Ident Ident
	Type  Type
}

// Expr is a surface expression.
type Expr struct {
	Span Span
	Tag  ExprTag

	// ExprVar
	Usage Usage
	Var   Ident

	// ExprFunc
	FuncTypeParams []TypeParam
	FuncArgName    Ident
	FuncArgType    *Type
	FuncBody       *Expr

	// ExprApp
	AppCallee     *Expr
	AppTypeParams []Type
	AppArg        *Expr

	// ExprPair
	PairLeft  *Expr
	PairRight *Expr

	// ExprLet
	LetNames []Ident
	LetVal   *Expr
	LetBody  *Expr

	// ExprLetExists
	LetExistsTypeNames []Ident
	LetExistsValName   Ident
	LetExistsVal       *Expr
	LetExistsBody      *Expr

	// ExprMakeExists
	MakeExistsParams   []MakeExistsParam
	MakeExistsTypeBody *Type
	MakeExistsBody     *Expr
}

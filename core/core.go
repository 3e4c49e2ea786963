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

// Package core defines the internal, name-free tree produced by
// package resolve: every identifier has been replaced by a de
// Bruijn-style (context size, index) pair, and every binder is
// recorded only by the number of names it introduces. Internal trees
// carry no source positions; they are the closed-term hand-off to the
// downstream type checker and evaluator.
package core

import "github.com/kralicky/quill/ast"

// Usage and Quantifier are carried verbatim from the surface tree;
// they are re-exported here so callers of package core never need to
// import package ast just to read them back.
type Usage = ast.Usage

const (
	Copy = ast.Copy
	Move = ast.Move
)

type Quantifier = ast.Quantifier

const (
	Exists = ast.Exists
	ForAll = ast.ForAll
)

// Ref is a de Bruijn-style reference: Index is a front-relative
// de Bruijn *level* (0 = the outermost/first-introduced binder in
// scope, counting up toward the innermost), and Ctx is the total
// number of enclosing binders of the same namespace visible at this
// node, so 0 <= Index < Ctx always holds for a well-formed tree.
type Ref struct {
	Ctx   int
	Index int
}

// KindTag mirrors ast.KindTag.
type KindTag = ast.KindTag

const (
	KindType        = ast.KindType
	KindPlace       = ast.KindPlace
	KindVersion     = ast.KindVersion
	KindConstructor = ast.KindConstructor
)

// Kind is structurally identical to ast.Kind; kinds carry no names so
// nothing changes about their shape during conversion. It is its own
// type (rather than a type alias) to keep package core self-contained
// from the surface tree at the type-checker boundary.
type Kind struct {
	Tag    KindTag
	Params []Kind
	Result *Kind
}

// FromASTKind copies a surface kind into its internal form. Kinds
// carry no identifiers, so this is a pure structural copy.
func FromASTKind(k ast.Kind) Kind {
	out := Kind{Tag: k.Tag}
	if len(k.Params) > 0 {
		out.Params = make([]Kind, len(k.Params))
		for i, p := range k.Params {
			out.Params[i] = FromASTKind(p)
		}
	}
	if k.Result != nil {
		r := FromASTKind(*k.Result)
		out.Result = &r
	}
	return out
}

// TypeTag mirrors ast.TypeTag.
type TypeTag = ast.TypeTag

const (
	TypeUnit       = ast.TypeUnit
	TypeVar        = ast.TypeVar
	TypeQuantified = ast.TypeQuantified
	TypeFunc       = ast.TypeFunc
	TypePair       = ast.TypePair
	TypeApp        = ast.TypeApp
)

// Type is the internal counterpart of ast.Type.
type Type struct {
	Tag TypeTag

	// TypeVar
	Var Ref

	// TypeQuantified
	Quantifier Quantifier
	QParamKind Kind
	QBody      *Type

	// TypeFunc: NumParams counts the type parameters pushed before Arg
	// is converted; ParamKinds records each one's kind for downstream
	// kind-checking.
	NumParams  int
	ParamKinds []Kind
	FuncArg    *Type
	FuncRet    *Type

	// TypePair
	PairLeft  *Type
	PairRight *Type

	// TypeApp
	AppCtor  *Type
	AppParam *Type
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FreeTypes returns the number of free type variables referenced by t:
// the largest (Ctx - enclosing-type-binders-at-that-point) seen across
// every Var node, which by construction equals the type environment
// size the converter was given when t holds at least one Var node, and
// is 0 when it holds none.
func (t *Type) FreeTypes() int {
	return freeInType(t, 0)
}

func freeInType(t *Type, depth int) int {
	if t == nil {
		return 0
	}
	switch t.Tag {
	case TypeVar:
		free := t.Var.Ctx - depth
		if free < 0 {
			return 0
		}
		return free
	case TypeQuantified:
		return freeInType(t.QBody, depth+1)
	case TypeFunc:
		return max(freeInType(t.FuncArg, depth+t.NumParams), freeInType(t.FuncRet, depth+t.NumParams))
	case TypePair:
		return max(freeInType(t.PairLeft, depth), freeInType(t.PairRight, depth))
	case TypeApp:
		return max(freeInType(t.AppCtor, depth), freeInType(t.AppParam, depth))
	}
	return 0
}

// ExprTag mirrors ast.ExprTag.
type ExprTag = ast.ExprTag

const (
	ExprUnit       = ast.ExprUnit
	ExprVar        = ast.ExprVar
	ExprFunc       = ast.ExprFunc
	ExprApp        = ast.ExprApp
	ExprPair       = ast.ExprPair
	ExprLet        = ast.ExprLet
	ExprLetExists  = ast.ExprLetExists
	ExprMakeExists = ast.ExprMakeExists
)

// Expr is the internal counterpart of ast.Expr.
type Expr struct {
	Tag ExprTag

	// ExprVar
	Usage Usage
	Var   Ref

	// ExprFunc: NumTypeParams/TypeParamKinds precede the single value
	// argument in binder order, matching the surface source order
	// `func {T}(x: T)` (types before values within one binder group).
	NumTypeParams  int
	TypeParamKinds []Kind
	ArgType        *Type
	FuncBody       *Expr

	// ExprApp
	AppCallee     *Expr
	AppTypeParams []Type
	AppArg        *Expr

	// ExprPair
	PairLeft  *Expr
	PairRight *Expr

	// ExprLet: NumNames counts the value names introduced by the
	// tuple-destructuring let.
	NumNames int
	LetVal   *Expr
	LetBody  *Expr

	// ExprLetExists: NumTypeNames counts the existential witness types
	// introduced, always followed by exactly one value name.
	NumTypeNames      int
	LetExistsVal      *Expr
	LetExistsBody     *Expr

	// ExprMakeExists: WitnessTypes are converted under the
	// pre-make_exists context (one per parameter); NumTypes is the
	// number of type binders introduced for TypeBody.
	WitnessTypes       []Type
	NumTypes           int
	MakeExistsTypeBody *Type
	MakeExistsBody     *Expr
}

// FreeVars returns the number of free value variables referenced
// anywhere in e: the largest (Ctx - enclosing-value-binders) seen
// across every Var node.
func (e *Expr) FreeVars() int {
	return freeVarsInExpr(e, 0)
}

// FreeTypes returns the number of free type variables referenced
// anywhere in e, across the type-level binder forms that appear inside
// expressions (Func's type params, LetExists's and MakeExists's
// witnesses) and inside any embedded Type nodes.
func (e *Expr) FreeTypes() int {
	return freeTypesInExpr(e, 0, 0)
}

func freeVarsInExpr(e *Expr, depth int) int {
	if e == nil {
		return 0
	}
	switch e.Tag {
	case ExprVar:
		free := e.Var.Ctx - depth
		if free < 0 {
			return 0
		}
		return free
	case ExprFunc:
		return freeVarsInExpr(e.FuncBody, depth+1)
	case ExprApp:
		return max(freeVarsInExpr(e.AppCallee, depth), freeVarsInExpr(e.AppArg, depth))
	case ExprPair:
		return max(freeVarsInExpr(e.PairLeft, depth), freeVarsInExpr(e.PairRight, depth))
	case ExprLet:
		return max(freeVarsInExpr(e.LetVal, depth), freeVarsInExpr(e.LetBody, depth+e.NumNames))
	case ExprLetExists:
		return max(freeVarsInExpr(e.LetExistsVal, depth), freeVarsInExpr(e.LetExistsBody, depth+1))
	case ExprMakeExists:
		return max(freeVarsInExpr(e.MakeExistsBody, depth), 0)
	}
	return 0
}

func freeTypesInExpr(e *Expr, valueDepth, typeDepth int) int {
	if e == nil {
		return 0
	}
	switch e.Tag {
	case ExprFunc:
		argFree := freeInType(e.ArgType, typeDepth+e.NumTypeParams)
		bodyFree := freeTypesInExpr(e.FuncBody, valueDepth+1, typeDepth+e.NumTypeParams)
		return max(argFree, bodyFree)
	case ExprApp:
		calleeFree := freeTypesInExpr(e.AppCallee, valueDepth, typeDepth)
		argFree := freeTypesInExpr(e.AppArg, valueDepth, typeDepth)
		tpFree := 0
		for i := range e.AppTypeParams {
			tpFree = max(tpFree, freeInType(&e.AppTypeParams[i], typeDepth))
		}
		return max(calleeFree, max(argFree, tpFree))
	case ExprPair:
		return max(freeTypesInExpr(e.PairLeft, valueDepth, typeDepth), freeTypesInExpr(e.PairRight, valueDepth, typeDepth))
	case ExprLet:
		return max(freeTypesInExpr(e.LetVal, valueDepth, typeDepth), freeTypesInExpr(e.LetBody, valueDepth+e.NumNames, typeDepth))
	case ExprLetExists:
		valFree := freeTypesInExpr(e.LetExistsVal, valueDepth, typeDepth)
		bodyFree := freeTypesInExpr(e.LetExistsBody, valueDepth+1, typeDepth+e.NumTypeNames)
		return max(valFree, bodyFree)
	case ExprMakeExists:
		witFree := 0
		for i := range e.WitnessTypes {
			witFree = max(witFree, freeInType(&e.WitnessTypes[i], typeDepth))
		}
		tbFree := freeInType(e.MakeExistsTypeBody, typeDepth+e.NumTypes)
		bodyFree := freeTypesInExpr(e.MakeExistsBody, valueDepth, typeDepth)
		return max(witFree, max(tbFree, bodyFree))
	}
	return 0
}

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

package ast

import (
	"fmt"
	"strings"
)

// String renders an Ident back to its `name` or `name#id` surface form.
func (i Ident) String() string {
	if i.CollisionID == 0 {
		return i.Name
	}
	return fmt.Sprintf("%s#%d", i.Name, i.CollisionID)
}

// String renders a Kind back to surface syntax, used by round-trip
// tests and for debugging; the internal tree has no equivalent printer
// since it has no names left to print.
func (k Kind) String() string {
	switch k.Tag {
	case KindType:
		return "*"
	case KindPlace:
		return "Place"
	case KindVersion:
		return "Version"
	case KindConstructor:
		parts := make([]string, len(k.Params))
		for i, p := range k.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, "; "), k.Result.String())
	}
	return "<invalid kind>"
}

func (p TypeParam) String() string {
	return fmt.Sprintf("%s : %s", p.Ident, p.Kind)
}

// String renders a Type back to surface syntax.
func (t Type) String() string {
	switch t.Tag {
	case TypeUnit:
		return "()"
	case TypeVar:
		return t.Var.String()
	case TypeQuantified:
		kw := "exists"
		if t.Quantifier == ForAll {
			kw = "forall"
		}
		return fmt.Sprintf("%s {%s} %s", kw, t.QParam, t.QBody)
	case TypeFunc:
		if len(t.FuncParams) == 0 {
			return fmt.Sprintf("%s -> %s", t.FuncArg, t.FuncRet)
		}
		parts := make([]string, len(t.FuncParams))
		for i, p := range t.FuncParams {
			parts[i] = p.String()
		}
		return fmt.Sprintf("forall {%s} %s -> %s", strings.Join(parts, "; "), t.FuncArg, t.FuncRet)
	case TypePair:
		return fmt.Sprintf("%s, %s", t.PairLeft, t.PairRight)
	case TypeApp:
		return fmt.Sprintf("%s(%s)", t.AppCtor, t.AppParam)
	}
	return "<invalid type>"
}

// String renders an Expr back to surface syntax.
func (e Expr) String() string {
	switch e.Tag {
	case ExprUnit:
		return "()"
	case ExprVar:
		if e.Usage == Move {
			return "move " + e.Var.String()
		}
		return e.Var.String()
	case ExprFunc:
		var tp string
		if len(e.FuncTypeParams) > 0 {
			parts := make([]string, len(e.FuncTypeParams))
			for i, p := range e.FuncTypeParams {
				parts[i] = p.String()
			}
			tp = fmt.Sprintf("{%s}", strings.Join(parts, "; "))
		}
		return fmt.Sprintf("func %s(%s : %s) -> %s", tp, e.FuncArgName, e.FuncArgType, e.FuncBody)
	case ExprApp:
		var tp string
		if len(e.AppTypeParams) > 0 {
			parts := make([]string, len(e.AppTypeParams))
			for i, p := range e.AppTypeParams {
				parts[i] = p.String()
			}
			tp = fmt.Sprintf("{%s}", strings.Join(parts, "; "))
		}
		return fmt.Sprintf("%s%s(%s)", e.AppCallee, tp, e.AppArg)
	case ExprPair:
		return fmt.Sprintf("%s, %s", e.PairLeft, e.PairRight)
	case ExprLet:
		names := make([]string, len(e.LetNames))
		for i, n := range e.LetNames {
			names[i] = n.String()
		}
		return fmt.Sprintf("let %s = %s in %s", strings.Join(names, ", "), e.LetVal, e.LetBody)
	case ExprLetExists:
		names := make([]string, len(e.LetExistsTypeNames))
		for i, n := range e.LetExistsTypeNames {
			names[i] = n.String()
		}
		return fmt.Sprintf("let_exists {%s} %s = %s in %s",
			strings.Join(names, "; "), e.LetExistsValName, e.LetExistsVal, e.LetExistsBody)
	case ExprMakeExists:
		parts := make([]string, len(e.MakeExistsParams))
		for i, p := range e.MakeExistsParams {
			parts[i] = fmt.Sprintf("%s = %s", p.Ident, p.Type)
		}
		return fmt.Sprintf("make_exists {%s} %s of %s",
			strings.Join(parts, "; "), e.MakeExistsTypeBody, e.MakeExistsBody)
	}
	return "<invalid expr>"
}

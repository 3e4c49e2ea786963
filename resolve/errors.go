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

package resolve

import (
	"fmt"

	"github.com/kralicky/quill/ast"
)

// Namespace distinguishes which of the two parallel environments a
// DuplicateBindingError occurred in.
type Namespace int

const (
	ValueNamespace Namespace = iota
	TypeNamespace
)

func (n Namespace) String() string {
	if n == TypeNamespace {
		return "type"
	}
	return "value"
}

// Error is the sealed interface implemented by every conversion-time
// error, distinguishing unbound-name errors (the caller's fault: an
// unknown free name) from duplicate-binding errors (the input tree
// tried to shadow an already-active binding).
type Error interface {
	error
	isConvertError()
}

// UnboundValueError reports a value-level identifier with no binding
// in scope.
type UnboundValueError struct {
	Ident ast.Ident
}

func (*UnboundValueError) isConvertError() {}

func (e *UnboundValueError) Error() string {
	return fmt.Sprintf("unbound value %s", e.Ident)
}

// UnboundTypeError reports a type-level identifier with no binding in
// scope.
type UnboundTypeError struct {
	Ident ast.Ident
}

func (*UnboundTypeError) isConvertError() {}

func (e *UnboundTypeError) Error() string {
	return fmt.Sprintf("unbound type %s", e.Ident)
}

// DuplicateBindingError reports an attempt to add an ident that is
// already present in the given namespace's active environment.
type DuplicateBindingError struct {
	Ident ast.Ident
	In    Namespace
}

func (*DuplicateBindingError) isConvertError() {}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("duplicate %s binding %s", e.In, e.Ident)
}

var (
	_ Error = (*UnboundValueError)(nil)
	_ Error = (*UnboundTypeError)(nil)
	_ Error = (*DuplicateBindingError)(nil)
)

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

import "github.com/kralicky/quill/ast"

// Env is a contiguous, append-only ordered sequence of idents. It
// supports the scoped push/pop the converter needs: Snapshot records
// the current depth, and RestoreTo truncates back to it, discarding
// every name added since.
//
// Lookup returns the zero-based index counted from the front (the
// bottom of the stack) at which an ident was bound. This index is a
// de Bruijn *level*: it never changes once assigned, even as more
// names are pushed above it, which is what lets the converter form a
// stable (context_size, index) reference pair by pairing it with the
// environment's length at the moment of the reference.
type Env struct {
	ns    Namespace
	names []ast.Ident
}

// NewEnv returns an empty environment for the given namespace; ns is
// only used to label DuplicateBindingError values raised by Add.
func NewEnv(ns Namespace) *Env {
	return &Env{ns: ns}
}

// Len reports how many idents are currently bound.
func (e *Env) Len() int {
	return len(e.names)
}

// Add appends ident, failing if any currently active entry is equal
// to it (duplicate detection is linear by intent; environments are
// small).
func (e *Env) Add(id ast.Ident) Error {
	for _, existing := range e.names {
		if existing.Equal(id) {
			return &DuplicateBindingError{Ident: id, In: e.ns}
		}
	}
	e.names = append(e.names, id)
	return nil
}

// Lookup reports the front-relative index of ident, or ok == false if
// it is not bound.
func (e *Env) Lookup(id ast.Ident) (index int, ok bool) {
	for i, existing := range e.names {
		if existing.Equal(id) {
			return i, true
		}
	}
	return 0, false
}

// Snapshot returns the current depth, to be passed to RestoreTo once
// a scoped extension's work is done.
func (e *Env) Snapshot() int {
	return len(e.names)
}

// RestoreTo truncates the environment back to a depth previously
// returned by Snapshot, popping every name added since.
func (e *Env) RestoreTo(depth int) {
	e.names = e.names[:depth]
}

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

// Package symtab is a small ordered registry of the free top-level
// names a caller wants visible before calling resolve.ConvertExpr.
// A resolve.Context needs its two name environments pre-populated with
// free-name declarations before conversion; this is that piece,
// repurposing the same adaptive radix tree the linker uses for its
// descriptor table, keyed here by ident name and collision id instead
// of qualified symbol path.
package symtab

import (
	"fmt"

	art "github.com/plar/go-adaptive-radix-tree"

	"github.com/kralicky/quill/ast"
)

// Table is an ordered, duplicate-checked set of free idents, keyed by
// name and collision id together (`name#id`) so that two idents
// sharing a name but not a collision id coexist.
type Table struct {
	tree  art.Tree
	order []ast.Ident
}

// New returns an empty Table.
func New() *Table {
	return &Table{tree: art.New()}
}

type entry struct {
	ident ast.Ident
}

func key(id ast.Ident) art.Key {
	return art.Key(fmt.Sprintf("%s#%d", id.Name, id.CollisionID))
}

// Declare registers id as a free name, returning an error if it was
// already declared.
func (t *Table) Declare(id ast.Ident) error {
	k := key(id)
	if _, found := t.tree.Search(k); found {
		return fmt.Errorf("symtab: %s already declared", id)
	}
	t.tree.Insert(k, entry{ident: id})
	t.order = append(t.order, id)
	return nil
}

// Has reports whether id was declared.
func (t *Table) Has(id ast.Ident) bool {
	_, found := t.tree.Search(key(id))
	return found
}

// Idents returns every declared ident in declaration order.
func (t *Table) Idents() []ast.Ident {
	out := make([]ast.Ident, len(t.order))
	copy(out, t.order)
	return out
}

// Len reports how many idents have been declared.
func (t *Table) Len() int {
	return len(t.order)
}

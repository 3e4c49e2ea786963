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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kralicky/quill/ast"
)

func ident(name string) ast.Ident {
	return ast.Ident{Name: name}
}

func TestEnvLookupIsFrontRelative(t *testing.T) {
	e := NewEnv(ValueNamespace)
	require.Nil(t, e.Add(ident("x")))
	require.Nil(t, e.Add(ident("y")))
	require.Nil(t, e.Add(ident("z")))

	idx, ok := e.Lookup(ident("x"))
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = e.Lookup(ident("y"))
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = e.Lookup(ident("z"))
	require.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestEnvLookupMissing(t *testing.T) {
	e := NewEnv(ValueNamespace)
	require.Nil(t, e.Add(ident("x")))
	_, ok := e.Lookup(ident("nope"))
	assert.False(t, ok)
}

func TestEnvAddDuplicateRejected(t *testing.T) {
	e := NewEnv(ValueNamespace)
	require.Nil(t, e.Add(ident("x")))
	err := e.Add(ident("x"))
	require.NotNil(t, err)
	_, ok := err.(*DuplicateBindingError)
	assert.True(t, ok)
}

func TestEnvDistinguishesCollisionID(t *testing.T) {
	e := NewEnv(ValueNamespace)
	require.Nil(t, e.Add(ident("x")))
	x2 := ast.Ident{Name: "x", CollisionID: 2}
	require.Nil(t, e.Add(x2))
	assert.Equal(t, 2, e.Len())
}

func TestEnvSnapshotRestore(t *testing.T) {
	e := NewEnv(ValueNamespace)
	require.Nil(t, e.Add(ident("x")))
	mark := e.Snapshot()
	require.Nil(t, e.Add(ident("y")))
	assert.Equal(t, 2, e.Len())
	e.RestoreTo(mark)
	assert.Equal(t, 1, e.Len())
	_, ok := e.Lookup(ident("y"))
	assert.False(t, ok)
	_, ok = e.Lookup(ident("x"))
	assert.True(t, ok)
}

func TestEnvRestoreAllowsReAddingPoppedName(t *testing.T) {
	e := NewEnv(ValueNamespace)
	mark := e.Snapshot()
	require.Nil(t, e.Add(ident("x")))
	e.RestoreTo(mark)
	// x was popped, so it is no longer a duplicate.
	require.Nil(t, e.Add(ident("x")))
}

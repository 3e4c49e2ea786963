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

package quillutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kralicky/quill/ast"
)

func TestParseAllPreservesOrder(t *testing.T) {
	sources := []string{"a", "b", "c"}
	results, err := ParseAll(context.Background(), sources, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, name := range []string{"a", "b", "c"} {
		require.Equal(t, ast.ExprVar, results[i].Tag)
		assert.Equal(t, name, results[i].Var.Name)
	}
}

func TestParseAllUnboundedConcurrency(t *testing.T) {
	sources := []string{"x", "y"}
	results, err := ParseAll(context.Background(), sources, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestParseAllSurfacesFirstError(t *testing.T) {
	sources := []string{"a", "@", "c"}
	_, err := ParseAll(context.Background(), sources, 1)
	require.Error(t, err)
}

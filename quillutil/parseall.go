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

// Package quillutil offers outer conveniences on top of package
// quill's pure, synchronous entry points. The front end itself stays
// single-threaded and non-suspending; ParseAll is strictly a host-side
// convenience for running many independent parses at once, the way
// compiler.go gates its own parallel compilation with a semaphore.
package quillutil

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/kralicky/quill/ast"
	"github.com/kralicky/quill/parser"
)

// ParseAll parses every source in sources concurrently, each with its
// own lexer and parser context, and returns the results in the same
// order as the input. maxConcurrency bounds how many parses run at
// once; a value <= 0 means unbounded.
//
// The first error encountered aborts the remaining in-flight parses'
// results from being used, matching the front end's no-recovery rule:
// ParseAll waits for every started parse to finish and then returns
// nil results with the first error reported, a parser.Error (or the
// context's error when a parse could not acquire the semaphore). The
// error does not say which source failed.
func ParseAll(ctx context.Context, sources []string, maxConcurrency int64) ([]ast.Expr, error) {
	results := make([]ast.Expr, len(sources))

	grp, gctx := errgroup.WithContext(ctx)
	var sem *semaphore.Weighted
	if maxConcurrency > 0 {
		sem = semaphore.NewWeighted(maxConcurrency)
	}

	for i, src := range sources {
		i, src := i, src
		grp.Go(func() error {
			if sem != nil {
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)
			}
			e, perr := parser.ParseExpr(src)
			if perr != nil {
				return perr
			}
			results[i] = e
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

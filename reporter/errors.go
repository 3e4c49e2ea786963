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

// Package reporter carries structured, positioned errors for the
// parser, which latches its first failure in a Handler. Unlike a
// multi-file compiler that collects every diagnostic it can find, the
// front end stops at the first failure, so Handler only ever remembers
// one error: the first one reported.
package reporter

import (
	"errors"
	"fmt"
)

// ErrInvalidSource is returned by a Handler's HandleError method once it
// has already latched a failure and is asked to report another one.
var ErrInvalidSource = errors.New("quill: invalid source, prior error already reported")

// ErrorWithPos is an error tied to a byte offset in the source that
// produced it.
type ErrorWithPos interface {
	error
	// Offset returns the byte offset that caused the underlying error.
	Offset() int
	// Unwrap returns the underlying error.
	Unwrap() error
}

// Error creates a new ErrorWithPos from the given error and byte offset.
func Error(offset int, err error) ErrorWithPos {
	return errorWithOffset{offset: offset, underlying: err}
}

// Errorf creates a new ErrorWithPos whose underlying error is created
// using the given message format and arguments (via fmt.Errorf).
func Errorf(offset int, format string, args ...interface{}) ErrorWithPos {
	return errorWithOffset{offset: offset, underlying: fmt.Errorf(format, args...)}
}

type errorWithOffset struct {
	underlying error
	offset     int
}

func (e errorWithOffset) Error() string {
	return fmt.Sprintf("offset %d: %v", e.offset, e.underlying)
}

func (e errorWithOffset) Offset() int {
	return e.offset
}

func (e errorWithOffset) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithOffset{}

// Handler latches the first error reported to it and ignores the rest.
// It is not safe for concurrent use; each parse/convert call owns its
// own Handler, matching the front end's single-threaded, synchronous
// resource model.
type Handler struct {
	first ErrorWithPos
}

// NewHandler returns a Handler with no latched error.
func NewHandler() *Handler {
	return &Handler{}
}

// HandleError latches err as the first error if none has been latched
// yet, and always returns a non-nil error: either the freshly reported
// one or ErrInvalidSource if a prior one already won.
func (h *Handler) HandleError(err ErrorWithPos) error {
	if h.first != nil {
		return ErrInvalidSource
	}
	h.first = err
	return err
}

// Error returns the first latched error, or nil if none was reported.
func (h *Handler) Error() ErrorWithPos {
	return h.first
}

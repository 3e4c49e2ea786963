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

// Package token defines the lexical tokens produced by package lexer
// and consumed by package parser.
package token

import "fmt"

// Pos is a zero-based byte offset into the source string.
type Pos int

// Kind identifies the lexical class of a Token.
type Kind int

const (
	EOF Kind = iota
	RawName
	QuotedName
	Integer

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	Semi
	Comma
	Colon
	Star
	Arrow
	Equals
	Hash

	// Keywords
	KwMove
	KwLet
	KwLetExists
	KwMakeExists
	KwFunc
	KwExists
	KwForAll
	KwOf
	KwIn
	KwPlace
	KwVersion
)

var kindNames = map[Kind]string{
	EOF:          "EOF",
	RawName:      "name",
	QuotedName:   "quoted name",
	Integer:      "integer",
	LParen:       "(",
	RParen:       ")",
	LBrace:       "{",
	RBrace:       "}",
	Semi:         ";",
	Comma:        ",",
	Colon:        ":",
	Star:         "*",
	Arrow:        "->",
	Equals:       "=",
	Hash:         "#",
	KwMove:       "move",
	KwLet:        "let",
	KwLetExists:  "let_exists",
	KwMakeExists: "make_exists",
	KwFunc:       "func",
	KwExists:     "exists",
	KwForAll:     "forall",
	KwOf:         "of",
	KwIn:         "in",
	KwPlace:      "Place",
	KwVersion:    "Version",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps the bare-word spelling of every keyword to its Kind.
// RawName tokens are looked up here after lexing to decide whether they
// are actually keywords.
var Keywords = map[string]Kind{
	"move":        KwMove,
	"let":         KwLet,
	"let_exists":  KwLetExists,
	"make_exists": KwMakeExists,
	"func":        KwFunc,
	"exists":      KwExists,
	"forall":      KwForAll,
	"of":          KwOf,
	"in":          KwIn,
	"Place":       KwPlace,
	"Version":     KwVersion,
}

// Token is one lexical unit together with its source span and, for
// RawName/QuotedName/Integer, its decoded value.
type Token struct {
	Kind  Kind
	Start Pos
	End   Pos

	// Text holds the decoded identifier text for RawName and
	// QuotedName tokens.
	Text string
	// Int holds the decoded value for Integer tokens.
	Int uint64
}

func (t Token) String() string {
	switch t.Kind {
	case RawName, QuotedName:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case Integer:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Int)
	default:
		return t.Kind.String()
	}
}

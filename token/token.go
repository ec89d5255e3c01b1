// Copyright 2024 The tree-sitter-codon Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

// Package token defines the terminal symbols the external scanner can
// produce and the requested-kind sets the host grammar passes to each
// scan call.
package token

import "strings"

// Kind identifies one terminal symbol produced by the external scanner.
// The numbering mirrors the order the host grammar declares its external
// tokens in.
type Kind uint8

const (
	Newline Kind = iota
	Indent
	Dedent
	StringStart
	StringContent
	EscapeInterpolation
	StringEnd
	ExternContent

	numKinds
)

var kindNames = [numKinds]string{
	Newline:             "NEWLINE",
	Indent:              "INDENT",
	Dedent:              "DEDENT",
	StringStart:         "STRING_START",
	StringContent:       "STRING_CONTENT",
	EscapeInterpolation: "ESCAPE_INTERPOLATION",
	StringEnd:           "STRING_END",
	ExternContent:       "EXTERN_CONTENT",
}

func (k Kind) String() string {
	if k >= numKinds {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// Set is the collection of kinds the host considers syntactically valid
// for one scan call. The zero Set is empty.
type Set uint16

// NewSet returns a Set containing exactly the given kinds.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has reports whether k is in the set.
func (s Set) Has(k Kind) bool {
	return s&(1<<k) != 0
}

// HasAny reports whether at least one of the given kinds is in the set.
func (s Set) HasAny(kinds ...Kind) bool {
	for _, k := range kinds {
		if s.Has(k) {
			return true
		}
	}
	return false
}

// With returns a copy of s with k added.
func (s Set) With(k Kind) Set {
	return s | 1<<k
}

// Without returns a copy of s with k removed.
func (s Set) Without(k Kind) Set {
	return s &^ (1 << k)
}

func (s Set) String() string {
	var names []string
	for k := Kind(0); k < numKinds; k++ {
		if s.Has(k) {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, " ") + "}"
}

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

// Package codon implements the external scanner for the Codon grammar:
// the indentation-sensitive tokens (NEWLINE, INDENT, DEDENT), the string
// literal machinery (prefixes, triple quotes, f-string interpolation),
// and verbatim extern block lines. The host parser drives it one token
// at a time, telling it before each call which token kinds the grammar
// would currently accept, and snapshots its state around incremental
// re-scans.
package codon

import (
	"github.com/phdye/tree-sitter-codon/token"
)

// Scanner holds the persistent tokenizer state for one parsing session:
// the stack of open indentation widths and the stack of open string
// delimiters. It is not safe for concurrent use; each session owns its
// own Scanner.
type Scanner struct {
	indents    []uint16
	delimiters []delimiter
}

// New returns a Scanner with empty state, ready for a fresh session.
func New() *Scanner {
	return &Scanner{}
}

// InsideFString reports whether the innermost open string literal is an
// interpolated (format) string. It is derived from the delimiter stack
// on every call rather than stored, so it can never drift out of sync
// with push/pop sequences.
func (s *Scanner) InsideFString() bool {
	n := len(s.delimiters)
	return n > 0 && s.delimiters[n-1].format()
}

// IndentDepth returns the number of currently open indentation levels.
func (s *Scanner) IndentDepth() int { return len(s.indents) }

// OpenStrings returns the number of currently open string literals.
func (s *Scanner) OpenStrings() int { return len(s.delimiters) }

// Scan produces at most one token starting at the cursor position, given
// the set of kinds the host grammar currently accepts. It returns false
// when this scanner has no opinion; the host then falls back to its own
// table-driven matching. Malformed input never produces an error here,
// only a decline or a shorter token, so structural error reporting stays
// with the host parser.
func (s *Scanner) Scan(cur Cursor, valid token.Set) (token.Kind, bool) {
	// Close remaining blocks at end of input, one level per call.
	if valid.Has(token.Dedent) && len(s.indents) > 0 && cur.EOF() {
		s.indents = s.indents[:len(s.indents)-1]
		cur.MarkEnd()
		return token.Dedent, true
	}

	if valid.HasAny(token.StringStart, token.StringContent, token.EscapeInterpolation, token.StringEnd) {
		if kind, ok := s.scanString(cur, valid); ok {
			return kind, true
		}
	}

	if valid.Has(token.ExternContent) {
		if kind, ok := s.scanExtern(cur); ok {
			return kind, true
		}
	}

	if valid.HasAny(token.Newline, token.Indent, token.Dedent) {
		if kind, ok := s.scanLine(cur, valid); ok {
			return kind, true
		}
	}

	return 0, false
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t'
}

func isLineBreak(c rune) bool {
	return c == '\n' || c == '\r'
}

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

package codon

import (
	"math"

	"github.com/phdye/tree-sitter-codon/token"
)

// scanLine classifies the next physical line transition as NEWLINE,
// INDENT, or DEDENT against the indent stack. A line that dedents past
// several levels pops exactly one level per call; the host re-invokes at
// the same logical position until the stack catches up, one DEDENT
// terminal per closed block.
func (s *Scanner) scanLine(cur Cursor, valid token.Set) (token.Kind, bool) {
	width := 0
	for isSpace(cur.Lookahead()) {
		width++
		cur.Skip()
	}

	if cur.Lookahead() == '#' {
		for !isLineBreak(cur.Lookahead()) && !cur.EOF() {
			cur.Skip()
		}
	}

	if !isLineBreak(cur.Lookahead()) {
		// No line break under the cursor. When the grammar asks for
		// INDENT/DEDENT without NEWLINE, a previous token already
		// consumed the line break and the cursor sits at the start of
		// the new line; classify its leading width directly. This is
		// how a suite opens after a committed NEWLINE and how the
		// second and later levels of a multi-level dedent are emitted.
		if cur.EOF() || valid.Has(token.Newline) || !valid.HasAny(token.Indent, token.Dedent) {
			return 0, false
		}
		return s.classifyIndent(cur, valid, clampWidth(width), false)
	}

	cur.Advance()
	if cur.Lookahead() == '\n' {
		cur.Advance()
	}
	// Provisional NEWLINE; an INDENT decision moves the mark past the
	// indentation below.
	cur.MarkEnd()

	indent := countIndent(cur)

	// Blank and comment-only lines never decide INDENT/DEDENT; measure
	// the first line that has real content.
	for isLineBreak(cur.Lookahead()) || cur.Lookahead() == '#' {
		if cur.Lookahead() == '#' {
			for !isLineBreak(cur.Lookahead()) && !cur.EOF() {
				cur.Skip()
			}
		}
		if isLineBreak(cur.Lookahead()) {
			cur.Skip()
			if cur.Lookahead() == '\n' {
				cur.Skip()
			}
		}
		indent = countIndent(cur)
	}

	return s.classifyIndent(cur, valid, indent, true)
}

// classifyIndent compares a measured line width against the indent stack
// and emits at most one token. newlineOK distinguishes the ordinary path
// (a line break was consumed this call, NEWLINE may be emitted) from the
// start-of-suite path (the break belongs to an earlier token).
func (s *Scanner) classifyIndent(cur Cursor, valid token.Set, indent uint16, newlineOK bool) (token.Kind, bool) {
	var current uint16
	if n := len(s.indents); n > 0 {
		current = s.indents[n-1]
	}

	if indent > current && valid.Has(token.Indent) {
		s.indents = append(s.indents, indent)
		cur.MarkEnd()
		return token.Indent, true
	}

	if indent < current && valid.Has(token.Dedent) {
		s.indents = s.indents[:len(s.indents)-1]
		return token.Dedent, true
	}

	if newlineOK && valid.Has(token.Newline) {
		return token.Newline, true
	}
	return 0, false
}

func countIndent(cur Cursor) uint16 {
	width := 0
	for isSpace(cur.Lookahead()) {
		width++
		cur.Skip()
	}
	return clampWidth(width)
}

// clampWidth saturates a measured width at 65535, the limit the
// serialized state can carry; a deeper line then compares equal to an
// already-saturated top and yields NEWLINE instead of corrupting the
// strictly-increasing stack.
func clampWidth(width int) uint16 {
	if width > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(width)
}

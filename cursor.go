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

// Cursor is the read interface the host parser exposes to the scanner for
// one scan call. The scanner never rewinds: consumed code points that end
// up past the marked token end are abandoned by the host when the call
// declines or the token span stops short of the cursor position.
type Cursor interface {
	// Lookahead returns the code point under the cursor, or 0 at end of
	// input.
	Lookahead() rune
	// Advance consumes the code point under the cursor as significant
	// token text.
	Advance()
	// Skip consumes the code point under the cursor as insignificant
	// (whitespace, comments); it still moves the cursor.
	Skip()
	// MarkEnd sets the end of the pending token at the current cursor
	// position. Later Advance/Skip calls do not extend the token unless
	// MarkEnd is called again.
	MarkEnd()
	// EOF reports whether the cursor is at end of input.
	EOF() bool
}

// StringCursor is a Cursor over an in-memory source text. The real host
// supplies its own cursor; this one backs the tests and the codon-scan
// tool. Token spans are positional: a token runs from the position the
// cursor was at when NextToken was last called to the marked end.
type StringCursor struct {
	src   []rune
	pos   int
	start int
	mark  int
}

// NewStringCursor returns a cursor positioned at the start of src.
func NewStringCursor(src string) *StringCursor {
	return &StringCursor{src: []rune(src)}
}

func (c *StringCursor) Lookahead() rune {
	if c.pos >= len(c.src) {
		return 0
	}
	return c.src[c.pos]
}

func (c *StringCursor) Advance() {
	if c.pos < len(c.src) {
		c.pos++
	}
}

func (c *StringCursor) Skip() {
	if c.pos < len(c.src) {
		c.pos++
	}
}

func (c *StringCursor) MarkEnd() {
	c.mark = c.pos
}

func (c *StringCursor) EOF() bool {
	return c.pos >= len(c.src)
}

// NextToken begins a new token at the current position. The host calls
// this before each scan; a scan that declines leaves the pending token
// empty.
func (c *StringCursor) NextToken() {
	c.start = c.pos
	c.mark = c.pos
}

// TokenText returns the text of the pending token, from its start to the
// marked end.
func (c *StringCursor) TokenText() string {
	if c.mark < c.start {
		return ""
	}
	return string(c.src[c.start:c.mark])
}

// Pos returns the cursor position in code points from the start of the
// source.
func (c *StringCursor) Pos() int { return c.pos }

// Mark returns the marked token end position.
func (c *StringCursor) Mark() int { return c.mark }

// Seek moves the cursor to an absolute position. Hosts use it to retry a
// region after a declined speculative scan.
func (c *StringCursor) Seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(c.src) {
		pos = len(c.src)
	}
	c.pos = pos
	c.start = pos
	c.mark = pos
}

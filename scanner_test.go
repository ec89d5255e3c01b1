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
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phdye/tree-sitter-codon/token"
)

// harness drives the scanner the way the host parser does: each call
// starts a fresh token at the cursor position; on success the cursor
// resumes at the marked token end, on decline it rewinds to where the
// call started.
type harness struct {
	t   *testing.T
	sc  *Scanner
	cur *StringCursor
}

func newHarness(t *testing.T, src string) *harness {
	return &harness{t: t, sc: New(), cur: NewStringCursor(src)}
}

func (h *harness) scan(kinds ...token.Kind) (token.Kind, string, bool) {
	start := h.cur.Pos()
	h.cur.NextToken()
	kind, ok := h.sc.Scan(h.cur, token.NewSet(kinds...))
	if !ok {
		h.cur.Seek(start)
		return 0, "", false
	}
	text := h.cur.TokenText()
	h.cur.Seek(h.cur.Mark())
	return kind, text, true
}

func (h *harness) expect(want token.Kind, wantText string, kinds ...token.Kind) {
	h.t.Helper()
	kind, text, ok := h.scan(kinds...)
	require.True(h.t, ok, "expected %s at position %d", want, h.cur.Pos())
	require.Equal(h.t, want, kind)
	require.Equal(h.t, wantText, text)
}

func (h *harness) expectDecline(kinds ...token.Kind) {
	h.t.Helper()
	kind, _, ok := h.scan(kinds...)
	require.False(h.t, ok, "expected decline, got %s", kind)
}

// skipTo emulates the host's own table-driven lexer consuming source the
// scanner has no opinion on.
func (h *harness) skipTo(pos int) {
	h.cur.Seek(pos)
}

func TestIndentBasic(t *testing.T) {
	h := newHarness(t, "a\n    b\n")
	h.skipTo(1)
	h.expect(token.Newline, "\n", token.Newline)
	h.expect(token.Indent, "    ", token.Indent)
	require.Equal(t, 1, h.sc.IndentDepth())
	h.skipTo(7)
	h.expect(token.Newline, "\n", token.Newline)
	h.expect(token.Dedent, "", token.Dedent)
	require.Equal(t, 0, h.sc.IndentDepth())
	h.expectDecline(token.Dedent)
}

func TestNewlineOnlyWhenIndentNotRequested(t *testing.T) {
	h := newHarness(t, "a\n    b\n")
	h.skipTo(1)
	// Deeper line, but the grammar only accepts NEWLINE here.
	h.expect(token.Newline, "\n", token.Newline)
	require.Equal(t, 0, h.sc.IndentDepth())
}

func TestDedentPreferredOverNewline(t *testing.T) {
	h := newHarness(t, "a\n  b\nc\n")
	h.skipTo(1)
	h.expect(token.Newline, "\n", token.Newline)
	h.expect(token.Indent, "  ", token.Indent)
	h.skipTo(5)
	h.expect(token.Dedent, "\n", token.Newline, token.Indent, token.Dedent)
	require.Equal(t, 0, h.sc.IndentDepth())
}

func TestMultiLevelDedentOnePopPerCall(t *testing.T) {
	h := newHarness(t, "if x:\n  if y:\n    a\nb\n")
	h.skipTo(5)
	h.expect(token.Newline, "\n", token.Newline)
	h.expect(token.Indent, "  ", token.Indent)
	h.skipTo(13)
	h.expect(token.Newline, "\n", token.Newline)
	h.expect(token.Indent, "    ", token.Indent)
	require.Equal(t, 2, h.sc.IndentDepth())
	h.skipTo(19)
	h.expect(token.Newline, "\n", token.Newline)
	// The line under b closes two blocks; one pop per call.
	h.expect(token.Dedent, "", token.Dedent)
	require.Equal(t, 1, h.sc.IndentDepth())
	h.expect(token.Dedent, "", token.Dedent)
	require.Equal(t, 0, h.sc.IndentDepth())
	h.expectDecline(token.Dedent)
}

func TestBlankLineTransparent(t *testing.T) {
	h := newHarness(t, "if x:\n    a\n\n    b\n")
	h.skipTo(5)
	h.expect(token.Newline, "\n", token.Newline)
	h.expect(token.Indent, "    ", token.Indent)
	h.skipTo(11)
	// The blank line must not produce INDENT or DEDENT around it.
	h.expect(token.Newline, "\n", token.Newline, token.Indent, token.Dedent)
	require.Equal(t, 1, h.sc.IndentDepth())
}

func TestCommentOnlyLineTransparent(t *testing.T) {
	h := newHarness(t, "if x:\n    a\n    # note\n    b\n")
	h.skipTo(5)
	h.expect(token.Newline, "\n", token.Newline)
	h.expect(token.Indent, "    ", token.Indent)
	h.skipTo(11)
	h.expect(token.Newline, "\n", token.Newline, token.Indent, token.Dedent)
	require.Equal(t, 1, h.sc.IndentDepth())
}

func TestTrailingCommentBeforeNewline(t *testing.T) {
	h := newHarness(t, "a  # trailing\nb\n")
	h.skipTo(1)
	h.expect(token.Newline, "  # trailing\n", token.Newline, token.Indent, token.Dedent)
}

func TestCRLF(t *testing.T) {
	h := newHarness(t, "a\r\n    b\r\n")
	h.skipTo(1)
	h.expect(token.Newline, "\r\n", token.Newline)
	h.expect(token.Indent, "    ", token.Indent)
	h.skipTo(8)
	h.expect(token.Newline, "\r\n", token.Newline)
	h.expect(token.Dedent, "", token.Dedent)
}

func TestEOFDedentsOnePerCall(t *testing.T) {
	h := newHarness(t, "a\n  b\n    c\n")
	h.skipTo(1)
	h.expect(token.Newline, "\n", token.Newline)
	h.expect(token.Indent, "  ", token.Indent)
	h.skipTo(5)
	h.expect(token.Newline, "\n", token.Newline)
	h.expect(token.Indent, "    ", token.Indent)
	h.skipTo(11)
	h.expect(token.Newline, "\n", token.Newline)
	require.Equal(t, 2, h.sc.IndentDepth())
	h.expect(token.Dedent, "", token.Dedent)
	h.expect(token.Dedent, "", token.Dedent)
	require.Equal(t, 0, h.sc.IndentDepth())
	h.expectDecline(token.Dedent)
}

func TestDeclineWithoutLineBreak(t *testing.T) {
	h := newHarness(t, "abc")
	h.expectDecline(token.Newline, token.Indent, token.Dedent)
}

func TestDeclineIdempotent(t *testing.T) {
	h := newHarness(t, "abc def")
	h.skipTo(3)
	for i := 0; i < 2; i++ {
		h.expectDecline(token.Newline, token.Indent, token.Dedent)
		require.Equal(t, 3, h.cur.Pos())
		require.Equal(t, 0, h.sc.IndentDepth())
	}
}

func TestEmptyValidSetDeclines(t *testing.T) {
	h := newHarness(t, "a\n")
	h.skipTo(1)
	kind, ok := h.sc.Scan(h.cur, 0)
	require.False(t, ok)
	require.Equal(t, token.Kind(0), kind)
}

func TestExternContent(t *testing.T) {
	h := newHarness(t, "@llvm\ndef f():\n    ret i32 0\n")
	h.skipTo(19)
	h.expect(token.ExternContent, "ret i32 0", token.ExternContent)
	// The line break is left for the indentation machinery.
	h.expectDecline(token.ExternContent)
	h.expect(token.Newline, "\n", token.Newline, token.Dedent)
}

func TestExternContentDeclinesAtEOF(t *testing.T) {
	h := newHarness(t, "")
	h.expectDecline(token.ExternContent)
}

func requireStrictlyIncreasing(t *testing.T, indents []uint16) {
	t.Helper()
	for i := 1; i < len(indents); i++ {
		require.Less(t, indents[i-1], indents[i],
			"indent stack not strictly increasing: %v", indents)
	}
}

func TestIndentStackStrictlyIncreasingProperty(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for iter := 0; iter < 100; iter++ {
		var b strings.Builder
		b.WriteString("x\n")
		for i := 0; i < 30; i++ {
			b.WriteString(strings.Repeat(" ", rnd.Intn(12)))
			b.WriteString("x\n")
		}
		h := newHarness(t, b.String())
		for !h.cur.EOF() {
			if _, _, ok := h.scan(token.Newline, token.Indent, token.Dedent); !ok {
				h.skipTo(h.cur.Pos() + 1)
			}
			requireStrictlyIncreasing(t, h.sc.indents)
		}
		for {
			if _, _, ok := h.scan(token.Dedent); !ok {
				break
			}
			requireStrictlyIncreasing(t, h.sc.indents)
		}
		require.Equal(t, 0, h.sc.IndentDepth())
	}
}

func TestDedentCollapsesToStackMemberOnly(t *testing.T) {
	h := newHarness(t, "a\n  b\n      c\n    d\n")
	h.skipTo(1)
	h.expect(token.Newline, "\n", token.Newline)
	h.expect(token.Indent, "  ", token.Indent)
	h.skipTo(5)
	h.expect(token.Newline, "\n", token.Newline)
	h.expect(token.Indent, "      ", token.Indent)
	require.Equal(t, []uint16{2, 6}, h.sc.indents)
	h.skipTo(13)
	// Width 4 falls between stack entries: one pop first, then the
	// remaining width opens a fresh level only if INDENT is granted.
	h.expect(token.Dedent, "\n", token.Newline, token.Indent, token.Dedent)
	require.Equal(t, []uint16{2}, h.sc.indents)
	h.expect(token.Indent, "    ", token.Indent)
	require.Equal(t, []uint16{2, 4}, h.sc.indents)
}

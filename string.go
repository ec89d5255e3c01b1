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
	"github.com/phdye/tree-sitter-codon/token"
)

// delimiter records one open string literal: the quote character in the
// low byte, and mode bits above it. The packing is the serialized state
// layout, so it must not change.
type delimiter uint32

const (
	delimTriple delimiter = 0x100
	delimRaw    delimiter = 0x200
	delimFormat delimiter = 0x400
)

func makeDelimiter(quote rune, triple, raw, format bool) delimiter {
	d := delimiter(quote) & 0xff
	if triple {
		d |= delimTriple
	}
	if raw {
		d |= delimRaw
	}
	if format {
		d |= delimFormat
	}
	return d
}

func (d delimiter) quote() rune  { return rune(d & 0xff) }
func (d delimiter) triple() bool { return d&delimTriple != 0 }
func (d delimiter) raw() bool    { return d&delimRaw != 0 }
func (d delimiter) format() bool { return d&delimFormat != 0 }

// scanString handles the three string phases. The valid set gates which
// phase may fire; at most one fires per call.
func (s *Scanner) scanString(cur Cursor, valid token.Set) (token.Kind, bool) {
	// Opening phase: optional prefix letters, then a quote. If no quote
	// follows, the consumed letters are abandoned by the host and
	// re-lexed as an ordinary identifier.
	if valid.Has(token.StringStart) {
		var raw, format bool
	prefix:
		for {
			switch cur.Lookahead() {
			case 'r', 'R':
				raw = true
				cur.Advance()
			case 'f', 'F':
				format = true
				cur.Advance()
			case 'b', 'B', 'u', 'U':
				// Bytes and unicode prefixes select no scanning mode.
				cur.Advance()
			default:
				break prefix
			}
		}

		if q := cur.Lookahead(); q == '"' || q == '\'' {
			cur.Advance()
			triple := false
			if cur.Lookahead() == q {
				cur.Advance()
				if cur.Lookahead() == q {
					cur.Advance()
					triple = true
				} else {
					// Empty literal: the token covers both quotes and
					// nothing is left open, so no delimiter is pushed.
					cur.MarkEnd()
					return token.StringStart, true
				}
			}
			cur.MarkEnd()
			s.delimiters = append(s.delimiters, makeDelimiter(q, triple, raw, format))
			return token.StringStart, true
		}
		// No quote after the prefix letters: fall through and decline
		// unless a later phase applies at this position.
	}

	if valid.HasAny(token.StringContent, token.EscapeInterpolation) && len(s.delimiters) > 0 {
		return s.scanStringContent(cur, valid)
	}

	if valid.Has(token.StringEnd) && len(s.delimiters) > 0 {
		return s.scanStringEnd(cur, 0)
	}

	return 0, false
}

// scanStringContent accumulates literal content up to the next close
// sequence, interpolation brace, or line break, per the mode bits of the
// innermost open delimiter.
func (s *Scanner) scanStringContent(cur Cursor, valid token.Set) (token.Kind, bool) {
	d := s.delimiters[len(s.delimiters)-1]
	quote := d.quote()
	triple := d.triple()

	hasContent := false
	// Quote characters consumed while probing a triple close with no
	// accumulated content; the closing phase below finishes the close
	// without demanding three more.
	probed := 0

	for {
		if cur.EOF() {
			break
		}
		c := cur.Lookahead()

		if c == quote {
			if !triple {
				break
			}
			cur.MarkEnd()
			cur.Advance()
			if cur.Lookahead() == quote {
				cur.Advance()
				if cur.Lookahead() == quote {
					if hasContent {
						if !valid.Has(token.StringContent) {
							return 0, false
						}
						return token.StringContent, true
					}
					probed = 2
					break
				}
			}
			// One or two quotes not followed by a full close are
			// ordinary content.
			hasContent = true
			continue
		}

		if !triple && isLineBreak(c) {
			// Unterminated single-line string; emit what we have and
			// let the host report the structural error.
			break
		}

		if d.format() && c == '{' {
			if hasContent {
				if !valid.Has(token.StringContent) {
					return 0, false
				}
				cur.MarkEnd()
				return token.StringContent, true
			}
			cur.Advance()
			if cur.Lookahead() == '{' {
				if !valid.Has(token.EscapeInterpolation) {
					return 0, false
				}
				cur.Advance()
				cur.MarkEnd()
				return token.EscapeInterpolation, true
			}
			// Interpolation start: the host grammar parses the
			// embedded expression.
			return 0, false
		}

		if !d.raw() && c == '\\' {
			// Consume the escape pair without interpreting it;
			// decoding is a later compiler concern.
			cur.Advance()
			if !cur.EOF() {
				cur.Advance()
			}
			hasContent = true
			continue
		}

		cur.Advance()
		hasContent = true
	}

	if hasContent {
		if !valid.Has(token.StringContent) {
			return 0, false
		}
		cur.MarkEnd()
		return token.StringContent, true
	}

	if valid.Has(token.StringEnd) {
		return s.scanStringEnd(cur, probed)
	}
	return 0, false
}

// scanStringEnd matches the close sequence of the innermost open
// delimiter exactly, pops it, and emits STRING_END. probed counts quote
// characters the content phase already consumed toward a triple close in
// this same call.
func (s *Scanner) scanStringEnd(cur Cursor, probed int) (token.Kind, bool) {
	if len(s.delimiters) == 0 {
		return 0, false
	}
	d := s.delimiters[len(s.delimiters)-1]
	quote := d.quote()

	need := 1
	if d.triple() {
		need = 3 - probed
	}
	for i := 0; i < need; i++ {
		if cur.Lookahead() != quote {
			return 0, false
		}
		cur.Advance()
	}

	cur.MarkEnd()
	s.delimiters = s.delimiters[:len(s.delimiters)-1]
	return token.StringEnd, true
}

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
	"encoding/binary"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// SerializationBufferSize is the fixed snapshot capacity the host grants
// the scanner, matching tree-sitter's serialization buffer.
const SerializationBufferSize = 1024

// ErrStateTooLarge is returned by MarshalBinary when the scanner state
// does not fit in SerializationBufferSize bytes.
var ErrStateTooLarge = errors.New("scanner state exceeds serialization buffer capacity")

// Serialize writes the scanner state into buf and returns the number of
// bytes written. Layout, little-endian throughout: indent count (u32),
// one u16 per indent width, delimiter count (u32), one packed u32 per
// delimiter, one byte for the interpolation flag.
//
// A state that does not fit in buf yields 0; callers must treat a
// zero-length snapshot as "too large to save", not as empty state. The
// host protocol has no error channel here, so the degrade is silent on
// the wire; a warning is logged since the two cases are otherwise
// indistinguishable.
func (s *Scanner) Serialize(buf []byte) int {
	size := 0

	put32 := func(v uint32) bool {
		if size+4 > len(buf) {
			return false
		}
		binary.LittleEndian.PutUint32(buf[size:], v)
		size += 4
		return true
	}
	put16 := func(v uint16) bool {
		if size+2 > len(buf) {
			return false
		}
		binary.LittleEndian.PutUint16(buf[size:], v)
		size += 2
		return true
	}

	ok := put32(uint32(len(s.indents)))
	for _, w := range s.indents {
		ok = ok && put16(w)
	}
	ok = ok && put32(uint32(len(s.delimiters)))
	for _, d := range s.delimiters {
		ok = ok && put32(uint32(d))
	}
	if ok && size+1 <= len(buf) {
		flag := byte(0)
		if s.InsideFString() {
			flag = 1
		}
		buf[size] = flag
		size++
	} else {
		ok = false
	}

	if !ok {
		log.Warn("scanner state too large to snapshot",
			zap.Int("indents", len(s.indents)),
			zap.Int("delimiters", len(s.delimiters)),
			zap.Int("capacity", len(buf)))
		return 0
	}
	return size
}

// Deserialize resets the scanner and restores the state encoded in buf.
// It is the inverse of Serialize and tolerates truncated input: a short
// buffer restores whatever prefix of the state it carries, a zero-length
// buffer restores the empty state. It never reads past len(buf), and a
// restore fully replaces prior state rather than merging with it.
func (s *Scanner) Deserialize(buf []byte) {
	s.indents = s.indents[:0]
	s.delimiters = s.delimiters[:0]

	if len(buf) == 0 {
		return
	}

	size := 0
	get32 := func() (uint32, bool) {
		if size+4 > len(buf) {
			return 0, false
		}
		v := binary.LittleEndian.Uint32(buf[size:])
		size += 4
		return v, true
	}
	get16 := func() (uint16, bool) {
		if size+2 > len(buf) {
			return 0, false
		}
		v := binary.LittleEndian.Uint16(buf[size:])
		size += 2
		return v, true
	}

	indentCount, ok := get32()
	if !ok {
		return
	}
	for i := uint32(0); i < indentCount; i++ {
		w, ok := get16()
		if !ok {
			return
		}
		s.indents = append(s.indents, w)
	}

	delimCount, ok := get32()
	if !ok {
		return
	}
	for i := uint32(0); i < delimCount; i++ {
		d, ok := get32()
		if !ok {
			return
		}
		s.delimiters = append(s.delimiters, delimiter(d))
	}

	// The trailing flag byte is derivable from the delimiter stack; it
	// is kept in the layout for compatibility but not trusted as state.
}

// MarshalBinary implements encoding.BinaryMarshaler over the fixed-size
// codec, reporting the overflow case as an explicit error instead of the
// zero-length degrade of Serialize.
func (s *Scanner) MarshalBinary() ([]byte, error) {
	buf := make([]byte, SerializationBufferSize)
	n := s.Serialize(buf)
	if n == 0 {
		return nil, errors.AddStack(ErrStateTooLarge)
	}
	return buf[:n], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Scanner) UnmarshalBinary(data []byte) error {
	s.Deserialize(data)
	return nil
}

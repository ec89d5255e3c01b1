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
	"golang.org/x/exp/slices"
)

// Snapshot is a point-in-time copy of the scanner state. Hosts take one
// before a speculative scan region and restore it if the region is
// discarded, so stack mutations from abandoned scans never leak into
// committed state.
type Snapshot struct {
	indents    []uint16
	delimiters []delimiter
}

// Snapshot copies the current state. The copy is independent of later
// scanner mutations.
func (s *Scanner) Snapshot() Snapshot {
	return Snapshot{
		indents:    slices.Clone(s.indents),
		delimiters: slices.Clone(s.delimiters),
	}
}

// Restore replaces the scanner state with snap, discarding whatever the
// scanner held before.
func (s *Scanner) Restore(snap Snapshot) {
	s.indents = slices.Clone(snap.indents)
	s.delimiters = slices.Clone(snap.delimiters)
}

// Equal reports whether two snapshots capture the same state.
func (snap Snapshot) Equal(other Snapshot) bool {
	return slices.Equal(snap.indents, other.indents) &&
		slices.Equal(snap.delimiters, other.delimiters)
}

// StateEquals reports whether the scanner's current state matches snap.
func (s *Scanner) StateEquals(snap Snapshot) bool {
	return slices.Equal(s.indents, snap.indents) &&
		slices.Equal(s.delimiters, snap.delimiters)
}

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

// scanExtern consumes one verbatim line of an extern block, the body of
// an @llvm or @python decorated function. No escapes, no string
// machinery: everything up to the line break is content. The line break
// itself is declined so the ordinary NEWLINE/DEDENT machinery terminates
// the block by indentation.
func (s *Scanner) scanExtern(cur Cursor) (token.Kind, bool) {
	if cur.EOF() || isLineBreak(cur.Lookahead()) {
		return 0, false
	}
	for !cur.EOF() && !isLineBreak(cur.Lookahead()) {
		cur.Advance()
	}
	cur.MarkEnd()
	return token.ExternContent, true
}

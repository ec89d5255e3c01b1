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

// Command codon-scan tokenizes Codon source files with the external
// scanner and prints the resulting token stream, emulating the parts of
// the host parser the scanner needs: a kind-request policy, fallback
// lexing for tokens the scanner declines, and interpolation handoff.
// It exists for debugging scanner behavior outside a full parse.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"

	codon "github.com/phdye/tree-sitter-codon"
	"github.com/phdye/tree-sitter-codon/token"
)

const usage = `codon-scan: dump the external-scanner token stream of Codon sources.

Usage:
  codon-scan [-json] [-log-level level] <file ...>
`

// tokenRecord is one emitted token in the output stream. Fallback text
// the scanner declined is reported with kind "TEXT".
type tokenRecord struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func main() {
	jsonOutput := flag.Bool("json", false, "print the token stream as JSON")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	logger, props, err := log.InitLogger(&log.Config{Level: *logLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "codon-scan: %v\n", err)
		os.Exit(1)
	}
	log.ReplaceGlobals(logger, props)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	exit := 0
	for _, path := range flag.Args() {
		if err := dumpFile(path, *jsonOutput); err != nil {
			fmt.Fprintf(os.Stderr, "codon-scan: %s: %v\n", path, err)
			exit = 1
		}
	}
	os.Exit(exit)
}

func dumpFile(path string, jsonOutput bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Annotate(err, "read source")
	}

	tokens := tokenize(string(data))

	if jsonOutput {
		return errors.Annotate(
			json.MarshalWrite(os.Stdout, tokens, jsontext.Expand(true), jsontext.WithIndent("  ")),
			"encode token stream")
	}
	for _, tok := range tokens {
		fmt.Printf("%-20s %4d..%-4d %q\n", tok.Kind, tok.Start, tok.End, tok.Text)
	}
	return nil
}

// tokenize drives the scanner over src with a simplified host policy:
// outside strings it offers the line tokens plus STRING_START, inside a
// string it offers the content/close tokens, and anything the scanner
// declines is consumed as plain text up to the next decision point.
func tokenize(src string) []tokenRecord {
	sc := codon.New()
	cur := codon.NewStringCursor(src)
	runes := []rune(src)

	var out []tokenRecord
	record := func(kind, text string, start, end int) {
		out = append(out, tokenRecord{Kind: kind, Text: text, Start: start, End: end})
	}

	lineSet := token.NewSet(token.Newline, token.Indent, token.Dedent, token.StringStart)
	stringSet := token.NewSet(token.StringContent, token.EscapeInterpolation, token.StringEnd)
	suiteSet := token.NewSet(token.Indent, token.Dedent)

	last := token.Kind(255)
	for {
		start := cur.Pos()
		cur.NextToken()

		var kind token.Kind
		var ok bool
		switch {
		case sc.OpenStrings() > 0:
			kind, ok = sc.Scan(cur, stringSet)
		case last == token.Newline || last == token.Dedent:
			// After a committed line break the grammar offers the block
			// tokens on their own, so suites can open and multi-level
			// dedents can drain one pop at a time.
			if kind, ok = sc.Scan(cur, suiteSet); !ok {
				cur.Seek(start)
				cur.NextToken()
				kind, ok = sc.Scan(cur, lineSet)
			}
		default:
			kind, ok = sc.Scan(cur, lineSet)
		}

		if ok {
			last = kind
			end := cur.Mark()
			record(kind.String(), cur.TokenText(), start, end)
			cur.Seek(end)
			if end == start && cur.EOF() && sc.IndentDepth() == 0 {
				return out
			}
			continue
		}

		// Declined: reset and consume fallback text the way the host's
		// table-driven lexer would, one run at a time.
		cur.Seek(start)
		if cur.EOF() {
			return out
		}
		end := fallbackEnd(runes, start, sc.InsideFString())
		record("TEXT", string(runes[start:end]), start, end)
		cur.Seek(end)
		last = token.Kind(255)
	}
}

// fallbackEnd finds the end of a declined text run: a brace-balanced
// interpolation expression inside an f-string, otherwise a word of
// source text up to whitespace, a quote, or a brace.
func fallbackEnd(runes []rune, start int, inFString bool) int {
	if inFString && runes[start] == '{' {
		depth := 0
		for i := start; i < len(runes); i++ {
			switch runes[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return i + 1
				}
			}
		}
		return len(runes)
	}

	i := start
	for i < len(runes) {
		c := runes[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '"' || c == '\'' || c == '{' || c == '#' {
			break
		}
		i++
	}
	if i == start {
		i++
	}
	return i
}

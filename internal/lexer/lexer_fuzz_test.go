package lexer

import (
	"testing"

	"github.com/kolkov/unparser/internal/token"
)

// FuzzLexer tests that the lexer handles arbitrary input without panicking
// and produces valid tokens.
func FuzzLexer(f *testing.F) {
	seeds := []string{
		// Nodes
		`(send nil :foo)`,
		`(lvasgn :a (int 1))`,
		`(begin (int 1) (int 2))`,
		"(send\n  (int 1) :+\n  (int 2))",

		// Locations
		`(int @1:0-1:1 1)`,
		`(def @1:0-2:3 @end:2:0-2:3 :foo (args) nil)`,

		// Atoms
		`"hello" "with\nescape" "é"`,
		`:foo :"A B" :[]= :+@ :$0`,
		`1 -1 1_000 1.5 1e10 -Infinity NaN 3r 3/2r 2i`,

		// Edge cases
		``,
		`; comment only`,
		`"unterminated`,
		`:`,
		`@end:`,
		`3/2`,
		`"emoji 🎉"`,
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		l := New(data)

		tokenCount := 0
		const maxTokens = 10000 // Prevent infinite loops

		for tokenCount < maxTokens {
			tok := l.Scan()

			if tok.Pos.Line < 0 || tok.Pos.Column < 0 || tok.Pos.Offset < 0 {
				t.Errorf("invalid position: %v", tok.Pos)
			}
			if tok.Pos.Offset > len(data) {
				t.Errorf("offset %d past end of input (%d bytes)", tok.Pos.Offset, len(data))
			}

			if tok.Type == token.EOF {
				break
			}

			tokenCount++
		}

		if tokenCount >= maxTokens {
			t.Skip("too many tokens, possibly malformed input")
		}
	})
}

// FuzzLexerNumbers tests number scanning
func FuzzLexerNumbers(f *testing.F) {
	seeds := []string{
		`123`,
		`456.789`,
		`1e10`,
		`1.5e-3`,
		`1e`,
		`-`,
		`+Infinity`,
		`3/2r`,
		`1.5i`,
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		l := New(data)

		for i := 0; i <= len(data); i++ {
			tok := l.Scan()
			if tok.Type == token.EOF {
				return
			}
		}
		t.Errorf("lexer did not reach EOF in %d scans", len(data)+1)
	})
}

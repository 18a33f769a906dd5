package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// tok is a position-free view of a token for table comparisons
type tok struct {
	Type  TokenType
	Value string
	Num   int64
}

func summarize(tokens []Token) []tok {
	result := make([]tok, 0, len(tokens))
	for _, t := range tokens {
		result = append(result, tok{Type: t.Type, Value: t.Value, Num: t.Num})
	}
	return result
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "empty input still yields EOF",
			input: "",
			want:  []tok{{Type: EOF}},
		},
		{
			name:  "whitespace only",
			input: "   \t  ",
			want:  []tok{{Type: EOF}},
		},
		{
			name:  "single number",
			input: "42",
			want:  []tok{{Type: NUMBER, Value: "42", Num: 42}, {Type: EOF}},
		},
		{
			name:  "single identifier",
			input: "foo",
			want:  []tok{{Type: IDENTIFIER, Value: "foo"}, {Type: EOF}},
		},
		{
			name:  "simple addition",
			input: "1 + 2",
			want: []tok{
				{Type: NUMBER, Value: "1", Num: 1},
				{Type: PLUS, Value: "+"},
				{Type: NUMBER, Value: "2", Num: 2},
				{Type: EOF},
			},
		},
		{
			name:  "no whitespace between operators and operands",
			input: "1+2*3",
			want: []tok{
				{Type: NUMBER, Value: "1", Num: 1},
				{Type: PLUS, Value: "+"},
				{Type: NUMBER, Value: "2", Num: 2},
				{Type: STAR, Value: "*"},
				{Type: NUMBER, Value: "3", Num: 3},
				{Type: EOF},
			},
		},
		{
			name:  "adjacent punctuation tokenizes one byte at a time",
			input: "-(x)",
			want: []tok{
				{Type: MINUS, Value: "-"},
				{Type: LPAREN, Value: "("},
				{Type: IDENTIFIER, Value: "x"},
				{Type: RPAREN, Value: ")"},
				{Type: EOF},
			},
		},
		{
			name:  "call with arguments",
			input: "f(1, 2, 3)",
			want: []tok{
				{Type: IDENTIFIER, Value: "f"},
				{Type: LPAREN, Value: "("},
				{Type: NUMBER, Value: "1", Num: 1},
				{Type: COMMA, Value: ","},
				{Type: NUMBER, Value: "2", Num: 2},
				{Type: COMMA, Value: ","},
				{Type: NUMBER, Value: "3", Num: 3},
				{Type: RPAREN, Value: ")"},
				{Type: EOF},
			},
		},
		{
			name:  "all operators",
			input: "a + b - c * d / e ^ f",
			want: []tok{
				{Type: IDENTIFIER, Value: "a"},
				{Type: PLUS, Value: "+"},
				{Type: IDENTIFIER, Value: "b"},
				{Type: MINUS, Value: "-"},
				{Type: IDENTIFIER, Value: "c"},
				{Type: STAR, Value: "*"},
				{Type: IDENTIFIER, Value: "d"},
				{Type: SLASH, Value: "/"},
				{Type: IDENTIFIER, Value: "e"},
				{Type: CARET, Value: "^"},
				{Type: IDENTIFIER, Value: "f"},
				{Type: EOF},
			},
		},
		{
			name:  "multi-digit numbers keep leading zeros in text",
			input: "007",
			want:  []tok{{Type: NUMBER, Value: "007", Num: 7}, {Type: EOF}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := New(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, summarize(tokens)); diff != "" {
				t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantFragment string
	}{
		{
			name:         "unrecognized symbol",
			input:        "1 @ 2",
			wantFragment: "@",
		},
		{
			name:         "run of unrecognized symbols reported together",
			input:        "1 #! 2",
			wantFragment: "#!",
		},
		{
			name:         "mixed digits and letters",
			input:        "12ab",
			wantFragment: "12ab",
		},
		{
			name:         "integer overflow",
			input:        "99999999999999999999",
			wantFragment: "99999999999999999999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input).Tokenize()
			if err == nil {
				t.Fatalf("Tokenize() succeeded, want error")
			}

			var tokErr *TokenizeError
			if !errors.As(err, &tokErr) {
				t.Fatalf("Tokenize() error = %T, want *TokenizeError", err)
			}
			if tokErr.Fragment != tt.wantFragment {
				t.Errorf("Fragment = %q, want %q", tokErr.Fragment, tt.wantFragment)
			}
		})
	}
}

func TestTokenPositions(t *testing.T) {
	tokens, err := New("a + b\n^ 2").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	want := []struct {
		line, column int
	}{
		{1, 1}, // a
		{1, 3}, // +
		{1, 5}, // b
		{2, 1}, // ^
		{2, 3}, // 2
		{2, 4}, // EOF
	}

	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].Line != w.line || tokens[i].Column != w.column {
			t.Errorf("token %d (%s) at %s, want %d:%d",
				i, tokens[i].Type, tokens[i].Position(), w.line, w.column)
		}
	}
}

// Re-tokenizing the space-joined token text must yield the same stream:
// the token language is stable under its own rendering.
func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"1 + 2 * 3",
		"(a() + 2) * 3 ^ 4 ^ 5",
		"f(1, 2, 3)",
		"-x^2",
		"max(a,b)/2",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := New(input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}

			var parts []string
			for _, tok := range first {
				if tok.Type != EOF {
					parts = append(parts, tok.Value)
				}
			}
			rendered := strings.Join(parts, " ")

			second, err := New(rendered).Tokenize()
			if err != nil {
				t.Fatalf("re-Tokenize(%q) error = %v", rendered, err)
			}

			if diff := cmp.Diff(summarize(first), summarize(second)); diff != "" {
				t.Errorf("round trip mismatch (-first +second):\n%s", diff)
			}
		})
	}
}

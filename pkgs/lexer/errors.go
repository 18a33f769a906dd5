package lexer

import "fmt"

// TokenizeError reports an input fragment that does not belong to the
// token language. Tokenization stops at the first such fragment.
type TokenizeError struct {
	Line     int
	Column   int
	Fragment string
	Message  string // optional detail, defaults to "unrecognized token"
}

// Error formats the tokenize error as a string
func (e *TokenizeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unrecognized token"
	}
	return fmt.Sprintf("%d:%d: %s %q", e.Line, e.Column, msg, e.Fragment)
}

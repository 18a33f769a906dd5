package parser

import (
	"fmt"

	"github.com/prattle-dev/prattle/pkgs/lexer"
)

// ParseError represents a structural error found during parsing
type ParseError struct {
	Line    int    // The line number where the error occurred
	Column  int    // The column where the error occurred
	Message string // The error message
}

// Error formats the parse error as a string
func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// NewParseError creates a new ParseError positioned at the given token
func NewParseError(tok lexer.Token, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Line:    tok.Line,
		Column:  tok.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

// describe names a token for error messages
func describe(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Value)
}

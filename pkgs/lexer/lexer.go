package lexer

import (
	"strconv"
)

// Character classification lookup tables for fast scanning
var (
	isWhitespace [256]bool
	isLetter     [256]bool
	isDigit      [256]bool
	isWordPart   [256]bool
)

func init() {
	for i := 0; i < 256; i++ {
		ch := byte(i)
		isWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f'
		isLetter[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		isDigit[i] = '0' <= ch && ch <= '9'
		isWordPart[i] = isLetter[i] || isDigit[i]
	}
}

// Lexer tokenizes a single expression string. A Lexer is one-shot: the
// token stream is produced front to back and cannot be restarted.
type Lexer struct {
	input    []byte
	position int
	readPos  int
	ch       byte
	line     int
	column   int
}

// New creates a new lexer instance for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input: []byte(input),
		line:  1,
	}
	l.readChar()
	return l
}

// Tokenize consumes the entire input and returns the token slice,
// always terminated by exactly one EOF token. It stops at the first
// unrecognized fragment and returns a *TokenizeError.
func (l *Lexer) Tokenize() ([]Token, error) {
	estimatedTokens := len(l.input) / 2
	if estimatedTokens < 8 {
		estimatedTokens = 8
	}
	result := make([]Token, 0, estimatedTokens)

	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		result = append(result, tok)
		if tok.Type == EOF {
			return result, nil
		}
	}
}

// NextToken returns the next token from the input. Once EOF has been
// produced every further call returns EOF again.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	if l.ch == 0 {
		return Token{Type: EOF, Line: l.line, Column: l.column}, nil
	}

	if typ, ok := SymbolTokens[l.ch]; ok {
		tok := Token{Type: typ, Value: string(l.ch), Line: l.line, Column: l.column}
		l.readChar()
		return tok, nil
	}

	if isWordPart[l.ch] {
		return l.lexWord()
	}

	return Token{}, &TokenizeError{
		Line:     l.line,
		Column:   l.column,
		Fragment: l.badFragment(),
	}
}

// lexWord scans a maximal run of letters and digits and classifies it:
// all digits is a NUMBER, all letters is an IDENTIFIER, anything mixed
// is an unrecognized fragment.
func (l *Lexer) lexWord() (Token, error) {
	startLine, startColumn := l.line, l.column
	start := l.position

	allDigits, allLetters := true, true
	for isWordPart[l.ch] {
		allDigits = allDigits && isDigit[l.ch]
		allLetters = allLetters && isLetter[l.ch]
		l.readChar()
	}
	word := string(l.input[start:l.position])

	switch {
	case allDigits:
		num, err := strconv.ParseInt(word, 10, 64)
		if err != nil {
			return Token{}, &TokenizeError{
				Line:     startLine,
				Column:   startColumn,
				Fragment: word,
				Message:  "integer literal out of range",
			}
		}
		return Token{Type: NUMBER, Value: word, Num: num, Line: startLine, Column: startColumn}, nil
	case allLetters:
		return Token{Type: IDENTIFIER, Value: word, Line: startLine, Column: startColumn}, nil
	default:
		return Token{}, &TokenizeError{
			Line:     startLine,
			Column:   startColumn,
			Fragment: word,
		}
	}
}

// badFragment collects the run of characters that failed to classify so
// the error can report the whole offending fragment, not just one byte.
func (l *Lexer) badFragment() string {
	start := l.position
	for l.ch != 0 && !isWhitespace[l.ch] && l.ch != '\n' {
		if _, ok := SymbolTokens[l.ch]; ok {
			break
		}
		l.readChar()
	}
	return string(l.input[start:l.position])
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace[l.ch] || l.ch == '\n' {
		l.readChar()
	}
}

// readChar advances to the next character, maintaining line and column
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
	} else {
		l.ch = l.input[l.readPos]
		l.position = l.readPos
	}
	l.readPos++
	l.column++
}

package keyvalues

import (
	"errors"
	"fmt"
)

// Sentinel errors. Lexer and parser failures wrap one of these, so callers can
// test the failure kind with errors.Is and get the location with errors.As.
var (
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnexpectedToken     = errors.New("unexpected token")
	ErrUnbalancedBraces    = errors.New("unbalanced braces")
	ErrUnexpectedEOF       = errors.New("unexpected end of input")
	ErrInvalidName         = errors.New("invalid block name")
)

// LexError reports a byte sequence the lexer could not turn into a token.
type LexError struct {
	Err  error
	Pos  Position
	Char rune // Offending character; zero for unterminated strings.
}

func (e *LexError) Error() string {
	if e.Char != 0 {
		return fmt.Sprintf("%s: %v %q", e.Pos, e.Err, e.Char)
	}
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e *LexError) Unwrap() error { return e.Err }

// SyntaxError reports a token sequence that does not match the grammar.
type SyntaxError struct {
	Err      error
	Pos      Position
	Expected string
	Found    Token
}

func (e *SyntaxError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("%s: %v: found %s", e.Pos, e.Err, e.Found)
	}
	return fmt.Sprintf("%s: %v: expected %s, found %s", e.Pos, e.Err, e.Expected, e.Found)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

package keyvalues

import (
	"bytes"
	"iter"
	"strings"
	"unicode/utf8"
)

// utf8BOM is tolerated at the very start of the input.
const utf8BOM = "\xef\xbb\xbf"

// Lexer splits source text into tokens. It is not safe for concurrent use.
type Lexer struct {
	src  []byte
	off  int
	line int
	col  int
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src []byte) *Lexer {
	l := &Lexer{src: src}
	l.Reset()
	return l
}

// Reset rewinds the lexer to the start of its input.
func (l *Lexer) Reset() {
	l.off, l.line, l.col = 0, 1, 1
	if bytes.HasPrefix(l.src, []byte(utf8BOM)) {
		l.off = len(utf8BOM)
	}
}

// Tokens returns the token sequence of the whole input, ending with EOF. The
// sequence stops early after yielding an error. Each call scans from the start
// and does not disturb the lexer's own position.
func (l *Lexer) Tokens() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		scan := NewLexer(l.src)
		for {
			tok, err := scan.Next()
			if !yield(tok, err) || err != nil || tok.Kind == EOF {
				return
			}
		}
	}
}

// Next returns the next token. After the input is exhausted it keeps
// returning EOF.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	pos := l.position()
	if l.off >= len(l.src) {
		return Token{Kind: EOF, Pos: pos}, nil
	}

	c := l.src[l.off]
	switch {
	case c == '{':
		l.advance()
		return Token{Kind: OpenBrace, Pos: pos}, nil
	case c == '}':
		l.advance()
		return Token{Kind: CloseBrace, Pos: pos}, nil
	case c == '"':
		return l.quoted(pos)
	case isIdentByte(c):
		start := l.off
		for l.off < len(l.src) && isIdentByte(l.src[l.off]) {
			l.advance()
		}
		return Token{Kind: Ident, Text: string(l.src[start:l.off]), Pos: pos}, nil
	default:
		r, _ := utf8.DecodeRune(l.src[l.off:])
		return Token{}, &LexError{Err: ErrUnexpectedCharacter, Pos: pos, Char: r}
	}
}

// quoted scans a double-quoted string. Only \" and \\ are escapes; every other
// byte, newlines included, is taken literally.
func (l *Lexer) quoted(pos Position) (Token, error) {
	l.advance() // opening quote
	start := l.off
	var sb *strings.Builder

	for l.off < len(l.src) {
		c := l.src[l.off]
		switch {
		case c == '"':
			text := string(l.src[start:l.off])
			if sb != nil {
				sb.Write(l.src[start:l.off])
				text = sb.String()
			}
			l.advance()
			return Token{Kind: QuotedString, Text: text, Pos: pos}, nil
		case c == '\\' && l.off+1 < len(l.src) && (l.src[l.off+1] == '"' || l.src[l.off+1] == '\\'):
			if sb == nil {
				sb = &strings.Builder{}
			}
			sb.Write(l.src[start:l.off])
			sb.WriteByte(l.src[l.off+1])
			l.advance()
			l.advance()
			start = l.off
		default:
			l.advance()
		}
	}
	return Token{}, &LexError{Err: ErrUnterminatedString, Pos: pos}
}

func (l *Lexer) skipSpace() {
	for l.off < len(l.src) {
		switch l.src[l.off] {
		case ' ', '\t', '\r', '\n', '\f', '\v':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) advance() {
	if l.src[l.off] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.off++
}

func (l *Lexer) position() Position {
	return Position{Offset: l.off, Line: l.line, Column: l.col}
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-' || c == '.'
}

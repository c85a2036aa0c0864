package keyvalues

import "fmt"

// Kind identifies the type of a lexer token.
type Kind uint8

const (
	EOF Kind = iota
	Ident
	QuotedString
	OpenBrace
	CloseBrace
)

// String returns a human-readable token kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case QuotedString:
		return "quoted string"
	case OpenBrace:
		return "'{'"
	case CloseBrace:
		return "'}'"
	default:
		return "unknown"
	}
}

// Position is a location in the source text.
type Position struct {
	Offset int // Zero-based byte offset.
	Line   int // One-based line number.
	Column int // One-based byte column.
}

// String formats the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical element. Text holds the identifier or the decoded
// string content; it is empty for braces and EOF.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// String returns a debug representation of the token.
func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return fmt.Sprintf("identifier %s", t.Text)
	case QuotedString:
		return fmt.Sprintf("quoted string %q", t.Text)
	default:
		return t.Kind.String()
	}
}

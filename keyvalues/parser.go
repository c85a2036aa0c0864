package keyvalues

import (
	"io"
	"strconv"
)

// Parse builds a Document from src. It stops at the first error; no partial
// document is returned.
func Parse(src []byte) (*Document, error) {
	p := &parser{lex: NewLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	doc := &Document{}
	for p.tok.Kind != EOF {
		switch p.tok.Kind {
		case Ident:
			block, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			doc.Blocks = append(doc.Blocks, block)
		case CloseBrace:
			return nil, &SyntaxError{Err: ErrUnbalancedBraces, Pos: p.tok.Pos, Found: p.tok}
		default:
			return nil, &SyntaxError{Err: ErrUnexpectedToken, Pos: p.tok.Pos, Expected: "block name", Found: p.tok}
		}
	}
	return doc, nil
}

// ParseString is Parse for string input.
func ParseString(src string) (*Document, error) {
	return Parse([]byte(src))
}

// Read consumes r to the end and parses it. Read errors are returned as-is.
func Read(r io.Reader) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(src)
}

// parser holds one token of lookahead over the lexer.
type parser struct {
	lex *Lexer
	tok Token
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// parseBlock parses `Ident '{' (Attribute | Block)* '}'` with p.tok on the name.
func (p *parser) parseBlock() (*Block, error) {
	name := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch p.tok.Kind {
	case OpenBrace:
	case EOF:
		return nil, &SyntaxError{Err: ErrUnexpectedEOF, Pos: p.tok.Pos, Expected: "'{' after " + name.Text, Found: p.tok}
	default:
		return nil, &SyntaxError{Err: ErrUnexpectedToken, Pos: p.tok.Pos, Expected: "'{' after " + name.Text, Found: p.tok}
	}
	open := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}

	block := &Block{Name: name.Text}
	for {
		switch p.tok.Kind {
		case CloseBrace:
			return block, p.advance()
		case QuotedString:
			attr, err := p.parseAttribute()
			if err != nil {
				return nil, err
			}
			block.Attributes = append(block.Attributes, attr)
		case Ident:
			child, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			block.Children = append(block.Children, child)
		case EOF:
			// Report the brace that was never closed.
			return nil, &SyntaxError{Err: ErrUnbalancedBraces, Pos: open, Expected: "'}' closing " + name.Text, Found: p.tok}
		default:
			return nil, &SyntaxError{Err: ErrUnexpectedToken, Pos: p.tok.Pos, Expected: "attribute or block", Found: p.tok}
		}
	}
}

// parseAttribute parses `QuotedString QuotedString` with p.tok on the key.
func (p *parser) parseAttribute() (Attribute, error) {
	key := p.tok
	if err := p.advance(); err != nil {
		return Attribute{}, err
	}
	switch p.tok.Kind {
	case QuotedString:
	case EOF:
		return Attribute{}, &SyntaxError{Err: ErrUnexpectedEOF, Pos: p.tok.Pos, Expected: "value for key " + strconv.Quote(key.Text), Found: p.tok}
	default:
		return Attribute{}, &SyntaxError{Err: ErrUnexpectedToken, Pos: p.tok.Pos, Expected: "value for key " + strconv.Quote(key.Text), Found: p.tok}
	}
	attr := Attribute{Key: key.Text, Value: p.tok.Text}
	return attr, p.advance()
}

package keyvalues

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// escaper re-escapes the two sequences the lexer decodes.
var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Encoder writes documents in the canonical style: the block name on its own
// line, braces on their own lines, one tab per nesting level and each
// attribute as "key" "value".
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes every top-level block of doc. It writes nothing and returns an
// error wrapping ErrInvalidName when any block name would not parse back.
func (e *Encoder) Encode(doc *Document) error {
	if err := checkNames(doc.Blocks); err != nil {
		return err
	}
	for _, b := range doc.Blocks {
		e.block(b, 0)
	}
	return e.w.Flush()
}

// EncodeBlock writes a single block at depth zero.
func (e *Encoder) EncodeBlock(b *Block) error {
	if err := checkNames([]*Block{b}); err != nil {
		return err
	}
	e.block(b, 0)
	return e.w.Flush()
}

// block emits b depth-first. bufio.Writer keeps the first write error and
// reports it on Flush, so intermediate writes are not checked.
func (e *Encoder) block(b *Block, depth int) {
	indent := strings.Repeat("\t", depth)

	e.w.WriteString(indent)
	e.w.WriteString(b.Name)
	e.w.WriteString("\n")
	e.w.WriteString(indent)
	e.w.WriteString("{\n")

	for _, attr := range b.Attributes {
		e.w.WriteString(indent)
		e.w.WriteString("\t\"")
		escaper.WriteString(e.w, attr.Key)
		e.w.WriteString("\" \"")
		escaper.WriteString(e.w, attr.Value)
		e.w.WriteString("\"\n")
	}
	for _, child := range b.Children {
		e.block(child, depth+1)
	}

	e.w.WriteString(indent)
	e.w.WriteString("}\n")
}

// ValidName reports whether name can be written as a block name.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isIdentByte(name[i]) {
			return false
		}
	}
	return true
}

func checkNames(blocks []*Block) error {
	for _, b := range blocks {
		if !ValidName(b.Name) {
			return fmt.Errorf("%w: %q", ErrInvalidName, b.Name)
		}
		if err := checkNames(b.Children); err != nil {
			return err
		}
	}
	return nil
}

// WriteTo writes the document to w in canonical form.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := NewEncoder(cw).Encode(d)
	return cw.n, err
}

// WriteTo writes the block to w in canonical form.
func (b *Block) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := NewEncoder(cw).EncodeBlock(b)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

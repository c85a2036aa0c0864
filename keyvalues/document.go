package keyvalues

import (
	"iter"
	"strings"
)

// Document is the result of parsing: the ordered top-level blocks of a file.
type Document struct {
	Blocks []*Block
}

// Block is a named node owning its attributes and child blocks. Children are
// exclusively owned; a block never appears under two parents. Name must be
// non-empty and made of letters, digits, '_', '-' and '.'; the encoder
// rejects anything else.
type Block struct {
	Name       string
	Attributes Attributes
	Children   []*Block
}

// NewBlock creates a block with the given name and attributes.
func NewBlock(name string, attrs ...Attribute) *Block {
	return &Block{Name: name, Attributes: attrs}
}

// Named yields the top-level blocks called name, in order.
func (d *Document) Named(name string) iter.Seq[*Block] {
	return named(d.Blocks, name)
}

// String renders the document in canonical form.
func (d *Document) String() string {
	var sb strings.Builder
	_ = NewEncoder(&sb).Encode(d)
	return sb.String()
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{Blocks: make([]*Block, 0, len(d.Blocks))}
	for _, b := range d.Blocks {
		out.Blocks = append(out.Blocks, b.Clone())
	}
	return out
}

// Child returns the first child called name, or nil.
func (b *Block) Child(name string) *Block {
	for _, c := range b.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Named yields the children called name, in order.
func (b *Block) Named(name string) iter.Seq[*Block] {
	return named(b.Children, name)
}

// AddChild appends child and returns it.
func (b *Block) AddChild(child *Block) *Block {
	b.Children = append(b.Children, child)
	return child
}

// Clone returns a deep copy of the block and its subtree.
func (b *Block) Clone() *Block {
	out := &Block{Name: b.Name, Attributes: b.Attributes.Clone()}
	if b.Children != nil {
		out.Children = make([]*Block, 0, len(b.Children))
		for _, c := range b.Children {
			out.Children = append(out.Children, c.Clone())
		}
	}
	return out
}

// String renders the block in canonical form.
func (b *Block) String() string {
	var sb strings.Builder
	_ = NewEncoder(&sb).EncodeBlock(b)
	return sb.String()
}

func named(blocks []*Block, name string) iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		for _, b := range blocks {
			if b.Name == name && !yield(b) {
				return
			}
		}
	}
}

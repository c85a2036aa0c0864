package vmf

import (
	"slices"

	"github.com/specialistvlad/vmfgo/keyvalues"
)

// Placed is a passthrough item anchored after the given number of typed
// layout slots of its parent. An After of -1 places it after everything.
type Placed[T any] struct {
	After int
	Value T
}

// Passthrough holds attributes and blocks the model does not interpret. They
// are written back at their recorded positions.
type Passthrough struct {
	Attributes []Placed[keyvalues.Attribute]
	Blocks     []Placed[*keyvalues.Block]
}

// AddAttribute appends an attribute that is emitted after the typed ones.
func (p *Passthrough) AddAttribute(key, value string) {
	p.Attributes = append(p.Attributes, Placed[keyvalues.Attribute]{After: -1, Value: keyvalues.Attribute{Key: key, Value: value}})
}

// AddBlock appends a block that is emitted after the typed children.
func (p *Passthrough) AddBlock(b *keyvalues.Block) {
	p.Blocks = append(p.Blocks, Placed[*keyvalues.Block]{After: -1, Value: b})
}

// Attribute returns the first passthrough value stored under key.
func (p *Passthrough) Attribute(key string) (string, bool) {
	for _, a := range p.Attributes {
		if a.Value.Key == key {
			return a.Value.Value, true
		}
	}
	return "", false
}

// Block returns the first passthrough block called name, or nil.
func (p *Passthrough) Block(name string) *keyvalues.Block {
	for _, b := range p.Blocks {
		if b.Value.Name == name {
			return b.Value
		}
	}
	return nil
}

// Len is the number of passthrough items.
func (p *Passthrough) Len() int {
	return len(p.Attributes) + len(p.Blocks)
}

func (p *Passthrough) skipAttribute(after int, a keyvalues.Attribute) {
	p.Attributes = append(p.Attributes, Placed[keyvalues.Attribute]{After: after, Value: a})
}

func (p *Passthrough) skipBlock(after int, b *keyvalues.Block) {
	p.Blocks = append(p.Blocks, Placed[*keyvalues.Block]{After: after, Value: b})
}

// place emits groups in order and puts each extra in front of group number
// After. Extras anchored past the last group, or at -1, come at the end.
func place[T any](groups [][]T, extras []Placed[T]) []T {
	var out []T
	for k, g := range groups {
		for _, x := range extras {
			if x.After == k {
				out = append(out, x.Value)
			}
		}
		out = append(out, g...)
	}
	for _, x := range extras {
		if x.After < 0 || x.After >= len(groups) {
			out = append(out, x.Value)
		}
	}
	return out
}

func (p *Passthrough) clone() Passthrough {
	out := Passthrough{Attributes: slices.Clone(p.Attributes)}
	for _, b := range p.Blocks {
		out.Blocks = append(out.Blocks, Placed[*keyvalues.Block]{After: b.After, Value: b.Value.Clone()})
	}
	return out
}

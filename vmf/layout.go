package vmf

import (
	"slices"
	"strconv"

	"github.com/specialistvlad/vmfgo/keyvalues"
)

// layout records the order in which recognized attribute keys and child
// block kinds appeared in the source block.
type layout struct {
	keys  []string
	kinds []string
}

func (l *layout) hasKey(key string) bool   { return slices.Contains(l.keys, key) }
func (l *layout) hasKind(kind string) bool { return slices.Contains(l.kinds, kind) }

func (l *layout) clone() layout {
	return layout{keys: slices.Clone(l.keys), kinds: slices.Clone(l.kinds)}
}

// field is a typed scalar ready for emission. set is false while the field
// holds its zero value.
type field struct {
	key   string
	value string
	set   bool
}

func strField(key, value string) field { return field{key, value, value != ""} }
func intField(key string, n int) field { return field{key, strconv.Itoa(n), n != 0} }
func boolField(key string, b bool) field {
	return field{key, formatBool(b), b}
}

// attributes returns one group per recorded key holding that field, then a
// final group with the set fields the source did not have, in the order given.
func (l *layout) attributes(fields ...field) [][]keyvalues.Attribute {
	groups := make([][]keyvalues.Attribute, 0, len(l.keys)+1)
	for _, key := range l.keys {
		var g []keyvalues.Attribute
		for _, f := range fields {
			if f.key == key {
				g = append(g, keyvalues.Attribute{Key: f.key, Value: f.value})
				break
			}
		}
		groups = append(groups, g)
	}
	var tail []keyvalues.Attribute
	for _, f := range fields {
		if f.set && !l.hasKey(f.key) {
			tail = append(tail, keyvalues.Attribute{Key: f.key, Value: f.value})
		}
	}
	return append(groups, tail)
}

// kind is one sort of typed child, already encoded, in model order.
type kind struct {
	name   string
	blocks []*keyvalues.Block
}

func one(name string, b *keyvalues.Block) kind {
	if b == nil {
		return kind{name: name}
	}
	return kind{name: name, blocks: []*keyvalues.Block{b}}
}

// children returns one group per recorded child slot, then a final group with
// the kinds never recorded, in the order given. Each slot takes the next
// block of its kind; the last slot of a kind also takes every block appended
// since decoding.
func (l *layout) children(kinds ...kind) [][]*keyvalues.Block {
	last := make(map[string]int, len(kinds))
	for i, k := range l.kinds {
		last[k] = i
	}
	next := make(map[string]int, len(kinds))
	find := func(name string) *kind {
		for i := range kinds {
			if kinds[i].name == name {
				return &kinds[i]
			}
		}
		return nil
	}

	groups := make([][]*keyvalues.Block, 0, len(l.kinds)+1)
	for i, name := range l.kinds {
		var g []*keyvalues.Block
		if k := find(name); k != nil {
			n := next[name]
			switch {
			case last[name] == i && n < len(k.blocks):
				g = k.blocks[n:]
				next[name] = len(k.blocks)
			case n < len(k.blocks):
				g = k.blocks[n : n+1]
				next[name] = n + 1
			}
		}
		groups = append(groups, g)
	}
	var tail []*keyvalues.Block
	for _, k := range kinds {
		if _, seen := last[k.name]; !seen {
			tail = append(tail, k.blocks...)
		}
	}
	return append(groups, tail)
}

// decoder routes the members of one source block into a typed struct, its
// layout and its passthrough bag.
type decoder struct {
	lay  *layout
	pass *Passthrough
}

func (d decoder) claim(key string) bool {
	if d.lay.hasKey(key) {
		return false
	}
	d.lay.keys = append(d.lay.keys, key)
	return true
}

// skip keeps a as passthrough, anchored after the keys typed so far.
func (d decoder) skip(a keyvalues.Attribute) { d.pass.skipAttribute(len(d.lay.keys), a) }

// skipBlock keeps b as passthrough, anchored after the children typed so far.
func (d decoder) skipBlock(b *keyvalues.Block) { d.pass.skipBlock(len(d.lay.kinds), b) }

func (d decoder) text(a keyvalues.Attribute, dst *string) {
	if !d.claim(a.Key) {
		d.skip(a)
		return
	}
	*dst = a.Value
}

func (d decoder) integer(a keyvalues.Attribute, dst *int) {
	n, ok := parseInt(a.Value)
	if !ok || !d.claim(a.Key) {
		d.skip(a)
		return
	}
	*dst = n
}

func (d decoder) flag(a keyvalues.Attribute, dst *bool) {
	b, ok := parseBool(a.Value)
	if !ok || !d.claim(a.Key) {
		d.skip(a)
		return
	}
	*dst = b
}

// kind records a typed child of a repeatable kind.
func (d decoder) kind(name string) {
	d.lay.kinds = append(d.lay.kinds, name)
}

// once records a typed child that may appear a single time. Later copies go
// to passthrough and once reports false for them.
func (d decoder) once(b *keyvalues.Block) bool {
	if d.lay.hasKind(b.Name) {
		d.skipBlock(b)
		return false
	}
	d.kind(b.Name)
	return true
}

// attributesOnly sends every attribute to passthrough.
func (d decoder) attributesOnly(b *keyvalues.Block) {
	for _, a := range b.Attributes {
		d.skip(a)
	}
}

// childrenOnly sends every child block to passthrough.
func (d decoder) childrenOnly(b *keyvalues.Block) {
	for _, c := range b.Children {
		d.skipBlock(c)
	}
}

// loose emits a multimap as a single group, exactly as stored.
func loose(attrs keyvalues.Attributes) [][]keyvalues.Attribute {
	return [][]keyvalues.Attribute{attrs.Clone()}
}

// build assembles an output block from grouped typed members and the
// passthrough anchored between them.
func build(name string, attrs [][]keyvalues.Attribute, children [][]*keyvalues.Block, p *Passthrough) *keyvalues.Block {
	return &keyvalues.Block{
		Name:       name,
		Attributes: place(attrs, p.Attributes),
		Children:   place(children, p.Blocks),
	}
}

// parseInt accepts only text that strconv.Itoa reproduces exactly, so "007"
// or "+1" stay raw.
func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "0":
		return false, true
	case "1":
		return true, true
	}
	return false, false
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

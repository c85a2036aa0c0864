package vmf

import (
	"strconv"

	"github.com/specialistvlad/vmfgo/keyvalues"
)

// Entity is a point or brush entity. All of its key-values, id and classname
// included, live in the KeyValues multimap.
type Entity struct {
	KeyValues    keyvalues.Attributes
	Connections  *Connections
	Solids       []*Solid
	HiddenSolids []*Solid
	Editor       *Editor

	// Hidden marks an entity wrapped in a top-level hidden block.
	Hidden bool

	Passthrough Passthrough
	layout      layout
}

// NewEntity creates an entity with the given classname and id and default
// editor metadata.
func NewEntity(classname string, id int) *Entity {
	e := &Entity{Editor: NewEditor()}
	e.KeyValues.Add("classname", classname)
	e.KeyValues.Add("id", strconv.Itoa(id))
	return e
}

// Get returns the first value of key, or "".
func (e *Entity) Get(key string) string { return e.KeyValues.Get(key) }

// Lookup returns the first value of key and whether it is present.
func (e *Entity) Lookup(key string) (string, bool) { return e.KeyValues.Lookup(key) }

// Set replaces the first value of key, or appends it.
func (e *Entity) Set(key, value string) { e.KeyValues.Set(key, value) }

// Add appends a value for key, keeping existing ones.
func (e *Entity) Add(key, value string) { e.KeyValues.Add(key, value) }

// Del removes every value of key and returns how many were removed.
func (e *Entity) Del(key string) int { return e.KeyValues.Del(key) }

func (e *Entity) Classname() string  { return e.Get("classname") }
func (e *Entity) Targetname() string { return e.Get("targetname") }
func (e *Entity) Model() string      { return e.Get("model") }

// ID returns the entity id when present and well formed.
func (e *Entity) ID() (int, bool) {
	return parseInt(e.Get("id"))
}

// Origin parses the origin key.
func (e *Entity) Origin() (Vec3, error) {
	return ParseVec3(e.Get("origin"))
}

// AddConnection appends an output connection, creating the connections block
// when the entity has none.
func (e *Entity) AddConnection(output string, a Action) {
	if e.Connections == nil {
		e.Connections = &Connections{}
	}
	e.Connections.Add(output, a)
}

// HasConnection reports whether output has an entry whose raw value is
// exactly action.
func (e *Entity) HasConnection(output, action string) bool {
	if e.Connections == nil {
		return false
	}
	for v := range e.Connections.Outputs.All(output) {
		if v == action {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	out := &Entity{
		KeyValues:   e.KeyValues.Clone(),
		Connections: e.Connections.clone(),
		Editor:      e.Editor.clone(),
		Hidden:      e.Hidden,
		Passthrough: e.Passthrough.clone(),
		layout:      e.layout.clone(),
	}
	for _, s := range e.Solids {
		out.Solids = append(out.Solids, s.clone())
	}
	for _, s := range e.HiddenSolids {
		out.HiddenSolids = append(out.HiddenSolids, s.clone())
	}
	return out
}

func decodeEntity(b *keyvalues.Block) *Entity {
	e := &Entity{KeyValues: b.Attributes.Clone()}
	d := decoder{&e.layout, &e.Passthrough}
	for _, c := range b.Children {
		switch c.Name {
		case "connections":
			if d.once(c) {
				e.Connections = decodeConnections(c)
			}
		case "solid":
			d.kind(c.Name)
			e.Solids = append(e.Solids, decodeSolid(c))
		case "hidden":
			if s := unwrapHidden(c, "solid"); s != nil {
				d.kind(c.Name)
				e.HiddenSolids = append(e.HiddenSolids, decodeSolid(s))
				continue
			}
			d.skipBlock(c)
		case "editor":
			if d.once(c) {
				e.Editor = decodeEditor(c)
			}
		default:
			d.skipBlock(c)
		}
	}
	return e
}

func (e *Entity) block() *keyvalues.Block {
	children := e.layout.children(
		one("connections", e.Connections.block()),
		solidKind(e.Solids),
		hiddenSolidKind(e.HiddenSolids),
		one("editor", e.Editor.block()),
	)
	b := build("entity", loose(e.KeyValues), children, &e.Passthrough)
	if e.Hidden {
		return hide(b)
	}
	return b
}

package vmf

import (
	"fmt"
	"strconv"

	"github.com/specialistvlad/vmfgo/keyvalues"
)

// World is the worldspawn block: its key-values and the static geometry.
type World struct {
	KeyValues    keyvalues.Attributes
	Solids       []*Solid
	HiddenSolids []*Solid
	Groups       []*Group

	Passthrough Passthrough
	layout      layout
}

// ID returns the world's id, if it has a well-formed one.
func (w *World) ID() (int, bool) {
	return parseInt(w.KeyValues.Get("id"))
}

// Classname returns the world's classname, normally "worldspawn".
func (w *World) Classname() string {
	return w.KeyValues.Get("classname")
}

// AllSolids returns the visible world solids followed by the hidden ones.
func (w *World) AllSolids() []*Solid {
	out := make([]*Solid, 0, len(w.Solids)+len(w.HiddenSolids))
	out = append(out, w.Solids...)
	return append(out, w.HiddenSolids...)
}

func decodeWorld(b *keyvalues.Block) World {
	w := World{KeyValues: b.Attributes.Clone()}
	d := decoder{&w.layout, &w.Passthrough}
	for _, c := range b.Children {
		switch c.Name {
		case "solid":
			d.kind(c.Name)
			w.Solids = append(w.Solids, decodeSolid(c))
		case "hidden":
			if s := unwrapHidden(c, "solid"); s != nil {
				d.kind(c.Name)
				w.HiddenSolids = append(w.HiddenSolids, decodeSolid(s))
				continue
			}
			d.skipBlock(c)
		case "group":
			d.kind(c.Name)
			w.Groups = append(w.Groups, decodeGroup(c))
		default:
			d.skipBlock(c)
		}
	}
	return w
}

func (w *World) block() *keyvalues.Block {
	children := w.layout.children(
		solidKind(w.Solids),
		hiddenSolidKind(w.HiddenSolids),
		groupKind(w.Groups),
	)
	return build("world", loose(w.KeyValues), children, &w.Passthrough)
}

func (w *World) empty() bool {
	return len(w.KeyValues) == 0 && len(w.Solids) == 0 && len(w.HiddenSolids) == 0 &&
		len(w.Groups) == 0 && w.Passthrough.Len() == 0
}

// unwrapHidden returns the single child called name of a hidden wrapper, or
// nil when the wrapper carries anything else.
func unwrapHidden(b *keyvalues.Block, name string) *keyvalues.Block {
	if len(b.Attributes) != 0 || len(b.Children) != 1 || b.Children[0].Name != name {
		return nil
	}
	return b.Children[0]
}

func hide(b *keyvalues.Block) *keyvalues.Block {
	return &keyvalues.Block{Name: "hidden", Children: []*keyvalues.Block{b}}
}

// Solid is a convex brush made of sides.
type Solid struct {
	ID     int
	Sides  []*Side
	Editor *Editor

	Passthrough Passthrough
	layout      layout
}

// NewSolid returns an empty solid with default editor metadata.
func NewSolid(id int) *Solid {
	return &Solid{ID: id, Editor: NewEditor(), layout: layout{keys: []string{"id"}}}
}

func decodeSolid(b *keyvalues.Block) *Solid {
	s := &Solid{}
	d := decoder{&s.layout, &s.Passthrough}
	for _, a := range b.Attributes {
		if a.Key == "id" {
			d.integer(a, &s.ID)
			continue
		}
		d.skip(a)
	}
	for _, c := range b.Children {
		switch c.Name {
		case "side":
			d.kind(c.Name)
			s.Sides = append(s.Sides, decodeSide(c))
		case "editor":
			if d.once(c) {
				s.Editor = decodeEditor(c)
			}
		default:
			d.skipBlock(c)
		}
	}
	return s
}

func (s *Solid) block() *keyvalues.Block {
	sides := kind{name: "side"}
	for _, side := range s.Sides {
		sides.blocks = append(sides.blocks, side.block())
	}
	children := s.layout.children(sides, one("editor", s.Editor.block()))
	return build("solid", s.layout.attributes(intField("id", s.ID)), children, &s.Passthrough)
}

func (s *Solid) clone() *Solid {
	out := &Solid{ID: s.ID, Editor: s.Editor.clone(), Passthrough: s.Passthrough.clone(), layout: s.layout.clone()}
	for _, side := range s.Sides {
		out.Sides = append(out.Sides, side.clone())
	}
	return out
}

func solidKind(solids []*Solid) kind {
	k := kind{name: "solid"}
	for _, s := range solids {
		k.blocks = append(k.blocks, s.block())
	}
	return k
}

func hiddenSolidKind(solids []*Solid) kind {
	k := kind{name: "hidden"}
	for _, s := range solids {
		k.blocks = append(k.blocks, hide(s.block()))
	}
	return k
}

// Side is one face of a solid. Geometry and texture fields are kept as raw
// strings; Points, U and V parse them.
type Side struct {
	ID              int
	Plane           string
	Material        string
	UAxis           string
	VAxis           string
	Rotation        string
	LightmapScale   int
	SmoothingGroups int
	Flags           int
	DispInfo        *DispInfo

	Passthrough Passthrough
	layout      layout
}

// Points parses the three plane points.
func (s *Side) Points() ([3]Vec3, error) {
	return ParsePlane(s.Plane)
}

// U parses the texture u axis.
func (s *Side) U() (Axis, error) { return ParseAxis(s.UAxis) }

// V parses the texture v axis.
func (s *Side) V() (Axis, error) { return ParseAxis(s.VAxis) }

func decodeSide(b *keyvalues.Block) *Side {
	s := &Side{}
	d := decoder{&s.layout, &s.Passthrough}
	for _, a := range b.Attributes {
		switch a.Key {
		case "id":
			d.integer(a, &s.ID)
		case "plane":
			d.text(a, &s.Plane)
		case "material":
			d.text(a, &s.Material)
		case "uaxis":
			d.text(a, &s.UAxis)
		case "vaxis":
			d.text(a, &s.VAxis)
		case "rotation":
			d.text(a, &s.Rotation)
		case "lightmapscale":
			d.integer(a, &s.LightmapScale)
		case "smoothing_groups":
			d.integer(a, &s.SmoothingGroups)
		case "flags":
			d.integer(a, &s.Flags)
		default:
			d.skip(a)
		}
	}
	for _, c := range b.Children {
		if c.Name != "dispinfo" {
			d.skipBlock(c)
			continue
		}
		if d.once(c) {
			s.DispInfo = decodeDispInfo(c)
		}
	}
	return s
}

func (s *Side) block() *keyvalues.Block {
	attrs := s.layout.attributes(
		intField("id", s.ID),
		strField("plane", s.Plane),
		strField("material", s.Material),
		strField("uaxis", s.UAxis),
		strField("vaxis", s.VAxis),
		strField("rotation", s.Rotation),
		intField("lightmapscale", s.LightmapScale),
		intField("smoothing_groups", s.SmoothingGroups),
		intField("flags", s.Flags),
	)
	children := s.layout.children(one("dispinfo", s.DispInfo.block()))
	return build("side", attrs, children, &s.Passthrough)
}

func (s *Side) clone() *Side {
	out := *s
	out.DispInfo = s.DispInfo.clone()
	out.Passthrough = s.Passthrough.clone()
	out.layout = s.layout.clone()
	return &out
}

// Group is an editor group inside the world.
type Group struct {
	ID     int
	Editor *Editor

	Passthrough Passthrough
	layout      layout
}

func decodeGroup(b *keyvalues.Block) *Group {
	g := &Group{}
	d := decoder{&g.layout, &g.Passthrough}
	for _, a := range b.Attributes {
		if a.Key == "id" {
			d.integer(a, &g.ID)
			continue
		}
		d.skip(a)
	}
	for _, c := range b.Children {
		if c.Name == "editor" {
			if d.once(c) {
				g.Editor = decodeEditor(c)
			}
			continue
		}
		d.skipBlock(c)
	}
	return g
}

func (g *Group) block() *keyvalues.Block {
	children := g.layout.children(one("editor", g.Editor.block()))
	return build("group", g.layout.attributes(intField("id", g.ID)), children, &g.Passthrough)
}

func groupKind(groups []*Group) kind {
	k := kind{name: "group"}
	for _, g := range groups {
		k.blocks = append(k.blocks, g.block())
	}
	return k
}

// DispInfo turns a side into a displacement surface.
type DispInfo struct {
	Power         int
	StartPosition string
	Flags         int
	Elevation     string
	Subdiv        bool

	Normals       *DispRows
	Distances     *DispRows
	Offsets       *DispRows
	OffsetNormals *DispRows
	Alphas        *DispRows
	TriangleTags  *DispRows

	Passthrough Passthrough
	layout      layout
}

// dispRowBlocks lists the per-vertex row blocks in the order the editor
// writes them.
var dispRowBlocks = []string{"normals", "distances", "offsets", "offset_normals", "alphas", "triangle_tags"}

func (d *DispInfo) rows(name string) **DispRows {
	switch name {
	case "normals":
		return &d.Normals
	case "distances":
		return &d.Distances
	case "offsets":
		return &d.Offsets
	case "offset_normals":
		return &d.OffsetNormals
	case "alphas":
		return &d.Alphas
	case "triangle_tags":
		return &d.TriangleTags
	}
	return nil
}

// DispRows is a block of "rowN" attributes, one per vertex row.
type DispRows struct {
	Rows []string
}

// Floats parses row i into numbers.
func (r *DispRows) Floats(i int) ([]float64, error) {
	if i < 0 || i >= len(r.Rows) {
		return nil, fmt.Errorf("%w: row %d out of range", ErrMalformedValue, i)
	}
	return parseFloats(r.Rows[i])
}

// decodeDispRows accepts only a block of row0..rowN attributes in order.
func decodeDispRows(b *keyvalues.Block) (*DispRows, bool) {
	if len(b.Children) != 0 {
		return nil, false
	}
	r := &DispRows{Rows: make([]string, 0, len(b.Attributes))}
	for i, a := range b.Attributes {
		if a.Key != "row"+strconv.Itoa(i) {
			return nil, false
		}
		r.Rows = append(r.Rows, a.Value)
	}
	return r, true
}

func (r *DispRows) block(name string) *keyvalues.Block {
	if r == nil {
		return nil
	}
	b := &keyvalues.Block{Name: name}
	for i, row := range r.Rows {
		b.Attributes.Add("row"+strconv.Itoa(i), row)
	}
	return b
}

func decodeDispInfo(b *keyvalues.Block) *DispInfo {
	info := &DispInfo{}
	d := decoder{&info.layout, &info.Passthrough}
	for _, a := range b.Attributes {
		switch a.Key {
		case "power":
			d.integer(a, &info.Power)
		case "startposition":
			d.text(a, &info.StartPosition)
		case "flags":
			d.integer(a, &info.Flags)
		case "elevation":
			d.text(a, &info.Elevation)
		case "subdiv":
			d.flag(a, &info.Subdiv)
		default:
			d.skip(a)
		}
	}
	for _, c := range b.Children {
		dst := info.rows(c.Name)
		if dst == nil || d.lay.hasKind(c.Name) {
			d.skipBlock(c)
			continue
		}
		rows, ok := decodeDispRows(c)
		if !ok {
			d.skipBlock(c)
			continue
		}
		d.kind(c.Name)
		*dst = rows
	}
	return info
}

// StartPoint parses StartPosition.
func (d *DispInfo) StartPoint() (Vec3, error) {
	return ParseVec3(d.StartPosition)
}

func (d *DispInfo) block() *keyvalues.Block {
	if d == nil {
		return nil
	}
	attrs := d.layout.attributes(
		intField("power", d.Power),
		strField("startposition", d.StartPosition),
		intField("flags", d.Flags),
		strField("elevation", d.Elevation),
		boolField("subdiv", d.Subdiv),
	)
	kinds := make([]kind, 0, len(dispRowBlocks))
	for _, name := range dispRowBlocks {
		kinds = append(kinds, one(name, (*d.rows(name)).block(name)))
	}
	return build("dispinfo", attrs, d.layout.children(kinds...), &d.Passthrough)
}

func (d *DispInfo) clone() *DispInfo {
	if d == nil {
		return nil
	}
	out := *d
	for _, name := range dispRowBlocks {
		if src := *d.rows(name); src != nil {
			*out.rows(name) = &DispRows{Rows: append([]string(nil), src.Rows...)}
		}
	}
	out.Passthrough = d.Passthrough.clone()
	out.layout = d.layout.clone()
	return &out
}

// maxDispPower bounds Power so the vertex count fits in an int32.
const maxDispPower = 30

// Dimension is the vertex count along one edge of the displacement. It
// reports false when Power is negative or too large to describe a grid.
func (d *DispInfo) Dimension() (int, bool) {
	if d.Power < 0 || d.Power > maxDispPower {
		return 0, false
	}
	return 1<<d.Power + 1, true
}

package vmf

import (
	"io"
	"strings"

	"github.com/specialistvlad/vmfgo/keyvalues"
)

// Map is a typed VMF file.
type Map struct {
	VersionInfo  VersionInfo
	VisGroups    VisGroups
	ViewSettings ViewSettings
	World        World
	Entities     Entities
	Cameras      Cameras
	Cordons      Cordons

	// LegacyCordons holds top-level cordon blocks written by older editors.
	LegacyCordons []*Cordon

	// Passthrough holds unrecognized top-level blocks.
	Passthrough Passthrough
	layout      layout
}

// New returns a map with the blocks the editor writes for an empty file.
func New() *Map {
	m := &Map{
		VersionInfo: VersionInfo{
			EditorVersion: 400,
			FormatVersion: 100,
			layout:        layout{keys: []string{"editorversion", "editorbuild", "mapversion", "formatversion", "prefab"}},
		},
		ViewSettings: ViewSettings{
			SnapToGrid:  true,
			ShowGrid:    true,
			GridSpacing: 64,
			layout:      layout{keys: []string{"bSnapToGrid", "bShowGrid", "bShowLogicalGrid", "nGridSpacing", "bShow3DGrid"}},
		},
		World: World{KeyValues: keyvalues.Attributes{
			{Key: "id", Value: "1"},
			{Key: "mapversion", Value: "1"},
			{Key: "classname", Value: "worldspawn"},
			{Key: "skyname", Value: "sky_day01_01"},
		}},
		Cameras: Cameras{ActiveCamera: -1},
		layout:  layout{kinds: []string{"versioninfo", "visgroups", "viewsettings", "world"}},
	}
	return m
}

// Parse parses VMF text into a Map.
func Parse(src []byte) (*Map, error) {
	doc, err := keyvalues.Parse(src)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc), nil
}

// Read parses everything r yields. Read errors are returned unchanged.
func Read(r io.Reader) (*Map, error) {
	doc, err := keyvalues.Read(r)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc), nil
}

// FromDocument builds the typed model. It never fails: anything it does not
// recognize is kept as passthrough. The model shares no memory with doc.
func FromDocument(doc *keyvalues.Document) *Map {
	doc = doc.Clone()
	m := &Map{}
	d := decoder{&m.layout, &m.Passthrough}
	for _, b := range doc.Blocks {
		switch b.Name {
		case "versioninfo":
			if d.once(b) {
				m.VersionInfo = decodeVersionInfo(b)
			}
		case "visgroups":
			if d.once(b) {
				m.VisGroups = decodeVisGroups(b)
			}
		case "viewsettings":
			if d.once(b) {
				m.ViewSettings = decodeViewSettings(b)
			}
		case "world":
			if d.once(b) {
				m.World = decodeWorld(b)
			}
		case "entity":
			d.kind("entity")
			m.Entities = append(m.Entities, decodeEntity(b))
		case "hidden":
			inner := unwrapHidden(b, "entity")
			if inner == nil {
				d.skipBlock(b)
				continue
			}
			d.kind("entity")
			e := decodeEntity(inner)
			e.Hidden = true
			m.Entities = append(m.Entities, e)
		case "cameras":
			if d.once(b) {
				m.Cameras = decodeCameras(b)
			}
		case "cordons":
			if d.once(b) {
				m.Cordons = decodeCordons(b)
			}
		case "cordon":
			d.kind("cordon")
			m.LegacyCordons = append(m.LegacyCordons, decodeCordon(b))
		default:
			d.skipBlock(b)
		}
	}
	return m
}

// ToDocument encodes the model back into a generic tree.
func (m *Map) ToDocument() *keyvalues.Document {
	entities := kind{name: "entity"}
	for _, e := range m.Entities {
		entities.blocks = append(entities.blocks, e.block())
	}
	legacy := kind{name: "cordon"}
	for _, c := range m.LegacyCordons {
		legacy.blocks = append(legacy.blocks, c.block())
	}

	blocks := m.layout.children(
		m.singleton("versioninfo", m.VersionInfo.empty(), m.VersionInfo.block),
		m.singleton("visgroups", m.VisGroups.empty(), m.VisGroups.block),
		m.singleton("viewsettings", m.ViewSettings.empty(), m.ViewSettings.block),
		m.singleton("world", m.World.empty(), m.World.block),
		entities,
		m.singleton("cameras", m.Cameras.empty(), m.Cameras.block),
		m.singleton("cordons", m.Cordons.empty(), m.Cordons.block),
		legacy,
	)
	return &keyvalues.Document{Blocks: place(blocks, m.Passthrough.Blocks)}
}

// singleton encodes a top-level block that was in the source or has content.
func (m *Map) singleton(name string, empty bool, encode func() *keyvalues.Block) kind {
	if empty && !m.layout.hasKind(name) {
		return kind{name: name}
	}
	return one(name, encode())
}

// WriteTo writes the map in canonical text form.
func (m *Map) WriteTo(w io.Writer) (int64, error) {
	return m.ToDocument().WriteTo(w)
}

// String returns the map in canonical text form.
func (m *Map) String() string {
	var sb strings.Builder
	_, _ = m.WriteTo(&sb)
	return sb.String()
}

// Stats counts the main objects of a map.
type Stats struct {
	Entities       int
	HiddenEntities int
	BrushEntities  int
	WorldSolids    int
	Sides          int
	Displacements  int
	Connections    int
	VisGroups      int
	Passthrough    int
}

// Stats walks the model and counts its contents.
func (m *Map) Stats() Stats {
	var s Stats
	countSolids := func(solids []*Solid) {
		for _, solid := range solids {
			s.Sides += len(solid.Sides)
			for _, side := range solid.Sides {
				if side.DispInfo != nil {
					s.Displacements++
				}
			}
		}
	}

	s.WorldSolids = len(m.World.Solids) + len(m.World.HiddenSolids)
	countSolids(m.World.AllSolids())
	for _, e := range m.Entities {
		s.Entities++
		if e.Hidden {
			s.HiddenEntities++
		}
		if len(e.Solids)+len(e.HiddenSolids) > 0 {
			s.BrushEntities++
		}
		countSolids(e.Solids)
		countSolids(e.HiddenSolids)
		s.Connections += e.Connections.Len()
	}
	for range m.VisGroups.All() {
		s.VisGroups++
	}
	s.Passthrough = m.Passthrough.Len()
	return s
}

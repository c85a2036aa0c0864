package vmf

import (
	"iter"

	"github.com/specialistvlad/vmfgo/keyvalues"
)

// VersionInfo is the versioninfo block.
type VersionInfo struct {
	EditorVersion int
	EditorBuild   int
	MapVersion    int
	FormatVersion int
	Prefab        bool

	Passthrough Passthrough
	layout      layout
}

func decodeVersionInfo(b *keyvalues.Block) VersionInfo {
	var v VersionInfo
	d := decoder{&v.layout, &v.Passthrough}
	for _, a := range b.Attributes {
		switch a.Key {
		case "editorversion":
			d.integer(a, &v.EditorVersion)
		case "editorbuild":
			d.integer(a, &v.EditorBuild)
		case "mapversion":
			d.integer(a, &v.MapVersion)
		case "formatversion":
			d.integer(a, &v.FormatVersion)
		case "prefab":
			d.flag(a, &v.Prefab)
		default:
			d.skip(a)
		}
	}
	d.childrenOnly(b)
	return v
}

func (v *VersionInfo) block() *keyvalues.Block {
	attrs := v.layout.attributes(
		intField("editorversion", v.EditorVersion),
		intField("editorbuild", v.EditorBuild),
		intField("mapversion", v.MapVersion),
		intField("formatversion", v.FormatVersion),
		boolField("prefab", v.Prefab),
	)
	return build("versioninfo", attrs, nil, &v.Passthrough)
}

func (v *VersionInfo) empty() bool {
	return v.EditorVersion == 0 && v.EditorBuild == 0 && v.MapVersion == 0 &&
		v.FormatVersion == 0 && !v.Prefab && len(v.layout.keys) == 0 && v.Passthrough.Len() == 0
}

// ViewSettings is the viewsettings block.
type ViewSettings struct {
	SnapToGrid      bool
	ShowGrid        bool
	ShowLogicalGrid bool
	GridSpacing     int
	Show3DGrid      bool

	Passthrough Passthrough
	layout      layout
}

func decodeViewSettings(b *keyvalues.Block) ViewSettings {
	var v ViewSettings
	d := decoder{&v.layout, &v.Passthrough}
	for _, a := range b.Attributes {
		switch a.Key {
		case "bSnapToGrid":
			d.flag(a, &v.SnapToGrid)
		case "bShowGrid":
			d.flag(a, &v.ShowGrid)
		case "bShowLogicalGrid":
			d.flag(a, &v.ShowLogicalGrid)
		case "nGridSpacing":
			d.integer(a, &v.GridSpacing)
		case "bShow3DGrid":
			d.flag(a, &v.Show3DGrid)
		default:
			d.skip(a)
		}
	}
	d.childrenOnly(b)
	return v
}

func (v *ViewSettings) block() *keyvalues.Block {
	attrs := v.layout.attributes(
		boolField("bSnapToGrid", v.SnapToGrid),
		boolField("bShowGrid", v.ShowGrid),
		boolField("bShowLogicalGrid", v.ShowLogicalGrid),
		intField("nGridSpacing", v.GridSpacing),
		boolField("bShow3DGrid", v.Show3DGrid),
	)
	return build("viewsettings", attrs, nil, &v.Passthrough)
}

func (v *ViewSettings) empty() bool {
	return !v.SnapToGrid && !v.ShowGrid && !v.ShowLogicalGrid && v.GridSpacing == 0 &&
		!v.Show3DGrid && len(v.layout.keys) == 0 && v.Passthrough.Len() == 0
}

// VisGroups is the visgroups block: the roots of the visgroup tree.
type VisGroups struct {
	Groups []*VisGroup

	Passthrough Passthrough
	layout      layout
}

// VisGroup is a named editor visibility group. Groups nest to any depth.
type VisGroup struct {
	Name     string
	ID       int
	Color    string
	Children []*VisGroup

	Passthrough Passthrough
	layout      layout
}

// NewVisGroup creates a visgroup with the editor's default color.
func NewVisGroup(name string, id int) *VisGroup {
	return &VisGroup{
		Name:   name,
		ID:     id,
		Color:  DefaultEditorColor,
		layout: layout{keys: []string{"name", "visgroupid", "color"}},
	}
}

// All walks the tree depth-first, parents before children.
func (v *VisGroups) All() iter.Seq[*VisGroup] {
	return func(yield func(*VisGroup) bool) {
		walkVisGroups(v.Groups, yield)
	}
}

func walkVisGroups(groups []*VisGroup, yield func(*VisGroup) bool) bool {
	for _, g := range groups {
		if !yield(g) || !walkVisGroups(g.Children, yield) {
			return false
		}
	}
	return true
}

// FindByID returns the first visgroup with the given id at any depth.
func (v *VisGroups) FindByID(id int) (*VisGroup, bool) {
	for g := range v.All() {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// FindByName returns the first visgroup called name at any depth.
func (v *VisGroups) FindByName(name string) (*VisGroup, bool) {
	for g := range v.All() {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// IDs returns the id of g and, when includeChildren is set, the ids of all
// its descendants.
func (g *VisGroup) IDs(includeChildren bool) []int {
	ids := []int{g.ID}
	if includeChildren {
		walkVisGroups(g.Children, func(c *VisGroup) bool {
			ids = append(ids, c.ID)
			return true
		})
	}
	return ids
}

func decodeVisGroups(b *keyvalues.Block) VisGroups {
	var v VisGroups
	d := decoder{&v.layout, &v.Passthrough}
	d.attributesOnly(b)
	for _, c := range b.Children {
		if c.Name != "visgroup" {
			d.skipBlock(c)
			continue
		}
		d.kind(c.Name)
		v.Groups = append(v.Groups, decodeVisGroup(c))
	}
	return v
}

func decodeVisGroup(b *keyvalues.Block) *VisGroup {
	g := &VisGroup{}
	d := decoder{&g.layout, &g.Passthrough}
	for _, a := range b.Attributes {
		switch a.Key {
		case "name":
			d.text(a, &g.Name)
		case "visgroupid":
			d.integer(a, &g.ID)
		case "color":
			d.text(a, &g.Color)
		default:
			d.skip(a)
		}
	}
	for _, c := range b.Children {
		if c.Name != "visgroup" {
			d.skipBlock(c)
			continue
		}
		d.kind(c.Name)
		g.Children = append(g.Children, decodeVisGroup(c))
	}
	return g
}

func (v *VisGroups) block() *keyvalues.Block {
	return build("visgroups", nil, v.layout.children(visGroupKind(v.Groups)), &v.Passthrough)
}

func (v *VisGroups) empty() bool {
	return len(v.Groups) == 0 && v.Passthrough.Len() == 0
}

func (g *VisGroup) block() *keyvalues.Block {
	attrs := g.layout.attributes(
		strField("name", g.Name),
		intField("visgroupid", g.ID),
		strField("color", g.Color),
	)
	return build("visgroup", attrs, g.layout.children(visGroupKind(g.Children)), &g.Passthrough)
}

func visGroupKind(groups []*VisGroup) kind {
	k := kind{name: "visgroup"}
	for _, g := range groups {
		k.blocks = append(k.blocks, g.block())
	}
	return k
}

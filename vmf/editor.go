package vmf

import (
	"strconv"

	"github.com/specialistvlad/vmfgo/keyvalues"
)

// DefaultEditorColor is the color the editor assigns to new objects.
const DefaultEditorColor = "255 255 255"

// Editor holds the editor-only metadata block of solids, entities and groups.
type Editor struct {
	Color             string
	VisGroupID        int
	GroupID           int
	VisGroupShown     bool
	VisGroupAutoShown bool
	Comments          string
	LogicalPos        string

	Passthrough Passthrough
	layout      layout
}

// NewEditor returns the metadata the editor writes for a fresh object.
func NewEditor() *Editor {
	return &Editor{
		Color:             DefaultEditorColor,
		VisGroupShown:     true,
		VisGroupAutoShown: true,
		layout:            layout{keys: []string{"color", "visgroupshown", "visgroupautoshown"}},
	}
}

// VisGroupIDs returns every visgroup the object belongs to. The editor writes
// one visgroupid key per membership; the first is the typed VisGroupID.
func (e *Editor) VisGroupIDs() []int {
	var ids []int
	if e.layout.hasKey("visgroupid") || e.VisGroupID != 0 {
		ids = append(ids, e.VisGroupID)
	}
	for _, a := range e.Passthrough.Attributes {
		if a.Value.Key != "visgroupid" {
			continue
		}
		if id, ok := parseInt(a.Value.Value); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// InVisGroup reports whether id is one of the object's visgroups.
func (e *Editor) InVisGroup(id int) bool {
	for _, v := range e.VisGroupIDs() {
		if v == id {
			return true
		}
	}
	return false
}

// AddVisGroup adds a membership. The first one fills VisGroupID; later ones
// are written as additional visgroupid keys.
func (e *Editor) AddVisGroup(id int) {
	if e.InVisGroup(id) {
		return
	}
	if !e.layout.hasKey("visgroupid") && e.VisGroupID == 0 {
		e.VisGroupID = id
		return
	}
	e.Passthrough.AddAttribute("visgroupid", strconv.Itoa(id))
}

func decodeEditor(b *keyvalues.Block) *Editor {
	e := &Editor{}
	d := decoder{&e.layout, &e.Passthrough}
	for _, a := range b.Attributes {
		switch a.Key {
		case "color":
			d.text(a, &e.Color)
		case "visgroupid":
			d.integer(a, &e.VisGroupID)
		case "groupid":
			d.integer(a, &e.GroupID)
		case "visgroupshown":
			d.flag(a, &e.VisGroupShown)
		case "visgroupautoshown":
			d.flag(a, &e.VisGroupAutoShown)
		case "comments":
			d.text(a, &e.Comments)
		case "logicalpos":
			d.text(a, &e.LogicalPos)
		default:
			d.skip(a)
		}
	}
	d.childrenOnly(b)
	return e
}

func (e *Editor) block() *keyvalues.Block {
	if e == nil {
		return nil
	}
	attrs := e.layout.attributes(
		strField("color", e.Color),
		intField("visgroupid", e.VisGroupID),
		intField("groupid", e.GroupID),
		boolField("visgroupshown", e.VisGroupShown),
		boolField("visgroupautoshown", e.VisGroupAutoShown),
		strField("comments", e.Comments),
		strField("logicalpos", e.LogicalPos),
	)
	return build("editor", attrs, nil, &e.Passthrough)
}

func (e *Editor) clone() *Editor {
	if e == nil {
		return nil
	}
	out := *e
	out.Passthrough = e.Passthrough.clone()
	out.layout = e.layout.clone()
	return &out
}

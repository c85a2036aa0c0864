package iograph

import (
	"slices"
	"strings"

	"github.com/specialistvlad/vmfgo/vmf"
)

// Edge is one connection entry.
type Edge struct {
	Source *vmf.Entity
	Output string
	Action vmf.Action
}

// Malformed is a connection entry whose value does not parse as an action.
type Malformed struct {
	Source *vmf.Entity
	Output string
	Raw    string
	Err    error
}

// Graph is the I/O graph of one map. It is a snapshot: edits to the map
// after Build are not reflected.
type Graph struct {
	entities  []*vmf.Entity
	edges     []Edge
	malformed []Malformed
	names     map[string][]*vmf.Entity
	classes   map[string]bool
}

// Build collects every connection of every entity in m, in map order.
func Build(m *vmf.Map) *Graph {
	g := &Graph{
		names:   make(map[string][]*vmf.Entity),
		classes: make(map[string]bool),
	}
	for _, e := range m.Entities {
		g.entities = append(g.entities, e)
		if name := fold(e.Targetname()); name != "" {
			g.names[name] = append(g.names[name], e)
		}
		if class := fold(e.Classname()); class != "" {
			g.classes[class] = true
		}
		for output, res := range e.Connections.Actions() {
			if res.Err != nil {
				g.malformed = append(g.malformed, Malformed{Source: e, Output: output, Raw: res.Raw, Err: res.Err})
				continue
			}
			g.edges = append(g.edges, Edge{Source: e, Output: output, Action: res.Action})
		}
	}
	return g
}

// Edges returns every well-formed connection.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Malformed returns the connection entries that did not parse.
func (g *Graph) Malformed() []Malformed {
	return g.malformed
}

// Names returns every targetname in the map, lowercased and sorted.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.names))
	for name := range g.names {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Targets returns the edges fired by entities named name.
func (g *Graph) Targets(name string) []Edge {
	name = fold(name)
	var out []Edge
	for _, e := range g.edges {
		if fold(e.Source.Targetname()) == name {
			out = append(out, e)
		}
	}
	return out
}

// Sources returns the edges whose target reaches entities named name.
func (g *Graph) Sources(name string) []Edge {
	name = fold(name)
	var out []Edge
	for _, e := range g.edges {
		if matches(e.Action.Target, name) {
			out = append(out, e)
		}
	}
	return out
}

// Resolve returns the entities an edge's target reaches. Special "!" targets
// resolve to nothing.
func (g *Graph) Resolve(e Edge) []*vmf.Entity {
	target := fold(e.Action.Target)
	if target == "" || special(target) {
		return nil
	}

	var out []*vmf.Entity
	wildcard := strings.HasSuffix(target, "*")
	for _, ent := range g.entities {
		if matches(target, fold(ent.Targetname())) || !wildcard && fold(ent.Classname()) == target {
			out = append(out, ent)
		}
	}
	return out
}

// Dangling returns the edges whose target matches nothing in the map.
func (g *Graph) Dangling() []Edge {
	var out []Edge
	for _, e := range g.edges {
		if !g.resolves(e.Action.Target) {
			out = append(out, e)
		}
	}
	return out
}

func (g *Graph) resolves(target string) bool {
	target = fold(target)
	switch {
	case target == "":
		return false
	case special(target):
		return true
	case strings.HasSuffix(target, "*"):
		for name := range g.names {
			if matches(target, name) {
				return true
			}
		}
		return false
	default:
		return len(g.names[target]) > 0 || g.classes[target]
	}
}

// matches reports whether target addresses the (folded) targetname.
func matches(target, name string) bool {
	target = fold(target)
	if special(target) || name == "" {
		return false
	}
	if prefix, ok := strings.CutSuffix(target, "*"); ok {
		return strings.HasPrefix(name, prefix)
	}
	return target == name
}

func special(target string) bool {
	return strings.HasPrefix(target, "!")
}

func fold(s string) string {
	return strings.ToLower(s)
}

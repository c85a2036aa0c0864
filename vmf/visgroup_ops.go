package vmf

import (
	"iter"
	"slices"
)

// EntitiesInVisGroup yields entities, hidden ones included, that belong to
// visgroup id or, with includeChildren, to any of its descendants. It reports
// false when no visgroup has that id.
func (m *Map) EntitiesInVisGroup(id int, includeChildren bool) (iter.Seq[*Entity], bool) {
	group, ok := m.VisGroups.FindByID(id)
	if !ok {
		return nil, false
	}
	ids := group.IDs(includeChildren)
	return m.Entities.Filter(func(e *Entity) bool {
		return e.Editor != nil && memberOf(e.Editor, ids)
	}), true
}

// SolidsInVisGroup yields world solids, visible then hidden, that belong to
// visgroup id or, with includeChildren, to any of its descendants.
func (m *Map) SolidsInVisGroup(id int, includeChildren bool) (iter.Seq[*Solid], bool) {
	group, ok := m.VisGroups.FindByID(id)
	if !ok {
		return nil, false
	}
	ids := group.IDs(includeChildren)
	return func(yield func(*Solid) bool) {
		for _, s := range m.World.AllSolids() {
			if s.Editor != nil && memberOf(s.Editor, ids) && !yield(s) {
				return
			}
		}
	}, true
}

func memberOf(e *Editor, ids []int) bool {
	for _, id := range e.VisGroupIDs() {
		if slices.Contains(ids, id) {
			return true
		}
	}
	return false
}

package vmf

// Merge appends the visgroups, world solids, world groups, entities and
// cordons of other to m. Version info, view settings, cameras and the world's
// key-values of m are kept. Ids are not renumbered, so callers merging maps
// from different sources should expect collisions. other must not be used
// afterwards.
func (m *Map) Merge(other *Map) {
	m.VisGroups.Groups = append(m.VisGroups.Groups, other.VisGroups.Groups...)
	m.World.Solids = append(m.World.Solids, other.World.Solids...)
	m.World.HiddenSolids = append(m.World.HiddenSolids, other.World.HiddenSolids...)
	m.World.Groups = append(m.World.Groups, other.World.Groups...)
	m.Entities = append(m.Entities, other.Entities...)
	m.Cordons.Cordons = append(m.Cordons.Cordons, other.Cordons.Cordons...)
	m.LegacyCordons = append(m.LegacyCordons, other.LegacyCordons...)
}

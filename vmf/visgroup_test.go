package vmf_test

import (
	"slices"
	"testing"

	"github.com/specialistvlad/vmfgo/vmf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisGroups_Tree(t *testing.T) {
	m := parseSample(t)

	var names []string
	for g := range m.VisGroups.All() {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Lights", "Spots", "Brushes"}, names)

	spots, ok := m.VisGroups.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, "Spots", spots.Name)

	lights, ok := m.VisGroups.FindByName("Lights")
	require.True(t, ok)
	assert.Equal(t, []int{1}, lights.IDs(false))
	assert.Equal(t, []int{1, 2}, lights.IDs(true))

	_, ok = m.VisGroups.FindByID(99)
	assert.False(t, ok)
}

func TestMap_EntitiesInVisGroup(t *testing.T) {
	m := parseSample(t)

	seq, ok := m.EntitiesInVisGroup(1, false)
	require.True(t, ok)
	assert.Equal(t, []int{52}, ids(seq))

	seq, ok = m.EntitiesInVisGroup(1, true)
	require.True(t, ok)
	assert.Equal(t, []int{51, 52}, ids(seq))

	_, ok = m.EntitiesInVisGroup(42, true)
	assert.False(t, ok)
}

func TestMap_SolidsInVisGroup(t *testing.T) {
	m := parseSample(t)

	solidIDs := func(id int, children bool) []int {
		seq, ok := m.SolidsInVisGroup(id, children)
		require.True(t, ok)
		var out []int
		for s := range seq {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []int{2}, solidIDs(3, false))
	assert.Equal(t, []int{20}, solidIDs(2, false))
	assert.Equal(t, []int{20}, solidIDs(1, true))
	assert.Empty(t, solidIDs(1, false))
}

func TestEditor_VisGroupMembership(t *testing.T) {
	e := vmf.NewEditor()
	assert.Empty(t, e.VisGroupIDs())

	e.AddVisGroup(4)
	e.AddVisGroup(9)
	e.AddVisGroup(4)
	assert.Equal(t, []int{4, 9}, e.VisGroupIDs())
	assert.True(t, e.InVisGroup(9))

	ent := vmf.NewEntity("info_target", 1)
	ent.Editor = e
	m := vmf.New()
	m.Entities.Append(ent)

	reparsed, err := vmf.Parse([]byte(m.String()))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 9}, reparsed.Entities[0].Editor.VisGroupIDs())
}

func TestMap_Merge(t *testing.T) {
	a := parseSample(t)
	b := parseSample(t)
	b.VersionInfo.EditorVersion = 999

	a.Merge(b)

	assert.Equal(t, 400, a.VersionInfo.EditorVersion)
	assert.Len(t, a.VisGroups.Groups, 4)
	assert.Len(t, a.World.Solids, 2)
	assert.Len(t, a.World.HiddenSolids, 2)
	assert.Len(t, a.World.Groups, 2)
	assert.Len(t, a.Entities, 10)
	assert.Len(t, a.Cordons.Cordons, 2)

	// Identifiers are carried over untouched, duplicates included.
	assert.Equal(t, 2, len(slices.Collect(a.Entities.ByClassname("logic_relay"))))

	reparsed, err := vmf.Parse([]byte(a.String()))
	require.NoError(t, err)
	assert.Len(t, reparsed.Entities, 10)
	assert.Equal(t, a.String(), reparsed.String())
}

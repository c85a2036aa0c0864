package recipe

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/vmfgo/internal/entityexpr"
	"github.com/specialistvlad/vmfgo/vmf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mapSrc = `entity
{
	"id" "1"
	"classname" "prop_static"
	"targetname" "crate"
	"model" "models/old.mdl"
	"disableshadows" "1"
}
entity
{
	"id" "2"
	"classname" "prop_static"
	"model" "models/other.mdl"
}
entity
{
	"id" "3"
	"classname" "debug_overlay"
}
entity
{
	"id" "4"
	"classname" "debug_text"
}
`

const recipeSrc = `
edit "retarget" {
  where  = classname == "prop_static" && model == "models/old.mdl"
  delete = ["disableshadows"]
  set    = { model = "models/new.mdl", skin = 2, solid = true, "0" = "${targetname}_x" }
  output "OnUser1" {
    target = "relay"
    input  = "Trigger"
    delay  = 0.5
  }
}

edit "strip_debug" {
  where  = startswith(classname, "debug_")
  remove = true
}
`

func parseMap(t *testing.T) *vmf.Map {
	t.Helper()
	m, err := vmf.Parse([]byte(mapSrc))
	require.NoError(t, err)
	return m
}

func parseRecipe(t *testing.T, src string) *Recipe {
	t.Helper()
	r, diags := NewLoader().Parse([]byte(src), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	return r
}

func TestRecipe_Apply(t *testing.T) {
	m := parseMap(t)
	r := parseRecipe(t, recipeSrc)

	results, err := r.Apply(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, []Result{{Edit: "retarget", Matched: 1}, {Edit: "strip_debug", Matched: 2}}, results)

	require.Len(t, m.Entities, 2)
	crate := m.Entities.FindByID(1)
	require.NotNil(t, crate)
	assert.Equal(t, []string{"id", "classname", "targetname", "model", "skin", "solid", "0"}, crate.KeyValues.Keys())
	assert.Equal(t, "models/new.mdl", crate.Model())
	assert.Equal(t, "2", crate.Get("skin"))
	assert.Equal(t, "1", crate.Get("solid"))
	assert.Equal(t, "crate_x", crate.Get("0"))

	require.Equal(t, 1, crate.Connections.Len())
	for output, res := range crate.Connections.Actions() {
		require.NoError(t, res.Err)
		assert.Equal(t, "OnUser1", output)
		assert.Equal(t, vmf.Action{Target: "relay", Input: "Trigger", Delay: 0.5, Refires: -1}, res.Action)
	}

	other := m.Entities.FindByID(2)
	require.NotNil(t, other)
	assert.Equal(t, "models/other.mdl", other.Model())
	assert.Nil(t, other.Connections)
}

func TestRecipe_SetSeesOriginalValues(t *testing.T) {
	m := parseMap(t)
	r := parseRecipe(t, `
edit "swap" {
  where = id == 1
  set   = { targetname = model, model = targetname }
}`)

	_, err := r.Apply(context.Background(), m)
	require.NoError(t, err)
	crate := m.Entities.FindByID(1)
	assert.Equal(t, "models/old.mdl", crate.Targetname())
	assert.Equal(t, "crate", crate.Model())
}

func TestRecipe_WhereOmittedMatchesAll(t *testing.T) {
	m := parseMap(t)
	r := parseRecipe(t, `edit "tag" { set = { spawnflags = 0 } }`)

	results, err := r.Apply(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, 4, results[0].Matched)
	for _, e := range m.Entities {
		assert.Equal(t, "0", e.Get("spawnflags"))
	}
}

func TestRecipe_ApplyErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "non-bool where", src: `edit "e" { where = classname }`},
		{name: "null set value", src: `edit "e" { set = { a = null } }`},
		{name: "unconvertible set value", src: `edit "e" { set = { a = ["x"] } }`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := NewLoader().Parse([]byte(tc.src), "test.hcl")
			require.NotNil(t, r)

			results, err := r.Apply(context.Background(), parseMap(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), `edit "e"`)
			assert.Empty(t, results)
		})
	}

	r, _ := NewLoader().Parse([]byte(`edit "e" { where = classname }`), "test.hcl")
	_, err := r.Apply(context.Background(), parseMap(t))
	assert.ErrorIs(t, err, entityexpr.ErrNotBool)
}

func TestLoader_Diagnostics(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		summary string
	}{
		{name: "unknown block", src: `rename "x" {}`, summary: "Unsupported block type"},
		{name: "unknown attribute", src: `edit "e" { colour = "red" }`, summary: "Unsupported argument"},
		{name: "missing label", src: `edit { remove = true }`, summary: "Missing name for edit"},
		{name: "duplicate edit", src: "edit \"e\" { remove = true }\nedit \"e\" { remove = true }", summary: `Duplicate edit "e"`},
		{name: "set not an object", src: `edit "e" { set = "x" }`, summary: "Invalid set value"},
		{name: "set key expression", src: `edit "e" { set = { (classname) = "x" } }`, summary: "Invalid set key"},
		{name: "unknown function", src: `edit "e" {
  where  = shout(classname)
  remove = true
}`, summary: "Call to unknown function"},
		{name: "output missing target", src: `edit "e" {
  output "OnTrigger" { input = "Kill" }
}`, summary: "Missing required argument"},
		{name: "syntax", src: `edit "e" {`, summary: "Unclosed configuration block"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, diags := NewLoader().Parse([]byte(tc.src), "test.hcl")
			assert.Nil(t, r)
			require.True(t, diags.HasErrors())
			assert.Equal(t, tc.summary, diags[0].Summary)
		})
	}
}

func TestLoader_NoEffectWarning(t *testing.T) {
	r, diags := NewLoader().Parse([]byte(`edit "noop" { where = true }`), "test.hcl")
	require.NotNil(t, r)
	require.False(t, diags.HasErrors())
	require.Len(t, diags, 1)
	assert.Equal(t, hcl.DiagWarning, diags[0].Severity)
	assert.Equal(t, "Edit has no effect", diags[0].Summary)
}

func TestLoader_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fix.hcl")
	require.NoError(t, os.WriteFile(path, []byte(recipeSrc), 0o644))

	l := NewLoader()
	r, diags := l.Load(context.Background(), path)
	require.False(t, diags.HasErrors())
	assert.Equal(t, path, r.Filename)
	require.Len(t, r.Edits, 2)
	assert.Equal(t, []string{"disableshadows"}, r.Edits[0].Delete)
	assert.True(t, r.Edits[1].Remove)
	assert.Equal(t, []string{"classname", "model"}, r.Edits[0].Where.References())

	_, diags = l.Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))
	assert.True(t, diags.HasErrors())
}

func TestLoader_WriteDiagnostics(t *testing.T) {
	l := NewLoader()
	_, diags := l.Parse([]byte(`edit "e" { set = "x" }`), "bad.hcl")
	require.True(t, diags.HasErrors())

	var buf bytes.Buffer
	require.NoError(t, l.WriteDiagnostics(&buf, diags))
	assert.Contains(t, buf.String(), "Invalid set value")
	assert.Contains(t, buf.String(), "on bad.hcl line 1")
}

package entityexpr

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/vmfgo/vmf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func sampleEntity() *vmf.Entity {
	e := vmf.NewEntity("prop_static", 52)
	e.Set("targetname", "crate_01")
	e.Set("model", "models/props/crate.mdl")
	e.Set("skin", "2")
	e.Set("0", "zero")
	e.Add("skin", "7")
	e.Solids = append(e.Solids, vmf.NewSolid(60))
	return e
}

func TestPredicate_Match(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected bool
	}{
		{name: "empty matches", src: "", expected: true},
		{name: "blank matches", src: "   ", expected: true},
		{name: "classname", src: `classname == "prop_static"`, expected: true},
		{name: "conjunction", src: `classname == "prop_static" && targetname != "crate_01"`, expected: false},
		{name: "first value wins", src: `skin == "2"`, expected: true},
		{name: "number conversion", src: `number(skin) >= 2`, expected: true},
		{name: "id is numeric", src: `id == 52`, expected: true},
		{name: "solids count", src: `solids == 1`, expected: true},
		{name: "missing key", src: `rendercolor == "255 0 0"`, expected: false},
		{name: "missing key inequality", src: `rendercolor != "255 0 0"`, expected: true},
		{name: "missing key reads empty", src: `rendercolor == ""`, expected: true},
		{name: "missing key is not null", src: `rendercolor == null`, expected: false},
		{name: "present key not empty", src: `targetname != ""`, expected: true},
		{name: "has", src: `has("model") && !has("rendercolor")`, expected: true},
		{name: "non-identifier key via kv", src: `kv["0"] == "zero"`, expected: true},
		{name: "startswith", src: `startswith(model, "models/props/")`, expected: true},
		{name: "endswith", src: `endswith(model, ".vmt")`, expected: false},
		{name: "contains with upper", src: `contains(upper(targetname), "CRATE")`, expected: true},
		{name: "lower and strlen", src: `strlen(lower(targetname)) == 8`, expected: true},
		{name: "conditional", src: `has("skin") ? number(skin) == 2 : false`, expected: true},
	}

	e := sampleEntity()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, diags := Compile(tc.src)
			require.False(t, diags.HasErrors(), diags.Error())

			ok, err := p.Match(e)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}
}

func TestPredicate_ReservedNamesShadowKeys(t *testing.T) {
	e := vmf.NewEntity("info_target", 9)
	e.Set("solids", "many")

	p, diags := Compile(`solids == 0 && id == 9`)
	require.False(t, diags.HasErrors())
	ok, err := p.Match(e)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPredicate_MissingID(t *testing.T) {
	e := &vmf.Entity{}
	e.Set("classname", "light")

	p, _ := Compile(`id == null`)
	ok, err := p.Match(e)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPredicate_NonBoolResult(t *testing.T) {
	for _, src := range []string{`targetname`, `rendercolor`, `1 + 1`} {
		t.Run(src, func(t *testing.T) {
			p, diags := Compile(src)
			require.False(t, diags.HasErrors())

			_, err := p.Match(sampleEntity())
			assert.ErrorIs(t, err, ErrNotBool)
		})
	}
}

func TestPredicate_EvaluationError(t *testing.T) {
	p, diags := Compile(`number(targetname) > 1`)
	require.False(t, diags.HasErrors())

	_, err := p.Match(sampleEntity())
	require.Error(t, err)
	var evalDiags hcl.Diagnostics
	assert.ErrorAs(t, err, &evalDiags)
}

func TestCompile_Diagnostics(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		summary string
	}{
		{name: "syntax", src: `classname ==`, summary: "Missing expression"},
		{name: "unknown function", src: `shout(classname) == "X"`, summary: "Call to unknown function"},
		{name: "nested unknown function", src: `has(nope("x"))`, summary: "Call to unknown function"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, diags := Compile(tc.src)
			assert.Nil(t, p)
			require.True(t, diags.HasErrors())
			assert.Equal(t, tc.summary, diags[0].Summary)
		})
	}
}

func TestPredicate_References(t *testing.T) {
	p, diags := Compile(`classname == "light" && kv["0"] == "x" || has(targetname) && classname != ""`)
	require.False(t, diags.HasErrors())
	assert.Equal(t, []string{"classname", `kv["0"]`, "targetname"}, p.References())

	var nilPredicate *Predicate
	assert.Nil(t, nilPredicate.References())
	ok, err := nilPredicate.Match(sampleEntity())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvalContext_BindsMissingRoots(t *testing.T) {
	src := `"${targetname}_${lightstyle}"`
	p, diags := Compile(src)
	require.False(t, diags.HasErrors())

	ctx := EvalContext(sampleEntity(), p.expr)
	v, ok := ctx.Variables["lightstyle"]
	require.True(t, ok)
	assert.True(t, v.RawEquals(cty.StringVal("")))
	assert.Contains(t, ctx.Functions, "has")
}

func TestFunctions(t *testing.T) {
	assert.Equal(t, []string{
		"contains", "endswith", "format", "has", "lower", "number", "replace", "startswith", "strlen", "upper",
	}, Functions())
}

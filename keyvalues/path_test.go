package keyvalues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	testCases := []struct {
		name          string
		raw           string
		expected      []PathSegment
		expectedError string
	}{
		{
			name:     "single segment",
			raw:      "world",
			expected: []PathSegment{NewPathSegment("world")},
		},
		{
			name:     "indexed segments",
			raw:      "world.solid[2].side[0]",
			expected: []PathSegment{NewPathSegment("world"), NewPathSegmentWithIndex("solid", 2), NewPathSegmentWithIndex("side", 0)},
		},
		{
			name:     "underscores and dashes",
			raw:      "entity[4].offset_normals",
			expected: []PathSegment{NewPathSegmentWithIndex("entity", 4), NewPathSegment("offset_normals")},
		},
		{
			name:     "quoted name with dots",
			raw:      `world."func.v2"[1].side`,
			expected: []PathSegment{NewPathSegment("world"), NewPathSegmentWithIndex("func.v2", 1), NewPathSegment("side")},
		},
		{
			name:     "bare name with dots splits",
			raw:      "func.v2[1]",
			expected: []PathSegment{NewPathSegment("func"), NewPathSegmentWithIndex("v2", 1)},
		},
		{
			name:          "unterminated quote",
			raw:           `world."func.v2`,
			expectedError: "invalid path segment",
		},
		{
			name:          "empty path",
			raw:           "",
			expectedError: "path cannot be empty",
		},
		{
			name:          "empty segment",
			raw:           "world..solid",
			expectedError: "empty segment",
		},
		{
			name:          "negative index",
			raw:           "solid[-1]",
			expectedError: "invalid path segment",
		},
		{
			name:          "unclosed index",
			raw:           "solid[1",
			expectedError: "invalid path segment",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path, err := ParsePath(tc.raw)
			if tc.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, path.Segments)
		})
	}
}

func TestPath_RoundTripAndEqual(t *testing.T) {
	for _, raw := range []string{"world", "world.solid[2].side[5]", "visgroups.visgroup[1].visgroup", `world."func.v2"[3]`} {
		t.Run(raw, func(t *testing.T) {
			path, err := ParsePath(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, path.String())

			again, err := ParsePath(path.String())
			require.NoError(t, err)
			assert.True(t, path.Equal(again))
		})
	}

	a, _ := ParsePath("world.solid[0]")
	b, _ := ParsePath("world.solid")
	assert.False(t, a.Equal(b), "explicit index differs from no index")
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Path)(nil).Equal(nil))
	assert.Equal(t, "", (*Path)(nil).String())
}

func TestDocument_Lookup(t *testing.T) {
	doc, err := ParseString(`
world
{
	"id" "1"
	solid
	{
		"id" "10"
		side { "id" "100" }
		side { "id" "101" }
	}
	group { "id" "5" }
	solid
	{
		"id" "11"
		side { "id" "102" }
	}
}
entity { "id" "20" }
entity { "id" "21" }
prop.v2 { "id" "30" }
`)
	require.NoError(t, err)

	testCases := []struct {
		raw        string
		expectedID string
	}{
		{raw: "world", expectedID: "1"},
		{raw: "world.solid", expectedID: "10"},
		{raw: "world.solid[1]", expectedID: "11"},
		{raw: "world.solid[0].side[1]", expectedID: "101"},
		{raw: "world.solid[1].side", expectedID: "102"},
		{raw: "world.group", expectedID: "5"},
		{raw: "entity[1]", expectedID: "21"},
		{raw: `"prop.v2"`, expectedID: "30"},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			block, err := doc.Lookup(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, block.Attributes.Get("id"))
		})
	}

	for _, missing := range []string{"world.solid[2]", "world.solid[1].side[1]", "cameras", "entity.solid"} {
		_, err := doc.Lookup(missing)
		assert.ErrorContains(t, err, "no block at "+missing)
	}

	_, ok := doc.Find(&Path{})
	assert.False(t, ok)
}

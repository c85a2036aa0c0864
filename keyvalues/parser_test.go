package keyvalues

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Structure(t *testing.T) {
	src := `
versioninfo
{
	"editorversion" "400"
	"mapversion" "12"
}
world
{
	"id" "1"
	"classname" "worldspawn"
	solid
	{
		"id" "2"
		side
		{
			"id" "3"
		}
	}
}
entity
{
	"classname" "info_player_start"
}
`
	doc, err := ParseString(src)
	require.NoError(t, err)

	expected := &Document{Blocks: []*Block{
		{
			Name:       "versioninfo",
			Attributes: Attributes{{"editorversion", "400"}, {"mapversion", "12"}},
		},
		{
			Name:       "world",
			Attributes: Attributes{{"id", "1"}, {"classname", "worldspawn"}},
			Children: []*Block{{
				Name:       "solid",
				Attributes: Attributes{{"id", "2"}},
				Children: []*Block{{
					Name:       "side",
					Attributes: Attributes{{"id", "3"}},
				}},
			}},
		},
		{
			Name:       "entity",
			Attributes: Attributes{{"classname", "info_player_start"}},
		},
	}}

	if diff := cmp.Diff(expected, doc); diff != "" {
		t.Errorf("parsed document mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DuplicatesKeepOrder(t *testing.T) {
	src := `entity
{
	"classname" "logic_relay"
	connections
	{
		"OnTrigger" "door1,Open,,0,-1"
		"OnTrigger" "door2,Open,,0.5,-1"
		"OnTrigger" "door1,Open,,0,-1"
	}
	side { "id" "1" }
	side { "id" "2" }
}`
	doc, err := ParseString(src)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	entity := doc.Blocks[0]
	require.Len(t, entity.Children, 3)

	conns := entity.Child("connections")
	require.NotNil(t, conns)
	assert.Equal(t, 3, conns.Attributes.Count("OnTrigger"))
	assert.Equal(t, Attributes{
		{"OnTrigger", "door1,Open,,0,-1"},
		{"OnTrigger", "door2,Open,,0.5,-1"},
		{"OnTrigger", "door1,Open,,0,-1"},
	}, conns.Attributes)

	var sideIDs []string
	for side := range entity.Named("side") {
		sideIDs = append(sideIDs, side.Attributes.Get("id"))
	}
	assert.Equal(t, []string{"1", "2"}, sideIDs)
}

func TestParse_EmptyInputs(t *testing.T) {
	for _, src := range []string{"", "   \n\t  "} {
		doc, err := ParseString(src)
		require.NoError(t, err)
		assert.Empty(t, doc.Blocks)
	}

	doc, err := ParseString("visgroups\n{\n}\n")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "visgroups", doc.Blocks[0].Name)
	assert.Empty(t, doc.Blocks[0].Attributes)
	assert.Empty(t, doc.Blocks[0].Children)
}

func TestParse_DeepNesting(t *testing.T) {
	const depth = 500
	src := strings.Repeat("a {", depth) + `"k" "v"` + strings.Repeat("}", depth)

	doc, err := ParseString(src)
	require.NoError(t, err)

	block := doc.Blocks[0]
	for i := 1; i < depth; i++ {
		require.Len(t, block.Children, 1)
		block = block.Children[0]
	}
	assert.Equal(t, "v", block.Attributes.Get("k"))
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		src         string
		expectedErr error
		expectedPos Position
	}{
		{
			name:        "missing closing brace",
			src:         `world { "id" "1"`,
			expectedErr: ErrUnbalancedBraces,
			expectedPos: Position{Offset: 6, Line: 1, Column: 7},
		},
		{
			name:        "missing closing brace in nested block",
			src:         "world {\n solid {\n \"id\" \"1\"\n}",
			expectedErr: ErrUnbalancedBraces,
			expectedPos: Position{Offset: 6, Line: 1, Column: 7},
		},
		{
			name:        "stray closing brace",
			src:         "world { }\n}",
			expectedErr: ErrUnbalancedBraces,
			expectedPos: Position{Offset: 10, Line: 2, Column: 1},
		},
		{
			name:        "name without brace at end",
			src:         "world",
			expectedErr: ErrUnexpectedEOF,
			expectedPos: Position{Offset: 5, Line: 1, Column: 6},
		},
		{
			name:        "key without value at end",
			src:         `world { "id"`,
			expectedErr: ErrUnexpectedEOF,
			expectedPos: Position{Offset: 12, Line: 1, Column: 13},
		},
		{
			name:        "top-level string",
			src:         `"id" "1"`,
			expectedErr: ErrUnexpectedToken,
			expectedPos: Position{Offset: 0, Line: 1, Column: 1},
		},
		{
			name:        "name followed by name",
			src:         "world solid { }",
			expectedErr: ErrUnexpectedToken,
			expectedPos: Position{Offset: 6, Line: 1, Column: 7},
		},
		{
			name:        "key followed by brace",
			src:         `world { "id" { } }`,
			expectedErr: ErrUnexpectedToken,
			expectedPos: Position{Offset: 13, Line: 1, Column: 14},
		},
		{
			name:        "anonymous block",
			src:         "world { { } }",
			expectedErr: ErrUnexpectedToken,
			expectedPos: Position{Offset: 8, Line: 1, Column: 9},
		},
		{
			name:        "lex error surfaces",
			src:         `world { "id" "1 }`,
			expectedErr: ErrUnterminatedString,
			expectedPos: Position{Offset: 13, Line: 1, Column: 14},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := ParseString(tc.src)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, tc.expectedErr)

			var pos Position
			var synErr *SyntaxError
			var lexErr *LexError
			switch {
			case errors.As(err, &synErr):
				pos = synErr.Pos
			case errors.As(err, &lexErr):
				pos = lexErr.Pos
			default:
				t.Fatalf("error %v carries no position", err)
			}
			assert.Equal(t, tc.expectedPos, pos)
		})
	}
}

func TestSyntaxError_Message(t *testing.T) {
	_, err := ParseString(`world { "id" }`)
	require.Error(t, err)
	assert.Equal(t, `1:14: unexpected token: expected value for key "id", found '}'`, err.Error())
}

func TestRead_ReturnsReaderErrorUnchanged(t *testing.T) {
	readErr := errors.New("disk on fire")
	doc, err := Read(iotest.ErrReader(readErr))
	assert.Nil(t, doc)
	assert.Same(t, readErr, err)
}

func TestRead_ParsesStream(t *testing.T) {
	doc, err := Read(iotest.OneByteReader(strings.NewReader(`cameras { "activecamera" "-1" }`)))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "-1", doc.Blocks[0].Attributes.Get("activecamera"))
}

package keyvalues

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder_CanonicalLayout(t *testing.T) {
	doc := &Document{Blocks: []*Block{
		{
			Name:       "world",
			Attributes: Attributes{{"id", "1"}, {"classname", "worldspawn"}},
			Children: []*Block{{
				Name:       "solid",
				Attributes: Attributes{{"id", "2"}},
				Children:   []*Block{NewBlock("side", Attribute{"id", "3"})},
			}},
		},
		NewBlock("cameras"),
	}}

	expected := "world\n" +
		"{\n" +
		"\t\"id\" \"1\"\n" +
		"\t\"classname\" \"worldspawn\"\n" +
		"\tsolid\n" +
		"\t{\n" +
		"\t\t\"id\" \"2\"\n" +
		"\t\tside\n" +
		"\t\t{\n" +
		"\t\t\t\"id\" \"3\"\n" +
		"\t\t}\n" +
		"\t}\n" +
		"}\n" +
		"cameras\n" +
		"{\n" +
		"}\n"

	assert.Equal(t, expected, doc.String())

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(expected)), n)
	assert.Equal(t, expected, buf.String())
}

func TestEncoder_EscapesRoundTrip(t *testing.T) {
	values := []string{
		`plain`,
		`say "hi"`,
		`C:\maps\test.vmf`,
		`trailing\`,
		`\"`,
		"multi\nline",
		"relay\x1bTrigger\x1b\x1b0\x1b-1",
	}

	block := NewBlock("entity")
	for _, v := range values {
		block.Attributes.Add("k", v)
	}
	src := block.String()

	doc, err := ParseString(src)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, values, collectValues(doc.Blocks[0].Attributes, "k"))
}

func TestEncoder_RoundTripIsIdempotent(t *testing.T) {
	src := `versioninfo{"editorversion" "400" "editorversion" "401"}
world { "id" "1" solid { "id" "2" side { "id" "3" "plane" "(0 0 0) (1 0 0) (0 1 0)" } }
customblock { "anything" "goes" nested { } } }
entity { "classname" "light" connections { "OnUser1" "a,B,,0,-1" "OnUser1" "a,B,,0,-1" } }
`
	first, err := ParseString(src)
	require.NoError(t, err)

	text := first.String()
	second, err := ParseString(text)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("document changed across a round trip (-first +second):\n%s", diff)
	}
	assert.Equal(t, text, second.String())
	assert.True(t, strings.HasPrefix(text, "versioninfo\n{\n\t\"editorversion\" \"400\"\n\t\"editorversion\" \"401\"\n}\n"))
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestEncoder_ReportsWriterError(t *testing.T) {
	boom := errors.New("boom")
	doc := &Document{Blocks: []*Block{NewBlock("world", Attribute{"id", "1"})}}

	_, err := doc.WriteTo(failingWriter{err: boom})
	assert.ErrorIs(t, err, boom)

	err = NewEncoder(failingWriter{err: boom}).EncodeBlock(doc.Blocks[0])
	assert.ErrorIs(t, err, boom)
}

func TestEncoder_RejectsInvalidNames(t *testing.T) {
	for _, name := range []string{"", "two words", `quo"te`, "br{ace", "tab\there"} {
		t.Run(name, func(t *testing.T) {
			doc := &Document{Blocks: []*Block{{Name: "world", Children: []*Block{NewBlock(name)}}}}

			var buf bytes.Buffer
			n, err := doc.WriteTo(&buf)
			require.ErrorIs(t, err, ErrInvalidName)
			assert.Zero(t, n)
			assert.Empty(t, buf.String())

			err = NewEncoder(&buf).EncodeBlock(NewBlock(name))
			assert.ErrorIs(t, err, ErrInvalidName)
			assert.False(t, ValidName(name))
		})
	}

	for _, name := range []string{"world", "offset_normals", "prop.v2", "light-3"} {
		assert.True(t, ValidName(name), name)
	}
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc, err := ParseString(`world { "id" "1" solid { "id" "2" } }`)
	require.NoError(t, err)

	clone := doc.Clone()
	clone.Blocks[0].Attributes.Set("id", "99")
	clone.Blocks[0].Children[0].Attributes.Set("id", "98")
	clone.Blocks[0].AddChild(NewBlock("group"))

	assert.Equal(t, "1", doc.Blocks[0].Attributes.Get("id"))
	assert.Equal(t, "2", doc.Blocks[0].Children[0].Attributes.Get("id"))
	assert.Len(t, doc.Blocks[0].Children, 1)
}

func collectValues(attrs Attributes, key string) []string {
	var out []string
	for v := range attrs.All(key) {
		out = append(out, v)
	}
	return out
}

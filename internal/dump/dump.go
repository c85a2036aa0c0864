// Package dump renders key-value documents as YAML for inspection.
//
// Each block becomes a mapping under its name; attributes and child blocks
// share that mapping in source order. Repeated keys and repeated block names
// are kept as repeated mapping keys, which YAML parsers may reject but which
// read faithfully. All values are strings.
package dump

import (
	"io"

	"github.com/specialistvlad/vmfgo/keyvalues"
	"gopkg.in/yaml.v3"
)

// Node converts a document to a YAML mapping node.
func Node(doc *keyvalues.Document) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, b := range doc.Blocks {
		root.Content = append(root.Content, scalar(b.Name), BlockNode(b))
	}
	return root
}

// BlockNode converts one block to a mapping node. Attributes come first,
// then children, matching the text layout.
func BlockNode(b *keyvalues.Block) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, a := range b.Attributes {
		n.Content = append(n.Content, scalar(a.Key), scalar(a.Value))
	}
	for _, child := range b.Children {
		n.Content = append(n.Content, scalar(child.Name), BlockNode(child))
	}
	return n
}

// Encode writes doc to w as a YAML document.
func Encode(w io.Writer, doc *keyvalues.Document) error {
	return encode(w, Node(doc))
}

// EncodeBlock writes a single block to w as a YAML document.
func EncodeBlock(w io.Writer, b *keyvalues.Block) error {
	return encode(w, &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{scalar(b.Name), BlockNode(b)}})
}

func encode(w io.Writer, n *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{n}}); err != nil {
		return err
	}
	return enc.Close()
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

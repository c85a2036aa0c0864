package keyvalues

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// segmentRegex matches one path segment, e.g. `solid`, `side[3]` or
// `"prop.v2"[1]`. Names holding a dot must be quoted.
var segmentRegex = regexp.MustCompile(`^(?:([a-zA-Z0-9_-]+)|"([a-zA-Z0-9_.-]+)")(?:\[(\d+)\])?$`)

// PathSegment selects the Index-th block called Name among its siblings.
type PathSegment struct {
	Name  string
	Index int // -1 indicates no index is present, which selects the first match.
}

// NewPathSegment creates a segment without an index.
func NewPathSegment(name string) PathSegment {
	return PathSegment{Name: name, Index: -1}
}

// NewPathSegmentWithIndex creates a segment selecting the index-th sibling.
func NewPathSegmentWithIndex(name string, index int) PathSegment {
	return PathSegment{Name: name, Index: index}
}

// HasIndex reports whether the segment carries an explicit index.
func (ps PathSegment) HasIndex() bool {
	return ps.Index != -1
}

// Path addresses a block inside a document, e.g. `world.solid[2].side[0]`.
type Path struct {
	Segments []PathSegment
}

// ParsePath parses the dotted path notation. A segment whose block name
// contains a dot is written in double quotes: `world."func.v2"[0]`.
func ParsePath(raw string) (*Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	path := &Path{}
	for _, segmentStr := range splitSegments(raw) {
		if segmentStr == "" {
			return nil, fmt.Errorf("path %q contains an empty segment", raw)
		}

		matches := segmentRegex.FindStringSubmatch(segmentStr)
		if matches == nil {
			return nil, fmt.Errorf("invalid path segment %q", segmentStr)
		}

		segment := NewPathSegment(matches[1] + matches[2])
		if matches[3] != "" {
			index, err := strconv.Atoi(matches[3])
			if err != nil {
				return nil, fmt.Errorf("invalid index in segment %q: %w", segmentStr, err)
			}
			segment.Index = index
		}
		path.Segments = append(path.Segments, segment)
	}
	return path, nil
}

// String renders the path in its canonical dotted form.
func (p *Path) String() string {
	if p == nil {
		return ""
	}

	var sb strings.Builder
	for i, segment := range p.Segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		if strings.Contains(segment.Name, ".") {
			sb.WriteString(`"` + segment.Name + `"`)
		} else {
			sb.WriteString(segment.Name)
		}
		if segment.HasIndex() {
			fmt.Fprintf(&sb, "[%d]", segment.Index)
		}
	}
	return sb.String()
}

// splitSegments splits raw on dots that are not inside double quotes.
func splitSegments(raw string) []string {
	var out []string
	start, quoted := 0, false
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '"':
			quoted = !quoted
		case '.':
			if !quoted {
				out = append(out, raw[start:i])
				start = i + 1
			}
		}
	}
	return append(out, raw[start:])
}

// Equal reports whether two paths select the same segments.
func (p *Path) Equal(other *Path) bool {
	if p == nil || other == nil {
		return p == other
	}
	return slices.Equal(p.Segments, other.Segments)
}

// Find resolves path against the document. The first segment selects among
// top-level blocks, each following one among the children of the previous.
func (d *Document) Find(path *Path) (*Block, bool) {
	if path == nil || len(path.Segments) == 0 {
		return nil, false
	}

	blocks := d.Blocks
	var found *Block
	for _, segment := range path.Segments {
		found = pick(blocks, segment)
		if found == nil {
			return nil, false
		}
		blocks = found.Children
	}
	return found, true
}

// Lookup is Find for a path in string form.
func (d *Document) Lookup(raw string) (*Block, error) {
	path, err := ParsePath(raw)
	if err != nil {
		return nil, err
	}
	block, ok := d.Find(path)
	if !ok {
		return nil, fmt.Errorf("no block at %s", path)
	}
	return block, nil
}

func pick(blocks []*Block, segment PathSegment) *Block {
	want := max(segment.Index, 0)
	n := 0
	for _, b := range blocks {
		if b.Name != segment.Name {
			continue
		}
		if n == want {
			return b
		}
		n++
	}
	return nil
}

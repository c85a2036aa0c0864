package recipe

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/vmfgo/internal/ctxlog"
	"github.com/specialistvlad/vmfgo/internal/entityexpr"
	"github.com/specialistvlad/vmfgo/vmf"
	"github.com/zclconf/go-cty/cty"
)

// Loader parses recipe files. It remembers every file it parsed so
// diagnostics can be printed with source snippets.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new recipe loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// fileRoot is the top level of a recipe file. Anything other than edit
// blocks is rejected by the decoder.
type fileRoot struct {
	Edits []*editBlock `hcl:"edit,block"`
}

type editBlock struct {
	Name     string         `hcl:"name,label"`
	Where    hcl.Expression `hcl:"where,optional"`
	Set      hcl.Expression `hcl:"set,optional"`
	Delete   []string       `hcl:"delete,optional"`
	Remove   bool           `hcl:"remove,optional"`
	Outputs  []*outputBlock `hcl:"output,block"`
	DefRange hcl.Range      `hcl:",def_range"`
}

type outputBlock struct {
	Name      string  `hcl:"name,label"`
	Target    string  `hcl:"target"`
	Input     string  `hcl:"input"`
	Parameter string  `hcl:"parameter,optional"`
	Delay     float64 `hcl:"delay,optional"`
	Refires   *int    `hcl:"refires,optional"`
}

// Load parses and decodes the recipe file at path.
func (l *Loader) Load(ctx context.Context, path string) (*Recipe, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Recipe loader started.", "path", path)

	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	r, decodeDiags := decode(file.Body, path)
	diags = append(diags, decodeDiags...)
	if r != nil {
		logger.Debug("Recipe loaded.", "path", path, "edits", len(r.Edits))
	}
	return r, diags
}

// Parse decodes a recipe from memory. filename is used in diagnostics.
func (l *Loader) Parse(src []byte, filename string) (*Recipe, hcl.Diagnostics) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	r, decodeDiags := decode(file.Body, filename)
	return r, append(diags, decodeDiags...)
}

// WriteDiagnostics prints diags with source context from the parsed files.
func (l *Loader) WriteDiagnostics(w io.Writer, diags hcl.Diagnostics) error {
	return hcl.NewDiagnosticTextWriter(w, l.parser.Files(), 78, false).WriteDiagnostics(diags)
}

func decode(body hcl.Body, filename string) (*Recipe, hcl.Diagnostics) {
	var root fileRoot
	diags := gohcl.DecodeBody(body, nil, &root)
	if diags.HasErrors() {
		return nil, diags
	}

	r := &Recipe{Filename: filename}
	seen := make(map[string]*editBlock)
	for _, block := range root.Edits {
		if first, dup := seen[block.Name]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("Duplicate edit %q", block.Name),
				Detail:   fmt.Sprintf("An edit named %q was already defined at %s.", block.Name, first.DefRange),
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		seen[block.Name] = block

		edit, editDiags := translateEdit(block)
		diags = append(diags, editDiags...)
		if edit != nil {
			r.Edits = append(r.Edits, edit)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return r, diags
}

func translateEdit(block *editBlock) (*Edit, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	edit := &Edit{
		Name:   block.Name,
		Delete: block.Delete,
		Remove: block.Remove,
		Range:  block.DefRange,
	}

	if present(block.Where) {
		where, whereDiags := entityexpr.FromExpression(block.Where)
		diags = append(diags, whereDiags...)
		edit.Where = where
	}

	if present(block.Set) {
		obj, ok := block.Set.(*hclsyntax.ObjectConsExpr)
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid set value",
				Detail:   "The set attribute must be an object constructor such as { key = \"value\" }.",
				Subject:  block.Set.Range().Ptr(),
			})
		} else {
			assignments, setDiags := translateSet(obj)
			diags = append(diags, setDiags...)
			edit.Set = assignments
		}
	}

	for _, out := range block.Outputs {
		refires := -1
		if out.Refires != nil {
			refires = *out.Refires
		}
		edit.Outputs = append(edit.Outputs, Output{
			Name: out.Name,
			Action: vmf.Action{
				Target:    out.Target,
				Input:     out.Input,
				Parameter: out.Parameter,
				Delay:     out.Delay,
				Refires:   refires,
			},
		})
	}

	if len(edit.Set) == 0 && len(edit.Delete) == 0 && len(edit.Outputs) == 0 && !edit.Remove && !diags.HasErrors() {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  "Edit has no effect",
			Detail:   fmt.Sprintf("Edit %q sets, deletes, adds and removes nothing.", block.Name),
			Subject:  block.DefRange.Ptr(),
		})
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return edit, diags
}

// translateSet keeps the assignments in source order. Keys must be static;
// values are evaluated per entity.
func translateSet(obj *hclsyntax.ObjectConsExpr) ([]Assignment, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	assignments := make([]Assignment, 0, len(obj.Items))
	for _, item := range obj.Items {
		key, keyDiags := item.KeyExpr.Value(nil)
		if keyDiags.HasErrors() || key.IsNull() || !key.Type().Equals(cty.String) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid set key",
				Detail:   "Keys in set must be bare names or quoted strings.",
				Subject:  item.KeyExpr.Range().Ptr(),
			})
			continue
		}
		assignments = append(assignments, Assignment{Key: key.AsString(), Value: item.ValueExpr})
	}
	return assignments, diags
}

// present reports whether an optional expression attribute was written.
// gohcl fills absent ones with a static null.
func present(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	v, diags := expr.Value(nil)
	return diags.HasErrors() || !v.IsNull()
}

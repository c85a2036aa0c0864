package entityexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/vmfgo/vmf"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ErrNotBool is returned by Match when an expression yields something other
// than true or false.
var ErrNotBool = errors.New("predicate did not evaluate to a bool")

// Reserved variable names. They shadow entity keys of the same name.
const (
	VarKV     = "kv"
	VarID     = "id"
	VarSolids = "solids"
)

// Predicate is a compiled entity filter. The zero value and a nil
// *Predicate match every entity.
type Predicate struct {
	expr  hcl.Expression
	refs  []string
	roots []string
}

// Compile parses src as an HCL expression. Blank source yields a predicate
// matching everything.
func Compile(src string) (*Predicate, hcl.Diagnostics) {
	if strings.TrimSpace(src) == "" {
		return &Predicate{}, nil
	}
	expr, diags := hclsyntax.ParseExpression([]byte(src), "where", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	return FromExpression(expr)
}

// FromExpression wraps an already parsed expression, such as a recipe
// attribute. Calls to unknown functions are reported here rather than on
// first evaluation.
func FromExpression(expr hcl.Expression) (*Predicate, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	traversals, calls := analyze(expr)

	for _, c := range calls {
		if knownFunction(c.name) {
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Call to unknown function",
			Detail:   fmt.Sprintf("There is no function named %q. Available: %s.", c.name, strings.Join(Functions(), ", ")),
			Subject:  c.rng.Ptr(),
		})
	}
	if diags.HasErrors() {
		return nil, diags
	}

	p := &Predicate{expr: expr}
	seen := make(map[string]bool)
	for _, t := range traversals {
		p.refs = append(p.refs, TraversalKey(t))
		if root := t.RootName(); !seen[root] {
			seen[root] = true
			p.roots = append(p.roots, root)
		}
	}
	return p, diags
}

// References returns the variables the expression reads, sorted.
func (p *Predicate) References() []string {
	if p == nil {
		return nil
	}
	return p.refs
}

// Match evaluates the predicate against e.
func (p *Predicate) Match(e *vmf.Entity) (bool, error) {
	if p == nil || p.expr == nil {
		return true, nil
	}

	val, diags := p.expr.Value(bind(e, p.roots))
	if diags.HasErrors() {
		return false, diags
	}
	if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.Bool) {
		return false, fmt.Errorf("%w: got %s", ErrNotBool, describe(val))
	}

	var ok bool
	if err := gocty.FromCtyValue(val, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// EvalContext returns the evaluation context for e. Identifiers read by
// exprs that e does not carry are bound to the empty string.
func EvalContext(e *vmf.Entity, exprs ...hcl.Expression) *hcl.EvalContext {
	var roots []string
	for _, expr := range exprs {
		for _, t := range expr.Variables() {
			roots = append(roots, t.RootName())
		}
	}
	return bind(e, roots)
}

func bind(e *vmf.Entity, roots []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(e.KeyValues)+3)
	kv := make(map[string]cty.Value, len(e.KeyValues))

	for _, root := range roots {
		vars[root] = cty.StringVal("")
	}
	for _, a := range e.KeyValues {
		if _, dup := kv[a.Key]; dup {
			continue
		}
		v := cty.StringVal(a.Value)
		kv[a.Key] = v
		if hclsyntax.ValidIdentifier(a.Key) {
			vars[a.Key] = v
		}
	}

	vars[VarKV] = cty.ObjectVal(kv)
	vars[VarID] = cty.NullVal(cty.Number)
	if id, ok := e.ID(); ok {
		vars[VarID] = cty.NumberIntVal(int64(id))
	}
	vars[VarSolids] = cty.NumberIntVal(int64(len(e.Solids) + len(e.HiddenSolids)))

	return &hcl.EvalContext{
		Variables: vars,
		Functions: functionsFor(e),
	}
}

func describe(v cty.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case !v.IsKnown():
		return "unknown value"
	default:
		return v.Type().FriendlyName()
	}
}

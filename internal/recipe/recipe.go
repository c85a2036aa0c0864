package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/vmfgo/internal/ctxlog"
	"github.com/specialistvlad/vmfgo/internal/entityexpr"
	"github.com/specialistvlad/vmfgo/vmf"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Recipe is a decoded recipe file.
type Recipe struct {
	Filename string
	Edits    []*Edit
}

// Edit is one edit block.
type Edit struct {
	Name    string
	Where   *entityexpr.Predicate
	Set     []Assignment
	Delete  []string
	Remove  bool
	Outputs []Output
	Range   hcl.Range
}

// Assignment sets Key to the string form of Value.
type Assignment struct {
	Key   string
	Value hcl.Expression
}

// Output is a connection appended to every matched entity.
type Output struct {
	Name   string
	Action vmf.Action
}

// Result reports how many entities an edit touched.
type Result struct {
	Edit    string
	Matched int
}

// Apply runs every edit against m in order. It stops at the first edit that
// fails; results for the edits already applied are returned with the error.
func (r *Recipe) Apply(ctx context.Context, m *vmf.Map) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)
	results := make([]Result, 0, len(r.Edits))

	for _, edit := range r.Edits {
		n, err := edit.Apply(m)
		if err != nil {
			return results, fmt.Errorf("edit %q: %w", edit.Name, err)
		}
		logger.Debug("Recipe edit applied.", "edit", edit.Name, "matched", n)
		results = append(results, Result{Edit: edit.Name, Matched: n})
	}
	return results, nil
}

// Apply runs the edit against m and returns the number of matched entities.
// Matching completes before any entity is changed.
func (e *Edit) Apply(m *vmf.Map) (int, error) {
	var matched []*vmf.Entity
	for _, ent := range m.Entities {
		ok, err := e.Where.Match(ent)
		if err != nil {
			return 0, fmt.Errorf("entity %s: %w", describe(ent), err)
		}
		if ok {
			matched = append(matched, ent)
		}
	}

	for _, ent := range matched {
		if err := e.edit(ent); err != nil {
			return 0, fmt.Errorf("entity %s: %w", describe(ent), err)
		}
	}

	if e.Remove && len(matched) > 0 {
		doomed := make(map[*vmf.Entity]bool, len(matched))
		for _, ent := range matched {
			doomed[ent] = true
		}
		m.Entities.RemoveFunc(func(ent *vmf.Entity) bool { return doomed[ent] })
	}
	return len(matched), nil
}

func (e *Edit) edit(ent *vmf.Entity) error {
	values := make([]string, len(e.Set))
	if len(e.Set) > 0 {
		exprs := make([]hcl.Expression, len(e.Set))
		for i, a := range e.Set {
			exprs[i] = a.Value
		}
		evalCtx := entityexpr.EvalContext(ent, exprs...)
		for i, a := range e.Set {
			v, diags := a.Value.Value(evalCtx)
			if diags.HasErrors() {
				return diags
			}
			s, err := stringify(v)
			if err != nil {
				return fmt.Errorf("set %s: %w", a.Key, err)
			}
			values[i] = s
		}
	}

	for _, key := range e.Delete {
		ent.Del(key)
	}
	for i, a := range e.Set {
		ent.Set(a.Key, values[i])
	}
	for _, out := range e.Outputs {
		ent.AddConnection(out.Name, out.Action)
	}
	return nil
}

// stringify renders a value the way the editor stores it. Booleans become
// "1" and "0".
func stringify(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", errors.New("value is null")
	}
	if v.Type().Equals(cty.Bool) {
		if v.True() {
			return "1", nil
		}
		return "0", nil
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot use %s as a key-value: %w", v.Type().FriendlyName(), err)
	}
	return s.AsString(), nil
}

func describe(e *vmf.Entity) string {
	if id, ok := e.ID(); ok {
		return fmt.Sprintf("%d (%s)", id, e.Classname())
	}
	return e.Classname()
}

package entityexpr

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/vmfgo/vmf"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

var staticFunctions = map[string]function.Function{
	"upper":      stdlib.UpperFunc,
	"lower":      stdlib.LowerFunc,
	"strlen":     stdlib.StrlenFunc,
	"format":     stdlib.FormatFunc,
	"replace":    stdlib.ReplaceFunc,
	"number":     numberFunc,
	"startswith": stringTest(strings.HasPrefix),
	"endswith":   stringTest(strings.HasSuffix),
	"contains":   stringTest(strings.Contains),
}

// Functions returns the names callable from an expression, sorted.
func Functions() []string {
	names := slices.Collect(maps.Keys(staticFunctions))
	names = append(names, "has")
	slices.Sort(names)
	return names
}

func knownFunction(name string) bool {
	_, ok := staticFunctions[name]
	return ok || name == "has"
}

// functionsFor returns the function table bound to one entity.
func functionsFor(e *vmf.Entity) map[string]function.Function {
	funcs := maps.Clone(staticFunctions)
	funcs["has"] = hasFunc(e)
	return funcs
}

// numberFunc parses a key-value string as a number.
var numberFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "str", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		v, err := convert.Convert(args[0], cty.Number)
		if err != nil {
			return cty.NilVal, fmt.Errorf("%q is not a number", args[0].AsString())
		}
		return v, nil
	},
})

func stringTest(test func(s, substr string) bool) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "str", Type: cty.String},
			{Name: "substr", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.Bool),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return cty.BoolVal(test(args[0].AsString(), args[1].AsString())), nil
		},
	})
}

// hasFunc reports whether the entity carries a key, whatever its spelling
// as an identifier.
func hasFunc(e *vmf.Entity) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "key", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.Bool),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			_, ok := e.Lookup(args[0].AsString())
			return cty.BoolVal(ok), nil
		},
	})
}

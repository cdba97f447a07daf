package interp

import (
	"maps"
	"slices"
)

// Builtin is a name predefined in every evaluation scope.
type Builtin struct {
	Name      string
	Signature string
	Doc       string
	Value     any
}

var builtins = []Builtin{
	{
		Name:      "some",
		Signature: "some(value)",
		Doc:       "option holding value",
		Value:     func(v any) Option { return Some(v) },
	},
	{
		Name:      "nothing",
		Signature: "nothing",
		Doc:       "empty option",
		Value:     Nothing,
	},
	{
		Name:      "option",
		Signature: "option(value)",
		Doc:       "nothing when value is nil, else some(value)",
		Value:     FromNullable,
	},
	{
		Name:      "ok",
		Signature: "ok(value)",
		Doc:       "successful result",
		Value:     func(v any) Result { return Ok(v) },
	},
	{
		Name:      "fail",
		Signature: "fail(reason)",
		Doc:       "failed result; chain and map skip it",
		Value:     func(reason any) Result { return Fail(reason) },
	},
	{
		Name:      "list",
		Signature: "list(values...)",
		Doc:       "list; chain is flatMap",
		Value:     func(vs ...any) List { return append(List{}, vs...) },
	},
}

// Builtins returns the predefined names in a stable order.
func Builtins() []Builtin { return slices.Clone(builtins) }

// Lookup returns the builtin called name.
func Lookup(name string) (Builtin, bool) {
	i := slices.IndexFunc(builtins, func(b Builtin) bool { return b.Name == name })
	if i < 0 {
		return Builtin{}, false
	}

	return builtins[i], true
}

// rootScope returns the builtins overlaid with env.
func rootScope(env map[string]any) map[string]any {
	scope := make(map[string]any, len(builtins)+len(env))

	for _, b := range builtins {
		scope[b.Name] = b.Value
	}

	maps.Copy(scope, env)

	return scope
}

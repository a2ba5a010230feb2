package urlkit

import (
	"fmt"
	"sort"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered list of query parameters. Encoding keeps the
// order in which parameters were added.
type Params []Param

// Q builds Params from alternating key/value arguments:
//
//	urlkit.Q("page", 2, "sort", "asc")
//
// It panics if the arguments are not key/value pairs with string keys.
func Q(pairs ...any) Params {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("urlkit: Q expects key/value pairs, got %d arguments", len(pairs)))
	}

	out := make(Params, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("urlkit: Q key at position %d is %T, want string", i, pairs[i]))
		}
		out = out.Set(key, pairs[i+1])
	}
	return out
}

// ParamsFromMap converts a map into Params. Go maps carry no insertion
// order so keys are sorted to keep the output stable.
func ParamsFromMap(m map[string]any) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Params, 0, len(keys))
	for _, k := range keys {
		out = append(out, Param{Key: k, Value: m[k]})
	}
	return out
}

// Set replaces the value of key in place, or appends it.
func (p Params) Set(key string, value any) Params {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Key: key, Value: value})
}

// Get returns the value stored for key.
func (p Params) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// Map returns the params as a map, later keys win.
func (p Params) Map() map[string]any {
	out := make(map[string]any, len(p))
	for _, param := range p {
		out[param.Key] = param.Value
	}
	return out
}

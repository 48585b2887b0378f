package catalog

import (
	"github.com/itchyny/gojq"
	"github.com/pkg/errors"
)

// Value returns the group as plain JSON data, the shape jq expressions see:
//
//	{"key": "home", "ids": ["Home", "House"], "aliases": ["Home", "House"]}
func (gr Group) Value() map[string]any {
	ids := make([]any, len(gr.IDs))
	for i, id := range gr.IDs {
		ids[i] = string(id)
	}
	aliases := make([]any, len(gr.Aliases))
	for i, alias := range gr.Aliases {
		aliases[i] = alias
	}
	return map[string]any{
		"key":     gr.Key,
		"ids":     ids,
		"aliases": aliases,
	}
}

// Values converts groups for use as jq input.
func Values(groups []Group) []any {
	out := make([]any, len(groups))
	for i, gr := range groups {
		out[i] = gr.Value()
	}
	return out
}

// Query runs the jq expression expr against input and collects every result.
func Query(expr string, input any) ([]any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "jq parse error in %q", expr)
	}

	var results []any
	iter := query.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return results, errors.Wrap(err, "jq error")
		}
		results = append(results, v)
	}
	return results, nil
}

package graphdef

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ctyToNative recursively converts a cty.Value to its most natural Go
// counterpart, the same shape as the teacher's hcl_adapter.ctyToNative:
// numbers become float64, objects/maps become map[string]any, lists/tuples
// become []any.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("cty.Number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, fmt.Errorf("cty.Bool to bool: %w", err)
		}
		return b, nil

	case ty.IsListType() || ty.IsTupleType():
		out := make([]any, 0)
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("graphdef: unsupported arg type %s", ty.FriendlyName())
	}
}

// exprArgsToNative evaluates an "args" attribute expression (expected to be
// an object/map constant, no variable references) and converts it to a
// plain map[string]any. A nil expression (the attribute was omitted) yields
// an empty map.
func exprArgsToNative(expr hcl.Expression) (map[string]any, error) {
	if expr == nil {
		return map[string]any{}, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluating args: %w", diags)
	}

	native, err := ctyToNative(val)
	if err != nil {
		return nil, err
	}

	asMap, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("args must be an object, got %T", native)
	}
	return asMap, nil
}

// SPDX-License-Identifier: MIT
// Conversion of HCL attribute values into block parameters.

package hcldiag

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// paramValue converts a cty.Value into the loose Go form accepted by
// diagram.NormalizeParam: string, float64, bool or []any of those.
func paramValue(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, fmt.Errorf("null or unknown value: %w", ErrBadValue)
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadValue, err)
		}
		return f, nil

	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadValue, err)
		}
		return b, nil

	case ty.IsListType() || ty.IsTupleType():
		items := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			ety := ev.Type()
			if ety != cty.String && ety != cty.Number {
				return nil, fmt.Errorf("list element of type %s: %w", ety.FriendlyName(), ErrBadValue)
			}
			item, err := paramValue(ev)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}

	return nil, fmt.Errorf("unsupported type %s: %w", ty.FriendlyName(), ErrBadValue)
}

// attributeParams evaluates every attribute of a block body without
// variables or functions.
func attributeParams(body hcl.Body) (map[string]any, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, diags)
	}
	params := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: %w: %w", attr.Range, ErrBadValue, diags)
		}
		p, err := paramValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: attribute %q: %w", attr.Range, name, err)
		}
		params[name] = p
	}
	return params, nil
}

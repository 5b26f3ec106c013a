// SPDX-License-Identifier: MIT

package diagram

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Params is the string-keyed parameter map of a System. Values are kept in
// a normalized form (float64, string, bool, []float64, []string) so that a
// diagram read back from JSON or YAML compares equal to the original.
type Params map[string]any

// Keys returns the parameter names sorted ascending.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of p whose slices are not shared.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		switch x := v.(type) {
		case []float64:
			out[k] = append(make([]float64, 0, len(x)), x...)
		case []string:
			out[k] = append(make([]string, 0, len(x)), x...)
		default:
			out[k] = v
		}
	}
	return out
}

// Equal compares two normalized parameter maps.
func (p Params) Equal(other Params) bool {
	if len(p) != len(other) {
		return false
	}
	for k, v := range p {
		w, ok := other[k]
		if !ok || !reflect.DeepEqual(v, w) {
			return false
		}
	}
	return true
}

// NormalizeParam converts v to the canonical parameter representation.
// Integer kinds become float64; slices of numbers become []float64; slices
// of strings become []string. Decoded JSON/YAML ([]any) is accepted when
// its elements are homogeneous. Every empty list, whatever its element
// type, becomes a non-nil empty []float64.
func NormalizeParam(v any) (any, error) {
	switch x := v.(type) {
	case string, bool:
		return x, nil
	case []float64:
		return append(make([]float64, 0, len(x)), x...), nil
	case []string:
		if len(x) == 0 {
			return []float64{}, nil
		}
		return append(make([]string, 0, len(x)), x...), nil
	case []int:
		out := make([]float64, len(x))
		for i, n := range x {
			out[i] = float64(n)
		}
		return out, nil
	case []any:
		return normalizeList(x)
	}

	if f, ok := toFloat(v); ok {
		return f, nil
	}
	return nil, fmt.Errorf("NormalizeParam(%T): %w", v, ErrInvalidParam)
}

func normalizeList(items []any) (any, error) {
	if len(items) == 0 {
		return []float64{}, nil
	}
	if _, ok := items[0].(string); ok {
		out := make([]string, len(items))
		for i, it := range items {
			s, ok := it.(string)
			if !ok {
				return nil, fmt.Errorf("NormalizeParam: mixed list at %d: %w", i, ErrInvalidParam)
			}
			out[i] = s
		}
		return out, nil
	}
	out := make([]float64, len(items))
	for i, it := range items {
		f, ok := toFloat(it)
		if !ok {
			return nil, fmt.Errorf("NormalizeParam: element %d is %T: %w", i, it, ErrInvalidParam)
		}
		out[i] = f
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Params returns a copy of the parameter map.
func (s *System) Params() Params {
	return s.params.Clone()
}

// Param returns the normalized value stored under key.
func (s *System) Param(key string) (any, bool) {
	v, ok := s.params[key]
	return v, ok
}

// SetParam normalizes and stores v under key.
func (s *System) SetParam(key string, v any) error {
	nv, err := NormalizeParam(v)
	if err != nil {
		return fmt.Errorf("SetParam(%q on %q): %w", key, s.name, err)
	}
	s.params[key] = nv
	return nil
}

// SetParams stores every entry of p; the first invalid value aborts and
// leaves s unchanged.
func (s *System) SetParams(p map[string]any) error {
	staged := make(Params, len(p))
	for k, v := range p {
		nv, err := NormalizeParam(v)
		if err != nil {
			return fmt.Errorf("SetParams(%q on %q): %w", k, s.name, err)
		}
		staged[k] = nv
	}
	for k, v := range staged {
		s.params[k] = v
	}
	return nil
}

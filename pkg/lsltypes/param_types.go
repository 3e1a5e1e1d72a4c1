package lsltypes

import "math"

// Params maps parameter names from `key:value` tokens to decoded values.
// Values are int, float64, bool, string, nil, []any or map[string]any.
type Params map[string]any

// Has reports whether key was supplied.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Int returns key as an int. Floats with no fractional part are accepted.
func (p Params) Int(key string) (int, bool) {
	return toInt(p[key])
}

// Float returns key as a float64. Integers are widened; NaN and infinities
// are rejected.
func (p Params) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// String returns key as a string.
func (p Params) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// Bool returns key as a bool.
func (p Params) Bool(key string) (bool, bool) {
	v, ok := p[key].(bool)
	return v, ok
}

// IntSlice returns key as a slice of ints. A scalar int yields a single
// element slice.
func (p Params) IntSlice(key string) ([]int, bool) {
	switch v := p[key].(type) {
	case []any:
		out := make([]int, 0, len(v))
		for _, item := range v {
			n, ok := toInt(item)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	default:
		if n, ok := toInt(v); ok {
			return []int{n}, true
		}
	}
	return nil, false
}

// IntOr returns key as an int, or def when absent or not an int.
func (p Params) IntOr(key string, def int) int {
	if v, ok := p.Int(key); ok {
		return v
	}
	return def
}

// FloatOr returns key as a float64, or def when absent or not numeric.
func (p Params) FloatOr(key string, def float64) float64 {
	if v, ok := p.Float(key); ok {
		return v
	}
	return def
}

// StringOr returns key as a string, or def when absent or not a string.
func (p Params) StringOr(key, def string) string {
	if v, ok := p.String(key); ok && v != "" {
		return v
	}
	return def
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	}
	return 0, false
}

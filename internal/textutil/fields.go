package textutil

import (
	"fmt"
	"strings"
)

// Str renders a scalar map value as a string. Missing keys, nils, and
// non-scalar values come back empty.
func Str(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	switch v := obj[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; render integers without a
		// trailing .0.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case int:
		return fmt.Sprintf("%d", v)
	default:
		return ""
	}
}

// FieldWithFallback returns obj[primary] when it is a non-empty string,
// else the first non-empty fallback, else def. A key that exists but holds
// an empty string counts as absent: downstream rendering relies on the
// fallback chain firing for blank values.
func FieldWithFallback(obj map[string]any, primary string, fallbacks []string, def string) string {
	if v := Str(obj, primary); v != "" {
		return v
	}
	for _, fb := range fallbacks {
		if v := Str(obj, fb); v != "" {
			return v
		}
	}
	return def
}

// NestedValue navigates a dotted path ("personalInfo.name") through nested
// maps. Returns nil when any segment is missing or not a map.
func NestedValue(data map[string]any, path string) any {
	var cur any = data
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok {
			return nil
		}
	}
	return cur
}

// NestedString is NestedValue for string leaves.
func NestedString(data map[string]any, path string) string {
	if s, ok := NestedValue(data, path).(string); ok {
		return s
	}
	return ""
}

// Map returns obj[key] as a map when it is one.
func Map(obj map[string]any, key string) map[string]any {
	if obj == nil {
		return nil
	}
	m, _ := obj[key].(map[string]any)
	return m
}

// Slice returns obj[key] as a []any when it is one.
func Slice(obj map[string]any, key string) []any {
	if obj == nil {
		return nil
	}
	s, _ := obj[key].([]any)
	return s
}

// StringSlice coerces a []any of scalars into strings, skipping empties.
func StringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

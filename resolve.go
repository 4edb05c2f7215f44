package tpl2pdf

import "strings"

// resolvePath resolves a dot-separated key path against a nested mapping.
// It descends one segment at a time and reports absence as soon as a segment
// is missing or the current value is not map-like. Absence is a normal
// outcome, not an error; callers decide what a missing path renders as.
// Resolution is pure and reentrant.
func resolvePath(path string, ctx map[string]any) (any, bool) {
	if path == "" {
		return nil, false
	}

	segments := strings.Split(path, ".")
	var current any = ctx

	for _, seg := range segments {
		m, ok := asStringMap(current)
		if !ok {
			return nil, false
		}
		v, ok := m[seg]
		if !ok {
			return nil, false
		}
		current = v
	}

	return current, true
}

// asStringMap reports whether v is a string-keyed mapping.
// map[string]any covers data decoded from JSON; map[string]string shows up
// in hand-built contexts.
func asStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// asSequence reports whether v is an ordered sequence, normalizing the
// element type to any.
func asSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []int:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

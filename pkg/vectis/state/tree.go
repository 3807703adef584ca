package state

import (
	"fmt"
	"strings"
)

// Cloner is implemented by values stored in the tree that own mutable
// internals (slices, maps, pointers). CloneValue must return a deep copy.
type Cloner interface {
	CloneValue() any
}

// splitPath validates and splits a dot path. The wildcard is reserved for
// subscriptions and never names a node.
func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" || p == Wildcard {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return parts, nil
}

// getNested walks containers; any missing segment yields (nil, false).
func getNested(root map[string]any, parts []string) (any, bool) {
	var cur any = root
	for _, key := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// setNested writes value at parts, creating or replacing non-container
// intermediates with empty maps.
func setNested(root map[string]any, parts []string, value any) {
	cur := root
	for _, key := range parts[:len(parts)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[key] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

// deepCopy copies containers recursively and defers to Cloner for typed values.
func deepCopy(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case Cloner:
		return val.CloneValue()
	case map[string]any:
		return copyTree(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

func copyTree(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, item := range m {
		out[k] = deepCopy(item)
	}
	return out
}

func shallowCopy(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

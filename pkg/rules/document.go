package rules

import "strings"

// Document is the read-only answer snapshot a validation pass runs against.
// References resolve against the whole document, not just the field under
// validation. Callers must not mutate a Document while validation is running.
type Document map[string]any

// Get resolves a dot path against the document. Nested maps are traversed
// segment by segment; a flattened key containing dots is tried first so both
// storage conventions work.
func (d Document) Get(path string) (any, bool) {
	if d == nil || path == "" {
		return nil, false
	}
	if value, ok := d[path]; ok {
		return value, true
	}

	segments := strings.Split(path, ".")
	var current any = map[string]any(d)
	for _, segment := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			if doc, isDoc := current.(Document); isDoc {
				node = map[string]any(doc)
			} else {
				return nil, false
			}
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Has reports whether path resolves to a non-empty value.
func (d Document) Has(path string) bool {
	value, ok := d.Get(path)
	return ok && !IsEmpty(value)
}

// IsEmpty reports whether a raw answer counts as "not provided". Empty
// strings, empty collections and nil are all missing; zero numbers are not.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		for _, item := range v {
			if !IsEmpty(item) {
				return false
			}
		}
		return true
	case map[string]string:
		for _, item := range v {
			if strings.TrimSpace(item) != "" {
				return false
			}
		}
		return true
	default:
		return false
	}
}

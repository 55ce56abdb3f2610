// Package textnorm normalises free-text values so that must-differ
// comparisons are insensitive to case, surrounding whitespace and the order
// the component parts were entered in.
package textnorm

import (
	"sort"
	"strings"
)

// Canonical lowercases and trims a single string value.
func Canonical(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// CanonicalParts normalises each part, sorts them, and joins with a single
// space. Sorting makes {firstName: "Alice", lastName: "Example"} compare
// equal to {firstName: "Example", lastName: "Alice"} so swapped fields do
// not defeat a duplicate-contact check.
func CanonicalParts(parts []string) string {
	normalised := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := Canonical(part)
		if trimmed == "" {
			continue
		}
		normalised = append(normalised, trimmed)
	}
	sort.Strings(normalised)
	return strings.Join(normalised, " ")
}

// CanonicalValue flattens a comparison operand into a canonical string. It
// accepts plain strings and string-keyed maps (object values such as names
// or addresses); map entries are normalised by value, ignoring key order.
func CanonicalValue(value any) string {
	switch v := value.(type) {
	case string:
		return Canonical(v)
	case map[string]any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return CanonicalParts(parts)
	case map[string]string:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, item)
		}
		return CanonicalParts(parts)
	case []string:
		return CanonicalParts(v)
	default:
		return ""
	}
}

package rules

import "github.com/goliatone/go-formflow/internal/textnorm"

// DiffersFrom decorates a schema with a must-differ rule: the value under
// validation must not collide with the referenced sibling answer. Comparison
// is case-insensitive, whitespace-trimmed, and component-order-insensitive
// for object values (two contact names with swapped parts still collide).
// The rule belongs on the later-declared field of the pair so only one side
// of a duplicate reports.
func DiffersFrom(inner Schema, ref Reference, kind string) Schema {
	if kind == "" {
		kind = KindValuesMustNotMatch
	}
	return differsSchema{inner: inner, ref: ref, kind: kind}
}

type differsSchema struct {
	inner Schema
	ref   Reference
	kind  string
}

func (s differsSchema) Validate(value any, doc Document) Result {
	result := s.inner.Validate(value, doc)
	if !result.Valid() || result.Stripped || result.Value == nil {
		return result
	}
	other, okRef := s.ref.Resolve(doc)
	if !okRef {
		// Missing or empty sibling: nothing to collide with.
		return result
	}
	mine := textnorm.CanonicalValue(result.Value)
	theirs := textnorm.CanonicalValue(other)
	if mine != "" && mine == theirs {
		return fail(Issue{Kind: s.kind})
	}
	return result
}

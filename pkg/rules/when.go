package rules

// Reference points at another field's current value, or carries a literal
// constant. References resolve against the whole document snapshot at
// validation time.
type Reference struct {
	path      string
	literal   any
	isLiteral bool
}

// Ref builds a reference to the answer at a dot path.
func Ref(path string) Reference { return Reference{path: path} }

// Lit builds a constant reference.
func Lit(value any) Reference { return Reference{literal: value, isLiteral: true} }

// Resolve returns the referenced value. ok is false when the target is
// missing or empty; conditional branches treat that as the condition not
// holding, so a missing upstream answer never cascades into a second error.
func (r Reference) Resolve(doc Document) (any, bool) {
	if r.isLiteral {
		return r.literal, true
	}
	value, found := doc.Get(r.path)
	if !found || IsEmpty(value) {
		return nil, false
	}
	return value, true
}

// Path returns the referenced document path, empty for literals.
func (r Reference) Path() string { return r.path }

// Predicate tests a resolved reference value. ok is false when the reference
// could not be resolved.
type Predicate func(value any, ok bool) bool

// Is matches when the referenced value loosely equals want.
func Is(want any) Predicate {
	return func(value any, ok bool) bool {
		return ok && looseEqual(value, want)
	}
}

// In matches when the referenced value is a member of the given set.
func In(wants ...any) Predicate {
	return func(value any, ok bool) bool {
		return ok && containsValue(wants, value)
	}
}

// Exists matches when the reference resolves to a non-empty value.
func Exists() Predicate {
	return func(_ any, ok bool) bool { return ok }
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(value any, ok bool) bool { return !p(value, ok) }
}

// Condition describes one conditional branch. When the predicate holds the
// Then schema replaces the current one; otherwise the Otherwise schema does.
// A nil arm leaves the current schema in place.
type Condition struct {
	Is        Predicate
	Then      Schema
	Otherwise Schema
}

// WhenBranch pairs a reference with a condition, produced by When.
type WhenBranch struct {
	ref  Reference
	cond Condition
}

// When builds a conditional branch for use with Switch.
func When(ref Reference, cond Condition) WhenBranch {
	return WhenBranch{ref: ref, cond: cond}
}

// Switch wraps a base schema with conditional branches. Branches are
// evaluated left to right against the document; each matching branch
// substitutes its schema before type validation runs, so a later branch can
// override the outcome of an earlier one (a requirement that depends on two
// independent upstream answers).
func Switch(base Schema, branches ...WhenBranch) Schema {
	return switchSchema{base: base, branches: branches}
}

type switchSchema struct {
	base     Schema
	branches []WhenBranch
}

func (s switchSchema) Validate(value any, doc Document) Result {
	current := s.base
	for _, branch := range s.branches {
		refValue, refOK := branch.ref.Resolve(doc)
		matched := branch.cond.Is != nil && branch.cond.Is(refValue, refOK)
		if matched {
			if branch.cond.Then != nil {
				current = branch.cond.Then
			}
			continue
		}
		if branch.cond.Otherwise != nil {
			current = branch.cond.Otherwise
		}
	}
	if current == nil {
		current = Any()
	}
	return current.Validate(value, doc)
}

package rules

// Result is the outcome of evaluating a schema against one value. Exactly one
// of these states holds: Issues is non-empty (invalid), Stripped is true (the
// value must be absent from canonical output), or Value carries the canonical
// form of the input (which is nil for an optional, unanswered field).
type Result struct {
	Issues   []Issue
	Value    any
	Stripped bool
}

// Valid reports whether the result carries no violations.
func (r Result) Valid() bool { return len(r.Issues) == 0 }

// Schema validates a single value in the context of the whole document.
// Implementations are pure: they never mutate the value or the document.
type Schema interface {
	Validate(value any, doc Document) Result
}

func ok(value any) Result { return Result{Value: value} }

func fail(issues ...Issue) Result { return Result{Issues: issues} }

// presence applies shared required/optional handling. The second return is
// true when the value was missing and the result is final.
func presence(value any, required bool) (Result, bool) {
	if !IsEmpty(value) {
		return Result{}, false
	}
	if required {
		return fail(Issue{Kind: KindRequired}), true
	}
	return ok(nil), true
}

// Stripped returns a schema that unconditionally removes the value from the
// canonical output. It never raises an issue and never marks the value
// required; the two outcomes are mutually exclusive by construction.
func Stripped() Schema { return strippedSchema{} }

type strippedSchema struct{}

func (strippedSchema) Validate(any, Document) Result { return Result{Stripped: true} }

// AnySchema accepts any non-empty value, optionally restricted to a fixed
// value set.
type AnySchema struct {
	required bool
	valid    []any
}

// Any returns a schema with no shape constraint.
func Any() *AnySchema { return &AnySchema{} }

// Required marks the value as mandatory.
func (s *AnySchema) Required() *AnySchema { s.required = true; return s }

// Valid restricts the value to the given set.
func (s *AnySchema) Valid(values ...any) *AnySchema {
	s.valid = append(s.valid, values...)
	return s
}

func (s *AnySchema) Validate(value any, _ Document) Result {
	if result, done := presence(value, s.required); done {
		return result
	}
	if len(s.valid) > 0 && !containsValue(s.valid, value) {
		return fail(Issue{Kind: KindAnyValid})
	}
	return ok(value)
}

func containsValue(set []any, value any) bool {
	for _, item := range set {
		if looseEqual(item, value) {
			return true
		}
	}
	return false
}

package rules

import (
	"math"
	"strings"
)

// NumberSchema validates numeric answers. String input is accepted with
// thousands separators and an optional leading currency symbol so raw form
// values like "£120,000" canonicalise to 120000.
type NumberSchema struct {
	required bool
	integer  bool
	hasMin   bool
	min      float64
	hasMax   bool
	max      float64
}

// Number returns an unconstrained numeric schema.
func Number() *NumberSchema { return &NumberSchema{} }

func (s *NumberSchema) Required() *NumberSchema { s.required = true; return s }

// Integer rejects fractional values.
func (s *NumberSchema) Integer() *NumberSchema { s.integer = true; return s }

// Min sets an inclusive lower bound.
func (s *NumberSchema) Min(n float64) *NumberSchema { s.hasMin, s.min = true, n; return s }

// Max sets an inclusive upper bound.
func (s *NumberSchema) Max(n float64) *NumberSchema { s.hasMax, s.max = true, n; return s }

func (s *NumberSchema) Validate(value any, _ Document) Result {
	if result, done := presence(value, s.required); done {
		return result
	}
	parsed, okNum := toFloat(normaliseNumericInput(value))
	if !okNum {
		return fail(Issue{Kind: KindNumberBase})
	}
	if s.integer && parsed != math.Trunc(parsed) {
		return fail(Issue{Kind: KindNumberInteger})
	}
	if s.hasMin && parsed < s.min {
		return fail(Issue{Kind: KindNumberMin})
	}
	if s.hasMax && parsed > s.max {
		return fail(Issue{Kind: KindNumberMax})
	}
	if s.integer || parsed == math.Trunc(parsed) {
		return ok(int(parsed))
	}
	return ok(parsed)
}

// normaliseNumericInput strips grouping commas and a leading pound sign from
// string input before parsing.
func normaliseNumericInput(value any) any {
	raw, isString := value.(string)
	if !isString {
		return value
	}
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "£")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	return strings.TrimSpace(cleaned)
}

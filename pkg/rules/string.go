package rules

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-formflow/internal/words"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// StringSchema validates free-text answers: length bounds, word-count bounds,
// pattern and value-set membership. The canonical value is the trimmed input.
type StringSchema struct {
	required bool
	minLen   int
	maxLen   int
	minWords int
	maxWords int
	pattern  *regexp.Regexp
	email    bool
	valid    []string
}

// String returns an unconstrained string schema.
func String() *StringSchema { return &StringSchema{} }

func (s *StringSchema) Required() *StringSchema { s.required = true; return s }

// Min sets an inclusive lower bound on character length.
func (s *StringSchema) Min(n int) *StringSchema { s.minLen = n; return s }

// Max sets an inclusive upper bound on character length.
func (s *StringSchema) Max(n int) *StringSchema { s.maxLen = n; return s }

// MinWords sets an inclusive lower bound on whitespace-token word count.
func (s *StringSchema) MinWords(n int) *StringSchema { s.minWords = n; return s }

// MaxWords sets an inclusive upper bound on whitespace-token word count.
func (s *StringSchema) MaxWords(n int) *StringSchema { s.maxWords = n; return s }

// Pattern requires the value to match re.
func (s *StringSchema) Pattern(re *regexp.Regexp) *StringSchema { s.pattern = re; return s }

// Email requires the value to look like an email address.
func (s *StringSchema) Email() *StringSchema { s.email = true; return s }

// Valid restricts the value to the given set.
func (s *StringSchema) Valid(values ...string) *StringSchema {
	s.valid = append(s.valid, values...)
	return s
}

func (s *StringSchema) Validate(value any, _ Document) Result {
	if result, done := presence(value, s.required); done {
		return result
	}
	raw, isString := value.(string)
	if !isString {
		return fail(Issue{Kind: KindStringBase})
	}
	trimmed := strings.TrimSpace(raw)

	if s.minLen > 0 && len([]rune(trimmed)) < s.minLen {
		return fail(Issue{Kind: KindStringMin})
	}
	if s.maxLen > 0 && len([]rune(trimmed)) > s.maxLen {
		return fail(Issue{Kind: KindStringMax})
	}
	if s.minWords > 0 && words.Count(trimmed) < s.minWords {
		return fail(Issue{Kind: KindMinWords})
	}
	if s.maxWords > 0 && words.Count(trimmed) > s.maxWords {
		return fail(Issue{Kind: KindMaxWords})
	}
	if s.email && !emailPattern.MatchString(trimmed) {
		return fail(Issue{Kind: KindStringEmail})
	}
	if s.pattern != nil && !s.pattern.MatchString(trimmed) {
		return fail(Issue{Kind: KindStringPattern})
	}
	if len(s.valid) > 0 {
		found := false
		for _, candidate := range s.valid {
			if candidate == trimmed {
				found = true
				break
			}
		}
		if !found {
			return fail(Issue{Kind: KindAnyValid})
		}
	}
	return ok(trimmed)
}

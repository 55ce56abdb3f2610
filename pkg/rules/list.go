package rules

// Additional issue kinds for multi-value answers.
const (
	KindListBase = "array.base"
	KindListMin  = "array.min"
	KindListMax  = "array.max"
)

// ListSchema validates a multi-value answer (checkbox groups). Members are
// checked against a value set; the canonical value is an ordered string
// slice preserving input order.
type ListSchema struct {
	required bool
	valid    []string
	min      int
	max      int
}

// List returns an unconstrained list schema.
func List() *ListSchema { return &ListSchema{} }

func (s *ListSchema) Required() *ListSchema { s.required = true; return s }

// Valid restricts members to the given set.
func (s *ListSchema) Valid(values ...string) *ListSchema {
	s.valid = append(s.valid, values...)
	return s
}

// Min sets an inclusive lower bound on member count.
func (s *ListSchema) Min(n int) *ListSchema { s.min = n; return s }

// Max sets an inclusive upper bound on member count.
func (s *ListSchema) Max(n int) *ListSchema { s.max = n; return s }

func (s *ListSchema) Validate(value any, _ Document) Result {
	if result, done := presence(value, s.required); done {
		return result
	}
	members, okList := asStringSlice(value)
	if !okList {
		return fail(Issue{Kind: KindListBase})
	}
	if s.min > 0 && len(members) < s.min {
		return fail(Issue{Kind: KindListMin})
	}
	if s.max > 0 && len(members) > s.max {
		return fail(Issue{Kind: KindListMax})
	}
	if len(s.valid) > 0 {
		for _, member := range members {
			found := false
			for _, candidate := range s.valid {
				if candidate == member {
					found = true
					break
				}
			}
			if !found {
				return fail(Issue{Kind: KindAnyValid})
			}
		}
	}
	return ok(members)
}

func asStringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, isString := item.(string)
			if !isString {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case string:
		// A single checked box often arrives as a bare string.
		return []string{v}, true
	default:
		return nil, false
	}
}

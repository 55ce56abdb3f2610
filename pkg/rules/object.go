package rules

// Key pairs an object member name with its schema. Keys are validated in
// declaration order so issue lists are stable.
type Key struct {
	Name   string
	Schema Schema
}

// ObjectSchema validates a string-keyed composite answer such as a name,
// address or date-parts object. Unknown keys are dropped from the canonical
// value.
type ObjectSchema struct {
	required bool
	keys     []Key
}

// Object returns a schema over the given member keys.
func Object(keys ...Key) *ObjectSchema {
	return &ObjectSchema{keys: keys}
}

func (s *ObjectSchema) Required() *ObjectSchema { s.required = true; return s }

func (s *ObjectSchema) Validate(value any, doc Document) Result {
	// An object with members counts as answered even when every member is
	// blank; the per-key schemas then report which members are missing, in
	// declaration order.
	members, okMap := asStringMap(value)
	if !okMap || len(members) == 0 {
		if result, done := presence(value, s.required); done {
			return result
		}
		return fail(Issue{Kind: KindObjectBase})
	}

	var issues []Issue
	canonical := make(map[string]any, len(s.keys))
	for _, key := range s.keys {
		member := members[key.Name]
		result := key.Schema.Validate(member, doc)
		if !result.Valid() {
			issues = append(issues, prefixed(key.Name, result.Issues)...)
			continue
		}
		if result.Stripped || result.Value == nil {
			continue
		}
		canonical[key.Name] = result.Value
	}
	if len(issues) > 0 {
		return Result{Issues: issues}
	}
	return ok(canonical)
}

func asStringMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out, true
	case Document:
		return map[string]any(v), true
	default:
		return nil, false
	}
}

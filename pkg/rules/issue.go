package rules

// Issue kinds. Kinds are internal identifiers resolved to localized messages
// by the field layer; they are never shown to an end user directly.
const (
	KindRequired = "base"

	KindStringBase    = "string.base"
	KindStringMin     = "string.min"
	KindStringMax     = "string.max"
	KindStringEmail   = "string.email"
	KindStringPattern = "string.pattern"
	KindMinWords      = "string.minWords"
	KindMaxWords      = "string.maxWords"

	KindNumberBase    = "number.base"
	KindNumberMin     = "number.min"
	KindNumberMax     = "number.max"
	KindNumberInteger = "number.integer"

	KindAnyValid = "any.valid"

	KindObjectBase = "object.base"
	// KindValuesMustNotMatch reports a must-differ violation between two
	// sibling answers. It is raised against the later-declared field.
	KindValuesMustNotMatch = "object.valuesMustNotMatch"

	KindDateBase   = "date.base"
	KindDateMin    = "date.min"
	KindDateMax    = "date.max"
	KindDateFuture = "date.future"
	// KindEndBeforeStart reports an end date earlier than its start
	// reference.
	KindEndBeforeStart = "dateRange.endDate.beforeStartDate"

	KindFileBase    = "file.base"
	KindFileMaxSize = "file.maxSize"
	KindFileType    = "file.type"
)

// Issue is a single validation violation. Key carries the sub-path inside a
// composite answer ("previousAddress.postcode"), empty for the field itself.
type Issue struct {
	Kind string
	Key  string
}

// prefixed returns a copy of issues with key joined under parent, used when
// object schemas report violations from nested keys.
func prefixed(parent string, issues []Issue) []Issue {
	if parent == "" {
		return issues
	}
	out := make([]Issue, len(issues))
	for i, issue := range issues {
		key := parent
		if issue.Key != "" {
			key = parent + "." + issue.Key
		}
		out[i] = Issue{Kind: issue.Kind, Key: key}
	}
	return out
}

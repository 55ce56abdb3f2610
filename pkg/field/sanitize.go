package field

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeValue strips any markup that was smuggled into free-text answers
// before they reach the canonical output. Plain text passes through
// unchanged; composite values are sanitised member by member.
func sanitizeValue(value any) any {
	switch v := value.(type) {
	case string:
		return sanitizeString(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = sanitizeValue(item)
		}
		return out
	case []string:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = sanitizeString(item)
		}
		return out
	default:
		return value
	}
}

// sanitizeString strips tags, then unescapes entities so plain text such as
// "fish & chips" round-trips unchanged.
func sanitizeString(value string) string {
	return strings.TrimSpace(html.UnescapeString(freeTextPolicy().Sanitize(value)))
}

func freeTextPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

package form

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotValid is returned by ForExternalSubmission when the document has
// outstanding validation errors.
var ErrNotValid = errors.New("form: document is not valid for submission")

// Submission is the canonical document for the downstream consumer: a flat
// mapping of field name to canonical value, calendar dates as ISO strings,
// multi-value answers as ordered lists, stripped fields entirely absent.
type Submission struct {
	ID          string         `json:"submissionId"`
	SubmittedAt string         `json:"submittedAt"`
	Programme   string         `json:"programmeName,omitempty"`
	Values      map[string]any `json:"values"`
}

// ForExternalSubmission produces the canonical submission document. The
// transform is idempotent: repeated calls on the same model return the
// identical envelope, including the submission ID and timestamp. It operates
// only on already-valid data; a document with outstanding errors returns
// ErrNotValid, never a partial envelope.
func (m *Model) ForExternalSubmission(ctx context.Context) (Submission, error) {
	m.submissionOnce.Do(func() {
		result := m.Validate(ctx)
		if result.Error {
			m.submissionErr = fmt.Errorf("%w: %d error(s)", ErrNotValid, len(result.Messages))
			return
		}
		m.submission = Submission{
			ID:          m.cfg.NewID(),
			SubmittedAt: m.cfg.Now().UTC().Format(time.RFC3339),
			Programme:   m.cfg.Programme,
			Values:      m.transformValues(result.Value),
		}
	})
	return m.submission, m.submissionErr
}

// transformValues normalises the canonical bag for the external consumer:
// date-part objects collapse to ISO strings, the superseded dateRange alias
// is maintained, and programme-annotated values get their prefix.
func (m *Model) transformValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values)+1)
	for name, value := range values {
		out[name] = normaliseDates(value)
	}

	if alias := m.cfg.LegacyDateRange; alias != nil {
		start, hasStart := out[alias.StartField]
		end, hasEnd := out[alias.EndField]
		if hasStart && hasEnd {
			out[alias.Key] = map[string]any{"startDate": start, "endDate": end}
		}
	}

	if m.cfg.Programme != "" {
		for _, name := range m.cfg.AnnotateWithProgramme {
			if value, present := out[name].(string); present {
				out[name] = m.cfg.Programme + ": " + value
			}
		}
	}
	return out
}

// normaliseDates rewrites date-part maps into single calendar-date strings.
// Full dates become "2006-01-02", month-year pairs "2006-01"; recurring
// day-month answers keep their parts since they name no calendar date.
func normaliseDates(value any) any {
	parts, okMap := value.(map[string]any)
	if !okMap {
		return value
	}
	day, hasDay := asInt(parts["day"])
	month, hasMonth := asInt(parts["month"])
	year, hasYear := asInt(parts["year"])

	switch {
	case hasDay && hasMonth && hasYear && len(parts) == 3:
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	case hasMonth && hasYear && len(parts) == 2:
		return fmt.Sprintf("%04d-%02d", year, month)
	default:
		out := make(map[string]any, len(parts))
		for key, item := range parts {
			out[key] = normaliseDates(item)
		}
		return out
	}
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

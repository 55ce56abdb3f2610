package rules

import (
	"strconv"
	"strings"
	"time"
)

// Unit is a calendar unit for relative date rules. Arithmetic is
// calendar-aware: months and years use time.AddDate, not fixed day counts.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitMonths Unit = "months"
	UnitYears  Unit = "years"
)

// dateGrain selects which parts a date answer carries.
type dateGrain int

const (
	grainFull dateGrain = iota
	grainDayMonth
	grainMonthYear
)

type dateWindow struct {
	n    int
	unit Unit
	kind string
}

type dateRef struct {
	ref  Reference
	kind string
}

// DateSchema validates a date-parts answer ({day, month, year} as entered,
// strings or numbers) and supports calendar comparisons against sibling
// answers. The canonical value is a map of integer parts; rendering to an
// ISO string happens in the submission transform.
type DateSchema struct {
	required  bool
	grain     dateGrain
	notFuture string
	onOrAfter *dateRef
	minAge    *dateWindow
	within    *dateWindow
	clock     func() time.Time
}

// Date returns a schema for a full {day, month, year} answer.
func Date() *DateSchema { return &DateSchema{grain: grainFull, clock: time.Now} }

// DayMonth returns a schema for a recurring {day, month} answer.
func DayMonth() *DateSchema { return &DateSchema{grain: grainDayMonth, clock: time.Now} }

// MonthYear returns a schema for a {month, year} answer.
func MonthYear() *DateSchema { return &DateSchema{grain: grainMonthYear, clock: time.Now} }

func (s *DateSchema) Required() *DateSchema { s.required = true; return s }

// NotInFuture rejects dates after today.
func (s *DateSchema) NotInFuture() *DateSchema { s.notFuture = KindDateFuture; return s }

// OnOrAfter requires the date to be on or after the referenced date. kind
// defaults to the end-before-start range violation.
func (s *DateSchema) OnOrAfter(ref Reference, kind string) *DateSchema {
	if kind == "" {
		kind = KindEndBeforeStart
	}
	s.onOrAfter = &dateRef{ref: ref, kind: kind}
	return s
}

// AtLeastAgo requires the date to be n units or more in the past. Used for
// minimum-age checks and "has the organisation existed long enough" rules.
func (s *DateSchema) AtLeastAgo(n int, unit Unit, kind string) *DateSchema {
	if kind == "" {
		kind = KindDateMax
	}
	s.minAge = &dateWindow{n: n, unit: unit, kind: kind}
	return s
}

// WithinLast requires the date to fall within the past n units.
func (s *DateSchema) WithinLast(n int, unit Unit, kind string) *DateSchema {
	if kind == "" {
		kind = KindDateMin
	}
	s.within = &dateWindow{n: n, unit: unit, kind: kind}
	return s
}

// WithClock overrides the time source, for tests.
func (s *DateSchema) WithClock(clock func() time.Time) *DateSchema {
	if clock != nil {
		s.clock = clock
	}
	return s
}

func (s *DateSchema) Validate(value any, doc Document) Result {
	if result, done := presence(value, s.required); done {
		return result
	}
	parts, okMap := asStringMap(value)
	if !okMap {
		return fail(Issue{Kind: KindDateBase})
	}
	canonical, moment, okDate := s.normalise(parts)
	if !okDate {
		return fail(Issue{Kind: KindDateBase})
	}

	if s.grain == grainDayMonth {
		// Recurring dates carry no year, so relative rules do not apply.
		return ok(canonical)
	}

	now := s.clock()
	if s.notFuture != "" && moment.After(now) {
		return fail(Issue{Kind: s.notFuture})
	}
	if s.minAge != nil {
		threshold := shiftCalendar(now, -s.minAge.n, s.minAge.unit)
		if moment.After(threshold) {
			return fail(Issue{Kind: s.minAge.kind})
		}
	}
	if s.within != nil {
		threshold := shiftCalendar(now, -s.within.n, s.within.unit)
		if moment.Before(threshold) {
			return fail(Issue{Kind: s.within.kind})
		}
	}
	if s.onOrAfter != nil {
		if reference, okRef := s.resolveDate(doc); okRef && moment.Before(reference) {
			return fail(Issue{Kind: s.onOrAfter.kind})
		}
	}
	return ok(canonical)
}

// resolveDate reads the compared-against answer. An absent or malformed
// reference skips the comparison; the upstream field reports its own error.
func (s *DateSchema) resolveDate(doc Document) (time.Time, bool) {
	raw, okRef := s.onOrAfter.ref.Resolve(doc)
	if !okRef {
		return time.Time{}, false
	}
	if iso, isString := raw.(string); isString {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(iso))
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	parts, okMap := asStringMap(raw)
	if !okMap {
		return time.Time{}, false
	}
	_, moment, okDate := s.normalise(parts)
	return moment, okDate
}

// normalise parses the parts for the schema's grain and rejects impossible
// calendar dates (time.Date overflow is detected by round-tripping).
func (s *DateSchema) normalise(parts map[string]any) (map[string]any, time.Time, bool) {
	day, okDay := datePart(parts["day"])
	month, okMonth := datePart(parts["month"])
	year, okYear := datePart(parts["year"])

	switch s.grain {
	case grainDayMonth:
		year, okYear = 2000, true // leap-safe placeholder, never emitted
	case grainMonthYear:
		day, okDay = 1, true
	}
	if !okDay || !okMonth || !okYear {
		return nil, time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || year < 1000 || year > 9999 {
		return nil, time.Time{}, false
	}
	moment := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if moment.Day() != day || moment.Month() != time.Month(month) || moment.Year() != year {
		return nil, time.Time{}, false
	}

	canonical := map[string]any{}
	switch s.grain {
	case grainFull:
		canonical["day"], canonical["month"], canonical["year"] = day, month, year
	case grainDayMonth:
		canonical["day"], canonical["month"] = day, month
	case grainMonthYear:
		canonical["month"], canonical["year"] = month, year
	}
	return canonical, moment, true
}

func shiftCalendar(from time.Time, n int, unit Unit) time.Time {
	switch unit {
	case UnitYears:
		return from.AddDate(n, 0, 0)
	case UnitMonths:
		return from.AddDate(0, n, 0)
	default:
		return from.AddDate(0, 0, n)
	}
}

func datePart(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

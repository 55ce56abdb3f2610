package form

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formflow/pkg/field"
	"github.com/goliatone/go-formflow/pkg/locale"
	"github.com/goliatone/go-formflow/pkg/rules"
	"github.com/goliatone/go-formflow/pkg/visibility"
	"github.com/goliatone/go-formflow/pkg/visibility/expr"
)

var (
	errDuplicateField = errors.New("form: duplicate field name")
	errNoSections     = errors.New("form: at least one section is required")
)

// LegacyDateRange configures the backward-compatible alias emitted alongside
// separate start/end date fields for consumers expecting the superseded
// single date-range object.
type LegacyDateRange struct {
	Key        string
	StartField string
	EndField   string
}

// Config tunes a Model. The zero value is usable: English locale, expression
// evaluator, five-second pre-flight budget.
type Config struct {
	Locale    locale.Locale
	Evaluator visibility.Evaluator
	Extras    map[string]any
	// Featured is the fixed allow-list of field names whose first error is
	// promoted for prominent display.
	Featured []string
	// Programme optionally annotates submissions with a programme name.
	Programme string
	// AnnotateWithProgramme names fields whose submitted value is prefixed
	// with the programme name.
	AnnotateWithProgramme []string
	LegacyDateRange       *LegacyDateRange
	PreFlightTimeout      time.Duration
	Now                   func() time.Time
	NewID                 func() string
}

// Model owns the field registry, the ordered sections, the raw answer
// document and the locale. It is rebuilt from scratch on every request;
// derived state (validation, progress, summary) is recomputed per call.
type Model struct {
	cfg      Config
	sections []Section
	registry map[string]*field.Field
	order    []string
	doc      rules.Document

	submissionOnce sync.Once
	submission     Submission
	submissionErr  error
}

// New builds a Model over the given sections and answer document. Duplicate
// field names across the whole form are a programmer error.
func New(cfg Config, sections []Section, doc rules.Document) (*Model, error) {
	if len(sections) == 0 {
		return nil, errNoSections
	}
	if cfg.Locale == "" {
		cfg.Locale = locale.En
	}
	if cfg.Evaluator == nil {
		cfg.Evaluator = expr.New()
	}
	if cfg.PreFlightTimeout <= 0 {
		cfg.PreFlightTimeout = 5 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if doc == nil {
		doc = rules.Document{}
	}

	m := &Model{
		cfg:      cfg,
		sections: sections,
		registry: map[string]*field.Field{},
		doc:      doc,
	}
	for _, section := range sections {
		for _, step := range section.Steps {
			for _, fieldset := range step.Fieldsets {
				for _, ref := range fieldset.Fields {
					name := ref.Field.Name()
					if _, dup := m.registry[name]; dup {
						return nil, fmt.Errorf("%w: %q", errDuplicateField, name)
					}
					m.registry[name] = ref.Field
					m.order = append(m.order, name)
				}
			}
		}
	}
	return m, nil
}

// MustNew is New for static definitions; it panics on a construction error.
func MustNew(cfg Config, sections []Section, doc rules.Document) *Model {
	m, err := New(cfg, sections, doc)
	if err != nil {
		panic(err)
	}
	return m
}

// WithValues returns a fresh Model over the same definition with a new
// answer document. The receiver is left untouched.
func (m *Model) WithValues(doc rules.Document) *Model {
	fresh, err := New(m.cfg, m.sections, doc)
	if err != nil {
		// The definition already passed construction once.
		panic(err)
	}
	return fresh
}

// Field returns a registered field by name.
func (m *Model) Field(name string) (*field.Field, bool) {
	f, ok := m.registry[name]
	return f, ok
}

// Sections returns the ordered section list.
func (m *Model) Sections() []Section { return m.sections }

// Locale returns the model's active locale.
func (m *Model) Locale() locale.Locale { return m.cfg.Locale }

// Document returns the raw answer snapshot the model validates against.
func (m *Model) Document() rules.Document { return m.doc }

// visible reports whether a field reference currently applies. Evaluation
// errors hide the field: a broken rule must not surface stale answers.
func (m *Model) visible(ref FieldRef) bool {
	if ref.VisibleWhen == "" {
		return true
	}
	shown, err := m.cfg.Evaluator.Eval(ref.Field.Name(), ref.VisibleWhen, visibility.Context{
		Answers: m.doc,
		Extras:  m.cfg.Extras,
	})
	return err == nil && shown
}

// CurrentFields computes the currently applicable fields of a step against
// the live document. Recomputed on every call; upstream answers may have
// changed since the last one.
func (m *Model) CurrentFields(step Step) []*field.Field {
	var current []*field.Field
	for _, fieldset := range step.Fieldsets {
		for _, ref := range fieldset.Fields {
			if m.visible(ref) {
				current = append(current, ref.Field)
			}
		}
	}
	return current
}

// StepResult aggregates one step's validation.
type StepResult struct {
	Step   string
	Status Status
	Issues []FieldIssue
	// Values holds canonical values for the step's visible, valid fields.
	// Stripped fields are absent.
	Values map[string]any
}

// ValidateStep runs synchronous validation for one step. The pre-flight
// hook is not run here; Validate owns the asynchronous phase.
func (m *Model) ValidateStep(step Step) StepResult {
	result := StepResult{Step: step.Name, Values: map[string]any{}}
	answered := 0
	visibleCount := 0

	for _, fieldset := range step.Fieldsets {
		for _, ref := range fieldset.Fields {
			if !m.visible(ref) {
				continue
			}
			visibleCount++
			name := ref.Field.Name()
			raw, _ := m.doc.Get(name)
			if !rules.IsEmpty(raw) {
				answered++
			}
			fieldResult := ref.Field.Validate(raw, m.doc)
			if !fieldResult.Valid() {
				for _, issue := range fieldResult.Issues {
					result.Issues = append(result.Issues, FieldIssue{Field: name, Issue: issue})
				}
				continue
			}
			if fieldResult.Stripped || fieldResult.Value == nil {
				continue
			}
			result.Values[name] = fieldResult.Value
		}
	}

	switch {
	case visibleCount == 0 || answered == 0:
		result.Status = StatusEmpty
	case len(result.Issues) == 0:
		result.Status = StatusComplete
	default:
		result.Status = StatusIncomplete
	}
	return result
}

// ValidationResult is the discriminated outcome of a whole-form validation:
// Error is true exactly when Value is absent. Messages is the flattened,
// field-keyed error list in declaration order; Featured promotes the first
// error of each allow-listed field.
type ValidationResult struct {
	Error    bool
	Value    map[string]any
	Messages []Message
	Featured []Message
	// Advisory records that a pre-flight check was skipped because of an
	// external timeout or outage; the submission is still allowed through.
	Advisory bool
}

// Validate runs the composite validation: every step in declaration order,
// then the pre-flight hooks of fully valid steps, concurrently with a
// bounded budget. Pre-flight failures merge into the same message list;
// pre-flight outages degrade to valid.
func (m *Model) Validate(ctx context.Context) ValidationResult {
	out := ValidationResult{Value: map[string]any{}}
	var issues []FieldIssue
	var preflightSteps []Step

	for _, section := range m.sections {
		for _, step := range section.Steps {
			stepResult := m.ValidateStep(step)
			issues = append(issues, stepResult.Issues...)
			for name, value := range stepResult.Values {
				out.Value[name] = value
			}
			if step.PreFlight != nil && len(stepResult.Issues) == 0 {
				preflightSteps = append(preflightSteps, step)
			}
		}
	}

	if len(preflightSteps) > 0 {
		merged, advisory := m.runPreFlight(ctx, preflightSteps)
		issues = append(issues, merged...)
		out.Advisory = advisory
	}

	if len(issues) > 0 {
		out.Error = true
		out.Value = nil
		out.Messages = m.resolveMessages(issues)
		out.Featured = m.featured(out.Messages)
	}
	return out
}

// runPreFlight executes the hooks concurrently under the configured budget.
// Hook panics are not guarded; hooks are part of the form definition, not
// user input.
func (m *Model) runPreFlight(ctx context.Context, steps []Step) ([]FieldIssue, bool) {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.PreFlightTimeout)
	defer cancel()

	var mu sync.Mutex
	var merged []FieldIssue
	group, ctx := errgroup.WithContext(ctx)
	for _, step := range steps {
		hook := step.PreFlight
		group.Go(func() error {
			found := hook(ctx, m.doc)
			if len(found) == 0 {
				return nil
			}
			mu.Lock()
			merged = append(merged, found...)
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	// Deadline expiry means some check did not answer in time; only those
	// checks fail open. Mismatches confirmed before the budget ran out are
	// kept.
	return merged, errors.Is(ctx.Err(), context.DeadlineExceeded)
}

// resolveMessages flattens issues into localized, field-keyed messages in
// step declaration order. Issues for unregistered field names are kept with
// a generic text rather than dropped.
func (m *Model) resolveMessages(issues []FieldIssue) []Message {
	position := make(map[string]int, len(m.order))
	for i, name := range m.order {
		position[name] = i
	}

	ordered := make([]FieldIssue, len(issues))
	copy(ordered, issues)
	sort.SliceStable(ordered, func(i, j int) bool {
		pa, okA := position[ordered[i].Field]
		pb, okB := position[ordered[j].Field]
		if okA && okB && pa != pb {
			return pa < pb
		}
		return okA && !okB
	})

	messages := make([]Message, 0, len(ordered))
	for _, item := range ordered {
		text := item.Issue.Kind
		if f, ok := m.registry[item.Field]; ok {
			text = f.Message(m.cfg.Locale, item.Issue)
		}
		messages = append(messages, Message{Field: item.Field, Kind: item.Issue.Kind, Text: text})
	}
	return messages
}

// featured selects the first message per allow-listed field, preserving the
// allow-list order for stable prominent display.
func (m *Model) featured(messages []Message) []Message {
	var promoted []Message
	for _, name := range m.cfg.Featured {
		for _, message := range messages {
			if message.Field == name {
				promoted = append(promoted, message)
				break
			}
		}
	}
	return promoted
}

// StepProgress reports one step's completion classification.
type StepProgress struct {
	Section string
	Step    string
	Status  Status
}

// Progress classifies every step for the wizard navigation, in declaration
// order.
func (m *Model) Progress() []StepProgress {
	var report []StepProgress
	for _, section := range m.sections {
		for _, step := range section.Steps {
			result := m.ValidateStep(step)
			report = append(report, StepProgress{
				Section: section.Name,
				Step:    step.Name,
				Status:  result.Status,
			})
		}
	}
	return report
}

// SummaryRow is one line of the review screen projection.
type SummaryRow struct {
	Section string
	Step    string
	Field   string
	Label   string
	Value   string
}

// Summary projects the currently visible, answered fields into display
// values for the review screen.
func (m *Model) Summary() []SummaryRow {
	var summary []SummaryRow
	for _, section := range m.sections {
		for _, step := range section.Steps {
			for _, fieldset := range step.Fieldsets {
				for _, ref := range fieldset.Fields {
					if !m.visible(ref) {
						continue
					}
					name := ref.Field.Name()
					raw, _ := m.doc.Get(name)
					result := ref.Field.Validate(raw, m.doc)
					if !result.Valid() || result.Stripped || result.Value == nil {
						continue
					}
					summary = append(summary, SummaryRow{
						Section: section.Name,
						Step:    step.Name,
						Field:   name,
						Label:   ref.Field.Label(m.cfg.Locale),
						Value:   ref.Field.DisplayValue(result.Value, m.cfg.Locale),
					})
				}
			}
		}
	}
	return summary
}

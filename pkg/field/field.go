// Package field defines the single named answer unit of an application form:
// a closed set of field types, each pairing a default validation schema with
// a message catalogue and a locale-aware display projection. Fields are
// constructed once per form build and are immutable afterwards; malformed
// construction is a programmer error reported immediately, never deferred to
// validation time.
package field

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formflow/pkg/locale"
	"github.com/goliatone/go-formflow/pkg/rules"
)

// Type tags the closed set of field kinds.
type Type string

const (
	Text           Type = "text"
	Email          Type = "email"
	Tel            Type = "tel"
	Currency       Type = "currency"
	Date           Type = "date"
	DayMonth       Type = "day-month"
	MonthYear      Type = "month-year"
	Address        Type = "address"
	AddressHistory Type = "address-history"
	FullName       Type = "full-name"
	Radio          Type = "radio"
	Checkbox       Type = "checkbox"
	Select         Type = "select"
	TextArea       Type = "textarea"
	File           Type = "file"
)

var (
	errNameMissing         = errors.New("field: name is required")
	errUnknownType         = errors.New("field: unknown type")
	errMissingBaseMessage  = errors.New("field: required field needs a base error message")
	errDuplicateOption     = errors.New("field: duplicate option value")
	errNoOptions           = errors.New("field: enumerated type needs at least one option")
	errSchemaOverrideClash = errors.New("field: Schema and ExtendSchema are mutually exclusive")
)

// Message maps an issue kind (and optional sub-path key) to its localized
// text. Messages are matched in declaration order.
type Message struct {
	Kind    string
	Key     string
	Content locale.Content
}

// Settings carries the per-type knobs the default schema builders read.
type Settings struct {
	MinLength int
	MaxLength int
	MinWords  int
	MaxWords  int
	MinValue  *float64
	MaxValue  *float64
	MaxBytes  int64
	Accept    []string
	Rows      int
}

// Config describes one field. Exactly one of Schema (full override) or
// ExtendSchema (wrap the type default) may be set; with neither, the type
// default applies.
type Config struct {
	Name         string
	Label        locale.Content
	Type         Type
	Required     bool
	Options      []Option
	Optgroups    []Optgroup
	Schema       rules.Schema
	ExtendSchema func(rules.Schema) rules.Schema
	Messages     []Message
	Attributes   map[string]string
	Settings     Settings
}

// Field is an immutable, validated form field.
type Field struct {
	name       string
	label      locale.Content
	typ        Type
	required   bool
	schema     rules.Schema
	messages   []Message
	options    []Option
	optgroups  []Optgroup
	attributes map[string]string
	behavior   behavior
}

// New builds a Field, failing fast on programmer errors: missing name,
// unknown type, a required field without a base message, or duplicate option
// values.
func New(cfg Config) (*Field, error) {
	if cfg.Name == "" {
		return nil, errNameMissing
	}
	b, known := behaviors[cfg.Type]
	if !known {
		return nil, fmt.Errorf("field %q: %w: %q", cfg.Name, errUnknownType, cfg.Type)
	}
	if cfg.Schema != nil && cfg.ExtendSchema != nil {
		return nil, fmt.Errorf("field %q: %w", cfg.Name, errSchemaOverrideClash)
	}
	if cfg.Required && !hasBaseMessage(cfg.Messages) {
		return nil, fmt.Errorf("field %q: %w", cfg.Name, errMissingBaseMessage)
	}

	options, err := flattenOptions(cfg)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", cfg.Name, err)
	}
	if isEnumerated(cfg.Type) && len(options) == 0 {
		return nil, fmt.Errorf("field %q: %w", cfg.Name, errNoOptions)
	}

	schema := cfg.Schema
	if schema == nil {
		schema = b.schema(cfg, options)
		if cfg.ExtendSchema != nil {
			schema = cfg.ExtendSchema(schema)
		}
	}

	attributes := map[string]string{}
	for key, value := range b.attributes {
		attributes[key] = value
	}
	for key, value := range cfg.Attributes {
		attributes[key] = value
	}

	messages := append([]Message(nil), cfg.Messages...)
	messages = append(messages, b.messages...)

	return &Field{
		name:       cfg.Name,
		label:      cfg.Label,
		typ:        cfg.Type,
		required:   cfg.Required,
		schema:     schema,
		messages:   messages,
		options:    options,
		optgroups:  cfg.Optgroups,
		attributes: attributes,
		behavior:   b,
	}, nil
}

// MustNew is New for static form definitions; it panics on a construction
// error.
func MustNew(cfg Config) *Field {
	f, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the field's unique name.
func (f *Field) Name() string { return f.name }

// Type returns the field's type tag.
func (f *Field) Type() Type { return f.typ }

// Required reports whether the field is mandatory by default; a conditional
// schema may still relax or strip it for a given document.
func (f *Field) Required() bool { return f.required }

// Label resolves the field's label in the given locale.
func (f *Field) Label(loc locale.Locale) string { return f.label.Resolve(loc) }

// Options returns the flattened option list for enumerated types.
func (f *Field) Options() []Option { return f.options }

// Attributes returns presentation hints; they are never validated.
func (f *Field) Attributes() map[string]string { return f.attributes }

// Validate evaluates the raw answer against the field's schema in the
// context of the whole document. It never panics and never returns a Go
// error; every outcome is a structured result. Canonical free-text values
// are sanitised after validation passes.
func (f *Field) Validate(raw any, doc rules.Document) rules.Result {
	result := f.schema.Validate(raw, doc)
	if result.Valid() && !result.Stripped {
		result.Value = sanitizeValue(result.Value)
	}
	return result
}

// Message resolves an issue to its localized text. Lookup tries an exact
// (kind, key) match, then a kind-only match, then a generic fallback built
// from the label; an unmatched kind is never dropped silently.
func (f *Field) Message(loc locale.Locale, issue rules.Issue) string {
	for _, message := range f.messages {
		if message.Kind == issue.Kind && message.Key == issue.Key {
			return message.Content.Resolve(loc)
		}
	}
	for _, message := range f.messages {
		if message.Kind == issue.Kind && message.Key == "" {
			return message.Content.Resolve(loc)
		}
	}
	fallback := locale.Content{
		En: fmt.Sprintf("%s is not valid", f.label.Resolve(locale.En)),
		Cy: fmt.Sprintf("Nid yw %s yn ddilys", f.label.Resolve(locale.Cy)),
	}
	return fallback.Resolve(loc)
}

// DisplayValue renders a human-readable projection of a canonical value for
// review screens. It is derived state: never used for validation.
func (f *Field) DisplayValue(value any, loc locale.Locale) string {
	if rules.IsEmpty(value) {
		return ""
	}
	return f.behavior.display(f, value, loc)
}

func hasBaseMessage(messages []Message) bool {
	for _, message := range messages {
		if message.Kind == rules.KindRequired && message.Key == "" {
			return true
		}
	}
	return false
}

func isEnumerated(t Type) bool {
	return t == Radio || t == Checkbox || t == Select
}

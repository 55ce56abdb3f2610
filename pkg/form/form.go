// Package form composes fields into steps and sections, computes which
// fields are currently applicable given the answers so far, aggregates
// validation across the whole document, classifies wizard progress, and
// produces the canonical submission document for the downstream consumer.
package form

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/field"
	"github.com/goliatone/go-formflow/pkg/locale"
	"github.com/goliatone/go-formflow/pkg/rules"
)

// FieldRef places a field in a fieldset with an optional visibility rule.
// An empty rule means always visible; otherwise the rule string is evaluated
// against the live answer snapshot on every read.
type FieldRef struct {
	Field       *field.Field
	VisibleWhen string
}

// Fieldset is a labelled group of candidate fields shown together.
type Fieldset struct {
	Legend locale.Content
	Fields []FieldRef
}

// FieldIssue scopes a validation issue to a named field. Pre-flight checks
// report failures in exactly this shape so the asynchronous boundary never
// changes the form of the error result.
type FieldIssue struct {
	Field string
	Issue rules.Issue
}

// PreFlightFunc is an optional asynchronous step check (external bank-detail
// verification). It runs only after the step's synchronous validation passes
// and must fail open: advisory failures return nil.
type PreFlightFunc func(ctx context.Context, doc rules.Document) []FieldIssue

// Step is an ordered group of fieldsets advanced through one wizard page at
// a time.
type Step struct {
	Name      string
	Title     locale.Content
	Fieldsets []Fieldset
	PreFlight PreFlightFunc
}

// Section groups steps under a shared title. Purely organisational; it
// carries no validation semantics of its own.
type Section struct {
	Name  string
	Title locale.Content
	Steps []Step
}

// Status classifies a step's completion for the wizard navigation. It is a
// pure function of the document, recomputed on every call.
type Status string

const (
	StatusEmpty      Status = "empty"
	StatusIncomplete Status = "incomplete"
	StatusComplete   Status = "complete"
)

// Message is one user-visible validation error with the localized text
// already resolved.
type Message struct {
	Field string `json:"field"`
	Kind  string `json:"errorKind"`
	Text  string `json:"text"`
}

package main

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/field"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/locale"
	"github.com/goliatone/go-formflow/pkg/rules"
)

// wizard walks a form definition step by step, collecting answers through a
// prompt driver. Visibility is recomputed after every answer, so a choice
// made earlier in a step can reveal or hide the questions after it.
type wizard struct {
	driver promptDriver
	loc    locale.Locale
}

// run prompts for every currently applicable field and returns the collected
// answer document. Steps that fail validation are shown their messages and
// re-prompted once; persistent errors are left for the final report.
func (w *wizard) run(model *form.Model) (rules.Document, error) {
	doc := rules.Document{}
	for key, value := range model.Document() {
		doc[key] = value
	}

	for _, section := range model.Sections() {
		w.driver.Info("")
		w.driver.Info("== " + section.Title.Resolve(w.loc))
		for _, step := range section.Steps {
			if err := w.runStep(model, step, doc); err != nil {
				return nil, err
			}

			current := model.WithValues(doc)
			result := current.ValidateStep(step)
			if result.Status == form.StatusComplete {
				continue
			}
			w.showIssues(current, result.Issues)
			retry, err := w.driver.Confirm("Try this step again?")
			if err != nil {
				return nil, err
			}
			if retry {
				if err := w.runStep(current, step, doc); err != nil {
					return nil, err
				}
			}
		}
	}
	return doc, nil
}

func (w *wizard) runStep(model *form.Model, step form.Step, doc rules.Document) error {
	// Re-resolve the applicable fields after every answer.
	asked := map[string]bool{}
	for {
		current := model.WithValues(doc)
		var next *field.Field
		for _, f := range current.CurrentFields(step) {
			if !asked[f.Name()] {
				next = f
				break
			}
		}
		if next == nil {
			return nil
		}
		asked[next.Name()] = true
		answer, err := w.ask(next)
		if err != nil {
			return err
		}
		if answer != nil {
			doc[next.Name()] = answer
		} else {
			delete(doc, next.Name())
		}
	}
}

// ask prompts for one field and returns its raw answer in the shape the
// field's schema expects.
func (w *wizard) ask(f *field.Field) (any, error) {
	label := f.Label(w.loc)
	switch f.Type() {
	case field.Text, field.Email, field.Tel, field.Currency:
		return w.optional(w.driver.Input(label, ""))
	case field.TextArea:
		return w.optional(w.driver.TextArea(label))
	case field.Radio, field.Select:
		return w.askChoice(f, label)
	case field.Checkbox:
		return w.askMultiChoice(f, label)
	case field.Date:
		return w.askParts(label, "day", "month", "year")
	case field.DayMonth:
		return w.askParts(label, "day", "month")
	case field.MonthYear:
		return w.askParts(label, "month", "year")
	case field.FullName:
		return w.askParts(label, "firstName", "lastName")
	case field.Address:
		return w.askAddress(label)
	case field.AddressHistory:
		return w.askAddressHistory(label)
	default:
		w.driver.Info(fmt.Sprintf("%s: cannot be answered in the terminal, skipping", label))
		return nil, nil
	}
}

// optional maps a blank input to an absent answer so optional fields are
// omitted rather than stored as empty strings.
func (w *wizard) optional(answer string, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(answer) == "" {
		return nil, nil
	}
	return answer, nil
}

func (w *wizard) askChoice(f *field.Field, label string) (any, error) {
	options := f.Options()
	labels := make([]string, len(options))
	for i, option := range options {
		labels[i] = option.Label.Resolve(w.loc)
	}
	index, err := w.driver.Select(label, labels)
	if err != nil {
		return nil, err
	}
	return options[index].Value, nil
}

func (w *wizard) askMultiChoice(f *field.Field, label string) (any, error) {
	options := f.Options()
	labels := make([]string, len(options))
	for i, option := range options {
		labels[i] = option.Label.Resolve(w.loc)
	}
	indices, err := w.driver.MultiSelect(label, labels)
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, nil
	}
	values := make([]string, len(indices))
	for i, index := range indices {
		values[i] = options[index].Value
	}
	return values, nil
}

var partPrompts = map[string]string{
	"day":       "Day",
	"month":     "Month",
	"year":      "Year",
	"firstName": "First name",
	"lastName":  "Last name",
}

func (w *wizard) askParts(label string, parts ...string) (any, error) {
	w.driver.Info(label)
	answer := map[string]any{}
	for _, part := range parts {
		value, err := w.driver.Input(partPrompts[part], "")
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		answer[part] = value
	}
	if len(answer) == 0 {
		return nil, nil
	}
	return answer, nil
}

func (w *wizard) askAddress(label string) (any, error) {
	w.driver.Info(label)
	return w.collectAddress()
}

func (w *wizard) collectAddress() (any, error) {
	lines := []struct{ key, prompt string }{
		{"line1", "Address line 1"},
		{"line2", "Address line 2 (optional)"},
		{"townCity", "Town or city"},
		{"county", "County (optional)"},
		{"postcode", "Postcode"},
	}
	answer := map[string]any{}
	for _, line := range lines {
		value, err := w.driver.Input(line.prompt, "")
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		answer[line.key] = value
	}
	if len(answer) == 0 {
		return nil, nil
	}
	return answer, nil
}

func (w *wizard) askAddressHistory(label string) (any, error) {
	w.driver.Info(label)
	meets, err := w.driver.Confirm("Have you lived at your current address for the minimum period?")
	if err != nil {
		return nil, err
	}
	answer := map[string]any{}
	if meets {
		answer["currentAddressMeetsMinimum"] = "yes"
	} else {
		answer["currentAddressMeetsMinimum"] = "no"
	}

	w.driver.Info("Current address")
	current, err := w.collectAddress()
	if err != nil {
		return nil, err
	}
	if current != nil {
		answer["currentAddress"] = current
	}

	if !meets {
		w.driver.Info("Previous address")
		previous, err := w.collectAddress()
		if err != nil {
			return nil, err
		}
		if previous != nil {
			answer["previousAddress"] = previous
		}
	}
	return answer, nil
}

func (w *wizard) showIssues(model *form.Model, issues []form.FieldIssue) {
	for _, issue := range issues {
		text := issue.Issue.Kind
		if f, ok := model.Field(issue.Field); ok {
			text = f.Message(w.loc, issue.Issue)
		}
		w.driver.Info("  ✗ " + text)
	}
}

// progressReport renders the wizard navigation line, one entry per step.
func progressReport(model *form.Model) string {
	var b strings.Builder
	for _, step := range model.Progress() {
		fmt.Fprintf(&b, "%s/%s: %s\n", step.Section, step.Step, step.Status)
	}
	return b.String()
}

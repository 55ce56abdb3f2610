package main

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/locale"
	"github.com/goliatone/go-formflow/pkg/rules"
)

// scriptDriver answers prompts from canned responses keyed by message
// prefix. Unscripted prompts answer blank.
type scriptDriver struct {
	inputs   map[string]string
	selects  map[string]int
	confirms map[string]bool
	log      []string
}

func (d *scriptDriver) Input(message, _ string) (string, error) {
	d.log = append(d.log, message)
	for prefix, answer := range d.inputs {
		if strings.HasPrefix(message, prefix) {
			return answer, nil
		}
	}
	return "", nil
}

func (d *scriptDriver) TextArea(message string) (string, error) {
	return d.Input(message, "")
}

func (d *scriptDriver) Confirm(message string) (bool, error) {
	d.log = append(d.log, message)
	for prefix, answer := range d.confirms {
		if strings.HasPrefix(message, prefix) {
			return answer, nil
		}
	}
	return false, nil
}

func (d *scriptDriver) Select(message string, _ []string) (int, error) {
	d.log = append(d.log, message)
	for prefix, index := range d.selects {
		if strings.HasPrefix(message, prefix) {
			return index, nil
		}
	}
	return 0, nil
}

func (d *scriptDriver) MultiSelect(message string, _ []string) ([]int, error) {
	index, err := d.Select(message, nil)
	if err != nil {
		return nil, err
	}
	return []int{index}, nil
}

func (d *scriptDriver) Info(message string) {
	d.log = append(d.log, message)
}

func (d *scriptDriver) asked(prefix string) bool {
	for _, message := range d.log {
		if strings.HasPrefix(message, prefix) {
			return true
		}
	}
	return false
}

func TestDemoDefinitionConstructs(t *testing.T) {
	t.Parallel()

	sections, err := demoDefinition(noopVerifier)
	if err != nil {
		t.Fatalf("demoDefinition: %v", err)
	}
	m := form.MustNew(form.Config{}, sections, rules.Document{})
	if got := len(m.Sections()); got != 4 {
		t.Fatalf("sections = %d", got)
	}
}

func TestRunStepFollowsRevealedFields(t *testing.T) {
	t.Parallel()

	sections, err := demoDefinition(noopVerifier)
	if err != nil {
		t.Fatalf("demoDefinition: %v", err)
	}
	m := form.MustNew(form.Config{}, sections, rules.Document{})
	orgStep := sections[0].Steps[0]

	// Index 2 selects the CIO option, which reveals the charity number.
	driver := &scriptDriver{
		selects: map[string]int{"Organisation type": 2},
		inputs: map[string]string{
			"Organisation legal name":     "Brecon Community Kitchen",
			"Charity registration number": "1234567",
		},
	}
	w := &wizard{driver: driver, loc: locale.En}

	doc := rules.Document{}
	if err := w.runStep(m, orgStep, doc); err != nil {
		t.Fatalf("runStep: %v", err)
	}

	if doc["organisationType"] != "charitable-incorporated-organisation" {
		t.Fatalf("organisationType = %v", doc["organisationType"])
	}
	if doc["charityNumber"] != "1234567" {
		t.Fatalf("charityNumber = %v", doc["charityNumber"])
	}

	result := m.WithValues(doc).ValidateStep(orgStep)
	if result.Status != form.StatusComplete {
		t.Fatalf("step status = %q, issues %+v", result.Status, result.Issues)
	}
}

func TestRunStepSkipsHiddenFields(t *testing.T) {
	t.Parallel()

	sections, err := demoDefinition(noopVerifier)
	if err != nil {
		t.Fatalf("demoDefinition: %v", err)
	}
	m := form.MustNew(form.Config{}, sections, rules.Document{})
	orgStep := sections[0].Steps[0]

	// Index 4 selects the school option: no charity number applies.
	driver := &scriptDriver{
		selects: map[string]int{"Organisation type": 4},
		inputs:  map[string]string{"Organisation legal name": "Ysgol y Bannau"},
	}
	w := &wizard{driver: driver, loc: locale.En}

	doc := rules.Document{}
	if err := w.runStep(m, orgStep, doc); err != nil {
		t.Fatalf("runStep: %v", err)
	}
	if driver.asked("Charity registration number") {
		t.Fatal("hidden field was prompted")
	}
	if _, present := doc["charityNumber"]; present {
		t.Fatal("hidden field was answered")
	}
}

func TestFullWalkthroughProducesValidDocument(t *testing.T) {
	t.Parallel()

	sections, err := demoDefinition(noopVerifier)
	if err != nil {
		t.Fatalf("demoDefinition: %v", err)
	}

	description := strings.Repeat("We will run weekly cooking sessions for local families. ", 10)
	answers := rules.Document{
		"organisationType":      "school",
		"organisationLegalName": "Ysgol y Bannau",
		"organisationAddress": map[string]any{
			"line1":    "1 High Street",
			"townCity": "Brecon",
			"postcode": "LD3 7AL",
		},
		"projectName":        "Cooking together",
		"projectCountry":     "wales",
		"projectStartDate":   map[string]any{"day": "1", "month": "9", "year": "2026"},
		"projectEndDate":     map[string]any{"day": "31", "month": "8", "year": "2027"},
		"projectDescription": description,
		"totalProjectCosts":  "9,500",
		"mainContactName":    map[string]any{"firstName": "Siân", "lastName": "Evans"},
		"mainContactDateOfBirth": map[string]any{
			"day": "14", "month": "2", "year": "1985",
		},
		"seniorContactName": map[string]any{"firstName": "Huw", "lastName": "Morgan"},
		"seniorContactRole": "head-teacher",
		"bankAccountName":   "Ysgol y Bannau",
		"bankSortCode":      "30-92-90",
		"bankAccountNumber": "00012345",
	}

	m := form.MustNew(form.Config{Programme: "Awards for All"}, sections, answers)
	result := m.Validate(context.Background())
	if result.Error {
		t.Fatalf("walkthrough answers do not validate: %+v", result.Messages)
	}

	sub, err := m.ForExternalSubmission(context.Background())
	if err != nil {
		t.Fatalf("ForExternalSubmission: %v", err)
	}
	if sub.Values["projectStartDate"] != "2026-09-01" {
		t.Fatalf("projectStartDate = %v", sub.Values["projectStartDate"])
	}
	if _, leaked := sub.Values["charityNumber"]; leaked {
		t.Fatal("inapplicable charity number leaked into the submission")
	}
}

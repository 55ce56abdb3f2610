package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formflow/pkg/field"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/locale"
	"github.com/goliatone/go-formflow/pkg/rules"
)

func requiredMessage(en string) []field.Message {
	return []field.Message{{Kind: rules.KindRequired, Content: locale.Text(en, "")}}
}

func exportModel(t *testing.T) *form.Model {
	t.Helper()

	sections := []form.Section{{
		Name:  "project",
		Title: locale.Text("Your project", ""),
		Steps: []form.Step{{
			Name: "details",
			Fieldsets: []form.Fieldset{{
				Fields: []form.FieldRef{
					{Field: field.MustNew(field.Config{
						Name:     "projectName",
						Label:    locale.Text("Project name", ""),
						Type:     field.Text,
						Required: true,
						Messages: requiredMessage("Enter a project name"),
					})},
					{Field: field.MustNew(field.Config{
						Name:     "totalCosts",
						Label:    locale.Text("Total costs", ""),
						Type:     field.Currency,
						Required: true,
						Messages: requiredMessage("Enter the total costs"),
					})},
					{Field: field.MustNew(field.Config{
						Name:     "startDate",
						Label:    locale.Text("Start date", ""),
						Type:     field.Date,
						Required: true,
						Messages: requiredMessage("Enter a start date"),
					})},
					{
						Field: field.MustNew(field.Config{
							Name:     "region",
							Label:    locale.Text("Region", ""),
							Type:     field.Select,
							Required: true,
							Options: []field.Option{
								{Value: "england", Label: locale.Text("England", "")},
								{Value: "wales", Label: locale.Text("Wales", "")},
							},
							Messages: requiredMessage("Select a region"),
						}),
						VisibleWhen: `projectName != ""`,
					},
				},
			}},
		}},
	}}

	return form.MustNew(form.Config{
		Programme: "Awards for All",
		NewID:     func() string { return "sub-fixed" },
	}, sections, rules.Document{
		"projectName": "Community kitchen",
		"totalCosts":  "12,000",
		"startDate":   map[string]any{"day": "1", "month": "6", "year": "2024"},
		"region":      "wales",
	})
}

func TestEncodeSubmissionIsByteStable(t *testing.T) {
	t.Parallel()

	m := exportModel(t)
	sub, err := m.ForExternalSubmission(context.Background())
	if err != nil {
		t.Fatalf("ForExternalSubmission: %v", err)
	}

	first, err := EncodeSubmission(sub)
	if err != nil {
		t.Fatalf("EncodeSubmission: %v", err)
	}
	second, err := EncodeSubmission(sub)
	if err != nil {
		t.Fatalf("EncodeSubmission: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("repeated encodings differ")
	}

	var decoded struct {
		ID     string         `json:"submissionId"`
		Values map[string]any `json:"values"`
	}
	if err := json.Unmarshal(first, &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if decoded.ID != "sub-fixed" {
		t.Fatalf("submissionId = %q", decoded.ID)
	}
	if decoded.Values["startDate"] != "2024-06-01" {
		t.Fatalf("startDate = %v", decoded.Values["startDate"])
	}
}

func TestSubmissionSchema(t *testing.T) {
	t.Parallel()

	doc := SubmissionSchema(exportModel(t), "Grant application submissions", "1.0.0")
	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("generated document does not validate: %v", err)
	}

	envelope := doc.Components.Schemas["Submission"].Value
	values := envelope.Properties["values"].Value
	if values == nil {
		t.Fatal("values schema missing")
	}

	if _, ok := values.Properties["projectName"]; !ok {
		t.Fatal("projectName property missing")
	}
	if !values.Type.Is("object") {
		t.Fatalf("values type = %v", values.Type)
	}
	if costs := values.Properties["totalCosts"].Value; !costs.Type.Is("integer") {
		t.Fatalf("totalCosts type = %v", costs.Type)
	}
	if start := values.Properties["startDate"].Value; start.Format != "date" {
		t.Fatalf("startDate format = %q", start.Format)
	}

	region := values.Properties["region"].Value
	if len(region.Enum) != 2 || region.Enum[0] != "england" {
		t.Fatalf("region enum = %v", region.Enum)
	}

	required := strings.Join(values.Required, ",")
	if strings.Contains(required, "region") {
		t.Fatal("conditionally visible field must not be required")
	}
	if !strings.Contains(required, "projectName") {
		t.Fatalf("required = %q", required)
	}
}

// Package export renders canonical submission documents for downstream
// consumers: byte-stable JSON encoding and an OpenAPI 3 schema projection of
// the submission envelope so external systems can validate documents without
// importing the form definition.
package export

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formflow/pkg/field"
	"github.com/goliatone/go-formflow/pkg/form"
)

// EncodeSubmission renders a submission envelope as indented JSON. Map keys
// are emitted in sorted order, so repeated encodings of the same envelope
// are byte-identical.
func EncodeSubmission(sub form.Submission) ([]byte, error) {
	payload, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode submission: %w", err)
	}
	return payload, nil
}

// SubmissionSchema projects a form definition into an OpenAPI 3 document
// whose single component schema describes the canonical submission envelope.
// Conditionally visible fields are never marked required: whether they apply
// depends on answers the schema cannot see.
func SubmissionSchema(m *form.Model, title, version string) *openapi3.T {
	values := openapi3.NewObjectSchema()
	for _, section := range m.Sections() {
		for _, step := range section.Steps {
			for _, fieldset := range step.Fieldsets {
				for _, ref := range fieldset.Fields {
					f := ref.Field
					values.WithProperty(f.Name(), fieldSchema(f))
					if f.Required() && ref.VisibleWhen == "" {
						values.Required = append(values.Required, f.Name())
					}
				}
			}
		}
	}

	envelope := openapi3.NewObjectSchema().
		WithProperty("submissionId", openapi3.NewUUIDSchema()).
		WithProperty("submittedAt", openapi3.NewDateTimeSchema()).
		WithProperty("programmeName", openapi3.NewStringSchema()).
		WithProperty("values", values)
	envelope.Required = []string{"submissionId", "submittedAt", "values"}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		// Document validation insists on a paths object even when the
		// document only publishes component schemas.
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Submission": openapi3.NewSchemaRef("", envelope),
			},
		},
	}
	return doc
}

// fieldSchema maps one field's canonical submission value to an OpenAPI
// schema by its type tag.
func fieldSchema(f *field.Field) *openapi3.Schema {
	switch f.Type() {
	case field.Email:
		return openapi3.NewStringSchema().WithFormat("email")
	case field.Currency:
		return openapi3.NewIntegerSchema()
	case field.Date:
		return openapi3.NewStringSchema().WithFormat("date")
	case field.MonthYear:
		return openapi3.NewStringSchema().WithPattern(`^\d{4}-\d{2}$`)
	case field.DayMonth:
		s := openapi3.NewObjectSchema().
			WithProperty("day", openapi3.NewIntegerSchema()).
			WithProperty("month", openapi3.NewIntegerSchema())
		s.Required = []string{"day", "month"}
		return s
	case field.FullName:
		s := openapi3.NewObjectSchema().
			WithProperty("firstName", openapi3.NewStringSchema()).
			WithProperty("lastName", openapi3.NewStringSchema())
		s.Required = []string{"firstName", "lastName"}
		return s
	case field.Address:
		return addressValueSchema()
	case field.AddressHistory:
		s := openapi3.NewObjectSchema().
			WithProperty("currentAddressMeetsMinimum", enumSchema("yes", "no")).
			WithProperty("currentAddress", addressValueSchema()).
			WithProperty("previousAddress", addressValueSchema())
		s.Required = []string{"currentAddressMeetsMinimum", "currentAddress"}
		return s
	case field.Radio, field.Select:
		return enumSchema(optionValues(f)...)
	case field.Checkbox:
		return openapi3.NewArraySchema().WithItems(enumSchema(optionValues(f)...))
	case field.File:
		s := openapi3.NewObjectSchema().
			WithProperty("filename", openapi3.NewStringSchema()).
			WithProperty("size", openapi3.NewIntegerSchema()).
			WithProperty("mimeType", openapi3.NewStringSchema())
		s.Required = []string{"filename", "size", "mimeType"}
		return s
	default:
		return openapi3.NewStringSchema()
	}
}

func addressValueSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("line1", openapi3.NewStringSchema()).
		WithProperty("line2", openapi3.NewStringSchema()).
		WithProperty("townCity", openapi3.NewStringSchema()).
		WithProperty("postcode", openapi3.NewStringSchema()).
		WithProperty("county", openapi3.NewStringSchema())
	s.Required = []string{"line1", "townCity", "postcode"}
	return s
}

func enumSchema(values ...string) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	for _, value := range values {
		s.Enum = append(s.Enum, value)
	}
	return s
}

func optionValues(f *field.Field) []string {
	options := f.Options()
	values := make([]string, 0, len(options))
	for _, option := range options {
		values = append(values, option.Value)
	}
	return values
}

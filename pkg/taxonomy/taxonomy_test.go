package taxonomy

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/field"
	"github.com/goliatone/go-formflow/pkg/locale"
)

const sampleCatalogue = `
countries:
  options:
    - value: england
      label: {en: England, cy: Lloegr}
    - value: scotland
      label: {en: Scotland, cy: Yr Alban}
    - value: wales
      label: {en: Wales, cy: Cymru}
organisationTypes:
  groups:
    - label: {en: Registered organisations}
      options:
        - value: charity
          label: {en: Registered charity, cy: Elusen gofrestredig}
        - value: cio
          label: {en: Charitable incorporated organisation}
    - label: {en: Public bodies}
      options:
        - value: school
          label: {en: School, cy: Ysgol}
`

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := Load(strings.NewReader(sampleCatalogue))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	countries, err := c.Options("countries")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	want := []field.Option{
		{Value: "england", Label: locale.Text("England", "Lloegr")},
		{Value: "scotland", Label: locale.Text("Scotland", "Yr Alban")},
		{Value: "wales", Label: locale.Text("Wales", "Cymru")},
	}
	if diff := cmp.Diff(want, countries); diff != "" {
		t.Fatalf("countries (-want +got):\n%s", diff)
	}
}

func TestGroupedListFlattens(t *testing.T) {
	t.Parallel()

	c, err := Load(strings.NewReader(sampleCatalogue))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	flat, err := c.Options("organisationTypes")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	var values []string
	for _, option := range flat {
		values = append(values, option.Value)
	}
	if diff := cmp.Diff([]string{"charity", "cio", "school"}, values); diff != "" {
		t.Fatalf("flattened values (-want +got):\n%s", diff)
	}

	groups, err := c.Optgroups("organisationTypes")
	if err != nil {
		t.Fatalf("Optgroups: %v", err)
	}
	if len(groups) != 2 || groups[0].Label.En != "Registered organisations" {
		t.Fatalf("groups = %+v", groups)
	}

	if _, err := c.Optgroups("countries"); err == nil {
		t.Fatal("flat list must not be readable as groups")
	}
}

func TestCatalogueDrivesFieldConstruction(t *testing.T) {
	t.Parallel()

	c, err := Load(strings.NewReader(sampleCatalogue))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	options, err := c.Options("countries")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}

	f, err := field.New(field.Config{
		Name:    "country",
		Label:   locale.Text("Country", "Gwlad"),
		Type:    field.Select,
		Options: options,
	})
	if err != nil {
		t.Fatalf("field.New: %v", err)
	}
	result := f.Validate("wales", nil)
	if !result.Valid() {
		t.Fatalf("issues = %+v", result.Issues)
	}
	if f.DisplayValue(result.Value, locale.Cy) != "Cymru" {
		t.Fatalf("display = %q", f.DisplayValue(result.Value, locale.Cy))
	}
}

func TestLoadRejectsBadCatalogues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		yaml string
	}{
		{"empty document", ""},
		{"duplicate value", "a:\n  options:\n    - {value: x, label: {en: X}}\n    - {value: x, label: {en: Y}}\n"},
		{"missing label", "a:\n  options:\n    - {value: x}\n"},
		{"missing value", "a:\n  options:\n    - {label: {en: X}}\n"},
		{"empty list", "a:\n  options: []\n"},
		{"unknown key", "a:\n  choices:\n    - {value: x, label: {en: X}}\n"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Load(strings.NewReader(tc.yaml)); err == nil {
				t.Fatal("expected load failure")
			}
		})
	}
}

func TestUnknownList(t *testing.T) {
	t.Parallel()

	c, err := Load(strings.NewReader(sampleCatalogue))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := c.Options("regions"); err == nil {
		t.Fatal("unknown list must error")
	}
}

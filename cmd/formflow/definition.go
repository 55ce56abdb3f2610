package main

import (
	"context"
	_ "embed"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-formflow/pkg/field"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/locale"
	"github.com/goliatone/go-formflow/pkg/preflight"
	"github.com/goliatone/go-formflow/pkg/rules"
	"github.com/goliatone/go-formflow/pkg/taxonomy"
)

//go:embed catalogue.yaml
var catalogueYAML string

var (
	sortCodePattern      = regexp.MustCompile(`^\d{2}-?\d{2}-?\d{2}$`)
	accountNumberPattern = regexp.MustCompile(`^\d{6,8}$`)
	charityNumberPattern = regexp.MustCompile(`^[0-9]{6,8}(-[0-9]{1,2})?$`)
)

func baseMessage(en, cy string) []field.Message {
	return []field.Message{{Kind: rules.KindRequired, Content: locale.Text(en, cy)}}
}

// demoDefinition assembles the sample grant-application form exercised by
// the wizard: organisation details, project details, contacts and bank
// details, with a pre-flight bank check on the final step.
func demoDefinition(verifier preflight.Verifier) ([]form.Section, error) {
	catalogue, err := taxonomy.Load(strings.NewReader(catalogueYAML))
	if err != nil {
		return nil, err
	}
	orgTypes, err := catalogue.Options("organisationTypes")
	if err != nil {
		return nil, err
	}
	countries, err := catalogue.Options("projectCountries")
	if err != nil {
		return nil, err
	}
	roleGroups, err := catalogue.Optgroups("seniorContactRoles")
	if err != nil {
		return nil, err
	}

	registeredTypes := `organisationType in ["unincorporated-registered-charity", "charitable-incorporated-organisation"]`

	organisationType := field.MustNew(field.Config{
		Name:     "organisationType",
		Label:    locale.Text("Organisation type", "Math o sefydliad"),
		Type:     field.Radio,
		Required: true,
		Options:  orgTypes,
		Messages: baseMessage("Select your organisation type", "Dewiswch fath eich sefydliad"),
	})

	organisationName := field.MustNew(field.Config{
		Name:     "organisationLegalName",
		Label:    locale.Text("Organisation legal name", "Enw cyfreithiol y sefydliad"),
		Type:     field.Text,
		Required: true,
		Settings: field.Settings{MaxLength: 255},
		Messages: baseMessage("Enter the legal name of your organisation", "Rhowch enw cyfreithiol eich sefydliad"),
	})

	charityNumber := field.MustNew(field.Config{
		Name:     "charityNumber",
		Label:    locale.Text("Charity registration number", "Rhif cofrestru'r elusen"),
		Type:     field.Text,
		Required: true,
		// The number only applies, and only becomes required, when the
		// organisation is a registered charity.
		Schema: rules.Switch(rules.Stripped(),
			rules.When(rules.Ref("organisationType"), rules.Condition{
				Is: rules.In(
					"unincorporated-registered-charity",
					"charitable-incorporated-organisation",
				),
				Then: rules.String().Pattern(charityNumberPattern).Required(),
			}),
		),
		Messages: append(
			baseMessage("Enter your charity registration number", "Rhowch rif cofrestru eich elusen"),
			field.Message{
				Kind:    rules.KindStringPattern,
				Content: locale.Text("Enter a valid charity registration number", "Rhowch rif cofrestru elusen dilys"),
			}),
	})

	organisationAddress := field.MustNew(field.Config{
		Name:     "organisationAddress",
		Label:    locale.Text("Organisation address", "Cyfeiriad y sefydliad"),
		Type:     field.Address,
		Required: true,
		Messages: baseMessage("Enter your organisation's address", "Rhowch gyfeiriad eich sefydliad"),
	})

	projectName := field.MustNew(field.Config{
		Name:     "projectName",
		Label:    locale.Text("Project name", "Enw'r prosiect"),
		Type:     field.Text,
		Required: true,
		Settings: field.Settings{MaxLength: 255},
		Messages: baseMessage("Enter a name for your project", "Rhowch enw ar gyfer eich prosiect"),
	})

	projectCountry := field.MustNew(field.Config{
		Name:     "projectCountry",
		Label:    locale.Text("Project country", "Gwlad y prosiect"),
		Type:     field.Select,
		Required: true,
		Options:  countries,
		Messages: baseMessage("Select the country your project is based in", "Dewiswch y wlad y mae eich prosiect wedi'i leoli ynddi"),
	})

	projectDescription := field.MustNew(field.Config{
		Name:     "projectDescription",
		Label:    locale.Text("What would you like to do?", "Beth hoffech chi ei wneud?"),
		Type:     field.TextArea,
		Required: true,
		Settings: field.Settings{MinWords: 50, MaxWords: 300, Rows: 12},
		Messages: append(
			baseMessage("Tell us about your project", "Dywedwch wrthym am eich prosiect"),
			field.Message{
				Kind:    rules.KindMinWords,
				Content: locale.Text("Answer must be at least 50 words", "Rhaid i'r ateb fod yn o leiaf 50 gair"),
			},
			field.Message{
				Kind:    rules.KindMaxWords,
				Content: locale.Text("Answer must be no more than 300 words", "Rhaid i'r ateb fod yn ddim mwy na 300 gair"),
			}),
	})

	totalCosts := field.MustNew(field.Config{
		Name:     "totalProjectCosts",
		Label:    locale.Text("Total project costs", "Cyfanswm costau'r prosiect"),
		Type:     field.Currency,
		Required: true,
		ExtendSchema: func(s rules.Schema) rules.Schema {
			number, ok := s.(*rules.NumberSchema)
			if !ok {
				return s
			}
			return number.Min(300).Max(20000)
		},
		Messages: append(
			baseMessage("Enter the total cost of your project", "Rhowch gyfanswm cost eich prosiect"),
			field.Message{
				Kind:    rules.KindNumberMin,
				Content: locale.Text("Total costs must be at least £300", "Rhaid i'r cyfanswm fod yn o leiaf £300"),
			},
			field.Message{
				Kind:    rules.KindNumberMax,
				Content: locale.Text("Total costs must be no more than £20,000", "Rhaid i'r cyfanswm fod yn ddim mwy na £20,000"),
			}),
	})

	startDate := field.MustNew(field.Config{
		Name:     "projectStartDate",
		Label:    locale.Text("Project start date", "Dyddiad dechrau'r prosiect"),
		Type:     field.Date,
		Required: true,
		Messages: baseMessage("Enter a project start date", "Rhowch ddyddiad dechrau'r prosiect"),
	})

	endDate := field.MustNew(field.Config{
		Name:     "projectEndDate",
		Label:    locale.Text("Project end date", "Dyddiad gorffen y prosiect"),
		Type:     field.Date,
		Required: true,
		Schema:   rules.Date().Required().OnOrAfter(rules.Ref("projectStartDate"), ""),
		Messages: append(
			baseMessage("Enter a project end date", "Rhowch ddyddiad gorffen y prosiect"),
			field.Message{
				Kind:    rules.KindEndBeforeStart,
				Content: locale.Text("Project end date must not be before the start date", "Rhaid i ddyddiad gorffen y prosiect beidio â bod cyn y dyddiad dechrau"),
			}),
	})

	mainContactName := field.MustNew(field.Config{
		Name:     "mainContactName",
		Label:    locale.Text("Main contact full name", "Enw llawn y prif gyswllt"),
		Type:     field.FullName,
		Required: true,
		Messages: baseMessage("Enter the main contact's full name", "Rhowch enw llawn y prif gyswllt"),
	})

	mainContactDOB := field.MustNew(field.Config{
		Name:     "mainContactDateOfBirth",
		Label:    locale.Text("Main contact date of birth", "Dyddiad geni'r prif gyswllt"),
		Type:     field.Date,
		Required: true,
		Schema:   rules.Date().Required().NotInFuture().AtLeastAgo(16, rules.UnitYears, "date.tooYoung"),
		Messages: append(
			baseMessage("Enter the main contact's date of birth", "Rhowch ddyddiad geni'r prif gyswllt"),
			field.Message{
				Kind:    "date.tooYoung",
				Content: locale.Text("Main contact must be at least 16 years old", "Rhaid i'r prif gyswllt fod yn o leiaf 16 oed"),
			}),
	})

	seniorContactName := field.MustNew(field.Config{
		Name:     "seniorContactName",
		Label:    locale.Text("Senior contact full name", "Enw llawn yr uwch gyswllt"),
		Type:     field.FullName,
		Required: true,
		ExtendSchema: func(s rules.Schema) rules.Schema {
			return rules.DiffersFrom(s, rules.Ref("mainContactName"), "")
		},
		Messages: append(
			baseMessage("Enter the senior contact's full name", "Rhowch enw llawn yr uwch gyswllt"),
			field.Message{
				Kind:    rules.KindValuesMustNotMatch,
				Content: locale.Text("Senior contact must be a different person from the main contact", "Rhaid i'r uwch gyswllt fod yn berson gwahanol i'r prif gyswllt"),
			}),
	})

	seniorContactRole := field.MustNew(field.Config{
		Name:      "seniorContactRole",
		Label:     locale.Text("Senior contact role", "Rôl yr uwch gyswllt"),
		Type:      field.Select,
		Required:  true,
		Optgroups: roleGroups,
		Messages:  baseMessage("Select the senior contact's role", "Dewiswch rôl yr uwch gyswllt"),
	})

	accountName := field.MustNew(field.Config{
		Name:     "bankAccountName",
		Label:    locale.Text("Name on the bank account", "Enw ar y cyfrif banc"),
		Type:     field.Text,
		Required: true,
		Settings: field.Settings{MaxLength: 255},
		Messages: baseMessage("Enter the name on your bank account", "Rhowch yr enw ar eich cyfrif banc"),
	})

	sortCode := field.MustNew(field.Config{
		Name:     "bankSortCode",
		Label:    locale.Text("Sort code", "Cod didoli"),
		Type:     field.Tel,
		Required: true,
		ExtendSchema: func(s rules.Schema) rules.Schema {
			str, ok := s.(*rules.StringSchema)
			if !ok {
				return s
			}
			return str.Pattern(sortCodePattern)
		},
		Messages: append(
			baseMessage("Enter a sort code", "Rhowch god didoli"),
			field.Message{
				Kind:    rules.KindStringPattern,
				Content: locale.Text("Enter a valid sort code, like 30-92-90", "Rhowch god didoli dilys, fel 30-92-90"),
			}),
	})

	accountNumber := field.MustNew(field.Config{
		Name:     "bankAccountNumber",
		Label:    locale.Text("Account number", "Rhif y cyfrif"),
		Type:     field.Tel,
		Required: true,
		ExtendSchema: func(s rules.Schema) rules.Schema {
			str, ok := s.(*rules.StringSchema)
			if !ok {
				return s
			}
			return str.Pattern(accountNumberPattern)
		},
		Messages: append(
			baseMessage("Enter an account number", "Rhowch rif cyfrif"),
			field.Message{
				Kind:    rules.KindStringPattern,
				Content: locale.Text("Enter a valid account number, like 00012345", "Rhowch rif cyfrif dilys, fel 00012345"),
			},
			field.Message{
				Kind:    preflight.KindBankDetails,
				Content: locale.Text("We could not verify these bank details. Check the sort code and account number", "Nid oeddem yn gallu gwirio'r manylion banc hyn. Gwiriwch y cod didoli a rhif y cyfrif"),
			}),
	})

	sections := []form.Section{
		{
			Name:  "organisation",
			Title: locale.Text("Your organisation", "Eich sefydliad"),
			Steps: []form.Step{
				{
					Name:  "organisation-details",
					Title: locale.Text("Organisation details", "Manylion y sefydliad"),
					Fieldsets: []form.Fieldset{{
						Fields: []form.FieldRef{
							{Field: organisationType},
							{Field: organisationName},
							{Field: charityNumber, VisibleWhen: registeredTypes},
						},
					}},
				},
				{
					Name:  "organisation-address",
					Title: locale.Text("Organisation address", "Cyfeiriad y sefydliad"),
					Fieldsets: []form.Fieldset{{
						Fields: []form.FieldRef{{Field: organisationAddress}},
					}},
				},
			},
		},
		{
			Name:  "project",
			Title: locale.Text("Your project", "Eich prosiect"),
			Steps: []form.Step{
				{
					Name:  "project-details",
					Title: locale.Text("Project details", "Manylion y prosiect"),
					Fieldsets: []form.Fieldset{{
						Fields: []form.FieldRef{
							{Field: projectName},
							{Field: projectCountry},
							{Field: startDate},
							{Field: endDate},
						},
					}},
				},
				{
					Name:  "project-idea",
					Title: locale.Text("Your idea", "Eich syniad"),
					Fieldsets: []form.Fieldset{{
						Fields: []form.FieldRef{
							{Field: projectDescription},
							{Field: totalCosts},
						},
					}},
				},
			},
		},
		{
			Name:  "contacts",
			Title: locale.Text("Your contacts", "Eich cysylltiadau"),
			Steps: []form.Step{
				{
					Name:  "main-contact",
					Title: locale.Text("Main contact", "Prif gyswllt"),
					Fieldsets: []form.Fieldset{{
						Fields: []form.FieldRef{
							{Field: mainContactName},
							{Field: mainContactDOB},
						},
					}},
				},
				{
					Name:  "senior-contact",
					Title: locale.Text("Senior contact", "Uwch gyswllt"),
					Fieldsets: []form.Fieldset{{
						Fields: []form.FieldRef{
							{Field: seniorContactName},
							{Field: seniorContactRole},
						},
					}},
				},
			},
		},
		{
			Name:  "bank",
			Title: locale.Text("Bank details", "Manylion banc"),
			Steps: []form.Step{
				{
					Name:  "bank-details",
					Title: locale.Text("Bank details", "Manylion banc"),
					Fieldsets: []form.Fieldset{{
						Fields: []form.FieldRef{
							{Field: accountName},
							{Field: sortCode},
							{Field: accountNumber},
						},
					}},
					PreFlight: preflight.BankDetails(verifier, "bankSortCode", "bankAccountNumber", 5*time.Second),
				},
			},
		},
	}
	return sections, nil
}

// noopVerifier stands in for the external bank verification provider; hosts
// plug a real Verifier here. Code "01" reports a verified match.
var noopVerifier = preflight.VerifierFunc(
	func(_ context.Context, _, _ string) (preflight.Result, error) {
		return preflight.Result{Code: "01"}, nil
	})

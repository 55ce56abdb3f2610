package field

import (
	"regexp"

	"github.com/goliatone/go-formflow/pkg/locale"
	"github.com/goliatone/go-formflow/pkg/rules"
)

// behavior is the per-type strategy: default schema builder, default
// messages, default presentation attributes and the display projection.
// Composition over a type tag keeps variants independent; there is no field
// class hierarchy.
type behavior struct {
	schema     func(cfg Config, options []Option) rules.Schema
	messages   []Message
	attributes map[string]string
	display    func(f *Field, value any, loc locale.Locale) string
}

var (
	telPattern      = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,18}$`)
	postcodePattern = regexp.MustCompile(`^[A-Za-z]{1,2}[0-9][A-Za-z0-9]?\s*[0-9][A-Za-z]{2}$`)
)

var behaviors = map[Type]behavior{
	Text: {
		schema:  textSchema,
		display: displayString,
	},
	Email: {
		schema: func(cfg Config, _ []Option) rules.Schema {
			return applyRequired(rules.String().Max(254).Email(), cfg.Required)
		},
		messages: []Message{{
			Kind:    rules.KindStringEmail,
			Content: locale.Text("Enter an email address in the correct format", "Rhowch gyfeiriad e-bost yn y fformat cywir"),
		}},
		display: displayString,
	},
	Tel: {
		schema: func(cfg Config, _ []Option) rules.Schema {
			return applyRequired(rules.String().Pattern(telPattern), cfg.Required)
		},
		messages: []Message{{
			Kind:    rules.KindStringPattern,
			Content: locale.Text("Enter a telephone number in the correct format", "Rhowch rif ffôn yn y fformat cywir"),
		}},
		display: displayString,
	},
	Currency: {
		schema: func(cfg Config, _ []Option) rules.Schema {
			schema := rules.Number().Integer().Min(0)
			if cfg.Settings.MinValue != nil {
				schema = schema.Min(*cfg.Settings.MinValue)
			}
			if cfg.Settings.MaxValue != nil {
				schema = schema.Max(*cfg.Settings.MaxValue)
			}
			if cfg.Required {
				schema = schema.Required()
			}
			return schema
		},
		display: displayCurrency,
	},
	Date: {
		schema: func(cfg Config, _ []Option) rules.Schema {
			schema := rules.Date()
			if cfg.Required {
				schema = schema.Required()
			}
			return schema
		},
		messages: dateMessages,
		display:  displayDate,
	},
	DayMonth: {
		schema: func(cfg Config, _ []Option) rules.Schema {
			schema := rules.DayMonth()
			if cfg.Required {
				schema = schema.Required()
			}
			return schema
		},
		messages: dateMessages,
		display:  displayDayMonth,
	},
	MonthYear: {
		schema: func(cfg Config, _ []Option) rules.Schema {
			schema := rules.MonthYear()
			if cfg.Required {
				schema = schema.Required()
			}
			return schema
		},
		messages: dateMessages,
		display:  displayMonthYear,
	},
	Address: {
		schema: func(cfg Config, _ []Option) rules.Schema {
			schema := addressSchema()
			if cfg.Required {
				schema = schema.Required()
			}
			return schema
		},
		display: displayAddress,
	},
	AddressHistory: {
		schema:  addressHistorySchema,
		display: displayAddressHistory,
	},
	FullName: {
		schema: func(cfg Config, _ []Option) rules.Schema {
			schema := rules.Object(
				rules.Key{Name: "firstName", Schema: rules.String().Required().Max(100)},
				rules.Key{Name: "lastName", Schema: rules.String().Required().Max(100)},
			)
			if cfg.Required {
				schema = schema.Required()
			}
			return schema
		},
		display: displayFullName,
	},
	Radio: {
		schema:  singleChoiceSchema,
		display: displayChoice,
	},
	Select: {
		schema:  singleChoiceSchema,
		display: displayChoice,
	},
	Checkbox: {
		schema: func(cfg Config, options []Option) rules.Schema {
			schema := rules.List().Valid(optionValues(options)...)
			if cfg.Required {
				schema = schema.Required().Min(1)
			}
			return schema
		},
		display: displayChoices,
	},
	TextArea: {
		schema:     textAreaSchema,
		attributes: map[string]string{"rows": "8"},
		display:    displayString,
	},
	File: {
		schema: func(cfg Config, _ []Option) rules.Schema {
			schema := rules.File()
			if cfg.Settings.MaxBytes > 0 {
				schema = schema.MaxBytes(cfg.Settings.MaxBytes)
			}
			if len(cfg.Settings.Accept) > 0 {
				schema = schema.Accept(cfg.Settings.Accept...)
			}
			if cfg.Required {
				schema = schema.Required()
			}
			return schema
		},
		display: displayFile,
	},
}

var dateMessages = []Message{{
	Kind:    rules.KindDateBase,
	Content: locale.Text("Enter a real date", "Rhowch ddyddiad go iawn"),
}}

func textSchema(cfg Config, _ []Option) rules.Schema {
	schema := rules.String()
	if cfg.Settings.MinLength > 0 {
		schema = schema.Min(cfg.Settings.MinLength)
	}
	maxLength := cfg.Settings.MaxLength
	if maxLength == 0 {
		maxLength = 255
	}
	schema = schema.Max(maxLength)
	return applyRequired(schema, cfg.Required)
}

func textAreaSchema(cfg Config, _ []Option) rules.Schema {
	schema := rules.String()
	if cfg.Settings.MinWords > 0 {
		schema = schema.MinWords(cfg.Settings.MinWords)
	}
	if cfg.Settings.MaxWords > 0 {
		schema = schema.MaxWords(cfg.Settings.MaxWords)
	}
	return applyRequired(schema, cfg.Required)
}

func singleChoiceSchema(cfg Config, options []Option) rules.Schema {
	schema := rules.String().Valid(optionValues(options)...)
	return applyRequired(schema, cfg.Required)
}

func addressSchema() *rules.ObjectSchema {
	return rules.Object(
		rules.Key{Name: "line1", Schema: rules.String().Required().Max(255)},
		rules.Key{Name: "line2", Schema: rules.String().Max(255)},
		rules.Key{Name: "townCity", Schema: rules.String().Required().Max(100)},
		rules.Key{Name: "postcode", Schema: rules.String().Required().Pattern(postcodePattern)},
		rules.Key{Name: "county", Schema: rules.String().Max(100)},
	)
}

// addressHistorySchema asks whether the applicant has lived at their current
// address long enough; if not, a previous address becomes required. When the
// answer is "yes" any previous address still present in the raw document is
// stripped so a changed earlier answer cannot leak stale data.
func addressHistorySchema(cfg Config, _ []Option) rules.Schema {
	// Strip is the safe default: if the yes/no answer is missing or "yes"
	// the previous address never reaches the canonical output, and a missing
	// upstream answer cannot cascade into a second error here.
	meetsMinimumPath := cfg.Name + ".currentAddressMeetsMinimum"
	previous := rules.Switch(rules.Stripped(),
		rules.When(rules.Ref(meetsMinimumPath), rules.Condition{
			Is:   rules.Is("no"),
			Then: addressSchema().Required(),
		}),
	)
	schema := rules.Object(
		rules.Key{Name: "currentAddressMeetsMinimum", Schema: rules.String().Required().Valid("yes", "no")},
		rules.Key{Name: "currentAddress", Schema: addressSchema().Required()},
		rules.Key{Name: "previousAddress", Schema: previous},
	)
	if cfg.Required {
		return schema.Required()
	}
	return schema
}

func applyRequired(schema *rules.StringSchema, required bool) rules.Schema {
	if required {
		return schema.Required()
	}
	return schema
}

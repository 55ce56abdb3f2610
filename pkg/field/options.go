package field

import (
	"fmt"

	"github.com/goliatone/go-formflow/pkg/locale"
)

// Option is one enumerated choice.
type Option struct {
	Value string         `yaml:"value" json:"value"`
	Label locale.Content `yaml:"label" json:"label"`
}

// Optgroup is a labelled group of options. Groups are presentation-only; for
// membership checks they are flattened into a single option list.
type Optgroup struct {
	Label   locale.Content `yaml:"label" json:"label"`
	Options []Option       `yaml:"options" json:"options"`
}

// flattenOptions merges flat options and optgroups into one lookup list,
// rejecting duplicate values across the whole set.
func flattenOptions(cfg Config) ([]Option, error) {
	total := len(cfg.Options)
	for _, group := range cfg.Optgroups {
		total += len(group.Options)
	}
	if total == 0 {
		return nil, nil
	}

	flat := make([]Option, 0, total)
	seen := make(map[string]struct{}, total)
	add := func(option Option) error {
		if _, dup := seen[option.Value]; dup {
			return fmt.Errorf("%w: %q", errDuplicateOption, option.Value)
		}
		seen[option.Value] = struct{}{}
		flat = append(flat, option)
		return nil
	}

	for _, option := range cfg.Options {
		if err := add(option); err != nil {
			return nil, err
		}
	}
	for _, group := range cfg.Optgroups {
		for _, option := range group.Options {
			if err := add(option); err != nil {
				return nil, err
			}
		}
	}
	return flat, nil
}

func optionValues(options []Option) []string {
	values := make([]string, len(options))
	for i, option := range options {
		values[i] = option.Value
	}
	return values
}

func optionLabel(options []Option, value string, loc locale.Locale) (string, bool) {
	for _, option := range options {
		if option.Value == value {
			return option.Label.Resolve(loc), true
		}
	}
	return "", false
}

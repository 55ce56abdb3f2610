// Package taxonomy loads static option catalogues from YAML files. A
// catalogue maps list names (countries, organisation types, roles) to
// bilingual option sets that enumerated fields are built from. The engine
// itself never fetches data; hosts load catalogue files at startup and pass
// the resulting options into field configs.
package taxonomy

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formflow/pkg/field"
)

var (
	errEmptyCatalogue = errors.New("taxonomy: catalogue has no lists")
	errUnknownList    = errors.New("taxonomy: unknown list")
)

// List is one named option set, either flat or grouped. A list with groups
// ignores its flat Options.
type List struct {
	Options []field.Option   `yaml:"options"`
	Groups  []field.Optgroup `yaml:"groups"`
}

// Catalogue is a parsed taxonomy file: list name to option set.
type Catalogue struct {
	lists map[string]List
}

// Load reads a catalogue from a YAML document.
//
// The expected shape is a mapping of list names to option sets:
//
//	countries:
//	  options:
//	    - value: england
//	      label: {en: England, cy: Lloegr}
func Load(r io.Reader) (*Catalogue, error) {
	var lists map[string]List
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&lists); err != nil {
		return nil, fmt.Errorf("taxonomy: parse catalogue: %w", err)
	}
	if len(lists) == 0 {
		return nil, errEmptyCatalogue
	}
	for name, list := range lists {
		if err := validateList(list); err != nil {
			return nil, fmt.Errorf("taxonomy: list %q: %w", name, err)
		}
	}
	return &Catalogue{lists: lists}, nil
}

// LoadFile reads a catalogue from a YAML file on disk.
func LoadFile(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: open catalogue: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func validateList(list List) error {
	seen := map[string]struct{}{}
	check := func(options []field.Option) error {
		for _, option := range options {
			if option.Value == "" {
				return errors.New("option without a value")
			}
			if option.Label.IsZero() {
				return fmt.Errorf("option %q has no label", option.Value)
			}
			if _, dup := seen[option.Value]; dup {
				return fmt.Errorf("duplicate option value %q", option.Value)
			}
			seen[option.Value] = struct{}{}
		}
		return nil
	}
	if len(list.Groups) > 0 {
		for _, group := range list.Groups {
			if group.Label.IsZero() {
				return errors.New("group without a label")
			}
			if err := check(group.Options); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(list.Options); err != nil {
		return err
	}
	if len(seen) == 0 {
		return errors.New("list has no options")
	}
	return nil
}

// Names returns the catalogue's list names in unspecified order.
func (c *Catalogue) Names() []string {
	names := make([]string, 0, len(c.lists))
	for name := range c.lists {
		names = append(names, name)
	}
	return names
}

// Options returns a named flat option list. Grouped lists are flattened.
func (c *Catalogue) Options(name string) ([]field.Option, error) {
	list, ok := c.lists[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownList, name)
	}
	if len(list.Groups) == 0 {
		return append([]field.Option(nil), list.Options...), nil
	}
	var flat []field.Option
	for _, group := range list.Groups {
		flat = append(flat, group.Options...)
	}
	return flat, nil
}

// Optgroups returns a named grouped list. Flat lists return an error; the
// caller chose the wrong accessor for the list's shape.
func (c *Catalogue) Optgroups(name string) ([]field.Optgroup, error) {
	list, ok := c.lists[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownList, name)
	}
	if len(list.Groups) == 0 {
		return nil, fmt.Errorf("taxonomy: list %q is not grouped", name)
	}
	return append([]field.Optgroup(nil), list.Groups...), nil
}

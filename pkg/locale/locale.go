// Package locale holds the bilingual content literal the engine resolves
// user-facing strings from. The engine never loads translation catalogues;
// callers construct Content values fully formed.
package locale

// Locale identifies one of the two supported languages.
type Locale string

const (
	En Locale = "en"
	Cy Locale = "cy"
)

// Content is a bilingual string literal. Cy may be empty, in which case
// resolution falls back to En.
type Content struct {
	En string `yaml:"en" json:"en"`
	Cy string `yaml:"cy" json:"cy,omitempty"`
}

// Text is a convenience constructor for inline Content literals.
func Text(en, cy string) Content {
	return Content{En: en, Cy: cy}
}

// Resolve returns the string for the requested locale, falling back to the
// English string when the Welsh one is missing.
func (c Content) Resolve(loc Locale) string {
	if loc == Cy && c.Cy != "" {
		return c.Cy
	}
	return c.En
}

// IsZero reports whether no content is present in either language.
func (c Content) IsZero() bool {
	return c.En == "" && c.Cy == ""
}

package field

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/goliatone/go-formflow/pkg/locale"
)

var displayLanguages = map[locale.Locale]language.Tag{
	locale.En: language.BritishEnglish,
	locale.Cy: language.MustParse("cy"),
}

var welshMonths = [13]string{
	"", "Ionawr", "Chwefror", "Mawrth", "Ebrill", "Mai", "Mehefin",
	"Gorffennaf", "Awst", "Medi", "Hydref", "Tachwedd", "Rhagfyr",
}

func displayString(_ *Field, value any, _ locale.Locale) string {
	s, _ := value.(string)
	return s
}

func displayCurrency(_ *Field, value any, loc locale.Locale) string {
	tag, known := displayLanguages[loc]
	if !known {
		tag = language.BritishEnglish
	}
	printer := message.NewPrinter(tag)
	switch v := value.(type) {
	case int:
		return printer.Sprintf("£%v", number.Decimal(v))
	case int64:
		return printer.Sprintf("£%v", number.Decimal(v))
	case float64:
		return printer.Sprintf("£%v", number.Decimal(v))
	default:
		return ""
	}
}

func monthName(month int, loc locale.Locale) string {
	if month < 1 || month > 12 {
		return ""
	}
	if loc == locale.Cy {
		return welshMonths[month]
	}
	return time.Month(month).String()
}

func displayDate(_ *Field, value any, loc locale.Locale) string {
	parts, okMap := value.(map[string]any)
	if !okMap {
		return ""
	}
	day, _ := parts["day"].(int)
	month, _ := parts["month"].(int)
	year, _ := parts["year"].(int)
	if day == 0 || month == 0 || year == 0 {
		return ""
	}
	return fmt.Sprintf("%d %s %d", day, monthName(month, loc), year)
}

func displayDayMonth(_ *Field, value any, loc locale.Locale) string {
	parts, okMap := value.(map[string]any)
	if !okMap {
		return ""
	}
	day, _ := parts["day"].(int)
	month, _ := parts["month"].(int)
	if day == 0 || month == 0 {
		return ""
	}
	return fmt.Sprintf("%d %s", day, monthName(month, loc))
}

func displayMonthYear(_ *Field, value any, loc locale.Locale) string {
	parts, okMap := value.(map[string]any)
	if !okMap {
		return ""
	}
	month, _ := parts["month"].(int)
	year, _ := parts["year"].(int)
	if month == 0 || year == 0 {
		return ""
	}
	return fmt.Sprintf("%s %d", monthName(month, loc), year)
}

func displayFullName(_ *Field, value any, _ locale.Locale) string {
	parts, okMap := value.(map[string]any)
	if !okMap {
		return ""
	}
	first, _ := parts["firstName"].(string)
	last, _ := parts["lastName"].(string)
	return strings.TrimSpace(first + " " + last)
}

func displayAddress(_ *Field, value any, _ locale.Locale) string {
	parts, okMap := value.(map[string]any)
	if !okMap {
		return ""
	}
	return joinAddressLines(parts)
}

func displayAddressHistory(f *Field, value any, loc locale.Locale) string {
	parts, okMap := value.(map[string]any)
	if !okMap {
		return ""
	}
	current, _ := parts["currentAddress"].(map[string]any)
	lines := joinAddressLines(current)
	if previous, hasPrevious := parts["previousAddress"].(map[string]any); hasPrevious {
		previousLabel := locale.Text("Previous address", "Cyfeiriad blaenorol").Resolve(loc)
		lines = lines + "; " + previousLabel + ": " + joinAddressLines(previous)
	}
	return lines
}

func joinAddressLines(parts map[string]any) string {
	var lines []string
	for _, key := range []string{"line1", "line2", "townCity", "county", "postcode"} {
		if line, okLine := parts[key].(string); okLine && strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return strings.Join(lines, ", ")
}

func displayChoice(f *Field, value any, loc locale.Locale) string {
	selected, _ := value.(string)
	if label, found := optionLabel(f.options, selected, loc); found {
		return label
	}
	return selected
}

// displayChoices joins the matched option labels with a fixed separator.
func displayChoices(f *Field, value any, loc locale.Locale) string {
	values, okList := value.([]string)
	if !okList {
		if mixed, okAny := value.([]any); okAny {
			for _, item := range mixed {
				if s, isString := item.(string); isString {
					values = append(values, s)
				}
			}
		}
	}
	labels := make([]string, 0, len(values))
	for _, selected := range values {
		if label, found := optionLabel(f.options, selected, loc); found {
			labels = append(labels, label)
		} else {
			labels = append(labels, selected)
		}
	}
	return strings.Join(labels, ", ")
}

func displayFile(_ *Field, value any, _ locale.Locale) string {
	meta, okMap := value.(map[string]any)
	if !okMap {
		return ""
	}
	filename, _ := meta["filename"].(string)
	return filename
}

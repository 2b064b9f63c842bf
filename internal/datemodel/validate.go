package datemodel

import (
	"fmt"
	"strings"
)

// Validate reports whether d is a real date inside years.
func Validate(d CalendarDate, years YearRange) error {
	if !years.Contains(d.Year) {
		return &RangeError{Field: FieldYear, Value: d.Year, Min: years.Min, Max: years.Max}
	}
	return d.check()
}

// Check runs the full input pipeline: blank text yields ErrEmpty, text that
// does not match pattern yields a *ParseError and a date outside years or the
// calendar yields a *RangeError.
func Check(text, pattern string, years YearRange) (CalendarDate, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if strings.TrimSpace(text) == "" {
		return CalendarDate{}, ErrEmpty
	}
	d, ok := ParseFormat(strings.TrimSpace(text), pattern)
	if !ok {
		return CalendarDate{}, &ParseError{Text: text, Pattern: pattern}
	}
	if err := Validate(d, years); err != nil {
		return CalendarDate{}, fmt.Errorf("validating %s: %w", d, err)
	}
	return d, nil
}

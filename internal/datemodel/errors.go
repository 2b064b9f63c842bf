package datemodel

import (
	"errors"
	"fmt"
)

// Messages shown to users for failed validation.
const (
	MsgInvalidFormat = "Invalid date format"
	MsgSelectDate    = "Please select date"
)

// ErrEmpty is returned by Check when the input text is blank.
var ErrEmpty = errors.New("empty date")

// ParseError reports text that does not decompose into a date.
type ParseError struct {
	Text    string
	Pattern string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as %s", e.Text, e.Pattern)
}

// Field names used by RangeError.
const (
	FieldYear  = "year"
	FieldMonth = "month"
	FieldDay   = "day"
)

// RangeError reports a date component outside its allowed bounds.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// UserMessage maps a validation error to the text displayed under the input.
// override, when non-empty, replaces the message for parse and range errors.
func UserMessage(err error, override string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmpty) {
		return MsgSelectDate
	}
	if override != "" {
		return override
	}
	return MsgInvalidFormat
}

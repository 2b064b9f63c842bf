package components

import (
	"time"

	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/xid"
	"golang.org/x/text/language"
)

// Defaults applied by Options.withDefaults.
const (
	DefaultType         = "text"
	DefaultPlaceholder  = "Select date"
	DefaultLabel        = "Select your favorite date"
	DefaultLanguage     = "en"
	DefaultIcon         = "📅"
	DefaultYearsBack    = datemodel.DefaultYearsBack
	DefaultYearsForward = datemodel.DefaultYearsForward
)

// MonthNameFunc renders the name of a month for a language. Hosts that need
// localized names supply their own; the default renders English names.
type MonthNameFunc func(tag language.Tag, m time.Month) string

// EnglishMonthName is the default MonthNameFunc.
func EnglishMonthName(_ language.Tag, m time.Month) string {
	return m.String()
}

// Options configures a DatePicker. Every field is optional.
type Options struct {
	// MinYear and MaxYear bound both the year dropdown and validation.
	// Zero values default to 100 years back and 10 years forward from today.
	MinYear int
	MaxYear int

	// DateFormat uses dd, MM and yyyy tokens. Defaults to dd/MM/yyyy.
	DateFormat string

	// Language is a BCP 47 tag passed to MonthName.
	Language string

	// ID identifies the picker in emitted messages. Defaults to a generated id.
	ID string

	// Type is shown as a hint next to the label unless it is "text".
	Type        string
	Placeholder string
	Label       string
	Icon        string

	// CustomInputStyle and ErrorStyle replace the input box and error line styles.
	CustomInputStyle *lipgloss.Style
	ErrorStyle       *lipgloss.Style

	// ErrorMessage replaces "Invalid date format".
	ErrorMessage string

	// ShowError controls whether validation messages are rendered. Nil means true.
	ShowError *bool

	// Required turns blank input into a "Please select date" error.
	Required bool

	// ShowCurrentDateOnMount fills the input with today's date on Init.
	ShowCurrentDateOnMount bool

	// Shortcuts enables relative input such as "t", "+3d" or "fri" on Enter.
	Shortcuts bool

	CustomStyles CustomStyles
	MonthName    MonthNameFunc
	KeyMap       *KeyMap

	// Now is the clock used for "today". Defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	years := datemodel.ResolveYears(o.MinYear, o.MaxYear, o.Now().Year())
	o.MinYear, o.MaxYear = years.Min, years.Max
	if o.DateFormat == "" {
		o.DateFormat = datemodel.DefaultPattern
	}
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.ID == "" {
		o.ID = "datepicker-" + xid.New().String()
	}
	if o.Type == "" {
		o.Type = DefaultType
	}
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	if o.Label == "" {
		o.Label = DefaultLabel
	}
	if o.Icon == "" {
		o.Icon = DefaultIcon
	}
	if o.ShowError == nil {
		show := true
		o.ShowError = &show
	}
	if o.MonthName == nil {
		o.MonthName = EnglishMonthName
	}
	if o.KeyMap == nil {
		km := DefaultKeyMap()
		o.KeyMap = &km
	}
	return o
}

// Resolved returns o with every default filled in, as a DatePicker sees it.
func (o Options) Resolved() Options {
	return o.withDefaults()
}

// YearRange returns the configured year bounds.
func (o Options) YearRange() datemodel.YearRange {
	return datemodel.YearRange{Min: o.MinYear, Max: o.MaxYear}
}

// Bool returns a pointer to b, for optional fields such as ShowError.
func Bool(b bool) *bool {
	return &b
}

// parseLanguage accepts well-formed tags with unknown subtags ("en-EN") and
// falls back to English for anything else.
func parseLanguage(s string) language.Tag {
	tag, err := language.Parse(s)
	if err == nil {
		return tag
	}
	if _, ok := err.(language.ValueError); ok {
		return tag
	}
	return language.English
}

// CalendarOptions configures a Calendar.
type CalendarOptions struct {
	ID           string
	SelectedDate *datemodel.CalendarDate
	MinYear      int
	MaxYear      int
	Language     string
	DateFormat   string
	CustomStyles CustomStyles
	MonthName    MonthNameFunc
	KeyMap       *KeyMap
	Now          func() time.Time
}

func (o CalendarOptions) withDefaults() CalendarOptions {
	if o.Now == nil {
		o.Now = time.Now
	}
	years := datemodel.ResolveYears(o.MinYear, o.MaxYear, o.Now().Year())
	o.MinYear, o.MaxYear = years.Min, years.Max
	if o.DateFormat == "" {
		o.DateFormat = datemodel.DefaultPattern
	}
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.MonthName == nil {
		o.MonthName = EnglishMonthName
	}
	if o.KeyMap == nil {
		km := DefaultKeyMap()
		o.KeyMap = &km
	}
	return o
}

// calendarOptions derives the options of the calendar a picker opens.
func (o Options) calendarOptions(selected datemodel.CalendarDate) CalendarOptions {
	return CalendarOptions{
		ID:           o.ID,
		SelectedDate: &selected,
		MinYear:      o.MinYear,
		MaxYear:      o.MaxYear,
		Language:     o.Language,
		DateFormat:   o.DateFormat,
		CustomStyles: o.CustomStyles,
		MonthName:    o.MonthName,
		KeyMap:       o.KeyMap,
		Now:          o.Now,
	}
}

package components

import "github.com/charmbracelet/lipgloss"

// Palette holds the colours the picker is drawn with. Values are anything
// lipgloss.Color accepts (ANSI numbers or hex).
type Palette struct {
	Accent   string
	Muted    string
	Error    string
	Selected string
	Today    string
}

// DefaultPalette returns the colours used when none are configured.
func DefaultPalette() Palette {
	return Palette{
		Accent:   "39",
		Muted:    "240",
		Error:    "196",
		Selected: "40",
		Today:    "214",
	}
}

func (p Palette) withDefaults() Palette {
	d := DefaultPalette()
	if p.Accent == "" {
		p.Accent = d.Accent
	}
	if p.Muted == "" {
		p.Muted = d.Muted
	}
	if p.Error == "" {
		p.Error = d.Error
	}
	if p.Selected == "" {
		p.Selected = d.Selected
	}
	if p.Today == "" {
		p.Today = d.Today
	}
	return p
}

// CustomStyles overrides individual parts of the calendar. Nil fields keep
// the style derived from the palette.
type CustomStyles struct {
	MonthSelect *lipgloss.Style
	YearSelect  *lipgloss.Style
	Calendar    *lipgloss.Style
	Button      *lipgloss.Style
	Date        *lipgloss.Style
	Dropdown    *lipgloss.Style
	Palette     Palette
}

type calendarStyles struct {
	box         lipgloss.Style
	monthSelect lipgloss.Style
	yearSelect  lipgloss.Style
	button      lipgloss.Style
	date        lipgloss.Style
	dropdown    lipgloss.Style
	option      lipgloss.Style
	header      lipgloss.Style

	focused     lipgloss.Style
	highlighted lipgloss.Style
	selected    lipgloss.Style
	today       lipgloss.Style
}

func newCalendarStyles(cs CustomStyles) calendarStyles {
	p := cs.Palette.withDefaults()

	s := calendarStyles{
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Accent)).
			Padding(0, 1),
		monthSelect: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),
		yearSelect: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),
		button: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),
		date: lipgloss.NewStyle(),
		dropdown: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			Bold(true),

		focused: lipgloss.NewStyle().Reverse(true),
		highlighted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Selected)).
			Bold(true),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Selected)).
			Bold(true),
		today: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Today)).
			Underline(true),
	}
	s.option = s.dropdown

	if cs.Calendar != nil {
		s.box = *cs.Calendar
	}
	if cs.MonthSelect != nil {
		s.monthSelect = *cs.MonthSelect
	}
	if cs.YearSelect != nil {
		s.yearSelect = *cs.YearSelect
	}
	if cs.Button != nil {
		s.button = *cs.Button
	}
	if cs.Date != nil {
		s.date = *cs.Date
	}
	if cs.Dropdown != nil {
		s.dropdown = *cs.Dropdown
		s.option = *cs.Dropdown
	}
	return s
}

type pickerStyles struct {
	label   lipgloss.Style
	input   lipgloss.Style
	focused lipgloss.Style
	icon    lipgloss.Style
	error   lipgloss.Style
	hint    lipgloss.Style
}

func newPickerStyles(o Options) pickerStyles {
	p := o.CustomStyles.Palette.withDefaults()

	s := pickerStyles{
		label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Accent)),
		input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Muted)).
			Padding(0, 1),
		icon: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)),
		error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Error)).
			Italic(true),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			Italic(true),
	}
	if o.CustomInputStyle != nil {
		s.input = *o.CustomInputStyle
	}
	if o.ErrorStyle != nil {
		s.error = *o.ErrorStyle
	}
	s.focused = s.input.BorderForeground(lipgloss.Color(p.Accent))
	return s
}

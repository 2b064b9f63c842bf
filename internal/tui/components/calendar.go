package components

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MikeBiancalana/datepick/internal/calendar"
	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/language"
)

// SelectMsg is sent when a day is chosen or the home button resets the
// calendar to today.
type SelectMsg struct {
	ID   string
	Date datemodel.CalendarDate
}

// DisplayChangeMsg is sent whenever the displayed month or day changes.
// Every selection is also a display change; the reverse is not true.
type DisplayChangeMsg struct {
	ID   string
	Date datemodel.CalendarDate
}

// ChangeMsg carries the formatted text of a selected day.
type ChangeMsg struct {
	ID   string
	Text string
}

type dropdownState int

const (
	dropdownClosed dropdownState = iota
	dropdownMonth
	dropdownYear
)

type calendarFocus int

const (
	focusMonthSelect calendarFocus = iota
	focusYearSelect
	focusPrev
	focusHome
	focusNext
	focusDay
)

const (
	cellWidth    = 4
	gridWidth    = cellWidth * calendar.DaysPerWeek
	buttonWidth  = 3
	dropdownRows = 5
)

// Calendar renders a month grid with month/year selectors and navigation
// buttons. It owns the displayed month; selection is reported through
// messages.
type Calendar struct {
	opts      CalendarOptions
	lang      language.Tag
	years     []int
	displayed datemodel.CalendarDate

	dropdown  dropdownState
	highlight int
	typeahead string

	focus      calendarFocus
	focusedDay int
	focused    bool

	styles  calendarStyles
	zones   zoneMap
	originX int
	originY int
}

// NewCalendar creates a calendar showing opts.SelectedDate, or today when
// no date is selected.
func NewCalendar(opts CalendarOptions) *Calendar {
	opts = opts.withDefaults()

	c := &Calendar{
		opts:   opts,
		lang:   parseLanguage(opts.Language),
		years:  datemodel.YearRange{Min: opts.MinYear, Max: opts.MaxYear}.Years(),
		styles: newCalendarStyles(opts.CustomStyles),
	}
	if opts.SelectedDate != nil {
		c.displayed = *opts.SelectedDate
	} else {
		c.displayed = datemodel.Today(opts.Now)
	}
	c.focusedDay = c.displayed.Day
	return c
}

// Displayed returns the date the calendar is showing.
func (c *Calendar) Displayed() datemodel.CalendarDate {
	return c.displayed
}

// SetDisplayed moves the calendar to d without emitting any message.
func (c *Calendar) SetDisplayed(d datemodel.CalendarDate) {
	c.displayed = d
	c.focusedDay = d.Day
}

// MonthDropdownOpen reports whether the month options are shown.
func (c *Calendar) MonthDropdownOpen() bool {
	return c.dropdown == dropdownMonth
}

// YearDropdownOpen reports whether the year options are shown.
func (c *Calendar) YearDropdownOpen() bool {
	return c.dropdown == dropdownYear
}

// Highlighted returns the value of the highlighted option of the open
// dropdown: a zero based month or a year.
func (c *Calendar) Highlighted() (int, bool) {
	switch c.dropdown {
	case dropdownMonth:
		return c.highlight, true
	case dropdownYear:
		if c.highlight < len(c.years) {
			return c.years[c.highlight], true
		}
	}
	return 0, false
}

// Focus gives the calendar keyboard focus, starting at the month selector.
func (c *Calendar) Focus() {
	c.focused = true
	c.focus = focusMonthSelect
}

// Blur removes keyboard focus and closes any open dropdown.
func (c *Calendar) Blur() {
	c.focused = false
	c.closeDropdown()
}

// Focused reports whether the calendar has keyboard focus.
func (c *Calendar) Focused() bool {
	return c.focused
}

// FocusedHook returns the hook of the focused control, with the day number
// when a day cell has focus.
func (c *Calendar) FocusedHook() (string, int) {
	switch c.focus {
	case focusMonthSelect:
		return HookMonthSelect, 0
	case focusYearSelect:
		return HookYearSelect, 0
	case focusPrev:
		return HookArrowLeft, 0
	case focusHome:
		return HookHome, 0
	case focusNext:
		return HookArrowRight, 0
	}
	return HookDate, c.focusedDay
}

// AtFirstFocus reports whether focus is on the first control with no
// dropdown open, which is where shift+tab leaves the calendar.
func (c *Calendar) AtFirstFocus() bool {
	return c.focus == focusMonthSelect && c.dropdown == dropdownClosed
}

// SetOrigin records where the calendar is drawn on screen so that Update can
// translate mouse coordinates.
func (c *Calendar) SetOrigin(x, y int) {
	c.originX, c.originY = x, y
}

// Zones returns the hooked regions of the last render, relative to the
// calendar's top-left corner.
func (c *Calendar) Zones() []Zone {
	return append([]Zone(nil), c.zones...)
}

// SelectMonth displays month (0-11) of the displayed year.
func (c *Calendar) SelectMonth(month int) []tea.Msg {
	if month < 0 || month > 11 {
		return nil
	}
	return c.display(calendar.WithYearMonth(c.displayed, c.displayed.Year, month))
}

// SelectYear displays the displayed month of year.
func (c *Calendar) SelectYear(year int) []tea.Msg {
	return c.display(calendar.WithYearMonth(c.displayed, year, c.displayed.Month))
}

// SelectDay selects day of the displayed month.
func (c *Calendar) SelectDay(day int) []tea.Msg {
	if day < 1 || day > datemodel.DaysInMonth(c.displayed.Year, c.displayed.Month) {
		return nil
	}
	c.displayed = c.displayed.WithDay(day)
	c.focusedDay = day
	return []tea.Msg{
		SelectMsg{ID: c.opts.ID, Date: c.displayed},
		DisplayChangeMsg{ID: c.opts.ID, Date: c.displayed},
		ChangeMsg{ID: c.opts.ID, Text: datemodel.Format(c.displayed, c.opts.DateFormat)},
	}
}

// GoHome resets the calendar to today and selects it.
func (c *Calendar) GoHome() []tea.Msg {
	today := datemodel.Today(c.opts.Now)
	c.displayed = today
	c.focusedDay = today.Day
	c.closeDropdown()
	return []tea.Msg{SelectMsg{ID: c.opts.ID, Date: today}}
}

// PrevMonth displays the previous month.
func (c *Calendar) PrevMonth() []tea.Msg {
	return c.display(calendar.ChangeMonth(c.displayed, -1))
}

// NextMonth displays the next month.
func (c *Calendar) NextMonth() []tea.Msg {
	return c.display(calendar.ChangeMonth(c.displayed, 1))
}

func (c *Calendar) display(d datemodel.CalendarDate) []tea.Msg {
	c.displayed = d
	c.closeDropdown()
	if last := datemodel.DaysInMonth(d.Year, d.Month); c.focusedDay > last {
		c.focusedDay = last
	}
	return []tea.Msg{DisplayChangeMsg{ID: c.opts.ID, Date: d}}
}

func (c *Calendar) openDropdown(which dropdownState) {
	c.dropdown = which
	c.typeahead = ""
	switch which {
	case dropdownMonth:
		c.highlight = c.displayed.Month
	case dropdownYear:
		c.highlight = 0
		for i, y := range c.years {
			if y <= c.displayed.Year {
				c.highlight = i
			}
		}
	}
}

func (c *Calendar) closeDropdown() {
	c.dropdown = dropdownClosed
	c.typeahead = ""
}

func (c *Calendar) toggleDropdown(which dropdownState) {
	if c.dropdown == which {
		c.closeDropdown()
		return
	}
	c.openDropdown(which)
}

func (c *Calendar) optionCount() int {
	if c.dropdown == dropdownYear {
		return len(c.years)
	}
	return 12
}

func (c *Calendar) confirmDropdown() []tea.Msg {
	value, ok := c.Highlighted()
	if !ok {
		c.closeDropdown()
		return nil
	}
	if c.dropdown == dropdownMonth {
		return c.SelectMonth(value)
	}
	return c.SelectYear(value)
}

func (c *Calendar) monthNames() []string {
	names := make([]string, 12)
	for m := range names {
		names[m] = c.opts.MonthName(c.lang, time.Month(m+1))
	}
	return names
}

// jump moves the highlight to the option best matching the typed text:
// a fuzzy match on month names, a prefix match on years.
func (c *Calendar) jump() {
	if c.typeahead == "" {
		return
	}
	if c.dropdown == dropdownMonth {
		matches := fuzzy.Find(c.typeahead, c.monthNames())
		if len(matches) > 0 {
			c.highlight = matches[0].Index
		}
		return
	}
	for i, y := range c.years {
		if strings.HasPrefix(strconv.Itoa(y), c.typeahead) {
			c.highlight = i
			return
		}
	}
}

// HandleKey applies a key press and returns the resulting messages in order.
func (c *Calendar) HandleKey(msg tea.KeyMsg) []tea.Msg {
	km := c.opts.KeyMap
	if c.dropdown != dropdownClosed {
		return c.handleDropdownKey(msg)
	}

	switch {
	case key.Matches(msg, km.Next):
		c.focusNext()
		return nil
	case key.Matches(msg, km.Prev):
		c.focusPrev()
		return nil
	case key.Matches(msg, km.PrevMonth):
		return c.PrevMonth()
	case key.Matches(msg, km.NextMonth):
		return c.NextMonth()
	case key.Matches(msg, km.Confirm):
		return c.activate()
	}

	if c.focus != focusDay {
		return nil
	}
	switch {
	case key.Matches(msg, km.Left):
		c.moveDay(-1)
	case key.Matches(msg, km.Right):
		c.moveDay(1)
	case key.Matches(msg, km.Up):
		c.moveDay(-calendar.DaysPerWeek)
	case key.Matches(msg, km.Down):
		c.moveDay(calendar.DaysPerWeek)
	}
	return nil
}

func (c *Calendar) handleDropdownKey(msg tea.KeyMsg) []tea.Msg {
	km := c.opts.KeyMap
	switch {
	case msg.Type == tea.KeyEnter:
		return c.confirmDropdown()
	case key.Matches(msg, km.Cancel):
		c.closeDropdown()
	case key.Matches(msg, km.Up):
		if c.highlight > 0 {
			c.highlight--
		}
	case key.Matches(msg, km.Down):
		if c.highlight < c.optionCount()-1 {
			c.highlight++
		}
	case key.Matches(msg, km.Next):
		c.closeDropdown()
		c.focusNext()
	case key.Matches(msg, km.Prev):
		c.closeDropdown()
		c.focusPrev()
	case msg.Type == tea.KeyBackspace:
		if c.typeahead != "" {
			c.typeahead = c.typeahead[:len(c.typeahead)-1]
			c.jump()
		}
	case msg.Type == tea.KeyRunes, msg.Type == tea.KeySpace:
		c.typeahead += string(msg.Runes)
		c.jump()
	}
	return nil
}

func (c *Calendar) activate() []tea.Msg {
	switch c.focus {
	case focusMonthSelect:
		c.openDropdown(dropdownMonth)
	case focusYearSelect:
		c.openDropdown(dropdownYear)
	case focusPrev:
		return c.PrevMonth()
	case focusHome:
		return c.GoHome()
	case focusNext:
		return c.NextMonth()
	case focusDay:
		return c.SelectDay(c.focusedDay)
	}
	return nil
}

func (c *Calendar) lastDay() int {
	return datemodel.DaysInMonth(c.displayed.Year, c.displayed.Month)
}

// focusNext walks the tab order. Leaving the last day cell returns to the
// home button so focus never escapes the grid.
func (c *Calendar) focusNext() {
	switch c.focus {
	case focusMonthSelect:
		c.focus = focusYearSelect
	case focusYearSelect:
		c.focus = focusPrev
	case focusPrev:
		c.focus = focusHome
	case focusHome:
		c.focus = focusNext
	case focusNext:
		c.focus = focusDay
		c.focusedDay = 1
	case focusDay:
		if c.focusedDay < c.lastDay() {
			c.focusedDay++
		} else {
			c.focus = focusHome
		}
	}
}

func (c *Calendar) focusPrev() {
	switch c.focus {
	case focusMonthSelect:
		c.focus = focusDay
		c.focusedDay = c.lastDay()
	case focusYearSelect:
		c.focus = focusMonthSelect
	case focusPrev:
		c.focus = focusYearSelect
	case focusHome:
		c.focus = focusPrev
	case focusNext:
		c.focus = focusHome
	case focusDay:
		if c.focusedDay > 1 {
			c.focusedDay--
		} else {
			c.focus = focusNext
		}
	}
}

func (c *Calendar) moveDay(delta int) {
	d := c.focusedDay + delta
	if d < 1 {
		d = 1
	}
	if last := c.lastDay(); d > last {
		d = last
	}
	c.focusedDay = d
}

// HandleClick applies a left click at (x, y), relative to the calendar's
// top-left corner.
func (c *Calendar) HandleClick(x, y int) []tea.Msg {
	z, ok := c.zones.hit(x, y)
	if !ok {
		return nil
	}
	switch z.Hook {
	case HookMonthSelect:
		c.focus = focusMonthSelect
		c.toggleDropdown(dropdownMonth)
	case HookYearSelect:
		c.focus = focusYearSelect
		c.toggleDropdown(dropdownYear)
	case HookMonthOption:
		c.focus = focusMonthSelect
		return c.SelectMonth(z.Value)
	case HookYearOption:
		c.focus = focusYearSelect
		return c.SelectYear(z.Value)
	case HookArrowLeft:
		c.focus = focusPrev
		return c.PrevMonth()
	case HookHome:
		c.focus = focusHome
		return c.GoHome()
	case HookArrowRight:
		c.focus = focusNext
		return c.NextMonth()
	case HookDate:
		c.focus = focusDay
		return c.SelectDay(z.Value)
	default:
		c.closeDropdown()
	}
	return nil
}

// Update handles Bubble Tea messages when the calendar is used on its own.
func (c *Calendar) Update(msg tea.Msg) (*Calendar, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return c, emit(c.HandleKey(msg))
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return c, emit(c.HandleClick(msg.X-c.originX, msg.Y-c.originY))
		}
	}
	return c, nil
}

// emit turns messages into a command that delivers them in order.
func emit(msgs []tea.Msg) tea.Cmd {
	if len(msgs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(msgs))
	for i, m := range msgs {
		cmds[i] = func() tea.Msg { return m }
	}
	return tea.Sequence(cmds...)
}

func (c *Calendar) isFocused(f calendarFocus) bool {
	return c.focused && c.focus == f
}

func (c *Calendar) renderSelect(st lipgloss.Style, label string, width int, focused bool) string {
	text := lipgloss.NewStyle().Width(width).Render(label) + " ▾"
	if focused {
		st = st.Inherit(c.styles.focused)
	}
	return st.Render(text)
}

func (c *Calendar) renderButton(symbol string, focused bool) string {
	st := c.styles.button
	if focused {
		st = st.Inherit(c.styles.focused)
	}
	return st.Render(" " + symbol + " ")
}

// View renders the calendar and records the hooked regions.
func (c *Calendar) View() string {
	s := c.styles
	var zones zoneMap
	var lines []string

	names := c.monthNames()
	monthWidth := 0
	for _, n := range names {
		monthWidth = max(monthWidth, lipgloss.Width(n))
	}

	monthSel := c.renderSelect(s.monthSelect, names[c.displayed.Month], monthWidth, c.isFocused(focusMonthSelect))
	yearSel := c.renderSelect(s.yearSelect, strconv.Itoa(c.displayed.Year), 4, c.isFocused(focusYearSelect))
	yearX := lipgloss.Width(monthSel) + 1
	zones.add(Zone{Hook: HookMonthSelect, X: 0, Y: 0, W: lipgloss.Width(monthSel), H: 1})
	zones.add(Zone{Hook: HookYearSelect, X: yearX, Y: 0, W: lipgloss.Width(yearSel), H: 1})
	lines = append(lines, monthSel+" "+yearSel)

	if c.dropdown != dropdownClosed {
		hook, x, width := HookMonthOption, 0, monthWidth
		labels := names
		values := make([]int, 12)
		for i := range values {
			values[i] = i
		}
		if c.dropdown == dropdownYear {
			hook, x, width = HookYearOption, yearX, 4
			labels = make([]string, len(c.years))
			values = c.years
			for i, y := range c.years {
				labels[i] = strconv.Itoa(y)
			}
		}

		start := min(max(c.highlight-dropdownRows/2, 0), max(len(labels)-dropdownRows, 0))
		end := min(start+dropdownRows, len(labels))
		for i := start; i < end; i++ {
			marker, st := "  ", s.option
			if i == c.highlight {
				marker, st = "› ", s.highlighted
			}
			opt := st.Render(marker + lipgloss.NewStyle().Width(width).Render(labels[i]))
			zones.add(Zone{Hook: hook, Value: values[i], X: x, Y: len(lines), W: lipgloss.Width(opt), H: 1})
			lines = append(lines, strings.Repeat(" ", x)+opt)
		}
	}

	homeX := gridWidth/2 - buttonWidth/2
	nextX := gridWidth - buttonWidth
	prev := c.renderButton("‹", c.isFocused(focusPrev))
	home := c.renderButton("⌂", c.isFocused(focusHome))
	next := c.renderButton("›", c.isFocused(focusNext))
	navY := len(lines)
	zones.add(Zone{Hook: HookArrowLeft, X: 0, Y: navY, W: buttonWidth, H: 1})
	zones.add(Zone{Hook: HookHome, X: homeX, Y: navY, W: buttonWidth, H: 1})
	zones.add(Zone{Hook: HookArrowRight, X: nextX, Y: navY, W: buttonWidth, H: 1})
	lines = append(lines, prev+
		strings.Repeat(" ", homeX-buttonWidth)+home+
		strings.Repeat(" ", nextX-homeX-buttonWidth)+next)

	var header strings.Builder
	for _, d := range calendar.WeekdayHeader() {
		header.WriteString(s.header.Render(fmt.Sprintf("%3s", d)) + " ")
	}
	lines = append(lines, header.String())

	today := datemodel.Today(c.opts.Now)
	for _, week := range calendar.Weeks(c.displayed) {
		var row strings.Builder
		for col, cell := range week {
			if cell.IsBlank() {
				row.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			st := s.date
			if cell.Day == c.displayed.Day {
				st = st.Inherit(s.selected)
			}
			if c.displayed.WithDay(cell.Day) == today {
				st = st.Inherit(s.today)
			}
			if c.isFocused(focusDay) && cell.Day == c.focusedDay {
				st = st.Inherit(s.focused)
			}
			zones.add(Zone{Hook: HookDate, Value: cell.Day, X: col * cellWidth, Y: len(lines), W: cellWidth - 1, H: 1})
			row.WriteString(st.Render(fmt.Sprintf("%3d", cell.Day)) + " ")
		}
		lines = append(lines, row.String())
	}

	box := s.box.Render(strings.Join(lines, "\n"))

	insetX := s.box.GetMarginLeft() + s.box.GetBorderLeftSize() + s.box.GetPaddingLeft()
	insetY := s.box.GetMarginTop() + s.box.GetBorderTopSize() + s.box.GetPaddingTop()
	c.zones = append(zoneMap{{Hook: HookCalendar, W: lipgloss.Width(box), H: lipgloss.Height(box)}},
		zones.shifted(insetX, insetY)...)

	return box
}

package components

import (
	"errors"

	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/MikeBiancalana/datepick/internal/logger"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ValidationKind classifies the picker's current text.
type ValidationKind int

const (
	Empty ValidationKind = iota
	Valid
	Invalid
)

func (k ValidationKind) String() string {
	switch k {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "empty"
}

// ValidationState is the outcome of validating the picker's text.
type ValidationState struct {
	Kind ValidationKind
	Date datemodel.CalendarDate
	Err  error
}

// FocusTarget is the part of the picker that receives keys.
type FocusTarget int

const (
	FocusInput FocusTarget = iota
	FocusIcon
	FocusCalendar
)

// DateChangeMsg is sent when the validation outcome changes. Date is nil
// unless the text holds a valid date.
type DateChangeMsg struct {
	ID   string
	Date *datemodel.CalendarDate
}

// DatePicker combines a text input, a calendar icon and a popup calendar.
// Typing a valid date opens the calendar on it; picking a day writes the
// formatted date back to the input.
type DatePicker struct {
	opts   Options
	input  *DatePickerInput
	cal    *Calendar
	styles pickerStyles

	state     ValidationState
	errMsg    string
	lastValid *datemodel.CalendarDate

	focus      FocusTarget
	subscribed bool

	zones   zoneMap
	calX    int
	calY    int
	originX int
	originY int

	cmds []tea.Cmd
}

// NewDatePicker creates a picker with the given options.
func NewDatePicker(opts Options) *DatePicker {
	opts = opts.withDefaults()
	return &DatePicker{
		opts:   opts,
		input:  NewDatePickerInput(opts.Placeholder),
		styles: newPickerStyles(opts),
	}
}

// Init focuses the input and, when configured, fills it with today's date.
func (dp *DatePicker) Init() tea.Cmd {
	cmd := dp.input.Focus()
	if !dp.opts.ShowCurrentDateOnMount {
		return cmd
	}
	today := datemodel.Today(dp.opts.Now)
	dp.input.SetValue(datemodel.Format(today, dp.opts.DateFormat))
	return tea.Batch(cmd, emit(dp.revalidate(false)))
}

// ID returns the identifier carried in emitted messages.
func (dp *DatePicker) ID() string {
	return dp.opts.ID
}

// Options returns the effective options, defaults included.
func (dp *DatePicker) Options() Options {
	return dp.opts
}

// Value returns the input text.
func (dp *DatePicker) Value() string {
	return dp.input.Value()
}

// Date returns the current date when the text is valid.
func (dp *DatePicker) Date() (datemodel.CalendarDate, bool) {
	return dp.state.Date, dp.state.Kind == Valid
}

// State returns the current validation state.
func (dp *DatePicker) State() ValidationState {
	return dp.state
}

// Error returns the validation message being shown, if any.
func (dp *DatePicker) Error() string {
	if !*dp.opts.ShowError {
		return ""
	}
	return dp.errMsg
}

// CalendarOpen reports whether the calendar is shown.
func (dp *DatePicker) CalendarOpen() bool {
	return dp.cal != nil
}

// Calendar returns the open calendar, or nil.
func (dp *DatePicker) Calendar() *Calendar {
	return dp.cal
}

// Subscribed reports whether outside clicks are being watched.
func (dp *DatePicker) Subscribed() bool {
	return dp.subscribed
}

// CurrentFocus returns the focused part.
func (dp *DatePicker) CurrentFocus() FocusTarget {
	return dp.focus
}

// Focus moves keyboard focus to the input.
func (dp *DatePicker) Focus() tea.Cmd {
	dp.setFocus(FocusInput)
	return tea.Batch(dp.drainCmds()...)
}

// Blur removes focus from the input and validates its text.
func (dp *DatePicker) Blur() tea.Cmd {
	return emit(dp.OnBlur())
}

// SetValue replaces the text as if the user had typed it.
func (dp *DatePicker) SetValue(text string) tea.Cmd {
	dp.input.SetValue(text)
	return emit(dp.OnTextChange(text))
}

// SetWidth sets the width of the text field.
func (dp *DatePicker) SetWidth(w int) {
	dp.input.SetWidth(w)
}

// SetOrigin records where the picker is drawn on screen so mouse
// coordinates can be translated.
func (dp *DatePicker) SetOrigin(x, y int) {
	dp.originX, dp.originY = x, y
}

// Zone returns the screen region of a hooked control from the last render.
func (dp *DatePicker) Zone(hook string, value int) (Zone, bool) {
	z, ok := dp.zones.find(hook, value)
	if !ok {
		return Zone{}, false
	}
	z.X += dp.originX
	z.Y += dp.originY
	return z, true
}

// Close releases the outside-click subscription and drops the calendar.
// Hosts call it when the picker is removed from view.
func (dp *DatePicker) Close() {
	dp.closeCalendar()
}

func (dp *DatePicker) validate(text string) ValidationState {
	d, err := datemodel.Check(text, dp.opts.DateFormat, dp.opts.YearRange())
	switch {
	case err == nil:
		return ValidationState{Kind: Valid, Date: d}
	case errors.Is(err, datemodel.ErrEmpty) && !dp.opts.Required:
		return ValidationState{Kind: Empty}
	}
	return ValidationState{Kind: Invalid, Err: err}
}

// apply stores a validation outcome and reports a DateChangeMsg when it
// differs from the previous one.
func (dp *DatePicker) apply(st ValidationState) []tea.Msg {
	prev := dp.state
	dp.state = st
	dp.errMsg = datemodel.UserMessage(st.Err, dp.opts.ErrorMessage)
	if st.Kind == Valid {
		d := st.Date
		dp.lastValid = &d
	}
	if prev.Kind == st.Kind && prev.Date == st.Date {
		return nil
	}

	logger.Debug("datepicker: validation changed", "id", dp.opts.ID, "from", prev.Kind, "to", st.Kind)
	msg := DateChangeMsg{ID: dp.opts.ID}
	if st.Kind == Valid {
		d := st.Date
		msg.Date = &d
	}
	return []tea.Msg{msg}
}

func (dp *DatePicker) revalidate(open bool) []tea.Msg {
	st := dp.validate(dp.input.Value())
	msgs := dp.apply(st)
	switch {
	case st.Kind != Valid:
		dp.closeCalendar()
	case open:
		dp.openCalendar(st.Date)
	}
	return msgs
}

// OnTextChange validates edited text. A valid date opens the calendar on
// it; anything else closes the calendar.
func (dp *DatePicker) OnTextChange(text string) []tea.Msg {
	st := dp.validate(text)
	msgs := dp.apply(st)
	if st.Kind == Valid {
		dp.openCalendar(st.Date)
	} else {
		dp.closeCalendar()
	}
	return msgs
}

// OnBlur validates the text without opening the calendar.
func (dp *DatePicker) OnBlur() []tea.Msg {
	if ev := dp.input.Blur(); ev.Kind != InputBlur {
		return nil
	}
	return dp.revalidate(false)
}

// OnCalendarSelect writes the chosen date to the input and closes the
// calendar. A date outside the year range becomes Invalid.
func (dp *DatePicker) OnCalendarSelect(d datemodel.CalendarDate) []tea.Msg {
	dp.input.SetValue(datemodel.Format(d, dp.opts.DateFormat))
	msgs := dp.apply(dp.checkDate(d))
	dp.closeCalendar()
	dp.setFocus(FocusInput)
	return msgs
}

// OnDisplayChange keeps the input in step with the calendar while it stays
// open. Paging past the year range leaves the calendar open so the user can
// page back.
func (dp *DatePicker) OnDisplayChange(d datemodel.CalendarDate) []tea.Msg {
	dp.input.SetValue(datemodel.Format(d, dp.opts.DateFormat))
	return dp.apply(dp.checkDate(d))
}

func (dp *DatePicker) checkDate(d datemodel.CalendarDate) ValidationState {
	if err := datemodel.Validate(d, dp.opts.YearRange()); err != nil {
		return ValidationState{Kind: Invalid, Err: err}
	}
	return ValidationState{Kind: Valid, Date: d}
}

// OnOutsideClick closes the calendar when (x, y), in picker coordinates,
// falls outside it. It does nothing unless the calendar is open.
func (dp *DatePicker) OnOutsideClick(x, y int) []tea.Msg {
	if !dp.subscribed {
		return nil
	}
	if z, ok := dp.zones.hit(x, y); ok && isCalendarHook(z.Hook) {
		return nil
	}
	logger.Debug("datepicker: outside click", "id", dp.opts.ID, "x", x, "y", y)
	dp.closeCalendar()
	return dp.revalidate(false)
}

// OnKeyDown handles keys the input reports without editing.
func (dp *DatePicker) OnKeyDown(msg tea.KeyMsg) []tea.Msg {
	switch msg.Type {
	case tea.KeyEnter:
		return dp.onEnter()
	case tea.KeyEsc:
		dp.closeCalendar()
		dp.errMsg = ""
		return nil
	case tea.KeyTab:
		return dp.setFocus(FocusIcon)
	case tea.KeyShiftTab:
		if dp.CalendarOpen() {
			return dp.setFocus(FocusCalendar)
		}
		return dp.setFocus(FocusIcon)
	}
	dp.closeCalendar()
	return nil
}

func (dp *DatePicker) onEnter() []tea.Msg {
	text := dp.input.Value()
	if dp.opts.Shortcuts {
		if d, err := ExpandShortcut(text, datemodel.Today(dp.opts.Now)); err == nil {
			formatted := datemodel.Format(d, dp.opts.DateFormat)
			dp.input.SetValue(formatted)
			return dp.OnTextChange(formatted)
		}
	}

	st := dp.validate(text)
	msgs := dp.apply(st)
	switch {
	case st.Kind != Valid:
		dp.closeCalendar()
	case dp.CalendarOpen():
		dp.closeCalendar()
	default:
		dp.openCalendar(st.Date)
	}
	return msgs
}

// toggleCalendar is the icon action. It is ignored while an error is shown.
func (dp *DatePicker) toggleCalendar() {
	if dp.Error() != "" {
		return
	}
	if dp.CalendarOpen() {
		dp.closeCalendar()
		return
	}
	dp.openCalendar(dp.seed())
}

// seed picks the date a newly opened calendar shows.
func (dp *DatePicker) seed() datemodel.CalendarDate {
	if dp.state.Kind == Valid {
		return dp.state.Date
	}
	if dp.lastValid != nil {
		return *dp.lastValid
	}
	return datemodel.Today(dp.opts.Now)
}

func (dp *DatePicker) openCalendar(d datemodel.CalendarDate) {
	dp.cal = NewCalendar(dp.opts.calendarOptions(d))
	if dp.focus == FocusCalendar {
		dp.cal.Focus()
	}
	if !dp.subscribed {
		logger.Debug("datepicker: calendar opened", "id", dp.opts.ID, "date", d)
	}
	dp.subscribed = true
}

func (dp *DatePicker) closeCalendar() {
	if dp.cal == nil && !dp.subscribed {
		return
	}
	logger.Debug("datepicker: calendar closed", "id", dp.opts.ID)
	dp.cal = nil
	dp.subscribed = false
	if dp.focus == FocusCalendar {
		dp.focus = FocusInput
		dp.cmds = append(dp.cmds, dp.input.Focus())
	}
}

// setFocus moves focus. Leaving the input validates it like a blur.
func (dp *DatePicker) setFocus(f FocusTarget) []tea.Msg {
	if f == FocusCalendar && !dp.CalendarOpen() {
		f = FocusInput
	}
	prev := dp.focus
	dp.focus = f

	var msgs []tea.Msg
	if prev == FocusCalendar && f != FocusCalendar && dp.cal != nil {
		dp.cal.Blur()
	}
	if prev == FocusInput && f != FocusInput {
		msgs = dp.OnBlur()
	}
	switch f {
	case FocusInput:
		dp.cmds = append(dp.cmds, dp.input.Focus())
	case FocusCalendar:
		if dp.cal != nil && !dp.cal.Focused() {
			dp.cal.Focus()
		}
	}
	return msgs
}

func (dp *DatePicker) drainCmds() []tea.Cmd {
	cmds := dp.cmds
	dp.cmds = nil
	return cmds
}

// handleCalendarMsgs applies calendar events in order.
func (dp *DatePicker) handleCalendarMsgs(in []tea.Msg) []tea.Msg {
	var out []tea.Msg
	for _, m := range in {
		switch m := m.(type) {
		case SelectMsg:
			out = append(out, dp.OnCalendarSelect(m.Date)...)
		case DisplayChangeMsg:
			out = append(out, dp.OnDisplayChange(m.Date)...)
		}
	}
	return out
}

// HandleKey applies a key press to the focused part and returns the
// resulting messages.
func (dp *DatePicker) HandleKey(msg tea.KeyMsg) []tea.Msg {
	km := dp.opts.KeyMap

	switch dp.focus {
	case FocusIcon:
		switch {
		case key.Matches(msg, km.Confirm):
			dp.toggleCalendar()
		case key.Matches(msg, km.Cancel):
			dp.closeCalendar()
			dp.errMsg = ""
		case key.Matches(msg, km.Next):
			return dp.setFocus(FocusCalendar)
		case key.Matches(msg, km.Prev):
			return dp.setFocus(FocusInput)
		}
		return nil

	case FocusCalendar:
		if dp.cal == nil {
			return dp.setFocus(FocusInput)
		}
		if key.Matches(msg, km.Cancel) && !dp.cal.MonthDropdownOpen() && !dp.cal.YearDropdownOpen() {
			dp.closeCalendar()
			dp.errMsg = ""
			return nil
		}
		if key.Matches(msg, km.Prev) && dp.cal.AtFirstFocus() {
			return dp.setFocus(FocusIcon)
		}
		return dp.handleCalendarMsgs(dp.cal.HandleKey(msg))
	}

	ev, cmd := dp.input.HandleKey(msg)
	if cmd != nil {
		dp.cmds = append(dp.cmds, cmd)
	}
	switch ev.Kind {
	case InputChange:
		dp.closeCalendar()
		return dp.OnTextChange(ev.Value)
	case InputKeyDown:
		return dp.OnKeyDown(msg)
	}
	return nil
}

// HandleClick applies a left click at (x, y), relative to the picker's
// top-left corner.
func (dp *DatePicker) HandleClick(x, y int) []tea.Msg {
	z, ok := dp.zones.hit(x, y)
	if ok && dp.CalendarOpen() && isCalendarHook(z.Hook) {
		msgs := dp.setFocus(FocusCalendar)
		if dp.cal == nil {
			return msgs
		}
		return append(msgs, dp.handleCalendarMsgs(dp.cal.HandleClick(x-dp.calX, y-dp.calY))...)
	}

	var msgs []tea.Msg
	if !ok || z.Hook != HookCalendarIcon {
		msgs = dp.OnOutsideClick(x, y)
	}
	if !ok {
		return msgs
	}
	switch z.Hook {
	case HookInput:
		msgs = append(msgs, dp.setFocus(FocusInput)...)
	case HookCalendarIcon:
		msgs = append(msgs, dp.setFocus(FocusIcon)...)
		dp.toggleCalendar()
	}
	return msgs
}

// Update handles Bubble Tea messages.
func (dp *DatePicker) Update(msg tea.Msg) (*DatePicker, tea.Cmd) {
	var msgs []tea.Msg
	switch msg := msg.(type) {
	case tea.KeyMsg:
		msgs = dp.HandleKey(msg)
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return dp, nil
		}
		msgs = dp.HandleClick(msg.X-dp.originX, msg.Y-dp.originY)
	default:
		var cmd tea.Cmd
		dp.input, cmd = dp.input.Update(msg)
		return dp, cmd
	}

	cmds := dp.drainCmds()
	cmds = append(cmds, emit(msgs))
	return dp, tea.Batch(cmds...)
}

// View renders the picker and records the hooked regions.
func (dp *DatePicker) View() string {
	s := dp.styles
	var zones zoneMap
	var parts []string

	label := s.label.Render(dp.opts.Label)
	if dp.opts.Type != DefaultType {
		label += " " + s.hint.Render("("+dp.opts.Type+")")
	}
	parts = append(parts, label)
	y := lipgloss.Height(label)

	boxStyle := s.input
	if dp.focus == FocusInput {
		boxStyle = s.focused
	}
	inputBox := boxStyle.Render(dp.input.View())

	iconStyle := s.input.Inherit(s.icon)
	if dp.focus == FocusIcon {
		iconStyle = s.focused.Inherit(s.icon).Reverse(true)
	}
	iconBox := iconStyle.Render(dp.opts.Icon)

	row := lipgloss.JoinHorizontal(lipgloss.Top, inputBox, " ", iconBox)
	iconX := lipgloss.Width(inputBox) + 1
	zones.add(Zone{Hook: HookInput, X: 0, Y: y, W: lipgloss.Width(inputBox), H: lipgloss.Height(inputBox)})
	zones.add(Zone{Hook: HookCalendarIcon, X: iconX, Y: y, W: lipgloss.Width(iconBox), H: lipgloss.Height(iconBox)})
	parts = append(parts, row)
	y += lipgloss.Height(row)

	var status string
	switch {
	case dp.Error() != "":
		status = s.error.Render("✗ " + dp.Error())
	case dp.state.Kind == Valid:
		status = s.hint.Render("→ " + DescribeDate(dp.state.Date, datemodel.Today(dp.opts.Now)))
	}
	if status != "" {
		parts = append(parts, status)
		y += lipgloss.Height(status)
	}

	if dp.cal != nil {
		calView := dp.cal.View()
		dp.calX, dp.calY = 0, y
		for _, z := range zoneMap(dp.cal.Zones()).shifted(dp.calX, dp.calY) {
			zones.add(z)
		}
		parts = append(parts, calView)
	}

	dp.zones = zones
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

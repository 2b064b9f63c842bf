package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputEventKind tells the picker what an input key press amounted to.
type InputEventKind int

const (
	InputNone InputEventKind = iota
	InputChange
	InputBlur
	InputKeyDown
)

// InputEvent is the outcome of feeding a key to a DatePickerInput.
type InputEvent struct {
	Kind  InputEventKind
	Value string
	Key   tea.KeyMsg
}

// DatePickerInput is the text field of a DatePicker. It reports edits,
// blur and navigation keys instead of acting on them.
type DatePickerInput struct {
	textInput textinput.Model
}

// NewDatePickerInput creates an input showing placeholder when empty.
func NewDatePickerInput(placeholder string) *DatePickerInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 20

	return &DatePickerInput{textInput: ti}
}

// SetValue replaces the text and moves the cursor to the end.
func (in *DatePickerInput) SetValue(s string) {
	in.textInput.SetValue(s)
	in.textInput.CursorEnd()
}

// Value returns the current text.
func (in *DatePickerInput) Value() string {
	return in.textInput.Value()
}

// SetWidth sets the visible width of the field.
func (in *DatePickerInput) SetWidth(w int) {
	in.textInput.Width = w
}

// Focus focuses the field and returns the cursor blink command.
func (in *DatePickerInput) Focus() tea.Cmd {
	return in.textInput.Focus()
}

// Blur removes focus. It reports a blur event only if the field had focus.
func (in *DatePickerInput) Blur() InputEvent {
	if !in.textInput.Focused() {
		return InputEvent{}
	}
	in.textInput.Blur()
	return InputEvent{Kind: InputBlur, Value: in.Value()}
}

// Focused reports whether the field has focus.
func (in *DatePickerInput) Focused() bool {
	return in.textInput.Focused()
}

// HandleKey feeds a key press to the field. Enter, Esc, Up, Down and the tab keys are
// reported as key-down events and never edit the text.
func (in *DatePickerInput) HandleKey(msg tea.KeyMsg) (InputEvent, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		return InputEvent{Kind: InputKeyDown, Value: in.Value(), Key: msg}, nil
	}

	before := in.Value()
	var cmd tea.Cmd
	in.textInput, cmd = in.textInput.Update(msg)
	if after := in.Value(); after != before {
		return InputEvent{Kind: InputChange, Value: after, Key: msg}, cmd
	}
	return InputEvent{Kind: InputKeyDown, Value: before, Key: msg}, cmd
}

// Update forwards non-key messages such as cursor blinks.
func (in *DatePickerInput) Update(msg tea.Msg) (*DatePickerInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return in, nil
	}
	var cmd tea.Cmd
	in.textInput, cmd = in.textInput.Update(msg)
	return in, cmd
}

// View renders the field.
func (in *DatePickerInput) View() string {
	return in.textInput.View()
}

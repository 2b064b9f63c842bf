package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDatePickerInputReportsChanges(t *testing.T) {
	in := NewDatePickerInput("Select date")
	in.Focus()

	ev, _ := in.HandleKey(keyPress("1"))
	assert.Equal(t, InputChange, ev.Kind)
	assert.Equal(t, "1", ev.Value)

	ev, _ = in.HandleKey(keyPress("left"))
	assert.Equal(t, InputKeyDown, ev.Kind)
	assert.Equal(t, "1", in.Value())
}

func TestDatePickerInputNavigationKeysDoNotEdit(t *testing.T) {
	in := NewDatePickerInput("")
	in.Focus()
	in.SetValue("15/03/2024")

	for _, k := range []tea.KeyType{tea.KeyEnter, tea.KeyEsc, tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown} {
		ev, cmd := in.HandleKey(tea.KeyMsg{Type: k})
		assert.Equal(t, InputKeyDown, ev.Kind, k.String())
		assert.Nil(t, cmd)
		assert.Equal(t, "15/03/2024", in.Value())
	}
}

func TestDatePickerInputBlur(t *testing.T) {
	in := NewDatePickerInput("")
	assert.Equal(t, InputNone, in.Blur().Kind, "blur without focus")

	in.Focus()
	in.SetValue("x")
	ev := in.Blur()
	assert.Equal(t, InputBlur, ev.Kind)
	assert.Equal(t, "x", ev.Value)
	assert.False(t, in.Focused())
}

func TestDatePickerInputIgnoresKeysWhenBlurred(t *testing.T) {
	in := NewDatePickerInput("")
	ev, _ := in.HandleKey(keyPress("1"))
	assert.Equal(t, InputKeyDown, ev.Kind)
	assert.Empty(t, in.Value())
}

func TestDatePickerInputPlaceholder(t *testing.T) {
	in := NewDatePickerInput("Select date")
	assert.Contains(t, in.View(), "elect date")
}

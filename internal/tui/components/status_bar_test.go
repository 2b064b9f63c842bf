package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusBar_MessageAndRight(t *testing.T) {
	sb := NewStatusBar()
	sb.SetWidth(40)
	sb.SetMessage("Config reloaded")
	sb.SetRight("2024-03-15")

	view := sb.View()
	assert.Equal(t, 40, lipgloss.Width(view))
	assert.Contains(t, view, "Config reloaded")
	assert.Contains(t, view, "2024-03-15")
	assert.Less(t, strings.Index(view, "Config"), strings.Index(view, "2024"))
}

func TestStatusBar_TruncatesMessage(t *testing.T) {
	sb := NewStatusBar()
	sb.SetWidth(20)
	sb.SetMessage("a very long status message that does not fit")
	sb.SetRight("no date")

	view := sb.View()
	assert.Equal(t, 20, lipgloss.Width(view))
	assert.Contains(t, view, "…")
	assert.Contains(t, view, "no date")
}

func TestStatusBar_ErrorAndClear(t *testing.T) {
	sb := NewStatusBar()
	sb.SetWidth(30)

	sb.SetError("Nothing to accept")
	assert.Equal(t, "Nothing to accept", sb.Message())
	assert.True(t, sb.isError)

	sb.Clear()
	assert.Empty(t, sb.Message())
	assert.False(t, sb.isError)
}

package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	statusErrorStyle = statusBarStyle.
				Foreground(lipgloss.Color("203"))
)

// StatusBar is a one line bar with a transient message on the left and a
// fixed summary on the right.
type StatusBar struct {
	width   int
	message string
	isError bool
	right   string
}

// NewStatusBar creates a new status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetWidth sets the width of the status bar
func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// SetMessage shows an informational message.
func (sb *StatusBar) SetMessage(msg string) {
	sb.message, sb.isError = msg, false
}

// SetError shows a message in the error colour.
func (sb *StatusBar) SetError(msg string) {
	sb.message, sb.isError = msg, true
}

// Clear removes the message.
func (sb *StatusBar) Clear() {
	sb.message, sb.isError = "", false
}

// Message returns the current message.
func (sb *StatusBar) Message() string {
	return sb.message
}

// SetRight sets the text pinned to the right edge.
func (sb *StatusBar) SetRight(s string) {
	sb.right = s
}

// View renders the status bar
func (sb *StatusBar) View() string {
	style := statusBarStyle
	if sb.isError {
		style = statusErrorStyle
	}
	if sb.width <= 0 {
		return style.Render(sb.message)
	}

	inner := sb.width - style.GetHorizontalPadding()
	right := sb.right
	if lipgloss.Width(right) >= inner {
		right = ""
	}

	// Truncate the message so the right side stays visible.
	room := inner - lipgloss.Width(right)
	if right != "" {
		room--
	}
	msg := ansi.Truncate(sb.message, room, "…")

	gap := inner - lipgloss.Width(msg) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	line := msg + lipgloss.NewStyle().Width(gap).Render("") + right
	return style.Width(sb.width).Render(line)
}

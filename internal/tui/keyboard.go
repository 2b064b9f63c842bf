package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress handles the host bindings and passes everything else to
// the picker.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m, m.cancel()
	case m.terminalTooSmall:
		return m, nil
	case key.Matches(msg, m.keys.Accept):
		return m, m.accept()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	_, cmd := m.picker.Update(msg)
	return m, cmd
}

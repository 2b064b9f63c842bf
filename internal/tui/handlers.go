package tui

import (
	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/MikeBiancalana/datepick/internal/logger"
	"github.com/MikeBiancalana/datepick/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// handleWindowSize handles terminal resize events
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.terminalTooSmall = msg.Width < MinTerminalWidth || msg.Height < MinTerminalHeight

	m.layout = CalculateLayout(msg.Width, msg.Height)
	m.picker.SetOrigin(m.layout.PickerX, m.layout.PickerY)
	m.picker.SetWidth(m.layout.InputWidth)
	m.help.Width = msg.Width
	m.statusBar.SetWidth(msg.Width)
	return m, nil
}

// handleMouse forwards clicks to the picker. Ignored while the terminal is
// too small since nothing is drawn where the click landed.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.terminalTooSmall {
		return m, nil
	}
	_, cmd := m.picker.Update(msg)
	return m, cmd
}

func (m *Model) handleDateChange(msg components.DateChangeMsg) (tea.Model, tea.Cmd) {
	if msg.Date == nil {
		logger.Debug("tui: date cleared", "id", msg.ID)
		return m, nil
	}
	logger.Debug("tui: date changed", "id", msg.ID, "date", msg.Date.String())
	return m, nil
}

// handleConfigChanged rebuilds the picker with the reloaded options. A valid
// date is carried over in the new format; other text is kept verbatim.
func (m *Model) handleConfigChanged(msg configChangedMsg) (tea.Model, tea.Cmd) {
	if msg.cfg == nil {
		return m, m.waitForConfigChange()
	}

	old := m.picker
	opts := m.build(msg.cfg)
	opts.ID = old.ID()

	picker := components.NewDatePicker(opts)
	picker.SetOrigin(m.layout.PickerX, m.layout.PickerY)
	picker.SetWidth(m.layout.InputWidth)
	cmds := []tea.Cmd{picker.Init()}

	text := old.Value()
	if d, ok := old.Date(); ok {
		text = datemodel.Format(d, picker.Options().DateFormat)
	}
	if text != "" {
		cmds = append(cmds, picker.SetValue(text))
	}

	old.Close()
	m.cfg = msg.cfg
	m.picker = picker
	m.keys = newKeyMap(*picker.Options().KeyMap)
	m.statusBar.SetMessage("Config reloaded")
	logger.Info("config reloaded", "format", opts.DateFormat, "min_year", opts.MinYear, "max_year", opts.MaxYear)

	cmds = append(cmds, clearStatusAfter(statusTimeout), m.waitForConfigChange())
	return m, tea.Batch(cmds...)
}

// handleError shows msg on the status bar. Errors from the config watcher
// resume the watch so later edits are still picked up.
func (m *Model) handleError(msg errMsg) (tea.Model, tea.Cmd) {
	logger.Error("tui error", "error", msg.err)
	m.statusBar.SetError("Error: " + msg.err.Error())
	if msg.watching {
		return m, tea.Batch(clearStatusAfter(statusTimeout), m.waitForConfigChange())
	}
	return m, clearStatusAfter(statusTimeout)
}

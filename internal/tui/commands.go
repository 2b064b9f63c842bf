package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const statusTimeout = 3 * time.Second

// waitForConfigChange blocks on the watcher channels inside the command, so
// it returns immediately and delivers the next reloaded config, or the next
// reload failure, as a message. A closed channel ends the subscription.
func (m *Model) waitForConfigChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes, errs := m.watcher.Changes(), m.watcher.Errors()

	return func() tea.Msg {
		select {
		case cfg, ok := <-changes:
			if !ok {
				return nil
			}
			return configChangedMsg{cfg: cfg}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return errMsg{err: fmt.Errorf("config reload: %w", err), watching: true}
		}
	}
}

// clearStatusAfter hides the status line after a delay.
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// accept ends the program with the picker's current date.
func (m *Model) accept() tea.Cmd {
	d, ok := m.picker.Date()
	if !ok {
		// Blurring validates the text so the error shows under the input.
		blur := m.picker.Blur()
		focus := m.picker.Focus()
		msg := "Nothing to accept"
		if e := m.picker.Error(); e != "" {
			msg += ": " + e
		}
		m.statusBar.SetError(msg)
		return tea.Batch(blur, focus, clearStatusAfter(statusTimeout))
	}

	m.result = Result{Accepted: true, Text: m.picker.Value(), Date: &d}
	m.picker.Close()
	return tea.Quit
}

// cancel ends the program without a result.
func (m *Model) cancel() tea.Cmd {
	m.result = Result{Text: m.picker.Value()}
	m.picker.Close()
	return tea.Quit
}

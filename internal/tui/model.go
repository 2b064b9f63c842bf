package tui

import (
	"fmt"
	"time"

	"github.com/MikeBiancalana/datepick/internal/config"
	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/MikeBiancalana/datepick/internal/logger"
	"github.com/MikeBiancalana/datepick/internal/perf"
	"github.com/MikeBiancalana/datepick/internal/sync"
	"github.com/MikeBiancalana/datepick/internal/tui/components"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Minimum terminal dimensions: the tallest calendar with an open dropdown,
// the input box and the footer.
const (
	MinTerminalWidth  = 40
	MinTerminalHeight = 24
)

// Result is what the user chose when the program exits.
type Result struct {
	Accepted bool
	Text     string
	Date     *datemodel.CalendarDate
}

// OptionsFunc builds picker options from a config. It is called again on
// every config reload so that command line flags keep precedence.
type OptionsFunc func(*config.Config) components.Options

// PickerOptions maps the config file settings onto picker options.
func PickerOptions(cfg *config.Config) components.Options {
	p := cfg.Picker
	return components.Options{
		MinYear:                p.MinYear,
		MaxYear:                p.MaxYear,
		DateFormat:             p.DateFormat,
		Language:               p.Language,
		Label:                  p.Label,
		Placeholder:            p.Placeholder,
		Icon:                   p.Icon,
		ErrorMessage:           p.ErrorMessage,
		ShowError:              components.Bool(p.ShowError),
		Required:               p.Required,
		ShowCurrentDateOnMount: p.ShowCurrentDateOnMount,
		Shortcuts:              p.Shortcuts,
		CustomStyles: components.CustomStyles{
			Palette: components.Palette{
				Accent:   p.Palette.Accent,
				Muted:    p.Palette.Muted,
				Error:    p.Palette.Error,
				Selected: p.Palette.Selected,
				Today:    p.Palette.Today,
			},
		},
	}
}

// Model hosts a single DatePicker full screen.
type Model struct {
	cfg     *config.Config
	build   OptionsFunc
	picker  *components.DatePicker
	watcher *sync.Watcher

	keys     keyMap
	help     help.Model
	showHelp bool

	width            int
	height           int
	layout           Layout
	terminalTooSmall bool

	statusBar *components.StatusBar
	result    Result

	renders  *perf.Recorder
	keyCount *perf.OpCounter
}

// NewModel creates the host model. build may be nil, in which case
// PickerOptions is used. watcher may be nil to disable live reload.
func NewModel(cfg *config.Config, build OptionsFunc, watcher *sync.Watcher) *Model {
	if build == nil {
		build = PickerOptions
	}
	picker := components.NewDatePicker(build(cfg))
	layout := CalculateLayout(80, MinTerminalHeight)
	picker.SetOrigin(layout.PickerX, layout.PickerY)
	picker.SetWidth(layout.InputWidth)

	return &Model{
		cfg:       cfg,
		build:     build,
		picker:    picker,
		watcher:   watcher,
		keys:      newKeyMap(*picker.Options().KeyMap),
		help:      help.New(),
		statusBar: components.NewStatusBar(),
		layout:    layout,
		renders:   perf.NewRecorder("tui.view", logger.GetLogger(), 16*time.Millisecond),
		keyCount:  perf.NewOpCounter("tui.keys"),
	}
}

// Picker returns the hosted picker.
func (m *Model) Picker() *components.DatePicker {
	return m.picker
}

// Result returns the outcome once the program has exited.
func (m *Model) Result() Result {
	return m.result
}

// Renders returns the render timing recorder.
func (m *Model) Renders() *perf.Recorder {
	return m.renders
}

// KeyCount returns the number of key presses handled.
func (m *Model) KeyCount() int64 {
	return m.keyCount.Value()
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.picker.Init()}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForConfigChange())
	}
	return tea.Batch(cmds...)
}

// Update routes messages to the dedicated handlers in handlers.go and
// keyboard.go.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		m.keyCount.Inc()
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case components.DateChangeMsg:
		return m.handleDateChange(msg)

	case configChangedMsg:
		return m.handleConfigChanged(msg)

	case clearStatusMsg:
		m.statusBar.Clear()
		return m, nil

	case errMsg:
		return m.handleError(msg)

	default:
		_, cmd := m.picker.Update(msg)
		return m, cmd
	}
}

var (
	pageStyle = lipgloss.NewStyle().
			MarginLeft(marginLeft).
			MarginTop(marginTop)
)

// View renders the TUI
func (m *Model) View() string {
	if m.terminalTooSmall {
		return m.terminalTooSmallView()
	}

	var view string
	m.renders.Time(func() {
		body := pageStyle.Render(m.picker.View())

		m.help.ShowAll = m.showHelp
		m.statusBar.SetRight(m.dateSummary())
		footer := lipgloss.JoinVertical(lipgloss.Left, m.statusBar.View(), m.help.View(m.keys))

		if m.height > 0 {
			gap := m.height - lipgloss.Height(body) - lipgloss.Height(footer)
			if gap > 0 {
				body = lipgloss.JoinVertical(lipgloss.Left, body, lipgloss.NewStyle().Height(gap).Render(""))
			}
		}
		view = lipgloss.JoinVertical(lipgloss.Left, body, footer)
	})
	return view
}

// dateSummary is the ISO form of the current date, shown in the status bar.
func (m *Model) dateSummary() string {
	if d, ok := m.picker.Date(); ok {
		return d.String()
	}
	return "no date"
}

// terminalTooSmallView renders the message when terminal is too small
func (m *Model) terminalTooSmallView() string {
	title := "Terminal Too Small"
	currentSize := fmt.Sprintf("Current: %dx%d", m.width, m.height)
	requiredSize := fmt.Sprintf("Required: %dx%d or larger", MinTerminalWidth, MinTerminalHeight)

	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Align(lipgloss.Center, lipgloss.Center)

	content := fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\nResize your terminal to pick a date.",
		title,
		currentSize,
		requiredSize,
	)

	return style.Render(content)
}

// Message type definitions
type configChangedMsg struct {
	cfg *config.Config
}

type clearStatusMsg struct{}

type errMsg struct {
	err error
	// watching marks errors delivered by waitForConfigChange.
	watching bool
}

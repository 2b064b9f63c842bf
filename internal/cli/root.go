package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MikeBiancalana/datepick/internal/config"
	"github.com/MikeBiancalana/datepick/internal/logger"
	"github.com/MikeBiancalana/datepick/internal/perf"
	"github.com/MikeBiancalana/datepick/internal/sync"
	"github.com/MikeBiancalana/datepick/internal/tui"
	"github.com/MikeBiancalana/datepick/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"
)

// ErrCancelled is returned when the user leaves the picker without
// accepting a date.
var ErrCancelled = errors.New("cancelled")

// pickerFlags are the command line overrides applied on top of the config.
type pickerFlags struct {
	minYear  int
	maxYear  int
	format   string
	language string
	required bool
	today    bool
	noWatch  bool
	noMouse  bool
}

// App holds the CLI application state.
type App struct {
	root       *cobra.Command
	configPath string
	flags      pickerFlags
	cfg        *config.Config
	now        func() time.Time
}

// NewApp builds the command tree.
func NewApp() *App {
	a := &App{now: time.Now}

	a.root = &cobra.Command{
		Use:   "datepick",
		Short: "Pick a date in the terminal",
		Long: `datepick opens a calendar date picker in the terminal and prints the
chosen date on accept (ctrl+s). Type a date, use shortcuts such as "t",
"fri" or "+2w", or browse the calendar with the keyboard or mouse.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPicker(cmd.OutOrStdout())
		},
	}

	pf := a.root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/datepick/config.yaml)")
	pf.IntVar(&a.flags.minYear, "min-year", 0, "earliest selectable year")
	pf.IntVar(&a.flags.maxYear, "max-year", 0, "latest selectable year")
	pf.StringVar(&a.flags.format, "format", "", "date format using dd, MM and yyyy")
	pf.StringVar(&a.flags.language, "language", "", "BCP 47 language tag")
	pf.BoolVar(&a.flags.required, "required", false, "reject an empty date")

	f := a.root.Flags()
	f.BoolVar(&a.flags.today, "today", false, "start with today's date filled in")
	f.BoolVar(&a.flags.noWatch, "no-watch", false, "do not reload the config file on change")
	f.BoolVar(&a.flags.noMouse, "no-mouse", false, "disable mouse support")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.parseCmd())
	a.root.AddCommand(a.formatCmd())
	a.root.AddCommand(a.calCmd())
	a.root.AddCommand(a.promptCmd())
	a.root.AddCommand(a.configCmd())

	return a
}

// Root returns the root command.
func (a *App) Root() *cobra.Command {
	return a.root
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "datepick %s\n", Version)
		},
	}
}

// loadConfig resolves the config file and applies the persistent flags.
func (a *App) loadConfig(cmd *cobra.Command, _ []string) error {
	defer perf.Measure("config.load", logger.GetLogger(), 50*time.Millisecond)()

	if a.configPath == "" {
		a.configPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	a.cfg = cfg
	logger.Debug("config loaded", "path", a.configPath, "command", cmd.Name())
	return nil
}

// applyFlags overlays command line values on cfg. It runs again on every
// config reload so flags keep precedence over the file.
func (a *App) applyFlags(cfg *config.Config) {
	p := &cfg.Picker
	if a.flags.minYear != 0 {
		p.MinYear = a.flags.minYear
	}
	if a.flags.maxYear != 0 {
		p.MaxYear = a.flags.maxYear
	}
	if a.flags.format != "" {
		p.DateFormat = a.flags.format
	}
	if a.flags.language != "" {
		p.Language = a.flags.language
	}
	if a.flags.required {
		p.Required = true
	}
	if a.flags.today {
		p.ShowCurrentDateOnMount = true
	}
	if a.flags.noMouse {
		cfg.UI.Mouse = false
	}
	if a.flags.noWatch {
		cfg.UI.Watch = false
	}
}

// pickerOptions is the tui.OptionsFunc used by the root command.
func (a *App) pickerOptions(cfg *config.Config) components.Options {
	c := *cfg
	a.applyFlags(&c)
	opts := tui.PickerOptions(&c)
	opts.Now = a.now
	return opts
}

// runPicker runs the full screen picker and prints the accepted date.
func (a *App) runPicker(out io.Writer) error {
	if err := logger.InitializeWithConfig(logger.Config{
		Level:   logger.GetLevel().String(),
		Format:  logger.GetFormat(),
		File:    os.Getenv("DATEPICK_LOG_FILE"),
		TUIMode: true,
	}); err != nil {
		return err
	}
	defer logger.Close()

	var watcher *sync.Watcher
	if a.cfg.UI.Watch {
		w, err := sync.NewWatcher(a.configPath, a.cfg)
		if err != nil {
			logger.Warn("config watcher unavailable", "error", err)
		} else if err := w.Start(); err != nil {
			w.Stop()
			logger.Warn("config watcher unavailable", "error", err)
		} else {
			watcher = w
			defer w.Stop()
		}
	}

	model := tui.NewModel(a.cfg, a.pickerOptions, watcher)

	var opts []tea.ProgramOption
	if a.cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if a.cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running picker: %w", err)
	}
	model.Renders().LogStats(logger.GetLevel())

	res := model.Result()
	if !res.Accepted {
		return ErrCancelled
	}
	fmt.Fprintln(out, res.Text)
	return nil
}

// Execute runs the root command
func Execute() error {
	return NewApp().Root().Execute()
}

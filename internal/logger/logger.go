package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where and how log records are written.
type Config struct {
	Level  string
	Format string
	File   string

	// TUIMode forces file output: the full-screen picker owns the terminal,
	// so records on stderr would corrupt the display.
	TUIMode bool
}

var (
	mu        sync.RWMutex
	logger    *slog.Logger
	logLevel  slog.Level
	logFormat string
	logFile   string
	tuiMode   bool
	rotator   *lumberjack.Logger
	once      sync.Once
)

func init() {
	Initialize()
}

// ConfigFromEnv reads LOG_LEVEL, LOG_FORMAT, DATEPICK_DEBUG and
// DATEPICK_LOG_FILE.
func ConfigFromEnv() Config {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		if debug := os.Getenv("DATEPICK_DEBUG"); debug == "1" || debug == "true" {
			level = "DEBUG"
		}
	}
	return Config{
		Level:  level,
		Format: os.Getenv("LOG_FORMAT"),
		File:   os.Getenv("DATEPICK_LOG_FILE"),
	}
}

// Initialize configures the logger from the environment once.
func Initialize() {
	once.Do(func() {
		if err := InitializeWithConfig(ConfigFromEnv()); err != nil {
			fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		}
	})
}

// InitializeWithConfig replaces the logger. It may be called again, for
// example when the picker switches to full-screen mode.
func InitializeWithConfig(cfg Config) error {
	level := parseLevel(cfg.Level)
	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "text"
	}

	file := cfg.File
	if file == "" && cfg.TUIMode {
		path, err := defaultLogFile()
		if err != nil {
			return fmt.Errorf("TUI mode requires file-based logging: %w", err)
		}
		file = path
	}

	var out io.Writer = os.Stderr
	var rot *lumberjack.Logger
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			if cfg.TUIMode {
				return fmt.Errorf("TUI mode requires file-based logging: %w", err)
			}
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		rot = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		out = rot
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	mu.Lock()
	defer mu.Unlock()
	if rotator != nil {
		rotator.Close()
	}
	logger = slog.New(handler)
	logLevel = level
	logFormat = format
	logFile = file
	tuiMode = cfg.TUIMode
	rotator = rot
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// defaultLogFile is ~/.datepick/logs/datepick.log, honouring DATEPICK_DATA_DIR.
func defaultLogFile() (string, error) {
	dir := os.Getenv("DATEPICK_DATA_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".datepick")
	}
	return filepath.Join(dir, "logs", "datepick.log"), nil
}

// Close flushes and closes the log file, if any. It is safe to call more
// than once.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

func GetLogger() *slog.Logger {
	Initialize()
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func GetLevel() slog.Level {
	Initialize()
	mu.RLock()
	defer mu.RUnlock()
	return logLevel
}

func GetFormat() string {
	Initialize()
	mu.RLock()
	defer mu.RUnlock()
	return logFormat
}

func GetLogFile() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFile
}

func IsTUIMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return tuiMode
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

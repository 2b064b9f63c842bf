// Package config loads picker settings from defaults, a YAML or TOML file
// and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	AppName        = "datepick"
	ConfigFileName = "config.yaml"
)

// Config holds the application configuration.
type Config struct {
	Picker PickerConfig `yaml:"picker" toml:"picker"`
	UI     UIConfig     `yaml:"ui" toml:"ui"`
}

// PickerConfig mirrors the picker options that make sense in a file.
type PickerConfig struct {
	MinYear                int           `yaml:"min_year,omitempty" toml:"min_year,omitempty"`
	MaxYear                int           `yaml:"max_year,omitempty" toml:"max_year,omitempty"`
	DateFormat             string        `yaml:"date_format" toml:"date_format"`
	Language               string        `yaml:"language" toml:"language"`
	Label                  string        `yaml:"label,omitempty" toml:"label,omitempty"`
	Placeholder            string        `yaml:"placeholder,omitempty" toml:"placeholder,omitempty"`
	Icon                   string        `yaml:"icon,omitempty" toml:"icon,omitempty"`
	ErrorMessage           string        `yaml:"error_message,omitempty" toml:"error_message,omitempty"`
	ShowError              bool          `yaml:"show_error" toml:"show_error"`
	Required               bool          `yaml:"required" toml:"required"`
	ShowCurrentDateOnMount bool          `yaml:"show_current_date_on_mount" toml:"show_current_date_on_mount"`
	Shortcuts              bool          `yaml:"shortcuts" toml:"shortcuts"`
	Palette                PaletteConfig `yaml:"palette,omitempty" toml:"palette,omitempty"`
}

// PaletteConfig holds colour overrides; empty values keep the defaults.
type PaletteConfig struct {
	Accent   string `yaml:"accent,omitempty" toml:"accent,omitempty"`
	Muted    string `yaml:"muted,omitempty" toml:"muted,omitempty"`
	Error    string `yaml:"error,omitempty" toml:"error,omitempty"`
	Selected string `yaml:"selected,omitempty" toml:"selected,omitempty"`
	Today    string `yaml:"today,omitempty" toml:"today,omitempty"`
}

// UIConfig holds terminal settings.
type UIConfig struct {
	AltScreen bool `yaml:"alt_screen" toml:"alt_screen"`
	Mouse     bool `yaml:"mouse" toml:"mouse"`
	Watch     bool `yaml:"watch" toml:"watch"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Picker: PickerConfig{
			DateFormat: "dd/MM/yyyy",
			Language:   "en",
			ShowError:  true,
			Shortcuts:  true,
		},
		UI: UIConfig{
			AltScreen: true,
			Mouse:     true,
			Watch:     true,
		},
	}
}

// ConfigDir returns the directory holding the config file. It can be
// overridden with DATEPICK_CONFIG_DIR.
func ConfigDir() (string, error) {
	if dir := os.Getenv("DATEPICK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// DefaultConfigPath returns the config file used when none is given:
// DATEPICK_CONFIG if set, otherwise config.yaml (or config.toml when only
// that exists) in ConfigDir.
func DefaultConfigPath() string {
	if path := os.Getenv("DATEPICK_CONFIG"); path != "" {
		return path
	}
	dir, err := ConfigDir()
	if err != nil {
		return ConfigFileName
	}
	yamlPath := filepath.Join(dir, ConfigFileName)
	tomlPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(yamlPath); err != nil {
		if _, err := os.Stat(tomlPath); err == nil {
			return tomlPath
		}
	}
	return yamlPath
}

// DataDir returns ~/.datepick, creating it if needed. DATEPICK_DATA_DIR
// overrides the location (primarily for testing).
func DataDir() (string, error) {
	if dataDir := os.Getenv("DATEPICK_DATA_DIR"); dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return "", err
		}
		return dataDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := filepath.Join(home, "."+AppName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// LogDir returns the log directory (~/.datepick/logs/), creating it if needed.
func LogDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", err
	}
	return logDir, nil
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom starts with defaults, overlays the file at path if it exists and
// then applies environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadFromFile decodes path by extension. A missing file is not an error.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config file type %q", ext)
	}
	if err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies DATEPICK_* variables over the file values.
func applyEnvOverrides(cfg *Config) error {
	for _, ov := range []struct {
		name string
		dst  *int
	}{
		{"DATEPICK_MIN_YEAR", &cfg.Picker.MinYear},
		{"DATEPICK_MAX_YEAR", &cfg.Picker.MaxYear},
	} {
		v := os.Getenv(ov.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", ov.name, err)
		}
		*ov.dst = n
	}

	if v := os.Getenv("DATEPICK_FORMAT"); v != "" {
		cfg.Picker.DateFormat = v
	}
	if v := os.Getenv("DATEPICK_LANGUAGE"); v != "" {
		cfg.Picker.Language = v
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	p := c.Picker
	// An unset bound falls back to its default, so a lone min_year or
	// max_year can still invert the range.
	years := datemodel.ResolveYears(p.MinYear, p.MaxYear, time.Now().Year())
	if years.Min > years.Max {
		return fmt.Errorf("min_year %d is after max_year %d", years.Min, years.Max)
	}
	if p.DateFormat == "" {
		return errors.New("date_format must be set")
	}
	for _, tok := range []string{"dd", "MM", "yyyy"} {
		if !strings.Contains(p.DateFormat, tok) {
			return fmt.Errorf("date_format %q is missing %s", p.DateFormat, tok)
		}
	}
	if _, err := language.Parse(p.Language); err != nil {
		var verr language.ValueError
		if !errors.As(err, &verr) {
			return fmt.Errorf("language %q: %w", p.Language, err)
		}
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to path in the format its extension names.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := c.Marshal(filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Marshal encodes the configuration as TOML for ".toml" and YAML otherwise.
func (c *Config) Marshal(ext string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(ext, ".toml") {
		data, err = toml.Marshal(c)
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

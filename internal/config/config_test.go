package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"DATEPICK_MIN_YEAR", "DATEPICK_MAX_YEAR", "DATEPICK_FORMAT",
		"DATEPICK_LANGUAGE", "DATEPICK_CONFIG", "DATEPICK_CONFIG_DIR",
	} {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
picker:
  min_year: 1990
  max_year: 2030
  date_format: yyyy-MM-dd
  required: true
  palette:
    accent: "#ff8800"
ui:
  mouse: false
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 1990, cfg.Picker.MinYear)
	assert.Equal(t, 2030, cfg.Picker.MaxYear)
	assert.Equal(t, "yyyy-MM-dd", cfg.Picker.DateFormat)
	assert.True(t, cfg.Picker.Required)
	assert.Equal(t, "#ff8800", cfg.Picker.Palette.Accent)
	assert.False(t, cfg.UI.Mouse)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, "en", cfg.Picker.Language)
	assert.True(t, cfg.Picker.ShowError)
	assert.True(t, cfg.UI.AltScreen)
}

func TestLoadFromTOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.toml", `
[picker]
date_format = "MM-dd-yyyy"
language = "fr"

[ui]
alt_screen = false
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "MM-dd-yyyy", cfg.Picker.DateFormat)
	assert.Equal(t, "fr", cfg.Picker.Language)
	assert.False(t, cfg.UI.AltScreen)
	assert.True(t, cfg.UI.Mouse)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "picker:\n  min_year: 1990\n  date_format: dd/MM/yyyy\n")
	t.Setenv("DATEPICK_MIN_YEAR", "2000")
	t.Setenv("DATEPICK_MAX_YEAR", "2010")
	t.Setenv("DATEPICK_FORMAT", "yyyy/MM/dd")
	t.Setenv("DATEPICK_LANGUAGE", "de")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Picker.MinYear)
	assert.Equal(t, 2010, cfg.Picker.MaxYear)
	assert.Equal(t, "yyyy/MM/dd", cfg.Picker.DateFormat)
	assert.Equal(t, "de", cfg.Picker.Language)
}

func TestEnvOverrideBadNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATEPICK_MAX_YEAR", "soon")
	_, err := LoadFrom(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATEPICK_MAX_YEAR")
}

func TestLoadFromErrors(t *testing.T) {
	clearEnv(t)

	_, err := LoadFrom(writeFile(t, "config.json", "{}"))
	assert.ErrorContains(t, err, "unsupported config file type")

	_, err = LoadFrom(writeFile(t, "config.yaml", "picker: [oops"))
	assert.ErrorContains(t, err, "parsing config file")

	_, err = LoadFrom(writeFile(t, "config.yaml", "picker:\n  min_year: 2030\n  max_year: 2000\n"))
	assert.ErrorContains(t, err, "invalid config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"reversed years", func(c *Config) { c.Picker.MinYear, c.Picker.MaxYear = 2020, 2010 }, "min_year"},
		{"only min year", func(c *Config) { c.Picker.MinYear = 2020 }, ""},
		{"only min year past default max", func(c *Config) {
			c.Picker.MinYear = time.Now().Year() + datemodel.DefaultYearsForward + 1
		}, "min_year"},
		{"only max year before default min", func(c *Config) {
			c.Picker.MaxYear = time.Now().Year() - datemodel.DefaultYearsBack - 1
		}, "min_year"},
		{"empty format", func(c *Config) { c.Picker.DateFormat = "" }, "date_format must be set"},
		{"missing year token", func(c *Config) { c.Picker.DateFormat = "dd/MM/yy" }, "missing yyyy"},
		{"unknown region", func(c *Config) { c.Picker.Language = "en-EN" }, ""},
		{"malformed language", func(c *Config) { c.Picker.Language = "not a tag!" }, "language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	clearEnv(t)
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Picker.MinYear = 1950
			cfg.Picker.Palette.Today = "214"
			cfg.UI.Watch = false

			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, cfg.SaveTo(path))

			loaded, err := LoadFrom(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("DATEPICK_CONFIG_DIR", dir)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), DefaultConfigPath())

	tomlPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[picker]\n"), 0o644))
	assert.Equal(t, tomlPath, DefaultConfigPath())

	t.Setenv("DATEPICK_CONFIG", "/etc/datepick.yaml")
	assert.Equal(t, "/etc/datepick.yaml", DefaultConfigPath())
}

func TestDataDirOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv("DATEPICK_DATA_DIR", dir)

	got, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	logs, err := LogDir()
	require.NoError(t, err)
	assert.DirExists(t, logs)
}

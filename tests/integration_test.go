//go:build integration

package tests

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MikeBiancalana/datepick/internal/config"
	"github.com/MikeBiancalana/datepick/internal/datemodel"
	"github.com/MikeBiancalana/datepick/internal/sync"
	"github.com/MikeBiancalana/datepick/internal/tui"
	"github.com/MikeBiancalana/datepick/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

func TestConfigReloadReformatsDate(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(path, []byte("picker:\n  date_format: dd/MM/yyyy\n  language: en\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	w, err := sync.NewWatcher(path, cfg)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}
	defer w.Stop()

	model := tui.NewModel(cfg, nil, w)
	model.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	model.Picker().SetValue("27/01/2000")

	d, ok := model.Picker().Date()
	if !ok {
		t.Fatalf("Expected a valid date, got state %v", model.Picker().State().Kind)
	}

	if err := os.WriteFile(path, []byte("picker:\n  date_format: yyyy-MM-dd\n  language: en\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite config: %v", err)
	}

	select {
	case reloaded := <-w.Changes():
		opts := tui.PickerOptions(reloaded)
		if got := datemodel.Format(d, opts.DateFormat); got != "2000-01-27" {
			t.Errorf("Expected reformatted date, got %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for config reload")
	}
}

func TestPickerFlowWithCustomYears(t *testing.T) {
	opts := components.Options{
		MinYear: 1990,
		MaxYear: 2030,
		Now: func() time.Time {
			return time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
		},
	}

	dp := components.NewDatePicker(opts)
	dp.Init()
	dp.SetValue("15/03/1989")
	if dp.State().Kind != components.Invalid {
		t.Errorf("Expected 1989 to be out of range, got %v", dp.State().Kind)
	}

	dp.SetValue("15/03/1990")
	if dp.State().Kind != components.Valid {
		t.Errorf("Expected 1990 to be valid, got %v", dp.State().Kind)
	}
	if !dp.CalendarOpen() {
		t.Error("Expected calendar to open on valid input")
	}

	dp.Close()
	if dp.Subscribed() {
		t.Error("Expected Close to release the outside-click subscription")
	}
}

package sync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MikeBiancalana/datepick/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, content string) (*Watcher, string) {
	t.Helper()
	for _, name := range []string{"DATEPICK_MIN_YEAR", "DATEPICK_MAX_YEAR", "DATEPICK_FORMAT", "DATEPICK_LANGUAGE"} {
		t.Setenv(name, "")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	initial, err := config.LoadFrom(path)
	require.NoError(t, err)

	w, err := NewWatcher(path, initial)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	return w, path
}

func TestNewWatcher(t *testing.T) {
	initial := config.Default()
	w, err := NewWatcher("/tmp/x/../config.yaml", initial)
	require.NoError(t, err)
	defer w.Stop()

	assert.NotNil(t, w.watcher)
	assert.NotNil(t, w.Changes())
	assert.Equal(t, "/tmp/config.yaml", w.Path())
	assert.Same(t, initial, w.Current())
}

func TestWatcherDeliversReloadedConfig(t *testing.T) {
	w, path := startWatcher(t, "picker:\n  date_format: dd/MM/yyyy\n")

	require.NoError(t, os.WriteFile(path, []byte("picker:\n  date_format: yyyy-MM-dd\n"), 0o644))

	select {
	case cfg := <-w.Changes():
		require.NotNil(t, cfg)
		assert.Equal(t, "yyyy-MM-dd", cfg.Picker.DateFormat)
		assert.Same(t, cfg, w.Current())
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	w, path := startWatcher(t, "picker:\n  date_format: dd/MM/yyyy\n")

	for _, format := range []string{"MM/dd/yyyy", "yyyy/MM/dd", "dd-MM-yyyy"} {
		require.NoError(t, os.WriteFile(path, []byte("picker:\n  date_format: "+format+"\n"), 0o644))
	}

	select {
	case cfg := <-w.Changes():
		assert.Equal(t, "dd-MM-yyyy", cfg.Picker.DateFormat)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}

	select {
	case cfg := <-w.Changes():
		t.Fatalf("expected a single reload, got another: %+v", cfg.Picker)
	case <-time.After(5 * debounceDelay):
	}
}

func TestWatcherKeepsPreviousConfigOnError(t *testing.T) {
	w, path := startWatcher(t, "picker:\n  date_format: yyyy-MM-dd\n")
	before := w.Current()

	require.NoError(t, os.WriteFile(path, []byte("picker:\n  date_format: nope\n"), 0o644))

	select {
	case err := <-w.Errors():
		assert.ErrorContains(t, err, "date_format")
	case cfg := <-w.Changes():
		t.Fatalf("invalid config should not be published: %+v", cfg.Picker)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}
	assert.Same(t, before, w.Current())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	w, path := startWatcher(t, "picker:\n  date_format: yyyy-MM-dd\n")

	other := filepath.Join(filepath.Dir(path), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("hello"), 0o644))

	select {
	case <-w.Changes():
		t.Fatal("unrelated file should not trigger a reload")
	case <-time.After(5 * debounceDelay):
	}
}

func TestWatcherStopClosesChanges(t *testing.T) {
	w, _ := startWatcher(t, "")
	w.Stop()
	w.Stop()

	_, ok := <-w.Changes()
	assert.False(t, ok)
	_, ok = <-w.Errors()
	assert.False(t, ok)
}

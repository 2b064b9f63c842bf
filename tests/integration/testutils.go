package integration

import (
	"os"
	"path/filepath"
	"testing"
)

// TestTempDir creates a temporary directory for integration tests
func TestTempDir(t *testing.T) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "datepick-integration-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	// Clean up temp dir after test
	t.Cleanup(func() {
		os.RemoveAll(tempDir)
	})

	return tempDir
}

// SetupTestEnvironment creates the config and data directories used by the
// binary and returns them.
func SetupTestEnvironment(t *testing.T) (string, string) {
	t.Helper()

	tempDir := TestTempDir(t)

	configDir := filepath.Join(tempDir, "config")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	dataDir := filepath.Join(tempDir, ".datepick")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}

	return configDir, dataDir
}

// WriteConfigFile writes a config file with the given content into dir.
func WriteConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create config directory: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	return path
}

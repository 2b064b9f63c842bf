package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestCLI runs CLI commands and returns output for testing
type TestCLI struct {
	t         *testing.T
	tempDir   string
	configDir string
	binPath   string
	env       []string
}

// NewTestCLI creates a new test CLI instance
func NewTestCLI(t *testing.T) *TestCLI {
	t.Helper()

	tempDir := TestTempDir(t)
	configDir, dataDir := SetupTestEnvironment(t)

	// Build the binary for testing
	binPath := filepath.Join(tempDir, "datepick")
	cmd := exec.Command("go", "build", "-o", binPath, "../../cmd/datepick")
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build test binary: %v", err)
	}

	env := []string{
		fmt.Sprintf("DATEPICK_CONFIG_DIR=%s", configDir),
		fmt.Sprintf("DATEPICK_DATA_DIR=%s", dataDir),
		"DATEPICK_CONFIG=",
		"DATEPICK_FORMAT=",
		"DATEPICK_MIN_YEAR=",
		"DATEPICK_MAX_YEAR=",
		"DATEPICK_LANGUAGE=",
		"HOME=" + tempDir, // Prevent reading from actual home directory
	}

	return &TestCLI{
		t:         t,
		tempDir:   tempDir,
		configDir: configDir,
		binPath:   binPath,
		env:       env,
	}
}

// Run executes a CLI command with given arguments
func (tc *TestCLI) Run(args ...string) (stdout, stderr string, err error) {
	tc.t.Helper()

	cmd := exec.Command(tc.binPath, args...)
	cmd.Env = append(os.Environ(), tc.env...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err = cmd.Run()

	return stdoutBuf.String(), stderrBuf.String(), err
}

// RunExpectSuccess runs a command and expects it to succeed
func (tc *TestCLI) RunExpectSuccess(args ...string) string {
	tc.t.Helper()

	stdout, stderr, err := tc.Run(args...)
	if err != nil {
		tc.t.Logf("Command failed: %s %v", strings.Join(args, " "), err)
		tc.t.Logf("STDOUT: %s", stdout)
		tc.t.Logf("STDERR: %s", stderr)
		tc.t.Fatalf("Expected command to succeed, but it failed")
	}

	return stdout
}

// RunExpectFailure runs a command and expects it to fail
func (tc *TestCLI) RunExpectFailure(args ...string) (stdout, stderr string) {
	tc.t.Helper()

	stdout, stderr, err := tc.Run(args...)
	if err == nil {
		tc.t.Logf("STDOUT: %s", stdout)
		tc.t.Fatalf("Expected command to fail, but it succeeded")
	}

	return stdout, stderr
}

// TestCLI_Parse tests the parse command against the picker's validation
func TestCLI_Parse(t *testing.T) {
	cli := NewTestCLI(t)

	output := cli.RunExpectSuccess("parse", "15/03/2024")
	if output != "2024-03-15\n" {
		t.Errorf("Expected 2024-03-15, got %q", output)
	}

	stdout, stderr := cli.RunExpectFailure("parse", "39/09/2020")
	if stdout != "Invalid date format\n" {
		t.Errorf("Expected the picker error message, got %q", stdout)
	}
	if stderr != "" {
		t.Errorf("Expected no error output for an invalid date, got %q", stderr)
	}
}

// TestCLI_ParseToday tests that shortcuts resolve against the real clock
func TestCLI_ParseToday(t *testing.T) {
	cli := NewTestCLI(t)

	output := cli.RunExpectSuccess("parse", "today")
	today := time.Now().Format("2006-01-02")
	if strings.TrimSpace(output) != today {
		t.Errorf("Expected %s, got %q", today, output)
	}
}

// TestCLI_ConfigFile tests that the config file and env overrides apply
func TestCLI_ConfigFile(t *testing.T) {
	cli := NewTestCLI(t)

	WriteConfigFile(t, cli.configDir, "config.yaml", `picker:
  date_format: yyyy/MM/dd
  language: en
  show_error: true
  error_message: Try yyyy/MM/dd
`)

	output := cli.RunExpectSuccess("format", "2024-03-15")
	if output != "2024/03/15\n" {
		t.Errorf("Expected the file format, got %q", output)
	}

	stdout, _ := cli.RunExpectFailure("parse", "15/03/2024")
	if stdout != "Try yyyy/MM/dd\n" {
		t.Errorf("Expected the configured error message, got %q", stdout)
	}

	cli.env = append(cli.env, "DATEPICK_FORMAT=dd-MM-yyyy")
	output = cli.RunExpectSuccess("format", "2024-03-15")
	if output != "15-03-2024\n" {
		t.Errorf("Expected the env format to win, got %q", output)
	}
}

// TestCLI_ConfigInit tests creating and showing the config file
func TestCLI_ConfigInit(t *testing.T) {
	cli := NewTestCLI(t)

	output := cli.RunExpectSuccess("config", "init")
	if !strings.Contains(output, "Created") {
		t.Errorf("Expected a confirmation, got %q", output)
	}
	if _, err := os.Stat(filepath.Join(cli.configDir, "config.yaml")); err != nil {
		t.Errorf("Expected config file to exist: %v", err)
	}

	output = cli.RunExpectSuccess("config", "show")
	if !strings.Contains(output, "date_format: dd/MM/yyyy") {
		t.Errorf("Expected default format in output, got %q", output)
	}
}

// TestCLI_InvalidConfig tests that a broken config file is reported
func TestCLI_InvalidConfig(t *testing.T) {
	cli := NewTestCLI(t)

	WriteConfigFile(t, cli.configDir, "config.yaml", "picker:\n  min_year: 2030\n  max_year: 2000\n")

	_, stderr := cli.RunExpectFailure("parse", "15/03/2024")
	if !strings.Contains(stderr, "min_year 2030 is after max_year 2000") {
		t.Errorf("Expected a validation error, got %q", stderr)
	}
}

// TestCLI_Cal tests the calendar output
func TestCLI_Cal(t *testing.T) {
	cli := NewTestCLI(t)

	output := cli.RunExpectSuccess("cal", "--color", "never", "1", "2024")
	if !strings.Contains(output, "January 2024") {
		t.Errorf("Expected month title, got %q", output)
	}
	if !strings.Contains(output, "    1  2  3  4  5  6\n") {
		t.Errorf("Expected Jan 1 2024 in the Monday column, got %q", output)
	}
}

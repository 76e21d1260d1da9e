package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command in-process with captured output.
// configPath may be empty, in which case a nonexistent temp path keeps the
// run on defaults regardless of the host environment.
func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	if configPath == "" {
		configPath = filepath.Join(t.TempDir(), "absent.toml")
	}

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTestConfig creates a config file enabling the catalog on a temp
// database and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.db")
	configPath := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[catalog]\nenabled = true\npath = %q\n", catalogPath)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output missing %q:\n%s", needle, haystack)
	}
}

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// setConfigFile sets the package-level configFile for the duration of the test.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// setupSQLiteConfigFile creates a config file using the sqlite storage driver under tmpDir.
func setupSQLiteConfigFile(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	content := fmt.Sprintf("storage:\n  driver: sqlite\n  sqlite_path: %s\n", filepath.Join(tmpDir, "db", "spacetimes.db"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath
}

// executeCommand runs command with args and stdin, and returns what it wrote to stdout.
func executeCommand(t *testing.T, command *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	command.SetArgs(args)
	command.SetIn(strings.NewReader(stdin))
	command.SetOut(&stdout)
	command.SetErr(&bytes.Buffer{})
	err := command.Execute()
	return stdout.String(), err
}

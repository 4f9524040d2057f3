package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// testHome points the batchkit home at a fresh directory for one test.
func testHome(t *testing.T) string {
	t.Helper()
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("BATCHKIT_HOME", home)
	return home
}

// executeCommand runs the root command with args and returns what it wrote
// to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeCommandWithInput(t, "", args...)
}

func executeCommandWithInput(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand()

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(bytes.NewBufferString(input))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// makeFiles creates empty files under a new directory and returns it.
func makeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "in")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("data"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
	return dir
}

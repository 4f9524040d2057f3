package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetCommands(t *testing.T) {
	testHome(t)

	stdout, _, err := executeCommand(t, "preset", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No presets saved.")

	doc := filepath.Join(t.TempDir(), "tidy.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("rename:\n  - type: replace\n    from: \" \"\n    to: \"_\"\n"), 0644))

	stdout, _, err = executeCommand(t, "preset", "save", "tidy", doc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved preset tidy (pattern)")

	stdout, _, err = executeCommandWithInput(t, "sequence:\n  type: number\n  template: \"n{n}\"\n", "preset", "save", "numbers", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved preset numbers (sequence)")

	stdout, _, err = executeCommand(t, "preset", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "tidy")
	assert.Contains(t, stdout, "numbers")

	stdout, _, err = executeCommand(t, "preset", "list", "--kind", "sequence")
	require.NoError(t, err)
	assert.Contains(t, stdout, "numbers")
	assert.NotContains(t, stdout, "tidy")

	stdout, _, err = executeCommand(t, "preset", "show", "tidy")
	require.NoError(t, err)
	assert.Contains(t, stdout, "type: replace")
	assert.Contains(t, stdout, "# used 0 time(s)")

	stdout, _, err = executeCommandWithInput(t, "n\n", "preset", "delete", "tidy")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Operation cancelled.")

	stdout, _, err = executeCommand(t, "preset", "delete", "tidy", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted preset tidy.")

	_, _, err = executeCommand(t, "preset", "show", "tidy")
	assert.Error(t, err)
}

func TestPresetSave_InvalidDocument(t *testing.T) {
	testHome(t)

	_, _, err := executeCommandWithInput(t, "{}\n", "preset", "save", "empty", "-")
	assert.Error(t, err)

	_, _, err = executeCommandWithInput(t, "rename:\n  - type: add-prefix\n    prefix: x\n", "preset", "save", "bad name!", "-")
	assert.Error(t, err)
}

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/batchkit/internal/models"
)

func TestImportCommand_CSV(t *testing.T) {
	testHome(t)
	dir := makeFiles(t, "a.jpg", "b.jpg", "c.jpg")

	list := filepath.Join(t.TempDir(), "names.csv")
	csv := "id,New name\n1,beach\n2,\n3,sunset.jpeg\n"
	require.NoError(t, os.WriteFile(list, []byte(csv), 0644))

	stdout, _, err := executeCommand(t, "import", "--column", "New name", "-f", "json", list, dir)
	require.NoError(t, err)

	p := decodePlan(t, stdout)
	assert.Equal(t, models.KindList, p.Batch.Kind)
	assert.Equal(t, map[string]string{
		"a.jpg": "beach.jpg",
		"b.jpg": "b.jpg",
		"c.jpg": "sunset.jpeg",
	}, targets(p))
	assert.Equal(t, 1, p.Summary.Unchanged)
}

func TestImportCommand_Errors(t *testing.T) {
	testHome(t)
	dir := makeFiles(t, "a.jpg")

	list := filepath.Join(t.TempDir(), "names.csv")
	require.NoError(t, os.WriteFile(list, []byte("name\nx\n"), 0644))

	_, _, err := executeCommand(t, "import", "--column", "missing", list, dir)
	assert.Error(t, err, "unknown column")

	txt := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x\n"), 0644))
	_, _, err = executeCommand(t, "import", txt, dir)
	assert.Error(t, err, "unsupported list file")

	_, _, err = executeCommand(t, "import", list)
	assert.Error(t, err, "inputs are required")
}

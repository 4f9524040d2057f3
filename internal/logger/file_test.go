package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/batchkit/internal/models"
)

func TestFileLogger_CreatesRunLogAndSymlink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	fl, err := NewFileLogger(dir)
	require.NoError(t, err)
	defer fl.Close()

	assert.FileExists(t, fl.Path())
	assert.Regexp(t, `run-\d{8}-\d{6}\.log$`, fl.Path())

	target, err := os.Readlink(filepath.Join(dir, "latest.log"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(fl.Path()), target)
}

func TestFileLogger_ReplacesSymlink(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.log"), nil, 0644))
	require.NoError(t, os.Symlink("stale.log", filepath.Join(dir, "latest.log")))

	fl, err := NewFileLogger(dir)
	require.NoError(t, err)
	defer fl.Close()

	target, err := os.Readlink(filepath.Join(dir, "latest.log"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(fl.Path()), target)
}

func TestFileLogger_WritesBatchEvents(t *testing.T) {
	dir := t.TempDir()
	fl, err := NewFileLoggerWithLevel(dir, "debug")
	require.NoError(t, err)

	fl.LogTrace("hidden")
	fl.LogBatch(sampleBatch())
	fl.LogPlanSummary(&models.Plan{
		Items: []models.PlanItem{
			{Row: models.Row{Original: "a.txt"}, Status: models.StatusOK},
			{Row: models.Row{Original: "b.txt"}, Status: models.StatusInvalid, Note: "invalid pattern"},
		},
		Summary: models.PlanSummary{Total: 2, OK: 1, Invalid: 1},
	})
	fl.LogExecution(&models.ExecutionResult{BatchID: "b-1", Renamed: 1, Skipped: 1})
	require.NoError(t, fl.Close())

	data, err := os.ReadFile(fl.Path())
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "=== batchkit run started at")
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[DEBUG]   a.txt -> x_a.txt")
	assert.Contains(t, out, "[INFO] Plan: 2 total, 1 to rename")
	assert.Contains(t, out, "[WARN]   b.txt: invalid (invalid pattern)")
	assert.NotContains(t, out, "a.txt: ok")
	assert.Contains(t, out, "Batch b-1 handed off: 1 renamed, 1 skipped")
	assert.Contains(t, out, "=== batchkit run finished at")
}

func TestFileLogger_CloseTwice(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, fl.Close())
	assert.NoError(t, fl.Close())
	assert.NotPanics(t, func() { fl.LogInfo("after close") })
}

func TestFileLogger_BadDir(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := NewFileLogger(filepath.Join(blocker, "logs"))
	assert.Error(t, err)
}

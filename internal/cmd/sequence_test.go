package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/batchkit/internal/models"
)

func TestSequenceCommand_Number(t *testing.T) {
	testHome(t)
	dir := makeFiles(t, "img2.jpg", "img10.jpg", "img1.jpg")

	stdout, _, err := executeCommand(t, "sequence", "-t", "photo_{n}", "--digits", "3", "--keep-ext", "-f", "json", dir)
	require.NoError(t, err)

	p := decodePlan(t, stdout)
	assert.Equal(t, models.KindSequence, p.Batch.Kind)
	require.Len(t, p.Items, 3)
	// natural order: img1, img2, img10
	assert.Equal(t, "photo_001.jpg", p.Items[0].Target)
	assert.Equal(t, "img1.jpg", p.Items[0].Original)
	assert.Equal(t, "photo_003.jpg", p.Items[2].Target)
	assert.Equal(t, "img10.jpg", p.Items[2].Original)
}

func TestSequenceCommand_LenientNumbers(t *testing.T) {
	testHome(t)
	dir := makeFiles(t, "a.txt", "b.txt")

	stdout, _, err := executeCommand(t, "sequence", "--scheme", "custom", "-t", "{name}-{n}{ext}", "--start", "10px", "--step", "abc", "-f", "json", dir)
	require.NoError(t, err)

	m := targets(decodePlan(t, stdout))
	assert.Equal(t, "a-10.txt", m["a.txt"])
	assert.Equal(t, "b-11.txt", m["b.txt"])
}

func TestSequenceCommand_Date(t *testing.T) {
	testHome(t)
	dir := makeFiles(t, "scan.pdf")

	stdout, _, err := executeCommand(t, "sequence", "--scheme", "date", "-t", "scan_{date}", "--date-pattern", "yyyyMMdd", "--keep-ext", "-f", "json", dir)
	require.NoError(t, err)

	p := decodePlan(t, stdout)
	want := "scan_" + p.Batch.At.Format("20060102") + ".pdf"
	assert.Equal(t, want, p.Items[0].Target)
	assert.WithinDuration(t, time.Now(), p.Batch.At, time.Minute)
}

func TestSequenceCommand_DateSteps(t *testing.T) {
	testHome(t)
	dir := makeFiles(t, "a.md", "b.md", "c.md")

	stdout, _, err := executeCommand(t, "sequence", "--scheme", "date", "-t", "day_{date}", "--date-pattern", "yyyy-MM-dd",
		"--start-date", "2024-02-28", "--days-step", "1", "--keep-ext", "-f", "json", dir)
	require.NoError(t, err)

	m := targets(decodePlan(t, stdout))
	assert.Equal(t, "day_2024-02-28.md", m["a.md"])
	assert.Equal(t, "day_2024-02-29.md", m["b.md"])
	assert.Equal(t, "day_2024-03-01.md", m["c.md"])
}

func TestSequenceCommand_Errors(t *testing.T) {
	testHome(t)
	dir := makeFiles(t, "a.txt")

	tests := []struct {
		name string
		args []string
	}{
		{"missing template", []string{"sequence", dir}},
		{"unknown scheme", []string{"sequence", "--scheme", "roman", "-t", "x{n}", dir}},
		{"bad date pattern", []string{"sequence", "--scheme", "date", "-t", "{date}", "--date-pattern", "dd/MM", dir}},
		{"bad start date", []string{"sequence", "--scheme", "date", "-t", "{date}", "--start-date", "28.02.2024", dir}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestSequenceCommand_ConfigDefaults(t *testing.T) {
	home := testHome(t)
	require.NoError(t, os.MkdirAll(home, 0755))
	cfg := "sequence:\n  digits: 4\n  keep_extension: true\noutput:\n  format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(cfg), 0644))

	dir := makeFiles(t, "a.txt")
	stdout, _, err := executeCommand(t, "sequence", "-t", "doc{n}", dir)
	require.NoError(t, err)
	assert.Equal(t, "doc0001.txt", targets(decodePlan(t, stdout))["a.txt"])
}

func TestSequenceCommand_ListPreset(t *testing.T) {
	testHome(t)
	dir := makeFiles(t, "1.png", "2.png", "3.png")

	_, _, err := executeCommand(t, "sequence", "--scheme", "list", "-t", "team-{s}", "--item", "red", "--item", "blue", "--keep-ext", "--save-preset", "teams", "-f", "json", dir)
	require.NoError(t, err)

	stdout, _, err := executeCommand(t, "sequence", "--preset", "teams", "-f", "json", dir)
	require.NoError(t, err)

	p := decodePlan(t, stdout)
	assert.Equal(t, "team-red.png", p.Items[0].Proposed)
	assert.Equal(t, "team-blue.png", p.Items[1].Target)
	assert.Equal(t, "team-red.png", p.Items[2].Proposed)
	// the cycle repeats team-red.png, so both claimants are skipped
	assert.Equal(t, models.StatusDuplicate, p.Items[0].Status)
	assert.Equal(t, models.StatusDuplicate, p.Items[2].Status)
}

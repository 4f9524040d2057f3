package listimport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/harrison/batchkit/internal/models"
)

func writeWorkbook(t *testing.T, sheet string, cells map[string]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		idx, err := f.NewSheet(sheet)
		require.NoError(t, err)
		f.SetActiveSheet(idx)
	}
	for ref, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, ref, v))
	}
	path := filepath.Join(t.TempDir(), "names.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadNames_XLSX(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", map[string]string{
		"A1": "old", "B1": "new",
		"A2": "a.jpg", "B2": " beach ",
		"A3": "b.jpg", "B3": "",
		"A4": "c.jpg", "B4": "sunset.png",
	})

	names, err := ReadNames(path, Options{Column: "new"})
	require.NoError(t, err)
	assert.Equal(t, []string{"beach", "", "sunset.png"}, names)

	first, err := ReadNames(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, first)
}

func TestReadNames_XLSXActiveAndNamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Names", map[string]string{"A1": "name", "A2": "x"})

	names, err := ReadNames(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, names)

	_, err = ReadNames(path, Options{Sheet: "Missing"})
	assert.Error(t, err)
}

func TestReadNames_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.csv")
	content := "\ufeffid,new name\n1,alpha\n2\n3, gamma.txt\n,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	names, err := ReadNames(path, Options{Column: "new name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "", "gamma.txt"}, names)

	ids, err := ReadNames(path, Options{Column: "id"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestReadNames_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadNames(filepath.Join(dir, "names.txt"), Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	csvPath := filepath.Join(dir, "names.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0644))
	_, err = ReadNames(csvPath, Options{Column: "c"})
	assert.ErrorIs(t, err, ErrColumnNotFound)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = ReadNames(empty, Options{})
	assert.ErrorContains(t, err, "no header row")

	_, err = ReadNames(filepath.Join(dir, "missing.xlsx"), Options{})
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	rows := Apply(
		[]string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"},
		[]string{"beach", "", "sunset.png"},
	)

	require.Len(t, rows, 4)
	assert.Equal(t, models.Row{Original: "a.jpg", Proposed: "beach.jpg", Valid: true}, rows[0])
	assert.Equal(t, "b.jpg", rows[1].Proposed)
	assert.Equal(t, "sunset.png", rows[2].Proposed)
	assert.Equal(t, "d.jpg", rows[3].Proposed)
	for _, r := range rows {
		assert.True(t, r.Valid)
	}
}

func TestApply_NoExtensionOnOriginal(t *testing.T) {
	rows := Apply([]string{"README"}, []string{"readme"})
	assert.Equal(t, "readme", rows[0].Proposed)
}

func TestEngine(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", map[string]string{"A1": "new", "A2": "one", "A3": "two"})

	e, err := NewEngine(path, Options{Column: "new"})
	require.NoError(t, err)
	assert.Equal(t, models.KindList, e.Kind())
	assert.Equal(t, `names from names.xlsx column "new" (2 entries)`, e.Describe())

	rows := e.Run([]string{"x.txt", "y.txt", "z.txt"}, time.Time{})
	assert.Equal(t, []string{"one.txt", "two.txt", "z.txt"}, []string{rows[0].Proposed, rows[1].Proposed, rows[2].Proposed})
}

package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/harrison/batchkit/internal/apiclient"
)

// makeWorkbooks writes workbooks holding one sheet named sheet.
func makeWorkbooks(t *testing.T, sheet string, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, n := range names {
		f := excelize.NewFile()
		if sheet != "Sheet1" {
			require.NoError(t, f.SetSheetName("Sheet1", sheet))
		}
		require.NoError(t, f.SetCellValue(sheet, "A1", "2023"))
		paths[i] = filepath.Join(dir, n)
		require.NoError(t, f.SaveAs(paths[i]))
		require.NoError(t, f.Close())
	}
	return paths
}

func TestExcelFindReplace_Single(t *testing.T) {
	testHome(t)
	srv := documentService(t)
	books := makeWorkbooks(t, "Data", "budget.xlsx")
	out := filepath.Join(t.TempDir(), "out.xlsx")

	stdout, _, err := executeCommand(t, "excel", "find-replace", "--api-url", srv.URL,
		"--find", "2023", "--replace", "2024", "--sheet-range", "Data!A1:C10", "-o", out, books[0])
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "xlsx|2023->2024|[Data!A1:C10]", string(data))
}

func TestExcelFindReplace_Batch(t *testing.T) {
	testHome(t)
	srv := documentService(t)
	books := makeWorkbooks(t, "Data", "a.xlsx", "b.xlsx")
	out := filepath.Join(t.TempDir(), "out.zip")

	_, _, err := executeCommand(t, "excel", "find-replace", "--api-url", srv.URL,
		"--find", "a", "--replace", "b", "--sheet-range", "Data", "-o", out, books[0], books[1])
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "xzip:2:"))

	var req apiclient.FindReplaceRequest
	require.NoError(t, json.Unmarshal(data[len("xzip:2:"):], &req))
	assert.Equal(t, "Data", req.SheetRange)
	assert.Equal(t, []apiclient.Replacement{{FindText: "a", ReplaceText: "b"}}, req.Replacements)
}

func TestExcelFindReplace_SheetRangeChecked(t *testing.T) {
	testHome(t)
	srv := documentService(t)
	books := makeWorkbooks(t, "Data", "a.xlsx")

	tests := []struct {
		name       string
		sheetRange string
		wantErr    string
	}{
		{"missing sheet", "Summary!A1", `has no sheet "Summary"`},
		{"bad cell", "Data!A1:ZZZZ0", "invalid cell range"},
		{"no sheet name", "!A1", "must name a sheet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, "excel", "find-replace", "--api-url", srv.URL,
				"--find", "a", "--replace", "b", "--sheet-range", tt.sheetRange, books[0])
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExcelFindReplace_RejectsOtherFiles(t *testing.T) {
	testHome(t)
	srv := documentService(t)
	docs := makeDocs(t, "a.docx")

	_, _, err := executeCommand(t, "excel", "find-replace", "--api-url", srv.URL, "--find", "a", "--replace", "b", docs[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a .xlsx or .xlsm file")
}

func TestExcelMerge(t *testing.T) {
	testHome(t)
	srv := documentService(t)
	books := makeWorkbooks(t, "Sheet1", "1.xlsx", "2.xlsx")
	out := filepath.Join(t.TempDir(), "merged.xlsx")

	_, _, err := executeCommand(t, "excel", "merge", "--api-url", srv.URL, "--type", "sheets", "--remove-duplicates", "-o", out, books[0], books[1])
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "xmerged:2:sheets:true", string(data))

	_, _, err = executeCommand(t, "excel", "merge", "--api-url", srv.URL, "--type", "diagonal", "-o", out, books[0], books[1])
	assert.ErrorContains(t, err, "unknown merge type")
}

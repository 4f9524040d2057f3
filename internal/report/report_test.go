package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/harrison/batchkit/internal/models"
	"github.com/harrison/batchkit/internal/plan"
)

func samplePlan() *models.Plan {
	return plan.Build(&models.Batch{
		ID:          "0f8fad5b-d9cb-469f-a165-70867728950e",
		Kind:        models.KindPattern,
		Description: `replace "a" with "b"`,
		At:          time.Date(2024, 3, 7, 9, 5, 30, 0, time.UTC),
		Rows: []models.Row{
			{Original: "a.txt", Proposed: "b.txt", Valid: true},
			{Original: "keep.txt", Proposed: "keep.txt", Valid: true},
			{Original: "x|y.txt", Proposed: "<invalid pattern>", Reason: "invalid pattern: missing )"},
			{Original: "报告.docx", Proposed: "报告_v1.docx", Valid: true},
		},
	}, plan.Options{})
}

func TestValidFormat(t *testing.T) {
	for _, f := range Formats {
		assert.True(t, ValidFormat(f), f)
	}
	assert.False(t, ValidFormat("csv"))
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, samplePlan(), FormatTable, Options{}))
	out := buf.String()

	assert.Contains(t, out, "pattern batch 0f8fad5b: replace \"a\" with \"b\"")
	assert.Contains(t, out, "ORIGINAL")
	assert.Contains(t, out, "<invalid pattern>")
	assert.Contains(t, out, "4 file(s): 2 to rename, 1 unchanged, 1 invalid, 0 duplicate")
	assert.NotContains(t, out, "\x1b[")

	// "#" (1) + gutter + ORIGINAL (9, the width of "报告.docx") + gutter
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 8)
	for k, target := range []string{"b.txt", "keep.txt", "<invalid pattern>", "报告_v1.docx"} {
		line := lines[4+k]
		i := strings.LastIndex(line, target)
		require.GreaterOrEqual(t, i, 0, line)
		assert.Equal(t, 14, displayWidth(line[:i]), target)
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, samplePlan(), FormatJSON, Options{}))

	var decoded struct {
		Items []struct {
			Original string `json:"original"`
			Target   string `json:"target"`
			Status   string `json:"status"`
		} `json:"items"`
		Summary models.PlanSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Items, 4)
	assert.Equal(t, "b.txt", decoded.Items[0].Target)
	assert.Equal(t, models.StatusInvalid, decoded.Items[2].Status)
	assert.Equal(t, 2, decoded.Summary.OK)
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, samplePlan(), FormatYAML, Options{}))

	var decoded models.Plan
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Items, 4)
	assert.Equal(t, "a.txt", decoded.Items[0].Original)
	assert.Equal(t, "b.txt", decoded.Items[0].Target)
	assert.Equal(t, models.KindPattern, decoded.Batch.Kind)
}

func TestRender_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, samplePlan(), FormatMarkdown, Options{}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Rename preview\n"))
	assert.Contains(t, out, "| 1 | a.txt | b.txt | ok |  |")
	assert.Contains(t, out, `| 3 | x\|y.txt | \<invalid pattern\> | invalid |`)
}

func TestRender_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, samplePlan(), FormatHTML, Options{}))
	out := buf.String()

	assert.Contains(t, out, "<title>Rename preview 0f8fad5b</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>x|y.txt</td>")
	assert.Contains(t, out, "&lt;invalid pattern&gt;")
	assert.Contains(t, out, "报告_v1.docx")
	assert.NotContains(t, out, "raw HTML omitted")
}

func TestRender_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Render(&buf, samplePlan(), "csv", Options{}), ErrUnknownFormat)
	assert.Error(t, Render(&buf, nil, FormatJSON, Options{}))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `a\_b\*c\|d.txt`, escapeMarkdown("a_b*c|d.txt"))
	assert.Equal(t, "plain.txt", escapeMarkdown("plain.txt"))
}

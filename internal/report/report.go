// Package report renders reviewed plans for people and for other tools.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/harrison/batchkit/internal/models"
)

// Output formats
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatTable, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// ErrUnknownFormat is returned for formats not in Formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Options tunes rendering.
type Options struct {
	Color bool // Colour statuses in table output
}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Render writes p to w in the given format.
func Render(w io.Writer, p *models.Plan, format string, opts Options) error {
	if p == nil || p.Batch == nil {
		return errors.New("plan cannot be nil")
	}
	switch format {
	case FormatTable, "":
		return renderTable(w, p, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(p))
		return err
	case FormatHTML:
		return renderHTML(w, p)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func renderTable(w io.Writer, p *models.Plan, opts Options) error {
	t := &Table{Headers: []string{"#", "ORIGINAL", "NEW NAME", "STATUS", "NOTE"}}
	for i, it := range p.Items {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), it.Original, displayTarget(it), it.Status, it.Note})
	}
	if opts.Color {
		t.Style = func(col int, cell, padded string) string {
			if col != 3 {
				return padded
			}
			if c := statusColor(cell); c != nil {
				return c.Sprint(padded)
			}
			return padded
		}
	}

	fmt.Fprintf(w, "%s batch %s: %s\n\n", p.Batch.Kind, shortID(p.Batch.ID), p.Batch.Description)
	if err := t.Write(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", summaryText(p.Summary))
	return err
}

func statusColor(status string) *color.Color {
	switch status {
	case models.StatusOK:
		return color.New(color.FgGreen)
	case models.StatusUnchanged:
		return color.New(color.FgHiBlack)
	case models.StatusInvalid:
		return color.New(color.FgRed)
	case models.StatusDuplicate:
		return color.New(color.FgYellow)
	}
	return nil
}

// displayTarget shows the engine's proposal for rows that will not be
// renamed, so the reader sees what was rejected.
func displayTarget(it models.PlanItem) string {
	if it.Status == models.StatusOK {
		return it.Target
	}
	return it.Proposed
}

func summaryText(s models.PlanSummary) string {
	return fmt.Sprintf("%d file(s): %d to rename, %d unchanged, %d invalid, %d duplicate",
		s.Total, s.OK, s.Unchanged, s.Invalid, s.Duplicate)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Markdown renders p as a GitHub flavoured markdown document.
func Markdown(p *models.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Rename preview\n\n")
	fmt.Fprintf(&b, "- Batch: `%s`\n", p.Batch.ID)
	fmt.Fprintf(&b, "- Engine: %s\n", p.Batch.Kind)
	fmt.Fprintf(&b, "- Configuration: %s\n", escapeMarkdown(p.Batch.Description))
	fmt.Fprintf(&b, "- Generated: %s\n\n", p.Batch.At.Format("2006-01-02 15:04:05"))

	b.WriteString("| # | Original | New name | Status | Note |\n")
	b.WriteString("|---:|---|---|---|---|\n")
	for i, it := range p.Items {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			i+1, escapeMarkdown(it.Original), escapeMarkdown(displayTarget(it)), it.Status, escapeMarkdown(it.Note))
	}
	fmt.Fprintf(&b, "\n%s\n", summaryText(p.Summary))
	return b.String()
}

// escapeMarkdown backslash-escapes the punctuation that file names may
// contain and that markdown would otherwise interpret.
func escapeMarkdown(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune("\\`*_[]<>|~&", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Rename preview %s</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
</style>
</head>
<body>
`

func renderHTML(w io.Writer, p *models.Plan) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(p)), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	if _, err := fmt.Fprintf(w, htmlHead, shortID(p.Batch.ID)); err != nil {
		return err
	}
	if _, err := body.WriteTo(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

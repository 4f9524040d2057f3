package display

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
)

// ProgressIndicator prints one line per step of a multi-file operation.
type ProgressIndicator struct {
	writer     io.Writer
	label      string
	totalFiles int
	current    int
}

// NewProgressIndicator creates a new progress indicator. The label names the
// operation ("Uploading documents").
func NewProgressIndicator(w io.Writer, label string, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:     w,
		label:      label,
		totalFiles: total,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "%s:\n", p.label)
}

// Step displays progress for current item: [N/Total] filename (cyan)
func (p *ProgressIndicator) Step(filename string) {
	p.current++
	color.New(color.FgCyan).Fprintf(p.writer, "  [%d/%d] %s\n", p.current, p.totalFiles, filepath.Base(filename))
}

// Complete displays a success line with a green checkmark.
func (p *ProgressIndicator) Complete(summary string) {
	color.New(color.FgGreen).Fprint(p.writer, "✓")
	fmt.Fprintf(p.writer, " %s\n", summary)
}

// DisplaySingleFile shows simple message for a single file operation
func DisplaySingleFile(w io.Writer, verb, filename string) {
	fmt.Fprintf(w, "%s %s...\n", verb, filepath.Base(filename))
}

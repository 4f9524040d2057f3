package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/batchkit/internal/models"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	yellow := color.New(color.FgYellow)
	yellow.Fprint(out, b.String())
}

// PlanWarnings builds one warning per problem class found in a plan:
// rows that cannot be renamed and rows that collide on a target name.
// A clean plan yields no warnings.
func PlanWarnings(p *models.Plan) []Warning {
	var invalid, duplicate []string
	for _, it := range p.Items {
		switch it.Status {
		case models.StatusInvalid:
			invalid = append(invalid, describeItem(it))
		case models.StatusDuplicate:
			duplicate = append(duplicate, describeItem(it))
		}
	}

	var out []Warning
	if len(invalid) > 0 {
		out = append(out, Warning{
			Title:      fmt.Sprintf("%d file(s) cannot be renamed", len(invalid)),
			Files:      invalid,
			Suggestion: "Adjust the operation or fix the source names; these files will be skipped.",
		})
	}
	if len(duplicate) > 0 {
		out = append(out, Warning{
			Title:      fmt.Sprintf("%d file(s) collide on a target name", len(duplicate)),
			Files:      duplicate,
			Suggestion: "Use --on-conflict suffix to number colliding names instead of skipping them.",
		})
	}
	return out
}

func describeItem(it models.PlanItem) string {
	if it.Note == "" {
		return it.Original
	}
	return fmt.Sprintf("%s (%s)", it.Original, it.Note)
}

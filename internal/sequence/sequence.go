// Package sequence implements the sequence rename engine, which generates a
// new name for each position of a batch from a counter, the invocation
// instant or a token template.
//
// Tokens are replaced once per name: a template that repeats a token only
// has its first occurrence substituted. The list item token {s} is the
// exception and is replaced everywhere.
package sequence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harrison/batchkit/internal/models"
	"github.com/harrison/batchkit/internal/naming"
)

// Defaults used when a numeric field is zero or cannot be parsed
const (
	DefaultStart  = 1
	DefaultStep   = 1
	DefaultDigits = 2
)

// Template tokens
const (
	TokenNumber = "{n}"
	TokenDate   = "{date}"
	TokenName   = "{name}"
	TokenExt    = "{ext}"
	TokenItem   = "{s}"
)

// Scheme generates the name for position i of a batch.
// Implementations: Numeric, Date, Custom and List.
type Scheme interface {
	// Describe returns a short human readable form of the scheme.
	Describe() string
	generate(i int, stem, ext string, now time.Time) string
}

// Config selects a scheme and the extension policy applied after it.
type Config struct {
	Scheme        Scheme
	KeepExtension bool // Append the original extension when the generated name does not end with it
}

// Numeric replaces {n} with Start+i*Step, left-padded with zeros to at
// least Digits characters. Zero fields take the package defaults.
type Numeric struct {
	Template string
	Start    int
	Step     int
	Digits   int
}

func (s Numeric) Describe() string {
	start, step, digits := orDefault(s.Start, DefaultStart), orDefault(s.Step, DefaultStep), orDefault(s.Digits, DefaultDigits)
	return fmt.Sprintf("number %q from %d step %d width %d", s.Template, start, step, digits)
}

func (s Numeric) generate(i int, _, _ string, _ time.Time) string {
	start, step := orDefault(s.Start, DefaultStart), orDefault(s.Step, DefaultStep)
	n := pad(start+i*step, orDefault(s.Digits, DefaultDigits))
	return strings.Replace(s.Template, TokenNumber, n, 1)
}

// Date replaces {date} with a date formatted by Pattern. Name i gets
// Start plus i*DaysStep days; a zero Start means the invocation instant. With
// DaysStep zero every name of one invocation gets the same date.
type Date struct {
	Template string
	Pattern  string    // One of the DatePattern* constants
	Start    time.Time // Optional first date
	DaysStep int       // Days added per position
}

func (s Date) Describe() string {
	desc := fmt.Sprintf("date %q as %s", s.Template, s.Pattern)
	if !s.Start.IsZero() {
		desc += " from " + s.Start.Format(StartDateLayout)
	}
	if s.DaysStep != 0 {
		desc += fmt.Sprintf(" every %d day(s)", s.DaysStep)
	}
	return desc
}

func (s Date) generate(i int, _, _ string, now time.Time) string {
	day := now
	if !s.Start.IsZero() {
		day = s.Start
	}
	if s.DaysStep != 0 {
		day = day.AddDate(0, 0, i*s.DaysStep)
	}
	return strings.Replace(s.Template, TokenDate, FormatDate(day, s.Pattern), 1)
}

// Custom substitutes {name} (the stem), then {n} (Start+i*Step, unpadded),
// then {ext} (the extension with its dot). Substitutions are chained, so
// text inserted by an earlier token is visible to later ones.
type Custom struct {
	Template string
	Start    int
	Step     int
}

func (s Custom) Describe() string {
	return fmt.Sprintf("custom %q from %d step %d", s.Template, orDefault(s.Start, DefaultStart), orDefault(s.Step, DefaultStep))
}

func (s Custom) generate(i int, stem, ext string, _ time.Time) string {
	n := orDefault(s.Start, DefaultStart) + i*orDefault(s.Step, DefaultStep)
	name := strings.Replace(s.Template, TokenName, stem, 1)
	name = strings.Replace(name, TokenNumber, strconv.Itoa(n), 1)
	return strings.Replace(name, TokenExt, ext, 1)
}

// List replaces every {s} with Items[i], cycling when there are more names
// than items. An empty list substitutes "".
type List struct {
	Template string
	Items    []string
}

func (s List) Describe() string {
	return fmt.Sprintf("list %q over %d item(s)", s.Template, len(s.Items))
}

func (s List) generate(i int, _, _ string, _ time.Time) string {
	item := ""
	if len(s.Items) > 0 {
		item = s.Items[i%len(s.Items)]
	}
	return strings.ReplaceAll(s.Template, TokenItem, item)
}

// Sequence computes one row per name, in order. now is shared by every row.
// A nil scheme generates empty names.
func Sequence(names []string, cfg Config, now time.Time) []models.Row {
	rows := make([]models.Row, len(names))
	for i, name := range names {
		stem, ext := naming.SplitExtension(name)

		newName := ""
		if cfg.Scheme != nil {
			newName = cfg.Scheme.generate(i, stem, ext, now)
		}
		if cfg.KeepExtension && ext != "" && !strings.HasSuffix(newName, ext) {
			newName += ext
		}

		rows[i] = models.Row{Original: name, Proposed: newName, Valid: true}
	}
	return rows
}

// pad left-pads the decimal form of n with zeros to at least width
// characters. The sign counts towards the width: pad(-5, 3) is "0-5".
func pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// Engine adapts a sequence configuration to the batch controller.
type Engine struct {
	Config Config
}

// NewEngine creates an Engine for cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{Config: cfg}
}

// Kind returns models.KindSequence.
func (e *Engine) Kind() string { return models.KindSequence }

// Describe summarises the scheme and extension policy.
func (e *Engine) Describe() string {
	desc := "no scheme"
	if e.Config.Scheme != nil {
		desc = e.Config.Scheme.Describe()
	}
	if e.Config.KeepExtension {
		desc += ", keep extension"
	}
	return desc
}

// Run computes the mapping at instant now.
func (e *Engine) Run(names []string, now time.Time) []models.Row {
	return Sequence(names, e.Config, now)
}

// Package rename implements the pattern rename engine: one atomic rule
// (prefix, suffix, replace, remove or regex substitution) applied uniformly
// to every name of a batch.
//
// The engine is a pure function of its inputs. Regular expressions are
// compiled once per invocation, and a pattern that does not compile turns
// every row into a sentinel row instead of failing the batch.
package rename

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/harrison/batchkit/internal/models"
	"github.com/harrison/batchkit/internal/naming"
)

// InvalidPatternSentinel is the proposed name of every row of a batch whose
// regular expression failed to compile.
const InvalidPatternSentinel = "<invalid pattern>"

// Operation is one pattern rename rule. The set of implementations is closed:
// AddPrefix, AddSuffix, Replace, Remove and RegexSubstitute.
type Operation interface {
	// Describe returns a short human readable form of the rule.
	Describe() string
	compile() (transform, error)
}

type transform func(name string) string

// AddPrefix prepends Prefix to the whole name.
type AddPrefix struct {
	Prefix string
}

func (op AddPrefix) Describe() string { return fmt.Sprintf("add prefix %q", op.Prefix) }

func (op AddPrefix) compile() (transform, error) {
	return func(name string) string { return op.Prefix + name }, nil
}

// AddSuffix appends Suffix. With BeforeExtension set and a non-empty
// extension, the suffix goes between stem and extension instead.
type AddSuffix struct {
	Suffix          string
	BeforeExtension bool
}

func (op AddSuffix) Describe() string {
	if op.BeforeExtension {
		return fmt.Sprintf("add suffix %q before extension", op.Suffix)
	}
	return fmt.Sprintf("add suffix %q", op.Suffix)
}

func (op AddSuffix) compile() (transform, error) {
	return func(name string) string {
		stem, ext := naming.SplitExtension(name)
		if op.BeforeExtension && ext != "" {
			return stem + op.Suffix + ext
		}
		return name + op.Suffix
	}, nil
}

// Replace substitutes every non-overlapping occurrence of From with To.
// From is a literal string unless UseRegex is set, in which case it is a
// regular expression and To may reference groups ($1, $&, $<name>, ...).
type Replace struct {
	From     string
	To       string
	UseRegex bool
}

func (op Replace) Describe() string {
	if op.UseRegex {
		return fmt.Sprintf("replace /%s/ with %q", op.From, op.To)
	}
	return fmt.Sprintf("replace %q with %q", op.From, op.To)
}

func (op Replace) compile() (transform, error) {
	if op.UseRegex {
		return compileRegex(op.From, op.To)
	}
	if op.From == "" {
		return func(name string) string { return name }, nil
	}
	return func(name string) string { return strings.ReplaceAll(name, op.From, op.To) }, nil
}

// Remove deletes every occurrence of Text. It behaves exactly like
// Replace{From: Text, To: "", UseRegex: UseRegex}.
type Remove struct {
	Text     string
	UseRegex bool
}

func (op Remove) Describe() string {
	if op.UseRegex {
		return fmt.Sprintf("remove /%s/", op.Text)
	}
	return fmt.Sprintf("remove %q", op.Text)
}

func (op Remove) compile() (transform, error) {
	return Replace{From: op.Text, UseRegex: op.UseRegex}.compile()
}

// RegexSubstitute performs a global regular expression substitution over
// the whole name.
type RegexSubstitute struct {
	Pattern     string
	Replacement string
}

func (op RegexSubstitute) Describe() string {
	return fmt.Sprintf("substitute /%s/ with %q", op.Pattern, op.Replacement)
}

func (op RegexSubstitute) compile() (transform, error) {
	return compileRegex(op.Pattern, op.Replacement)
}

func compileRegex(pattern, replacement string) (transform, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return func(name string) string { return replaceAll(re, name, replacement) }, nil
}

// Rename applies op to every name. The result has one row per name, in the
// same order. An empty input yields an empty result.
func Rename(names []string, op Operation) []models.Row {
	return Chain(names, op)
}

// Chain applies ops in order to every name. If any rule fails to compile,
// every row is a sentinel row.
func Chain(names []string, ops ...Operation) []models.Row {
	rows := make([]models.Row, len(names))

	steps := make([]transform, 0, len(ops))
	for _, op := range ops {
		if op == nil {
			continue
		}
		fn, err := op.compile()
		if err != nil {
			reason := fmt.Sprintf("invalid pattern: %v", err)
			for i, name := range names {
				rows[i] = models.Row{Original: name, Proposed: InvalidPatternSentinel, Valid: false, Reason: reason}
			}
			return rows
		}
		steps = append(steps, fn)
	}

	for i, name := range names {
		proposed := name
		for _, fn := range steps {
			proposed = fn(proposed)
		}
		rows[i] = models.Row{Original: name, Proposed: proposed, Valid: true}
	}
	return rows
}

// Describe joins the descriptions of ops.
func Describe(ops ...Operation) string {
	parts := make([]string, 0, len(ops))
	for _, op := range ops {
		if op != nil {
			parts = append(parts, op.Describe())
		}
	}
	if len(parts) == 0 {
		return "no-op"
	}
	return strings.Join(parts, ", then ")
}

// Engine adapts a list of operations to the batch controller.
type Engine struct {
	Ops []Operation
}

// NewEngine creates an Engine applying ops in order.
func NewEngine(ops ...Operation) *Engine {
	return &Engine{Ops: ops}
}

// Kind returns models.KindPattern.
func (e *Engine) Kind() string { return models.KindPattern }

// Describe summarises the configured operations.
func (e *Engine) Describe() string { return Describe(e.Ops...) }

// Run computes the mapping. Pattern rules do not depend on the instant.
func (e *Engine) Run(names []string, _ time.Time) []models.Row {
	return Chain(names, e.Ops...)
}

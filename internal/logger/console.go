// Package logger provides logging implementations for batchkit.
//
// Loggers report batch progress (engine runs, plan reviews, executor
// hand-offs) at the usual trace..error levels. Implementations are safe for
// concurrent use and write to a console or to a per-run log file.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/batchkit/internal/models"
)

// ConsoleLogger logs batch progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive); anything
// else falls back to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// color.NoColor already accounts for NO_COLOR and non-TTY output
		return !color.NoColor
	}
	return false
}

// Level returns the effective log level.
func (cl *ConsoleLogger) Level() string {
	return cl.logLevel
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// LogBatch logs an engine run at INFO level, and every row at TRACE level.
// Format: "[HH:MM:SS] [INFO] Batch <id>: <kind> (<description>), <n> file(s)"
func (cl *ConsoleLogger) LogBatch(batch *models.Batch) {
	cl.logWithLevel("INFO", batchLine(batch))
	for _, r := range batch.Rows {
		cl.logWithLevel("TRACE", rowLine(r))
	}
}

// LogPlanSummary logs the review counts of a plan at INFO level, or WARN
// level when some rows will be skipped.
func (cl *ConsoleLogger) LogPlanSummary(plan *models.Plan) {
	level := "INFO"
	if plan.Summary.Invalid > 0 || plan.Summary.Duplicate > 0 {
		level = "WARN"
	}
	cl.logWithLevel(level, summaryLine(plan.Summary))
}

// LogExecution logs an executor result at INFO level.
func (cl *ConsoleLogger) LogExecution(result *models.ExecutionResult) {
	cl.logWithLevel("INFO", executionLine(result))
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !allows(cl.logLevel, level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = cl.formatWithColor(ts, level, message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// formatWithColor formats a log message with ANSI color codes.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch strings.ToUpper(level) {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

func batchLine(batch *models.Batch) string {
	files := "files"
	if len(batch.Rows) == 1 {
		files = "file"
	}
	return fmt.Sprintf("Batch %s: %s (%s), %d %s", batch.ID, batch.Kind, batch.Description, len(batch.Rows), files)
}

func rowLine(r models.Row) string {
	if !r.Valid {
		return fmt.Sprintf("  %s -> %s [%s]", r.Original, r.Proposed, r.Reason)
	}
	return fmt.Sprintf("  %s -> %s", r.Original, r.Proposed)
}

func summaryLine(s models.PlanSummary) string {
	return fmt.Sprintf("Plan: %d total, %d to rename, %d unchanged, %d invalid, %d duplicate",
		s.Total, s.OK, s.Unchanged, s.Invalid, s.Duplicate)
}

func executionLine(r *models.ExecutionResult) string {
	line := fmt.Sprintf("Batch %s handed off: %d renamed, %d skipped in %s", r.BatchID, r.Renamed, r.Skipped, formatDuration(r.Duration))
	if r.Location != "" {
		line += " -> " + r.Location
	}
	return line
}

// formatDuration converts a time.Duration to a human-readable string.
// Sub-second durations are shown in milliseconds.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Second).String()
}

// NoOpLogger discards all log messages.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(string)                      {}
func (n *NoOpLogger) LogDebug(string)                      {}
func (n *NoOpLogger) LogInfo(string)                       {}
func (n *NoOpLogger) LogWarn(string)                       {}
func (n *NoOpLogger) LogError(string)                      {}
func (n *NoOpLogger) LogBatch(*models.Batch)               {}
func (n *NoOpLogger) LogPlanSummary(*models.Plan)          {}
func (n *NoOpLogger) LogExecution(*models.ExecutionResult) {}

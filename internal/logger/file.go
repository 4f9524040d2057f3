package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrison/batchkit/internal/models"
)

// FileLogger logs batch events to timestamped per-run files in a log
// directory and maintains a latest.log symlink pointing to the most recent run.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger in logDir with the "info" level.
func NewFileLogger(logDir string) (*FileLogger, error) {
	return NewFileLoggerWithLevel(logDir, "info")
}

// NewFileLoggerWithLevel creates a FileLogger with a custom log directory and log level.
// It creates the log directory if it doesn't exist, opens a timestamped
// run log file, and creates/updates the latest.log symlink.
func NewFileLoggerWithLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// run-YYYYMMDD-HHMMSS.log
	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", stamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}

	// Relative target so the log directory can be moved as a whole
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create latest.log symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}
	fl.writeRunLog(fmt.Sprintf("=== batchkit run started at %s ===\n", time.Now().Format(time.RFC3339)))
	return fl, nil
}

// Path returns the path of the current run log.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// LogTrace logs a trace-level message.
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

// LogBatch records an engine run. Every row is written at DEBUG level so the
// run log keeps the full proposal even when the console is quieter.
func (fl *FileLogger) LogBatch(batch *models.Batch) {
	fl.logWithLevel("INFO", batchLine(batch))
	for _, r := range batch.Rows {
		fl.logWithLevel("DEBUG", rowLine(r))
	}
}

// LogPlanSummary records the review counts and the note of every row that
// will not be renamed.
func (fl *FileLogger) LogPlanSummary(plan *models.Plan) {
	fl.logWithLevel("INFO", summaryLine(plan.Summary))
	for _, item := range plan.Items {
		if item.Status == models.StatusInvalid || item.Status == models.StatusDuplicate {
			fl.logWithLevel("WARN", fmt.Sprintf("  %s: %s (%s)", item.Original, item.Status, item.Note))
		}
	}
}

// LogExecution records an executor result.
func (fl *FileLogger) LogExecution(result *models.ExecutionResult) {
	fl.logWithLevel("INFO", executionLine(result))
}

// Close flushes and closes the run log.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}
	fmt.Fprintf(fl.runLog, "=== batchkit run finished at %s ===\n", time.Now().Format(time.RFC3339))
	if err := fl.runLog.Sync(); err != nil {
		fl.runLog.Close()
		fl.runLog = nil
		return fmt.Errorf("failed to sync run log: %w", err)
	}
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}

func (fl *FileLogger) logWithLevel(level, message string) {
	if !allows(fl.logLevel, level) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// writeRunLog writes a message to the run log file (thread-safe).
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return
	}
	fl.runLog.WriteString(message)
	fl.runLog.Sync()
}

package logger

import "strings"

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ValidLevels lists the accepted level names, most verbose first.
var ValidLevels = []string{"trace", "debug", "info", "warn", "error"}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	for _, valid := range ValidLevels {
		if normalized == valid {
			return normalized
		}
	}
	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// allows reports whether a message at messageLevel passes the configured level.
func allows(configured, messageLevel string) bool {
	return logLevelToInt(strings.ToLower(messageLevel)) >= logLevelToInt(configured)
}

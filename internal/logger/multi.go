package logger

import "github.com/harrison/batchkit/internal/models"

// BatchLogger is the logging surface shared by every logger in this package.
type BatchLogger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogBatch(batch *models.Batch)
	LogPlanSummary(plan *models.Plan)
	LogExecution(result *models.ExecutionResult)
}

// MultiLogger fans every call out to each wrapped logger in order.
type MultiLogger struct {
	loggers []BatchLogger
}

// NewMultiLogger wraps loggers, dropping nil entries.
func NewMultiLogger(loggers ...BatchLogger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) each(fn func(BatchLogger)) {
	for _, l := range m.loggers {
		fn(l)
	}
}

func (m *MultiLogger) LogTrace(message string) { m.each(func(l BatchLogger) { l.LogTrace(message) }) }
func (m *MultiLogger) LogDebug(message string) { m.each(func(l BatchLogger) { l.LogDebug(message) }) }
func (m *MultiLogger) LogInfo(message string)  { m.each(func(l BatchLogger) { l.LogInfo(message) }) }
func (m *MultiLogger) LogWarn(message string)  { m.each(func(l BatchLogger) { l.LogWarn(message) }) }
func (m *MultiLogger) LogError(message string) { m.each(func(l BatchLogger) { l.LogError(message) }) }

func (m *MultiLogger) LogBatch(batch *models.Batch) {
	m.each(func(l BatchLogger) { l.LogBatch(batch) })
}

func (m *MultiLogger) LogPlanSummary(plan *models.Plan) {
	m.each(func(l BatchLogger) { l.LogPlanSummary(plan) })
}

func (m *MultiLogger) LogExecution(result *models.ExecutionResult) {
	m.each(func(l BatchLogger) { l.LogExecution(result) })
}

package sequence

import (
	"fmt"
	"time"
)

// Supported date patterns
const (
	DatePatternDay           = "yyyy-MM-dd"
	DatePatternDayCompact    = "yyyyMMdd"
	DatePatternMinute        = "yyyy-MM-dd_HH-mm"
	DatePatternMinuteCompact = "yyyyMMdd_HHmm"
)

var dateLayouts = map[string]string{
	DatePatternDay:           "2006-01-02",
	DatePatternDayCompact:    "20060102",
	DatePatternMinute:        "2006-01-02_15-04",
	DatePatternMinuteCompact: "20060102_1504",
}

// StartDateLayout is the layout of a start date given as text.
const StartDateLayout = "2006-01-02"

// DatePatterns lists the supported patterns in display order.
var DatePatterns = []string{DatePatternDay, DatePatternDayCompact, DatePatternMinute, DatePatternMinuteCompact}

// FormatDate formats t in its own location. An unknown pattern yields "".
func FormatDate(t time.Time, pattern string) string {
	layout, ok := dateLayouts[pattern]
	if !ok {
		return ""
	}
	return t.Format(layout)
}

// ValidateDatePattern reports whether pattern is supported.
func ValidateDatePattern(pattern string) error {
	if _, ok := dateLayouts[pattern]; !ok {
		return fmt.Errorf("unsupported date pattern %q, must be one of: %v", pattern, DatePatterns)
	}
	return nil
}

// ParseStartDate reads a yyyy-MM-dd date as local midnight. An empty string
// yields the zero time.
func ParseStartDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(StartDateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q, want yyyy-MM-dd", raw)
	}
	return t, nil
}

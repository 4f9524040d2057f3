// Package naming holds the file name helpers shared by the rename and
// sequence engines: stem/extension splitting, byte size formatting and
// target name validation.
package naming

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxNameLength is the longest target name (in bytes) accepted by InvalidReason.
const MaxNameLength = 255

// SplitExtension splits name at its last dot. The extension keeps the dot.
// Only the last dot matters, so ".bashrc" has an empty stem and extension
// ".bashrc", and a name without a dot has an empty extension.
func SplitExtension(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i == -1 {
		return name, ""
	}
	return name[:i], name[i:]
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatByteSize renders n using base-1024 units with at most two decimals,
// trailing zeros stripped: 0 -> "0 Bytes", 1536 -> "1.5 KB", 1024 -> "1 KB".
// Sizes of 1024 GB and above stay in GB. Negative sizes render as "0 Bytes".
func FormatByteSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}

	unit := 0
	div := int64(1)
	for unit < len(sizeUnits)-1 && n/div >= 1024 {
		div *= 1024
		unit++
	}

	value := float64(n) / float64(div)
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 2, 64), 64)
	if err != nil {
		rounded = value
	}
	return fmt.Sprintf("%s %s", strconv.FormatFloat(rounded, 'f', -1, 64), sizeUnits[unit])
}

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// InvalidReason returns why name cannot be used as a target file name on
// common filesystems, or "" when it can.
func InvalidReason(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "empty name"
	}
	if trimmed == "." || trimmed == ".." {
		return "reserved filename"
	}
	if strings.ContainsAny(trimmed, `<>:"/\|?*`) {
		return "invalid characters"
	}
	for _, r := range trimmed {
		if r < 0x20 || r == 0x7f {
			return "invalid characters"
		}
	}
	stem, _ := SplitExtension(trimmed)
	if reservedNames[strings.ToUpper(stem)] {
		return "reserved filename"
	}
	if len(name) > MaxNameLength {
		return "too long"
	}
	return ""
}

// ResolveConflict returns name unchanged when n is 0, otherwise inserts
// "_n" before the extension: ("photo.jpg", 2) -> "photo_2.jpg".
func ResolveConflict(name string, n int) string {
	if n == 0 {
		return name
	}
	stem, ext := SplitExtension(name)
	return fmt.Sprintf("%s_%d%s", stem, n, ext)
}

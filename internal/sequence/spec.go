package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Scheme type names, as used in presets and on the command line
const (
	TypeNumber = "number"
	TypeDate   = "date"
	TypeCustom = "custom"
	TypeList   = "list"
)

// ErrUnknownScheme is returned for an unrecognised scheme type.
var ErrUnknownScheme = errors.New("sequence: unknown scheme type")

// Spec is the serialisable form of a Config.
type Spec struct {
	Type          string   `json:"type" yaml:"type"`
	Template      string   `json:"template" yaml:"template"`
	Start         int      `json:"start,omitempty" yaml:"start,omitempty"`
	Step          int      `json:"step,omitempty" yaml:"step,omitempty"`
	Digits        int      `json:"digits,omitempty" yaml:"digits,omitempty"`
	DatePattern   string   `json:"date_pattern,omitempty" yaml:"date_pattern,omitempty"`
	StartDate     string   `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	DaysStep      int      `json:"days_step,omitempty" yaml:"days_step,omitempty"`
	Items         []string `json:"items,omitempty" yaml:"items,omitempty"`
	KeepExtension bool     `json:"keep_extension,omitempty" yaml:"keep_extension,omitempty"`
}

// Config builds the configuration described by s.
func (s Spec) Config() (Config, error) {
	var scheme Scheme
	switch s.Type {
	case TypeNumber:
		scheme = Numeric{Template: s.Template, Start: s.Start, Step: s.Step, Digits: s.Digits}
	case TypeDate:
		start, err := ParseStartDate(s.StartDate)
		if err != nil {
			return Config{}, err
		}
		scheme = Date{Template: s.Template, Pattern: s.DatePattern, Start: start, DaysStep: s.DaysStep}
	case TypeCustom:
		scheme = Custom{Template: s.Template, Start: s.Start, Step: s.Step}
	case TypeList:
		scheme = List{Template: s.Template, Items: s.Items}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownScheme, s.Type)
	}
	return Config{Scheme: scheme, KeepExtension: s.KeepExtension}, nil
}

// SpecOf returns the serialisable form of cfg.
func SpecOf(cfg Config) (Spec, error) {
	spec := Spec{KeepExtension: cfg.KeepExtension}
	switch s := cfg.Scheme.(type) {
	case Numeric:
		spec.Type, spec.Template, spec.Start, spec.Step, spec.Digits = TypeNumber, s.Template, s.Start, s.Step, s.Digits
	case Date:
		spec.Type, spec.Template, spec.DatePattern, spec.DaysStep = TypeDate, s.Template, s.Pattern, s.DaysStep
		if !s.Start.IsZero() {
			spec.StartDate = s.Start.Format(StartDateLayout)
		}
	case Custom:
		spec.Type, spec.Template, spec.Start, spec.Step = TypeCustom, s.Template, s.Start, s.Step
	case List:
		spec.Type, spec.Template, spec.Items = TypeList, s.Template, s.Items
	default:
		return Spec{}, fmt.Errorf("%w: %T", ErrUnknownScheme, cfg.Scheme)
	}
	return spec, nil
}

// ParseInt reads an integer from raw form input the way a lenient web form
// does: leading whitespace is skipped, an optional sign and the leading run
// of digits are read, and anything after them is ignored ("12px" is 12). A
// "0x" prefix switches to hexadecimal ("0x10" is 16). Input without leading
// digits, a value of zero, and values out of int range yield def.
func ParseInt(raw string, def int) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	sign := ""
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	base, isDigit := 10, isDecimal
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, isDigit, s = 16, isHex, s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == 0 {
		return def
	}

	n, err := strconv.ParseInt(sign+s[:end], base, strconv.IntSize)
	if err != nil || n == 0 {
		return def
	}
	return int(n)
}

func isDecimal(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

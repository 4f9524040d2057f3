package rename

import (
	"errors"
	"fmt"
)

// Operation type names, as used in presets and on the command line
const (
	TypeAddPrefix = "add-prefix"
	TypeAddSuffix = "add-suffix"
	TypeReplace   = "replace"
	TypeRemove    = "remove"
	TypeRegex     = "regex"
)

// ErrUnknownOperation is returned for an unrecognised operation type.
var ErrUnknownOperation = errors.New("rename: unknown operation type")

// Spec is the serialisable form of an Operation.
type Spec struct {
	Type            string `json:"type" yaml:"type"`
	Prefix          string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix          string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	BeforeExtension bool   `json:"before_extension,omitempty" yaml:"before_extension,omitempty"`
	From            string `json:"from,omitempty" yaml:"from,omitempty"`
	To              string `json:"to,omitempty" yaml:"to,omitempty"`
	Text            string `json:"text,omitempty" yaml:"text,omitempty"`
	Pattern         string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Replacement     string `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	UseRegex        bool   `json:"use_regex,omitempty" yaml:"use_regex,omitempty"`
}

// Operation builds the operation described by s.
func (s Spec) Operation() (Operation, error) {
	switch s.Type {
	case TypeAddPrefix:
		return AddPrefix{Prefix: s.Prefix}, nil
	case TypeAddSuffix:
		return AddSuffix{Suffix: s.Suffix, BeforeExtension: s.BeforeExtension}, nil
	case TypeReplace:
		return Replace{From: s.From, To: s.To, UseRegex: s.UseRegex}, nil
	case TypeRemove:
		return Remove{Text: s.Text, UseRegex: s.UseRegex}, nil
	case TypeRegex:
		return RegexSubstitute{Pattern: s.Pattern, Replacement: s.Replacement}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, s.Type)
	}
}

// SpecOf returns the serialisable form of op.
func SpecOf(op Operation) (Spec, error) {
	switch o := op.(type) {
	case AddPrefix:
		return Spec{Type: TypeAddPrefix, Prefix: o.Prefix}, nil
	case AddSuffix:
		return Spec{Type: TypeAddSuffix, Suffix: o.Suffix, BeforeExtension: o.BeforeExtension}, nil
	case Replace:
		return Spec{Type: TypeReplace, From: o.From, To: o.To, UseRegex: o.UseRegex}, nil
	case Remove:
		return Spec{Type: TypeRemove, Text: o.Text, UseRegex: o.UseRegex}, nil
	case RegexSubstitute:
		return Spec{Type: TypeRegex, Pattern: o.Pattern, Replacement: o.Replacement}, nil
	default:
		return Spec{}, fmt.Errorf("%w: %T", ErrUnknownOperation, op)
	}
}

// Operations builds every operation in specs, in order.
func Operations(specs []Spec) ([]Operation, error) {
	ops := make([]Operation, 0, len(specs))
	for i, s := range specs {
		op, err := s.Operation()
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i+1, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

package presets

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/batchkit/internal/models"
	"github.com/harrison/batchkit/internal/rename"
	"github.com/harrison/batchkit/internal/sequence"
)

var (
	// ErrNotFound is returned when no preset has the requested name.
	ErrNotFound = errors.New("preset not found")
	// ErrInvalidName is returned for names that are empty or contain
	// characters other than letters, digits, '-', '_' and '.'.
	ErrInvalidName = errors.New("invalid preset name")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// Preset is a named engine configuration. Exactly one of Rename and
// Sequence is set, matching Kind.
type Preset struct {
	Name        string
	Kind        string // models.KindPattern or models.KindSequence
	Description string
	Rename      []rename.Spec
	Sequence    *sequence.Spec
	UseCount    int
	LastUsed    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// config is the YAML document stored in the config column.
type config struct {
	Rename   []rename.Spec  `yaml:"rename,omitempty"`
	Sequence *sequence.Spec `yaml:"sequence,omitempty"`
}

// NewRenamePreset builds a pattern preset from an operation chain.
func NewRenamePreset(name string, ops ...rename.Operation) (*Preset, error) {
	specs := make([]rename.Spec, 0, len(ops))
	for _, op := range ops {
		s, err := rename.SpecOf(op)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	p := &Preset{Name: name, Kind: models.KindPattern, Rename: specs, Description: rename.Describe(ops...)}
	return p, p.Validate()
}

// NewSequencePreset builds a sequence preset from a configuration.
func NewSequencePreset(name string, cfg sequence.Config) (*Preset, error) {
	s, err := sequence.SpecOf(cfg)
	if err != nil {
		return nil, err
	}
	p := &Preset{Name: name, Kind: models.KindSequence, Sequence: &s, Description: sequence.NewEngine(cfg).Describe()}
	return p, p.Validate()
}

// Validate checks the name and that the stored configuration builds.
func (p *Preset) Validate() error {
	if !namePattern.MatchString(p.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, p.Name)
	}
	switch p.Kind {
	case models.KindPattern:
		if len(p.Rename) == 0 || p.Sequence != nil {
			return fmt.Errorf("preset %s: pattern presets need at least one operation", p.Name)
		}
		_, err := rename.Operations(p.Rename)
		return err
	case models.KindSequence:
		if p.Sequence == nil || len(p.Rename) > 0 {
			return fmt.Errorf("preset %s: sequence presets need exactly one scheme", p.Name)
		}
		_, err := p.Sequence.Config()
		return err
	default:
		return fmt.Errorf("preset %s: unknown kind %q", p.Name, p.Kind)
	}
}

// Operations returns the operation chain of a pattern preset.
func (p *Preset) Operations() ([]rename.Operation, error) {
	if p.Kind != models.KindPattern {
		return nil, fmt.Errorf("preset %s is a %s preset", p.Name, p.Kind)
	}
	return rename.Operations(p.Rename)
}

// SequenceConfig returns the configuration of a sequence preset.
func (p *Preset) SequenceConfig() (sequence.Config, error) {
	if p.Kind != models.KindSequence || p.Sequence == nil {
		return sequence.Config{}, fmt.Errorf("preset %s is a %s preset", p.Name, p.Kind)
	}
	return p.Sequence.Config()
}

// YAML renders the stored configuration.
func (p *Preset) YAML() (string, error) {
	data, err := yaml.Marshal(config{Rename: p.Rename, Sequence: p.Sequence})
	if err != nil {
		return "", fmt.Errorf("marshal preset %s: %w", p.Name, err)
	}
	return string(data), nil
}

func (p *Preset) decode(raw string) error {
	var c config
	if err := yaml.Unmarshal([]byte(raw), &c); err != nil {
		return fmt.Errorf("unmarshal preset %s: %w", p.Name, err)
	}
	p.Rename = c.Rename
	p.Sequence = c.Sequence
	return nil
}

// ParseYAML builds a preset from a document in the form YAML renders. The
// kind follows from which section is present.
func ParseYAML(name string, data []byte) (*Preset, error) {
	p := &Preset{Name: name}
	if err := p.decode(string(data)); err != nil {
		return nil, err
	}

	switch {
	case len(p.Rename) > 0 && p.Sequence == nil:
		ops, err := rename.Operations(p.Rename)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		p.Kind = models.KindPattern
		p.Description = rename.Describe(ops...)
	case p.Sequence != nil && len(p.Rename) == 0:
		cfg, err := p.Sequence.Config()
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		p.Kind = models.KindSequence
		p.Description = sequence.NewEngine(cfg).Describe()
	default:
		return nil, fmt.Errorf("preset %s: document needs either a rename or a sequence section", name)
	}
	return p, p.Validate()
}

package executor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/batchkit/internal/models"
)

// ManifestVersion is written into every manifest.
const ManifestVersion = 1

// Manifest formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrUnsupportedFormat is returned for manifest formats other than yaml and json.
var ErrUnsupportedFormat = errors.New("unsupported manifest format")

// Manifest is the hand-off document read by an external rename executor.
// Renames are listed in input order and never share a target.
type Manifest struct {
	Version     int                `json:"version" yaml:"version"`
	BatchID     string             `json:"batch_id" yaml:"batch_id"`
	Kind        string             `json:"kind" yaml:"kind"`
	Description string             `json:"description" yaml:"description"`
	CreatedAt   time.Time          `json:"created_at" yaml:"created_at"`
	Renames     []Rename           `json:"renames" yaml:"renames"`
	Skipped     []Skip             `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Summary     models.PlanSummary `json:"summary" yaml:"summary"`
}

// Rename is one from/to pair of a manifest. Both sides are paths when the
// plan knows the input directories and bare names otherwise.
type Rename struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Skip records an input that will keep its name.
type Skip struct {
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
	Note   string `json:"note,omitempty" yaml:"note,omitempty"`
}

// NewManifest builds the manifest of a reviewed plan.
func NewManifest(p *models.Plan) *Manifest {
	m := &Manifest{
		Version:     ManifestVersion,
		BatchID:     p.Batch.ID,
		Kind:        p.Batch.Kind,
		Description: p.Batch.Description,
		CreatedAt:   p.Batch.At,
		Renames:     []Rename{},
		Summary:     p.Summary,
	}
	for _, it := range p.Items {
		if it.Status == models.StatusOK {
			m.Renames = append(m.Renames, Rename{From: it.Source(), To: it.Destination(), Note: it.Note})
			continue
		}
		m.Skipped = append(m.Skipped, Skip{Name: it.Source(), Status: it.Status, Note: it.Note})
	}
	return m
}

// Encode serializes the manifest in the given format.
func (m *Manifest) Encode(format string) ([]byte, error) {
	switch normalizeFormat(format) {
	case FormatYAML:
		return yaml.Marshal(m)
	case FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ReadManifest loads a manifest, choosing the decoder from the file extension.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	switch formatOf(path) {
	case FormatJSON:
		err = json.Unmarshal(data, &m)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if m.Version != ManifestVersion {
		return nil, fmt.Errorf("manifest %s: unsupported version %d", path, m.Version)
	}
	return &m, nil
}

func normalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "yaml", "yml":
		return FormatYAML
	case "json":
		return FormatJSON
	default:
		return format
	}
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return ""
	}
}

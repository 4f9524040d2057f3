// Package executor implements the hand-off boundary of the process path.
//
// Executors receive a reviewed plan and report what they did with it. The
// ManifestWriter persists the rename mapping for an external tool; DryRun
// only reports. Neither renames input files.
package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/batchkit/internal/filelock"
	"github.com/harrison/batchkit/internal/models"
)

// ManifestWriter writes one manifest file per processed batch.
type ManifestWriter struct {
	Dir    string // Destination directory, created on demand
	Format string // FormatYAML (default) or FormatJSON
	Force  bool   // Overwrite an existing manifest of the same batch
}

// NewManifestWriter creates a ManifestWriter for dir.
func NewManifestWriter(dir, format string) *ManifestWriter {
	return &ManifestWriter{Dir: dir, Format: format}
}

// Path returns the manifest path for a batch.
// Format: <dir>/batch-YYYYMMDD-HHMMSS-<id prefix>.<ext>
func (w *ManifestWriter) Path(batch *models.Batch) string {
	id := batch.ID
	if len(id) > 8 {
		id = id[:8]
	}
	name := fmt.Sprintf("batch-%s-%s.%s", batch.At.Format("20060102-150405"), id, normalizeFormat(w.Format))
	return filepath.Join(w.Dir, name)
}

// Execute encodes the plan and writes it atomically under a file lock.
func (w *ManifestWriter) Execute(ctx context.Context, p *models.Plan) (*models.ExecutionResult, error) {
	if p == nil || p.Batch == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}
	start := time.Now()

	data, err := NewManifest(p).Encode(w.Format)
	if err != nil {
		return nil, err
	}

	path := w.Path(p.Batch)
	err = filelock.WriteLocked(ctx, path, func() error {
		if !w.Force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("manifest %s already exists", path)
			}
		}
		return filelock.AtomicWrite(path, data, 0644)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	return resultOf(p, path, time.Since(start)), nil
}

// DryRun reports what a plan would do without writing anything.
type DryRun struct{}

// Execute returns the counts of the plan.
func (DryRun) Execute(ctx context.Context, p *models.Plan) (*models.ExecutionResult, error) {
	if p == nil || p.Batch == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return resultOf(p, "", 0), nil
}

func resultOf(p *models.Plan, location string, d time.Duration) *models.ExecutionResult {
	return &models.ExecutionResult{
		BatchID:  p.Batch.ID,
		Renamed:  p.Summary.OK,
		Skipped:  p.Summary.Total - p.Summary.OK,
		Location: location,
		Duration: d,
	}
}

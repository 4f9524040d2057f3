package models

import "path/filepath"

// Plan item status constants
const (
	StatusOK        = "ok"        // Rename will be handed to the executor
	StatusUnchanged = "unchanged" // Proposed name equals the original
	StatusInvalid   = "invalid"   // Engine failure or unusable target name
	StatusDuplicate = "duplicate" // Another row proposes the same target
)

// PlanItem is a reviewed row.
type PlanItem struct {
	Row `yaml:",inline"`

	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`   // Directory holding the input, empty when unknown
	Target string `json:"target" yaml:"target"`                 // Final name after conflict resolution
	Status string `json:"status" yaml:"status"`                 // One of the Status* constants
	Note   string `json:"note,omitempty" yaml:"note,omitempty"` // Reason for a non-ok status
}

// Source returns the input's path, or its bare name when Dir is empty.
func (it PlanItem) Source() string {
	return filepath.Join(it.Dir, it.Original)
}

// Destination returns the path the input is renamed to.
func (it PlanItem) Destination() string {
	return filepath.Join(it.Dir, it.Target)
}

// PlanSummary counts plan items by status.
type PlanSummary struct {
	Total     int `json:"total" yaml:"total"`
	OK        int `json:"ok" yaml:"ok"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Invalid   int `json:"invalid" yaml:"invalid"`
	Duplicate int `json:"duplicate" yaml:"duplicate"`
}

// Plan is a reviewed batch, ready to be handed to an executor.
type Plan struct {
	Batch   *Batch      `json:"batch" yaml:"batch"`
	Items   []PlanItem  `json:"items" yaml:"items"`
	Summary PlanSummary `json:"summary" yaml:"summary"`
}

// Renames returns the items that will actually be renamed.
func (p *Plan) Renames() []PlanItem {
	out := make([]PlanItem, 0, p.Summary.OK)
	for _, it := range p.Items {
		if it.Status == StatusOK {
			out = append(out, it)
		}
	}
	return out
}

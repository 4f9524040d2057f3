// Package plan reviews an engine's output before it is handed to an
// executor: it flags rows the engine could not compute, unusable target
// names, no-op renames and targets claimed twice.
package plan

import (
	"fmt"
	"path/filepath"

	"github.com/harrison/batchkit/internal/models"
	"github.com/harrison/batchkit/internal/naming"
)

// Conflict policies
const (
	PolicySkip   = "skip"   // Leave every conflicting row out of the plan
	PolicySuffix = "suffix" // Keep the first claimant, give the others "_N" names
)

// Options controls the review.
type Options struct {
	// Policy is PolicySkip (default) or PolicySuffix.
	Policy string
	// Dirs holds the directory of each row's input. Names only conflict
	// within one directory. When its length does not match the batch, every
	// row is treated as sharing one unnamed directory.
	Dirs []string
	// Exists optionally reports whether a name is already taken in dir
	// outside the batch.
	Exists func(dir, name string) bool
}

// slot is a name inside a directory.
type slot struct {
	dir  string
	name string
}

func (o Options) dir(i int) string {
	if len(o.Dirs) == 0 || o.Dirs[i] == "" {
		return ""
	}
	return filepath.Clean(o.Dirs[i])
}

// Build reviews batch and returns the resulting plan. Items keep the order
// of the batch rows.
func Build(batch *models.Batch, opts Options) *models.Plan {
	p := &models.Plan{
		Batch: batch,
		Items: make([]models.PlanItem, len(batch.Rows)),
	}
	if len(opts.Dirs) != len(batch.Rows) {
		opts.Dirs = nil
	}

	var candidates []int
	for i, r := range batch.Rows {
		it := models.PlanItem{Row: r, Dir: opts.dir(i), Target: r.Original}
		switch {
		case !r.Valid:
			it.Status = models.StatusInvalid
			it.Note = r.Reason
			if it.Note == "" {
				it.Note = "engine could not compute a name"
			}
		case r.Proposed == r.Original:
			it.Status = models.StatusUnchanged
		default:
			if reason := naming.InvalidReason(r.Proposed); reason != "" {
				it.Status = models.StatusInvalid
				it.Note = "invalid: " + reason
				break
			}
			it.Target = r.Proposed
			candidates = append(candidates, i)
		}
		p.Items[i] = it
	}

	staying := make(map[slot]bool)
	leaving := make(map[slot]bool)
	for _, it := range p.Items {
		if it.Status == "" {
			leaving[slot{it.Dir, it.Original}] = true
		} else {
			staying[slot{it.Dir, it.Original}] = true
		}
	}
	taken := func(s slot) bool {
		if staying[s] {
			return true
		}
		return opts.Exists != nil && !leaving[s] && opts.Exists(s.dir, s.name)
	}

	claims := make(map[slot]int)
	for _, i := range candidates {
		claims[slot{p.Items[i].Dir, p.Items[i].Proposed}]++
	}

	if opts.Policy == PolicySuffix {
		resolveWithSuffix(p, candidates, claims, taken)
	} else {
		skipConflicts(p, candidates, claims, taken, staying, leaving)
	}

	p.Summary = Summarize(p.Items)
	return p
}

// Summarize counts items by status.
func Summarize(items []models.PlanItem) models.PlanSummary {
	s := models.PlanSummary{Total: len(items)}
	for _, it := range items {
		switch it.Status {
		case models.StatusOK:
			s.OK++
		case models.StatusUnchanged:
			s.Unchanged++
		case models.StatusInvalid:
			s.Invalid++
		case models.StatusDuplicate:
			s.Duplicate++
		}
	}
	return s
}

// skipConflicts marks every conflicting candidate as a duplicate. A skipped
// row keeps its original name, which can in turn block another candidate,
// so the pass repeats until nothing changes.
func skipConflicts(p *models.Plan, candidates []int, claims map[slot]int, taken func(slot) bool, staying, leaving map[slot]bool) {
	skipped := make(map[int]bool)
	for changed := true; changed; {
		changed = false
		for _, i := range candidates {
			if skipped[i] {
				continue
			}
			it := &p.Items[i]
			target := slot{it.Dir, it.Proposed}
			duplicate := claims[target] > 1
			if !duplicate && !taken(target) {
				continue
			}

			it.Status = models.StatusDuplicate
			it.Target = it.Original
			if duplicate {
				it.Note = fmt.Sprintf("conflict: %d rows propose %q", claims[target], it.Proposed)
			} else {
				it.Note = "conflict: target already exists"
			}
			skipped[i] = true
			staying[slot{it.Dir, it.Original}] = true
			delete(leaving, slot{it.Dir, it.Original})
			changed = true
		}
	}

	for _, i := range candidates {
		if !skipped[i] {
			p.Items[i].Status = models.StatusOK
		}
	}
}

// resolveWithSuffix keeps the first claimant of each target and moves every
// later claimant, or a claimant of a taken name, to the first free "_N" name.
func resolveWithSuffix(p *models.Plan, candidates []int, claims map[slot]int, taken func(slot) bool) {
	used := make(map[slot]bool)
	for _, i := range candidates {
		it := &p.Items[i]
		target := slot{it.Dir, it.Proposed}
		if taken(target) || used[target] {
			for k := 1; ; k++ {
				alt := slot{it.Dir, naming.ResolveConflict(it.Proposed, k)}
				if !taken(alt) && !used[alt] && claims[alt] == 0 {
					target = alt
					break
				}
			}
			it.Note = "renamed to avoid conflict"
		}
		it.Target = target.name
		it.Status = models.StatusOK
		used[target] = true
	}
}

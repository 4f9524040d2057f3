package models

import "time"

// Engine kinds recorded on a batch
const (
	KindPattern  = "pattern"  // Pattern Rename Engine
	KindSequence = "sequence" // Sequence Rename Engine
	KindList     = "list"     // Names imported from a spreadsheet or CSV
)

// Batch is the result of one engine invocation over an ordered list of names.
type Batch struct {
	ID          string    `json:"id" yaml:"id"`                   // Unique batch identifier
	Kind        string    `json:"kind" yaml:"kind"`               // Engine kind that produced the rows
	Description string    `json:"description" yaml:"description"` // Human readable configuration summary
	At          time.Time `json:"at" yaml:"at"`                   // Invocation instant (drives date tokens)
	Rows        []Row     `json:"rows" yaml:"rows"`               // One row per input, same order
}

// InvalidCount returns how many rows the engine could not compute.
func (b *Batch) InvalidCount() int {
	n := 0
	for _, r := range b.Rows {
		if !r.Valid {
			n++
		}
	}
	return n
}

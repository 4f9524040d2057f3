package models

import "time"

// ExecutionResult describes what an executor did with a plan.
type ExecutionResult struct {
	BatchID  string        // Batch that was handed off
	Renamed  int           // Number of renames handed to the executor
	Skipped  int           // Items not renamed (unchanged, invalid, duplicate)
	Location string        // Where the hand-off was written (manifest path), if any
	Duration time.Duration // Time taken by the executor
}

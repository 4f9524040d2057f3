// Package display provides terminal output for progress and warnings.
//
// Progress is printed one line per file while documents are uploaded to the
// document service:
//
//	progress := display.NewProgressIndicator(os.Stderr, "Uploading documents", len(files))
//	progress.Start()
//	for _, f := range files {
//	    progress.Step(f)
//	}
//	progress.Complete("Processed 3 documents")
//
// Warnings carry an optional message, file list and suggestion. PlanWarnings
// derives them from a reviewed plan:
//
//	for _, w := range display.PlanWarnings(plan) {
//	    w.Display(os.Stderr)
//	}
//
// Colors come from fatih/color and are dropped automatically when output is
// not a terminal or NO_COLOR is set.
package display

package engine

import "time"

// ProgressReporter reports progress during a reconciliation pass, the same
// start/step/complete shape the teacher's graph builder drives during a
// full graph rebuild.
type ProgressReporter interface {
	OnIndexingStart(totalFiles int)
	OnFileProcessed(processedFiles, totalFiles int, path string)
	OnIndexingComplete(replaced, deleted int, duration time.Duration)
}

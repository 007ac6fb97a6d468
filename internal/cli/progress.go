package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/lien-dev/lien/internal/engine"
)

// cliProgressReporter drives a terminal progress bar across an indexing
// run, the CLI-facing half of engine.ProgressReporter.
type cliProgressReporter struct {
	bar *progressbar.ProgressBar
}

var _ engine.ProgressReporter = (*cliProgressReporter)(nil)

func (c *cliProgressReporter) OnIndexingStart(totalFiles int) {
	if totalFiles == 0 {
		return
	}
	c.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("indexing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *cliProgressReporter) OnFileProcessed(processedFiles, totalFiles int, path string) {
	if c.bar != nil {
		c.bar.Add(1)
	}
}

func (c *cliProgressReporter) OnIndexingComplete(replaced, deleted int, duration time.Duration) {
	if c.bar != nil {
		c.bar.Finish()
	}
}

package display

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressSink receives one callback per completed batch job, in completion
// order. completed is a monotonic counter from 1 to total.
type ProgressSink interface {
	OnJobComplete(completed, total int)
}

// NoopSink discards progress events. Used by tests and by callers that
// report progress through other means.
type NoopSink struct{}

func (NoopSink) OnJobComplete(int, int) {}

// BarSink renders batch progress as a terminal bar on stderr.
type BarSink struct {
	bar *progressbar.ProgressBar
}

// NewBarSink creates a progress bar for total jobs with the given label.
func NewBarSink(total int, label string) *BarSink {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
	return &BarSink{bar: bar}
}

// OnJobComplete advances the bar to the completed count. The batch runner
// serializes calls, so Set never moves backwards.
func (s *BarSink) OnJobComplete(completed, total int) {
	_ = s.bar.Set(completed)
}

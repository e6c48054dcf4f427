// Package pipeline glues file enumeration, the concurrent job runner, and
// per-item media work into the batch operations behind each subcommand.
package pipeline

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/backmassage/framegrab/internal/display"
	"github.com/backmassage/framegrab/internal/ffmpeg"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/probe"
)

// mirrorWorkers bounds concurrency for the directory subcommands that carry
// no --workers flag (dirfirst, compress).
const mirrorWorkers = 4

// Deps bundles the injectable collaborators every pipeline operation needs.
// Zero fields are filled with the real ffmpeg-backed implementations, so
// callers outside tests can pass Deps{}.
type Deps struct {
	Probe   probe.Func
	Runner  ffmpeg.Runner
	NewSink func(total int, label string) display.ProgressSink
}

func (d Deps) fill() Deps {
	if d.Probe == nil {
		d.Probe = probe.Probe
	}
	if d.Runner == nil {
		d.Runner = ffmpeg.ExecRunner{}
	}
	if d.NewSink == nil {
		d.NewSink = func(total int, label string) display.ProgressSink {
			return display.NewBarSink(total, label)
		}
	}
	return d
}

// newRunID tags one batch run in the logs so interleaved log files stay
// attributable.
func newRunID() string {
	return uuid.NewString()[:8]
}

func logRunHeader(log *logging.Logger, label string, total int) {
	log.Info("[run %s] %s: %d jobs", newRunID(), label, total)
}

func logSummary(log *logging.Logger, stats RunStats) {
	if stats.Failed > 0 {
		log.Warn("Done: %d/%d succeeded (%d failed)", stats.Succeeded, stats.Total, stats.Failed)
		return
	}
	log.Success("Done: %d/%d succeeded", stats.Succeeded, stats.Total)
}

func logByteTotals(log *logging.Logger, stats RunStats) {
	if stats.TotalInputBytes == 0 {
		return
	}
	log.Info("Total: %s -> %s (saved %s)",
		display.FormatBytes(stats.TotalInputBytes),
		display.FormatBytes(stats.TotalOutputBytes),
		display.FormatBytes(stats.SpaceSaved()))
}

// relTo renders path relative to root for log lines, falling back to the
// base name when the paths do not share a prefix.
func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return rel
}

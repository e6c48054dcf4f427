package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/backmassage/framegrab/internal/batch"
	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/extract"
	"github.com/backmassage/framegrab/internal/logging"
)

// ExtractRange extracts frames opts.Start..opts.End (inclusive, stepping by
// opts.Delta) from one video into opts.OutputDir as frame_<n>.jpg, running
// opts.Workers extractions concurrently. Each frame failure is isolated;
// the run continues and the failure is counted.
func ExtractRange(ctx context.Context, d Deps, opts config.BatchOptions, log *logging.Logger) (RunStats, error) {
	d = d.fill()

	indices := extract.RangeIndices(opts.Start, opts.End, opts.Delta)
	if len(indices) == 0 {
		return RunStats{}, fmt.Errorf("no frames in range %d..%d step %d", opts.Start, opts.End, opts.Delta)
	}

	loc := &extract.Locator{Probe: d.Probe, Runner: d.Runner, Quality: opts.Quality}
	return runExtract(ctx, loc, opts, indices, d, log, "batch")
}

// ExtractSample probes the video, derives frame indices spaced opts.Interval
// seconds apart across its duration, and extracts them like ExtractRange.
func ExtractSample(ctx context.Context, d Deps, opts config.SampleOptions, log *logging.Logger) (RunStats, error) {
	d = d.fill()

	info, err := d.Probe(ctx, opts.Input)
	if err != nil {
		return RunStats{}, err
	}

	indices := extract.IntervalIndices(info, opts.Interval)
	if len(indices) == 0 {
		return RunStats{}, fmt.Errorf("no frames to sample in %s (duration %.2fs, interval %.2fs)",
			opts.Input, info.Duration, opts.Interval)
	}

	loc := &extract.Locator{Probe: d.Probe, Runner: d.Runner, Quality: opts.Quality}
	ext := config.BatchOptions{
		Common: opts.Common, Input: opts.Input, OutputDir: opts.OutputDir,
		Workers: opts.Workers, Quality: opts.Quality,
	}
	return runExtract(ctx, loc, ext, indices, d, log, "sample")
}

func runExtract(ctx context.Context, loc *extract.Locator, opts config.BatchOptions, indices []int64, d Deps, log *logging.Logger, label string) (RunStats, error) {
	jobs := make([]batch.Job[int64], len(indices))
	for i, idx := range indices {
		jobs[i] = batch.Job[int64]{
			Input:      idx,
			OutputPath: filepath.Join(opts.OutputDir, fmt.Sprintf("frame_%d.jpg", idx)),
		}
	}

	logRunHeader(log, label, len(jobs))
	sink := d.NewSink(len(jobs), "Extracting")

	results := batch.Run(jobs, opts.Workers, sink, func(job batch.Job[int64]) batch.Result[int64] {
		err := loc.ExtractFrame(ctx, opts.Input, job.OutputPath, job.Input)
		return batch.Result[int64]{Job: job, Err: err}
	})

	stats := RunStats{Total: len(results)}
	for _, res := range results {
		name := filepath.Base(res.Job.OutputPath)
		if res.Failed() {
			stats.Failed++
			log.Warn("%s: %v", name, res.Err)
			continue
		}
		stats.Succeeded++
		log.Debug(opts.Verbose, "%s", name)
	}
	logSummary(log, stats)
	return stats, nil
}

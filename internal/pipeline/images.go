package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/backmassage/framegrab/internal/batch"
	"github.com/backmassage/framegrab/internal/compress"
	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/display"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/walk"
)

// imageTask carries one source image through the runner; the worker fills
// in the byte counters so totals can be summed without extra locking.
type imageTask struct {
	path     string
	inBytes  int64
	outBytes int64
}

// CompressImages transcodes every matching image under opts.InputDir to a
// mirrored .webp under opts.OutputDir. With a bounded size window each image
// runs the quality search; otherwise a single encode at opts.Quality.
func CompressImages(ctx context.Context, d Deps, opts config.CompressOptions, log *logging.Logger) (RunStats, error) {
	d = d.fill()

	files, err := walk.Enumerate(opts.InputDir, ImageExts, opts.Recursive)
	if err != nil {
		return RunStats{}, err
	}
	if len(files) == 0 {
		return RunStats{}, fmt.Errorf("no image files found under %s", opts.InputDir)
	}

	jobs := make([]batch.Job[*imageTask], len(files))
	for i, path := range files {
		out, err := walk.MirrorPath(opts.InputDir, opts.OutputDir, path, ".webp")
		if err != nil {
			return RunStats{}, err
		}
		jobs[i] = batch.Job[*imageTask]{Input: &imageTask{path: path}, OutputPath: out}
	}

	logRunHeader(log, "compress", len(jobs))
	sink := d.NewSink(len(jobs), "Compressing")

	enc := compress.WebPEncoder{Runner: d.Runner}
	win := compress.SizeWindow{MinKB: opts.MinSizeKB, MaxKB: opts.MaxSizeKB}

	results := batch.Run(jobs, mirrorWorkers, sink, func(job batch.Job[*imageTask]) batch.Result[*imageTask] {
		res, err := enc.CompressFile(ctx, job.Input.path, job.OutputPath, opts.Quality, win)
		if err != nil {
			return batch.Result[*imageTask]{Job: job, Err: err}
		}
		if fi, statErr := os.Stat(job.Input.path); statErr == nil {
			job.Input.inBytes = fi.Size()
		}
		job.Input.outBytes = int64(len(res.Data))
		detail := fmt.Sprintf("%s, quality=%d", display.FormatKB(res.SizeKB), res.Quality)
		return batch.Result[*imageTask]{Job: job, Detail: detail}
	})

	stats := RunStats{Total: len(results)}
	for _, res := range results {
		rel := relTo(opts.InputDir, res.Job.Input.path)
		if res.Failed() {
			stats.Failed++
			log.Warn("%s: %v", rel, res.Err)
			continue
		}
		stats.Succeeded++
		stats.TotalInputBytes += res.Job.Input.inBytes
		stats.TotalOutputBytes += res.Job.Input.outBytes
		log.Success("%s (%s)", rel, res.Detail)
	}
	logSummary(log, stats)
	logByteTotals(log, stats)
	return stats, nil
}

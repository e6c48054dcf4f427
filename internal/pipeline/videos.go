package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/framegrab/internal/batch"
	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/display"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/recode"
	"github.com/backmassage/framegrab/internal/walk"
)

// videoTask carries one source video through the runner along with the
// stats the worker measured.
type videoTask struct {
	path  string
	stats recode.Stats
}

// CompressVideos re-encodes opts.Input to H.264 at the quality-derived CRF.
// Input may be a single file or a directory; directories are mirrored into
// opts.Output as .mp4 files and processed with opts.Workers concurrent
// encodes.
func CompressVideos(ctx context.Context, d Deps, opts config.VCompressOptions, log *logging.Logger) (RunStats, error) {
	d = d.fill()

	fi, err := os.Stat(opts.Input)
	if err != nil {
		return RunStats{}, err
	}
	if !fi.IsDir() {
		return recodeOne(ctx, d, opts, log)
	}
	if opts.Output == "" {
		return RunStats{}, fmt.Errorf("vcompress: --output is required when input is a directory")
	}

	videos, err := walk.Enumerate(opts.Input, VideoExts, opts.Recursive)
	if err != nil {
		return RunStats{}, err
	}
	if len(videos) == 0 {
		return RunStats{}, fmt.Errorf("no video files found under %s", opts.Input)
	}

	jobs := make([]batch.Job[*videoTask], len(videos))
	for i, path := range videos {
		out, err := walk.MirrorPath(opts.Input, opts.Output, path, ".mp4")
		if err != nil {
			return RunStats{}, err
		}
		jobs[i] = batch.Job[*videoTask]{Input: &videoTask{path: path}, OutputPath: out}
	}

	logRunHeader(log, "vcompress", len(jobs))
	sink := d.NewSink(len(jobs), "Recoding")

	rec := recode.Recoder{Runner: d.Runner}
	results := batch.Run(jobs, opts.Workers, sink, func(job batch.Job[*videoTask]) batch.Result[*videoTask] {
		st, err := rec.Recode(ctx, job.Input.path, job.OutputPath, opts.Quality)
		if err != nil {
			return batch.Result[*videoTask]{Job: job, Err: err}
		}
		job.Input.stats = st
		return batch.Result[*videoTask]{Job: job, Detail: recodeDetail(st)}
	})

	stats := RunStats{Total: len(results)}
	for _, res := range results {
		rel := relTo(opts.Input, res.Job.Input.path)
		if res.Failed() {
			stats.Failed++
			log.Warn("%s: %v", rel, res.Err)
			continue
		}
		stats.Succeeded++
		stats.TotalInputBytes += res.Job.Input.stats.InputBytes
		stats.TotalOutputBytes += res.Job.Input.stats.OutputBytes
		log.Success("%s (%s)", rel, res.Detail)
	}
	logSummary(log, stats)
	logByteTotals(log, stats)
	return stats, nil
}

// recodeOne handles the single-file form of vcompress. An empty opts.Output
// derives <stem>_compressed.mp4 next to the input.
func recodeOne(ctx context.Context, d Deps, opts config.VCompressOptions, log *logging.Logger) (RunStats, error) {
	output := opts.Output
	if output == "" {
		stem := strings.TrimSuffix(opts.Input, filepath.Ext(opts.Input))
		output = stem + "_compressed.mp4"
	}

	rec := recode.Recoder{Runner: d.Runner}
	st, err := rec.Recode(ctx, opts.Input, output, opts.Quality)
	if err != nil {
		return RunStats{Total: 1, Failed: 1}, err
	}

	log.Success("%s -> %s (%s)", filepath.Base(opts.Input), filepath.Base(output), recodeDetail(st))
	return RunStats{
		Total:            1,
		Succeeded:        1,
		TotalInputBytes:  st.InputBytes,
		TotalOutputBytes: st.OutputBytes,
	}, nil
}

func recodeDetail(st recode.Stats) string {
	return fmt.Sprintf("%s -> %s, -%.1f%%",
		display.FormatBytes(st.InputBytes), display.FormatBytes(st.OutputBytes), st.Ratio)
}

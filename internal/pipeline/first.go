package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/backmassage/framegrab/internal/batch"
	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/extract"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/walk"
)

// FirstFrames extracts frame 0 of every video under opts.InputDir into a
// mirrored .jpg tree under opts.OutputDir. With opts.Compress the stills are
// then converted to size-bounded WebP in place and the JPEG intermediates
// removed, so only .webp files remain in the output tree.
func FirstFrames(ctx context.Context, d Deps, opts config.DirFirstOptions, log *logging.Logger) (RunStats, error) {
	d = d.fill()

	videos, err := walk.Enumerate(opts.InputDir, FirstFrameExts, opts.Recursive)
	if err != nil {
		return RunStats{}, err
	}
	if len(videos) == 0 {
		return RunStats{}, fmt.Errorf("no video files found under %s", opts.InputDir)
	}

	jobs := make([]batch.Job[string], len(videos))
	for i, path := range videos {
		out, err := walk.MirrorPath(opts.InputDir, opts.OutputDir, path, ".jpg")
		if err != nil {
			return RunStats{}, err
		}
		jobs[i] = batch.Job[string]{Input: path, OutputPath: out}
	}

	logRunHeader(log, "dirfirst", len(jobs))
	sink := d.NewSink(len(jobs), "Extracting")

	loc := &extract.Locator{Probe: d.Probe, Runner: d.Runner, Quality: 95}
	results := batch.Run(jobs, mirrorWorkers, sink, func(job batch.Job[string]) batch.Result[string] {
		err := loc.ExtractFrame(ctx, job.Input, job.OutputPath, 0)
		return batch.Result[string]{Job: job, Err: err}
	})

	stats := RunStats{Total: len(results)}
	for _, res := range results {
		rel := relTo(opts.InputDir, res.Job.Input)
		if res.Failed() {
			stats.Failed++
			log.Warn("%s: %v", rel, res.Err)
			continue
		}
		stats.Succeeded++
		log.Debug(opts.Verbose, "%s", rel)
	}
	logSummary(log, stats)

	if !opts.Compress || stats.Succeeded == 0 {
		return stats, nil
	}

	// Second phase: rewrite the extracted stills as WebP inside the output
	// tree, then drop everything that is not a .webp.
	log.Info("Converting stills to WebP")
	cOpts := config.CompressOptions{
		Common:    opts.Common,
		InputDir:  opts.OutputDir,
		OutputDir: opts.OutputDir,
		Recursive: opts.Recursive,
		Quality:   opts.WebPQuality,
		MaxSizeKB: opts.MaxSizeKB,
		MinSizeKB: opts.MinSizeKB,
	}
	cStats, err := CompressImages(ctx, d, cOpts, log)
	if err != nil {
		return stats, err
	}
	stats.Failed += cStats.Failed

	if err := removeNonWebP(opts.OutputDir, opts.Recursive); err != nil {
		return stats, err
	}
	return stats, nil
}

// removeNonWebP deletes every regular file under dir whose name does not end
// in .webp (compared case-insensitively).
func removeNonWebP(dir string, recursive bool) error {
	files, err := walk.Enumerate(dir, nil, recursive)
	if err != nil {
		return err
	}
	for _, path := range files {
		if strings.HasSuffix(strings.ToLower(path), ".webp") {
			continue
		}
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}

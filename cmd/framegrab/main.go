// Command framegrab is the entrypoint for the framegrab frame-extraction
// and media-compression CLI. It dispatches to one subcommand per operation:
// single, batch, sample, info, dirfirst, compress, vcompress, check.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/framegrab/internal/check"
	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/display"
	"github.com/backmassage/framegrab/internal/extract"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/pipeline"
	"github.com/backmassage/framegrab/internal/probe"
)

// version and commit are set at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		config.Usage(os.Stderr, version)
		return 1
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "-v", "--version", "version":
		printVersion()
		return 0
	case "-h", "--help", "help":
		config.Usage(os.Stdout, version)
		return 0
	case "single":
		return runSingle(rest)
	case "batch":
		return runBatch(rest)
	case "sample":
		return runSample(rest)
	case "info":
		return runInfo(rest)
	case "dirfirst":
		return runDirFirst(rest)
	case "compress":
		return runCompress(rest)
	case "vcompress":
		return runVCompress(rest)
	case "check":
		return runCheck(rest)
	default:
		fmt.Fprintf(os.Stderr, "framegrab: unknown command %q\n\n", cmd)
		config.Usage(os.Stderr, version)
		return 1
	}
}

func printVersion() {
	fmt.Printf("framegrab v%s (%s)\n", version, commit)
	if fv := check.FfmpegVersion(); fv != "" {
		fmt.Println(fv)
	} else {
		fmt.Println("ffmpeg: not found")
	}
}

// fail prints one error line on stderr. Every subcommand funnels its
// terminal errors through here so the failure surface stays uniform.
func fail(err error) int {
	fmt.Fprintf(os.Stderr, "framegrab: %v\n", err)
	return 1
}

func newLogger(c config.Common) (*logging.Logger, int) {
	log, err := logging.NewLogger(c)
	if err != nil {
		return nil, fail(err)
	}
	return log, 0
}

// exitCode maps batch stats onto the process exit code: any per-item
// failure exits 1 even though the run completed.
func exitCode(stats pipeline.RunStats) int {
	if stats.Failed > 0 {
		return 1
	}
	return 0
}

func runSingle(args []string) int {
	opts, err := config.ParseSingle(args)
	if err != nil {
		return fail(err)
	}
	log, code := newLogger(opts.Common)
	if log == nil {
		return code
	}
	defer log.Close()

	if err := check.CheckDeps(); err != nil {
		return fail(err)
	}

	ctx := context.Background()
	loc := extract.NewLocator(opts.Quality)

	if opts.Frame >= 0 {
		output := opts.Output
		if output == "" {
			output = defaultFrameOutput(opts.Input, opts.Frame)
		}
		if err := loc.ExtractFrame(ctx, opts.Input, output, opts.Frame); err != nil {
			return fail(err)
		}
		log.Success("Extracted frame %d -> %s", opts.Frame, output)
		return 0
	}

	output := opts.Output
	if output == "" {
		output = defaultTimeOutput(opts.Input, opts.Time)
	}
	frame, err := loc.ExtractByTime(ctx, opts.Input, output, opts.Time)
	if err != nil {
		return fail(err)
	}
	log.Success("Extracted frame %d (t=%.2fs) -> %s", frame, opts.Time, output)
	return 0
}

func runBatch(args []string) int {
	opts, err := config.ParseBatch(args)
	if err != nil {
		return fail(err)
	}
	log, code := newLogger(opts.Common)
	if log == nil {
		return code
	}
	defer log.Close()
	display.PrintBanner()

	if err := check.CheckDeps(); err != nil {
		return fail(err)
	}

	stats, err := pipeline.ExtractRange(context.Background(), pipeline.Deps{}, opts, log)
	if err != nil {
		return fail(err)
	}
	return exitCode(stats)
}

func runSample(args []string) int {
	opts, err := config.ParseSample(args)
	if err != nil {
		return fail(err)
	}
	log, code := newLogger(opts.Common)
	if log == nil {
		return code
	}
	defer log.Close()
	display.PrintBanner()

	if err := check.CheckDeps(); err != nil {
		return fail(err)
	}

	stats, err := pipeline.ExtractSample(context.Background(), pipeline.Deps{}, opts, log)
	if err != nil {
		return fail(err)
	}
	return exitCode(stats)
}

func runInfo(args []string) int {
	opts, err := config.ParseInfo(args)
	if err != nil {
		return fail(err)
	}
	log, code := newLogger(opts.Common)
	if log == nil {
		return code
	}
	defer log.Close()

	if err := check.CheckDeps(); err != nil {
		return fail(err)
	}

	info, err := probe.Probe(context.Background(), opts.Input)
	if err != nil {
		return fail(err)
	}

	log.Info("File:         %s", opts.Input)
	log.Info("Resolution:   %dx%d", info.Width, info.Height)
	log.Info("FPS:          %.3f", info.FPS)
	log.Info("Total frames: %d", info.TotalFrames)
	log.Info("Duration:     %.2fs", info.Duration)
	return 0
}

func runDirFirst(args []string) int {
	opts, err := config.ParseDirFirst(args)
	if err != nil {
		return fail(err)
	}
	log, code := newLogger(opts.Common)
	if log == nil {
		return code
	}
	defer log.Close()
	display.PrintBanner()

	if err := check.CheckDeps(); err != nil {
		return fail(err)
	}

	stats, err := pipeline.FirstFrames(context.Background(), pipeline.Deps{}, opts, log)
	if err != nil {
		return fail(err)
	}
	return exitCode(stats)
}

func runCompress(args []string) int {
	opts, err := config.ParseCompress(args)
	if err != nil {
		return fail(err)
	}
	log, code := newLogger(opts.Common)
	if log == nil {
		return code
	}
	defer log.Close()
	display.PrintBanner()

	if err := check.CheckDeps(); err != nil {
		return fail(err)
	}

	stats, err := pipeline.CompressImages(context.Background(), pipeline.Deps{}, opts, log)
	if err != nil {
		return fail(err)
	}
	return exitCode(stats)
}

func runVCompress(args []string) int {
	opts, err := config.ParseVCompress(args)
	if err != nil {
		return fail(err)
	}
	log, code := newLogger(opts.Common)
	if log == nil {
		return code
	}
	defer log.Close()
	display.PrintBanner()

	if err := check.CheckDeps(); err != nil {
		return fail(err)
	}

	stats, err := pipeline.CompressVideos(context.Background(), pipeline.Deps{}, opts, log)
	if err != nil {
		return fail(err)
	}
	return exitCode(stats)
}

func runCheck(args []string) int {
	common, err := config.ParseCheck(args)
	if err != nil {
		return fail(err)
	}
	log, code := newLogger(common)
	if log == nil {
		return code
	}
	defer log.Close()

	check.RunCheck(log)
	return 0
}

// defaultFrameOutput derives <stem>_frame_<n>.jpg next to the input.
func defaultFrameOutput(input string, frame int64) string {
	return fmt.Sprintf("%s_frame_%d.jpg", stem(input), frame)
}

// defaultTimeOutput derives <stem>_time_<t>s.jpg next to the input.
func defaultTimeOutput(input string, timeSec float64) string {
	return fmt.Sprintf("%s_time_%.2fs.jpg", stem(input), timeSec)
}

func stem(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

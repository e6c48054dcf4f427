package config

// This file implements CLI flag parsing for each subcommand.
// Short and long flag names are both registered (the flag package treats
// -name and --name identically), matching the reference CLI surface.
// Color flags are captured as bools and applied after Parse so the
// ColorAuto default holds unless the user passes one.

import (
	"flag"
	"fmt"
	"os"
)

// ParseSingle parses the `single` subcommand arguments.
func ParseSingle(args []string) (SingleOptions, error) {
	o := SingleOptions{Common: defaultCommon(), Frame: -1, Time: -1, Quality: 95}
	fs := newFlagSet("single")
	apply := registerCommon(fs, &o.Common)
	stringFlag(fs, &o.Input, "i", "input", "Input video path")
	stringFlag(fs, &o.Output, "o", "output", "Output image path (derived from input when omitted)")
	int64Flag(fs, &o.Frame, "f", "frame", "Frame index to extract")
	fs.Float64Var(&o.Time, "t", o.Time, "Timestamp in seconds to extract")
	fs.Float64Var(&o.Time, "time", o.Time, "Timestamp in seconds to extract")
	fs.IntVar(&o.Quality, "quality", o.Quality, "JPEG quality 0-100")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	apply()
	return o, o.Validate()
}

// ParseBatch parses the `batch` subcommand arguments.
func ParseBatch(args []string) (BatchOptions, error) {
	o := BatchOptions{Common: defaultCommon(), Delta: 1, Workers: 4, Quality: 95}
	fs := newFlagSet("batch")
	apply := registerCommon(fs, &o.Common)
	stringFlag(fs, &o.Input, "i", "input", "Input video path")
	stringFlag(fs, &o.OutputDir, "o", "output", "Output directory")
	int64Flag(fs, &o.Start, "s", "start", "First frame index")
	int64Flag(fs, &o.End, "e", "end", "Last frame index (inclusive)")
	int64Flag(fs, &o.Delta, "d", "delta", "Frame step")
	intFlag(fs, &o.Workers, "w", "workers", "Worker count")
	fs.IntVar(&o.Quality, "quality", o.Quality, "JPEG quality 0-100")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	apply()
	return o, o.Validate()
}

// ParseSample parses the `sample` subcommand arguments.
func ParseSample(args []string) (SampleOptions, error) {
	o := SampleOptions{Common: defaultCommon(), Interval: 1.0, Workers: 4, Quality: 95}
	fs := newFlagSet("sample")
	apply := registerCommon(fs, &o.Common)
	stringFlag(fs, &o.Input, "i", "input", "Input video path")
	stringFlag(fs, &o.OutputDir, "o", "output", "Output directory")
	fs.Float64Var(&o.Interval, "t", o.Interval, "Sampling interval in seconds")
	fs.Float64Var(&o.Interval, "interval", o.Interval, "Sampling interval in seconds")
	intFlag(fs, &o.Workers, "w", "workers", "Worker count")
	fs.IntVar(&o.Quality, "quality", o.Quality, "JPEG quality 0-100")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	apply()
	return o, o.Validate()
}

// ParseInfo parses the `info` subcommand arguments.
func ParseInfo(args []string) (InfoOptions, error) {
	o := InfoOptions{Common: defaultCommon()}
	fs := newFlagSet("info")
	apply := registerCommon(fs, &o.Common)
	stringFlag(fs, &o.Input, "i", "input", "Input video path")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	apply()
	return o, o.Validate()
}

// ParseDirFirst parses the `dirfirst` subcommand arguments.
func ParseDirFirst(args []string) (DirFirstOptions, error) {
	o := DirFirstOptions{Common: defaultCommon(), WebPQuality: 85, MaxSizeKB: 100, MinSizeKB: 50}
	fs := newFlagSet("dirfirst")
	apply := registerCommon(fs, &o.Common)
	stringFlag(fs, &o.InputDir, "i", "input_dir", "Input video directory")
	stringFlag(fs, &o.OutputDir, "o", "output_dir", "Output image directory")
	boolFlag(fs, &o.Recursive, "r", "recursive", "Recurse into subdirectories")
	boolFlag(fs, &o.Compress, "c", "compress", "Convert extracted stills to WebP")
	fs.IntVar(&o.WebPQuality, "webp-quality", o.WebPQuality, "WebP quality 0-100")
	fs.IntVar(&o.MaxSizeKB, "max-size", o.MaxSizeKB, "Maximum still size in KB (0 disables)")
	fs.IntVar(&o.MinSizeKB, "min-size", o.MinSizeKB, "Minimum still size in KB (0 disables)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	apply()
	return o, o.Validate()
}

// ParseCompress parses the `compress` subcommand arguments.
func ParseCompress(args []string) (CompressOptions, error) {
	o := CompressOptions{Common: defaultCommon(), Quality: 85, MaxSizeKB: 100, MinSizeKB: 50}
	fs := newFlagSet("compress")
	apply := registerCommon(fs, &o.Common)
	stringFlag(fs, &o.InputDir, "i", "input_dir", "Input image directory")
	stringFlag(fs, &o.OutputDir, "o", "output_dir", "Output WebP directory")
	boolFlag(fs, &o.Recursive, "r", "recursive", "Recurse into subdirectories")
	intFlag(fs, &o.Quality, "q", "quality", "WebP quality 0-100")
	fs.IntVar(&o.MaxSizeKB, "max-size", o.MaxSizeKB, "Maximum output size in KB (0 disables)")
	fs.IntVar(&o.MinSizeKB, "min-size", o.MinSizeKB, "Minimum output size in KB (0 disables)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	apply()
	return o, o.Validate()
}

// ParseVCompress parses the `vcompress` subcommand arguments.
func ParseVCompress(args []string) (VCompressOptions, error) {
	o := VCompressOptions{Common: defaultCommon(), Quality: 50, Workers: 2}
	fs := newFlagSet("vcompress")
	apply := registerCommon(fs, &o.Common)
	stringFlag(fs, &o.Input, "i", "input", "Input video file or directory")
	stringFlag(fs, &o.Output, "o", "output", "Output video file or directory")
	boolFlag(fs, &o.Recursive, "r", "recursive", "Recurse into subdirectories (directory input)")
	intFlag(fs, &o.Quality, "q", "quality", "Quality 0-100 (lower compresses harder)")
	intFlag(fs, &o.Workers, "w", "workers", "Worker count")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	apply()
	return o, o.Validate()
}

// ParseCheck parses the `check` subcommand arguments.
func ParseCheck(args []string) (Common, error) {
	c := defaultCommon()
	fs := newFlagSet("check")
	apply := registerCommon(fs, &c)
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	apply()
	return c, nil
}

// --- Shared registration helpers ---

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// registerCommon wires the flags every subcommand accepts and returns the
// function that resolves the color tri-state after Parse.
func registerCommon(fs *flag.FlagSet, c *Common) (apply func()) {
	var forceColor, noColor bool
	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&c.Verbose, "verbose", false, "Verbose output")
	fs.StringVar(&c.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&c.LogFile, "l", "", "Append logs to file")

	return func() {
		if noColor {
			c.ColorMode = ColorNever
		} else if forceColor {
			c.ColorMode = ColorAlways
		}
	}
}

// Usage prints the top-level command summary, column-aligned.
func Usage(w *os.File, version string) {
	lines := []struct {
		cmd  string
		desc string
	}{
		{"", "framegrab v" + version + " - batch video frame extraction and media compression"},
		{"", ""},
		{"  framegrab <command> [flags]", ""},
		{"", ""},
		{"Commands", ""},
		{"  single", "Extract one frame by index or timestamp"},
		{"  batch", "Extract a numeric frame range"},
		{"  sample", "Extract frames at a fixed time interval"},
		{"  info", "Show video stream information"},
		{"  dirfirst", "Extract the first frame of every video in a directory"},
		{"  compress", "Transcode a directory of images to size-bounded WebP"},
		{"  vcompress", "Re-encode a video file or directory"},
		{"  check", "Run system diagnostics (ffmpeg/ffprobe)"},
		{"", ""},
		{"  -v, --version", "Print version and exit"},
		{"", ""},
		{"Run 'framegrab <command> -h' for command flags.", ""},
	}

	const col1 = 18
	for _, l := range lines {
		if l.desc == "" {
			fmt.Fprintln(w, l.cmd)
			continue
		}
		if l.cmd == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.cmd)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.cmd, padding, "", l.desc)
	}
}

func stringFlag(fs *flag.FlagSet, p *string, short, long, usage string) {
	fs.StringVar(p, short, *p, usage)
	fs.StringVar(p, long, *p, usage)
}

func intFlag(fs *flag.FlagSet, p *int, short, long, usage string) {
	fs.IntVar(p, short, *p, usage)
	fs.IntVar(p, long, *p, usage)
}

func int64Flag(fs *flag.FlagSet, p *int64, short, long, usage string) {
	fs.Int64Var(p, short, *p, usage)
	fs.Int64Var(p, long, *p, usage)
}

func boolFlag(fs *flag.FlagSet, p *bool, short, long, usage string) {
	fs.BoolVar(p, short, *p, usage)
	fs.BoolVar(p, long, *p, usage)
}

// Package config holds per-subcommand runtime options: defaults, CLI flag
// parsing, and validation. Defaults match the reference tool for parity.
package config

import (
	"errors"
	"fmt"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Common holds the options shared by every subcommand: color handling,
// optional log-file sink, and verbosity.
type Common struct {
	ColorMode ColorMode
	LogFile   string
	Verbose   bool
}

// SingleOptions configures the `single` subcommand: extract one frame from
// one video, selected either by frame index or by timestamp.
type SingleOptions struct {
	Common
	Input   string
	Output  string  // Derived from Input when empty.
	Frame   int64   // Frame index; -1 when unset.
	Time    float64 // Timestamp in seconds; -1 when unset.
	Quality int     // JPEG quality 0-100. Default: 95.
}

// BatchOptions configures the `batch` subcommand: extract an explicit
// numeric range of frames from one video into a directory.
type BatchOptions struct {
	Common
	Input     string
	OutputDir string
	Start     int64
	End       int64
	Delta     int64 // Frame step. Default: 1.
	Workers   int   // Default: 4.
	Quality   int   // JPEG quality. Default: 95.
}

// SampleOptions configures the `sample` subcommand: extract frames at a
// fixed time interval across the whole video.
type SampleOptions struct {
	Common
	Input     string
	OutputDir string
	Interval  float64 // Seconds between samples. Default: 1.0.
	Workers   int     // Default: 4.
	Quality   int     // JPEG quality. Default: 95.
}

// InfoOptions configures the `info` subcommand.
type InfoOptions struct {
	Common
	Input string
}

// DirFirstOptions configures the `dirfirst` subcommand: extract the first
// frame of every video under a directory, optionally converting the
// resulting stills to WebP afterwards.
type DirFirstOptions struct {
	Common
	InputDir    string
	OutputDir   string
	Recursive   bool
	Compress    bool // Convert extracted stills to WebP and drop originals.
	WebPQuality int  // Default: 85.
	MaxSizeKB   int  // Upper size bound in KB; <=0 disables. Default: 100.
	MinSizeKB   int  // Lower size bound in KB; <=0 disables. Default: 50.
}

// CompressOptions configures the `compress` subcommand: transcode every
// image under a directory to WebP within a byte-size window.
type CompressOptions struct {
	Common
	InputDir  string
	OutputDir string
	Recursive bool
	Quality   int // Base WebP quality. Default: 85.
	MaxSizeKB int // Default: 100.
	MinSizeKB int // Default: 50.
}

// VCompressOptions configures the `vcompress` subcommand: re-encode a video
// file or every video under a directory.
type VCompressOptions struct {
	Common
	Input     string // File or directory.
	Output    string // File or directory, matching Input. Derived for file inputs when empty.
	Recursive bool
	Quality   int // 0-100, lower compresses harder. Default: 50.
	Workers   int // Default: 2 (video encode is CPU/memory heavy).
}

func defaultCommon() Common {
	return Common{ColorMode: ColorAuto}
}

// --- Validation ---

func (o *SingleOptions) Validate() error {
	if o.Input == "" {
		return errors.New("single: --input is required")
	}
	frameSet := o.Frame >= 0
	timeSet := o.Time >= 0
	if frameSet == timeSet {
		return errors.New("single: exactly one of --frame or --time is required")
	}
	return validQuality(o.Quality, "single")
}

func (o *BatchOptions) Validate() error {
	if o.Input == "" || o.OutputDir == "" {
		return errors.New("batch: --input and --output are required")
	}
	if o.Start < 0 {
		return fmt.Errorf("batch: start frame must be >= 0 (got %d)", o.Start)
	}
	if o.End < o.Start {
		return fmt.Errorf("batch: end frame %d is before start frame %d", o.End, o.Start)
	}
	if o.Delta < 1 {
		return fmt.Errorf("batch: delta must be >= 1 (got %d)", o.Delta)
	}
	if err := validWorkers(o.Workers, "batch"); err != nil {
		return err
	}
	return validQuality(o.Quality, "batch")
}

func (o *SampleOptions) Validate() error {
	if o.Input == "" || o.OutputDir == "" {
		return errors.New("sample: --input and --output are required")
	}
	if o.Interval <= 0 {
		return fmt.Errorf("sample: interval must be positive (got %g)", o.Interval)
	}
	if err := validWorkers(o.Workers, "sample"); err != nil {
		return err
	}
	return validQuality(o.Quality, "sample")
}

func (o *InfoOptions) Validate() error {
	if o.Input == "" {
		return errors.New("info: --input is required")
	}
	return nil
}

func (o *DirFirstOptions) Validate() error {
	if o.InputDir == "" || o.OutputDir == "" {
		return errors.New("dirfirst: --input_dir and --output_dir are required")
	}
	return validQuality(o.WebPQuality, "dirfirst")
}

func (o *CompressOptions) Validate() error {
	if o.InputDir == "" || o.OutputDir == "" {
		return errors.New("compress: --input_dir and --output_dir are required")
	}
	return validQuality(o.Quality, "compress")
}

func (o *VCompressOptions) Validate() error {
	if o.Input == "" {
		return errors.New("vcompress: --input is required")
	}
	if err := validWorkers(o.Workers, "vcompress"); err != nil {
		return err
	}
	return validQuality(o.Quality, "vcompress")
}

func validQuality(q int, cmd string) error {
	if q < 0 || q > 100 {
		return fmt.Errorf("%s: quality must be in 0-100 (got %d)", cmd, q)
	}
	return nil
}

func validWorkers(w int, cmd string) error {
	if w < 1 {
		return fmt.Errorf("%s: workers must be >= 1 (got %d)", cmd, w)
	}
	return nil
}

// Package extract locates and decodes single frames out of video
// containers, and schedules which frame indices a sampling run should
// visit.
package extract

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/backmassage/framegrab/internal/ffmpeg"
	"github.com/backmassage/framegrab/internal/probe"
	"github.com/backmassage/framegrab/internal/walk"
)

var (
	// ErrFrameOutOfRange reports a requested index at or past the known
	// frame count. Raised before any decode work.
	ErrFrameOutOfRange = errors.New("frame out of range")

	// ErrDecodeExhausted reports that the seek landed but no frame could
	// be decoded from that position.
	ErrDecodeExhausted = errors.New("no frame decoded")
)

// Locator extracts single frames as JPEG stills. Probe and Runner are
// injectable so the scheduling logic tests without real media.
type Locator struct {
	Probe   probe.Func
	Runner  ffmpeg.Runner
	Quality int // JPEG quality 0-100.
}

// NewLocator returns a Locator backed by real ffprobe/ffmpeg subprocesses.
func NewLocator(quality int) *Locator {
	return &Locator{
		Probe:   probe.Probe,
		Runner:  ffmpeg.ExecRunner{},
		Quality: quality,
	}
}

// ExtractFrame writes frame frameIndex of videoPath to outputPath, creating
// parent directories as needed. When the frame count is known, out-of-range
// indices fail before any decode work.
//
// The seek lands on the nearest keyframe at or before frameIndex/fps, and
// the first frame decoded from there is captured; for non-keyframe targets
// the still is therefore approximately frame N, not exactly. When fps is
// unknown no seek is performed and decoding starts from the beginning.
func (l *Locator) ExtractFrame(ctx context.Context, videoPath, outputPath string, frameIndex int64) error {
	info, err := l.Probe(ctx, videoPath)
	if err != nil {
		return err
	}

	if info.TotalFrames > 0 && frameIndex >= info.TotalFrames {
		return fmt.Errorf("%w: frame %d (total frames: %d)", ErrFrameOutOfRange, frameIndex, info.TotalFrames)
	}

	seek := info.FPS > 0
	var target float64
	if seek {
		target = float64(frameIndex) / info.FPS
	}
	return l.capture(ctx, videoPath, outputPath, target, seek)
}

// ExtractByTime writes the frame at timeSec to outputPath. Time-based
// requests are not bounds-checked against the duration. Returns the
// approximate frame index hit (floor(timeSec*fps)) for reporting.
func (l *Locator) ExtractByTime(ctx context.Context, videoPath, outputPath string, timeSec float64) (int64, error) {
	info, err := l.Probe(ctx, videoPath)
	if err != nil {
		return 0, err
	}

	if err := l.capture(ctx, videoPath, outputPath, timeSec, true); err != nil {
		return 0, err
	}
	return int64(math.Floor(timeSec * info.FPS)), nil
}

func (l *Locator) capture(ctx context.Context, videoPath, outputPath string, seekSeconds float64, seek bool) error {
	if err := walk.EnsureParent(outputPath); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	res := l.Runner.Run(ctx, ffmpeg.ExtractArgs(videoPath, outputPath, seekSeconds, seek, l.Quality))
	if res.Err != nil {
		return fmt.Errorf("%w: %s", ErrDecodeExhausted, ffmpeg.StderrTail(res.Stderr, 5))
	}

	// ffmpeg can exit 0 without writing anything when the seek point is
	// past the last packet.
	if fi, err := os.Stat(outputPath); err != nil || fi.Size() == 0 {
		return fmt.Errorf("%w: seek produced no frame at %.3fs", ErrDecodeExhausted, seekSeconds)
	}
	return nil
}

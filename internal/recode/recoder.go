// Package recode re-encodes video containers to H.264 at a quality-derived
// CRF, copying audio streams verbatim.
package recode

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/framegrab/internal/ffmpeg"
	"github.com/backmassage/framegrab/internal/walk"
)

// ErrRecodeFailed reports any failure during re-encoding. The partially
// written output is removed before the error surfaces.
var ErrRecodeFailed = errors.New("recode failed")

// CRFMax is the codec's worst-quality compression factor; quality 0 maps
// onto it, quality 100 onto 0.
const CRFMax = 51

// CRFForQuality maps the user-facing 0-100 quality knob onto the codec's
// inverse CRF scale: quality 100 -> 0 (best), 50 -> 25, 0 -> 51 (hardest
// compression). Integer division matches the reference mapping.
func CRFForQuality(quality int) int {
	if quality < 0 {
		quality = 0
	} else if quality > 100 {
		quality = 100
	}
	return CRFMax * (100 - quality) / 100
}

// Stats summarizes one completed recode.
type Stats struct {
	InputBytes  int64
	OutputBytes int64
	Ratio       float64 // Percent saved: (1 - output/input) * 100; 0 when input is empty.
}

// Recoder re-encodes videos through the ffmpeg boundary. Runner is
// injectable for tests.
type Recoder struct {
	Runner ffmpeg.Runner
}

// NewRecoder returns a Recoder backed by a real ffmpeg subprocess.
func NewRecoder() Recoder {
	return Recoder{Runner: ffmpeg.ExecRunner{}}
}

// Recode re-encodes input to output at the CRF derived from quality,
// creating parent directories as needed. Every video frame is re-encoded;
// audio streams are copied unmodified. On any failure the partial output
// file is deleted so no artifacts are left behind.
func (r Recoder) Recode(ctx context.Context, input, output string, quality int) (Stats, error) {
	if err := walk.EnsureParent(output); err != nil {
		return Stats{}, fmt.Errorf("%w: %s: %v", ErrRecodeFailed, output, err)
	}

	res := r.Runner.Run(ctx, ffmpeg.RecodeArgs(input, output, CRFForQuality(quality)))
	if res.Err != nil {
		os.Remove(output)
		return Stats{}, fmt.Errorf("%w: %s: %s", ErrRecodeFailed, input, ffmpeg.StderrTail(res.Stderr, 5))
	}

	outInfo, err := os.Stat(output)
	if err != nil || outInfo.Size() == 0 {
		os.Remove(output)
		return Stats{}, fmt.Errorf("%w: %s: encoder produced no output", ErrRecodeFailed, input)
	}

	stats := Stats{OutputBytes: outInfo.Size()}
	if inInfo, err := os.Stat(input); err == nil {
		stats.InputBytes = inInfo.Size()
	}
	if stats.InputBytes > 0 {
		stats.Ratio = (1 - float64(stats.OutputBytes)/float64(stats.InputBytes)) * 100
	}
	return stats, nil
}

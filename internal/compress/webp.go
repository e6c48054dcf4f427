package compress

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/framegrab/internal/ffmpeg"
	"github.com/backmassage/framegrab/internal/walk"
)

// ErrImageProcessing reports a codec or conversion failure on a single
// image. In batch contexts the image is skipped, never the batch.
var ErrImageProcessing = errors.New("image processing failed")

// WebPEncoder transcodes still images to lossy WebP via ffmpeg, encoding to
// a pipe so the convergence loop can measure candidate sizes in memory.
type WebPEncoder struct {
	Runner ffmpeg.Runner
}

// NewWebPEncoder returns an encoder backed by a real ffmpeg subprocess.
func NewWebPEncoder() WebPEncoder {
	return WebPEncoder{Runner: ffmpeg.ExecRunner{}}
}

// encodeFunc binds one input image into an EncodeFunc for Converge.
func (e WebPEncoder) encodeFunc(ctx context.Context, input string) EncodeFunc {
	return func(quality int) ([]byte, error) {
		res := e.Runner.Run(ctx, ffmpeg.WebPArgs(input, quality))
		if res.Err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrImageProcessing, input, ffmpeg.StderrTail(res.Stderr, 5))
		}
		if len(res.Stdout) == 0 {
			return nil, fmt.Errorf("%w: %s: encoder produced no output", ErrImageProcessing, input)
		}
		return res.Stdout, nil
	}
}

// CompressFile transcodes input to WebP at output. With a bounded window
// the quality search runs; otherwise a single encode at quality is written.
// Parent directories are created as needed.
func (e WebPEncoder) CompressFile(ctx context.Context, input, output string, quality int, win SizeWindow) (Encoding, error) {
	encode := e.encodeFunc(ctx, input)

	var enc Encoding
	if win.Bounded() {
		var err error
		enc, err = Converge(encode, quality, win)
		if err != nil {
			return Encoding{}, err
		}
	} else {
		data, err := encode(quality)
		if err != nil {
			return Encoding{}, err
		}
		enc = Encoding{Data: data, Quality: quality, SizeKB: float64(len(data)) / 1024}
	}

	if err := walk.EnsureParent(output); err != nil {
		return Encoding{}, fmt.Errorf("%w: %s: %v", ErrImageProcessing, output, err)
	}
	if err := os.WriteFile(output, enc.Data, 0o644); err != nil {
		return Encoding{}, fmt.Errorf("%w: %s: %v", ErrImageProcessing, output, err)
	}
	return enc, nil
}

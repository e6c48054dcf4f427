package ffmpeg

import (
	"strconv"
)

// JPEG qscale bounds used by ffmpeg's mjpeg encoder (-q:v). 2 is the best
// quality the encoder accepts, 31 the worst.
const (
	jpegScaleBest  = 2
	jpegScaleWorst = 31
)

// ExtractArgs builds the command that seeks to seekSeconds and writes the
// first decoded frame as a JPEG still. When seek is false no -ss flag is
// emitted and decoding starts from the container's first packet.
func ExtractArgs(input, output string, seekSeconds float64, seek bool, quality int) []string {
	args := []string{"ffmpeg", "-hide_banner", "-loglevel", "error", "-y"}
	if seek {
		args = append(args, "-ss", strconv.FormatFloat(seekSeconds, 'f', 6, 64))
	}
	args = append(args,
		"-i", input,
		"-frames:v", "1",
		"-q:v", strconv.Itoa(JPEGScale(quality)),
		output,
	)
	return args
}

// JPEGScale maps a user-facing 0-100 quality onto the mjpeg encoder's
// inverted 2-31 qscale range.
func JPEGScale(quality int) int {
	if quality < 0 {
		quality = 0
	} else if quality > 100 {
		quality = 100
	}
	return jpegScaleBest + (jpegScaleWorst-jpegScaleBest)*(100-quality)/100
}

// WebPArgs builds the command that transcodes a still image to lossy WebP
// on stdout, so callers can measure the encoded size in memory without a
// round trip through the filesystem.
func WebPArgs(input string, quality int) []string {
	return []string{
		"ffmpeg", "-hide_banner", "-loglevel", "error",
		"-i", input,
		"-frames:v", "1",
		"-c:v", "libwebp",
		"-quality", strconv.Itoa(quality),
		"-f", "image2pipe",
		"pipe:1",
	}
}

// RecodeArgs builds the command that re-encodes the video stream to H.264
// at the given CRF and copies every audio stream verbatim.
func RecodeArgs(input, output string, crf int) []string {
	return []string{
		"ffmpeg", "-hide_banner", "-loglevel", "error", "-y",
		"-i", input,
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", strconv.Itoa(crf),
		"-pix_fmt", "yuv420p",
		"-c:a", "copy",
		output,
	}
}

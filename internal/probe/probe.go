// Package probe provides ffprobe-based media inspection. One JSON call per
// file yields the stream metadata the extraction and recoding paths need.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ErrMediaUnreadable reports that a container could not be opened, has no
// video stream, or its metadata could not be parsed.
var ErrMediaUnreadable = errors.New("media unreadable")

// MediaInfo holds the video stream metadata for one container. It is
// recomputed on every Probe call, never cached.
type MediaInfo struct {
	Width       int
	Height      int
	FPS         float64
	TotalFrames int64
	Duration    float64 // Seconds.
}

// Func is the probing function signature, injectable for tests.
type Func func(ctx context.Context, path string) (MediaInfo, error)

// Probe runs a single ffprobe JSON call against path and returns the parsed
// video stream metadata.
func Probe(ctx context.Context, path string) (MediaInfo, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return MediaInfo{}, fmt.Errorf("%w: ffprobe %q: %v", ErrMediaUnreadable, path, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a MediaInfo.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (MediaInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return MediaInfo{}, fmt.Errorf("%w: parse ffprobe JSON: %v", ErrMediaUnreadable, err)
	}
	return buildInfo(&raw)
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType    string         `json:"codec_type"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	AvgFrameRate string         `json:"avg_frame_rate"`
	NbFrames     string         `json:"nb_frames"`
	Duration     string         `json:"duration"`
	Disposition  map[string]int `json:"disposition"`
}

// buildInfo selects the primary video stream (first non-attached-pic) and
// derives the fields the container does not report directly. When the frame
// count is unreadable it is computed as floor(duration*fps) if both are
// positive, else left at 0.
func buildInfo(raw *ffprobeOutput) (MediaInfo, error) {
	var video *ffprobeStream
	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType == "video" && s.Disposition["attached_pic"] != 1 {
			video = s
			break
		}
	}
	if video == nil {
		return MediaInfo{}, fmt.Errorf("%w: no video stream", ErrMediaUnreadable)
	}

	info := MediaInfo{
		Width:       video.Width,
		Height:      video.Height,
		FPS:         parseRate(video.AvgFrameRate),
		TotalFrames: parseInt64(video.NbFrames),
	}

	info.Duration = parseFloat(video.Duration)
	if info.Duration == 0 {
		info.Duration = parseFloat(raw.Format.Duration)
	}

	if info.TotalFrames == 0 && info.FPS > 0 && info.Duration > 0 {
		info.TotalFrames = int64(math.Floor(info.Duration * info.FPS))
	}
	return info, nil
}

// parseRate parses ffprobe's "num/den" rational frame rate. Returns 0 for
// missing or degenerate values ("0/0" on streams without a rate).
func parseRate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return parseFloat(s)
	}
	n := parseFloat(num)
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	s = strings.TrimSpace(s)
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

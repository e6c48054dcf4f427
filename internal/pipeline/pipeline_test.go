package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/framegrab/internal/config"
	"github.com/backmassage/framegrab/internal/display"
	"github.com/backmassage/framegrab/internal/ffmpeg"
	"github.com/backmassage/framegrab/internal/logging"
	"github.com/backmassage/framegrab/internal/probe"
)

// fakeRunner simulates ffmpeg: pipe:1 invocations return canned WebP bytes,
// file-output invocations write a small payload to the last argument.
type fakeRunner struct {
	webp []byte
}

func (r fakeRunner) Run(_ context.Context, args []string) ffmpeg.ExecResult {
	last := args[len(args)-1]
	if last == "pipe:1" {
		return ffmpeg.ExecResult{Stdout: r.webp}
	}
	os.WriteFile(last, []byte("payload"), 0o644)
	return ffmpeg.ExecResult{}
}

func fakeProbe(info probe.MediaInfo) probe.Func {
	return func(context.Context, string) (probe.MediaInfo, error) {
		return info, nil
	}
}

func testDeps(runner ffmpeg.Runner, info probe.MediaInfo) Deps {
	return Deps{
		Probe:  fakeProbe(info),
		Runner: runner,
		NewSink: func(int, string) display.ProgressSink {
			return display.NoopSink{}
		},
	}
}

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(config.Common{ColorMode: config.ColorNever})
	if err != nil {
		t.Fatal(err)
	}
	return log
}

func stdInfo() probe.MediaInfo {
	return probe.MediaInfo{Width: 1920, Height: 1080, FPS: 20, TotalFrames: 100, Duration: 5}
}

func TestExtractRange(t *testing.T) {
	dir := t.TempDir()
	opts := config.BatchOptions{
		Input: "in.mp4", OutputDir: dir,
		Start: 0, End: 10, Delta: 5, Workers: 2, Quality: 95,
	}

	stats, err := ExtractRange(context.Background(), testDeps(fakeRunner{}, stdInfo()), opts, testLogger(t))
	if err != nil {
		t.Fatalf("ExtractRange() error = %v", err)
	}
	if stats.Total != 3 || stats.Succeeded != 3 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want 3/3/0", stats)
	}
	for _, n := range []string{"frame_0.jpg", "frame_5.jpg", "frame_10.jpg"} {
		if _, err := os.Stat(filepath.Join(dir, n)); err != nil {
			t.Errorf("missing %s: %v", n, err)
		}
	}
}

func TestExtractRangeIsolatesOutOfRange(t *testing.T) {
	dir := t.TempDir()
	// Frames 89, 99, 109: the last exceeds the 100-frame video.
	opts := config.BatchOptions{
		Input: "in.mp4", OutputDir: dir,
		Start: 89, End: 109, Delta: 10, Workers: 2, Quality: 95,
	}

	stats, err := ExtractRange(context.Background(), testDeps(fakeRunner{}, stdInfo()), opts, testLogger(t))
	if err != nil {
		t.Fatalf("ExtractRange() error = %v", err)
	}
	if stats.Succeeded != 2 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 2 succeeded / 1 failed", stats)
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_99.jpg")); err != nil {
		t.Error("frame_99.jpg should exist despite sibling failure")
	}
}

func TestExtractRangeEmpty(t *testing.T) {
	opts := config.BatchOptions{Input: "in.mp4", OutputDir: t.TempDir(), Start: 5, End: 5, Delta: 0, Workers: 1}
	if _, err := ExtractRange(context.Background(), testDeps(fakeRunner{}, stdInfo()), opts, testLogger(t)); err == nil {
		t.Error("expected error for empty frame range")
	}
}

func TestExtractSample(t *testing.T) {
	dir := t.TempDir()
	opts := config.SampleOptions{
		Input: "in.mp4", OutputDir: dir,
		Interval: 1, Workers: 4, Quality: 95,
	}

	// 5s at 1s interval: samples at t=0..5 -> 6 points, t=5 is frame 100
	// which the total-frame filter drops.
	stats, err := ExtractSample(context.Background(), testDeps(fakeRunner{}, stdInfo()), opts, testLogger(t))
	if err != nil {
		t.Fatalf("ExtractSample() error = %v", err)
	}
	if stats.Total != 5 || stats.Succeeded != 5 {
		t.Errorf("stats = %+v, want 5 extracted", stats)
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_80.jpg")); err != nil {
		t.Errorf("missing frame_80.jpg: %v", err)
	}
}

func TestExtractSampleNothingToSample(t *testing.T) {
	info := probe.MediaInfo{FPS: 20, TotalFrames: 0, Duration: 5}
	opts := config.SampleOptions{Input: "in.mp4", OutputDir: t.TempDir(), Interval: 1, Workers: 1}
	if _, err := ExtractSample(context.Background(), testDeps(fakeRunner{}, info), opts, testLogger(t)); err == nil {
		t.Error("expected error when no sample points survive")
	}
}

func seedTree(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		path := filepath.Join(root, n)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFirstFramesMirrorsTree(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	seedTree(t, in, "a.mp4", "sub/b.mkv", "skip.txt")

	opts := config.DirFirstOptions{InputDir: in, OutputDir: out, Recursive: true, WebPQuality: 85}
	stats, err := FirstFrames(context.Background(), testDeps(fakeRunner{}, stdInfo()), opts, testLogger(t))
	if err != nil {
		t.Fatalf("FirstFrames() error = %v", err)
	}
	if stats.Total != 2 || stats.Succeeded != 2 {
		t.Errorf("stats = %+v, want 2/2", stats)
	}
	for _, n := range []string{"a.jpg", filepath.Join("sub", "b.jpg")} {
		if _, err := os.Stat(filepath.Join(out, n)); err != nil {
			t.Errorf("missing %s: %v", n, err)
		}
	}
}

func TestFirstFramesCompressLeavesOnlyWebP(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	seedTree(t, in, "a.mp4", "sub/b.mp4")

	opts := config.DirFirstOptions{
		InputDir: in, OutputDir: out, Recursive: true,
		Compress: true, WebPQuality: 85,
	}
	runner := fakeRunner{webp: []byte("webpdata")}
	stats, err := FirstFrames(context.Background(), testDeps(runner, stdInfo()), opts, testLogger(t))
	if err != nil {
		t.Fatalf("FirstFrames() error = %v", err)
	}
	if stats.Failed != 0 {
		t.Errorf("stats = %+v, want no failures", stats)
	}

	var got []string
	filepath.Walk(out, func(path string, fi os.FileInfo, err error) error {
		if err == nil && !fi.IsDir() {
			rel, _ := filepath.Rel(out, path)
			got = append(got, rel)
		}
		return nil
	})
	want := map[string]bool{"a.webp": true, filepath.Join("sub", "b.webp"): true}
	if len(got) != len(want) {
		t.Fatalf("output tree = %v, want exactly %v", got, want)
	}
	for _, rel := range got {
		if !want[rel] {
			t.Errorf("unexpected leftover %s", rel)
		}
	}
}

func TestFirstFramesNoVideos(t *testing.T) {
	in := t.TempDir()
	seedTree(t, in, "readme.txt")
	opts := config.DirFirstOptions{InputDir: in, OutputDir: t.TempDir(), WebPQuality: 85}
	if _, err := FirstFrames(context.Background(), testDeps(fakeRunner{}, stdInfo()), opts, testLogger(t)); err == nil {
		t.Error("expected error when no videos match")
	}
}

func TestCompressImages(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	seedTree(t, in, "a.jpg", "deep/b.png")

	opts := config.CompressOptions{
		InputDir: in, OutputDir: out, Recursive: true,
		Quality: 85, MaxSizeKB: 0, MinSizeKB: 0,
	}
	runner := fakeRunner{webp: []byte("webpdata")}
	stats, err := CompressImages(context.Background(), testDeps(runner, stdInfo()), opts, testLogger(t))
	if err != nil {
		t.Fatalf("CompressImages() error = %v", err)
	}
	if stats.Succeeded != 2 {
		t.Errorf("stats = %+v, want 2 succeeded", stats)
	}
	if stats.TotalOutputBytes != int64(2*len("webpdata")) {
		t.Errorf("TotalOutputBytes = %d, want %d", stats.TotalOutputBytes, 2*len("webpdata"))
	}
	for _, n := range []string{"a.webp", filepath.Join("deep", "b.webp")} {
		if _, err := os.Stat(filepath.Join(out, n)); err != nil {
			t.Errorf("missing %s: %v", n, err)
		}
	}
}

func TestCompressVideosDirectory(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	seedTree(t, in, "a.mp4", "nested/b.webm")

	opts := config.VCompressOptions{
		Input: in, Output: out, Recursive: true, Quality: 50, Workers: 2,
	}
	stats, err := CompressVideos(context.Background(), testDeps(fakeRunner{}, stdInfo()), opts, testLogger(t))
	if err != nil {
		t.Fatalf("CompressVideos() error = %v", err)
	}
	if stats.Succeeded != 2 {
		t.Errorf("stats = %+v, want 2 succeeded", stats)
	}
	for _, n := range []string{"a.mp4", filepath.Join("nested", "b.mp4")} {
		if _, err := os.Stat(filepath.Join(out, n)); err != nil {
			t.Errorf("missing %s: %v", n, err)
		}
	}
}

func TestCompressVideosSingleFileDerivesOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "clip.mkv")
	seedTree(t, dir, "clip.mkv")

	opts := config.VCompressOptions{Input: input, Quality: 50, Workers: 2}
	stats, err := CompressVideos(context.Background(), testDeps(fakeRunner{}, stdInfo()), opts, testLogger(t))
	if err != nil {
		t.Fatalf("CompressVideos() error = %v", err)
	}
	if stats.Succeeded != 1 {
		t.Errorf("stats = %+v, want 1 succeeded", stats)
	}
	if _, err := os.Stat(filepath.Join(dir, "clip_compressed.mp4")); err != nil {
		t.Errorf("derived output missing: %v", err)
	}
}

func TestCompressVideosDirectoryNeedsOutput(t *testing.T) {
	in := t.TempDir()
	seedTree(t, in, "a.mp4")
	opts := config.VCompressOptions{Input: in, Quality: 50, Workers: 2}
	if _, err := CompressVideos(context.Background(), testDeps(fakeRunner{}, stdInfo()), opts, testLogger(t)); err == nil {
		t.Error("expected error for directory input without --output")
	}
}

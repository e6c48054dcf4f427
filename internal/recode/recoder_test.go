package recode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/framegrab/internal/ffmpeg"
)

func TestCRFForQuality(t *testing.T) {
	tests := []struct {
		quality int
		want    int
	}{
		{100, 0},
		{95, 2},
		{75, 12},
		{50, 25},
		{25, 38},
		{10, 45},
		{0, 51},
		{-5, 51},
		{120, 0},
	}
	for _, tt := range tests {
		if got := CRFForQuality(tt.quality); got != tt.want {
			t.Errorf("CRFForQuality(%d) = %d, want %d", tt.quality, got, tt.want)
		}
	}
}

// writeOutputRunner simulates ffmpeg by writing data to the output path,
// which RecodeArgs places last.
type writeOutputRunner struct {
	data []byte
	err  error
}

func (r writeOutputRunner) Run(_ context.Context, args []string) ffmpeg.ExecResult {
	out := args[len(args)-1]
	if len(r.data) > 0 {
		os.WriteFile(out, r.data, 0o644)
	}
	return ffmpeg.ExecResult{Err: r.err, Stderr: "x264 [error]: cannot open input"}
}

func TestRecodeSuccess(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	output := filepath.Join(dir, "sub", "out.mp4")
	if err := os.WriteFile(input, make([]byte, 1000), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := Recoder{Runner: writeOutputRunner{data: make([]byte, 250)}}
	stats, err := rec.Recode(context.Background(), input, output, 50)
	if err != nil {
		t.Fatalf("Recode() error = %v", err)
	}
	if stats.InputBytes != 1000 || stats.OutputBytes != 250 {
		t.Errorf("stats = %+v, want 1000 in / 250 out", stats)
	}
	if stats.Ratio != 75 {
		t.Errorf("Ratio = %v, want 75", stats.Ratio)
	}
}

func TestRecodeCleansUpOnFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	output := filepath.Join(dir, "out.mp4")
	os.WriteFile(input, []byte("video"), 0o644)

	// Runner writes a partial file and then reports failure.
	rec := Recoder{Runner: writeOutputRunner{data: []byte("partial"), err: errors.New("exit status 1")}}
	_, err := rec.Recode(context.Background(), input, output, 50)
	if !errors.Is(err, ErrRecodeFailed) {
		t.Fatalf("Recode() error = %v, want ErrRecodeFailed", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("partial output should have been removed")
	}
}

func TestRecodeEmptyOutputCleanedUp(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	output := filepath.Join(dir, "out.mp4")
	os.WriteFile(input, []byte("video"), 0o644)
	os.WriteFile(output, nil, 0o644)

	rec := Recoder{Runner: writeOutputRunner{}}
	_, err := rec.Recode(context.Background(), input, output, 50)
	if !errors.Is(err, ErrRecodeFailed) {
		t.Fatalf("Recode() error = %v, want ErrRecodeFailed", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("empty output should have been removed")
	}
}

func TestRecodeZeroInputRatio(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.mp4")
	output := filepath.Join(dir, "out.mp4")
	os.WriteFile(input, nil, 0o644)

	rec := Recoder{Runner: writeOutputRunner{data: []byte("out")}}
	stats, err := rec.Recode(context.Background(), input, output, 50)
	if err != nil {
		t.Fatalf("Recode() error = %v", err)
	}
	if stats.Ratio != 0 {
		t.Errorf("Ratio = %v, want 0 for empty input", stats.Ratio)
	}
}

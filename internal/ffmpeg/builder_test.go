package ffmpeg

import (
	"slices"
	"testing"
)

func TestExtractArgs_WithSeek(t *testing.T) {
	args := ExtractArgs("in.mp4", "out.jpg", 0.25, true, 95)

	i := slices.Index(args, "-ss")
	if i < 0 {
		t.Fatal("missing -ss flag")
	}
	if args[i+1] != "0.250000" {
		t.Errorf("seek value = %q, want 0.250000", args[i+1])
	}
	if args[len(args)-1] != "out.jpg" {
		t.Errorf("output = %q, want out.jpg", args[len(args)-1])
	}
	// Seek must be positioned before -i for input-level seeking.
	if i > slices.Index(args, "-i") {
		t.Error("-ss must precede -i")
	}
}

func TestExtractArgs_NoSeekWhenFPSUnknown(t *testing.T) {
	args := ExtractArgs("in.mp4", "out.jpg", 0, false, 95)
	if slices.Contains(args, "-ss") {
		t.Error("-ss must be omitted when no seek is requested")
	}
}

func TestJPEGScale(t *testing.T) {
	tests := []struct {
		quality int
		want    int
	}{
		{100, 2},
		{0, 31},
		{95, 3},
		{50, 16},
		{150, 2},  // clamped above
		{-10, 31}, // clamped below
	}
	for _, tt := range tests {
		if got := JPEGScale(tt.quality); got != tt.want {
			t.Errorf("JPEGScale(%d) = %d, want %d", tt.quality, got, tt.want)
		}
	}
}

func TestWebPArgs_EncodesToPipe(t *testing.T) {
	args := WebPArgs("photo.png", 85)
	if args[len(args)-1] != "pipe:1" {
		t.Errorf("output = %q, want pipe:1", args[len(args)-1])
	}
	qi := slices.Index(args, "-quality")
	if qi < 0 || args[qi+1] != "85" {
		t.Errorf("quality flag missing or wrong in %v", args)
	}
}

func TestRecodeArgs_CopiesAudio(t *testing.T) {
	args := RecodeArgs("in.avi", "out.mp4", 25)
	ci := slices.Index(args, "-c:a")
	if ci < 0 || args[ci+1] != "copy" {
		t.Errorf("audio must be stream-copied, got %v", args)
	}
	crfi := slices.Index(args, "-crf")
	if crfi < 0 || args[crfi+1] != "25" {
		t.Errorf("crf flag missing or wrong in %v", args)
	}
}

func TestStderrTail(t *testing.T) {
	in := "line1\n\nline2\nline3\nline4\n"
	got := StderrTail(in, 2)
	want := "line3; line4"
	if got != want {
		t.Errorf("StderrTail = %q, want %q", got, want)
	}
	if StderrTail("", 3) != "" {
		t.Error("empty stderr must yield empty tail")
	}
}

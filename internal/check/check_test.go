package check

import "testing"

const encoderListing = ` Encoders:
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC (codec h264)
 V....D libwebp              libwebp WebP image (codec webp)
 A....D aac                  AAC (Advanced Audio Coding)
`

func TestContainsEncoder(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"libx264", true},
		{"libwebp", true},
		{"libx265", false},
		{"webp", false},
	}
	for _, tt := range tests {
		if got := containsEncoder(encoderListing, tt.name); got != tt.want {
			t.Errorf("containsEncoder(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFirstLine(t *testing.T) {
	in := "ffmpeg version 6.1.1 Copyright (c) 2000-2023\nbuilt with gcc\n"
	want := "ffmpeg version 6.1.1 Copyright (c) 2000-2023"
	if got := firstLine(in); got != want {
		t.Errorf("firstLine() = %q, want %q", got, want)
	}
	if got := firstLine("single"); got != "single" {
		t.Errorf("firstLine(single) = %q", got)
	}
}

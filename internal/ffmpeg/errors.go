package ffmpeg

import "strings"

// StderrTail returns the last n non-empty lines of captured stderr as a
// single string, for inclusion in error messages. ffmpeg front-loads
// banners and progress noise; the cause is almost always at the end.
func StderrTail(stderr string, n int) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	var kept []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, strings.TrimSpace(l))
		}
	}
	if len(kept) == 0 {
		return ""
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, "; ")
}

package extract

import (
	"github.com/backmassage/framegrab/internal/probe"
)

// IntervalIndices computes the frame indices to sample at a fixed time
// interval: time points 0, interval, 2*interval, … for
// floor(duration/interval)+1 points, each mapped to floor(t*fps), filtered
// to indices below the known frame count. Pure function of its inputs;
// non-positive intervals yield nil.
func IntervalIndices(info probe.MediaInfo, intervalSec float64) []int64 {
	if intervalSec <= 0 {
		return nil
	}

	points := int64(info.Duration/intervalSec) + 1
	indices := make([]int64, 0, points)
	for i := int64(0); i < points; i++ {
		idx := int64(float64(i) * intervalSec * info.FPS)
		if idx < info.TotalFrames {
			indices = append(indices, idx)
		}
	}
	return indices
}

// RangeIndices returns the arithmetic progression start, start+step, …
// through end inclusive. step must be >= 1; smaller values yield nil.
func RangeIndices(start, end, step int64) []int64 {
	if step < 1 || end < start {
		return nil
	}
	indices := make([]int64, 0, (end-start)/step+1)
	for i := start; i <= end; i += step {
		indices = append(indices, i)
	}
	return indices
}

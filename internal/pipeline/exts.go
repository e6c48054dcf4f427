package pipeline

// Extension lists are matched case-sensitively against filepath.Ext, so
// STILL.MP4 is not picked up. This mirrors the reference tool; list entries
// are lowercase because that is what real rips use.

// FirstFrameExts are the container extensions dirfirst scans for.
var FirstFrameExts = []string{".mp4", ".avi", ".mov", ".mkv", ".flv", ".wmv"}

// VideoExts are the container extensions vcompress scans for.
var VideoExts = []string{".mp4", ".avi", ".mov", ".mkv", ".flv", ".wmv", ".m4v", ".webm"}

// ImageExts are the still-image extensions compress scans for.
var ImageExts = []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif", ".gif", ".webp"}

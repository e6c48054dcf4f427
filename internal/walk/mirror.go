package walk

import (
	"os"
	"path/filepath"
	"strings"
)

// MirrorPath re-roots inputPath from inputRoot to outputRoot and swaps its
// extension for newExt (with leading dot). The relative directory structure
// is preserved file-for-file, so the output tree's shape mirrors the input
// tree's shape at any depth.
func MirrorPath(inputRoot, outputRoot, inputPath, newExt string) (string, error) {
	rel, err := filepath.Rel(inputRoot, inputPath)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.Join(outputRoot, base+newExt), nil
}

// EnsureParent creates the parent directories of path if missing, so the
// mirrored tree exists before any write.
func EnsureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

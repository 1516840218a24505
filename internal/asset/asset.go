package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// knownContainers maps file extensions to the container format passed
// through to the execution engine. Unlisted extensions are used as-is.
var knownContainers = map[string]string{
	".mp4":  "mp4",
	".m4v":  "mp4",
	".mov":  "mov",
	".mkv":  "matroska",
	".webm": "webm",
	".avi":  "avi",
	".ts":   "mpegts",
}

// Video is an opaque handle to a decodable clip. The compiler never
// inspects its bytes; it only needs a stable identity for input-index
// assignment. Width/Height/Duration are optional caller-supplied
// metadata (no probing happens here).
type Video struct {
	Path     string
	Format   string
	Width    int
	Height   int
	Duration float64
}

// FromFile builds a Video handle for a file on disk. The container
// format is inferred from the extension only; the file is never opened.
func FromFile(path string) (*Video, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("asset path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve asset path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat asset %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("asset %s is not a regular file", path)
	}
	return &Video{Path: abs, Format: ContainerFormat(abs)}, nil
}

// ContainerFormat returns the container format name for a path based on
// its extension.
func ContainerFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := knownContainers[ext]; ok {
		return format
	}
	return strings.TrimPrefix(ext, ".")
}

// ID returns the stable identity used for input ordering.
func (v *Video) ID() string {
	return v.Path
}

// Name returns a short display name for tables and logs.
func (v *Video) Name() string {
	return filepath.Base(v.Path)
}

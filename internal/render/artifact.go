package render

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// artifacts tracks the temporary files of one render. release removes all of them and is
// deferred by every caller, so nothing outlives the call on any path.
type artifacts struct {
	dir    string
	paths  []string
	logger *slog.Logger
}

func newArtifacts(dir string, logger *slog.Logger) *artifacts {
	return &artifacts{dir: dir, logger: logger}
}

// roundTrip writes an artifact through fn and returns its bytes as read back from disk.
func (a *artifacts) roundTrip(pattern string, fn func(io.Writer) error) ([]byte, error) {
	f, err := os.CreateTemp(a.dir, pattern)
	if err != nil {
		dir := a.dir
		if dir == "" {
			dir = os.TempDir()
		}
		return nil, &ArtifactError{Op: "create", Path: filepath.Join(dir, pattern), Err: err}
	}
	path := f.Name()
	a.paths = append(a.paths, path)

	if err := fn(f); err != nil {
		_ = f.Close()
		return nil, &ArtifactError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, &ArtifactError{Op: "close", Path: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ArtifactError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

func (a *artifacts) release() {
	for _, p := range a.paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			a.logger.Warn("remove render artifact",
				"event", "artifact_cleanup_failed",
				"path", p,
				"error", err.Error(),
			)
		}
	}
	a.paths = nil
}

package export

import (
	"io"
	"os"
	"path/filepath"

	"LeadersScraper/internal/domain"
)

// writeAtomic writes through a temp file in the target directory and renames
// into place, so a failed run never leaves a partial output behind.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.SerializationError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".leaders-*")
	if err != nil {
		return &domain.SerializationError{Path: path, Err: err}
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if err := write(tmp); err != nil {
		return &domain.SerializationError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.SerializationError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &domain.SerializationError{Path: path, Err: err}
	}
	return nil
}

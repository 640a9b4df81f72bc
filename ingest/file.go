package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileSource reads a sample from a local file, one number per line
type FileSource struct {
	Path string
}

// Name returns the file path
func (f FileSource) Name() string {
	return f.Path
}

// Load reads and parses the file
func (f FileSource) Load(ctx context.Context, opts Options) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(f.Path, opts)
}

// ReadFile opens path and parses it with Parse. A missing file yields
// ErrNotFound and an unreadable one ErrPermission.
func ReadFile(path string, opts Options) (*Data, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, classifyOpenError(path, err)
	}
	defer file.Close()

	return Parse(file, path, opts)
}

func classifyOpenError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("file '%s': %w", path, ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("file '%s': %w", path, ErrPermission)
	default:
		return fmt.Errorf("error reading file '%s': %w", path, err)
	}
}

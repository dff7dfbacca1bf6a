package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/etnz/advisor"
)

// File stores each snapshot as a JSON file in a directory.
type File struct {
	dir string
}

func NewFile(dir string) *File { return &File{dir: dir} }

// path returns the file of user. User ids are escaped so that they cannot
// leave the directory.
func (f *File) path(user string) string {
	return filepath.Join(f.dir, url.PathEscape(user)+".json")
}

func (f *File) Load(ctx context.Context, user string) ([]byte, error) {
	data, err := os.ReadFile(f.path(user))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, advisor.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}

// Save writes the snapshot atomically: to a temporary file first, synced,
// then renamed over the previous one.
func (f *File) Save(ctx context.Context, user string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(f.dir, url.PathEscape(user)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(user)); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

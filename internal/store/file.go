package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// File keeps one pretty-printed JSON file per collection in a directory.
type File struct {
	dir string
	log *slog.Logger
	mu  sync.Mutex
}

func NewFile(dir string, log *slog.Logger) *File {
	f := &File{dir: dir, log: log}
	f.ensureDir()
	return f
}

func (f *File) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

// ensureDir is best-effort: a failure surfaces later as a read or write error.
func (f *File) ensureDir() {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		f.log.Error("create data directory", slog.String("dir", f.dir), slog.Any("error", err))
	}
}

func (f *File) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return data, nil
}

func (f *File) Put(ctx context.Context, name string, doc []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ensureDir()

	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, f.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", f.path(name), err)
	}

	return nil
}

func (f *File) Close() error {
	return nil
}

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/aweris/filecache/internal/compression"
)

var _ Storage = (*Local)(nil)

// Local implements Storage on an afero filesystem.
//
// Files whose name ends in ".zst" are written zstd-compressed. Reads detect
// compressed content by its frame header, whatever the name.
type Local struct {
	fs         afero.Fs
	resolve    func() (string, error)
	compressor *compression.Compressor
}

// NewLocal creates a Local storage. A nil fs means the OS filesystem and a
// nil resolve means DocumentsDir.
func NewLocal(fs afero.Fs, resolve func() (string, error), compressionLevel int) (*Local, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if resolve == nil {
		resolve = DocumentsDir
	}

	compressor, err := compression.NewCompressor(compressionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}

	return &Local{
		fs:         fs,
		resolve:    resolve,
		compressor: compressor,
	}, nil
}

func (l *Local) BaseDir() (string, error) {
	dir, err := l.resolve()
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", errors.New("empty base directory")
	}
	return dir, nil
}

func (l *Local) MkdirAll(dir string) error {
	if err := l.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func (l *Local) Exists(path string) (bool, error) {
	return afero.Exists(l.fs, path)
}

func (l *Local) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, err
	}

	data, err = l.compressor.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to a temporary file next to path and renames it into
// place, so readers see either the old or the new content.
func (l *Local) WriteFile(path string, data []byte) (err error) {
	if strings.HasSuffix(path, compression.Suffix) {
		data = l.compressor.Compress(data)
	}

	dir := filepath.Dir(path)
	if err := l.MkdirAll(dir); err != nil {
		return err
	}

	tmp, err := afero.TempFile(l.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = l.fs.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := l.fs.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := l.fs.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func (l *Local) Close() error {
	return l.compressor.Close()
}

// DocumentsDir returns the user's documents directory: $XDG_DOCUMENTS_DIR
// when set, otherwise ~/Documents.
func DocumentsDir() (string, error) {
	if dir := os.Getenv("XDG_DOCUMENTS_DIR"); dir != "" {
		return homedir.Expand(dir)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, "Documents"), nil
}

// Expand returns a resolver for a fixed directory, expanding a leading "~".
func Expand(dir string) func() (string, error) {
	return func() (string, error) {
		return homedir.Expand(dir)
	}
}

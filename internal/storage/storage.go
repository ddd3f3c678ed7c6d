// Package storage implements the filesystem capability behind the cache.
//
// The Storage interface is deliberately small: resolve a base directory,
// create directories, check existence and read or replace whole files.
// Local implements it on top of an afero.Fs so callers can swap the real
// filesystem for an in-memory one.
package storage

// Storage is the filesystem capability used by the cache.
type Storage interface {
	// BaseDir resolves the directory cache files live under.
	BaseDir() (string, error)

	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir string) error

	// Exists reports whether path exists.
	Exists(path string) (bool, error)

	// ReadFile reads the whole file, decompressing it if needed.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the file at path with data.
	WriteFile(path string, data []byte) error

	Close() error
}

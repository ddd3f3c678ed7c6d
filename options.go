package filecache

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/aweris/filecache/internal/storage"
)

const (
	// DefaultFileName is used when Load or Save get an empty name.
	DefaultFileName = "default.json"
	// DefaultSubdir is created under the base directory to hold cache files.
	DefaultSubdir = "CacheStorage"
)

// Options configures a Cache.
type Options struct {
	Fs               afero.Fs
	BaseDir          func() (string, error)
	Subdir           string
	Logger           *slog.Logger
	CompressionLevel int
}

// Option is a functional option for configuring New.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		BaseDir:          storage.DocumentsDir,
		Subdir:           DefaultSubdir,
		Logger:           slog.New(slog.DiscardHandler),
		CompressionLevel: 2,
	}
}

// WithFs sets the filesystem cache files are stored on. Defaults to the OS
// filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *Options) { o.Fs = fs }
}

// WithBaseDir uses dir instead of the documents directory. A leading "~" is
// expanded to the user's home.
func WithBaseDir(dir string) Option {
	return func(o *Options) { o.BaseDir = storage.Expand(dir) }
}

// WithBaseDirFunc sets how the base directory is resolved. It is called on
// first use and again after every failure, until it succeeds once.
func WithBaseDirFunc(fn func() (string, error)) Option {
	return func(o *Options) {
		if fn != nil {
			o.BaseDir = fn
		}
	}
}

// WithSubdir sets the directory created under the base directory. An empty
// name stores files directly in the base directory.
func WithSubdir(name string) Option {
	return func(o *Options) { o.Subdir = name }
}

// WithLogger sets the logger diagnostics are written to. By default they are
// discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithCompressionLevel sets the zstd level used for ".zst" files: 1 fastest,
// 3 best compression.
func WithCompressionLevel(level int) Option {
	return func(o *Options) {
		if level > 0 {
			o.CompressionLevel = level
		}
	}
}

package filecache

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sourcegraph/conc/panics"
	"github.com/tidwall/gjson"

	"github.com/aweris/filecache/internal/storage"
)

// Cache keeps a Store of items in memory and synchronizes it with JSON files
// under a lazily created storage directory.
type Cache[T Item] struct {
	store   *Store[T]
	codec   Codec[T]
	storage storage.Storage
	subdir  string
	log     *slog.Logger

	mu  sync.Mutex // serializes Load, Save and directory resolution
	dir string     // resolved storage directory, empty until first success
}

// New creates an empty cache. Nothing touches the filesystem until the first
// Path, Load or Save.
func New[T Item](codec Codec[T], opts ...Option) (*Cache[T], error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	st, err := storage.NewLocal(options.Fs, options.BaseDir, options.CompressionLevel)
	if err != nil {
		return nil, fmt.Errorf("create storage: %w", err)
	}

	return &Cache[T]{
		store:   NewStore[T](),
		codec:   codec,
		storage: st,
		subdir:  options.Subdir,
		log:     options.Logger,
	}, nil
}

// Store returns the in-memory store. Changes reach disk on the next Save.
func (c *Cache[T]) Store() *Store[T] { return c.store }

// Close releases the compressor. The store stays usable in memory.
func (c *Cache[T]) Close() error { return c.storage.Close() }

// Path returns the full path of the named cache file. An empty name means
// DefaultFileName.
func (c *Cache[T]) Path(name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path(name)
}

func (c *Cache[T]) path(name string) (string, error) {
	if name == "" {
		name = DefaultFileName
	}
	dir, err := c.resolveDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// resolveDir resolves and creates the storage directory once. A failure to
// create it is only logged; the write that follows will report it.
func (c *Cache[T]) resolveDir() (string, error) {
	if c.dir != "" {
		return c.dir, nil
	}

	base, err := c.storage.BaseDir()
	if err != nil {
		c.log.Error("resolve storage directory", "err", err)
		return "", fmt.Errorf("%w: %v", ErrNoBaseDir, err)
	}

	dir := filepath.Join(base, c.subdir)
	if err := c.storage.MkdirAll(dir); err != nil {
		c.log.Warn("create storage directory", "dir", dir, "err", err)
	}

	c.dir = dir
	return dir, nil
}

// Load replaces the store with the items in the named file.
//
// A missing file is not an error: the store is kept and the status is
// StatusMissing. A document that is not a JSON array of objects aborts the
// load with ErrMalformed and keeps the store. Elements the codec rejects are
// skipped and reported in the Result; the store is replaced with the rest,
// even when that is nothing.
func (c *Cache[T]) Load(name string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := Result{Status: StatusAborted}

	path, err := c.path(name)
	if err != nil {
		return res, err
	}
	res.Path = path

	exists, err := c.storage.Exists(path)
	if err != nil {
		c.log.Error("stat cache file", "path", path, "err", err)
		return res, fmt.Errorf("stat %s: %w", path, err)
	}
	if !exists {
		c.log.Debug("cache file does not exist", "path", path)
		res.Status = StatusMissing
		return res, nil
	}

	data, err := c.storage.ReadFile(path)
	if err != nil {
		c.log.Error("read cache file", "path", path, "err", err)
		return res, fmt.Errorf("read %s: %w", path, err)
	}

	elems, err := decodeDocument(data)
	if err != nil {
		c.log.Error("decode cache file", "path", path, "err", err)
		return res, fmt.Errorf("decode %s: %w", path, err)
	}

	next := NewStore[T]()
	for i, elem := range elems {
		item, err := c.parseJSON(elem)
		if err != nil {
			c.log.Warn("skip cache item", "path", path, "index", i, "err", err)
			res.skip(i, err)
			continue
		}
		next.Add(item)
	}

	c.store.swap(next)
	res.Count = next.Len()
	res.finish()
	c.log.Debug("loaded cache", "path", path, "items", res.Count, "skipped", res.Skipped)
	return res, nil
}

// Save writes every item in the store to the named file as a JSON array,
// replacing the file as a whole. Items with an empty id cannot be loaded back
// and are skipped. On failure the previous file is left in place.
func (c *Cache[T]) Save(name string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := Result{Status: StatusAborted}

	path, err := c.path(name)
	if err != nil {
		return res, err
	}
	res.Path = path

	values := make([]any, 0, c.store.Len())
	i := 0
	for id, item := range c.store.Items() {
		if id == "" {
			c.log.Warn("skip item without id", "path", path, "index", i)
			res.skip(i, ErrEmptyID)
		} else {
			values = append(values, item.JSONValue())
		}
		i++
	}

	data, err := json.Marshal(values)
	if err != nil {
		c.log.Error("encode cache file", "path", path, "err", err)
		return Result{Status: StatusAborted, Path: path}, fmt.Errorf("encode %s: %w", path, err)
	}

	if err := c.storage.WriteFile(path, data); err != nil {
		c.log.Error("write cache file", "path", path, "err", err)
		return Result{Status: StatusAborted, Path: path}, fmt.Errorf("write %s: %w", path, err)
	}

	res.Count = len(values)
	res.finish()
	c.log.Debug("saved cache", "path", path, "items", res.Count)
	return res, nil
}

// ExportCSV writes one CSV line per item, in id order. Items whose line
// contains a line break would not import back and are skipped.
func (c *Cache[T]) ExportCSV(w io.Writer) (Result, error) {
	res := Result{Status: StatusAborted}

	bw := bufio.NewWriter(w)
	i := 0
	for id, item := range c.store.Items() {
		line := item.CSVLine()
		if strings.ContainsAny(line, "\r\n") {
			c.log.Warn("skip csv item", "id", id, "err", ErrMultiline)
			res.skip(i, ErrMultiline)
			i++
			continue
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return Result{Status: StatusAborted}, fmt.Errorf("write csv: %w", err)
		}
		res.Count++
		i++
	}
	if err := bw.Flush(); err != nil {
		return Result{Status: StatusAborted}, fmt.Errorf("write csv: %w", err)
	}

	res.finish()
	return res, nil
}

// ImportCSV adds the items read from r, one per line, to the store. Blank
// lines are ignored and lines the codec rejects are skipped. If reading fails
// nothing is added.
func (c *Cache[T]) ImportCSV(r io.Reader) (Result, error) {
	res := Result{Status: StatusAborted}

	var items []T
	br := bufio.NewReader(r)
	for i := 0; ; i++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			c.log.Error("read csv", "err", err)
			return Result{Status: StatusAborted}, fmt.Errorf("read csv: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			item, perr := c.parseCSV(line)
			if perr != nil {
				c.log.Warn("skip csv line", "line", i+1, "err", perr)
				res.skip(i, perr)
			} else {
				items = append(items, item)
			}
		}

		if err == io.EOF {
			break
		}
	}

	for _, item := range items {
		c.store.Add(item)
	}
	res.Count = len(items)
	res.finish()
	return res, nil
}

func (c *Cache[T]) parseJSON(v map[string]any) (T, error) {
	return guard(func() (T, error) { return c.codec.ParseJSON(v) })
}

func (c *Cache[T]) parseCSV(line string) (T, error) {
	return guard(func() (T, error) { return c.codec.ParseCSV(line) })
}

// guard runs a codec call, turning a panic into an error and rejecting items
// without an id.
func guard[T Item](parse func() (T, error)) (T, error) {
	var (
		item T
		err  error
		pc   panics.Catcher
	)
	pc.Try(func() {
		item, err = parse()
		if err == nil && item.ID() == "" {
			err = ErrEmptyID
		}
	})
	if r := pc.Recovered(); r != nil {
		var zero T
		return zero, r.AsError()
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// decodeDocument checks that data is a UTF-8 JSON array of objects and
// returns the objects. Anything else is ErrMalformed.
func decodeDocument(data []byte) ([]map[string]any, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformed)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: top level is not an array", ErrMalformed)
	}

	elems := doc.Array()
	objects := make([]map[string]any, 0, len(elems))
	for i, elem := range elems {
		obj, ok := elem.Value().(map[string]any)
		if !elem.IsObject() || !ok {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrMalformed, i)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

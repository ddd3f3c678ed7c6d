package storage

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aweris/filecache/internal/compression"
)

func newTestLocal(t *testing.T, fs afero.Fs) *Local {
	t.Helper()
	l, err := NewLocal(fs, Expand("/docs"), 2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestLocal_WriteReadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	l := newTestLocal(t, fs)

	path := "/docs/CacheStorage/default.json"
	require.NoError(t, l.WriteFile(path, []byte(`[]`)))

	ok, err := l.Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := l.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	require.NoError(t, l.WriteFile(path, []byte(`[{"id":"1"}]`)))
	data, err = l.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(data))

	entries, err := afero.ReadDir(fs, filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "default.json", entries[0].Name())
}

func TestLocal_WriteFileCompressed(t *testing.T) {
	fs := afero.NewMemMapFs()
	l := newTestLocal(t, fs)

	path := "/docs/items.json.zst"
	data := bytes.Repeat([]byte(`{"id":"x","title":"repeat"},`), 32)
	require.NoError(t, l.WriteFile(path, data))

	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.True(t, compression.IsCompressed(raw))

	out, err := l.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestLocal_WriteFileReadOnly(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/docs/default.json", []byte(`[]`), 0o644))

	l := newTestLocal(t, afero.NewReadOnlyFs(base))
	assert.Error(t, l.WriteFile("/docs/default.json", []byte(`[{"id":"1"}]`)))

	data, err := afero.ReadFile(base, "/docs/default.json")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestLocal_BaseDir(t *testing.T) {
	l, err := NewLocal(afero.NewMemMapFs(), func() (string, error) {
		return "", errors.New("no home")
	}, 0)
	require.NoError(t, err)
	defer l.Close()

	_, err = l.BaseDir()
	assert.Error(t, err)

	l.resolve = func() (string, error) { return "", nil }
	_, err = l.BaseDir()
	assert.Error(t, err)
}

func TestDocumentsDir(t *testing.T) {
	t.Setenv("XDG_DOCUMENTS_DIR", "/srv/docs")
	dir, err := DocumentsDir()
	require.NoError(t, err)
	assert.Equal(t, "/srv/docs", dir)

	t.Setenv("XDG_DOCUMENTS_DIR", "")
	dir, err = DocumentsDir()
	require.NoError(t, err)
	assert.Equal(t, "Documents", filepath.Base(dir))
}

package filecache

import "errors"

var (
	ErrNotFound  = errors.New("filecache: not found")
	ErrNoBaseDir = errors.New("filecache: storage directory unavailable")
	ErrMalformed = errors.New("filecache: malformed document")
	ErrEmptyID   = errors.New("filecache: item has empty id")
	ErrMultiline = errors.New("filecache: csv line contains a line break")
)

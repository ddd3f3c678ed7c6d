package filecache

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// note is a minimal Item used across the package tests.
type note struct {
	Key  string
	Body string
}

func (n note) ID() string      { return n.Key }
func (n note) JSONValue() any  { return map[string]any{"id": n.Key, "body": n.Body} }
func (n note) CSVLine() string { return n.Key + "," + n.Body }

// noteCodec rejects objects without a string body and panics on the body
// "boom".
var noteCodec = CodecFuncs[note]{
	JSON: func(v any) (note, error) {
		m, ok := v.(map[string]any)
		if !ok {
			return note{}, fmt.Errorf("want object, got %T", v)
		}
		id, _ := m["id"].(string)
		body, ok := m["body"].(string)
		if !ok {
			return note{}, fmt.Errorf("note %q: missing body", id)
		}
		if body == "boom" {
			panic("boom")
		}
		return note{Key: id, Body: body}, nil
	},
	CSV: func(line string) (note, error) {
		id, body, ok := strings.Cut(line, ",")
		if !ok {
			return note{}, fmt.Errorf("malformed line %q", line)
		}
		return note{Key: id, Body: body}, nil
	},
}

func TestStore_AddReplaces(t *testing.T) {
	s := NewStore[note]()
	s.Add(note{Key: "1", Body: "first"})
	s.Add(note{Key: "1", Body: "second"})

	require.Equal(t, 1, s.Len())
	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "second", got.Body)
}

func TestStore_AddIdempotent(t *testing.T) {
	s := NewStore[note]()
	n := note{Key: "1", Body: "x"}
	s.Add(n)
	s.Add(n)
	assert.Equal(t, []note{n}, s.List())
}

func TestStore_Delete(t *testing.T) {
	s := NewStore[note]()
	s.Add(note{Key: "1", Body: "a"})
	s.Add(note{Key: "2", Body: "b"})

	got, ok := s.Delete("1")
	require.True(t, ok)
	assert.Equal(t, note{Key: "1", Body: "a"}, got)
	assert.Equal(t, 1, s.Len())

	got, ok = s.Delete("missing")
	assert.False(t, ok)
	assert.Equal(t, note{}, got)
	assert.Equal(t, []note{{Key: "2", Body: "b"}}, s.List())
}

func TestStore_OrderedIteration(t *testing.T) {
	s := NewStore[note]()
	for _, id := range []string{"c", "a", "b"} {
		s.Add(note{Key: id})
	}

	var ids []string
	for id, n := range s.Items() {
		assert.Equal(t, id, n.Key)
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestStore_IterationIsSnapshot(t *testing.T) {
	s := NewStore[note]()
	s.Add(note{Key: "a"})
	s.Add(note{Key: "b"})

	var seen int
	for id := range s.Items() {
		s.Delete(id)
		s.Add(note{Key: "z" + id})
		seen++
	}
	assert.Equal(t, 2, seen)
	assert.Equal(t, 2, s.Len())

	list := s.List()
	list[0] = note{Key: "mutated"}
	_, ok := s.Get("mutated")
	assert.False(t, ok)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore[note]()
	s.Add(note{Key: "a"})
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.List())
}

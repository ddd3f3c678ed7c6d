// Package todo is a small item type used by the filecache CLI.
package todo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Item is a to-do entry.
type Item struct {
	id    string
	Title string
	Done  bool
}

func New(id, title string, done bool) Item {
	return Item{id: id, Title: title, Done: done}
}

func (i Item) ID() string { return i.id }

// JSONValue omits "done" while the item is open.
func (i Item) JSONValue() any {
	v := map[string]any{
		"id":    i.id,
		"title": i.Title,
	}
	if i.Done {
		v["done"] = true
	}
	return v
}

// Line breaks and backslashes in fields are written as \n, \r and \\ so
// that every item renders as a single line.
var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r")
)

// CSVLine renders id,title,done on a single line.
func (i Item) CSVLine() string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write([]string{escaper.Replace(i.id), escaper.Replace(i.Title), strconv.FormatBool(i.Done)})
	w.Flush()
	return strings.TrimRight(b.String(), "\r\n")
}

// Codec parses Items.
type Codec struct{}

func (Codec) ParseJSON(v any) (Item, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Item{}, fmt.Errorf("want object, got %T", v)
	}

	id, ok := m["id"].(string)
	if !ok || id == "" {
		return Item{}, errors.New("missing id")
	}
	title, ok := m["title"].(string)
	if !ok {
		return Item{}, errors.New("missing title")
	}

	var done bool
	if raw, present := m["done"]; present {
		if done, ok = raw.(bool); !ok {
			return Item{}, fmt.Errorf("done: want bool, got %T", raw)
		}
	}

	return New(id, title, done), nil
}

func (Codec) ParseCSV(line string) (Item, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		return Item{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(fields) < 2 || len(fields) > 3 {
		return Item{}, fmt.Errorf("want 2 or 3 fields, got %d", len(fields))
	}
	if fields[0] == "" {
		return Item{}, errors.New("missing id")
	}

	var done bool
	if len(fields) == 3 && fields[2] != "" {
		if done, err = strconv.ParseBool(fields[2]); err != nil {
			return Item{}, fmt.Errorf("done: %w", err)
		}
	}

	return New(unescaper.Replace(fields[0]), unescaper.Replace(fields[1]), done), nil
}

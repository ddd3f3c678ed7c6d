package filecache

import "fmt"

// Status is the outcome of a Load, Save, or CSV transfer.
type Status int

const (
	// StatusOK means every item was processed.
	StatusOK Status = iota
	// StatusPartial means the operation completed but some items were skipped.
	StatusPartial
	// StatusMissing means Load found no file; the store was left as it was.
	StatusMissing
	// StatusAborted means nothing was changed; the accompanying error says why.
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusPartial:
		return "partial"
	case StatusMissing:
		return "missing"
	case StatusAborted:
		return "aborted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result describes what a Load, Save, ImportCSV or ExportCSV did.
type Result struct {
	Status  Status
	Path    string       // resolved file path, empty for CSV transfers
	Count   int          // items loaded, saved, imported or exported
	Skipped int          // elements that could not be parsed
	Errors  []*ItemError // one per skipped element
}

// ItemError records why a single element was skipped.
type ItemError struct {
	Index int // position in the document or line number, zero-based
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

func (r *Result) skip(index int, err error) {
	r.Skipped++
	r.Errors = append(r.Errors, &ItemError{Index: index, Err: err})
}

func (r *Result) finish() {
	if r.Skipped > 0 {
		r.Status = StatusPartial
	} else {
		r.Status = StatusOK
	}
}

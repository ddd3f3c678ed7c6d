package filecache

// Item is a value that can be kept in a Cache.
type Item interface {
	ID() string      // stable key, unique within a store; must not be empty
	JSONValue() any  // JSON-compatible projection (maps, slices, primitives)
	CSVLine() string // single-line CSV projection
}

// Codec builds items back from their projections.
type Codec[T Item] interface {
	ParseJSON(v any) (T, error)
	ParseCSV(line string) (T, error)
}

// CodecFuncs adapts a pair of functions to Codec.
type CodecFuncs[T Item] struct {
	JSON func(v any) (T, error)
	CSV  func(line string) (T, error)
}

func (f CodecFuncs[T]) ParseJSON(v any) (T, error)      { return f.JSON(v) }
func (f CodecFuncs[T]) ParseCSV(line string) (T, error) { return f.CSV(line) }

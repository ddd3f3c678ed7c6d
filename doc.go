// Package filecache provides a generic in-memory cache of identifiable items
// persisted as a single JSON file.
//
// Items implement Item (an id plus JSON and CSV projections) and are parsed
// back through a Codec. The cache keeps them in a Store keyed by id; Load and
// Save move the whole store to and from a JSON array on disk. Files live in
// a storage directory (by default ~/Documents/CacheStorage) that is resolved
// and created on first use.
//
// Basic usage:
//
//	c, _ := filecache.New[todo.Item](todo.Codec{})
//	defer c.Close()
//
//	// Populate from disk; a missing file leaves the store empty
//	c.Load("")
//
//	// Mutate in memory
//	c.Store().Add(todo.New("1", "Buy milk", false))
//	item, ok := c.Store().Delete("1")
//
//	// Flush to disk
//	res, err := c.Save("")
//	fmt.Println(res.Status, res.Count, res.Path)
//
// Load keeps going past elements the codec rejects and reports them:
//
//	res, err := c.Load("todos.json")
//	if err == nil && res.Status == filecache.StatusPartial {
//	    for _, e := range res.Errors { log.Println(e) }
//	}
//
// Files named with a ".zst" suffix are stored zstd-compressed.
package filecache

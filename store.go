package coffer

// ReadOnlyKVStore reads a key space sorted by key bytes. Keys must not be
// nil.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) from the lowest key. A nil bound is
	// open. The range must not be written to while the iterator is open.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator walks [start, end) from the highest key.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter writes to a store or to a batch. Neither may modify the given
// slices.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the storage every handler works with.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them at once on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a key range:
//
//	it, err := db.Iterator(start, end)
//	if err != nil {
//		return err
//	}
//	defer it.Close()
//	for ; it.Valid(); it.Next() {
//		use(it.Key(), it.Value())
//	}
//
// Key and Value panic when the iterator is not valid, Next returns
// ErrIteratorDone. An iterator never becomes valid again.
type Iterator interface {
	Valid() bool
	Next() error
	Key() (key []byte)
	Value() (value []byte)
	Close()
}

// CacheableKVStore can open a cache layer on top of itself. Layers are the
// savepoints of a transaction: writes made in a layer are kept with Write
// or dropped with Discard.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a cache layer. Reads see the writes of the layer on top of
// the parent content.
type KVCacheWrap interface {
	CacheableKVStore

	// Write applies the writes of the layer to the parent.
	Write() error
	// Discard drops the writes of the layer.
	Discard()
}

// CommitKVStore is the versioned root store of a node. Every Commit writes
// a new version to disk.
type CommitKVStore interface {
	// Get reads the last committed version.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)

	// LoadLatestVersion loads the last version fully written to disk.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by its height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}

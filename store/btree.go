package store

import (
	"bytes"

	"github.com/google/btree"
)

// freeListSize bounds the btree nodes kept for reuse. All cache layers
// stacked on one store share a free list.
const freeListSize = btree.DefaultFreeListSize

// Cacheable gives a KVStore a btree backed CacheWrap.
type Cacheable struct {
	KVStore
}

var _ CacheableKVStore = Cacheable{}

// CacheWrap returns a layer that is written to the store in one batch.
func (c Cacheable) CacheWrap() KVCacheWrap {
	return newCache(c.KVStore, c.NewBatch(), btree.NewFreeList(freeListSize))
}

// MemStore returns an empty store that lives in memory only.
func MemStore() CacheableKVStore {
	var empty EmptyKVStore
	return newCache(empty, empty.NewBatch(), btree.NewFreeList(freeListSize))
}

// cache keeps the writes of a layer in a btree until they are written to
// the parent. Reads of keys the layer never wrote fall through to the
// parent.
type cache struct {
	tree    *btree.BTree
	free    *btree.FreeList
	parent  ReadOnlyKVStore
	pending Batch
}

var _ KVCacheWrap = cache{}

// newCache layers a cache over parent. All writes reach the parent through
// pending.
func newCache(parent ReadOnlyKVStore, pending Batch, free *btree.FreeList) cache {
	return cache{
		tree:    btree.NewWithFreeList(2, free),
		free:    free,
		parent:  parent,
		pending: pending,
	}
}

func (c cache) CacheWrap() KVCacheWrap {
	return newCache(c, c.NewBatch(), c.free)
}

func (c cache) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write applies the writes of the layer to the parent and empties the layer.
func (c cache) Write() error {
	err := c.pending.Write()
	c.Discard()
	return err
}

// Discard empties the layer, returning its nodes to the free list.
func (c cache) Discard() {
	for c.tree.DeleteMin() != nil {
	}
}

func (c cache) Set(key, value []byte) error {
	c.tree.ReplaceOrInsert(&entry{key: key, value: value})
	return c.pending.Set(key, value)
}

func (c cache) Delete(key []byte) error {
	c.tree.ReplaceOrInsert(&entry{key: key, deleted: true})
	return c.pending.Delete(key)
}

// written returns the last write of the key in this layer, or nil.
func (c cache) written(key []byte) *entry {
	if item := c.tree.Get(&entry{key: key}); item != nil {
		return item.(*entry)
	}
	return nil
}

func (c cache) Get(key []byte) ([]byte, error) {
	e := c.written(key)
	if e == nil {
		return c.parent.Get(key)
	}
	if e.deleted {
		return nil, nil
	}
	return e.value, nil
}

func (c cache) Has(key []byte) (bool, error) {
	if e := c.written(key); e != nil {
		return !e.deleted, nil
	}
	return c.parent.Has(key)
}

// Iterator merges the writes of the layer with the parent content, lowest
// key first.
func (c cache) Iterator(start, end []byte) (Iterator, error) {
	under, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIterator(ascendBtree(c.tree, start, end), under, true)
}

// ReverseIterator merges the writes of the layer with the parent content,
// highest key first.
func (c cache) ReverseIterator(start, end []byte) (Iterator, error) {
	under, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newCacheIterator(descendBtree(c.tree, start, end), under, false)
}

// entry is a write recorded by a cache layer. A deleted entry hides the
// parent value of its key.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e *entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(*entry).key) < 0
}

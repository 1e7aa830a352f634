package store

import (
	"bytes"

	"github.com/boardvault/coffer/errors"
	"github.com/google/btree"
)

// ascendBtree returns a snapshot of all items in [start, end), lowest key
// first. Copying the items out of the tree makes writes safe while an
// iterator is open.
func ascendBtree(bt *btree.BTree, start, end []byte) []*entry {
	var items []*entry
	collect := func(item btree.Item) bool {
		k := item.(*entry)
		if end != nil && bytes.Compare(k.key, end) >= 0 {
			return false
		}
		items = append(items, k)
		return true
	}
	if start == nil {
		bt.Ascend(collect)
	} else {
		bt.AscendGreaterOrEqual(&entry{key: start}, collect)
	}
	return items
}

// descendBtree returns a snapshot of all items in [start, end), highest key
// first.
func descendBtree(bt *btree.BTree, start, end []byte) []*entry {
	var items []*entry
	collect := func(item btree.Item) bool {
		k := item.(*entry)
		if end != nil && bytes.Equal(k.key, end) {
			return true
		}
		if start != nil && bytes.Compare(k.key, start) < 0 {
			return false
		}
		items = append(items, k)
		return true
	}
	if end == nil {
		bt.Descend(collect)
	} else {
		bt.DescendLessOrEqual(&entry{key: end}, collect)
	}
	return items
}

// source marks where the current item comes from
type source int32

const (
	none source = iota
	us
	parent
	both
)

// cacheIterator joins our results with those of the parent,
// taking into consideration overwrites and deletes.
type cacheIterator struct {
	items     []*entry
	pos       int
	parent    Iterator
	ascending bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []*entry, parent Iterator, ascending bool) (*cacheIterator, error) {
	it := &cacheIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

// Valid implements Iterator and returns true iff it can be read
func (i *cacheIterator) Valid() bool {
	return i.firstKey() != none
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
func (i *cacheIterator) Next() error {
	switch i.firstKey() {
	case us:
		i.pos++
	case both:
		i.pos++
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		return errors.ErrIteratorDone
	}
	return i.skipDeleted()
}

// Key returns the key of the cursor.
func (i *cacheIterator) Key() []byte {
	switch i.firstKey() {
	case us, both:
		return i.items[i.pos].key
	case parent:
		return i.parent.Key()
	default:
		panic("advanced past the end")
	}
}

// Value returns the value of the cursor.
func (i *cacheIterator) Value() []byte {
	switch i.firstKey() {
	case us, both:
		return i.items[i.pos].value
	case parent:
		return i.parent.Value()
	default:
		panic("advanced past the end")
	}
}

// Close releases the Iterator.
func (i *cacheIterator) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
}

// skipDeleted fast forwards over all deleted entries, together with the
// parent values they shadow.
func (i *cacheIterator) skipDeleted() error {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return nil
		}
		if !i.items[i.pos].deleted {
			return nil
		}
		i.pos++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// firstKey selects the iterator with the next key in the iteration order
func (i *cacheIterator) firstKey() source {
	ourValid := i.pos < len(i.items)
	parentValid := i.parent != nil && i.parent.Valid()

	switch {
	case !ourValid && !parentValid:
		return none
	case !parentValid:
		return us
	case !ourValid:
		return parent
	}

	cmp := bytes.Compare(i.items[i.pos].key, i.parent.Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return us
	case cmp > 0:
		return parent
	default:
		return both
	}
}

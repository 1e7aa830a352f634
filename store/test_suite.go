package store

import (
	"bytes"
	"encoding/binary"
	"sort"
	"testing"

	"github.com/boardvault/coffer/coffertest/assert"
)

// TestSuite runs the same checks against any CacheableKVStore
// implementation. Both the in memory btree store and the iavl adapter must
// behave the same, because transactions are checked against the first and
// delivered against the second.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns an empty store and a function releasing it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// CacheLayers checks that writes to a cache are isolated from the parent
// until the cache is written, and that a discarded cache leaves no trace.
func (s *TestSuite) CacheLayers(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	vault, board := []byte("vault:1"), []byte("board")
	proposal, pending := []byte("proposal:1:1"), []byte("pending")

	s.AssertGetHas(t, base, vault, nil, false)
	assert.Nil(t, base.Set(vault, board))
	assert.Nil(t, base.Set(proposal, pending))
	s.AssertGetHas(t, base, vault, board, true)

	// A failed transaction is discarded.
	failed := base.CacheWrap()
	assert.Nil(t, failed.Set(proposal, []byte("settled")))
	assert.Nil(t, failed.Delete(vault))
	s.AssertGetHas(t, failed, proposal, []byte("settled"), true)
	s.AssertGetHas(t, failed, vault, nil, false)
	s.AssertGetHas(t, base, proposal, pending, true)
	failed.Discard()
	s.AssertGetHas(t, base, vault, board, true)
	s.AssertGetHas(t, base, proposal, pending, true)

	// Nested layers see the data of all their parents.
	tx := base.CacheWrap()
	nested := tx.CacheWrap()
	second := []byte("proposal:1:2")
	assert.Nil(t, nested.Set(second, pending))
	assert.Nil(t, nested.Set(proposal, []byte("settled")))
	s.AssertGetHas(t, nested, vault, board, true)
	s.AssertGetHas(t, tx, second, nil, false)

	assert.Nil(t, nested.Write())
	s.AssertGetHas(t, tx, second, pending, true)
	s.AssertGetHas(t, base, second, nil, false)

	assert.Nil(t, tx.Write())
	s.AssertGetHas(t, base, second, pending, true)
	s.AssertGetHas(t, base, proposal, []byte("settled"), true)
}

// Iteration checks ordered iteration over a cache whose content is spread
// between the cache and its parent, including keys deleted in the cache.
func (s *TestSuite) Iteration(t *testing.T) {
	// Proposals of a vault are stored under the vault ID followed by the
	// proposal ID, so their keys sort by vault first.
	key := func(vault, proposal uint64) []byte {
		k := make([]byte, 16)
		binary.BigEndian.PutUint64(k, vault)
		binary.BigEndian.PutUint64(k[8:], proposal)
		return k
	}
	val := func(n uint64) []byte { return []byte{byte(n)} }

	var parentOps, childOps []Op
	for v := uint64(1); v <= 3; v++ {
		for p := uint64(1); p <= 8; p++ {
			parentOps = append(parentOps, SetOp(key(v, p), val(p)))
		}
	}
	for p := uint64(2); p <= 12; p += 2 {
		childOps = append(childOps, SetOp(key(2, p), val(p+100)))
	}
	childOps = append(childOps,
		DelOp(key(1, 1)), DelOp(key(2, 3)), DelOp(key(3, 8)), DelOp(key(9, 9)))

	want := make(map[string][]byte)
	for _, ops := range [][]Op{parentOps, childOps} {
		for _, op := range ops {
			if !op.remove {
				want[string(op.key)] = op.value
			} else {
				delete(want, string(op.key))
			}
		}
	}

	ranges := map[string]struct{ start, end []byte }{
		"everything":        {},
		"from a key":        {start: key(2, 4)},
		"up to a key":       {end: key(2, 4)},
		"single vault":      {start: key(2, 0), end: key(3, 0)},
		"deleted start":     {start: key(2, 3), end: key(2, 9)},
		"empty range":       {start: key(5, 0), end: key(6, 0)},
		"range before data": {end: key(1, 1)},
	}

	base, cleanup := s.makeBase()
	defer cleanup()
	for _, op := range parentOps {
		assert.Nil(t, op.Apply(base))
	}
	child := base.CacheWrap()
	for _, op := range childOps {
		assert.Nil(t, op.Apply(child))
	}

	for name, r := range ranges {
		expected := sortedRange(want, r.start, r.end)
		t.Run(name, func(t *testing.T) {
			assertIteration(t, child, r.start, r.end, false, expected)
			assertIteration(t, child, r.start, r.end, true, reverse(expected))
		})
	}

	assert.Nil(t, child.Write())
	assertIteration(t, base, nil, nil, false, sortedRange(want, nil, nil))
}

// AssertGetHas checks both the value and the presence of a key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func assertIteration(t testing.TB, kv ReadOnlyKVStore, start, end []byte, descending bool, expected []Model) {
	t.Helper()
	var (
		it  Iterator
		err error
	)
	if descending {
		it, err = kv.ReverseIterator(start, end)
	} else {
		it, err = kv.Iterator(start, end)
	}
	assert.Nil(t, err)
	defer it.Close()

	for i, m := range expected {
		if !it.Valid() {
			t.Fatalf("iterator exhausted after %d of %d models", i, len(expected))
		}
		if !bytes.Equal(m.Key, it.Key()) {
			t.Fatalf("model %d: want key %X, got %X", i, m.Key, it.Key())
		}
		assert.Equal(t, m.Value, it.Value())
		assert.Nil(t, it.Next())
	}
	if it.Valid() {
		t.Fatalf("iterator holds more than %d models", len(expected))
	}
}

// sortedRange returns the content of the map within [start, end) ordered by
// key. A nil bound is open.
func sortedRange(content map[string][]byte, start, end []byte) []Model {
	var res []Model
	for k, v := range content {
		key := []byte(k)
		if start != nil && bytes.Compare(key, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(key, end) >= 0 {
			continue
		}
		res = append(res, Pair(key, v))
	}
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

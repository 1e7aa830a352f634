package store

import (
	"testing"

	"github.com/boardvault/coffer/coffertest/assert"
	"github.com/boardvault/coffer/errors"
)

var errIteratorDone = errors.ErrIteratorDone

func TestSliceIterator(t *testing.T) {
	const size = 10

	ks := make([][]byte, size)
	vs := make([][]byte, size)
	models := make([]Model, size)
	for i := range models {
		ks[i] = []byte{'k', byte(i)}
		vs[i] = []byte{'v', byte(i)}
		models[i] = Pair(ks[i], vs[i])
	}

	i := 0
	for iter := NewSliceIterator(models); iter.Valid(); assert.Nil(t, iter.Next()) {
		if i >= size {
			t.Fatalf("iterator step greater than the size: %d >= %d", i, size)
		}
		assert.Equal(t, ks[i], iter.Key())
		assert.Equal(t, vs[i], iter.Value())
		i++
	}
	assert.Equal(t, size, i)

	it := NewSliceIterator(models)
	if !it.Valid() {
		t.Fatal("iterator expected to be valid")
	}
	it.Close()
	if it.Valid() {
		t.Fatal("closed iterator must be invalid")
	}
	assert.IsErr(t, errors.ErrIteratorDone, it.Next())
	assert.Panics(t, func() { it.Key() })
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("gone"), []byte("soon")))

	b := db.NewBatch()
	assert.Nil(t, b.Set([]byte("new"), []byte("value")))
	assert.Nil(t, b.Delete([]byte("gone")))

	// Nothing is visible before the write.
	NewTestSuite(nil).AssertGetHas(t, db, []byte("new"), nil, false)
	NewTestSuite(nil).AssertGetHas(t, db, []byte("gone"), []byte("soon"), true)

	assert.Nil(t, b.Write())
	NewTestSuite(nil).AssertGetHas(t, db, []byte("new"), []byte("value"), true)
	NewTestSuite(nil).AssertGetHas(t, db, []byte("gone"), nil, false)
}

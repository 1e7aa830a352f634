package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/boardvault/coffer/coffertest/assert"
	"github.com/boardvault/coffer/store"
)

// makeBase returns the base layer, writing directly to a working tree
func makeBase() (store.CacheableKVStore, func()) {
	commit, cleanup := makeCommitStore()
	return commit.Adapter(), cleanup
}

func makeCommitStore() (CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		panic(err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }
	commit, err := NewCommitStore(tmpDir, "base")
	if err != nil {
		cleanup()
		panic(err)
	}
	return commit, cleanup
}

func TestIavlSuite(t *testing.T) {
	suite := store.NewTestSuite(makeBase)
	t.Run("cache layers", suite.CacheLayers)
	t.Run("iteration", suite.Iteration)
}

func TestMockCommitStore(t *testing.T) {
	suite := store.NewTestSuite(func() (store.CacheableKVStore, func()) {
		return MockCommitStore().Adapter(), func() {}
	})
	t.Run("cache layers", suite.CacheLayers)
	t.Run("iteration", suite.Iteration)
}

// TestCommitOverwrite checks that we commit properly
// and can add/overwrite/query in the next adapter
func TestCommitOverwrite(t *testing.T) {
	suite := store.NewTestSuite(nil)
	k1, k2, k3 := []byte("alice"), []byte("bob"), []byte("carol")
	v1, v2, v3 := []byte("one"), []byte("two"), []byte("three")

	commit, cleanup := makeCommitStore()
	defer cleanup()
	// only one to trigger a cleanup
	commit.numHistory = 1

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)
	if len(id.Hash) != 0 {
		t.Fatal("hash is not empty")
	}

	parent := commit.CacheWrap()
	assert.Nil(t, parent.Set(k1, v1))
	assert.Nil(t, parent.Set(k2, v2))
	assert.Nil(t, parent.Write())
	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("hash is empty")
	}
	firstHash := id.Hash

	child := commit.CacheWrap()
	assert.Nil(t, child.Set(k1, v3))
	assert.Nil(t, child.Set(k3, v3))
	assert.Nil(t, child.Delete(k2))

	// a side cache wrap sees the committed state only
	side := commit.CacheWrap()
	suite.AssertGetHas(t, side, k1, v1, true)
	suite.AssertGetHas(t, side, k2, v2, true)
	suite.AssertGetHas(t, side, k3, nil, false)

	suite.AssertGetHas(t, child, k1, v3, true)
	suite.AssertGetHas(t, child, k2, nil, false)
	suite.AssertGetHas(t, child, k3, v3, true)

	// the committed view does not change before the commit
	assert.Nil(t, child.Write())
	got, err := commit.Get(k1)
	assert.Nil(t, err)
	assert.Equal(t, v1, got)

	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id.Version)
	if string(id.Hash) == string(firstHash) {
		t.Fatal("hash must change with the state")
	}
	got, err = commit.Get(k1)
	assert.Nil(t, err)
	assert.Equal(t, v3, got)
}

func TestLoadLatestVersion(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-load-")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	commit, err := NewCommitStore(tmpDir, "state")
	assert.Nil(t, err)
	assert.Nil(t, commit.LoadLatestVersion())

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("vault"), []byte("1")))
	assert.Nil(t, cache.Write())
	want, err := commit.Commit()
	assert.Nil(t, err)

	// A second store over the same data directory cannot be opened while
	// the first one holds the lock, so test the reload on the same tree.
	assert.Nil(t, commit.LoadLatestVersion())
	got, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, want, got)

	val, err := commit.Get([]byte("vault"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), val)
}

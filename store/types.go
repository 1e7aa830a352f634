package store

import "github.com/boardvault/coffer"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = coffer.ReadOnlyKVStore
	SetDeleter       = coffer.SetDeleter
	KVStore          = coffer.KVStore
	Batch            = coffer.Batch
	Iterator         = coffer.Iterator
	CacheableKVStore = coffer.CacheableKVStore
	KVCacheWrap      = coffer.KVCacheWrap
	CommitKVStore    = coffer.CommitKVStore
	CommitID         = coffer.CommitID
	Model            = coffer.Model
)

// Pair constructs a model from a key-value pair
var Pair = coffer.Pair

package orm

import (
	"fmt"
	"regexp"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	"github.com/gogo/protobuf/proto"
)

// SeqID names the sequence a ModelBucket issues primary keys from.
const SeqID = "id"

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores objects of a single model type under the prefix "<name>:"
// and keeps its indexes in sync with them.
type Bucket struct {
	name    string
	prefix  []byte
	empty   Object
	indexes []index
}

var _ coffer.QueryHandler = Bucket{}

// NewBucket returns a bucket of the model held by empty. It panics on a
// name that is not 3 to 10 lower case letters or underscores.
func NewBucket(name string, empty Object) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name: %q", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":"), empty: empty}
}

// WithMultiKeyIndex returns a copy of the bucket maintaining one more
// index. A unique index rejects a second object under the same value.
func (b Bucket) WithMultiKeyIndex(name string, keysOf MultiKeyIndexer, unique bool) Bucket {
	if _, ok := b.index(name); ok {
		panic(fmt.Sprintf("index %s registered twice", name))
	}
	idx := newIndex(b.name, name, keysOf, unique, b.DBKey)
	b.indexes = append(append([]index(nil), b.indexes...), idx)
	return b
}

func (b Bucket) index(name string) (index, bool) {
	for _, idx := range b.indexes {
		if idx.name == name {
			return idx, true
		}
	}
	return index{}, false
}

// DBKey returns the database key of a primary key. The result never shares
// memory with key.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	out = append(out, b.prefix...)
	return append(out, key...)
}

// Register serves the bucket under "/<name>" and every index under
// "/<name>/<index>". An empty name uses the name of the bucket.
func (b Bucket) Register(name string, r coffer.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
	for _, idx := range b.indexes {
		r.Register("/"+name+"/"+idx.name, idx)
	}
}

// Query returns the object stored under the key given as data, or all
// objects whose key starts with it for the prefix mod.
func (b Bucket) Query(db coffer.ReadOnlyKVStore, mod string, data []byte) ([]coffer.Model, error) {
	switch mod {
	case coffer.KeyQueryMod:
		key := b.DBKey(data)
		val, err := db.Get(key)
		if err != nil || val == nil {
			return nil, err
		}
		return []coffer.Model{coffer.Pair(key, val)}, nil
	case coffer.PrefixQueryMod:
		return scanPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// Get returns the object stored under key, or nil if there is none.
func (b Bucket) Get(db coffer.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	obj := b.empty.Clone()
	if err := proto.Unmarshal(raw, obj.Value()); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "%s: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates and writes the object, updating all indexes.
func (b Bucket) Save(db coffer.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := proto.Marshal(obj.Value())
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "%s: %s", b.name, err)
	}
	if len(b.indexes) != 0 {
		prev, err := b.Get(db, obj.Key())
		if err != nil {
			return err
		}
		for _, idx := range b.indexes {
			if err := idx.update(db, prev, obj); err != nil {
				return err
			}
		}
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

// scanPrefix returns every entry whose key starts with prefix, in key
// order.
func scanPrefix(db coffer.ReadOnlyKVStore, prefix []byte) ([]coffer.Model, error) {
	it, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var res []coffer.Model
	for it.Valid() {
		res = append(res, coffer.Pair(it.Key(), it.Value()))
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// prefixEnd returns the first key after all keys starting with prefix, or
// nil when there is none.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for len(end) != 0 {
		last := len(end) - 1
		if end[last] != 0xFF {
			end[last]++
			return end
		}
		end = end[:last]
	}
	return nil
}

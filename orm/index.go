package orm

import (
	"bytes"
	"sort"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	"github.com/gogo/protobuf/proto"
)

// MultiKeyIndexer returns every value an object is indexed under. Returning
// no value leaves the object out of the index.
type MultiKeyIndexer func(Object) ([][]byte, error)

// index maps a value to the primary keys of the objects indexed under it.
// All references of a value share one database entry: the primary key
// itself for a unique index, a refList otherwise.
type index struct {
	name   string
	prefix []byte
	unique bool
	keysOf MultiKeyIndexer
	// dbKey turns a primary key into the key the object is stored under.
	dbKey func([]byte) []byte
}

var _ coffer.QueryHandler = index{}

func newIndex(bucket, name string, keysOf MultiKeyIndexer, unique bool, dbKey func([]byte) []byte) index {
	return index{
		name:   name,
		prefix: []byte("_i." + bucket + "_" + name + ":"),
		unique: unique,
		keysOf: keysOf,
		dbKey:  dbKey,
	}
}

func (x index) key(value []byte) []byte {
	out := make([]byte, 0, len(x.prefix)+len(value))
	out = append(out, x.prefix...)
	return append(out, value...)
}

// update moves the references of an object from the values prev was
// indexed under to those of next. A nil prev is an insert.
func (x index) update(db coffer.KVStore, prev, next Object) error {
	var before, after [][]byte
	if prev != nil {
		values, err := x.keysOf(prev)
		if err != nil {
			return errors.Wrapf(err, "index %s", x.name)
		}
		before = distinct(values)
	}
	if next != nil {
		if prev != nil && !bytes.Equal(prev.Key(), next.Key()) {
			return errors.Wrap(errors.ErrImmutable, "primary key changed")
		}
		values, err := x.keysOf(next)
		if err != nil {
			return errors.Wrapf(err, "index %s", x.name)
		}
		after = distinct(values)
	}

	for _, v := range missing(before, after) {
		if err := x.unlink(db, v, prev.Key()); err != nil {
			return err
		}
	}
	for _, v := range missing(after, before) {
		if err := x.link(db, v, next.Key()); err != nil {
			return err
		}
	}
	return nil
}

func (x index) link(db coffer.KVStore, value, pk []byte) error {
	refs, err := x.refs(db, value)
	if err != nil {
		return err
	}
	if x.unique && len(refs) != 0 && !bytes.Equal(refs[0], pk) {
		return errors.Wrapf(errors.ErrDuplicate, "index %s: %X", x.name, value)
	}
	i := sort.Search(len(refs), func(i int) bool { return bytes.Compare(refs[i], pk) >= 0 })
	if i < len(refs) && bytes.Equal(refs[i], pk) {
		return nil
	}
	refs = append(refs, nil)
	copy(refs[i+1:], refs[i:])
	refs[i] = pk
	return x.save(db, value, refs)
}

func (x index) unlink(db coffer.KVStore, value, pk []byte) error {
	refs, err := x.refs(db, value)
	if err != nil {
		return err
	}
	i := sort.Search(len(refs), func(i int) bool { return bytes.Compare(refs[i], pk) >= 0 })
	if i == len(refs) || !bytes.Equal(refs[i], pk) {
		return errors.Wrapf(errors.ErrNotFound, "index %s: %X", x.name, value)
	}
	return x.save(db, value, append(refs[:i], refs[i+1:]...))
}

func (x index) save(db coffer.KVStore, value []byte, refs [][]byte) error {
	key := x.key(value)
	switch {
	case len(refs) == 0:
		return db.Delete(key)
	case x.unique:
		return db.Set(key, refs[0])
	}
	raw, err := proto.Marshal(&refList{Refs: refs})
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "index %s: %s", x.name, err)
	}
	return db.Set(key, raw)
}

// refs returns the sorted primary keys indexed under value.
func (x index) refs(db coffer.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(x.key(value))
	if err != nil || raw == nil {
		return nil, err
	}
	return x.decode(raw)
}

func (x index) decode(raw []byte) ([][]byte, error) {
	if x.unique {
		return [][]byte{raw}, nil
	}
	var l refList
	if err := proto.Unmarshal(raw, &l); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "index %s: %s", x.name, err)
	}
	return l.Refs, nil
}

// Query returns the objects indexed under the value given as data, or
// under any value starting with it for the prefix mod. Keys of the result
// are the database keys of the objects.
func (x index) Query(db coffer.ReadOnlyKVStore, mod string, data []byte) ([]coffer.Model, error) {
	var pks [][]byte
	switch mod {
	case coffer.KeyQueryMod:
		refs, err := x.refs(db, data)
		if err != nil {
			return nil, err
		}
		pks = refs
	case coffer.PrefixQueryMod:
		entries, err := scanPrefix(db, x.key(data))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			refs, err := x.decode(e.Value)
			if err != nil {
				return nil, err
			}
			pks = append(pks, refs...)
		}
		pks = distinct(pks)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}

	res := make([]coffer.Model, 0, len(pks))
	for _, pk := range pks {
		key := x.dbKey(pk)
		val, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res = append(res, coffer.Pair(key, val))
	}
	return res, nil
}

// distinct drops repeated values, keeping the first occurrence.
func distinct(values [][]byte) [][]byte {
	var res [][]byte
	for _, v := range values {
		if !holds(res, v) {
			res = append(res, v)
		}
	}
	return res
}

// missing returns the values of a that b does not hold.
func missing(a, b [][]byte) [][]byte {
	var res [][]byte
	for _, v := range a {
		if !holds(b, v) {
			res = append(res, v)
		}
	}
	return res
}

func holds(set [][]byte, v []byte) bool {
	for _, s := range set {
		if bytes.Equal(s, v) {
			return true
		}
	}
	return false
}

// refList is the stored form of the references of a non unique index
// value.
type refList struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3" json:"refs,omitempty"`
}

func (m *refList) Reset()         { *m = refList{} }
func (m *refList) String() string { return proto.CompactTextString(m) }
func (*refList) ProtoMessage()    {}

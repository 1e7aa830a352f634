package orm

import (
	"reflect"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
)

// ModelBucket stores models of a single type. Unlike Bucket it works with
// models directly and can issue primary keys.
type ModelBucket interface {
	// One loads the model stored under key into dest. It returns
	// ErrNotFound on a miss and ErrType if dest cannot hold the model.
	One(db coffer.ReadOnlyKVStore, key []byte, dest Model) error

	// ByIndex appends to dest all models indexed under key by the named
	// index and returns their primary keys. dest is a pointer to a slice of
	// the model type, or of pointers to it.
	ByIndex(db coffer.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error)

	// Put validates and stores the model. A nil key is replaced by the next
	// value of the ID sequence. The key used is returned.
	Put(db coffer.KVStore, key []byte, m Model) ([]byte, error)

	// Has returns ErrNotFound if nothing is stored under key.
	Has(db coffer.ReadOnlyKVStore, key []byte) error

	// Register serves the bucket and its indexes to queries.
	Register(name string, r coffer.QueryRouter)
}

// ModelSlicePtr is a pointer to a slice of models, checked at runtime.
type ModelSlicePtr interface{}

// ModelBucketOption configures a ModelBucket.
type ModelBucketOption func(*modelBucket)

// WithIDSequence makes the bucket issue primary keys from s instead of the
// "id" sequence of the bucket.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) { mb.ids = s }
}

// WithMultiKeyIndex adds an index. See Bucket.WithMultiKeyIndex.
func WithMultiKeyIndex(name string, keysOf MultiKeyIndexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.bucket = mb.bucket.WithMultiKeyIndex(name, keysOf, unique)
	}
}

// NewModelBucket returns a bucket storing models of the type of m.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	mb := &modelBucket{
		bucket: NewBucket(name, NewSimpleObj(nil, m)),
		ids:    NewSequence(name, SeqID),
		typ:    reflect.TypeOf(m),
	}
	for _, o := range opts {
		o(mb)
	}
	return mb
}

type modelBucket struct {
	bucket Bucket
	ids    Sequence
	// typ is the pointer type of the stored model.
	typ reflect.Type
}

func (mb *modelBucket) Register(name string, r coffer.QueryRouter) {
	mb.bucket.Register(name, r)
}

func (mb *modelBucket) One(db coffer.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.bucket.Get(db, key)
	switch {
	case err != nil:
		return err
	case obj == nil:
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	val := reflect.ValueOf(obj.Value())
	if !val.Type().AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be loaded into %T", obj.Value(), dest)
	}
	reflect.ValueOf(dest).Elem().Set(val.Elem())
	return nil
}

func (mb *modelBucket) ByIndex(db coffer.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error) {
	idx, ok := mb.bucket.index(indexName)
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, indexName)
	}

	out := reflect.ValueOf(dest)
	if out.Kind() != reflect.Ptr || out.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "want pointer to slice, got %T", dest)
	}
	out = out.Elem()
	elem := out.Type().Elem()
	pointers := elem.Kind() == reflect.Ptr
	if pointers {
		elem = elem.Elem()
	}
	if elem != mb.typ.Elem() {
		return nil, errors.Wrapf(errors.ErrType, "bucket of %s cannot load %s", mb.typ.Elem(), elem)
	}

	pks, err := idx.refs(db, key)
	if err != nil {
		return nil, err
	}
	for _, pk := range pks {
		obj, err := mb.bucket.Get(db, pk)
		if err != nil {
			return nil, err
		}
		if obj == nil {
			return nil, errors.Wrapf(errors.ErrHuman, "index %s references missing %X", indexName, pk)
		}
		val := reflect.ValueOf(obj.Value())
		if !pointers {
			val = val.Elem()
		}
		out.Set(reflect.Append(out, val))
	}
	return pks, nil
}

func (mb *modelBucket) Put(db coffer.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != mb.typ {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in a bucket of %s", m, mb.typ)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	if len(key) == 0 {
		id, err := mb.ids.NextVal(db)
		if err != nil {
			return nil, err
		}
		key = id
	}
	if err := mb.bucket.Save(db, NewSimpleObj(key, m)); err != nil {
		return nil, errors.Wrap(err, "cannot save")
	}
	return key, nil
}

func (mb *modelBucket) Has(db coffer.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	ok, err := db.Has(mb.bucket.DBKey(key))
	switch {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "key %X", key)
	}
	return nil
}

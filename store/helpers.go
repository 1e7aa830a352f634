package store

import (
	"github.com/boardvault/coffer/errors"
)

// SliceIterator walks over models loaded in advance.
type SliceIterator struct {
	models []Model
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Valid() bool {
	return len(s.models) != 0
}

// Next returns ErrIteratorDone once all models were visited.
func (s *SliceIterator) Next() error {
	if !s.Valid() {
		return errors.ErrIteratorDone
	}
	s.models = s.models[1:]
	return nil
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("slice iterator exhausted")
	}
	return s.models[0]
}

func (s *SliceIterator) Close() {
	s.models = nil
}

// EmptyKVStore holds nothing and drops every write. It is the bottom layer
// of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error)  { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)    { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error { return nil }
func (EmptyKVStore) Delete([]byte) error         { return nil }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

// Op is a single write, replayed by a batch.
type Op struct {
	key   []byte
	value []byte
	// remove is set for a deletion, value is then ignored.
	remove bool
}

// SetOp stores value under key.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp removes key.
func DelOp(key []byte) Op {
	return Op{key: key, remove: true}
}

// Apply performs the write on out.
func (o Op) Apply(out SetDeleter) error {
	if o.remove {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch records writes and replays them in order on Write. A
// failing write leaves the earlier ones applied, so it serves in memory
// stores only.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write replays the recorded writes and forgets them.
func (b *NonAtomicBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			b.ops = b.ops[i:]
			return errors.Wrap(err, "batch write")
		}
	}
	b.ops = nil
	return nil
}

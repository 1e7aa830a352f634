package orm

import (
	"encoding/binary"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
)

// Sequence is a counter persisted under "_s.<bucket>:<name>". Issued values
// are encoded big endian, so keys built from them sort in issue order.
type Sequence struct {
	key []byte
}

// NewSequence returns the counter called name within bucket.
func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// NextVal advances the counter and returns the new value, encoded. The
// first value issued is 1.
func (s Sequence) NextVal(db coffer.KVStore) ([]byte, error) {
	n, err := s.Latest(db)
	if err != nil {
		return nil, err
	}
	raw := EncodeSequence(n + 1)
	if err := db.Set(s.key, raw); err != nil {
		return nil, errors.Wrap(err, "sequence")
	}
	return raw, nil
}

// Latest returns the last issued value, zero before the first NextVal.
func (s Sequence) Latest(db coffer.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, errors.Wrap(err, "sequence")
	}
	return DecodeSequence(raw), nil
}

// EncodeSequence returns the 8 byte form of a sequence value.
func EncodeSequence(n int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(n))
	return raw
}

// DecodeSequence reverses EncodeSequence. Nil is zero.
func DecodeSequence(raw []byte) int64 {
	if len(raw) == 0 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

// ValidateSequence checks that id has the form of an encoded sequence
// value.
func ValidateSequence(id []byte) error {
	switch len(id) {
	case 0:
		return errors.Wrap(errors.ErrEmpty, "sequence missing")
	case 8:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "sequence of %d bytes, want 8", len(id))
	}
}

package sigs

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/crypto"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/orm"
	"github.com/gogo/protobuf/proto"
)

// BucketName prefixes the signer data in the store.
const BucketName = "sigs"

// maxSequence is Number.MAX_SAFE_INTEGER, the greatest nonce a javascript
// client can sign.
const maxSequence = 1<<53 - 1

// UserData is the public key of a signer and the sequence its next
// signature must carry.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	switch {
	case u.Pubkey == nil:
		return errors.Field("Pubkey", errors.ErrEmpty, "required")
	case u.Sequence < 0 || u.Sequence > maxSequence:
		return errors.Field("Sequence", ErrInvalidSequence, "out of range")
	}
	return nil
}

// Advance accepts a signature carrying seq and moves to the next sequence.
func (u *UserData) Advance(seq int64) error {
	if seq != u.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", u.Sequence, seq)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	u.Sequence++
	return nil
}

// Bucket stores UserData under the address of the public key.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(UserData))),
	}
}

// Load returns the data of the signer of pubkey. A key that never signed
// starts with sequence 0.
func (b Bucket) Load(db coffer.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	obj, err := b.Get(db, pubkey.Address())
	switch {
	case err != nil:
		return nil, errors.Wrap(err, "load signer")
	case obj == nil:
		return &UserData{Pubkey: pubkey}, nil
	}
	user, ok := obj.Value().(*UserData)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return user, nil
}

// Store saves the signer data.
func (b Bucket) Store(db coffer.KVStore, u *UserData) error {
	if u.Pubkey == nil {
		return errors.Field("Pubkey", errors.ErrEmpty, "required")
	}
	return b.Save(db, orm.NewSimpleObj(u.Pubkey.Address(), u))
}

// NextNonce returns the sequence the next signature of addr must carry.
// The address of a signer is <crypto.Signer>.PublicKey().Address().
func NextNonce(db coffer.ReadOnlyKVStore, addr coffer.Address) (int64, error) {
	obj, err := NewBucket().Get(db, addr)
	if err != nil || obj == nil {
		return 0, errors.Wrap(err, "load signer")
	}
	if u, ok := obj.Value().(*UserData); ok {
		return u.Sequence, nil
	}
	return 0, errors.WithType(errors.ErrModel, obj.Value())
}

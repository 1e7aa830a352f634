package sigs

import (
	"testing"

	"github.com/boardvault/coffer/crypto"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketLoadAndStore(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	user, err := bucket.Load(db, pub)
	require.NoError(t, err)
	assert.Equal(t, &UserData{Pubkey: pub}, user)
	obj, err := bucket.Get(db, pub.Address())
	require.NoError(t, err)
	assert.Nil(t, obj, "loading must not create the signer")

	require.NoError(t, user.Advance(0))
	require.NoError(t, bucket.Store(db, user))

	loaded, err := bucket.Load(db, pub)
	require.NoError(t, err)
	assert.Equal(t, int64(1), loaded.Sequence)
	assert.Equal(t, pub, loaded.Pubkey)

	err = bucket.Store(db, &UserData{Sequence: 1})
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestUserDataAdvance(t *testing.T) {
	u := &UserData{Pubkey: crypto.GenPrivKeyEd25519().PublicKey(), Sequence: 4}
	assert.True(t, ErrInvalidSequence.Is(u.Advance(3)))
	assert.True(t, ErrInvalidSequence.Is(u.Advance(5)))
	assert.NoError(t, u.Advance(4))
	assert.Equal(t, int64(5), u.Sequence)

	u.Sequence = maxSequence
	assert.True(t, errors.ErrOverflow.Is(u.Advance(maxSequence)))
}

func TestUserDataValidate(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()
	cases := map[string]struct {
		user    UserData
		wantErr *errors.Error
	}{
		"new signer":       {user: UserData{Pubkey: pub}},
		"signed before":    {user: UserData{Pubkey: pub, Sequence: 17}},
		"missing key":      {user: UserData{Sequence: 1}, wantErr: errors.ErrEmpty},
		"negative":         {user: UserData{Pubkey: pub, Sequence: -30}, wantErr: ErrInvalidSequence},
		"beyond js number": {user: UserData{Pubkey: pub, Sequence: maxSequence + 1}, wantErr: ErrInvalidSequence},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if err := tc.user.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestNextNonceOfUnknownSigner(t *testing.T) {
	nonce, err := NextNonce(store.MemStore(), crypto.GenPrivKeyEd25519().PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(0), nonce)
}

package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/boardvault/coffer/errors"
	"github.com/stretchr/testify/require"
)

func TestDeriveAccounts(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	keys, err := DeriveAccounts(seed, 20)
	require.NoError(t, err)
	require.Len(t, keys, 20)

	seen := make(map[string]struct{})
	for _, k := range keys {
		addr := k.PublicKey().Address().String()
		_, dup := seen[addr]
		require.False(t, dup, "address %s derived twice", addr)
		seen[addr] = struct{}{}
	}

	// Derivation is deterministic.
	again, err := DeriveKey(seed, AccountPath(3))
	require.NoError(t, err)
	require.True(t, bytes.Equal(keys[3].Ed25519, again.Ed25519))

	msg := []byte("approve")
	sig, err := again.Sign(msg)
	require.NoError(t, err)
	require.True(t, keys[3].PublicKey().Verify(msg, sig))
}

func TestDeriveKeyErrors(t *testing.T) {
	_, err := DeriveKey([]byte("short"), AccountPath(0))
	require.True(t, errors.ErrInput.Is(err))

	seed := bytes.Repeat([]byte{1}, 32)
	_, err = DeriveKey(seed, "m/44/234")
	require.True(t, errors.ErrInput.Is(err))
}

func TestAccountPath(t *testing.T) {
	require.Equal(t, "m/44'/234'/19'", AccountPath(19))
}

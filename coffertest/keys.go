package coffertest

import (
	"encoding/binary"
	"testing"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/crypto"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a fresh key.
func NewCondition() coffer.Condition {
	return NewKey().PublicKey().Condition()
}

// RandomAddr returns the address of a fresh key.
func RandomAddr() coffer.Address {
	return NewCondition().Address()
}

// SequenceID returns the binary representation of an orm sequence value.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// ParseAddress decodes an address in any of the coffer.ParseAddress
// formats, failing the test on error.
func ParseAddress(t testing.TB, enc string) coffer.Address {
	t.Helper()
	addr, err := coffer.ParseAddress(enc)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", enc, err)
	}
	return addr
}

package crypto

import (
	"fmt"

	"github.com/boardvault/coffer/errors"
	"github.com/stellar/go/exp/crypto/derivation"
)

// CoinType is the SLIP-44 coin type used in derivation paths.
const CoinType = 234

// AccountPath returns the hardened derivation path of the n-th account.
func AccountPath(n uint32) string {
	return fmt.Sprintf("m/44'/%d'/%d'", CoinType, n)
}

// DeriveKey derives an ed25519 private key from a master seed following
// SLIP-10. Only hardened path segments are supported.
func DeriveKey(seed []byte, path string) (*PrivateKey, error) {
	if len(seed) < 16 {
		return nil, errors.Wrap(errors.ErrInput, "seed must be at least 16 bytes")
	}
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive path %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}

// DeriveAccounts returns count private keys derived from given seed, one
// per account path starting at index 0.
func DeriveAccounts(seed []byte, count int) ([]*PrivateKey, error) {
	keys := make([]*PrivateKey, 0, count)
	for i := 0; i < count; i++ {
		k, err := DeriveKey(seed, AccountPath(uint32(i)))
		if err != nil {
			return nil, errors.Wrapf(err, "account %d", i)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

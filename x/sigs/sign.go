package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/crypto"
	"github.com/boardvault/coffer/errors"
)

// signVersion starts every signed digest. Changing the layout below
// requires a new version.
var signVersion = []byte{0, 0xCA, 0xFE, 0}

// SignBytes returns the digest a signer signs to authorize tx with the
// given sequence on the chain. It is the SHA-512 hash of
//
//	version | len(chainID) | chainID | sequence     | tx sign bytes
//	4 bytes | 1 byte       | ascii   | 8 bytes (BE) |
//
// A digest of fixed size can be signed by hardware wallets too.
func SignBytes(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "tx sign bytes")
	}
	return digest(payload, chainID, seq)
}

func digest(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrapf(ErrInvalidSequence, "negative sequence %d", seq)
	}
	if !coffer.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))

	h := sha512.New()
	h.Write(signVersion)
	h.Write([]byte{byte(len(chainID))})
	h.Write([]byte(chainID))
	h.Write(nonce[:])
	h.Write(payload)
	return h.Sum(nil), nil
}

// SignTx signs tx for the chain with the given sequence of the signer.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	msg, err := SignBytes(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(msg)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{Pubkey: signer.PublicKey(), Signature: sig, Sequence: seq}, nil
}

// verifySignatures checks every signature of tx and advances the sequence
// of each signer, so a signature is accepted only once. It returns the
// conditions of the signers in signature order.
func verifySignatures(db coffer.KVStore, tx SignedTx, chainID string) ([]coffer.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "tx sign bytes")
	}
	bucket := NewBucket()
	sigs := tx.GetSignatures()
	signers := make([]coffer.Condition, 0, len(sigs))
	for i, sig := range sigs {
		if err := sig.Validate(); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		user, err := bucket.Load(db, sig.Pubkey)
		if err != nil {
			return nil, err
		}
		msg, err := digest(payload, chainID, sig.Sequence)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		if !user.Pubkey.Verify(msg, sig.Signature) {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "signature %d does not match", i)
		}
		if err := user.Advance(sig.Sequence); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		if err := bucket.Store(db, user); err != nil {
			return nil, err
		}
		signers = append(signers, user.Pubkey.Condition())
	}
	return signers, nil
}

package x

import (
	"github.com/boardvault/coffer"
)

// Authenticator tells which conditions the transaction being processed
// fulfills. Handlers receive one in their constructor and never depend on
// a concrete signature scheme.
type Authenticator interface {
	// GetConditions returns every condition fulfilled in the context.
	GetConditions(coffer.Context) []coffer.Condition
	// HasAddress returns true if a fulfilled condition hashes to the
	// address.
	HasAddress(coffer.Context, coffer.Address) bool
}

// MultiAuth fulfills what any of its Authenticators fulfills.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

// ChainAuth combines Authenticators, for example signatures and a future
// multisig contract, into one.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

// GetConditions returns the conditions of all Authenticators, in order and
// without duplicates.
func (m MultiAuth) GetConditions(ctx coffer.Context) []coffer.Condition {
	var res []coffer.Condition
	for _, impl := range m {
	next:
		for _, c := range impl.GetConditions(ctx) {
			for _, seen := range res {
				if seen.Equals(c) {
					continue next
				}
			}
			res = append(res, c)
		}
	}
	return res
}

func (m MultiAuth) HasAddress(ctx coffer.Context, addr coffer.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first fulfilled condition, or nil for an unsigned
// transaction.
func MainSigner(ctx coffer.Context, auth Authenticator) coffer.Condition {
	if signers := auth.GetConditions(ctx); len(signers) > 0 {
		return signers[0]
	}
	return nil
}

// AnySigner returns the first candidate authenticated in the context, or nil.
// A vault board uses it to learn as which member a transaction acts.
func AnySigner(ctx coffer.Context, auth Authenticator, candidates []coffer.Address) coffer.Address {
	for _, c := range candidates {
		if auth.HasAddress(ctx, c) {
			return c
		}
	}
	return nil
}

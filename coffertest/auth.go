package coffertest

import (
	"context"
	"fmt"

	"github.com/boardvault/coffer"
)

// Auth authenticates a fixed set of conditions, regardless of the context.
// Signer and Signers are merged.
type Auth struct {
	Signer  coffer.Condition
	Signers []coffer.Condition
}

func (a *Auth) GetConditions(coffer.Context) []coffer.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]coffer.Condition, 0, len(a.Signers)+1)
	return append(append(conds, a.Signers...), a.Signer)
}

func (a *Auth) HasAddress(ctx coffer.Context, addr coffer.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

// CtxAuth reads the authenticated conditions from the context, so that one
// authenticator can serve transactions signed by different board members.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context authenticating the given conditions.
func (a *CtxAuth) SetConditions(ctx coffer.Context, conds ...coffer.Condition) coffer.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx coffer.Context) []coffer.Condition {
	switch v := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []coffer.Condition:
		return v
	default:
		panic(fmt.Sprintf("ctx auth: %T stored under %q", v, a.Key))
	}
}

func (a *CtxAuth) HasAddress(ctx coffer.Context, addr coffer.Address) bool {
	return signedBy(a.GetConditions(ctx), addr)
}

func signedBy(conds []coffer.Condition, addr coffer.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}

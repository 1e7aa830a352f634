package sigs

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
)

// verifyCost is the gas charged on check for every valid signature.
const verifyCost = 500

// RegisterQuery serves the signer data under "/auth".
func RegisterQuery(qr coffer.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx and hands the signers to
// the rest of the stack. At least one valid signature is required.
// Transactions that cannot carry signatures pass through unchanged.
type Decorator struct{}

var _ coffer.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

func (d Decorator) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx, next coffer.Checker) (*coffer.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(n * verifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx, next coffer.Deliverer) (*coffer.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate returns the context carrying the signers of tx and their
// number.
func (Decorator) authenticate(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (coffer.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := verifySignatures(db, stx, coffer.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}

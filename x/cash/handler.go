package cash

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/gconf"
	"github.com/boardvault/coffer/x"
)

// RegisterRoutes routes the messages of this package.
func RegisterRoutes(r coffer.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth))
}

// RegisterQuery serves the wallets under "/wallets".
func RegisterQuery(qr coffer.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler transfers native currency on behalf of the owner of the
// source wallet.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ coffer.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

// Check does not look at the balance, which may change before the
// transaction is delivered.
func (h SendHandler) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.CheckResult, error) {
	if _, err := h.authorize(ctx, db, tx); err != nil {
		return nil, err
	}
	return &coffer.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.DeliverResult, error) {
	msg, err := h.authorize(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &coffer.DeliverResult{}, nil
}

func (h SendHandler) authorize(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := coffer.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "owner of %s did not sign", msg.Source)
	}
	ticker, err := NativeTicker(db)
	if err != nil {
		return nil, err
	}
	if msg.Amount.Ticker != ticker {
		return nil, errors.Wrapf(errors.ErrCurrency, "only %s can be sent", ticker)
	}
	return &msg, nil
}

// NewConfigHandler returns the handler of UpdateConfigurationMsg.
func NewConfigHandler(auth x.Authenticator) coffer.Handler {
	return gconf.NewUpdateConfigurationHandler(confPkg, &Configuration{}, auth)
}

package cash

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/errors"
)

// Balancer returns the funds held by an address.
type Balancer interface {
	Balance(coffer.ReadOnlyKVStore, coffer.Address) (coin.Coins, error)
}

// CoinMover transfers funds between addresses.
type CoinMover interface {
	MoveCoins(db coffer.KVStore, src, dest coffer.Address, amount coin.Coin) error
}

// CoinMinter creates funds.
type CoinMinter interface {
	CoinMint(db coffer.KVStore, dest coffer.Address, amount coin.Coin) error
}

// Controller is everything other extensions may do with wallets. It does
// not authorize anything: callers check who may spend the funds.
type Controller interface {
	Balancer
	CoinMover
	CoinMinter
}

// BaseController keeps wallets in a Bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns ErrNotFound if addr never held a wallet.
func (c BaseController) Balance(db coffer.ReadOnlyKVStore, addr coffer.Address) (coin.Coins, error) {
	w, err := c.bucket.Get(db, addr)
	switch {
	case err != nil:
		return nil, err
	case w == nil:
		return nil, errors.Wrapf(errors.ErrNotFound, "wallet %s", addr)
	}
	return AsCoins(w), nil
}

// MoveCoins fails with ErrEmpty if src has no wallet and with ErrAmount if
// it holds less than amount.
func (c BaseController) MoveCoins(db coffer.KVStore, src, dest coffer.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "cannot move %s", amount)
	}
	from, err := c.bucket.Get(db, src)
	switch {
	case err != nil:
		return err
	case from == nil:
		return errors.Wrapf(errors.ErrEmpty, "wallet %s", src)
	case !AsCoins(from).Contains(amount):
		return errors.Wrapf(errors.ErrAmount, "wallet %s holds less than %s", src, amount)
	case src.Equals(dest):
		return nil
	}

	to, err := c.bucket.Wallet(db, dest)
	if err != nil {
		return err
	}
	if err := deposit(from, amount.Negative()); err != nil {
		return err
	}
	if err := deposit(to, amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, from); err != nil {
		return errors.Wrap(err, "sender")
	}
	return errors.Wrap(c.bucket.Save(db, to), "recipient")
}

// CoinMint adds amount to the wallet of dest, creating it if needed.
func (c BaseController) CoinMint(db coffer.KVStore, dest coffer.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "cannot mint %s", amount)
	}
	to, err := c.bucket.Wallet(db, dest)
	if err != nil {
		return err
	}
	if err := deposit(to, amount); err != nil {
		return err
	}
	return c.bucket.Save(db, to)
}

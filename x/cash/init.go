package cash

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/gconf"
)

// optKey is the app state key of the genesis wallets.
const optKey = "cash"

// GenesisAccount is a wallet declared in the genesis file. The address is
// hex encoded.
type GenesisAccount struct {
	Address coffer.Address `json:"address"`
	Coins   coin.Coins     `json:"coins"`
}

// Initializer loads the cash configuration and the genesis wallets.
type Initializer struct{}

var _ coffer.Initializer = Initializer{}

func (Initializer) FromGenesis(opts coffer.Options, db coffer.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return err
	}

	var accounts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accounts); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis wallets: %s", err)
	}
	bucket := NewBucket()
	for i, a := range accounts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
		w, err := WalletWith(a.Address, a.Coins...)
		if err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
		if err := bucket.Save(db, w); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
	}
	return nil
}

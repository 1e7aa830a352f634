package vault

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/gconf"
)

const optKey = "vault"

// GenesisVault is a vault declared in the genesis file.
type GenesisVault struct {
	Members []coffer.Address `json:"members"`
	Name    string           `json:"name"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ coffer.Initializer = Initializer{}

// FromGenesis stores the vault configuration and creates all declared
// vaults. Vault IDs are assigned in declaration order, starting with 1.
func (Initializer) FromGenesis(opts coffer.Options, db coffer.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	next, err := opts.Stream(optKey)
	switch {
	case errors.ErrEmpty.Is(err):
		// A chain may start without any vault.
		return nil
	case err != nil:
		return errors.Wrap(err, "vault genesis")
	}
	bucket := NewVaultBucket()
	for i := 0; ; i++ {
		var v GenesisVault
		switch err := next(&v); {
		case errors.ErrEmpty.Is(err):
			return nil
		case err != nil:
			return errors.Wrapf(err, "vault #%d", i)
		}
		if len(v.Members) > int(conf.MaxMembers) {
			return errors.Wrapf(errors.ErrInput, "vault #%d: more than %d members", i, conf.MaxMembers)
		}
		vault := &Vault{
			Members: v.Members,
			Name:    v.Name,
		}
		if _, err := bucket.Put(db, nil, vault); err != nil {
			return errors.Wrapf(err, "cannot save vault #%d", i)
		}
	}
}

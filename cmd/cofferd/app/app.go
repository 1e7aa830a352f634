// Package app assembles the cofferd node: the decorator chain and routes
// of the cash and vault extensions, the query paths and the genesis
// loaders.
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/app"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/store/iavl"
	"github.com/boardvault/coffer/x"
	"github.com/boardvault/coffer/x/cash"
	"github.com/boardvault/coffer/x/sigs"
	"github.com/boardvault/coffer/x/utils"
	"github.com/boardvault/coffer/x/vault"
	"github.com/tendermint/tendermint/libs/log"
)

// Stack returns the transaction handler of the node. Signatures are
// verified and the sequence of every signer incremented before a message
// is routed. A message failing in DeliverTx still consumes the sequence,
// while a failing CheckTx leaves no trace in the mempool state.
func Stack() coffer.Handler {
	auth := x.ChainAuth(sigs.Authenticate{})
	bank := cash.NewController(cash.NewBucket())

	routes := app.NewRouter()
	cash.RegisterRoutes(routes, auth, bank)
	vault.RegisterRoutes(routes, auth, bank)

	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(routes)
}

// Initializers returns the genesis loaders of every extension.
func Initializers() coffer.Initializer {
	return coffer.ChainInitializers(
		&cash.Initializer{},
		&vault.Initializer{},
	)
}

func queries() coffer.QueryRouter {
	qr := coffer.NewQueryRouter()
	qr.RegisterAll(cash.RegisterQuery, sigs.RegisterQuery, vault.RegisterQuery)
	return qr
}

func newNode(h coffer.Handler, dbPath string, logger log.Logger, debug bool) (*app.Node, error) {
	kv, err := openStore(dbPath)
	if err != nil {
		return nil, err
	}
	return app.NewNode(context.Background(), "cofferd", kv, TxDecoder, h,
		app.WithQueries(queries()),
		app.WithGenesis(Initializers()),
		app.WithLogger(logger),
		app.WithDebug(debug),
	)
}

// openStore opens the iavl database at dbPath. An empty path gives an in
// memory store.
func openStore(dbPath string) (coffer.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	// leveldb appends its own extension
	abs = strings.TrimSuffix(abs, filepath.Ext(abs))
	kv, err := iavl.NewCommitStore(filepath.Dir(abs), filepath.Base(abs))
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	return kv, nil
}

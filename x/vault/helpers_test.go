package vault

import (
	"context"
	"testing"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coffertest"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/gconf"
	"github.com/boardvault/coffer/store"
	"github.com/boardvault/coffer/x/cash"
	"github.com/stretchr/testify/require"
)

const ticker = "CASH"

// routes collects handlers registered by RegisterRoutes.
type routes map[string]coffer.Handler

func (r routes) Handle(path string, h coffer.Handler) {
	r[path] = h
}

// testEnv is a chain state with a single vault and its board.
type testEnv struct {
	t       testing.TB
	db      coffer.CacheableKVStore
	auth    *coffertest.CtxAuth
	bank    cash.BaseController
	routes  routes
	board   []coffer.Condition
	vaultID []byte
}

func newTestEnv(t testing.TB, boardSize int) *testEnv {
	t.Helper()
	db := store.MemStore()
	require.NoError(t, gconf.Save(db, "cash", &cash.Configuration{Ticker: ticker}))
	require.NoError(t, gconf.Save(db, confPkg, &Configuration{MaxMembers: 32}))

	env := &testEnv{
		t:      t,
		db:     db,
		auth:   &coffertest.CtxAuth{Key: "auth"},
		bank:   cash.NewController(cash.NewBucket()),
		routes: make(routes),
	}
	RegisterRoutes(env.routes, env.auth, env.bank)

	members := make([]coffer.Address, boardSize)
	for i := range members {
		c := coffertest.NewCondition()
		env.board = append(env.board, c)
		members[i] = c.Address()
	}
	res, err := env.deliver(coffertest.NewCondition(), &CreateVaultMsg{Members: members, Name: "board"})
	require.NoError(t, err)
	env.vaultID = res.Data
	return env
}

// deliver runs the check and the deliver phase of a transaction signed by
// signer. Changes are discarded on failure.
func (e *testEnv) deliver(signer coffer.Condition, msg coffer.Msg) (*coffer.DeliverResult, error) {
	e.t.Helper()
	h, ok := e.routes[msg.Path()]
	if !ok {
		e.t.Fatalf("no handler for %q", msg.Path())
	}

	ctx := context.Background()
	if signer != nil {
		ctx = e.auth.SetConditions(ctx, signer)
	}
	tx := &coffertest.Tx{Msg: msg}

	check := e.db.CacheWrap()
	_, err := h.Check(ctx, check, tx)
	check.Discard()
	if err != nil {
		return nil, err
	}

	cache := e.db.CacheWrap()
	res, err := h.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	require.NoError(e.t, cache.Write())
	return res, nil
}

func (e *testEnv) deposit(whole int64) {
	e.t.Helper()
	require.NoError(e.t, e.bank.CoinMint(e.db, Address(e.vaultID), coin.NewCoin(whole, 0, ticker)))
}

func (e *testEnv) submit(signer coffer.Condition, beneficiary coffer.Address, whole int64) []byte {
	e.t.Helper()
	res, err := e.deliver(signer, &SubmitTransactionMsg{
		VaultID:     e.vaultID,
		Beneficiary: beneficiary,
		Amount:      coin.NewCoinp(whole, 0, ticker),
	})
	require.NoError(e.t, err)
	return res.Data
}

func (e *testEnv) approve(signer coffer.Condition, proposalID []byte) (*coffer.DeliverResult, error) {
	return e.deliver(signer, &ApproveTransactionMsg{VaultID: e.vaultID, ProposalID: proposalID})
}

func (e *testEnv) execute(signer coffer.Condition, proposalID []byte) (*coffer.DeliverResult, error) {
	return e.deliver(signer, &ExecuteTransactionMsg{VaultID: e.vaultID, ProposalID: proposalID})
}

func (e *testEnv) reader() *Reader {
	return NewReader(e.db)
}

// balance returns the native funds held by addr.
func (e *testEnv) balance(addr coffer.Address) coin.Coin {
	e.t.Helper()
	coins, err := e.bank.Balance(e.db, addr)
	if err != nil {
		return coin.NewCoin(0, 0, ticker)
	}
	return coins.Get(ticker)
}

// tagValue returns the value of the first tag with given key.
func tagValue(tags []coffer.KVPair, key string) (string, bool) {
	for _, t := range tags {
		if string(t.Key) == key {
			return string(t.Value), true
		}
	}
	return "", false
}

func saveConf(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, confPkg, conf)
}

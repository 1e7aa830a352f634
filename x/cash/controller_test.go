package cash

import (
	"testing"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coffertest"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCoins(t *testing.T) {
	kv := store.MemStore()
	controller := NewController(NewBucket())
	addr := coffertest.RandomAddr()

	plus := coin.NewCoin(500, 1000, "FOO")
	more := coin.NewCoin(1300, 1500, "FOO")

	// issue positive
	require.NoError(t, controller.CoinMint(kv, addr, plus))
	bal, err := controller.Balance(kv, addr)
	require.NoError(t, err)
	assert.True(t, bal.Equals(coin.Coins{&plus}))

	// issue again
	require.NoError(t, controller.CoinMint(kv, addr, more))
	bal, err = controller.Balance(kv, addr)
	require.NoError(t, err)
	assert.True(t, bal.Contains(coin.NewCoin(1800, 2500, "FOO")))

	// minting nothing is not allowed
	err = controller.CoinMint(kv, addr, coin.NewCoin(0, 0, "FOO"))
	assert.True(t, errors.ErrAmount.Is(err))

	// overflow the wallet
	err = controller.CoinMint(kv, addr, coin.NewCoin(coin.MaxInt-500, 0, "FOO"))
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestMoveCoins(t *testing.T) {
	kv := store.MemStore()
	controller := NewController(NewBucket())

	addr := coffertest.RandomAddr()
	addr2 := coffertest.RandomAddr()
	addr3 := coffertest.RandomAddr()

	cc := "MONY"
	bank := coin.NewCoin(50000, 0, cc)
	send := coin.NewCoin(300, 0, cc)
	rem := coin.NewCoin(49700, 0, cc)

	require.NoError(t, controller.CoinMint(kv, addr, bank))

	cases := map[string]struct {
		sender    coffer.Address
		recipient coffer.Address
		amount    coin.Coin
		wantErr   *errors.Error
	}{
		"cannot send from an empty account": {
			sender:    addr2,
			recipient: addr,
			amount:    send,
			wantErr:   errors.ErrEmpty,
		},
		"cannot send more than the balance": {
			sender:    addr,
			recipient: addr2,
			amount:    coin.NewCoin(50001, 0, cc),
			wantErr:   errors.ErrAmount,
		},
		"cannot send an unknown currency": {
			sender:    addr,
			recipient: addr2,
			amount:    coin.NewCoin(1, 0, "BAD"),
			wantErr:   errors.ErrAmount,
		},
		"cannot send a negative amount": {
			sender:    addr,
			recipient: addr2,
			amount:    send.Negative(),
			wantErr:   errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := controller.MoveCoins(kv, tc.sender, tc.recipient, tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}

	// the failed transfers did not change anything
	bal, err := controller.Balance(kv, addr)
	require.NoError(t, err)
	assert.True(t, bal.Equals(coin.Coins{&bank}))
	_, err = controller.Balance(kv, addr2)
	assert.True(t, errors.ErrNotFound.Is(err))

	// a successful send creates the recipient wallet
	require.NoError(t, controller.MoveCoins(kv, addr, addr2, send))
	bal, err = controller.Balance(kv, addr)
	require.NoError(t, err)
	assert.True(t, bal.Equals(coin.Coins{&rem}))
	bal, err = controller.Balance(kv, addr2)
	require.NoError(t, err)
	assert.True(t, bal.Equals(coin.Coins{&send}))

	// sending everything removes the currency from the wallet
	require.NoError(t, controller.MoveCoins(kv, addr2, addr3, send))
	bal, err = controller.Balance(kv, addr2)
	require.NoError(t, err)
	assert.True(t, bal.IsEmpty())

	// sending to self changes nothing
	require.NoError(t, controller.MoveCoins(kv, addr3, addr3, send))
	bal, err = controller.Balance(kv, addr3)
	require.NoError(t, err)
	assert.True(t, bal.Equals(coin.Coins{&send}))
}

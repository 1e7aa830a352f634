package vault

import (
	"testing"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coffertest"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/orm"
	"github.com/boardvault/coffer/x/cash"
	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	env := newTestEnv(t, 3)
	r := env.reader()
	unknown := orm.EncodeSequence(77)

	n, err := r.TotalSigners(env.vaultID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = r.TotalSigners(unknown)
	assert.True(t, errors.ErrNotFound.Is(err))

	ok, err := r.IsBoardMember(env.vaultID, env.board[2].Address())
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.IsBoardMember(env.vaultID, coffertest.RandomAddr())
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := r.Memberships(env.board[1].Address())
	require.NoError(t, err)
	assert.Equal(t, [][]byte{env.vaultID}, ids)
	ids, err = r.Memberships(coffertest.RandomAddr())
	require.NoError(t, err)
	assert.Empty(t, ids)

	// A vault without deposits holds nothing.
	bal, err := r.Balance(env.vaultID)
	require.NoError(t, err)
	assert.True(t, bal.IsEmpty())
	_, err = r.Balance(unknown)
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = r.NoOfApproval(env.vaultID, orm.EncodeSequence(1))
	assert.True(t, ErrUnknownProposal.Is(err))
	_, err = r.Approved(env.vaultID, orm.EncodeSequence(1))
	assert.True(t, ErrUnknownProposal.Is(err))

	pid := env.submit(env.board[0], coffertest.RandomAddr(), 1)
	n, err = r.NoOfApproval(env.vaultID, pid)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	settled, err := r.Approved(env.vaultID, pid)
	require.NoError(t, err)
	assert.False(t, settled)
}

func TestQueries(t *testing.T) {
	env := newTestEnv(t, 2)
	member := env.board[0].Address()
	env.submit(env.board[0], coffertest.RandomAddr(), 1)
	env.submit(env.board[1], coffertest.RandomAddr(), 2)
	env.deposit(5)

	qr := coffer.NewQueryRouter()
	qr.RegisterAll(RegisterQuery, cash.RegisterQuery)

	models, err := qr.Handler("/vaults").Query(env.db, coffer.KeyQueryMod, env.vaultID)
	require.NoError(t, err)
	require.Len(t, models, 1)

	models, err = qr.Handler("/vaults/members").Query(env.db, coffer.KeyQueryMod, member)
	require.NoError(t, err)
	require.Len(t, models, 1)
	var v Vault
	require.NoError(t, proto.Unmarshal(models[0].Value, &v))
	assert.True(t, v.IsMember(member))

	models, err = qr.Handler("/proposals").Query(env.db, coffer.PrefixQueryMod, env.vaultID)
	require.NoError(t, err)
	assert.Len(t, models, 2)

	models, err = qr.Handler("/wallets").Query(env.db, coffer.KeyQueryMod, Address(env.vaultID))
	require.NoError(t, err)
	assert.Len(t, models, 1)
}

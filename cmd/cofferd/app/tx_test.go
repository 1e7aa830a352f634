package app

import (
	"testing"

	"github.com/boardvault/coffer/coffertest"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/crypto"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/orm"
	"github.com/boardvault/coffer/x/cash"
	"github.com/boardvault/coffer/x/sigs"
	"github.com/boardvault/coffer/x/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxCarriesOneMessage(t *testing.T) {
	var tx Tx
	_, err := tx.GetMsg()
	assert.True(t, errors.ErrMsg.Is(err))

	approve := &vault.ApproveTransactionMsg{
		VaultID:    orm.EncodeSequence(1),
		ProposalID: orm.EncodeSequence(2),
	}
	require.NoError(t, tx.SetMsg(approve))
	msg, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, "vault/approve", msg.Path())

	// setting a message replaces the previous one
	require.NoError(t, tx.SetMsg(&vault.ExecuteTransactionMsg{
		VaultID:    orm.EncodeSequence(1),
		ProposalID: orm.EncodeSequence(2),
	}))
	msg, err = tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, "vault/execute", msg.Path())
	assert.Nil(t, tx.ApproveTransactionMsg)

	tx.SendMsg = &cash.SendMsg{}
	_, err = tx.GetMsg()
	assert.True(t, errors.ErrMsg.Is(err))

	err = tx.SetMsg(&coffertest.Msg{RoutePath: "foo/bar"})
	assert.True(t, errors.ErrType.Is(err))
}

func TestTxDecoder(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	tx := &Tx{}
	require.NoError(t, tx.SetMsg(&vault.SubmitTransactionMsg{
		VaultID:     orm.EncodeSequence(1),
		Beneficiary: coffertest.RandomAddr(),
		Amount:      coin.NewCoinp(3, 0, "CASH"),
	}))
	unsigned, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig, err := sigs.SignTx(key, tx, testChainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	// signatures are not part of the signed bytes
	signed, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, unsigned, signed)
	assert.Len(t, tx.Signatures, 1)

	raw, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := TxDecoder(raw)
	require.NoError(t, err)
	msg, err := decoded.GetMsg()
	require.NoError(t, err)
	submit, ok := msg.(*vault.SubmitTransactionMsg)
	require.True(t, ok)
	assert.Equal(t, coin.NewCoinp(3, 0, "CASH"), submit.Amount)
	assert.Len(t, decoded.(*Tx).GetSignatures(), 1)
}

package app

import (
	"bytes"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/commands"
	"github.com/boardvault/coffer/crypto"
	"github.com/boardvault/coffer/orm"
	"github.com/boardvault/coffer/x/cash"
	"github.com/boardvault/coffer/x/sigs"
	"github.com/boardvault/coffer/x/vault"
)

const exampleChainID = "test-123"

// exampleKeys derives the two board members and the beneficiary of the
// examples from a fixed seed, so that testgen output is reproducible.
func exampleKeys() (alice, bob, payee *crypto.PrivateKey) {
	keys, err := crypto.DeriveAccounts(bytes.Repeat([]byte{0xC0, 0xFF}, 16), 3)
	if err != nil {
		panic(err)
	}
	return keys[0], keys[1], keys[2]
}

// Examples returns one instance of every persisted model and of the
// transactions a board member sends. Clients check their encoding against
// the files written by testgen.
func Examples() []commands.Example {
	alice, bob, payee := exampleKeys()
	vaultID, proposalID := orm.EncodeSequence(1), orm.EncodeSequence(1)
	amount := coin.NewCoinp(250, 0, "CASH")

	board := &vault.Vault{
		Name:    "board",
		Members: []coffer.Address{alice.PublicKey().Address(), bob.PublicKey().Address()},
	}
	submit := &vault.SubmitTransactionMsg{
		VaultID:     vaultID,
		Beneficiary: payee.PublicKey().Address(),
		Amount:      amount,
	}
	approve := &vault.ApproveTransactionMsg{VaultID: vaultID, ProposalID: proposalID}
	proposal := &vault.Proposal{
		VaultID:     vaultID,
		ID:          proposalID,
		Beneficiary: submit.Beneficiary,
		Amount:      amount,
		ApprovedBy:  board.Members[:1],
	}

	signed := func(key *crypto.PrivateKey, seq int64, tx *Tx) *Tx {
		sig, err := sigs.SignTx(key, tx, exampleChainID, seq)
		if err != nil {
			panic(err)
		}
		tx.Signatures = append(tx.Signatures, sig)
		return tx
	}

	return []commands.Example{
		{Filename: "priv_key", Obj: alice},
		{Filename: "pub_key", Obj: alice.PublicKey()},
		{Filename: "user", Obj: &sigs.UserData{Pubkey: alice.PublicKey(), Sequence: 17}},
		{Filename: "wallet", Obj: &cash.Set{Coins: coin.Coins{coin.NewCoinp(50000, 0, "CASH")}}},
		{Filename: "vault", Obj: board},
		{Filename: "proposal", Obj: proposal},
		{Filename: "submit_transaction_msg", Obj: submit},
		{Filename: "approve_transaction_msg", Obj: approve},
		{Filename: "unsigned_tx", Obj: &Tx{SubmitTransactionMsg: submit}},
		{Filename: "signed_tx", Obj: signed(alice, 17, &Tx{SubmitTransactionMsg: submit})},
		{Filename: "approve_tx", Obj: signed(bob, 0, &Tx{ApproveTransactionMsg: approve})},
	}
}

package vault

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/orm"
	"github.com/boardvault/coffer/x/cash"
	"github.com/gogo/protobuf/proto"
)

// Reader gives read only access to the vault state. No authorization is
// required to read.
type Reader struct {
	db        coffer.ReadOnlyKVStore
	vaults    orm.ModelBucket
	proposals orm.ModelBucket
	ledger    orm.Bucket
	bank      cash.Balancer
}

// NewReader returns a reader of the vaults stored in db.
func NewReader(db coffer.ReadOnlyKVStore) *Reader {
	return &Reader{
		db:        db,
		vaults:    NewVaultBucket(),
		proposals: NewProposalBucket(),
		ledger:    orm.NewBucket("proposal", orm.NewSimpleObj(nil, &Proposal{})),
		bank:      cash.NewController(cash.NewBucket()),
	}
}

// Vault returns the vault with given ID.
func (r *Reader) Vault(vaultID []byte) (*Vault, error) {
	var v Vault
	if err := r.vaults.One(r.db, vaultID, &v); err != nil {
		return nil, errors.Wrapf(err, "vault %s", FormatID(vaultID))
	}
	return &v, nil
}

// Proposal returns a single proposal of a vault.
func (r *Reader) Proposal(vaultID, proposalID []byte) (*Proposal, error) {
	return loadProposal(r.db, r.proposals, vaultID, proposalID)
}

// Proposals returns the ledger of a vault, ordered by proposal ID.
func (r *Reader) Proposals(vaultID []byte) ([]*Proposal, error) {
	if err := orm.ValidateSequence(vaultID); err != nil {
		return nil, err
	}
	models, err := r.ledger.Query(r.db, coffer.PrefixQueryMod, vaultID)
	if err != nil {
		return nil, err
	}
	res := make([]*Proposal, 0, len(models))
	for _, m := range models {
		var p Proposal
		if err := proto.Unmarshal(m.Value, &p); err != nil {
			return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal proposal: %s", err)
		}
		res = append(res, &p)
	}
	return res, nil
}

// Memberships returns the IDs of all vaults addr is a board member of, in
// creation order.
func (r *Reader) Memberships(addr coffer.Address) ([][]byte, error) {
	var boards []*Vault
	return r.vaults.ByIndex(r.db, "members", addr, &boards)
}

// TotalSigners returns the number of board members, which is also the
// number of approvals required to release funds.
func (r *Reader) TotalSigners(vaultID []byte) (int, error) {
	v, err := r.Vault(vaultID)
	if err != nil {
		return 0, err
	}
	return v.TotalSigners(), nil
}

// IsBoardMember returns true if addr is on the board of the vault.
func (r *Reader) IsBoardMember(vaultID []byte, addr coffer.Address) (bool, error) {
	v, err := r.Vault(vaultID)
	if err != nil {
		return false, err
	}
	return v.IsMember(addr), nil
}

// NoOfApproval returns the number of approvals a proposal collected.
func (r *Reader) NoOfApproval(vaultID, proposalID []byte) (int, error) {
	p, err := r.Proposal(vaultID, proposalID)
	if err != nil {
		return 0, err
	}
	return p.NoOfApproval(), nil
}

// Approved returns true if the proposal was executed.
func (r *Reader) Approved(vaultID, proposalID []byte) (bool, error) {
	p, err := r.Proposal(vaultID, proposalID)
	if err != nil {
		return false, err
	}
	return p.Settled, nil
}

// Balance returns the funds held by the vault. A vault that never received
// a deposit holds nothing.
func (r *Reader) Balance(vaultID []byte) (coin.Coins, error) {
	if err := r.vaults.Has(r.db, vaultID); err != nil {
		return nil, errors.Wrapf(err, "vault %s", FormatID(vaultID))
	}
	coins, err := r.bank.Balance(r.db, Address(vaultID))
	if errors.ErrNotFound.Is(err) {
		return nil, nil
	}
	return coins, err
}

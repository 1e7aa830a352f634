package vault

import (
	"fmt"
	"regexp"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/orm"
	"github.com/gogo/protobuf/proto"
)

const maxNameLength = 64

var isName = regexp.MustCompile(`^[a-zA-Z0-9 _.\-]*$`).MatchString

// Vault holds the board of a single vault. Members never change once the
// vault is created.
type Vault struct {
	Members []coffer.Address `protobuf:"bytes,1,rep,name=members,proto3" json:"members,omitempty"`
	Name    string           `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *Vault) Reset()         { *m = Vault{} }
func (m *Vault) String() string { return proto.CompactTextString(m) }
func (*Vault) ProtoMessage()    {}

var _ orm.Model = (*Vault)(nil)

// Validate ensures the board is well formed.
func (v *Vault) Validate() error {
	return errors.Append(
		validateMembers(v.Members),
		validateName(v.Name),
	)
}

// TotalSigners returns the number of approvals required to release funds.
func (v *Vault) TotalSigners() int {
	return len(v.Members)
}

// IsMember returns true if given address is on the board.
func (v *Vault) IsMember(addr coffer.Address) bool {
	for _, m := range v.Members {
		if m.Equals(addr) {
			return true
		}
	}
	return false
}

func validateMembers(members []coffer.Address) error {
	if len(members) == 0 {
		return errors.Field("Members", errors.ErrEmpty, "at least one member required")
	}
	var errs error
	for i, m := range members {
		field := fmt.Sprintf("Members.%d", i)
		if err := m.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field(field, errors.ErrInput, "invalid address: %s", err))
			continue
		}
		for _, prev := range members[:i] {
			if prev.Equals(m) {
				errs = errors.Append(errs, errors.Field(field, errors.ErrDuplicate, "member %s", m))
				break
			}
		}
	}
	return errs
}

func validateName(name string) error {
	if len(name) > maxNameLength {
		return errors.Field("Name", errors.ErrInput, "longer than %d characters", maxNameLength)
	}
	if !isName(name) {
		return errors.Field("Name", errors.ErrInput, "invalid characters")
	}
	return nil
}

// Condition returns the condition of the vault custody account. Nobody
// holds a key for it.
func Condition(vaultID []byte) coffer.Condition {
	return coffer.NewCondition("vault", "seq", vaultID)
}

// Address returns the address that holds the funds of the vault.
func Address(vaultID []byte) coffer.Address {
	return Condition(vaultID).Address()
}

// Proposal is a transfer out of a vault that waits for the board approval.
type Proposal struct {
	VaultID     []byte           `protobuf:"bytes,1,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	ID          []byte           `protobuf:"bytes,2,opt,name=id,proto3" json:"id,omitempty"`
	Beneficiary coffer.Address   `protobuf:"bytes,3,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
	Amount      *coin.Coin       `protobuf:"bytes,4,opt,name=amount,proto3" json:"amount,omitempty"`
	ApprovedBy  []coffer.Address `protobuf:"bytes,5,rep,name=approved_by,json=approvedBy,proto3" json:"approved_by,omitempty"`
	Settled     bool             `protobuf:"varint,6,opt,name=settled,proto3" json:"settled,omitempty"`
}

func (m *Proposal) Reset()         { *m = Proposal{} }
func (m *Proposal) String() string { return proto.CompactTextString(m) }
func (*Proposal) ProtoMessage()    {}

var _ orm.Model = (*Proposal)(nil)

func (p *Proposal) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "VaultID", orm.ValidateSequence(p.VaultID))
	errs = errors.AppendField(errs, "ID", orm.ValidateSequence(p.ID))
	if err := p.Beneficiary.Validate(); err != nil {
		errs = errors.Append(errs, errors.Field("Beneficiary", ErrInvalidBeneficiary, err.Error()))
	}
	errs = errors.AppendField(errs, "Amount", validateAmount(p.Amount))
	for i, a := range p.ApprovedBy {
		field := fmt.Sprintf("ApprovedBy.%d", i)
		if err := a.Validate(); err != nil {
			errs = errors.AppendField(errs, field, err)
			continue
		}
		for _, prev := range p.ApprovedBy[:i] {
			if prev.Equals(a) {
				errs = errors.Append(errs, errors.Field(field, errors.ErrDuplicate, "approver %s", a))
				break
			}
		}
	}
	return errs
}

// NoOfApproval returns the number of distinct board members that approved
// this proposal.
func (p *Proposal) NoOfApproval() int {
	return len(p.ApprovedBy)
}

// HasApproved returns true if given address already approved the proposal.
func (p *Proposal) HasApproved(addr coffer.Address) bool {
	for _, a := range p.ApprovedBy {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

func validateAmount(c *coin.Coin) error {
	if c == nil || !c.IsPositive() {
		return ErrInvalidAmount
	}
	return c.Validate()
}

// proposalKey returns the primary key of a proposal. Proposals of a single
// vault share the vault id prefix.
func proposalKey(vaultID, proposalID []byte) []byte {
	key := make([]byte, 0, len(vaultID)+len(proposalID))
	key = append(key, vaultID...)
	return append(key, proposalID...)
}

// proposalSeq returns the ledger sequence of a single vault. The first
// proposal of every vault has ID 1.
func proposalSeq(vaultID []byte) orm.Sequence {
	return orm.NewSequence("proposal", string(vaultID))
}

// NewVaultBucket returns a bucket that stores vaults under a sequence ID.
// The members index returns all vaults an address is a board member of.
func NewVaultBucket() orm.ModelBucket {
	return orm.NewModelBucket("vault", &Vault{},
		orm.WithIDSequence(vaultSeq),
		orm.WithMultiKeyIndex("members", idxMembers, false),
	)
}

var vaultSeq = orm.NewSequence("vault", orm.SeqID)

func idxMembers(obj orm.Object) ([][]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	v, ok := obj.Value().(*Vault)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	keys := make([][]byte, 0, len(v.Members))
	for _, m := range v.Members {
		keys = append(keys, m)
	}
	return keys, nil
}

// NewProposalBucket returns a bucket of all vault proposals. Keys are
// created with proposalKey.
func NewProposalBucket() orm.ModelBucket {
	return orm.NewModelBucket("proposal", &Proposal{})
}

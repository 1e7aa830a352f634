package vault

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/gconf"
	"github.com/boardvault/coffer/orm"
	"github.com/gogo/protobuf/proto"
)

const (
	pathCreateVaultMsg         = "vault/create"
	pathSubmitTransactionMsg   = "vault/submit"
	pathApproveTransactionMsg  = "vault/approve"
	pathExecuteTransactionMsg  = "vault/execute"
	pathUpdateConfigurationMsg = "vault/update_configuration"
)

// CreateVaultMsg creates a new vault with a fixed board.
type CreateVaultMsg struct {
	Members []coffer.Address `protobuf:"bytes,1,rep,name=members,proto3" json:"members,omitempty"`
	Name    string           `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *CreateVaultMsg) Reset()         { *m = CreateVaultMsg{} }
func (m *CreateVaultMsg) String() string { return proto.CompactTextString(m) }
func (*CreateVaultMsg) ProtoMessage()    {}

var _ coffer.Msg = (*CreateVaultMsg)(nil)

func (CreateVaultMsg) Path() string {
	return pathCreateVaultMsg
}

func (m *CreateVaultMsg) Validate() error {
	return errors.Append(
		validateMembers(m.Members),
		validateName(m.Name),
	)
}

// SubmitTransactionMsg proposes a transfer of funds out of a vault.
type SubmitTransactionMsg struct {
	VaultID     []byte         `protobuf:"bytes,1,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	Beneficiary coffer.Address `protobuf:"bytes,2,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
	Amount      *coin.Coin     `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *SubmitTransactionMsg) Reset()         { *m = SubmitTransactionMsg{} }
func (m *SubmitTransactionMsg) String() string { return proto.CompactTextString(m) }
func (*SubmitTransactionMsg) ProtoMessage()    {}

var _ coffer.Msg = (*SubmitTransactionMsg)(nil)

func (SubmitTransactionMsg) Path() string {
	return pathSubmitTransactionMsg
}

func (m *SubmitTransactionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "VaultID", orm.ValidateSequence(m.VaultID))
	errs = errors.AppendField(errs, "Amount", validateAmount(m.Amount))
	if err := m.Beneficiary.Validate(); err != nil {
		errs = errors.Append(errs, errors.Field("Beneficiary", ErrInvalidBeneficiary, err.Error()))
	}
	return errs
}

// ApproveTransactionMsg records the approval of the signing board member.
type ApproveTransactionMsg struct {
	VaultID    []byte `protobuf:"bytes,1,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	ProposalID []byte `protobuf:"bytes,2,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id,omitempty"`
}

func (m *ApproveTransactionMsg) Reset()         { *m = ApproveTransactionMsg{} }
func (m *ApproveTransactionMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveTransactionMsg) ProtoMessage()    {}

var _ coffer.Msg = (*ApproveTransactionMsg)(nil)

func (ApproveTransactionMsg) Path() string {
	return pathApproveTransactionMsg
}

func (m *ApproveTransactionMsg) Validate() error {
	return validateRef(m.VaultID, m.ProposalID)
}

// ExecuteTransactionMsg releases the funds of a fully approved proposal.
type ExecuteTransactionMsg struct {
	VaultID    []byte `protobuf:"bytes,1,opt,name=vault_id,json=vaultId,proto3" json:"vault_id,omitempty"`
	ProposalID []byte `protobuf:"bytes,2,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id,omitempty"`
}

func (m *ExecuteTransactionMsg) Reset()         { *m = ExecuteTransactionMsg{} }
func (m *ExecuteTransactionMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteTransactionMsg) ProtoMessage()    {}

var _ coffer.Msg = (*ExecuteTransactionMsg)(nil)

func (ExecuteTransactionMsg) Path() string {
	return pathExecuteTransactionMsg
}

func (m *ExecuteTransactionMsg) Validate() error {
	return validateRef(m.VaultID, m.ProposalID)
}

func validateRef(vaultID, proposalID []byte) error {
	var errs error
	errs = errors.AppendField(errs, "VaultID", orm.ValidateSequence(vaultID))
	errs = errors.AppendField(errs, "ProposalID", orm.ValidateSequence(proposalID))
	return errs
}

// UpdateConfigurationMsg patches the vault configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

var _ gconf.PatchMsg = (*UpdateConfigurationMsg)(nil)

// ConfigPatch returns the patch of the vault configuration.
func (m *UpdateConfigurationMsg) ConfigPatch() gconf.OwnedConfig {
	if m.Patch == nil {
		return nil
	}
	return m.Patch
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate will skip any zero fields and validate the set ones.
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	var errs error
	if len(m.Patch.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", m.Patch.Owner.Validate())
	}
	if m.Patch.MaxMembers < 0 {
		errs = errors.Append(errs, errors.Field("Patch.MaxMembers", errors.ErrInput, "must not be negative"))
	}
	return errs
}

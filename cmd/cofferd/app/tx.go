package app

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/x/cash"
	"github.com/boardvault/coffer/x/sigs"
	"github.com/boardvault/coffer/x/vault"
	"github.com/gogo/protobuf/proto"
)

// Tx carries exactly one message, plus the signatures authorizing it.
// Only one of the message fields may be set.
type Tx struct {
	Signatures               []*sigs.StdSignature          `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	SendMsg                  *cash.SendMsg                 `protobuf:"bytes,2,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
	CreateVaultMsg           *vault.CreateVaultMsg         `protobuf:"bytes,3,opt,name=create_vault_msg,json=createVaultMsg,proto3" json:"create_vault_msg,omitempty"`
	SubmitTransactionMsg     *vault.SubmitTransactionMsg   `protobuf:"bytes,4,opt,name=submit_transaction_msg,json=submitTransactionMsg,proto3" json:"submit_transaction_msg,omitempty"`
	ApproveTransactionMsg    *vault.ApproveTransactionMsg  `protobuf:"bytes,5,opt,name=approve_transaction_msg,json=approveTransactionMsg,proto3" json:"approve_transaction_msg,omitempty"`
	ExecuteTransactionMsg    *vault.ExecuteTransactionMsg  `protobuf:"bytes,6,opt,name=execute_transaction_msg,json=executeTransactionMsg,proto3" json:"execute_transaction_msg,omitempty"`
	CashUpdateConfiguration  *cash.UpdateConfigurationMsg  `protobuf:"bytes,7,opt,name=cash_update_configuration,json=cashUpdateConfiguration,proto3" json:"cash_update_configuration,omitempty"`
	VaultUpdateConfiguration *vault.UpdateConfigurationMsg `protobuf:"bytes,8,opt,name=vault_update_configuration,json=vaultUpdateConfiguration,proto3" json:"vault_update_configuration,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// make sure tx fulfills all interfaces
var _ coffer.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (coffer.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// Marshal serializes the transaction.
func (m *Tx) Marshal() ([]byte, error) {
	return proto.Marshal(m)
}

// Unmarshal loads the transaction from its serialized form.
func (m *Tx) Unmarshal(raw []byte) error {
	if err := proto.Unmarshal(raw, m); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// GetMsg returns the single message this transaction carries.
func (m *Tx) GetMsg() (coffer.Msg, error) {
	var found []coffer.Msg
	if m.SendMsg != nil {
		found = append(found, m.SendMsg)
	}
	if m.CreateVaultMsg != nil {
		found = append(found, m.CreateVaultMsg)
	}
	if m.SubmitTransactionMsg != nil {
		found = append(found, m.SubmitTransactionMsg)
	}
	if m.ApproveTransactionMsg != nil {
		found = append(found, m.ApproveTransactionMsg)
	}
	if m.ExecuteTransactionMsg != nil {
		found = append(found, m.ExecuteTransactionMsg)
	}
	if m.CashUpdateConfiguration != nil {
		found = append(found, m.CashUpdateConfiguration)
	}
	if m.VaultUpdateConfiguration != nil {
		found = append(found, m.VaultUpdateConfiguration)
	}

	switch len(found) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "transaction carries no message")
	case 1:
		return found[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "transaction carries %d messages", len(found))
	}
}

// SetMsg places msg in its slot. Any previously set message is cleared.
func (m *Tx) SetMsg(msg coffer.Msg) error {
	sigs := m.Signatures
	m.Reset()
	m.Signatures = sigs

	switch msg := msg.(type) {
	case *cash.SendMsg:
		m.SendMsg = msg
	case *vault.CreateVaultMsg:
		m.CreateVaultMsg = msg
	case *vault.SubmitTransactionMsg:
		m.SubmitTransactionMsg = msg
	case *vault.ApproveTransactionMsg:
		m.ApproveTransactionMsg = msg
	case *vault.ExecuteTransactionMsg:
		m.ExecuteTransactionMsg = msg
	case *cash.UpdateConfigurationMsg:
		m.CashUpdateConfiguration = msg
	case *vault.UpdateConfigurationMsg:
		m.VaultUpdateConfiguration = msg
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignatures returns the signatures attached to this transaction.
func (m *Tx) GetSignatures() []*sigs.StdSignature {
	return m.Signatures
}

// GetSignBytes returns the bytes to sign...
func (m *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := m.Signatures
	m.Signatures = nil

	bz, err := m.Marshal()

	// reset the signatures after calculating the bytes
	m.Signatures = sigs
	return bz, err
}

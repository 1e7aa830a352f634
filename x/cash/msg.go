package cash

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/gconf"
	"github.com/gogo/protobuf/proto"
)

const (
	pathSendMsg                = "cash/send"
	pathUpdateConfigurationMsg = "cash/update_configuration"

	sendTxCost int64 = 100

	maxMemoSize int = 128
	maxRefSize  int = 64
)

// SendMsg moves funds from the source wallet to the destination.
type SendMsg struct {
	Source      coffer.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination coffer.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      *coin.Coin     `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	// Memo is a human readable, optional note.
	Memo string `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
	// Ref is an optional binary reference, for example an invoice id.
	Ref []byte `protobuf:"bytes,5,opt,name=ref,proto3" json:"ref,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

var _ coffer.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var errs error
	if coin.IsEmpty(s.Amount) || !s.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "non-positive SendMsg"))
	} else {
		errs = errors.AppendField(errs, "Amount", s.Amount.Validate())
	}
	errs = errors.AppendField(errs, "Source", s.Source.Validate())
	errs = errors.AppendField(errs, "Destination", s.Destination.Validate())
	if len(s.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "memo too long"))
	}
	if len(s.Ref) > maxRefSize {
		errs = errors.Append(errs, errors.Field("Ref", errors.ErrInput, "ref too long"))
	}
	return errs
}

// UpdateConfigurationMsg patches the cash configuration.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

var _ gconf.PatchMsg = (*UpdateConfigurationMsg)(nil)

// ConfigPatch returns the patch of the cash configuration.
func (m *UpdateConfigurationMsg) ConfigPatch() gconf.OwnedConfig {
	if m.Patch == nil {
		return nil
	}
	return m.Patch
}

// Validate will skip any zero fields and validate the set ones
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	var errs error
	if len(m.Patch.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", m.Patch.Owner.Validate())
	}
	if m.Patch.Ticker != "" && !coin.IsCC(m.Patch.Ticker) {
		errs = errors.Append(errs, errors.Field("Patch.Ticker", errors.ErrCurrency, "invalid ticker"))
	}
	return errs
}

func (*UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

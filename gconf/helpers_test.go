package gconf

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/errors"
	"github.com/gogo/protobuf/proto"
)

const limitsPkg = "limits"

// limits is a configuration used by the tests of this package.
type limits struct {
	Owner    coffer.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	MaxBoard int64          `protobuf:"varint,2,opt,name=max_board,json=maxBoard,proto3" json:"max_board,omitempty"`
	Label    string         `protobuf:"bytes,3,opt,name=label,proto3" json:"label,omitempty"`
	Fee      *coin.Coin     `protobuf:"bytes,4,opt,name=fee,proto3" json:"fee,omitempty"`
}

func (c *limits) Reset()                   { *c = limits{} }
func (c *limits) String() string           { return proto.CompactTextString(c) }
func (*limits) ProtoMessage()              {}
func (c *limits) GetOwner() coffer.Address { return c.Owner }

func (c *limits) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if c.Fee == nil {
		return errors.Append(errs, errors.Field("Fee", errors.ErrEmpty, "required"))
	}
	return errors.AppendField(errs, "Fee", c.Fee.Validate())
}

type limitsMsg struct {
	Patch *limits `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

var _ PatchMsg = (*limitsMsg)(nil)

func (m *limitsMsg) Reset()         { *m = limitsMsg{} }
func (m *limitsMsg) String() string { return proto.CompactTextString(m) }
func (*limitsMsg) ProtoMessage()    {}
func (*limitsMsg) Path() string     { return "limits/update" }

func (m *limitsMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	if m.Patch.Fee != nil {
		return errors.AppendField(nil, "Patch.Fee", m.Patch.Fee.Validate())
	}
	return nil
}

func (m *limitsMsg) ConfigPatch() OwnedConfig {
	if m.Patch == nil {
		return nil
	}
	return m.Patch
}

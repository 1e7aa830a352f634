package vault

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/gconf"
	"github.com/gogo/protobuf/proto"
)

const confPkg = "vault"

// Configuration of the vault extension.
type Configuration struct {
	// Owner is allowed to update the configuration.
	Owner coffer.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	// MaxMembers limits the size of a board.
	MaxMembers int32 `protobuf:"varint,2,opt,name=max_members,json=maxMembers,proto3" json:"max_members,omitempty"`
}

func (m *Configuration) Reset()                   { *m = Configuration{} }
func (m *Configuration) String() string           { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()              {}
func (m *Configuration) GetOwner() coffer.Address { return m.Owner }

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	if c.MaxMembers < 1 {
		errs = errors.Append(errs, errors.Field("MaxMembers", errors.ErrInput, "must be positive"))
	}
	return errs
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load vault configuration")
	}
	return &conf, nil
}

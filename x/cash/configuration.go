package cash

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/gconf"
	"github.com/gogo/protobuf/proto"
)

// confPkg is the name the cash configuration is stored under.
const confPkg = "cash"

// Configuration of the cash extension.
type Configuration struct {
	// Owner is allowed to update the configuration.
	Owner coffer.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	// Ticker of the native currency.
	Ticker string `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

func (m *Configuration) Reset()                   { *m = Configuration{} }
func (m *Configuration) String() string           { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()              {}
func (m *Configuration) GetOwner() coffer.Address { return m.Owner }

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	// owner field is optional, without one the configuration is immutable
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	}
	if !coin.IsCC(c.Ticker) {
		errs = errors.Append(errs, errors.Field("Ticker", errors.ErrCurrency, "invalid ticker %q", c.Ticker))
	}
	return errs
}

// LoadConfiguration returns the cash configuration stored in the database.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load cash configuration")
	}
	return &conf, nil
}

// NativeTicker returns the ticker of the native currency of the chain.
func NativeTicker(db gconf.ReadStore) (string, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return "", err
	}
	return conf.Ticker, nil
}

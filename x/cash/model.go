package cash

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/orm"
	"github.com/gogo/protobuf/proto"
)

// BucketName prefixes the wallets in the store.
const BucketName = "cash"

// Set is the content of a wallet: the coins it holds, one per currency.
type Set struct {
	Coins []*coin.Coin `protobuf:"bytes,1,rep,name=coins,proto3" json:"coins,omitempty"`
}

func (m *Set) Reset()         { *m = Set{} }
func (m *Set) String() string { return proto.CompactTextString(m) }
func (*Set) ProtoMessage()    {}

var _ orm.Model = (*Set)(nil)

func (m *Set) Validate() error {
	return coin.Coins(m.Coins).Validate()
}

// NewWallet returns an empty wallet of addr.
func NewWallet(addr coffer.Address) orm.Object {
	return orm.NewSimpleObj(addr, new(Set))
}

// WalletWith returns a wallet of addr holding coins, given in any order.
func WalletWith(addr coffer.Address, coins ...*coin.Coin) (orm.Object, error) {
	var empty coin.Coins
	held, err := empty.Combine(coins)
	if err != nil {
		return nil, err
	}
	w := orm.NewSimpleObj(addr, &Set{Coins: held})
	return w, w.Validate()
}

// AsCoins returns what a wallet holds. A nil wallet holds nothing.
func AsCoins(w orm.Object) coin.Coins {
	if w == nil || w.Value() == nil {
		return nil
	}
	return w.Value().(*Set).Coins
}

// deposit changes the holding of the wallet by amount, which is negative
// for a withdrawal.
func deposit(w orm.Object, amount coin.Coin) error {
	held, err := AsCoins(w).Clone().Add(amount)
	if err != nil {
		return err
	}
	w.Value().(*Set).Coins = held
	return nil
}

// Bucket stores wallets under their address.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns the bucket of all wallets.
func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, NewWallet(nil))}
}

// Wallet returns the wallet of addr, or a new empty one.
func (b Bucket) Wallet(db coffer.ReadOnlyKVStore, addr coffer.Address) (orm.Object, error) {
	w, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return NewWallet(addr), nil
	}
	return w, nil
}

// Save stores a wallet. Other models are rejected.
func (b Bucket) Save(db coffer.KVStore, w orm.Object) error {
	if _, ok := w.Value().(*Set); !ok {
		return errors.WithType(errors.ErrModel, w.Value())
	}
	return b.Bucket.Save(db, w)
}
